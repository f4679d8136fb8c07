package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
)

// Converted holds domain records ready to merge into the store.
type Converted struct {
	Ponds    []domain.Pond
	Logs     []domain.ParameterLog
	Harvests []domain.Harvest
}

// Convert transforms a validated Bundle into domain records, keeping ids and
// timestamps. Call ValidateBundle first; Convert assumes the bundle is valid.
func Convert(b *Bundle) (*Converted, error) {
	out := &Converted{
		Ponds:    make([]domain.Pond, 0, len(b.Ponds)),
		Logs:     make([]domain.ParameterLog, 0, len(b.Logs)),
		Harvests: make([]domain.Harvest, 0, len(b.Harvests)),
	}

	for _, p := range b.Ponds {
		status, err := domain.ParsePondStatus(p.Status)
		if err != nil {
			return nil, fmt.Errorf("pond %s: %w", p.ID, err)
		}
		created, err := parseTimestamp(p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("pond %s: %w", p.ID, err)
		}
		out.Ponds = append(out.Ponds, domain.Pond{
			ID:        p.ID,
			Name:      strings.TrimSpace(p.Name),
			Volume:    p.Volume,
			Status:    status,
			Strain:    domain.Coalesce(strings.TrimSpace(p.Strain), domain.DefaultStrain),
			CreatedAt: created,
		})
	}

	for _, l := range b.Logs {
		ts, err := parseTimestamp(l.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("log %s: %w", l.ID, err)
		}
		out.Logs = append(out.Logs, domain.ParameterLog{
			ID:             l.ID,
			PondID:         l.PondID,
			PH:             l.PH,
			Temperature:    l.Temperature,
			OpticalDensity: l.OpticalDensity,
			Salinity:       domain.Deref(l.Salinity, 0),
			AddedMedium:    domain.Deref(l.AddedMedium, 0),
			Notes:          l.Notes,
			Timestamp:      ts,
		})
	}

	for _, h := range b.Harvests {
		ts, err := parseTimestamp(h.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("harvest %s: %w", h.ID, err)
		}
		batch := domain.OptionalFromPtr(h.BatchID)
		if v, ok := batch.Get(); ok && strings.TrimSpace(v) == "" {
			batch = domain.None[string]()
		}
		out.Harvests = append(out.Harvests, domain.Harvest{
			ID:        h.ID,
			PondID:    h.PondID,
			WetWeight: h.WetWeight,
			DryWeight: domain.OptionalFromPtr(h.DryWeight),
			BatchID:   batch,
			Notes:     h.Notes,
			Timestamp: ts,
		})
	}

	return out, nil
}

// Export builds a bundle from domain records, the inverse of Convert.
func Export(ponds []domain.Pond, logs []domain.ParameterLog, harvests []domain.Harvest) *Bundle {
	b := &Bundle{
		Ponds:    make([]PondImport, 0, len(ponds)),
		Logs:     make([]LogImport, 0, len(logs)),
		Harvests: make([]HarvestImport, 0, len(harvests)),
	}
	for _, p := range ponds {
		b.Ponds = append(b.Ponds, PondImport{
			ID: p.ID, Name: p.Name, Volume: p.Volume, Status: string(p.Status),
			Strain: p.Strain, CreatedAt: formatTimestamp(p.CreatedAt),
		})
	}
	for _, l := range logs {
		salinity, added := l.Salinity, l.AddedMedium
		b.Logs = append(b.Logs, LogImport{
			ID: l.ID, PondID: l.PondID, PH: l.PH, Temperature: l.Temperature,
			OpticalDensity: l.OpticalDensity, Salinity: &salinity, AddedMedium: &added,
			Notes: l.Notes, Timestamp: formatTimestamp(l.Timestamp),
		})
	}
	for _, h := range harvests {
		imp := HarvestImport{
			ID: h.ID, PondID: h.PondID, WetWeight: h.WetWeight,
			Notes: h.Notes, Timestamp: formatTimestamp(h.Timestamp),
		}
		if dry, ok := h.DryWeight.Get(); ok {
			imp.DryWeight = &dry
		}
		if batch, ok := h.BatchID.Get(); ok {
			imp.BatchID = &batch
		}
		b.Harvests = append(b.Harvests, imp)
	}
	return b
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
