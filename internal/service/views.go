package service

import (
	"context"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/timeseries"
)

// UnknownPond labels harvests whose pond has been deleted.
const UnknownPond = "Unknown pond"

type DashboardView struct {
	PondCount      int     `json:"pondCount"`
	ActiveCount    int     `json:"activeCount"`
	TotalVolume    float64 `json:"totalVolume"`
	HarvestCount   int     `json:"harvestCount"`
	TotalWetWeight float64 `json:"totalWetWeight"`
}

func (s *Store) Dashboard(ctx context.Context) DashboardView {
	ponds := s.Ponds(ctx)
	harvests := s.Harvests(ctx)
	return DashboardView{
		PondCount:      len(ponds),
		ActiveCount:    timeseries.ActiveCount(ponds),
		TotalVolume:    timeseries.TotalVolume(ponds),
		HarvestCount:   len(harvests),
		TotalWetWeight: timeseries.TotalWetWeight(harvests),
	}
}

type PondDetailView struct {
	Pond     domain.Pond           `json:"pond"`
	Latest   timeseries.Reading    `json:"latest"`
	PHAlert  bool                  `json:"phAlert"`
	Series   []domain.ParameterLog `json:"series"`
	Recent   []domain.ParameterLog `json:"recent"`
	Harvests []domain.Harvest      `json:"harvests"`
}

// PondDetail returns ErrNotFound (wrapped) when the pond does not exist.
func (s *Store) PondDetail(ctx context.Context, id string) (*PondDetailView, error) {
	pond, err := s.ponds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	logs := s.Logs(ctx)
	latest := timeseries.Latest(logs, id)
	return &PondDetailView{
		Pond:     *pond,
		Latest:   latest,
		PHAlert:  latest.PHOutOfRange(),
		Series:   timeseries.LogsForPond(logs, id),
		Recent:   timeseries.RecentHistory(logs, id, timeseries.HistoryWindow),
		Harvests: timeseries.HarvestsForPond(s.Harvests(ctx), id),
	}, nil
}

type LedgerEntry struct {
	Harvest  domain.Harvest `json:"harvest"`
	PondName string         `json:"pondName"`
	Orphan   bool           `json:"orphan"`
}

type LedgerView struct {
	TotalWetWeight float64       `json:"totalWetWeight"`
	TotalDryWeight float64       `json:"totalDryWeight"`
	DryCount       int           `json:"dryCount"`
	Count          int           `json:"count"`
	Entries        []LedgerEntry `json:"entries"`
	Remaining      int           `json:"remaining"`
	HasMore        bool          `json:"hasMore"`
	CanShowLess    bool          `json:"canShowLess"`
}

// HarvestLedger returns the visible page of harvests, newest first.
func (s *Store) HarvestLedger(ctx context.Context, pager *timeseries.Pager) LedgerView {
	if pager == nil {
		pager = timeseries.NewPager()
	}
	names := make(map[string]string)
	for _, p := range s.Ponds(ctx) {
		names[p.ID] = p.Name
	}
	harvests := timeseries.HarvestsDescending(s.Harvests(ctx))
	total := len(harvests)
	dry, dryCount := timeseries.TotalDryWeight(harvests)

	page := timeseries.Page(pager, harvests)
	entries := make([]LedgerEntry, 0, len(page))
	for _, h := range page {
		name, ok := names[h.PondID]
		if !ok {
			name = UnknownPond
		}
		entries = append(entries, LedgerEntry{Harvest: h, PondName: name, Orphan: !ok})
	}

	return LedgerView{
		TotalWetWeight: timeseries.TotalWetWeight(harvests),
		TotalDryWeight: dry,
		DryCount:       dryCount,
		Count:          total,
		Entries:        entries,
		Remaining:      pager.Remaining(total),
		HasMore:        pager.HasMore(total),
		CanShowLess:    pager.CanShowLess(),
	}
}
