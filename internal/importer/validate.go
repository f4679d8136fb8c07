package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
)

// ValidateBundle checks the bundle before conversion and returns every
// problem found. References between collections are not checked: logs and
// harvests may point at ponds that no longer exist.
func ValidateBundle(b *Bundle) []error {
	var errs []error
	errs = append(errs, validatePonds(b.Ponds)...)
	errs = append(errs, validateLogs(b.Logs)...)
	errs = append(errs, validateHarvests(b.Harvests)...)
	return errs
}

func validatePonds(ponds []PondImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, p := range ponds {
		prefix := fmt.Sprintf("ponds[%d]", i)
		errs = append(errs, validateID(prefix, p.ID, seen)...)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.Volume < 0 {
			errs = append(errs, fmt.Errorf("%s.volume must be >= 0, got %g", prefix, p.Volume))
		}
		if _, err := domain.ParsePondStatus(p.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
		}
		errs = append(errs, validateTimestamp(prefix+".createdAt", p.CreatedAt)...)
	}
	return errs
}

func validateLogs(logs []LogImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, l := range logs {
		prefix := fmt.Sprintf("logs[%d]", i)
		errs = append(errs, validateID(prefix, l.ID, seen)...)
		if l.PondID == "" {
			errs = append(errs, fmt.Errorf("%s.pondId is required", prefix))
		}
		if l.OpticalDensity < 0 {
			errs = append(errs, fmt.Errorf("%s.opticalDensity must be >= 0", prefix))
		}
		if l.Salinity != nil && *l.Salinity < 0 {
			errs = append(errs, fmt.Errorf("%s.salinity must be >= 0", prefix))
		}
		if l.AddedMedium != nil && *l.AddedMedium < 0 {
			errs = append(errs, fmt.Errorf("%s.addedMedium must be >= 0", prefix))
		}
		errs = append(errs, validateTimestamp(prefix+".timestamp", l.Timestamp)...)
	}
	return errs
}

func validateHarvests(harvests []HarvestImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, h := range harvests {
		prefix := fmt.Sprintf("harvests[%d]", i)
		errs = append(errs, validateID(prefix, h.ID, seen)...)
		if h.PondID == "" {
			errs = append(errs, fmt.Errorf("%s.pondId is required", prefix))
		}
		if h.WetWeight < 0 {
			errs = append(errs, fmt.Errorf("%s.wetWeight must be >= 0", prefix))
		}
		if h.DryWeight != nil && *h.DryWeight < 0 {
			errs = append(errs, fmt.Errorf("%s.dryWeight must be >= 0", prefix))
		}
		errs = append(errs, validateTimestamp(prefix+".timestamp", h.Timestamp)...)
	}
	return errs
}

func validateID(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return []error{fmt.Errorf("%s.id is required", prefix)}
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id %q is duplicated", prefix, id)}
	}
	seen[id] = true
	return nil
}

func validateTimestamp(field, value string) []error {
	if value == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if _, err := time.Parse(time.RFC3339Nano, value); err != nil {
		return []error{fmt.Errorf("%s: invalid timestamp %q (expected RFC 3339)", field, value)}
	}
	return nil
}
