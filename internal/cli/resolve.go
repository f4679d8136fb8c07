package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/spirulina/internal/domain"
)

// resolvePond finds a pond by exact id, case-insensitive name or id prefix.
func resolvePond(ctx context.Context, app *App, input string) (domain.Pond, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.Pond{}, fmt.Errorf("pond is required")
	}

	ponds := app.Store.Ponds(ctx)

	for _, p := range ponds {
		if p.ID == input {
			return p, nil
		}
	}

	var byName []domain.Pond
	for _, p := range ponds {
		if strings.EqualFold(p.Name, input) {
			byName = append(byName, p)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return domain.Pond{}, fmt.Errorf("pond name %q is ambiguous (%d matches), use the id", input, len(byName))
	}

	var matches []domain.Pond
	for _, p := range ponds {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Pond{}, fmt.Errorf("pond not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return domain.Pond{}, fmt.Errorf("pond id prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// pondNames maps pond ids to names.
func pondNames(ponds []domain.Pond) map[string]string {
	names := make(map[string]string, len(ponds))
	for _, p := range ponds {
		names[p.ID] = p.Name
	}
	return names
}
