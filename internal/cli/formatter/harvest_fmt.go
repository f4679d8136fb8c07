package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/service"
)

// FormatLedgerSummary renders the harvest totals line.
func FormatLedgerSummary(v service.LedgerView) string {
	s := fmt.Sprintf("%d harvests  ·  %s wet", v.Count, Kilograms(v.TotalWetWeight))
	if v.DryCount > 0 {
		s += fmt.Sprintf("  ·  %s dry (%d weighed)", Kilograms(v.TotalDryWeight), v.DryCount)
	}
	return StyleTeal.Render(s)
}

// FormatLedgerTable renders the visible ledger entries.
func FormatLedgerTable(v service.LedgerView) string {
	headers := []string{"DATE", "POND", "WET", "DRY", "BATCH", "NOTES"}
	rows := make([][]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		h := e.Harvest
		pond := e.PondName
		if e.Orphan {
			pond = StyleWarn.Render(pond)
		}
		dry := Dim("--")
		if d, ok := h.DryWeight.Get(); ok {
			dry = Grams(d)
		}
		rows = append(rows, []string{
			HumanDate(h.Timestamp),
			pond,
			Grams(h.WetWeight),
			dry,
			h.BatchID.OrElse(Dim("--")),
			h.Notes,
		})
	}
	return RenderTable(headers, rows, 2, 3)
}

// FormatLedger renders the ledger with its summary and pagination hint.
func FormatLedger(v service.LedgerView) string {
	if v.Count == 0 {
		return RenderBox("Harvests", Dim("No harvests recorded yet."))
	}
	var b strings.Builder
	b.WriteString(FormatLedgerSummary(v) + "\n\n")
	b.WriteString(FormatLedgerTable(v))
	if v.HasMore {
		b.WriteString("\n" + Dim(fmt.Sprintf("%d more. Use --all or `spirulina harvest browse`.", v.Remaining)))
	}
	return RenderBox("Harvests", strings.TrimRight(b.String(), "\n"))
}

// FormatHarvestCreated confirms a new harvest.
func FormatHarvestCreated(pondName string, h domain.Harvest) string {
	out := fmt.Sprintf("%s Harvest of %s recorded for %s", StyleOK.Render("✔"), Grams(h.WetWeight), Bold(pondName))
	if batch, ok := h.BatchID.Get(); ok {
		out += " " + Dim("batch "+batch)
	}
	return out + "\n"
}
