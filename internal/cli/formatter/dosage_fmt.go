package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spirulina/internal/dosage"
)

// FormatDosage renders a computed recipe with its rates and footnote.
func FormatDosage(res dosage.Result, pondName string) string {
	var b strings.Builder
	input := Number(res.Input) + " " + res.Recipe.InputUnit
	fmt.Fprintf(&b, "%s  %s", StyleMuted.Render(strings.ToUpper(res.Recipe.InputName)), Bold(input))
	if pondName != "" {
		b.WriteString("  " + Dim("("+pondName+")"))
	}
	b.WriteString("\n\n")

	headers := []string{"NUTRIENT", "AMOUNT", "RATE", "NOTES"}
	rows := make([][]string, 0, len(res.Lines))
	for _, l := range res.Lines {
		note := l.Nutrient.Function
		if l.Nutrient.Note != "" {
			note = StyleWarn.Render(l.Nutrient.Note)
		}
		rows = append(rows, []string{
			l.Nutrient.Name,
			StyleOK.Render(l.Formatted()),
			Dim(l.RateLabel(res.Recipe.Mode)),
			note,
		})
	}
	b.WriteString(RenderTable(headers, rows, 1))
	b.WriteString("\n" + Dim(res.Recipe.Footnote))
	return RenderBox(res.Recipe.Title, b.String())
}
