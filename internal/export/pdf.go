// Package export renders the harvest ledger as a spreadsheet and dosage
// recipes as printable PDF sheets.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/spirulina/internal/dosage"
	"github.com/jung-kurt/gofpdf"
)

// DosagePDF renders a computed recipe as a one-page A4 sheet. pondName is
// optional.
func DosagePDF(res dosage.Result, pondName string, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, tr(res.Recipe.Title))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if pondName != "" {
		pdf.Cell(0, 6, tr("Pond: "+pondName))
		pdf.Ln(5)
	}
	input := strconv.FormatFloat(res.Input, 'f', -1, 64)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s: %s %s", res.Recipe.InputName, input, res.Recipe.InputUnit)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04")))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Nutrient", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, "Rate", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(65, 6, "Notes", "1", 0, "L", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, line := range res.Lines {
		note := line.Nutrient.Function
		if line.Nutrient.Note != "" {
			note = line.Nutrient.Note
		}
		pdf.CellFormat(60, 6, tr(line.Nutrient.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(line.RateLabel(res.Recipe.Mode)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, tr(line.Formatted()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(65, 6, tr(note), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	if res.Recipe.Footnote != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr(res.Recipe.Footnote), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering dosage PDF: %w", err)
	}
	return buf.Bytes(), nil
}
