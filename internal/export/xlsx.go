package export

import (
	"bytes"
	"fmt"

	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "summary"
	harvestsSheet = "harvests"
)

// HarvestsXLSX writes every entry of the ledger view, newest first, plus a
// summary sheet with the totals.
func HarvestsXLSX(view service.LedgerView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("naming summary sheet: %w", err)
	}
	if _, err := f.NewSheet(harvestsSheet); err != nil {
		return nil, fmt.Errorf("creating harvests sheet: %w", err)
	}

	_ = f.SetCellValue(summarySheet, "A1", "Harvest ledger")
	_ = f.SetCellValue(summarySheet, "A3", "Harvests")
	_ = f.SetCellValue(summarySheet, "B3", view.Count)
	_ = f.SetCellValue(summarySheet, "A4", "Total wet weight (kg)")
	_ = f.SetCellValue(summarySheet, "B4", view.TotalWetWeight/1000)
	_ = f.SetCellValue(summarySheet, "A5", "Total dry weight (kg)")
	_ = f.SetCellValue(summarySheet, "B5", view.TotalDryWeight/1000)
	_ = f.SetCellValue(summarySheet, "A6", "Harvests with dry weight")
	_ = f.SetCellValue(summarySheet, "B6", view.DryCount)

	headers := []string{"Date", "Pond", "Wet weight (g)", "Dry weight (g)", "Batch", "Notes", "ID"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(harvestsSheet, cell, h)
	}
	for i, e := range view.Entries {
		row := i + 2
		h := e.Harvest
		_ = f.SetCellValue(harvestsSheet, fmt.Sprintf("A%d", row), h.Timestamp.Local().Format("2006-01-02 15:04"))
		_ = f.SetCellValue(harvestsSheet, fmt.Sprintf("B%d", row), e.PondName)
		_ = f.SetCellValue(harvestsSheet, fmt.Sprintf("C%d", row), h.WetWeight)
		if dry, ok := h.DryWeight.Get(); ok {
			_ = f.SetCellValue(harvestsSheet, fmt.Sprintf("D%d", row), dry)
		}
		if batch, ok := h.BatchID.Get(); ok {
			_ = f.SetCellValue(harvestsSheet, fmt.Sprintf("E%d", row), batch)
		}
		_ = f.SetCellValue(harvestsSheet, fmt.Sprintf("F%d", row), h.Notes)
		_ = f.SetCellValue(harvestsSheet, fmt.Sprintf("G%d", row), h.ID)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing harvest workbook: %w", err)
	}
	return buf.Bytes(), nil
}
