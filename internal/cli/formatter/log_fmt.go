package formatter

import (
	"fmt"

	"github.com/alexanderramin/spirulina/internal/domain"
)

// FormatLogTable renders parameter logs in the order given.
func FormatLogTable(logs []domain.ParameterLog) string {
	headers := []string{"WHEN", "PH", "TEMP °C", "OD", "SALINITY", "MEDIUM", "NOTES"}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		medium := Dim("--")
		if l.AddedMedium > 0 {
			medium = Liters(l.AddedMedium)
		}
		rows = append(rows, []string{
			Timestamp(l.Timestamp),
			PH(l.PH),
			Number(l.Temperature),
			Number(l.OpticalDensity),
			Number(l.Salinity),
			medium,
			l.Notes,
		})
	}
	return RenderTable(headers, rows, 1, 2, 3, 4, 5)
}

// FormatLogList renders logs under a pond name.
func FormatLogList(pondName string, logs []domain.ParameterLog) string {
	if len(logs) == 0 {
		return RenderBox("Logs · "+pondName, Dim("No readings yet."))
	}
	return RenderBox("Logs · "+pondName, FormatLogTable(logs))
}

// FormatLogCreated confirms a new reading.
func FormatLogCreated(pondName string, l domain.ParameterLog) string {
	return fmt.Sprintf("%s Reading saved for %s: pH %s, %s°C, OD %s\n",
		StyleOK.Render("✔"), Bold(pondName), PH(l.PH), Number(l.Temperature), Number(l.OpticalDensity))
}
