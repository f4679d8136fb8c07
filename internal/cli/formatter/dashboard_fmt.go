package formatter

import (
	"fmt"

	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/charmbracelet/lipgloss"
)

func statCard(label, value string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 2).
		Render(StyleMuted.Render(label) + "\n" + StyleStrong.Render(value))
}

// FormatDashboard renders the three summary cards.
func FormatDashboard(v service.DashboardView) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("ACTIVE PONDS", fmt.Sprintf("%d / %d", v.ActiveCount, v.PondCount)),
		" ",
		statCard("TOTAL VOLUME", Liters(v.TotalVolume)),
		" ",
		statCard("TOTAL HARVESTED", Kilograms(v.TotalWetWeight)),
	)
	return Header("Culture overview") + "\n" + cards + "\n"
}
