package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/alexanderramin/spirulina/internal/timeseries"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(1, 2)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleTitle.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// HumanDate renders t in local time as "Today", "Yesterday" or "Jan 2, 2006".
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

func HumanDateFrom(t, now time.Time) string {
	t, now = t.Local(), now.Local()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// Timestamp renders t in local time as "2006-01-02 15:04".
func Timestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// StatusPill returns a colored pond status indicator.
func StatusPill(status domain.PondStatus) string {
	switch status {
	case domain.PondActive:
		return StyleOK.Render("● Active")
	case domain.PondMaintenance:
		return StyleWarn.Render("◐ Maintenance")
	case domain.PondInactive:
		return StyleMuted.Render("○ Inactive")
	default:
		return StyleMuted.Render(string(status))
	}
}

// PH renders a pH value, red when outside the healthy range.
func PH(ph float64) string {
	text := Number(ph)
	if ph > timeseries.PHHigh || ph < timeseries.PHLow {
		return StyleAlert.Render(text + " ▲")
	}
	return StyleOK.Render(text)
}

// Number renders v with up to two decimals and no trailing zeros.
func Number(v float64) string {
	rounded := math.Round(v*100) / 100
	if rounded == 0 {
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// Liters renders a volume.
func Liters(v float64) string {
	return Number(v) + " L"
}

// Kilograms renders a gram weight as kilograms with two decimals.
func Kilograms(grams float64) string {
	return fmt.Sprintf("%.2f kg", grams/1000)
}

// Grams renders a weight in grams.
func Grams(g float64) string {
	return Number(g) + " g"
}
