package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette: algae greens on a warm dark background.
var (
	ColorAlgae  = lipgloss.Color("#7fb069")
	ColorWarn   = lipgloss.Color("#e6aa3c")
	ColorAlert  = lipgloss.Color("#e0524a")
	ColorWater  = lipgloss.Color("#6fa8b6")
	ColorTeal   = lipgloss.Color("#3e8a7e")
	ColorMuted  = lipgloss.Color("#8a8276")
	ColorText   = lipgloss.Color("#e8dfc8")
	ColorAccent = lipgloss.Color("#a3c93a")
)

var (
	StyleOK     = lipgloss.NewStyle().Foreground(ColorAlgae)
	StyleWarn   = lipgloss.NewStyle().Foreground(ColorWarn)
	StyleAlert  = lipgloss.NewStyle().Foreground(ColorAlert)
	StyleInfo   = lipgloss.NewStyle().Foreground(ColorWater)
	StyleTeal   = lipgloss.NewStyle().Foreground(ColorTeal)
	StyleMuted  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleText   = lipgloss.NewStyle().Foreground(ColorText)
	StyleTitle  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StyleStrong = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
)

// Header renders an upper-cased title over a rule of the same width.
func Header(text string) string {
	title := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(title))
	return fmt.Sprintf("%s\n%s", StyleTitle.Render(title), StyleMuted.Render(rule))
}

func Dim(text string) string  { return StyleMuted.Render(text) }
func Bold(text string) string { return StyleStrong.Render(text) }
