package formatter

import (
	"strings"

	"github.com/alexanderramin/spirulina/internal/advisor"
	"github.com/alexanderramin/spirulina/internal/llm"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleUserLabel  = lipgloss.NewStyle().Foreground(ColorWater).Bold(true)
	styleModelLabel = lipgloss.NewStyle().Foreground(ColorAlgae).Bold(true)
)

// FormatAnswer renders an advisor reply. Fallback replies are shown in the
// warning color.
func FormatAnswer(reply string) string {
	reply = strings.TrimSpace(reply)
	if advisor.IsFallback(reply) {
		return StyleWarn.Render(reply) + "\n"
	}
	return RenderBox("Advisor", StyleText.Render(reply)) + "\n"
}

// FormatTurn renders one chat message with its speaker label.
func FormatTurn(t advisor.Turn) string {
	text := strings.TrimSpace(t.Text)
	if t.Role == llm.RoleUser {
		return styleUserLabel.Render("you") + "  " + Dim(t.At.Local().Format("15:04")) + "\n" + StyleText.Render(text)
	}
	if t.Fallback {
		text = StyleWarn.Render(text)
	} else {
		text = StyleText.Render(text)
	}
	return styleModelLabel.Render("advisor") + "  " + Dim(t.At.Local().Format("15:04")) + "\n" + text
}
