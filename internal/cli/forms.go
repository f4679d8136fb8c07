package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/spirulina/internal/cli/formatter"
	"github.com/alexanderramin/spirulina/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func spirulinaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorAccent).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorAlgae)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorText).Background(formatter.ColorTeal).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorMuted).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorAlert)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	return t
}

// validateNonNegativeFloat accepts empty or a number >= 0.
func validateNonNegativeFloat(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a number >= 0")
	}
	return nil
}

// validateFloat accepts empty or any number.
func validateFloat(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// parseFormFloat reads a validated form field; blank is 0.
func parseFormFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// optionalFormFloat reads an optional numeric field. A blank entry is not
// provided, which is distinct from an entered 0.
func optionalFormFloat(s string) domain.Optional[float64] {
	if strings.TrimSpace(s) == "" {
		return domain.None[float64]()
	}
	return domain.Some(parseFormFloat(s))
}

func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(spirulinaHuhTheme()).WithShowHelp(false)
}

// wizardSelectPond returns nil when there are no ponds to choose from.
func wizardSelectPond(ctx context.Context, app *App, result *string) *huh.Form {
	ponds := app.Store.Ponds(ctx)
	if len(ponds) == 0 {
		return nil
	}
	options := make([]huh.Option[string], 0, len(ponds))
	for _, p := range ponds {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s L)", p.Name, formatter.Number(p.Volume)), p.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which pond?").
				Options(options...).
				Value(result),
		),
	).WithTheme(spirulinaHuhTheme()).WithShowHelp(false)
}

type pondFormValues struct {
	name, volume, strain string
	status               domain.PondStatus
}

func pondForm(v *pondFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Pond name").Value(&v.name).Validate(validateRequired),
			huh.NewInput().Title("Volume (liters)").Placeholder("0").Value(&v.volume).Validate(validateNonNegativeFloat),
			huh.NewInput().Title("Strain").Placeholder(domain.DefaultStrain).Value(&v.strain),
			huh.NewSelect[domain.PondStatus]().
				Title("Status").
				Options(
					huh.NewOption("Active", domain.PondActive),
					huh.NewOption("Maintenance", domain.PondMaintenance),
					huh.NewOption("Inactive", domain.PondInactive),
				).
				Value(&v.status),
		),
	).WithTheme(spirulinaHuhTheme()).WithShowHelp(false)
}

type logFormValues struct {
	ph, temperature, od, salinity, medium, notes string
}

func logForm(v *logFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("pH").Value(&v.ph).Validate(validateFloat),
			huh.NewInput().Title("Temperature (°C)").Value(&v.temperature).Validate(validateFloat),
			huh.NewInput().Title("Optical density").Value(&v.od).Validate(validateNonNegativeFloat),
			huh.NewInput().Title("Salinity").Placeholder("0").Value(&v.salinity).Validate(validateNonNegativeFloat),
			huh.NewInput().Title("Medium added (liters)").Placeholder("0").Value(&v.medium).Validate(validateNonNegativeFloat),
			huh.NewText().Title("Notes").Value(&v.notes),
		),
	).WithTheme(spirulinaHuhTheme()).WithShowHelp(false)
}

type harvestFormValues struct {
	wet, dry, batch, notes string
}

func harvestForm(v *harvestFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Wet weight (g)").Value(&v.wet).Validate(func(s string) error {
				if err := validateRequired(s); err != nil {
					return err
				}
				return validateNonNegativeFloat(s)
			}),
			huh.NewInput().Title("Dry weight (g)").Description("Leave blank if not weighed yet").Value(&v.dry).Validate(validateNonNegativeFloat),
			huh.NewInput().Title("Batch").Value(&v.batch),
			huh.NewText().Title("Notes").Value(&v.notes),
		),
	).WithTheme(spirulinaHuhTheme()).WithShowHelp(false)
}
