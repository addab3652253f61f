package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/steelbuild/internal/cli/formatter"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func steelbuildHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// resourceFormValues is what the resource form collects, as typed.
type resourceFormValues struct {
	Name          string
	Type          string
	Trade         string
	MaxConcurrent string
	HourlyRate    string
}

func resourceForm(v *resourceFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Ironworker Crew A").
				Value(&v.Name).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Labor", string(domain.ResourceLabor)),
					huh.NewOption("Equipment", string(domain.ResourceEquipment)),
					huh.NewOption("Subcontractor", string(domain.ResourceSubcontractor)),
				).
				Value(&v.Type),
			huh.NewInput().
				Title("Trade").
				Placeholder("ironworker").
				Value(&v.Trade),
			huh.NewInput().
				Title("Max concurrent tasks").
				Placeholder(strconv.Itoa(domain.DefaultMaxConcurrentAssignments)).
				Value(&v.MaxConcurrent).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Hourly rate").
				Placeholder("0").
				Value(&v.HourlyRate).
				Validate(validateNonNegativeFloat),
		),
	).WithTheme(steelbuildHuhTheme()).WithShowHelp(false)
}

// resource converts the collected values. Blank numbers mean zero.
func (v resourceFormValues) resource() (*domain.Resource, error) {
	r := &domain.Resource{Name: v.Name, Type: domain.ResourceType(v.Type), Trade: v.Trade}
	if v.MaxConcurrent != "" {
		n, err := strconv.Atoi(v.MaxConcurrent)
		if err != nil {
			return nil, fmt.Errorf("max concurrent: %w", err)
		}
		r.MaxConcurrentAssignments = n
	}
	if v.HourlyRate != "" {
		f, err := strconv.ParseFloat(v.HourlyRate, 64)
		if err != nil {
			return nil, fmt.Errorf("hourly rate: %w", err)
		}
		r.HourlyRate = f
	}
	return r, nil
}

func validateRequired(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validateNonNegativeInt accepts empty or a non-negative integer.
func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func validateNonNegativeFloat(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative amount")
	}
	return nil
}
