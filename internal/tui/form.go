package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tlview/internal/chart"
	"github.com/julianstephens/tlview/internal/constants"
)

func validateFraction(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("must be between 0 and 1")
	}
	return nil
}

func validateAtLeast(lo int) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		if i < lo {
			return fmt.Errorf("must be at least %d", lo)
		}
		return nil
	}
}

func validateBetween(lo, hi int) func(string) error {
	atLeast := validateAtLeast(lo)
	return func(s string) error {
		if err := atLeast(s); err != nil {
			return err
		}
		if i, _ := strconv.Atoi(s); i > hi {
			return fmt.Errorf("must be at most %d", hi)
		}
		return nil
	}
}

// NewSettingsForm creates a new form for editing settings
func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	var formats []huh.Option[string]
	for _, f := range chart.Formats() {
		formats = append(formats, huh.NewOption(string(f), string(f)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Saturation (0-1)").
				Value(&fm.Saturation).
				Validate(validateFraction),
			huh.NewInput().
				Title("Lightness (0-1)").
				Value(&fm.Lightness).
				Validate(validateFraction),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Row Height (px)").
				Value(&fm.RowHeight).
				Validate(validateAtLeast(1)),
			huh.NewInput().
				Title("Margin (px)").
				Value(&fm.Margin).
				Validate(validateAtLeast(0)),
			huh.NewInput().
				Title("Gridlines").
				Value(&fm.Gridlines).
				Validate(validateBetween(1, constants.MaxGridlines)),
			huh.NewInput().
				Title("Terminal Chart Width").
				Value(&fm.ChartWidth).
				Validate(validateBetween(20, constants.MaxChartWidth)),
			huh.NewSelect[string]().
				Title("Default Format").
				Options(formats...).
				Value(&fm.DefaultFormat),
		),
	).WithTheme(huh.ThemeDracula())
}
