package tui

import (
	"github.com/charmbracelet/huh"
)

// PickSemesters shows a multiselect over the available semesters and
// returns the chosen ones.
func PickSemesters(semesters []string) ([]string, error) {
	var selected []string

	options := make([]huh.Option[string], 0, len(semesters))
	for _, s := range semesters {
		options = append(options, huh.NewOption(s, s))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which semesters should be mirrored?").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return nil, err
	}

	return selected, nil
}

// PickClasses shows a multiselect over the extracted class names.
func PickClasses(classes []string) ([]string, error) {
	var selected []string

	options := make([]huh.Option[string], 0, len(classes))
	for _, c := range classes {
		options = append(options, huh.NewOption(c, c))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which classes should be exported?").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return nil, err
	}

	return selected, nil
}
