package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noahvogt/modulplaner-backend/pkg/exporter"
	"github.com/noahvogt/modulplaner-backend/pkg/model"
	"github.com/noahvogt/modulplaner-backend/pkg/tui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export classes from classes.json to an .ics calendar",
	Long: `Reads a classes.json file and projects the weekly timeslots of the
selected classes onto concrete weeks, starting at the given Monday.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		classFilter, _ := cmd.Flags().GetStringSlice("class")
		mondayStr, _ := cmd.Flags().GetString("monday")
		weeks, _ := cmd.Flags().GetInt("weeks")

		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("failed to read classes file: %w", err)
		}

		var records []model.ClassRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("failed to parse classes JSON: %w", err)
		}

		if len(classFilter) == 0 {
			names := make([]string, 0, len(records))
			for _, r := range records {
				names = append(names, r.Name)
			}
			classFilter, err = tui.PickClasses(names)
			if err != nil {
				return err
			}
		}

		wanted := make(map[string]bool, len(classFilter))
		for _, name := range classFilter {
			wanted[name] = true
		}

		var selected []model.ClassRecord
		for _, r := range records {
			if wanted[r.Name] {
				selected = append(selected, r)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("none of the requested classes found in %s", input)
		}

		monday, err := time.Parse("2006-01-02", mondayStr)
		if err != nil {
			return fmt.Errorf("invalid --monday date (want YYYY-MM-DD): %w", err)
		}
		if monday.Weekday() != time.Monday {
			return fmt.Errorf("--monday %s is a %s, not a Monday", mondayStr, monday.Weekday())
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("could not create ics file: %w", err)
		}
		defer f.Close()

		if err := exporter.GenerateICS(selected, monday, weeks, f); err != nil {
			return err
		}

		fmt.Printf("%s %s\n", tui.Success("✨ Exported calendar to:"), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("input", "i", "classes.json", "Path to the classes.json file")
	exportCmd.Flags().StringSliceP("class", "c", nil, "Class name(s) to export (interactive picker when omitted)")
	exportCmd.Flags().StringP("output", "o", "schedule.ics", "Path to the output .ics file")
	exportCmd.Flags().String("monday", "", "Date of the first teaching Monday (YYYY-MM-DD)")
	exportCmd.Flags().Int("weeks", 14, "Number of weeks to project")
}
