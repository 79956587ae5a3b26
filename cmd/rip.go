package cmd

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/noahvogt/modulplaner-backend/pkg/ripper"
	"github.com/noahvogt/modulplaner-backend/pkg/tui"
)

var ripCmd = &cobra.Command{
	Use:   "rip",
	Short: "Mirror all data files of a live modulplaner frontend",
	Long: `Downloads the frontend's data files: the base files, semester-versions.json
and the per-semester and per-version files (classes.json, config.json,
klassen.pdf, block-class files).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("base-url")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		all, _ := cmd.Flags().GetBool("all")

		client := ripper.NewClient(baseURL, slog.Default())

		if all {
			var err error
			_ = spinner.New().
				Title(fmt.Sprintf("Mirroring %s...", baseURL)).
				Action(func() {
					err = client.Mirror(outputDir)
				}).
				Run()
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", tui.Success("✨ Mirrored frontend data to:"), outputDir)
			return nil
		}

		if err := client.MirrorBase(outputDir); err != nil {
			return err
		}

		entries, err := client.FetchSemesterVersions(outputDir)
		if err != nil {
			return err
		}

		semesters := make([]string, 0, len(entries))
		byName := make(map[string]ripper.SemesterEntry)
		for _, entry := range entries {
			if entry.Semester == "" {
				continue
			}
			semesters = append(semesters, entry.Semester)
			byName[entry.Semester] = entry
		}

		selected, err := tui.PickSemesters(semesters)
		if err != nil {
			return err
		}

		for _, semester := range selected {
			entry := byName[semester]
			var mirrorErr error
			_ = spinner.New().
				Title(fmt.Sprintf("Mirroring %s...", semester)).
				Action(func() {
					mirrorErr = client.MirrorSemester(entry, outputDir)
				}).
				Run()
			if mirrorErr != nil {
				return mirrorErr
			}
		}

		fmt.Printf("%s %s\n", tui.Success("✨ Mirrored frontend data to:"), outputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ripCmd)
	ripCmd.Flags().String("base-url", "https://modulplaner.ch/data", "Base URL of the frontend data files")
	ripCmd.Flags().String("output-dir", "ripped-data", "Output directory for downloaded files")
	ripCmd.Flags().Bool("all", false, "Mirror every semester without the interactive picker")
}
