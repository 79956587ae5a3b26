package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
	"github.com/noahvogt/modulplaner-backend/pkg/pdfext"
	"github.com/noahvogt/modulplaner-backend/pkg/registry"
	"github.com/noahvogt/modulplaner-backend/pkg/tui"
)

var lecturersCmd = &cobra.Command{
	Use:   "lecturers",
	Short: "Convert the lecturer shorthand PDF into lecturers.json",
	Long: `Extracts the three-column lecturer shorthand table and writes
lecturers.json. With --merge, the result is set-union merged into a
prior lecturers.json: existing shorthand mappings are never deleted or
renamed, only appended.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		mergePath, _ := cmd.Flags().GetString("merge")

		var records []model.Lecturer
		var err error

		_ = spinner.New().
			Title(fmt.Sprintf("Extracting lecturers from %s...", input)).
			Action(func() {
				records, err = pdfext.ExtractLecturers(input)
			}).
			Run()

		if err != nil {
			return err
		}

		reg := registry.NewLecturers(records)

		if mergePath != "" {
			prior, err := registry.LoadLecturers(mergePath)
			if err != nil {
				return err
			}
			prior.Merge(reg)
			reg = prior
		}

		if err := registry.SaveLecturers(reg, output); err != nil {
			return err
		}

		fmt.Printf("%s %s (%d lecturers)\n", tui.Success("✨ Wrote"), output, reg.Len())

		if collisions := reg.Collisions(); len(collisions) > 0 {
			fmt.Println(tui.Error(fmt.Sprintf("⚠️ %d shorthand collision(s) detected:", len(collisions))))
			for short, names := range collisions {
				fmt.Printf("  • %s -> %v\n", short, names)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(lecturersCmd)
	lecturersCmd.Flags().StringP("input", "i", "dozierende.pdf", "Path to the lecturer shorthand PDF")
	lecturersCmd.Flags().StringP("output", "o", "lecturers.json", "Path to the output JSON file")
	lecturersCmd.Flags().String("merge", "", "Prior lecturers.json to merge into (append-only)")
}
