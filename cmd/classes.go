package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/noahvogt/modulplaner-backend/pkg/config"
	"github.com/noahvogt/modulplaner-backend/pkg/engine"
	"github.com/noahvogt/modulplaner-backend/pkg/model"
	"github.com/noahvogt/modulplaner-backend/pkg/pdfext"
	"github.com/noahvogt/modulplaner-backend/pkg/registry"
	"github.com/noahvogt/modulplaner-backend/pkg/tui"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Convert a class timetable PDF into classes.json",
	Long: `Extracts the class timetable PDF (or a saved intermediate snapshot),
normalizes its cells into module runs and writes classes.json plus a
diagnostics report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		lecturersPath, _ := cmd.Flags().GetString("lecturers")
		modulesPath, _ := cmd.Flags().GetString("modules")
		lecturerTimetable, _ := cmd.Flags().GetString("lecturer-timetable")
		saveIntermediate, _ := cmd.Flags().GetString("save-intermediate")
		loadIntermediate, _ := cmd.Flags().GetString("load-intermediate")
		reportPath, _ := cmd.Flags().GetString("report")
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		opts := engine.Options{Logger: slog.Default()}

		if lecturersPath != "" {
			reg, err := registry.LoadLecturers(lecturersPath)
			if err != nil {
				return err
			}
			opts.Lecturers = reg
			slog.Info("loaded trusted lecturers registry", "path", lecturersPath, "lecturers", reg.Len())
		}

		if modulesPath != "" {
			catalog, err := loadModuleCatalog(modulesPath)
			if err != nil {
				return err
			}
			opts.Modules = catalog
		}

		snap, err := loadOrExtract(input, loadIntermediate, cfg)
		if err != nil {
			return err
		}

		if saveIntermediate != "" {
			if err := engine.SaveSnapshot(snap, saveIntermediate); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", tui.Success("✨ Saved intermediate snapshot to:"), saveIntermediate)
			return nil
		}

		var lecturerSnap *model.Snapshot
		if lecturerTimetable != "" {
			lecturerSnap, err = loadTimetable(lecturerTimetable, cfg)
			if err != nil {
				return err
			}
		}

		result, err := engine.New(cfg, opts).Run(snap, lecturerSnap)
		if err != nil {
			return err
		}

		if err := engine.WriteClasses(result.Classes, output); err != nil {
			return err
		}
		fmt.Printf("%s %s (%d classes)\n", tui.Success("✨ Wrote"), output, len(result.Classes))

		if reportPath != "" {
			if err := engine.WriteDiagnostics(result.Diagnostics, reportPath); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", tui.Accent("📋 Diagnostics report:"), reportPath)
		}
		fmt.Println(tui.RenderDiagnostics(result.Diagnostics))

		return nil
	},
}

// loadModuleCatalog accepts either a modules.json catalog or the module
// overview HTML table.
func loadModuleCatalog(path string) (*registry.ModuleCatalog, error) {
	if strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".htm") {
		return registry.LoadModulesHTML(path)
	}
	return registry.LoadModules(path)
}

// loadOrExtract returns the raw cell snapshot, either from a saved
// intermediate file or by running the PDF extraction collaborator.
func loadOrExtract(input, loadIntermediate string, cfg *config.EngineConfig) (*model.Snapshot, error) {
	if loadIntermediate != "" {
		slog.Info("loading intermediate snapshot", "path", loadIntermediate)
		return engine.LoadSnapshot(loadIntermediate)
	}
	return loadTimetable(input, cfg)
}

// loadTimetable accepts either a timetable PDF or an already-serialized
// snapshot (.json).
func loadTimetable(path string, cfg *config.EngineConfig) (*model.Snapshot, error) {
	if strings.HasSuffix(path, ".json") {
		return engine.LoadSnapshot(path)
	}

	var snap *model.Snapshot
	var err error

	_ = spinner.New().
		Title(fmt.Sprintf("Extracting cells from %s...", path)).
		Action(func() {
			snap, err = pdfext.ExtractClassTimetable(path, cfg)
		}).
		Run()

	return snap, err
}

func init() {
	rootCmd.AddCommand(classesCmd)
	classesCmd.Flags().StringP("input", "i", "klassen.pdf", "Path to the class timetable PDF")
	classesCmd.Flags().StringP("output", "o", "classes.json", "Path to the output JSON file")
	classesCmd.Flags().StringP("lecturers", "l", "", "Path to a trusted lecturers.json (optional)")
	classesCmd.Flags().StringP("modules", "m", "", "Path to a module catalog, JSON or HTML overview table (optional)")
	classesCmd.Flags().String("lecturer-timetable", "", "Lecturer timetable PDF or snapshot for cross-source reconciliation")
	classesCmd.Flags().String("save-intermediate", "", "Save the raw cell snapshot to this path and exit")
	classesCmd.Flags().String("load-intermediate", "", "Load the raw cell snapshot from this path instead of extracting")
	classesCmd.Flags().String("report", "", "Write the diagnostics report JSON to this path")
	classesCmd.Flags().String("config", "", "Path to an engine config YAML")
}
