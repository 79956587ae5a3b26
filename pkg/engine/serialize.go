package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// WriteClasses writes the class records to a classes.json file in the
// frontend's expected schema.
func WriteClasses(records []model.ClassRecord, path string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize classes: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write classes file: %w", err)
	}

	return nil
}

// WriteDiagnostics writes the diagnostics report to a JSON file for
// operator consumption.
func WriteDiagnostics(diags []model.Diagnostic, path string) error {
	if diags == nil {
		diags = []model.Diagnostic{}
	}

	data, err := json.MarshalIndent(diags, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize diagnostics: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write diagnostics file: %w", err)
	}

	return nil
}
