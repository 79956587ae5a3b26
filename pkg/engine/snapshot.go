package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// SaveSnapshot serializes the raw cell stream so a later run can skip
// the expensive PDF extraction step.
func SaveSnapshot(snap *model.Snapshot, path string) error {
	if snap.Version == 0 {
		snap.Version = model.SnapshotVersion
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}

// LoadSnapshot reads a snapshot back. The snapshot round-trips exactly:
// same pages, same cells, same order.
func LoadSnapshot(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}

	if snap.Version != model.SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, model.SnapshotVersion)
	}

	return &snap, nil
}
