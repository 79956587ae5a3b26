package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LecturerShorthandSize != 6 {
		t.Errorf("expected lecturer shorthand size 6, got %d", cfg.LecturerShorthandSize)
	}
	if len(cfg.Timeslots) != 14 {
		t.Errorf("expected the 14-row timeslot grid, got %d rows", len(cfg.Timeslots))
	}
	if cfg.Timeslots[0].Start != "8:15" || cfg.Timeslots[13].End != "21:15" {
		t.Errorf("unexpected timeslot grid bounds: %v ... %v", cfg.Timeslots[0], cfg.Timeslots[13])
	}
	if cfg.MixedContextPrograms["bplan"] != "Kontext BWL" {
		t.Errorf("expected bplan to map to Kontext BWL, got %q", cfg.MixedContextPrograms["bplan"])
	}
	if cfg.MixedContextDefault != "Kontext GSW" {
		t.Errorf("expected GSW default, got %q", cfg.MixedContextDefault)
	}
	if len(cfg.UnknownRoomLiterals) != 1 || cfg.UnknownRoomLiterals[0] != "DSMixe" {
		t.Errorf("expected the observed DSMixe literal, got %v", cfg.UnknownRoomLiterals)
	}
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LecturerShorthandSize != 6 {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoad_PartialOverrideKeepsDefaults(t *testing.T) {
	yaml := `
lecturer_shorthand_size: 4
mixed_context_programs:
  sonder: Kontext Englisch
`
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("could not write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LecturerShorthandSize != 4 {
		t.Errorf("expected the override to win, got %d", cfg.LecturerShorthandSize)
	}
	if cfg.MixedContextPrograms["sonder"] != "Kontext Englisch" {
		t.Errorf("expected the custom disambiguation entry, got %v", cfg.MixedContextPrograms)
	}
	// Fields the file leaves unset keep their defaults.
	if len(cfg.Timeslots) != 14 {
		t.Errorf("expected the default timeslot grid to remain, got %d rows", len(cfg.Timeslots))
	}
	if cfg.MixedContextDefault != "Kontext GSW" {
		t.Errorf("expected the GSW default to remain, got %q", cfg.MixedContextDefault)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.LecturerShorthandSize = 5

	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if loaded.LecturerShorthandSize != 5 {
		t.Errorf("expected the saved override, got %d", loaded.LecturerShorthandSize)
	}
}
