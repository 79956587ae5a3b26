package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TimeslotWindow is one row of the timetable grid.
type TimeslotWindow struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// EngineConfig carries all tunables of the extraction engine. Every field
// has a compiled-in default so no config file is required; a YAML file
// supplied via --config overrides individual fields.
type EngineConfig struct {
	// LecturerShorthandSize is the exact token length of a lecturer
	// shorthand in the class timetable PDF.
	LecturerShorthandSize int `yaml:"lecturer_shorthand_size"`

	// UnknownRoomLiterals are room-line values that mean "no room", not an
	// actual room. "DSMixe" is the literal observed in production data.
	UnknownRoomLiterals []string `yaml:"unknown_room_literals"`

	// MixedContextPrograms disambiguates module shorthands found in
	// mixed-context tables (Kontext BWL / Kommunikation / GSW) to their
	// degree program. Shorthands not listed fall back to MixedContextDefault.
	MixedContextPrograms map[string]string `yaml:"mixed_context_programs"`
	MixedContextDefault  string            `yaml:"mixed_context_default"`

	// Timeslots is the allowed-timeslot grid; Row n of a cell maps to
	// Timeslots[n].
	Timeslots []TimeslotWindow `yaml:"timeslots"`
}

// Default returns the engine configuration with all compiled-in values.
func Default() *EngineConfig {
	cfg := &EngineConfig{}
	cfg.defaults()
	return cfg
}

// defaults fills every zero-valued field with its compiled-in default.
func (c *EngineConfig) defaults() {
	if c.LecturerShorthandSize == 0 {
		c.LecturerShorthandSize = 6
	}
	if len(c.UnknownRoomLiterals) == 0 {
		c.UnknownRoomLiterals = []string{"DSMixe"}
	}
	if len(c.MixedContextPrograms) == 0 {
		c.MixedContextPrograms = map[string]string{
			"bplan": "Kontext BWL",
			"lean":  "Kontext BWL",
			"wisa":  "Kontext Kommunikation",
			"aua":   "Kontext Kommunikation",
		}
	}
	if c.MixedContextDefault == "" {
		c.MixedContextDefault = "Kontext GSW"
	}
	if len(c.Timeslots) == 0 {
		c.Timeslots = []TimeslotWindow{
			{"8:15", "9:00"},
			{"9:15", "10:00"},
			{"10:15", "11:00"},
			{"11:15", "12:00"},
			{"12:15", "13:00"},
			{"13:15", "14:00"},
			{"14:15", "15:00"},
			{"15:15", "16:00"},
			{"16:15", "17:00"},
			{"17:15", "18:00"},
			{"18:05", "18:50"},
			{"18:50", "19:35"},
			{"19:45", "20:30"},
			{"20:30", "21:15"},
		}
	}
}

// Load reads an engine configuration from a YAML file and fills any field
// the file leaves unset with its default. An empty path yields Default().
func Load(path string) (*EngineConfig, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.defaults()
	return &cfg, nil
}

// Save writes the configuration back to disk as YAML.
func Save(cfg *EngineConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
