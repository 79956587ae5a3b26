package ripper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// semesterVersionsFile lists the published semesters and their versions.
const semesterVersionsFile = "semester-versions.json"

// baseFiles are the semester-independent data files of the frontend.
var baseFiles = []string{"modules.json", "lecturers.json"}

// SemesterEntry is one entry of semester-versions.json.
type SemesterEntry struct {
	Semester string   `json:"semester"`
	Versions []string `json:"versions"`
}

// semesterConfig is the part of a semester's config.json the ripper
// needs: the optional reference to a block-class file.
type semesterConfig struct {
	BlockclassFile string `json:"blockclass_file"`
}

// FetchSemesterVersions downloads and parses semester-versions.json.
func (c *Client) FetchSemesterVersions(outputDir string) ([]SemesterEntry, error) {
	localPath := filepath.Join(outputDir, semesterVersionsFile)
	ok, err := c.Download(semesterVersionsFile, localPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("frontend has no %s", semesterVersionsFile)
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", localPath, err)
	}

	var entries []SemesterEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", semesterVersionsFile, err)
	}

	return entries, nil
}

// MirrorBase downloads the semester-independent base files.
func (c *Client) MirrorBase(outputDir string) error {
	for _, name := range baseFiles {
		if _, err := c.Download(name, filepath.Join(outputDir, name)); err != nil {
			return err
		}
	}
	return nil
}

// MirrorSemester downloads a semester's files: blockclasses.json,
// config.json and, if the config references one, the block-class file.
func (c *Client) MirrorSemester(entry SemesterEntry, outputDir string) error {
	for _, name := range []string{"blockclasses.json", "config.json"} {
		remote := fmt.Sprintf("%s/%s", entry.Semester, name)
		local := filepath.Join(outputDir, entry.Semester, name)
		if _, err := c.Download(remote, local); err != nil {
			return err
		}
	}

	configPath := filepath.Join(outputDir, entry.Semester, "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil // optional, 404 already logged
	}

	var cfg semesterConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		c.log.Warn("unparseable semester config", "semester", entry.Semester, "error", err)
		return nil
	}
	if cfg.BlockclassFile != "" {
		remote := fmt.Sprintf("%s/%s", entry.Semester, cfg.BlockclassFile)
		local := filepath.Join(outputDir, entry.Semester, cfg.BlockclassFile)
		if _, err := c.Download(remote, local); err != nil {
			return err
		}
	}

	for _, version := range entry.Versions {
		if err := c.MirrorVersion(entry.Semester, version, outputDir); err != nil {
			return err
		}
	}

	return nil
}

// MirrorVersion downloads one version of a semester: classes.json,
// config.json and the source klassen.pdf.
func (c *Client) MirrorVersion(semester, version, outputDir string) error {
	for _, name := range []string{"classes.json", "config.json", "klassen.pdf"} {
		remote := fmt.Sprintf("%s/%s/%s", semester, version, name)
		local := filepath.Join(outputDir, semester, version, name)
		if _, err := c.Download(remote, local); err != nil {
			return err
		}
	}
	return nil
}

// Mirror downloads everything: base files plus every listed semester.
func (c *Client) Mirror(outputDir string) error {
	if err := c.MirrorBase(outputDir); err != nil {
		return err
	}

	entries, err := c.FetchSemesterVersions(outputDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Semester == "" {
			continue
		}
		if err := c.MirrorSemester(entry, outputDir); err != nil {
			return err
		}
	}

	return nil
}
