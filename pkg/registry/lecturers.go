package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// Lecturers is the trusted lecturers registry: full name is the identity
// key, shorthands are many-to-one aliases. The registry is ground truth
// for shorthand resolution when supplied.
type Lecturers struct {
	entries map[string][]string // full name -> shorthand set, sorted
}

// NewLecturers builds a registry from a list of lecturer records.
func NewLecturers(records []model.Lecturer) *Lecturers {
	r := &Lecturers{entries: make(map[string][]string)}
	for _, rec := range records {
		r.add(rec.FullName, rec.Shorthands...)
	}
	return r
}

// LoadLecturers reads a lecturers.json file into a registry.
func LoadLecturers(path string) (*Lecturers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lecturers file: %w", err)
	}

	var records []model.Lecturer
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse lecturers JSON: %w", err)
	}

	return NewLecturers(records), nil
}

// add unions shorthands into the entry for fullName, keeping the set sorted.
func (r *Lecturers) add(fullName string, shorthands ...string) {
	existing := r.entries[fullName]
	for _, s := range shorthands {
		if s == "" {
			continue
		}
		found := false
		for _, e := range existing {
			if e == s {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, s)
		}
	}
	sort.Strings(existing)
	r.entries[fullName] = existing
}

// Add records a shorthand for a full name.
func (r *Lecturers) Add(fullName string, shorthands ...string) {
	r.add(fullName, shorthands...)
}

// Len returns the number of distinct lecturers.
func (r *Lecturers) Len() int {
	return len(r.entries)
}

// Records returns the registry as a sorted list of lecturer records.
func (r *Lecturers) Records() []model.Lecturer {
	records := make([]model.Lecturer, 0, len(r.entries))
	for name, shorts := range r.entries {
		records = append(records, model.Lecturer{
			FullName:   name,
			Shorthands: append([]string(nil), shorts...),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].FullName < records[j].FullName
	})
	return records
}

// Index inverts the registry: shorthand -> full names claiming it. A
// shorthand mapping to more than one name is a collision the resolver
// must report, never silently pick from.
func (r *Lecturers) Index() map[string][]string {
	idx := make(map[string][]string)
	for name, shorts := range r.entries {
		for _, s := range shorts {
			idx[s] = append(idx[s], name)
		}
	}
	for s := range idx {
		sort.Strings(idx[s])
	}
	return idx
}

// Collisions returns every shorthand claimed by more than one full name.
func (r *Lecturers) Collisions() map[string][]string {
	collisions := make(map[string][]string)
	for short, names := range r.Index() {
		if len(names) > 1 {
			collisions[short] = names
		}
	}
	return collisions
}

// Merge unions another registry into this one. The operation is
// idempotent, monotonic and order-independent: existing mappings are
// never deleted or renamed, only appended, so references from
// already-published historical semesters stay valid.
func (r *Lecturers) Merge(other *Lecturers) {
	if other == nil {
		return
	}
	for name, shorts := range other.entries {
		r.add(name, shorts...)
	}
}

// SaveLecturers writes the registry to a lecturers.json file.
func SaveLecturers(r *Lecturers, path string) error {
	data, err := json.MarshalIndent(r.Records(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize lecturers: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write lecturers file: %w", err)
	}

	return nil
}
