package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// ModuleCatalog maps module shorthands to their canonical definitions.
// Shorthand -> Module is a function: a second definition with different
// fields for the same shorthand is a data-integrity conflict, recorded
// and excluded rather than silently overwritten.
type ModuleCatalog struct {
	modules   map[string]model.Module
	conflicts map[string][]model.Module // shorthand -> rejected definitions
}

// NewModuleCatalog returns an empty catalog.
func NewModuleCatalog() *ModuleCatalog {
	return &ModuleCatalog{
		modules:   make(map[string]model.Module),
		conflicts: make(map[string][]model.Module),
	}
}

// LoadModules reads a modules.json catalog file.
func LoadModules(path string) (*ModuleCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read modules file: %w", err)
	}

	var records []model.Module
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse modules JSON: %w", err)
	}

	catalog := NewModuleCatalog()
	for _, m := range records {
		catalog.Define(m)
	}
	return catalog, nil
}

// LoadModulesHTML reads the module overview HTML table into a catalog.
func LoadModulesHTML(path string) (*ModuleCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read modules file: %w", err)
	}
	defer f.Close()

	catalog := NewModuleCatalog()
	if err := catalog.ImportHTML(f); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Define records a module definition. The first well-formed occurrence of
// a shorthand establishes the canonical fields; a later occurrence must
// match byte-for-byte or the shorthand is marked conflicting.
func (c *ModuleCatalog) Define(m model.Module) {
	if m.Shorthand == "" {
		return
	}
	existing, ok := c.modules[m.Shorthand]
	if !ok {
		c.modules[m.Shorthand] = m
		return
	}
	if existing != m {
		c.conflicts[m.Shorthand] = append(c.conflicts[m.Shorthand], m)
	}
}

// Lookup returns the canonical module for a shorthand. ok is false both
// for unknown shorthands and for conflicting ones.
func (c *ModuleCatalog) Lookup(shorthand string) (model.Module, bool) {
	if _, conflicting := c.conflicts[shorthand]; conflicting {
		return model.Module{}, false
	}
	m, ok := c.modules[shorthand]
	return m, ok
}

// Conflicts returns the shorthands with conflicting definitions and the
// rejected definitions for each.
func (c *ModuleCatalog) Conflicts() map[string][]model.Module {
	return c.conflicts
}

// Records returns the non-conflicting catalog entries sorted by shorthand.
func (c *ModuleCatalog) Records() []model.Module {
	records := make([]model.Module, 0, len(c.modules))
	for short, m := range c.modules {
		if _, conflicting := c.conflicts[short]; conflicting {
			continue
		}
		records = append(records, m)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Shorthand < records[j].Shorthand
	})
	return records
}

// ImportHTML parses a module overview HTML table into the catalog. The
// expected layout is one <tr> per module with cells in the order
// shorthand, id, name, ECTS and an optional link to the module webpage.
func (c *ModuleCatalog) ImportHTML(r io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to parse module table HTML: %w", err)
	}

	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return // header row or malformed
		}

		shorthand := strings.TrimSpace(cells.Eq(0).Text())
		id := strings.TrimSpace(cells.Eq(1).Text())
		name := strings.TrimSpace(cells.Eq(2).Text())
		ects, err := strconv.Atoi(strings.TrimSpace(cells.Eq(3).Text()))
		if err != nil {
			return
		}

		url := ""
		if href, exists := row.Find("a").First().Attr("href"); exists {
			url = href
		}

		c.Define(model.Module{
			Shorthand: shorthand,
			ID:        id,
			Name:      name,
			ECTS:      ects,
			URL:       url,
		})
	})

	return nil
}
