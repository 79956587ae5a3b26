package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

func TestModuleCatalog_FirstDefinitionWins(t *testing.T) {
	catalog := NewModuleCatalog()
	first := model.Module{Shorthand: "webeng", ID: "I-101", Name: "Web Engineering", ECTS: 6}
	catalog.Define(first)
	catalog.Define(first) // identical redefinition is fine

	got, ok := catalog.Lookup("webeng")
	if !ok {
		t.Fatal("expected webeng to resolve")
	}
	if got != first {
		t.Errorf("expected the first definition, got %+v", got)
	}
	if len(catalog.Conflicts()) != 0 {
		t.Errorf("an identical redefinition is not a conflict, got %v", catalog.Conflicts())
	}
}

func TestModuleCatalog_ConflictExcludesShorthand(t *testing.T) {
	catalog := NewModuleCatalog()
	catalog.Define(model.Module{Shorthand: "webeng", ID: "I-101", Name: "Web Engineering", ECTS: 6})
	catalog.Define(model.Module{Shorthand: "webeng", ID: "I-101", Name: "Web Engineering", ECTS: 3})

	if _, ok := catalog.Lookup("webeng"); ok {
		t.Error("a conflicting shorthand must not resolve")
	}
	if len(catalog.Conflicts()["webeng"]) != 1 {
		t.Errorf("expected the rejected definition to be recorded, got %v", catalog.Conflicts())
	}
	if len(catalog.Records()) != 0 {
		t.Errorf("conflicting modules must be excluded from output, got %v", catalog.Records())
	}
}

func TestModuleCatalog_ImportHTML(t *testing.T) {
	html := `
<html><body><table>
  <tr><th>Kürzel</th><th>Nummer</th><th>Modul</th><th>ECTS</th></tr>
  <tr><td>webeng</td><td>I-101</td><td>Web Engineering</td><td>6</td>
      <td><a href="https://example.org/webeng">Details</a></td></tr>
  <tr><td>dbsys</td><td>I-201</td><td>Datenbanksysteme</td><td>6</td></tr>
  <tr><td>broken</td><td>I-999</td><td>Kaputt</td><td>n/a</td></tr>
</table></body></html>`

	catalog := NewModuleCatalog()
	if err := catalog.ImportHTML(strings.NewReader(html)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := catalog.Records()
	if len(records) != 2 {
		t.Fatalf("expected two importable rows, got %d", len(records))
	}

	webeng, ok := catalog.Lookup("webeng")
	if !ok {
		t.Fatal("expected webeng to resolve after import")
	}
	if webeng.ECTS != 6 || webeng.URL != "https://example.org/webeng" {
		t.Errorf("unexpected webeng record: %+v", webeng)
	}
}

func TestLoadModulesHTML(t *testing.T) {
	html := `
<html><body><table>
  <tr><td>webeng</td><td>I-101</td><td>Web Engineering</td><td>6</td></tr>
</table></body></html>`

	path := filepath.Join(t.TempDir(), "modules.html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		t.Fatalf("could not write test file: %v", err)
	}

	catalog, err := LoadModulesHTML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := catalog.Lookup("webeng"); !ok {
		t.Error("expected webeng to resolve after loading the HTML table")
	}
}

func TestLoadModulesHTML_MissingFileFails(t *testing.T) {
	if _, err := LoadModulesHTML(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
