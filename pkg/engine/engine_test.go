package engine

import (
	"errors"
	"testing"

	"github.com/noahvogt/modulplaner-backend/pkg/config"
	"github.com/noahvogt/modulplaner-backend/pkg/model"
	"github.com/noahvogt/modulplaner-backend/pkg/registry"
)

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Version: model.SnapshotVersion,
		Pages: []model.PageData{
			{
				Number: 1,
				Header: []string{
					"Stundenplan Herbstsemester 2025",
					"Exportiert am 2.9.2025 um 14:30 Uhr",
					"BSc-INF1a Informatik Vollzeit",
				},
				Cells: []model.Cell{
					{Text: "InfoSec BSc-INF1a\nMM PJ\n2.14", Page: 1, Row: 0, Col: 0, RowSpan: 2},
					{Text: "webeng BSc-INF1a\nMM\nOnline", Page: 1, Row: 4, Col: 2, RowSpan: 1},
					{Text: "   ", Page: 1, Row: 5, Col: 1, RowSpan: 1},
				},
			},
		},
	}
}

func TestEngineRun_EndToEnd(t *testing.T) {
	e := New(config.Default(), Options{
		Lecturers: registry.NewLecturers([]model.Lecturer{
			{FullName: "Max Muster", Shorthands: []string{"MM"}},
			{FullName: "Petra Jung", Shorthands: []string{"PJ"}},
		}),
	})

	result, err := e.Run(testSnapshot(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Classes) != 1 {
		t.Fatalf("expected one class record, got %d", len(result.Classes))
	}
	record := result.Classes[0]
	if record.Name != "BSc-INF1a" {
		t.Errorf("expected class BSc-INF1a, got %q", record.Name)
	}
	if record.DegreeProgram != model.Informatik {
		t.Errorf("expected program Informatik, got %q", record.DegreeProgram)
	}
	if record.Confidence != model.ConfidenceExplicit {
		t.Errorf("expected explicit confidence, got %q", record.Confidence)
	}
	if len(record.Modules) != 2 {
		t.Fatalf("expected two module runs, got %d", len(record.Modules))
	}

	var infoSec *model.ModuleRun
	for i := range record.Modules {
		if record.Modules[i].ModuleShorthand == "InfoSec" {
			infoSec = &record.Modules[i]
		}
	}
	if infoSec == nil {
		t.Fatal("expected an InfoSec run")
	}
	if infoSec.ID != "BSc-INF1a-InfoSec-HS2025" {
		t.Errorf("unexpected run id %q", infoSec.ID)
	}
	if len(infoSec.Timeslots) != 1 {
		t.Fatalf("expected one timeslot, got %d", len(infoSec.Timeslots))
	}
	slot := infoSec.Timeslots[0]
	if slot.Weekday != model.Montag || slot.StartSeconds != 29700 || slot.EndSeconds != 36000 {
		t.Errorf("unexpected timeslot %+v", slot)
	}
	if slot.Provenance != model.ClassSourceOnly {
		t.Errorf("without a second source provenance must be class-source-only, got %q", slot.Provenance)
	}

	// The whitespace cell is skipped, not fatal.
	skips := 0
	for _, d := range result.Diagnostics {
		if d.Kind == model.DiagSkippedCell {
			skips++
		}
	}
	if skips != 1 {
		t.Errorf("expected one skipped-cell diagnostic, got %d", skips)
	}
}

func TestEngineRun_ConflictingCatalogExcludesEveryRun(t *testing.T) {
	catalog := registry.NewModuleCatalog()
	catalog.Define(model.Module{Shorthand: "InfoSec", ID: "I-404", Name: "Information Security", ECTS: 6})
	catalog.Define(model.Module{Shorthand: "InfoSec", ID: "I-404", Name: "Information Security", ECTS: 3})

	e := New(config.Default(), Options{Modules: catalog})

	// A second page gives the conflicting shorthand a run under another
	// class; the exclusion must cover both, never just the first.
	snap := testSnapshot()
	snap.Pages = append(snap.Pages, model.PageData{
		Number: 2,
		Header: []string{
			"Stundenplan Herbstsemester 2025",
			"Exportiert am 2.9.2025 um 14:30 Uhr",
			"BSc-INF1b Informatik Vollzeit",
		},
		Cells: []model.Cell{
			{Text: "InfoSec BSc-INF1b\nMM\n2.14", Page: 2, Row: 7, Col: 4, RowSpan: 1},
		},
	})

	result, err := e.Run(snap, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	survivors := 0
	for _, record := range result.Classes {
		for _, run := range record.Modules {
			if run.ModuleShorthand == "InfoSec" {
				t.Errorf("class %s still carries a run of the conflicting module: %s", record.Name, run.ID)
			}
			if run.ModuleShorthand == "webeng" {
				survivors++
			}
		}
	}
	if survivors != 1 {
		t.Errorf("expected the non-conflicting webeng run to survive, got %d", survivors)
	}

	conflicts := 0
	for _, d := range result.Diagnostics {
		if d.Kind == model.DiagConflictingDef {
			conflicts++
		}
	}
	if conflicts != 1 {
		t.Errorf("expected one conflicting-definition diagnostic, got %d", conflicts)
	}
}

func TestEngineRun_EmptySnapshotIsStructuralFailure(t *testing.T) {
	e := New(config.Default(), Options{})

	for _, snap := range []*model.Snapshot{nil, {Version: model.SnapshotVersion}} {
		_, err := e.Run(snap, nil)
		if !errors.Is(err, ErrStructuralFailure) {
			t.Errorf("expected a structural failure, got %v", err)
		}
	}
}

func TestEngineRun_UnparseableHeadersOnlyIsStructuralFailure(t *testing.T) {
	e := New(config.Default(), Options{})

	snap := &model.Snapshot{
		Version: model.SnapshotVersion,
		Pages: []model.PageData{
			{Number: 1, Header: []string{"garbage"}, Cells: []model.Cell{{Text: "a b\nc"}}},
		},
	}

	_, err := e.Run(snap, nil)
	if !errors.Is(err, ErrStructuralFailure) {
		t.Errorf("expected a structural failure when no page parses, got %v", err)
	}
}

func TestEngineRun_WithLecturerTimetableReconciles(t *testing.T) {
	e := New(config.Default(), Options{})

	lecturerSnap := &model.Snapshot{
		Version: model.SnapshotVersion,
		Pages: []model.PageData{
			{
				Number: 1,
				Cells: []model.Cell{
					// Confirms InfoSec's Monday morning slot.
					{Text: "InfoSec\nMM\n2.14", Page: 1, Row: 0, Col: 0, RowSpan: 2},
				},
			},
		},
	}

	result, err := e.Run(testSnapshot(), lecturerSnap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, record := range result.Classes {
		for _, run := range record.Modules {
			for _, slot := range run.Timeslots {
				want := model.ClassSourceOnly
				if run.ModuleShorthand == "InfoSec" {
					want = model.BothSources
				}
				if slot.Provenance != want {
					t.Errorf("run %s slot %s: expected provenance %q, got %q", run.ID, slot.Signature(), want, slot.Provenance)
				}
			}
		}
	}
}
