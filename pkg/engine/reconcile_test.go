package engine

import (
	"testing"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

func TestReconcile_ProvenanceTagging(t *testing.T) {
	diags := NewCollector()
	r := NewReconciler(diags)

	run := &model.ModuleRun{
		ID:              "1Ia-webeng-HS2025",
		ModuleShorthand: "webeng",
		ClassName:       "1Ia",
		Timeslots: []model.Timeslot{
			{Weekday: model.Montag, StartSeconds: 29700, EndSeconds: 32400},
			{Weekday: model.Mittwoch, StartSeconds: 37800, EndSeconds: 40500},
		},
	}

	facts := []SlotFact{
		// Confirms the Monday slot.
		{ModuleShorthand: "webeng", Timeslot: model.Timeslot{Weekday: model.Montag, StartSeconds: 29700, EndSeconds: 32400}},
		// A Friday slot only the lecturer timetable knows about.
		{ModuleShorthand: "webeng", Timeslot: model.Timeslot{Weekday: model.Freitag, StartSeconds: 29700, EndSeconds: 32400}},
	}

	r.Reconcile([]*model.ModuleRun{run}, facts)

	if len(run.Timeslots) != 3 {
		t.Fatalf("no timeslot may be dropped and the lecturer-only slot must be added, got %d slots", len(run.Timeslots))
	}

	byProvenance := make(map[model.Provenance]int)
	for _, slot := range run.Timeslots {
		byProvenance[slot.Provenance]++
	}
	if byProvenance[model.BothSources] != 1 {
		t.Errorf("expected one slot confirmed by both sources, got %d", byProvenance[model.BothSources])
	}
	if byProvenance[model.ClassSourceOnly] != 1 {
		t.Errorf("expected one class-source-only slot, got %d", byProvenance[model.ClassSourceOnly])
	}
	if byProvenance[model.LecturerSourceOnly] != 1 {
		t.Errorf("expected one lecturer-source-only slot, got %d", byProvenance[model.LecturerSourceOnly])
	}

	if diags.Count(model.DiagCrossSourceMismatch) != 2 {
		t.Errorf("expected two mismatch diagnostics, got %d", diags.Count(model.DiagCrossSourceMismatch))
	}
}

func TestReconcile_LecturerOnlySlotAttachesToEveryRun(t *testing.T) {
	diags := NewCollector()
	r := NewReconciler(diags)

	runA := &model.ModuleRun{ID: "1Ia-mgli-HS2025", ModuleShorthand: "mgli", ClassName: "1Ia"}
	runB := &model.ModuleRun{ID: "1Ib-mgli-HS2025", ModuleShorthand: "mgli", ClassName: "1Ib"}

	facts := []SlotFact{
		{ModuleShorthand: "mgli", Timeslot: model.Timeslot{Weekday: model.Dienstag, StartSeconds: 29700, EndSeconds: 32400}},
	}

	r.Reconcile([]*model.ModuleRun{runA, runB}, facts)

	// The lecturer source has no class context, so the slot goes to both.
	for _, run := range []*model.ModuleRun{runA, runB} {
		if len(run.Timeslots) != 1 {
			t.Fatalf("expected the lecturer-only slot on %s, got %d slots", run.ID, len(run.Timeslots))
		}
		if run.Timeslots[0].Provenance != model.LecturerSourceOnly {
			t.Errorf("expected lecturer-source-only provenance, got %q", run.Timeslots[0].Provenance)
		}
	}
}

func TestReconcile_FactForUnknownModuleReportsWithoutFabricating(t *testing.T) {
	diags := NewCollector()
	r := NewReconciler(diags)

	run := &model.ModuleRun{ID: "1Ia-webeng-HS2025", ModuleShorthand: "webeng", ClassName: "1Ia"}

	facts := []SlotFact{
		{ModuleShorthand: "ghost", Timeslot: model.Timeslot{Weekday: model.Montag, StartSeconds: 29700, EndSeconds: 32400}},
	}

	r.Reconcile([]*model.ModuleRun{run}, facts)

	if len(run.Timeslots) != 0 {
		t.Errorf("a fact for another module must not touch this run, got %v", run.Timeslots)
	}
	if diags.Count(model.DiagCrossSourceMismatch) != 1 {
		t.Errorf("expected one mismatch diagnostic for the unknown module, got %d", diags.Count(model.DiagCrossSourceMismatch))
	}
}
