package engine

import (
	"fmt"
	"sort"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// SlotFact is one (module, timeslot) fact derived from the lecturer
// timetable, the independently produced second source.
type SlotFact struct {
	ModuleShorthand string
	Timeslot        model.Timeslot
}

// Reconciler merges class-timetable-derived runs with lecturer-timetable
// facts. It favors completeness: a timeslot is never dropped because one
// source is silent about it, since silence is common and not
// authoritative. Disagreements become provenance tags and diagnostics.
type Reconciler struct {
	diags *Collector
}

// NewReconciler returns a reconciler reporting into the collector.
func NewReconciler(diags *Collector) *Reconciler {
	return &Reconciler{diags: diags}
}

// Reconcile tags every run timeslot with its provenance and appends
// lecturer-source-only timeslots to the matching runs. The lecturer
// source does not name classes, so a lecturer-only slot attaches to
// every run of its module; a fact for a module with no run at all is
// surfaced as a mismatch without fabricating a run.
func (r *Reconciler) Reconcile(runs []*model.ModuleRun, facts []SlotFact) {
	factSigs := make(map[string]map[string]model.Timeslot) // module -> signature -> slot
	for _, fact := range facts {
		if factSigs[fact.ModuleShorthand] == nil {
			factSigs[fact.ModuleShorthand] = make(map[string]model.Timeslot)
		}
		factSigs[fact.ModuleShorthand][fact.Timeslot.Signature()] = fact.Timeslot
	}

	runsByModule := make(map[string][]*model.ModuleRun)
	for _, run := range runs {
		runsByModule[run.ModuleShorthand] = append(runsByModule[run.ModuleShorthand], run)
	}

	matched := make(map[string]map[string]bool) // module -> signature -> seen in class source
	for _, run := range runs {
		if matched[run.ModuleShorthand] == nil {
			matched[run.ModuleShorthand] = make(map[string]bool)
		}
		for i := range run.Timeslots {
			slot := &run.Timeslots[i]
			sig := slot.Signature()
			matched[run.ModuleShorthand][sig] = true
			if _, inLecturerSource := factSigs[run.ModuleShorthand][sig]; inLecturerSource {
				slot.Provenance = model.BothSources
			} else {
				slot.Provenance = model.ClassSourceOnly
				r.diags.Record(model.Diagnostic{
					Kind:     model.DiagCrossSourceMismatch,
					Severity: model.SeverityInfo,
					Subject:  run.ModuleShorthand,
					Message:  fmt.Sprintf("timeslot %s %s of %s is absent from the lecturer timetable", slot.Weekday, clockRange(*slot), run.ID),
				})
			}
		}
	}

	modules := make([]string, 0, len(factSigs))
	for module := range factSigs {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	for _, module := range modules {
		sigs := make([]string, 0, len(factSigs[module]))
		for sig := range factSigs[module] {
			sigs = append(sigs, sig)
		}
		sort.Strings(sigs)

		for _, sig := range sigs {
			if matched[module][sig] {
				continue
			}
			slot := factSigs[module][sig]
			slot.Provenance = model.LecturerSourceOnly

			moduleRuns := runsByModule[module]
			if len(moduleRuns) == 0 {
				r.diags.Record(model.Diagnostic{
					Kind:     model.DiagCrossSourceMismatch,
					Severity: model.SeverityWarning,
					Subject:  module,
					Message:  fmt.Sprintf("lecturer timetable names timeslot %s %s for module %q which has no run in the class timetable", slot.Weekday, clockRange(slot), module),
				})
				continue
			}

			for _, run := range moduleRuns {
				run.Timeslots = append(run.Timeslots, slot)
			}
			r.diags.Record(model.Diagnostic{
				Kind:     model.DiagCrossSourceMismatch,
				Severity: model.SeverityWarning,
				Subject:  module,
				Message:  fmt.Sprintf("timeslot %s %s of module %q is absent from the class timetable, kept with lecturer-source provenance", slot.Weekday, clockRange(slot), module),
			})
		}
	}
}

func clockRange(slot model.Timeslot) string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		slot.StartSeconds/3600, slot.StartSeconds%3600/60,
		slot.EndSeconds/3600, slot.EndSeconds%3600/60)
}
