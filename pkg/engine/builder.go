package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
	"github.com/noahvogt/modulplaner-backend/pkg/registry"
)

// classInfo is the page-level degree-program assignment for one class.
type classInfo struct {
	program    model.DegreeProgram
	confidence model.Confidence
}

// Builder folds the stream of tokenized per-cell drafts into the entity
// graph: module runs deduplicated per (module, class, period) with their
// timeslot sets unioned, lecturer references frozen at build time, and
// conflicting modules excluded rather than guessed.
type Builder struct {
	diags      *Collector
	resolver   *Resolver
	inferencer *Inferencer
	catalog    *registry.ModuleCatalog

	runs     map[string]*model.ModuleRun
	runOrder []string
	slotSeen map[string]map[string]bool // run key -> timeslot signatures
	refSeen  map[string]map[string]bool // run key -> lecturer shorthands
	classes  map[string]classInfo

	knownLecturers   map[string]bool // resolved full names
	unresolvedBucket map[string]bool // raw shorthands without a resolution
	excludedModules  map[string]bool // conflicting definitions
}

// NewBuilder creates a builder. The module catalog is optional; when
// present its conflicting definitions are surfaced immediately and the
// affected modules are excluded from output.
func NewBuilder(resolver *Resolver, inferencer *Inferencer, catalog *registry.ModuleCatalog, diags *Collector) *Builder {
	b := &Builder{
		diags:            diags,
		resolver:         resolver,
		inferencer:       inferencer,
		catalog:          catalog,
		runs:             make(map[string]*model.ModuleRun),
		slotSeen:         make(map[string]map[string]bool),
		refSeen:          make(map[string]map[string]bool),
		classes:          make(map[string]classInfo),
		knownLecturers:   make(map[string]bool),
		unresolvedBucket: make(map[string]bool),
		excludedModules:  make(map[string]bool),
	}

	if catalog != nil {
		shorts := make([]string, 0, len(catalog.Conflicts()))
		for short := range catalog.Conflicts() {
			shorts = append(shorts, short)
		}
		sort.Strings(shorts)
		for _, short := range shorts {
			b.excludedModules[short] = true
			b.diags.Record(model.Diagnostic{
				Kind:     model.DiagConflictingDef,
				Severity: model.SeverityError,
				Subject:  short,
				Message:  fmt.Sprintf("module shorthand %q has conflicting canonical definitions, excluded from output", short),
			})
		}
	}

	return b
}

func runKey(class, module, period string) string {
	return class + "|" + module + "|" + period
}

// Add folds one draft into the graph. The timeslot comes from the cell's
// grid position via the supplied grid.
func (b *Builder) Add(draft *Draft, meta model.PageMetadata, grid *Grid) error {
	weekday, err := grid.Weekday(draft.Cell.Col)
	if err != nil {
		return fmt.Errorf("cell on page %d: %w", draft.Cell.Page, err)
	}
	start, end, err := grid.Span(draft.Cell.Row, draft.Cell.RowSpan)
	if err != nil {
		return fmt.Errorf("cell on page %d: %w", draft.Cell.Page, err)
	}

	b.recordClass(meta)

	program := meta.DegreeProgram
	if resolved, _, ok := b.inferencer.DisambiguateMixed(program, draft.ModuleShorthand); ok {
		program = resolved
	}

	period := meta.Semester.Label()
	key := runKey(meta.ClassName, draft.ModuleShorthand, period)

	run, exists := b.runs[key]
	if !exists {
		run = &model.ModuleRun{
			ID:              fmt.Sprintf("%s-%s-%s", meta.ClassName, draft.ModuleShorthand, period),
			ModuleShorthand: draft.ModuleShorthand,
			ClassName:       meta.ClassName,
			Period:          period,
			DegreeProgram:   program,
			TeachingType:    draft.TeachingType,
		}
		b.runs[key] = run
		b.runOrder = append(b.runOrder, key)
		b.slotSeen[key] = make(map[string]bool)
		b.refSeen[key] = make(map[string]bool)
	}

	slot := model.Timeslot{
		Weekday:      weekday,
		StartSeconds: start,
		EndSeconds:   end,
		Rooms:        append([]string(nil), draft.Rooms...),
		TeachingType: draft.TeachingType,
		Provenance:   model.ClassSourceOnly,
	}
	// Overlapping but not identical timeslot sets for the same key mean
	// additional timeslots for the same run, never a new run.
	if !b.slotSeen[key][slot.Signature()] {
		b.slotSeen[key][slot.Signature()] = true
		run.Timeslots = append(run.Timeslots, slot)
	}

	for _, room := range draft.Rooms {
		if !contains(run.Rooms, room) {
			run.Rooms = append(run.Rooms, room)
		}
	}
	if !containsInt(run.Pages, draft.Cell.Page) {
		run.Pages = append(run.Pages, draft.Cell.Page)
	}
	for _, other := range draft.ClassNames {
		if other != meta.ClassName && !contains(run.PartOfOtherClasses, other) {
			run.PartOfOtherClasses = append(run.PartOfOtherClasses, other)
		}
	}

	b.addLecturerRefs(run, key, draft.LecturerShorthands)

	return nil
}

// addLecturerRefs resolves and attaches lecturer references. Each run
// keeps whatever mapping was valid when the reference was built; the
// builder never rewrites already-built references.
func (b *Builder) addLecturerRefs(run *model.ModuleRun, key string, shorthands []string) {
	for _, raw := range shorthands {
		if b.refSeen[key][raw] {
			continue
		}
		b.refSeen[key][raw] = true

		resolution := b.resolver.Resolve(raw)

		ref := model.LecturerRef{
			Shorthand: raw,
			Status:    resolution.Status,
			Verified:  resolution.Verified,
		}
		switch resolution.Status {
		case model.StatusResolved:
			ref.FullName = resolution.FullName
			b.knownLecturers[resolution.FullName] = true
		case model.StatusAmbiguous, model.StatusUnresolved:
			b.unresolvedBucket[raw] = true
		default:
			// A resolution outside the three-way taxonomy has no bucket
			// to land in; keeping such a reference would dangle.
			b.diags.Record(model.Diagnostic{
				Kind:     model.DiagDanglingLecturerRef,
				Severity: model.SeverityError,
				Subject:  raw,
				Message:  fmt.Sprintf("module run %s references lecturer shorthand %q with no resolution bucket", run.ID, raw),
			})
			continue
		}

		run.Lecturers = append(run.Lecturers, ref)
		run.LecturerShorthands = append(run.LecturerShorthands, raw)
	}
}

func (b *Builder) recordClass(meta model.PageMetadata) {
	if _, ok := b.classes[meta.ClassName]; !ok {
		b.classes[meta.ClassName] = classInfo{
			program:    meta.DegreeProgram,
			confidence: meta.Confidence,
		}
	}
}

// Runs exposes the builder's module runs in insertion order. Used by the
// cross-source reconciler before Build.
func (b *Builder) Runs() []*model.ModuleRun {
	runs := make([]*model.ModuleRun, 0, len(b.runOrder))
	for _, key := range b.runOrder {
		runs = append(runs, b.runs[key])
	}
	return runs
}

// Build assembles the final class records. Runs of excluded modules are
// dropped; cross-class memberships with identical schedules are
// cross-linked; classes and their runs are sorted for stable output.
func (b *Builder) Build() []model.ClassRecord {
	b.linkSharedRuns()

	byClass := make(map[string][]model.ModuleRun)
	for _, key := range b.runOrder {
		run := b.runs[key]
		if b.excludedModules[run.ModuleShorthand] {
			continue
		}
		sortTimeslots(run.Timeslots)
		run.TeachingType = runTeachingType(run.Timeslots, run.TeachingType)
		sort.Strings(run.LecturerShorthands)
		sort.Strings(run.PartOfOtherClasses)
		sort.Ints(run.Pages)
		byClass[run.ClassName] = append(byClass[run.ClassName], *run)
	}

	names := make([]string, 0, len(byClass))
	for name := range byClass {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]model.ClassRecord, 0, len(names))
	for _, name := range names {
		info := b.classes[name]
		runs := byClass[name]
		sort.Slice(runs, func(i, j int) bool {
			return runs[i].ID < runs[j].ID
		})
		records = append(records, model.ClassRecord{
			Name:          name,
			DegreeProgram: info.program,
			Confidence:    info.confidence,
			Modules:       runs,
		})
	}
	return records
}

// linkSharedRuns fills part_of_other_classes for runs of the same module
// and period that share an identical timeslot signature under different
// classes.
func (b *Builder) linkSharedRuns() {
	groups := make(map[string][]*model.ModuleRun)
	for _, key := range b.runOrder {
		run := b.runs[key]
		sigs := make([]string, 0, len(run.Timeslots))
		for _, slot := range run.Timeslots {
			sigs = append(sigs, slot.Signature())
		}
		sort.Strings(sigs)
		group := run.ModuleShorthand + "|" + run.Period + "|" + strings.Join(sigs, ",")
		groups[group] = append(groups[group], run)
	}

	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		for _, run := range group {
			for _, other := range group {
				if other.ClassName != run.ClassName && !contains(run.PartOfOtherClasses, other.ClassName) {
					run.PartOfOtherClasses = append(run.PartOfOtherClasses, other.ClassName)
				}
			}
		}
	}
}

// runTeachingType derives the run-level teaching type from its timeslots:
// a uniform slot set keeps its delivery mode, a mix of modes is hybrid.
func runTeachingType(slots []model.Timeslot, fallback model.TeachingType) model.TeachingType {
	if len(slots) == 0 {
		return fallback
	}
	first := slots[0].TeachingType
	for _, slot := range slots[1:] {
		if slot.TeachingType != first {
			return model.Hybrid
		}
	}
	return first
}

func sortTimeslots(slots []model.Timeslot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Weekday != slots[j].Weekday {
			return slots[i].Weekday < slots[j].Weekday
		}
		return slots[i].StartSeconds < slots[j].StartSeconds
	})
}

func containsInt(list []int, n int) bool {
	for _, e := range list {
		if e == n {
			return true
		}
	}
	return false
}
