package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/noahvogt/modulplaner-backend/pkg/config"
	"github.com/noahvogt/modulplaner-backend/pkg/model"
	"github.com/noahvogt/modulplaner-backend/pkg/registry"
)

// ErrStructuralFailure is returned when the raw cell stream is empty or
// lacks any recognizable table structure. It is the only fatal error of
// a run; everything else is collected as diagnostics.
var ErrStructuralFailure = errors.New("no usable table structure in source")

// Options are the optional collaborators of an engine run.
type Options struct {
	// Logger receives engine progress; nil means slog.Default().
	Logger *slog.Logger
	// Lecturers is the trusted lecturers registry; nil degrades
	// resolution to best-effort unverified.
	Lecturers *registry.Lecturers
	// Modules is the module catalog supplying canonical module fields.
	Modules *registry.ModuleCatalog
}

// Engine turns a raw cell snapshot into validated class records plus a
// diagnostics report. It is single-threaded and synchronous: one pass
// over a finite, immutable cell sequence, partial-success by design.
type Engine struct {
	cfg       *config.EngineConfig
	log       *slog.Logger
	lecturers *registry.Lecturers
	catalog   *registry.ModuleCatalog
}

// New creates an engine.
func New(cfg *config.EngineConfig, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		cfg:       cfg,
		log:       log,
		lecturers: opts.Lecturers,
		catalog:   opts.Modules,
	}
}

// Result is the outcome of a run: the best-effort artifact plus the
// accompanying diagnostics report.
type Result struct {
	Classes     []model.ClassRecord
	Pages       []model.PageMetadata
	Diagnostics []model.Diagnostic
}

// Run extracts and normalizes the class timetable snapshot. When a
// lecturer timetable snapshot is supplied as a second source, the two
// independently derived timeslot sets are reconciled with provenance
// tags. Only a structural failure aborts the run.
func (e *Engine) Run(classSnap, lecturerSnap *model.Snapshot) (*Result, error) {
	if classSnap == nil || classSnap.CellCount() == 0 {
		return nil, fmt.Errorf("class timetable: %w", ErrStructuralFailure)
	}

	grid, err := NewGrid(e.cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid timeslot grid: %w", err)
	}

	diags := NewCollector()
	tokenizer := NewTokenizer(e.cfg)
	inferencer := NewInferencer(e.cfg, diags)
	resolver := NewResolver(e.lecturers, diags)
	builder := NewBuilder(resolver, inferencer, e.catalog, diags)

	var pages []model.PageMetadata
	drafts := 0

	for _, page := range classSnap.Pages {
		meta, err := ParseHeader(page.Header, pages, inferencer)
		if err != nil {
			diags.Record(model.Diagnostic{
				Kind:     model.DiagPageHeader,
				Severity: model.SeverityWarning,
				Page:     page.Number,
				Message:  fmt.Sprintf("unparseable page header, page skipped: %v", err),
			})
			continue
		}
		pages = append(pages, meta)
		e.log.Debug("parsed page header",
			"page", page.Number,
			"class", meta.ClassName,
			"degree_program", string(meta.DegreeProgram),
			"confidence", string(meta.Confidence))

		for _, cell := range page.Cells {
			draft, skipped := tokenizer.Tokenize(cell, meta.ClassName)
			if skipped != nil {
				diags.Record(model.Diagnostic{
					Kind:     model.DiagSkippedCell,
					Severity: model.SeverityInfo,
					Page:     cell.Page,
					Subject:  string(skipped.Reason),
					Message:  fmt.Sprintf("cell at row %d col %d skipped: %s", cell.Row, cell.Col, skipped.Reason),
				})
				continue
			}
			if err := builder.Add(draft, meta, grid); err != nil {
				diags.Record(model.Diagnostic{
					Kind:     model.DiagSkippedCell,
					Severity: model.SeverityWarning,
					Page:     cell.Page,
					Subject:  draft.ModuleShorthand,
					Message:  fmt.Sprintf("cell outside grid, skipped: %v", err),
				})
				continue
			}
			drafts++
		}
	}

	if len(pages) == 0 || drafts == 0 {
		return nil, fmt.Errorf("class timetable: %w", ErrStructuralFailure)
	}

	if lecturerSnap != nil {
		facts := e.extractFacts(lecturerSnap, grid, tokenizer, diags)
		NewReconciler(diags).Reconcile(builder.Runs(), facts)
	}

	classes := builder.Build()

	e.log.Info("extraction complete",
		"pages", len(pages),
		"classes", len(classes),
		"cells", drafts,
		"diagnostics", len(diags.All()))

	return &Result{
		Classes:     classes,
		Pages:       pages,
		Diagnostics: diags.All(),
	}, nil
}

// extractFacts derives (module, timeslot) facts from the lecturer
// timetable snapshot. The lecturer source has no class context, so only
// the module shorthand and the grid position are taken from each cell.
func (e *Engine) extractFacts(snap *model.Snapshot, grid *Grid, tokenizer *Tokenizer, diags *Collector) []SlotFact {
	var facts []SlotFact
	for _, page := range snap.Pages {
		for _, cell := range page.Cells {
			draft, skipped := tokenizer.Tokenize(cell, "")
			if skipped != nil {
				diags.Record(model.Diagnostic{
					Kind:     model.DiagSkippedCell,
					Severity: model.SeverityInfo,
					Page:     cell.Page,
					Subject:  string(skipped.Reason),
					Message:  fmt.Sprintf("lecturer timetable cell at row %d col %d skipped: %s", cell.Row, cell.Col, skipped.Reason),
				})
				continue
			}
			weekday, err := grid.Weekday(cell.Col)
			if err != nil {
				continue
			}
			start, end, err := grid.Span(cell.Row, cell.RowSpan)
			if err != nil {
				continue
			}
			facts = append(facts, SlotFact{
				ModuleShorthand: draft.ModuleShorthand,
				Timeslot: model.Timeslot{
					Weekday:      weekday,
					StartSeconds: start,
					EndSeconds:   end,
					Rooms:        draft.Rooms,
					TeachingType: draft.TeachingType,
				},
			})
		}
	}
	return facts
}
