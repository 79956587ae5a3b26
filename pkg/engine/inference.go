package engine

import (
	"fmt"
	"strings"

	"github.com/noahvogt/modulplaner-backend/pkg/config"
	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// inferStrategy is one named heuristic for assigning a degree program to
// a class. A strategy either decides or has no opinion; strategies are
// tried in order and the first decision wins.
type inferStrategy struct {
	name  string
	apply func(headerLine, className string, previous []model.PageMetadata) (model.DegreeProgram, model.Confidence, bool)
}

// Inferencer assigns degree programs to classes whose source header
// omits an explicit label. The mixed-context disambiguation table comes
// from external configuration, not derived logic.
type Inferencer struct {
	cfg        *config.EngineConfig
	diags      *Collector
	strategies []inferStrategy
}

// NewInferencer builds the inference cascade.
func NewInferencer(cfg *config.EngineConfig, diags *Collector) *Inferencer {
	return &Inferencer{
		cfg:        cfg,
		diags:      diags,
		strategies: inferStrategies(),
	}
}

func inferStrategies() []inferStrategy {
	return []inferStrategy{
		{
			// The class "alle" is degree-program-agnostic no matter
			// what the surrounding headers say.
			name: "agnostic-class",
			apply: func(headerLine, className string, previous []model.PageMetadata) (model.DegreeProgram, model.Confidence, bool) {
				if className == model.AgnosticClassName {
					return model.ProgramAgnostic, model.ConfidenceExplicit, true
				}
				return "", "", false
			},
		},
		{
			// A header naming all three context programs marks a mixed
			// table; the marker is resolved per module later.
			name: "mixed-context-header",
			apply: func(headerLine, className string, previous []model.PageMetadata) (model.DegreeProgram, model.Confidence, bool) {
				if strings.Contains(headerLine, "Kontext BWL") &&
					strings.Contains(headerLine, "Kommunikation") &&
					strings.Contains(headerLine, "GSW") {
					return model.MixedBWLGSWKomm, model.ConfidenceExplicit, true
				}
				return "", "", false
			},
		},
		{
			name: "header-label",
			apply: func(headerLine, className string, previous []model.PageMetadata) (model.DegreeProgram, model.Confidence, bool) {
				for _, program := range model.AllDegreePrograms {
					if strings.Contains(headerLine, string(program)) {
						return program, model.ConfidenceExplicit, true
					}
				}
				return "", "", false
			},
		},
		{
			// A truncated header drops the last rune of the class name;
			// the untruncated page seen earlier carries the program.
			name: "previous-page-truncation",
			apply: func(headerLine, className string, previous []model.PageMetadata) (model.DegreeProgram, model.Confidence, bool) {
				if len(className) < 2 {
					return "", "", false
				}
				for _, meta := range previous {
					if meta.ClassName == className[:len(className)-1] {
						return meta.DegreeProgram, model.ConfidenceInferred, true
					}
				}
				return "", "", false
			},
		},
		{
			// Parallel cohorts double the trailing letter (e.g. "1a",
			// "1aa"); match on the stem.
			name: "doubled-suffix",
			apply: func(headerLine, className string, previous []model.PageMetadata) (model.DegreeProgram, model.Confidence, bool) {
				if len(className) < 3 || className[len(className)-1] != className[len(className)-2] {
					return "", "", false
				}
				stem := className[:len(className)-2]
				for _, meta := range previous {
					if strings.Contains(meta.ClassName, stem) {
						return meta.DegreeProgram, model.ConfidenceInferred, true
					}
				}
				return "", "", false
			},
		},
		{
			// Class naming convention: the second character encodes the
			// program for the bachelor cohorts.
			name: "class-letter",
			apply: func(headerLine, className string, previous []model.PageMetadata) (model.DegreeProgram, model.Confidence, bool) {
				if len(className) >= 3 && className[1:3] == "iC" {
					return model.ICompetence, model.ConfidenceInferred, true
				}
				if len(className) >= 4 && className[1:4] == "MSE" {
					return model.ProgramAgnostic, model.ConfidenceInferred, true
				}
				if len(className) >= 2 {
					switch className[1] {
					case 'D':
						return model.DataScience, model.ConfidenceInferred, true
					case 'I':
						return model.Informatik, model.ConfidenceInferred, true
					}
				}
				return "", "", false
			},
		},
		{
			// Last resort: reuse the nearest preceding header's program.
			name: "nearest-preceding-header",
			apply: func(headerLine, className string, previous []model.PageMetadata) (model.DegreeProgram, model.Confidence, bool) {
				if len(previous) == 0 {
					return "", "", false
				}
				return previous[len(previous)-1].DegreeProgram, model.ConfidenceInferred, true
			},
		},
	}
}

// Infer assigns a degree program to a class from its header line, the
// explicit disambiguation rules and the metadata of preceding pages.
// When every strategy falls through the class is treated as agnostic and
// a low-confidence diagnostic is recorded.
func (inf *Inferencer) Infer(headerLine, className string, previous []model.PageMetadata) (model.DegreeProgram, model.Confidence) {
	for _, s := range inf.strategies {
		program, confidence, ok := s.apply(headerLine, className, previous)
		if !ok {
			continue
		}
		if confidence == model.ConfidenceInferred {
			inf.diags.Record(model.Diagnostic{
				Kind:     model.DiagLowConfidenceProgram,
				Severity: model.SeverityInfo,
				Subject:  className,
				Message:  fmt.Sprintf("degree program %q for class %q inferred via %s heuristic", program, className, s.name),
			})
		}
		return program, confidence
	}

	inf.diags.Record(model.Diagnostic{
		Kind:     model.DiagLowConfidenceProgram,
		Severity: model.SeverityWarning,
		Subject:  className,
		Message:  fmt.Sprintf("no degree program found for class %q in %q, treating as agnostic", className, headerLine),
	})
	return model.ProgramAgnostic, model.ConfidenceInferred
}

// DisambiguateMixed resolves the mixed-context marker for one module via
// the configured shorthand-to-program table.
func (inf *Inferencer) DisambiguateMixed(program model.DegreeProgram, moduleShorthand string) (model.DegreeProgram, model.Confidence, bool) {
	if program != model.MixedBWLGSWKomm {
		return program, "", false
	}
	if label, ok := inf.cfg.MixedContextPrograms[moduleShorthand]; ok {
		return model.DegreeProgram(label), model.ConfidenceDisambiguated, true
	}
	return model.DegreeProgram(inf.cfg.MixedContextDefault), model.ConfidenceDisambiguated, true
}
