package engine

import (
	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// Collector accumulates diagnostics during a run. It is append-only: the
// engine never removes or rewrites a recorded diagnostic.
type Collector struct {
	diags []model.Diagnostic
}

// NewCollector returns an empty diagnostics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends a diagnostic.
func (c *Collector) Record(d model.Diagnostic) {
	c.diags = append(c.diags, d)
}

// All returns the recorded diagnostics in insertion order.
func (c *Collector) All() []model.Diagnostic {
	return c.diags
}

// Count returns how many diagnostics of the given kind were recorded.
func (c *Collector) Count(kind model.DiagnosticKind) int {
	n := 0
	for _, d := range c.diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
