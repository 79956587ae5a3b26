package model

// Severity grades a diagnostic for operator triage.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DiagnosticKind is the taxonomy of per-cell and per-entity issues the
// engine collects while producing a best-effort artifact.
type DiagnosticKind string

const (
	DiagSkippedCell          DiagnosticKind = "skipped_cell"
	DiagAmbiguousResolution  DiagnosticKind = "ambiguous_resolution"
	DiagConflictingDef       DiagnosticKind = "conflicting_definition"
	DiagCrossSourceMismatch  DiagnosticKind = "cross_source_mismatch"
	DiagUnresolvedLecturer   DiagnosticKind = "unresolved_lecturer"
	DiagLowConfidenceProgram DiagnosticKind = "low_confidence_degree_program"
	DiagDanglingLecturerRef  DiagnosticKind = "dangling_lecturer_reference"
	DiagPageHeader           DiagnosticKind = "page_header"
)

// Diagnostic is one structured issue record, consumed by operators.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	Severity   Severity       `json:"severity"`
	Message    string         `json:"message"`
	Page       int            `json:"page,omitempty"`
	Subject    string         `json:"subject,omitempty"`
	Candidates []string       `json:"candidates,omitempty"`
}
