package engine

import (
	"testing"

	"github.com/noahvogt/modulplaner-backend/pkg/config"
	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

func newTestInferencer() (*Inferencer, *Collector) {
	diags := NewCollector()
	return NewInferencer(config.Default(), diags), diags
}

func TestParseSemester(t *testing.T) {
	sem, err := parseSemester("Stundenplan Herbstsemester 2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sem.Type != model.Herbstsemester {
		t.Errorf("expected Herbstsemester, got %q", sem.Type)
	}
	if sem.Year != 2025 {
		t.Errorf("expected year 2025, got %d", sem.Year)
	}
	if sem.Label() != "HS2025" {
		t.Errorf("expected period label HS2025, got %q", sem.Label())
	}
}

func TestParseSemester_AmbiguousTypeFails(t *testing.T) {
	_, err := parseSemester("Herbstsemester oder Frühlingssemester 2025")
	if err == nil {
		t.Fatal("expected an error when both semester types appear")
	}
}

func TestParseExportTimestamp(t *testing.T) {
	ts, err := parseExportTimestamp("Exportiert am 2.9.2025 um 14:30 Uhr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.ExportTimestamp{Year: 2025, Month: 9, Day: 2, Hour: 14, Minute: 30}
	if ts != want {
		t.Errorf("expected %+v, got %+v", want, ts)
	}
}

func TestParseExportTimestamp_MissingTime(t *testing.T) {
	if _, err := parseExportTimestamp("Exportiert am 2.9.2025"); err == nil {
		t.Fatal("expected an error when no time is present")
	}
}

func TestParseClassName(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"BSc-INF1a Informatik Vollzeit", "BSc-INF1a"},
		{"- alle", "alle"},
		{"- Kontext BWL, Kommunikation und GSW", "Kontext BWL, Kommunikation und GSW"},
	}
	for _, tc := range cases {
		got, err := parseClassName(tc.line)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.line, err)
		}
		if got != tc.want {
			t.Errorf("for %q expected class %q, got %q", tc.line, tc.want, got)
		}
	}
}

func TestParseHeader_FullPage(t *testing.T) {
	inf, _ := newTestInferencer()

	meta, err := ParseHeader([]string{
		"Stundenplan Herbstsemester 2025",
		"Exportiert am 2.9.2025 um 14:30 Uhr",
		"BSc-INF1a Informatik Vollzeit",
	}, nil, inf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meta.ClassName != "BSc-INF1a" {
		t.Errorf("expected class BSc-INF1a, got %q", meta.ClassName)
	}
	if meta.DegreeProgram != model.Informatik {
		t.Errorf("expected program Informatik, got %q", meta.DegreeProgram)
	}
	if meta.Confidence != model.ConfidenceExplicit {
		t.Errorf("expected explicit confidence, got %q", meta.Confidence)
	}
}

func TestParseHeader_WrongLineCount(t *testing.T) {
	inf, _ := newTestInferencer()

	if _, err := ParseHeader([]string{"only one line"}, nil, inf); err == nil {
		t.Fatal("expected an error for a header without three lines")
	}
}
