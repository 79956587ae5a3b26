package pdfext

import (
	"testing"
)

func TestRunsFromStream_PositionTracking(t *testing.T) {
	stream := []byte(`BT
1 0 0 1 100 700 Tm
(Stundenplan Herbstsemester 2025) Tj
0 -20 Td
(BSc-INF1a Informatik) Tj
1 0 0 1 200 500 Tm
(InfoSec) Tj
T*
(MM PJ) Tj
ET`)

	runs := runsFromStream(stream)
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d: %+v", len(runs), runs)
	}

	if runs[0].X != 100 || runs[0].Y != 700 || runs[0].Text != "Stundenplan Herbstsemester 2025" {
		t.Errorf("unexpected first run: %+v", runs[0])
	}
	if runs[1].Y != 680 {
		t.Errorf("Td must translate the line position, got y=%v", runs[1].Y)
	}
	if runs[2].X != 200 || runs[2].Y != 500 {
		t.Errorf("Tm must reset the position, got %+v", runs[2])
	}
	if runs[3].Y >= 500 {
		t.Errorf("T* must move down by the leading, got y=%v", runs[3].Y)
	}
	if runs[3].Text != "MM PJ" {
		t.Errorf("unexpected fourth run text: %q", runs[3].Text)
	}
}

func TestRunsFromStream_TJArrayAndEscapes(t *testing.T) {
	stream := []byte(`BT
1 0 0 1 50 100 Tm
[(Info) -120 (Sec)] TJ
ET`)

	runs := runsFromStream(stream)
	if len(runs) != 1 {
		t.Fatalf("expected the TJ fragments merged into one run, got %d", len(runs))
	}
	if runs[0].Text != "InfoSec" {
		t.Errorf("expected merged text 'InfoSec', got %q", runs[0].Text)
	}
}

func TestDecodePDFString(t *testing.T) {
	cases := []struct{ in, want string }{
		{`a\040b`, "a b"},
		{`paren \( inside \)`, "paren ( inside )"},
		{`tab\there`, "tab\there"},
	}
	for _, tc := range cases {
		if got := decodePDFString([]byte(tc.in)); got != tc.want {
			t.Errorf("decodePDFString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
