package engine

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	snap := &model.Snapshot{
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
					{Text: "webeng 1Ia\nvss\nOnline", Page: 1, Row: 3, Col: 2, RowSpan: 1},
				},
			},
			{Number: 2, Header: []string{"a", "b", "c"}},
		},
	}

	path := filepath.Join(t.TempDir(), "intermediate.json")
	if err := SaveSnapshot(snap, path); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	// Same pages, same cells, same order.
	if !reflect.DeepEqual(snap, loaded) {
		t.Errorf("snapshot did not round-trip exactly:\nsaved:  %+v\nloaded: %+v", snap, loaded)
	}
}

func TestLoadSnapshot_RejectsUnknownVersion(t *testing.T) {
	snap := &model.Snapshot{Version: model.SnapshotVersion + 1, Pages: []model.PageData{{Number: 1}}}

	path := filepath.Join(t.TempDir(), "intermediate.json")
	if err := SaveSnapshot(snap, path); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Fatal("expected an error for an unsupported snapshot version")
	}
}
