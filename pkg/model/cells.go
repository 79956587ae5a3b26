package model

import "strings"

// SnapshotVersion guards the intermediate snapshot format. Bump when the
// cell layout changes in a way an old snapshot cannot satisfy.
const SnapshotVersion = 1

// Cell is one raw table cell as delivered by the PDF extraction collaborator.
// Row indexes the allowed-timeslot grid, Col indexes weekdays (Montag = 0).
type Cell struct {
	Text    string `json:"text"`
	Page    int    `json:"page"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	RowSpan int    `json:"row_span"`
}

// Lines splits the cell text into trimmed, non-empty lines.
func (c Cell) Lines() []string {
	var lines []string
	for _, line := range strings.Split(c.Text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// PageData is one timetable page: the three above-table header lines plus
// the positioned cells of the page's table.
type PageData struct {
	Number int      `json:"number"`
	Header []string `json:"header"`
	Cells  []Cell   `json:"cells"`
}

// Snapshot is the intermediate serialized form of the raw cell stream.
// It must round-trip exactly (same pages, same cells, same order) so a
// second run can skip the expensive PDF extraction step.
type Snapshot struct {
	Version int        `json:"version"`
	Pages   []PageData `json:"pages"`
}

// CellCount returns the total number of cells across all pages.
func (s *Snapshot) CellCount() int {
	n := 0
	for _, p := range s.Pages {
		n += len(p.Cells)
	}
	return n
}
