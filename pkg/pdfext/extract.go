// Package pdfext is the PDF extraction collaborator: it turns timetable
// PDFs into the engine's raw cell stream. Extraction is best effort by
// contract; the snapshot path is the high-fidelity input for iterating
// on engine behavior.
package pdfext

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/noahvogt/modulplaner-backend/pkg/config"
	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// tolerance in PDF points when snapping runs onto grid lines.
const tolerance = 3.0

// ExtractClassTimetable reads a class timetable PDF and snaps its text
// onto the weekday/timeslot grid, producing the engine's snapshot input.
func ExtractClassTimetable(path string, cfg *config.EngineConfig) (*model.Snapshot, error) {
	ctx, err := readPDF(path)
	if err != nil {
		return nil, err
	}

	snap := &model.Snapshot{Version: model.SnapshotVersion}

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		runs, err := pageRuns(ctx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}
		if len(runs) == 0 {
			continue
		}

		page, err := snapPage(runs, pageNr, cfg)
		if err != nil {
			// An unsnappable page is left out; the engine decides
			// whether the remainder is structurally usable.
			continue
		}
		snap.Pages = append(snap.Pages, *page)
	}

	if len(snap.Pages) == 0 {
		return nil, fmt.Errorf("no timetable pages found in %s", path)
	}

	return snap, nil
}

func readPDF(path string) (*pdfmodel.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	conf := pdfmodel.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx, nil
}

// snapPage assigns every text run of a page to the header area or to a
// grid cell, using the weekday labels as column anchors and the time
// column labels as row anchors.
func snapPage(runs []textRun, pageNr int, cfg *config.EngineConfig) (*model.PageData, error) {
	colX := make([]float64, 0, 7)
	colFound := false
	var headerTopY float64

	// Column anchors: the weekday labels of the table's header row.
	dayX := make(map[model.Weekday]float64)
	for _, run := range runs {
		if day, err := model.ParseWeekday(strings.TrimSpace(run.Text)); err == nil {
			if _, seen := dayX[day]; !seen {
				dayX[day] = run.X
				if !colFound || run.Y < headerTopY {
					headerTopY = run.Y
				}
				colFound = true
			}
		}
	}
	if !colFound {
		return nil, fmt.Errorf("page %d: no weekday labels found", pageNr)
	}
	for day := model.Montag; day <= model.Sonntag; day++ {
		if x, ok := dayX[day]; ok {
			colX = append(colX, x)
		}
	}
	sort.Float64s(colX)

	// Row anchors: the start-time labels of the time column, matched
	// against the configured timeslot grid.
	startLabel := make(map[string]int)
	for i, w := range cfg.Timeslots {
		startLabel[w.Start] = i
	}
	rowY := make(map[int]float64)
	for _, run := range runs {
		if run.X >= colX[0]-tolerance {
			continue
		}
		label := strings.TrimSpace(run.Text)
		label = strings.SplitN(label, "-", 2)[0]
		label = strings.TrimSpace(label)
		if row, ok := startLabel[label]; ok {
			if _, seen := rowY[row]; !seen {
				rowY[row] = run.Y
			}
		}
	}
	if len(rowY) == 0 {
		return nil, fmt.Errorf("page %d: no timeslot labels found", pageNr)
	}

	page := &model.PageData{
		Number: pageNr,
		Header: headerLines(runs, headerTopY),
	}

	// Cells: remaining runs snapped to (row, col) and merged into one
	// cell text per position, top line first.
	type cellPos struct{ row, col int }
	cellRuns := make(map[cellPos][]textRun)
	for _, run := range runs {
		if run.Y > headerTopY-tolerance {
			continue // header row or above-table text
		}
		col, ok := snapColumn(run.X, colX)
		if !ok {
			continue // time column
		}
		row, ok := snapRow(run.Y, rowY)
		if !ok {
			continue
		}
		pos := cellPos{row: row, col: col}
		cellRuns[pos] = append(cellRuns[pos], run)
	}

	positions := make([]cellPos, 0, len(cellRuns))
	for pos := range cellRuns {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].row != positions[j].row {
			return positions[i].row < positions[j].row
		}
		return positions[i].col < positions[j].col
	})

	for _, pos := range positions {
		group := cellRuns[pos]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Y != group[j].Y {
				return group[i].Y > group[j].Y // PDF y grows upward
			}
			return group[i].X < group[j].X
		})
		var lines []string
		for _, run := range group {
			lines = append(lines, run.Text)
		}
		page.Cells = append(page.Cells, model.Cell{
			Text:    strings.Join(lines, "\n"),
			Page:    pageNr,
			Row:     pos.row,
			Col:     pos.col,
			RowSpan: 1,
		})
	}

	return page, nil
}

// headerLines collects the above-table text: runs higher on the page
// than the weekday header row, grouped into lines by y.
func headerLines(runs []textRun, headerTopY float64) []string {
	var above []textRun
	for _, run := range runs {
		if run.Y > headerTopY+tolerance {
			above = append(above, run)
		}
	}
	sort.Slice(above, func(i, j int) bool {
		if above[i].Y != above[j].Y {
			return above[i].Y > above[j].Y
		}
		return above[i].X < above[j].X
	})

	var lines []string
	var currentY float64
	var current []string
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = nil
		}
	}
	for _, run := range above {
		if len(current) > 0 && currentY-run.Y > tolerance {
			flush()
		}
		if len(current) == 0 {
			currentY = run.Y
		}
		current = append(current, run.Text)
	}
	flush()
	return lines
}

// snapColumn returns the index of the rightmost column anchor at or left
// of x. Runs left of the first anchor belong to the time column.
func snapColumn(x float64, colX []float64) (int, bool) {
	col := -1
	for i, anchor := range colX {
		if x >= anchor-tolerance {
			col = i
		}
	}
	if col < 0 {
		return 0, false
	}
	return col, true
}

// snapRow returns the timeslot row whose anchor is nearest above y.
func snapRow(y float64, rowY map[int]float64) (int, bool) {
	best := -1
	bestY := 0.0
	for row, anchor := range rowY {
		if anchor+tolerance >= y && (best == -1 || anchor < bestY) {
			best = row
			bestY = anchor
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
