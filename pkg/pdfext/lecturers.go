package pdfext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// The lecturer-shorthand PDF is a three-column table: shorthand,
// surname, first name. The "Nachname" and "Vorname" column labels on
// the first page give the x positions used as fixed separators for all
// rows, assuming they do not drift on subsequent pages.

// ExtractLecturers reads the lecturer-shorthand PDF into lecturer
// records. The table's header row and the "vak" example row are
// skipped, and duplicate rows are dropped.
func ExtractLecturers(path string) ([]model.Lecturer, error) {
	ctx, err := readPDF(path)
	if err != nil {
		return nil, err
	}

	firstPage, err := pageRuns(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("page 1: %w", err)
	}

	sepX1, sepX2, err := columnSeparators(firstPage)
	if err != nil {
		return nil, err
	}

	var lecturers []model.Lecturer
	seen := make(map[string]bool)

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		runs, err := pageRuns(ctx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}

		for _, row := range tableRows(runs) {
			shorthand, surname, firstname := splitRow(row, sepX1, sepX2)

			if isHeaderRow(shorthand, surname, firstname) || isExampleRow(shorthand, surname, firstname) {
				continue
			}
			if shorthand == "" || (surname == "" && firstname == "") {
				continue
			}

			fullName := strings.TrimSpace(firstname + " " + surname)
			key := shorthand + "|" + fullName
			if seen[key] {
				continue
			}
			seen[key] = true

			lecturers = append(lecturers, model.Lecturer{
				FullName:   fullName,
				Shorthands: []string{shorthand},
			})
		}
	}

	return lecturers, nil
}

// columnSeparators finds the x positions of the "Nachname" and
// "Vorname" labels. Two points are subtracted so a letter drifting
// slightly left of its column still lands in it.
func columnSeparators(runs []textRun) (float64, float64, error) {
	var sepX1, sepX2 float64
	found1, found2 := false, false
	for _, run := range runs {
		switch strings.TrimSpace(run.Text) {
		case "Nachname":
			if !found1 {
				sepX1 = run.X - 2
				found1 = true
			}
		case "Vorname":
			if !found2 {
				sepX2 = run.X - 2
				found2 = true
			}
		}
	}
	if !found1 || !found2 {
		return 0, 0, fmt.Errorf("could not find column labels for separator calculation")
	}
	return sepX1, sepX2, nil
}

// tableRows clusters a page's runs into table rows by y position.
func tableRows(runs []textRun) [][]textRun {
	sorted := append([]textRun(nil), runs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]textRun
	var current []textRun
	var currentY float64
	for _, run := range sorted {
		if len(current) > 0 && currentY-run.Y > tolerance {
			rows = append(rows, current)
			current = nil
		}
		if len(current) == 0 {
			currentY = run.Y
		}
		current = append(current, run)
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}

// splitRow assigns a row's runs to the three columns by the separators.
func splitRow(row []textRun, sepX1, sepX2 float64) (shorthand, surname, firstname string) {
	var col1, col2, col3 []string
	for _, run := range row {
		switch {
		case run.X < sepX1:
			col1 = append(col1, run.Text)
		case run.X < sepX2:
			col2 = append(col2, run.Text)
		default:
			col3 = append(col3, run.Text)
		}
	}
	return strings.TrimSpace(strings.Join(col1, " ")),
		strings.TrimSpace(strings.Join(col2, " ")),
		strings.TrimSpace(strings.Join(col3, " "))
}

func isHeaderRow(shorthand, surname, firstname string) bool {
	return shorthand == "Name" && surname == "Nachname" && firstname == "Vorname"
}

// The source PDF opens with a filled-in example row for the shorthand
// "vak"; it is documentation, not a lecturer.
func isExampleRow(shorthand, surname, firstname string) bool {
	return shorthand == "vak" && surname == "" && firstname == ""
}
