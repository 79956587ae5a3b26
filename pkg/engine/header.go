package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// The above-table text of a timetable page has exactly three lines:
// the semester line, the export timestamp line and the class line.

var exportDateRe = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)

// parseSemester extracts the semester type and year from the first
// header line. Exactly one of the two semester-type labels must appear.
func parseSemester(firstLine string) (model.Semester, error) {
	hasFS := strings.Contains(firstLine, string(model.Fruehlingssemester))
	hasHS := strings.Contains(firstLine, string(model.Herbstsemester))

	var semesterType model.SemesterType
	switch {
	case hasFS && !hasHS:
		semesterType = model.Fruehlingssemester
	case hasHS && !hasFS:
		semesterType = model.Herbstsemester
	default:
		return model.Semester{}, fmt.Errorf("could not determine semester type in %q", firstLine)
	}

	year, err := findYear(firstLine)
	if err != nil {
		return model.Semester{}, err
	}

	return model.Semester{Year: year, Type: semesterType}, nil
}

// findYear returns the first run of exactly four consecutive digits.
func findYear(line string) (int, error) {
	digits := 0
	for i, r := range line {
		if r >= '0' && r <= '9' {
			digits++
			if digits == 4 {
				// Reject runs longer than four digits.
				if i+1 < len(line) && line[i+1] >= '0' && line[i+1] <= '9' {
					digits = 0
					continue
				}
				return strconv.Atoi(line[i-3 : i+1])
			}
		} else {
			digits = 0
		}
	}
	return 0, fmt.Errorf("no four-digit year found in %q", line)
}

// parseExportTimestamp extracts the "exported at" stamp from the second
// header line: a d.m.yyyy date plus an hh:mm time.
func parseExportTimestamp(secondLine string) (model.ExportTimestamp, error) {
	match := exportDateRe.FindStringSubmatch(secondLine)
	if match == nil {
		return model.ExportTimestamp{}, fmt.Errorf("no export date found in %q", secondLine)
	}
	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])

	// The time is located by its colon with two digits on either side.
	for i := 2; i+2 < len(secondLine); i++ {
		if secondLine[i] != ':' {
			continue
		}
		hour, errH := strconv.Atoi(secondLine[i-2 : i])
		minute, errM := strconv.Atoi(secondLine[i+1 : i+3])
		if errH != nil || errM != nil {
			continue
		}
		return model.ExportTimestamp{
			Year: year, Month: month, Day: day,
			Hour: hour, Minute: minute,
		}, nil
	}

	return model.ExportTimestamp{}, fmt.Errorf("no export time found in %q", secondLine)
}

// parseClassName extracts the class name from the third header line.
// A "- " prefix marks the whole rest of the line as the class name;
// otherwise the name is the text before the first space.
func parseClassName(thirdLine string) (string, error) {
	if strings.HasPrefix(thirdLine, "- ") && len(thirdLine) > 2 {
		return thirdLine[2:], nil
	}
	firstSpace := strings.IndexByte(thirdLine, ' ')
	if firstSpace <= 0 {
		return "", fmt.Errorf("no class name found in %q", thirdLine)
	}
	return thirdLine[:firstSpace], nil
}

// ParseHeader parses the three above-table lines of a page into its
// metadata. Degree-program inference consults the metadata of all
// previously parsed pages.
func ParseHeader(lines []string, previous []model.PageMetadata, inferencer *Inferencer) (model.PageMetadata, error) {
	if len(lines) != 3 {
		return model.PageMetadata{}, fmt.Errorf("expected 3 header lines, got %d", len(lines))
	}

	semester, err := parseSemester(lines[0])
	if err != nil {
		return model.PageMetadata{}, err
	}

	exportedAt, err := parseExportTimestamp(lines[1])
	if err != nil {
		return model.PageMetadata{}, err
	}

	className, err := parseClassName(lines[2])
	if err != nil {
		return model.PageMetadata{}, err
	}

	program, confidence := inferencer.Infer(lines[2], className, previous)

	return model.PageMetadata{
		Semester:      semester,
		ExportedAt:    exportedAt,
		ClassName:     className,
		DegreeProgram: program,
		Confidence:    confidence,
	}, nil
}
