package engine

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/noahvogt/modulplaner-backend/pkg/config"
	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// RoomState marks how the room field of a draft was determined. The
// tokenizer never fabricates a room it cannot find.
type RoomState string

const (
	// RoomsListed: the room line was present and named rooms.
	RoomsListed RoomState = "listed"
	// RoomsNone: the room line carried an unknown-room literal (e.g.
	// "DSMixe"), meaning the run has no room. Not an error.
	RoomsNone RoomState = "none"
	// RoomsUnknown: the room line was missing entirely.
	RoomsUnknown RoomState = "unknown"
)

// Draft is the tokenizer's per-cell output: the semantic fields of one
// table cell, each with an explicit absent marker where applicable.
type Draft struct {
	Cell               model.Cell
	ModuleShorthand    string
	ClassNames         []string // class names found in the cell itself
	LecturerShorthands []string
	Rooms              []string
	RoomState          RoomState
	TeachingType       model.TeachingType
	FiredStrategy      string // which line-1 split heuristic decided
}

// SkipReason codes why a cell was skipped.
type SkipReason string

const (
	SkipEmpty       SkipReason = "empty"
	SkipLineCount   SkipReason = "line_count"
	SkipNoShorthand SkipReason = "no_shorthand"
)

// SkippedCell is the outcome for a malformed cell; the run continues.
type SkippedCell struct {
	Cell   model.Cell
	Reason SkipReason
}

// splitStrategy is one named heuristic for splitting the first cell line
// into module shorthand and class names. A strategy either decides or
// has no opinion; strategies are tried in order and the first decision
// wins. The fired strategy's name is recorded on the draft for audit.
type splitStrategy struct {
	name  string
	apply func(line, pageClass string) (shorthand string, classes []string, ok bool)
}

var modulePatternRe = regexp.MustCompile(`^[a-zäöü][a-zäöü0-9]{1,7}$`)

// lineOneStrategies is the ordered heuristic cascade for the first cell
// line. The known module-shorthand pattern deliberately precedes
// trailing-class-name stripping so a well-formed shorthand is never
// truncated by an incidental suffix match.
var lineOneStrategies = []splitStrategy{
	{
		name: "space-split",
		apply: func(line, pageClass string) (string, []string, bool) {
			words := strings.Fields(line)
			if len(words) < 2 {
				return "", nil, false
			}
			return words[0], words[1:], true
		},
	},
	{
		name: "module-pattern",
		apply: func(line, pageClass string) (string, []string, bool) {
			word := strings.TrimSpace(line)
			if !modulePatternRe.MatchString(word) {
				return "", nil, false
			}
			return word, nil, true
		},
	},
	{
		name: "class-suffix",
		apply: func(line, pageClass string) (string, []string, bool) {
			word := strings.TrimSpace(line)
			if word == "" || pageClass == "" {
				return "", nil, false
			}
			// Truncation can merge the shorthand with a (possibly cut
			// off) prefix of the page's class name; strip the longest
			// such suffix.
			for i := len(pageClass); i >= 1; i-- {
				prefix := pageClass[:i]
				if !strings.HasSuffix(word, prefix) {
					continue
				}
				stripped := word[:strings.LastIndex(word, prefix)]
				if stripped == "" {
					return "", nil, false
				}
				return stripped, []string{pageClass}, true
			}
			return "", nil, false
		},
	},
	{
		name: "verbatim",
		apply: func(line, pageClass string) (string, []string, bool) {
			word := strings.TrimSpace(line)
			if word == "" {
				return "", nil, false
			}
			return word, nil, true
		},
	},
}

// Tokenizer splits one raw table cell into its semantic fields.
type Tokenizer struct {
	cfg *config.EngineConfig
}

// NewTokenizer returns a tokenizer using the configured literals and
// token limits.
func NewTokenizer(cfg *config.EngineConfig) *Tokenizer {
	return &Tokenizer{cfg: cfg}
}

// Tokenize splits a cell into a draft. Malformed cells yield a
// SkippedCell outcome instead; they never abort the run.
func (t *Tokenizer) Tokenize(cell model.Cell, pageClass string) (*Draft, *SkippedCell) {
	if strings.TrimSpace(cell.Text) == "" {
		return nil, &SkippedCell{Cell: cell, Reason: SkipEmpty}
	}

	lines := cell.Lines()

	// A fourth line is tolerated only when it is a clock range, which is
	// redundant with the cell's grid position.
	if len(lines) == 4 && looksLikeClockRange(lines[3]) {
		lines = lines[:3]
	}

	if len(lines) != 2 && len(lines) != 3 {
		return nil, &SkippedCell{Cell: cell, Reason: SkipLineCount}
	}

	shorthand, classes, strategy := t.splitLineOne(lines[0], pageClass)
	if shorthand == "" {
		return nil, &SkippedCell{Cell: cell, Reason: SkipNoShorthand}
	}

	draft := &Draft{
		Cell:               cell,
		ModuleShorthand:    shorthand,
		ClassNames:         classes,
		LecturerShorthands: t.lecturerShorthands(lines[1]),
		TeachingType:       model.OnSite,
		FiredStrategy:      strategy,
	}

	if len(lines) == 3 {
		draft.Rooms, draft.RoomState = t.rooms(lines[2])
		if strings.Contains(lines[2], "Online") {
			draft.TeachingType = model.Online
		}
	} else {
		draft.RoomState = RoomsUnknown
	}

	return draft, nil
}

// splitLineOne runs the heuristic cascade over the first cell line.
func (t *Tokenizer) splitLineOne(line, pageClass string) (string, []string, string) {
	for _, s := range lineOneStrategies {
		if shorthand, classes, ok := s.apply(line, pageClass); ok {
			return shorthand, classes, s.name
		}
	}
	return "", nil, ""
}

// lecturerShorthands extracts lecturer shorthand tokens from the second
// cell line: letter-only tokens up to the configured length.
func (t *Tokenizer) lecturerShorthands(line string) []string {
	var shorthands []string
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, token := range tokens {
		if len([]rune(token)) > t.cfg.LecturerShorthandSize {
			continue
		}
		if !isLetters(token) {
			continue
		}
		shorthands = append(shorthands, token)
	}
	return shorthands
}

// rooms parses the third cell line. Unknown-room literals mean the run
// has no room, which is valid data, not an error.
func (t *Tokenizer) rooms(line string) ([]string, RoomState) {
	for _, literal := range t.cfg.UnknownRoomLiterals {
		if strings.Contains(line, literal) {
			return nil, RoomsNone
		}
	}
	words := strings.Fields(line)
	var rooms []string
	for _, w := range words {
		if w == "Online" {
			continue
		}
		rooms = append(rooms, w)
	}
	if len(rooms) == 0 {
		return nil, RoomsNone
	}
	return rooms, RoomsListed
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

var clockRangeRe = regexp.MustCompile(`^\d{1,2}[:.]\d{2}\s*[-–]\s*\d{1,2}[:.]\d{2}$`)

func looksLikeClockRange(line string) bool {
	return clockRangeRe.MatchString(strings.TrimSpace(line))
}
