package model

import (
	"fmt"
	"strings"
)

// Weekday is a day of the week as used by the timetable grid.
// It serializes as its column index (Montag = 0), matching the frontend.
type Weekday int

const (
	Montag Weekday = iota
	Dienstag
	Mittwoch
	Donnerstag
	Freitag
	Samstag
	Sonntag
)

var weekdayNames = [...]string{
	"Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag", "Sonntag",
}

func (w Weekday) String() string {
	if w < Montag || w > Sonntag {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// ParseWeekday maps a German weekday name onto its grid column.
func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if strings.EqualFold(name, n) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// SemesterType distinguishes spring and autumn semesters.
type SemesterType string

const (
	Fruehlingssemester SemesterType = "Frühlingssemester"
	Herbstsemester     SemesterType = "Herbstsemester"
)

// Semester is the period a timetable page belongs to.
type Semester struct {
	Year int          `json:"year"`
	Type SemesterType `json:"type"`
}

// Label returns the compact period tag used in run ids, e.g. "HS2025".
func (s Semester) Label() string {
	switch s.Type {
	case Herbstsemester:
		return fmt.Sprintf("HS%d", s.Year)
	case Fruehlingssemester:
		return fmt.Sprintf("FS%d", s.Year)
	}
	return fmt.Sprintf("%d", s.Year)
}

// ExportTimestamp is the "exported at" stamp printed above each table.
type ExportTimestamp struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// DegreeProgram is a curriculum track a class may belong to.
type DegreeProgram string

const (
	DataScience	DegreeProgram = "Data Science"
	ElekUndInfo	DegreeProgram = "Elektro- und Informationstechnik"
	EnerUndUmwelt	DegreeProgram = "Energie- und Umwelttechnik"
	ICompetence	DegreeProgram = "iCompetence"
	Informatik	DegreeProgram = "Informatik"
	KontextBWL	DegreeProgram = "Kontext BWL"
	KontextEnglisch	DegreeProgram = "Kontext Englisch"
	KontextGSW	DegreeProgram = "Kontext GSW"
	KontextKomm	DegreeProgram = "Kontext Kommunikation"
	MixedBWLGSWKomm	DegreeProgram = "Mixed BWL, GSW, Kommunikation"
	Maschinenbau	DegreeProgram = "Maschinenbau"
	Systemtechnik	DegreeProgram = "Systemtechnik"
	WirtschaftIng	DegreeProgram = "Wirtschaftsingenieurwesen"
	ProgramAgnostic	DegreeProgram = "agnostic"
)

// AllDegreePrograms lists every known program in label-scan order.
// MixedBWLGSWKomm is an intermediate marker, resolved per module later.
var AllDegreePrograms = []DegreeProgram{
	DataScience, ElekUndInfo, EnerUndUmwelt, ICompetence, Informatik,
	KontextBWL, KontextEnglisch, KontextGSW, KontextKomm,
	MixedBWLGSWKomm, Maschinenbau, Systemtechnik, WirtschaftIng,
	ProgramAgnostic,
}

// Confidence tags how a degree-program assignment was determined.
type Confidence string

const (
	ConfidenceExplicit      Confidence = "explicit"
	ConfidenceDisambiguated Confidence = "disambiguated"
	ConfidenceInferred      Confidence = "inferred"
)

// TeachingType describes how a module run is delivered.
type TeachingType string

const (
	OnSite      TeachingType = "on_site"
	Online      TeachingType = "online"
	Hybrid      TeachingType = "hybrid"
	BlockModule TeachingType = "blockmodule"
)

// Provenance records which source document(s) contributed a timeslot.
type Provenance string

const (
	ClassSourceOnly    Provenance = "class-source-only"
	LecturerSourceOnly Provenance = "lecturer-source-only"
	BothSources        Provenance = "both"
)

// AgnosticClassName is the special class that belongs to every program.
// It must never be attributed to a specific degree program.
const AgnosticClassName = "alle"

// Timeslot is one scheduled occurrence of a module run.
type Timeslot struct {
	Weekday      Weekday      `json:"weekday"`
	StartSeconds int          `json:"from"`
	EndSeconds   int          `json:"to"`
	Rooms        []string     `json:"rooms"`
	TeachingType TeachingType `json:"teaching_type"`
	Provenance   Provenance   `json:"provenance"`
}

// Signature identifies a timeslot's place in the week, independent of
// rooms and provenance. Used for deduplication and reconciliation.
func (t Timeslot) Signature() string {
	return fmt.Sprintf("%d-%d-%d", t.Weekday, t.StartSeconds, t.EndSeconds)
}

// Module is a formally defined course unit. Immutable once built: a later
// definition with different fields is a data-integrity error.
type Module struct {
	Shorthand string `json:"shorthand"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	ECTS      int    `json:"ects"`
	URL       string `json:"url"`
}

// PageMetadata is the parsed above-table text of one timetable page.
type PageMetadata struct {
	Semester      Semester
	ExportedAt    ExportTimestamp
	ClassName     string
	DegreeProgram DegreeProgram
	Confidence    Confidence
}
