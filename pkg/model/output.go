package model

// ResolutionStatus describes how a lecturer shorthand reference was resolved
// at the time the module run was built.
type ResolutionStatus string

const (
	StatusResolved   ResolutionStatus = "resolved"
	StatusAmbiguous  ResolutionStatus = "ambiguous"
	StatusUnresolved ResolutionStatus = "unresolved"
)

// LecturerRef is a module run's reference to a lecturer. The raw shorthand
// is always kept; the full name is only set for verified resolutions.
type LecturerRef struct {
	Shorthand string           `json:"shorthand"`
	FullName  string           `json:"full_name,omitempty"`
	Status    ResolutionStatus `json:"status"`
	Verified  bool             `json:"verified"`
}

// ModuleRun is one enrollable delivery of a module for a class in a period.
type ModuleRun struct {
	ID                 string        `json:"id"`
	ModuleShorthand    string        `json:"name"`
	ClassName          string        `json:"class"`
	Period             string        `json:"period"`
	DegreeProgram      DegreeProgram `json:"degree_prg"`
	Rooms              []string      `json:"rooms"`
	TeachingType       TeachingType  `json:"teaching_type"`
	Lecturers          []LecturerRef `json:"-"`
	LecturerShorthands []string      `json:"teachers"`
	Pages              []int         `json:"pages"`
	PartOfOtherClasses []string      `json:"part_of_other_classes"`
	Timeslots          []Timeslot    `json:"timeslots"`
}

// ClassRecord is one entry of classes.json: a named grouping of module runs
// with its degree-program assignment and confidence.
type ClassRecord struct {
	Name          string        `json:"class"`
	DegreeProgram DegreeProgram `json:"degree_prg"`
	Confidence    Confidence    `json:"degree_prg_confidence"`
	Modules       []ModuleRun   `json:"modules"`
}

// Lecturer is one entry of lecturers.json. The full name is the identity
// key; shorthands are many-to-one and never unique identifiers.
type Lecturer struct {
	FullName   string   `json:"full_name"`
	Shorthands []string `json:"shorthands"`
}
