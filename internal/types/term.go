package types

import "github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"

// TermRecord is one termdistribution row: the grades a single distribution
// produced in one academic term.
type TermRecord struct {
	Term     int                     `json:"term"`
	TermName string                  `json:"term_name"`
	Students int                     `json:"students"`
	Grades   gradestats.Distribution `json:"grades"`
}

// CourseOffering joins a distribution with its professor and one term
// record: who taught the course, when, and with what grades. The professor
// side is nullable because some distributions carry no instructor.
type CourseOffering struct {
	DistributionID int                     `json:"distribution_id"`
	ProfessorID    *int                    `json:"professor_id"`
	ProfessorName  string                  `json:"professor_name,omitempty"`
	RMPScore       *float64                `json:"rate_my_professor_score,omitempty"`
	RMPDifficulty  *float64                `json:"rate_my_professor_difficulty,omitempty"`
	RMPLink        string                  `json:"rate_my_professor_link,omitempty"`
	Term           int                     `json:"term"`
	TermName       string                  `json:"term_name"`
	Students       int                     `json:"students"`
	Grades         gradestats.Distribution `json:"grades"`

	// Stats is filled by callers from Grades.
	Stats *gradestats.Statistics `json:"grades_stats,omitempty"`
}

// ProfessorTermRecord is one course+term a professor taught, used to build
// professor-level aggregates.
type ProfessorTermRecord struct {
	ClassID     int
	DeptAbbr    string
	CourseNum   string
	CourseName  string
	OnestopLink string
	Description string
	CredMin     int
	CredMax     int
	Term        int
	Students    int
	Grades      gradestats.Distribution
}
