package types

import "github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"

// Course is one classdistribution row: a course on a campus with its
// aggregate grade distribution across every professor and term.
type Course struct {
	ID            int                     `json:"id"`
	Campus        string                  `json:"campus"`
	DeptAbbr      string                  `json:"dept_abbr"`
	CourseNum     string                  `json:"course_num"`
	Name          string                  `json:"course_name"`
	TotalStudents int                     `json:"total_students"`
	TotalGrades   gradestats.Distribution `json:"total_grades"`
	OnestopLink   string                  `json:"onestop_link,omitempty"`
	Description   string                  `json:"course_description,omitempty"`
	CredMin       int                     `json:"cred_min"`
	CredMax       int                     `json:"cred_max"`

	// StudentRatings carries the SRT survey values as stored (question
	// label -> score).
	StudentRatings map[string]float64 `json:"student_ratings,omitempty"`

	// Stats is filled by callers from TotalGrades; never read from the
	// database.
	Stats *gradestats.Statistics `json:"grades_stats,omitempty"`
}

// CourseQuery holds the optional course search filters. Zero values mean
// "no filter"; derived-statistic bounds (GPA) are deliberately absent here
// because they are applied after statistics computation, not in SQL.
type CourseQuery struct {
	Campus        string
	DeptAbbr      string
	CourseNum     string
	LevelPrefixes []string // first digits of course_num, e.g. ["1","2"]
	Search        string   // matches dept+number, description, dept abbr
}
