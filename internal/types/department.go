package types

import "github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"

// Department is one departmentdistribution row: a department rollup of
// every grade it has recorded on a campus.
type Department struct {
	ID            int                     `json:"id"`
	Campus        string                  `json:"campus"`
	DeptAbbr      string                  `json:"dept_abbr"`
	DeptName      string                  `json:"dept_name"`
	TotalStudents int                     `json:"total_students"`
	TotalGrades   gradestats.Distribution `json:"total_grades,omitempty"`

	Stats *gradestats.Statistics `json:"grades_stats,omitempty"`
}

// LibEd is a liberal-education requirement.
type LibEd struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
