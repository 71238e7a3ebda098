package types

// Professor is one professor row with Rate My Professor metadata.
type Professor struct {
	ID            int      `json:"professor_id"`
	Name          string   `json:"professor_name"`
	RMPScore      *float64 `json:"rate_my_professor_score"`
	RMPDifficulty *float64 `json:"rate_my_professor_difficulty"`
	RMPLink       string   `json:"rate_my_professor_link,omitempty"`
	X500          string   `json:"x500,omitempty"`
}

// ProfessorQuery holds the professor search filters. At least one of ID or
// Name must be set.
type ProfessorQuery struct {
	ID    int    // exact database ID, 0 means unset
	Name  string // substring match, spaces ignored
	Limit int
}

// TaughtCourse is one course a professor has taught, with the distinct
// terms they taught it.
type TaughtCourse struct {
	DeptAbbr    string   `json:"dept_abbr"`
	CourseNum   string   `json:"course_num"`
	Name        string   `json:"course_name"`
	TermsTaught []string `json:"terms_taught"`
}
