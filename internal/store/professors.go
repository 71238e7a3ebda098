package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/types"
)

// SearchProfessors finds professors by exact ID and/or space-insensitive
// name match, best-rated first.
func (s *Store) SearchProfessors(ctx context.Context, q types.ProfessorQuery) ([]types.Professor, error) {
	var f filter
	if q.ID != 0 {
		f.add("id = ?", q.ID)
	}
	if q.Name != "" {
		f.add("REPLACE(name, ' ', '') LIKE ?", "%"+squash(q.Name)+"%")
	}
	if len(f.conds) == 0 {
		return nil, fmt.Errorf("professor search needs a name or an id")
	}

	query := `SELECT id, name, RMP_score, RMP_diff, RMP_link, x500
		FROM professor` + f.where() + `
		ORDER BY RMP_score DESC NULLS LAST`
	if q.Limit > 0 {
		query += " LIMIT " + strconv.Itoa(q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("searching professors: %w", err)
	}
	defer rows.Close()

	var profs []types.Professor
	for rows.Next() {
		p, err := scanProfessor(rows)
		if err != nil {
			return nil, err
		}
		profs = append(profs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating professors: %w", err)
	}
	return profs, nil
}

// GetProfessor loads one professor by database ID.
func (s *Store) GetProfessor(ctx context.Context, id int) (*types.Professor, error) {
	query := `SELECT id, name, RMP_score, RMP_diff, RMP_link, x500 FROM professor WHERE id = ?`
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("loading professor: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("loading professor: %w", err)
		}
		return nil, fmt.Errorf("professor %d: %w", id, ErrNotFound)
	}
	p, err := scanProfessor(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProfessorCourses lists the courses a professor has taught on a campus
// with the distinct terms for each, ordered by department and number.
func (s *Store) ProfessorCourses(ctx context.Context, profID int, campus string) ([]types.TaughtCourse, error) {
	query := `SELECT
			c.dept_abbr, c.course_num, c.class_desc,
			GROUP_CONCAT(DISTINCT t.term) AS terms_taught
		FROM distribution d
		JOIN classdistribution c ON d.class_id = c.id
		JOIN termdistribution t ON d.id = t.dist_id
		WHERE d.professor_id = ? AND c.campus = ?
		GROUP BY c.id
		ORDER BY c.dept_abbr, c.course_num`
	rows, err := s.db.QueryContext(ctx, query, profID, campus)
	if err != nil {
		return nil, fmt.Errorf("loading professor courses: %w", err)
	}
	defer rows.Close()

	var courses []types.TaughtCourse
	for rows.Next() {
		var tc types.TaughtCourse
		var terms sql.NullString
		if err := rows.Scan(&tc.DeptAbbr, &tc.CourseNum, &tc.Name, &terms); err != nil {
			return nil, fmt.Errorf("scanning taught course: %w", err)
		}
		tc.TermsTaught = termNames(terms.String)
		courses = append(courses, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating professor courses: %w", err)
	}
	return courses, nil
}

// ProfessorTermRecords returns every course+term record a professor has
// graded on a campus. Input for professor-level aggregation.
func (s *Store) ProfessorTermRecords(ctx context.Context, profID int, campus string) ([]types.ProfessorTermRecord, error) {
	return s.professorTermRecords(ctx, profID, campus, 0)
}

// ProfessorCourseTermRecords narrows ProfessorTermRecords to one course.
// Input for professor-vs-course comparison.
func (s *Store) ProfessorCourseTermRecords(ctx context.Context, profID, classID int) ([]types.ProfessorTermRecord, error) {
	return s.professorTermRecords(ctx, profID, "", classID)
}

func (s *Store) professorTermRecords(ctx context.Context, profID int, campus string, classID int) ([]types.ProfessorTermRecord, error) {
	f := filter{}
	f.add("d.professor_id = ?", profID)
	if campus != "" {
		f.add("c.campus = ?", campus)
	}
	if classID != 0 {
		f.add("c.id = ?", classID)
	}

	query := `SELECT
			c.id, c.dept_abbr, c.course_num, c.class_desc, c.onestop, c.onestop_desc,
			c.cred_min, c.cred_max, t.term, t.students, t.grades
		FROM distribution d
		JOIN termdistribution t ON d.id = t.dist_id
		JOIN classdistribution c ON d.class_id = c.id` + f.where() + `
		ORDER BY c.dept_abbr, c.course_num, t.term`
	rows, err := s.db.QueryContext(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("loading professor term records: %w", err)
	}
	defer rows.Close()

	var records []types.ProfessorTermRecord
	for rows.Next() {
		var rec types.ProfessorTermRecord
		var onestop, desc, grades sql.NullString
		if err := rows.Scan(&rec.ClassID, &rec.DeptAbbr, &rec.CourseNum, &rec.CourseName,
			&onestop, &desc, &rec.CredMin, &rec.CredMax, &rec.Term, &rec.Students, &grades); err != nil {
			return nil, fmt.Errorf("scanning professor term record: %w", err)
		}
		rec.OnestopLink = onestop.String
		rec.Description = desc.String
		rec.Grades = parseGrades(grades)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating professor term records: %w", err)
	}
	return records, nil
}

func scanProfessor(rows *sql.Rows) (types.Professor, error) {
	var p types.Professor
	var score, diff sql.NullFloat64
	var link, x500 sql.NullString
	if err := rows.Scan(&p.ID, &p.Name, &score, &diff, &link, &x500); err != nil {
		return types.Professor{}, fmt.Errorf("scanning professor: %w", err)
	}
	p.RMPScore = nullableFloat(score)
	p.RMPDifficulty = nullableFloat(diff)
	p.RMPLink = link.String
	p.X500 = x500.String
	return p, nil
}

// termNames converts a GROUP_CONCAT term list into human-readable names.
func termNames(concat string) []string {
	if concat == "" {
		return []string{}
	}
	parts := strings.Split(concat, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		term, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		names = append(names, gradestats.TermName(term))
	}
	return names
}
