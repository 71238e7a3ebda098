package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/gradestats"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/types"
)

const courseColumns = `id, campus, dept_abbr, course_num, class_desc,
	total_students, total_grades, onestop, onestop_desc, cred_min, cred_max, srt_vals`

// SearchCourses returns courses matching the query, most-attended first.
// GPA bounds are intentionally not part of the SQL: derived-statistic
// filtering happens after statistics computation in the caller.
func (s *Store) SearchCourses(ctx context.Context, q types.CourseQuery) ([]types.Course, error) {
	var f filter
	if q.Campus != "" {
		f.add("campus = ?", q.Campus)
	}
	if q.DeptAbbr != "" {
		f.add("dept_abbr = ?", strings.ToUpper(q.DeptAbbr))
	}
	if q.CourseNum != "" {
		f.add("course_num = ?", q.CourseNum)
	}
	f.addIn("SUBSTR(course_num, 1, 1)", q.LevelPrefixes)
	if q.Search != "" {
		pattern := "%" + squash(q.Search) + "%"
		f.add(`(dept_abbr || course_num LIKE ? OR REPLACE(class_desc, ' ', '') LIKE ? OR dept_abbr LIKE ?)`,
			pattern, pattern, pattern)
	}

	query := `SELECT ` + courseColumns + ` FROM classdistribution` + f.where() +
		` ORDER BY total_students DESC`
	rows, err := s.db.QueryContext(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("searching courses: %w", err)
	}
	defer rows.Close()

	var courses []types.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return courses, nil
}

// GetCourse loads one course by campus, department, and number.
func (s *Store) GetCourse(ctx context.Context, campus, deptAbbr, courseNum string) (*types.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM classdistribution
		WHERE campus = ? AND dept_abbr = ? AND course_num = ?`
	rows, err := s.db.QueryContext(ctx, query, campus, strings.ToUpper(deptAbbr), courseNum)
	if err != nil {
		return nil, fmt.Errorf("loading course: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("loading course: %w", err)
		}
		return nil, fmt.Errorf("course %s %s: %w", deptAbbr, courseNum, ErrNotFound)
	}
	course, err := scanCourse(rows)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// CourseOfferings returns the course's per-professor per-term records,
// newest term first. Distributions without an instructor keep a nil
// professor ID.
func (s *Store) CourseOfferings(ctx context.Context, classID int) ([]types.CourseOffering, error) {
	query := `SELECT
			d.id, d.professor_id, p.name, p.RMP_score, p.RMP_diff, p.RMP_link,
			t.term, t.students, t.grades
		FROM distribution d
		LEFT JOIN professor p ON d.professor_id = p.id
		JOIN termdistribution t ON d.id = t.dist_id
		WHERE d.class_id = ?
		ORDER BY t.term DESC`
	rows, err := s.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("loading course offerings: %w", err)
	}
	defer rows.Close()

	var offerings []types.CourseOffering
	for rows.Next() {
		var o types.CourseOffering
		var profID sql.NullInt64
		var profName, rmpLink, grades sql.NullString
		var rmpScore, rmpDiff sql.NullFloat64
		if err := rows.Scan(&o.DistributionID, &profID, &profName, &rmpScore, &rmpDiff, &rmpLink,
			&o.Term, &o.Students, &grades); err != nil {
			return nil, fmt.Errorf("scanning course offering: %w", err)
		}
		o.ProfessorID = nullableInt(profID)
		o.ProfessorName = profName.String
		o.RMPScore = nullableFloat(rmpScore)
		o.RMPDifficulty = nullableFloat(rmpDiff)
		o.RMPLink = rmpLink.String
		o.TermName = gradestats.TermName(o.Term)
		o.Grades = parseGrades(grades)
		offerings = append(offerings, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course offerings: %w", err)
	}
	return offerings, nil
}

// CourseTermRecords returns every term record for a course across all
// professors, oldest first. Input for trend and inflation analysis.
func (s *Store) CourseTermRecords(ctx context.Context, classID int) ([]types.TermRecord, error) {
	query := `SELECT t.term, t.students, t.grades
		FROM distribution d
		JOIN termdistribution t ON d.id = t.dist_id
		WHERE d.class_id = ?
		ORDER BY t.term`
	rows, err := s.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("loading term records: %w", err)
	}
	defer rows.Close()

	var records []types.TermRecord
	for rows.Next() {
		rec, err := scanTermRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating term records: %w", err)
	}
	return records, nil
}

// CourseLibEds returns the names of liberal-education requirements the
// course fulfills.
func (s *Store) CourseLibEds(ctx context.Context, classID int) ([]string, error) {
	query := `SELECT l.name
		FROM libedAssociationTable lat
		JOIN libed l ON lat.left_id = l.id
		WHERE lat.right_id = ?
		ORDER BY l.name`
	rows, err := s.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("loading course libeds: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning libed name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course libeds: %w", err)
	}
	return names, nil
}

func scanCourse(rows *sql.Rows) (types.Course, error) {
	var c types.Course
	var grades, onestop, desc, srt sql.NullString
	err := rows.Scan(&c.ID, &c.Campus, &c.DeptAbbr, &c.CourseNum, &c.Name,
		&c.TotalStudents, &grades, &onestop, &desc, &c.CredMin, &c.CredMax, &srt)
	if err != nil {
		return types.Course{}, fmt.Errorf("scanning course: %w", err)
	}
	c.TotalGrades = parseGrades(grades)
	c.OnestopLink = onestop.String
	c.Description = desc.String
	c.StudentRatings = parseRatings(srt)
	return c, nil
}

func scanTermRecord(rows *sql.Rows) (types.TermRecord, error) {
	var rec types.TermRecord
	var grades sql.NullString
	if err := rows.Scan(&rec.Term, &rec.Students, &grades); err != nil {
		return types.TermRecord{}, fmt.Errorf("scanning term record: %w", err)
	}
	rec.TermName = gradestats.TermName(rec.Term)
	rec.Grades = parseGrades(grades)
	return rec, nil
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
