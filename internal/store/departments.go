package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/types"
)

const departmentColumns = `id, campus, dept_abbr, dept_name, total_students, total_grades`

// ListDepartments returns every department rollup on a campus.
func (s *Store) ListDepartments(ctx context.Context, campus string) ([]types.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departmentdistribution
		WHERE campus = ? ORDER BY dept_abbr`
	rows, err := s.db.QueryContext(ctx, query, campus)
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}
	defer rows.Close()

	var depts []types.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		depts = append(depts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating departments: %w", err)
	}
	return depts, nil
}

// GetDepartment loads one department rollup.
func (s *Store) GetDepartment(ctx context.Context, campus, deptAbbr string) (*types.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departmentdistribution
		WHERE campus = ? AND dept_abbr = ?`
	rows, err := s.db.QueryContext(ctx, query, campus, deptAbbr)
	if err != nil {
		return nil, fmt.Errorf("loading department: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("loading department: %w", err)
		}
		return nil, fmt.Errorf("department %s: %w", deptAbbr, ErrNotFound)
	}
	d, err := scanDepartment(rows)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DepartmentNames maps department abbreviations to full names across all
// campuses. Backs the abbreviations reference endpoint and dbinfo export.
func (s *Store) DepartmentNames(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT dept_abbr, dept_name FROM departmentdistribution`)
	if err != nil {
		return nil, fmt.Errorf("listing department names: %w", err)
	}
	defer rows.Close()

	names := map[string]string{}
	for rows.Next() {
		var abbr, name string
		if err := rows.Scan(&abbr, &name); err != nil {
			return nil, fmt.Errorf("scanning department name: %w", err)
		}
		names[abbr] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating department names: %w", err)
	}
	return names, nil
}

// ListLibEds returns every liberal-education requirement.
func (s *Store) ListLibEds(ctx context.Context) ([]types.LibEd, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM libed ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing libeds: %w", err)
	}
	defer rows.Close()

	var libeds []types.LibEd
	for rows.Next() {
		var l types.LibEd
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("scanning libed: %w", err)
		}
		libeds = append(libeds, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating libeds: %w", err)
	}
	return libeds, nil
}

// FindLibEd resolves a requirement by partial name match.
func (s *Store) FindLibEd(ctx context.Context, name string) (*types.LibEd, error) {
	var l types.LibEd
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM libed WHERE name LIKE ? ORDER BY name LIMIT 1`,
		"%"+name+"%").Scan(&l.ID, &l.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("liberal education requirement %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("finding libed: %w", err)
	}
	return &l, nil
}

// LibEdCourses lists courses fulfilling a requirement, most-attended first.
func (s *Store) LibEdCourses(ctx context.Context, libedID int, campus string, limit int) ([]types.Course, error) {
	query := `SELECT c.` + joinCourseColumns() + `
		FROM libedAssociationTable lat
		JOIN classdistribution c ON lat.right_id = c.id
		WHERE lat.left_id = ? AND c.campus = ?
		ORDER BY c.total_students DESC`
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}
	rows, err := s.db.QueryContext(ctx, query, libedID, campus)
	if err != nil {
		return nil, fmt.Errorf("listing libed courses: %w", err)
	}
	defer rows.Close()

	var courses []types.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating libed courses: %w", err)
	}
	return courses, nil
}

// joinCourseColumns prefixes every course column with the c. alias.
func joinCourseColumns() string {
	return `id, c.campus, c.dept_abbr, c.course_num, c.class_desc,
		c.total_students, c.total_grades, c.onestop, c.onestop_desc, c.cred_min, c.cred_max, c.srt_vals`
}

func scanDepartment(rows *sql.Rows) (types.Department, error) {
	var d types.Department
	var grades sql.NullString
	if err := rows.Scan(&d.ID, &d.Campus, &d.DeptAbbr, &d.DeptName, &d.TotalStudents, &grades); err != nil {
		return types.Department{}, fmt.Errorf("scanning department: %w", err)
	}
	d.TotalGrades = parseGrades(grades)
	return d, nil
}
