// Package testutil provides an in-memory grades database pre-loaded with a
// small, internally consistent fixture set.
package testutil

import (
	"testing"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/store"
)

// NewTestStore creates an in-memory store seeded with fixture data. The
// store is closed when the test completes.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	seed(t, s)
	return s
}

// Fixture layout:
//
//	CSCI 5511 (id 1) taught by Karypis (101) in Fall 2019 + Fall 2023 and
//	by Smith (102) in Spring 2021; CSCI 1133 (id 2) taught by Karypis in
//	Fall 2023; HIST 1001 (id 3) with no recorded instructor, Summer 2019.
//	Course totals equal the sums of their term distributions.
func seed(t *testing.T, s *store.Store) {
	t.Helper()
	stmts := []string{
		`INSERT INTO classdistribution
			(id, campus, dept_abbr, course_num, class_desc, total_students, total_grades, onestop, onestop_desc, cred_min, cred_max, srt_vals) VALUES
			(1, 'UMNTC', 'CSCI', '5511', 'Artificial Intelligence I', 140,
				'{"A":50,"A-":20,"B+":20,"B":30,"F":10,"W":10}',
				'https://onestop.example/csci5511', 'Search, planning, and reasoning.', 3, 3,
				'{"Deep Understanding":5.1,"Recommend":5.3}'),
			(2, 'UMNTC', 'CSCI', '1133', 'Introduction to Computing and Programming Concepts', 160,
				'{"A":80,"B":40,"C":20,"D":10,"F":10}',
				'https://onestop.example/csci1133', 'Programming in Python.', 4, 4, NULL),
			(3, 'UMNTC', 'HIST', '1001', 'Introduction to World History', 10,
				'{"A":5,"S":5}', NULL, NULL, 3, 3, NULL)`,
		`INSERT INTO professor (id, name, RMP_score, RMP_diff, RMP_link, x500) VALUES
			(101, 'George Karypis', 4.5, 3.2, 'https://rmp.example/karypis', 'karypis'),
			(102, 'Jane Smith', NULL, NULL, NULL, 'smithj')`,
		`INSERT INTO distribution (id, class_id, professor_id) VALUES
			(11, 1, 101),
			(12, 1, 102),
			(13, 2, 101),
			(14, 3, NULL)`,
		`INSERT INTO termdistribution (id, dist_id, term, students, grades) VALUES
			(21, 11, 1199, 45, '{"A":20,"A-":10,"B+":10,"W":5}'),
			(22, 11, 1239, 75, '{"A":20,"A-":10,"B+":10,"B":20,"F":10,"W":5}'),
			(23, 12, 1213, 20, '{"A":10,"B":10}'),
			(24, 13, 1239, 160, '{"A":80,"B":40,"C":20,"D":10,"F":10}'),
			(25, 14, 1195, 10, '{"A":5,"S":5}')`,
		`INSERT INTO departmentdistribution (id, campus, dept_abbr, dept_name, total_students, total_grades) VALUES
			(1, 'UMNTC', 'CSCI', 'Computer Science', 300,
				'{"A":130,"A-":20,"B+":20,"B":70,"C":20,"D":10,"F":20,"W":10}'),
			(2, 'UMNTC', 'HIST', 'History', 10, '{"A":5,"S":5}')`,
		`INSERT INTO libed (id, name) VALUES
			(1, 'Historical Perspectives'),
			(2, 'Technology and Society')`,
		`INSERT INTO libedAssociationTable (left_id, right_id) VALUES
			(1, 3),
			(2, 1)`,
	}
	for _, stmt := range stmts {
		if _, err := s.DB().Exec(stmt); err != nil {
			t.Fatalf("seeding test data: %v", err)
		}
	}
}
