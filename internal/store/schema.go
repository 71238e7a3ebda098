package store

import (
	"database/sql"
	"fmt"
)

// schema mirrors the GopherGrades database layout. Production databases
// arrive pre-built; this DDL exists for tests and for inspecting fresh
// files with dbinfo.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS classdistribution (
		id INTEGER PRIMARY KEY,
		campus TEXT NOT NULL,
		dept_abbr TEXT NOT NULL,
		course_num TEXT NOT NULL,
		class_desc TEXT NOT NULL DEFAULT '',
		total_students INTEGER NOT NULL DEFAULT 0,
		total_grades TEXT,
		onestop TEXT,
		onestop_desc TEXT,
		cred_min INTEGER NOT NULL DEFAULT 0,
		cred_max INTEGER NOT NULL DEFAULT 0,
		srt_vals TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS professor (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		RMP_score REAL,
		RMP_diff REAL,
		RMP_link TEXT,
		x500 TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS distribution (
		id INTEGER PRIMARY KEY,
		class_id INTEGER NOT NULL REFERENCES classdistribution(id),
		professor_id INTEGER REFERENCES professor(id)
	)`,
	`CREATE TABLE IF NOT EXISTS termdistribution (
		id INTEGER PRIMARY KEY,
		dist_id INTEGER NOT NULL REFERENCES distribution(id),
		term INTEGER NOT NULL,
		students INTEGER NOT NULL DEFAULT 0,
		grades TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS departmentdistribution (
		id INTEGER PRIMARY KEY,
		campus TEXT NOT NULL,
		dept_abbr TEXT NOT NULL,
		dept_name TEXT NOT NULL,
		total_students INTEGER NOT NULL DEFAULT 0,
		total_grades TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS libed (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS libedAssociationTable (
		left_id INTEGER NOT NULL REFERENCES libed(id),
		right_id INTEGER NOT NULL REFERENCES classdistribution(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_classdistribution_lookup
		ON classdistribution(campus, dept_abbr, course_num)`,
	`CREATE INDEX IF NOT EXISTS idx_distribution_class ON distribution(class_id)`,
	`CREATE INDEX IF NOT EXISTS idx_distribution_professor ON distribution(professor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_termdistribution_dist ON termdistribution(dist_id)`,
}

// EnsureSchema applies the schema statements. Safe to run on an existing
// database.
func EnsureSchema(db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
