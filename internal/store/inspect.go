package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Column describes one column of a table as reported by PRAGMA table_info.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
	Default    *string
}

// ForeignKey describes one outgoing reference of a table.
type ForeignKey struct {
	FromColumn string
	Table      string
	ToColumn   string
}

// TableInfo is a structural summary of one table.
type TableInfo struct {
	Name        string
	RowCount    int
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Tables lists user table names in the database.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}
	return names, nil
}

// TableInfo inspects one table's columns, row count, and foreign keys.
// Table names come from Tables, never from user input.
func (s *Store) TableInfo(ctx context.Context, name string) (*TableInfo, error) {
	info := &TableInfo{Name: name}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", name))
	if err != nil {
		return nil, fmt.Errorf("inspecting table %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid, notNull, pk int
			col              Column
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", name, err)
		}
		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		if dflt.Valid {
			col.Default = &dflt.String
		}
		info.Columns = append(info.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns of %s: %w", name, err)
	}
	if len(info.Columns) == 0 {
		return nil, fmt.Errorf("table %s: %w", name, ErrNotFound)
	}

	fkRows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%q)", name))
	if err != nil {
		return nil, fmt.Errorf("inspecting foreign keys of %s: %w", name, err)
	}
	defer fkRows.Close()

	for fkRows.Next() {
		var (
			id, seq                     int
			fk                          ForeignKey
			toCol                       sql.NullString
			onUpdate, onDelete, matchOp string
		)
		if err := fkRows.Scan(&id, &seq, &fk.Table, &fk.FromColumn, &toCol,
			&onUpdate, &onDelete, &matchOp); err != nil {
			return nil, fmt.Errorf("scanning foreign key of %s: %w", name, err)
		}
		fk.ToColumn = toCol.String
		info.ForeignKeys = append(info.ForeignKeys, fk)
	}
	if err := fkRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating foreign keys of %s: %w", name, err)
	}

	if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", name)).Scan(&info.RowCount); err != nil {
		return nil, fmt.Errorf("counting rows of %s: %w", name, err)
	}

	return info, nil
}
