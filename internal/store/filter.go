package store

import "strings"

// filter composes a WHERE clause from the predicates that correspond to
// supplied parameters. Each add call contributes one predicate; absent
// parameters contribute nothing.
type filter struct {
	conds []string
	args  []any
}

func (f *filter) add(cond string, args ...any) {
	f.conds = append(f.conds, cond)
	f.args = append(f.args, args...)
}

// addIn appends "col IN (?,...)" for a non-empty value list.
func (f *filter) addIn(col string, values []string) {
	if len(values) == 0 {
		return
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
	f.conds = append(f.conds, col+" IN ("+placeholders+")")
	for _, v := range values {
		f.args = append(f.args, v)
	}
}

// where renders the clause, or an empty string when no predicate applies.
func (f *filter) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// squash removes spaces so "machine learning" matches "MachineLearning"
// style column contents, matching how search terms are normalized.
func squash(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
