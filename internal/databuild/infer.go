package databuild

import (
	"database/sql"
	"fmt"
	"strings"
)

// Schema inference for arbitrary static DB exports: table and column
// names vary between data dumps, so everything can be overridden by
// flags but defaults to a keyword search over the schema.

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table'`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list tables: scan: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: iterate: %w", err)
	}

	return tables, nil
}

// inferTable picks the first table whose name contains one of the
// keywords, falling back to the first table in the schema.
func inferTable(db *sql.DB, keywords []string) (string, error) {
	tables, err := listTables(db)
	if err != nil {
		return "", err
	}

	for _, t := range tables {
		tl := strings.ToLower(t)
		for _, k := range keywords {
			if strings.Contains(tl, k) {
				return t, nil
			}
		}
	}
	if len(tables) > 0 {
		return tables[0], nil
	}
	return "", nil
}

func tableColumns(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info(%q)`, table))
	if err != nil {
		return nil, fmt.Errorf("table columns %q: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("table columns %q: scan: %w", table, err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table columns %q: iterate: %w", table, err)
	}

	return cols, nil
}

// findColumn returns the first column matching a candidate exactly,
// case-insensitively.
func findColumn(cols []string, candidates []string) string {
	for _, cand := range candidates {
		for _, c := range cols {
			if strings.ToLower(c) == cand {
				return c
			}
		}
	}
	return ""
}

// findColumnContaining returns the first column whose lowercased name
// contains every part.
func findColumnContaining(cols []string, parts ...string) string {
	for _, c := range cols {
		cl := strings.ToLower(c)
		all := true
		for _, p := range parts {
			if !strings.Contains(cl, p) {
				all = false
				break
			}
		}
		if all {
			return c
		}
	}
	return ""
}
