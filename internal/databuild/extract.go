package databuild

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"starmap-route-service/internal/domain"
)

// Options overrides schema inference. Empty fields are auto-detected.
type Options struct {
	SystemsTable  string
	SystemIDCol   string
	SystemNameCol string
	SystemXCol    string
	SystemYCol    string
	SystemZCol    string

	JumpsTable  string
	JumpFromCol string
	JumpToCol   string
}

// Dataset is the extracted, filtered and transformed star data, ready
// to be written as viewer assets.
type Dataset struct {
	Systems         []domain.StarSystem
	Jumps           []domain.Jump
	FilteredSystems int
	FilteredJumps   int
}

// Extract reads systems and jumps out of the static DB. Placeholder
// systems are dropped, coordinates come back in the viewer frame in
// light-years, and jumps whose endpoints were not both retained are
// filtered out.
func Extract(db *sql.DB, opts Options) (*Dataset, error) {
	systemsTable := opts.SystemsTable
	if systemsTable == "" {
		var err error
		systemsTable, err = inferTable(db, []string{"system"})
		if err != nil {
			return nil, fmt.Errorf("extract: %w", err)
		}
	}
	if systemsTable == "" {
		return nil, errors.New("extract: could not find a systems table; specify one explicitly")
	}

	d := &Dataset{}
	if err := extractSystems(db, systemsTable, opts, d); err != nil {
		return nil, err
	}

	jumpsTable := opts.JumpsTable
	if jumpsTable == "" {
		var err error
		jumpsTable, err = inferTable(db, []string{"jump", "gate", "link"})
		if err != nil {
			return nil, fmt.Errorf("extract: %w", err)
		}
	}
	if jumpsTable != "" {
		if err := extractJumps(db, jumpsTable, opts, d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func extractSystems(db *sql.DB, table string, opts Options, d *Dataset) error {
	cols, err := tableColumns(db, table)
	if err != nil {
		return fmt.Errorf("extract systems: %w", err)
	}
	if len(cols) == 0 {
		return fmt.Errorf("extract systems: table %q has no columns", table)
	}

	idCol := opts.SystemIDCol
	if idCol == "" {
		idCol = findColumn(cols, []string{"id", "system_id", "solarsystemid", "smart_object_id"})
	}
	if idCol == "" {
		idCol = cols[0]
	}
	nameCol := opts.SystemNameCol
	if nameCol == "" {
		nameCol = findColumn(cols, []string{"name", "system_name", "label"})
	}
	xCol := opts.SystemXCol
	if xCol == "" {
		xCol = findColumn(cols, []string{"x", "posx", "position_x", "world_x", "centerx"})
	}
	yCol := opts.SystemYCol
	if yCol == "" {
		yCol = findColumn(cols, []string{"y", "posy", "position_y", "world_y", "centery"})
	}
	zCol := opts.SystemZCol
	if zCol == "" {
		zCol = findColumn(cols, []string{"z", "posz", "position_z", "world_z", "centerz"})
	}

	selected := []string{quoteIdent(idCol)}
	if nameCol != "" {
		selected = append(selected, quoteIdent(nameCol))
	}
	for _, c := range []string{xCol, yCol, zCol} {
		if c != "" {
			selected = append(selected, quoteIdent(c))
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, strings.Join(selected, ", "), quoteIdent(table))
	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("extract systems: query %q: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id      int64
			name    sql.NullString
			x, y, z sql.NullFloat64
		)

		dest := []any{&id}
		if nameCol != "" {
			dest = append(dest, &name)
		}
		if xCol != "" {
			dest = append(dest, &x)
		}
		if yCol != "" {
			dest = append(dest, &y)
		}
		if zCol != "" {
			dest = append(dest, &z)
		}
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("extract systems: scan: %w", err)
		}

		displayName := name.String
		if displayName == "" {
			displayName = strconv.FormatInt(id, 10)
		}
		if IsPlaceholderName(displayName) {
			d.FilteredSystems++
			continue
		}
		if id < 0 || id > math.MaxUint32 {
			return fmt.Errorf("extract systems: system id %d outside the asset format range", id)
		}

		tx, ty, tz := TransformXYZ(x.Float64, y.Float64, z.Float64)
		d.Systems = append(d.Systems, domain.StarSystem{
			ID:   id,
			Name: displayName,
			X:    tx,
			Y:    ty,
			Z:    tz,
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("extract systems: iterate: %w", err)
	}

	return nil
}

func extractJumps(db *sql.DB, table string, opts Options, d *Dataset) error {
	cols, err := tableColumns(db, table)
	if err != nil {
		return fmt.Errorf("extract jumps: %w", err)
	}

	fromCol := opts.JumpFromCol
	if fromCol == "" {
		fromCol = firstNonEmpty(
			findColumnContaining(cols, "from", "id"),
			findColumnContaining(cols, "a", "id"),
			findColumnContaining(cols, "source"),
		)
	}
	toCol := opts.JumpToCol
	if toCol == "" {
		toCol = firstNonEmpty(
			findColumnContaining(cols, "to", "id"),
			findColumnContaining(cols, "b", "id"),
			findColumnContaining(cols, "target"),
		)
	}
	if fromCol == "" || toCol == "" {
		// No usable jump columns; the viewer renders systems without
		// connections.
		return nil
	}

	query := fmt.Sprintf(`SELECT %s, %s FROM %s`,
		quoteIdent(fromCol), quoteIdent(toCol), quoteIdent(table))
	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("extract jumps: query %q: %w", table, err)
	}
	defer rows.Close()

	valid := make(map[int64]struct{}, len(d.Systems))
	for _, s := range d.Systems {
		valid[s.ID] = struct{}{}
	}

	for rows.Next() {
		var from, to sql.NullInt64
		if err := rows.Scan(&from, &to); err != nil {
			return fmt.Errorf("extract jumps: scan: %w", err)
		}
		if !from.Valid || !to.Valid {
			continue
		}

		_, okFrom := valid[from.Int64]
		_, okTo := valid[to.Int64]
		if !okFrom || !okTo {
			d.FilteredJumps++
			continue
		}
		d.Jumps = append(d.Jumps, domain.Jump{From: from.Int64, To: to.Int64})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("extract jumps: iterate: %w", err)
	}

	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
