package databuild

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "static.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	statements := []string{
		`CREATE TABLE SolarSystems (
			solarSystemId INTEGER PRIMARY KEY,
			name TEXT,
			centerX REAL, centerY REAL, centerZ REAL
		)`,
		`CREATE TABLE Jumps (fromSystemId INTEGER, toSystemId INTEGER)`,
		`INSERT INTO SolarSystems VALUES
			(30000142, 'Nod', 9.4607304725808e15, 0, 0),
			(30002187, 'Brightwater', 0, 9.4607304725808e15, 0),
			(30000999, 'V-001', 0, 0, 0)`,
		`INSERT INTO Jumps VALUES
			(30000142, 30002187),
			(30000142, 30000999),
			(30002187, NULL)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}

	return db
}

func TestExtractInfersSchema(t *testing.T) {
	db := openTestDB(t)

	d, err := Extract(db, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(d.Systems) != 2 {
		t.Fatalf("expected 2 systems, got %d", len(d.Systems))
	}
	if d.FilteredSystems != 1 {
		t.Fatalf("filtered systems = %d, want 1", d.FilteredSystems)
	}

	byID := map[int64]int{}
	for i, s := range d.Systems {
		byID[s.ID] = i
	}
	nod := d.Systems[byID[30000142]]
	if nod.Name != "Nod" {
		t.Fatalf("system 30000142 name = %q, want Nod", nod.Name)
	}
	// 1 ly on the source x axis stays on x after the rotation.
	if nod.X < 0.999 || nod.X > 1.001 || nod.Y != 0 || nod.Z != 0 {
		t.Fatalf("system 30000142 position = (%v, %v, %v), want (1, 0, 0)", nod.X, nod.Y, nod.Z)
	}
	// 1 ly on the source y axis rotates onto -z.
	bw := d.Systems[byID[30002187]]
	if bw.Y != 0 || bw.Z < -1.001 || bw.Z > -0.999 {
		t.Fatalf("system 30002187 position = (%v, %v, %v), want (0, 0, -1)", bw.X, bw.Y, bw.Z)
	}

	if len(d.Jumps) != 1 {
		t.Fatalf("expected 1 jump, got %d: %+v", len(d.Jumps), d.Jumps)
	}
	if d.Jumps[0].From != 30000142 || d.Jumps[0].To != 30002187 {
		t.Fatalf("jump = %+v", d.Jumps[0])
	}
	if d.FilteredJumps != 1 {
		t.Fatalf("filtered jumps = %d, want 1", d.FilteredJumps)
	}
}

func TestExtractExplicitOverrides(t *testing.T) {
	db := openTestDB(t)

	d, err := Extract(db, Options{
		SystemsTable:  "SolarSystems",
		SystemIDCol:   "solarSystemId",
		SystemNameCol: "name",
		SystemXCol:    "centerX",
		SystemYCol:    "centerY",
		SystemZCol:    "centerZ",
		JumpsTable:    "Jumps",
		JumpFromCol:   "fromSystemId",
		JumpToCol:     "toSystemId",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Systems) != 2 || len(d.Jumps) != 1 {
		t.Fatalf("systems=%d jumps=%d, want 2/1", len(d.Systems), len(d.Jumps))
	}
}
