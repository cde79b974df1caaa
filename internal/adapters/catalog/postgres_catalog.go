package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"starmap-route-service/internal/domain"
)

// Postgres-backed implementation of the StarCatalog port, for hosted
// deployments where the star data lives in a database instead of the
// built asset files.
type PostgresCatalog struct{ DB *sql.DB }

func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{DB: db}
}

func (c *PostgresCatalog) SystemName(ctx context.Context, id int64) (string, bool, error) {
	if c.DB == nil {
		return "", false, errors.New("star catalog: db is nil")
	}

	var name string
	err := c.DB.QueryRowContext(ctx,
		`SELECT name FROM star_systems WHERE system_id = $1`, id,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("star catalog: query system %d: %w", id, err)
	}

	return name, true, nil
}

// Initialize the Postgres star catalog schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS star_systems (
		system_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		x DOUBLE PRECISION NOT NULL DEFAULT 0,
		y DOUBLE PRECISION NOT NULL DEFAULT 0,
		z DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init schema: create star_systems: %w", err)
	}

	return nil
}

// ImportSystems upserts the given systems into the Postgres catalog.
// Used by the data builder to mirror a built data set into a hosted
// deployment.
func ImportSystems(db *sql.DB, systems []domain.StarSystem) error {
	if db == nil {
		return errors.New("import systems: DB is nil")
	}
	if len(systems) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("import systems: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO star_systems (system_id, name, x, y, z)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (system_id) DO UPDATE
	SET name = EXCLUDED.name, x = EXCLUDED.x, y = EXCLUDED.y, z = EXCLUDED.z;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("import systems: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, s := range systems {
		if _, err := stmt.Exec(s.ID, s.Name, s.X, s.Y, s.Z); err != nil {
			return fmt.Errorf("import systems: upsert system_id=%d: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import systems: commit tx: %w", err)
	}

	return nil
}
