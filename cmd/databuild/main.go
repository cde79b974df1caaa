package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"starmap-route-service/internal/adapters/catalog"
	"starmap-route-service/internal/config"
	"starmap-route-service/internal/databuild"
	"starmap-route-service/internal/platform/db"
	"starmap-route-service/internal/platform/obs"
)

// databuild extracts systems and jumps from a static SQLite star
// database and writes the binary assets the viewer fetches. When
// DATABASE_URL is set the extracted systems are also mirrored into the
// Postgres catalog for hosted deployments.
func main() {
	dbPath := flag.String("db", "", "path to the SQLite star database (required)")
	outDir := flag.String("out", "./public/data", "output directory for asset files")

	var opts databuild.Options
	flag.StringVar(&opts.SystemsTable, "systems-table", "", "override the systems table name")
	flag.StringVar(&opts.SystemIDCol, "sys-id-col", "", "override the system id column")
	flag.StringVar(&opts.SystemNameCol, "sys-name-col", "", "override the system name column")
	flag.StringVar(&opts.SystemXCol, "sys-x-col", "", "override the x coordinate column")
	flag.StringVar(&opts.SystemYCol, "sys-y-col", "", "override the y coordinate column")
	flag.StringVar(&opts.SystemZCol, "sys-z-col", "", "override the z coordinate column")
	flag.StringVar(&opts.JumpsTable, "jumps-table", "", "override the jumps table name")
	flag.StringVar(&opts.JumpFromCol, "jump-from-col", "", "override the jump origin column")
	flag.StringVar(&opts.JumpToCol, "jump-to-col", "", "override the jump target column")
	flag.Parse()

	_ = godotenv.Load()
	logger := obs.NewLogger(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	defer func() { _ = logger.Sync() }()

	if strings.TrimSpace(*dbPath) == "" {
		fmt.Fprintln(os.Stderr, "usage: databuild -db path/to/static.db [-out ./public/data]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	source, err := openSQLite(*dbPath)
	if err != nil {
		logger.Fatal("open star database", zap.Error(err))
	}
	defer source.Close()

	dataset, err := databuild.Extract(source, opts)
	if err != nil {
		logger.Fatal("extract star data", zap.Error(err))
	}

	if err := databuild.WriteAssets(dataset, *outDir); err != nil {
		logger.Fatal("write assets", zap.Error(err))
	}
	logger.Info("assets written",
		zap.String("out", *outDir),
		zap.Int("systems", len(dataset.Systems)),
		zap.Int("jumps", len(dataset.Jumps)),
		zap.Int("filtered_systems", dataset.FilteredSystems),
		zap.Int("filtered_jumps", dataset.FilteredJumps),
	)

	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			logger.Fatal("open postgres catalog", zap.Error(err))
		}
		defer pg.Close()

		if err := catalog.InitSchema(pg); err != nil {
			logger.Fatal("init postgres schema", zap.Error(err))
		}
		if err := catalog.ImportSystems(pg, dataset.Systems); err != nil {
			logger.Fatal("import systems into postgres", zap.Error(err))
		}
		logger.Info("systems mirrored to postgres", zap.Int("systems", len(dataset.Systems)))
	}
}

func openSQLite(path string) (*sql.DB, error) {
	source, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}
	if err := source.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", path, err)
	}
	return source, nil
}
