package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"starmap-route-service/internal/adapters/cache"
	"starmap-route-service/internal/adapters/catalog"
	"starmap-route-service/internal/api"
	"starmap-route-service/internal/config"
	"starmap-route-service/internal/platform/db"
	"starmap-route-service/internal/platform/obs"
	"starmap-route-service/internal/ports"
	"starmap-route-service/internal/services"
)

// main is the application composition root.
// It wires a star catalog and optional route cache behind ports and
// starts the HTTP server the viewer talks to.
func main() {
	noEnvFile := false
	if err := godotenv.Load(); err != nil {
		noEnvFile = true
	}

	logger := obs.NewLogger(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	defer func() { _ = logger.Sync() }()
	if noEnvFile {
		logger.Info("no .env file found, using environment variables")
	}

	port := config.Get("PORT", "8080")
	dataDir := config.Get("DATA_DIR", "public/data")

	var starCatalog ports.StarCatalog
	switch source := strings.ToLower(config.Get("CATALOG_SOURCE", "assets")); source {
	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			logger.Fatal("DATABASE_URL is required when CATALOG_SOURCE=postgres")
		}
		pg, err := db.Open(databaseURL)
		if err != nil {
			logger.Fatal("open postgres catalog", zap.Error(err))
		}
		defer pg.Close()
		starCatalog = catalog.NewPostgresCatalog(pg)
		logger.Info("star catalog loaded from postgres")
	case "assets":
		assetCatalog, err := catalog.LoadAssetCatalog(dataDir)
		if err != nil {
			logger.Fatal("load asset catalog", zap.String("dir", dataDir), zap.Error(err))
		}
		starCatalog = assetCatalog
		logger.Info("star catalog loaded from assets",
			zap.String("dir", dataDir),
			zap.Int("systems", assetCatalog.Len()),
		)
	default:
		logger.Fatal("unknown CATALOG_SOURCE", zap.String("source", source))
	}

	// The route cache is optional; without Redis every resolve decodes
	// and looks up directly, which is cheap enough for small routes.
	var routeCache ports.RouteCache
	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()
		routeCache = cache.NewRedisRouteCache(client, time.Hour)
		logger.Info("route cache enabled", zap.String("addr", addr))
	}

	resolver := &services.RouteResolver{
		Catalog: starCatalog,
		Cache:   routeCache,
		Log:     logger,
	}
	router := api.NewRouter(resolver, dataDir, logger)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Info("server listening", zap.String("addr", srv.Addr))
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}
