package api

import (
	"net/http"

	"go.uber.org/zap"

	"starmap-route-service/internal/api/handlers"
	"starmap-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// dataDir, when non-empty, is served under /data/ so the viewer can
// fetch the built star/jump assets from the same origin.
func NewRouter(resolver *services.RouteResolver, dataDir string, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Resolver: resolver}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes/resolve", routeHandler.Resolve)
	mux.HandleFunc("/routes/token", routeHandler.Encode)

	if dataDir != "" {
		mux.Handle("/data/", http.StripPrefix("/data/", http.FileServer(http.Dir(dataDir))))
	}

	return loggingMiddleware(log, mux)
}
