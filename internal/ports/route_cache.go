package ports

import (
	"context"

	"starmap-route-service/internal/domain"
)

// Port: a cache of resolved routes keyed by their token text. Cache
// failures must never fail a resolve call; callers degrade to direct
// resolution.
type RouteCache interface {
	// Fetch a previously resolved route. The second result reports a
	// cache hit.
	GetRoute(ctx context.Context, token string) ([]domain.ResolvedWaypoint, bool, error)
	// Store a resolved route.
	PutRoute(ctx context.Context, token string, route []domain.ResolvedWaypoint) error
}
