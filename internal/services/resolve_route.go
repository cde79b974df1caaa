package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"starmap-route-service/internal/domain"
	"starmap-route-service/internal/platform/obs"
	"starmap-route-service/internal/ports"
	"starmap-route-service/internal/routetoken"
)

// RouteResolver turns a route token into waypoints enriched with
// display names and catalog membership. This is the single consumer
// entry point the viewer calls after extracting a token from the URL.
type RouteResolver struct {
	Catalog ports.StarCatalog
	Cache   ports.RouteCache // optional
	Log     *zap.Logger
}

// Resolve decodes the token and looks every waypoint up in the star
// catalog. Systems missing from the catalog come back with Known=false
// and the numeric id as a fallback name. Cache failures are logged and
// degrade to direct resolution; a decode failure is returned as-is so
// the caller can classify it.
func (s *RouteResolver) Resolve(ctx context.Context, token string) (route []domain.ResolvedWaypoint, err error) {
	defer obs.Time(ctx, "resolve_route")(&err)

	if strings.TrimSpace(token) == "" {
		return nil, errors.New("resolve route: token must not be empty")
	}
	if s.Catalog == nil {
		return nil, errors.New("resolve route: catalog is nil")
	}

	if s.Cache != nil {
		cached, hit, cerr := s.Cache.GetRoute(ctx, token)
		if cerr != nil {
			s.log().Warn("route cache read failed", zap.Error(cerr))
		} else if hit {
			return cached, nil
		}
	}

	waypoints, err := routetoken.DecodeToken(token)
	if err != nil {
		return nil, fmt.Errorf("resolve route: %w", err)
	}

	route = make([]domain.ResolvedWaypoint, 0, len(waypoints))
	for _, wp := range waypoints {
		name, known, err := s.Catalog.SystemName(ctx, wp.SystemID)
		if err != nil {
			return nil, fmt.Errorf("resolve route: look up system %d: %w", wp.SystemID, err)
		}
		if !known || name == "" {
			name = strconv.FormatInt(wp.SystemID, 10)
		}
		route = append(route, domain.ResolvedWaypoint{
			Waypoint: wp,
			Name:     name,
			Known:    known,
		})
	}

	if s.Cache != nil {
		if err := s.Cache.PutRoute(ctx, token, route); err != nil {
			s.log().Warn("route cache write failed", zap.Error(err))
		}
	}

	return route, nil
}

func (s *RouteResolver) log() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.L()
}
