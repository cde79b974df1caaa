package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"starmap-route-service/internal/api/dto"
	"starmap-route-service/internal/domain"
	"starmap-route-service/internal/routetoken"
	"starmap-route-service/internal/services"
)

type RouteHandler struct {
	Resolver *services.RouteResolver
}

// Resolve decodes a route token from the query string and returns the
// enriched waypoint list. A bad token is a client problem (400 with
// the classified cause); a catalog failure is ours (500). The viewer
// treats either as non-fatal and keeps rendering the map.
func (h *RouteHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		writeError(w, r, http.StatusBadRequest, "token is required")
		return
	}

	route, err := h.Resolver.Resolve(r.Context(), token)
	if err != nil {
		var tErr *routetoken.TokenError
		if errors.As(err, &tErr) {
			zap.L().Info("route token rejected",
				zap.String("reason", tErr.Reason),
				zap.Error(err),
			)
			msg := "could not decode route: " + tErr.Message
			if tErr.Reason == routetoken.ReasonNoRuntime {
				msg = "this runtime cannot decompress route links; upgrade required"
			}
			writeError(w, r, http.StatusBadRequest, msg)
			return
		}

		zap.L().Error("resolve route failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ResolveRouteResponse{
		Waypoints: make([]dto.ResolvedWaypointResponse, 0, len(route)),
	}
	for _, wp := range route {
		res.Waypoints = append(res.Waypoints, dto.ResolvedWaypointResponse{
			SystemID: wp.SystemID,
			Kind:     uint8(wp.Kind),
			Label:    wp.Kind.Label(),
			Name:     wp.Name,
			Known:    wp.Known,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Encode turns a JSON waypoint list into a shareable route token.
// This is the producer-side entry point for link-generation tools.
func (h *RouteHandler) Encode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.EncodeRouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	route := make([]domain.Waypoint, 0, len(req.Waypoints))
	for _, wp := range req.Waypoints {
		route = append(route, domain.Waypoint{
			SystemID: wp.SystemID,
			Kind:     domain.WaypointKind(wp.Kind),
		})
	}

	token, err := routetoken.EncodeToken(route)
	if err != nil {
		if errors.Is(err, routetoken.ErrIDBelowBase) || errors.Is(err, routetoken.ErrRouteTooLong) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		zap.L().Error("encode route failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.EncodeRouteResponse{Token: token})
}
