package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"starmap-route-service/internal/adapters/catalog"
	"starmap-route-service/internal/config"
	"starmap-route-service/internal/domain"
	"starmap-route-service/internal/platform/obs"
	"starmap-route-service/internal/routetoken"
	"starmap-route-service/internal/services"
)

type waypointSpec struct {
	SystemID int64 `json:"system_id"`
	Kind     uint8 `json:"kind"`
}

// routetool is the producer-side counterpart of the viewer: it turns a
// waypoint list into a shareable URL token, and decodes tokens for
// inspection.
func main() {
	encodePath := flag.String("encode", "", "encode waypoints from a JSON file ('-' for stdin) and print the token")
	decodeToken := flag.String("decode", "", "decode a token and print its waypoints")
	dataDir := flag.String("data", "", "asset directory for system name lookups when decoding")
	flag.Parse()

	logger := obs.NewLogger(config.Get("LOG_LEVEL", "warn"), config.Get("LOG_FORMAT", "console"))
	defer func() { _ = logger.Sync() }()

	switch {
	case *encodePath != "":
		if err := runEncode(*encodePath); err != nil {
			logger.Fatal("encode route", zap.Error(err))
		}
	case *decodeToken != "":
		if err := runDecode(*decodeToken, *dataDir); err != nil {
			logger.Fatal("decode route", zap.Error(err))
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: routetool -encode waypoints.json | -decode TOKEN [-data ./public/data]")
		flag.PrintDefaults()
		os.Exit(2)
	}
}

func runEncode(path string) error {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read waypoints: %w", err)
	}

	var specs []waypointSpec
	if err := json.Unmarshal(raw, &specs); err != nil {
		return fmt.Errorf("parse waypoints: %w", err)
	}

	route := make([]domain.Waypoint, 0, len(specs))
	for _, s := range specs {
		route = append(route, domain.Waypoint{
			SystemID: s.SystemID,
			Kind:     domain.WaypointKind(s.Kind),
		})
	}

	token, err := routetoken.EncodeToken(route)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func runDecode(token, dataDir string) error {
	if dataDir == "" {
		route, err := routetoken.DecodeToken(token)
		if err != nil {
			return err
		}
		for i, wp := range route {
			fmt.Printf("%3d  %-10d %s\n", i+1, wp.SystemID, wp.Kind.Label())
		}
		return nil
	}

	assetCatalog, err := catalog.LoadAssetCatalog(dataDir)
	if err != nil {
		return err
	}
	resolver := &services.RouteResolver{Catalog: assetCatalog}

	route, err := resolver.Resolve(context.Background(), token)
	if err != nil {
		return err
	}
	for i, wp := range route {
		marker := ""
		if !wp.Known {
			marker = "  (not in catalog)"
		}
		fmt.Printf("%3d  %-10d %-12s %s%s\n", i+1, wp.SystemID, wp.Kind.Label(), wp.Name, marker)
	}
	return nil
}
