package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"starmap-route-service/internal/databuild"
	"starmap-route-service/internal/domain"
)

func TestLoadAssetCatalog(t *testing.T) {
	dir := t.TempDir()

	d := &databuild.Dataset{
		Systems: []domain.StarSystem{
			{ID: 30000142, Name: "Nod", X: 1},
			{ID: 30002187, Name: "Brightwater", Z: -1},
		},
		Jumps: []domain.Jump{{From: 30000142, To: 30002187}},
	}
	if err := databuild.WriteAssets(d, dir); err != nil {
		t.Fatalf("write assets: %v", err)
	}

	c, err := LoadAssetCatalog(dir)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("catalog size = %d, want 2", c.Len())
	}

	ctx := context.Background()
	name, ok, err := c.SystemName(ctx, 30000142)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok || name != "Nod" {
		t.Fatalf("lookup = (%q, %v), want (Nod, true)", name, ok)
	}

	if _, ok, _ := c.SystemName(ctx, 30000999); ok {
		t.Fatal("expected an unknown system to miss")
	}
}

func TestLoadAssetCatalogManifest(t *testing.T) {
	dir := t.TempDir()

	d := &databuild.Dataset{
		Systems: []domain.StarSystem{{ID: 1, Name: "One"}},
	}
	if err := databuild.WriteAssets(d, dir); err != nil {
		t.Fatalf("write assets: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, databuild.ManifestFile))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	var m struct {
		Counts struct {
			Systems int `json:"systems"`
			Jumps   int `json:"jumps"`
		} `json:"counts"`
		CoordSystem struct {
			Units string `json:"units"`
		} `json:"coord_system"`
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if m.Counts.Systems != 1 || m.Counts.Jumps != 0 {
		t.Fatalf("manifest counts = %+v", m.Counts)
	}
	if m.CoordSystem.Units != "lightyears" {
		t.Fatalf("manifest units = %q", m.CoordSystem.Units)
	}
}

func TestLoadAssetCatalogBadIDFile(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "systems_ids.bin"), []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "systems_names.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadAssetCatalog(dir); err == nil {
		t.Fatal("expected an error for a truncated id file")
	}
}
