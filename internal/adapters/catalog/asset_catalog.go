package catalog

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Asset-backed implementation of the StarCatalog port. It loads the
// id and name assets the data builder writes for the viewer and
// answers lookups from memory. The catalog is immutable after load
// and safe for concurrent use.
type AssetCatalog struct {
	names map[int64]string
}

// LoadAssetCatalog reads systems_ids.bin (uint32 little-endian) and
// systems_names.json (id -> name) from the asset directory.
func LoadAssetCatalog(dir string) (*AssetCatalog, error) {
	idsPath := filepath.Join(dir, "systems_ids.bin")
	raw, err := os.ReadFile(idsPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: read %q: %w", idsPath, err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("load catalog: %q length %d is not a multiple of 4", idsPath, len(raw))
	}

	namesPath := filepath.Join(dir, "systems_names.json")
	namesRaw, err := os.ReadFile(namesPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: read %q: %w", namesPath, err)
	}
	var byKey map[string]string
	if err := json.Unmarshal(namesRaw, &byKey); err != nil {
		return nil, fmt.Errorf("load catalog: parse %q: %w", namesPath, err)
	}

	names := make(map[int64]string, len(raw)/4)
	for off := 0; off < len(raw); off += 4 {
		id := int64(binary.LittleEndian.Uint32(raw[off:]))
		name, ok := byKey[strconv.FormatInt(id, 10)]
		if !ok || name == "" {
			// The name map can lag the id list; fall back to the
			// numeric id the way the viewer does.
			name = strconv.FormatInt(id, 10)
		}
		names[id] = name
	}

	return &AssetCatalog{names: names}, nil
}

// Len returns the number of systems in the catalog.
func (c *AssetCatalog) Len() int { return len(c.names) }

func (c *AssetCatalog) SystemName(ctx context.Context, id int64) (string, bool, error) {
	if c == nil || c.names == nil {
		return "", false, errors.New("star catalog: not loaded")
	}
	name, ok := c.names[id]
	return name, ok, nil
}
