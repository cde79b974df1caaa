package databuild

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// Asset file names are part of the viewer contract; the fetch layer
// requests them verbatim.
const (
	PositionsFile = "systems_positions.bin"
	IDsFile       = "systems_ids.bin"
	NamesFile     = "systems_names.json"
	JumpsFile     = "jumps.bin"
	ManifestFile  = "manifest.json"
)

type assetSchema struct {
	Type       string `json:"type"`
	Components int    `json:"components,omitempty"`
	Meaning    string `json:"meaning,omitempty"`
}

type manifest struct {
	Counts struct {
		Systems int `json:"systems"`
		Jumps   int `json:"jumps"`
	} `json:"counts"`
	Schema      map[string]assetSchema `json:"schema"`
	CoordSystem struct {
		Units     string `json:"units"`
		Transform string `json:"transform"`
	} `json:"coord_system"`
}

// WriteAssets writes the binary asset set and manifest into outDir.
// Positions are float32 triplets and ids/jumps are uint32, all
// little-endian, matching the typed-array views the viewer maps over
// the fetched buffers.
func WriteAssets(d *Dataset, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("write assets: create %q: %w", outDir, err)
	}

	positions := make([]byte, 0, len(d.Systems)*12)
	ids := make([]byte, 0, len(d.Systems)*4)
	names := make(map[string]string, len(d.Systems))
	for _, s := range d.Systems {
		ids = binary.LittleEndian.AppendUint32(ids, uint32(s.ID))
		names[strconv.FormatInt(s.ID, 10)] = s.Name
		for _, v := range [3]float64{s.X, s.Y, s.Z} {
			positions = binary.LittleEndian.AppendUint32(positions, math.Float32bits(float32(v)))
		}
	}

	jumps := make([]byte, 0, len(d.Jumps)*8)
	for _, j := range d.Jumps {
		jumps = binary.LittleEndian.AppendUint32(jumps, uint32(j.From))
		jumps = binary.LittleEndian.AppendUint32(jumps, uint32(j.To))
	}

	namesJSON, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("write assets: encode names: %w", err)
	}

	var m manifest
	m.Counts.Systems = len(d.Systems)
	m.Counts.Jumps = len(d.Jumps)
	m.Schema = map[string]assetSchema{
		PositionsFile: {Type: "Float32Array", Components: 3},
		IDsFile:       {Type: "Uint32Array"},
		NamesFile:     {Type: "MapIdToName"},
		JumpsFile:     {Type: "Uint32Array", Components: 2, Meaning: "pairs of system IDs [a,b]"},
	}
	m.CoordSystem.Units = "lightyears"
	m.CoordSystem.Transform = "Rx(-90deg), i.e., (x,y,z)->(x,z,-y)"

	manifestJSON, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("write assets: encode manifest: %w", err)
	}

	files := map[string][]byte{
		PositionsFile: positions,
		IDsFile:       ids,
		NamesFile:     namesJSON,
		JumpsFile:     jumps,
		ManifestFile:  manifestJSON,
	}
	for name, data := range files {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write assets: write %q: %w", path, err)
		}
	}

	return nil
}
