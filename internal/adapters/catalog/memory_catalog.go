package catalog

import "context"

// In-memory StarCatalog used by tests and local tooling.
type MemoryCatalog struct {
	Names map[int64]string
}

func NewMemoryCatalog(names map[int64]string) *MemoryCatalog {
	return &MemoryCatalog{Names: names}
}

func (m *MemoryCatalog) SystemName(ctx context.Context, id int64) (string, bool, error) {
	name, ok := m.Names[id]
	return name, ok, nil
}
