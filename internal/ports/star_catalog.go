package ports

import "context"

// Port: a boundary for resolving system identifiers against the loaded
// star catalog.
type StarCatalog interface {
	// Return the display name for a system id and whether the id
	// exists in the catalog. A missing id is not an error; routes may
	// reference systems outside the loaded data set.
	SystemName(ctx context.Context, id int64) (string, bool, error)
}
