package domain

// One star in the viewer catalog. Coordinates are light-years in the
// viewer frame, i.e. after the builder's meters conversion and
// Rx(-90 deg) rotation.
type StarSystem struct {
	ID   int64
	Name string
	X    float64
	Y    float64
	Z    float64
}

// A directed jump connection between two systems.
type Jump struct {
	From int64
	To   int64
}
