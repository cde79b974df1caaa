package domain

// BaseSystemID anchors the system identifier universe. Route tokens
// only carry the offset above this base, never the raw identifier.
const BaseSystemID = 30_000_000

// WaypointKind is the 2-bit traversal category stored in the wire
// format for each waypoint.
type WaypointKind uint8

const (
	KindStart WaypointKind = iota
	KindJump
	KindNPCGate
	KindSmartGate
)

var kindLabels = [...]string{
	KindStart:     "Start",
	KindJump:      "Jump",
	KindNPCGate:   "NPC Gate",
	KindSmartGate: "Smart Gate",
}

// Label returns the display name for the kind. Values outside the
// 2-bit wire range can only come from externally constructed data and
// fall back to "Unknown" rather than failing.
func (k WaypointKind) Label() string {
	if int(k) < len(kindLabels) {
		return kindLabels[k]
	}
	return "Unknown"
}

// Represents a single stop in a travel route: which system to be in,
// and how the route arrives there.
type Waypoint struct {
	SystemID int64
	Kind     WaypointKind
}

// A Waypoint enriched with catalog data for display. Known reports
// whether the system id exists in the loaded star catalog; routes can
// legitimately reference systems the viewer has not loaded.
type ResolvedWaypoint struct {
	Waypoint
	Name  string
	Known bool
}
