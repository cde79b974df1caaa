package domain

import "testing"

func TestWaypointKindLabel(t *testing.T) {
	cases := []struct {
		kind WaypointKind
		want string
	}{
		{KindStart, "Start"},
		{KindJump, "Jump"},
		{KindNPCGate, "NPC Gate"},
		{KindSmartGate, "Smart Gate"},
		{WaypointKind(4), "Unknown"},
		{WaypointKind(9), "Unknown"},
	}

	for _, c := range cases {
		if got := c.kind.Label(); got != c.want {
			t.Errorf("Label(%d) = %q, want %q", c.kind, got, c.want)
		}
	}
}
