package routetoken

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"starmap-route-service/internal/domain"
)

func TestEncodeRawGoldenBytes(t *testing.T) {
	// Cross-implementation fixture: every port of the codec must
	// produce these exact bytes for this route.
	route := []domain.Waypoint{
		{SystemID: 30000142, Kind: domain.KindJump},
		{SystemID: 30002187, Kind: domain.KindStart},
		{SystemID: 30000144, Kind: domain.KindJump},
	}

	buf, err := EncodeRaw(route)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{0x01, 0x0C, 0x00, 0x03, 0x08, 0xE6, 0x22, 0xC0, 0x90, 0x40}
	if !bytes.Equal(buf, want) {
		t.Fatalf("encoded bytes = %X, want %X", buf, want)
	}

	back, err := DecodeRaw(buf)
	if err != nil {
		t.Fatalf("decode golden buffer: %v", err)
	}
	assertRoutesEqual(t, back, route)
}

func TestEncodeRawMinimalWidth(t *testing.T) {
	cases := []struct {
		maxOffset int64
		wantK     byte
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{2187, 12},
		{1<<14 - 1, 14},
		{1 << 14, 15},
		{1<<30 - 1, 30},
	}

	for _, c := range cases {
		route := []domain.Waypoint{{SystemID: domain.BaseSystemID + c.maxOffset, Kind: domain.KindJump}}
		buf, err := EncodeRaw(route)
		if err != nil {
			t.Fatalf("offset %d: unexpected error: %v", c.maxOffset, err)
		}
		if buf[1] != c.wantK {
			t.Errorf("offset %d: k = %d, want %d", c.maxOffset, buf[1], c.wantK)
		}
	}
}

func TestEncodeRawPaddingBoundary(t *testing.T) {
	// One waypoint at k=1 is 3 payload bits: one payload byte with the
	// top 3 bits set from data and the bottom 5 zero.
	route := []domain.Waypoint{{SystemID: domain.BaseSystemID + 1, Kind: domain.KindSmartGate}}

	buf, err := EncodeRaw(route)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{0x01, 0x01, 0x00, 0x01, 0xE0}
	if !bytes.Equal(buf, want) {
		t.Fatalf("encoded bytes = %X, want %X", buf, want)
	}
}

func TestEncodeRawEmptyRoute(t *testing.T) {
	buf, err := EncodeRaw(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []byte{0x01, 0x01, 0x00, 0x00}; !bytes.Equal(buf, want) {
		t.Fatalf("encoded bytes = %X, want %X", buf, want)
	}

	route, err := DecodeRaw(buf)
	if err != nil {
		t.Fatalf("decode empty route: %v", err)
	}
	if len(route) != 0 {
		t.Fatalf("expected empty route, got %d waypoints", len(route))
	}
}

func TestEncodeRawKindTruncation(t *testing.T) {
	// Kinds are stored in 2 bits; 7 & 3 = 3. Lossy on purpose.
	route := []domain.Waypoint{{SystemID: domain.BaseSystemID + 5, Kind: domain.WaypointKind(7)}}

	buf, err := EncodeRaw(route)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back, err := DecodeRaw(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back[0].Kind != domain.KindSmartGate {
		t.Fatalf("kind = %d, want %d", back[0].Kind, domain.KindSmartGate)
	}
}

func TestEncodeRawIDBelowBase(t *testing.T) {
	route := []domain.Waypoint{
		{SystemID: domain.BaseSystemID + 1, Kind: domain.KindStart},
		{SystemID: domain.BaseSystemID - 1, Kind: domain.KindJump},
	}

	if _, err := EncodeRaw(route); !errors.Is(err, ErrIDBelowBase) {
		t.Fatalf("expected ErrIDBelowBase, got %v", err)
	}
}

func TestDecodeRawRejectsBadBuffers(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		want error
	}{
		{"empty", nil, ErrTooShort},
		{"three bytes", []byte{1, 1, 0}, ErrTooShort},
		{"version 0", []byte{0, 1, 0, 0}, ErrVersion},
		{"version 2", []byte{2, 12, 0, 3, 0x08, 0xE6, 0x22, 0xC0, 0x90, 0x40}, ErrVersion},
		{"width 0", []byte{1, 0, 0, 1, 0x00}, ErrBitWidth},
		{"width 31", []byte{1, 31, 0, 1, 0x00, 0x00, 0x00, 0x00, 0x20}, ErrBitWidth},
		{"payload cut short", []byte{1, 12, 0, 3, 0x08, 0xE6}, ErrShortPayload},
		{"payload missing", []byte{1, 1, 0, 2}, ErrShortPayload},
	}

	for _, c := range cases {
		if _, err := DecodeRaw(c.buf); !errors.Is(err, c.want) {
			t.Errorf("%s: error = %v, want %v", c.name, err, c.want)
		}
	}
}

func TestRawRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, n := range []int{1, 2, 3, 17, 255, 4096} {
		route := randomRoute(rng, n)
		buf, err := EncodeRaw(route)
		if err != nil {
			t.Fatalf("n=%d: encode: %v", n, err)
		}
		back, err := DecodeRaw(buf)
		if err != nil {
			t.Fatalf("n=%d: decode: %v", n, err)
		}
		assertRoutesEqual(t, back, route)
	}
}

func TestRawRoundTripMaxCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	route := randomRoute(rng, 65535)
	buf, err := EncodeRaw(route)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeRaw(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertRoutesEqual(t, back, route)

	route = append(route, domain.Waypoint{SystemID: domain.BaseSystemID, Kind: domain.KindJump})
	if _, err := EncodeRaw(route); !errors.Is(err, ErrRouteTooLong) {
		t.Fatalf("expected ErrRouteTooLong, got %v", err)
	}
}

func randomRoute(rng *rand.Rand, n int) []domain.Waypoint {
	route := make([]domain.Waypoint, n)
	for i := range route {
		route[i] = domain.Waypoint{
			SystemID: domain.BaseSystemID + rng.Int63n(1<<30),
			Kind:     domain.WaypointKind(rng.Intn(4)),
		}
	}
	return route
}

func assertRoutesEqual(t *testing.T, got, want []domain.Waypoint) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("route length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("waypoint %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
