// Package routetoken implements the binary route encoding shared with
// the browser viewer: a bit-packed waypoint list, gzip-compressed and
// base64url-encoded for URL embedding. Tokens produced here decode in
// every other port of the codec and vice versa, so the byte layout is
// a compatibility contract, not an implementation detail.
package routetoken

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"

	"starmap-route-service/internal/domain"
)

// Raw wire layout, before compression:
//
//  0      version  u8, constant 1
//  1      k        u8, offset bit width, 1..30
//  2..3   count    u16, big-endian
//  4..    payload  count x (k+2)-bit records, MSB-first,
//                  zero-padded to the next byte boundary
//
// Each record is the system-id offset above domain.BaseSystemID in k
// bits, then the waypoint kind in 2 bits. k is the minimal width that
// represents the largest offset in the route, floored at 1.
const (
	Version = 1

	headerSize   = 4
	maxBitWidth  = 30
	maxWaypoints = 65535
	kindBits     = 2
)

// Caller-contract violations: bugs in the producing code, never
// attributable to a corrupt token.
var (
	ErrIDBelowBase  = errors.New("system id below base")
	ErrRouteTooLong = errors.New("route exceeds 65535 waypoints")
)

// Format errors: the buffer came from untrusted input and cannot be
// decoded.
var (
	ErrTooShort     = errors.New("buffer too short")
	ErrVersion      = errors.New("unsupported version")
	ErrBitWidth     = errors.New("invalid bit width")
	ErrShortPayload = errors.New("unexpected end of payload")
)

// bitWidth returns the minimal unsigned width for m, floored at 1.
// The floor is part of the wire contract: an all-zero-offset route
// still packs one offset bit per waypoint.
func bitWidth(m uint64) int {
	if m == 0 {
		return 1
	}
	return bits.Len64(m)
}

// EncodeRaw packs the route into its binary wire form. Waypoint order
// is traversal order and is preserved exactly. Kinds are masked to
// their low 2 bits; out-of-range kinds encode lossily rather than
// failing, matching the other ports of this codec.
func EncodeRaw(route []domain.Waypoint) ([]byte, error) {
	if len(route) > maxWaypoints {
		return nil, fmt.Errorf("encode route: %d waypoints: %w", len(route), ErrRouteTooLong)
	}

	var maxOffset uint64
	for i, wp := range route {
		if wp.SystemID < domain.BaseSystemID {
			return nil, fmt.Errorf("encode route: waypoint %d id %d: %w", i, wp.SystemID, ErrIDBelowBase)
		}
		if off := uint64(wp.SystemID - domain.BaseSystemID); off > maxOffset {
			maxOffset = off
		}
	}

	k := bitWidth(maxOffset)
	payloadBytes := (len(route)*(k+kindBits) + 7) / 8

	buf := make([]byte, headerSize, headerSize+payloadBytes)
	buf[0] = Version
	buf[1] = byte(k)
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(route)))

	w := bitWriter{buf: buf}
	for _, wp := range route {
		w.push(uint64(wp.SystemID-domain.BaseSystemID), uint(k))
		w.push(uint64(wp.Kind), kindBits)
	}
	w.flush()

	return w.buf, nil
}

// DecodeRaw is the exact inverse of EncodeRaw for any buffer EncodeRaw
// can produce. The decoder is the sole enforcement point for the 1..30
// bit-width range.
func DecodeRaw(buf []byte) ([]domain.Waypoint, error) {
	if len(buf) < headerSize {
		return nil, fmt.Errorf("decode route: %d bytes: %w", len(buf), ErrTooShort)
	}
	if buf[0] != Version {
		return nil, fmt.Errorf("decode route: version %d: %w", buf[0], ErrVersion)
	}
	k := int(buf[1])
	if k < 1 || k > maxBitWidth {
		return nil, fmt.Errorf("decode route: width %d: %w", k, ErrBitWidth)
	}
	count := int(binary.BigEndian.Uint16(buf[2:4]))

	r := bitReader{buf: buf[headerSize:]}
	route := make([]domain.Waypoint, 0, count)
	for i := 0; i < count; i++ {
		off, err := r.pull(uint(k))
		if err != nil {
			return nil, fmt.Errorf("decode route: waypoint %d offset: %w", i, err)
		}
		kind, err := r.pull(kindBits)
		if err != nil {
			return nil, fmt.Errorf("decode route: waypoint %d kind: %w", i, err)
		}
		route = append(route, domain.Waypoint{
			SystemID: domain.BaseSystemID + int64(off),
			Kind:     domain.WaypointKind(kind),
		})
	}

	return route, nil
}
