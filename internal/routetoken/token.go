package routetoken

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"starmap-route-service/internal/domain"
)

// Decode-failure reasons surfaced to the viewer. They only change the
// message shown to the user who followed a broken link; decode
// semantics are identical across all of them.
const (
	// ReasonCorruptData: the compressed payload is damaged or cut off.
	ReasonCorruptData = "corrupt-data"
	// ReasonBadHeader: the data is not gzip at all, or its header is
	// corrupted.
	ReasonBadHeader = "bad-compression-header"
	// ReasonNoRuntime: the runtime cannot decompress. Kept for message
	// parity with the browser ports, where DecompressionStream may be
	// missing; a linked-in gzip cannot produce it.
	ReasonNoRuntime = "decompression-unavailable"
	// ReasonInvalidToken: everything else, cause preserved.
	ReasonInvalidToken = "invalid-token"
)

// TokenError is the single failure type DecodeToken returns. Reason
// selects the user-facing message; Cause keeps the underlying error
// reachable through errors.Is/As.
type TokenError struct {
	Reason  string
	Message string
	Cause   error
}

func (e *TokenError) Error() string {
	if e.Cause == nil {
		return "decode token: " + e.Message
	}
	return fmt.Sprintf("decode token: %s: %v", e.Message, e.Cause)
}

func (e *TokenError) Unwrap() error { return e.Cause }

// EncodeToken renders the route as URL-safe token text:
// base64url(gzip(EncodeRaw(route))) at maximum compression, with no
// base64 padding characters.
func EncodeToken(route []domain.Waypoint) (string, error) {
	raw, err := EncodeRaw(route)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("encode token: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("encode token: compress: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeToken reverses EncodeToken. It accepts tokens produced by any
// conforming encoder, whatever gzip implementation wrote them. All
// failures come back as *TokenError; a token string whose length mod 4
// is 1 can never be valid base64url and is rejected by the base64
// layer.
func DecodeToken(token string) ([]domain.Waypoint, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, &TokenError{
			Reason:  ReasonInvalidToken,
			Message: "token is not valid base64url text",
			Cause:   err,
		}
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, classifyDecompress(err)
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, classifyDecompress(err)
	}
	if err := zr.Close(); err != nil {
		return nil, classifyDecompress(err)
	}

	route, err := DecodeRaw(raw)
	if err != nil {
		return nil, &TokenError{
			Reason:  ReasonInvalidToken,
			Message: "route data is malformed",
			Cause:   err,
		}
	}

	return route, nil
}

func classifyDecompress(err error) *TokenError {
	switch {
	case errors.Is(err, gzip.ErrHeader):
		return &TokenError{
			Reason:  ReasonBadHeader,
			Message: "compressed data has a wrong or corrupted header",
			Cause:   err,
		}
	case errors.Is(err, gzip.ErrChecksum),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF):
		return &TokenError{
			Reason:  ReasonCorruptData,
			Message: "compressed data is corrupted or truncated",
			Cause:   err,
		}
	default:
		return &TokenError{
			Reason:  ReasonInvalidToken,
			Message: "could not decompress route data",
			Cause:   err,
		}
	}
}
