package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHex decodes s, accepting an optional 0x prefix. If size is non-negative
// the decoded value must be exactly size bytes.
func DecodeHex(field, s string, size int) ([]byte, error) {
	digits := s
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	if len(digits)%2 != 0 {
		return nil, NewError(KindHex, field, fmt.Sprintf("odd number of hex digits (%d)", len(digits)))
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, WrapError(KindHex, field, "invalid hex", err)
	}
	if size >= 0 && len(b) != size {
		return nil, NewError(KindLength, field, fmt.Sprintf("must decode to exactly %d bytes, got %d", size, len(b)))
	}
	return b, nil
}

// DecodeHexVar decodes a variable-length hex field. An empty string yields an empty slice.
func DecodeHexVar(field, s string) ([]byte, error) {
	return DecodeHex(field, s, -1)
}

// DecodeDigest decodes a 32-byte message digest given as hex.
func DecodeDigest(s string) ([]byte, error) {
	return DecodeHex("hash", s, DigestSize)
}

// DecodeContext decodes an optional context string given as hex.
func DecodeContext(s string) ([]byte, error) {
	ctx, err := DecodeHexVar("context", s)
	if err != nil {
		return nil, err
	}
	if len(ctx) > MaxContextSize {
		return nil, NewError(KindLength, "context", fmt.Sprintf("must be at most %d bytes, got %d", MaxContextSize, len(ctx)))
	}
	return ctx, nil
}
