//go:build go1.18

package crypto

import (
	"testing"
)

// FuzzDecodeVerifyingKey tests that key decoding handles arbitrary input.
func FuzzDecodeVerifyingKey(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, VerifyingKeySize-1))
	f.Add(make([]byte, VerifyingKeySize))
	f.Add(make([]byte, VerifyingKeySize+1))

	f.Fuzz(func(t *testing.T, data []byte) {
		pk, err := DecodeVerifyingKey(data)
		if err != nil {
			if len(data) == VerifyingKeySize {
				t.Errorf("exact-size input rejected: %v", err)
			}
			return
		}
		if len(data) != VerifyingKeySize {
			t.Errorf("accepted %d bytes", len(data))
		}
		_ = pk
	})
}

// FuzzDecodeSignature tests that signature decoding handles arbitrary input.
func FuzzDecodeSignature(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, SignatureSize))
	f.Add(make([]byte, SignatureSize+1))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Should never panic
		_, _ = DecodeSignature(data)
	})
}

// FuzzDecodeHex tests the hex helper with arbitrary strings.
func FuzzDecodeHex(f *testing.F) {
	f.Add("", -1)
	f.Add("0x", 0)
	f.Add("0xab", 1)
	f.Add("abc", -1)
	f.Add("zz", 1)

	f.Fuzz(func(t *testing.T, s string, size int) {
		b, err := DecodeHex("fuzz", s, size)
		if err != nil {
			return
		}
		if size >= 0 && len(b) != size {
			t.Errorf("got %d bytes, want %d", len(b), size)
		}
	})
}
