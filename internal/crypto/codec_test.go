package crypto

import (
	"bytes"
	"testing"
)

func TestDecodeVerifyingKey_Length(t *testing.T) {
	testCases := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, true},
		{"one_short", VerifyingKeySize - 1, true},
		{"exact", VerifyingKeySize, false},
		{"one_long", VerifyingKeySize + 1, true},
		{"signature_sized", SignatureSize, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeVerifyingKey(make([]byte, tc.size))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %d bytes", tc.size)
				}
				if !IsKind(err, KindLength) {
					t.Errorf("wrong error kind: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeVerifyingKey: %v", err)
			}
		})
	}
}

func TestDecodeSeedAndSignature_Length(t *testing.T) {
	if _, err := DecodeSeed(make([]byte, SeedSize-1)); !IsKind(err, KindLength) {
		t.Errorf("short seed: got %v", err)
	}
	if _, err := DecodeSeed(make([]byte, SeedSize+1)); !IsKind(err, KindLength) {
		t.Errorf("long seed: got %v", err)
	}
	if _, err := DecodeSignature(make([]byte, SignatureSize-1)); !IsKind(err, KindLength) {
		t.Errorf("short signature: got %v", err)
	}
	if _, err := DecodeSignature(nil); !IsKind(err, KindLength) {
		t.Errorf("nil signature: got %v", err)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	raw := make([]byte, VerifyingKeySize)
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	pk, err := DecodeVerifyingKey(raw)
	if err != nil {
		t.Fatalf("DecodeVerifyingKey: %v", err)
	}
	again, err := DecodeVerifyingKey(pk.Encode())
	if err != nil {
		t.Fatalf("DecodeVerifyingKey(Encode): %v", err)
	}
	if again != pk {
		t.Error("verifying key round trip changed value")
	}

	rawSig := bytes.Repeat([]byte{0x5a}, SignatureSize)
	sig, err := DecodeSignature(rawSig)
	if err != nil {
		t.Fatalf("DecodeSignature: %v", err)
	}
	if !bytes.Equal(sig.Encode(), rawSig) {
		t.Error("signature round trip changed bytes")
	}
}

func TestEncode_ReturnsCopy(t *testing.T) {
	seed, err := DecodeSeed(bytes.Repeat([]byte{0xab}, SeedSize))
	if err != nil {
		t.Fatalf("DecodeSeed: %v", err)
	}
	enc := seed.Encode()
	enc[0] = 0
	if seed[0] != 0xab {
		t.Error("Encode must not alias the seed")
	}
}

func TestSeedZero(t *testing.T) {
	seed, _ := DecodeSeed(bytes.Repeat([]byte{0xff}, SeedSize))
	seed.Zero()
	if seed != (Seed{}) {
		t.Error("seed not wiped")
	}
}

func TestDecodeHex(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		size     int
		want     []byte
		wantKind Kind
	}{
		{"plain", "abcd", 2, []byte{0xab, 0xcd}, ""},
		{"prefixed", "0xABCD", 2, []byte{0xab, 0xcd}, ""},
		{"upper_prefix", "0XabCD", 2, []byte{0xab, 0xcd}, ""},
		{"variable_empty", "", -1, []byte{}, ""},
		{"prefix_only", "0x", -1, []byte{}, ""},
		{"odd", "abc", -1, nil, KindHex},
		{"invalid_char", "zz", -1, nil, KindHex},
		{"too_short", "abcd", 3, nil, KindLength},
		{"too_long", "abcdef", 2, nil, KindLength},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeHex("field", tc.in, tc.size)
			if tc.wantKind != "" {
				if !IsKind(err, tc.wantKind) {
					t.Fatalf("got err %v, want kind %s", err, tc.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeHex: %v", err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("got %x, want %x", got, tc.want)
			}
		})
	}
}

func TestDecodeDigest(t *testing.T) {
	hash := "0x" + string(bytes.Repeat([]byte("ab"), DigestSize))
	d, err := DecodeDigest(hash)
	if err != nil {
		t.Fatalf("DecodeDigest: %v", err)
	}
	if len(d) != DigestSize {
		t.Errorf("digest length %d", len(d))
	}
	if _, err := DecodeDigest(hash[:len(hash)-2]); !IsKind(err, KindLength) {
		t.Errorf("31-byte digest: got %v", err)
	}
}

func TestDecodeContext_TooLong(t *testing.T) {
	long := string(bytes.Repeat([]byte("00"), MaxContextSize+1))
	if _, err := DecodeContext(long); !IsKind(err, KindLength) {
		t.Errorf("got %v, want length error", err)
	}
	if ctx, err := DecodeContext(""); err != nil || len(ctx) != 0 {
		t.Errorf("empty context: %x %v", ctx, err)
	}
}

func TestErrorMessage(t *testing.T) {
	err := NewError(KindLength, "seed", "must be exactly 32 bytes, got 31")
	if got, want := err.Error(), "seed: must be exactly 32 bytes, got 31"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if IsKind(err, KindHex) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(nil, KindLength) {
		t.Error("IsKind(nil) must be false")
	}
}
