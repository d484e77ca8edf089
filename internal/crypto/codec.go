package crypto

import "fmt"

// Seed is the 32 bytes of entropy a keypair is deterministically derived from.
type Seed [SeedSize]byte

// VerifyingKey is a packed ML-DSA-65 public key.
type VerifyingKey [VerifyingKeySize]byte

// Signature is a packed ML-DSA-65 signature.
type Signature [SignatureSize]byte

// DecodeSeed converts b into a Seed. b must be exactly SeedSize bytes.
func DecodeSeed(b []byte) (Seed, error) {
	var s Seed
	if err := decodeFixed("seed", s[:], b); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// DecodeVerifyingKey converts b into a VerifyingKey. b must be exactly VerifyingKeySize bytes.
func DecodeVerifyingKey(b []byte) (VerifyingKey, error) {
	var pk VerifyingKey
	if err := decodeFixed("verifying key", pk[:], b); err != nil {
		return VerifyingKey{}, err
	}
	return pk, nil
}

// DecodeSignature converts b into a Signature. b must be exactly SignatureSize bytes.
func DecodeSignature(b []byte) (Signature, error) {
	var sig Signature
	if err := decodeFixed("signature", sig[:], b); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

func decodeFixed(field string, dst, src []byte) error {
	if len(src) != len(dst) {
		return NewError(KindLength, field, fmt.Sprintf("must be exactly %d bytes, got %d", len(dst), len(src)))
	}
	copy(dst, src)
	return nil
}

// Encode returns a copy of the seed bytes.
func (s *Seed) Encode() []byte {
	out := make([]byte, SeedSize)
	copy(out, s[:])
	return out
}

// Zero wipes the seed in place.
func (s *Seed) Zero() {
	clear(s[:])
}

// Encode returns a copy of the packed key.
func (pk *VerifyingKey) Encode() []byte {
	out := make([]byte, VerifyingKeySize)
	copy(out, pk[:])
	return out
}

// Encode returns a copy of the packed signature.
func (sig *Signature) Encode() []byte {
	out := make([]byte, SignatureSize)
	copy(out, sig[:])
	return out
}
