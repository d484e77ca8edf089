package dilithium

import (
	cryptorand "crypto/rand"
	"fmt"
	"io"

	"github.com/D13ya/pqsig/internal/crypto"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// The codec sizes are fixed independently of circl; these fail to compile if they drift.
var (
	_ [crypto.SeedSize]byte         = [mldsa65.SeedSize]byte{}
	_ [crypto.VerifyingKeySize]byte = [mldsa65.PublicKeySize]byte{}
	_ [crypto.SecretKeySize]byte    = [mldsa65.PrivateKeySize]byte{}
	_ [crypto.SignatureSize]byte    = [mldsa65.SignatureSize]byte{}
)

// GenerateKeyPair draws a seed from rand and derives an ML-DSA-65 keypair from it.
// If rand is nil, crypto/rand.Reader is used.
func GenerateKeyPair(rand io.Reader) (crypto.VerifyingKey, crypto.Seed, error) {
	if rand == nil {
		rand = cryptorand.Reader
	}
	var seed crypto.Seed
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return crypto.VerifyingKey{}, crypto.Seed{}, fmt.Errorf("read seed entropy: %w", err)
	}
	pk, sk := NewKeyFromSeed(&seed)
	WipePrivateKey(sk)
	return PackPublicKey(pk), seed, nil
}

// NewKeyFromSeed derives the circl key objects for seed without copying it.
// Callers wipe the returned private key with WipePrivateKey.
func NewKeyFromSeed(seed *crypto.Seed) (*mldsa65.PublicKey, *mldsa65.PrivateKey) {
	return mldsa65.NewKeyFromSeed((*[mldsa65.SeedSize]byte)(seed))
}

// WipePrivateKey overwrites the expanded key material held by sk.
func WipePrivateKey(sk *mldsa65.PrivateKey) {
	if sk != nil {
		*sk = mldsa65.PrivateKey{}
	}
}

// PackPublicKey encodes pk into its fixed-size representation.
func PackPublicKey(pk *mldsa65.PublicKey) crypto.VerifyingKey {
	var buf [mldsa65.PublicKeySize]byte
	pk.Pack(&buf)
	return crypto.VerifyingKey(buf)
}

// ParsePublicKey unpacks an encoded ML-DSA-65 public key.
func ParsePublicKey(vk crypto.VerifyingKey) *mldsa65.PublicKey {
	buf := [mldsa65.PublicKeySize]byte(vk)
	pk := &mldsa65.PublicKey{}
	pk.Unpack(&buf)
	return pk
}

// ParsePrivateKey decodes a packed ML-DSA-65 private key.
func ParsePrivateKey(data []byte) (*mldsa65.PrivateKey, error) {
	if len(data) != mldsa65.PrivateKeySize {
		return nil, crypto.NewError(crypto.KindLength, "secret key",
			fmt.Sprintf("must be exactly %d bytes, got %d", mldsa65.PrivateKeySize, len(data)))
	}
	sk := &mldsa65.PrivateKey{}
	if err := sk.UnmarshalBinary(data); err != nil {
		return nil, crypto.WrapError(crypto.KindParse, "secret key", "unpack failed", err)
	}
	return sk, nil
}
