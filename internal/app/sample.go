package app

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/D13ya/pqsig/internal/crypto"
)

// SampleMessage is the fixed digest every sample signs: 32 bytes of 0xAB.
var SampleMessage = bytes.Repeat([]byte{0xab}, crypto.DigestSize)

// Sample is one key, message and signature triple for downstream fixtures.
type Sample struct {
	PublicKey crypto.VerifyingKey
	Message   []byte
	Signature crypto.Signature
}

// Sample signs SampleMessage with a fresh key, or with the key derived from
// seedHex when it is non-empty.
func (s *LifecycleService) Sample(seedHex string) (*Sample, error) {
	var (
		pk   crypto.VerifyingKey
		seed crypto.Seed
	)
	if seedHex != "" {
		b, err := crypto.DecodeHex("seed", seedHex, crypto.SeedSize)
		if err != nil {
			return nil, err
		}
		seed, err = crypto.DecodeSeed(b)
		clear(b)
		if err != nil {
			return nil, err
		}
		pk, _ = s.scheme.DeriveKey(&seed)
	} else {
		var err error
		pk, seed, err = s.scheme.GenerateKey(s.rand)
		if err != nil {
			return nil, fmt.Errorf("key generation failed: %w", err)
		}
	}
	defer seed.Zero()

	sig, err := s.scheme.Sign(&seed, SampleMessage)
	if err != nil {
		return nil, fmt.Errorf("signing failed: %w", err)
	}
	return &Sample{PublicKey: pk, Message: bytes.Clone(SampleMessage), Signature: sig}, nil
}

// WriteTo prints the sample as PK_HEX=, MSG_HASH= and SIG_HEX= lines.
func (smp *Sample) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "PK_HEX=0x%s\nMSG_HASH=0x%s\nSIG_HEX=0x%s\n",
		hex.EncodeToString(smp.PublicKey[:]),
		hex.EncodeToString(smp.Message),
		hex.EncodeToString(smp.Signature[:]),
	)
	return int64(n), err
}
