package acvp

import (
	"bytes"
	"fmt"

	"github.com/D13ya/pqsig/internal/crypto"
)

const fixtureContext = "pqsig-fixture"

// FixtureSeed returns seed i of the fixture schedule: 32 bytes of byte(i+1).
func FixtureSeed(i int) *crypto.Seed {
	s := new(crypto.Seed)
	for j := range s {
		s[j] = byte(i + 1)
	}
	return s
}

func fixtureMessage(i int) []byte {
	return bytes.Repeat([]byte{byte(0xa0 + i)}, crypto.DigestSize)
}

func hexUpper(b []byte) string {
	return fmt.Sprintf("%X", b)
}

func newHeader(mode string) Header {
	return Header{VsID: 0, Algorithm: "ML-DSA", Mode: mode, Revision: "FIPS204"}
}

// BuildKeyGen derives count keyGen cases from the fixture seed schedule.
func BuildKeyGen(scheme crypto.Scheme, count int) *KeyGenFile {
	g := KeyGenGroup{TgID: 1, TestType: "AFT", ParameterSet: scheme.Name()}
	for i := 0; i < count; i++ {
		seed := FixtureSeed(i)
		pk, sk := scheme.DeriveKey(seed)
		g.Tests = append(g.Tests, KeyGenCase{
			TcID: i + 1,
			Seed: hexUpper(seed[:]),
			PK:   hexUpper(pk[:]),
			SK:   hexUpper(sk),
		})
	}
	return &KeyGenFile{Header: newHeader(ModeKeyGen), TestGroups: []KeyGenGroup{g}}
}

// BuildSigVer produces, for each of count fixture keys, one accepted signature and a
// set of rejected mutations: modified signature, message and context, and
// truncated or extended encodings. The scheme must implement crypto.ContextSigner.
func BuildSigVer(scheme crypto.Scheme, count int) (*SigVerFile, error) {
	signer, ok := scheme.(crypto.ContextSigner)
	if !ok {
		return nil, fmt.Errorf("%s cannot sign with a context", scheme.Name())
	}
	ctx := []byte(fixtureContext)

	g := SigVerGroup{
		TgID:               1,
		TestType:           "AFT",
		ParameterSet:       scheme.Name(),
		SignatureInterface: InterfaceExternal,
		PreHash:            PreHashPure,
	}
	tcID := 0
	add := func(passed bool, reason string, pk, msg, ctx, sig []byte) {
		tcID++
		g.Tests = append(g.Tests, SigVerCase{
			TcID:       tcID,
			TestPassed: passed,
			PK:         hexUpper(pk),
			Message:    hexUpper(msg),
			Context:    hexUpper(ctx),
			Signature:  hexUpper(sig),
			Reason:     reason,
		})
	}

	for i := 0; i < count; i++ {
		vk, sk := scheme.DeriveKey(FixtureSeed(i))
		pk := vk[:]
		msg := fixtureMessage(i)

		plain, err := signer.SignWithContext(sk, msg, nil)
		if err != nil {
			return nil, err
		}
		withCtx, err := signer.SignWithContext(sk, msg, ctx)
		if err != nil {
			return nil, err
		}

		add(true, "", pk, msg, nil, plain[:])
		add(true, "", pk, msg, ctx, withCtx[:])

		flipped := withCtx
		flipped[i%crypto.SignatureSize] ^= 0x01
		add(false, "modified signature", pk, msg, ctx, flipped[:])

		otherMsg := bytes.Clone(msg)
		otherMsg[0] ^= 0xff
		add(false, "modified message", pk, otherMsg, ctx, withCtx[:])

		add(false, "modified context", pk, msg, []byte("other-context"), withCtx[:])
		add(false, "signature too short", pk, msg, ctx, withCtx[:crypto.SignatureSize-1])
		add(false, "signature too long", pk, msg, ctx, append(withCtx[:], 0x00))
		add(false, "public key too short", pk[:crypto.VerifyingKeySize-1], msg, ctx, withCtx[:])
		clear(sk)
	}
	return &SigVerFile{Header: newHeader(ModeSigVer), TestGroups: []SigVerGroup{g}}, nil
}

// BuildSigGen produces count deterministic sigGen cases, alternating empty and
// non-empty contexts.
func BuildSigGen(scheme crypto.Scheme, count int) (*SigGenFile, error) {
	signer, ok := scheme.(crypto.ContextSigner)
	if !ok {
		return nil, fmt.Errorf("%s cannot sign with a context", scheme.Name())
	}

	g := SigGenGroup{
		TgID:               1,
		TestType:           "AFT",
		ParameterSet:       scheme.Name(),
		Deterministic:      true,
		SignatureInterface: InterfaceExternal,
		PreHash:            PreHashPure,
	}
	for i := 0; i < count; i++ {
		_, sk := scheme.DeriveKey(FixtureSeed(i))
		msg := fixtureMessage(i)
		var ctx []byte
		if i%2 == 1 {
			ctx = []byte(fixtureContext)
		}
		sig, err := signer.SignWithContext(sk, msg, ctx)
		if err != nil {
			return nil, err
		}
		g.Tests = append(g.Tests, SigGenCase{
			TcID:      i + 1,
			SK:        hexUpper(sk),
			Message:   hexUpper(msg),
			Context:   hexUpper(ctx),
			Signature: hexUpper(sig[:]),
		})
	}
	return &SigGenFile{Header: newHeader(ModeSigGen), TestGroups: []SigGenGroup{g}}, nil
}
