package app

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/D13ya/pqsig/internal/crypto"
	"github.com/D13ya/pqsig/internal/crypto/dilithium"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var hashAB = "0x" + strings.Repeat("ab", crypto.DigestSize)

func newTestService(t *testing.T, entropy byte) *LifecycleService {
	rand := bytes.NewReader(bytes.Repeat([]byte{entropy}, 4*crypto.SeedSize))
	return NewLifecycleService(dilithium.Scheme{}, rand, zaptest.NewLogger(t))
}

func keygen(t *testing.T, svc *LifecycleService) *KeygenResult {
	t.Helper()
	res, err := svc.Keygen(filepath.Join(t.TempDir(), "keys"), false)
	require.NoError(t, err)
	return res
}

func TestKeygen_WritesSeedNotSecretKey(t *testing.T) {
	res := keygen(t, newTestService(t, 0xab))

	pk, err := os.ReadFile(res.PublicKeyPath)
	require.NoError(t, err)
	assert.Len(t, pk, crypto.VerifyingKeySize)

	seed, err := os.ReadFile(res.SeedPath)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xab}, crypto.SeedSize), seed)

	var s crypto.Seed
	copy(s[:], seed)
	want, _ := dilithium.Scheme{}.DeriveKey(&s)
	assert.Equal(t, want[:], pk)
}

func TestKeygen_EntropyFailure(t *testing.T) {
	svc := NewLifecycleService(dilithium.Scheme{}, iotest.ErrReader(errors.New("no entropy")), nil)
	_, err := svc.Keygen(t.TempDir(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entropy")
}

func TestKeygen_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t, 0x01)
	_, err := svc.Keygen(dir, false)
	require.NoError(t, err)

	_, err = svc.Keygen(dir, false)
	assert.True(t, crypto.IsKind(err, crypto.KindIO), "got %v", err)

	_, err = svc.Keygen(dir, true)
	assert.NoError(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	svc := newTestService(t, 0xab)
	res := keygen(t, svc)
	sigPath := filepath.Join(t.TempDir(), "sig.bin")

	require.NoError(t, svc.Sign(res.SeedPath, hashAB, sigPath, ""))
	info, err := os.Stat(sigPath)
	require.NoError(t, err)
	assert.EqualValues(t, crypto.SignatureSize, info.Size())

	ok, err := svc.Verify(res.PublicKeyPath, hashAB, sigPath, "")
	require.NoError(t, err)
	assert.True(t, ok)

	// Unprefixed hex names the same digest.
	ok, err = svc.Verify(res.PublicKeyPath, strings.TrimPrefix(hashAB, "0x"), sigPath, "")
	require.NoError(t, err)
	assert.True(t, ok)

	other := strings.Repeat("cd", crypto.DigestSize)
	ok, err = svc.Verify(res.PublicKeyPath, other, sigPath, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSign_Deterministic(t *testing.T) {
	svc := newTestService(t, 0x10)
	res := keygen(t, svc)
	dir := t.TempDir()

	a, b := filepath.Join(dir, "a.bin"), filepath.Join(dir, "b.bin")
	require.NoError(t, svc.Sign(res.SeedPath, hashAB, a, ""))
	require.NoError(t, svc.Sign(res.SeedPath, hashAB, b, ""))

	sigA, _ := os.ReadFile(a)
	sigB, _ := os.ReadFile(b)
	assert.Equal(t, sigA, sigB)
}

func TestSignVerify_Context(t *testing.T) {
	svc := newTestService(t, 0x22)
	res := keygen(t, svc)
	sigPath := filepath.Join(t.TempDir(), "sig.bin")
	ctxHex := hex.EncodeToString([]byte("pqsig-test"))

	require.NoError(t, svc.Sign(res.SeedPath, hashAB, sigPath, ctxHex))

	ok, err := svc.Verify(res.PublicKeyPath, hashAB, sigPath, ctxHex)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(res.PublicKeyPath, hashAB, sigPath, "")
	require.NoError(t, err)
	assert.False(t, ok, "context-bound signature must not verify without the context")
}

func TestSign_MalformedInput(t *testing.T) {
	svc := newTestService(t, 0x33)
	res := keygen(t, svc)
	dir := t.TempDir()

	shortSeed := filepath.Join(dir, "short.bin")
	require.NoError(t, os.WriteFile(shortSeed, make([]byte, crypto.SeedSize-1), 0o600))

	testCases := []struct {
		name string
		seed string
		hash string
		ctx  string
		kind crypto.Kind
	}{
		{"short_seed", shortSeed, hashAB, "", crypto.KindLength},
		{"missing_seed", filepath.Join(dir, "missing.bin"), hashAB, "", crypto.KindIO},
		{"short_hash", res.SeedPath, hashAB[:len(hashAB)-2], "", crypto.KindLength},
		{"odd_hash", res.SeedPath, hashAB[:len(hashAB)-1], "", crypto.KindHex},
		{"bad_hash", res.SeedPath, strings.Repeat("zz", crypto.DigestSize), "", crypto.KindHex},
		{"long_context", res.SeedPath, hashAB, strings.Repeat("00", crypto.MaxContextSize+1), crypto.KindLength},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(dir, tc.name+".sig")
			err := svc.Sign(tc.seed, tc.hash, out, tc.ctx)
			require.Error(t, err)
			assert.True(t, crypto.IsKind(err, tc.kind), "got %v", err)
			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "no partial output expected")
		})
	}
}

func TestVerify_MalformedInputIsError(t *testing.T) {
	svc := newTestService(t, 0x44)
	res := keygen(t, svc)
	dir := t.TempDir()

	sigPath := filepath.Join(dir, "sig.bin")
	require.NoError(t, svc.Sign(res.SeedPath, hashAB, sigPath, ""))
	shortKey := filepath.Join(dir, "short_pk.bin")
	require.NoError(t, os.WriteFile(shortKey, make([]byte, crypto.VerifyingKeySize-1), 0o600))
	longKey := filepath.Join(dir, "long_pk.bin")
	require.NoError(t, os.WriteFile(longKey, make([]byte, crypto.VerifyingKeySize+1), 0o600))
	shortSig := filepath.Join(dir, "short_sig.bin")
	require.NoError(t, os.WriteFile(shortSig, make([]byte, crypto.SignatureSize-1), 0o600))

	testCases := []struct {
		name string
		key  string
		hash string
		sig  string
	}{
		{"key_1951", shortKey, hashAB, sigPath},
		{"key_1953", longKey, hashAB, sigPath},
		{"short_sig", res.PublicKeyPath, hashAB, shortSig},
		{"short_hash", res.PublicKeyPath, "0xabcd", sigPath},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.Verify(tc.key, tc.hash, tc.sig, "")
			require.Error(t, err)
			assert.True(t, crypto.IsKind(err, crypto.KindLength), "got %v", err)
			assert.False(t, ok)
		})
	}
}

func TestVerify_AllZeroSignatureIsInvalid(t *testing.T) {
	svc := newTestService(t, 0x55)
	res := keygen(t, svc)
	sigPath := filepath.Join(t.TempDir(), "zero.bin")
	require.NoError(t, os.WriteFile(sigPath, make([]byte, crypto.SignatureSize), 0o600))

	ok, err := svc.Verify(res.PublicKeyPath, hashAB, sigPath, "")
	require.NoError(t, err)
	assert.False(t, ok)
}
