package app

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/D13ya/pqsig/internal/crypto"
	"github.com/D13ya/pqsig/internal/crypto/dilithium"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_Format(t *testing.T) {
	smp, err := newTestService(t, 0x77).Sample("")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = smp.WriteTo(&buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "PK_HEX=0x"))
	require.True(t, strings.HasPrefix(lines[1], "MSG_HASH=0x"))
	require.True(t, strings.HasPrefix(lines[2], "SIG_HEX=0x"))

	pk, err := hex.DecodeString(strings.TrimPrefix(lines[0], "PK_HEX=0x"))
	require.NoError(t, err)
	assert.Len(t, pk, crypto.VerifyingKeySize)
	assert.Equal(t, "MSG_HASH=0x"+strings.Repeat("ab", crypto.DigestSize), lines[1])
	sig, err := hex.DecodeString(strings.TrimPrefix(lines[2], "SIG_HEX=0x"))
	require.NoError(t, err)
	assert.Len(t, sig, crypto.SignatureSize)

	vk, err := crypto.DecodeVerifyingKey(pk)
	require.NoError(t, err)
	s, err := crypto.DecodeSignature(sig)
	require.NoError(t, err)
	assert.True(t, dilithium.Scheme{}.Verify(vk, SampleMessage, nil, s))
}

func TestSample_SeedIsReproducible(t *testing.T) {
	seedHex := "0x" + strings.Repeat("ab", crypto.SeedSize)
	svc := NewLifecycleService(dilithium.Scheme{}, nil, nil)

	a, err := svc.Sample(seedHex)
	require.NoError(t, err)
	b, err := svc.Sample(seedHex)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := svc.Sample("")
	require.NoError(t, err)
	assert.NotEqual(t, a.PublicKey, c.PublicKey)
}

func TestSample_BadSeed(t *testing.T) {
	svc := NewLifecycleService(dilithium.Scheme{}, nil, nil)
	_, err := svc.Sample("abcd")
	assert.True(t, crypto.IsKind(err, crypto.KindLength), "got %v", err)
}
