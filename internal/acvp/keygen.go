package acvp

import (
	"bytes"
	"context"
	"fmt"

	"github.com/D13ya/pqsig/internal/crypto"
	"go.uber.org/zap"
)

// RunKeyGen replays keyGen vectors: each seed must derive byte-identical
// public and secret key encodings.
func RunKeyGen(ctx context.Context, scheme crypto.Scheme, file *KeyGenFile, opts Options) (*Report, error) {
	opts = opts.withDefaults(scheme)

	var (
		groups int
		jobs   []job
	)
	for gi := range file.TestGroups {
		g := &file.TestGroups[gi]
		if !opts.Profile.matchKeyGen(g) {
			opts.Logger.Debug("skipping keyGen group", zap.Int("tg_id", g.TgID), zap.String("parameter_set", g.ParameterSet))
			continue
		}
		groups++
		for ci := range g.Tests {
			tc := &g.Tests[ci]
			jobs = append(jobs, func() (*Mismatch, error) {
				return checkKeyGen(scheme, g, tc)
			})
		}
	}

	return replay(ctx, ModeKeyGen, file.Fingerprint, groups, jobs, opts)
}

func checkKeyGen(scheme crypto.Scheme, g *KeyGenGroup, tc *KeyGenCase) (*Mismatch, error) {
	seedBytes, err := crypto.DecodeHex("seed", tc.Seed, crypto.SeedSize)
	if err != nil {
		return nil, caseError(ModeKeyGen, g.TgID, tc.TcID, err)
	}
	seed, err := crypto.DecodeSeed(seedBytes)
	clear(seedBytes)
	if err != nil {
		return nil, caseError(ModeKeyGen, g.TgID, tc.TcID, err)
	}
	defer seed.Zero()

	wantPK, err := crypto.DecodeHexVar("pk", tc.PK)
	if err != nil {
		return nil, caseError(ModeKeyGen, g.TgID, tc.TcID, err)
	}
	wantSK, err := crypto.DecodeHexVar("sk", tc.SK)
	if err != nil {
		return nil, caseError(ModeKeyGen, g.TgID, tc.TcID, err)
	}

	pk, sk := scheme.DeriveKey(&seed)
	pkMatch := bytes.Equal(pk[:], wantPK)
	skMatch := bytes.Equal(sk, wantSK)
	clear(sk)
	if pkMatch && skMatch {
		return nil, nil
	}
	return &Mismatch{
		Mode:     ModeKeyGen,
		GroupID:  g.TgID,
		CaseID:   tc.TcID,
		Expected: "pk_match=true, sk_match=true",
		Actual:   fmt.Sprintf("pk_match=%t, sk_match=%t", pkMatch, skMatch),
	}, nil
}
