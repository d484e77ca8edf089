package acvp

import (
	"bytes"
	"context"
	"fmt"

	"github.com/D13ya/pqsig/internal/crypto"
	"go.uber.org/zap"
)

// RunSigGen replays deterministic sigGen vectors: signing the message with the
// vector's secret key and context must reproduce the expected signature exactly.
func RunSigGen(ctx context.Context, scheme crypto.Scheme, file *SigGenFile, opts Options) (*Report, error) {
	opts = opts.withDefaults(scheme)
	signer, ok := scheme.(crypto.ContextSigner)
	if !ok {
		return nil, crypto.NewError(crypto.KindConfig, ModeSigGen, fmt.Sprintf("%s cannot sign from a packed secret key", scheme.Name()))
	}

	var (
		groups int
		jobs   []job
	)
	for gi := range file.TestGroups {
		g := &file.TestGroups[gi]
		if !opts.Profile.matchSigGen(g) {
			opts.Logger.Debug("skipping sigGen group",
				zap.Int("tg_id", g.TgID),
				zap.String("parameter_set", g.ParameterSet),
				zap.Bool("deterministic", g.Deterministic),
			)
			continue
		}
		groups++
		for ci := range g.Tests {
			tc := &g.Tests[ci]
			jobs = append(jobs, func() (*Mismatch, error) {
				return checkSigGen(signer, g, tc)
			})
		}
	}

	return replay(ctx, ModeSigGen, file.Fingerprint, groups, jobs, opts)
}

func checkSigGen(signer crypto.ContextSigner, g *SigGenGroup, tc *SigGenCase) (*Mismatch, error) {
	sk, err := crypto.DecodeHex("sk", tc.SK, crypto.SecretKeySize)
	if err != nil {
		return nil, caseError(ModeSigGen, g.TgID, tc.TcID, err)
	}
	defer clear(sk)
	msg, err := crypto.DecodeHexVar("message", tc.Message)
	if err != nil {
		return nil, caseError(ModeSigGen, g.TgID, tc.TcID, err)
	}
	ctx, err := crypto.DecodeContext(tc.Context)
	if err != nil {
		return nil, caseError(ModeSigGen, g.TgID, tc.TcID, err)
	}
	want, err := crypto.DecodeHexVar("signature", tc.Signature)
	if err != nil {
		return nil, caseError(ModeSigGen, g.TgID, tc.TcID, err)
	}

	sig, err := signer.SignWithContext(sk, msg, ctx)
	if err != nil {
		return nil, caseError(ModeSigGen, g.TgID, tc.TcID, err)
	}
	if bytes.Equal(sig[:], want) {
		return nil, nil
	}
	return &Mismatch{
		Mode:     ModeSigGen,
		GroupID:  g.TgID,
		CaseID:   tc.TcID,
		Expected: "signature " + abbreviate(want),
		Actual:   "signature " + abbreviate(sig[:]),
	}, nil
}

func abbreviate(b []byte) string {
	if len(b) <= 8 {
		return fmt.Sprintf("%X", b)
	}
	return fmt.Sprintf("%X..(%d bytes)", b[:8], len(b))
}
