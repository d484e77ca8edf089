package acvp

import (
	"context"
	"strconv"

	"github.com/D13ya/pqsig/internal/crypto"
	"go.uber.org/zap"
)

// RunSigVer replays sigVer vectors and compares each verification outcome with
// the vector's testPassed flag.
func RunSigVer(ctx context.Context, scheme crypto.Scheme, file *SigVerFile, opts Options) (*Report, error) {
	opts = opts.withDefaults(scheme)

	var (
		groups int
		jobs   []job
	)
	for gi := range file.TestGroups {
		g := &file.TestGroups[gi]
		if !opts.Profile.matchSigVer(g) {
			opts.Logger.Debug("skipping sigVer group",
				zap.Int("tg_id", g.TgID),
				zap.String("parameter_set", g.ParameterSet),
				zap.String("signature_interface", g.SignatureInterface),
				zap.String("pre_hash", g.PreHash),
			)
			continue
		}
		groups++
		for ci := range g.Tests {
			tc := &g.Tests[ci]
			jobs = append(jobs, func() (*Mismatch, error) {
				return checkSigVer(scheme, opts.Logger, g, tc)
			})
		}
	}

	return replay(ctx, ModeSigVer, file.Fingerprint, groups, jobs, opts)
}

func checkSigVer(scheme crypto.Scheme, log *zap.Logger, g *SigVerGroup, tc *SigVerCase) (*Mismatch, error) {
	// Malformed hex is a broken vector file; malformed lengths are what is under test.
	pk, err := crypto.DecodeHexVar("pk", tc.PK)
	if err != nil {
		return nil, caseError(ModeSigVer, g.TgID, tc.TcID, err)
	}
	msg, err := crypto.DecodeHexVar("message", tc.Message)
	if err != nil {
		return nil, caseError(ModeSigVer, g.TgID, tc.TcID, err)
	}
	ctx, err := crypto.DecodeHexVar("context", tc.Context)
	if err != nil {
		return nil, caseError(ModeSigVer, g.TgID, tc.TcID, err)
	}
	sig, err := crypto.DecodeHexVar("signature", tc.Signature)
	if err != nil {
		return nil, caseError(ModeSigVer, g.TgID, tc.TcID, err)
	}

	got := VerifyFailClosed(scheme, pk, msg, ctx, sig, log)
	if got == tc.TestPassed {
		return nil, nil
	}
	return &Mismatch{
		Mode:     ModeSigVer,
		GroupID:  g.TgID,
		CaseID:   tc.TcID,
		Expected: strconv.FormatBool(tc.TestPassed),
		Actual:   strconv.FormatBool(got),
		Reason:   tc.Reason,
	}, nil
}

// VerifyFailClosed verifies untrusted encodings. Any input that does not fit the
// fixed-size representation, and any fault inside the scheme, yields false.
func VerifyFailClosed(scheme crypto.Scheme, pk, msg, ctx, sig []byte, log *zap.Logger) (ok bool) {
	vk, err := crypto.DecodeVerifyingKey(pk)
	if err != nil {
		return false
	}
	s, err := crypto.DecodeSignature(sig)
	if err != nil {
		return false
	}
	if len(ctx) > crypto.MaxContextSize {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			if log != nil {
				log.Error("verifier panicked on input", zap.Any("panic", r))
			}
			ok = false
		}
	}()
	return scheme.Verify(vk, msg, ctx, s)
}
