package acvp

import (
	"context"
	"fmt"
	"runtime"

	"github.com/D13ya/pqsig/internal/crypto"
	"github.com/D13ya/pqsig/pkg/profiler"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options tunes a replay. The zero value replays the default profile for the
// scheme with GOMAXPROCS workers and no logging.
type Options struct {
	Profile Profile
	Workers int
	Logger  *zap.Logger
}

func (o Options) withDefaults(scheme crypto.Scheme) Options {
	if o.Profile.ParameterSet == "" {
		o.Profile = DefaultProfile(scheme.Name())
	}
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// job is one case bound to its group, evaluated independently of all others.
type job func() (*Mismatch, error)

// replay evaluates jobs with at most workers in flight. Each result lands in the
// slot of its job, so the report is identical to a sequential run regardless of
// completion order. The first fatal error cancels the remaining jobs.
func replay(ctx context.Context, mode, fingerprint string, groups int, jobs []job, opts Options) (*Report, error) {
	report := &Report{
		Mode:         mode,
		ParameterSet: opts.Profile.ParameterSet,
		Fingerprint:  fingerprint,
		Groups:       groups,
	}
	if groups == 0 {
		return nil, crypto.WrapError(crypto.KindConfig, mode,
			fmt.Sprintf("parameterSet=%s interface=%s preHash=%s", opts.Profile.ParameterSet, opts.Profile.SignatureInterface, opts.Profile.PreHash),
			ErrNoMatchingGroups)
	}
	if len(jobs) == 0 {
		return nil, crypto.WrapError(crypto.KindConfig, mode, fmt.Sprintf("%d groups", groups), ErrNoTestCases)
	}

	timer := profiler.Start()
	results := make([]*Mismatch, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, run := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := run()
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, m := range results {
		if m != nil {
			opts.Logger.Warn("conformance mismatch",
				zap.String("mode", m.Mode),
				zap.Int("tg_id", m.GroupID),
				zap.Int("tc_id", m.CaseID),
				zap.String("expected", m.Expected),
				zap.String("actual", m.Actual),
				zap.String("reason", m.Reason),
			)
		}
		report.add(m)
	}

	opts.Logger.Info(report.Summary(),
		zap.Int("groups", report.Groups),
		zap.Int("workers", opts.Workers),
		zap.String("fingerprint", report.Fingerprint),
		timer.Field(),
	)
	return report, nil
}

func caseError(mode string, tgID, tcID int, err error) error {
	return fmt.Errorf("%s tgId=%d tcId=%d: %w", mode, tgID, tcID, err)
}

// Paths names the vector files of one conformance run. Empty paths are skipped.
type Paths struct {
	KeyGen string
	SigVer string
	SigGen string
}

// RunAll loads and replays every configured vector file in order. Loading or
// replay errors abort the run; mismatches are reported, not returned.
func RunAll(ctx context.Context, scheme crypto.Scheme, paths Paths, opts Options) ([]*Report, error) {
	var reports []*Report

	if paths.KeyGen != "" {
		f, err := LoadKeyGen(paths.KeyGen)
		if err != nil {
			return nil, err
		}
		r, err := RunKeyGen(ctx, scheme, f, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths.KeyGen, err)
		}
		reports = append(reports, r)
	}
	if paths.SigVer != "" {
		f, err := LoadSigVer(paths.SigVer)
		if err != nil {
			return nil, err
		}
		r, err := RunSigVer(ctx, scheme, f, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths.SigVer, err)
		}
		reports = append(reports, r)
	}
	if paths.SigGen != "" {
		f, err := LoadSigGen(paths.SigGen)
		if err != nil {
			return nil, err
		}
		r, err := RunSigGen(ctx, scheme, f, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths.SigGen, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
