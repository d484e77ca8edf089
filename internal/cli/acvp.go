package cli

import (
	"fmt"

	"github.com/D13ya/pqsig/internal/acvp"
	"github.com/D13ya/pqsig/internal/config"
	"github.com/D13ya/pqsig/internal/crypto"
	"github.com/spf13/cobra"
)

func newACVPCommand(s *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acvp",
		Short: "Replay ACVP keyGen, sigVer and sigGen vector files",
		Long: "Replay ACVP JSON vector files against the ML-DSA-65 implementation.\n" +
			"Only external, pure groups of the selected parameter set are replayed.\n" +
			"Exits 1 on any mismatch and 2 when a file cannot be used.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(s.v, "")
			if err != nil {
				return err
			}
			scheme, err := crypto.Lookup(cfg.ParameterSet)
			if err != nil {
				return err
			}

			reports, err := acvp.RunAll(cmd.Context(), scheme, acvp.Paths{
				KeyGen: cfg.KeyGenFile,
				SigVer: cfg.SigVerFile,
				SigGen: cfg.SigGenFile,
			}, acvp.Options{
				Profile: acvp.DefaultProfile(cfg.ParameterSet),
				Workers: cfg.Workers,
				Logger:  s.log.Named("acvp"),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := &acvp.Report{Mode: "all", ParameterSet: cfg.ParameterSet}
			failed := 0
			for _, r := range reports {
				for _, m := range r.Diagnostics {
					fmt.Fprintln(out, m.String())
				}
				fmt.Fprintln(out, r.Summary())
				if !r.OK() {
					failed++
				}
				total.Merge(r)
			}
			if len(reports) > 1 {
				fmt.Fprintln(out, total.Summary())
			}
			if failed > 0 {
				return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d of %d vector files failed: %w", failed, len(reports), acvp.ErrMismatches)}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("keygen", "", "keyGen vector file (internalProjection.json)")
	flags.String("sigver", "", "sigVer vector file")
	flags.String("siggen", "", "sigGen vector file")
	flags.Int("workers", 0, "concurrent cases (default GOMAXPROCS)")
	flags.String("parameter-set", crypto.ParameterSet, "parameter set to replay")
	_ = s.v.BindPFlag(config.KeyKeyGenFile, flags.Lookup("keygen"))
	_ = s.v.BindPFlag(config.KeySigVerFile, flags.Lookup("sigver"))
	_ = s.v.BindPFlag(config.KeySigGenFile, flags.Lookup("siggen"))
	_ = s.v.BindPFlag(config.KeyWorkers, flags.Lookup("workers"))
	_ = s.v.BindPFlag(config.KeyParameterSet, flags.Lookup("parameter-set"))
	return cmd
}
