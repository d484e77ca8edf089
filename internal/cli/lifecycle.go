package cli

import (
	"fmt"

	"github.com/D13ya/pqsig/internal/crypto"
	"github.com/spf13/cobra"
)

func newKeygenCommand(s *rootState) *cobra.Command {
	var (
		output string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an ML-DSA-65 keypair",
		Long: "Generate an ML-DSA-65 keypair. The public key is written to pk.bin and\n" +
			"the 32-byte seed, from which the secret key is re-derived, to sk.bin.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.lifecycle()
			if err != nil {
				return err
			}
			res, err := svc.Keygen(output, force)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Public key:  %s (%d bytes)\n", res.PublicKeyPath, crypto.VerifyingKeySize)
			fmt.Fprintf(out, "Seed:        %s (%d bytes)\n", res.SeedPath, crypto.SeedSize)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "directory for pk.bin and sk.bin")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing seed file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newSignCommand(s *rootState) *cobra.Command {
	var key, hash, output, context string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a 32-byte digest with a seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.lifecycle()
			if err != nil {
				return err
			}
			if err := svc.Sign(key, hash, output, context); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signature written to %s (%d bytes)\n", output, crypto.SignatureSize)
			return nil
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "seed file written by keygen (sk.bin)")
	cmd.Flags().StringVar(&hash, "hash", "", "hex-encoded 32-byte digest, optional 0x prefix")
	cmd.Flags().StringVarP(&output, "output", "o", "", "signature output file")
	cmd.Flags().StringVar(&context, "context", "", "hex-encoded context string (at most 255 bytes)")
	for _, name := range []string{"key", "hash", "output"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newVerifyCommand(s *rootState) *cobra.Command {
	var key, hash, sig, context string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature over a 32-byte digest",
		Long: "Verify a signature over a 32-byte digest. Prints Valid (exit 0) or\n" +
			"Invalid (exit 1). Malformed inputs are reported as errors (exit 2).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.lifecycle()
			if err != nil {
				return err
			}
			ok, err := svc.Verify(key, hash, sig, context)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Invalid")
				return errInvalid
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "public key file (pk.bin)")
	cmd.Flags().StringVar(&hash, "hash", "", "hex-encoded 32-byte digest, optional 0x prefix")
	cmd.Flags().StringVar(&sig, "sig", "", "signature file")
	cmd.Flags().StringVar(&context, "context", "", "hex-encoded context string (at most 255 bytes)")
	for _, name := range []string{"key", "hash", "sig"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newSampleCommand(s *rootState) *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a sample public key, digest and signature as hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.lifecycle()
			if err != nil {
				return err
			}
			smp, err := svc.Sample(seed)
			if err != nil {
				return err
			}
			_, err = smp.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "hex-encoded 32-byte seed; a fresh one is drawn when empty")
	return cmd
}
