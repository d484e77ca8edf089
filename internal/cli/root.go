// Package cli wires the pqsig command tree and maps results to exit codes.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/D13ya/pqsig/internal/app"
	"github.com/D13ya/pqsig/internal/config"
	"github.com/D13ya/pqsig/internal/crypto"
	_ "github.com/D13ya/pqsig/internal/crypto/dilithium"
	"github.com/D13ya/pqsig/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes. A cryptographically invalid signature and a malformed input never
// share a code.
const (
	ExitOK      = 0
	ExitFailure = 1 // invalid signature or conformance mismatches
	ExitUsage   = 2 // malformed input, I/O, configuration
)

// ExitError carries an explicit exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// errInvalid is returned after a command has already reported a negative result.
var errInvalid = &ExitError{Code: ExitFailure}

// Env is the process environment a command tree runs against.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	// Rand is the entropy source for fresh keys. Nil selects crypto/rand.
	Rand io.Reader
}

type rootState struct {
	env     Env
	v       *viper.Viper
	cfgFile string
	log     *zap.Logger
}

func (s *rootState) lifecycle() (*app.LifecycleService, error) {
	scheme, err := crypto.Lookup(crypto.ParameterSet)
	if err != nil {
		return nil, err
	}
	return app.NewLifecycleService(scheme, s.env.Rand, s.log), nil
}

// NewRootCommand builds the pqsig command tree.
func NewRootCommand(env Env) *cobra.Command {
	s := &rootState{env: env, v: config.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "pqsig",
		Short:         "ML-DSA-65 digest signing and ACVP conformance checks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(s.v, s.cfgFile); err != nil {
				return err
			}
			log, err := logger.New("pqsig", logger.Options{
				Level:  s.v.GetString(config.KeyLogLevel),
				Format: s.v.GetString(config.KeyLogFormat),
				Output: env.Stderr,
			})
			if err != nil {
				return crypto.WrapError(crypto.KindConfig, "logging", "invalid logging options", err)
			}
			s.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = s.log.Sync()
		},
	}
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&s.cfgFile, "config", "", "YAML config file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	_ = s.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = s.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	root.AddCommand(
		newKeygenCommand(s),
		newSignCommand(s),
		newVerifyCommand(s),
		newSampleCommand(s),
		newACVPCommand(s),
	)
	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(args []string, env Env) int {
	root := NewRootCommand(env)
	root.SetArgs(args)
	return exitCode(root.Execute(), env.Stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(stderr, "error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return ExitUsage
}
