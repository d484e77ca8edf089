// Package config loads conformance-run settings from defaults, an optional YAML
// file, PQSIG_* environment variables and bound command-line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/D13ya/pqsig/internal/crypto"
	"github.com/spf13/viper"
)

const envPrefix = "PQSIG"

// Keys shared between viper and the cobra flags bound to them.
const (
	KeyParameterSet = "parameter_set"
	KeyKeyGenFile   = "keygen_file"
	KeySigVerFile   = "sigver_file"
	KeySigGenFile   = "siggen_file"
	KeyWorkers      = "workers"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
)

// Config drives a conformance run.
type Config struct {
	ParameterSet string `mapstructure:"parameter_set"`
	KeyGenFile   string `mapstructure:"keygen_file"`
	SigVerFile   string `mapstructure:"sigver_file"`
	SigGenFile   string `mapstructure:"siggen_file"`
	Workers      int    `mapstructure:"workers"`
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
}

// New returns a viper instance with defaults and environment lookup configured.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyParameterSet, crypto.ParameterSet)
	v.SetDefault(KeyKeyGenFile, "")
	v.SetDefault(KeySigVerFile, "")
	v.SetDefault(KeySigGenFile, "")
	v.SetDefault(KeyWorkers, runtime.GOMAXPROCS(0))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional YAML file at path into v and returns the validated config.
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := ReadFile(v, path); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, crypto.WrapError(crypto.KindConfig, "", "failed to unmarshal config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReadFile merges the YAML file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return crypto.WrapError(crypto.KindConfig, path, "failed to read config file", err)
	}
	return nil
}

// Validate rejects settings a run cannot start with.
func (c *Config) Validate() error {
	if _, err := crypto.Lookup(c.ParameterSet); err != nil {
		return err
	}
	if c.Workers < 1 {
		return crypto.NewError(crypto.KindConfig, KeyWorkers, fmt.Sprintf("must be at least 1, got %d", c.Workers))
	}
	if c.KeyGenFile == "" && c.SigVerFile == "" && c.SigGenFile == "" {
		return crypto.NewError(crypto.KindConfig, "", "no vector files configured (set --keygen, --sigver or --siggen)")
	}
	return nil
}
