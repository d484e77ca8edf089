// Command vectorgen writes self-consistent ACVP-format keyGen, sigVer and sigGen
// vector files for the registered ML-DSA-65 scheme. The files exercise the replay
// harness when the published NIST vectors are not at hand.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/D13ya/pqsig/internal/acvp"
	"github.com/D13ya/pqsig/internal/crypto"
	_ "github.com/D13ya/pqsig/internal/crypto/dilithium"
	"github.com/D13ya/pqsig/internal/storage"
	"github.com/D13ya/pqsig/pkg/logger"
	json "github.com/json-iterator/go"
	"go.uber.org/zap"
)

func main() {
	outDir := flag.String("out-dir", "testdata/generated", "output directory for vector files")
	count := flag.Int("count", 4, "keys per vector file")
	flag.Parse()

	log, err := logger.New("vectorgen", logger.Options{})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(*outDir, *count, log); err != nil {
		log.Error("vector generation failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(2)
	}
}

func run(outDir string, count int, log *zap.Logger) error {
	if count < 1 {
		return crypto.NewError(crypto.KindConfig, "count", "must be at least 1")
	}
	scheme, err := crypto.Lookup(crypto.ParameterSet)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return crypto.WrapError(crypto.KindIO, outDir, "cannot create output directory", err)
	}

	sigVer, err := acvp.BuildSigVer(scheme, count)
	if err != nil {
		return err
	}
	sigGen, err := acvp.BuildSigGen(scheme, count)
	if err != nil {
		return err
	}

	files := []struct {
		name string
		v    any
	}{
		{"keyGen.json", acvp.BuildKeyGen(scheme, count)},
		{"sigVer.json", sigVer},
		{"sigGen.json", sigGen},
	}
	for _, f := range files {
		data, err := json.MarshalIndent(f.v, "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, f.name)
		if err := storage.WriteFile(path, data); err != nil {
			return err
		}
		log.Info("vector file written", zap.String("path", path), zap.Int("bytes", len(data)))
	}
	return nil
}
