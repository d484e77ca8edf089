package app

import (
	"fmt"
	"io"

	"github.com/D13ya/pqsig/internal/crypto"
	"github.com/D13ya/pqsig/internal/storage"
	"github.com/D13ya/pqsig/pkg/profiler"
	"go.uber.org/zap"
)

// LifecycleService implements keygen, sign and verify over key files.
type LifecycleService struct {
	scheme crypto.Scheme
	rand   io.Reader
	log    *zap.Logger
}

// NewLifecycleService returns a service drawing fresh seeds from rand.
// A nil rand lets the scheme pick the system source.
func NewLifecycleService(scheme crypto.Scheme, rand io.Reader, log *zap.Logger) *LifecycleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LifecycleService{scheme: scheme, rand: rand, log: log}
}

// KeygenResult lists the files Keygen wrote.
type KeygenResult struct {
	PublicKeyPath string
	SeedPath      string
}

// Keygen generates a keypair and writes pk.bin and sk.bin (the seed) under outputDir.
func (s *LifecycleService) Keygen(outputDir string, force bool) (*KeygenResult, error) {
	pk, seed, err := s.scheme.GenerateKey(s.rand)
	if err != nil {
		return nil, fmt.Errorf("key generation failed: %w", err)
	}
	defer seed.Zero()

	kd := storage.KeyDir{Dir: outputDir}
	if err := kd.Write(pk, seed, force); err != nil {
		return nil, err
	}
	s.log.Info("keypair written",
		zap.String("public_key", kd.PublicKeyPath()),
		zap.String("seed", kd.SeedPath()),
		zap.String("parameter_set", s.scheme.Name()),
	)
	return &KeygenResult{PublicKeyPath: kd.PublicKeyPath(), SeedPath: kd.SeedPath()}, nil
}

// Sign signs the 32-byte digest hashHex with the key derived from the seed file and
// writes the signature to outputPath. contextHex may be empty.
func (s *LifecycleService) Sign(seedPath, hashHex, outputPath, contextHex string) error {
	seed, err := storage.ReadSeed(seedPath)
	if err != nil {
		return err
	}
	defer seed.Zero()

	digest, err := crypto.DecodeDigest(hashHex)
	if err != nil {
		return err
	}
	ctx, err := crypto.DecodeContext(contextHex)
	if err != nil {
		return err
	}

	timer := profiler.Start()
	sig, err := s.sign(seed, digest, ctx)
	if err != nil {
		return fmt.Errorf("signing failed: %w", err)
	}
	if err := storage.WriteFile(outputPath, sig.Encode()); err != nil {
		return err
	}
	s.log.Debug("signature written", zap.String("path", outputPath), timer.Field())
	return nil
}

func (s *LifecycleService) sign(seed crypto.Seed, digest, ctx []byte) (crypto.Signature, error) {
	if len(ctx) == 0 {
		return s.scheme.Sign(&seed, digest)
	}
	signer, ok := s.scheme.(crypto.ContextSigner)
	if !ok {
		return crypto.Signature{}, crypto.NewError(crypto.KindConfig, "context", s.scheme.Name()+" does not support context strings")
	}
	_, sk := s.scheme.DeriveKey(&seed)
	defer clear(sk)
	return signer.SignWithContext(sk, digest, ctx)
}

// Verify loads and validates every input before verifying. The error is non-nil
// only for malformed input; an invalid signature is (false, nil).
func (s *LifecycleService) Verify(keyPath, hashHex, sigPath, contextHex string) (bool, error) {
	pk, err := storage.ReadVerifyingKey(keyPath)
	if err != nil {
		return false, err
	}
	digest, err := crypto.DecodeDigest(hashHex)
	if err != nil {
		return false, err
	}
	sig, err := storage.ReadSignature(sigPath)
	if err != nil {
		return false, err
	}
	ctx, err := crypto.DecodeContext(contextHex)
	if err != nil {
		return false, err
	}

	timer := profiler.Start()
	ok := s.scheme.Verify(pk, digest, ctx, sig)
	s.log.Debug("signature checked", zap.Bool("valid", ok), timer.Field())
	return ok, nil
}
