package crypto

const (
	// ParameterSet is the only ML-DSA parameter set this module signs with.
	ParameterSet = "ML-DSA-65"

	// SeedSize is the size of the keygen seed (xi in FIPS 204).
	SeedSize = 32

	// VerifyingKeySize is the size of a packed ML-DSA-65 public key.
	VerifyingKeySize = 1952

	// SecretKeySize is the size of a packed ML-DSA-65 secret key.
	// Only the conformance harness handles this encoding; key files hold the seed.
	SecretKeySize = 4032

	// SignatureSize is the size of an ML-DSA-65 signature.
	SignatureSize = 3309

	// DigestSize is the size of the pre-hashed message the CLI signs.
	DigestSize = 32

	// MaxContextSize is the largest context string FIPS 204 allows.
	MaxContextSize = 255
)
