package dilithium

import (
	"io"

	"github.com/D13ya/pqsig/internal/crypto"
)

// Scheme is the circl-backed ML-DSA-65 implementation of crypto.Scheme.
type Scheme struct{}

var (
	_ crypto.Scheme        = Scheme{}
	_ crypto.ContextSigner = Scheme{}
)

func init() {
	crypto.Register(Scheme{})
}

func (Scheme) Name() string { return crypto.ParameterSet }

func (Scheme) GenerateKey(rand io.Reader) (crypto.VerifyingKey, crypto.Seed, error) {
	return GenerateKeyPair(rand)
}

func (Scheme) DeriveKey(seed *crypto.Seed) (crypto.VerifyingKey, []byte) {
	pk, sk := NewKeyFromSeed(seed)
	defer WipePrivateKey(sk)
	return PackPublicKey(pk), sk.Bytes()
}

func (Scheme) Sign(seed *crypto.Seed, msg []byte) (crypto.Signature, error) {
	_, sk := NewKeyFromSeed(seed)
	defer WipePrivateKey(sk)
	return SignMLDSA(sk, msg, nil)
}

func (Scheme) Verify(pk crypto.VerifyingKey, msg, ctx []byte, sig crypto.Signature) bool {
	return VerifyMLDSA(ParsePublicKey(pk), msg, ctx, sig)
}

// SignWithContext signs from a packed secret key. Used to replay deterministic
// signature-generation vectors, which carry sk rather than a seed.
func (Scheme) SignWithContext(sk []byte, msg, ctx []byte) (crypto.Signature, error) {
	priv, err := ParsePrivateKey(sk)
	if err != nil {
		return crypto.Signature{}, err
	}
	defer WipePrivateKey(priv)
	if len(ctx) > crypto.MaxContextSize {
		return crypto.Signature{}, crypto.NewError(crypto.KindLength, "context", "longer than 255 bytes")
	}
	return SignMLDSA(priv, msg, ctx)
}
