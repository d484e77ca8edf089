package dilithium

import (
	"github.com/D13ya/pqsig/internal/crypto"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// VerifyMLDSA checks an ML-DSA-65 signature over message bound to ctx.
func VerifyMLDSA(publicKey *mldsa65.PublicKey, message, ctx []byte, signature crypto.Signature) bool {
	if publicKey == nil || len(ctx) > crypto.MaxContextSize {
		return false
	}
	return mldsa65.Verify(publicKey, message, ctx, signature[:])
}
