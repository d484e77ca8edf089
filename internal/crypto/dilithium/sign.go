package dilithium

import (
	"errors"

	"github.com/D13ya/pqsig/internal/crypto"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

var errMissingMLDSAKey = errors.New("mldsa key is required")

// SignMLDSA creates a deterministic ML-DSA-65 signature over message bound to ctx.
func SignMLDSA(privateKey *mldsa65.PrivateKey, message, ctx []byte) (crypto.Signature, error) {
	if privateKey == nil {
		return crypto.Signature{}, errMissingMLDSAKey
	}
	var sig crypto.Signature
	if err := mldsa65.SignTo(privateKey, message, ctx, false, sig[:]); err != nil {
		return crypto.Signature{}, err
	}
	return sig, nil
}
