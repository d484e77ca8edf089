package crypto

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Scheme is the signature algorithm boundary. Implementations own all lattice
// arithmetic; this package only fixes the encodings they exchange.
type Scheme interface {
	// Name returns the parameter-set label, e.g. "ML-DSA-65".
	Name() string
	// GenerateKey draws a fresh seed from rand and derives its keypair.
	GenerateKey(rand io.Reader) (VerifyingKey, Seed, error)
	// DeriveKey deterministically derives the public key and the packed secret key.
	// The seed is only read; the caller keeps ownership and zeroes it.
	DeriveKey(seed *Seed) (VerifyingKey, []byte)
	// Sign deterministically signs msg with the key derived from seed, using an empty context.
	Sign(seed *Seed, msg []byte) (Signature, error)
	// Verify reports whether sig is a valid signature of msg under pk and ctx.
	Verify(pk VerifyingKey, msg, ctx []byte, sig Signature) bool
}

// ContextSigner is implemented by schemes that can sign from a packed secret key
// with an explicit context string.
type ContextSigner interface {
	SignWithContext(sk []byte, msg, ctx []byte) (Signature, error)
}

var (
	schemesMu sync.RWMutex
	schemes   = map[string]Scheme{}
)

// Register makes a scheme available under its parameter-set label.
func Register(s Scheme) {
	schemesMu.Lock()
	defer schemesMu.Unlock()
	if _, dup := schemes[s.Name()]; dup {
		panic("crypto: Register called twice for " + s.Name())
	}
	schemes[s.Name()] = s
}

// Lookup returns the scheme registered for the parameter-set label.
func Lookup(label string) (Scheme, error) {
	schemesMu.RLock()
	defer schemesMu.RUnlock()
	s, ok := schemes[label]
	if !ok {
		return nil, NewError(KindConfig, "parameter set", fmt.Sprintf("unsupported parameter set %q", label))
	}
	return s, nil
}

// Schemes lists the registered parameter-set labels in sorted order.
func Schemes() []string {
	schemesMu.RLock()
	defer schemesMu.RUnlock()
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
