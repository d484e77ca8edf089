package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/D13ya/pqsig/internal/crypto"
)

const (
	// PublicKeyFile holds the packed verifying key.
	PublicKeyFile = "pk.bin"
	// SeedFile holds the 32-byte seed, not the expanded secret key.
	SeedFile = "sk.bin"

	dirPerm  = 0o700
	filePerm = 0o600
)

// ReadExact reads the file at path and requires it to be exactly size bytes.
// At most size+1 bytes are read so an oversized file is rejected without loading it.
func ReadExact(path string, size int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, crypto.WrapError(crypto.KindIO, path, "open failed", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(size)+1))
	if err != nil {
		return nil, crypto.WrapError(crypto.KindIO, path, "read failed", err)
	}
	if len(data) != size {
		if len(data) > size {
			return nil, crypto.NewError(crypto.KindLength, path, fmt.Sprintf("must be exactly %d bytes, file is larger", size))
		}
		return nil, crypto.NewError(crypto.KindLength, path, fmt.Sprintf("must be exactly %d bytes, got %d", size, len(data)))
	}
	return data, nil
}

// ReadSeed loads a seed file.
func ReadSeed(path string) (crypto.Seed, error) {
	data, err := ReadExact(path, crypto.SeedSize)
	if err != nil {
		return crypto.Seed{}, err
	}
	defer clear(data)
	return crypto.DecodeSeed(data)
}

// ReadVerifyingKey loads a packed public key file.
func ReadVerifyingKey(path string) (crypto.VerifyingKey, error) {
	data, err := ReadExact(path, crypto.VerifyingKeySize)
	if err != nil {
		return crypto.VerifyingKey{}, err
	}
	return crypto.DecodeVerifyingKey(data)
}

// ReadSignature loads a packed signature file.
func ReadSignature(path string) (crypto.Signature, error) {
	data, err := ReadExact(path, crypto.SignatureSize)
	if err != nil {
		return crypto.Signature{}, err
	}
	return crypto.DecodeSignature(data)
}

// WriteFile writes data to path with owner-only permissions, truncating any existing file.
func WriteFile(path string, data []byte) error {
	return writeFile(path, data, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

func writeFile(path string, data []byte, flag int) error {
	f, err := os.OpenFile(path, flag, filePerm)
	if err != nil {
		return crypto.WrapError(crypto.KindIO, path, "open for write failed", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return crypto.WrapError(crypto.KindIO, path, "write failed", err)
	}
	if err := f.Close(); err != nil {
		return crypto.WrapError(crypto.KindIO, path, "close failed", err)
	}
	return nil
}

// KeyDir is a directory holding pk.bin and sk.bin.
type KeyDir struct {
	Dir string
}

func (d KeyDir) PublicKeyPath() string { return filepath.Join(d.Dir, PublicKeyFile) }
func (d KeyDir) SeedPath() string      { return filepath.Join(d.Dir, SeedFile) }

// Write creates the directory if needed and stores the key material.
// Without force an existing seed file is never overwritten. If the public key
// cannot be written the seed file is removed again.
func (d KeyDir) Write(pk crypto.VerifyingKey, seed crypto.Seed, force bool) error {
	if err := os.MkdirAll(d.Dir, dirPerm); err != nil {
		return crypto.WrapError(crypto.KindIO, d.Dir, "mkdir failed", err)
	}

	seedBytes := seed.Encode()
	defer clear(seedBytes)

	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	if err := writeFile(d.SeedPath(), seedBytes, flag); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return crypto.NewError(crypto.KindIO, d.SeedPath(), "already exists (use --force to overwrite)")
		}
		return err
	}
	if err := WriteFile(d.PublicKeyPath(), pk.Encode()); err != nil {
		// Never leave a seed without its public key.
		_ = os.Remove(d.SeedPath())
		return err
	}
	return nil
}
