package acvp

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/D13ya/pqsig/internal/crypto"
	json "github.com/json-iterator/go"
	"golang.org/x/crypto/sha3"
)

// Vector file modes, as carried in the ACVP "mode" field.
const (
	ModeKeyGen = "keyGen"
	ModeSigVer = "sigVer"
	ModeSigGen = "sigGen"
)

// Header is the part of an ACVP vector set shared by every mode.
type Header struct {
	VsID      int    `json:"vsId"`
	Algorithm string `json:"algorithm"`
	Mode      string `json:"mode"`
	Revision  string `json:"revision"`

	// Fingerprint is the hex SHA3-256 of the raw file, set by the loaders.
	Fingerprint string `json:"-"`
}

// KeyGenFile is an ML-DSA keyGen vector set.
type KeyGenFile struct {
	Header
	TestGroups []KeyGenGroup `json:"testGroups"`
}

type KeyGenGroup struct {
	TgID         int          `json:"tgId"`
	TestType     string       `json:"testType"`
	ParameterSet string       `json:"parameterSet"`
	Tests        []KeyGenCase `json:"tests"`
}

type KeyGenCase struct {
	TcID int    `json:"tcId"`
	Seed string `json:"seed"`
	PK   string `json:"pk"`
	SK   string `json:"sk"`
}

// SigVerFile is an ML-DSA sigVer vector set with expected results merged in.
type SigVerFile struct {
	Header
	TestGroups []SigVerGroup `json:"testGroups"`
}

type SigVerGroup struct {
	TgID               int          `json:"tgId"`
	TestType           string       `json:"testType"`
	ParameterSet       string       `json:"parameterSet"`
	SignatureInterface string       `json:"signatureInterface"`
	PreHash            string       `json:"preHash"`
	Tests              []SigVerCase `json:"tests"`
}

type SigVerCase struct {
	TcID       int    `json:"tcId"`
	TestPassed bool   `json:"testPassed"`
	PK         string `json:"pk"`
	Message    string `json:"message,omitempty"`
	Context    string `json:"context,omitempty"`
	Signature  string `json:"signature"`
	Reason     string `json:"reason,omitempty"`
}

// SigGenFile is an ML-DSA sigGen vector set with expected signatures merged in.
type SigGenFile struct {
	Header
	TestGroups []SigGenGroup `json:"testGroups"`
}

type SigGenGroup struct {
	TgID               int          `json:"tgId"`
	TestType           string       `json:"testType"`
	ParameterSet       string       `json:"parameterSet"`
	Deterministic      bool         `json:"deterministic"`
	SignatureInterface string       `json:"signatureInterface"`
	PreHash            string       `json:"preHash"`
	Tests              []SigGenCase `json:"tests"`
}

type SigGenCase struct {
	TcID      int    `json:"tcId"`
	SK        string `json:"sk"`
	Message   string `json:"message"`
	Context   string `json:"context,omitempty"`
	Signature string `json:"signature"`
}

// ParseKeyGen decodes a keyGen vector set.
func ParseKeyGen(data []byte) (*KeyGenFile, error) {
	var f KeyGenFile
	if err := parse(data, ModeKeyGen, &f, &f.Header); err != nil {
		return nil, err
	}
	return &f, nil
}

// ParseSigVer decodes a sigVer vector set.
func ParseSigVer(data []byte) (*SigVerFile, error) {
	var f SigVerFile
	if err := parse(data, ModeSigVer, &f, &f.Header); err != nil {
		return nil, err
	}
	return &f, nil
}

// ParseSigGen decodes a sigGen vector set.
func ParseSigGen(data []byte) (*SigGenFile, error) {
	var f SigGenFile
	if err := parse(data, ModeSigGen, &f, &f.Header); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadKeyGen reads and decodes the keyGen vector file at path.
func LoadKeyGen(path string) (*KeyGenFile, error) {
	data, err := readVectors(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseKeyGen(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadSigVer reads and decodes the sigVer vector file at path.
func LoadSigVer(path string) (*SigVerFile, error) {
	data, err := readVectors(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseSigVer(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadSigGen reads and decodes the sigGen vector file at path.
func LoadSigGen(path string) (*SigGenFile, error) {
	data, err := readVectors(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseSigGen(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func readVectors(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, crypto.WrapError(crypto.KindIO, path, "read vector file failed", err)
	}
	return data, nil
}

func parse(data []byte, mode string, dst any, hdr *Header) error {
	body, err := unwrapVectorSet(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return crypto.WrapError(crypto.KindParse, mode, "malformed vector JSON", err)
	}
	if hdr.Mode != "" && hdr.Mode != mode {
		return crypto.NewError(crypto.KindParse, mode, fmt.Sprintf("vector file has mode %q", hdr.Mode))
	}
	sum := sha3.Sum256(data)
	hdr.Fingerprint = hex.EncodeToString(sum[:])
	return nil
}

// unwrapVectorSet accepts both a bare vector-set object and the ACVP
// protocol envelope [{"acvVersion": ...}, {vector set}].
func unwrapVectorSet(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return trimmed, nil
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(trimmed, &parts); err != nil {
		return nil, crypto.WrapError(crypto.KindParse, "", "malformed vector JSON", err)
	}
	for _, part := range parts {
		if json.Get(part, "testGroups").ValueType() != json.InvalidValue {
			return part, nil
		}
	}
	return nil, crypto.NewError(crypto.KindParse, "", "vector envelope has no testGroups")
}
