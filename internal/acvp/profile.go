package acvp

// Labels used by ML-DSA sigVer and sigGen groups.
const (
	InterfaceExternal = "external"
	InterfaceInternal = "internal"
	PreHashPure       = "pure"
	PreHashPreHash    = "preHash"
)

// Profile selects the test groups a run replays. Groups outside the profile
// exercise interfaces this module never uses and are skipped.
type Profile struct {
	ParameterSet       string
	SignatureInterface string
	PreHash            string
}

// DefaultProfile matches the external, pure interface for parameterSet: the
// verifier receives the raw message and hashes internally.
func DefaultProfile(parameterSet string) Profile {
	return Profile{
		ParameterSet:       parameterSet,
		SignatureInterface: InterfaceExternal,
		PreHash:            PreHashPure,
	}
}

func (p Profile) matchKeyGen(g *KeyGenGroup) bool {
	return g.ParameterSet == p.ParameterSet
}

func (p Profile) matchSigVer(g *SigVerGroup) bool {
	return g.ParameterSet == p.ParameterSet &&
		g.SignatureInterface == p.SignatureInterface &&
		g.PreHash == p.PreHash
}

// Only deterministic sigGen groups are reproducible; hedged groups are skipped.
func (p Profile) matchSigGen(g *SigGenGroup) bool {
	return g.Deterministic &&
		g.ParameterSet == p.ParameterSet &&
		g.SignatureInterface == p.SignatureInterface &&
		g.PreHash == p.PreHash
}
