package acvp

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoMatchingGroups means the filter selected nothing; a run with zero cases
	// must never pass.
	ErrNoMatchingGroups = errors.New("no test groups match the profile")
	// ErrNoTestCases means the matching groups were empty.
	ErrNoTestCases = errors.New("matching test groups contain no test cases")
	// ErrMismatches is wrapped by Report.Err when any case disagreed with its vector.
	ErrMismatches = errors.New("conformance mismatches")
)

// Mismatch is the diagnostic for one case whose outcome differs from the vector.
type Mismatch struct {
	Mode     string
	GroupID  int
	CaseID   int
	Expected string
	Actual   string
	Reason   string
}

func (m Mismatch) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MISMATCH %s tgId=%d tcId=%d: expected=%s, got=%s", m.Mode, m.GroupID, m.CaseID, m.Expected, m.Actual)
	if m.Reason != "" {
		fmt.Fprintf(&b, ", reason=%q", m.Reason)
	}
	return b.String()
}

// Report aggregates one replay of a vector file.
type Report struct {
	Mode         string
	ParameterSet string
	Fingerprint  string
	Groups       int
	Total        int
	Mismatches   int
	// Diagnostics are ordered as the cases appear in the vector file.
	Diagnostics []Mismatch
}

// OK reports whether every replayed case matched.
func (r *Report) OK() bool {
	return r.Total > 0 && r.Mismatches == 0
}

func (r *Report) Summary() string {
	return fmt.Sprintf("ACVP %s %s: %d vectors tested, %d mismatches", r.Mode, r.ParameterSet, r.Total, r.Mismatches)
}

// Err returns nil for a clean run, or an error wrapping ErrMismatches.
func (r *Report) Err() error {
	if r.Mismatches == 0 {
		return nil
	}
	return fmt.Errorf("%w: ACVP %s: %d/%d test vectors did not match expected results",
		ErrMismatches, r.Mode, r.Mismatches, r.Total)
}

// Merge folds other into r. Mode, ParameterSet and Fingerprint of r are kept.
func (r *Report) Merge(other *Report) {
	r.Groups += other.Groups
	r.Total += other.Total
	r.Mismatches += other.Mismatches
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

func (r *Report) add(m *Mismatch) {
	r.Total++
	if m != nil {
		r.Mismatches++
		r.Diagnostics = append(r.Diagnostics, *m)
	}
}
