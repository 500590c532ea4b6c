package codec

import (
	"github.com/d0ttino/genecoder/biosimd"
	"github.com/d0ttino/genecoder/gcerr"
)

// GCConstraints bundles the tunables GC-Balanced checks against
// (spec.md §4.3).
type GCConstraints struct {
	GCMin          float64
	GCMax          float64
	MaxHomopolymer int
}

// DefaultGCConstraints matches spec.md §6's defaults.
func DefaultGCConstraints() GCConstraints {
	return GCConstraints{GCMin: 0.45, GCMax: 0.55, MaxHomopolymer: 3}
}

// GCBalancedEncode wraps Base4Encode with a constraint-aware bit
// inversion and a one-nucleotide tag (spec.md §4.3). It tries
// Base4Encode(data) first; if that satisfies both the GC-content window
// and the homopolymer limit, it is tagged with 'A' and returned as-is.
// Otherwise the bitwise-NOT of data is encoded and tagged with 'T'
// unconditionally — GC-Balanced never guarantees the inverted candidate
// actually satisfies the constraints, it only advertises best effort.
func GCBalancedEncode(data []byte, cfg GCConstraints) []byte {
	cand0 := biosimd.BytesToNucleotides(data)
	if biosimd.GCWithinRange(cand0, cfg.GCMin, cfg.GCMax) && biosimd.HomopolymerWithinLimit(cand0, cfg.MaxHomopolymer) {
		return append([]byte{biosimd.A}, cand0...)
	}
	cand1 := biosimd.BytesToNucleotides(biosimd.InvertBytes(data))
	return append([]byte{biosimd.T}, cand1...)
}

// GCBalancedDecode inverts GCBalancedEncode. The first nucleotide must be
// 'A' (payload is Base4Direct(data) as-is) or 'T' (payload is
// Base4Direct(~data), so the decoded bytes are inverted back); any other
// first nucleotide is a *gcerr.Error of kind InvalidTag.
func GCBalancedDecode(seq []byte) ([]byte, error) {
	if len(seq) == 0 {
		return nil, gcerr.Errorf("gcbalanced.Decode", gcerr.InvalidTag, "empty sequence has no tag nucleotide")
	}
	tag := seq[0]
	if tag != biosimd.A && tag != biosimd.T {
		return nil, gcerr.Errorf("gcbalanced.Decode", gcerr.InvalidTag, "tag nucleotide must be 'A' or 'T', got %q", tag)
	}
	data, err := Base4Decode(seq[1:])
	if err != nil {
		return nil, err
	}
	if tag == biosimd.T {
		return biosimd.InvertBytes(data), nil
	}
	return data, nil
}

// GCMetrics reports the actual GC ratio and longest homopolymer run of a
// GC-Balanced payload, excluding its tag nucleotide (spec.md §4.3).
func GCMetrics(seq []byte) (gcActual float64, longestRun int) {
	if len(seq) == 0 {
		return 0, 0
	}
	payload := seq[1:]
	return biosimd.GCRatio(payload), biosimd.LongestHomopolymer(payload)
}
