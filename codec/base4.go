package codec

import (
	"github.com/d0ttino/genecoder/biosimd"
	"github.com/d0ttino/genecoder/gcerr"
)

// Base4Encode converts data to its Base-4 Direct nucleotide sequence: each
// byte becomes four nucleotides under bit pairs (7,6), (5,4), (3,2),
// (1,0) (spec.md §4.1). It never fails.
func Base4Encode(data []byte) []byte {
	return biosimd.BytesToNucleotides(data)
}

// Base4Decode inverts Base4Encode. It returns a *gcerr.Error of kind
// TruncatedPayload if len(seq) is not a multiple of 4, or of kind
// InvalidAlphabet if seq contains a byte other than 'A', 'T', 'C', 'G'.
func Base4Decode(seq []byte) ([]byte, error) {
	if len(seq)%4 != 0 {
		return nil, gcerr.Errorf("base4.Decode", gcerr.TruncatedPayload,
			"sequence length %d is not a multiple of 4", len(seq))
	}
	data, badIndex, ok := biosimd.NucleotidesToBytes(seq)
	if !ok {
		return nil, gcerr.Errorf("base4.Decode", gcerr.InvalidAlphabet,
			"invalid nucleotide %q at position %d", seq[badIndex], badIndex)
	}
	return data, nil
}
