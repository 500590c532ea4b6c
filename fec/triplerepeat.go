package fec

import "github.com/d0ttino/genecoder/gcerr"

// TripleRepeatEncode triples every nucleotide in seq (spec.md §4.4).
func TripleRepeatEncode(seq []byte) []byte {
	out := make([]byte, 0, len(seq)*3)
	for _, nt := range seq {
		out = append(out, nt, nt, nt)
	}
	return out
}

// TripleRepeatDecode inverts TripleRepeatEncode by majority vote within
// each triplet. A triplet where only two of three nucleotides agree is
// "corrected"; one where all three differ is "uncorrectable" and its
// first nucleotide is emitted as a best guess. Both counts are returned
// alongside the decoded sequence.
func TripleRepeatDecode(seq []byte) (out []byte, corrected int, uncorrectable int, err error) {
	if len(seq)%3 != 0 {
		return nil, 0, 0, gcerr.Errorf("fec.TripleRepeatDecode", gcerr.TruncatedPayload, "triple-repeat sequence length %d is not a multiple of 3", len(seq))
	}
	out = make([]byte, 0, len(seq)/3)
	for i := 0; i < len(seq); i += 3 {
		a, b, c := seq[i], seq[i+1], seq[i+2]
		switch {
		case a == b && b == c:
			out = append(out, a)
		case a == b || a == c:
			out = append(out, a)
			corrected++
		case b == c:
			out = append(out, b)
			corrected++
		default:
			out = append(out, a)
			uncorrectable++
		}
	}
	return out, corrected, uncorrectable, nil
}
