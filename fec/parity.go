package fec

import "github.com/d0ttino/genecoder/gcerr"

// ParityRule names a single-trailing-nucleotide parity scheme (spec.md
// §4.5). GCEvenAOddT is the only rule concretely defined by sources;
// any other value is rejected on decode.
type ParityRule string

const (
	GCEvenAOddT ParityRule = "GC_even_A_odd_T"
)

// ParityEncode computes the GC parity of payload and appends the tag
// nucleotide: 'A' when the GC count is even, 'T' when odd.
func ParityEncode(payload []byte, rule ParityRule) ([]byte, error) {
	if rule != GCEvenAOddT {
		return nil, gcerr.Errorf("fec.ParityEncode", gcerr.InvalidHeader, "unknown parity_rule %q", rule)
	}
	tag := byte('A')
	if gcCount(payload)%2 != 0 {
		tag = 'T'
	}
	out := make([]byte, len(payload)+1)
	copy(out, payload)
	out[len(payload)] = tag
	return out, nil
}

// ParityCheck splits seq into its payload and trailing tag nucleotide,
// recomputes the expected tag over the payload, and reports whether they
// match. A mismatch is non-fatal: the payload is still returned.
func ParityCheck(seq []byte, rule ParityRule) (payload []byte, ok bool, err error) {
	if rule != GCEvenAOddT {
		return nil, false, gcerr.Errorf("fec.ParityCheck", gcerr.InvalidHeader, "unknown parity_rule %q", rule)
	}
	if len(seq) == 0 {
		return nil, false, gcerr.Errorf("fec.ParityCheck", gcerr.TruncatedPayload, "empty sequence has no parity nucleotide")
	}
	payload = seq[:len(seq)-1]
	wantTag := byte('A')
	if gcCount(payload)%2 != 0 {
		wantTag = 'T'
	}
	return payload, seq[len(seq)-1] == wantTag, nil
}

func gcCount(seq []byte) int {
	n := 0
	for _, nt := range seq {
		if nt == 'G' || nt == 'C' {
			n++
		}
	}
	return n
}
