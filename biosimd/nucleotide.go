// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

// Nucleotide is one of 'A', 'T', 'C', 'G'. It is the unit of every DNA
// sequence produced or consumed by this module.
type Nucleotide = byte

// The fixed base-4 digit mapping shared by every encoder: 00->A, 01->T,
// 10->C, 11->G. This mapping is load-bearing for every test in the
// corpus and must never change.
const (
	A Nucleotide = 'A'
	T Nucleotide = 'T'
	C Nucleotide = 'C'
	G Nucleotide = 'G'
)

// bitPairToNt maps a 2-bit value (0-3) to its nucleotide under the fixed
// base-4 mapping.
var bitPairToNt = [4]byte{A, T, C, G}

// ntToBitPair maps an ASCII byte to its 2-bit value under the fixed base-4
// mapping, or 0xff if the byte is not one of 'A', 'T', 'C', 'G'.
var ntToBitPair = [256]byte{}

func init() {
	for i := range ntToBitPair {
		ntToBitPair[i] = 0xff
	}
	for bits, nt := range bitPairToNt {
		ntToBitPair[nt] = byte(bits)
	}
}

// BitPairToNucleotide returns the nucleotide for a 2-bit value in [0,3].
// Only the low two bits of bits are used; higher bits are ignored.
func BitPairToNucleotide(bits byte) Nucleotide {
	return bitPairToNt[bits&3]
}

// NucleotideToBitPair returns the 2-bit value for nt and true, or
// (0, false) if nt is not one of 'A', 'T', 'C', 'G'.
func NucleotideToBitPair(nt byte) (byte, bool) {
	v := ntToBitPair[nt]
	if v == 0xff {
		return 0, false
	}
	return v, true
}

// IsValidSequence reports whether every byte in seq is one of 'A', 'T',
// 'C', 'G'. An empty sequence is valid.
func IsValidSequence(seq []byte) bool {
	for _, b := range seq {
		if ntToBitPair[b] == 0xff {
			return false
		}
	}
	return true
}

// BytesToNucleotides maps each byte of data to four nucleotides, MSB-first:
// bit pairs (7,6), (5,4), (3,2), (1,0) each become one nucleotide in that
// order. This is the Base-4 Direct forward transform (spec.md §4.1) and is
// also used as the nucleotide-mapping stage inside Huffman-4 and
// GC-Balanced.
func BytesToNucleotides(data []byte) []byte {
	out := make([]byte, 0, len(data)*4)
	for _, b := range data {
		out = append(out,
			bitPairToNt[(b>>6)&3],
			bitPairToNt[(b>>4)&3],
			bitPairToNt[(b>>2)&3],
			bitPairToNt[b&3],
		)
	}
	return out
}

// NucleotidesToBytes is the inverse of BytesToNucleotides. seq must have a
// length that is a multiple of 4; the caller is responsible for that check
// (see fec/codec TruncatedPayload handling). It returns ok=false at the
// first byte that is not 'A', 'T', 'C', or 'G', along with the 0-based
// index of that byte within seq.
func NucleotidesToBytes(seq []byte) (data []byte, badIndex int, ok bool) {
	n := len(seq) / 4
	data = make([]byte, n)
	for i := 0; i < n; i++ {
		var b byte
		for j := 0; j < 4; j++ {
			v := ntToBitPair[seq[i*4+j]]
			if v == 0xff {
				return nil, i*4 + j, false
			}
			b = (b << 2) | v
		}
		data[i] = b
	}
	return data, -1, true
}

// InvertBytes returns the bitwise NOT of every byte in data. It is used by
// GC-Balanced to produce its second candidate encoding.
func InvertBytes(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = ^b
	}
	return out
}
