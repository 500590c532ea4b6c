package fec

import (
	"github.com/d0ttino/genecoder/biosimd"
	"github.com/d0ttino/genecoder/gcerr"
)

// HammingEncode treats data as an MSB-first bitstream, splits it into
// 4-bit nibbles, and produces one 7-bit Hamming(7,4) codeword per nibble
// with parity bits at positions 1, 2, 4 (spec.md §4.6). The codeword
// bitstream is padded with zero bits to a byte boundary; the pad count
// (0-7) is returned as fecPaddingBits so the caller can record it in the
// descriptor.
func HammingEncode(data []byte) (encoded []byte, fecPaddingBits int) {
	br := biosimd.NewBitReader(data)
	bw := biosimd.NewBitWriter()
	for br.Remaining() >= 4 {
		nibble, _ := br.ReadBits(4)
		d1 := byte((nibble >> 3) & 1)
		d2 := byte((nibble >> 2) & 1)
		d3 := byte((nibble >> 1) & 1)
		d4 := byte(nibble & 1)
		p1 := d1 ^ d2 ^ d4
		p2 := d1 ^ d3 ^ d4
		p4 := d2 ^ d3 ^ d4
		bw.WriteBit(p1)
		bw.WriteBit(p2)
		bw.WriteBit(d1)
		bw.WriteBit(p4)
		bw.WriteBit(d2)
		bw.WriteBit(d3)
		bw.WriteBit(d4)
	}
	fecPaddingBits = (8 - (bw.Len() % 8)) % 8
	for i := 0; i < fecPaddingBits; i++ {
		bw.WriteBit(0)
	}
	return bw.Bytes(), fecPaddingBits
}

// HammingDecode inverts HammingEncode: it strips fecPaddingBits trailing
// bits, regroups the remaining bitstream into 7-bit codewords, corrects
// any single-bit error per codeword via syndrome decoding, and repacks
// the extracted data nibbles into bytes. The number of corrected
// codewords is returned alongside the decoded bytes.
func HammingDecode(encoded []byte, fecPaddingBits int) (data []byte, corrected int, err error) {
	if fecPaddingBits < 0 || fecPaddingBits > 7 {
		return nil, 0, gcerr.Errorf("fec.HammingDecode", gcerr.InvalidHeader, "fec_padding_bits out of range: %d", fecPaddingBits)
	}
	totalBits := len(encoded)*8 - fecPaddingBits
	if totalBits < 0 || totalBits%7 != 0 {
		return nil, 0, gcerr.Errorf("fec.HammingDecode", gcerr.TruncatedPayload, "hamming bitstream length %d is not a multiple of 7 after stripping padding", totalBits)
	}
	br := biosimd.NewBitReader(encoded)
	bw := biosimd.NewBitWriter()
	nCodewords := totalBits / 7
	for i := 0; i < nCodewords; i++ {
		var cw [7]byte
		for j := 0; j < 7; j++ {
			cw[j], _ = br.ReadBit()
		}
		s1 := cw[0] ^ cw[2] ^ cw[4] ^ cw[6]
		s2 := cw[1] ^ cw[2] ^ cw[5] ^ cw[6]
		s4 := cw[3] ^ cw[4] ^ cw[5] ^ cw[6]
		syndrome := int(s1) + 2*int(s2) + 4*int(s4)
		if syndrome != 0 {
			cw[syndrome-1] ^= 1
			corrected++
		}
		bw.WriteBit(cw[2])
		bw.WriteBit(cw[4])
		bw.WriteBit(cw[5])
		bw.WriteBit(cw[6])
	}
	return bw.Bytes(), corrected, nil
}
