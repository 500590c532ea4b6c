// Package codec implements the three primary byte-to-DNA encoders
// (spec.md §4.1-4.3): Base4Direct, the fixed 2-bit-per-nucleotide
// mapping every other encoder builds on; Huffman4, an adaptive
// prefix code over the byte alphabet followed by the same 2-bit
// mapping; and GCBalanced, which wraps Base4Direct with a
// constraint-aware bit inversion and a one-nucleotide tag.
//
// Every function here is a pure, stateless transform: no shared mutable
// state crosses calls, so encoding and decoding disjoint inputs in
// parallel is always safe (spec.md §5).
package codec
