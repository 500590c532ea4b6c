// Package pipeline composes the codec and fec layers into the full
// encode/decode pipeline described by spec.md §4.9, persists results as
// FASTA, and exposes a restricted streaming path for large inputs.
package pipeline

import "github.com/d0ttino/genecoder/codec"

// Method selects the primary nucleotide encoder.
type Method string

const (
	Base4Direct Method = "base4_direct"
	Huffman     Method = "huffman"
	GCBalanced  Method = "gc_balanced"
)

// FEC selects the forward-error-correction layer wrapped around the
// primary encoder's payload.
type FEC string

const (
	FECNone         FEC = "none"
	FECTripleRepeat FEC = "triple_repeat"
	FECHamming74    FEC = "hamming_7_4"
	FECReedSolomon  FEC = "reed_solomon"
)

// Config bundles every tunable the pipeline needs to encode a payload,
// modeled on the teacher's Opts/DefaultOpts convention (e.g.
// fusion.Opts, markduplicates.Opts).
type Config struct {
	Method Method
	FEC    FEC

	AddParity bool

	GCConstraints codec.GCConstraints

	FECNsym int // reed_solomon only

	OriginalFilename string

	StreamChunkBytes int
}

// DefaultConfig returns the spec's documented defaults (§6): base4_direct
// primary, no FEC, no parity, GC-Balanced window 0.45-0.55 with a
// homopolymer cap of 3, RS parity count 10, and a 64KiB stream chunk.
func DefaultConfig() Config {
	return Config{
		Method:           Base4Direct,
		FEC:              FECNone,
		AddParity:        false,
		GCConstraints:    codec.DefaultGCConstraints(),
		FECNsym:          10,
		StreamChunkBytes: 65536,
	}
}
