package pipeline

import (
	"context"
	"strings"

	"github.com/d0ttino/genecoder/biosimd"
	"github.com/d0ttino/genecoder/codec"
	"github.com/d0ttino/genecoder/encoding/fasta"
	"github.com/d0ttino/genecoder/fec"
	"github.com/d0ttino/genecoder/gcerr"
	"github.com/grailbio/base/log"
)

func checkCancelled(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return gcerr.E(op, gcerr.Cancelled, ctx.Err())
	default:
		return nil
	}
}

// Encode runs the fixed pipeline order from spec.md §4.9: optional
// binary FEC (Hamming or Reed-Solomon), the primary encoder, optional
// parity, then optional Triple-Repeat. It returns the resulting
// nucleotide sequence, the descriptor decode will need, and size/quality
// metrics. Cancellation is checked between each stage.
func Encode(ctx context.Context, data []byte, cfg Config) ([]byte, Descriptor, Metrics, error) {
	const op = "pipeline.Encode"
	desc := Descriptor{Method: cfg.Method, OriginalFilename: cfg.OriginalFilename, FEC: cfg.FEC}

	working := data
	if err := checkCancelled(ctx, op); err != nil {
		return nil, Descriptor{}, Metrics{}, err
	}

	switch cfg.FEC {
	case FECHamming74:
		encoded, padding := fec.HammingEncode(working)
		working = encoded
		desc.FECPaddingBits = padding
	case FECReedSolomon:
		nsym := cfg.FECNsym
		if nsym == 0 {
			nsym = DefaultConfig().FECNsym
		}
		encoded, err := fec.ReedSolomonEncode(working, nsym)
		if err != nil {
			return nil, Descriptor{}, Metrics{}, err
		}
		working = encoded
		desc.FECNsym = nsym
	}

	if err := checkCancelled(ctx, op); err != nil {
		return nil, Descriptor{}, Metrics{}, err
	}

	var seq []byte
	switch cfg.Method {
	case Base4Direct:
		seq = codec.Base4Encode(working)
	case Huffman:
		encoded, table, padding, err := codec.Encode(working)
		if err != nil {
			return nil, Descriptor{}, Metrics{}, err
		}
		seq = encoded
		desc.HuffmanTable = table
		desc.HuffmanPadding = padding
	case GCBalanced:
		seq = codec.GCBalancedEncode(working, cfg.GCConstraints)
		desc.GCMin = cfg.GCConstraints.GCMin
		desc.GCMax = cfg.GCConstraints.GCMax
		desc.MaxHomopolymer = cfg.GCConstraints.MaxHomopolymer
	default:
		return nil, Descriptor{}, Metrics{}, gcerr.Errorf(op, gcerr.InvalidHeader, "unknown method %q", cfg.Method)
	}

	metrics := Metrics{}
	if cfg.Method == GCBalanced {
		metrics.GCActual, metrics.MaxHomopolymerActual = codec.GCMetrics(seq)
	}

	if err := checkCancelled(ctx, op); err != nil {
		return nil, Descriptor{}, Metrics{}, err
	}

	// add_parity and fec=hamming_7_4 are mutually exclusive; the
	// orchestrator silently drops parity on encode (spec.md §3 invariant).
	addParity := cfg.AddParity && cfg.FEC != FECHamming74 && (cfg.Method == Base4Direct || cfg.Method == Huffman)
	if addParity {
		out, err := fec.ParityEncode(seq, fec.GCEvenAOddT)
		if err != nil {
			return nil, Descriptor{}, Metrics{}, err
		}
		seq = out
		desc.AddParity = true
		desc.ParityRule = fec.GCEvenAOddT
	}

	if err := checkCancelled(ctx, op); err != nil {
		return nil, Descriptor{}, Metrics{}, err
	}

	if cfg.FEC == FECTripleRepeat {
		seq = fec.TripleRepeatEncode(seq)
	}

	sizeMetrics := computeSizeMetrics(len(data), len(seq))
	metrics.OriginalBytes = sizeMetrics.OriginalBytes
	metrics.DNALength = sizeMetrics.DNALength
	metrics.CompressionRatio = sizeMetrics.CompressionRatio
	metrics.BitsPerNt = sizeMetrics.BitsPerNt

	return seq, desc, metrics, nil
}

// Decode inverts Encode: Triple-Repeat, then an optional parity check,
// then the primary decoder, then the binary FEC layer (spec.md §4.9).
// Corrected/uncorrectable counts and any parity mismatch are returned in
// Metrics rather than as errors, except for an uncorrectable
// Reed-Solomon block, which is fatal.
func Decode(ctx context.Context, seq []byte, desc Descriptor) ([]byte, Metrics, error) {
	const op = "pipeline.Decode"
	originalDNALength := len(seq)

	if err := checkCancelled(ctx, op); err != nil {
		return nil, Metrics{}, err
	}

	metrics := Metrics{}
	if desc.FEC == FECTripleRepeat {
		decoded, corrected, uncorrectable, err := fec.TripleRepeatDecode(seq)
		if err != nil {
			return nil, Metrics{}, err
		}
		seq = decoded
		metrics.TripleRepeatCorrected = corrected
		metrics.TripleRepeatUncorrectable = uncorrectable
	}

	if err := checkCancelled(ctx, op); err != nil {
		return nil, Metrics{}, err
	}

	if desc.AddParity {
		payload, ok, err := fec.ParityCheck(seq, desc.ParityRule)
		if err != nil {
			return nil, Metrics{}, err
		}
		seq = payload
		if !ok {
			metrics.ParityMismatch = true
			log.Error.Printf("%s: parity mismatch, decoding payload anyway", op)
		}
	}

	if err := checkCancelled(ctx, op); err != nil {
		return nil, Metrics{}, err
	}

	var working []byte
	switch desc.Method {
	case Base4Direct:
		decoded, err := codec.Base4Decode(seq)
		if err != nil {
			return nil, Metrics{}, err
		}
		working = decoded
	case Huffman:
		decoded, err := codec.Decode(seq, desc.HuffmanTable, desc.HuffmanPadding)
		if err != nil {
			return nil, Metrics{}, err
		}
		working = decoded
	case GCBalanced:
		metrics.GCActual, metrics.MaxHomopolymerActual = codec.GCMetrics(seq)
		decoded, err := codec.GCBalancedDecode(seq)
		if err != nil {
			return nil, Metrics{}, err
		}
		working = decoded
	default:
		return nil, Metrics{}, gcerr.Errorf(op, gcerr.InvalidHeader, "unknown method %q", desc.Method)
	}

	if err := checkCancelled(ctx, op); err != nil {
		return nil, Metrics{}, err
	}

	switch desc.FEC {
	case FECHamming74:
		decoded, corrected, err := fec.HammingDecode(working, desc.FECPaddingBits)
		if err != nil {
			return nil, Metrics{}, err
		}
		working = decoded
		metrics.HammingCorrected = corrected
	case FECReedSolomon:
		decoded, corrected, err := fec.ReedSolomonDecode(working, desc.FECNsym)
		if err != nil {
			return nil, Metrics{}, err
		}
		working = decoded
		metrics.RSCorrected = corrected
	}

	sizeMetrics := computeSizeMetrics(len(working), originalDNALength)
	metrics.OriginalBytes = sizeMetrics.OriginalBytes
	metrics.DNALength = sizeMetrics.DNALength
	metrics.CompressionRatio = sizeMetrics.CompressionRatio
	metrics.BitsPerNt = sizeMetrics.BitsPerNt

	return working, metrics, nil
}

// ToFASTA renders a pipeline result as a single FASTA record, per
// spec.md §4.8.
func ToFASTA(seq []byte, desc Descriptor, lineWidth int) (string, error) {
	kvs, err := desc.ToKV()
	if err != nil {
		return "", err
	}
	return fasta.ToString(fasta.Record{Header: kvs, Sequence: seq}, lineWidth)
}

// FromFASTA parses a single FASTA record back into its nucleotide
// sequence and descriptor.
func FromFASTA(s string) ([]byte, Descriptor, error) {
	rec, err := fasta.ReadFirst(strings.NewReader(s))
	if err != nil {
		return nil, Descriptor{}, gcerr.E("pipeline.FromFASTA", gcerr.InvalidHeader, err)
	}
	if !biosimd.IsValidSequence(rec.Sequence) {
		return nil, Descriptor{}, gcerr.Errorf("pipeline.FromFASTA", gcerr.InvalidAlphabet, "sequence contains a non-ATCG character")
	}
	desc, err := DescriptorFromKV(rec.Header)
	if err != nil {
		return nil, Descriptor{}, err
	}
	return rec.Sequence, desc, nil
}
