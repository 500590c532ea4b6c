package pipeline

import (
	"context"
	"io"

	"github.com/d0ttino/genecoder/biosimd"
	"github.com/d0ttino/genecoder/codec"
	"github.com/d0ttino/genecoder/encoding/fasta"
	"github.com/d0ttino/genecoder/gcerr"
)

// streamableConfig reports whether cfg is within the restricted
// configuration streaming supports (spec.md §4.10): only base4_direct,
// with no FEC and no parity, since Base-4 Direct has no cross-byte
// state and every other method or FEC layer does.
func streamableConfig(cfg Config) bool {
	return cfg.Method == Base4Direct && cfg.FEC == FECNone && !cfg.AddParity
}

// EncodeStream reads data from r in cfg.StreamChunkBytes chunks,
// encodes each chunk independently with Base-4 Direct, and writes a
// single line-wrapped FASTA record to w. Memory use is O(chunk size).
// Any other method/FEC/parity configuration is rejected with
// gcerr.UnsupportedForStreaming.
func EncodeStream(ctx context.Context, w io.Writer, r io.Reader, cfg Config) (Metrics, error) {
	const op = "pipeline.EncodeStream"
	if !streamableConfig(cfg) {
		return Metrics{}, gcerr.Errorf(op, gcerr.UnsupportedForStreaming, "streaming requires method=base4_direct, fec=none, add_parity=false")
	}
	chunkBytes := cfg.StreamChunkBytes
	if chunkBytes <= 0 {
		chunkBytes = DefaultConfig().StreamChunkBytes
	}

	desc := Descriptor{Method: Base4Direct, FEC: FECNone, OriginalFilename: cfg.OriginalFilename}
	kvs, err := desc.ToKV()
	if err != nil {
		return Metrics{}, err
	}
	sw, err := fasta.NewStreamWriter(w, kvs, fasta.DefaultLineWidth)
	if err != nil {
		return Metrics{}, err
	}

	buf := make([]byte, chunkBytes)
	var originalBytes, dnaLength int
	for {
		if err := checkCancelled(ctx, op); err != nil {
			return Metrics{}, err
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			seq := codec.Base4Encode(buf[:n])
			if err := sw.WriteSequence(seq); err != nil {
				return Metrics{}, err
			}
			originalBytes += n
			dnaLength += len(seq)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return Metrics{}, rerr
		}
	}
	if err := sw.Close(); err != nil {
		return Metrics{}, err
	}
	return computeSizeMetrics(originalBytes, dnaLength), nil
}

// DecodeStream inverts EncodeStream: it reads the FASTA header, then
// consumes the sequence body in 4-nucleotide-aligned chunks (so each
// chunk maps to a whole number of bytes), writing decoded bytes to w as
// they are produced.
func DecodeStream(ctx context.Context, w io.Writer, r io.Reader, chunkBytes int) (Descriptor, Metrics, error) {
	const op = "pipeline.DecodeStream"
	if chunkBytes <= 0 {
		chunkBytes = DefaultConfig().StreamChunkBytes
	}

	sr, kvs, err := fasta.NewStreamReader(r)
	if err != nil {
		return Descriptor{}, Metrics{}, err
	}
	desc, err := DescriptorFromKV(kvs)
	if err != nil {
		return Descriptor{}, Metrics{}, err
	}
	if !streamableConfig(Config{Method: desc.Method, FEC: desc.FEC, AddParity: desc.AddParity}) {
		return Descriptor{}, Metrics{}, gcerr.Errorf(op, gcerr.UnsupportedForStreaming, "streaming requires method=base4_direct, fec=none, add_parity=false")
	}

	seqChunkLen := chunkBytes * 4
	buf := make([]byte, seqChunkLen)
	var originalBytes, dnaLength int
	for {
		if err := checkCancelled(ctx, op); err != nil {
			return Descriptor{}, Metrics{}, err
		}
		n, rerr := sr.ReadSequence(buf)
		if n > 0 {
			if !biosimd.IsValidSequence(buf[:n]) {
				return Descriptor{}, Metrics{}, gcerr.Errorf(op, gcerr.InvalidAlphabet, "sequence chunk contains a non-ATCG character")
			}
			data, derr := codec.Base4Decode(buf[:n])
			if derr != nil {
				return Descriptor{}, Metrics{}, derr
			}
			if _, werr := w.Write(data); werr != nil {
				return Descriptor{}, Metrics{}, werr
			}
			dnaLength += n
			originalBytes += len(data)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return Descriptor{}, Metrics{}, rerr
		}
	}
	return desc, computeSizeMetrics(originalBytes, dnaLength), nil
}
