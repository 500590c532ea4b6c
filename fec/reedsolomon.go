package fec

import (
	"github.com/d0ttino/genecoder/gcerr"
	"github.com/klauspost/reedsolomon"
)

// maxRSBlockSymbols is the standard Reed-Solomon block size over GF(2^8):
// at most 255 symbols total (data + parity) per block.
const maxRSBlockSymbols = 255

// ReedSolomonEncode appends nsym systematic parity bytes to data, chunked
// so that each block has at most (255 - nsym) data bytes followed by
// nsym parity bytes, per spec.md §4.7. Each byte is its own one-symbol
// shard, matching the reedsolo-library convention of per-byte (not
// striped) shards.
func ReedSolomonEncode(data []byte, nsym int) ([]byte, error) {
	if nsym < 1 {
		return nil, gcerr.Errorf("fec.ReedSolomonEncode", gcerr.InvalidHeader, "fec_nsym must be >= 1, got %d", nsym)
	}
	blockData := maxRSBlockSymbols - nsym
	if blockData < 1 {
		return nil, gcerr.Errorf("fec.ReedSolomonEncode", gcerr.InvalidHeader, "fec_nsym %d leaves no room for data in a 255-symbol block", nsym)
	}

	var out []byte
	for off := 0; off < len(data); off += blockData {
		end := off + blockData
		if end > len(data) {
			end = len(data)
		}
		block, err := rsEncodeBlock(data[off:end], nsym)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}

func rsEncodeBlock(data []byte, nsym int) ([]byte, error) {
	dataShards := len(data)
	enc, err := reedsolomon.New(dataShards, nsym)
	if err != nil {
		return nil, gcerr.E("fec.ReedSolomonEncode", gcerr.FecFailure, err)
	}
	shards := make([][]byte, dataShards+nsym)
	for i := 0; i < dataShards; i++ {
		if i < len(data) {
			shards[i] = []byte{data[i]}
		} else {
			shards[i] = []byte{0}
		}
	}
	for i := dataShards; i < dataShards+nsym; i++ {
		shards[i] = []byte{0}
	}
	if err := enc.Encode(shards); err != nil {
		return nil, gcerr.E("fec.ReedSolomonEncode", gcerr.FecFailure, err)
	}
	out := make([]byte, 0, len(data)+nsym)
	for i := 0; i < len(data); i++ {
		out = append(out, shards[i][0])
	}
	for i := dataShards; i < dataShards+nsym; i++ {
		out = append(out, shards[i][0])
	}
	return out, nil
}

// ReedSolomonDecode inverts ReedSolomonEncode, attempting to correct up
// to floor(nsym/2) byte errors per block (spec.md §4.7 and testable
// property 9). A block that cannot be verified after exhausting every
// combination of up to floor(nsym/2) erasure positions is reported as
// gcerr.FecFailure, a fatal error.
func ReedSolomonDecode(encoded []byte, nsym int) (data []byte, corrected int, err error) {
	if nsym < 1 {
		return nil, 0, gcerr.Errorf("fec.ReedSolomonDecode", gcerr.InvalidHeader, "fec_nsym must be >= 1, got %d", nsym)
	}
	blockData := maxRSBlockSymbols - nsym
	if blockData < 1 {
		return nil, 0, gcerr.Errorf("fec.ReedSolomonDecode", gcerr.InvalidHeader, "fec_nsym %d leaves no room for data in a 255-symbol block", nsym)
	}
	blockTotal := blockData + nsym

	remaining := encoded
	for len(remaining) > 0 {
		var chunk []byte
		if len(remaining) >= blockTotal {
			chunk = remaining[:blockTotal]
			remaining = remaining[blockTotal:]
		} else {
			chunk = remaining
			remaining = nil
		}
		if len(chunk) <= nsym {
			return nil, 0, gcerr.Errorf("fec.ReedSolomonDecode", gcerr.TruncatedPayload, "trailing reed-solomon block of %d bytes is too short to hold %d parity bytes", len(chunk), nsym)
		}
		decoded, blockCorrected, derr := rsDecodeBlock(chunk, nsym)
		if derr != nil {
			return nil, 0, derr
		}
		data = append(data, decoded...)
		corrected += blockCorrected
	}
	return data, corrected, nil
}

func rsDecodeBlock(chunk []byte, nsym int) ([]byte, int, error) {
	dataLen := len(chunk) - nsym
	enc, err := reedsolomon.New(dataLen, nsym)
	if err != nil {
		return nil, 0, gcerr.E("fec.ReedSolomonDecode", gcerr.FecFailure, err)
	}
	shards := make([][]byte, dataLen+nsym)
	for i, b := range chunk {
		shards[i] = []byte{b}
	}

	if ok, _ := enc.Verify(shards); ok {
		return chunkData(shards, dataLen), 0, nil
	}

	maxErrors := nsym / 2
	n := dataLen + nsym
	for nErr := 1; nErr <= maxErrors; nErr++ {
		if found, ok := tryErasureCombinations(enc, shards, n, nErr); ok {
			return chunkData(found, dataLen), nErr, nil
		}
	}
	return nil, 0, gcerr.Errorf("fec.ReedSolomonDecode", gcerr.FecFailure, "uncorrectable reed-solomon block: no combination of up to %d erasures verifies", maxErrors)
}

func chunkData(shards [][]byte, dataLen int) []byte {
	out := make([]byte, dataLen)
	for i := 0; i < dataLen; i++ {
		out[i] = shards[i][0]
	}
	return out
}

// tryErasureCombinations exhaustively marks every k-subset of shard
// positions as erased, reconstructs, and accepts the first combination
// that verifies. This is practical for small k (small nsym); see
// DESIGN.md for the
// combinatorial blow-up this implies for large nsym.
func tryErasureCombinations(enc reedsolomon.Encoder, shards [][]byte, n, k int) ([][]byte, bool) {
	combo := make([]int, k)
	for i := range combo {
		combo[i] = i
	}
	for {
		trial := make([][]byte, n)
		copy(trial, shards)
		for _, idx := range combo {
			trial[idx] = nil
		}
		if err := enc.Reconstruct(trial); err == nil {
			if ok, _ := enc.Verify(trial); ok {
				return trial, true
			}
		}
		if !nextCombination(combo, n) {
			return nil, false
		}
	}
}

// nextCombination advances combo (a strictly increasing slice of indices
// into [0,n)) to the next combination in lexicographic order, returning
// false once combinations are exhausted.
func nextCombination(combo []int, n int) bool {
	k := len(combo)
	i := k - 1
	for i >= 0 && combo[i] == i+n-k {
		i--
	}
	if i < 0 {
		return false
	}
	combo[i]++
	for j := i + 1; j < k; j++ {
		combo[j] = combo[j-1] + 1
	}
	return true
}
