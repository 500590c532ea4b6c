package fec_test

import (
	"testing"

	"github.com/d0ttino/genecoder/fec"
	"github.com/d0ttino/genecoder/gcerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripleRepeatEncode(t *testing.T) {
	got := fec.TripleRepeatEncode([]byte("ATCG"))
	assert.Equal(t, "AAATTTCCCGGG", string(got))
}

func TestTripleRepeatDecodeS4(t *testing.T) {
	// Encode(0x1B) under base4_direct + triple_repeat is AAATTTCCCGGG;
	// flip one A->C in the first triplet.
	seq := []byte("CAATTTCCCGGG")
	out, corrected, uncorrectable, err := fec.TripleRepeatDecode(seq)
	require.NoError(t, err)
	assert.Equal(t, "ATCG", string(out))
	assert.Equal(t, 1, corrected)
	assert.Equal(t, 0, uncorrectable)
}

func TestTripleRepeatDecodeUncorrectable(t *testing.T) {
	out, corrected, uncorrectable, err := fec.TripleRepeatDecode([]byte("ATC"))
	require.NoError(t, err)
	assert.Equal(t, "A", string(out))
	assert.Equal(t, 0, corrected)
	assert.Equal(t, 1, uncorrectable)
}

func TestTripleRepeatDecodeNotMultipleOfThree(t *testing.T) {
	_, _, _, err := fec.TripleRepeatDecode([]byte("AT"))
	require.Error(t, err)
	assert.True(t, gcerr.Is(err, gcerr.TruncatedPayload))
}

func TestTripleRepeatRoundTrip(t *testing.T) {
	in := []byte("ATCGATCG")
	seq := fec.TripleRepeatEncode(in)
	out, corrected, uncorrectable, err := fec.TripleRepeatDecode(seq)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, 0, corrected)
	assert.Equal(t, 0, uncorrectable)
}
