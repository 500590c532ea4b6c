package fec_test

import (
	"testing"

	"github.com/d0ttino/genecoder/fec"
	"github.com/d0ttino/genecoder/gcerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParityEncodeEvenGC(t *testing.T) {
	// "AGGGG" payload has 4 G/C -> even -> tag 'A'.
	seq, err := fec.ParityEncode([]byte("AGGGG"), fec.GCEvenAOddT)
	require.NoError(t, err)
	assert.Equal(t, "AGGGGA", string(seq))
}

func TestParityEncodeOddGC(t *testing.T) {
	// "AGGG" payload has 3 G/C -> odd -> tag 'T'.
	seq, err := fec.ParityEncode([]byte("AGGG"), fec.GCEvenAOddT)
	require.NoError(t, err)
	assert.Equal(t, "AGGGT", string(seq))
}

func TestParityCheckMatch(t *testing.T) {
	seq, err := fec.ParityEncode([]byte("ATCG"), fec.GCEvenAOddT)
	require.NoError(t, err)
	payload, ok, err := fec.ParityCheck(seq, fec.GCEvenAOddT)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ATCG", string(payload))
}

func TestParityCheckMismatch(t *testing.T) {
	payload, ok, err := fec.ParityCheck([]byte("AGGGGT"), fec.GCEvenAOddT)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "AGGGG", string(payload))
}

func TestParityUnknownRule(t *testing.T) {
	_, err := fec.ParityEncode([]byte("ATCG"), fec.ParityRule("unknown_rule"))
	require.Error(t, err)
	assert.True(t, gcerr.Is(err, gcerr.InvalidHeader))
}
