package codec_test

import (
	"testing"

	"github.com/d0ttino/genecoder/codec"
	"github.com/d0ttino/genecoder/gcerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuffmanSingleSymbolS2(t *testing.T) {
	in := []byte{0x41, 0x41, 0x41, 0x41}
	seq, table, padding, err := codec.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, codec.Table{0x41: "0"}, table)
	assert.Equal(t, 0, padding)
	assert.Equal(t, "AA", string(seq))

	out, err := codec.Decode(seq, table, padding)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestHuffmanRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{0x41, 0x41, 0x41, 0x41},
		[]byte("the quick brown fox jumps over the lazy dog"),
		{0x00, 0x01, 0x02, 0x03, 0x04, 0x05},
		{0xff},
	}
	for _, in := range inputs {
		seq, table, padding, err := codec.Encode(in)
		require.NoError(t, err)
		out, err := codec.Decode(seq, table, padding)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestHuffmanPrefixProperty(t *testing.T) {
	in := []byte("mississippi river")
	_, table, _, err := codec.Encode(in)
	require.NoError(t, err)
	for b1, c1 := range table {
		for b2, c2 := range table {
			if b1 == b2 {
				continue
			}
			shorter, longer := c1, c2
			if len(longer) < len(shorter) {
				shorter, longer = longer, shorter
			}
			assert.NotEqual(t, shorter, longer[:len(shorter)], "code for %d is a prefix of code for %d", b1, b2)
		}
	}
}

func TestHuffmanTableJSONRoundTrip(t *testing.T) {
	table := codec.Table{65: "0", 66: "10", 67: "11"}
	data, err := table.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"65":"0","66":"10","67":"11"}`, string(data))

	var got codec.Table
	require.NoError(t, got.UnmarshalJSON(data))
	assert.Equal(t, table, got)
}

func TestHuffmanDecodeMidCodeTruncation(t *testing.T) {
	// A 3-bit code with only 2 bits available in the stream (1 nucleotide,
	// no padding) must fail: the cursor stops one level short of a leaf.
	table := codec.Table{65: "000"}
	_, err := codec.Decode([]byte("A"), table, 0) // 'A' -> bits "00"
	require.Error(t, err)
	assert.True(t, gcerr.Is(err, gcerr.TruncatedPayload))
}

func TestHuffmanEncodeEmptyInput(t *testing.T) {
	_, _, _, err := codec.Encode(nil)
	require.Error(t, err)
	assert.True(t, gcerr.Is(err, gcerr.TruncatedPayload))
}
