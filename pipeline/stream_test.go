package pipeline_test

import (
	"bytes"
	"testing"

	"github.com/d0ttino/genecoder/gcerr"
	"github.com/d0ttino/genecoder/pipeline"
	"github.com/grailbio/base/vcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeStreamRoundTrip(t *testing.T) {
	ctx := vcontext.Background()
	cfg := pipeline.DefaultConfig()
	cfg.StreamChunkBytes = 3 // force multiple chunks
	in := []byte("streaming requires O(chunk size) memory regardless of input length")

	var encoded bytes.Buffer
	_, err := pipeline.EncodeStream(ctx, &encoded, bytes.NewReader(in), cfg)
	require.NoError(t, err)

	var decoded bytes.Buffer
	desc, _, err := pipeline.DecodeStream(ctx, &decoded, bytes.NewReader(encoded.Bytes()), 3)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Base4Direct, desc.Method)
	assert.Equal(t, in, decoded.Bytes())
}

func TestEncodeStreamRejectsUnsupportedConfig(t *testing.T) {
	ctx := vcontext.Background()
	cfg := pipeline.DefaultConfig()
	cfg.Method = pipeline.Huffman
	var out bytes.Buffer
	_, err := pipeline.EncodeStream(ctx, &out, bytes.NewReader([]byte("x")), cfg)
	require.Error(t, err)
	assert.True(t, gcerr.Is(err, gcerr.UnsupportedForStreaming))
}

func TestEncodeStreamRejectsFEC(t *testing.T) {
	ctx := vcontext.Background()
	cfg := pipeline.DefaultConfig()
	cfg.FEC = pipeline.FECTripleRepeat
	var out bytes.Buffer
	_, err := pipeline.EncodeStream(ctx, &out, bytes.NewReader([]byte("x")), cfg)
	require.Error(t, err)
	assert.True(t, gcerr.Is(err, gcerr.UnsupportedForStreaming))
}
