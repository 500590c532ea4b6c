package pipeline_test

import (
	"testing"

	"github.com/d0ttino/genecoder/codec"
	"github.com/d0ttino/genecoder/encoding/fasta"
	"github.com/d0ttino/genecoder/fec"
	"github.com/d0ttino/genecoder/gcerr"
	"github.com/d0ttino/genecoder/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorKVRoundTripBase4(t *testing.T) {
	d := pipeline.Descriptor{Method: pipeline.Base4Direct, FEC: pipeline.FECNone}
	kvs, err := d.ToKV()
	require.NoError(t, err)
	got, err := pipeline.DescriptorFromKV(kvs)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDescriptorKVRoundTripHuffman(t *testing.T) {
	d := pipeline.Descriptor{
		Method:         pipeline.Huffman,
		FEC:            pipeline.FECHamming74,
		FECPaddingBits: 3,
		HuffmanTable:   codec.Table{65: "0", 66: "10", 67: "11"},
		HuffmanPadding: 1,
	}
	kvs, err := d.ToKV()
	require.NoError(t, err)
	got, err := pipeline.DescriptorFromKV(kvs)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDescriptorKVRoundTripGCBalanced(t *testing.T) {
	d := pipeline.Descriptor{
		Method:         pipeline.GCBalanced,
		FEC:            pipeline.FECReedSolomon,
		FECNsym:        10,
		GCMin:          0.45,
		GCMax:          0.55,
		MaxHomopolymer: 3,
		AddParity:      true,
		ParityRule:     fec.GCEvenAOddT,
	}
	kvs, err := d.ToKV()
	require.NoError(t, err)
	got, err := pipeline.DescriptorFromKV(kvs)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDescriptorFromKVMissingMethod(t *testing.T) {
	_, err := pipeline.DescriptorFromKV([]fasta.KV{{Key: "fec", Value: "none"}})
	require.Error(t, err)
	assert.True(t, gcerr.Is(err, gcerr.InvalidHeader))
}

func TestDescriptorFromKVContradictoryGCWindow(t *testing.T) {
	kvs := []fasta.KV{
		{Key: "method", Value: "gc_balanced"},
		{Key: "gc_min", Value: "0.9"},
		{Key: "gc_max", Value: "0.1"},
		{Key: "max_homopolymer", Value: "3"},
	}
	_, err := pipeline.DescriptorFromKV(kvs)
	require.Error(t, err)
	assert.True(t, gcerr.Is(err, gcerr.InvalidHeader))
}

func TestDescriptorFromKVParityAndHammingExclusive(t *testing.T) {
	kvs := []fasta.KV{
		{Key: "method", Value: "base4_direct"},
		{Key: "add_parity", Value: "true"},
		{Key: "parity_rule", Value: "GC_even_A_odd_T"},
		{Key: "fec", Value: "hamming_7_4"},
		{Key: "fec_padding_bits", Value: "0"},
	}
	_, err := pipeline.DescriptorFromKV(kvs)
	require.Error(t, err)
	assert.True(t, gcerr.Is(err, gcerr.InvalidHeader))
}

func TestDescriptorFromKVUnknownKeysIgnored(t *testing.T) {
	kvs := []fasta.KV{
		{Key: "method", Value: "base4_direct"},
		{Key: "fec", Value: "none"},
		{Key: "some_future_field", Value: "whatever"},
	}
	d, err := pipeline.DescriptorFromKV(kvs)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Base4Direct, d.Method)
}
