package biosimd_test

import (
	"testing"

	"github.com/d0ttino/genecoder/biosimd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesToNucleotides(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{0x00}, "AAAA"},
		{[]byte{0xFF}, "GGGG"},
		{[]byte{0x00, 0xFF, 0x1B, 0xE4}, "AAAAGGGGATCGGCTA"},
	}
	for _, tt := range tests {
		got := biosimd.BytesToNucleotides(tt.in)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestNucleotidesToBytesRoundTrip(t *testing.T) {
	in := []byte{0x00, 0xFF, 0x1B, 0xE4, 0x7A}
	nt := biosimd.BytesToNucleotides(in)
	out, badIndex, ok := biosimd.NucleotidesToBytes(nt)
	require.True(t, ok)
	assert.Equal(t, -1, badIndex)
	assert.Equal(t, in, out)
}

func TestNucleotidesToBytesInvalidAlphabet(t *testing.T) {
	_, badIndex, ok := biosimd.NucleotidesToBytes([]byte("AAXA"))
	assert.False(t, ok)
	assert.Equal(t, 2, badIndex)
}

func TestIsValidSequence(t *testing.T) {
	assert.True(t, biosimd.IsValidSequence([]byte("ATCG")))
	assert.True(t, biosimd.IsValidSequence(nil))
	assert.False(t, biosimd.IsValidSequence([]byte("ATXG")))
}

func TestInvertBytes(t *testing.T) {
	assert.Equal(t, []byte{0xFF, 0xFF}, biosimd.InvertBytes([]byte{0x00, 0x00}))
}
