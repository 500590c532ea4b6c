package biosimd_test

import (
	"testing"

	"github.com/d0ttino/genecoder/biosimd"
	"github.com/stretchr/testify/assert"
)

func TestGCRatio(t *testing.T) {
	assert.Equal(t, 0.0, biosimd.GCRatio(nil))
	assert.Equal(t, 1.0, biosimd.GCRatio([]byte("GGGG")))
	assert.Equal(t, 0.5, biosimd.GCRatio([]byte("ATCG")))
}

func TestGCWithinRange(t *testing.T) {
	assert.True(t, biosimd.GCWithinRange(nil, 0.45, 0.55))
	assert.True(t, biosimd.GCWithinRange([]byte("ATCG"), 0.45, 0.55))
	assert.False(t, biosimd.GCWithinRange([]byte("AAAAAAAA"), 0.45, 0.55))
}

func TestLongestHomopolymer(t *testing.T) {
	assert.Equal(t, 0, biosimd.LongestHomopolymer(nil))
	assert.Equal(t, 1, biosimd.LongestHomopolymer([]byte("ATCG")))
	assert.Equal(t, 8, biosimd.LongestHomopolymer([]byte("AAAAAAAA")))
	assert.Equal(t, 3, biosimd.LongestHomopolymer([]byte("AATCCCGT")))
}

func TestHomopolymerWithinLimit(t *testing.T) {
	assert.True(t, biosimd.HomopolymerWithinLimit([]byte("AAA"), 3))
	assert.False(t, biosimd.HomopolymerWithinLimit([]byte("AAAA"), 3))
}
