// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

// GCCount returns the number of 'G' and 'C' bytes in seq. Unlike the
// upstream byte-counting helpers this package used to wrap, it operates
// directly on a small ASCII alphabet and does not need a NibbleLookupTable.
func GCCount(seq []byte) int {
	n := 0
	for _, b := range seq {
		if b == G || b == C {
			n++
		}
	}
	return n
}

// GCRatio returns (count(G)+count(C))/len(seq). An empty sequence returns
// 0, which callers must treat as vacuously satisfying any GC window (see
// GCWithinRange).
func GCRatio(seq []byte) float64 {
	if len(seq) == 0 {
		return 0
	}
	return float64(GCCount(seq)) / float64(len(seq))
}

// GCWithinRange reports whether seq's GC ratio falls in [min, max]. An
// empty sequence always satisfies the range, per spec.
func GCWithinRange(seq []byte, min, max float64) bool {
	if len(seq) == 0 {
		return true
	}
	r := GCRatio(seq)
	return r >= min && r <= max
}

// LongestHomopolymer returns the length of the longest run of identical
// bytes in seq. An empty sequence has a longest run of 0.
func LongestHomopolymer(seq []byte) int {
	if len(seq) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(seq); i++ {
		if seq[i] == seq[i-1] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// HomopolymerWithinLimit reports whether seq's longest homopolymer run is
// at most max.
func HomopolymerWithinLimit(seq []byte, max int) bool {
	return LongestHomopolymer(seq) <= max
}
