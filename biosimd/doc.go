// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides low-level, table-driven primitives for
// converting between bytes, bits, and nucleotides. It underlies every
// codec and FEC layer in this module: the fixed base-4 nucleotide
// mapping, an MSB-first bitstream cursor, and the GC/homopolymer
// counters used for constraint checking and metrics all live here so
// that higher layers never hand-roll bit arithmetic themselves.
package biosimd
