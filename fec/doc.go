// Package fec implements the forward-error-correction and parity-detection
// layers that wrap a primary nucleotide encoding: Triple-Repeat and Parity
// operate on the nucleotide alphabet directly, while Hamming(7,4) and
// Reed-Solomon operate on the underlying byte stream before the primary
// encoder ever sees it.
package fec
