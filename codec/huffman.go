package codec

import (
	"container/heap"
	"encoding/json"
	"strconv"

	"github.com/d0ttino/genecoder/biosimd"
	"github.com/d0ttino/genecoder/gcerr"
)

// Table maps a byte value to its Huffman code, a nonempty string of '0'
// and '1' characters with the prefix property (spec.md §3). It marshals
// to/from JSON as an object keyed by the byte's decimal value, matching
// the FASTA header's huffman_table field.
type Table map[byte]string

type huffNode struct {
	b           byte
	leaf        bool
	left, right *huffNode
}

type heapItem struct {
	freq int
	seq  int // insertion-order tiebreaker, for deterministic ordering
	node *huffNode
}

type huffHeap []*heapItem

func (h huffHeap) Len() int { return len(h) }
func (h huffHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}
func (h huffHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *huffHeap) Push(x interface{}) { *h = append(*h, x.(*heapItem)) }
func (h *huffHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BuildTable counts byte frequencies in data (a single pass) and builds
// the canonical-free Huffman code table for it, per spec.md §4.2. The
// min-heap tiebreaks equal-frequency nodes by insertion order, so
// construction is deterministic regardless of map iteration order.
//
// BuildTable returns an error of kind gcerr.TruncatedPayload if data is
// empty — Huffman-4 has no code to assign in that case.
func BuildTable(data []byte) (Table, error) {
	if len(data) == 0 {
		return nil, gcerr.Errorf("huffman.BuildTable", gcerr.TruncatedPayload, "cannot build a Huffman table from empty input")
	}
	var freq [256]int
	for _, b := range data {
		freq[b]++
	}

	h := &huffHeap{}
	heap.Init(h)
	seq := 0
	distinct := 0
	for v := 0; v < 256; v++ {
		if freq[v] == 0 {
			continue
		}
		distinct++
		heap.Push(h, &heapItem{freq: freq[v], seq: seq, node: &huffNode{b: byte(v), leaf: true}})
		seq++
	}

	if distinct == 1 {
		only := heap.Pop(h).(*heapItem).node
		return Table{only.b: "0"}, nil
	}

	for h.Len() > 1 {
		left := heap.Pop(h).(*heapItem)
		right := heap.Pop(h).(*heapItem)
		merged := &huffNode{left: left.node, right: right.node}
		heap.Push(h, &heapItem{freq: left.freq + right.freq, seq: seq, node: merged})
		seq++
	}
	root := heap.Pop(h).(*heapItem).node

	table := Table{}
	var walk func(n *huffNode, code string)
	walk = func(n *huffNode, code string) {
		if n.leaf {
			table[n.b] = code
			return
		}
		walk(n.left, code+"0")
		walk(n.right, code+"1")
	}
	walk(root, "")
	return table, nil
}

// Encode builds a Huffman table for data, concatenates each byte's code
// in input order, pads with trailing '0' bits to an even bit length, and
// maps bit pairs to nucleotides as in Base4Encode. It returns the
// nucleotide sequence, the table used, and the pad count (0 or 1).
func Encode(data []byte) (seq []byte, table Table, padding int, err error) {
	table, err = BuildTable(data)
	if err != nil {
		return nil, nil, 0, err
	}
	bw := biosimd.NewBitWriter()
	for _, b := range data {
		bw.WriteString(table[b])
	}
	total := bw.Len()
	padding = total % 2
	nNt := (total + padding) / 2
	br := biosimd.NewBitReader(bw.Bytes())
	seq = make([]byte, 0, nNt)
	for i := 0; i < nNt; i++ {
		v, _ := br.ReadBits(2) // padded bits beyond total are zero-initialized
		seq = append(seq, biosimd.BitPairToNucleotide(byte(v)))
	}
	return seq, table, padding, nil
}

// Decode inverts Encode: it maps nucleotides back to bit pairs, drops the
// padding trailing bits, and greedily walks table's implied trie to
// recover the original bytes.
func Decode(seq []byte, table Table, padding int) ([]byte, error) {
	if len(table) == 0 {
		return nil, gcerr.Errorf("huffman.Decode", gcerr.InvalidHeader, "empty huffman table")
	}
	if padding < 0 || padding > 7 {
		return nil, gcerr.Errorf("huffman.Decode", gcerr.InvalidHeader, "huffman_padding out of range: %d", padding)
	}

	bw := biosimd.NewBitWriter()
	for i, nt := range seq {
		v, ok := biosimd.NucleotideToBitPair(nt)
		if !ok {
			return nil, gcerr.Errorf("huffman.Decode", gcerr.InvalidAlphabet, "invalid nucleotide %q at position %d", nt, i)
		}
		bw.WriteBits(uint32(v), 2)
	}
	totalBits := bw.Len() - padding
	if totalBits < 0 {
		return nil, gcerr.Errorf("huffman.Decode", gcerr.TruncatedPayload, "huffman_padding %d exceeds bitstream length", padding)
	}

	root := buildDecodeTrie(table)
	br := biosimd.NewBitReader(bw.Bytes())
	var out []byte
	cur := root
	for consumed := 0; consumed < totalBits; consumed++ {
		bit, _ := br.ReadBit()
		if bit == 0 {
			cur = cur.left
		} else {
			cur = cur.right
		}
		if cur == nil {
			return nil, gcerr.Errorf("huffman.Decode", gcerr.TruncatedPayload, "bit stream does not match any huffman code")
		}
		if cur.leaf {
			out = append(out, cur.b)
			cur = root
		}
	}
	if cur != root {
		return nil, gcerr.Errorf("huffman.Decode", gcerr.TruncatedPayload, "bit stream ends mid-code")
	}
	return out, nil
}

func buildDecodeTrie(table Table) *huffNode {
	root := &huffNode{}
	for b, code := range table {
		n := root
		for i := 0; i < len(code); i++ {
			last := i == len(code)-1
			if code[i] == '0' {
				if n.left == nil {
					n.left = &huffNode{}
				}
				n = n.left
			} else {
				if n.right == nil {
					n.right = &huffNode{}
				}
				n = n.right
			}
			if last {
				n.leaf = true
				n.b = b
			}
		}
	}
	return root
}

// MarshalJSON and UnmarshalJSON make Table round-trip through the FASTA
// header's huffman_table field as a compact JSON object keyed by decimal
// byte value, per spec.md §3.
func (t Table) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(t))
	for b, code := range t {
		m[strconv.Itoa(int(b))] = code
	}
	return json.Marshal(m)
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(Table, len(m))
	for k, code := range m {
		v, err := strconv.Atoi(k)
		if err != nil || v < 0 || v > 255 {
			return gcerr.Errorf("huffman.Table", gcerr.InvalidHeader, "invalid huffman_table key %q", k)
		}
		out[byte(v)] = code
	}
	*t = out
	return nil
}
