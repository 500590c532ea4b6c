package pipeline

import (
	"encoding/json"
	"strconv"

	"github.com/d0ttino/genecoder/codec"
	"github.com/d0ttino/genecoder/encoding/fasta"
	"github.com/d0ttino/genecoder/fec"
	"github.com/d0ttino/genecoder/gcerr"
)

const (
	keyMethod           = "method"
	keyOriginalFilename = "original_filename"
	keyHuffmanTable     = "huffman_table"
	keyHuffmanPadding   = "huffman_padding"
	keyGCMin            = "gc_min"
	keyGCMax            = "gc_max"
	keyMaxHomopolymer   = "max_homopolymer"
	keyAddParity        = "add_parity"
	keyParityRule       = "parity_rule"
	keyFEC              = "fec"
	keyFECPaddingBits   = "fec_padding_bits"
	keyFECNsym          = "fec_nsym"
)

// Descriptor is the fully-resolved header of an encoded payload: it
// carries everything decode needs and nothing decode must guess
// (spec.md §3, "Pipeline descriptor").
type Descriptor struct {
	Method           Method
	OriginalFilename string

	HuffmanTable   codec.Table
	HuffmanPadding int

	GCMin, GCMax   float64
	MaxHomopolymer int

	AddParity  bool
	ParityRule fec.ParityRule

	FEC            FEC
	FECPaddingBits int
	FECNsym        int
}

// ToKV serializes d into the FASTA header tokens described by §3,
// emitting only the fields relevant to d.Method and d.FEC.
func (d Descriptor) ToKV() ([]fasta.KV, error) {
	kvs := []fasta.KV{{Key: keyMethod, Value: string(d.Method)}}
	if d.OriginalFilename != "" {
		kvs = append(kvs, fasta.KV{Key: keyOriginalFilename, Value: fasta.QuoteString(d.OriginalFilename)})
	}

	switch d.Method {
	case Huffman:
		tableJSON, err := json.Marshal(d.HuffmanTable)
		if err != nil {
			return nil, gcerr.E("pipeline.Descriptor.ToKV", gcerr.InvalidHeader, err)
		}
		kvs = append(kvs,
			fasta.KV{Key: keyHuffmanTable, Value: string(tableJSON)},
			fasta.KV{Key: keyHuffmanPadding, Value: strconv.Itoa(d.HuffmanPadding)},
		)
	case GCBalanced:
		kvs = append(kvs,
			fasta.KV{Key: keyGCMin, Value: strconv.FormatFloat(d.GCMin, 'g', -1, 64)},
			fasta.KV{Key: keyGCMax, Value: strconv.FormatFloat(d.GCMax, 'g', -1, 64)},
			fasta.KV{Key: keyMaxHomopolymer, Value: strconv.Itoa(d.MaxHomopolymer)},
		)
	}

	if d.AddParity {
		kvs = append(kvs,
			fasta.KV{Key: keyAddParity, Value: "true"},
			fasta.KV{Key: keyParityRule, Value: string(d.ParityRule)},
		)
	}

	kvs = append(kvs, fasta.KV{Key: keyFEC, Value: string(d.FEC)})
	switch d.FEC {
	case FECHamming74:
		kvs = append(kvs, fasta.KV{Key: keyFECPaddingBits, Value: strconv.Itoa(d.FECPaddingBits)})
	case FECReedSolomon:
		kvs = append(kvs, fasta.KV{Key: keyFECNsym, Value: strconv.Itoa(d.FECNsym)})
	}
	return kvs, nil
}

// DescriptorFromKV parses the FASTA header tokens back into a Descriptor,
// validating every invariant from spec.md §3: required fields present
// for the indicated method/FEC, gc_min <= gc_max, and the add_parity /
// hamming_7_4 exclusion. Unknown keys are ignored per §4.8.
func DescriptorFromKV(kvs []fasta.KV) (Descriptor, error) {
	m := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}

	d := Descriptor{
		Method:           Method(m[keyMethod]),
		OriginalFilename: m[keyOriginalFilename],
		FEC:              FEC(m[keyFEC]),
	}
	if d.Method == "" {
		return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "missing required header field %q", keyMethod)
	}
	if d.FEC == "" {
		d.FEC = FECNone
	}

	switch d.Method {
	case Base4Direct:
	case Huffman:
		tableJSON, ok := m[keyHuffmanTable]
		if !ok {
			return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "method=huffman requires %q", keyHuffmanTable)
		}
		if err := json.Unmarshal([]byte(tableJSON), &d.HuffmanTable); err != nil {
			return Descriptor{}, gcerr.E("pipeline.DescriptorFromKV", gcerr.InvalidHeader, err)
		}
		padding, err := requireInt(m, keyHuffmanPadding, "method=huffman")
		if err != nil {
			return Descriptor{}, err
		}
		if padding < 0 || padding > 7 {
			return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "%s out of range: %d", keyHuffmanPadding, padding)
		}
		d.HuffmanPadding = padding
	case GCBalanced:
		gcMin, err := requireFloat(m, keyGCMin, "method=gc_balanced")
		if err != nil {
			return Descriptor{}, err
		}
		gcMax, err := requireFloat(m, keyGCMax, "method=gc_balanced")
		if err != nil {
			return Descriptor{}, err
		}
		if gcMin > gcMax {
			return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "gc_min %v exceeds gc_max %v", gcMin, gcMax)
		}
		maxHomopolymer, err := requireInt(m, keyMaxHomopolymer, "method=gc_balanced")
		if err != nil {
			return Descriptor{}, err
		}
		if maxHomopolymer < 1 {
			return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "%s must be >= 1, got %d", keyMaxHomopolymer, maxHomopolymer)
		}
		d.GCMin, d.GCMax, d.MaxHomopolymer = gcMin, gcMax, maxHomopolymer
	default:
		return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "unknown method %q", d.Method)
	}

	if m[keyAddParity] == "true" {
		d.AddParity = true
		rule, ok := m[keyParityRule]
		if !ok {
			return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "add_parity=true requires %q", keyParityRule)
		}
		d.ParityRule = fec.ParityRule(rule)
		if d.ParityRule != fec.GCEvenAOddT {
			return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "unknown parity_rule %q", rule)
		}
	}

	switch d.FEC {
	case FECNone, FECTripleRepeat:
	case FECHamming74:
		if d.AddParity {
			return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "add_parity and fec=hamming_7_4 are mutually exclusive")
		}
		padding, err := requireInt(m, keyFECPaddingBits, "fec=hamming_7_4")
		if err != nil {
			return Descriptor{}, err
		}
		if padding < 0 || padding > 7 {
			return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "%s out of range: %d", keyFECPaddingBits, padding)
		}
		d.FECPaddingBits = padding
	case FECReedSolomon:
		nsym, err := requireInt(m, keyFECNsym, "fec=reed_solomon")
		if err != nil {
			return Descriptor{}, err
		}
		if nsym < 1 {
			return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "%s must be >= 1, got %d", keyFECNsym, nsym)
		}
		d.FECNsym = nsym
	default:
		return Descriptor{}, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "unknown fec %q", d.FEC)
	}

	return d, nil
}

func requireInt(m map[string]string, key, context string) (int, error) {
	s, ok := m[key]
	if !ok {
		return 0, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "%s requires %q", context, key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "invalid %s value %q", key, s)
	}
	return v, nil
}

func requireFloat(m map[string]string, key, context string) (float64, error) {
	s, ok := m[key]
	if !ok {
		return 0, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "%s requires %q", context, key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, gcerr.Errorf("pipeline.DescriptorFromKV", gcerr.InvalidHeader, "invalid %s value %q", key, s)
	}
	return v, nil
}
