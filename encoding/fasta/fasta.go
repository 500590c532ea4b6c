// Package fasta contains code for reading and writing FASTA-formatted
// records whose header line carries a pipeline descriptor rather than a
// bare sequence name. See http://www.htslib.org/doc/faidx.html for the
// format this is derived from. Briefly, a FASTA file consists of one or
// more records, each a header line starting with '>' followed by
// sequence data that may be wrapped over several lines, e.g.:
//
// >method=base4_direct fec=none
// ATCGATCG
// ATCG
//
// This package only knows about the generic container: a header line of
// space-separated key=value tokens, and a line-wrapped sequence body. It
// has no notion of which keys are meaningful — that is the pipeline
// package's job, which defines the descriptor and maps it to and from the
// token list this package reads and writes.
package fasta

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const mib = 1024 * 1024

// DefaultLineWidth is the sequence line-wrap width used by to_fasta, per
// spec.md §4.8.
const DefaultLineWidth = 80

// Record is one FASTA record: an ordered list of header key=value pairs
// and a sequence body.
type Record struct {
	Header   []KV
	Sequence []byte
}

// ReadFirst parses the first record from r and returns it. Records after
// the first are ignored, per spec.md §4.8 ("decoders operate on the first
// record unless asked otherwise"). The sequence is returned uppercased,
// matching the convention that decode is case-insensitive but storage is
// always uppercase.
func ReadFirst(r io.Reader) (Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 300*mib)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Record{}, errors.Wrap(err, "couldn't read FASTA data")
		}
		return Record{}, errors.New("empty FASTA input")
	}
	headerLine := scanner.Text()
	if len(headerLine) == 0 || headerLine[0] != '>' {
		return Record{}, errors.Errorf("malformed FASTA record: missing '>' header line")
	}
	kvs, err := ParseHeaderLine(headerLine)
	if err != nil {
		return Record{}, err
	}

	var seq bytes.Buffer
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			break // next record; first record is complete
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return Record{}, errors.Wrap(err, "couldn't read FASTA data")
	}

	return Record{
		Header:   kvs,
		Sequence: bytes.ToUpper(seq.Bytes()),
	}, nil
}

// Write serializes rec as a single FASTA record, wrapping the sequence
// body at lineWidth characters. lineWidth <= 0 uses DefaultLineWidth.
func Write(w io.Writer, rec Record, lineWidth int) error {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	if _, err := io.WriteString(w, FormatHeaderLine(rec.Header)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	seq := rec.Sequence
	for len(seq) > 0 {
		n := lineWidth
		if n > len(seq) {
			n = len(seq)
		}
		if _, err := w.Write(seq[:n]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		seq = seq[n:]
	}
	return nil
}

// ToString renders rec to a string via Write.
func ToString(rec Record, lineWidth int) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rec, lineWidth); err != nil {
		return "", err
	}
	return buf.String(), nil
}
