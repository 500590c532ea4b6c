package fasta

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// StreamWriter writes a single FASTA record incrementally, so that a
// caller never needs to hold the whole sequence in memory at once. It
// writes the header line eagerly on construction and wraps sequence
// bytes at lineWidth as they arrive across however many WriteSequence
// calls the caller makes.
type StreamWriter struct {
	w         io.Writer
	lineWidth int
	col       int
}

// NewStreamWriter writes the header line for kvs and returns a
// StreamWriter ready to accept sequence bytes. lineWidth <= 0 uses
// DefaultLineWidth.
func NewStreamWriter(w io.Writer, kvs []KV, lineWidth int) (*StreamWriter, error) {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	if _, err := io.WriteString(w, FormatHeaderLine(kvs)); err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return nil, err
	}
	return &StreamWriter{w: w, lineWidth: lineWidth}, nil
}

// WriteSequence appends chunk to the sequence body, wrapping at the
// configured line width regardless of how the caller chooses to split
// chunks across calls.
func (sw *StreamWriter) WriteSequence(chunk []byte) error {
	for len(chunk) > 0 {
		room := sw.lineWidth - sw.col
		n := room
		if n > len(chunk) {
			n = len(chunk)
		}
		if _, err := sw.w.Write(chunk[:n]); err != nil {
			return err
		}
		sw.col += n
		chunk = chunk[n:]
		if sw.col == sw.lineWidth {
			if _, err := io.WriteString(sw.w, "\n"); err != nil {
				return err
			}
			sw.col = 0
		}
	}
	return nil
}

// Close flushes a trailing newline if the last line is incomplete. It
// does not close the underlying writer.
func (sw *StreamWriter) Close() error {
	if sw.col > 0 {
		_, err := io.WriteString(sw.w, "\n")
		sw.col = 0
		return err
	}
	return nil
}

// StreamReader reads the header of a single FASTA record eagerly, then
// hands out sequence bytes in caller-sized chunks without ever buffering
// the whole sequence.
type StreamReader struct {
	br   *bufio.Reader
	pend []byte // unconsumed bytes from the line currently being read
	done bool
}

// NewStreamReader reads and parses the header line of the first record
// in r and returns a StreamReader positioned at the start of the
// sequence body, along with the parsed header tokens.
func NewStreamReader(r io.Reader) (*StreamReader, []KV, error) {
	br := bufio.NewReader(r)
	headerLine, err := readLine(br)
	if err != nil {
		return nil, nil, err
	}
	if len(headerLine) == 0 || headerLine[0] != '>' {
		return nil, nil, errors.Errorf("malformed FASTA record: missing '>' header line")
	}
	kvs, err := ParseHeaderLine(headerLine)
	if err != nil {
		return nil, nil, err
	}
	return &StreamReader{br: br}, kvs, nil
}

// ReadSequence fills buf with up to len(buf) sequence bytes (uppercased,
// whitespace stripped) and returns the number read. It returns io.EOF
// once the record's sequence is exhausted (at EOF or at the next '>').
func (sr *StreamReader) ReadSequence(buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		if len(sr.pend) == 0 {
			if sr.done {
				break
			}
			line, err := readLine(sr.br)
			if err != nil && err != io.EOF {
				return n, err
			}
			if err == io.EOF && len(line) == 0 {
				sr.done = true
				break
			}
			if err == io.EOF {
				sr.done = true
			}
			if len(line) > 0 && line[0] == '>' {
				sr.done = true
				break
			}
			sr.pend = []byte(trimASCIISpace(line))
			continue
		}
		m := copy(buf[n:], sr.pend)
		n += m
		sr.pend = sr.pend[m:]
	}
	toUpperInPlace(buf[:n])
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line, err
}

func trimASCIISpace(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

func toUpperInPlace(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}
