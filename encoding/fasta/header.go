package fasta

import (
	"strings"

	"github.com/pkg/errors"
)

// KV is one key=value token of a FASTA header line.
type KV struct {
	Key   string
	Value string
}

// ParseHeaderLine splits a header line (including the leading '>') into
// key=value tokens. Tokens are whitespace-separated; a value may be
// double-quoted to contain literal spaces, or may be compact JSON (which
// spec.md §4.8 requires to contain no spaces, so it never needs quoting).
// Unknown keys are not rejected here — spec.md §4.8 requires parsers to
// tolerate and ignore them; that policy belongs to the caller that
// interprets the tokens.
func ParseHeaderLine(line string) ([]KV, error) {
	if len(line) == 0 || line[0] != '>' {
		return nil, errors.Errorf("header line must start with '>'")
	}
	rest := line[1:]
	tokens, err := splitTokens(rest)
	if err != nil {
		return nil, err
	}
	kvs := make([]KV, 0, len(tokens))
	for _, tok := range tokens {
		eq := strings.IndexByte(tok, '=')
		if eq < 0 {
			return nil, errors.Errorf("malformed header token (missing '='): %q", tok)
		}
		kvs = append(kvs, KV{Key: tok[:eq], Value: unquote(tok[eq+1:])})
	}
	return kvs, nil
}

// splitTokens splits s on runs of whitespace, except inside a
// double-quoted or brace-delimited (JSON) span.
func splitTokens(s string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	braceDepth := 0
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && inQuotes && i+1 < len(s):
			cur.WriteByte(c)
			cur.WriteByte(s[i+1])
			i++
		case c == '"' && braceDepth == 0:
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == '{' && !inQuotes:
			braceDepth++
			cur.WriteByte(c)
		case c == '}' && !inQuotes:
			braceDepth--
			if braceDepth < 0 {
				return nil, errors.Errorf("unbalanced '}' in header: %q", s)
			}
			cur.WriteByte(c)
		case (c == ' ' || c == '\t') && !inQuotes && braceDepth == 0:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	if inQuotes {
		return nil, errors.Errorf("unterminated quoted value in header: %q", s)
	}
	if braceDepth != 0 {
		return nil, errors.Errorf("unbalanced '{' in header: %q", s)
	}
	return tokens, nil
}

// FormatHeaderLine joins kvs into a single '>'-prefixed header line.
func FormatHeaderLine(kvs []KV) string {
	var b strings.Builder
	b.WriteByte('>')
	for i, kv := range kvs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value)
	}
	return b.String()
}

// QuoteString quotes s if it contains whitespace, a double quote or a
// brace, so that it survives round-tripping through splitTokens as a
// single token. Values that are never whitespace-bearing (numbers, bools,
// compact JSON) should not be passed through this.
func QuoteString(s string) string {
	if !strings.ContainsAny(s, " \t\"{}") {
		return s
	}
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	inner := s[1 : len(s)-1]
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, `\\`, `\`)
	return inner
}
