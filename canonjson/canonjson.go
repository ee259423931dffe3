// Package canonjson renders values as canonical JSON text.
//
// Canonical here means deterministic: compact encoding with no insignificant
// whitespace, object keys in lexicographic order, and number literals carried
// through unchanged. Two renderings of semantically equal values are
// byte-identical, which makes the output safe for exact-text assertions.
package canonjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Marshal renders v as one line of canonical JSON (no trailing newline).
func Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return Canonicalize(data)
}

// Canonicalize re-encodes raw JSON text into its canonical form.
// The input must be a single well-formed JSON value.
func Canonicalize(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	// Numbers stay json.Number so their source literals survive the
	// round trip instead of picking up float formatting.
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	// Reject trailing content after the first value.
	if err := expectEOF(dec); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	// Encode appends a newline; the caller decides line framing.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("parse JSON: unexpected trailing data")
	}
	return nil
}
