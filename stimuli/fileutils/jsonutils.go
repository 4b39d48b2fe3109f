package fileutils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeJSON marshals v without escaping HTML metacharacters, so non-ASCII
// text and URLs containing & or < survive a round trip literally. The output
// ends with a single newline; pretty selects two-space indentation.
func EncodeJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSONFileAtomic encodes v with EncodeJSON and writes it atomically.
func WriteJSONFileAtomic(path string, v any, pretty bool) error {
	b, err := EncodeJSON(v, pretty)
	if err != nil {
		return err
	}
	if err := WriteFileAtomicSameDir(path, b, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
