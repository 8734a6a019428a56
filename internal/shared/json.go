package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes v without HTML escaping, optionally indented by two spaces.
//
// The result always ends with a newline.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}
