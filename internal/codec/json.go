package codec

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a roster from JSON
func (c *JSONCodec) Parse(r io.Reader) (*Roster, error) {
	var roster Roster
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&roster); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &roster, nil
}

// Export writes a roster as indented JSON
func (c *JSONCodec) Export(roster *Roster, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(roster); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
