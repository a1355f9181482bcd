package formatters

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// TOMLFormatter formats documents as TOML, with chunks and challenges as
// arrays of tables.
type TOMLFormatter struct{}

// NewTOMLFormatter creates a new TOML formatter.
func NewTOMLFormatter() *TOMLFormatter {
	return &TOMLFormatter{}
}

// Name returns the formatter name.
func (f *TOMLFormatter) Name() string {
	return "toml"
}

// ContentType returns the MIME content type.
func (f *TOMLFormatter) ContentType() string {
	return "application/toml"
}

// FileExtension returns the typical file extension.
func (f *TOMLFormatter) FileExtension() string {
	return ".toml"
}

// Format converts the document to TOML.
func (f *TOMLFormatter) Format(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode TOML; %w", err)
	}
	return buf.Bytes(), nil
}
