package formatters

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter formats documents as JSON.
type JSONFormatter struct {
	pretty bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(pretty bool) *JSONFormatter {
	return &JSONFormatter{pretty: pretty}
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// ContentType returns the MIME content type.
func (f *JSONFormatter) ContentType() string {
	return "application/json"
}

// FileExtension returns the typical file extension.
func (f *JSONFormatter) FileExtension() string {
	return ".json"
}

// Format converts the document to JSON.
func (f *JSONFormatter) Format(doc *Document) ([]byte, error) {
	var data []byte
	var err error

	if f.pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON; %w", err)
	}

	return data, nil
}
