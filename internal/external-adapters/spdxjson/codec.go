// Package spdxjson encodes and decodes SPDX 2.3 JSON documents.
package spdxjson

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/ochairo/sbommerge/internal/domain/entities"
)

// FormatName identifies this codec
const FormatName = "json"

// DefaultIndent is used when no indent is configured
const DefaultIndent = "  "

var errNilDocument = errors.New("document cannot be nil")

// Codec converts between SPDX JSON and entities.Document
type Codec struct {
	indent string
}

// NewCodec creates a JSON codec. An empty indent encodes compactly.
func NewCodec(indent string) *Codec {
	return &Codec{indent: indent}
}

// Format returns "json"
func (c *Codec) Format() string {
	return FormatName
}

// Decode parses SPDX JSON. Absent fields take their zero values; unknown fields are ignored.
func (c *Codec) Decode(data []byte) (*entities.Document, error) {
	var doc entities.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &entities.DecodeError{Format: FormatName, Err: err}
	}
	return &doc, nil
}

// Encode serializes doc. Set members are written in canonical order, so equal documents encode identically.
func (c *Codec) Encode(doc *entities.Document) ([]byte, error) {
	if doc == nil {
		return nil, &entities.EncodeError{Format: FormatName, Err: errNilDocument}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if c.indent != "" {
		enc.SetIndent("", c.indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, &entities.EncodeError{Format: FormatName, Err: err}
	}
	return buf.Bytes(), nil
}
