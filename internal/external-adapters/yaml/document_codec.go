// Package yaml provides SPDX YAML document encoding and decoding.
//
// SPDX YAML uses the same field names as SPDX JSON, so documents pass through the
// JSON field mapping instead of carrying a second set of struct tags.
package yaml

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ochairo/sbommerge/internal/domain/entities"
	"github.com/ochairo/sbommerge/internal/external-adapters/spdxjson"
	"gopkg.in/yaml.v3"
)

// FormatName identifies this codec
const FormatName = "yaml"

// DocumentCodec converts between SPDX YAML and entities.Document
type DocumentCodec struct {
	json   *spdxjson.Codec
	indent int
}

// NewDocumentCodec creates a YAML codec indenting nested blocks by two spaces
func NewDocumentCodec() *DocumentCodec {
	return &DocumentCodec{
		json:   spdxjson.NewCodec(""),
		indent: 2,
	}
}

// Format returns "yaml"
func (c *DocumentCodec) Format() string {
	return FormatName
}

// Decode parses an SPDX YAML document. Plain scalars are read as strings unless
// the field they fill is numeric or boolean, so "versionInfo: 1.2" stays "1.2".
func (c *DocumentCodec) Decode(data []byte) (*entities.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &entities.DecodeError{Format: FormatName, Err: err}
	}

	body := &root
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		body = root.Content[0]
	}
	if body.Kind != yaml.MappingNode {
		return nil, &entities.DecodeError{Format: FormatName, Err: fmt.Errorf("expected a mapping at document root, got %s", kindName(body.Kind))}
	}

	conv := &converter{visiting: make(map[*yaml.Node]bool)}
	raw, err := conv.value(body, false)
	if err != nil {
		return nil, &entities.DecodeError{Format: FormatName, Err: err}
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, &entities.DecodeError{Format: FormatName, Err: err}
	}

	doc, err := c.json.Decode(jsonData)
	if err != nil {
		var de *entities.DecodeError
		if errors.As(err, &de) {
			return nil, &entities.DecodeError{Format: FormatName, Err: de.Err}
		}
		return nil, err
	}
	return doc, nil
}

// Encode serializes doc as block-style YAML, keeping the JSON field order
func (c *DocumentCodec) Encode(doc *entities.Document) ([]byte, error) {
	jsonData, err := c.json.Encode(doc)
	if err != nil {
		var ee *entities.EncodeError
		if errors.As(err, &ee) {
			return nil, &entities.EncodeError{Format: FormatName, Err: ee.Err}
		}
		return nil, err
	}

	// JSON is valid YAML; parsing it into a node tree keeps key order.
	var node yaml.Node
	if err := yaml.Unmarshal(jsonData, &node); err != nil {
		return nil, &entities.EncodeError{Format: FormatName, Err: err}
	}
	resetStyle(&node)

	var out strings.Builder
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(c.indent)
	if err := enc.Encode(&node); err != nil {
		return nil, &entities.EncodeError{Format: FormatName, Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &entities.EncodeError{Format: FormatName, Err: err}
	}

	return []byte(out.String()), nil
}

// resetStyle drops the flow and quoting styles inherited from JSON so the
// encoder picks block style and quotes strings only where YAML needs it.
func resetStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		resetStyle(child)
	}
}

// typedScalarKeys are the model fields holding numbers or booleans.
// Scalars under any other key are kept as their literal text.
var typedScalarKeys = map[string]bool{
	"filesAnalyzed": true,
	"offset":        true,
	"lineNumber":    true,
}

// maxExpandedNodes bounds alias expansion
const maxExpandedNodes = 1 << 20

// converter turns a YAML node tree into values encoding/json can marshal
type converter struct {
	visiting map[*yaml.Node]bool
	expanded int
}

func (c *converter) value(node *yaml.Node, typed bool) (any, error) {
	c.expanded++
	if c.expanded > maxExpandedNodes {
		return nil, fmt.Errorf("document expands to more than %d nodes", maxExpandedNodes)
	}

	switch node.Kind {
	case yaml.AliasNode:
		if c.visiting[node.Alias] {
			return nil, fmt.Errorf("line %d: anchor %q contains itself", node.Line, node.Value)
		}
		c.visiting[node.Alias] = true
		defer delete(c.visiting, node.Alias)
		return c.value(node.Alias, typed)

	case yaml.MappingNode:
		out := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode || key.ShortTag() != "!!str" {
				return nil, fmt.Errorf("line %d: mapping keys must be strings", key.Line)
			}
			v, err := c.value(node.Content[i+1], typedScalarKeys[key.Value])
			if err != nil {
				return nil, err
			}
			out[key.Value] = v
		}
		return out, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := c.value(child, typed)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil, nil
		}
		if !typed {
			return node.Value, nil
		}
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil

	default:
		return nil, fmt.Errorf("line %d: unexpected %s", node.Line, kindName(node.Kind))
	}
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty document"
	}
}
