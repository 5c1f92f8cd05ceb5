package gateways

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/ochairo/sbommerge/internal/domain/interfaces/gateways"
	"github.com/ochairo/sbommerge/internal/external-adapters/spdxjson"
	"github.com/ochairo/sbommerge/internal/external-adapters/yaml"
)

// CodecRegistry selects a document codec by format name or file extension
type CodecRegistry struct {
	codecs   map[string]gateways.DocumentCodec
	fallback string
}

// NewCodecRegistry registers the JSON and YAML codecs. indent applies to JSON output.
func NewCodecRegistry(indent string) *CodecRegistry {
	r := &CodecRegistry{
		codecs:   make(map[string]gateways.DocumentCodec),
		fallback: spdxjson.FormatName,
	}
	r.Register(spdxjson.NewCodec(indent))
	r.Register(yaml.NewDocumentCodec())
	return r
}

// Register adds or replaces the codec for its format
func (r *CodecRegistry) Register(codec gateways.DocumentCodec) {
	r.codecs[codec.Format()] = codec
}

// ForFormat returns the codec registered under name
func (r *CodecRegistry) ForFormat(name string) (gateways.DocumentCodec, error) {
	codec, ok := r.codecs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q (expected one of %s)", name, strings.Join(r.Formats(), ", "))
	}
	return codec, nil
}

// ForLocation picks YAML for .yaml and .yml locations and JSON otherwise.
// Query strings and fragments on URLs are ignored.
func (r *CodecRegistry) ForLocation(location string) gateways.DocumentCodec {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}

	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		if codec, ok := r.codecs[yaml.FormatName]; ok {
			return codec
		}
	}
	return r.codecs[r.fallback]
}

// Formats lists the registered format names in order
func (r *CodecRegistry) Formats() []string {
	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
