// Package gateways defines interfaces for external system integrations.
package gateways

import "github.com/ochairo/sbommerge/internal/domain/entities"

// DocumentCodec converts documents to and from one serialization format
type DocumentCodec interface {
	// Format names the serialization ("json", "yaml")
	Format() string

	// Decode fails with *entities.DecodeError on malformed input
	Decode(data []byte) (*entities.Document, error)

	// Encode fails with *entities.EncodeError
	Encode(doc *entities.Document) ([]byte, error)
}
