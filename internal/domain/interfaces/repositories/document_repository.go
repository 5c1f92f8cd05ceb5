// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/sbommerge/internal/domain/entities"
)

// DocumentRepository loads and stores SPDX documents by location (path or URL)
type DocumentRepository interface {
	// Load reads and decodes the document at location.
	// Decoding failures are returned as *entities.DecodeError.
	Load(ctx context.Context, location string) (*entities.Document, error)

	// Save writes already encoded bytes to location
	Save(ctx context.Context, location string, data []byte) error
}
