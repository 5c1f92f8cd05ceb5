// Package storage reads and writes SPDX documents through viant/afs, so inputs
// and outputs may be local paths or any URL scheme afs understands.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/ochairo/sbommerge/internal/domain/entities"
	"github.com/ochairo/sbommerge/internal/domain/interfaces/gateways"
)

// CodecResolver picks the codec for a location
type CodecResolver interface {
	ForLocation(location string) gateways.DocumentCodec
}

// outputMode is the permission used for written documents
const outputMode os.FileMode = 0o644

// DocumentRepository implements repositories.DocumentRepository on top of afs
type DocumentRepository struct {
	fs     afs.Service
	codecs CodecResolver
}

// NewDocumentRepository creates a repository decoding with codecs
func NewDocumentRepository(codecs CodecResolver) *DocumentRepository {
	return &DocumentRepository{
		fs:     afs.New(),
		codecs: codecs,
	}
}

// Load downloads the document at location and decodes it with the codec matching its extension
func (r *DocumentRepository) Load(ctx context.Context, location string) (*entities.Document, error) {
	if location == "" {
		return nil, fmt.Errorf("document location cannot be empty")
	}

	data, err := r.fs.DownloadWithURL(ctx, resolve(location))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}

	doc, err := r.codecs.ForLocation(location).Decode(data)
	if err != nil {
		var de *entities.DecodeError
		if errors.As(err, &de) {
			de.Source = location
		}
		return nil, err
	}

	return doc, nil
}

// Save uploads data to location, creating or replacing it
func (r *DocumentRepository) Save(ctx context.Context, location string, data []byte) error {
	if location == "" {
		return fmt.Errorf("document location cannot be empty")
	}
	if err := r.fs.Upload(ctx, resolve(location), outputMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return nil
}

// resolve turns relative local paths into absolute ones; URLs pass through
func resolve(location string) string {
	if strings.Contains(location, "://") || filepath.IsAbs(location) {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return location
}
