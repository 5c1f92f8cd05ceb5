// Package services defines interfaces for domain service contracts.
package services

import "github.com/ochairo/sbommerge/internal/domain/entities"

// MergeService combines SPDX documents.
// Implementations are pure: no I/O, and neither input is modified.
type MergeService interface {
	// Merge returns a new document holding the content of both inputs.
	// It fails with *entities.VersionMismatchError before combining anything
	// when either document is not SPDX-2.3.
	Merge(first, second *entities.Document) (*entities.Document, error)

	// CheckVersion reports whether a single document declares the supported schema version
	CheckVersion(doc *entities.Document) error
}
