// Package entities holds the SPDX 2.3 document model.
//
// Every record is an immutable value. Collections are combinable.Set values, so
// membership is decided by full structural equality rather than by SPDX identifier.
// Collections the schema marks optional at document level are combinable.Option
// values, keeping "absent" apart from "explicitly empty".
package entities

import (
	"time"

	"github.com/ochairo/sbommerge/internal/domain/combinable"
)

// SupportedSPDXVersion is the only schema version documents may declare to be merged
const SupportedSPDXVersion = "SPDX-2.3"

// DefaultDataLicense is the data license SPDX mandates for every document
const DefaultDataLicense = "CC0-1.0"

// Document is an SPDX document (the SBOM root)
type Document struct {
	SPDXID                     string                                                    `json:"SPDXID"`
	SPDXVersion                string                                                    `json:"spdxVersion"`
	CreationInfo               CreationInfo                                              `json:"creationInfo"`
	Name                       string                                                    `json:"name"`
	DataLicense                combinable.Text                                           `json:"dataLicense"`
	Comment                    combinable.Option[combinable.Text]                        `json:"comment,omitzero"`
	ExternalDocumentRefs       combinable.Option[combinable.Set[ExternalDocumentRef]]    `json:"externalDocumentRefs,omitzero"`
	HasExtractedLicensingInfos combinable.Option[combinable.Set[ExtractedLicensingInfo]] `json:"hasExtractedLicensingInfos,omitzero"`
	Annotations                combinable.Option[combinable.Set[Annotation]]             `json:"annotations,omitzero"`
	DocumentNamespace          combinable.Text                                           `json:"documentNamespace"`
	DocumentDescribes          combinable.Option[combinable.Set[string]]                 `json:"documentDescribes,omitzero"`
	Packages                   combinable.Set[Package]                                   `json:"packages"`
	Files                      combinable.Option[combinable.Set[File]]                   `json:"files,omitzero"`
	Snippets                   combinable.Option[combinable.Set[Snippet]]                `json:"snippets,omitzero"`
	Relationships              combinable.Set[Relationship]                              `json:"relationships"`
}

// CreationInfo records who created a document and when
type CreationInfo struct {
	Created            time.Time                          `json:"created"`
	Creators           combinable.Set[string]             `json:"creators"`
	LicenseListVersion combinable.Option[combinable.Text] `json:"licenseListVersion,omitzero"`
	Comment            combinable.Option[combinable.Text] `json:"comment,omitzero"`
}

// Describes returns the document-describes identifiers, or an empty set when absent
func (d *Document) Describes() []string {
	describes, _ := d.DocumentDescribes.Get()
	return describes.Items()
}
