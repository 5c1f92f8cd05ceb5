package entities

import "github.com/ochairo/sbommerge/internal/domain/combinable"

// Element is a record carrying an SPDX identifier (package, file, snippet).
// The identifier does not take part in deduplication.
type Element interface {
	ElementID() string
}

// Package is an SPDX package
type Package struct {
	SPDXID                string                                     `json:"SPDXID"`
	Name                  string                                     `json:"name"`
	VersionInfo           string                                     `json:"versionInfo,omitempty"`
	PackageFileName       string                                     `json:"packageFileName,omitempty"`
	Supplier              string                                     `json:"supplier,omitempty"`
	Originator            string                                     `json:"originator,omitempty"`
	DownloadLocation      string                                     `json:"downloadLocation"`
	FilesAnalyzed         combinable.Option[bool]                    `json:"filesAnalyzed,omitzero"`
	VerificationCode      combinable.Option[PackageVerificationCode] `json:"packageVerificationCode,omitzero"`
	Checksums             combinable.Set[Checksum]                   `json:"checksums,omitzero"`
	Homepage              string                                     `json:"homepage,omitempty"`
	SourceInfo            string                                     `json:"sourceInfo,omitempty"`
	LicenseConcluded      string                                     `json:"licenseConcluded,omitempty"`
	LicenseInfoFromFiles  combinable.Set[string]                     `json:"licenseInfoFromFiles,omitzero"`
	LicenseDeclared       string                                     `json:"licenseDeclared,omitempty"`
	LicenseComments       string                                     `json:"licenseComments,omitempty"`
	CopyrightText         string                                     `json:"copyrightText,omitempty"`
	Summary               string                                     `json:"summary,omitempty"`
	Description           string                                     `json:"description,omitempty"`
	Comment               string                                     `json:"comment,omitempty"`
	ExternalRefs          combinable.Set[ExternalRef]                `json:"externalRefs,omitzero"`
	AttributionTexts      combinable.Set[string]                     `json:"attributionTexts,omitzero"`
	PrimaryPackagePurpose string                                     `json:"primaryPackagePurpose,omitempty"`
	ReleaseDate           string                                     `json:"releaseDate,omitempty"`
	BuiltDate             string                                     `json:"builtDate,omitempty"`
	ValidUntilDate        string                                     `json:"validUntilDate,omitempty"`
	Annotations           combinable.Set[Annotation]                 `json:"annotations,omitzero"`
	HasFiles              combinable.Set[string]                     `json:"hasFiles,omitzero"`
}

// ElementID returns the package's SPDX identifier
func (p Package) ElementID() string { return p.SPDXID }

// PackageVerificationCode summarises the files contained in a package
type PackageVerificationCode struct {
	Value         string                 `json:"packageVerificationCodeValue"`
	ExcludedFiles combinable.Set[string] `json:"packageVerificationCodeExcludedFiles,omitzero"`
}

// Checksum is a digest of a file or document
type Checksum struct {
	Algorithm string `json:"algorithm"` // "SHA1", "SHA256", ...
	Value     string `json:"checksumValue"`
}

// ExternalRef points a package at an external resource (purl, cpe, ...)
type ExternalRef struct {
	Category string `json:"referenceCategory"` // "SECURITY", "PACKAGE-MANAGER", "PERSISTENT-ID", "OTHER"
	Type     string `json:"referenceType"`
	Locator  string `json:"referenceLocator"`
	Comment  string `json:"comment,omitempty"`
}

// File is an SPDX file
type File struct {
	SPDXID             string                     `json:"SPDXID"`
	FileName           string                     `json:"fileName"`
	FileTypes          combinable.Set[string]     `json:"fileTypes,omitzero"`
	Checksums          combinable.Set[Checksum]   `json:"checksums"`
	LicenseConcluded   string                     `json:"licenseConcluded,omitempty"`
	LicenseInfoInFiles combinable.Set[string]     `json:"licenseInfoInFiles,omitzero"`
	LicenseComments    string                     `json:"licenseComments,omitempty"`
	CopyrightText      string                     `json:"copyrightText,omitempty"`
	Comment            string                     `json:"comment,omitempty"`
	NoticeText         string                     `json:"noticeText,omitempty"`
	FileContributors   combinable.Set[string]     `json:"fileContributors,omitzero"`
	AttributionTexts   combinable.Set[string]     `json:"attributionTexts,omitzero"`
	Annotations        combinable.Set[Annotation] `json:"annotations,omitzero"`
}

// ElementID returns the file's SPDX identifier
func (f File) ElementID() string { return f.SPDXID }

// Snippet is an SPDX snippet: a byte or line range within a file
type Snippet struct {
	SPDXID                string                       `json:"SPDXID"`
	SnippetFromFile       string                       `json:"snippetFromFile"`
	Ranges                combinable.Set[SnippetRange] `json:"ranges"`
	LicenseConcluded      string                       `json:"licenseConcluded,omitempty"`
	LicenseInfoInSnippets combinable.Set[string]       `json:"licenseInfoInSnippets,omitzero"`
	LicenseComments       string                       `json:"licenseComments,omitempty"`
	CopyrightText         string                       `json:"copyrightText,omitempty"`
	Comment               string                       `json:"comment,omitempty"`
	Name                  string                       `json:"name,omitempty"`
	AttributionTexts      combinable.Set[string]       `json:"attributionTexts,omitzero"`
	Annotations           combinable.Set[Annotation]   `json:"annotations,omitzero"`
}

// ElementID returns the snippet's SPDX identifier
func (s Snippet) ElementID() string { return s.SPDXID }

// SnippetRange is a start/end pointer pair
type SnippetRange struct {
	StartPointer Pointer `json:"startPointer"`
	EndPointer   Pointer `json:"endPointer"`
}

// Pointer addresses a position in a file by byte offset or line number
type Pointer struct {
	Reference  string                 `json:"reference"`
	Offset     combinable.Option[int] `json:"offset,omitzero"`
	LineNumber combinable.Option[int] `json:"lineNumber,omitzero"`
}

// Relationship links two SPDX elements
type Relationship struct {
	Element string `json:"spdxElementId"`
	Type    string `json:"relationshipType"`
	Related string `json:"relatedSpdxElement"`
	Comment string `json:"comment,omitempty"`
}

// Annotation is a reviewer note attached to the document or an element
type Annotation struct {
	Annotator string `json:"annotator"`
	Date      string `json:"annotationDate"`
	Type      string `json:"annotationType"` // "REVIEW" or "OTHER"
	Comment   string `json:"comment"`
}

// ExternalDocumentRef references another SPDX document by namespace and checksum
type ExternalDocumentRef struct {
	ID           string   `json:"externalDocumentId"`
	SPDXDocument string   `json:"spdxDocument"`
	Checksum     Checksum `json:"checksum"`
}

// ExtractedLicensingInfo carries the text of a license not on the SPDX license list
type ExtractedLicensingInfo struct {
	LicenseID     string                 `json:"licenseId"`
	ExtractedText string                 `json:"extractedText"`
	Name          string                 `json:"name,omitempty"`
	Comment       string                 `json:"comment,omitempty"`
	SeeAlsos      combinable.Set[string] `json:"seeAlsos,omitzero"`
}
