// Package services implements domain business logic and use cases.
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/ochairo/sbommerge/internal/domain/combinable"
	"github.com/ochairo/sbommerge/internal/domain/entities"
	"github.com/ochairo/sbommerge/internal/domain/interfaces"
	"github.com/ochairo/sbommerge/internal/domain/interfaces/services"
)

// DefaultProvenance is the creator entry every merged document receives
const DefaultProvenance = "Tool: sbommerge"

// mergeService implements MergeService with pure business logic
type mergeService struct {
	logger     interfaces.Logger
	now        func() time.Time
	provenance string
}

// MergeOption customizes a merge service
type MergeOption func(*mergeService)

// WithLogger sets the logger used for merge diagnostics
func WithLogger(logger interfaces.Logger) MergeOption {
	return func(s *mergeService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the source of the merged document's creation time
func WithClock(now func() time.Time) MergeOption {
	return func(s *mergeService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithProvenance replaces the creator entry injected into merged documents
func WithProvenance(marker string) MergeOption {
	return func(s *mergeService) {
		if marker != "" {
			s.provenance = marker
		}
	}
}

// NewMergeService creates a new merge service
func NewMergeService(opts ...MergeOption) services.MergeService {
	s := &mergeService{
		logger:     interfaces.NoOpLogger{},
		now:        time.Now,
		provenance: DefaultProvenance,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckVersion reports whether doc declares the supported SPDX version
func (s *mergeService) CheckVersion(doc *entities.Document) error {
	if doc == nil {
		return fmt.Errorf("document cannot be nil")
	}
	if doc.SPDXVersion != entities.SupportedSPDXVersion {
		return &entities.VersionMismatchError{
			First:  doc.SPDXVersion,
			Second: entities.SupportedSPDXVersion,
			Want:   entities.SupportedSPDXVersion,
		}
	}
	return nil
}

// Merge combines two documents field by field.
// Pure business logic - no I/O
func (s *mergeService) Merge(first, second *entities.Document) (*entities.Document, error) {
	if first == nil || second == nil {
		return nil, fmt.Errorf("documents cannot be nil")
	}

	if first.SPDXVersion != entities.SupportedSPDXVersion || second.SPDXVersion != entities.SupportedSPDXVersion {
		return nil, &entities.VersionMismatchError{
			First:  first.SPDXVersion,
			Second: second.SPDXVersion,
			Want:   entities.SupportedSPDXVersion,
		}
	}

	dataLicense := combinable.Combine(first.DataLicense, second.DataLicense)
	if dataLicense == "" {
		dataLicense = entities.DefaultDataLicense
	}

	merged := &entities.Document{
		SPDXID:                     first.SPDXID,
		SPDXVersion:                entities.SupportedSPDXVersion,
		CreationInfo:               s.mergeCreationInfo(first.CreationInfo, second.CreationInfo),
		Name:                       first.Name + combinable.Conjunction + second.Name,
		DataLicense:                dataLicense,
		Comment:                    combinable.CombineOption(first.Comment, second.Comment),
		ExternalDocumentRefs:       combinable.CombineOption(first.ExternalDocumentRefs, second.ExternalDocumentRefs),
		HasExtractedLicensingInfos: combinable.CombineOption(first.HasExtractedLicensingInfos, second.HasExtractedLicensingInfos),
		Annotations:                combinable.CombineOption(first.Annotations, second.Annotations),
		DocumentNamespace:          combinable.Combine(first.DocumentNamespace, second.DocumentNamespace),
		DocumentDescribes:          combinable.CombineOption(first.DocumentDescribes, second.DocumentDescribes),
		Packages:                   combinable.Combine(first.Packages, second.Packages),
		Files:                      combinable.CombineOption(first.Files, second.Files),
		Snippets:                   combinable.CombineOption(first.Snippets, second.Snippets),
		Relationships:              combinable.Combine(first.Relationships, second.Relationships),
	}

	reportRetainedDuplicates(s.logger, "package", merged.Packages)
	if files, ok := merged.Files.Get(); ok {
		reportRetainedDuplicates(s.logger, "file", files)
	}
	if snippets, ok := merged.Snippets.Get(); ok {
		reportRetainedDuplicates(s.logger, "snippet", snippets)
	}

	s.logger.Info("merged SPDX documents",
		interfaces.F("first", first.Name),
		interfaces.F("second", second.Name),
		interfaces.F("packages", merged.Packages.Len()),
		interfaces.F("relationships", merged.Relationships.Len()),
		interfaces.F("creators", merged.CreationInfo.Creators.Len()),
	)

	return merged, nil
}

// mergeCreationInfo unions the creators, stamps the merge time and adds this tool as a creator.
// Both input timestamps are discarded.
func (s *mergeService) mergeCreationInfo(first, second entities.CreationInfo) entities.CreationInfo {
	return entities.CreationInfo{
		Created:            s.now().UTC().Truncate(time.Second),
		Creators:           combinable.Combine(first.Creators, second.Creators).With(s.provenance),
		LicenseListVersion: combinable.CombineOption(first.LicenseListVersion, second.LicenseListVersion),
		Comment:            combinable.CombineOption(first.Comment, second.Comment),
	}
}

// reportRetainedDuplicates warns about distinct elements that share an SPDX identifier.
// They are kept: deduplication is structural, not by identifier.
func reportRetainedDuplicates[T entities.Element](logger interfaces.Logger, kind string, elements combinable.Set[T]) {
	counts := make(map[string]int, elements.Len())
	order := make([]string, 0)
	for _, element := range elements.Items() {
		id := element.ElementID()
		if counts[id] == 1 {
			order = append(order, id)
		}
		counts[id]++
	}

	sort.Strings(order)
	for _, id := range order {
		logger.Warn("distinct elements share an SPDX identifier; keeping all of them",
			interfaces.F("kind", kind),
			interfaces.F("spdxid", id),
			interfaces.F("count", counts[id]),
		)
	}
}
