// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ochairo/sbommerge/internal/domain/entities"
	"github.com/ochairo/sbommerge/internal/domain/interfaces"
	"github.com/ochairo/sbommerge/internal/domain/interfaces/gateways"
	"github.com/ochairo/sbommerge/internal/domain/interfaces/repositories"
	"github.com/ochairo/sbommerge/internal/domain/interfaces/services"
)

// Extensions of the side files written next to a merged document
const (
	ChecksumExtension  = ".sha256"
	SignatureExtension = ".asc"
)

// CodecSelector resolves codecs for output formats
type CodecSelector interface {
	ForFormat(name string) (gateways.DocumentCodec, error)
	ForLocation(location string) gateways.DocumentCodec
}

// MergeOrchestrator coordinates loading, merging, encoding and writing documents
type MergeOrchestrator struct {
	repo      repositories.DocumentRepository
	merger    services.MergeService
	codecs    CodecSelector
	checksums gateways.ChecksumCalculator
	signer    gateways.DocumentSigner
	logger    interfaces.Logger
}

// MergeOrchestratorConfig holds the optional collaborators of the orchestrator
type MergeOrchestratorConfig struct {
	// Signer enables detached signatures; nil disables signing
	Signer gateways.DocumentSigner
	Logger interfaces.Logger
}

// NewMergeOrchestrator creates a new merge orchestrator
func NewMergeOrchestrator(
	repo repositories.DocumentRepository,
	merger services.MergeService,
	codecs CodecSelector,
	checksums gateways.ChecksumCalculator,
	config MergeOrchestratorConfig,
) *MergeOrchestrator {
	logger := config.Logger
	if logger == nil {
		logger = interfaces.NoOpLogger{}
	}

	return &MergeOrchestrator{
		repo:      repo,
		merger:    merger,
		codecs:    codecs,
		checksums: checksums,
		signer:    config.Signer,
		logger:    logger,
	}
}

// MergeRequest names the two inputs and where the merged document goes
type MergeRequest struct {
	First  string
	Second string
	// Output is a path or URL; empty leaves the encoded document in the result only
	Output string
	// Format overrides the codec chosen from Output's extension
	Format   string
	Checksum bool
}

// MergeResult describes a completed merge
type MergeResult struct {
	Document      *entities.Document
	Encoded       []byte
	Format        string
	Output        string
	Checksum      string
	ChecksumPath  string
	SignaturePath string
	Duration      time.Duration
}

// Merge loads both documents concurrently, merges them and writes the result.
// Nothing is written unless loading, merging, encoding and signing all succeed.
func (o *MergeOrchestrator) Merge(ctx context.Context, req MergeRequest) (*MergeResult, error) {
	startTime := time.Now()

	if req.First == "" || req.Second == "" {
		return nil, fmt.Errorf("two input documents are required")
	}
	if req.Output == "" && (req.Checksum || o.signer != nil) {
		return nil, fmt.Errorf("checksum and signature files require an output location")
	}

	codec, err := o.outputCodec(req)
	if err != nil {
		return nil, err
	}

	// Step 1: Load both inputs
	first, second, err := o.loadPair(ctx, req.First, req.Second)
	if err != nil {
		return nil, err
	}

	// Step 2: Merge
	merged, err := o.merger.Merge(first, second)
	if err != nil {
		return nil, err
	}

	// Step 3: Encode
	encoded, err := codec.Encode(merged)
	if err != nil {
		return nil, err
	}

	result := &MergeResult{
		Document: merged,
		Encoded:  encoded,
		Format:   codec.Format(),
		Output:   req.Output,
	}
	if req.Output == "" {
		result.Duration = time.Since(startTime)
		return result, nil
	}

	// Step 4: Prepare side files before touching the destination
	var signature []byte
	if o.signer != nil {
		var buf bytes.Buffer
		if err := o.signer.SignDetached(ctx, bytes.NewReader(encoded), &buf); err != nil {
			return nil, fmt.Errorf("failed to sign merged document: %w", err)
		}
		signature = buf.Bytes()
	}

	// Step 5: Write side files, then the document. A failed save leaves no document behind.
	if req.Checksum {
		result.Checksum = o.checksums.Sum(encoded)
		result.ChecksumPath = req.Output + ChecksumExtension
		line := fmt.Sprintf("%s  %s\n", result.Checksum, path.Base(req.Output))
		if err := o.repo.Save(ctx, result.ChecksumPath, []byte(line)); err != nil {
			return nil, err
		}
	}

	if signature != nil {
		result.SignaturePath = req.Output + SignatureExtension
		if err := o.repo.Save(ctx, result.SignaturePath, signature); err != nil {
			return nil, err
		}
	}

	if err := o.repo.Save(ctx, req.Output, encoded); err != nil {
		return nil, err
	}

	result.Duration = time.Since(startTime)
	o.logger.Info("wrote merged document",
		interfaces.F("output", req.Output),
		interfaces.F("format", result.Format),
		interfaces.F("bytes", len(encoded)),
		interfaces.F("duration", result.Duration.String()),
	)
	return result, nil
}

// InspectResult summarizes one document
type InspectResult struct {
	Document  *entities.Document
	Mergeable bool
	// Reason explains why the document cannot be merged
	Reason string
}

// Inspect loads a document and reports whether it can take part in a merge
func (o *MergeOrchestrator) Inspect(ctx context.Context, location string) (*InspectResult, error) {
	doc, err := o.repo.Load(ctx, location)
	if err != nil {
		return nil, err
	}

	result := &InspectResult{Document: doc, Mergeable: true}
	if err := o.merger.CheckVersion(doc); err != nil {
		var vm *entities.VersionMismatchError
		if !errors.As(err, &vm) {
			return nil, err
		}
		result.Mergeable = false
		result.Reason = fmt.Sprintf("spdxVersion is %q, merging requires %q", doc.SPDXVersion, vm.Want)
	}
	return result, nil
}

func (o *MergeOrchestrator) outputCodec(req MergeRequest) (gateways.DocumentCodec, error) {
	if req.Format != "" {
		return o.codecs.ForFormat(req.Format)
	}
	return o.codecs.ForLocation(req.Output), nil
}

func (o *MergeOrchestrator) loadPair(ctx context.Context, firstLoc, secondLoc string) (*entities.Document, *entities.Document, error) {
	var first, second *entities.Document

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := o.load(gctx, firstLoc)
		first = doc
		return err
	})
	g.Go(func() error {
		doc, err := o.load(gctx, secondLoc)
		second = doc
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func (o *MergeOrchestrator) load(ctx context.Context, location string) (*entities.Document, error) {
	o.logger.Debug("loading document", interfaces.F("location", location))
	doc, err := o.repo.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("loaded document",
		interfaces.F("location", location),
		interfaces.F("name", doc.Name),
		interfaces.F("spdxVersion", doc.SPDXVersion),
	)
	return doc, nil
}
