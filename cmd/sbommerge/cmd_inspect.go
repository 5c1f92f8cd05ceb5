package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/sbommerge/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/sbommerge/internal/domain-orchestrators"
	"github.com/ochairo/sbommerge/internal/domain/services"
	"github.com/ochairo/sbommerge/internal/external-adapters/storage"
)

func runInspect(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sbommerge inspect <path>

Print a summary of one SPDX document and whether it can be merged.

Examples:
  sbommerge inspect app.spdx.json
  sbommerge inspect https://example.org/sboms/base-image.spdx.yaml
`)
	}

	paths, err := parseInterspersed(fs, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if len(paths) != 1 {
		fmt.Fprintf(os.Stderr, "Error: document path is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	if err := executeInspect(ctx, paths[0]); err != nil {
		fatalf("%v", err)
	}
}

func executeInspect(ctx context.Context, location string) error {
	codecs := gateways.NewCodecRegistry("")
	orch := orchestrators.NewMergeOrchestrator(
		storage.NewDocumentRepository(codecs),
		services.NewMergeService(),
		codecs,
		gateways.NewChecksumVerifier(),
		orchestrators.MergeOrchestratorConfig{},
	)

	result, err := orch.Inspect(ctx, location)
	if err != nil {
		return err
	}
	doc := result.Document

	fmt.Printf("Name:      %s\n", doc.Name)
	fmt.Printf("SPDXID:    %s\n", doc.SPDXID)
	fmt.Printf("Version:   %s\n", doc.SPDXVersion)
	fmt.Printf("Namespace: %s\n", doc.DocumentNamespace)
	fmt.Printf("Created:   %s\n", doc.CreationInfo.Created.UTC().Format("2006-01-02T15:04:05Z"))

	fmt.Printf("\nCreators (%d):\n", doc.CreationInfo.Creators.Len())
	for _, creator := range doc.CreationInfo.Creators.Items() {
		fmt.Printf("  %s\n", creator)
	}

	if describes := doc.Describes(); len(describes) > 0 {
		fmt.Printf("\nDescribes:\n")
		for _, id := range describes {
			fmt.Printf("  %s\n", id)
		}
	}

	fmt.Printf("\nPackages (%d):\n", doc.Packages.Len())
	for _, p := range doc.Packages.Items() {
		version := p.VersionInfo
		if version == "" {
			version = "-"
		}
		fmt.Printf("  %-30s %s\n", p.Name, version)
	}

	fmt.Println()
	if result.Mergeable {
		fmt.Println("Mergeable: yes")
	} else {
		fmt.Printf("Mergeable: no (%s)\n", result.Reason)
	}
	return nil
}
