package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/sbommerge/internal/config"
	"github.com/ochairo/sbommerge/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/sbommerge/internal/domain-orchestrators"
	"github.com/ochairo/sbommerge/internal/domain/services"
	"github.com/ochairo/sbommerge/internal/external-adapters/logging"
	"github.com/ochairo/sbommerge/internal/external-adapters/storage"
)

// passphraseEnv holds the passphrase of an encrypted signing key
const passphraseEnv = "SBOMMERGE_KEY_PASSPHRASE"

func runMerge(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	var output string
	fs.StringVar(&output, "output", "", "Write the merged document here instead of standard output")
	fs.StringVar(&output, "o", "", "Shorthand for --output")

	var (
		format     = fs.String("format", "", "Output format: json or yaml (default: from output extension, else json)")
		configPath = fs.String("config", "", "Path to a YAML or TOML config file")
		provenance = fs.String("provenance", "", "Creator entry added to the merged document (default \"Tool: sbommerge\")")
		checksum   = fs.Bool("checksum", false, "Write <output>.sha256 next to the merged document")
		signKey    = fs.String("sign-key", "", "Armored private key used to write <output>.asc (passphrase from "+passphraseEnv+")")
		logLevel   = fs.String("log-level", "", "Log level: debug, info, warn or error")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sbommerge [merge] [options] <path1> <path2>

Merge two SPDX 2.3 documents. The merged document is written to standard
output unless --output is given. Logs go to standard error.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  sbommerge app.spdx.json base-image.spdx.json > merged.spdx.json
  sbommerge merge -o merged.spdx.yaml app.spdx.json base-image.spdx.yaml
  sbommerge merge --checksum --sign-key release.key -o dist/sbom.spdx.json a.json b.json
`)
	}

	paths, err := parseInterspersed(fs, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if len(paths) != 2 {
		fmt.Fprintf(os.Stderr, "Error: exactly two SPDX documents are required, got %d\n\n", len(paths))
		fs.Usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fatalf("%v", err)
		}
	}

	// Flags override the config file
	if isFlagSet(fs, "format") {
		cfg.Format = *format
	}
	if isFlagSet(fs, "provenance") {
		cfg.Provenance = *provenance
	}
	if isFlagSet(fs, "checksum") {
		cfg.Checksum = *checksum
	}
	if isFlagSet(fs, "sign-key") {
		cfg.SigningKey = *signKey
	}
	if isFlagSet(fs, "log-level") {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}

	if err := executeMerge(ctx, cfg, paths[0], paths[1], output); err != nil {
		fatalf("%v", err)
	}
}

func executeMerge(ctx context.Context, cfg config.Config, first, second, output string) error {
	logger := logging.NewConsoleLogger(os.Stderr, cfg.LogLevel)

	orchConfig := orchestrators.MergeOrchestratorConfig{Logger: logger}
	if cfg.SigningKey != "" {
		signer, err := gateways.NewGPGSignerFromFile(cfg.SigningKey, []byte(os.Getenv(passphraseEnv)))
		if err != nil {
			return err
		}
		orchConfig.Signer = signer
		logger.Debug("signing merged document")
	}

	codecs := gateways.NewCodecRegistry(cfg.IndentString())
	orch := orchestrators.NewMergeOrchestrator(
		storage.NewDocumentRepository(codecs),
		services.NewMergeService(
			services.WithLogger(logger),
			services.WithProvenance(cfg.Provenance),
		),
		codecs,
		gateways.NewChecksumVerifier(),
		orchConfig,
	)

	result, err := orch.Merge(ctx, orchestrators.MergeRequest{
		First:    first,
		Second:   second,
		Output:   output,
		Format:   cfg.Format,
		Checksum: cfg.Checksum,
	})
	if err != nil {
		return err
	}

	if output == "" {
		if _, err := os.Stdout.Write(result.Encoded); err != nil {
			return fmt.Errorf("failed to write merged document: %w", err)
		}
	}
	return nil
}
