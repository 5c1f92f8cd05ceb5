package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/sbommerge/internal/domain-adapters/gateways"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		checksumFile = fs.String("checksum", "", "Checksum file to verify against (.sha256)")
		sigFile      = fs.String("sig", "", "Detached GPG signature file (.asc)")
		keyLocation  = fs.String("key", "", "Public key file or http(s) URL used to check --sig")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sbommerge verify <file> [options]

Verify the checksum and/or detached signature written by "sbommerge merge".

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  sbommerge verify dist/sbom.spdx.json --checksum dist/sbom.spdx.json.sha256
  sbommerge verify dist/sbom.spdx.json --sig dist/sbom.spdx.json.asc --key release.pub
`)
	}

	paths, err := parseInterspersed(fs, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if len(paths) != 1 {
		fmt.Fprintf(os.Stderr, "Error: file path is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	if *checksumFile == "" && *sigFile == "" {
		fatalf("nothing to verify: pass --checksum and/or --sig")
	}
	if *sigFile != "" && *keyLocation == "" {
		fatalf("--key is required with --sig")
	}

	if err := executeVerify(ctx, paths[0], *checksumFile, *sigFile, *keyLocation); err != nil {
		fatalf("%v", err)
	}
}

func executeVerify(ctx context.Context, filePath, checksumFile, sigFile, keyLocation string) error {
	fmt.Printf("Verifying %s\n", filepath.Base(filePath))

	if checksumFile != "" {
		expected, err := gateways.ReadChecksumFile(checksumFile)
		if err != nil {
			return err
		}
		if err := gateways.NewChecksumVerifier().VerifyChecksum(ctx, filePath, expected); err != nil {
			return err
		}
		fmt.Println("Checksum verified")
	}

	if sigFile != "" {
		verifier := gateways.NewGPGVerifier()
		if err := verifier.ImportKey(ctx, keyLocation); err != nil {
			return err
		}
		fingerprint, err := verifier.VerifyFile(filePath, sigFile)
		if err != nil {
			return err
		}
		fmt.Printf("Signature verified (key %s)\n", fingerprint)
	}

	return nil
}
