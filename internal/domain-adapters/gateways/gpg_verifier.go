package gateways

import (
	"context"
	"fmt"
	"strings"

	"github.com/ochairo/sbommerge/internal/external-adapters/gpg"
)

// gpgVerifier wraps the external GPG adapter to implement the domain gateway interface
type gpgVerifier struct {
	verifier *gpg.Verifier
}

// NewGPGVerifier creates a new GPG verifier gateway
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGVerifier() *gpgVerifier {
	return &gpgVerifier{
		verifier: gpg.NewVerifier(),
	}
}

// ImportKey imports public keys from an http(s) URL or a local file
func (g *gpgVerifier) ImportKey(ctx context.Context, location string) error {
	if strings.HasPrefix(location, "https://") || strings.HasPrefix(location, "http://") {
		if err := g.verifier.ImportKeysFromURL(ctx, location); err != nil {
			return fmt.Errorf("failed to import GPG keys from URL: %w", err)
		}
		return nil
	}

	if err := g.verifier.ImportKeyFromFile(location); err != nil {
		return fmt.Errorf("failed to import GPG key from file: %w", err)
	}
	return nil
}

// VerifyFile verifies a detached GPG signature from a local file
func (g *gpgVerifier) VerifyFile(filePath, sigPath string) (string, error) {
	fingerprint, err := g.verifier.VerifySignatureFromFile(filePath, sigPath)
	if err != nil {
		return "", fmt.Errorf("GPG signature verification failed: %w", err)
	}
	return fingerprint, nil
}

// KeyringSize returns the number of keys loaded
func (g *gpgVerifier) KeyringSize() int {
	return g.verifier.KeyringSize()
}
