package gateways

import (
	"context"
	"fmt"
	"io"

	"github.com/ochairo/sbommerge/internal/external-adapters/gpg"
)

// gpgSigner wraps the external GPG adapter to implement DocumentSigner
type gpgSigner struct {
	signer *gpg.Signer
}

// NewGPGSignerFromFile loads a private key for signing merged documents
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGSignerFromFile(keyPath string, passphrase []byte) (*gpgSigner, error) {
	signer, err := gpg.NewSignerFromFile(keyPath, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}
	return &gpgSigner{signer: signer}, nil
}

// SignDetached writes an armored detached signature of data to w
func (g *gpgSigner) SignDetached(ctx context.Context, data io.Reader, w io.Writer) error {
	if err := g.signer.SignDetached(ctx, data, w); err != nil {
		return fmt.Errorf("GPG signing failed: %w", err)
	}
	return nil
}

// Fingerprint identifies the signing key
func (g *gpgSigner) Fingerprint() string {
	return g.signer.Fingerprint()
}
