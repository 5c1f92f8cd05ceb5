// Package gpg signs and verifies detached OpenPGP signatures for merged documents.
package gpg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// armorPrefix starts every ASCII-armored signature
const armorPrefix = "-----BEGIN PGP SIGNATURE---"

// maxKeyringSize limits remote KEYS downloads
const maxKeyringSize = 10 * 1024 * 1024

// Verifier checks detached signatures against an in-memory keyring
type Verifier struct {
	keyring    openpgp.EntityList
	httpClient *http.Client
}

// NewVerifier creates a verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ImportKeysFromURL imports every public key published at keysURL
func (v *Verifier) ImportKeysFromURL(ctx context.Context, keysURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, keysURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download keys: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("keys download failed with status %d", resp.StatusCode)
	}

	entities, err := readKeyRing(io.LimitReader(resp.Body, maxKeyringSize))
	if err != nil {
		return fmt.Errorf("failed to parse keys: %w", err)
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// ImportKeyFromFile imports an armored or binary public key file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for key import
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}

	entities, err := readKeyRing(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// VerifySignatureFromFile verifies sigPath as a detached signature over filePath
// and returns the signer's fingerprint.
func (v *Verifier) VerifySignatureFromFile(filePath, sigPath string) (string, error) {
	//nolint:gosec // G304: sigPath is user-provided for verification
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return "", fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer sigFile.Close()

	//nolint:gosec // G304: filePath is user-provided for verification
	dataFile, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer dataFile.Close()

	return v.VerifyDetached(dataFile, sigFile)
}

// VerifyDetached verifies an armored or binary detached signature over data
func (v *Verifier) VerifyDetached(data, signature io.Reader) (string, error) {
	if len(v.keyring) == 0 {
		return "", fmt.Errorf("no public keys imported")
	}

	sig := bufio.NewReader(signature)
	peek, _ := sig.Peek(len(armorPrefix))
	isArmored := string(peek) == armorPrefix

	var (
		signer *openpgp.Entity
		err    error
	)
	if isArmored {
		signer, err = openpgp.CheckArmoredDetachedSignature(v.keyring, data, sig, nil)
	} else {
		signer, err = openpgp.CheckDetachedSignature(v.keyring, data, sig, nil)
	}
	if err != nil {
		return "", fmt.Errorf("signature verification failed: %w", err)
	}

	return Fingerprint(signer), nil
}

// KeyringSize returns the number of keys in the keyring
func (v *Verifier) KeyringSize() int {
	return len(v.keyring)
}

// Fingerprint formats the primary key fingerprint of entity in upper-case hex
func Fingerprint(entity *openpgp.Entity) string {
	if entity == nil || entity.PrimaryKey == nil {
		return ""
	}
	return fmt.Sprintf("%X", entity.PrimaryKey.Fingerprint)
}

// readKeyRing accepts armored input first and falls back to binary packets
func readKeyRing(r io.Reader) (openpgp.EntityList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
	}

	if len(entities) == 0 {
		return nil, fmt.Errorf("no keys found")
	}
	return entities, nil
}
