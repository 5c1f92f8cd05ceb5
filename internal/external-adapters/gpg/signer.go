package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer produces ASCII-armored detached signatures with a single private key
type Signer struct {
	entity *openpgp.Entity
}

// NewSigner signs with entity, which must carry a decrypted private key
func NewSigner(entity *openpgp.Entity) (*Signer, error) {
	if entity == nil || entity.PrivateKey == nil {
		return nil, fmt.Errorf("signing key has no private key material")
	}
	if entity.PrivateKey.Encrypted {
		return nil, fmt.Errorf("signing key %s is still encrypted", Fingerprint(entity))
	}
	return &Signer{entity: entity}, nil
}

// NewSignerFromFile loads the first private key in keyPath. An encrypted key
// is unlocked with passphrase.
func NewSignerFromFile(keyPath string, passphrase []byte) (*Signer, error) {
	//nolint:gosec // G304: keyPath is user-provided for signing
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open signing key: %w", err)
	}

	entities, err := readKeyRing(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	for _, entity := range entities {
		if entity.PrivateKey == nil {
			continue
		}
		if err := decrypt(entity, passphrase); err != nil {
			return nil, err
		}
		return NewSigner(entity)
	}

	return nil, fmt.Errorf("no private key found in %s", keyPath)
}

// Fingerprint identifies the signing key
func (s *Signer) Fingerprint() string {
	return Fingerprint(s.entity)
}

// SignDetached writes an armored detached signature over data to w
func (s *Signer) SignDetached(ctx context.Context, data io.Reader, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := openpgp.ArmoredDetachSign(w, s.entity, data, nil); err != nil {
		return fmt.Errorf("failed to sign: %w", err)
	}
	return nil
}

func decrypt(entity *openpgp.Entity, passphrase []byte) error {
	if !entity.PrivateKey.Encrypted {
		return nil
	}
	if len(passphrase) == 0 {
		return fmt.Errorf("signing key %s is encrypted and no passphrase was given", Fingerprint(entity))
	}
	if err := entity.PrivateKey.Decrypt(passphrase); err != nil {
		return fmt.Errorf("failed to unlock signing key: %w", err)
	}
	for _, sub := range entity.Subkeys {
		if sub.PrivateKey != nil && sub.PrivateKey.Encrypted {
			if err := sub.PrivateKey.Decrypt(passphrase); err != nil {
				return fmt.Errorf("failed to unlock signing subkey: %w", err)
			}
		}
	}
	return nil
}
