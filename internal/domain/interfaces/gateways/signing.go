package gateways

import (
	"context"
	"io"
)

// DocumentSigner produces detached signatures for encoded documents
type DocumentSigner interface {
	// SignDetached writes an armored detached signature of data to w
	SignDetached(ctx context.Context, data io.Reader, w io.Writer) error
}

// ChecksumCalculator computes and checks SHA256 digests
type ChecksumCalculator interface {
	Sum(data []byte) string
	VerifyChecksum(ctx context.Context, filePath, expectedSum string) error
}

// SignatureVerifier checks detached signatures produced by a DocumentSigner
type SignatureVerifier interface {
	// ImportKey loads public keys from a local file or an http(s) URL
	ImportKey(ctx context.Context, location string) error
	// VerifyFile returns the fingerprint of the key that signed filePath
	VerifyFile(filePath, sigPath string) (string, error)
}
