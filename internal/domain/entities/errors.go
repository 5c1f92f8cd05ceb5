package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed errors below
var (
	ErrDecode          = errors.New("decode failed")
	ErrVersionMismatch = errors.New("spdx version mismatch")
	ErrEncode          = errors.New("encode failed")
)

// DecodeError reports input bytes that do not parse as a Document
type DecodeError struct {
	Source string // file path or URL, empty when decoding raw bytes
	Format string // "json" or "yaml"
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to decode %s document: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("failed to decode %s document %s: %v", e.Format, e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is matches ErrDecode
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// VersionMismatchError reports documents that cannot be merged because of their declared schema versions
type VersionMismatchError struct {
	First  string
	Second string
	Want   string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("cannot merge documents with spdxVersion %q and %q: both must be %q", e.First, e.Second, e.Want)
}

// Is matches ErrVersionMismatch
func (e *VersionMismatchError) Is(target error) bool { return target == ErrVersionMismatch }

// EncodeError reports a merged document that could not be serialized
type EncodeError struct {
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode %s document: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Is matches ErrEncode
func (e *EncodeError) Is(target error) bool { return target == ErrEncode }
