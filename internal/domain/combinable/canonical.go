package combinable

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/minio/highwayhash"
)

// hashKey seeds the set bucket hash. It only has to be stable within a process.
var hashKey = []byte("sbommerge-structural-set-hashkey")

// canonicalJSON encodes v without HTML escaping and without a trailing newline.
// Nested sets encode in sorted order, so equal values always produce equal bytes.
func canonicalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// structuralKey returns the canonical encoding of v. Every field takes part in it.
func structuralKey(v any) []byte {
	key, err := canonicalJSON(v)
	if err != nil {
		// Model types are plain data (strings, bools, ints, nested sets) and always encode.
		panic(fmt.Sprintf("combinable: %T has no canonical encoding: %v", v, err))
	}
	return key
}

func bucketOf(key []byte) uint64 {
	return highwayhash.Sum64(key, hashKey)
}
