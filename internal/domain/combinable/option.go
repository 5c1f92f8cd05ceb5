package combinable

import (
	"bytes"
	"encoding/json"
)

// Option holds a value that may be absent.
// An absent value is distinct from a present zero value (e.g. an empty set).
type Option[T any] struct {
	value T
	valid bool
}

// Some wraps a present value
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, valid: true}
}

// None returns an absent value
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present
func (o Option[T]) Get() (T, bool) {
	return o.value, o.valid
}

// IsSome reports whether a value is present
func (o Option[T]) IsSome() bool {
	return o.valid
}

// IsZero reports whether the value is absent. encoding/json uses it for omitzero fields.
func (o Option[T]) IsZero() bool {
	return !o.valid
}

// OrElse returns the value if present, otherwise fallback
func (o Option[T]) OrElse(fallback T) T {
	if o.valid {
		return o.value
	}
	return fallback
}

// CombineOption merges two optional values: absent yields to present, and two
// present values are combined with T's own rule.
func CombineOption[T Combinable[T]](a, b Option[T]) Option[T] {
	switch {
	case !a.valid && !b.valid:
		return None[T]()
	case !a.valid:
		return b
	case !b.valid:
		return a
	default:
		return Some(a.value.Combine(b.value))
	}
}

// MarshalJSON encodes the contained value, or null when absent
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return canonicalJSON(o.value)
}

// UnmarshalJSON decodes a present value. A JSON null decodes as absent.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*o = Some(value)
	return nil
}
