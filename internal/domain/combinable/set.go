package combinable

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Set is an immutable collection deduplicated by full structural equality:
// two members collapse only when every field matches.
//
// The zero value is an empty set. Members are bucketed by a highwayhash of
// their canonical encoding and compared byte-for-byte within a bucket.
//
// Equality is judged on the JSON encoding, which is also what gets written out.
// Strings holding invalid UTF-8 encode with each bad byte replaced by U+FFFD,
// so "a\xff" and "a\xfe" are the same member. Decoded documents are already
// valid UTF-8; callers building sets by hand should pass valid strings.
type Set[T any] struct {
	buckets map[uint64][]member[T]
	size    int
}

type member[T any] struct {
	key   []byte
	value T
}

// NewSet builds a set from items, dropping structural duplicates
func NewSet[T any](items ...T) Set[T] {
	s := Set[T]{buckets: make(map[uint64][]member[T], len(items))}
	for _, item := range items {
		s.insert(item)
	}
	return s
}

// Len returns the number of distinct members
func (s Set[T]) Len() int {
	return s.size
}

// IsZero reports whether the set is empty. encoding/json uses it for omitzero fields.
func (s Set[T]) IsZero() bool {
	return s.size == 0
}

// Contains reports whether a structurally equal member exists
func (s Set[T]) Contains(value T) bool {
	return s.containsKey(structuralKey(value))
}

// With returns a new set holding the members of s plus items
func (s Set[T]) With(items ...T) Set[T] {
	out := s.clone(len(items))
	for _, item := range items {
		out.insert(item)
	}
	return out
}

// Union returns a new set holding every member of s and other
func (s Set[T]) Union(other Set[T]) Set[T] {
	out := s.clone(other.size)
	for _, bucket := range other.buckets {
		for _, m := range bucket {
			out.insertMember(m)
		}
	}
	return out
}

// Combine is set union. Unlike Text it is commutative.
func (s Set[T]) Combine(other Set[T]) Set[T] {
	return s.Union(other)
}

// IsSubsetOf reports whether every member of s is also in other
func (s Set[T]) IsSubsetOf(other Set[T]) bool {
	if s.size > other.size {
		return false
	}
	for _, bucket := range s.buckets {
		for _, m := range bucket {
			if !other.containsKey(m.key) {
				return false
			}
		}
	}
	return true
}

// Equal reports whether both sets hold the same members
func (s Set[T]) Equal(other Set[T]) bool {
	return s.size == other.size && s.IsSubsetOf(other)
}

// Items returns the members ordered by their canonical encoding.
// The order is a total order over structural content, stable across runs.
func (s Set[T]) Items() []T {
	members := s.sorted()
	items := make([]T, len(members))
	for i, m := range members {
		items[i] = m.value
	}
	return items
}

// MarshalJSON encodes the set as a JSON array in canonical order. An empty set encodes as [].
func (s Set[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, m := range s.sorted() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(m.key)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON array, collapsing structural duplicates. null decodes as empty.
func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSet(items...)
	return nil
}

func (s Set[T]) clone(extra int) Set[T] {
	out := Set[T]{
		buckets: make(map[uint64][]member[T], len(s.buckets)+extra),
		size:    s.size,
	}
	for h, bucket := range s.buckets {
		out.buckets[h] = slices.Clone(bucket)
	}
	return out
}

func (s Set[T]) sorted() []member[T] {
	members := make([]member[T], 0, s.size)
	for _, bucket := range s.buckets {
		members = append(members, bucket...)
	}
	slices.SortFunc(members, func(a, b member[T]) int {
		return bytes.Compare(a.key, b.key)
	})
	return members
}

func (s Set[T]) containsKey(key []byte) bool {
	for _, m := range s.buckets[bucketOf(key)] {
		if bytes.Equal(m.key, key) {
			return true
		}
	}
	return false
}

// insert and insertMember mutate s; callers only use them on freshly built sets.
func (s *Set[T]) insert(value T) {
	s.insertMember(member[T]{key: structuralKey(value), value: value})
}

func (s *Set[T]) insertMember(m member[T]) {
	if s.buckets == nil {
		s.buckets = make(map[uint64][]member[T])
	}
	h := bucketOf(m.key)
	for _, existing := range s.buckets[h] {
		if bytes.Equal(existing.key, m.key) {
			return
		}
	}
	s.buckets[h] = append(s.buckets[h], m)
	s.size++
}
