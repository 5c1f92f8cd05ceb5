package combinable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID      string      `json:"id"`
	Comment string      `json:"comment,omitempty"`
	Tags    Set[string] `json:"tags,omitzero"`
}

func TestSet_StructuralDedup(t *testing.T) {
	p1 := record{ID: "SPDXRef-P1", Tags: NewSet("a", "b")}
	p1Copy := record{ID: "SPDXRef-P1", Tags: NewSet("b", "a")}
	p1Stale := record{ID: "SPDXRef-P1", Comment: "stale", Tags: NewSet("a", "b")}

	s := NewSet(p1, p1Copy, p1Stale)

	assert.Equal(t, 2, s.Len(), "identical records collapse, records differing in any field do not")
	assert.True(t, s.Contains(p1Copy))
	assert.True(t, s.Contains(p1Stale))
	assert.False(t, s.Contains(record{ID: "SPDXRef-P1"}))
}

func TestSet_UnionLaws(t *testing.T) {
	a := NewSet("x", "y")
	b := NewSet("y", "z")

	ab := a.Combine(b)
	ba := b.Combine(a)

	assert.True(t, a.IsSubsetOf(ab))
	assert.True(t, b.IsSubsetOf(ab))
	assert.True(t, ab.Equal(ba), "union is commutative")
	assert.Equal(t, 3, ab.Len())
	assert.GreaterOrEqual(t, ab.Len(), max(a.Len(), b.Len()))
}

func TestSet_UnionDoesNotModifyInputs(t *testing.T) {
	a := NewSet("x")
	b := NewSet("y")

	_ = a.Union(b)
	_ = a.With("z")

	assert.Equal(t, []string{"x"}, a.Items())
	assert.Equal(t, []string{"y"}, b.Items())
}

func TestSet_ZeroValue(t *testing.T) {
	var s Set[string]

	assert.Equal(t, 0, s.Len())
	assert.True(t, s.IsZero())
	assert.False(t, s.Contains("x"))
	assert.Empty(t, s.Items())

	withX := s.With("x")
	assert.Equal(t, 1, withX.Len())
	assert.True(t, s.Union(NewSet("y")).Contains("y"))
}

func TestSet_WithIsIdempotent(t *testing.T) {
	s := NewSet("Tool: sbommerge").With("Tool: sbommerge", "Tool: sbommerge")
	assert.Equal(t, 1, s.Len())
}

func TestSet_ItemsAreSorted(t *testing.T) {
	s := NewSet("c", "a", "b")
	assert.Equal(t, []string{"a", "b", "c"}, s.Items())
}

func TestSet_InvalidUTF8(t *testing.T) {
	assert.Equal(t, 2, NewSet("a\u00ff", "a\u00fe").Len(), "distinct valid strings stay distinct")

	s := NewSet("a\xff", "a\xfe")
	assert.Equal(t, 1, s.Len(), "invalid bytes compare as U+FFFD")
	assert.Equal(t, []string{"a\xff"}, s.Items(), "the first member is kept")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `["a\ufffd"]`, string(data))

	assert.Equal(t, 2, NewSet(record{ID: "x\xff"}, record{ID: "x"}).Len())
}

func TestSet_JSON(t *testing.T) {
	t.Run("marshal sorted", func(t *testing.T) {
		data, err := json.Marshal(NewSet("b", "a"))
		require.NoError(t, err)
		assert.JSONEq(t, `["a","b"]`, string(data))
	})

	t.Run("empty marshals as array", func(t *testing.T) {
		data, err := json.Marshal(Set[string]{})
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(data))
	})

	t.Run("unmarshal dedups", func(t *testing.T) {
		var s Set[string]
		require.NoError(t, json.Unmarshal([]byte(`["a","b","a"]`), &s))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("unmarshal null is empty", func(t *testing.T) {
		var s Set[string]
		require.NoError(t, json.Unmarshal([]byte(`null`), &s))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("unmarshal type mismatch", func(t *testing.T) {
		var s Set[string]
		assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
	})

	t.Run("nested sets encode canonically", func(t *testing.T) {
		a, err := json.Marshal(record{ID: "r", Tags: NewSet("z", "y")})
		require.NoError(t, err)
		b, err := json.Marshal(record{ID: "r", Tags: NewSet("y", "z")})
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	})

	t.Run("no html escaping", func(t *testing.T) {
		data, err := json.Marshal(NewSet("Jane <jane@example.com>"))
		require.NoError(t, err)
		assert.Equal(t, `["Jane <jane@example.com>"]`, string(data))
	})
}

func TestOption_JSON(t *testing.T) {
	type holder struct {
		Comment Option[Text]        `json:"comment,omitzero"`
		Refs    Option[Set[string]] `json:"refs,omitzero"`
	}

	t.Run("absent fields are omitted", func(t *testing.T) {
		data, err := json.Marshal(holder{})
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(data))
	})

	t.Run("present empty set is kept", func(t *testing.T) {
		data, err := json.Marshal(holder{Refs: Some(NewSet[string]())})
		require.NoError(t, err)
		assert.Equal(t, `{"refs":[]}`, string(data))
	})

	t.Run("decode distinguishes absent from empty", func(t *testing.T) {
		var absent, empty holder
		require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
		require.NoError(t, json.Unmarshal([]byte(`{"refs":[],"comment":"hi"}`), &empty))

		assert.False(t, absent.Refs.IsSome())
		assert.False(t, absent.Comment.IsSome())

		refs, ok := empty.Refs.Get()
		assert.True(t, ok)
		assert.Equal(t, 0, refs.Len())
		assert.Equal(t, Some(Text("hi")), empty.Comment)
	})

	t.Run("null decodes as absent", func(t *testing.T) {
		var h holder
		require.NoError(t, json.Unmarshal([]byte(`{"comment":null}`), &h))
		assert.False(t, h.Comment.IsSome())
	})
}
