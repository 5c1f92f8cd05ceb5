// Package combinable defines how two values of the same shape are folded into one.
//
// Every shape the merge engine touches (text, set, optional) implements Combinable,
// so merging a document never needs to special-case a field's concrete type.
package combinable

// Combinable is implemented by value shapes that know how to merge with another value of the same shape
type Combinable[T any] interface {
	// Combine returns a new value holding both the receiver and other. Neither input is modified.
	Combine(other T) T
}

// Combine merges a and b using the shape's own combination rule
func Combine[T Combinable[T]](a, b T) T {
	return a.Combine(b)
}

// Conjunction separates the two halves of a combined text value
const Conjunction = " AND "

// Text is a scalar string that combines by concatenation when the two sides disagree
type Text string

// Combine keeps the value when both sides agree, otherwise returns "a AND b".
// The result depends on argument order.
func (t Text) Combine(other Text) Text {
	if t == other {
		return t
	}
	return t + Conjunction + other
}

// String returns the underlying string
func (t Text) String() string {
	return string(t)
}
