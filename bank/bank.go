package bank

import (
	"fmt"

	"github.com/katalvlaran/mirrorfield/field"
)

// Bank is the ordered sequence of K fields forming one key.
type Bank struct {
	size   int
	fields []*field.Field
}

// New allocates K unloaded fields of size N.
// Returns ErrInvalidSize if count < 1 or size is outside [1, field.MaxSize].
func New(size, count int) (*Bank, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: field count %d", ErrInvalidSize, count)
	}
	b := &Bank{size: size, fields: make([]*field.Field, count)}
	for i := range b.fields {
		f, err := field.New(size)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
		}
		b.fields[i] = f
	}

	return b, nil
}

// Size returns the grid size N shared by every field.
func (b *Bank) Size() int { return b.size }

// Count returns K.
func (b *Bank) Count() int { return len(b.fields) }

// Field returns field i. It panics if i is outside [0, Count()).
func (b *Bank) Field(i int) *field.Field { return b.fields[i] }

// Validate runs field.Validate on every field, wrapping the failing index.
func (b *Bank) Validate() error {
	for i, f := range b.fields {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	return nil
}

// Link links every field.
func (b *Bank) Link() {
	for _, f := range b.fields {
		f.Link()
	}
}

// Linked reports whether every field is linked.
func (b *Bank) Linked() bool {
	for _, f := range b.fields {
		if !f.Linked() {
			return false
		}
	}
	return true
}

// Clone returns an independent deep copy, suitable for a second stream
// starting from the same state.
func (b *Bank) Clone() *Bank {
	c := &Bank{size: b.size, fields: make([]*field.Field, len(b.fields))}
	for i, f := range b.fields {
		c.fields[i] = f.Clone()
	}
	return c
}

// Definition serializes the current state in loader order, so that
// Parse(b.Definition(), N, K) reproduces b.
func (b *Bank) Definition() []byte {
	n := b.size
	out := make([]byte, 0, len(b.fields)*(n*n+4*n))
	for _, f := range b.fields {
		for _, m := range f.Mirrors() {
			out = append(out, m.Symbol())
		}
	}
	for _, f := range b.fields {
		out = append(out, f.Perimeter()...)
	}
	return out
}
