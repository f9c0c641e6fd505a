package bank

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/mirrorfield/field"
)

// Loader consumes a definition stream one byte at a time.
type Loader struct {
	bank *Bank
	pos  int
}

// NewLoader prepares a loader for K fields of size N.
func NewLoader(size, count int) (*Loader, error) {
	b, err := New(size, count)
	if err != nil {
		return nil, err
	}
	return &Loader{bank: b}, nil
}

// Total returns the number of bytes a complete definition holds.
func (l *Loader) Total() int {
	n := l.bank.size
	return l.bank.Count() * (n*n + 4*n)
}

// Loaded returns the number of bytes consumed so far.
func (l *Loader) Loaded() int { return l.pos }

// Complete reports whether every cell and slot has been set.
func (l *Loader) Complete() bool { return l.pos >= l.Total() }

// Set stores the next definition byte. It returns false without error
// once the definition is complete; extra bytes are not consumed.
// A byte other than '/', '\', '-' or ' ' in the mirror phase returns
// ErrInvalidSymbol and is not consumed.
func (l *Loader) Set(ch byte) (bool, error) {
	n := l.bank.size
	cells := n * n
	mirrorBytes := cells * l.bank.Count()

	switch {
	case l.pos < mirrorBytes:
		m, ok := field.ParseMirror(ch)
		if !ok {
			return false, fmt.Errorf("%w: %q at offset %d", ErrInvalidSymbol, ch, l.pos)
		}
		idx := l.pos % cells
		l.bank.fields[l.pos/cells].SetMirror(idx/n, idx%n, m)
	case l.pos < l.Total():
		off := l.pos - mirrorBytes
		l.bank.fields[off/(4*n)].SetSlot(off%(4*n), ch)
	default:
		return false, nil
	}
	l.pos++

	return true, nil
}

// Finish validates and links the loaded bank and hands it over.
func (l *Loader) Finish() (*Bank, error) {
	if !l.Complete() {
		return nil, fmt.Errorf("%w: %d of %d bytes", ErrIncomplete, l.pos, l.Total())
	}
	if err := l.bank.Validate(); err != nil {
		return nil, err
	}
	l.bank.Link()

	return l.bank, nil
}

// Parse loads a bank from an in-memory definition. Trailing bytes past
// the definition are ignored.
func Parse(def []byte, size, count int) (*Bank, error) {
	l, err := NewLoader(size, count)
	if err != nil {
		return nil, err
	}
	for _, ch := range def {
		consumed, err := l.Set(ch)
		if err != nil {
			return nil, err
		}
		if !consumed {
			break
		}
	}
	return l.Finish()
}

// Load reads a definition from r until the bank is complete or r is
// exhausted. Bytes after the definition are ignored; r is read through a
// buffer, so they may still be consumed from r.
func Load(r io.Reader, size, count int) (*Bank, error) {
	l, err := NewLoader(size, count)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(r)
	for !l.Complete() {
		ch, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bank: read definition: %w", err)
		}
		if _, err := l.Set(ch); err != nil {
			return nil, err
		}
	}
	return l.Finish()
}
