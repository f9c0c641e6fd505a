package cipher

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/katalvlaran/mirrorfield/bank"
)

// encMode uses Core Deterministic Encoding so equal states encode to
// equal bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cipher: CBOR encoder initialization failed: " + err.Error())
	}
}

// FieldState is the mutable content of one field.
type FieldState struct {
	// Mirrors holds the row-major definition symbols.
	Mirrors string `cbor:"mirrors"`
	// Perimeter holds the slot values in slot order.
	Perimeter []byte `cbor:"perimeter"`
}

// State is a complete, restorable picture of a Session.
type State struct {
	Size      int          `cbor:"size"`
	Cursors   Cursors      `cbor:"cursors"`
	Processed uint64       `cbor:"processed"`
	Fields    []FieldState `cbor:"fields"`
}

// Snapshot captures the session state without disturbing it.
func (s *Session) Snapshot() State {
	st := State{
		Size:      s.bank.Size(),
		Cursors:   s.Cursors(),
		Processed: s.processed,
		Fields:    make([]FieldState, s.bank.Count()),
	}
	for i := range st.Fields {
		f := s.bank.Field(i)
		sym := make([]byte, 0, f.Size()*f.Size())
		for _, m := range f.Mirrors() {
			sym = append(sym, m.Symbol())
		}
		st.Fields[i] = FieldState{Mirrors: string(sym), Perimeter: f.Perimeter()}
	}
	return st
}

// stateWire has State's layout without its methods, so the codec does not
// call back into MarshalBinary/UnmarshalBinary.
type stateWire State

// MarshalBinary encodes the state as deterministic CBOR.
func (st State) MarshalBinary() ([]byte, error) {
	return encMode.Marshal(stateWire(st))
}

// UnmarshalBinary decodes a CBOR state produced by MarshalBinary.
func (st *State) UnmarshalBinary(data []byte) error {
	if err := cbor.Unmarshal(data, (*stateWire)(st)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return nil
}

// Definition returns the bank definition stream for the captured fields.
func (st State) Definition() []byte {
	var out []byte
	for _, fs := range st.Fields {
		out = append(out, fs.Mirrors...)
	}
	for _, fs := range st.Fields {
		out = append(out, fs.Perimeter...)
	}
	return out
}

// Restore rebuilds a Session that continues exactly where the snapshot
// was taken.
func Restore(st State, opts ...Option) (*Session, error) {
	k := len(st.Fields)
	n := st.Size
	for i, fs := range st.Fields {
		if len(fs.Mirrors) != n*n || len(fs.Perimeter) != 4*n {
			return nil, fmt.Errorf("%w: field %d has %d mirrors and %d slots for size %d",
				ErrInvalidState, i, len(fs.Mirrors), len(fs.Perimeter), n)
		}
	}
	c := st.Cursors
	switch {
	case k == 0:
		return nil, fmt.Errorf("%w: no fields", ErrInvalidState)
	case c.Field < 0 || c.Field >= k:
		return nil, fmt.Errorf("%w: field cursor %d", ErrInvalidState, c.Field)
	case c.RollCount < 0 || c.RollCount >= k:
		return nil, fmt.Errorf("%w: roll count %d", ErrInvalidState, c.RollCount)
	case c.Roll1 < 0 || c.Roll1 >= 4*n || c.Roll2 != (c.Roll1+2*n)%(4*n):
		return nil, fmt.Errorf("%w: roll cursors %d,%d", ErrInvalidState, c.Roll1, c.Roll2)
	}

	b, err := bank.Parse(st.Definition(), n, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	s, err := NewSession(b, opts...)
	if err != nil {
		return nil, err
	}
	s.field = c.Field
	s.roll.g1, s.roll.g2, s.roll.count = c.Roll1, c.Roll2, c.RollCount
	s.processed = st.Processed

	return s, nil
}
