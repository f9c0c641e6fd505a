package cipher

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/mirrorfield/bank"
	"github.com/katalvlaran/mirrorfield/traverse"
)

// Cursors is the stream position of a Session.
type Cursors struct {
	// Field is the index of the field the next byte will use.
	Field int
	// Roll1 and Roll2 are the roll cursors g1 and g2.
	Roll1, Roll2 int
	// RollCount counts bytes since the roll cursors last advanced.
	RollCount int
}

// Session is one continuous cipher stream over a bank.
type Session struct {
	bank      *bank.Bank
	log       zerolog.Logger
	observer  StepObserver
	field     int
	roll      roller
	processed uint64
}

// NewSession starts a stream at field 0 with g1=0 and g2=2N.
// The bank must come from bank.Parse, bank.Load or Loader.Finish.
func NewSession(b *bank.Bank, opts ...Option) (*Session, error) {
	if b == nil {
		return nil, ErrNilBank
	}
	if !b.Linked() {
		return nil, ErrBankNotLinked
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Session{
		bank:     b,
		log:      o.Logger,
		observer: o.Observer,
		roll:     newRoller(b.Size(), b.Count()),
	}, nil
}

// Bank returns the bank the session mutates.
func (s *Session) Bank() *bank.Bank { return s.bank }

// Cursors returns the current stream position.
func (s *Session) Cursors() Cursors {
	return Cursors{Field: s.field, Roll1: s.roll.g1, Roll2: s.roll.g2, RollCount: s.roll.count}
}

// Processed returns the number of bytes transformed so far.
func (s *Session) Processed() uint64 { return s.processed }

// Process transforms one byte and advances the stream. On error the
// session state is unchanged and the stream must be abandoned.
func (s *Session) Process(in byte) (byte, error) {
	m := s.field
	f := s.bank.Field(m)

	entry, ok := f.Find(in)
	if !ok {
		return 0, fmt.Errorf("%w: 0x%02x in field %d at byte %d",
			ErrCharacterNotFound, in, m, s.processed)
	}

	var opts []traverse.Option
	if s.observer != nil {
		obs := s.observer
		opts = append(opts, traverse.WithOnStep(func(st traverse.Step) { obs(m, f, st) }))
	}
	res, err := traverse.Walk(f, entry, opts...)
	if err != nil {
		return 0, fmt.Errorf("cipher: field %d: %w", m, err)
	}

	sv, ev := in, f.Slot(res.Exit)
	s.roll.roll(f, sv, ev)

	out := ev
	idx := (int(sv) + int(ev)) % f.SlotCount()
	fixup := int(f.Slot(idx)) == idx
	if fixup {
		out = sv
	}

	s.log.Trace().
		Int("field", m).
		Uint8("in", sv).
		Uint8("exit", ev).
		Int("entry_slot", res.Entry).
		Int("exit_slot", res.Exit).
		Int("path", len(res.Path)).
		Bool("fixup", fixup).
		Msg("byte processed")

	s.field = (m + 1) % s.bank.Count()
	s.processed++

	return out, nil
}

// ProcessBytes transforms p in order. On error it returns the bytes
// produced before the failing one.
func (s *Session) ProcessBytes(p []byte) ([]byte, error) {
	out := make([]byte, 0, len(p))
	for _, b := range p {
		c, err := s.Process(b)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}
