package traverse

import (
	"fmt"

	"github.com/katalvlaran/mirrorfield/field"
)

// walker encapsulates the state of one walk.
type walker struct {
	f    *field.Field
	opts Options
	path []field.Node
	seq  int
}

// Walk sends a ray in from slot entry, returns the slot it leaves by, and
// rotates every mirror cell on the path once per visit.
// Returns ErrFieldNil, ErrNotLinked, ErrSlotOutOfRange or ErrWalkDiverged.
func Walk(f *field.Field, entry int, opts ...Option) (Result, error) {
	res, err := run(f, entry, opts)
	if err != nil {
		return Result{}, err
	}
	for i := len(res.Path) - 1; i >= 0; i-- {
		f.Rotate(res.Path[i])
	}
	return res, nil
}

// Trace is Walk without mirror rotation.
func Trace(f *field.Field, entry int, opts ...Option) (Result, error) {
	return run(f, entry, opts)
}

// Exits maps every entry slot to its exit slot under the current,
// unrotated orientations. On a valid field the result is a permutation.
func Exits(f *field.Field) ([]int, error) {
	if f == nil {
		return nil, ErrFieldNil
	}
	out := make([]int, f.SlotCount())
	for i := range out {
		res, err := run(f, i, nil)
		if err != nil {
			return nil, err
		}
		out[i] = res.Exit
	}
	return out, nil
}

func run(f *field.Field, entry int, opts []Option) (Result, error) {
	if f == nil {
		return Result{}, ErrFieldNil
	}
	if !f.Linked() {
		return Result{}, ErrNotLinked
	}
	if entry < 0 || entry >= f.SlotCount() {
		return Result{}, fmt.Errorf("%w: %d not in [0,%d)", ErrSlotOutOfRange, entry, f.SlotCount())
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d, ok := f.Inward(entry)
	if !ok {
		return Result{}, fmt.Errorf("%w: slot %d has no link", ErrNotLinked, entry)
	}

	w := &walker{f: f, opts: o}
	return w.walk(entry, d)
}

func (w *walker) walk(entry int, d field.Direction) (Result, error) {
	n := w.f.Size()
	limit := 4*n*n + 1

	node := w.f.SlotNode(entry)
	w.emit(node, field.MirrorUnset, d)
	for {
		if w.seq > limit {
			return Result{}, fmt.Errorf("%w: entry %d after %d steps", ErrWalkDiverged, entry, w.seq)
		}
		node = w.f.Neighbor(node, d)
		if node == field.NoNode {
			return Result{}, fmt.Errorf("%w: dangling link on walk from %d", ErrNotLinked, entry)
		}
		if w.f.IsSlot(node) {
			w.emit(node, field.MirrorUnset, d)
			return Result{Entry: entry, Exit: w.f.SlotIndex(node), Path: w.path}, nil
		}
		m := w.f.MirrorAt(node)
		d = m.Deflect(d)
		w.path = append(w.path, node)
		w.emit(node, m, d)
	}
}

func (w *walker) emit(node field.Node, m field.Mirror, d field.Direction) {
	slot := -1
	if w.f.IsSlot(node) {
		slot = w.f.SlotIndex(node)
	}
	w.opts.OnStep(Step{Seq: w.seq, Node: node, Slot: slot, Mirror: m, Dir: d})
	w.seq++
}
