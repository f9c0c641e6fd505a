package field

import "fmt"

// New returns an unlinked size×size field with every cell MirrorUnset and
// every slot value zero. Callers fill it, Validate it, then Link it.
// Returns ErrInvalidSize if size is outside [1, MaxSize].
func New(size int) (*Field, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	f := &Field{
		size:      size,
		mirrors:   make([]Mirror, size*size),
		perimeter: make([]byte, 4*size),
		links:     make([][numDirections]Node, size*size+4*size),
	}
	f.resetLinks()

	return f, nil
}

// Size returns N.
func (f *Field) Size() int { return f.size }

// SlotCount returns 4N.
func (f *Field) SlotCount() int { return 4 * f.size }

// Linked reports whether Link has run.
func (f *Field) Linked() bool { return f.linked }

// Mirror returns the orientation of cell (row, col).
func (f *Field) Mirror(row, col int) Mirror {
	return f.mirrors[row*f.size+col]
}

// SetMirror stores an orientation at cell (row, col).
func (f *Field) SetMirror(row, col int, m Mirror) {
	f.mirrors[row*f.size+col] = m
}

// MirrorAt returns the orientation of cell node n.
func (f *Field) MirrorAt(n Node) Mirror {
	return f.mirrors[n]
}

// Rotate advances the orientation of cell node n by one step of the
// Forward → Straight → Backward cycle and returns the new orientation.
func (f *Field) Rotate(n Node) Mirror {
	m := f.mirrors[n].Rotate()
	f.mirrors[n] = m
	return m
}

// Slot returns the value held by perimeter slot i.
func (f *Field) Slot(i int) byte { return f.perimeter[i] }

// SetSlot stores v in perimeter slot i.
func (f *Field) SetSlot(i int, v byte) { f.perimeter[i] = v }

// SwapSlots exchanges the values of slots i and j.
func (f *Field) SwapSlots(i, j int) {
	f.perimeter[i], f.perimeter[j] = f.perimeter[j], f.perimeter[i]
}

// Find returns the slot currently holding v.
func (f *Field) Find(v byte) (int, bool) {
	for i, pv := range f.perimeter {
		if pv == v {
			return i, true
		}
	}
	return -1, false
}

// Mirrors returns a copy of the cell orientations in row-major order.
func (f *Field) Mirrors() []Mirror {
	out := make([]Mirror, len(f.mirrors))
	copy(out, f.mirrors)
	return out
}

// Perimeter returns a copy of the slot values in slot order.
func (f *Field) Perimeter() []byte {
	out := make([]byte, len(f.perimeter))
	copy(out, f.perimeter)
	return out
}

// CellNode returns the node of cell (row, col).
func (f *Field) CellNode(row, col int) Node {
	return Node(row*f.size + col)
}

// SlotNode returns the node of perimeter slot i.
func (f *Field) SlotNode(i int) Node {
	return Node(f.size*f.size + i)
}

// IsSlot reports whether n is a perimeter slot.
func (f *Field) IsSlot(n Node) bool {
	return int(n) >= f.size*f.size
}

// SlotIndex converts a slot node back to its perimeter index.
func (f *Field) SlotIndex(n Node) int {
	return int(n) - f.size*f.size
}

// Coordinate converts a cell node back to (row, col).
func (f *Field) Coordinate(n Node) (row, col int) {
	return int(n) / f.size, int(n) % f.size
}

// Neighbor returns the node one step from n in direction d, or NoNode.
func (f *Field) Neighbor(n Node, d Direction) Node {
	return f.links[n][d]
}

// Inward returns the direction of the single link of slot i.
// Links are probed in the order down, up, left, right.
func (f *Field) Inward(i int) (Direction, bool) {
	n := f.SlotNode(i)
	for _, d := range [...]Direction{Down, Up, Left, Right} {
		if f.links[n][d] != NoNode {
			return d, true
		}
	}
	return Up, false
}

// Validate checks that every cell holds a legal orientation and that no
// two slots share a value. It must run after loading and before Link.
// Complexity: O(N²+4N).
func (f *Field) Validate() error {
	for i, m := range f.mirrors {
		if !m.Valid() {
			return fmt.Errorf("%w: cell (%d,%d) holds %v",
				ErrCorruptField, i/f.size, i%f.size, m)
		}
	}
	var seen [256]int
	for i, v := range f.perimeter {
		if seen[v] != 0 {
			return fmt.Errorf("%w: 0x%02x at slots %d and %d",
				ErrDuplicatePerimeterValue, v, seen[v]-1, i)
		}
		seen[v] = i + 1
	}

	return nil
}

// Link builds the adjacency between slots and cells. Calling it again
// rebuilds the same links.
// Complexity: O(N²).
func (f *Field) Link() {
	n := f.size
	f.resetLinks()

	// Columns: top slot c → (0,c) → … → (N-1,c) → bottom slot 2N+c.
	for c := 0; c < n; c++ {
		prev := f.SlotNode(c)
		for r := 0; r < n; r++ {
			cur := f.CellNode(r, c)
			f.join(prev, cur, Down)
			prev = cur
		}
		f.join(prev, f.SlotNode(2*n+c), Down)
	}

	// Rows: left slot 3N+r → (r,0) → … → (r,N-1) → right slot N+r.
	for r := 0; r < n; r++ {
		prev := f.SlotNode(3*n + r)
		for c := 0; c < n; c++ {
			cur := f.CellNode(r, c)
			f.join(prev, cur, Right)
			prev = cur
		}
		f.join(prev, f.SlotNode(n+r), Right)
	}
	f.linked = true
}

// Clone returns an independent deep copy of f.
func (f *Field) Clone() *Field {
	c := &Field{
		size:      f.size,
		mirrors:   f.Mirrors(),
		perimeter: f.Perimeter(),
		links:     make([][numDirections]Node, len(f.links)),
		linked:    f.linked,
	}
	copy(c.links, f.links)

	return c
}

// join links a → b in direction d and b → a in the opposite direction.
func (f *Field) join(a, b Node, d Direction) {
	f.links[a][d] = b
	f.links[b][d.Opposite()] = a
}

func (f *Field) resetLinks() {
	for i := range f.links {
		f.links[i] = [numDirections]Node{NoNode, NoNode, NoNode, NoNode}
	}
	f.linked = false
}
