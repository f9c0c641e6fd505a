package cipher

import "github.com/katalvlaran/mirrorfield/field"

// roller holds the roll cursors shared by every field of a bank.
// g1 and g2 stay 2N apart modulo 4N.
type roller struct {
	g1, g2 int
	count  int
	period int // K: bytes between cursor advances
	slots  int // 4N
}

func newRoller(size, count int) roller {
	return roller{g1: 0, g2: 2 * size, period: count, slots: 4 * size}
}

// roll moves the larger of sv, ev into slot g1 and the smaller into g2,
// then advances the cursors once every period calls. The order compares
// the byte values themselves, not the values of the slots whose indices
// equal sv and ev, so it depends only on the unordered pair {sv, ev} and
// encryption and decryption roll identically.
func (r *roller) roll(f *field.Field, sv, ev byte) {
	x1, x2 := sv, ev
	if ev > sv {
		x1, x2 = ev, sv
	}
	if i, ok := f.Find(x1); ok {
		f.SwapSlots(i, r.g1)
	}
	if i, ok := f.Find(x2); ok {
		f.SwapSlots(i, r.g2)
	}

	r.count++
	if r.count == r.period {
		r.g1 = (r.g1 + 1) % r.slots
		r.g2 = (r.g2 + 1) % r.slots
		r.count = 0
	}
}
