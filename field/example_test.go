package field_test

import (
	"fmt"

	"github.com/katalvlaran/mirrorfield/field"
)

// ExampleField_Link builds a 2×2 field and prints where each top slot enters.
func ExampleField_Link() {
	f, _ := field.New(2)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			f.SetMirror(r, c, field.Empty)
		}
	}
	for i := 0; i < f.SlotCount(); i++ {
		f.SetSlot(i, 'a'+byte(i))
	}
	if err := f.Validate(); err != nil {
		fmt.Println(err)
		return
	}
	f.Link()

	for i := 0; i < 2; i++ {
		d, _ := f.Inward(i)
		r, c := f.Coordinate(f.Neighbor(f.SlotNode(i), d))
		fmt.Printf("slot %c: %v into (%d,%d)\n", f.Slot(i), d, r, c)
	}
	// Output:
	// slot a: down into (0,0)
	// slot b: down into (0,1)
}
