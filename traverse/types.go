package traverse

import (
	"errors"

	"github.com/katalvlaran/mirrorfield/field"
)

// Sentinel errors for traversal.
var (
	// ErrFieldNil is returned when a nil field is passed.
	ErrFieldNil = errors.New("traverse: field is nil")
	// ErrNotLinked is returned when the field has not been linked.
	ErrNotLinked = errors.New("traverse: field is not linked")
	// ErrSlotOutOfRange is returned for an entry slot outside [0, 4N).
	ErrSlotOutOfRange = errors.New("traverse: entry slot out of range")
	// ErrWalkDiverged is returned if a walk exceeds its step bound.
	ErrWalkDiverged = errors.New("traverse: walk did not reach the perimeter")
)

// Step describes one node reached during a walk.
type Step struct {
	// Seq is 0 for the entry slot and increases by one per step.
	Seq int
	// Node is the cell or slot reached.
	Node field.Node
	// Slot is the perimeter index when Node is a slot, -1 otherwise.
	Slot int
	// Mirror is the cell orientation when reached; MirrorUnset for slots.
	Mirror field.Mirror
	// Dir is the direction of travel when leaving Node. For the exit slot
	// it is the direction the ray arrived in.
	Dir field.Direction
}

// Result summarizes a finished walk.
type Result struct {
	// Entry and Exit are perimeter slot indices.
	Entry, Exit int
	// Path lists the cells visited, in order, with repeats.
	Path []field.Node
}

// Option configures a walk via functional arguments.
type Option func(*Options)

// Options holds the callbacks of a walk.
type Options struct {
	// OnStep is called for the entry slot, each cell and the exit slot,
	// before any mirror rotation. It must not mutate the field.
	OnStep func(Step)
}

// DefaultOptions returns Options with a no-op OnStep hook.
func DefaultOptions() Options {
	return Options{
		OnStep: func(Step) {},
	}
}

// WithOnStep registers a callback invoked for every node reached.
func WithOnStep(fn func(Step)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnStep = fn
		}
	}
}
