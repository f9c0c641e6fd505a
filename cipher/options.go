package cipher

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/mirrorfield/field"
	"github.com/katalvlaran/mirrorfield/traverse"
)

// StepObserver receives every traversal step together with the index of
// the field being walked. It must treat f as read-only.
type StepObserver func(fieldIndex int, f *field.Field, step traverse.Step)

// Option configures a Session via functional arguments.
type Option func(*Options)

// Options holds the collaborators of a Session.
type Options struct {
	// Logger receives per-byte trace records. Defaults to zerolog.Nop().
	Logger zerolog.Logger
	// Observer, if set, is called for every traversal step.
	Observer StepObserver
}

// DefaultOptions returns Options with a disabled logger and no observer.
func DefaultOptions() Options {
	return Options{
		Logger: zerolog.Nop(),
	}
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithStepObserver registers a traversal observer, such as a visualizer.
func WithStepObserver(fn StepObserver) Option {
	return func(o *Options) {
		o.Observer = fn
	}
}
