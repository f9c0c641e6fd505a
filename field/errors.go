package field

import "errors"

var (
	// ErrInvalidSize indicates a grid size outside [1, MaxSize].
	ErrInvalidSize = errors.New("field: grid size out of range")
	// ErrCorruptField indicates a mirror cell with an illegal orientation.
	ErrCorruptField = errors.New("field: corrupt mirror cell")
	// ErrDuplicatePerimeterValue indicates two perimeter slots with equal values.
	ErrDuplicatePerimeterValue = errors.New("field: duplicate perimeter value")
)
