// Package bank holds the ordered set of mirror fields that make up one
// key, and loads it from a definition byte stream.
//
// Definition stream:
//
//	for each field k in 0..K-1: N² mirror symbols, row-major ('/', '\', '-', ' ')
//	for each field k in 0..K-1: 4N perimeter bytes, in slot order
//
// Bytes past the expected N²K+4NK are not consumed. A Bank is only usable
// for traversal once every field has been loaded, validated and linked;
// Loader.Finish performs all three.
//
// Errors:
//
//   - ErrInvalidSize: N or K out of range.
//   - ErrInvalidSymbol: a mirror-phase byte outside the four symbols.
//   - ErrIncomplete: Finish called before every cell and slot was loaded.
//   - field.ErrCorruptField, field.ErrDuplicatePerimeterValue from validation.
package bank
