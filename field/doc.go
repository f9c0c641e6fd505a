// Package field treats one mirror field as a small planar graph: an N×N
// grid of mirror cells enclosed by a ring of 4N perimeter slots.
//
// What:
//
//   - Field holds N² Mirror orientations and 4N perimeter byte values.
//   - Link builds the adjacency: vertical chains top slot → column →
//     bottom slot and horizontal chains left slot → row → right slot.
//   - Validate rejects illegal orientations and repeated perimeter values.
//
// Layout:
//
//	slots 0..N-1    top edge,    slot i above column i  (inward Down)
//	slots N..2N-1   right edge,  slot N+i right of row i (inward Left)
//	slots 2N..3N-1  bottom edge, slot 2N+i below column i (inward Up)
//	slots 3N..4N-1  left edge,   slot 3N+i left of row i  (inward Right)
//
// Nodes are plain indices into one arena: cell (r,c) is r*N+c and slot i
// is N²+i. Neighbor relations are stored as indices, never pointers, so a
// Field can be cloned by copying slices.
//
// Complexity:
//
//   - Link:     O(N²) time, O(N²+4N) memory.
//   - Validate: O(N²+4N).
//   - Find:     O(4N).
//
// Errors:
//
//   - ErrInvalidSize: N outside [1, MaxSize].
//   - ErrCorruptField: a cell holds an orientation outside the legal four.
//   - ErrDuplicatePerimeterValue: two slots of one field share a value.
package field
