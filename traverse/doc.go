// Package traverse walks a ray through a linked mirror field.
//
// A walk starts at a perimeter slot, steps inward, and keeps stepping:
//
//	Empty    ( ) pass through, never rotates
//	Forward  (/) down↔left, up↔right
//	Backward (\) down↔right, up↔left
//	Straight (-) pass through
//
// until it reaches another perimeter slot. Only then is every mirror cell
// on the path rotated once per visit (Forward → Straight → Backward →
// Forward), last-visited first. Deflection always reads the orientation
// the cell had when the walk began, even if the path crosses it twice.
//
// Walk applies the rotation; Trace and Exits leave the field untouched.
//
// Complexity: O(N²) per walk. A ray never enters the same cell from the
// same side twice, so a walk makes at most 4N²+1 steps.
package traverse
