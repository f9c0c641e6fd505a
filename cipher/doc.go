// Package cipher drives the mirror-field substitution cipher one byte at a
// time.
//
// For every byte a Session:
//
//  1. picks field m of its bank,
//  2. finds the slot holding the byte and walks a ray from it
//     (traverse.Walk rotates the mirrors on the path),
//  3. rolls the perimeter: the larger of the entry and exit values is
//     swapped into roll cursor g1, the smaller into g2,
//  4. outputs the exit value, or the input value itself when slot
//     (in+exit) mod 4N now holds exactly (in+exit) mod 4N,
//  5. advances m round-robin. g1 and g2 advance once per K bytes.
//
// The transform is its own inverse: a second Session started from the same
// key decrypts what the first one encrypted. A Session owns its bank and
// must not be shared between goroutines or streams; use bank.Clone or load
// the key again for an independent stream.
package cipher
