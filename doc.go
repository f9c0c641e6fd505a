// Package mirrorfield is a symmetric stream cipher built on grids of
// rotating mirrors.
//
// A key is a bank of K square fields. Each field is an N×N grid of cells
// holding a mirror ('/', '\', '-' or empty) surrounded by 4N perimeter
// slots that carry distinct byte values. To transform a byte, a ray enters
// the field at the slot holding it, bounces through the mirrors and leaves
// at another slot; that slot's value is the output. Every mirror the ray
// touched then rotates, and two perimeter values swap, so the key never
// encrypts the same byte the same way twice in a row.
//
// Running the ciphertext through a fresh copy of the same key restores the
// plaintext: one operation serves both directions.
//
// Packages:
//
//	field/     one grid: mirrors, perimeter, slot↔cell adjacency
//	traverse/  ray tracing with mirror rotation and step hooks
//	bank/      K fields, definition loader, BLAKE3 fingerprint
//	cipher/    the stream Session, perimeter rolls, CBOR snapshots
//	keygen/    random key definitions
//	visual/    terminal renderer for traversal steps
//
// Quick ASCII example (N=2, top slots A B, right C D, bottom E F, left G H):
//
//	      A  B
//	   G  /  \  C
//	   H  -     D
//	      E  F
//
// A ray for 'A' enters downward at (0,0), meets '/' and turns left into
// slot G.
//
//	go install github.com/katalvlaran/mirrorfield/cmd/mirrorcrypt@latest
package mirrorfield
