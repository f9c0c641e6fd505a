package bank

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint is a 32-byte keyed BLAKE3 digest identifying a key state.
type Fingerprint [32]byte

// fingerprintKey separates key fingerprints from any other BLAKE3 use.
// ASCII "mirrorfield.bank.fingerprint", zero-padded to 32 bytes.
var fingerprintKey = [32]byte{
	'm', 'i', 'r', 'r', 'o', 'r', 'f', 'i', 'e', 'l', 'd', '.', 'b', 'a', 'n', 'k',
	'.', 'f', 'i', 'n', 'g', 'e', 'r', 'p', 'r', 'i', 'n', 't', 0, 0, 0, 0,
}

// Fingerprint hashes N, K and the current definition. Two banks share a
// fingerprint when every field holds the same mirrors and slot values.
func (b *Bank) Fingerprint() Fingerprint {
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("bank: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(b.size))
	binary.BigEndian.PutUint32(header[4:], uint32(b.Count()))
	hasher.Write(header[:])
	hasher.Write(b.Definition())

	var fp Fingerprint
	copy(fp[:], hasher.Sum(nil))
	return fp
}

// String returns the full digest in hex.
func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// Short returns the first eight bytes in hex, for log lines.
func (f Fingerprint) Short() string { return hex.EncodeToString(f[:8]) }
