// Package keygen produces random mirror-field key definitions.
//
// A definition has the layout bank.Parse expects: K×N² mirror symbols
// followed by K×4N perimeter bytes. Mirrors are drawn uniformly from the
// four orientations. Each field's perimeter is an independent random
// selection of 4N distinct bytes from the alphabet, always including the
// required bytes.
//
// Determinism:
//   - WithSeed(s) with s != 0 yields the same definition on every platform.
//   - Without a seed, the generator is seeded from crypto/rand.
//
// Concurrency: a Generator is not goroutine-safe.
package keygen

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/mirrorfield/bank"
	"github.com/katalvlaran/mirrorfield/field"
)

// Sentinel errors for key generation.
var (
	// ErrInvalidSize indicates N or K out of range.
	ErrInvalidSize = errors.New("keygen: invalid size")
	// ErrAlphabetTooSmall indicates fewer distinct bytes than 4N slots.
	ErrAlphabetTooSmall = errors.New("keygen: alphabet smaller than perimeter")
	// ErrRequiredNotInAlphabet indicates a required byte missing from the alphabet.
	ErrRequiredNotInAlphabet = errors.New("keygen: required byte not in alphabet")
)

// Base64Alphabet is the standard base64 symbol set. A perimeter holding
// all of it can encrypt base64-framed streams.
const Base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var mirrorSymbols = [...]byte{' ', '/', '\\', '-'}

// Option configures a Generator.
type Option func(*Generator)

// Generator holds the parameters of key generation.
type Generator struct {
	size, count int
	seed        int64
	alphabet    []byte
	required    []byte
}

// WithSeed makes generation deterministic. Zero means "seed from crypto/rand".
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithAlphabet restricts perimeter values to the distinct bytes of a.
func WithAlphabet(a []byte) Option {
	return func(g *Generator) { g.alphabet = dedupe(a) }
}

// WithRequired forces every field's perimeter to contain each byte of r.
func WithRequired(r []byte) Option {
	return func(g *Generator) { g.required = dedupe(r) }
}

// New validates the parameters and returns a Generator.
func New(size, count int, opts ...Option) (*Generator, error) {
	g := &Generator{size: size, count: count, alphabet: allBytes()}
	for _, opt := range opts {
		opt(g)
	}
	if size < 1 || size > field.MaxSize || count < 1 {
		return nil, fmt.Errorf("%w: size=%d count=%d", ErrInvalidSize, size, count)
	}
	slots := 4 * size
	if len(g.alphabet) < slots {
		return nil, fmt.Errorf("%w: %d < %d", ErrAlphabetTooSmall, len(g.alphabet), slots)
	}
	if len(g.required) > slots {
		return nil, fmt.Errorf("%w: %d required bytes for %d slots", ErrAlphabetTooSmall, len(g.required), slots)
	}
	in := make(map[byte]bool, len(g.alphabet))
	for _, b := range g.alphabet {
		in[b] = true
	}
	for _, b := range g.required {
		if !in[b] {
			return nil, fmt.Errorf("%w: 0x%02x", ErrRequiredNotInAlphabet, b)
		}
	}
	return g, nil
}

// Definition draws one key definition.
func (g *Generator) Definition() ([]byte, error) {
	rng, err := g.rng()
	if err != nil {
		return nil, err
	}
	n, k := g.size, g.count
	out := make([]byte, 0, k*(n*n+4*n))
	for i := 0; i < k*n*n; i++ {
		out = append(out, mirrorSymbols[rng.Intn(len(mirrorSymbols))])
	}
	for i := 0; i < k; i++ {
		out = append(out, g.perimeter(rng)...)
	}
	return out, nil
}

// Bank draws a definition and loads it.
func (g *Generator) Bank() (*bank.Bank, error) {
	def, err := g.Definition()
	if err != nil {
		return nil, err
	}
	return bank.Parse(def, g.size, g.count)
}

// perimeter returns 4N distinct bytes: all required ones plus a random
// selection of the rest, shuffled.
func (g *Generator) perimeter(rng *rand.Rand) []byte {
	slots := 4 * g.size
	req := make(map[byte]bool, len(g.required))
	out := make([]byte, 0, slots)
	for _, b := range g.required {
		req[b] = true
		out = append(out, b)
	}
	pool := make([]byte, 0, len(g.alphabet))
	for _, b := range g.alphabet {
		if !req[b] {
			pool = append(pool, b)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	out = append(out, pool[:slots-len(out)]...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	return out
}

func (g *Generator) rng() (*rand.Rand, error) {
	seed := g.seed
	if seed == 0 {
		var buf [8]byte
		if _, err := crand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("keygen: seed from crypto/rand: %w", err)
		}
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return rand.New(rand.NewSource(mixSeed(seed))), nil
}

// mixSeed applies a SplitMix64 finalizer so nearby seeds give unrelated
// streams.
func mixSeed(seed int64) int64 {
	x := uint64(seed) + 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

func allBytes() []byte {
	out := make([]byte, 256)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

func dedupe(in []byte) []byte {
	var seen [256]bool
	out := make([]byte, 0, len(in))
	for _, b := range in {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}
