package prng

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/safing/drng/entropy"
)

// Kind selects the keystream algorithm of a Generator.
type Kind uint8

// Supported generator kinds.
const (
	// KindDefault resolves to the default keystream algorithm,
	// currently ChaCha20.
	KindDefault Kind = iota
	KindChaCha20
)

// ErrUnsupportedKind is returned when an unknown generator kind is
// requested at initialization.
var ErrUnsupportedKind = errors.New("unsupported generator kind")

const (
	// SeedSize is the amount of entropy drawn for a freshly seeded
	// generator.
	SeedSize = 48

	// stateSize is the size of the expanded generator state:
	// 32 byte key, 16 byte nonce, 8 byte block counter.
	stateSize = 56

	// bufferSize is the size of the output buffer. Must be a multiple
	// of the 64 byte keystream block size.
	bufferSize = 512
)

// Generator is a deterministic pseudorandom byte stream. It must be
// created with Init, New or NewFromSeed and used by a single owner.
type Generator struct {
	kind Kind

	key     [8]uint32
	nonce   [4]uint32
	counter uint64

	buf [bufferSize]byte
	ptr int
}

// Init creates a Generator from an already seeded extendable-output
// hash. It draws exactly 56 bytes from the expander, interprets them as
// 14 little-endian 32-bit words forming key, nonce and block counter,
// and produces the first buffer of output so the instance is ready to
// serve bytes.
//
// The expander is only read from, never retained. A kind of KindDefault
// selects ChaCha20; unknown kinds fail with ErrUnsupportedKind.
func Init(expander io.Reader, kind Kind) (*Generator, error) {
	if kind == KindDefault {
		kind = KindChaCha20
	}

	switch kind {
	case KindChaCha20:
		var raw [stateSize]byte
		if _, err := io.ReadFull(expander, raw[:]); err != nil {
			return nil, fmt.Errorf("failed to draw generator state from expander: %w", err)
		}

		g := &Generator{kind: kind}
		g.loadState(raw)
		g.refill()
		return g, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, kind)
	}
}

// NewFromSeed creates a Generator by expanding the given seed with
// SHAKE-256. Identical seeds yield identical byte streams on every
// platform.
func NewFromSeed(seed []byte, kind Kind) (*Generator, error) {
	expander := sha3.NewShake256()
	_, _ = expander.Write(seed)
	return Init(expander, kind)
}

// New creates a Generator seeded from the platform entropy sources.
// It fails with entropy.ErrUnavailable if no source can supply seed
// material; callers must not fall back to a weaker source in that case.
func New(kind Kind) (*Generator, error) {
	seed, err := entropy.Seed(SeedSize)
	if err != nil {
		return nil, err
	}
	return NewFromSeed(seed, kind)
}

// loadState decodes the canonical little-endian state layout. This is
// the only place where state bytes are interpreted, so output stays
// identical on big-endian hosts.
func (g *Generator) loadState(raw [stateSize]byte) {
	for i := range g.key {
		g.key[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	for i := range g.nonce {
		g.nonce[i] = binary.LittleEndian.Uint32(raw[32+i*4:])
	}
	g.counter = binary.LittleEndian.Uint64(raw[48:])
}

// refill produces a fresh output buffer and resets the read cursor.
func (g *Generator) refill() {
	switch g.kind {
	case KindChaCha20:
		g.refillChaCha20()
	default:
		// Only reachable through use of an uninitialized zero value.
		panic("prng: refill on invalid generator state")
	}
	g.ptr = 0
}

// GetBytes fills dst with pseudorandom bytes. It cannot fail on an
// initialized Generator: the buffer is refilled transparently as it is
// consumed. An empty dst is a no-op.
func (g *Generator) GetBytes(dst []byte) {
	for len(dst) > 0 {
		if g.ptr == len(g.buf) {
			g.refill()
		}
		n := copy(dst, g.buf[g.ptr:])
		g.ptr += n
		dst = dst[n:]
	}
}

// Read implements io.Reader. It always fills p completely and never
// returns an error.
func (g *Generator) Read(p []byte) (n int, err error) {
	g.GetBytes(p)
	return len(p), nil
}

// Bytes returns n fresh pseudorandom bytes. A non-positive n yields
// nil; like GetBytes, extraction itself cannot fail.
func (g *Generator) Bytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	b := make([]byte, n)
	g.GetBytes(b)
	return b
}
