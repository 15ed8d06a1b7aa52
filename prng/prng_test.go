package prng

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testState returns a fresh generator initialized from the given raw
// 56-byte state.
func testState(t *testing.T, raw []byte) *Generator {
	t.Helper()
	require.Len(t, raw, stateSize)

	g, err := Init(bytes.NewReader(raw), KindChaCha20)
	require.NoError(t, err)
	return g
}

// patternState is a fixed non-trivial state used across tests: bytes
// 0x00..0x37.
func patternState() []byte {
	raw := make([]byte, stateSize)
	for i := range raw {
		raw[i] = byte(i)
	}
	return raw
}

func TestZeroStateVector(t *testing.T) {
	t.Parallel()

	// With an all-zero state the first block must equal the well-known
	// ChaCha20 keystream for a zero key, zero nonce and zero counter.
	wantFirstBlock := []byte{
		0x76, 0xb8, 0xe0, 0xad, 0xa0, 0xf1, 0x3d, 0x90,
		0x40, 0x5d, 0x6a, 0xe5, 0x53, 0x86, 0xbd, 0x28,
		0xbd, 0xd2, 0x19, 0xb8, 0xa0, 0x8d, 0xed, 0x1a,
		0xa8, 0x36, 0xef, 0xcc, 0x8b, 0x77, 0x0d, 0xc7,
		0xda, 0x41, 0x59, 0x7c, 0x51, 0x57, 0x48, 0x8d,
		0x77, 0x24, 0xe0, 0x3f, 0xb8, 0xd8, 0x4a, 0x37,
		0x6a, 0x43, 0xb8, 0xf4, 0x15, 0x18, 0xa1, 0x1c,
		0xc3, 0x87, 0xb6, 0x69, 0xb2, 0xee, 0x65, 0x86,
	}

	g := testState(t, make([]byte, stateSize))
	assert.Equal(t, wantFirstBlock, g.Bytes(blockSize))

	// Byte-identical on every run.
	g2 := testState(t, make([]byte, stateSize))
	assert.Equal(t, wantFirstBlock, g2.Bytes(blockSize))
}

func TestDeterminism(t *testing.T) {
	t.Parallel()

	g1 := testState(t, patternState())
	g2 := testState(t, patternState())
	assert.Equal(t, g1.Bytes(4096), g2.Bytes(4096))
}

func TestSeedExpansion(t *testing.T) {
	t.Parallel()

	seed := []byte("reproducible seed expansion")
	g1, err := NewFromSeed(seed, KindDefault)
	require.NoError(t, err)
	g2, err := NewFromSeed(seed, KindChaCha20)
	require.NoError(t, err)

	// KindDefault resolves to ChaCha20.
	assert.Equal(t, g1.Bytes(1024), g2.Bytes(1024))

	// A different seed yields a different stream.
	g3, err := NewFromSeed([]byte("another seed"), KindDefault)
	require.NoError(t, err)
	assert.NotEqual(t, g1.Bytes(64), g3.Bytes(64))
}

func TestCounterMonotonicity(t *testing.T) {
	t.Parallel()

	raw := patternState()
	// Set the counter to 5, little-endian.
	copy(raw[48:], []byte{5, 0, 0, 0, 0, 0, 0, 0})

	g := testState(t, raw)
	// Init performs one refill of 8 blocks.
	assert.Equal(t, uint64(13), g.counter)

	// Consuming the whole buffer does not refill by itself.
	g.GetBytes(make([]byte, bufferSize))
	assert.Equal(t, uint64(13), g.counter)

	// The next byte triggers exactly one refill.
	g.GetBytes(make([]byte, 1))
	assert.Equal(t, uint64(21), g.counter)

	// Ten more refills.
	g.GetBytes(make([]byte, 10*bufferSize))
	assert.Equal(t, uint64(101), g.counter)
}

func TestCounterWraparound(t *testing.T) {
	t.Parallel()

	raw := patternState()
	copy(raw[48:], []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})

	// Wrapping modulo 2^64 is in-spec, not an error.
	g := testState(t, raw)
	assert.Equal(t, uint64(7), g.counter)
}

func TestStreamingEquivalence(t *testing.T) {
	t.Parallel()

	const total = 10240
	seed := []byte("streaming equivalence")

	reference, err := NewFromSeed(seed, KindDefault)
	require.NoError(t, err)
	want := reference.Bytes(total)

	for _, chunkSizes := range [][]int{
		{1},
		{3, 7, 64},
		{bufferSize},
		{bufferSize + 1},
		{total},
	} {
		g, err := NewFromSeed(seed, KindDefault)
		require.NoError(t, err)

		var got []byte
		for len(got) < total {
			for _, n := range chunkSizes {
				if remaining := total - len(got); n > remaining {
					n = remaining
				}
				got = append(got, g.Bytes(n)...)
			}
		}
		assert.Equalf(t, want, got, "chunk sizes %v", chunkSizes)
	}
}

func TestBufferBoundary(t *testing.T) {
	t.Parallel()

	// A request straddling the buffer boundary must not skip,
	// duplicate or misalign bytes.
	reference := testState(t, patternState())
	want := reference.Bytes(2 * bufferSize)

	g := testState(t, patternState())
	counterBefore := g.counter

	part1 := g.Bytes(bufferSize - 1)
	assert.Equal(t, counterBefore, g.counter)

	// Straddles the boundary: 1 buffered byte plus 2 fresh ones.
	part2 := g.Bytes(3)
	assert.Equal(t, counterBefore+8, g.counter)

	part3 := g.Bytes(bufferSize - 2)
	assert.Equal(t, want, append(append(part1, part2...), part3...))
}

func TestZeroLengthNoOp(t *testing.T) {
	t.Parallel()

	g := testState(t, patternState())
	counter, ptr := g.counter, g.ptr

	g.GetBytes(nil)
	g.GetBytes([]byte{})
	n, err := g.Read(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.Equal(t, counter, g.counter)
	assert.Equal(t, ptr, g.ptr)

	// Negative lengths behave like zero.
	assert.Nil(t, g.Bytes(-5))
	assert.Equal(t, counter, g.counter)
	assert.Equal(t, ptr, g.ptr)
}

func TestInitFailures(t *testing.T) {
	t.Parallel()

	// Unknown kind: no partial state is produced and the expander is
	// not consumed.
	expander := bytes.NewReader(patternState())
	g, err := Init(expander, Kind(42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedKind))
	assert.Nil(t, g)
	assert.Equal(t, stateSize, expander.Len())

	// Expander running dry is an initialization error.
	g, err = Init(bytes.NewReader(make([]byte, 10)), KindChaCha20)
	require.Error(t, err)
	assert.Nil(t, g)
}

func TestInvalidRefillPanics(t *testing.T) {
	t.Parallel()

	var g Generator
	assert.Panics(t, func() {
		g.GetBytes(make([]byte, 1))
	})
}

func TestReadInterface(t *testing.T) {
	t.Parallel()

	g1 := testState(t, patternState())
	g2 := testState(t, patternState())

	b := make([]byte, 100)
	n, err := g1.Read(b)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, g2.Bytes(100), b)
}
