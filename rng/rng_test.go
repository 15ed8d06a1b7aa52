package rng

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestService(t *testing.T, config Config) *Service {
	t.Helper()

	s, err := New(config)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	t.Cleanup(func() {
		if err := s.Stop(); err != nil {
			t.Errorf("failed to stop service: %s", err)
		}
	})
	return s
}

func TestService(t *testing.T) {
	s := startTestService(t, Config{})

	b := make([]byte, 32)
	_, err := s.Read(b)
	require.NoError(t, err)

	_, err = s.Reader().Read(b)
	require.NoError(t, err)

	data, err := s.Bytes(32)
	require.NoError(t, err)
	assert.Len(t, data, 32)

	n, err := s.Number(100)
	require.NoError(t, err)
	assert.LessOrEqual(t, n, uint64(100))
}

func TestNumberEdges(t *testing.T) {
	s := startTestService(t, Config{})

	// Zero admits exactly one value and must not panic.
	n, err := s.Number(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	// The full range needs no rejection sampling.
	_, err = s.Number(math.MaxUint64)
	require.NoError(t, err)

	_, err = s.Number(1)
	require.NoError(t, err)
}

func TestBytesNegativeLength(t *testing.T) {
	s := startTestService(t, Config{})

	data, err := s.Bytes(-1)
	require.Error(t, err)
	assert.Nil(t, data)
}

func TestBackends(t *testing.T) {
	for _, config := range []Config{
		{Backend: BackendChaCha20},
		{Backend: BackendFortuna, Cipher: CipherAES},
		{Backend: BackendFortuna, Cipher: CipherSerpent},
	} {
		s := startTestService(t, config)
		data, err := s.Bytes(64)
		require.NoErrorf(t, err, "config %+v", config)
		assert.Lenf(t, data, 64, "config %+v", config)
	}
}

func TestUnsupportedConfig(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Backend: "mersenne"})
	require.Error(t, err)

	_, err = New(Config{Backend: BackendFortuna, Cipher: "rot13"})
	require.Error(t, err)
}

func TestNotReady(t *testing.T) {
	t.Parallel()

	// Reads must fail on an unstarted (unseeded) service.
	s, err := New(Config{})
	require.NoError(t, err)

	_, err = s.Bytes(16)
	require.Error(t, err)
	_, err = s.Read(make([]byte, 16))
	require.Error(t, err)
}

func TestChaChaGeneratorReseed(t *testing.T) {
	t.Parallel()

	seed := []byte("backend reseed test seed material")

	g1 := &chachaGenerator{}
	g1.Reseed(seed)
	g2 := &chachaGenerator{}
	g2.Reseed(seed)

	// Identically seeded fresh generators agree.
	assert.Equal(t, g1.PseudoRandomData(128), g2.PseudoRandomData(128))

	// Reseeding carries over previous state: the same reseed material
	// on generators with different histories diverges.
	g1.Reseed([]byte("more entropy"))
	g3 := &chachaGenerator{}
	g3.Reseed([]byte("more entropy"))
	assert.NotEqual(t, g1.PseudoRandomData(64), g3.PseudoRandomData(64))
}

func TestDefault(t *testing.T) {
	s1, err := Default()
	require.NoError(t, err)
	s2, err := Default()
	require.NoError(t, err)
	assert.Same(t, s1, s2)

	_, err = s1.Bytes(16)
	require.NoError(t, err)
}
