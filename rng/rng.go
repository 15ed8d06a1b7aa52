package rng

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aead/serpent"
	"github.com/seehuhn/fortuna"
	"golang.org/x/crypto/sha3"

	"github.com/safing/drng/entropy"
	"github.com/safing/drng/mgr"
	"github.com/safing/drng/prng"
)

// Supported backends and block ciphers.
const (
	BackendChaCha20 = "chacha20"
	BackendFortuna  = "fortuna"

	CipherAES     = "aes"
	CipherSerpent = "serpent"
)

// Config configures a Service. The zero value selects the ChaCha20
// backend.
type Config struct {
	// Backend selects the CSPRNG: "chacha20" (default) or "fortuna".
	Backend string

	// Cipher selects the block cipher of the fortuna backend: "aes"
	// (default) or "serpent". Ignored by other backends.
	Cipher string
}

// generator is the reseedable CSPRNG behind a Service.
type generator interface {
	Reseed(seed []byte)
	PseudoRandomData(n uint) []byte
}

// Service is a shared source of randomness that is continuously fed
// with entropy and reseeds itself. All methods are safe for concurrent
// use. It must be started with Start before serving bytes.
type Service struct {
	mgr    *mgr.Manager
	config Config

	lock      sync.Mutex
	gen       generator
	ready     bool
	bytesRead uint64
	lastFeed  time.Time

	feed chan []byte
}

// New returns a new, unstarted Service.
func New(config Config) (*Service, error) {
	gen, err := newGenerator(config)
	if err != nil {
		return nil, err
	}

	return &Service{
		mgr:    mgr.New("rng"),
		config: config,
		gen:    gen,
		feed:   make(chan []byte),
	}, nil
}

func newGenerator(config Config) (generator, error) {
	switch config.Backend {
	case "", BackendChaCha20:
		return &chachaGenerator{}, nil

	case BackendFortuna:
		newCipher, err := cipherFactory(config.Cipher)
		if err != nil {
			return nil, err
		}
		gen := fortuna.NewGenerator(newCipher)
		if gen == nil {
			return nil, errors.New("failed to initialize fortuna")
		}
		return gen, nil

	default:
		return nil, fmt.Errorf("unknown or unsupported rng backend: %s", config.Backend)
	}
}

func cipherFactory(name string) (func(key []byte) (cipher.Block, error), error) {
	switch name {
	case "", CipherAES:
		return aes.NewCipher, nil
	case CipherSerpent:
		return serpent.NewCipher, nil
	default:
		return nil, fmt.Errorf("unknown or unsupported cipher: %s", name)
	}
}

// Start seeds the service from the platform entropy sources and starts
// the entropy feeders. If no entropy source is available, Start fails
// and the service must not be used.
func (s *Service) Start() error {
	seed, err := entropy.Seed(minFeedEntropy / 8)
	if err != nil {
		return fmt.Errorf("failed to seed rng: %w", err)
	}

	s.lock.Lock()
	s.gen.Reseed(seed)
	s.ready = true
	s.lastFeed = time.Now()
	s.lock.Unlock()

	// continuous random sources
	s.mgr.Go("os entropy feeder", s.osFeeder)
	s.mgr.Go("tick entropy feeder", s.tickFeeder)

	// full feeder
	s.mgr.Go("full feeder", s.fullFeeder)

	return nil
}

// Stop stops the entropy feeders and waits for them to finish.
func (s *Service) Stop() error {
	s.mgr.Cancel()
	if !s.mgr.WaitForWorkers(10 * time.Second) {
		return errors.New("rng workers did not finish in time")
	}
	return nil
}

// chachaGenerator adapts the deterministic prng.Generator to the
// reseedable generator interface. Reseeding carries 32 bytes of the
// previous stream into the new SHAKE-256 expansion, so state is never
// thrown away.
type chachaGenerator struct {
	gen *prng.Generator
}

func (c *chachaGenerator) Reseed(seed []byte) {
	expander := sha3.NewShake256()
	if c.gen != nil {
		var carry [32]byte
		c.gen.GetBytes(carry[:])
		_, _ = expander.Write(carry[:])
	}
	_, _ = expander.Write(seed)

	gen, err := prng.Init(expander, prng.KindChaCha20)
	if err != nil {
		// The SHAKE expander cannot run dry.
		panic(err)
	}
	c.gen = gen
}

func (c *chachaGenerator) PseudoRandomData(n uint) []byte {
	return c.gen.Bytes(int(n))
}
