package rng

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"
)

const (
	reseedAfterSeconds = 600     // ten minutes
	reseedAfterBytes   = 1048576 // one megabyte
)

// checkEntropy reseeds the generator from the feed if too many bytes
// were read or too much time has passed since the last feed. Callers
// must hold the service lock.
func (s *Service) checkEntropy() (err error) {
	if !s.ready {
		return errors.New("rng is not ready yet")
	}
	if s.bytesRead > reseedAfterBytes ||
		int(time.Since(s.lastFeed).Seconds()) > reseedAfterSeconds {
		select {
		case r := <-s.feed:
			s.gen.Reseed(r)
			s.bytesRead = 0
			s.lastFeed = time.Now()
		case <-time.After(1 * time.Second):
			return errors.New("failed to get new entropy")
		}
	}
	return nil
}

// Read reads random bytes into the supplied byte slice.
func (s *Service) Read(b []byte) (n int, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.checkEntropy(); err != nil {
		return 0, err
	}

	s.bytesRead += uint64(len(b))
	return copy(b, s.gen.PseudoRandomData(uint(len(b)))), nil
}

// Bytes allocates a new byte slice of given length and fills it with
// random data.
func (s *Service) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid number of bytes: %d", n)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.checkEntropy(); err != nil {
		return nil, err
	}

	s.bytesRead += uint64(n)
	return s.gen.PseudoRandomData(uint(n)), nil
}

// Number returns a random number from 0 to (incl.) max.
func (s *Service) Number(max uint64) (uint64, error) {
	if max == 0 {
		return 0, nil
	}
	if max == math.MaxUint64 {
		// Every value is in range, no rejection sampling needed.
		randomBytes, err := s.Bytes(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(randomBytes), nil
	}

	secureLimit := math.MaxUint64 - (math.MaxUint64 % max)
	max++

	for {
		randomBytes, err := s.Bytes(8)
		if err != nil {
			return 0, err
		}

		candidate := binary.LittleEndian.Uint64(randomBytes)
		if candidate < secureLimit {
			return candidate % max, nil
		}
	}
}

// reader provides an io.Reader interface.
type reader struct {
	service *Service
}

// Reader returns an io.Reader that reads from the service.
func (s *Service) Reader() io.Reader {
	return reader{service: s}
}

// Read implements the io.Reader interface.
func (r reader) Read(b []byte) (n int, err error) {
	return r.service.Read(b)
}

var (
	defaultService *Service
	defaultOnce    sync.Once
	defaultErr     error
)

// Default returns a lazily started shared Service with the default
// configuration.
func Default() (*Service, error) {
	defaultOnce.Do(func() {
		s, err := New(Config{})
		if err != nil {
			defaultErr = err
			return
		}
		if err := s.Start(); err != nil {
			defaultErr = err
			return
		}
		defaultService = s
	})
	return defaultService, defaultErr
}
