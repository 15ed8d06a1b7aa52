// Package entropy acquires unpredictable seed material from the
// platform.
//
// Sources are tried in a fixed priority order until one delivers the
// full requested amount. The set of sources is resolved at startup per
// platform and can be overridden, e.g. to add an RNG instruction of a
// hardware-isolated execution environment or to inject deterministic
// sources in tests.
package entropy

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// ErrUnavailable is returned when no entropy source could supply the
// requested bytes. Callers must treat this as fatal and must not
// proceed with an unseeded generator.
var ErrUnavailable = errors.New("no entropy source available")

// maxTransientRetries bounds retries of transient failures (EINTR,
// partial reads) within a single source before it is abandoned.
const maxTransientRetries = 64

// Source is a platform service capable of supplying unpredictable seed
// bytes. Fill must fill the whole slice or return an error; a partial
// fill must never be reported as success.
type Source struct {
	Name string
	Fill func(b []byte) error
}

var (
	sourcesLock sync.Mutex
	sources     []Source
	configured  bool
)

// Sources returns the active entropy sources in priority order.
func Sources() []Source {
	sourcesLock.Lock()
	defer sourcesLock.Unlock()

	active := activeLocked()
	cp := make([]Source, len(active))
	copy(cp, active)
	return cp
}

// SetSources replaces the active entropy sources. Passing none reverts
// to the platform defaults.
func SetSources(srcs ...Source) {
	sourcesLock.Lock()
	defer sourcesLock.Unlock()

	sources = srcs
	configured = len(srcs) > 0
}

func activeLocked() []Source {
	if configured {
		return sources
	}
	return defaultSources()
}

// defaultSources returns the platform sources followed by the Go
// runtime CSPRNG as the last resort.
func defaultSources() []Source {
	return append(platformSources(), Source{
		Name: "go-runtime",
		Fill: fillFromReader(rand.Reader),
	})
}

// Seed acquires n bytes of seed material, trying every active source in
// priority order until one fully succeeds. It never returns fewer bytes
// than requested: if all sources fail, it reports ErrUnavailable with
// the per-source failures attached. A request for zero bytes trivially
// succeeds without touching any source.
func Seed(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid seed length: %d", n)
	}
	if n == 0 {
		return []byte{}, nil
	}

	b := make([]byte, n)
	var failures *multierror.Error
	for _, src := range Sources() {
		if err := src.Fill(b); err != nil {
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", src.Name, err))
			continue
		}
		return b, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnavailable, failures.ErrorOrNil())
}

// fillFromReader adapts an io.Reader to the Source fill contract.
func fillFromReader(r io.Reader) func(b []byte) error {
	return func(b []byte) error {
		if _, err := io.ReadFull(r, b); err != nil {
			return err
		}
		return nil
	}
}
