//go:build unix

package entropy

import (
	"errors"
	"os"
	"syscall"
)

// fillFromDevice reads from a secure random device such as
// /dev/urandom. Partial reads are continued and interrupted system
// calls are retried; any other I/O failure abandons the source.
func fillFromDevice(path string) func(b []byte) error {
	return func(b []byte) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		retries := 0
		for len(b) > 0 {
			n, err := f.Read(b)
			if err != nil {
				if errors.Is(err, syscall.EINTR) {
					retries++
					if retries > maxTransientRetries {
						return err
					}
					continue
				}
				return err
			}
			b = b[n:]
		}
		return nil
	}
}
