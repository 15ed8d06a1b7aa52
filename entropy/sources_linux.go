package entropy

import (
	"errors"

	"golang.org/x/sys/unix"
)

// platformSources returns the Linux sources: getrandom(2) first, then
// the urandom device.
func platformSources() []Source {
	return []Source{
		{Name: "getrandom", Fill: fillGetrandom},
		{Name: "urandom", Fill: fillFromDevice("/dev/urandom")},
	}
}

func fillGetrandom(b []byte) error {
	retries := 0
	for len(b) > 0 {
		n, err := unix.Getrandom(b, 0)
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
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
