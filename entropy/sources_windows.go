package entropy

import (
	"golang.org/x/sys/windows"
)

// platformSources returns the Windows cryptographic RNG service.
func platformSources() []Source {
	return []Source{
		{Name: "rtlgenrandom", Fill: fillRtlGenRandom},
	}
}

func fillRtlGenRandom(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return windows.RtlGenRandom(b)
}
