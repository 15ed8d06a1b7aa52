//go:build unix && !linux

package entropy

// platformSources returns the random device as the only platform
// source on non-Linux Unixes.
func platformSources() []Source {
	return []Source{
		{Name: "urandom", Fill: fillFromDevice("/dev/urandom")},
	}
}
