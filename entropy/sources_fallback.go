//go:build !unix && !windows

package entropy

// platformSources returns no platform sources; only the Go runtime
// CSPRNG remains available.
func platformSources() []Source {
	return nil
}
