// Package rng provides a feedable, automatically reseeded CSPRNG
// service.
//
// The default backend is the deterministic ChaCha20 generator from the
// prng package, reseeded from gathered entropy; a fortuna backend
// (github.com/seehuhn/fortuna) with either AES or Serpent is also
// available.
//
// By default the service is fed by two sources:
//   - the platform entropy sources (see the entropy package), used for
//     the initial seed and periodic reseeds
//   - a really simple tick feeder which extracts entropy from the
//     internal go scheduler using goroutines and is meant to be used
//     under load.
//
// The service can also be fed with additional sources via Feeder.
package rng
