// Package prng implements a seeded, buffered, deterministic CSPRNG.
//
// The generator expands a seed via SHAKE-256 into a ChaCha20 key, nonce
// and block counter, and stretches that state into an unbounded byte
// stream. Output is byte-identical across platforms regardless of host
// byte order, which makes it suitable for reproducible test vectors and
// for deterministic sampling in randomized signature schemes.
//
// A Generator is owned by exactly one caller and is not safe for
// concurrent use. For a shared, automatically reseeded source of
// randomness, use the rng package instead.
package prng
