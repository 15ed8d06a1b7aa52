package prng

import (
	"encoding/binary"
	"math/bits"
)

// blockSize is the size of one ChaCha20 keystream block.
const blockSize = 64

// chachaConstants is the standard "expand 32-byte k" constant.
var chachaConstants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// refillChaCha20 produces bufferSize bytes of ChaCha20 keystream.
//
// For every 64 byte block, the 16-word working state is the four
// constants, the eight key words and the four nonce words, with the low
// and high halves of the 64-bit block counter XORed into the last two
// nonce words. After 20 rounds the original input words are added back
// (the feed-forward required for the stream to be one-way), the words
// are serialized little-endian and the counter advances by one. The
// counter wraps modulo 2^64; wraparound is not an error.
func (g *Generator) refillChaCha20() {
	cc := g.counter

	for off := 0; off < len(g.buf); off += blockSize {
		var in [16]uint32
		copy(in[0:4], chachaConstants[:])
		copy(in[4:12], g.key[:])
		copy(in[12:16], g.nonce[:])
		in[14] ^= uint32(cc)
		in[15] ^= uint32(cc >> 32)

		x := in
		for i := 0; i < 10; i++ {
			// column rounds
			quarterRound(&x, 0, 4, 8, 12)
			quarterRound(&x, 1, 5, 9, 13)
			quarterRound(&x, 2, 6, 10, 14)
			quarterRound(&x, 3, 7, 11, 15)
			// diagonal rounds
			quarterRound(&x, 0, 5, 10, 15)
			quarterRound(&x, 1, 6, 11, 12)
			quarterRound(&x, 2, 7, 8, 13)
			quarterRound(&x, 3, 4, 9, 14)
		}

		for i, w := range in {
			x[i] += w
		}
		for i, w := range x {
			binary.LittleEndian.PutUint32(g.buf[off+i*4:], w)
		}

		cc++
	}

	g.counter = cc
}

func quarterRound(x *[16]uint32, a, b, c, d int) {
	x[a] += x[b]
	x[d] = bits.RotateLeft32(x[d]^x[a], 16)
	x[c] += x[d]
	x[b] = bits.RotateLeft32(x[b]^x[c], 12)
	x[a] += x[b]
	x[d] = bits.RotateLeft32(x[d]^x[a], 8)
	x[c] += x[d]
	x[b] = bits.RotateLeft32(x[b]^x[c], 7)
}
