package engine

import (
	"encoding/binary"
	"hash"
	"math/bits"

	"golang.org/x/crypto/blake2b"
)

// rows and columns list the word indices fed to each application of the
// BLAKE2b round inside the compression function G.
var rows, columns = func() (r, c [8][16]int) {
	for i := 0; i < 8; i++ {
		for k := 0; k < 16; k++ {
			r[i][k] = 16*i + k
		}
		for k := 0; k < 8; k++ {
			c[i][2*k] = 16*k + 2*i
			c[i][2*k+1] = 16*k + 2*i + 1
		}
	}
	return r, c
}()

// processBlock sets out = G(in1, in2).
func processBlock(out, in1, in2 *block) {
	compress(out, in1, in2, false)
}

// processBlockXOR sets out ^= G(in1, in2), the version 0x13 rule for every
// pass after the first.
func processBlockXOR(out, in1, in2 *block) {
	compress(out, in1, in2, true)
}

func compress(out, in1, in2 *block, xor bool) {
	var t block
	for i := range t {
		t[i] = in1[i] ^ in2[i]
	}
	for i := range rows {
		round(&t, &rows[i])
	}
	for i := range columns {
		round(&t, &columns[i])
	}
	if xor {
		for i := range t {
			out[i] ^= in1[i] ^ in2[i] ^ t[i]
		}
	} else {
		for i := range t {
			out[i] = in1[i] ^ in2[i] ^ t[i]
		}
	}
}

// round applies the BLAKE2b round (columns, then diagonals) to the 16 words
// of t selected by idx, using the BlaMka multiplication.
func round(t *block, idx *[16]int) {
	var v [16]uint64
	for k, i := range idx {
		v[k] = t[i]
	}

	v[0], v[4], v[8], v[12] = mix(v[0], v[4], v[8], v[12])
	v[1], v[5], v[9], v[13] = mix(v[1], v[5], v[9], v[13])
	v[2], v[6], v[10], v[14] = mix(v[2], v[6], v[10], v[14])
	v[3], v[7], v[11], v[15] = mix(v[3], v[7], v[11], v[15])

	v[0], v[5], v[10], v[15] = mix(v[0], v[5], v[10], v[15])
	v[1], v[6], v[11], v[12] = mix(v[1], v[6], v[11], v[12])
	v[2], v[7], v[8], v[13] = mix(v[2], v[7], v[8], v[13])
	v[3], v[4], v[9], v[14] = mix(v[3], v[4], v[9], v[14])

	for k, i := range idx {
		t[i] = v[k]
	}
}

func mix(a, b, c, d uint64) (uint64, uint64, uint64, uint64) {
	a = blaMka(a, b)
	d = bits.RotateLeft64(d^a, -32)
	c = blaMka(c, d)
	b = bits.RotateLeft64(b^c, -24)
	a = blaMka(a, b)
	d = bits.RotateLeft64(d^a, -16)
	c = blaMka(c, d)
	b = bits.RotateLeft64(b^c, -63)
	return a, b, c, d
}

func blaMka(x, y uint64) uint64 {
	return x + y + 2*uint64(uint32(x))*uint64(uint32(y))
}

// blake2bLong is the variable-length hash H' of RFC 9106 section 3.3.
func blake2bLong(out []byte, in []byte) {
	var b2 hash.Hash
	if n := len(out); n < blake2b.Size {
		b2, _ = blake2b.New(n, nil)
	} else {
		b2, _ = blake2b.New512(nil)
	}

	var buffer [blake2b.Size]byte
	binary.LittleEndian.PutUint32(buffer[:4], uint32(len(out)))
	b2.Write(buffer[:4])
	b2.Write(in)

	if len(out) <= blake2b.Size {
		b2.Sum(out[:0])
		return
	}

	outLen := len(out)
	b2.Sum(buffer[:0])
	b2.Reset()
	copy(out, buffer[:32])
	out = out[32:]
	for len(out) > blake2b.Size {
		b2.Write(buffer[:])
		b2.Sum(buffer[:0])
		copy(out, buffer[:32])
		out = out[32:]
		b2.Reset()
	}

	if outLen%blake2b.Size > 0 {
		r := ((outLen + 31) / 32) - 2
		b2, _ = blake2b.New(outLen-32*r, nil)
	}
	b2.Write(buffer[:])
	b2.Sum(out[:0])
}
