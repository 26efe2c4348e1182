package engine

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

const (
	blockLength = 128 // 64-bit words per block
	blockSize   = 8 * blockLength
	syncPoints  = 4
)

type block [blockLength]uint64

// deriveKey is the portable RFC 9106 computation. Inputs must already have
// passed validate.
func deriveKey(p Params, password, salt, secret, ad []byte, keyLen uint32) []byte {
	h0 := initHash(p, password, salt, secret, ad, keyLen)
	defer clear(h0[:])

	memory := p.MemorySize / (syncPoints * p.Lanes) * (syncPoints * p.Lanes)
	if memory < 2*syncPoints*p.Lanes {
		memory = 2 * syncPoints * p.Lanes
	}

	B := initBlocks(&h0, memory, p.Lanes)
	defer clear(B)

	processBlocks(B, p, memory)
	return extractKey(B, memory, p.Lanes, keyLen)
}

// initHash computes H0 over the parameters and every input, each input
// prefixed with its little-endian length. The last 8 bytes are left for the
// block and lane counters used by initBlocks.
func initHash(p Params, password, salt, secret, ad []byte, keyLen uint32) [blake2b.Size + 8]byte {
	var (
		h0     [blake2b.Size + 8]byte
		params [24]byte
		length [4]byte
	)

	b2, _ := blake2b.New512(nil)
	binary.LittleEndian.PutUint32(params[0:4], p.Lanes)
	binary.LittleEndian.PutUint32(params[4:8], keyLen)
	binary.LittleEndian.PutUint32(params[8:12], p.MemorySize)
	binary.LittleEndian.PutUint32(params[12:16], p.Iterations)
	binary.LittleEndian.PutUint32(params[16:20], uint32(p.Version))
	binary.LittleEndian.PutUint32(params[20:24], uint32(p.Variant))
	b2.Write(params[:])
	for _, in := range [][]byte{password, salt, secret, ad} {
		binary.LittleEndian.PutUint32(length[:], uint32(len(in)))
		b2.Write(length[:])
		b2.Write(in)
	}
	b2.Sum(h0[:0])
	return h0
}

// initBlocks allocates the memory matrix and fills the first two blocks of
// every lane from H0.
func initBlocks(h0 *[blake2b.Size + 8]byte, memory, lanes uint32) []block {
	var buf [blockSize]byte
	defer clear(buf[:])

	B := make([]block, memory)
	for lane := uint32(0); lane < lanes; lane++ {
		j := lane * (memory / lanes)
		binary.LittleEndian.PutUint32(h0[blake2b.Size+4:], lane)
		for i := uint32(0); i < 2; i++ {
			binary.LittleEndian.PutUint32(h0[blake2b.Size:], i)
			blake2bLong(buf[:], h0[:])
			for k := range B[j+i] {
				B[j+i][k] = binary.LittleEndian.Uint64(buf[k*8:])
			}
		}
	}
	return B
}

// processBlocks runs every pass. Within a slice the lanes are independent, so
// they are filled by up to p.Threads goroutines; slices are the
// synchronisation points.
func processBlocks(B []block, p Params, memory uint32) {
	lanes := p.Lanes
	laneLength := memory / lanes
	segmentLength := laneLength / syncPoints
	workers := min(p.Threads, lanes)

	fillSegment := func(pass, slice, lane uint32) {
		var addresses, in, zero block

		independent := p.Variant == Argon2i ||
			(p.Variant == Argon2id && pass == 0 && slice < syncPoints/2)
		if independent {
			in[0] = uint64(pass)
			in[1] = uint64(lane)
			in[2] = uint64(slice)
			in[3] = uint64(memory)
			in[4] = uint64(p.Iterations)
			in[5] = uint64(p.Variant)
		}

		index := uint32(0)
		if pass == 0 && slice == 0 {
			index = 2 // the first two blocks come from initBlocks
			if independent {
				in[6]++
				processBlock(&addresses, &in, &zero)
				processBlock(&addresses, &addresses, &zero)
			}
		}

		offset := lane*laneLength + slice*segmentLength + index
		var random uint64
		for index < segmentLength {
			prev := offset - 1
			if index == 0 && slice == 0 {
				prev += laneLength // wrap to the last block of the lane
			}
			if independent {
				if index%blockLength == 0 {
					in[6]++
					processBlock(&addresses, &in, &zero)
					processBlock(&addresses, &addresses, &zero)
				}
				random = addresses[index%blockLength]
			} else {
				random = B[prev][0]
			}

			ref := indexAlpha(random, laneLength, segmentLength, lanes, pass, slice, lane, index)
			if p.Version == Version13 && pass > 0 {
				processBlockXOR(&B[offset], &B[prev], &B[ref])
			} else {
				processBlock(&B[offset], &B[prev], &B[ref])
			}
			index, offset = index+1, offset+1
		}
	}

	for pass := uint32(0); pass < p.Iterations; pass++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			if workers == 1 {
				for lane := uint32(0); lane < lanes; lane++ {
					fillSegment(pass, slice, lane)
				}
				continue
			}

			var g errgroup.Group
			g.SetLimit(int(workers))
			for lane := uint32(0); lane < lanes; lane++ {
				g.Go(func() error {
					fillSegment(pass, slice, lane)
					return nil
				})
			}
			_ = g.Wait()
		}
	}
}

// extractKey folds the last block of every lane together and stretches the
// result to keyLen bytes.
func extractKey(B []block, memory, lanes, keyLen uint32) []byte {
	laneLength := memory / lanes
	for lane := uint32(0); lane < lanes-1; lane++ {
		for i, v := range B[lane*laneLength+laneLength-1] {
			B[memory-1][i] ^= v
		}
	}

	var buf [blockSize]byte
	defer clear(buf[:])
	for i, v := range B[memory-1] {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	key := make([]byte, keyLen)
	blake2bLong(key, buf[:])
	return key
}

// indexAlpha maps a pseudo-random value to the absolute index of the
// reference block, restricted to the blocks that are already final.
func indexAlpha(random uint64, laneLength, segmentLength, lanes, pass, slice, lane, index uint32) uint32 {
	refLane := uint32(random>>32) % lanes
	if pass == 0 && slice == 0 {
		refLane = lane
	}

	m, s := 3*segmentLength, ((slice+1)%syncPoints)*segmentLength
	if lane == refLane {
		m += index
	}
	if pass == 0 {
		m, s = slice*segmentLength, 0
		if slice == 0 || lane == refLane {
			m += index
		}
	}
	if index == 0 || lane == refLane {
		m--
	}
	return phi(random, uint64(m), uint64(s), refLane, laneLength)
}

func phi(random, m, s uint64, lane, laneLength uint32) uint32 {
	p := random & 0xFFFFFFFF
	p = (p * p) >> 32
	p = (p * m) >> 32
	return lane*laneLength + uint32((s+m-(p+1))%uint64(laneLength))
}
