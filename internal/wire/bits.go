package wire

import "encoding/binary"

//go:generate go run ../../cmd/maskgen -o masks.go

// MaxBits is the widest single extraction supported by the bit reader.
const MaxBits = 64

// WordBits is the width of one storage word.
const WordBits = 64

// Mask returns a mask with the low n bits set. n must be in [0, MaxBits].
func Mask(n int) uint64 {
	return masks[n]
}

// WordCount returns the number of 64-bit words needed to hold n bytes.
func WordCount(n int) int {
	return (n + 7) >> 3
}

// PackWords packs data into little-endian 64-bit words, reusing dst when it
// has enough capacity. Bit 0 of data[0] becomes bit 0 of the first word.
// The final word is zero-padded when len(data) is not a multiple of 8.
func PackWords(dst []uint64, data []byte) []uint64 {
	n := WordCount(len(data))
	if cap(dst) < n {
		dst = make([]uint64, n)
	} else {
		dst = dst[:n]
	}

	full := len(data) >> 3
	for i := 0; i < full; i++ {
		dst[i] = binary.LittleEndian.Uint64(data[i<<3:])
	}

	if tail := data[full<<3:]; len(tail) > 0 {
		var w uint64
		for i, b := range tail {
			w |= uint64(b) << (8 * i)
		}
		dst[full] = w
	}
	return dst
}

// SignExtend interprets the low n bits of v as a two's complement number.
func SignExtend(v uint64, n int) int64 {
	if n == 0 {
		return 0
	}
	if v&(1<<(n-1)) == 0 {
		return int64(v)
	}
	return int64(v | masks[MaxBits-n]<<n)
}
