// Package wire provides low-level encoding primitives shared by the bit
// reader and writer: the width mask table, word packing and the base-128
// varint rules of the replay wire format.
package wire

// Maximum number of 7-bit groups for a varint-encoded uint64.
// ceil(64/7) = 10.
const MaxVarintLen64 = 10

// Maximum number of 7-bit groups for a varint-encoded uint32.
// ceil(32/7) = 5.
const MaxVarintLen32 = 5

// VarintShiftCap returns the shift at which a varint capped at maxBits stops
// reading groups: maxBits rounded up to a multiple of 7.
//
// A reader stops when a group has no continuation bit or when the shift
// reaches this cap, so a stream with every continuation bit set still
// terminates after VarintGroups(maxBits) groups.
func VarintShiftCap(maxBits int) int {
	return ((maxBits + 6) / 7) * 7
}

// VarintGroups returns the maximum number of 8-bit groups consumed by a varint
// capped at maxBits.
func VarintGroups(maxBits int) int {
	return VarintShiftCap(maxBits) / 7
}

// AppendUvarint appends the varint encoding of v to buf and returns the extended buffer.
//
// The encoding uses 7 bits per byte, with the MSB as a continuation flag.
// Bytes are ordered from least significant to most significant (little-endian varint).
//
// Example encodings:
//   - 0 → [0x00]
//   - 1 → [0x01]
//   - 127 → [0x7f]
//   - 128 → [0x80, 0x01]
//   - 300 → [0xac, 0x02]
func AppendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// AppendSvarint appends the zigzag-encoded varint of v to buf and returns the extended buffer.
func AppendSvarint(buf []byte, v int64) []byte {
	return AppendUvarint(buf, ZigZag(v))
}

// ZigZag maps signed integers to unsigned integers so that numbers with
// small absolute values have small varint encodings:
//
//	0 → 0, -1 → 1, 1 → 2, -2 → 3, 2 → 4, ...
func ZigZag(v int64) uint64 {
	// The arithmetic right shift (v >> 63) produces all 1s for negative, all 0s for positive.
	return uint64(v<<1) ^ uint64(v>>63)
}

// UnZigZag reverses ZigZag: (uv >> 1) ^ -(uv & 1).
func UnZigZag(uv uint64) int64 {
	return int64(uv>>1) ^ -int64(uv&1)
}
