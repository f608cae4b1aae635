package bitstream

import "github.com/blockberries/replaybits/internal/wire"

// ReadVarU reads a base-128 varint whose declared width is maxBits.
//
// Each 8-bit group contributes its low 7 bits, least significant group first.
// Reading stops at the first group without the continuation bit or once
// ceil(maxBits/7) groups have been read, whichever comes first, so a stream
// of continuation bits can never run away.
func (r *Reader) ReadVarU(maxBits int) uint64 {
	if maxBits < 1 || maxBits > wire.MaxBits {
		if r.err == nil {
			r.setErrorAt("varint", ErrInvalidBitCount, "width must be in [1, 64]")
		}
		return 0
	}
	m := wire.VarintShiftCap(maxBits)
	var v uint64
	for s := 0; ; {
		b := r.ReadUBits(8)
		if r.err != nil {
			return 0
		}
		v |= (b & 0x7f) << s
		s += 7
		if b&0x80 == 0 || s == m {
			return v
		}
	}
}

// ReadVarS reads a zigzag-encoded varint whose declared width is maxBits.
func (r *Reader) ReadVarS(maxBits int) int64 {
	return wire.UnZigZag(r.ReadVarU(maxBits))
}

// ReadVarU32 reads an unsigned varint of at most 32 bits.
func (r *Reader) ReadVarU32() uint32 {
	return uint32(r.ReadVarU(32))
}

// ReadVarS32 reads a zigzag varint of at most 32 bits.
func (r *Reader) ReadVarS32() int32 {
	return int32(r.ReadVarS(32))
}

// ReadVarU64 reads an unsigned varint of at most 64 bits.
func (r *Reader) ReadVarU64() uint64 {
	return r.ReadVarU(64)
}

// ReadVarS64 reads a zigzag varint of at most 64 bits.
func (r *Reader) ReadVarS64() int64 {
	return r.ReadVarS(64)
}

// ReadUBitVar reads the 4-tier small integer code.
//
// A 6-bit header carries the low 4 bits of the value; its top two bits select
// how many further bits follow:
//
//	00 -> none (6 bits total)
//	01 -> 4    (10 bits)
//	10 -> 8    (14 bits)
//	11 -> 28   (34 bits)
//
// With no extension the header itself is the value.
func (r *Reader) ReadUBitVar() uint32 {
	v := r.ReadUBitInt(6)
	switch v & 0x30 {
	case 0x10:
		v = (v & 0xf) | r.ReadUBitInt(4)<<4
	case 0x20:
		v = (v & 0xf) | r.ReadUBitInt(8)<<4
	case 0x30:
		v = (v & 0xf) | r.ReadUBitInt(28)<<4
	}
	return v
}

// fieldPathWidths are the payload widths of the field path delta code,
// selected by the position of the first set flag bit.
var fieldPathWidths = [...]int{2, 4, 10, 17}

// fieldPathTailWidth is read when none of the four flags is set.
const fieldPathTailWidth = 31

// ReadUBitVarFieldPath reads the unary-prefixed field path delta code.
// Up to four flag bits are read; the first set flag selects a 2, 4, 10 or
// 17 bit payload, and four clear flags select a 31 bit payload.
func (r *Reader) ReadUBitVarFieldPath() uint32 {
	for _, w := range fieldPathWidths {
		if r.ReadBitFlag() {
			return r.ReadUBitInt(w)
		}
	}
	return r.ReadUBitInt(fieldPathTailWidth)
}
