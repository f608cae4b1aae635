package bitstream

import "github.com/blockberries/replaybits/internal/wire"

// Writer packs bits least-significant first, producing data a Reader decodes
// in the same order. It is the encoder side of every Reader primitive that
// has a lossless inverse.
//
// The zero value is ready to use.
type Writer struct {
	buf []byte
	pos int // bits written
	err error
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

// Reset clears the writer for reuse.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.pos = 0
	w.err = nil
}

// Len returns the number of bits written.
func (w *Writer) Len() int {
	return w.pos
}

// Bytes returns the written bits, zero-padded to a whole byte.
// The returned slice is only valid until the next write or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Err returns the first error that occurred during writing, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) setError(op string, err error, message string) {
	if w.err == nil {
		w.err = NewDecodeErrorAt(op, w.pos, message, err)
	}
}

// WriteUBits writes the low n bits of v, n in [0, 64].
func (w *Writer) WriteUBits(v uint64, n int) {
	if n < 0 || n > wire.MaxBits {
		w.setError("ubits", ErrInvalidBitCount, "width must be in [0, 64]")
		return
	}
	v &= wire.Mask(n)
	for n > 0 {
		if w.pos&7 == 0 {
			w.buf = append(w.buf, 0)
		}
		off := w.pos & 7
		c := min(8-off, n)
		w.buf[len(w.buf)-1] |= byte(v<<off) & byte(wire.Mask(off+c))
		v >>= c
		n -= c
		w.pos += c
	}
}

// WriteSBits writes the low n bits of the two's complement form of v.
func (w *Writer) WriteSBits(v int64, n int) {
	w.WriteUBits(uint64(v), n)
}

// WriteBitFlag writes one bit.
func (w *Writer) WriteBitFlag(b bool) {
	var v uint64
	if b {
		v = 1
	}
	w.WriteUBits(v, 1)
}

// WriteVarU writes v as a base-128 varint, one 8-bit group per 7 bits.
func (w *Writer) WriteVarU(v uint64) {
	var groups [wire.MaxVarintLen64]byte
	w.writeGroups(wire.AppendUvarint(groups[:0], v))
}

// WriteVarS writes v as a zigzag varint.
func (w *Writer) WriteVarS(v int64) {
	var groups [wire.MaxVarintLen64]byte
	w.writeGroups(wire.AppendSvarint(groups[:0], v))
}

func (w *Writer) writeGroups(groups []byte) {
	for _, b := range groups {
		w.WriteUBits(uint64(b), 8)
	}
}

// WriteUBitVar writes v using the smallest tier of the 4-tier small integer
// code that holds it.
func (w *Writer) WriteUBitVar(v uint32) {
	low := uint64(v & 0xf)
	switch {
	case v < 1<<4:
		w.WriteUBits(low, 6)
	case v < 1<<8:
		w.WriteUBits(low|0x10, 6)
		w.WriteUBits(uint64(v>>4), 4)
	case v < 1<<12:
		w.WriteUBits(low|0x20, 6)
		w.WriteUBits(uint64(v>>4), 8)
	default:
		w.WriteUBits(low|0x30, 6)
		w.WriteUBits(uint64(v>>4), 28)
	}
}

// WriteUBitVarFieldPath writes v using the shortest tier of the field path
// delta code that holds it. Values of 2^31 and above do not fit.
func (w *Writer) WriteUBitVarFieldPath(v uint32) {
	for _, width := range fieldPathWidths {
		if uint64(v) < 1<<width {
			w.WriteBitFlag(true)
			w.WriteUBits(uint64(v), width)
			return
		}
		w.WriteBitFlag(false)
	}
	if uint64(v) >= 1<<fieldPathTailWidth {
		w.setError("field path", ErrInvalidBitCount, "value exceeds 31 bits")
		return
	}
	w.WriteUBits(uint64(v), fieldPathTailWidth)
}

// WriteBytes writes each byte of p as 8 bits.
func (w *Writer) WriteBytes(p []byte) {
	for _, b := range p {
		w.WriteUBits(uint64(b), 8)
	}
}

// WriteString writes s as 8-bit characters followed by a NUL byte.
// s must not contain NUL.
func (w *Writer) WriteString(s string) {
	w.WriteBytes([]byte(s))
	w.WriteUBits(0, 8)
}
