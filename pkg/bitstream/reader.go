// Package bitstream decodes the bit-packed payloads of the replay wire format.
//
// A Reader owns the packed words of one payload and a bit cursor. Every read
// advances the cursor by exactly the number of bits its encoding consumes.
// The first failing read is recorded and all later reads return zero values,
// so callers may issue a run of reads and check Err once.
//
// A Reader is not safe for concurrent use. Decode independent payloads with
// independent Readers.
package bitstream

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/blockberries/replaybits/internal/wire"
)

// Reader provides bit-granular decoding with cursor tracking.
//
// The zero value is an empty Reader; create with NewReader.
type Reader struct {
	words []uint64
	len   int // valid bits
	pos   int // bit cursor
	err   error
}

// NewReader creates a Reader over a copy of data.
// Bit 0 of data[0] is the first bit read.
func NewReader(data []byte) *Reader {
	r := &Reader{}
	r.Reset(data)
	return r
}

// Reset resets the reader to read from new data, reusing its word storage.
func (r *Reader) Reset(data []byte) {
	r.words = wire.PackWords(r.words, data)
	r.len = len(data) * 8
	r.pos = 0
	r.err = nil
}

// Len returns the number of valid bits.
func (r *Reader) Len() int {
	return r.len
}

// Pos returns the current bit cursor.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bits.
// It is negative after Skip has moved the cursor past the end.
func (r *Reader) Remaining() int {
	return r.len - r.pos
}

// Err returns the first error that occurred during reading, if any.
func (r *Reader) Err() error {
	return r.err
}

// setErrorAt records the first error that occurs.
func (r *Reader) setErrorAt(op string, err error, message string) {
	if r.err == nil {
		r.err = NewDecodeErrorAt(op, r.pos, message, err)
	}
}

// ensure checks that n more bits are available.
func (r *Reader) ensure(op string, n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.pos < 0 || n > r.len-r.pos {
		r.setErrorAt(op, ErrOutOfBounds, "unexpected end of data")
		return false
	}
	return true
}

// checkWidth validates a single-extraction width.
func (r *Reader) checkWidth(op string, n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || n > wire.MaxBits {
		r.setErrorAt(op, ErrInvalidBitCount, "width must be in [0, 64]")
		return false
	}
	return true
}

// Skip advances the cursor by n bits without a bounds check.
// The cursor may move past the end; any read after that fails with
// ErrOutOfBounds.
func (r *Reader) Skip(n int) {
	r.pos += n
}

// SkipChecked advances the cursor by n bits, failing if fewer than n bits
// remain.
func (r *Reader) SkipChecked(n int) error {
	if r.ensure("skip", n) {
		r.pos += n
	}
	return r.err
}

// ReadBitFlag reads one bit.
func (r *Reader) ReadBitFlag() bool {
	if !r.ensure("bit flag", 1) {
		return false
	}
	v := r.words[r.pos>>6]&(1<<(r.pos&63)) != 0
	r.pos++
	return v
}

// ReadUBits reads an n-bit unsigned value, n in [0, 64].
// Bit 0 of the result is the bit at the cursor.
func (r *Reader) ReadUBits(n int) uint64 {
	if !r.checkWidth("ubits", n) || !r.ensure("ubits", n) {
		return 0
	}
	if n == 0 {
		return 0
	}
	start := r.pos >> 6
	end := (r.pos + n - 1) >> 6
	s := uint(r.pos & 63)

	var v uint64
	if start == end {
		v = (r.words[start] >> s) & wire.Mask(n)
	} else {
		// s > 0 here: an aligned read of at most 64 bits stays in one word.
		v = ((r.words[start] >> s) | (r.words[end] << (wire.WordBits - s))) & wire.Mask(n)
	}
	r.pos += n
	return v
}

// ReadSBits reads an n-bit two's complement value, n in [0, 64].
func (r *Reader) ReadSBits(n int) int64 {
	return wire.SignExtend(r.ReadUBits(n), n)
}

// ReadUBitInt reads an n-bit unsigned value truncated to 32 bits.
func (r *Reader) ReadUBitInt(n int) uint32 {
	return uint32(r.ReadUBits(n))
}

// ReadSBitInt reads an n-bit signed value truncated to 32 bits.
func (r *Reader) ReadSBitInt(n int) int32 {
	return int32(r.ReadSBits(n))
}

// ReadBitsAsBytes reads n bits into ceil(n/8) bytes, eight bits per byte with
// a final partial byte holding the remainder.
func (r *Reader) ReadBitsAsBytes(n int) []byte {
	if n < 0 {
		r.setErrorAt("bytes", ErrInvalidBitCount, "negative length")
		return nil
	}
	if !r.ensure("bytes", n) {
		return nil
	}
	out := make([]byte, (n+7)/8)
	i := 0
	for n > 7 {
		n -= 8
		out[i] = byte(r.ReadUBits(8))
		i++
	}
	if n != 0 {
		out[i] = byte(r.ReadUBits(n))
	}
	return out
}

// ReadString reads up to maxChars 8-bit characters, stopping after a NUL
// byte. The NUL is consumed but not returned. Characters are ISO-8859-1.
func (r *Reader) ReadString(maxChars int) string {
	raw := make([]byte, 0, min(max(maxChars, 0), 64))
	for ; maxChars > 0; maxChars-- {
		c := byte(r.ReadUBits(8))
		if r.err != nil {
			return ""
		}
		if c == 0 {
			break
		}
		raw = append(raw, c)
	}
	return decodeLatin1(raw)
}

// ReadFixedString reads 8-bit characters until a NUL byte or until maxBits
// bits have been consumed.
func (r *Reader) ReadFixedString(maxBits int) string {
	return r.ReadString(maxBits / 8)
}

func decodeLatin1(raw []byte) string {
	ascii := true
	for _, c := range raw {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(raw)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// ISO-8859-1 maps every byte; this is unreachable.
		return string(raw)
	}
	return string(s)
}

// String renders the bits around the cursor, up to 32 behind and 64 ahead,
// with '*' marking the cursor.
func (r *Reader) String() string {
	lo := max(0, r.pos-32)
	hi := min(r.len, r.pos+65)
	if r.pos > r.len || r.pos < lo {
		return r.BitString(lo, hi)
	}
	var b strings.Builder
	b.WriteString(r.BitString(lo, r.pos))
	b.WriteByte('*')
	b.WriteString(r.BitString(r.pos, hi))
	return b.String()
}

// BitString renders bits [from, to) as '0' and '1' characters, clamped to the
// valid range. It does not move the cursor.
func (r *Reader) BitString(from, to int) string {
	from = max(from, 0)
	to = min(to, r.len)
	if from >= to {
		return ""
	}
	var b strings.Builder
	b.Grow(to - from)
	for i := from; i < to; i++ {
		if r.words[i>>6]&(1<<(i&63)) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
