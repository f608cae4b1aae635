package bitstream

// Unpacker is a reusable decode strategy producing a T from a Reader.
//
// Implementations must be stateless, consume exactly the bits their encoding
// defines, and report failures through the Reader's sticky error.
type Unpacker[T any] interface {
	Unpack(r *Reader) T
}

// UnpackerFunc adapts a function to the Unpacker interface.
type UnpackerFunc[T any] func(r *Reader) T

// Unpack calls f(r).
func (f UnpackerFunc[T]) Unpack(r *Reader) T {
	return f(r)
}

// Unpack runs u against r and returns the value together with the first
// error recorded on r, if any.
func Unpack[T any](r *Reader, u Unpacker[T]) (T, error) {
	v := u.Unpack(r)
	if err := r.Err(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// IntMinusOne decodes an unsigned 32-bit varint and subtracts one, so that a
// stored 0 yields -1.
type IntMinusOne struct{}

// Unpack implements Unpacker.
func (IntMinusOne) Unpack(r *Reader) int32 {
	return int32(r.ReadVarU32()) - 1
}
