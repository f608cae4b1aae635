package fields

import (
	"fmt"
	"math"

	"github.com/blockberries/replaybits/pkg/bitstream"
)

// Built-in encoder names.
const (
	EncIntMinusOne  = "int_minus_one"
	EncVarUint32    = "varuint32"
	EncVarInt32     = "varint32"
	EncVarUint64    = "varuint64"
	EncVarInt64     = "varint64"
	EncUBits        = "ubits"
	EncSBits        = "sbits"
	EncBool         = "bool"
	EncString       = "string"
	EncBytes        = "bytes"
	EncCoord        = "coord"
	EncCellCoord    = "cell_coord"
	EncCoordMP      = "coord_mp"
	EncAngle        = "angle"
	EncNormal       = "normal"
	EncNormalVector = "normal_vector"
	EncUBitVar      = "ubitvar"
	EncFieldPath    = "fieldpath"
)

// fixed returns a factory for an encoder without parameters.
func fixed[T any](fn func(r *bitstream.Reader) T) Factory {
	u := Erase[T](bitstream.UnpackerFunc[T](fn))
	return func(Descriptor) (bitstream.Unpacker[any], error) {
		return u, nil
	}
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(EncIntMinusOne, func(Descriptor) (bitstream.Unpacker[any], error) {
		return Erase[int32](bitstream.IntMinusOne{}), nil
	})
	r.MustRegister(EncVarUint32, fixed((*bitstream.Reader).ReadVarU32))
	r.MustRegister(EncVarInt32, fixed((*bitstream.Reader).ReadVarS32))
	r.MustRegister(EncVarUint64, fixed((*bitstream.Reader).ReadVarU64))
	r.MustRegister(EncVarInt64, fixed((*bitstream.Reader).ReadVarS64))
	r.MustRegister(EncBool, fixed((*bitstream.Reader).ReadBitFlag))
	r.MustRegister(EncCoord, fixed((*bitstream.Reader).ReadBitCoord))
	r.MustRegister(EncNormal, fixed((*bitstream.Reader).ReadBitNormal))
	r.MustRegister(EncNormalVector, fixed((*bitstream.Reader).Read3BitNormal))
	r.MustRegister(EncUBitVar, fixed((*bitstream.Reader).ReadUBitVar))
	r.MustRegister(EncFieldPath, fixed((*bitstream.Reader).ReadUBitVarFieldPath))

	r.MustRegister(EncUBits, func(d Descriptor) (bitstream.Unpacker[any], error) {
		if err := requireBits(d, 1, 64); err != nil {
			return nil, err
		}
		n := d.Bits
		return Erase[uint64](bitstream.UnpackerFunc[uint64](func(r *bitstream.Reader) uint64 {
			return r.ReadUBits(n)
		})), nil
	})
	r.MustRegister(EncSBits, func(d Descriptor) (bitstream.Unpacker[any], error) {
		if err := requireBits(d, 1, 64); err != nil {
			return nil, err
		}
		n := d.Bits
		return Erase[int64](bitstream.UnpackerFunc[int64](func(r *bitstream.Reader) int64 {
			return r.ReadSBits(n)
		})), nil
	})
	r.MustRegister(EncString, func(d Descriptor) (bitstream.Unpacker[any], error) {
		if err := requireBits(d, 8, math.MaxInt32); err != nil {
			return nil, err
		}
		n := d.Bits
		return Erase[string](bitstream.UnpackerFunc[string](func(r *bitstream.Reader) string {
			return r.ReadFixedString(n)
		})), nil
	})
	r.MustRegister(EncBytes, func(d Descriptor) (bitstream.Unpacker[any], error) {
		if err := requireBits(d, 1, math.MaxInt32); err != nil {
			return nil, err
		}
		n := d.Bits
		return Erase[[]byte](bitstream.UnpackerFunc[[]byte](func(r *bitstream.Reader) []byte {
			return r.ReadBitsAsBytes(n)
		})), nil
	})
	r.MustRegister(EncCellCoord, func(d Descriptor) (bitstream.Unpacker[any], error) {
		if err := requireBits(d, 1, 64); err != nil {
			return nil, err
		}
		if !d.Integral && d.LowPrecision {
			return nil, fmt.Errorf("%w: low precision %s", bitstream.ErrUnsupportedEncoding, d.Encoder)
		}
		n, integral := d.Bits, d.Integral
		return Erase[float32](bitstream.UnpackerFunc[float32](func(r *bitstream.Reader) float32 {
			return r.ReadCellCoord(n, integral, false)
		})), nil
	})
	r.MustRegister(EncCoordMP, func(d Descriptor) (bitstream.Unpacker[any], error) {
		integral, low := d.Integral, d.LowPrecision
		return Erase[float32](bitstream.UnpackerFunc[float32](func(r *bitstream.Reader) float32 {
			return r.ReadCoordMP(integral, low)
		})), nil
	})
	r.MustRegister(EncAngle, func(d Descriptor) (bitstream.Unpacker[any], error) {
		if err := requireBits(d, 1, 64); err != nil {
			return nil, err
		}
		n := d.Bits
		return Erase[float32](bitstream.UnpackerFunc[float32](func(r *bitstream.Reader) float32 {
			return r.ReadBitAngle(n)
		})), nil
	})

	return r
}
