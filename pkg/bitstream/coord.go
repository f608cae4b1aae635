package bitstream

import (
	"math"

	"github.com/blockberries/replaybits/internal/wire"
)

// Fixed-point layouts of the spatial encodings.
const (
	CoordIntegerBits    = 14
	CoordFractionalBits = 5
	CoordDenominator    = 1 << CoordFractionalBits
	CoordResolution     = float32(1.0) / CoordDenominator

	CoordIntegerBitsMP                = 11
	CoordFractionalBitsMPLowPrecision = 3
	CoordDenominatorLowPrecision      = 1 << CoordFractionalBitsMPLowPrecision
	CoordResolutionLowPrecision       = float32(1.0) / CoordDenominatorLowPrecision

	NormalFractionalBits = 11
	NormalDenominator    = 1<<NormalFractionalBits - 1
	NormalResolution     = float32(1.0) / NormalDenominator
)

// ReadBitCoord reads a world coordinate.
//
// Two presence flags (integer part, fractional part) come first. When both
// are clear the value is 0 and nothing else is read, not even the sign.
// Otherwise a sign flag follows, then a 14-bit integer magnitude stored
// minus one, then a 5-bit fraction in 1/32 steps.
func (r *Reader) ReadBitCoord() float32 {
	hasInt := r.ReadBitFlag()
	hasFrac := r.ReadBitFlag()
	if !hasInt && !hasFrac {
		return 0
	}
	neg := r.ReadBitFlag()
	var v float32
	if hasInt {
		v = float32(r.ReadUBits(CoordIntegerBits) + 1)
	}
	if hasFrac {
		v += float32(r.ReadUBits(CoordFractionalBits)) * CoordResolution
	}
	if neg {
		return -v
	}
	return v
}

// ReadCellCoord reads an n-bit cell-relative coordinate. Integral values are
// returned as read; others carry a 5-bit fraction. The low precision fraction
// is not defined by the protocol and fails with ErrUnsupportedEncoding after
// the n value bits are consumed.
func (r *Reader) ReadCellCoord(n int, integral, lowPrecision bool) float32 {
	v := float32(r.ReadUBits(n))
	if integral {
		return v
	}
	if lowPrecision {
		r.setErrorAt("cell coord", ErrUnsupportedEncoding, "low precision cell coordinates")
		return 0
	}
	return v + float32(r.ReadUBits(CoordFractionalBits))*CoordResolution
}

// ReadCoordMP reads a multiplayer-optimized coordinate.
//
// An in-bounds flag comes first and selects an 11-bit (in bounds) or 14-bit
// integer magnitude, stored minus one.
//
// Integral layout: presence bit, then sign and magnitude only if present.
//
// Fractional layout: presence bit, sign bit (always), magnitude if present,
// then a 5-bit fraction (3 bits in low precision) that is always present.
func (r *Reader) ReadCoordMP(integral, lowPrecision bool) float32 {
	inBounds := r.ReadBitFlag()
	intBits := CoordIntegerBits
	if inBounds {
		intBits = CoordIntegerBitsMP
	}

	var (
		neg   bool
		value float32
	)
	if integral {
		if r.ReadBitFlag() {
			neg = r.ReadBitFlag()
			value = float32(r.ReadUBits(intBits) + 1)
		}
	} else {
		hasInt := r.ReadBitFlag()
		neg = r.ReadBitFlag()
		var i uint64
		if hasInt {
			i = r.ReadUBits(intBits) + 1
		}
		fracBits, res := CoordFractionalBits, CoordResolution
		if lowPrecision {
			fracBits, res = CoordFractionalBitsMPLowPrecision, CoordResolutionLowPrecision
		}
		f := r.ReadUBits(fracBits)
		value = float32(i) + float32(f)*res
	}
	if neg {
		return -value
	}
	return value
}

// ReadBitAngle reads an n-bit angle, mapping [0, 2^n - 1] linearly onto
// [0, 360] degrees.
func (r *Reader) ReadBitAngle(n int) float32 {
	if n < 1 || n > wire.MaxBits {
		if r.err == nil {
			r.setErrorAt("bit angle", ErrInvalidBitCount, "width must be in [1, 64]")
		}
		return 0
	}
	return float32(r.ReadUBits(n)) * 360.0 / float32(wire.Mask(n))
}

// ReadBitNormal reads one signed normal component with 11 fractional bits.
func (r *Reader) ReadBitNormal() float32 {
	neg := r.ReadBitFlag()
	v := float32(r.ReadUBits(NormalFractionalBits)) * NormalResolution
	if neg {
		return -v
	}
	return v
}

// Read3BitNormal reads a unit vector stored as optional x and y components
// and the sign of z. The magnitude of z is recovered from x²+y²+z² = 1 and is
// zero when x²+y² >= 1.
func (r *Reader) Read3BitNormal() [3]float32 {
	var v [3]float32
	hasX := r.ReadBitFlag()
	hasY := r.ReadBitFlag()
	if hasX {
		v[0] = r.ReadBitNormal()
	}
	if hasY {
		v[1] = r.ReadBitNormal()
	}
	negZ := r.ReadBitFlag()
	if p := v[0]*v[0] + v[1]*v[1]; p < 1 {
		v[2] = float32(math.Sqrt(float64(1 - p)))
	}
	if negZ {
		v[2] = -v[2]
	}
	return v
}
