package fields

import "fmt"

// Descriptor describes one field of a payload.
type Descriptor struct {
	// Name identifies the field in decoded output and errors.
	Name string `toml:"name"`

	// Encoder is the registry name of the field's encoding.
	Encoder string `toml:"encoder"`

	// Bits is the width parameter of encoders that take one: the value
	// width of ubits, sbits, angle and cell_coord, and the maximum length
	// in bits of string and bytes.
	Bits int `toml:"bits"`

	// Integral selects the integer-only layout of cell_coord and coord_mp.
	Integral bool `toml:"integral"`

	// LowPrecision selects the 3-bit fraction of coord_mp.
	LowPrecision bool `toml:"low_precision"`
}

func (d Descriptor) String() string {
	if d.Bits > 0 {
		return fmt.Sprintf("%s:%s(%d)", d.Name, d.Encoder, d.Bits)
	}
	return fmt.Sprintf("%s:%s", d.Name, d.Encoder)
}

// requireBits checks that d.Bits lies in [lo, hi].
func requireBits(d Descriptor, lo, hi int) error {
	if d.Bits < lo || d.Bits > hi {
		return fmt.Errorf("%w: %s needs bits in [%d, %d], got %d", ErrInvalidDescriptor, d.Encoder, lo, hi, d.Bits)
	}
	return nil
}
