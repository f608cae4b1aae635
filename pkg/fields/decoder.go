package fields

import (
	"fmt"

	"github.com/blockberries/replaybits/pkg/bitstream"
)

// Value is one decoded field.
type Value struct {
	Name   string
	Value  any
	Offset int // bit offset of the field within the payload
	Bits   int // bits consumed
}

// Decoder decodes payloads laid out as a fixed sequence of fields.
// A Decoder is immutable after construction and safe for concurrent use;
// each Decode call must be given its own Reader.
type Decoder struct {
	fields    []Descriptor
	unpackers []bitstream.Unpacker[any]
}

// NewDecoder resolves every descriptor against reg. A nil reg uses
// DefaultRegistry.
func NewDecoder(reg *Registry, descs []Descriptor) (*Decoder, error) {
	if reg == nil {
		reg = DefaultRegistry
	}
	if len(descs) == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidDescriptor)
	}
	d := &Decoder{
		fields:    make([]Descriptor, len(descs)),
		unpackers: make([]bitstream.Unpacker[any], len(descs)),
	}
	copy(d.fields, descs)
	seen := make(map[string]bool, len(descs))
	for i, desc := range descs {
		if desc.Name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidDescriptor, i)
		}
		if seen[desc.Name] {
			return nil, fmt.Errorf("%w: duplicate field name %q", ErrInvalidDescriptor, desc.Name)
		}
		seen[desc.Name] = true

		u, err := reg.Build(desc)
		if err != nil {
			return nil, err
		}
		d.unpackers[i] = u
	}
	return d, nil
}

// Fields returns the descriptors in decode order.
func (d *Decoder) Fields() []Descriptor {
	out := make([]Descriptor, len(d.fields))
	copy(out, d.fields)
	return out
}

// Decode reads every field in order from r. On failure it returns the
// fields decoded so far and a *bitstream.DecodeError naming the field.
func (d *Decoder) Decode(r *bitstream.Reader) ([]Value, error) {
	out := make([]Value, 0, len(d.fields))
	for i, u := range d.unpackers {
		start := r.Pos()
		v := u.Unpack(r)
		if err := r.Err(); err != nil {
			return out, bitstream.NewDecodeErrorAt(d.fields[i].Name, start, "decode "+d.fields[i].Encoder, err)
		}
		out = append(out, Value{
			Name:   d.fields[i].Name,
			Value:  v,
			Offset: start,
			Bits:   r.Pos() - start,
		})
	}
	return out, nil
}

// DecodeBytes decodes one payload with a pooled Reader.
func (d *Decoder) DecodeBytes(payload []byte) ([]Value, int, error) {
	r := bitstream.GetReader(payload)
	defer bitstream.PutReader(r)
	vals, err := d.Decode(r)
	return vals, r.Remaining(), err
}
