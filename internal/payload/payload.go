// Package payload turns input files into the contiguous byte sequences the
// bit reader consumes: optional snappy block decompression followed by
// optional extraction of a bytes field from a protobuf-framed message.
package payload

import (
	"errors"
	"fmt"
	"os"

	"github.com/klauspost/compress/snappy"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrFieldNotFound indicates the requested protobuf field is absent.
	ErrFieldNotFound = errors.New("payload: field not found")

	// ErrWireType indicates the requested protobuf field is not length-delimited.
	ErrWireType = errors.New("payload: field is not length-delimited")
)

// Options controls how raw input becomes a payload.
type Options struct {
	// Snappy block-decodes the input first.
	Snappy bool

	// Field, when positive, selects the first occurrence of that bytes
	// field in the (decompressed) protobuf message as the payload.
	Field int
}

// Load reads path and prepares its contents.
func Load(path string, opts Options) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("payload load failed (%s): %w", path, err)
	}
	p, err := Prepare(data, opts)
	if err != nil {
		return nil, fmt.Errorf("payload %s: %w", path, err)
	}
	return p, nil
}

// Prepare applies opts to data.
func Prepare(data []byte, opts Options) ([]byte, error) {
	if opts.Snappy {
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("snappy decode: %w", err)
		}
		data = out
	}
	if opts.Field > 0 {
		return ExtractField(data, protowire.Number(opts.Field))
	}
	return data, nil
}

// ExtractField returns the value of the first length-delimited field num in
// the protobuf message msg. The result aliases msg.
func ExtractField(msg []byte, num protowire.Number) ([]byte, error) {
	for len(msg) > 0 {
		n, typ, tagLen := protowire.ConsumeTag(msg)
		if tagLen < 0 {
			return nil, fmt.Errorf("parse tag: %w", protowire.ParseError(tagLen))
		}
		msg = msg[tagLen:]

		if n == num {
			if typ != protowire.BytesType {
				return nil, fmt.Errorf("%w: field %d has wire type %d", ErrWireType, num, typ)
			}
			v, vLen := protowire.ConsumeBytes(msg)
			if vLen < 0 {
				return nil, fmt.Errorf("parse field %d: %w", num, protowire.ParseError(vLen))
			}
			return v, nil
		}

		valLen := protowire.ConsumeFieldValue(n, typ, msg)
		if valLen < 0 {
			return nil, fmt.Errorf("skip field %d: %w", n, protowire.ParseError(valLen))
		}
		msg = msg[valLen:]
	}
	return nil, fmt.Errorf("%w: %d", ErrFieldNotFound, num)
}
