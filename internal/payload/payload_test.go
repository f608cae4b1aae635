package payload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/snappy"
	"google.golang.org/protobuf/encoding/protowire"
)

// entityMessage builds {1: varint tick, 2: string name, 3: bytes data}.
func entityMessage(data []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 12345)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "npc_dota_hero_axe")
	b = protowire.AppendTag(b, 4, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 7)
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, data)
	return b
}

func TestExtractField(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	msg := entityMessage(data)

	got, err := ExtractField(msg, 3)
	if err != nil {
		t.Fatalf("ExtractField(3): %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("ExtractField(3) = %x, want %x", got, data)
	}

	if _, err := ExtractField(msg, 9); !errors.Is(err, ErrFieldNotFound) {
		t.Errorf("ExtractField(9) = %v, want ErrFieldNotFound", err)
	}
	if _, err := ExtractField(msg, 1); !errors.Is(err, ErrWireType) {
		t.Errorf("ExtractField(1) = %v, want ErrWireType", err)
	}
	if _, err := ExtractField(msg[:len(msg)-2], 3); err == nil {
		t.Error("ExtractField on truncated message succeeded")
	}
}

func TestPrepare(t *testing.T) {
	data := []byte("bit payload")
	msg := entityMessage(data)

	tests := []struct {
		name  string
		input []byte
		opts  Options
	}{
		{"raw", data, Options{}},
		{"snappy", snappy.Encode(nil, data), Options{Snappy: true}},
		{"field", msg, Options{Field: 3}},
		{"snappy_field", snappy.Encode(nil, msg), Options{Snappy: true, Field: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Prepare(tc.input, tc.opts)
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Errorf("Prepare = %q, want %q", got, data)
			}
		})
	}

	if _, err := Prepare([]byte{0xff, 0xff, 0xff}, Options{Snappy: true}); err == nil {
		t.Error("Prepare of corrupt snappy input succeeded")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packet.bin")
	if err := os.WriteFile(path, snappy.Encode(nil, entityMessage([]byte{1, 2})), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path, Options{Snappy: true, Field: 3})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2}) {
		t.Errorf("Load = %x, want 0102", got)
	}

	if _, err := Load(filepath.Join(dir, "missing"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want os.ErrNotExist", err)
	}
}
