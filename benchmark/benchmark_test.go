// Package benchmark compares the bitstream reader against an io.Reader based
// bit reader and byte-aligned protobuf varints.
package benchmark

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/icza/bitio"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/blockberries/replaybits/pkg/bitstream"
	"github.com/blockberries/replaybits/pkg/fields"
)

// ============================================================================
// Test Data Construction
// ============================================================================

const payloadBytes = 4096

func makePayload() []byte {
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, payloadBytes)
	rng.Read(data)
	return data
}

func makeVarints(n int) ([]byte, []byte) {
	rng := rand.New(rand.NewSource(2))
	w := bitstream.NewWriter()
	var pb []byte
	for i := 0; i < n; i++ {
		v := uint64(rng.Uint32() >> uint(rng.Intn(32)))
		w.WriteVarU(v)
		pb = protowire.AppendVarint(pb, v)
	}
	return append([]byte(nil), w.Bytes()...), pb
}

func makeEvent() ([]fields.Descriptor, []byte) {
	descs := []fields.Descriptor{
		{Name: "kind", Encoder: fields.EncIntMinusOne},
		{Name: "tick", Encoder: fields.EncVarUint32},
		{Name: "alive", Encoder: fields.EncBool},
		{Name: "origin", Encoder: fields.EncCoordMP},
		{Name: "yaw", Encoder: fields.EncAngle, Bits: 11},
		{Name: "facing", Encoder: fields.EncNormalVector},
		{Name: "path", Encoder: fields.EncFieldPath},
	}
	w := bitstream.NewWriter()
	w.WriteVarU(4)
	w.WriteVarU(123456)
	w.WriteBitFlag(true)
	w.WriteUBits(0b010, 3) // coord_mp: out of bounds, integer present, positive
	w.WriteUBits(1234, 14)
	w.WriteUBits(17, 5)
	w.WriteUBits(700, 11)
	w.WriteUBits(0b11, 2) // normal: x and y present
	w.WriteUBits(800<<1, 12)
	w.WriteUBits(900<<1, 12)
	w.WriteBitFlag(false)
	w.WriteUBitVarFieldPath(42)
	return descs, append([]byte(nil), w.Bytes()...)
}

// ============================================================================
// Fixed-width reads
// ============================================================================

func benchmarkBitstreamWidth(b *testing.B, n int) {
	data := makePayload()
	reads := len(data) * 8 / n
	r := bitstream.NewReader(data)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Reset(data)
		for j := 0; j < reads; j++ {
			_ = r.ReadUBits(n)
		}
	}
}

func benchmarkBitioWidth(b *testing.B, n int) {
	data := makePayload()
	reads := len(data) * 8 / n
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r := bitio.NewReader(bytes.NewReader(data))
		for j := 0; j < reads; j++ {
			_, _ = r.ReadBits(byte(n))
		}
	}
}

func BenchmarkRead1_Bitstream(b *testing.B)  { benchmarkBitstreamWidth(b, 1) }
func BenchmarkRead1_Bitio(b *testing.B)      { benchmarkBitioWidth(b, 1) }
func BenchmarkRead7_Bitstream(b *testing.B)  { benchmarkBitstreamWidth(b, 7) }
func BenchmarkRead7_Bitio(b *testing.B)      { benchmarkBitioWidth(b, 7) }
func BenchmarkRead17_Bitstream(b *testing.B) { benchmarkBitstreamWidth(b, 17) }
func BenchmarkRead17_Bitio(b *testing.B)     { benchmarkBitioWidth(b, 17) }
func BenchmarkRead64_Bitstream(b *testing.B) { benchmarkBitstreamWidth(b, 64) }
func BenchmarkRead64_Bitio(b *testing.B)     { benchmarkBitioWidth(b, 64) }

// ============================================================================
// Varints
// ============================================================================

const varintCount = 1024

func BenchmarkVarint_Bitstream(b *testing.B) {
	data, _ := makeVarints(varintCount)
	r := bitstream.NewReader(data)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Reset(data)
		for j := 0; j < varintCount; j++ {
			_ = r.ReadVarU64()
		}
	}
}

func BenchmarkVarint_BitstreamUnaligned(b *testing.B) {
	data, _ := makeVarints(varintCount)
	w := bitstream.NewWriter()
	w.WriteUBits(0x5, 3)
	w.WriteBytes(data)
	shifted := append([]byte(nil), w.Bytes()...)

	r := bitstream.NewReader(shifted)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Reset(shifted)
		r.Skip(3)
		for j := 0; j < varintCount; j++ {
			_ = r.ReadVarU64()
		}
	}
}

func BenchmarkVarint_Protowire(b *testing.B) {
	_, data := makeVarints(varintCount)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p := data
		for len(p) > 0 {
			_, n := protowire.ConsumeVarint(p)
			p = p[n:]
		}
	}
}

// ============================================================================
// Field decoding
// ============================================================================

func BenchmarkEvent_Decode(b *testing.B) {
	descs, data := makeEvent()
	dec, err := fields.NewDecoder(nil, descs)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, _ = dec.DecodeBytes(data)
	}
}

func BenchmarkEvent_Encode(b *testing.B) {
	w := bitstream.NewWriter()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w.Reset()
		w.WriteVarU(4)
		w.WriteVarU(123456)
		w.WriteBitFlag(true)
		w.WriteUBits(1234, 14)
		w.WriteUBitVarFieldPath(42)
	}
}

func TestEventPayloadDecodes(t *testing.T) {
	descs, data := makeEvent()
	dec, err := fields.NewDecoder(nil, descs)
	if err != nil {
		t.Fatal(err)
	}
	values, _, err := dec.DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got := values[0].Value; got != int32(3) {
		t.Errorf("kind = %v, want 3", got)
	}
	if got := values[len(values)-1].Value; got != uint32(42) {
		t.Errorf("path = %v, want 42", got)
	}
}
