package wire

import (
	"bytes"
	"math"
	"testing"
)

// Test cases for unsigned varint encoding
var uvarintTestCases = []struct {
	name     string
	value    uint64
	expected []byte
}{
	{"zero", 0, []byte{0x00}},
	{"one", 1, []byte{0x01}},
	{"max_1_byte", 127, []byte{0x7f}},
	{"min_2_byte", 128, []byte{0x80, 0x01}},
	{"300", 300, []byte{0xac, 0x02}},
	{"max_2_byte", 16383, []byte{0xff, 0x7f}},
	{"min_3_byte", 16384, []byte{0x80, 0x80, 0x01}},
	{"max_uint32", math.MaxUint32, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	{"max_uint64", math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
}

// Test cases for signed varint encoding (zigzag)
var svarintTestCases = []struct {
	name     string
	value    int64
	expected []byte
}{
	{"zero", 0, []byte{0x00}},
	{"minus_one", -1, []byte{0x01}},
	{"one", 1, []byte{0x02}},
	{"minus_two", -2, []byte{0x03}},
	{"two", 2, []byte{0x04}},
	{"minus_64", -64, []byte{0x7f}},
	{"64", 64, []byte{0x80, 0x01}},
	{"min_int64", math.MinInt64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
}

func TestAppendUvarint(t *testing.T) {
	for _, tc := range uvarintTestCases {
		t.Run(tc.name, func(t *testing.T) {
			result := AppendUvarint(nil, tc.value)
			if !bytes.Equal(result, tc.expected) {
				t.Errorf("AppendUvarint(%d) = %v, want %v", tc.value, result, tc.expected)
			}
		})
	}
}

func TestAppendSvarint(t *testing.T) {
	for _, tc := range svarintTestCases {
		t.Run(tc.name, func(t *testing.T) {
			result := AppendSvarint(nil, tc.value)
			if !bytes.Equal(result, tc.expected) {
				t.Errorf("AppendSvarint(%d) = %v, want %v", tc.value, result, tc.expected)
			}
		})
	}
}

func TestZigZagSymmetry(t *testing.T) {
	tests := []struct {
		v    int64
		want uint64
	}{
		{0, 0}, {-1, 1}, {1, 2}, {-2, 3}, {2, 4},
		{math.MaxInt64, math.MaxUint64 - 1},
		{math.MinInt64, math.MaxUint64},
	}
	for _, tc := range tests {
		if got := ZigZag(tc.v); got != tc.want {
			t.Errorf("ZigZag(%d) = %d, want %d", tc.v, got, tc.want)
		}
		if got := UnZigZag(tc.want); got != tc.v {
			t.Errorf("UnZigZag(%d) = %d, want %d", tc.want, got, tc.v)
		}
	}
}

func TestVarintShiftCap(t *testing.T) {
	tests := []struct {
		maxBits   int
		wantShift int
		wantGroup int
	}{
		{1, 7, 1},
		{7, 7, 1},
		{8, 14, 2},
		{32, 35, MaxVarintLen32},
		{64, 70, MaxVarintLen64},
	}
	for _, tc := range tests {
		if got := VarintShiftCap(tc.maxBits); got != tc.wantShift {
			t.Errorf("VarintShiftCap(%d) = %d, want %d", tc.maxBits, got, tc.wantShift)
		}
		if got := VarintGroups(tc.maxBits); got != tc.wantGroup {
			t.Errorf("VarintGroups(%d) = %d, want %d", tc.maxBits, got, tc.wantGroup)
		}
	}
}
