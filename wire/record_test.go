package wire

import (
	"bytes"
	"testing"
)

func TestKeyDataMarshalLayout(t *testing.T) {
	d := KeyData{
		Key: 0x54433050,
		Vers: VersInfo{
			Major:    2,
			Minor:    15,
			Build:    3,
			Reserved: 0xAA,
			Release:  0x1234,
		},
		PLimit: PLimitInfo{
			Version:  0x0102,
			Length:   0x0304,
			CPULimit: 0x0A0B0C0D,
			GPULimit: 0x11223344,
			MemLimit: 0x55667788,
		},
		Info: KeyInfo{
			DataSize:       4,
			DataType:       TypeFloat,
			DataAttributes: 0xC0,
		},
		Result:  0x84,
		Status:  0x01,
		Command: CmdReadKeyInfo,
		Data32:  0xDEADBEEF,
	}
	d.Bytes[0] = 0xFE
	d.Bytes[ValueLen-1] = 0xEF

	buf := d.Marshal()

	checks := []struct {
		name     string
		offset   int
		expected []byte
	}{
		{"key is stored in host order", 0, []byte{0x50, 0x30, 0x43, 0x54}},
		{"vers bytes", 4, []byte{2, 15, 3, 0xAA, 0x34, 0x12}},
		{"vers padding", 10, []byte{0, 0}},
		{"plimit version and length", 12, []byte{0x02, 0x01, 0x04, 0x03}},
		{"plimit cpu", 16, []byte{0x0D, 0x0C, 0x0B, 0x0A}},
		{"info data size", 28, []byte{4, 0, 0, 0}},
		{"info type code", 32, []byte{' ', 't', 'l', 'f'}},
		{"info attributes and padding", 36, []byte{0xC0, 0, 0, 0}},
		{"result status command", 40, []byte{0x84, 0x01, CmdReadKeyInfo, 0}},
		{"data32", 44, []byte{0xEF, 0xBE, 0xAD, 0xDE}},
		{"first value byte", 48, []byte{0xFE}},
		{"last value byte", 79, []byte{0xEF}},
	}

	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			got := buf[c.offset : c.offset+len(c.expected)]
			if !bytes.Equal(got, c.expected) {
				t.Errorf("bytes at offset %d = % x, want % x", c.offset, got, c.expected)
			}
		})
	}
}

func TestKeyDataZeroValue(t *testing.T) {
	var d KeyData
	buf := d.Marshal()
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("zero record marshaled non-zero byte %#02x at offset %d", b, i)
		}
	}
}

func TestKeyDataRoundTrip(t *testing.T) {
	d := KeyData{
		Key:     EncodeKey("F0Ac"),
		Info:    KeyInfo{DataSize: 2, DataType: TypeFPE2, DataAttributes: 1},
		Result:  ResultOK,
		Command: CmdReadBytes,
		Data32:  7,
	}
	copy(d.Bytes[:], []byte{0x0B, 0xB8})

	buf := d.Marshal()
	got := UnmarshalKeyData(&buf)

	if got != d {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, d)
	}
}

func TestUnmarshalIgnoresPadding(t *testing.T) {
	var buf [StructSize]byte
	for i := range buf {
		buf[i] = 0xFF
	}

	d := UnmarshalKeyData(&buf)
	out := d.Marshal()

	// Padding positions come back zero, everything else survives.
	for _, pad := range []int{10, 11, 37, 38, 39, 43} {
		if out[pad] != 0 {
			t.Errorf("padding byte at offset %d = %#02x, want 0", pad, out[pad])
		}
		buf[pad] = 0
	}
	if out != buf {
		t.Errorf("non-padding bytes changed across unmarshal/marshal")
	}
}

func TestKeyValueRaw(t *testing.T) {
	v := KeyValue{Key: "TC0P", DataSize: 2, DataType: TypeSP78}
	v.Bytes[0] = 0x3A
	v.Bytes[1] = 0x80
	v.Bytes[2] = 0x99 // beyond DataSize, must not appear

	if got := v.Raw(); !bytes.Equal(got, []byte{0x3A, 0x80}) {
		t.Errorf("Raw() = % x, want 3a 80", got)
	}

	v.DataSize = ValueLen + 10
	if got := v.Raw(); len(got) != ValueLen {
		t.Errorf("Raw() with oversized DataSize returned %d bytes, want %d", len(got), ValueLen)
	}
}
