package wire

import (
	"errors"
	"testing"
)

func makeValue(key string, typ TypeCode, data ...byte) KeyValue {
	v := KeyValue{Key: key, DataSize: uint32(len(data)), DataType: typ}
	copy(v.Bytes[:], data)
	return v
}

func TestKeyValueFloat64(t *testing.T) {
	tests := []struct {
		name     string
		value    KeyValue
		expected float64
	}{
		{
			name:     "flt is little-endian",
			value:    makeValue("TC0P", TypeFloat, 0x00, 0x80, 0x52, 0x42),
			expected: 52.625,
		},
		{
			name:     "flt one",
			value:    makeValue("TC0P", TypeFloat, 0x00, 0x00, 0x80, 0x3F),
			expected: 1.0,
		},
		{
			name:     "fpe2 is big-endian quarters",
			value:    makeValue("F0Ac", TypeFPE2, 0x0B, 0xB8),
			expected: 750,
		},
		{
			name:     "sp78 positive",
			value:    makeValue("TC0D", TypeSP78, 0x3A, 0x80),
			expected: 58.5,
		},
		{
			name:     "sp78 negative",
			value:    makeValue("TA0P", TypeSP78, 0xEC, 0x00),
			expected: -20.0,
		},
		{
			name:     "ui8 widens",
			value:    makeValue("FNum", TypeUint8, 2),
			expected: 2,
		},
		{
			name:     "ui16 is big-endian",
			value:    makeValue("FS! ", TypeUint16, 0x01, 0x00),
			expected: 256,
		},
		{
			name:     "ui32 is big-endian",
			value:    makeValue("CLKT", TypeUint32, 0x00, 0x00, 0x01, 0x00),
			expected: 256,
		},
		{
			name:     "si8 widens",
			value:    makeValue("TH0x", TypeInt8, 0xFE),
			expected: -2,
		},
		{
			name:     "si16 is big-endian",
			value:    makeValue("TH0x", TypeInt16, 0xFF, 0x00),
			expected: -256,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.Float64()
			if err != nil {
				t.Fatalf("Float64 failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Float64() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKeyValueFloat64Errors(t *testing.T) {
	tests := []struct {
		name  string
		value KeyValue
	}{
		{"flt with wrong size", makeValue("TC0P", TypeFloat, 0x00, 0x80)},
		{"sp78 with wrong size", makeValue("TC0D", TypeSP78, 0x3A)},
		{"character type", makeValue("RPlt", TypeChar, 'j', '1', '3', '0')},
		{"flag type", makeValue("BATP", TypeFlag, 1)},
		{"unknown type", makeValue("ZZZZ", TypeCodeOf("zzz_"), 1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.value.Float64()
			if err == nil {
				t.Fatal("expected error but got none")
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Errorf("error has type %T, want *DecodeError", err)
			}
		})
	}
}

func TestKeyValueUint(t *testing.T) {
	v := makeValue("FNum", TypeUint8, 3)
	n, err := v.Uint()
	if err != nil {
		t.Fatalf("Uint failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Uint() = %d, want 3", n)
	}

	v = makeValue("TH0x", TypeInt8, 0xFE)
	if _, err := v.Uint(); err == nil {
		t.Error("Uint on a signed type should fail")
	}
}

func TestKeyValueInt(t *testing.T) {
	v := makeValue("TH0x", TypeInt16, 0xFF, 0x38)
	n, err := v.Int()
	if err != nil {
		t.Fatalf("Int failed: %v", err)
	}
	if n != -200 {
		t.Errorf("Int() = %d, want -200", n)
	}

	v = makeValue("FNum", TypeUint8, 3)
	if _, err := v.Int(); err == nil {
		t.Error("Int on an unsigned type should fail")
	}
}

func TestKeyValueFlag(t *testing.T) {
	v := makeValue("BATP", TypeFlag, 1)
	b, err := v.Flag()
	if err != nil {
		t.Fatalf("Flag failed: %v", err)
	}
	if !b {
		t.Error("Flag() = false, want true")
	}

	v = makeValue("BATP", TypeFlag, 0)
	b, err = v.Flag()
	if err != nil {
		t.Fatalf("Flag failed: %v", err)
	}
	if b {
		t.Error("Flag() = true, want false")
	}
}

func TestKeyValueString(t *testing.T) {
	tests := []struct {
		name     string
		value    KeyValue
		expected string
	}{
		{"numeric", makeValue("TC0D", TypeSP78, 0x3A, 0x80), "58.5"},
		{"flag", makeValue("BATP", TypeFlag, 1), "true"},
		{"characters", makeValue("RPlt", TypeChar, 'j', '1', '3', '0'), "j130"},
		{"opaque bytes", makeValue("KPST", TypeHex, 0xDE, 0xAD), "dead"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTypeCodeString(t *testing.T) {
	tests := []struct {
		code     TypeCode
		expected string
	}{
		{TypeFloat, "flt "},
		{TypeFPE2, "fpe2"},
		{TypeSP78, "sp78"},
		{TypeUint16, "ui16"},
		{TypeFlag, "flag"},
	}

	for _, tt := range tests {
		if got := tt.code.String(); got != tt.expected {
			t.Errorf("TypeCode(%#08x).String() = %q, want %q", uint32(tt.code), got, tt.expected)
		}
		if got := TypeCodeOf(tt.expected); got != tt.code {
			t.Errorf("TypeCodeOf(%q) = %#08x, want %#08x", tt.expected, uint32(got), uint32(tt.code))
		}
	}
}
