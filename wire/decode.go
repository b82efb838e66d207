package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// TypeCode is a value type tag: four ASCII characters packed like a key.
// The controller reports one for every key and the tag decides how the
// value buffer is decoded.
type TypeCode uint32

// Known type codes. Multi-byte integer and fixed-point values are stored
// big-endian in the value buffer while IEEE floats are little-endian; the
// controller has carried this asymmetry forever and both sides honor it.
const (
	// TypeFloat is "flt ": a little-endian IEEE 754 float32.
	TypeFloat TypeCode = 'f'<<24 | 'l'<<16 | 't'<<8 | ' '

	// TypeFPE2 is "fpe2": an unsigned 14.2 fixed-point value, big-endian.
	// Used for fan speeds in RPM.
	TypeFPE2 TypeCode = 'f'<<24 | 'p'<<16 | 'e'<<8 | '2'

	// TypeSP78 is "sp78": a signed 7.8 fixed-point value, big-endian.
	// Used for temperatures in degrees Celsius.
	TypeSP78 TypeCode = 's'<<24 | 'p'<<16 | '7'<<8 | '8'

	TypeUint8  TypeCode = 'u'<<24 | 'i'<<16 | '8'<<8 | ' '
	TypeUint16 TypeCode = 'u'<<24 | 'i'<<16 | '1'<<8 | '6'
	TypeUint32 TypeCode = 'u'<<24 | 'i'<<16 | '3'<<8 | '2'
	TypeInt8   TypeCode = 's'<<24 | 'i'<<16 | '8'<<8 | ' '
	TypeInt16  TypeCode = 's'<<24 | 'i'<<16 | '1'<<8 | '6'

	// TypeFlag is "flag": a single boolean byte.
	TypeFlag TypeCode = 'f'<<24 | 'l'<<16 | 'a'<<8 | 'g'

	// TypeChar is "ch8*": raw ASCII characters.
	TypeChar TypeCode = 'c'<<24 | 'h'<<16 | '8'<<8 | '*'

	// TypeHex is "hex_": opaque bytes.
	TypeHex TypeCode = 'h'<<24 | 'e'<<16 | 'x'<<8 | '_'
)

// TypeCodeOf packs a four-character tag into a TypeCode.
func TypeCodeOf(tag string) TypeCode {
	return TypeCode(EncodeKey(tag))
}

func (t TypeCode) String() string {
	return DecodeKey(uint32(t))
}

// Float64 decodes the value as a number. It understands the float, fixed
// point, and integer type codes; anything else fails with a DecodeError.
func (v *KeyValue) Float64() (float64, error) {
	switch v.DataType {
	case TypeFloat:
		if v.DataSize != 4 {
			return 0, v.decodeErr("float value must be 4 bytes")
		}
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(v.Bytes[:4]))), nil
	case TypeFPE2:
		if v.DataSize != 2 {
			return 0, v.decodeErr("fpe2 value must be 2 bytes")
		}
		return float64(binary.BigEndian.Uint16(v.Bytes[:2])) / 4, nil
	case TypeSP78:
		if v.DataSize != 2 {
			return 0, v.decodeErr("sp78 value must be 2 bytes")
		}
		return float64(int16(binary.BigEndian.Uint16(v.Bytes[:2]))) / 256, nil
	case TypeUint8, TypeUint16, TypeUint32:
		n, err := v.Uint()
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	case TypeInt8, TypeInt16:
		n, err := v.Int()
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	default:
		return 0, v.decodeErr("not a numeric type")
	}
}

// Uint decodes the value as an unsigned integer.
func (v *KeyValue) Uint() (uint64, error) {
	switch v.DataType {
	case TypeUint8:
		if v.DataSize != 1 {
			return 0, v.decodeErr("ui8 value must be 1 byte")
		}
		return uint64(v.Bytes[0]), nil
	case TypeUint16:
		if v.DataSize != 2 {
			return 0, v.decodeErr("ui16 value must be 2 bytes")
		}
		return uint64(binary.BigEndian.Uint16(v.Bytes[:2])), nil
	case TypeUint32:
		if v.DataSize != 4 {
			return 0, v.decodeErr("ui32 value must be 4 bytes")
		}
		return uint64(binary.BigEndian.Uint32(v.Bytes[:4])), nil
	default:
		return 0, v.decodeErr("not an unsigned integer type")
	}
}

// Int decodes the value as a signed integer.
func (v *KeyValue) Int() (int64, error) {
	switch v.DataType {
	case TypeInt8:
		if v.DataSize != 1 {
			return 0, v.decodeErr("si8 value must be 1 byte")
		}
		return int64(int8(v.Bytes[0])), nil
	case TypeInt16:
		if v.DataSize != 2 {
			return 0, v.decodeErr("si16 value must be 2 bytes")
		}
		return int64(int16(binary.BigEndian.Uint16(v.Bytes[:2]))), nil
	default:
		return 0, v.decodeErr("not a signed integer type")
	}
}

// Flag decodes the value as a boolean.
func (v *KeyValue) Flag() (bool, error) {
	if v.DataType != TypeFlag {
		return false, v.decodeErr("not a flag type")
	}
	if v.DataSize != 1 {
		return false, v.decodeErr("flag value must be 1 byte")
	}
	return v.Bytes[0] != 0, nil
}

// String renders the value for display: numbers as numbers, characters as
// text, everything else as hex.
func (v *KeyValue) String() string {
	if n, err := v.Float64(); err == nil {
		return fmt.Sprintf("%g", n)
	}
	if b, err := v.Flag(); err == nil {
		return fmt.Sprintf("%t", b)
	}
	if v.DataType == TypeChar {
		return string(v.Raw())
	}
	return fmt.Sprintf("%x", v.Raw())
}

func (v *KeyValue) decodeErr(reason string) error {
	return &DecodeError{Key: v.Key, Type: v.DataType, Size: v.DataSize, Reason: reason}
}
