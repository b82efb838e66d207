package wire

import "encoding/binary"

// Field offsets inside the marshaled record. The layout matches the
// controller's C ABI: naturally aligned fields, multi-byte values in host
// byte order (the controller only exists on little-endian machines).
const (
	offKey     = 0  // uint32
	offVers    = 4  // 6 bytes + 2 padding
	offPLimit  = 12 // 16 bytes
	offInfo    = 28 // 9 bytes + 3 padding
	offResult  = 40 // uint8
	offStatus  = 41 // uint8
	offCommand = 42 // uint8 + 1 padding
	offData32  = 44 // uint32
	offBytes   = 48 // ValueLen bytes
)

// Layout check: the value buffer must end exactly at StructSize.
var _ [StructSize]byte = [offBytes + ValueLen]byte{}

// VersInfo is the controller firmware revision sub-record.
type VersInfo struct {
	Major    uint8
	Minor    uint8
	Build    uint8
	Reserved uint8
	Release  uint16
}

// PLimitInfo is the power limit sub-record.
type PLimitInfo struct {
	Version  uint16
	Length   uint16
	CPULimit uint32
	GPULimit uint32
	MemLimit uint32
}

// KeyInfo is a key's metadata as reported by the controller: how many bytes
// the value occupies, its type code, and the controller's attribute bits.
// Metadata is fixed for the life of the service, but this package never
// caches it; every CmdReadKeyInfo call produces a fresh KeyInfo.
type KeyInfo struct {
	DataSize       uint32
	DataType       TypeCode
	DataAttributes uint8
}

// KeyData is the record exchanged with the controller. One record goes in,
// one comes out, both exactly StructSize bytes.
//
// The zero value marshals to an all-zero buffer, which is the required
// starting point for every request: the controller treats unset trailing
// fields as significant, so requests are always built from a fresh record
// rather than by reusing a previous one.
type KeyData struct {
	Key     uint32
	Vers    VersInfo
	PLimit  PLimitInfo
	Info    KeyInfo
	Result  uint8
	Status  uint8
	Command uint8
	Data32  uint32
	Bytes   [ValueLen]byte
}

// Marshal lays the record out in wire format. Every byte of the returned
// buffer is written, padding included.
func (d *KeyData) Marshal() [StructSize]byte {
	var buf [StructSize]byte

	binary.LittleEndian.PutUint32(buf[offKey:], d.Key)

	buf[offVers+0] = d.Vers.Major
	buf[offVers+1] = d.Vers.Minor
	buf[offVers+2] = d.Vers.Build
	buf[offVers+3] = d.Vers.Reserved
	binary.LittleEndian.PutUint16(buf[offVers+4:], d.Vers.Release)

	binary.LittleEndian.PutUint16(buf[offPLimit+0:], d.PLimit.Version)
	binary.LittleEndian.PutUint16(buf[offPLimit+2:], d.PLimit.Length)
	binary.LittleEndian.PutUint32(buf[offPLimit+4:], d.PLimit.CPULimit)
	binary.LittleEndian.PutUint32(buf[offPLimit+8:], d.PLimit.GPULimit)
	binary.LittleEndian.PutUint32(buf[offPLimit+12:], d.PLimit.MemLimit)

	binary.LittleEndian.PutUint32(buf[offInfo+0:], d.Info.DataSize)
	binary.LittleEndian.PutUint32(buf[offInfo+4:], uint32(d.Info.DataType))
	buf[offInfo+8] = d.Info.DataAttributes

	buf[offResult] = d.Result
	buf[offStatus] = d.Status
	buf[offCommand] = d.Command
	binary.LittleEndian.PutUint32(buf[offData32:], d.Data32)

	copy(buf[offBytes:], d.Bytes[:])
	return buf
}

// UnmarshalKeyData decodes a wire-format record. It is total: any buffer
// decodes to some record, padding bytes are ignored.
func UnmarshalKeyData(buf *[StructSize]byte) KeyData {
	var d KeyData

	d.Key = binary.LittleEndian.Uint32(buf[offKey:])

	d.Vers.Major = buf[offVers+0]
	d.Vers.Minor = buf[offVers+1]
	d.Vers.Build = buf[offVers+2]
	d.Vers.Reserved = buf[offVers+3]
	d.Vers.Release = binary.LittleEndian.Uint16(buf[offVers+4:])

	d.PLimit.Version = binary.LittleEndian.Uint16(buf[offPLimit+0:])
	d.PLimit.Length = binary.LittleEndian.Uint16(buf[offPLimit+2:])
	d.PLimit.CPULimit = binary.LittleEndian.Uint32(buf[offPLimit+4:])
	d.PLimit.GPULimit = binary.LittleEndian.Uint32(buf[offPLimit+8:])
	d.PLimit.MemLimit = binary.LittleEndian.Uint32(buf[offPLimit+12:])

	d.Info.DataSize = binary.LittleEndian.Uint32(buf[offInfo+0:])
	d.Info.DataType = TypeCode(binary.LittleEndian.Uint32(buf[offInfo+4:]))
	d.Info.DataAttributes = buf[offInfo+8]

	d.Result = buf[offResult]
	d.Status = buf[offStatus]
	d.Command = buf[offCommand]
	d.Data32 = binary.LittleEndian.Uint32(buf[offData32:])

	copy(d.Bytes[:], buf[offBytes:])
	return d
}

// KeyValue is the result of reading a key: the key itself, the metadata
// reported by the controller, and the raw value buffer.
//
// The zero value is ready to use. After a failed read the struct may be
// partially filled: the key is always set, and the size and type survive a
// failure in the value phase.
type KeyValue struct {
	Key      string
	DataSize uint32
	DataType TypeCode
	Bytes    [ValueLen]byte
}

// Raw returns the meaningful prefix of the value buffer, clamped to the
// buffer capacity if the controller reported an oversized data size.
func (v *KeyValue) Raw() []byte {
	n := v.DataSize
	if n > ValueLen {
		n = ValueLen
	}
	return v.Bytes[:n]
}
