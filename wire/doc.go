// Package wire implements the record format spoken by the system management
// controller: four-character keys packed into 32-bit codes, a fixed 80-byte
// request/response record, and the typed value encodings the controller
// reports through key metadata.
//
// This package serves as the foundation for higher-level clients. It does
// no I/O and holds no state: callers own the session and decide how records
// reach the service.
//
// # Core Types
//
// KeyData, KeyInfo and KeyValue are pure data containers without embedded
// logic:
//
//   - KeyData: the record exchanged with the controller, one per call
//   - KeyInfo: a key's metadata (data size, type code, attributes)
//   - KeyValue: the result of a read (key, metadata, raw value buffer)
//
// # Serialization
//
// Marshal and UnmarshalKeyData convert between KeyData and the exact wire
// layout:
//
//	req := wire.KeyData{Key: wire.EncodeKey("TC0P"), Command: wire.CmdReadKeyInfo}
//	in := req.Marshal()
//	var out [wire.StructSize]byte
//	// ... service call with &in / &out ...
//	resp := wire.UnmarshalKeyData(&out)
//
// Requests are always built from a fresh zero record: the controller reads
// trailing fields as significant, so stale memory must never be sent.
//
// # Value Decoding
//
// The controller tags every value with a four-character type code. KeyValue
// decodes the common tags:
//
//	val := wire.KeyValue{ /* from a read */ }
//	celsius, err := val.Float64() // flt, sp78, fpe2, integers
//
// # Design Principles
//
//  1. Zero business logic - just layout and decoding
//  2. No session management - callers control the service connection
//  3. Total unmarshaling - any 80-byte buffer decodes without error
//
// # Thread Safety
//
// All functions are pure. The container types are plain values; callers
// must synchronize if sharing one across goroutines.
package wire
