package wire

import "fmt"

// Record geometry
const (
	// StructSize is the exact size in bytes of the record exchanged with
	// the controller. Both the input and output buffer of a service call
	// must be this size; the driver rejects anything else.
	StructSize = 80

	// KeyLen is the length of a controller key. Every key is exactly four
	// bytes, packed big-endian into a uint32 on the wire.
	KeyLen = 4

	// ValueLen is the capacity of the value buffer at the tail of the
	// record. Values never exceed it; the meaningful prefix is given by
	// the key's reported data size.
	ValueLen = 32
)

// SelectorHandleEvent is the method selector for the controller's
// request/response entry point. Every command goes through it; the command
// byte inside the record selects the operation.
const SelectorHandleEvent uint32 = 2

// Command codes (the record's command byte)
//
// Each command reads some request fields and fills some response fields.
// Only the read path is driven by this module; the remaining codes are
// defined because the record layout carries their sub-records.
const (
	// CmdReadBytes reads a key's value.
	//
	// Request: Key, Info.DataSize (echoed from a prior CmdReadKeyInfo).
	// Response: Bytes (full buffer, ValueLen bytes regardless of size).
	CmdReadBytes uint8 = 5

	// CmdWriteBytes writes a key's value. Defined for layout completeness;
	// this module never issues it.
	CmdWriteBytes uint8 = 6

	// CmdReadIndex resolves the key at a numeric index, for enumerating
	// the controller's key table. Request: Data32 (index). Response: Key.
	CmdReadIndex uint8 = 8

	// CmdReadKeyInfo reads a key's metadata.
	//
	// Request: Key.
	// Response: Info (data size, type code, attributes).
	CmdReadKeyInfo uint8 = 9

	// CmdReadPLimit reads the power limit sub-record. Response: PLimit.
	CmdReadPLimit uint8 = 11

	// CmdReadVers reads the controller firmware revision. Response: Vers.
	CmdReadVers uint8 = 12
)

// Result codes (the record's result byte)
//
// The result byte is the controller's own verdict, separate from the host
// status of the service call: a call can succeed at the transport level
// while the controller rejects the request.
const (
	// ResultOK means the controller accepted and executed the command.
	ResultOK uint8 = 0x00

	// ResultError is the controller's generic failure code.
	ResultError uint8 = 0x01

	// ResultKeyNotFound means the requested key does not exist in the
	// controller's key table.
	ResultKeyNotFound uint8 = 0x84
)

// ResultString returns a short name for a controller result code.
func ResultString(result uint8) string {
	switch result {
	case ResultOK:
		return "ok"
	case ResultError:
		return "error"
	case ResultKeyNotFound:
		return "key not found"
	default:
		return fmt.Sprintf("result %#02x", result)
	}
}
