package wire

import "fmt"

// InvalidKeyError is returned when a key fails validation before any
// session call is made. The session is still valid; the operation was
// rejected client-side.
type InvalidKeyError struct {
	Key    string
	Reason string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %q: %s", e.Key, e.Reason)
}

// DecodeError is returned when a value buffer cannot be decoded as the
// requested Go type, either because the type code does not match or because
// the reported data size is wrong for the type.
type DecodeError struct {
	Key    string
	Type   TypeCode
	Size   uint32
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %q (type %q, %d bytes): %s", e.Key, e.Type.String(), e.Size, e.Reason)
}
