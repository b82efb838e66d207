package smc

import "github.com/macsmc/smc/wire"

// Conn is a single session to the controller. Every operation is one or two
// blocking request/response exchanges over that session.
//
// A Conn is not safe for concurrent use; the controller protocol has no
// interleaving. Client maintains a pool of sessions for concurrent callers.
type Conn struct {
	transport Transport
	closed    bool
}

// Open locates the controller service on the host and opens a session to it.
// The caller must Close the returned Conn.
func Open() (*Conn, error) {
	t, err := openTransport()
	if err != nil {
		return nil, err
	}
	return OpenTransport(t), nil
}

// OpenTransport wraps an already-open transport in a Conn. This is the seam
// for tests and for alternative transports; Close closes the transport.
func OpenTransport(t Transport) *Conn {
	return &Conn{transport: t}
}

// Close releases the session. Operations on a closed Conn return
// ErrConnClosed. Closing twice is a no-op.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if status := c.transport.Close(); !status.IsSuccess() {
		return &CallError{Op: "close session", Status: status}
	}
	return nil
}

// GetKeyInfo queries the controller for a key's metadata: value size, type
// code and attributes. The key is given in encoded form (see wire.EncodeKey).
func (c *Conn) GetKeyInfo(key uint32) (wire.KeyInfo, error) {
	req := wire.KeyData{Key: key, Command: wire.CmdReadKeyInfo}
	resp, err := c.roundTrip("key info", &req)
	if err != nil {
		return wire.KeyInfo{}, err
	}
	return resp.Info, nil
}

// ReadKey reads a key's current value in two phases: a metadata query for
// the value's size and type, then the read itself echoing the reported size.
//
// Keys longer than four bytes are truncated to the first four; shorter keys
// are rejected with *wire.InvalidKeyError. When the metadata query fails the
// returned value carries only the key; when the read phase fails it keeps
// the metadata. The error is returned in both cases.
func (c *Conn) ReadKey(key string) (wire.KeyValue, error) {
	if len(key) > wire.KeyLen {
		key = key[:wire.KeyLen]
	}
	if err := wire.ValidateKey(key); err != nil {
		return wire.KeyValue{}, err
	}

	info, err := c.GetKeyInfo(wire.EncodeKey(key))
	if err != nil {
		return wire.KeyValue{Key: key}, err
	}
	return c.ReadKeyWithInfo(key, info)
}

// ReadKeyWithInfo performs the read phase alone, for callers that already
// hold the key's metadata. Key metadata never changes while the controller
// is up, so a cached wire.KeyInfo stays valid for the life of the session.
func (c *Conn) ReadKeyWithInfo(key string, info wire.KeyInfo) (wire.KeyValue, error) {
	if len(key) > wire.KeyLen {
		key = key[:wire.KeyLen]
	}
	if err := wire.ValidateKey(key); err != nil {
		return wire.KeyValue{}, err
	}

	val := wire.KeyValue{
		Key:      key,
		DataSize: info.DataSize,
		DataType: info.DataType,
	}

	req := wire.KeyData{Key: wire.EncodeKey(key), Command: wire.CmdReadBytes}
	req.Info.DataSize = info.DataSize

	resp, err := c.roundTrip("read bytes", &req)
	if err != nil {
		return val, err
	}

	val.Bytes = resp.Bytes
	return val, nil
}

// roundTrip performs one exchange with the controller. Both records start
// zeroed on every call; the controller reads trailing fields as significant,
// so stale memory must never go out. A call fails either at the host level
// (non-success status) or at the controller level (non-zero result byte in
// an otherwise successful call); both surface as *CallError.
func (c *Conn) roundTrip(op string, req *wire.KeyData) (wire.KeyData, error) {
	if c.closed {
		return wire.KeyData{}, ErrConnClosed
	}

	input := req.Marshal()
	var output [wire.StructSize]byte

	status := c.transport.Call(wire.SelectorHandleEvent, &input, &output)
	if !status.IsSuccess() {
		return wire.KeyData{}, &CallError{Op: op, Status: status}
	}

	resp := wire.UnmarshalKeyData(&output)
	if resp.Result != wire.ResultOK {
		return wire.KeyData{}, &CallError{Op: op, Status: status, Result: resp.Result}
	}
	return resp, nil
}
