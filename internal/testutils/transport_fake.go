package testutils

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/macsmc/smc/wire"
)

// FakeKey is one entry in the fake controller's key table.
type FakeKey struct {
	Type       wire.TypeCode
	Data       []byte
	Attributes uint8
}

// FakeTransport is a transport backed by an in-memory key table. It answers
// key info and read bytes commands the way the real controller does (missing
// keys get a successful call with the key-not-found result byte) and records
// every request for inspection.
//
// The zero status values mean success; set the status fields to force
// failures at the host or controller level.
type FakeTransport struct {
	mu     sync.Mutex
	keys   map[uint32]FakeKey
	calls  []wire.KeyData
	closed bool

	// CallStatus, when non-zero, is returned by every Call before the
	// request is interpreted.
	CallStatus wire.Status

	// InfoStatus and ReadStatus, when non-zero, are returned as the host
	// status of the matching command.
	InfoStatus wire.Status
	ReadStatus wire.Status

	// ReadResult, when non-zero, is placed in the result byte of read
	// bytes responses for keys that exist.
	ReadResult uint8

	// CloseStatus is returned by Close.
	CloseStatus wire.Status
}

// NewFakeTransport creates a fake transport with an empty key table.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{keys: make(map[uint32]FakeKey)}
}

// SetKey installs or replaces a key in the fake's key table.
func (t *FakeTransport) SetKey(key string, typ wire.TypeCode, data ...byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.keys[wire.EncodeKey(key)] = FakeKey{Type: typ, Data: data}
}

// SetFloat32 installs a key holding a little-endian IEEE 754 value.
func (t *FakeTransport) SetFloat32(key string, value float32) {
	var data [4]byte
	binary.LittleEndian.PutUint32(data[:], math.Float32bits(value))
	t.SetKey(key, wire.TypeFloat, data[:]...)
}

// SetSP78 installs a key holding a signed 7.8 fixed-point value.
func (t *FakeTransport) SetSP78(key string, value float64) {
	var data [2]byte
	binary.BigEndian.PutUint16(data[:], uint16(int16(value*256)))
	t.SetKey(key, wire.TypeSP78, data[:]...)
}

// SetFPE2 installs a key holding an unsigned 14.2 fixed-point value.
func (t *FakeTransport) SetFPE2(key string, value float64) {
	var data [2]byte
	binary.BigEndian.PutUint16(data[:], uint16(value*4))
	t.SetKey(key, wire.TypeFPE2, data[:]...)
}

// SetUint8 installs a single-byte unsigned key.
func (t *FakeTransport) SetUint8(key string, value uint8) {
	t.SetKey(key, wire.TypeUint8, value)
}

// Call interprets one request record against the key table.
func (t *FakeTransport) Call(selector uint32, input, output *[wire.StructSize]byte) wire.Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	req := wire.UnmarshalKeyData(input)
	t.calls = append(t.calls, req)

	if t.closed {
		return wire.StatusNotOpen
	}
	if t.CallStatus != wire.StatusSuccess {
		return t.CallStatus
	}
	if selector != wire.SelectorHandleEvent {
		return wire.StatusBadArgument
	}

	resp := wire.KeyData{Key: req.Key}

	switch req.Command {
	case wire.CmdReadKeyInfo:
		if t.InfoStatus != wire.StatusSuccess {
			return t.InfoStatus
		}
		entry, ok := t.keys[req.Key]
		if !ok {
			resp.Result = wire.ResultKeyNotFound
			break
		}
		resp.Info = wire.KeyInfo{
			DataSize:       uint32(len(entry.Data)),
			DataType:       entry.Type,
			DataAttributes: entry.Attributes,
		}

	case wire.CmdReadBytes:
		if t.ReadStatus != wire.StatusSuccess {
			return t.ReadStatus
		}
		entry, ok := t.keys[req.Key]
		switch {
		case !ok:
			resp.Result = wire.ResultKeyNotFound
		case t.ReadResult != wire.ResultOK:
			resp.Result = t.ReadResult
		case req.Info.DataSize != uint32(len(entry.Data)):
			// The real controller needs the reported size echoed back.
			resp.Result = wire.ResultError
		default:
			copy(resp.Bytes[:], entry.Data)
		}

	default:
		resp.Result = wire.ResultError
	}

	buf := resp.Marshal()
	*output = buf
	return wire.StatusSuccess
}

// Close marks the transport closed. Further calls answer with a not-open
// status.
func (t *FakeTransport) Close() wire.Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return t.CloseStatus
}

// Calls returns a copy of every request record received so far.
func (t *FakeTransport) Calls() []wire.KeyData {
	t.mu.Lock()
	defer t.mu.Unlock()
	calls := make([]wire.KeyData, len(t.calls))
	copy(calls, t.calls)
	return calls
}

// CallsFor returns the request records carrying the given command code.
func (t *FakeTransport) CallsFor(command uint8) []wire.KeyData {
	t.mu.Lock()
	defer t.mu.Unlock()
	var calls []wire.KeyData
	for _, call := range t.calls {
		if call.Command == command {
			calls = append(calls, call)
		}
	}
	return calls
}

// Closed reports whether Close was called.
func (t *FakeTransport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
