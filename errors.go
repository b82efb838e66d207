package smc

import (
	"errors"
	"fmt"

	"github.com/macsmc/smc/wire"
)

var (
	// ErrServiceNotFound is returned by Open when no controller service is
	// registered with the host. This is the normal outcome on machines
	// without the controller and on builds where the real transport is
	// unavailable.
	ErrServiceNotFound = errors.New("smc: service not found")

	// ErrConnClosed is returned by operations on a closed Conn.
	ErrConnClosed = errors.New("smc: connection closed")

	// ErrClientClosed is returned by operations on a closed Client.
	ErrClientClosed = errors.New("smc: client closed")
)

// OpenError reports that the controller service was found but refused to
// open a session.
//
// Common causes:
//   - insufficient privileges
//   - exclusive access held by another process
//
// Session handling: no session exists; there is nothing to close.
type OpenError struct {
	Status wire.Status
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("smc: open service: %s", e.Status)
}

// CallError reports a failed request/response exchange. The failure happens
// at one of two levels: the host rejected the service call (Status is not
// success, Result is zero), or the call went through and the controller
// rejected the command (Status is success, Result carries the controller's
// code).
//
// Common causes:
//   - key not found (Result 0x84)
//   - session handle invalidated (Status not-open, IPC error)
//   - controller busy or command malformed
//
// Session handling: depends on the status; see ShouldCloseSession.
type CallError struct {
	Op     string      // the command that failed ("key info", "read bytes")
	Status wire.Status // host status of the service call
	Result uint8       // controller result byte, when the call went through
}

func (e *CallError) Error() string {
	if !e.Status.IsSuccess() {
		return fmt.Sprintf("smc: %s: %s", e.Op, e.Status)
	}
	return fmt.Sprintf("smc: %s: %s", e.Op, wire.ResultString(e.Result))
}

// IsKeyNotFound reports whether err means the requested key does not exist
// in the controller's key table. The controller signals this two ways: a
// not-found host status, or a successful call whose result byte is the
// key-not-found code. Both count.
//
// Missing keys are routine. Hardware revisions carry different key tables,
// so callers probing for optional keys treat this as absence, not failure.
func IsKeyNotFound(err error) bool {
	var ce *CallError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Result == wire.ResultKeyNotFound || ce.Status == wire.StatusNotFound
}

// ShouldCloseSession reports whether err condemns the session itself rather
// than the single command. Holders of pooled sessions destroy the session
// when this returns true and reuse it otherwise.
//
// Returns true for:
//   - ErrConnClosed
//   - CallError with a host status that invalidates the handle (IPC error,
//     device gone, session not open)
//
// Returns false for:
//   - nil
//   - controller-level results (missing keys, command errors)
//   - validation and decode errors, which never reach the session
func ShouldCloseSession(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConnClosed) {
		return true
	}

	var ce *CallError
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Status {
	case wire.StatusInvalid, wire.StatusIPCError, wire.StatusNoDevice,
		wire.StatusNotOpen, wire.StatusOffline, wire.StatusNotAttached:
		return true
	}
	return false
}
