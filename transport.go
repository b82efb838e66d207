package smc

import "github.com/macsmc/smc/wire"

// Transport carries fixed-size records to the controller service and back.
// It is the host-side primitive under Conn: one blocking call per exchange,
// returning the host status of the call. Interpreting the record contents is
// the caller's job.
//
// The real transport binds to the platform's hardware-management service and
// only builds on darwin with cgo enabled; on every other build Open reports
// the service as unavailable. Alternative implementations (simulators, fakes)
// plug in through OpenTransport.
type Transport interface {
	// Call performs one request/response exchange through the given method
	// selector. The output buffer is overwritten when the call succeeds.
	Call(selector uint32, input, output *[wire.StructSize]byte) wire.Status

	// Close releases the underlying service session.
	Close() wire.Status
}
