//go:build !darwin || !cgo

package smc

// openTransport reports the controller service as unavailable. The real
// transport needs darwin with cgo; see OpenTransport for injecting one.
func openTransport() (Transport, error) {
	return nil, ErrServiceNotFound
}
