//go:build darwin && cgo

package smc

/*
#cgo LDFLAGS: -framework IOKit

#include <stdlib.h>
#include <mach/mach.h>
#include <IOKit/IOKitLib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/macsmc/smc/wire"
)

// serviceName is the registry class name of the hardware-management service.
const serviceName = "AppleSMC"

// iokitTransport drives the controller through an IOKit user client session.
type iokitTransport struct {
	conn C.io_connect_t
}

// openTransport locates the controller service in the registry and opens a
// session to it. The matching dictionary is consumed by the lookup and the
// discovery handle is released as soon as the session exists.
func openTransport() (Transport, error) {
	name := C.CString(serviceName)
	defer C.free(unsafe.Pointer(name))

	service := C.IOServiceGetMatchingService(C.kIOMainPortDefault, C.IOServiceMatching(name))
	if service == 0 {
		return nil, ErrServiceNotFound
	}
	defer C.IOObjectRelease(service)

	var conn C.io_connect_t
	kr := C.IOServiceOpen(service, C.mach_task_self_, 0, &conn)
	if kr != C.KERN_SUCCESS {
		return nil, &OpenError{Status: wire.Status(kr)}
	}

	return &iokitTransport{conn: conn}, nil
}

func (t *iokitTransport) Call(selector uint32, input, output *[wire.StructSize]byte) wire.Status {
	outSize := C.size_t(len(output))
	kr := C.IOConnectCallStructMethod(
		t.conn,
		C.uint32_t(selector),
		unsafe.Pointer(&input[0]),
		C.size_t(len(input)),
		unsafe.Pointer(&output[0]),
		&outSize,
	)
	return wire.Status(kr)
}

func (t *iokitTransport) Close() wire.Status {
	return wire.Status(C.IOServiceClose(t.conn))
}
