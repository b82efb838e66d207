package wire

import "fmt"

// Status is the return code of a host service call. Values come straight
// from the host's I/O layer and are forwarded without translation; zero is
// the only success value.
type Status uint32

// Host service-call status codes. The non-success values occupy the host
// I/O error page (0xE00002xx) plus one generic invalid marker.
const (
	StatusSuccess         Status = 0x00000000
	StatusInvalid         Status = 0xE0000001
	StatusError           Status = 0xE00002BC
	StatusNoMemory        Status = 0xE00002BD
	StatusNoResources     Status = 0xE00002BE
	StatusIPCError        Status = 0xE00002BF
	StatusNoDevice        Status = 0xE00002C0
	StatusNotPrivileged   Status = 0xE00002C1
	StatusBadArgument     Status = 0xE00002C2
	StatusExclusiveAccess Status = 0xE00002C5
	StatusUnsupported     Status = 0xE00002C7
	StatusInternalError   Status = 0xE00002C9
	StatusIOError         Status = 0xE00002CA
	StatusNotOpen         Status = 0xE00002CD
	StatusBusy            Status = 0xE00002D5
	StatusTimeout         Status = 0xE00002D6
	StatusOffline         Status = 0xE00002D7
	StatusNotReady        Status = 0xE00002D8
	StatusNotAttached     Status = 0xE00002D9
	StatusAborted         Status = 0xE00002EB
	StatusNotResponding   Status = 0xE00002ED
	StatusNotFound        Status = 0xE00002F0
)

var statusNames = map[Status]string{
	StatusSuccess:         "success",
	StatusInvalid:         "invalid",
	StatusError:           "general error",
	StatusNoMemory:        "no memory",
	StatusNoResources:     "no resources",
	StatusIPCError:        "IPC error",
	StatusNoDevice:        "no such device",
	StatusNotPrivileged:   "not privileged",
	StatusBadArgument:     "bad argument",
	StatusExclusiveAccess: "exclusive access",
	StatusUnsupported:     "unsupported",
	StatusInternalError:   "internal error",
	StatusIOError:         "I/O error",
	StatusNotOpen:         "not open",
	StatusBusy:            "busy",
	StatusTimeout:         "timeout",
	StatusOffline:         "offline",
	StatusNotReady:        "not ready",
	StatusNotAttached:     "not attached",
	StatusAborted:         "aborted",
	StatusNotResponding:   "not responding",
	StatusNotFound:        "not found",
}

// IsSuccess reports whether the status is the success value.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status %#08x", uint32(s))
}
