package gpu

import (
	"fmt"
	"strings"
)

// maxDrain bounds how many queued error flags Check will read. Some drivers
// keep returning the same flag when the context is lost.
const maxDrain = 16

// ErrorString returns the human readable name of a GL error code, worded the
// way gluErrorString reports it.
func ErrorString(code Enum) string {
	switch code {
	case NoError:
		return "no error"
	case InvalidEnum:
		return "invalid enumerant"
	case InvalidValue:
		return "invalid value"
	case InvalidOperation:
		return "invalid operation"
	case StackOverflow:
		return "stack overflow"
	case StackUnderflow:
		return "stack underflow"
	case OutOfMemory:
		return "out of memory"
	case InvalidFramebufferOperation:
		return "invalid framebuffer operation"
	}
	return fmt.Sprintf("unknown error 0x%04X", code)
}

// Error is the aggregate GL error state observed after a setup or teardown phase.
type Error struct {
	Op    string
	Codes []Enum
}

func (e *Error) Error() string {
	names := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		names[i] = ErrorString(c)
	}
	return fmt.Sprintf("could not %s: %s", e.Op, strings.Join(names, ", "))
}

// Has reports whether code was among the flags raised.
func (e *Error) Has(code Enum) bool {
	for _, c := range e.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// Drain reads and discards every pending error flag, returning what it found.
func Drain(api API) []Enum {
	var codes []Enum
	for i := 0; i < maxDrain; i++ {
		code := api.GetError()
		if code == NoError {
			break
		}
		codes = append(codes, code)
	}
	return codes
}

// Check returns an *Error naming op if any error flag is set.
func Check(api API, op string) error {
	codes := Drain(api)
	if len(codes) == 0 {
		return nil
	}
	return &Error{Op: op, Codes: codes}
}
