package regmap

import (
	"errors"
	"fmt"
)

// ErrNotSupported reports access to a register page that is absent from the
// active chip variant. It is a caller-facing failure, never retried, and
// distinct from a bus fault. Match with errors.Is.
var ErrNotSupported = errors.New("register page not supported on this variant")

// NotSupportedError carries the offending register alongside ErrNotSupported.
type NotSupportedError struct {
	Reg Reg
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("register %s: page not supported on this variant", e.Reg)
}

func (e *NotSupportedError) Unwrap() error { return ErrNotSupported }

// BusError represents a transport failure that survived the write retry
// policy (or any read failure; reads are not retried).
type BusError struct {
	// Op is the access that failed ("read", "write", "write block")
	Op string

	// Reg is the logical register being accessed
	Reg Reg

	// Err is the underlying transport error
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

// IsBusError returns true if the error is a BusError.
func IsBusError(err error) bool {
	var be *BusError
	return errors.As(err, &be)
}
