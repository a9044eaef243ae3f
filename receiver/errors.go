package receiver

import (
	"errors"
	"fmt"
)

// ErrNoLink indicates that the selected input carries no usable signal:
// the chip is powered down, nothing is locked, or detection needed a
// restart and must be retried.
var ErrNoLink = errors.New("no video link on the selected input")

// ErrFormatUnrecognized indicates that a signal is present but its
// measured geometry matches no known table entry and cannot be
// reconstructed by the CVT or GTF formulas.
var ErrFormatUnrecognized = errors.New("video format not recognized")

// ErrOutOfRange indicates a timing or control value outside what the chip
// can process.
var ErrOutOfRange = errors.New("value out of range")

// ErrEdidTimeout indicates that the EDID RAM never signalled readiness
// after programming.
var ErrEdidTimeout = errors.New("EDID RAM did not become ready")

// EdidSizeError indicates an EDID blob larger than the chip's EDID RAM.
type EdidSizeError struct {
	Blocks    int
	MaxBlocks int
}

func (e *EdidSizeError) Error() string {
	return fmt.Sprintf("EDID of %d blocks exceeds the %d block RAM", e.Blocks, e.MaxBlocks)
}

// EdidRequestError indicates a malformed EDID request: an empty blob, a
// length that is not a multiple of 128, or an unsupported pad.
type EdidRequestError struct {
	Reason string
}

func (e *EdidRequestError) Error() string {
	return fmt.Sprintf("invalid EDID request: %s", e.Reason)
}
