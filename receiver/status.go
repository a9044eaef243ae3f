package receiver

import "github.com/advrx/go-adv76xx/timings"

// InputStatus is the live signal state of the selected input.
type InputStatus struct {
	// NoPower is set when the chip core or CP is powered down
	NoPower bool

	// NoSignal is set when no stable signal is locked
	NoSignal bool

	// NoSync is set when the CP sees a different line count than it was
	// configured for
	NoSync bool
}

// Present reports whether a usable signal is locked.
func (s InputStatus) Present() bool { return !s.NoPower && !s.NoSignal && !s.NoSync }

// InputStatus probes the chip for the live signal state.
func (r *Receiver) InputStatus() (InputStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var st InputStatus
	var err error
	if st.NoPower, err = r.noPower(); err != nil {
		return st, err
	}
	if st.NoSignal, err = r.noSignal(); err != nil {
		return st, err
	}
	if st.NoSync, err = r.noLockCP(); err != nil {
		return st, err
	}
	return st, nil
}

// Capabilities describe what the selected input can process.
type Capabilities struct {
	MinPixelClock int64
	MaxPixelClock int64
	MaxWidth      int
	MaxHeight     int
}

// Capabilities returns the limits of the currently selected input.
func (r *Receiver) Capabilities() Capabilities {
	r.mu.Lock()
	defer r.mu.Unlock()

	caps := Capabilities{
		MinPixelClock: minPixelClock,
		MaxPixelClock: maxDigitalPixelClock,
		MaxWidth:      maxWidth,
		MaxHeight:     maxHeight,
	}
	if r.input.analog() {
		caps.MaxPixelClock = maxAnalogPixelClock
	}
	return caps
}

// SupportedTimings returns the format table the receiver resolves against.
func (r *Receiver) SupportedTimings() []timings.Timing {
	return append([]timings.Timing(nil), timings.Supported...)
}

// Status is a snapshot of the receiver's bookkeeping state.
type Status struct {
	Variant       Variant
	Input         Input
	Timing        timings.Timing
	EdidBlocks    int
	AspectRatio   timings.AspectRatio
	CableDetected bool
}

// Status returns a snapshot of the receiver state. It does not touch the
// bus; use InputStatus for the live signal state.
func (r *Receiver) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Status{
		Variant:       r.variant,
		Input:         r.input,
		Timing:        r.current,
		EdidBlocks:    r.edidBlocks,
		AspectRatio:   r.aspect,
		CableDetected: r.cableDetected,
	}
}
