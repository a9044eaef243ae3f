package receiver

// HandleInterrupt services the chip's interrupt line: it reads the pending
// causes, acknowledges exactly the bits it observed and dispatches the
// configured callbacks. It reports whether anything was pending. Call it
// from the goroutine watching the INT1 pin.
func (r *Receiver) HandleInterrupt() (bool, error) {
	r.mu.Lock()

	handled := false
	var events []func()

	// format change on the CP side
	fmtChange, err := r.space.Read(ioReg(0x43))
	if err != nil {
		r.mu.Unlock()
		return false, err
	}
	fmtChange &= 0x98
	if fmtChange != 0 {
		if err := r.space.Write(ioReg(0x44), fmtChange); err != nil {
			r.mu.Unlock()
			return false, err
		}
	}

	// format change on the digital side, only relevant on the HDMI path
	var fmtChangeDigital uint8
	if !r.input.analog() {
		v, err := r.space.Read(ioReg(0x6b))
		if err != nil {
			r.mu.Unlock()
			return false, err
		}
		fmtChangeDigital = v & r.info.fmtChangeDigitalMask
		if fmtChangeDigital != 0 {
			if err := r.space.Write(ioReg(0x6c), fmtChangeDigital); err != nil {
				r.mu.Unlock()
				return false, err
			}
		}
	}
	if fmtChange != 0 || fmtChangeDigital != 0 {
		r.logger.Debug("format change interrupt",
			"cp", fmtChange, "digital", fmtChangeDigital)
		handled = true
		if fn := r.config.FormatChangeFunc; fn != nil {
			events = append(events, fn)
		}
	}

	// +5V cable detect
	tx5v, err := r.space.Read(ioReg(0x70))
	if err != nil {
		r.mu.Unlock()
		return false, err
	}
	tx5v &= r.info.cableDetMask
	if tx5v != 0 {
		if err := r.space.Write(ioReg(0x71), tx5v); err != nil {
			r.mu.Unlock()
			return false, err
		}
		state, err := r.space.Read(ioReg(0x6f))
		if err != nil {
			r.mu.Unlock()
			return false, err
		}
		present := state&r.info.cableDetMask != 0
		r.cableDetected = present
		r.logger.Debug("cable detect interrupt", "present", present)
		handled = true
		if fn := r.config.CableDetectFunc; fn != nil {
			events = append(events, func() { fn(present) })
		}
	}

	r.mu.Unlock()

	// callbacks run unlocked so they may call back into the receiver
	for _, fn := range events {
		fn()
	}
	return handled, nil
}

// CableDetected returns the +5V cable detect state last observed by
// HandleInterrupt.
func (r *Receiver) CableDetected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cableDetected
}
