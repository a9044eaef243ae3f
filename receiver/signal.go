package receiver

// Signal presence probes. Each reads the live chip state; errors bubble up
// so a dead bus is never mistaken for a missing signal.

// noPower reports whether the chip core or the CP is powered down.
func (r *Receiver) noPower() (bool, error) {
	v, err := r.space.Read(ioReg(0x0c))
	if err != nil {
		return false, err
	}
	return v&0x24 != 0, nil
}

// noSignalTMDS reports whether the TMDS pair of port A carries no clock.
func (r *Receiver) noSignalTMDS() (bool, error) {
	v, err := r.space.Read(ioReg(0x6a))
	if err != nil {
		return false, err
	}
	return v&0x10 == 0, nil
}

// noLockTMDS reports whether the TMDS PLL has not locked.
func (r *Receiver) noLockTMDS() (bool, error) {
	v, err := r.space.Read(ioReg(0x6a))
	if err != nil {
		return false, err
	}
	return v&r.info.tmdsLockMask != r.info.tmdsLockMask, nil
}

// noLockSSPD reports whether the sync source polarity detector has not
// locked. Chips without an AFE have no SSPD registers and are assumed
// locked.
func (r *Receiver) noLockSSPD() (bool, error) {
	if !r.info.hasAFE {
		return false, nil
	}
	v, err := r.space.Read(cpReg(0xb5))
	if err != nil {
		return false, err
	}
	return v&0xd0 != 0xd0, nil
}

// noLockSTDI reports whether the standard identification block has not
// locked.
func (r *Receiver) noLockSTDI() (bool, error) {
	v, err := r.space.Read(cpReg(0xb1))
	if err != nil {
		return false, err
	}
	return v&0x80 == 0, nil
}

// noLockCP reports whether the CP sees a different line count than it was
// configured for. Only meaningful on chips with an AFE.
func (r *Receiver) noLockCP() (bool, error) {
	if !r.info.hasAFE {
		return false, nil
	}
	v, err := r.space.Read(ioReg(0x12))
	if err != nil {
		return false, err
	}
	return v&0x01 != 0, nil
}

// noSignal combines the probes relevant for the selected input.
func (r *Receiver) noSignal() (bool, error) {
	for _, probe := range []func() (bool, error){r.noPower, r.noLockSTDI, r.noLockSSPD} {
		no, err := probe()
		if err != nil || no {
			return no, err
		}
	}
	if !r.input.analog() {
		for _, probe := range []func() (bool, error){r.noLockTMDS, r.noSignalTMDS} {
			no, err := probe()
			if err != nil || no {
				return no, err
			}
		}
	}
	return false, nil
}
