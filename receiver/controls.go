package receiver

import "fmt"

// SetBrightness sets the CP brightness, -128 to 127.
func (r *Receiver) SetBrightness(v int) error {
	if v < -128 || v > 127 {
		return fmt.Errorf("%w: brightness %d", ErrOutOfRange, v)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.space.Write(cpReg(0x3c), uint8(v))
}

// SetContrast sets the CP contrast, 0 to 255. 128 is unity.
func (r *Receiver) SetContrast(v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%w: contrast %d", ErrOutOfRange, v)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.space.Write(cpReg(0x3a), uint8(v))
}

// SetSaturation sets the CP saturation, 0 to 255. 128 is unity.
func (r *Receiver) SetSaturation(v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%w: saturation %d", ErrOutOfRange, v)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.space.Write(cpReg(0x3b), uint8(v))
}

// SetHue sets the CP hue, 0 to 128.
func (r *Receiver) SetHue(v int) error {
	if v < 0 || v > 128 {
		return fmt.Errorf("%w: hue %d", ErrOutOfRange, v)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.space.Write(cpReg(0x3d), uint8(v))
}

// SetSamplingPhase sets the analog sampling phase, 0 to 31. Finding the
// best phase for an analog source takes trying a number of phases and
// judging the picture; the chip cannot do it alone. Chips without an AFE
// reject this.
func (r *Receiver) SetSamplingPhase(v int) error {
	if !r.info.hasAFE {
		return fmt.Errorf("%s has no analog front end", r.variant)
	}
	if v < 0 || v > 0x1f {
		return fmt.Errorf("%w: sampling phase %d", ErrOutOfRange, v)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.space.Write(afeReg(0xc8), uint8(v))
}

// SetFreeRunColorManual selects between the default blue free run color
// and the one programmed with SetFreeRunColor.
func (r *Receiver) SetFreeRunColorManual(manual bool) error {
	var v uint8
	if manual {
		v = 1 << 2
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.space.WriteMasked(cpReg(0xbf), ^uint8(1<<2), v)
}

// SetFreeRunColor programs the color shown while free running, as 24-bit
// RGB.
func (r *Receiver) SetFreeRunColor(rgb uint32) error {
	if rgb > 0xffffff {
		return fmt.Errorf("%w: free run color %#x", ErrOutOfRange, rgb)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.space.Write(cpReg(0xc0), uint8(rgb>>16)); err != nil {
		return err
	}
	if err := r.space.Write(cpReg(0xc1), uint8(rgb>>8)); err != nil {
		return err
	}
	return r.space.Write(cpReg(0xc2), uint8(rgb))
}
