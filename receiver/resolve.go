package receiver

import (
	"github.com/advrx/go-adv76xx/timings"
)

// QueryTimings measures the format the selected input is carrying and
// returns it. The resolved format also becomes the receiver's current
// timing. It returns ErrNoLink when no stable signal is present (or when
// detection restarted the STDI block and should simply be retried), and
// ErrFormatUnrecognized when a stable signal matches nothing the driver
// knows.
func (r *Receiver) QueryTimings() (timings.Timing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if no, err := r.noSignal(); err != nil {
		return timings.Timing{}, err
	} else if no {
		r.logger.Debug("no valid signal")
		return timings.Timing{}, ErrNoLink
	}

	stdi, err := r.readSTDI()
	if err != nil {
		return timings.Timing{}, err
	}

	var t timings.Timing
	if !r.input.analog() {
		t, err = r.readDigitalTimings(stdi)
	} else {
		t, err = r.resolveAnalogTimings(stdi)
	}
	if err != nil {
		return timings.Timing{}, err
	}

	// the signal may have dropped while we were reading
	if no, err := r.noSignal(); err != nil {
		return timings.Timing{}, err
	} else if no {
		r.logger.Debug("signal lost during readout")
		return timings.Timing{}, ErrNoLink
	}

	if (r.input.analog() && t.PixelClock > maxAnalogPixelClock) ||
		(!r.input.analog() && t.PixelClock > maxDigitalPixelClock) {
		r.logger.Debug("pixel clock out of range", "pixelclock", t.PixelClock)
		return timings.Timing{}, ErrOutOfRange
	}

	r.current = t
	r.logger.Info("timings detected", "timing", t.String())
	return t, nil
}

// readDigitalTimings reads the measured geometry straight off the HDMI
// block. When a table entry agrees within 250 kHz the standard tags are
// attached; the measured geometry is reported as is.
func (r *Receiver) readDigitalTimings(stdi stdiReadback) (timings.Timing, error) {
	var t timings.Timing
	t.Interlaced = stdi.interlaced

	read16 := func(off uint8, mask uint16) (int, error) {
		v, err := r.space.Read16(hdmiReg(off), mask)
		return int(v), err
	}

	var err error
	if t.Width, err = read16(0x07, 0xfff); err != nil {
		return t, err
	}
	if t.Height, err = read16(0x09, 0xfff); err != nil {
		return t, err
	}
	if t.PixelClock, err = r.info.readPixelClock(r.space); err != nil {
		return t, err
	}
	if t.HFrontPorch, err = read16(0x20, 0x3ff); err != nil {
		return t, err
	}
	if t.HSync, err = read16(0x22, 0x3ff); err != nil {
		return t, err
	}
	if t.HBackPorch, err = read16(0x24, 0x3ff); err != nil {
		return t, err
	}
	// vertical intervals are reported in half lines
	if t.VFrontPorch, err = read16(0x2a, 0x1fff); err != nil {
		return t, err
	}
	t.VFrontPorch /= 2
	if t.VSync, err = read16(0x2e, 0x1fff); err != nil {
		return t, err
	}
	t.VSync /= 2
	if t.VBackPorch, err = read16(0x32, 0x1fff); err != nil {
		return t, err
	}
	t.VBackPorch /= 2

	mode, err := r.space.Read(hdmiReg(0x05))
	if err != nil {
		return t, err
	}
	if mode&0x20 != 0 {
		t.Polarities |= timings.HSyncPositive
	}
	if mode&0x10 != 0 {
		t.Polarities |= timings.VSyncPositive
	}

	if t.Interlaced {
		field1, err := read16(0x0b, 0xfff)
		if err != nil {
			return t, err
		}
		t.Height += field1
		if t.ILVFrontPorch, err = read16(0x2c, 0x1fff); err != nil {
			return t, err
		}
		t.ILVFrontPorch /= 2
		if t.ILVSync, err = read16(0x30, 0x1fff); err != nil {
			return t, err
		}
		t.ILVSync /= 2
		if t.VBackPorch, err = read16(0x34, 0x1fff); err != nil {
			return t, err
		}
		t.VBackPorch /= 2
	}

	if match, ok := timings.FindMatch(t, 250000); ok {
		t.Standards = match.Standards
		t.Flags = match.Flags
	}
	return t, nil
}

// resolveAnalogTimings turns an STDI sample into a format. The LCVS
// counter is inaccurate, so a failed resolution is retried with lcvs+1 and
// lcvs-1 before concluding. When every attempt fails the STDI block is
// restarted once for a fresh measurement and ErrNoLink tells the caller to
// retry; a second full failure is ErrFormatUnrecognized.
func (r *Receiver) resolveAnalogTimings(stdi stdiReadback) (timings.Timing, error) {
	if t, ok := r.stdiToTimings(stdi); ok {
		r.stdiRestartArmed = true
		return t, nil
	}
	stdi.lcvs++
	r.logger.Debug("retrying with lcvs + 1", "lcvs", stdi.lcvs)
	if t, ok := r.stdiToTimings(stdi); ok {
		r.stdiRestartArmed = true
		return t, nil
	}
	stdi.lcvs -= 2
	r.logger.Debug("retrying with lcvs - 1", "lcvs", stdi.lcvs)
	if t, ok := r.stdiToTimings(stdi); ok {
		r.stdiRestartArmed = true
		return t, nil
	}

	// The STDI block may have measured garbage, especially lcvs and
	// lcf. Restart it once to force a fresh measurement; the retry then
	// decides whether the format is genuinely unknown.
	if r.stdiRestartArmed {
		r.logger.Debug("restarting STDI")
		if err := r.restartSTDI(); err != nil {
			return timings.Timing{}, err
		}
		r.stdiRestartArmed = false
		return timings.Timing{}, ErrNoLink
	}
	r.logger.Debug("format not supported",
		"lcf", stdi.lcf, "bl", stdi.bl, "lcvs", stdi.lcvs)
	return timings.Timing{}, ErrFormatUnrecognized
}

// stdiToTimings resolves one STDI sample: first against the format table
// on frame height, vsync width and derived pixel clock, then through the
// CVT and GTF reconstruction formulas.
func (r *Receiver) stdiToTimings(stdi stdiReadback) (timings.Timing, bool) {
	if stdi.bl == 0 {
		return timings.Timing{}, false
	}
	// the block length counts 8 pixel clocks per measured line
	hfreq := fscHz * 8 / int(stdi.bl)
	totalLines := int(stdi.lcf) + 1

	for _, entry := range timings.Supported {
		if entry.VTotal() != totalLines || entry.VSync != stdi.lcvs {
			continue
		}
		pclk := int64(hfreq) * int64(entry.HTotal())
		if pclk < entry.PixelClock+1000000 && pclk > entry.PixelClock-1000000 {
			return entry, true
		}
	}

	pol := stdi.polarities()
	if t, ok := timings.DetectCVT(totalLines, hfreq, stdi.lcvs, pol); ok {
		return t, true
	}
	if t, ok := timings.DetectGTF(totalLines, hfreq, stdi.lcvs, pol, r.aspect); ok {
		return t, true
	}
	return timings.Timing{}, false
}
