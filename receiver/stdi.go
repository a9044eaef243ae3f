package receiver

import "github.com/advrx/go-adv76xx/timings"

// stdiReadback is one sample of the standard identification counters:
// the block length (8 clock periods per line), the line count per field
// and the vsync width in lines. Polarity bits only carry meaning when the
// corresponding known flag is set; the SSPD cannot always tell.
type stdiReadback struct {
	bl   uint16
	lcf  uint16
	lcvs int

	hsPolKnown bool
	vsPolKnown bool
	pol        timings.SyncPolarities

	interlaced bool
}

// readSTDI samples the STDI and SSPD blocks. It fails with ErrNoLink when
// the blocks are not locked, lose lock during the readout, or report a
// measurement that cannot be a real signal.
func (r *Receiver) readSTDI() (stdiReadback, error) {
	var stdi stdiReadback

	if err := r.checkSTDILock(); err != nil {
		return stdi, err
	}

	bl, err := r.space.Read16(cpReg(0xb1), 0x3fff)
	if err != nil {
		return stdi, err
	}
	stdi.bl = bl

	lcf, err := r.space.Read16(cpReg(r.info.lcfReg), 0x7ff)
	if err != nil {
		return stdi, err
	}
	stdi.lcf = lcf

	lcvs, err := r.space.Read(cpReg(0xb3))
	if err != nil {
		return stdi, err
	}
	stdi.lcvs = int(lcvs >> 3)

	il, err := r.space.Read(ioReg(0x12))
	if err != nil {
		return stdi, err
	}
	stdi.interlaced = il&0x10 != 0

	if r.info.hasAFE {
		sspd, err := r.space.Read(cpReg(0xb5))
		if err != nil {
			return stdi, err
		}
		if sspd&0x03 == 0x01 {
			stdi.hsPolKnown = sspd&0x10 != 0
			if sspd&0x08 != 0 {
				stdi.pol |= timings.HSyncPositive
			}
			stdi.vsPolKnown = sspd&0x40 != 0
			if sspd&0x20 != 0 {
				stdi.pol |= timings.VSyncPositive
			}
		}
	} else {
		mode, err := r.space.Read(hdmiReg(0x05))
		if err != nil {
			return stdi, err
		}
		stdi.hsPolKnown, stdi.vsPolKnown = true, true
		if mode&0x20 != 0 {
			stdi.pol |= timings.HSyncPositive
		}
		if mode&0x10 != 0 {
			stdi.pol |= timings.VSyncPositive
		}
	}

	// lock may have dropped while we were reading
	if err := r.checkSTDILock(); err != nil {
		return stdiReadback{}, err
	}

	if stdi.lcf < 239 || stdi.bl < 8 || stdi.bl == 0x3fff {
		r.logger.Debug("implausible STDI readback",
			"lcf", stdi.lcf, "bl", stdi.bl, "lcvs", stdi.lcvs)
		return stdiReadback{}, ErrNoLink
	}

	r.logger.Debug("STDI readback",
		"lcf", stdi.lcf, "bl", stdi.bl, "lcvs", stdi.lcvs,
		"interlaced", stdi.interlaced)
	return stdi, nil
}

func (r *Receiver) checkSTDILock() error {
	noSTDI, err := r.noLockSTDI()
	if err != nil {
		return err
	}
	noSSPD, err := r.noLockSSPD()
	if err != nil {
		return err
	}
	if noSTDI || noSSPD {
		return ErrNoLink
	}
	return nil
}

// restartSTDI kicks the STDI block through one-shot mode back into
// continuous mode, forcing a fresh measurement.
func (r *Receiver) restartSTDI() error {
	for _, v := range []uint8{0x00, 0x04, 0x02} {
		if err := r.space.WriteMasked(cpReg(0x86), 0xf9, v); err != nil {
			return err
		}
	}
	return nil
}

// polarities returns the measured sync polarities, treating unknown as
// negative.
func (s stdiReadback) polarities() timings.SyncPolarities {
	var pol timings.SyncPolarities
	if s.hsPolKnown {
		pol |= s.pol & timings.HSyncPositive
	}
	if s.vsPolKnown {
		pol |= s.pol & timings.VSyncPositive
	}
	return pol
}
