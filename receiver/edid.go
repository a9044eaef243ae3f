package receiver

import (
	"time"

	"github.com/advrx/go-adv76xx/timings"
)

// edidBlockSize is the size of one EDID block.
const edidBlockSize = 128

// SetEDID programs the given EDID into the chip's internal RAM and
// re-asserts hotplug 100 ms later so the source re-reads it. The blob must
// be 1 or 2 whole blocks; use ClearEDID to take the EDID away. Only pad 0
// exists on the supported chips.
//
// The chip verifies the checksums while enabling the RAM; an EDID it never
// accepts returns ErrEdidTimeout and leaves hotplug deasserted.
func (r *Receiver) SetEDID(pad int, blob []byte) error {
	if pad != 0 {
		return &EdidRequestError{Reason: "only pad 0 is supported"}
	}
	if len(blob) == 0 {
		return &EdidRequestError{Reason: "empty EDID, use ClearEDID"}
	}
	if len(blob)%edidBlockSize != 0 {
		return &EdidRequestError{Reason: "length not a multiple of 128"}
	}
	blocks := len(blob) / edidBlockSize
	if blocks > r.info.maxEdidBlocks {
		return &EdidSizeError{Blocks: blocks, MaxBlocks: r.info.maxEdidBlocks}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelHotplugLocked()

	r.edid = append([]byte(nil), blob...)
	r.edidBlocks = blocks
	r.aspect = timings.RatioFromEDID(blob[0x15], blob[0x16])

	return r.writeEDIDRAM()
}

// GetEDID returns a copy of the currently programmed EDID. The result is
// empty after ClearEDID or before any SetEDID.
func (r *Receiver) GetEDID(pad int) ([]byte, error) {
	if pad != 0 {
		return nil, &EdidRequestError{Reason: "only pad 0 is supported"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]byte(nil), r.edid...), nil
}

// ClearEDID deasserts hotplug, disables the EDID RAM and drops the stored
// blob. The aspect ratio hint reverts to 16:9.
func (r *Receiver) ClearEDID() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelHotplugLocked()
	r.notifyHotplugLocked(false)

	if err := r.space.WriteMasked(repReg(r.info.edidCtrlReg), 0xf0, 0x0); err != nil {
		return err
	}

	r.edid = nil
	r.edidBlocks = 0
	r.aspect = timings.DefaultAspect
	return nil
}

// writeEDIDRAM performs the programming protocol: hotplug down, RAM access
// disabled, chunked write, RAM access enabled, then poll until the chip
// reports the contents valid. Called with the lock held.
func (r *Receiver) writeEDIDRAM() error {
	r.logger.Debug("writing EDID", "blocks", r.edidBlocks)

	r.notifyHotplugLocked(false)

	// close the DDC side while the RAM is inconsistent
	if err := r.space.WriteMasked(repReg(r.info.edidCtrlReg), 0xf0, 0x0); err != nil {
		return err
	}

	if err := r.space.WriteBlock(edidReg(0x00), r.edid); err != nil {
		return err
	}

	// the chip computes the checksums and re-opens the DDC side
	if err := r.space.WriteMasked(repReg(r.info.edidCtrlReg), 0xf0, 0x1); err != nil {
		return err
	}

	ready := false
	for i := 0; i < r.edidPollTries; i++ {
		status, err := r.space.Read(repReg(r.info.edidStatusReg))
		if err != nil {
			return err
		}
		if status&0x01 != 0 {
			ready = true
			break
		}
		time.Sleep(r.edidPollInterval)
	}
	if !ready {
		r.logger.Error("EDID RAM never became ready")
		return ErrEdidTimeout
	}

	r.scheduleHotplugLocked()
	return nil
}

// scheduleHotplugLocked arms the deferred hotplug assertion. A SetEDID,
// ClearEDID or Close before it fires cancels it; the generation counter
// keeps a stale timer that already fired from asserting out of order.
func (r *Receiver) scheduleHotplugLocked() {
	r.hotplugGen++
	gen := r.hotplugGen
	r.hotplugTimer = time.AfterFunc(r.hotplugDelay, func() {
		r.mu.Lock()
		if r.closed || gen != r.hotplugGen {
			r.mu.Unlock()
			return
		}
		r.hotplugTimer = nil
		fn := r.config.HotplugFunc
		r.mu.Unlock()

		r.logger.Debug("asserting hotplug")
		if fn != nil {
			fn(true)
		}
	})
}

func (r *Receiver) cancelHotplugLocked() {
	r.hotplugGen++
	if r.hotplugTimer != nil {
		r.hotplugTimer.Stop()
		r.hotplugTimer = nil
	}
}

func (r *Receiver) notifyHotplugLocked(asserted bool) {
	if fn := r.config.HotplugFunc; fn != nil {
		fn(asserted)
	}
}
