package receiver

import (
	"fmt"

	"github.com/advrx/go-adv76xx/regmap"
	"github.com/advrx/go-adv76xx/timings"
)

// Pixel clock limits of the two pipelines, and the chip-wide geometry cap.
const (
	maxAnalogPixelClock  = 170000000
	maxDigitalPixelClock = 225000000
	minPixelClock        = 27000000
	maxWidth             = 1920
	maxHeight            = 1200
)

// fscHz is the subcarrier reference the free run line length is derived
// from.
const fscHz = 28636360

// RGBQuantizationRange selects the RGB output range handling.
type RGBQuantizationRange int

const (
	// RGBRangeAuto derives the range from the incoming signal type
	RGBRangeAuto RGBQuantizationRange = iota

	// RGBRangeLimited forces limited range (16-235)
	RGBRangeLimited

	// RGBRangeFull forces full range (0-255)
	RGBRangeFull
)

// videoStandard ties a format table entry to the chip's predefined
// vid_std/v_freq code points.
type videoStandard struct {
	timing timings.Timing
	vidStd uint8
	vFreq  uint8
}

// Predefined standards per primary mode, sorted by number of lines.
var (
	analogComponentStandards = []videoStandard{
		{timings.CEA720x576p50, 0x0b, 0x00},
		{timings.CEA1280x720p50, 0x19, 0x01},
		{timings.CEA1280x720p60, 0x19, 0x00},
		{timings.CEA1920x1080p24, 0x1e, 0x04},
		{timings.CEA1920x1080p25, 0x1e, 0x03},
		{timings.CEA1920x1080p30, 0x1e, 0x02},
		{timings.CEA1920x1080p50, 0x1e, 0x01},
		{timings.CEA1920x1080p60, 0x1e, 0x00},
	}

	analogGraphicsStandards = []videoStandard{
		{timings.DMT640x480p60, 0x08, 0x00},
		{timings.DMT640x480p72, 0x09, 0x00},
		{timings.DMT640x480p75, 0x0a, 0x00},
		{timings.DMT640x480p85, 0x0b, 0x00},
		{timings.DMT800x600p56, 0x00, 0x00},
		{timings.DMT800x600p60, 0x01, 0x00},
		{timings.DMT800x600p72, 0x02, 0x00},
		{timings.DMT800x600p75, 0x03, 0x00},
		{timings.DMT800x600p85, 0x04, 0x00},
		{timings.DMT1024x768p60, 0x0c, 0x00},
		{timings.DMT1024x768p70, 0x0d, 0x00},
		{timings.DMT1024x768p75, 0x0e, 0x00},
		{timings.DMT1024x768p85, 0x0f, 0x00},
		{timings.DMT1280x1024p60, 0x05, 0x00},
		{timings.DMT1280x1024p75, 0x06, 0x00},
		{timings.DMT1360x768p60, 0x12, 0x00},
		{timings.DMT1366x768p60, 0x13, 0x00},
		{timings.DMT1400x1050p60, 0x14, 0x00},
		{timings.DMT1400x1050p75, 0x15, 0x00},
		{timings.DMT1600x1200p60, 0x16, 0x00},
		{timings.DMT1680x1050p60, 0x18, 0x00},
		{timings.DMT1920x1200p60RB, 0x19, 0x00},
	}

	hdmiComponentStandards = []videoStandard{
		{timings.CEA720x480p59, 0x0a, 0x00},
		{timings.CEA720x576p50, 0x0b, 0x00},
		{timings.CEA1280x720p50, 0x13, 0x01},
		{timings.CEA1280x720p60, 0x13, 0x00},
		{timings.CEA1920x1080p24, 0x1e, 0x04},
		{timings.CEA1920x1080p25, 0x1e, 0x03},
		{timings.CEA1920x1080p30, 0x1e, 0x02},
		{timings.CEA1920x1080p50, 0x1e, 0x01},
		{timings.CEA1920x1080p60, 0x1e, 0x00},
	}

	hdmiGraphicsStandards = []videoStandard{
		{timings.DMT640x480p60, 0x08, 0x00},
		{timings.DMT640x480p72, 0x09, 0x00},
		{timings.DMT640x480p75, 0x0a, 0x00},
		{timings.DMT640x480p85, 0x0b, 0x00},
		{timings.DMT800x600p56, 0x00, 0x00},
		{timings.DMT800x600p60, 0x01, 0x00},
		{timings.DMT800x600p72, 0x02, 0x00},
		{timings.DMT800x600p75, 0x03, 0x00},
		{timings.DMT800x600p85, 0x04, 0x00},
		{timings.DMT1024x768p60, 0x0c, 0x00},
		{timings.DMT1024x768p70, 0x0d, 0x00},
		{timings.DMT1024x768p75, 0x0e, 0x00},
		{timings.DMT1024x768p85, 0x0f, 0x00},
		{timings.DMT1280x1024p60, 0x05, 0x00},
		{timings.DMT1280x1024p75, 0x06, 0x00},
	}
)

// SetInput routes the given physical input to the pixel pipeline. The
// outputs are tristated during the switch. Selecting an analog input on a
// chip without an analog front end fails.
func (r *Receiver) SetInput(in Input) error {
	if in.analog() && !r.info.hasAFE {
		return fmt.Errorf("%s has no analog front end", r.variant)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug("selecting input", "input", in.String())
	r.input = in

	if err := r.disableInput(); err != nil {
		return err
	}
	if err := r.selectInput(); err != nil {
		return err
	}
	return r.enableInput()
}

// disableInput tristates the video core outputs, mutes audio and drops the
// TMDS termination.
func (r *Receiver) disableInput() error {
	if err := r.space.Write(ioReg(0x15), 0xbe); err != nil {
		return err
	}
	if err := r.space.Write(hdmiReg(0x1a), 0x1a); err != nil {
		return err
	}
	return r.info.setTermination(r.space, false)
}

// selectInput applies the recommended settings for the selected path and
// powers the front end accordingly.
func (r *Receiver) selectInput() error {
	if r.input.analog() {
		if err := r.space.WriteSeq(r.info.analogPreset); err != nil {
			return err
		}
		return r.space.WriteSeq([]regmap.WriteOp{
			{Reg: afeReg(0x00), Val: 0x08}, // power up ADC
			{Reg: afeReg(0x01), Val: 0x06}, // power up analog front end
			{Reg: afeReg(0xc8), Val: 0x00}, // phase control
		})
	}

	if err := r.space.WriteSeq(r.info.hdmiPreset); err != nil {
		return err
	}
	if r.info.hasAFE {
		err := r.space.WriteSeq([]regmap.WriteOp{
			{Reg: afeReg(0x00), Val: 0xff}, // power down ADC
			{Reg: afeReg(0x01), Val: 0xfe}, // power down analog front end
			{Reg: afeReg(0xc8), Val: 0x40}, // phase control
		})
		if err != nil {
			return err
		}
	}
	return r.space.WriteSeq([]regmap.WriteOp{
		{Reg: cpReg(0x3e), Val: 0x00}, // CP core pre-gain
		{Reg: cpReg(0xc3), Val: 0x39}, // CP coast control, graphics mode
		{Reg: cpReg(0x40), Val: 0x80}, // CP core pre-gain, graphics mode
	})
}

// enableInput un-tristates the outputs, and on the HDMI path unmutes audio
// and terminates the TMDS lines.
func (r *Receiver) enableInput() error {
	if r.input.analog() {
		return r.space.Write(ioReg(0x15), 0xb0)
	}
	if err := r.space.Write(hdmiReg(0x1a), 0x0a); err != nil {
		return err
	}
	if err := r.info.setTermination(r.space, true); err != nil {
		return err
	}
	return r.space.Write(ioReg(0x15), 0xa0)
}

// SetTimings programs the chip to process the given format. Formats the
// chip has a predefined standard for are selected by code point; anything
// else is programmed through the auto graphics path with a manual PLL
// divider. Pixel clocks beyond the selected pipeline's reach return
// ErrOutOfRange.
func (r *Receiver) SetTimings(t timings.Timing) error {
	if t.IsZero() {
		return fmt.Errorf("%w: empty timing", ErrOutOfRange)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	digital := !r.input.analog()
	if (!digital && t.PixelClock > maxAnalogPixelClock) ||
		(digital && t.PixelClock > maxDigitalPixelClock) {
		return fmt.Errorf("%w: pixel clock %d", ErrOutOfRange, t.PixelClock)
	}

	// snap to the table entry when the format is a known one
	tolerance := int64(1000000)
	if digital {
		tolerance = 250000
	}
	if match, ok := timings.FindMatch(t, tolerance); ok {
		t = match
	}

	r.current = t

	var il uint8
	if t.Interlaced {
		il = 0x40
	}
	if err := r.space.WriteMasked(cpReg(0x91), 0xbf, il); err != nil {
		return err
	}

	if err := r.configurePredefined(t, digital); err != nil {
		if err := r.configureCustom(t); err != nil {
			return err
		}
	}

	if err := r.setRGBQuantizationRange(); err != nil {
		return err
	}

	r.logger.Info("timings set", "timing", t.String())
	return nil
}

// CurrentTimings returns the last format programmed with SetTimings or
// resolved by QueryTimings.
func (r *Receiver) CurrentTimings() timings.Timing {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// errNoPredefined is internal to the SetTimings predefined/custom split.
var errNoPredefined = fmt.Errorf("no predefined code point")

// configurePredefined selects the format via the chip's vid_std/v_freq
// code points, trying the component table first and the graphics table
// second. It fails when neither table has the format.
func (r *Receiver) configurePredefined(t timings.Timing, digital bool) error {
	if r.info.hasAFE {
		// reset the PLL divider to its defaults
		if err := r.space.Write(ioReg(0x16), 0x43); err != nil {
			return err
		}
		if err := r.space.Write(ioReg(0x17), 0x5a); err != nil {
			return err
		}
	}
	// disable embedded syncs for auto graphics mode, clear the free run
	// line length and CP window
	if err := r.space.WriteMasked(cpReg(0x81), 0xef, 0x00); err != nil {
		return err
	}
	for _, off := range []uint8{0x8f, 0x90, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7, 0xab, 0xac} {
		if err := r.space.Write(cpReg(off), 0x00); err != nil {
			return err
		}
	}

	tolerance := int64(1000000)
	comp, gr := analogComponentStandards, analogGraphicsStandards
	primComp, primGr := uint8(0x01), uint8(0x02)
	if digital {
		tolerance = 250000
		comp, gr = hdmiComponentStandards, hdmiGraphicsStandards
		primComp, primGr = 0x05, 0x06
	}

	if err := r.selectStandard(t, comp, primComp, tolerance); err == nil {
		return nil
	} else if err != errNoPredefined {
		return err
	}
	return r.selectStandard(t, gr, primGr, tolerance)
}

func (r *Receiver) selectStandard(t timings.Timing, stds []videoStandard, primMode uint8, tolerance int64) error {
	for _, std := range stds {
		if !std.timing.MatchesWithin(t, tolerance) {
			continue
		}
		if err := r.space.Write(ioReg(0x00), std.vidStd); err != nil {
			return err
		}
		return r.space.Write(ioReg(0x01), std.vFreq<<4|primMode)
	}
	return errNoPredefined
}

// configureCustom programs a format without a predefined code point. On
// the analog path this means auto graphics mode with a manual PLL divider
// and an explicit CP active video window; on the HDMI path the default
// prim_mode/vid_std suffice.
func (r *Receiver) configureCustom(t timings.Timing) error {
	width := t.HTotal()
	height := t.VTotal()

	if r.input.analog() {
		startSAV := t.HSync + t.HBackPorch - 4
		startEAV := width - t.HFrontPorch
		startVBI := height - t.VFrontPorch
		endVBI := t.VSync + t.VBackPorch

		seq := []regmap.WriteOp{
			{Reg: ioReg(0x00), Val: 0x07}, // auto graphics video std
			{Reg: ioReg(0x01), Val: 0x02}, // prim mode
		}
		if err := r.space.WriteSeq(seq); err != nil {
			return err
		}
		// enable embedded syncs for auto graphics mode
		if err := r.space.WriteMasked(cpReg(0x81), 0xef, 0x10); err != nil {
			return err
		}

		// PLL_DIV_MAN_EN and PLL_DIV_RATIO, written as one block
		pll := []byte{0xc0 | uint8(width>>8)&0x1f, uint8(width)}
		if err := r.space.WriteBlock(ioReg(0x16), pll); err != nil {
			return err
		}

		// active video window
		seq = []regmap.WriteOp{
			{Reg: cpReg(0xa2), Val: uint8(startSAV >> 4)},
			{Reg: cpReg(0xa3), Val: uint8(startSAV&0x0f)<<4 | uint8(startEAV>>8)&0x0f},
			{Reg: cpReg(0xa4), Val: uint8(startEAV)},
			{Reg: cpReg(0xa5), Val: uint8(startVBI >> 4)},
			{Reg: cpReg(0xa6), Val: uint8(startVBI&0x0f)<<4 | uint8(endVBI>>8)&0x0f},
			{Reg: cpReg(0xa7), Val: uint8(endVBI)},
		}
		if err := r.space.WriteSeq(seq); err != nil {
			return err
		}
	} else {
		seq := []regmap.WriteOp{
			{Reg: ioReg(0x00), Val: 0x02},
			{Reg: ioReg(0x01), Val: 0x06},
		}
		if err := r.space.WriteSeq(seq); err != nil {
			return err
		}
	}

	// free run line length from the subcarrier reference
	var frLL int
	if t.PixelClock/100 > 0 {
		frLL = width * (fscHz / 100) / int(t.PixelClock/100)
	}
	seq := []regmap.WriteOp{
		{Reg: cpReg(0x8f), Val: uint8(frLL>>8) & 0x07},
		{Reg: cpReg(0x90), Val: uint8(frLL)},
		{Reg: cpReg(0xab), Val: uint8(height >> 4)},
		{Reg: cpReg(0xac), Val: uint8(height&0x0f) << 4},
	}
	return r.space.WriteSeq(seq)
}

// SetRGBQuantizationRange sets the RGB output range policy and applies it.
func (r *Receiver) SetRGBQuantizationRange(q RGBQuantizationRange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rgbQ = q
	return r.setRGBQuantizationRange()
}

func (r *Receiver) setRGBQuantizationRange() error {
	switch r.rgbQ {
	case RGBRangeLimited:
		return r.space.WriteMasked(ioReg(0x02), 0x0f, 0x00)
	case RGBRangeFull:
		return r.space.WriteMasked(ioReg(0x02), 0x0f, 0x10)
	}

	// automatic
	if !r.input.analog() {
		mode, err := r.space.Read(hdmiReg(0x05))
		if err != nil {
			return err
		}
		if mode&0x80 == 0 {
			// DVI-D source: the chip would pick limited range
			// regardless of the content type, so force it from the
			// programmed standard instead
			if r.current.Standards&timings.StdCEA861 != 0 {
				return r.space.WriteMasked(ioReg(0x02), 0x0f, 0x00)
			}
			return r.space.WriteMasked(ioReg(0x02), 0x0f, 0x10)
		}
	}
	return r.space.WriteMasked(ioReg(0x02), 0x0f, 0xf0)
}
