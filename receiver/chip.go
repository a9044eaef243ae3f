package receiver

import "github.com/advrx/go-adv76xx/regmap"

// Variant identifies the receiver chip the driver talks to.
type Variant int

const (
	// ADV7604 is the 4-port receiver with an analog front end
	ADV7604 Variant = iota

	// ADV7611 is the single-port HDMI-only receiver
	ADV7611
)

func (v Variant) String() string {
	switch v {
	case ADV7604:
		return "ADV7604"
	case ADV7611:
		return "ADV7611"
	default:
		return "unknown"
	}
}

// chipProfile captures the register layout and mask differences between
// the chip variants. Everything else in the driver is common code keyed
// off these fields.
type chipProfile struct {
	pages  regmap.PageMask
	hasAFE bool

	// EDID RAM control and status, repeater page
	edidCtrlReg   uint8
	edidStatusReg uint8
	maxEdidBlocks int

	// STDI line count, component processor page
	lcfReg uint8

	// io 0x6a TMDS lock bits, io 0x6f/0x70 cable detect bits, io 0x6b
	// digital format change bits
	tmdsLockMask         uint8
	cableDetMask         uint8
	fmtChangeDigitalMask uint8

	// interrupt mask register setup value for io 0x41
	int2Enable uint8

	readPixelClock func(s *regmap.Space) (int64, error)
	setTermination func(s *regmap.Space, enable bool) error

	// ADI recommended settings applied when routing selects the analog
	// or the HDMI path
	analogPreset []regmap.WriteOp
	hdmiPreset   []regmap.WriteOp
}

// ADI recommended settings, "ADV7604 Register Settings Recommendations
// (rev. 2.5, June 2010)" p. 4 and p. 17.
var adv7604AnalogPreset = []regmap.WriteOp{
	// reset the HDMI path settings
	{Reg: hdmiReg(0x0d), Val: 0x04}, // HDMI filter optimization
	{Reg: hdmiReg(0x3d), Val: 0x00}, // DDC bus active pull-up control
	{Reg: hdmiReg(0x3e), Val: 0x74}, // TMDS PLL optimization
	{Reg: hdmiReg(0x4e), Val: 0x3b}, // TMDS PLL optimization
	{Reg: hdmiReg(0x57), Val: 0x74}, // TMDS PLL optimization
	{Reg: hdmiReg(0x58), Val: 0x63}, // TMDS PLL optimization
	{Reg: hdmiReg(0x8d), Val: 0x18}, // equalizer
	{Reg: hdmiReg(0x8e), Val: 0x34}, // equalizer
	{Reg: hdmiReg(0x93), Val: 0x88}, // equalizer
	{Reg: hdmiReg(0x94), Val: 0x2e}, // equalizer
	{Reg: hdmiReg(0x96), Val: 0x00}, // automatic EQ changing

	// digitizer settings
	{Reg: afeReg(0x12), Val: 0x7b}, // ADC noise shaping filter
	{Reg: afeReg(0x0c), Val: 0x1f}, // CP core gain
	{Reg: cpReg(0x3e), Val: 0x04},  // CP core pre-gain
	{Reg: cpReg(0xc3), Val: 0x39},  // CP coast control, graphics mode
	{Reg: cpReg(0x40), Val: 0x5c},  // CP core pre-gain, graphics mode
}

var adv7604HDMIPreset = []regmap.WriteOp{
	{Reg: hdmiReg(0x0d), Val: 0x84}, // HDMI filter optimization
	{Reg: hdmiReg(0x3d), Val: 0x10}, // DDC bus active pull-up control
	{Reg: hdmiReg(0x3e), Val: 0x39}, // TMDS PLL optimization
	{Reg: hdmiReg(0x4e), Val: 0x3b}, // TMDS PLL optimization
	{Reg: hdmiReg(0x57), Val: 0xb6}, // TMDS PLL optimization
	{Reg: hdmiReg(0x58), Val: 0x03}, // TMDS PLL optimization
	{Reg: hdmiReg(0x8d), Val: 0x18}, // equalizer
	{Reg: hdmiReg(0x8e), Val: 0x34}, // equalizer
	{Reg: hdmiReg(0x93), Val: 0x8b}, // equalizer
	{Reg: hdmiReg(0x94), Val: 0x2d}, // equalizer
	{Reg: hdmiReg(0x96), Val: 0x01}, // automatic EQ changing

	// reset the digitizer settings
	{Reg: afeReg(0x12), Val: 0xfb}, // ADC noise shaping filter
	{Reg: afeReg(0x0c), Val: 0x0d}, // CP core gain
}

var adv7611HDMIPreset = []regmap.WriteOp{
	{Reg: cpReg(0x6c), Val: 0x00},
	{Reg: hdmiReg(0x6f), Val: 0x0c},
	{Reg: hdmiReg(0x87), Val: 0x70},
	{Reg: hdmiReg(0x57), Val: 0xda},
	{Reg: hdmiReg(0x58), Val: 0x01},
	{Reg: hdmiReg(0x03), Val: 0x98},
	{Reg: hdmiReg(0x4c), Val: 0x44},
	{Reg: hdmiReg(0x8d), Val: 0x04},
	{Reg: hdmiReg(0x8e), Val: 0x1e},
}

// Default 7-bit addresses the register pages are programmed to. The main
// IO page address comes from the bus device itself.
var defaultAddresses = map[Variant]map[regmap.Page]uint16{
	ADV7604: {
		regmap.PageAVLink:    0x42,
		regmap.PageCEC:       0x40,
		regmap.PageInfoFrame: 0x3e,
		regmap.PageESDP:      0x38,
		regmap.PageDPP:       0x3c,
		regmap.PageAFE:       0x26,
		regmap.PageRep:       0x32,
		regmap.PageEDID:      0x36,
		regmap.PageHDMI:      0x34,
		regmap.PageTest:      0x30,
		regmap.PageCP:        0x22,
		regmap.PageVDP:       0x24,
	},
	ADV7611: {
		regmap.PageCEC:       0x40,
		regmap.PageInfoFrame: 0x3e,
		regmap.PageAFE:       0x26,
		regmap.PageRep:       0x32,
		regmap.PageEDID:      0x36,
		regmap.PageHDMI:      0x34,
		regmap.PageCP:        0x22,
	},
}

// IO registers that program the page addresses into the chip, in register
// order.
var pageAddressRegs = []struct {
	page regmap.Page
	reg  uint8
}{
	{regmap.PageAVLink, 0xf3},
	{regmap.PageCEC, 0xf4},
	{regmap.PageInfoFrame, 0xf5},
	{regmap.PageESDP, 0xf6},
	{regmap.PageDPP, 0xf7},
	{regmap.PageAFE, 0xf8},
	{regmap.PageRep, 0xf9},
	{regmap.PageEDID, 0xfa},
	{regmap.PageHDMI, 0xfb},
	{regmap.PageTest, 0xfc},
	{regmap.PageCP, 0xfd},
	{regmap.PageVDP, 0xfe},
}

var chipProfiles = map[Variant]chipProfile{
	ADV7604: {
		pages: regmap.MaskOf(regmap.PageIO, regmap.PageAVLink, regmap.PageCEC,
			regmap.PageInfoFrame, regmap.PageESDP, regmap.PageDPP,
			regmap.PageAFE, regmap.PageRep, regmap.PageEDID,
			regmap.PageHDMI, regmap.PageTest, regmap.PageCP, regmap.PageVDP),
		hasAFE:               true,
		edidCtrlReg:          0x77,
		edidStatusReg:        0x7d,
		maxEdidBlocks:        2,
		lcfReg:               0xb3,
		tmdsLockMask:         0xe0,
		cableDetMask:         0x1e,
		fmtChangeDigitalMask: 0xc0,
		int2Enable:           0xd7,
		readPixelClock:       adv7604PixelClock,
		setTermination:       adv7604Termination,
		analogPreset:         adv7604AnalogPreset,
		hdmiPreset:           adv7604HDMIPreset,
	},
	ADV7611: {
		pages: regmap.MaskOf(regmap.PageIO, regmap.PageCEC,
			regmap.PageInfoFrame, regmap.PageAFE, regmap.PageRep,
			regmap.PageEDID, regmap.PageHDMI, regmap.PageCP),
		hasAFE:               false,
		edidCtrlReg:          0x74,
		edidStatusReg:        0x76,
		maxEdidBlocks:        2,
		lcfReg:               0xa3,
		tmdsLockMask:         0x43,
		cableDetMask:         0x01,
		fmtChangeDigitalMask: 0x03,
		int2Enable:           0xd0,
		readPixelClock:       adv7611PixelClock,
		setTermination:       adv7611Termination,
		hdmiPreset:           adv7611HDMIPreset,
	},
}

// The ADV7604 reports the TMDS frequency as whole MHz plus quarter-MHz
// fractional bits.
func adv7604PixelClock(s *regmap.Space) (int64, error) {
	mhz, err := s.Read(hdmiReg(0x06))
	if err != nil {
		return 0, err
	}
	frac, err := s.Read(hdmiReg(0x3b))
	if err != nil {
		return 0, err
	}
	return int64(mhz)*1000000 + int64((frac&0x30)>>4)*250000, nil
}

// The ADV7611 reports a 9-bit MHz count plus a 1/128 MHz fraction.
func adv7611PixelClock(s *regmap.Space) (int64, error) {
	hi, err := s.Read(hdmiReg(0x51))
	if err != nil {
		return 0, err
	}
	lo, err := s.Read(hdmiReg(0x52))
	if err != nil {
		return 0, err
	}
	mhz := int64(hi)<<1 | int64(lo)>>7
	return mhz*1000000 + int64(lo&0x7f)*1000000/128, nil
}

func adv7604Termination(s *regmap.Space, enable bool) error {
	val := uint8(0x78)
	if enable {
		val = 0x00
	}
	return s.Write(hdmiReg(0x01), val)
}

func adv7611Termination(s *regmap.Space, enable bool) error {
	val := uint8(0xff)
	if enable {
		val = 0xfe
	}
	return s.Write(hdmiReg(0x83), val)
}

// Register shorthands, one per frequently used page.
func ioReg(off uint8) regmap.Reg   { return regmap.RegOf(regmap.PageIO, off) }
func cpReg(off uint8) regmap.Reg   { return regmap.RegOf(regmap.PageCP, off) }
func afeReg(off uint8) regmap.Reg  { return regmap.RegOf(regmap.PageAFE, off) }
func repReg(off uint8) regmap.Reg  { return regmap.RegOf(regmap.PageRep, off) }
func hdmiReg(off uint8) regmap.Reg { return regmap.RegOf(regmap.PageHDMI, off) }
func edidReg(off uint8) regmap.Reg { return regmap.RegOf(regmap.PageEDID, off) }
