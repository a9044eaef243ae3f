package receiver

import (
	"fmt"
	"sync"
	"time"

	"github.com/advrx/go-adv76xx/regmap"
	"github.com/advrx/go-adv76xx/timings"
)

// Input selects which physical input feeds the pixel pipeline.
type Input int

const (
	// InputHDMI is the digital TMDS input (port A)
	InputHDMI Input = iota

	// InputComponent is analog YPbPr through the AFE (ADV7604 only)
	InputComponent

	// InputGraphics is analog RGB graphics through the AFE (ADV7604 only)
	InputGraphics
)

func (in Input) String() string {
	switch in {
	case InputHDMI:
		return "hdmi"
	case InputComponent:
		return "component"
	case InputGraphics:
		return "graphics"
	default:
		return "unknown"
	}
}

// analog reports whether the input goes through the analog front end.
func (in Input) analog() bool { return in != InputHDMI }

// defaultIOAddress is the 7-bit address of the main IO page.
const defaultIOAddress = 0x4c

// Receiver drives one ADV7604 or ADV7611. Create it with New, then select
// an input with SetInput and detect the incoming format with QueryTimings.
// All methods are safe for concurrent use.
type Receiver struct {
	space   *regmap.Space
	variant Variant
	info    chipProfile
	config  Config
	logger  Logger

	mu      sync.Mutex
	input   Input
	current timings.Timing
	rgbQ    RGBQuantizationRange

	// EDID state. aspect is derived from the programmed EDID and feeds
	// GTF detection.
	edid       []byte
	edidBlocks int
	aspect     timings.AspectRatio

	// stdiRestartArmed allows one STDI block restart per string of failed
	// analog detections.
	stdiRestartArmed bool

	cableDetected bool

	hotplugTimer *time.Timer
	hotplugGen   uint64
	hotplugDelay time.Duration

	// EDID readiness poll, shortened in tests
	edidPollInterval time.Duration
	edidPollTries    int

	closed bool
}

// New creates a Receiver for the given chip variant on the given bus and
// runs the power-up configuration. On the ADV7611 the chip identity is
// verified first.
//
// Example:
//
//	rx, err := receiver.New(bus, receiver.ADV7611, receiver.WithLogger(myLogger))
func New(bus regmap.Bus, variant Variant, opts ...Option) (*Receiver, error) {
	info, ok := chipProfiles[variant]
	if !ok {
		return nil, fmt.Errorf("unknown chip variant %d", int(variant))
	}

	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	logger := config.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	addrs := map[regmap.Page]uint16{regmap.PageIO: defaultIOAddress}
	for page, addr := range defaultAddresses[variant] {
		addrs[page] = addr
	}
	for page, addr := range config.Addresses {
		addrs[page] = addr
	}

	space := regmap.NewSpace(bus, info.pages, addrs)

	r := &Receiver{
		space:            space,
		variant:          variant,
		info:             info,
		config:           config,
		logger:           logger,
		input:            InputHDMI,
		aspect:           timings.DefaultAspect,
		stdiRestartArmed: true,
		hotplugDelay:     100 * time.Millisecond,
		edidPollInterval: time.Millisecond,
		edidPollTries:    1000,
	}

	if err := r.identify(); err != nil {
		return nil, err
	}
	if err := r.mapPages(); err != nil {
		return nil, err
	}
	if err := r.coreInit(); err != nil {
		return nil, err
	}

	logger.Info("receiver initialized", "chip", variant.String())
	return r, nil
}

// identify checks the chip revision code where the variant has one.
func (r *Receiver) identify() error {
	if r.variant != ADV7611 {
		return nil
	}
	hi, err := r.space.Read(ioReg(0xea))
	if err != nil {
		return err
	}
	lo, err := r.space.Read(ioReg(0xeb))
	if err != nil {
		return err
	}
	if rev := uint16(hi)<<8 | uint16(lo); rev != 0x2051 {
		return fmt.Errorf("not an ADV7611: revision 0x%04x", rev)
	}
	return nil
}

// mapPages programs the sub-map I2C addresses into the chip so the pages
// respond where the Space expects them.
func (r *Receiver) mapPages() error {
	for _, m := range pageAddressRegs {
		if !r.info.pages.Has(m.page) {
			continue
		}
		addr := r.space.PageAddress(m.page)
		if err := r.space.Write(ioReg(m.reg), uint8(addr<<1)); err != nil {
			return err
		}
	}
	return nil
}

// coreInit applies the power-up register configuration: power state,
// output pin behavior, free run thresholds and interrupt routing.
func (r *Receiver) coreInit() error {
	cfg := &r.config

	var hpaCtrl uint8
	if cfg.DisablePowerDownB {
		hpaCtrl |= 0x80
	}
	if cfg.DisableCableDetReset {
		hpaCtrl |= 0x40
	}
	if err := r.space.Write(hdmiReg(0x48), hpaCtrl); err != nil {
		return err
	}

	if err := r.disableInput(); err != nil {
		return err
	}

	// power up the core, power down the unused VDP and ESDP blocks and
	// macrovision
	seq := []regmap.WriteOp{
		{Reg: ioReg(0x0c), Val: 0x42},
		{Reg: ioReg(0x0b), Val: 0x44},
		{Reg: cpReg(0xcf), Val: 0x01},
	}
	if err := r.space.WriteSeq(seq); err != nil {
		return err
	}

	// output pin behavior
	var fmtBits uint8
	if cfg.AltGamma {
		fmtBits |= 1 << 3
	}
	if cfg.Alt656Range {
		fmtBits |= 1 << 2
	}
	if cfg.RGBOutput {
		fmtBits |= 1 << 1
	}
	if cfg.AltDataSat {
		fmtBits |= 1 << 0
	}
	if err := r.space.WriteMasked(ioReg(0x02), 0xf0, fmtBits); err != nil {
		return err
	}
	if err := r.space.Write(ioReg(0x03), cfg.OutputFormat); err != nil {
		return err
	}
	if err := r.space.WriteMasked(ioReg(0x04), 0x1f, cfg.OutputChannelOrder<<5); err != nil {
		return err
	}
	var avBits uint8
	if cfg.BlankVideoData {
		avBits |= 1 << 3
	}
	if cfg.EmbeddedSyncCodes {
		avBits |= 1 << 2
	}
	if cfg.ReplicateAVCodes {
		avBits |= 1 << 1
	}
	if cfg.InvertCbCr {
		avBits |= 1 << 0
	}
	if err := r.space.WriteMasked(ioReg(0x05), 0xf0, avBits); err != nil {
		return err
	}

	seq = []regmap.WriteOp{
		{Reg: cpReg(0x69), Val: 0x30}, // enable CP CSC
		{Reg: ioReg(0x06), Val: 0xa6}, // positive VS and HS
		{Reg: ioReg(0x14), Val: 0x7f}, // max drive strength
		{Reg: cpReg(0xba), Val: cfg.HDMIFreeRunMode<<1 | 0x01},
		{Reg: cpReg(0xf3), Val: 0xdc}, // low free run enter/exit threshold
		{Reg: cpReg(0xf9), Val: 0x23}, // LCVS change threshold, channel 1
		{Reg: cpReg(0x45), Val: 0x23}, // LCVS change threshold, channel 2
		{Reg: cpReg(0xc9), Val: 0x2d}, // free run resolution from prim_mode/vid_std
		{Reg: afeReg(0xb5), Val: 0x01}, // MCLK 256Fs
	}
	if err := r.space.WriteSeq(seq); err != nil {
		return err
	}

	if r.info.hasAFE {
		if err := r.space.Write(afeReg(0x02), cfg.AnalogInput); err != nil {
			return err
		}
		var busOrder uint8
		if cfg.OutputBusLSBToMSB {
			busOrder = 1 << 4
		}
		if err := r.space.WriteMasked(ioReg(0x30), ^uint8(1<<4), busOrder); err != nil {
			return err
		}
	}

	// interrupt routing
	seq = []regmap.WriteOp{
		{Reg: ioReg(0x40), Val: 0xc0 | uint8(cfg.Int1)},
		{Reg: ioReg(0x73), Val: r.info.cableDetMask},
		{Reg: ioReg(0x46), Val: 0x98}, // SSPD, STDI and CP unlock interrupts
		{Reg: ioReg(0x6e), Val: r.info.fmtChangeDigitalMask},
		{Reg: ioReg(0x41), Val: r.info.int2Enable},
	}
	return r.space.WriteSeq(seq)
}

// Variant returns the chip variant this receiver drives.
func (r *Receiver) Variant() Variant { return r.variant }

// CurrentInput returns the currently selected input.
func (r *Receiver) CurrentInput() Input {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.input
}

// Close cancels the deferred hotplug re-assert if one is pending. The chip
// itself is left in its current state.
func (r *Receiver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.cancelHotplugLocked()
	return nil
}
