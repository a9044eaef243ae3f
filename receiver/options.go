package receiver

import "github.com/advrx/go-adv76xx/regmap"

// Int1Config selects how the INT1 interrupt pin is driven.
type Int1Config uint8

const (
	// Int1OpenDrain drives INT1 as an open drain output
	Int1OpenDrain Int1Config = iota

	// Int1ActiveLow drives INT1 push-pull, active low
	Int1ActiveLow

	// Int1ActiveHigh drives INT1 push-pull, active high
	Int1ActiveHigh

	// Int1Disabled tristates INT1
	Int1Disabled
)

// Config holds the receiver configuration. The zero value of each field is
// a usable default; defaultConfig sets the few that differ.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// HotplugFunc is called on hotplug assertion changes (optional)
	HotplugFunc HotplugFunc

	// FormatChangeFunc is called when the input format changes (optional)
	FormatChangeFunc FormatChangeFunc

	// CableDetectFunc is called on +5V cable detect changes (optional)
	CableDetectFunc CableDetectFunc

	// Addresses overrides the 7-bit I2C address used for individual
	// register pages. Pages not listed keep the chip defaults.
	Addresses map[regmap.Page]uint16

	// OutputFormat is the pixel port format selection (io 0x03)
	OutputFormat uint8

	// OutputChannelOrder selects the output channel reordering
	OutputChannelOrder uint8

	// RGBOutput selects RGB instead of YPbPr on the pixel port
	RGBOutput bool

	// EmbeddedSyncCodes inserts AV codes into the output stream
	EmbeddedSyncCodes bool

	// ReplicateAVCodes repeats AV codes on all output channels
	ReplicateAVCodes bool

	// BlankVideoData blanks the data during video blanking sections
	BlankVideoData bool

	// InvertCbCr swaps the Cb and Cr channels on the pixel bus
	InvertCbCr bool

	// Alt656Range selects the alternative ITU-656 output range
	Alt656Range bool

	// AltGamma selects the alternative gamma curve
	AltGamma bool

	// AltDataSaturation selects the alternative data saturation behavior
	AltDataSat bool

	// HDMIFreeRunMode selects how free run engages on the HDMI path
	HDMIFreeRunMode uint8

	// Int1 configures the INT1 interrupt pin drive
	Int1 Int1Config

	// AnalogInput is the AFE input mux selection (ADV7604 only)
	AnalogInput uint8

	// OutputBusLSBToMSB reverses the pixel bus bit order (ADV7604 only)
	OutputBusLSBToMSB bool

	// DisablePowerDownB ignores the PWRDNB pin
	DisablePowerDownB bool

	// DisableCableDetReset keeps the chip running when cable detect drops
	DisableCableDetReset bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		BlankVideoData: true,
		Int1:           Int1ActiveLow,
	}
}

// Option is a functional option for configuring the Receiver.
type Option func(*Config)

// WithLogger sets a logger for the receiver operations.
//
// Example:
//
//	rx, err := receiver.New(bus, receiver.ADV7611, receiver.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithHotplugFunc sets a callback for hotplug assertion changes.
func WithHotplugFunc(fn HotplugFunc) Option {
	return func(c *Config) {
		c.HotplugFunc = fn
	}
}

// WithFormatChangeFunc sets a callback fired from HandleInterrupt when the
// incoming video format changes.
//
// Example:
//
//	rx, err := receiver.New(bus, receiver.ADV7611,
//	    receiver.WithFormatChangeFunc(func() { changed <- struct{}{} }),
//	)
func WithFormatChangeFunc(fn FormatChangeFunc) Option {
	return func(c *Config) {
		c.FormatChangeFunc = fn
	}
}

// WithCableDetectFunc sets a callback fired from HandleInterrupt when the
// +5V cable detect state changes.
func WithCableDetectFunc(fn CableDetectFunc) Option {
	return func(c *Config) {
		c.CableDetectFunc = fn
	}
}

// WithAddresses overrides the 7-bit I2C addresses the register pages are
// mapped to. Pages not present in the map keep the chip defaults.
//
// Example:
//
//	rx, err := receiver.New(bus, receiver.ADV7611,
//	    receiver.WithAddresses(map[regmap.Page]uint16{regmap.PageCP: 0x23}),
//	)
func WithAddresses(addrs map[regmap.Page]uint16) Option {
	return func(c *Config) {
		c.Addresses = addrs
	}
}

// WithOutputFormat sets the pixel port format selection.
func WithOutputFormat(format uint8) Option {
	return func(c *Config) {
		c.OutputFormat = format
	}
}

// WithRGBOutput selects RGB instead of YPbPr on the pixel port.
func WithRGBOutput(rgb bool) Option {
	return func(c *Config) {
		c.RGBOutput = rgb
	}
}

// WithEmbeddedSyncCodes inserts AV codes into the output stream.
func WithEmbeddedSyncCodes(insert bool) Option {
	return func(c *Config) {
		c.EmbeddedSyncCodes = insert
	}
}

// WithInt1Config sets the INT1 interrupt pin drive. Default is
// Int1ActiveLow.
func WithInt1Config(cfg Int1Config) Option {
	return func(c *Config) {
		c.Int1 = cfg
	}
}

// WithAnalogInput sets the AFE input mux selection. Only meaningful on the
// ADV7604.
func WithAnalogInput(ainSel uint8) Option {
	return func(c *Config) {
		c.AnalogInput = ainSel
	}
}

// WithHDMIFreeRunMode selects how free run engages on the HDMI path.
func WithHDMIFreeRunMode(mode uint8) Option {
	return func(c *Config) {
		c.HDMIFreeRunMode = mode
	}
}

// WithConfig replaces the entire configuration, including logger and
// callbacks. Use it when a board needs the less common pin bits that have
// no dedicated option. Later options still apply on top.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}
