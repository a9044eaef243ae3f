package timings

import "fmt"

// SyncPolarities is a bit set of positive sync polarities. An unset bit
// means the corresponding sync is negative.
type SyncPolarities uint8

const (
	// VSyncPositive marks a positive vertical sync pulse
	VSyncPositive SyncPolarities = 1 << 0

	// HSyncPositive marks a positive horizontal sync pulse
	HSyncPositive SyncPolarities = 1 << 1
)

// Standard is a bit set of timing standards a format belongs to.
type Standard uint8

const (
	// StdCEA861 is a CEA-861 consumer electronics format
	StdCEA861 Standard = 1 << 0

	// StdDMT is a VESA Discrete Monitor Timing
	StdDMT Standard = 1 << 1

	// StdCVT is a VESA Coordinated Video Timing
	StdCVT Standard = 1 << 2

	// StdGTF is a VESA Generalized Timing Formula timing
	StdGTF Standard = 1 << 3
)

// Flags carry auxiliary properties of a timing.
type Flags uint8

const (
	// FlagReducedBlanking marks a CVT/GTF reduced blanking variant
	FlagReducedBlanking Flags = 1 << 0

	// FlagCanReduceFPS marks CEA timings whose field rate may also run at
	// rate/1.001 (e.g. 60 vs 59.94 Hz)
	FlagCanReduceFPS Flags = 1 << 1
)

// Timing is one complete video format. Immutable once resolved; the receiver
// keeps exactly one current Timing at a time.
type Timing struct {
	// Width and Height are the active video geometry in pixels/lines.
	Width  int
	Height int

	// Interlaced is true for interlaced formats; Height then counts both
	// fields.
	Interlaced bool

	// PixelClock is the pixel sampling clock in Hz.
	PixelClock int64

	// Horizontal blanking, in pixels.
	HFrontPorch int
	HSync       int
	HBackPorch  int

	// Vertical blanking, in lines.
	VFrontPorch int
	VSync       int
	VBackPorch  int

	// Second-field vertical blanking for interlaced formats, in half-lines
	// rounded down. Zero for progressive formats.
	ILVFrontPorch int
	ILVSync       int
	ILVBackPorch  int

	Polarities SyncPolarities
	Standards  Standard
	Flags      Flags
}

// HBlank returns the horizontal blanking interval in pixels.
func (t Timing) HBlank() int { return t.HFrontPorch + t.HSync + t.HBackPorch }

// HTotal returns the total pixels per line.
func (t Timing) HTotal() int { return t.Width + t.HBlank() }

// VBlank returns the vertical blanking interval in lines.
func (t Timing) VBlank() int { return t.VFrontPorch + t.VSync + t.VBackPorch }

// VTotal returns the total lines per frame.
func (t Timing) VTotal() int { return t.Height + t.VBlank() }

// FrameRate returns the frame rate in Hz, rounded down. Zero when the
// geometry is empty.
func (t Timing) FrameRate() int {
	total := int64(t.HTotal()) * int64(t.VTotal())
	if total == 0 {
		return 0
	}
	return int(t.PixelClock / total)
}

// IsZero reports whether the timing is the empty value.
func (t Timing) IsZero() bool { return t.Width == 0 && t.Height == 0 }

// MatchesWithin reports whether o describes the same format as t: identical
// geometry, blanking, scan type and polarities, with the pixel clocks no
// further apart than pclkTolerance Hz.
func (t Timing) MatchesWithin(o Timing, pclkTolerance int64) bool {
	d := t.PixelClock - o.PixelClock
	if d < 0 {
		d = -d
	}
	return t.Width == o.Width &&
		t.Height == o.Height &&
		t.Interlaced == o.Interlaced &&
		t.Polarities == o.Polarities &&
		t.HFrontPorch == o.HFrontPorch &&
		t.HSync == o.HSync &&
		t.HBackPorch == o.HBackPorch &&
		t.VFrontPorch == o.VFrontPorch &&
		t.VSync == o.VSync &&
		t.VBackPorch == o.VBackPorch &&
		d <= pclkTolerance
}

// String formats the timing as e.g. "1280x720p60 (1650x750) 74.250 MHz".
func (t Timing) String() string {
	scan := "p"
	if t.Interlaced {
		scan = "i"
	}
	return fmt.Sprintf("%dx%d%s%d (%dx%d) %d.%03d MHz",
		t.Width, t.Height, scan, t.FrameRate(),
		t.HTotal(), t.VTotal(),
		t.PixelClock/1000000, t.PixelClock%1000000/1000)
}
