package receiver

import (
	"errors"
	"testing"

	"github.com/advrx/go-adv76xx/timings"
)

// setDigitalSignal seeds a locked HDMI measurement on an ADV7611 mock:
// TMDS lock, STDI counters at their ADV7611 offsets and the measured
// geometry registers of the HDMI block.
func (m *mockChip) setDigitalSignal(t timings.Timing) {
	m.set(ioAddr, 0x6a, 0x53)

	bl := fscHz * 8 / (int(t.PixelClock) / t.HTotal())
	m.set(cpAddr, 0xb1, 0x80|uint8(bl>>8)&0x3f)
	m.set(cpAddr, 0xb2, uint8(bl))
	m.set(cpAddr, 0xa3, uint8((t.VTotal()-1)>>8)&0x07)
	m.set(cpAddr, 0xa4, uint8(t.VTotal()-1))
	m.set(cpAddr, 0xb3, uint8(t.VSync)<<3)

	m.set(hdmiAddr, 0x07, uint8(t.Width>>8))
	m.set(hdmiAddr, 0x08, uint8(t.Width))
	m.set(hdmiAddr, 0x09, uint8(t.Height>>8))
	m.set(hdmiAddr, 0x0a, uint8(t.Height))
	m.set(hdmiAddr, 0x20, uint8(t.HFrontPorch>>8))
	m.set(hdmiAddr, 0x21, uint8(t.HFrontPorch))
	m.set(hdmiAddr, 0x22, uint8(t.HSync>>8))
	m.set(hdmiAddr, 0x23, uint8(t.HSync))
	m.set(hdmiAddr, 0x24, uint8(t.HBackPorch>>8))
	m.set(hdmiAddr, 0x25, uint8(t.HBackPorch))
	m.set(hdmiAddr, 0x2b, uint8(t.VFrontPorch*2))
	m.set(hdmiAddr, 0x2f, uint8(t.VSync*2))
	m.set(hdmiAddr, 0x33, uint8(t.VBackPorch*2))

	var mode uint8
	if t.Polarities&timings.HSyncPositive != 0 {
		mode |= 0x20
	}
	if t.Polarities&timings.VSyncPositive != 0 {
		mode |= 0x10
	}
	m.set(hdmiAddr, 0x05, mode)

	mhz := t.PixelClock / 1000000
	frac := t.PixelClock % 1000000 * 128 / 1000000
	m.set(hdmiAddr, 0x51, uint8(mhz>>1))
	m.set(hdmiAddr, 0x52, uint8(mhz&1)<<7|uint8(frac))
}

func TestQueryTimingsNoSignal(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)
	if err := rx.SetInput(InputComponent); err != nil {
		t.Fatal(err)
	}

	if _, err := rx.QueryTimings(); !errors.Is(err, ErrNoLink) {
		t.Errorf("QueryTimings on idle input = %v, want ErrNoLink", err)
	}
}

func TestQueryTimingsAnalogTableMatch(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)
	if err := rx.SetInput(InputComponent); err != nil {
		t.Fatal(err)
	}

	// 720p60: 45 kHz line rate, 750 total lines, 5 line vsync
	m.setAnalogSignal(5091, 749, 5, sspdHSPos|sspdVSPos, true)

	got, err := rx.QueryTimings()
	if err != nil {
		t.Fatalf("QueryTimings: %v", err)
	}
	if got != timings.CEA1280x720p60 {
		t.Errorf("resolved %v, want %v", got, timings.CEA1280x720p60)
	}
	if cur := rx.CurrentTimings(); cur != got {
		t.Errorf("CurrentTimings = %v after a successful query", cur)
	}
	if !rx.stdiRestartArmed {
		t.Error("restart disarmed after a successful resolution")
	}
}

func TestQueryTimingsAnalogLCVSRetry(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)
	if err := rx.SetInput(InputComponent); err != nil {
		t.Fatal(err)
	}

	// vsync measured one line short of the 720p60 nominal
	m.setAnalogSignal(5091, 749, 4, sspdHSPos|sspdVSPos, true)

	got, err := rx.QueryTimings()
	if err != nil {
		t.Fatalf("QueryTimings: %v", err)
	}
	if got != timings.CEA1280x720p60 {
		t.Errorf("resolved %v, want %v", got, timings.CEA1280x720p60)
	}
}

func TestQueryTimingsAnalogCVT(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)
	if err := rx.SetInput(InputGraphics); err != nil {
		t.Fatal(err)
	}

	// a 1360x768 CVT mode: 798 total lines but a 5 line vsync, so the
	// format table cannot claim it
	m.setAnalogSignal(4795, 797, 5, sspdVSPos, true)

	got, err := rx.QueryTimings()
	if err != nil {
		t.Fatalf("QueryTimings: %v", err)
	}
	if got.Standards&timings.StdCVT == 0 {
		t.Errorf("standards = %v, want CVT", got.Standards)
	}
	if got.Width != 1360 || got.Height != 768 {
		t.Errorf("resolved %dx%d, want 1360x768", got.Width, got.Height)
	}
	if got.VTotal() != 798 {
		t.Errorf("VTotal = %d, want 798", got.VTotal())
	}
}

func TestQueryTimingsAnalogGTF(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)
	if err := rx.SetInput(InputGraphics); err != nil {
		t.Fatal(err)
	}

	// 3 line vsync is outside the CVT code points, so this lands in GTF
	m.setAnalogSignal(7280, 479, 3, sspdVSPos, true)

	got, err := rx.QueryTimings()
	if err != nil {
		t.Fatalf("QueryTimings: %v", err)
	}
	if got.Standards&timings.StdGTF == 0 {
		t.Errorf("standards = %v, want GTF", got.Standards)
	}
	if got.VSync != 3 || got.Polarities != timings.VSyncPositive {
		t.Errorf("vsync %d pol %v, want 3 lines vsync positive", got.VSync, got.Polarities)
	}
}

func TestQueryTimingsRestartsSTDIOnce(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)
	if err := rx.SetInput(InputComponent); err != nil {
		t.Fatal(err)
	}

	// plausible counters that resolve to nothing
	m.setAnalogSignal(5000, 999, 10, 0, false)

	if _, err := rx.QueryTimings(); !errors.Is(err, ErrNoLink) {
		t.Fatalf("first failed query = %v, want ErrNoLink", err)
	}
	restart := m.writesTo(cpAddr, 0x86)
	if len(restart) != 3 || restart[0] != 0x00 || restart[1] != 0x04 || restart[2] != 0x02 {
		t.Fatalf("STDI restart writes = %#02x, want [0x00 0x04 0x02]", restart)
	}

	// still unresolvable after the restart
	if _, err := rx.QueryTimings(); !errors.Is(err, ErrFormatUnrecognized) {
		t.Fatalf("second failed query = %v, want ErrFormatUnrecognized", err)
	}
	if got := m.writesTo(cpAddr, 0x86); len(got) != 3 {
		t.Fatalf("STDI restarted again without an intervening success: %#02x", got)
	}

	// a successful resolution re-arms the restart
	m.setAnalogSignal(5091, 749, 5, sspdHSPos|sspdVSPos, true)
	if _, err := rx.QueryTimings(); err != nil {
		t.Fatalf("good signal after restart: %v", err)
	}
	m.setAnalogSignal(5000, 999, 10, 0, false)
	if _, err := rx.QueryTimings(); !errors.Is(err, ErrNoLink) {
		t.Fatalf("corrupt signal after re-arm = %v, want ErrNoLink", err)
	}
	if got := m.writesTo(cpAddr, 0x86); len(got) != 6 {
		t.Fatalf("expected a second restart after re-arming, writes = %#02x", got)
	}
}

func TestAnalogTableRoundTrip(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)

	// every table entry must resolve from its own coarse measurements;
	// geometry-identical duplicates resolve to the first of them
	for _, entry := range timings.Supported {
		lineRate := int(entry.PixelClock) / entry.HTotal()
		bl := fscHz * 8 / lineRate

		sample := stdiReadback{
			bl:         uint16(bl),
			lcf:        uint16(entry.VTotal() - 1),
			lcvs:       entry.VSync,
			hsPolKnown: true,
			vsPolKnown: true,
			pol:        entry.Polarities,
		}
		got, ok := rx.stdiToTimings(sample)
		if !ok {
			t.Errorf("%v did not resolve from its own sample", entry)
			continue
		}

		hfreq := int64(fscHz * 8 / bl)
		want := entry
		for _, e := range timings.Supported {
			diff := hfreq*int64(e.HTotal()) - e.PixelClock
			if e.VTotal() == entry.VTotal() && e.VSync == entry.VSync &&
				diff < 1000000 && diff > -1000000 {
				want = e
				break
			}
		}
		if got != want {
			t.Errorf("%v resolved to %v", entry, got)
		}
	}
}

func TestQueryTimingsDigital(t *testing.T) {
	m := newMock7611()
	rx := new7611(t, m)
	if err := rx.SetInput(InputHDMI); err != nil {
		t.Fatal(err)
	}

	m.setDigitalSignal(timings.CEA1280x720p60)

	got, err := rx.QueryTimings()
	if err != nil {
		t.Fatalf("QueryTimings: %v", err)
	}
	if got != timings.CEA1280x720p60 {
		t.Errorf("resolved %v, want %v", got, timings.CEA1280x720p60)
	}
	// digital detection never touches the STDI restart register
	if w := m.writesTo(cpAddr, 0x86); w != nil {
		t.Errorf("unexpected STDI restart writes: %#02x", w)
	}
}

func TestQueryTimingsDigitalKeepsMeasuredGeometry(t *testing.T) {
	m := newMock7611()
	rx := new7611(t, m)
	if err := rx.SetInput(InputHDMI); err != nil {
		t.Fatal(err)
	}

	// slightly off the 74.25 MHz nominal but within matching tolerance
	near := timings.CEA1280x720p60
	near.PixelClock = 74203125
	m.setDigitalSignal(near)

	got, err := rx.QueryTimings()
	if err != nil {
		t.Fatalf("QueryTimings: %v", err)
	}
	if got.PixelClock != 74203125 {
		t.Errorf("pixel clock = %d, want the measured 74203125", got.PixelClock)
	}
	if got.Standards&timings.StdCEA861 == 0 {
		t.Errorf("standards = %v, want the CEA tag attached", got.Standards)
	}
}

func TestQueryTimingsDigitalOutOfRange(t *testing.T) {
	m := newMock7611()
	rx := new7611(t, m)
	if err := rx.SetInput(InputHDMI); err != nil {
		t.Fatal(err)
	}

	fast := timings.CEA1280x720p60
	fast.PixelClock = 230000000
	m.setDigitalSignal(fast)

	if _, err := rx.QueryTimings(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("230 MHz signal = %v, want ErrOutOfRange", err)
	}
}
