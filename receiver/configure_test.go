package receiver

import (
	"errors"
	"testing"

	"github.com/advrx/go-adv76xx/timings"
)

func lastWrite(t *testing.T, m *mockChip, addr uint16, reg uint8) uint8 {
	t.Helper()
	got := m.writesTo(addr, reg)
	if got == nil {
		t.Fatalf("no writes to %#02x/%#02x", addr, reg)
	}
	return got[len(got)-1]
}

func TestSetTimingsPredefinedAnalogComponent(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)
	if err := rx.SetInput(InputComponent); err != nil {
		t.Fatal(err)
	}
	m.clearLog()

	if err := rx.SetTimings(timings.CEA1280x720p60); err != nil {
		t.Fatalf("SetTimings: %v", err)
	}
	if got := lastWrite(t, m, ioAddr, 0x00); got != 0x19 {
		t.Errorf("vid_std = %#02x, want 0x19", got)
	}
	if got := lastWrite(t, m, ioAddr, 0x01); got != 0x01 {
		t.Errorf("v_freq/prim_mode = %#02x, want 0x01", got)
	}
	// the PLL divider returns to its defaults
	if got := lastWrite(t, m, ioAddr, 0x16); got != 0x43 {
		t.Errorf("io 0x16 = %#02x, want 0x43", got)
	}
	if got := lastWrite(t, m, ioAddr, 0x17); got != 0x5a {
		t.Errorf("io 0x17 = %#02x, want 0x5a", got)
	}
	// the CP window stays cleared for predefined formats
	if got := m.get(cpAddr, 0xa2); got != 0 {
		t.Errorf("CP window start = %#02x, want cleared", got)
	}
	if got := rx.CurrentTimings(); got != timings.CEA1280x720p60 {
		t.Errorf("CurrentTimings = %v", got)
	}
}

func TestSetTimingsPredefinedGraphics(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)
	if err := rx.SetInput(InputGraphics); err != nil {
		t.Fatal(err)
	}
	m.clearLog()

	if err := rx.SetTimings(timings.DMT800x600p60); err != nil {
		t.Fatalf("SetTimings: %v", err)
	}
	if got := lastWrite(t, m, ioAddr, 0x00); got != 0x01 {
		t.Errorf("vid_std = %#02x, want 0x01", got)
	}
	if got := lastWrite(t, m, ioAddr, 0x01); got != 0x02 {
		t.Errorf("v_freq/prim_mode = %#02x, want 0x02", got)
	}
}

func TestSetTimingsPredefinedHDMI(t *testing.T) {
	m := newMock7611()
	rx := new7611(t, m)
	if err := rx.SetInput(InputHDMI); err != nil {
		t.Fatal(err)
	}
	m.clearLog()

	if err := rx.SetTimings(timings.CEA1280x720p60); err != nil {
		t.Fatalf("SetTimings: %v", err)
	}
	if got := lastWrite(t, m, ioAddr, 0x00); got != 0x13 {
		t.Errorf("vid_std = %#02x, want 0x13", got)
	}
	if got := lastWrite(t, m, ioAddr, 0x01); got != 0x05 {
		t.Errorf("v_freq/prim_mode = %#02x, want 0x05", got)
	}
	// no PLL divider without an AFE
	if got := m.writesTo(ioAddr, 0x16); got != nil {
		t.Errorf("unexpected io 0x16 writes: %#02x", got)
	}
}

func TestSetTimingsSnapsToNominal(t *testing.T) {
	m := newMock7611()
	rx := new7611(t, m)
	if err := rx.SetInput(InputHDMI); err != nil {
		t.Fatal(err)
	}

	near := timings.CEA1280x720p60
	near.PixelClock = 74300000
	if err := rx.SetTimings(near); err != nil {
		t.Fatalf("SetTimings: %v", err)
	}
	if got := rx.CurrentTimings(); got != timings.CEA1280x720p60 {
		t.Errorf("CurrentTimings = %v, want the nominal entry", got)
	}
}

func TestSetTimingsCustomAnalog(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)
	if err := rx.SetInput(InputGraphics); err != nil {
		t.Fatal(err)
	}
	m.clearLog()

	custom := timings.Timing{
		Width: 1000, Height: 500,
		PixelClock:  40000000,
		HFrontPorch: 24, HSync: 64, HBackPorch: 104,
		VFrontPorch: 3, VSync: 5, VBackPorch: 12,
	}
	if err := rx.SetTimings(custom); err != nil {
		t.Fatalf("SetTimings: %v", err)
	}

	// auto graphics mode with embedded syncs
	if got := lastWrite(t, m, ioAddr, 0x00); got != 0x07 {
		t.Errorf("vid_std = %#02x, want 0x07", got)
	}
	if got := lastWrite(t, m, ioAddr, 0x01); got != 0x02 {
		t.Errorf("prim_mode = %#02x, want 0x02", got)
	}
	if got := lastWrite(t, m, cpAddr, 0x81); got&0x10 == 0 {
		t.Errorf("cp 0x81 = %#02x, want embedded syncs enabled", got)
	}

	// manual PLL divider for the 1192 clock total line
	var pll *blockWrite
	for i := range m.blocks {
		if m.blocks[i].addr == ioAddr && m.blocks[i].reg == 0x16 {
			pll = &m.blocks[i]
		}
	}
	if pll == nil {
		t.Fatal("no PLL divider block write")
	}
	if len(pll.data) != 2 || pll.data[0] != 0xc4 || pll.data[1] != 0xa8 {
		t.Errorf("PLL divider = %#02x, want [0xc4 0xa8]", pll.data)
	}

	// CP active video window
	window := []struct {
		reg  uint8
		want uint8
	}{
		{0xa2, 0x0a}, // SAV starts at pixel 164
		{0xa3, 0x44}, // EAV starts at pixel 1168
		{0xa4, 0x90},
		{0xa5, 0x20}, // VBI starts at line 517
		{0xa6, 0x50}, // VBI ends at line 17
		{0xa7, 0x11},
	}
	for _, w := range window {
		if got := lastWrite(t, m, cpAddr, w.reg); got != w.want {
			t.Errorf("cp %#02x = %#02x, want %#02x", w.reg, got, w.want)
		}
	}

	// free run line length 853 and 520 line height
	if got := lastWrite(t, m, cpAddr, 0x8f); got != 0x03 {
		t.Errorf("cp 0x8f = %#02x, want 0x03", got)
	}
	if got := lastWrite(t, m, cpAddr, 0x90); got != 0x55 {
		t.Errorf("cp 0x90 = %#02x, want 0x55", got)
	}
	if got := lastWrite(t, m, cpAddr, 0xab); got != 0x20 {
		t.Errorf("cp 0xab = %#02x, want 0x20", got)
	}
	if got := lastWrite(t, m, cpAddr, 0xac); got != 0x80 {
		t.Errorf("cp 0xac = %#02x, want 0x80", got)
	}
}

func TestSetTimingsCustomDigital(t *testing.T) {
	m := newMock7611()
	rx := new7611(t, m)
	if err := rx.SetInput(InputHDMI); err != nil {
		t.Fatal(err)
	}
	m.clearLog()

	custom := timings.Timing{
		Width: 1000, Height: 500,
		PixelClock:  40000000,
		HFrontPorch: 24, HSync: 64, HBackPorch: 104,
		VFrontPorch: 3, VSync: 5, VBackPorch: 12,
	}
	if err := rx.SetTimings(custom); err != nil {
		t.Fatalf("SetTimings: %v", err)
	}
	if got := lastWrite(t, m, ioAddr, 0x00); got != 0x02 {
		t.Errorf("vid_std = %#02x, want 0x02", got)
	}
	if got := lastWrite(t, m, ioAddr, 0x01); got != 0x06 {
		t.Errorf("prim_mode = %#02x, want 0x06", got)
	}
}

func TestSetTimingsOutOfRange(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)
	if err := rx.SetInput(InputGraphics); err != nil {
		t.Fatal(err)
	}

	fast := timings.CEA1920x1080p60
	fast.PixelClock = 200000000
	if err := rx.SetTimings(fast); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("200 MHz on the analog path = %v, want ErrOutOfRange", err)
	}
	if err := rx.SetTimings(timings.Timing{}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("zero timing = %v, want ErrOutOfRange", err)
	}
}

func TestRGBQuantizationRange(t *testing.T) {
	m := newMock7611()
	rx := new7611(t, m)
	if err := rx.SetInput(InputHDMI); err != nil {
		t.Fatal(err)
	}

	if err := rx.SetRGBQuantizationRange(RGBRangeFull); err != nil {
		t.Fatal(err)
	}
	if got := m.get(ioAddr, 0x02) & 0xf0; got != 0x10 {
		t.Errorf("range bits = %#02x, want 0x10 (full)", got)
	}

	if err := rx.SetRGBQuantizationRange(RGBRangeLimited); err != nil {
		t.Fatal(err)
	}
	if got := m.get(ioAddr, 0x02) & 0xf0; got != 0x00 {
		t.Errorf("range bits = %#02x, want 0x00 (limited)", got)
	}

	// automatic with an HDMI source follows the stream
	m.set(hdmiAddr, 0x05, 0x80)
	if err := rx.SetRGBQuantizationRange(RGBRangeAuto); err != nil {
		t.Fatal(err)
	}
	if got := m.get(ioAddr, 0x02) & 0xf0; got != 0xf0 {
		t.Errorf("range bits = %#02x, want 0xf0 (auto)", got)
	}

	// a DVI-D source carrying a CEA format is forced to limited
	m.set(hdmiAddr, 0x05, 0x00)
	rx.mu.Lock()
	rx.current = timings.CEA1280x720p60
	rx.mu.Unlock()
	if err := rx.SetRGBQuantizationRange(RGBRangeAuto); err != nil {
		t.Fatal(err)
	}
	if got := m.get(ioAddr, 0x02) & 0xf0; got != 0x00 {
		t.Errorf("range bits = %#02x, want 0x00 (limited for CEA over DVI)", got)
	}
}

func TestControls(t *testing.T) {
	m := newMock7604()
	rx := new7604(t, m)

	if err := rx.SetBrightness(-128); err != nil {
		t.Fatal(err)
	}
	if got := m.get(cpAddr, 0x3c); got != 0x80 {
		t.Errorf("brightness -128 wrote %#02x, want 0x80", got)
	}
	if err := rx.SetBrightness(-129); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("brightness -129 = %v, want ErrOutOfRange", err)
	}
	if err := rx.SetContrast(256); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("contrast 256 = %v, want ErrOutOfRange", err)
	}
	if err := rx.SetSaturation(200); err != nil {
		t.Fatal(err)
	}
	if got := m.get(cpAddr, 0x3b); got != 200 {
		t.Errorf("saturation wrote %#02x, want 200", got)
	}
	if err := rx.SetHue(129); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("hue 129 = %v, want ErrOutOfRange", err)
	}

	if err := rx.SetSamplingPhase(0x1f); err != nil {
		t.Fatal(err)
	}
	if got := m.get(afeAddr, 0xc8); got != 0x1f {
		t.Errorf("sampling phase wrote %#02x, want 0x1f", got)
	}
	if err := rx.SetSamplingPhase(32); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("phase 32 = %v, want ErrOutOfRange", err)
	}

	digital := new7611(t, newMock7611())
	if err := digital.SetSamplingPhase(0); err == nil {
		t.Error("sampling phase accepted on a chip without an AFE")
	}

	if err := rx.SetFreeRunColor(0x4080c0); err != nil {
		t.Fatal(err)
	}
	if m.get(cpAddr, 0xc0) != 0x40 || m.get(cpAddr, 0xc1) != 0x80 || m.get(cpAddr, 0xc2) != 0xc0 {
		t.Error("free run color not split across cp 0xc0..0xc2")
	}
	if err := rx.SetFreeRunColorManual(true); err != nil {
		t.Fatal(err)
	}
	if got := m.get(cpAddr, 0xbf) & 0x04; got == 0 {
		t.Error("free run manual bit not set")
	}
}
