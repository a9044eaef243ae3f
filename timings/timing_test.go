package timings

import "testing"

func TestTimingTotals(t *testing.T) {
	tm := CEA1280x720p60

	if got := tm.HTotal(); got != 1650 {
		t.Errorf("HTotal = %d, want 1650", got)
	}
	if got := tm.VTotal(); got != 750 {
		t.Errorf("VTotal = %d, want 750", got)
	}
	if got := tm.HBlank(); got != 370 {
		t.Errorf("HBlank = %d, want 370", got)
	}
	if got := tm.VBlank(); got != 30 {
		t.Errorf("VBlank = %d, want 30", got)
	}
	if got := tm.FrameRate(); got != 60 {
		t.Errorf("FrameRate = %d, want 60", got)
	}
}

func TestTimingString(t *testing.T) {
	tests := []struct {
		timing Timing
		want   string
	}{
		{CEA1280x720p60, "1280x720p60 (1650x750) 74.250 MHz"},
		{CEA720x576p50, "720x576p50 (864x625) 27.000 MHz"},
		{DMT640x480p60, "640x480p59 (800x525) 25.175 MHz"},
	}
	for _, tt := range tests {
		if got := tt.timing.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}

func TestMatchesWithin(t *testing.T) {
	base := CEA1920x1080p60

	tests := []struct {
		name      string
		mutate    func(*Timing)
		tolerance int64
		want      bool
	}{
		{"identical", func(*Timing) {}, 0, true},
		{"clock inside tolerance", func(m *Timing) { m.PixelClock += 240000 }, 250000, true},
		{"clock outside tolerance", func(m *Timing) { m.PixelClock += 260000 }, 250000, false},
		{"clock below nominal", func(m *Timing) { m.PixelClock -= 900000 }, 1000000, true},
		{"different width", func(m *Timing) { m.Width = 1280 }, 1000000, false},
		{"different polarities", func(m *Timing) { m.Polarities = 0 }, 1000000, false},
		{"different vsync", func(m *Timing) { m.VSync++ }, 1000000, false},
		{"interlaced mismatch", func(m *Timing) { m.Interlaced = true }, 1000000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			tt.mutate(&m)
			if got := base.MatchesWithin(m, tt.tolerance); got != tt.want {
				t.Errorf("MatchesWithin = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSupportedTableConsistency(t *testing.T) {
	for _, tm := range Supported {
		if tm.PixelClock <= 0 {
			t.Errorf("%s: pixel clock not set", tm)
		}
		if tm.Standards == 0 {
			t.Errorf("%s: no standard tag", tm)
		}
		if tm.Interlaced {
			t.Errorf("%s: receiver table must be progressive", tm)
		}
		// lcvs is a 5-bit hardware counter
		if tm.VSync < 1 || tm.VSync > 31 {
			t.Errorf("%s: vsync %d outside counter range", tm, tm.VSync)
		}
		// sanity: nominal refresh between 23 and 86 Hz
		if fr := tm.FrameRate(); fr < 23 || fr > 86 {
			t.Errorf("%s: frame rate %d implausible", tm, fr)
		}
	}
}

func TestFindMatch(t *testing.T) {
	got, ok := FindMatch(CEA1280x720p50, 0)
	if !ok || got != CEA1280x720p50 {
		t.Fatalf("FindMatch(720p50) = %v, %v", got, ok)
	}

	// The DMT 1920x1080p60 entry is geometry-identical to the CEA one;
	// the scan must return the CEA entry.
	got, ok = FindMatch(DMT1920x1080p60, 0)
	if !ok {
		t.Fatal("FindMatch(DMT 1080p60) found nothing")
	}
	if got.Standards&StdCEA861 == 0 {
		t.Errorf("FindMatch(DMT 1080p60) = %v, want the CEA entry", got)
	}

	if _, ok := FindMatch(Timing{Width: 100, Height: 100, PixelClock: 1000000}, 1000000); ok {
		t.Error("FindMatch matched an unknown format")
	}
}
