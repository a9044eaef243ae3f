package timings

// bt builds a table entry. Arguments follow the register order the hardware
// reports: geometry, clock, horizontal blanking, vertical blanking.
func bt(w, h int, pol SyncPolarities, pclk int64,
	hfp, hs, hbp, vfp, vs, vbp int, std Standard, fl Flags) Timing {
	return Timing{
		Width: w, Height: h,
		PixelClock:  pclk,
		HFrontPorch: hfp, HSync: hs, HBackPorch: hbp,
		VFrontPorch: vfp, VSync: vs, VBackPorch: vbp,
		Polarities: pol, Standards: std, Flags: fl,
	}
}

const (
	polNone = SyncPolarities(0)
	polBoth = HSyncPositive | VSyncPositive
)

// CEA-861 timings.
var (
	CEA720x480p59   = bt(720, 480, polNone, 27000000, 16, 62, 60, 9, 6, 30, StdCEA861, FlagCanReduceFPS)
	CEA720x576p50   = bt(720, 576, polNone, 27000000, 12, 64, 68, 5, 5, 39, StdCEA861, 0)
	CEA1280x720p24  = bt(1280, 720, polBoth, 59400000, 1760, 40, 220, 5, 5, 20, StdCEA861, FlagCanReduceFPS)
	CEA1280x720p25  = bt(1280, 720, polBoth, 74250000, 2420, 40, 220, 5, 5, 20, StdCEA861, 0)
	CEA1280x720p50  = bt(1280, 720, polBoth, 74250000, 440, 40, 220, 5, 5, 20, StdCEA861, 0)
	CEA1280x720p60  = bt(1280, 720, polBoth, 74250000, 110, 40, 220, 5, 5, 20, StdCEA861, FlagCanReduceFPS)
	CEA1920x1080p24 = bt(1920, 1080, polBoth, 74250000, 638, 44, 148, 4, 5, 36, StdCEA861, FlagCanReduceFPS)
	CEA1920x1080p25 = bt(1920, 1080, polBoth, 74250000, 528, 44, 148, 4, 5, 36, StdCEA861, 0)
	CEA1920x1080p30 = bt(1920, 1080, polBoth, 74250000, 88, 44, 148, 4, 5, 36, StdCEA861, FlagCanReduceFPS)
	CEA1920x1080p50 = bt(1920, 1080, polBoth, 148500000, 528, 44, 148, 4, 5, 36, StdCEA861, 0)
	CEA1920x1080p60 = bt(1920, 1080, polBoth, 148500000, 88, 44, 148, 4, 5, 36, StdCEA861, FlagCanReduceFPS)
)

// VESA DMT timings.
var (
	DMT640x350p85   = bt(640, 350, HSyncPositive, 31500000, 32, 64, 96, 32, 3, 60, StdDMT, 0)
	DMT640x400p85   = bt(640, 400, VSyncPositive, 31500000, 32, 64, 96, 1, 3, 41, StdDMT, 0)
	DMT720x400p85   = bt(720, 400, VSyncPositive, 35500000, 36, 72, 108, 1, 3, 42, StdDMT, 0)
	DMT640x480p60   = bt(640, 480, polNone, 25175000, 16, 96, 48, 10, 2, 33, StdDMT, 0)
	DMT640x480p72   = bt(640, 480, polNone, 31500000, 24, 40, 128, 9, 3, 28, StdDMT, 0)
	DMT640x480p75   = bt(640, 480, polNone, 31500000, 16, 64, 120, 1, 3, 16, StdDMT, 0)
	DMT640x480p85   = bt(640, 480, polNone, 36000000, 56, 56, 80, 1, 3, 25, StdDMT, 0)
	DMT800x600p56   = bt(800, 600, polBoth, 36000000, 24, 72, 128, 1, 2, 22, StdDMT, 0)
	DMT800x600p60   = bt(800, 600, polBoth, 40000000, 40, 128, 88, 1, 4, 23, StdDMT, 0)
	DMT800x600p72   = bt(800, 600, polBoth, 50000000, 56, 120, 64, 37, 6, 23, StdDMT, 0)
	DMT800x600p75   = bt(800, 600, polBoth, 49500000, 16, 80, 160, 1, 3, 21, StdDMT, 0)
	DMT800x600p85   = bt(800, 600, polBoth, 56250000, 32, 64, 152, 1, 3, 27, StdDMT, 0)
	DMT848x480p60   = bt(848, 480, polBoth, 33750000, 16, 112, 112, 6, 8, 23, StdDMT, 0)
	DMT1024x768p60  = bt(1024, 768, polNone, 65000000, 24, 136, 160, 3, 6, 29, StdDMT, 0)
	DMT1024x768p70  = bt(1024, 768, polNone, 75000000, 24, 136, 144, 3, 6, 29, StdDMT, 0)
	DMT1024x768p75  = bt(1024, 768, polBoth, 78750000, 16, 96, 176, 1, 3, 28, StdDMT, 0)
	DMT1024x768p85  = bt(1024, 768, polBoth, 94500000, 48, 96, 208, 1, 3, 36, StdDMT, 0)
	DMT1152x864p75  = bt(1152, 864, polBoth, 108000000, 64, 128, 256, 1, 3, 32, StdDMT, 0)
	DMT1280x768p60RB = bt(1280, 768, HSyncPositive, 68250000, 48, 32, 80, 3, 7, 12,
		StdDMT|StdCVT, FlagReducedBlanking)
	DMT1280x768p60  = bt(1280, 768, VSyncPositive, 79500000, 64, 128, 192, 3, 7, 20, StdDMT|StdCVT, 0)
	DMT1280x768p75  = bt(1280, 768, VSyncPositive, 102250000, 80, 128, 208, 3, 7, 27, StdDMT|StdCVT, 0)
	DMT1280x768p85  = bt(1280, 768, VSyncPositive, 117500000, 80, 136, 224, 3, 7, 29, StdDMT|StdCVT, 0)
	DMT1280x800p60RB = bt(1280, 800, HSyncPositive, 71000000, 48, 32, 80, 3, 6, 14,
		StdDMT|StdCVT, FlagReducedBlanking)
	DMT1280x800p60  = bt(1280, 800, VSyncPositive, 83500000, 72, 128, 200, 3, 6, 22, StdDMT|StdCVT, 0)
	DMT1280x800p75  = bt(1280, 800, VSyncPositive, 106500000, 80, 128, 208, 3, 6, 29, StdDMT|StdCVT, 0)
	DMT1280x800p85  = bt(1280, 800, VSyncPositive, 122500000, 80, 136, 216, 3, 6, 31, StdDMT|StdCVT, 0)
	DMT1280x960p60  = bt(1280, 960, polBoth, 108000000, 96, 112, 312, 1, 3, 36, StdDMT, 0)
	DMT1280x960p85  = bt(1280, 960, polBoth, 148500000, 64, 160, 224, 1, 3, 47, StdDMT, 0)
	DMT1280x1024p60 = bt(1280, 1024, polBoth, 108000000, 48, 112, 248, 1, 3, 38, StdDMT, 0)
	DMT1280x1024p75 = bt(1280, 1024, polBoth, 135000000, 16, 144, 248, 1, 3, 38, StdDMT, 0)
	DMT1280x1024p85 = bt(1280, 1024, polBoth, 157500000, 64, 160, 224, 1, 3, 44, StdDMT, 0)
	DMT1360x768p60  = bt(1360, 768, polBoth, 85500000, 64, 112, 256, 3, 6, 18, StdDMT, 0)
	DMT1400x1050p60RB = bt(1400, 1050, HSyncPositive, 101000000, 48, 32, 80, 3, 4, 23,
		StdDMT|StdCVT, FlagReducedBlanking)
	DMT1400x1050p60 = bt(1400, 1050, VSyncPositive, 121750000, 88, 144, 232, 3, 4, 32, StdDMT|StdCVT, 0)
	DMT1400x1050p75 = bt(1400, 1050, VSyncPositive, 156000000, 104, 144, 248, 3, 4, 42, StdDMT|StdCVT, 0)
	DMT1400x1050p85 = bt(1400, 1050, VSyncPositive, 179500000, 104, 152, 256, 3, 4, 48, StdDMT|StdCVT, 0)
	DMT1440x900p60RB = bt(1440, 900, HSyncPositive, 88750000, 48, 32, 80, 3, 6, 17,
		StdDMT|StdCVT, FlagReducedBlanking)
	DMT1440x900p60  = bt(1440, 900, VSyncPositive, 106500000, 80, 152, 232, 3, 6, 25, StdDMT|StdCVT, 0)
	DMT1600x1200p60 = bt(1600, 1200, polBoth, 162000000, 64, 192, 304, 1, 3, 46, StdDMT, 0)
	DMT1680x1050p60RB = bt(1680, 1050, HSyncPositive, 119000000, 48, 32, 80, 3, 6, 21,
		StdDMT|StdCVT, FlagReducedBlanking)
	DMT1680x1050p60 = bt(1680, 1050, VSyncPositive, 146250000, 104, 176, 280, 3, 6, 30, StdDMT|StdCVT, 0)
	DMT1792x1344p60 = bt(1792, 1344, VSyncPositive, 204750000, 128, 200, 328, 1, 3, 46, StdDMT, 0)
	DMT1856x1392p60 = bt(1856, 1392, VSyncPositive, 218250000, 96, 224, 352, 1, 3, 43, StdDMT, 0)
	DMT1920x1200p60RB = bt(1920, 1200, HSyncPositive, 154000000, 48, 32, 80, 3, 6, 26,
		StdDMT|StdCVT, FlagReducedBlanking)
	DMT1366x768p60  = bt(1366, 768, polBoth, 85500000, 70, 143, 213, 3, 3, 24, StdDMT, 0)
	DMT1920x1080p60 = bt(1920, 1080, polBoth, 148500000, 88, 44, 148, 4, 5, 36, StdDMT, 0)
)

// Supported lists every format the receiver recognizes: CEA timings first,
// then DMT timings sorted by DMT ID. Table scans return the first match, so
// the CEA variant of a format shared with DMT wins.
var Supported = []Timing{
	CEA720x480p59,
	CEA720x576p50,
	CEA1280x720p24,
	CEA1280x720p25,
	CEA1280x720p50,
	CEA1280x720p60,
	CEA1920x1080p24,
	CEA1920x1080p25,
	CEA1920x1080p30,
	CEA1920x1080p50,
	CEA1920x1080p60,

	DMT640x350p85,
	DMT640x400p85,
	DMT720x400p85,
	DMT640x480p60,
	DMT640x480p72,
	DMT640x480p75,
	DMT640x480p85,
	DMT800x600p56,
	DMT800x600p60,
	DMT800x600p72,
	DMT800x600p75,
	DMT800x600p85,
	DMT848x480p60,
	DMT1024x768p60,
	DMT1024x768p70,
	DMT1024x768p75,
	DMT1024x768p85,
	DMT1152x864p75,
	DMT1280x768p60RB,
	DMT1280x768p60,
	DMT1280x768p75,
	DMT1280x768p85,
	DMT1280x800p60RB,
	DMT1280x800p60,
	DMT1280x800p75,
	DMT1280x800p85,
	DMT1280x960p60,
	DMT1280x960p85,
	DMT1280x1024p60,
	DMT1280x1024p75,
	DMT1280x1024p85,
	DMT1360x768p60,
	DMT1400x1050p60RB,
	DMT1400x1050p60,
	DMT1400x1050p75,
	DMT1400x1050p85,
	DMT1440x900p60RB,
	DMT1440x900p60,
	DMT1600x1200p60,
	DMT1680x1050p60RB,
	DMT1680x1050p60,
	DMT1792x1344p60,
	DMT1856x1392p60,
	DMT1920x1200p60RB,
	DMT1366x768p60,
	DMT1920x1080p60,
}

// FindMatch scans the table for the first entry matching t within the given
// pixel clock tolerance.
func FindMatch(t Timing, pclkTolerance int64) (Timing, bool) {
	for _, known := range Supported {
		if known.MatchesWithin(t, pclkTolerance) {
			return known, true
		}
	}
	return Timing{}, false
}
