package timings

// VESA CVT generation constants. The C'/M' blanking curve coefficients come
// from the standard's K=128 scaling of C=40, J=20, M=600.
const (
	cvtPclkGranularity = 250000 // Hz
	cvtCellGran        = 8      // pixels
	cvtHSyncPercent    = 8      // percent of total line

	cvtM      = 600
	cvtC      = 40
	cvtK      = 128
	cvtJ      = 20
	cvtCPrime = ((cvtC-cvtJ)*cvtK)/256 + cvtJ
	cvtMPrime = (cvtK * cvtM) / 256

	cvtMinVSyncBP   = 550 // vsync + back porch, microseconds
	cvtMinVPorch    = 3   // lines
	cvtMinVBPorch   = 6   // lines
	cvtRBMinVBlank  = 460 // microseconds
	cvtRBVFPorch    = 3   // lines
	cvtRBMinVBPorch = 7   // lines
	cvtRBHSync      = 32  // pixels
	cvtRBHBlank     = 160 // pixels
	cvtRBHBPorch    = 80  // pixels
)

// DetectCVT reconstructs a CVT timing from the measured frame geometry:
// total line count, horizontal frequency in Hz and vsync width in lines.
// CVT encodes the image aspect ratio in the vsync width and the blanking
// style in the sync polarities (+hsync/-vsync means reduced blanking,
// -hsync/+vsync standard blanking). Returns false when the measurements
// cannot be a CVT format.
func DetectCVT(totalLines, hfreq, vsync int, pol SyncPolarities) (Timing, bool) {
	if vsync < 4 || vsync > 7 || hfreq <= 0 {
		return Timing{}, false
	}

	var reducedBlanking bool
	switch pol {
	case VSyncPositive:
		reducedBlanking = false
	case HSyncPositive:
		reducedBlanking = true
	default:
		return Timing{}, false
	}

	var vFP, vBP int
	if reducedBlanking {
		vFP = cvtRBVFPorch
		vBP = (cvtRBMinVBlank*hfreq+999999)/1000000 - vsync - vFP
		if vBP < cvtRBMinVBPorch {
			vBP = cvtRBMinVBPorch
		}
	} else {
		vFP = cvtMinVPorch
		vBP = (cvtMinVSyncBP*hfreq+999999)/1000000 - vsync
		if vBP < cvtMinVBPorch {
			vBP = cvtMinVBPorch
		}
	}

	height := (totalLines - vFP - vsync - vBP + 1) &^ 1
	if height <= 0 {
		return Timing{}, false
	}

	var width int
	switch vsync {
	case 4:
		width = height * 4 / 3
	case 5:
		width = height * 16 / 9
	case 6:
		width = height * 16 / 10
	case 7:
		// 5:4 and 15:9 share the code point; disambiguate by height
		switch height {
		case 1024:
			width = height * 5 / 4
		case 768:
			width = height * 15 / 9
		default:
			return Timing{}, false
		}
	}
	width &^= cvtCellGran - 1

	var hFP, hSync, hBP int
	var pclk int64
	if reducedBlanking {
		pclk = int64(width+cvtRBHBlank) * int64(hfreq)
		pclk = pclk / cvtPclkGranularity * cvtPclkGranularity

		hBP = cvtRBHBPorch
		hSync = cvtRBHSync
		hFP = cvtRBHBlank - hBP - hSync
	} else {
		// Ideal duty cycle in hundredths of a percent, clamped to the
		// standard's 20% blanking floor.
		duty := 100*cvtCPrime - cvtMPrime*100000/hfreq
		if duty < 2000 {
			duty = 2000
		}
		hBlank := width * duty / (10000 - duty)
		hBlank -= hBlank % (2 * cvtCellGran)

		pclk = int64(width+hBlank) * int64(hfreq)
		pclk = pclk / cvtPclkGranularity * cvtPclkGranularity

		hBP = hBlank / 2
		hSync = (width + hBlank) * cvtHSyncPercent / 100
		hSync -= hSync % cvtCellGran
		hFP = hBlank - hSync - hBP
	}
	if hFP < 0 {
		return Timing{}, false
	}

	t := Timing{
		Width: width, Height: height,
		PixelClock:  pclk,
		HFrontPorch: hFP, HSync: hSync, HBackPorch: hBP,
		VFrontPorch: vFP, VSync: vsync, VBackPorch: totalLines - height - vFP - vsync,
		Polarities: pol,
		Standards:  StdCVT,
	}
	if reducedBlanking {
		t.Flags |= FlagReducedBlanking
	}
	return t, true
}
