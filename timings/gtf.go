package timings

// VESA GTF generation constants. Default curve: C=40, J=20, K=128, M=600.
// Secondary curve: C=40, J=35, K=40, M=3600.
const (
	gtfPclkGranularity = 250000 // Hz
	gtfCellGran        = 8      // pixels
	gtfMinVSyncBP      = 550    // vsync + back porch, microseconds
	gtfVFPorch         = 1      // lines
	gtfVSync           = 3      // lines, fixed by the standard

	gtfDCPrime = ((cvtC-cvtJ)*cvtK)/256 + cvtJ
	gtfDMPrime = (cvtK * cvtM) / 256

	gtfSC      = 40
	gtfSJ      = 35
	gtfSK      = 40
	gtfSM      = 3600
	gtfSCPrime = ((gtfSC-gtfSJ)*gtfSK)/256 + gtfSJ
	gtfSMPrime = (gtfSK * gtfSM) / 256
)

// DetectGTF reconstructs a GTF timing from the measured frame geometry.
// GTF always uses a 3-line vsync, so the aspect ratio cannot be inferred
// from the measurement; callers pass the ratio hinted by their EDID (use
// DefaultAspect when none was ever supplied). -hsync/+vsync selects the
// default blanking curve, +hsync/-vsync the secondary curve. Returns false
// when the measurements cannot be a GTF format.
func DetectGTF(totalLines, hfreq, vsync int, pol SyncPolarities, aspect AspectRatio) (Timing, bool) {
	if vsync != gtfVSync || hfreq <= 0 {
		return Timing{}, false
	}
	if aspect.Denominator == 0 {
		aspect = DefaultAspect
	}

	var defaultCurve bool
	switch pol {
	case VSyncPositive:
		defaultCurve = true
	case HSyncPositive:
		defaultCurve = false
	default:
		return Timing{}, false
	}

	vFP := gtfVFPorch
	vBP := (gtfMinVSyncBP*hfreq+999999)/1000000 - vsync

	height := (totalLines - vFP - vsync - vBP + 1) &^ 1
	if height <= 0 {
		return Timing{}, false
	}

	width := height * aspect.Numerator / aspect.Denominator
	width = (width + gtfCellGran/2) &^ (gtfCellGran - 1)

	cPrime, mPrime := gtfDCPrime, gtfDMPrime
	if !defaultCurve {
		cPrime, mPrime = gtfSCPrime, gtfSMPrime
	}

	// h_blank = width * duty / (100 - duty) with duty = C' - M'/hfreq(kHz),
	// rounded to the nearest double character cell.
	num := int64(width)*int64(cPrime)*int64(hfreq) - int64(width)*int64(mPrime)*1000
	den := int64(hfreq*(100-cPrime)+mPrime*1000) * int64(2*gtfCellGran)
	if num < 0 || den <= 0 {
		return Timing{}, false
	}
	hBlank := int((num + den/2) / den * int64(2*gtfCellGran))

	pclk := int64(width+hBlank) * int64(hfreq)
	pclk = pclk / gtfPclkGranularity * gtfPclkGranularity

	hSync := ((width+hBlank)*cvtHSyncPercent + 50) / 100
	hSync = (hSync + gtfCellGran/2) / gtfCellGran * gtfCellGran
	hFP := hBlank/2 - hSync
	if hFP < 0 {
		return Timing{}, false
	}

	return Timing{
		Width: width, Height: height,
		PixelClock:  pclk,
		HFrontPorch: hFP, HSync: hSync, HBackPorch: hBlank - hFP - hSync,
		VFrontPorch: vFP, VSync: vsync, VBackPorch: totalLines - height - vFP - vsync,
		Polarities: pol,
		Standards:  StdGTF,
	}, true
}
