package timings

// AspectRatio is an image aspect ratio as a fraction.
type AspectRatio struct {
	Numerator   int
	Denominator int
}

// DefaultAspect is the 16:9 ratio assumed whenever no EDID ever supplied a
// display size.
var DefaultAspect = AspectRatio{16, 9}

// RatioFromEDID derives an aspect ratio from EDID bytes 0x15 and 0x16 (the
// base block's display size fields). Both bytes set means a physical size in
// centimeters; a single byte set encodes the ratio itself as (value+99)/100,
// landscape in 0x15, portrait in 0x16; neither set falls back to 16:9.
func RatioFromEDID(horLandscape, vertPortrait uint8) AspectRatio {
	if horLandscape == 0 && vertPortrait == 0 {
		return DefaultAspect
	}
	if horLandscape != 0 && vertPortrait != 0 {
		return AspectRatio{int(horLandscape), int(vertPortrait)}
	}

	var aspect AspectRatio
	switch ratio := horLandscape | vertPortrait; ratio {
	case 79: // rounded 16:9
		aspect = AspectRatio{16, 9}
	case 34: // rounded 4:3
		aspect = AspectRatio{4, 3}
	case 68: // rounded 15:9
		aspect = AspectRatio{15, 9}
	default:
		aspect = AspectRatio{int(ratio) + 99, 100}
	}
	if vertPortrait != 0 {
		aspect.Numerator, aspect.Denominator = aspect.Denominator, aspect.Numerator
	}
	return aspect
}
