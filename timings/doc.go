// Package timings models digital video timings and detects them from coarse
// measurements.
//
// A Timing describes one video format the way the receiver hardware sees it:
// active geometry, blanking intervals, sync polarities, pixel clock and the
// standard it belongs to (CEA-861, VESA DMT, CVT, GTF).
//
// # Known timings
//
// Supported lists every CEA and DMT format the receiver recognizes. Matching
// against the table is tolerance-based on the pixel clock:
//
//	for _, t := range timings.Supported {
//	    if t.MatchesWithin(candidate, 250000) { ... }
//	}
//
// # Synthesis
//
// When a measured format is not in the table, DetectCVT and DetectGTF
// reconstruct a full timing from the total line count, horizontal frequency
// and vsync width, following the VESA Coordinated Video Timings and
// Generalized Timing Formula algorithms. CVT encodes the aspect ratio in the
// vsync width; GTF needs an externally supplied aspect ratio, typically the
// hint taken from an EDID with RatioFromEDID.
package timings
