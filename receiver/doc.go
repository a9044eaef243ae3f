// Package receiver drives ADV7604 and ADV7611 video receivers: input
// routing, incoming timing detection, format programming and EDID
// management over a paged I2C register space.
//
// # Basic Usage
//
//	rx, err := receiver.New(bus, receiver.ADV7611)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rx.Close()
//
//	if err := rx.SetInput(receiver.InputHDMI); err != nil {
//	    log.Fatal(err)
//	}
//
//	timing, err := rx.QueryTimings()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("detected", timing)
//
// # Timing Detection
//
// QueryTimings measures what the selected input is carrying. On the HDMI
// path the chip reports the geometry directly; the measurement is matched
// against the known format table and tagged with the standard it belongs
// to when a table entry agrees within 250 kHz. On the analog path the standard
// identification counters are read and resolved against the table first,
// then against the CVT and GTF generation formulas. Formats that resist
// every strategy return ErrFormatUnrecognized.
//
// # EDID
//
// SetEDID programs the EDID RAM and re-asserts hotplug 100 ms later so the
// source re-reads the new contents. The aspect ratio encoded in the EDID
// base block feeds later GTF detection.
//
// # Events
//
// Callbacks for hotplug, cable detect and format change events can be
// installed with options:
//
//	rx, err := receiver.New(bus, receiver.ADV7611,
//	    receiver.WithFormatChangeFunc(func() { fmt.Println("format changed") }),
//	    receiver.WithLogger(myLogger),
//	)
//
// HandleInterrupt services the interrupt line and dispatches these
// callbacks.
//
// All methods are safe for concurrent use; register sequences are
// serialized on an internal mutex.
package receiver
