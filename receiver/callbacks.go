package receiver

// HotplugFunc is called when the receiver changes the hotplug assertion on
// the selected HDMI port: after EDID programming completes (asserted) and
// when the EDID RAM is disabled (deasserted). Implementations should return
// quickly; the callback runs with the receiver lock held except for the
// deferred re-assert after SetEDID.
type HotplugFunc func(asserted bool)

// FormatChangeFunc is called from HandleInterrupt when the chip reports
// that the incoming video format changed. It runs after the interrupt has
// been acknowledged, outside the receiver lock, so calling QueryTimings
// from it is fine.
type FormatChangeFunc func()

// CableDetectFunc is called from HandleInterrupt when the +5V cable detect
// state of the selected HDMI port changes.
type CableDetectFunc func(present bool)

// Logger is an optional logging interface that can be provided to the
// receiver. This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	rx, err := receiver.New(bus, receiver.ADV7611, receiver.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// noopLogger is used when no Logger was configured.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
