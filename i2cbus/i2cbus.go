// Package i2cbus adapts a periph.io I2C bus to the regmap.Bus interface.
//
// The receiver addresses up to 13 I2C sub-devices, so the adapter wraps a
// whole bus rather than a single i2c.Dev:
//
//	if _, err := host.Init(); err != nil { ... }
//	bus, err := i2creg.Open("")
//	if err != nil { ... }
//	defer bus.Close()
//
//	rx, err := receiver.New(i2cbus.New(bus), receiver.ADV7611)
//
// All transfers are plain register-pointer transactions: a write of the
// register offset followed by the payload, or a repeated-start read.
package i2cbus

import (
	"periph.io/x/conn/v3/i2c"
)

// Bus wraps a periph.io i2c.Bus as a register-oriented byte transport.
type Bus struct {
	bus i2c.Bus
}

// New wraps the given periph.io bus.
func New(bus i2c.Bus) *Bus {
	return &Bus{bus: bus}
}

// ReadByte reads one register with a write/read transaction.
func (b *Bus) ReadByte(addr uint16, reg uint8) (uint8, error) {
	var buf [1]byte
	if err := b.bus.Tx(addr, []byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteByte writes one register.
func (b *Bus) WriteByte(addr uint16, reg, val uint8) error {
	return b.bus.Tx(addr, []byte{reg, val}, nil)
}

// WriteBlock writes consecutive registers starting at reg in one
// transaction, using the chip's address auto-increment.
func (b *Bus) WriteBlock(addr uint16, reg uint8, data []byte) error {
	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, reg)
	buf = append(buf, data...)
	return b.bus.Tx(addr, buf, nil)
}
