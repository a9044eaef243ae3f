// Package regmap implements the paged register space of the ADV76xx receivers.
//
// The chips expose a logical register space of 13 pages of 256 offsets each.
// Every page is routed to its own physical I2C sub-device address, but callers
// address registers uniformly:
//
//	Register: [PAGE (high bits)][OFFSET (low 8 bits)]
//
// Use RegOf to combine a page and offset, or the predefined register
// constants in the receiver package:
//
//	reg := regmap.RegOf(regmap.PageCP, 0xb1)
//	val, err := space.Read(reg)
//
// # Page routing
//
// A Space is constructed with the set of pages present on the chip variant
// and the physical address of each page. Reads and writes to a page that is
// absent from the variant fail closed with ErrNotSupported, never with a bus
// fault, so the same calling code runs against both hardware variants.
//
// # Reliability
//
// Writes are retried up to 3 times on transient bus errors before a BusError
// is surfaced. Reads are not retried. Block writes are split into 32-byte
// chunks, the largest transfer the SMBus-style transport accepts.
//
// # Concurrency
//
// A Space performs no locking of its own. The owning receiver serializes all
// access, including read-modify-write sequences, behind a single lock.
package regmap
