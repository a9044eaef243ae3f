package regmap

import "fmt"

// Page identifies one logical register page of the chip.
type Page uint8

// Register pages, in the order of the chip's logical address space.
const (
	PageIO Page = iota
	PageAVLink
	PageCEC
	PageInfoFrame
	PageESDP
	PageDPP
	PageAFE
	PageRep
	PageEDID
	PageHDMI
	PageTest
	PageCP
	PageVDP

	// PageCount is the number of logical pages in the address space.
	PageCount
)

var pageNames = [PageCount]string{
	"IO", "AVLink", "CEC", "InfoFrame", "ESDP", "DPP", "AFE",
	"Repeater", "EDID", "HDMI", "Test", "CP", "VDP",
}

func (p Page) String() string {
	if p < PageCount {
		return pageNames[p]
	}
	return fmt.Sprintf("Page(%d)", uint8(p))
}

// PageMask is a bit set of pages present on a chip variant.
type PageMask uint16

// MaskOf builds a PageMask from a list of pages.
func MaskOf(pages ...Page) PageMask {
	var m PageMask
	for _, p := range pages {
		m |= 1 << p
	}
	return m
}

// Has reports whether the page is present in the mask.
func (m PageMask) Has(p Page) bool {
	return p < PageCount && m&(1<<p) != 0
}

// Reg is a logical register address: page in the high bits, offset in the
// low 8 bits.
type Reg uint16

// RegOf combines a page and an offset into a logical register address.
func RegOf(p Page, offset uint8) Reg {
	return Reg(p)<<8 | Reg(offset)
}

// Page returns the page part of the address.
func (r Reg) Page() Page { return Page(r >> 8) }

// Offset returns the offset part of the address.
func (r Reg) Offset() uint8 { return uint8(r) }

func (r Reg) String() string {
	return fmt.Sprintf("%s:0x%02x", r.Page(), r.Offset())
}

// Bus is the byte-level register transport, typically an I2C adapter. Each
// page of the register space lives behind its own physical device address.
//
// Implementations must be safe to call from the single goroutine that owns
// the register space; they do not need their own locking.
type Bus interface {
	// ReadByte reads one register from the device at addr.
	ReadByte(addr uint16, reg uint8) (uint8, error)

	// WriteByte writes one register on the device at addr.
	WriteByte(addr uint16, reg uint8, val uint8) error

	// WriteBlock writes len(data) consecutive registers starting at reg.
	// len(data) never exceeds BlockSize.
	WriteBlock(addr uint16, reg uint8, data []byte) error
}

// BlockSize is the largest block transfer the transport accepts, matching
// the SMBus block maximum.
const BlockSize = 32

// WriteRetries is the number of attempts made for each register write
// before the bus error is surfaced. Reads are not retried.
const WriteRetries = 3

// Space routes logical register addresses to the physical sub-devices of
// one chip. The page set and routing are fixed at construction.
type Space struct {
	bus   Bus
	pages PageMask
	addrs [PageCount]uint16
}

// NewSpace creates a register space over bus. Only pages present in mask are
// accessible; addrs gives the physical device address per page. Pages absent
// from both mask and addrs are unreachable and fail closed.
func NewSpace(bus Bus, mask PageMask, addrs map[Page]uint16) *Space {
	s := &Space{bus: bus, pages: mask}
	for p, a := range addrs {
		if p < PageCount {
			s.addrs[p] = a
		}
	}
	return s
}

// Pages returns the page mask the space was built with.
func (s *Space) Pages() PageMask { return s.pages }

// PageAddress returns the physical device address a page is routed to.
func (s *Space) PageAddress(p Page) uint16 {
	if p >= PageCount {
		return 0
	}
	return s.addrs[p]
}

// SetPageAddress reroutes a page to a new physical address, for relocating
// a sub-device away from an address conflict after construction.
func (s *Space) SetPageAddress(p Page, addr uint16) {
	if p < PageCount {
		s.addrs[p] = addr
	}
}

func (s *Space) route(r Reg) (uint16, error) {
	if !s.pages.Has(r.Page()) {
		return 0, &NotSupportedError{Reg: r}
	}
	return s.addrs[r.Page()], nil
}

// Read reads a single register. A page absent from the variant returns
// ErrNotSupported; transport failures return a BusError.
func (s *Space) Read(r Reg) (uint8, error) {
	addr, err := s.route(r)
	if err != nil {
		return 0, err
	}
	v, err := s.bus.ReadByte(addr, r.Offset())
	if err != nil {
		return 0, &BusError{Op: "read", Reg: r, Err: err}
	}
	return v, nil
}

// Read16 reads the register pair r, r+1 as a big-endian 16-bit value and
// masks it. Used for the counter registers that span two offsets.
func (s *Space) Read16(r Reg, mask uint16) (uint16, error) {
	hi, err := s.Read(r)
	if err != nil {
		return 0, err
	}
	lo, err := s.Read(r + 1)
	if err != nil {
		return 0, err
	}
	return (uint16(hi)<<8 | uint16(lo)) & mask, nil
}

// Write writes a single register, retrying transient bus errors up to
// WriteRetries times.
func (s *Space) Write(r Reg, val uint8) error {
	addr, err := s.route(r)
	if err != nil {
		return err
	}
	for i := 0; i < WriteRetries; i++ {
		if err = s.bus.WriteByte(addr, r.Offset(), val); err == nil {
			return nil
		}
	}
	return &BusError{Op: "write", Reg: r, Err: err}
}

// WriteMasked reads the register, keeps the bits in mask, ORs in val and
// writes the result back. The owning receiver's lock makes the sequence
// atomic with respect to other writers.
func (s *Space) WriteMasked(r Reg, mask, val uint8) error {
	cur, err := s.Read(r)
	if err != nil {
		return err
	}
	return s.Write(r, cur&mask|val)
}

// WriteBlock writes data to consecutive registers starting at r, split into
// BlockSize chunks.
func (s *Space) WriteBlock(r Reg, data []byte) error {
	addr, err := s.route(r)
	if err != nil {
		return err
	}
	off := int(r.Offset())
	for i := 0; i < len(data); i += BlockSize {
		end := i + BlockSize
		if end > len(data) {
			end = len(data)
		}
		if err := s.bus.WriteBlock(addr, uint8(off+i), data[i:end]); err != nil {
			return &BusError{Op: "write block", Reg: RegOf(r.Page(), uint8(off+i)), Err: err}
		}
	}
	return nil
}

// WriteOp is a single register assignment within a preset sequence.
type WriteOp struct {
	Reg Reg
	Val uint8
}

// WriteSeq applies a preset sequence verbatim, stopping at the first error.
func (s *Space) WriteSeq(seq []WriteOp) error {
	for _, op := range seq {
		if err := s.Write(op.Reg, op.Val); err != nil {
			return err
		}
	}
	return nil
}
