// Package bus implements the 16-bit address bus that multiplexes
// memory-mapped peripherals for a 6502-family CPU. It owns an ordered,
// disjoint set of (range, peripheral) attachments and routes every read and
// write through them, returning 0 for unmapped reads and silently dropping
// unmapped writes, matching real hardware where an unselected chip simply
// leaves the bus floating.
package bus

import (
	"fmt"

	"github.com/hcaron/go6502/peripheral"
)

// AddrRange is an inclusive [Lo, Hi] span of the 16-bit address space.
type AddrRange struct {
	Lo, Hi uint16
}

func (r AddrRange) String() string {
	return fmt.Sprintf("[0x%04X-0x%04X]", r.Lo, r.Hi)
}

func (r AddrRange) overlaps(o AddrRange) bool {
	return r.Lo <= o.Hi && o.Lo <= r.Hi
}

func (r AddrRange) contains(addr uint16) bool {
	return addr >= r.Lo && addr <= r.Hi
}

// OverlapError is returned by Attach when the requested range intersects an
// already-attached peripheral's range.
type OverlapError struct {
	Existing  AddrRange
	Requested AddrRange
}

// Error implements the error interface.
func (e OverlapError) Error() string {
	return fmt.Sprintf("bus: requested range %s overlaps existing attachment %s", e.Requested, e.Existing)
}

type entry struct {
	rng AddrRange
	dev peripheral.Peripheral
}

// Bus owns a disjoint collection of attached peripherals, each bound to a
// range of the 16-bit address space, and dispatches reads/writes to them.
type Bus struct {
	entries []entry
}

// New returns an empty Bus with no peripherals attached.
func New() *Bus {
	return &Bus{}
}

// Attach registers dev over the inclusive range [lo, hi]. It fails with an
// OverlapError if the range intersects any existing attachment; the bus is
// left unchanged in that case. Peripherals cannot be detached once attached.
func (b *Bus) Attach(lo, hi uint16, dev peripheral.Peripheral) error {
	rng := AddrRange{Lo: lo, Hi: hi}
	for _, e := range b.entries {
		if e.rng.overlaps(rng) {
			return OverlapError{Existing: e.rng, Requested: rng}
		}
	}
	b.entries = append(b.entries, entry{rng: rng, dev: dev})
	return nil
}

// find returns the entry whose range contains addr, or nil if unmapped.
func (b *Bus) find(addr uint16) *entry {
	for i := range b.entries {
		if b.entries[i].rng.contains(addr) {
			return &b.entries[i]
		}
	}
	return nil
}

// Read returns the byte at addr, routed to whichever peripheral's range
// contains it. Returns 0 if no peripheral is mapped there.
func (b *Bus) Read(addr uint16) uint8 {
	e := b.find(addr)
	if e == nil {
		return 0
	}
	return e.dev.Read(addr - e.rng.Lo)
}

// Write stores val at addr, routed to whichever peripheral's range contains
// it. It is a no-op if no peripheral is mapped there.
func (b *Bus) Write(addr uint16, val uint8) {
	e := b.find(addr)
	if e == nil {
		return
	}
	e.dev.Write(addr-e.rng.Lo, val)
}

// Read16 performs a little-endian 16-bit read: low = Read(addr),
// high = Read(addr+1). Each byte is dispatched independently through Read,
// so a pair straddling two peripheral windows still resolves correctly.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return hi<<8 | lo
}

// Write16 performs a little-endian 16-bit write, dispatching each byte
// independently through Write.
func (b *Bus) Write16(addr uint16, data uint16) {
	b.Write(addr, uint8(data&0xFF))
	b.Write(addr+1, uint8(data>>8))
}
