// Package peripheral defines the contract a memory-mapped device implements
// in order to be attached to a bus.Bus, along with a handful of reference
// implementations (RAM, ROM, and a mirrored window onto another peripheral)
// that are enough to exercise the bus and drive tests without depending on
// any concrete host system.
package peripheral

import (
	"math/rand"
	"time"
)

// Peripheral is a device that responds to byte reads and writes at a local
// address in [0, window size). The bus guarantees addr has already been
// translated from the global address space; a Peripheral never sees its
// attachment range.
type Peripheral interface {
	// Read returns the byte stored at the local address addr. Implementations
	// may have side effects (e.g. a status register that clears on read).
	Read(addr uint16) uint8
	// Write stores val at the local address addr. Writes to read-only
	// peripherals are simply ignored.
	Write(addr uint16, val uint8)
}

// RAM is a flat read/write byte bank. If the bank is smaller than the window
// it's attached under, callers are expected to mask addr before it arrives
// (the bus never does this on their behalf).
type RAM struct {
	mem []uint8
}

// NewRAM allocates a RAM bank of the given size, zero-filled.
func NewRAM(size int) *RAM {
	return &RAM{mem: make([]uint8, size)}
}

// NewRandomRAM allocates a RAM bank of the given size with power-on-random
// contents, matching the fact that real 6502 systems don't guarantee zeroed
// RAM at power on.
func NewRandomRAM(size int) *RAM {
	r := &RAM{mem: make([]uint8, size)}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range r.mem {
		r.mem[i] = uint8(rnd.Intn(256))
	}
	return r
}

// Read implements Peripheral.
func (r *RAM) Read(addr uint16) uint8 {
	if int(addr) >= len(r.mem) {
		return 0
	}
	return r.mem[addr]
}

// Write implements Peripheral.
func (r *RAM) Write(addr uint16, val uint8) {
	if int(addr) >= len(r.mem) {
		return
	}
	r.mem[addr] = val
}

// ROM is a read-only byte bank loaded from a fixed image. Writes are no-ops.
type ROM struct {
	mem []uint8
}

// NewROM copies data into a new read-only bank.
func NewROM(data []uint8) *ROM {
	r := &ROM{mem: make([]uint8, len(data))}
	copy(r.mem, data)
	return r
}

// Read implements Peripheral.
func (r *ROM) Read(addr uint16) uint8 {
	if int(addr) >= len(r.mem) {
		return 0
	}
	return r.mem[addr]
}

// Write implements Peripheral. It is a no-op, as required of ROM.
func (r *ROM) Write(addr uint16, val uint8) {}

// Mirror wraps an inner peripheral and re-exposes it repeating every stride
// bytes, the pattern used for e.g. the NES's 2KiB internal RAM mirrored
// across a 8KiB CPU address window.
type Mirror struct {
	inner  Peripheral
	stride uint16
}

// NewMirror returns a Peripheral that repeats inner every stride bytes.
// stride must be non-zero.
func NewMirror(inner Peripheral, stride uint16) *Mirror {
	return &Mirror{inner: inner, stride: stride}
}

// Read implements Peripheral.
func (m *Mirror) Read(addr uint16) uint8 {
	return m.inner.Read(addr % m.stride)
}

// Write implements Peripheral.
func (m *Mirror) Write(addr uint16, val uint8) {
	m.inner.Write(addr%m.stride, val)
}
