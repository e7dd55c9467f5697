// Package cpu implements the MOS 6502 instruction set: registers, flags,
// the 256-entry opcode table, addressing mode resolution, and interrupt
// handling. It drives a bus for every memory access and is otherwise a
// pure, single-threaded library with no CLI, file, or environment
// dependencies.
package cpu

import (
	"github.com/hcaron/go6502/irq"
)

// Status register bit masks.
const (
	NEGATIVE  = uint8(0x80)
	OVERFLOW  = uint8(0x40)
	UNUSED    = uint8(0x20) // Always reads 1.
	BREAK     = uint8(0x10) // Only materialized in copies of P pushed to the stack.
	DECIMAL   = uint8(0x08)
	INTERRUPT = uint8(0x04)
	ZERO      = uint8(0x02)
	CARRY     = uint8(0x01)
)

// Vector addresses the CPU loads PC from on reset/NMI/IRQ.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// bus is the subset of *bus.Bus the CPU depends on. Declared as an interface
// so tests can drive the CPU against a minimal fake without pulling in the
// bus package's overlap bookkeeping.
type bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
	Read16(addr uint16) uint16
	Write16(addr uint16, data uint16)
}

// Chip holds the architectural state of a single 6502 core: the register
// file, status flags, cycle counter, and pending-interrupt latches. It reads
// and writes memory exclusively through the attached bus.
type Chip struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8
	cycles  uint64

	bus bus

	nmi irq.Sender
	irq irq.Sender

	nmiPending bool
	irqPending bool

	decimalMode bool
}

// Option configures a Chip at construction time.
type Option func(*Chip)

// WithDecimalMode enables or disables BCD semantics for ADC/SBC. Defaults to
// enabled; NES-style Ricoh 2A03 hosts should pass WithDecimalMode(false).
func WithDecimalMode(enabled bool) Option {
	return func(p *Chip) { p.decimalMode = enabled }
}

// WithNMISource attaches an external NMI signal line, polled at instruction
// boundaries in addition to RaiseNMI.
func WithNMISource(s irq.Sender) Option {
	return func(p *Chip) { p.nmi = s }
}

// WithIRQSource attaches an external IRQ signal line, polled at instruction
// boundaries in addition to RaiseIRQ.
func WithIRQSource(s irq.Sender) Option {
	return func(p *Chip) { p.irq = s }
}

// New constructs a Chip wired to b, in the documented power-on state:
// A=X=Y=0, P=0x24 (I=1, U=1), SP=0xFD, cycles=0. The PC is left at 0 until
// Reset is called.
func New(b bus, opts ...Option) *Chip {
	p := &Chip{
		bus:         b,
		SP:          0xFD,
		P:           UNUSED | INTERRUPT,
		decimalMode: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Cycles returns the total number of cycles charged since construction.
func (p *Chip) Cycles() uint64 { return p.cycles }

// RaiseNMI latches a non-maskable interrupt request. NMI is edge-triggered:
// the latch is serviced (and cleared) on the next instruction boundary
// regardless of the I flag.
func (p *Chip) RaiseNMI() {
	p.nmiPending = true
}

// RaiseIRQ sets or clears the level-sensitive IRQ line. It is only serviced
// at an instruction boundary while the I flag is clear.
func (p *Chip) RaiseIRQ(level bool) {
	p.irqPending = level
}

// Reset reloads PC from the reset vector, sets the I flag, charges the
// standard 7-cycle reset cost, and moves SP back 3 bytes as if PC/P had been
// pushed (no memory is actually written). Other registers are left as-is.
func (p *Chip) Reset() {
	p.PC = p.bus.Read16(ResetVector)
	p.P |= INTERRUPT
	p.SP -= 3
	p.cycles += 7
	p.nmiPending = false
	p.irqPending = false
}

// Step executes exactly one instruction, or services one pending interrupt,
// and returns the number of cycles charged. An IllegalOpcode error is
// returned (and no state beyond the fetch is changed) if the opcode byte has
// no documented-instruction table entry.
func (p *Chip) Step() (uint8, error) {
	if p.nmi != nil && p.nmi.Raised() {
		p.nmiPending = true
	}
	if p.irq != nil && p.irq.Raised() {
		p.irqPending = true
	}

	if p.nmiPending {
		p.nmiPending = false
		p.serviceInterrupt(NMIVector)
		return 7, nil
	}
	if p.irqPending && p.P&INTERRUPT == 0 {
		p.serviceInterrupt(IRQVector)
		return 7, nil
	}

	opByte := p.bus.Read(p.PC)
	desc := &opcodeTable[opByte]
	if desc.mnemonic == "" {
		return 0, IllegalOpcode{Opcode: opByte, PC: p.PC}
	}
	p.PC++

	op, err := p.resolve(desc.mode)
	if err != nil {
		return 0, err
	}

	cycles := desc.cycles
	if desc.mod == modPageCrossed && op.pageCrossed {
		cycles++
	}

	fn := opcodeExec[opByte]
	if fn == nil {
		return 0, IllegalOpcode{Opcode: opByte, PC: p.PC}
	}
	extra, err := fn(p, op)
	if err != nil {
		return 0, err
	}
	if desc.mod == modBranch {
		cycles += extra
	}

	p.cycles += uint64(cycles)
	return cycles, nil
}

// serviceInterrupt pushes PC and P (with B=0, U=1), sets I, and loads PC
// from vector. Shared by NMI and IRQ; Reset does not go through here since
// it doesn't push anything.
func (p *Chip) serviceInterrupt(vector uint16) {
	p.push(uint8(p.PC >> 8))
	p.push(uint8(p.PC & 0xFF))
	p.push((p.P | UNUSED) &^ BREAK)
	p.P |= INTERRUPT
	p.PC = p.bus.Read16(vector)
}

// push writes val to the page-1 stack at 0x0100+SP, then decrements SP
// (wrapping modulo 256).
func (p *Chip) push(val uint8) {
	p.bus.Write(0x0100+uint16(p.SP), val)
	p.SP--
}

// pull increments SP (wrapping modulo 256), then reads the page-1 stack at
// 0x0100+SP.
func (p *Chip) pull() uint8 {
	p.SP++
	return p.bus.Read(0x0100 + uint16(p.SP))
}

// zeroCheck sets the Z flag based on reg.
func (p *Chip) zeroCheck(reg uint8) {
	p.P &^= ZERO
	if reg == 0 {
		p.P |= ZERO
	}
}

// negativeCheck sets the N flag from bit 7 of reg.
func (p *Chip) negativeCheck(reg uint8) {
	p.P &^= NEGATIVE
	if reg&NEGATIVE != 0 {
		p.P |= NEGATIVE
	}
}

// carryCheck sets the C flag if an 8-bit ALU result (passed widened to 16
// bits) carried out, i.e. is >= 0x100.
func (p *Chip) carryCheck(res uint16) {
	p.P &^= CARRY
	if res >= 0x100 {
		p.P |= CARRY
	}
}

// overflowCheck sets the V flag if combining reg and arg into res caused a
// two's-complement sign change that isn't explained by the inputs' signs.
// See http://www.righto.com/2012/12/the-6502-overflow-flag-explained.html.
func (p *Chip) overflowCheck(reg, arg, res uint8) {
	p.P &^= OVERFLOW
	if (reg^res)&(arg^res)&0x80 != 0 {
		p.P |= OVERFLOW
	}
}
