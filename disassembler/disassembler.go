// Package disassembler renders the instruction at a given address as a
// human-readable line, in the same fixed-width column layout debuggers and
// trace logs expect.
package disassembler

import (
	"fmt"

	"github.com/hcaron/go6502/cpu"
)

// Reader is the subset of the bus a disassembler needs: random byte access,
// with no side effects expected from peripherals it happens to read through.
type Reader interface {
	Read(addr uint16) uint8
}

// Step disassembles the instruction at pc and returns its text and the
// number of bytes it occupies (1-3). It always reads the two bytes after pc,
// whatever the instruction's length, so the caller's memory must have
// those addresses valid even near the end of the address space. Unlike a
// real CPU it never follows a JMP/JSR; it just decodes what's at pc.
func Step(pc uint16, r Reader) (string, int) {
	opByte := r.Read(pc)
	b1 := r.Read(pc + 1)
	b2 := r.Read(pc + 2)

	mnemonic, mode, length, ok := cpu.Lookup(opByte)
	if !ok {
		return fmt.Sprintf("%.4X %.2X      ???", pc, opByte), 1
	}

	var operand string
	switch mode {
	case cpu.Immediate:
		operand = fmt.Sprintf("#%.2X", b1)
	case cpu.ZeroPage:
		operand = fmt.Sprintf("%.2X", b1)
	case cpu.ZeroPageX:
		operand = fmt.Sprintf("%.2X,X", b1)
	case cpu.ZeroPageY:
		operand = fmt.Sprintf("%.2X,Y", b1)
	case cpu.IndirectX:
		operand = fmt.Sprintf("(%.2X,X)", b1)
	case cpu.IndirectY:
		operand = fmt.Sprintf("(%.2X),Y", b1)
	case cpu.Absolute:
		operand = fmt.Sprintf("%.2X%.2X", b2, b1)
	case cpu.AbsoluteX:
		operand = fmt.Sprintf("%.2X%.2X,X", b2, b1)
	case cpu.AbsoluteY:
		operand = fmt.Sprintf("%.2X%.2X,Y", b2, b1)
	case cpu.Indirect:
		operand = fmt.Sprintf("(%.2X%.2X)", b2, b1)
	case cpu.Relative:
		off := int16(int8(b1))
		operand = fmt.Sprintf("%.2X (%.4X)", b1, uint16(int32(pc)+int32(off)+2))
	case cpu.Accumulator:
		operand = "A"
	case cpu.Implied:
		operand = ""
	}

	var raw string
	switch length {
	case 1:
		raw = fmt.Sprintf("%.2X      ", opByte)
	case 2:
		raw = fmt.Sprintf("%.2X %.2X   ", opByte, b1)
	case 3:
		raw = fmt.Sprintf("%.2X %.2X %.2X", opByte, b1, b2)
	}

	return fmt.Sprintf("%.4X %s %-4s %-10s", pc, raw, mnemonic, operand), int(length)
}
