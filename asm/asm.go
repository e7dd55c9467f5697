// Package asm implements a minimal two-pass hand-assembler for the
// documented 6502 instruction set: mnemonic-and-operand source text in,
// raw bytes out. It lets a caller build a program image from source text
// instead of hand-encoding opcode bytes; the CLI does not use it.
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hcaron/go6502/cpu"
)

// label is a symbolic address resolved between pass one and pass two.
type label struct {
	addr    uint16
	defined bool
}

// Assembler accumulates source lines and assembles them into a byte image
// starting at origin.
type Assembler struct {
	origin uint16
	lines  []string
	labels map[string]*label
}

// New creates an Assembler that will place its first instruction at origin.
func New(origin uint16) *Assembler {
	return &Assembler{
		origin: origin,
		labels: make(map[string]*label),
	}
}

// Line appends one line of source. A line is either blank, a bare "label:"
// definition occupying the whole line, or "MNEMONIC [operand]" where
// operand is one of:
//
//	(empty)        Implied or Accumulator
//	A              Accumulator
//	#$xx           Immediate
//	$xx            ZeroPage (or Relative for branches)
//	$xx,X / $xx,Y  ZeroPageX / ZeroPageY
//	$xxxx          Absolute
//	$xxxx,X / ,Y   AbsoluteX / AbsoluteY
//	($xxxx)        Indirect
//	($xx,X)        IndirectX
//	($xx),Y        IndirectY
//	label          Absolute or Relative, resolved against a prior Label call
func (a *Assembler) Line(s string) {
	a.lines = append(a.lines, s)
}

// Label pre-declares a symbolic address so forward references in Line
// resolve without a second source pass over raw text.
func (a *Assembler) Label(name string, addr uint16) {
	a.labels[name] = &label{addr: addr, defined: true}
}

// Assemble runs both passes and returns the assembled bytes. Pass one walks
// the source computing each instruction's address so label: definitions
// resolve regardless of whether they appear before or after their uses;
// pass two emits bytes, now that every label has a concrete address.
func (a *Assembler) Assemble() ([]uint8, error) {
	pc := a.origin
	type stmt struct {
		mnemonic string
		operand  string
		pc       uint16
	}
	var stmts []stmt

	for lineNo, raw := range a.lines {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			name := strings.TrimSuffix(line, ":")
			a.labels[name] = &label{addr: pc, defined: true}
			continue
		}

		fields := strings.SplitN(line, " ", 2)
		mnemonic := strings.ToUpper(strings.TrimSpace(fields[0]))
		operand := ""
		if len(fields) == 2 {
			operand = strings.TrimSpace(fields[1])
		}

		mode, length, err := classify(operand, mnemonic)
		if err != nil {
			return nil, fmt.Errorf("asm: line %d: %w", lineNo+1, err)
		}
		if _, ok := cpu.Encode(mnemonic, mode); !ok {
			return nil, fmt.Errorf("asm: line %d: %s has no encoding for its operand form", lineNo+1, mnemonic)
		}
		stmts = append(stmts, stmt{mnemonic: mnemonic, operand: operand, pc: pc})
		pc += uint16(length)
	}

	var out []uint8
	for _, s := range stmts {
		mode, length, err := classify(s.operand, s.mnemonic)
		if err != nil {
			return nil, err
		}
		opcode, _ := cpu.Encode(s.mnemonic, mode)
		out = append(out, opcode)

		switch length {
		case 1:
		case 2:
			v, err := a.operandByte(s.operand, mode, s.pc)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		case 3:
			v, err := a.operandWord(s.operand, mode, s.pc)
			if err != nil {
				return nil, err
			}
			out = append(out, uint8(v&0xFF), uint8(v>>8))
		}
	}
	return out, nil
}

// stripComment removes a trailing ";" comment, matching the convention used
// throughout the reference assembly fixtures.
func stripComment(s string) string {
	if idx := strings.Index(s, ";"); idx >= 0 {
		return s[:idx]
	}
	return s
}

// classify determines an operand's addressing mode and instruction length
// without yet resolving label addresses (numeric or symbolic operands are
// treated identically for sizing purposes: a label is always absolute-sized
// unless the mnemonic is a branch, in which case it's relative).
func classify(operand, mnemonic string) (cpu.Mode, uint8, error) {
	if operand == "" {
		if _, ok := cpu.Encode(mnemonic, cpu.Accumulator); ok {
			return cpu.Accumulator, 1, nil
		}
		return cpu.Implied, 1, nil
	}
	if operand == "A" {
		return cpu.Accumulator, 1, nil
	}
	if isBranch(mnemonic) {
		return cpu.Relative, 2, nil
	}
	if strings.HasPrefix(operand, "#") {
		return cpu.Immediate, 2, nil
	}
	if strings.HasPrefix(operand, "(") {
		switch {
		case strings.HasSuffix(operand, ",X)"):
			return cpu.IndirectX, 2, nil
		case strings.HasSuffix(operand, "),Y"):
			return cpu.IndirectY, 2, nil
		case strings.HasSuffix(operand, ")"):
			return cpu.Indirect, 3, nil
		}
		return 0, 0, fmt.Errorf("unrecognized indirect operand %q", operand)
	}

	base, reg := splitIndex(operand)
	width, err := operandWidth(base)
	if err != nil {
		return 0, 0, err
	}
	switch {
	case width <= 1 && reg == "X":
		return cpu.ZeroPageX, 2, nil
	case width <= 1 && reg == "Y":
		return cpu.ZeroPageY, 2, nil
	case width <= 1:
		return cpu.ZeroPage, 2, nil
	case reg == "X":
		return cpu.AbsoluteX, 3, nil
	case reg == "Y":
		return cpu.AbsoluteY, 3, nil
	default:
		return cpu.Absolute, 3, nil
	}
}

func isBranch(mnemonic string) bool {
	switch mnemonic {
	case "BCC", "BCS", "BEQ", "BMI", "BNE", "BPL", "BVC", "BVS":
		return true
	}
	return false
}

func splitIndex(operand string) (base, reg string) {
	if strings.HasSuffix(operand, ",X") {
		return operand[:len(operand)-2], "X"
	}
	if strings.HasSuffix(operand, ",Y") {
		return operand[:len(operand)-2], "Y"
	}
	return operand, ""
}

// operandWidth returns 1 for an operand that fits a zero-page byte, 2 for
// one needing a full 16-bit address, based on the literal's digit count for
// "$"-prefixed values or on whether a bare decimal literal fits in 8 bits.
// Symbolic labels are always treated as full addresses.
func operandWidth(base string) (int, error) {
	if strings.HasPrefix(base, "$") {
		hex := base[1:]
		if len(hex) <= 2 {
			return 1, nil
		}
		return 2, nil
	}
	// Bare decimal or symbolic: treated as a full address unless it parses
	// as an 8-bit decimal literal.
	if n, err := strconv.ParseUint(base, 10, 16); err == nil && n <= 0xFF {
		return 1, nil
	}
	return 2, nil
}

func (a *Assembler) resolve(operand string) (uint16, error) {
	base, _ := splitIndex(operand)
	base = strings.TrimPrefix(base, "#")
	base = strings.TrimPrefix(base, "(")
	base = strings.TrimSuffix(base, ")")
	base = strings.TrimSuffix(base, ",X")
	if strings.HasPrefix(base, "$") {
		v, err := strconv.ParseUint(base[1:], 16, 16)
		if err != nil {
			return 0, fmt.Errorf("asm: bad hex literal %q: %w", base, err)
		}
		return uint16(v), nil
	}
	if v, err := strconv.ParseUint(base, 10, 16); err == nil {
		return uint16(v), nil
	}
	lbl, ok := a.labels[base]
	if !ok || !lbl.defined {
		return 0, fmt.Errorf("asm: undefined label %q", base)
	}
	return lbl.addr, nil
}

func (a *Assembler) operandByte(operand string, mode cpu.Mode, pc uint16) (uint8, error) {
	if mode == cpu.Relative {
		target, err := a.resolve(operand)
		if err != nil {
			return 0, err
		}
		off := int32(target) - int32(pc) - 2
		if off < -128 || off > 127 {
			return 0, fmt.Errorf("asm: branch target %q out of range from pc %04X", operand, pc)
		}
		return uint8(int8(off)), nil
	}
	v, err := a.resolve(operand)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func (a *Assembler) operandWord(operand string, mode cpu.Mode, pc uint16) (uint16, error) {
	return a.resolve(operand)
}
