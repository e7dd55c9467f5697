package cpu

// Instruction implementations, one function per documented mnemonic. Each
// has the signature func(*Chip, operand) (uint8, error); the returned uint8
// carries extra branch-taken cycles for Branch-tagged opcodes and is 0 for
// everything else. All read the operand's current value via p.value(op) and
// write results back via p.store(op, val), so the same function serves every
// addressing mode an opcode table entry pairs it with.

func (p *Chip) iADC(op operand) (uint8, error) {
	p.doADC(p.value(op))
	return 0, nil
}

func (p *Chip) iSBC(op operand) (uint8, error) {
	p.doSBC(p.value(op))
	return 0, nil
}

// doADC performs A = A + val + C, honoring decimal mode when enabled. On
// NMOS hardware the Z flag reflects the binary sum even in decimal mode;
// N and V reflect the uncorrected BCD nibble sum. This module reproduces
// that quirk rather than the more "obvious" fully-corrected behavior.
func (p *Chip) doADC(val uint8) {
	a := p.A
	c := uint8(0)
	if p.P&CARRY != 0 {
		c = 1
	}
	binSum := uint16(a) + uint16(val) + uint16(c)
	binResult := uint8(binSum)

	if p.decimalMode && p.P&DECIMAL != 0 {
		p.zeroCheck(binResult)
		lo := (a & 0x0F) + (val & 0x0F) + c
		hi := (a >> 4) + (val >> 4)
		if lo > 9 {
			lo += 6
			hi++
		}
		p.negativeCheck(hi << 4)
		p.overflowCheck(a, val, (hi<<4)|(lo&0x0F))
		if hi > 9 {
			hi += 6
		}
		p.P &^= CARRY
		if hi > 15 {
			p.P |= CARRY
		}
		p.A = (hi << 4) | (lo & 0x0F)
		return
	}

	p.overflowCheck(a, val, binResult)
	p.carryCheck(binSum)
	p.A = binResult
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
}

// doSBC performs A = A - val - (1-C). Binary mode delegates to doADC with
// the operand's bits inverted, per the documented 6502 equivalence; decimal
// mode performs the BCD-corrected subtraction directly since bitwise
// inversion doesn't hold for packed decimal.
func (p *Chip) doSBC(val uint8) {
	if !(p.decimalMode && p.P&DECIMAL != 0) {
		p.doADC(val ^ 0xFF)
		return
	}

	a := p.A
	c := uint8(0)
	if p.P&CARRY != 0 {
		c = 1
	}
	inv := val ^ 0xFF
	binSum := uint16(a) + uint16(inv) + uint16(c)
	binResult := uint8(binSum)
	p.carryCheck(binSum)
	p.overflowCheck(a, inv, binResult)
	p.zeroCheck(binResult)
	p.negativeCheck(binResult)

	lo := int16(a&0x0F) - int16(val&0x0F) - int16(1-c)
	hi := int16(a>>4) - int16(val>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}
	p.A = uint8(hi<<4)&0xF0 | uint8(lo)&0x0F
}

func (p *Chip) iAND(op operand) (uint8, error) {
	p.A &= p.value(op)
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
	return 0, nil
}

func (p *Chip) iORA(op operand) (uint8, error) {
	p.A |= p.value(op)
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
	return 0, nil
}

func (p *Chip) iEOR(op operand) (uint8, error) {
	p.A ^= p.value(op)
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
	return 0, nil
}

// rmw performs the canonical read-modify-write double-write: the unmodified
// value is written back before the modified one, matching real 6502 bus
// behavior for memory targets. Accumulator targets just assign directly.
func (p *Chip) rmw(op operand, f func(uint8) uint8) uint8 {
	old := p.value(op)
	res := f(old)
	if op.accumulator {
		p.A = res
	} else {
		p.bus.Write(op.addr, old)
		p.bus.Write(op.addr, res)
	}
	return res
}

func (p *Chip) iASL(op operand) (uint8, error) {
	res := p.rmw(op, func(v uint8) uint8 {
		p.P &^= CARRY
		if v&0x80 != 0 {
			p.P |= CARRY
		}
		return v << 1
	})
	p.zeroCheck(res)
	p.negativeCheck(res)
	return 0, nil
}

func (p *Chip) iLSR(op operand) (uint8, error) {
	res := p.rmw(op, func(v uint8) uint8 {
		p.P &^= CARRY
		if v&0x01 != 0 {
			p.P |= CARRY
		}
		return v >> 1
	})
	p.zeroCheck(res)
	p.negativeCheck(res)
	return 0, nil
}

func (p *Chip) iROL(op operand) (uint8, error) {
	res := p.rmw(op, func(v uint8) uint8 {
		carryIn := uint8(0)
		if p.P&CARRY != 0 {
			carryIn = 1
		}
		p.P &^= CARRY
		if v&0x80 != 0 {
			p.P |= CARRY
		}
		return v<<1 | carryIn
	})
	p.zeroCheck(res)
	p.negativeCheck(res)
	return 0, nil
}

func (p *Chip) iROR(op operand) (uint8, error) {
	res := p.rmw(op, func(v uint8) uint8 {
		carryIn := uint8(0)
		if p.P&CARRY != 0 {
			carryIn = 0x80
		}
		p.P &^= CARRY
		if v&0x01 != 0 {
			p.P |= CARRY
		}
		return v>>1 | carryIn
	})
	p.zeroCheck(res)
	p.negativeCheck(res)
	return 0, nil
}

func (p *Chip) iINC(op operand) (uint8, error) {
	res := p.rmw(op, func(v uint8) uint8 { return v + 1 })
	p.zeroCheck(res)
	p.negativeCheck(res)
	return 0, nil
}

func (p *Chip) iDEC(op operand) (uint8, error) {
	res := p.rmw(op, func(v uint8) uint8 { return v - 1 })
	p.zeroCheck(res)
	p.negativeCheck(res)
	return 0, nil
}

func (p *Chip) iINX(operand) (uint8, error) {
	p.X++
	p.zeroCheck(p.X)
	p.negativeCheck(p.X)
	return 0, nil
}

func (p *Chip) iDEX(operand) (uint8, error) {
	p.X--
	p.zeroCheck(p.X)
	p.negativeCheck(p.X)
	return 0, nil
}

func (p *Chip) iINY(operand) (uint8, error) {
	p.Y++
	p.zeroCheck(p.Y)
	p.negativeCheck(p.Y)
	return 0, nil
}

func (p *Chip) iDEY(operand) (uint8, error) {
	p.Y--
	p.zeroCheck(p.Y)
	p.negativeCheck(p.Y)
	return 0, nil
}

func (p *Chip) compare(reg, val uint8) {
	diff := reg - val
	p.P &^= CARRY
	if reg >= val {
		p.P |= CARRY
	}
	p.zeroCheck(diff)
	p.negativeCheck(diff)
}

func (p *Chip) iCMP(op operand) (uint8, error) {
	p.compare(p.A, p.value(op))
	return 0, nil
}

func (p *Chip) iCPX(op operand) (uint8, error) {
	p.compare(p.X, p.value(op))
	return 0, nil
}

func (p *Chip) iCPY(op operand) (uint8, error) {
	p.compare(p.Y, p.value(op))
	return 0, nil
}

func (p *Chip) iBIT(op operand) (uint8, error) {
	val := p.value(op)
	p.zeroCheck(p.A & val)
	p.P &^= NEGATIVE | OVERFLOW
	p.P |= val & (NEGATIVE | OVERFLOW)
	return 0, nil
}

// branch evaluates cond and, if true, jumps PC to op.addr and returns the
// extra cycle cost (1, plus 1 more if the jump crossed a page).
func (p *Chip) branch(op operand, cond bool) (uint8, error) {
	if !cond {
		return 0, nil
	}
	old := p.PC
	p.PC = op.addr
	if old&0xFF00 != p.PC&0xFF00 {
		return 2, nil
	}
	return 1, nil
}

func (p *Chip) iBCC(op operand) (uint8, error) { return p.branch(op, p.P&CARRY == 0) }
func (p *Chip) iBCS(op operand) (uint8, error) { return p.branch(op, p.P&CARRY != 0) }
func (p *Chip) iBEQ(op operand) (uint8, error) { return p.branch(op, p.P&ZERO != 0) }
func (p *Chip) iBNE(op operand) (uint8, error) { return p.branch(op, p.P&ZERO == 0) }
func (p *Chip) iBMI(op operand) (uint8, error) { return p.branch(op, p.P&NEGATIVE != 0) }
func (p *Chip) iBPL(op operand) (uint8, error) { return p.branch(op, p.P&NEGATIVE == 0) }
func (p *Chip) iBVC(op operand) (uint8, error) { return p.branch(op, p.P&OVERFLOW == 0) }
func (p *Chip) iBVS(op operand) (uint8, error) { return p.branch(op, p.P&OVERFLOW != 0) }

func (p *Chip) iJMP(op operand) (uint8, error) {
	p.PC = op.addr
	return 0, nil
}

func (p *Chip) iJSR(op operand) (uint8, error) {
	ret := p.PC - 1
	p.push(uint8(ret >> 8))
	p.push(uint8(ret & 0xFF))
	p.PC = op.addr
	return 0, nil
}

func (p *Chip) iRTS(operand) (uint8, error) {
	lo := p.pull()
	hi := p.pull()
	p.PC = uint16(hi)<<8 | uint16(lo)
	p.PC++
	return 0, nil
}

func (p *Chip) iBRK(operand) (uint8, error) {
	p.PC++
	p.push(uint8(p.PC >> 8))
	p.push(uint8(p.PC & 0xFF))
	p.push(p.P | UNUSED | BREAK)
	p.P |= INTERRUPT
	p.PC = p.bus.Read16(IRQVector)
	return 0, nil
}

func (p *Chip) iRTI(operand) (uint8, error) {
	p.P = (p.pull() | UNUSED) &^ BREAK
	lo := p.pull()
	hi := p.pull()
	p.PC = uint16(hi)<<8 | uint16(lo)
	return 0, nil
}

func (p *Chip) iPHA(operand) (uint8, error) {
	p.push(p.A)
	return 0, nil
}

func (p *Chip) iPHP(operand) (uint8, error) {
	p.push(p.P | UNUSED | BREAK)
	return 0, nil
}

func (p *Chip) iPLA(operand) (uint8, error) {
	p.A = p.pull()
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
	return 0, nil
}

func (p *Chip) iPLP(operand) (uint8, error) {
	p.P = (p.pull() | UNUSED) &^ BREAK
	return 0, nil
}

func (p *Chip) iCLC(operand) (uint8, error) { p.P &^= CARRY; return 0, nil }
func (p *Chip) iSEC(operand) (uint8, error) { p.P |= CARRY; return 0, nil }
func (p *Chip) iCLD(operand) (uint8, error) { p.P &^= DECIMAL; return 0, nil }
func (p *Chip) iSED(operand) (uint8, error) { p.P |= DECIMAL; return 0, nil }
func (p *Chip) iCLI(operand) (uint8, error) { p.P &^= INTERRUPT; return 0, nil }
func (p *Chip) iSEI(operand) (uint8, error) { p.P |= INTERRUPT; return 0, nil }
func (p *Chip) iCLV(operand) (uint8, error) { p.P &^= OVERFLOW; return 0, nil }

func (p *Chip) iLDA(op operand) (uint8, error) {
	p.A = p.value(op)
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
	return 0, nil
}

func (p *Chip) iLDX(op operand) (uint8, error) {
	p.X = p.value(op)
	p.zeroCheck(p.X)
	p.negativeCheck(p.X)
	return 0, nil
}

func (p *Chip) iLDY(op operand) (uint8, error) {
	p.Y = p.value(op)
	p.zeroCheck(p.Y)
	p.negativeCheck(p.Y)
	return 0, nil
}

func (p *Chip) iSTA(op operand) (uint8, error) {
	p.store(op, p.A)
	return 0, nil
}

func (p *Chip) iSTX(op operand) (uint8, error) {
	p.store(op, p.X)
	return 0, nil
}

func (p *Chip) iSTY(op operand) (uint8, error) {
	p.store(op, p.Y)
	return 0, nil
}

func (p *Chip) iTAX(operand) (uint8, error) {
	p.X = p.A
	p.zeroCheck(p.X)
	p.negativeCheck(p.X)
	return 0, nil
}

func (p *Chip) iTXA(operand) (uint8, error) {
	p.A = p.X
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
	return 0, nil
}

func (p *Chip) iTAY(operand) (uint8, error) {
	p.Y = p.A
	p.zeroCheck(p.Y)
	p.negativeCheck(p.Y)
	return 0, nil
}

func (p *Chip) iTYA(operand) (uint8, error) {
	p.A = p.Y
	p.zeroCheck(p.A)
	p.negativeCheck(p.A)
	return 0, nil
}

func (p *Chip) iTSX(operand) (uint8, error) {
	p.X = p.SP
	p.zeroCheck(p.X)
	p.negativeCheck(p.X)
	return 0, nil
}

// iTXS copies X into SP without touching any flags, unlike every other
// transfer instruction.
func (p *Chip) iTXS(operand) (uint8, error) {
	p.SP = p.X
	return 0, nil
}

func (p *Chip) iNOP(operand) (uint8, error) {
	return 0, nil
}
