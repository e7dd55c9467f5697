package cpu

// tickModifier tags an opcode with the condition under which it charges an
// extra cycle beyond its base count.
type tickModifier int

const (
	modNone tickModifier = iota
	modBranch
	modPageCrossed
)

// opdesc is a single opcode table entry: everything needed to know how many
// bytes an instruction occupies, how many cycles it costs, and how its
// operand is addressed. It does not carry the execution behavior itself;
// that lives in the parallel opcodeExec table so the two can be read and
// reasoned about independently.
type opdesc struct {
	mnemonic string
	mode     Mode
	length   uint8
	cycles   uint8
	mod      tickModifier
}

// opcodeTable is the static, sparse 256-entry instruction table. Unpopulated
// entries (zero value, mnemonic == "") are illegal opcodes; Step returns
// IllegalOpcode for them rather than indexing opcodeExec.
var opcodeTable = [256]opdesc{
	0x69: {"ADC", Immediate, 2, 2, modNone},
	0x65: {"ADC", ZeroPage, 2, 3, modNone},
	0x75: {"ADC", ZeroPageX, 2, 4, modNone},
	0x6D: {"ADC", Absolute, 3, 4, modNone},
	0x7D: {"ADC", AbsoluteX, 3, 4, modPageCrossed},
	0x79: {"ADC", AbsoluteY, 3, 4, modPageCrossed},
	0x61: {"ADC", IndirectX, 2, 6, modNone},
	0x71: {"ADC", IndirectY, 2, 5, modPageCrossed},

	0x29: {"AND", Immediate, 2, 2, modNone},
	0x25: {"AND", ZeroPage, 2, 3, modNone},
	0x35: {"AND", ZeroPageX, 2, 4, modNone},
	0x2D: {"AND", Absolute, 3, 4, modNone},
	0x3D: {"AND", AbsoluteX, 3, 4, modPageCrossed},
	0x39: {"AND", AbsoluteY, 3, 4, modPageCrossed},
	0x21: {"AND", IndirectX, 2, 6, modNone},
	0x31: {"AND", IndirectY, 2, 5, modPageCrossed},

	0x0A: {"ASL", Accumulator, 1, 2, modNone},
	0x06: {"ASL", ZeroPage, 2, 5, modNone},
	0x16: {"ASL", ZeroPageX, 2, 6, modNone},
	0x0E: {"ASL", Absolute, 3, 6, modNone},
	0x1E: {"ASL", AbsoluteX, 3, 7, modNone},

	0x90: {"BCC", Relative, 2, 2, modBranch},
	0xB0: {"BCS", Relative, 2, 2, modBranch},
	0xF0: {"BEQ", Relative, 2, 2, modBranch},
	0x30: {"BMI", Relative, 2, 2, modBranch},
	0xD0: {"BNE", Relative, 2, 2, modBranch},
	0x10: {"BPL", Relative, 2, 2, modBranch},
	0x50: {"BVC", Relative, 2, 2, modBranch},
	0x70: {"BVS", Relative, 2, 2, modBranch},

	0x24: {"BIT", ZeroPage, 2, 3, modNone},
	0x2C: {"BIT", Absolute, 3, 4, modNone},

	0x00: {"BRK", Implied, 1, 7, modNone},

	0x18: {"CLC", Implied, 1, 2, modNone},
	0xD8: {"CLD", Implied, 1, 2, modNone},
	0x58: {"CLI", Implied, 1, 2, modNone},
	0xB8: {"CLV", Implied, 1, 2, modNone},

	0xC9: {"CMP", Immediate, 2, 2, modNone},
	0xC5: {"CMP", ZeroPage, 2, 3, modNone},
	0xD5: {"CMP", ZeroPageX, 2, 4, modNone},
	0xCD: {"CMP", Absolute, 3, 4, modNone},
	0xDD: {"CMP", AbsoluteX, 3, 4, modPageCrossed},
	0xD9: {"CMP", AbsoluteY, 3, 4, modPageCrossed},
	0xC1: {"CMP", IndirectX, 2, 6, modNone},
	0xD1: {"CMP", IndirectY, 2, 5, modPageCrossed},

	0xE0: {"CPX", Immediate, 2, 2, modNone},
	0xE4: {"CPX", ZeroPage, 2, 3, modNone},
	0xEC: {"CPX", Absolute, 3, 4, modNone},

	0xC0: {"CPY", Immediate, 2, 2, modNone},
	0xC4: {"CPY", ZeroPage, 2, 3, modNone},
	0xCC: {"CPY", Absolute, 3, 4, modNone},

	0xC6: {"DEC", ZeroPage, 2, 5, modNone},
	0xD6: {"DEC", ZeroPageX, 2, 6, modNone},
	0xCE: {"DEC", Absolute, 3, 6, modNone},
	0xDE: {"DEC", AbsoluteX, 3, 7, modNone},

	0xCA: {"DEX", Implied, 1, 2, modNone},
	0x88: {"DEY", Implied, 1, 2, modNone},

	0x49: {"EOR", Immediate, 2, 2, modNone},
	0x45: {"EOR", ZeroPage, 2, 3, modNone},
	0x55: {"EOR", ZeroPageX, 2, 4, modNone},
	0x4D: {"EOR", Absolute, 3, 4, modNone},
	0x5D: {"EOR", AbsoluteX, 3, 4, modPageCrossed},
	0x59: {"EOR", AbsoluteY, 3, 4, modPageCrossed},
	0x41: {"EOR", IndirectX, 2, 6, modNone},
	0x51: {"EOR", IndirectY, 2, 5, modPageCrossed},

	0xE6: {"INC", ZeroPage, 2, 5, modNone},
	0xF6: {"INC", ZeroPageX, 2, 6, modNone},
	0xEE: {"INC", Absolute, 3, 6, modNone},
	0xFE: {"INC", AbsoluteX, 3, 7, modNone},

	0xE8: {"INX", Implied, 1, 2, modNone},
	0xC8: {"INY", Implied, 1, 2, modNone},

	0x4C: {"JMP", Absolute, 3, 3, modNone},
	0x6C: {"JMP", Indirect, 3, 5, modNone},

	0x20: {"JSR", Absolute, 3, 6, modNone},

	0xA9: {"LDA", Immediate, 2, 2, modNone},
	0xA5: {"LDA", ZeroPage, 2, 3, modNone},
	0xB5: {"LDA", ZeroPageX, 2, 4, modNone},
	0xAD: {"LDA", Absolute, 3, 4, modNone},
	0xBD: {"LDA", AbsoluteX, 3, 4, modPageCrossed},
	0xB9: {"LDA", AbsoluteY, 3, 4, modPageCrossed},
	0xA1: {"LDA", IndirectX, 2, 6, modNone},
	0xB1: {"LDA", IndirectY, 2, 5, modPageCrossed},

	0xA2: {"LDX", Immediate, 2, 2, modNone},
	0xA6: {"LDX", ZeroPage, 2, 3, modNone},
	0xB6: {"LDX", ZeroPageY, 2, 4, modNone},
	0xAE: {"LDX", Absolute, 3, 4, modNone},
	0xBE: {"LDX", AbsoluteY, 3, 4, modPageCrossed},

	0xA0: {"LDY", Immediate, 2, 2, modNone},
	0xA4: {"LDY", ZeroPage, 2, 3, modNone},
	0xB4: {"LDY", ZeroPageX, 2, 4, modNone},
	0xAC: {"LDY", Absolute, 3, 4, modNone},
	0xBC: {"LDY", AbsoluteX, 3, 4, modPageCrossed},

	0x4A: {"LSR", Accumulator, 1, 2, modNone},
	0x46: {"LSR", ZeroPage, 2, 5, modNone},
	0x56: {"LSR", ZeroPageX, 2, 6, modNone},
	0x4E: {"LSR", Absolute, 3, 6, modNone},
	0x5E: {"LSR", AbsoluteX, 3, 7, modNone},

	0xEA: {"NOP", Implied, 1, 2, modNone},

	0x09: {"ORA", Immediate, 2, 2, modNone},
	0x05: {"ORA", ZeroPage, 2, 3, modNone},
	0x15: {"ORA", ZeroPageX, 2, 4, modNone},
	0x0D: {"ORA", Absolute, 3, 4, modNone},
	0x1D: {"ORA", AbsoluteX, 3, 4, modPageCrossed},
	0x19: {"ORA", AbsoluteY, 3, 4, modPageCrossed},
	0x01: {"ORA", IndirectX, 2, 6, modNone},
	0x11: {"ORA", IndirectY, 2, 5, modPageCrossed},

	0x48: {"PHA", Implied, 1, 3, modNone},
	0x08: {"PHP", Implied, 1, 3, modNone},
	0x68: {"PLA", Implied, 1, 4, modNone},
	0x28: {"PLP", Implied, 1, 4, modNone},

	0x2A: {"ROL", Accumulator, 1, 2, modNone},
	0x26: {"ROL", ZeroPage, 2, 5, modNone},
	0x36: {"ROL", ZeroPageX, 2, 6, modNone},
	0x2E: {"ROL", Absolute, 3, 6, modNone},
	0x3E: {"ROL", AbsoluteX, 3, 7, modNone},

	0x6A: {"ROR", Accumulator, 1, 2, modNone},
	0x66: {"ROR", ZeroPage, 2, 5, modNone},
	0x76: {"ROR", ZeroPageX, 2, 6, modNone},
	0x6E: {"ROR", Absolute, 3, 6, modNone},
	0x7E: {"ROR", AbsoluteX, 3, 7, modNone},

	0x40: {"RTI", Implied, 1, 6, modNone},
	0x60: {"RTS", Implied, 1, 6, modNone},

	0xE9: {"SBC", Immediate, 2, 2, modNone},
	0xE5: {"SBC", ZeroPage, 2, 3, modNone},
	0xF5: {"SBC", ZeroPageX, 2, 4, modNone},
	0xED: {"SBC", Absolute, 3, 4, modNone},
	0xFD: {"SBC", AbsoluteX, 3, 4, modPageCrossed},
	0xF9: {"SBC", AbsoluteY, 3, 4, modPageCrossed},
	0xE1: {"SBC", IndirectX, 2, 6, modNone},
	0xF1: {"SBC", IndirectY, 2, 5, modPageCrossed},

	0x38: {"SEC", Implied, 1, 2, modNone},
	0xF8: {"SED", Implied, 1, 2, modNone},
	0x78: {"SEI", Implied, 1, 2, modNone},

	0x85: {"STA", ZeroPage, 2, 3, modNone},
	0x95: {"STA", ZeroPageX, 2, 4, modNone},
	0x8D: {"STA", Absolute, 3, 4, modNone},
	0x9D: {"STA", AbsoluteX, 3, 5, modNone},
	0x99: {"STA", AbsoluteY, 3, 5, modNone},
	0x81: {"STA", IndirectX, 2, 6, modNone},
	0x91: {"STA", IndirectY, 2, 6, modNone},

	0x86: {"STX", ZeroPage, 2, 3, modNone},
	0x96: {"STX", ZeroPageY, 2, 4, modNone},
	0x8E: {"STX", Absolute, 3, 4, modNone},

	0x84: {"STY", ZeroPage, 2, 3, modNone},
	0x94: {"STY", ZeroPageX, 2, 4, modNone},
	0x8C: {"STY", Absolute, 3, 4, modNone},

	0xAA: {"TAX", Implied, 1, 2, modNone},
	0x8A: {"TXA", Implied, 1, 2, modNone},
	0xA8: {"TAY", Implied, 1, 2, modNone},
	0x98: {"TYA", Implied, 1, 2, modNone},
	0x9A: {"TXS", Implied, 1, 2, modNone},
	0xBA: {"TSX", Implied, 1, 2, modNone},
}

// Lookup returns the documented-table entry for opcode: its mnemonic,
// addressing mode, and total instruction length in bytes. ok is false for
// opcode bytes with no documented-instruction entry. Exported for tools
// (disassembler, assembler) that need the table without driving a Chip.
func Lookup(opcode uint8) (mnemonic string, mode Mode, length uint8, ok bool) {
	desc := &opcodeTable[opcode]
	if desc.mnemonic == "" {
		return "", 0, 0, false
	}
	return desc.mnemonic, desc.mode, desc.length, true
}

// encodeTable maps (mnemonic, mode) back to its opcode byte, built once from
// opcodeTable. Used by Encode, which the assembler relies on.
var encodeTable = func() map[string]uint8 {
	m := make(map[string]uint8, 151)
	for i, desc := range opcodeTable {
		if desc.mnemonic == "" {
			continue
		}
		m[encodeKey(desc.mnemonic, desc.mode)] = uint8(i)
	}
	return m
}()

func encodeKey(mnemonic string, mode Mode) string {
	return mnemonic + "\x00" + string(rune(mode))
}

// Encode returns the opcode byte for mnemonic in the given addressing mode,
// and ok=false if no documented opcode uses that combination.
func Encode(mnemonic string, mode Mode) (opcode uint8, ok bool) {
	b, found := encodeTable[encodeKey(mnemonic, mode)]
	return b, found
}

// opcodeExec is the parallel dispatch table of execution functions, indexed
// by the same opcode byte as opcodeTable. The returned uint8 is only
// meaningful for Branch-tagged opcodes: the extra cycles charged if the
// branch was taken (1, or 2 if the branch also crossed a page).
var opcodeExec = [256]func(*Chip, operand) (uint8, error){
	0x69: (*Chip).iADC, 0x65: (*Chip).iADC, 0x75: (*Chip).iADC, 0x6D: (*Chip).iADC,
	0x7D: (*Chip).iADC, 0x79: (*Chip).iADC, 0x61: (*Chip).iADC, 0x71: (*Chip).iADC,

	0x29: (*Chip).iAND, 0x25: (*Chip).iAND, 0x35: (*Chip).iAND, 0x2D: (*Chip).iAND,
	0x3D: (*Chip).iAND, 0x39: (*Chip).iAND, 0x21: (*Chip).iAND, 0x31: (*Chip).iAND,

	0x0A: (*Chip).iASL, 0x06: (*Chip).iASL, 0x16: (*Chip).iASL, 0x0E: (*Chip).iASL, 0x1E: (*Chip).iASL,

	0x90: (*Chip).iBCC, 0xB0: (*Chip).iBCS, 0xF0: (*Chip).iBEQ, 0x30: (*Chip).iBMI,
	0xD0: (*Chip).iBNE, 0x10: (*Chip).iBPL, 0x50: (*Chip).iBVC, 0x70: (*Chip).iBVS,

	0x24: (*Chip).iBIT, 0x2C: (*Chip).iBIT,

	0x00: (*Chip).iBRK,

	0x18: (*Chip).iCLC, 0xD8: (*Chip).iCLD, 0x58: (*Chip).iCLI, 0xB8: (*Chip).iCLV,

	0xC9: (*Chip).iCMP, 0xC5: (*Chip).iCMP, 0xD5: (*Chip).iCMP, 0xCD: (*Chip).iCMP,
	0xDD: (*Chip).iCMP, 0xD9: (*Chip).iCMP, 0xC1: (*Chip).iCMP, 0xD1: (*Chip).iCMP,

	0xE0: (*Chip).iCPX, 0xE4: (*Chip).iCPX, 0xEC: (*Chip).iCPX,
	0xC0: (*Chip).iCPY, 0xC4: (*Chip).iCPY, 0xCC: (*Chip).iCPY,

	0xC6: (*Chip).iDEC, 0xD6: (*Chip).iDEC, 0xCE: (*Chip).iDEC, 0xDE: (*Chip).iDEC,
	0xCA: (*Chip).iDEX, 0x88: (*Chip).iDEY,

	0x49: (*Chip).iEOR, 0x45: (*Chip).iEOR, 0x55: (*Chip).iEOR, 0x4D: (*Chip).iEOR,
	0x5D: (*Chip).iEOR, 0x59: (*Chip).iEOR, 0x41: (*Chip).iEOR, 0x51: (*Chip).iEOR,

	0xE6: (*Chip).iINC, 0xF6: (*Chip).iINC, 0xEE: (*Chip).iINC, 0xFE: (*Chip).iINC,
	0xE8: (*Chip).iINX, 0xC8: (*Chip).iINY,

	0x4C: (*Chip).iJMP, 0x6C: (*Chip).iJMP,
	0x20: (*Chip).iJSR,

	0xA9: (*Chip).iLDA, 0xA5: (*Chip).iLDA, 0xB5: (*Chip).iLDA, 0xAD: (*Chip).iLDA,
	0xBD: (*Chip).iLDA, 0xB9: (*Chip).iLDA, 0xA1: (*Chip).iLDA, 0xB1: (*Chip).iLDA,

	0xA2: (*Chip).iLDX, 0xA6: (*Chip).iLDX, 0xB6: (*Chip).iLDX, 0xAE: (*Chip).iLDX, 0xBE: (*Chip).iLDX,
	0xA0: (*Chip).iLDY, 0xA4: (*Chip).iLDY, 0xB4: (*Chip).iLDY, 0xAC: (*Chip).iLDY, 0xBC: (*Chip).iLDY,

	0x4A: (*Chip).iLSR, 0x46: (*Chip).iLSR, 0x56: (*Chip).iLSR, 0x4E: (*Chip).iLSR, 0x5E: (*Chip).iLSR,

	0xEA: (*Chip).iNOP,

	0x09: (*Chip).iORA, 0x05: (*Chip).iORA, 0x15: (*Chip).iORA, 0x0D: (*Chip).iORA,
	0x1D: (*Chip).iORA, 0x19: (*Chip).iORA, 0x01: (*Chip).iORA, 0x11: (*Chip).iORA,

	0x48: (*Chip).iPHA, 0x08: (*Chip).iPHP, 0x68: (*Chip).iPLA, 0x28: (*Chip).iPLP,

	0x2A: (*Chip).iROL, 0x26: (*Chip).iROL, 0x36: (*Chip).iROL, 0x2E: (*Chip).iROL, 0x3E: (*Chip).iROL,
	0x6A: (*Chip).iROR, 0x66: (*Chip).iROR, 0x76: (*Chip).iROR, 0x6E: (*Chip).iROR, 0x7E: (*Chip).iROR,

	0x40: (*Chip).iRTI, 0x60: (*Chip).iRTS,

	0xE9: (*Chip).iSBC, 0xE5: (*Chip).iSBC, 0xF5: (*Chip).iSBC, 0xED: (*Chip).iSBC,
	0xFD: (*Chip).iSBC, 0xF9: (*Chip).iSBC, 0xE1: (*Chip).iSBC, 0xF1: (*Chip).iSBC,

	0x38: (*Chip).iSEC, 0xF8: (*Chip).iSED, 0x78: (*Chip).iSEI,

	0x85: (*Chip).iSTA, 0x95: (*Chip).iSTA, 0x8D: (*Chip).iSTA, 0x9D: (*Chip).iSTA,
	0x99: (*Chip).iSTA, 0x81: (*Chip).iSTA, 0x91: (*Chip).iSTA,

	0x86: (*Chip).iSTX, 0x96: (*Chip).iSTX, 0x8E: (*Chip).iSTX,
	0x84: (*Chip).iSTY, 0x94: (*Chip).iSTY, 0x8C: (*Chip).iSTY,

	0xAA: (*Chip).iTAX, 0x8A: (*Chip).iTXA, 0xA8: (*Chip).iTAY, 0x98: (*Chip).iTYA,
	0x9A: (*Chip).iTXS, 0xBA: (*Chip).iTSX,
}
