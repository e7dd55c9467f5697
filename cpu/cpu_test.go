package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
)

// flatMemory is a 64KB byte-addressable bus fake satisfying the cpu.bus
// interface, used so tests don't have to pull in the bus package's overlap
// bookkeeping just to poke a few bytes.
type flatMemory struct {
	addr [65536]uint8
}

func (m *flatMemory) Read(a uint16) uint8     { return m.addr[a] }
func (m *flatMemory) Write(a uint16, v uint8) { m.addr[a] = v }

func (m *flatMemory) Read16(a uint16) uint16 {
	return uint16(m.Read(a)) | uint16(m.Read(a+1))<<8
}

func (m *flatMemory) Write16(a uint16, v uint16) {
	m.Write(a, uint8(v&0xFF))
	m.Write(a+1, uint8(v>>8))
}

func newTestChip(opts ...Option) (*Chip, *flatMemory) {
	m := &flatMemory{}
	m.Write16(ResetVector, 0x8000)
	c := New(m, opts...)
	c.Reset()
	return c, m
}

func load(m *flatMemory, addr uint16, bytes ...uint8) {
	for i, b := range bytes {
		m.Write(addr+uint16(i), b)
	}
}

func TestResetVector(t *testing.T) {
	c, _ := newTestChip()
	if c.PC != 0x8000 {
		t.Errorf("Reset: PC = 0x%04X, want 0x8000", c.PC)
	}
	if c.P&INTERRUPT == 0 {
		t.Errorf("Reset: I flag not set, P = %s", spew.Sdump(c.P))
	}
}

func TestLDAImmediate(t *testing.T) {
	c, m := newTestChip()
	load(m, 0x8000, 0xA9, 0x00)
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step: unexpected error %v", err)
	}
	if cycles != 2 {
		t.Errorf("LDA #$00: cycles = %d, want 2", cycles)
	}
	if c.A != 0 {
		t.Errorf("LDA #$00: A = 0x%02X, want 0", c.A)
	}
	if c.P&ZERO == 0 {
		t.Errorf("LDA #$00: Z flag not set")
	}

	load(m, 0x8002, 0xA9, 0x80)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: unexpected error %v", err)
	}
	if c.A != 0x80 {
		t.Errorf("LDA #$80: A = 0x%02X, want 0x80", c.A)
	}
	if c.P&NEGATIVE == 0 {
		t.Errorf("LDA #$80: N flag not set")
	}
}

func TestADCBinary(t *testing.T) {
	c, m := newTestChip(WithDecimalMode(false))
	load(m, 0x8000,
		0xA9, 0x50, // LDA #$50
		0x69, 0x50, // ADC #$50
	)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0xA0 {
		t.Errorf("ADC: A = 0x%02X, want 0xA0", c.A)
	}
	if c.P&OVERFLOW == 0 {
		t.Errorf("ADC: V flag not set for 0x50+0x50 overflow")
	}
	if c.P&CARRY != 0 {
		t.Errorf("ADC: C flag unexpectedly set")
	}
}

func TestADCDecimal(t *testing.T) {
	c, m := newTestChip(WithDecimalMode(true))
	c.P |= DECIMAL
	load(m, 0x8000,
		0xA9, 0x58, // LDA #$58 (58 BCD)
		0x69, 0x46, // ADC #$46 (46 BCD)
	)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x04 {
		t.Errorf("ADC decimal: A = 0x%02X, want 0x04 (58+46=104 BCD)", c.A)
	}
	if c.P&CARRY == 0 {
		t.Errorf("ADC decimal: C flag not set for 58+46=104")
	}
}

func TestBranchTakenCycles(t *testing.T) {
	c, m := newTestChip()
	load(m, 0x8000,
		0xA9, 0x00, // LDA #$00 -> sets Z
		0xF0, 0x02, // BEQ +2 (no page cross)
	)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if cycles != 3 {
		t.Errorf("BEQ taken: cycles = %d, want 3", cycles)
	}
	if c.PC != 0x8006 {
		t.Errorf("BEQ taken: PC = 0x%04X, want 0x8006", c.PC)
	}
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	c, m := newTestChip()
	load(m, 0x8000, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	m.Write(0x02FF, 0x34)
	m.Write(0x0200, 0x12) // high byte wrongly fetched from $0200, not $0300
	m.Write(0x0300, 0xFF)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x1234 {
		t.Errorf("JMP indirect page-wrap bug: PC = 0x%04X, want 0x1234", c.PC)
	}
}

func TestStackPushPull(t *testing.T) {
	c, m := newTestChip()
	load(m, 0x8000,
		0xA9, 0x42, // LDA #$42
		0x48, // PHA
		0xA9, 0x00, // LDA #$00
		0x68, // PLA
	)
	for i := 0; i < 4; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if c.A != 0x42 {
		t.Errorf("PHA/PLA round trip: A = 0x%02X, want 0x42", c.A)
	}
}

func TestIllegalOpcode(t *testing.T) {
	c, m := newTestChip()
	load(m, 0x8000, 0x02) // unassigned in the documented table
	if _, err := c.Step(); err == nil {
		t.Fatalf("Step: expected IllegalOpcode error, got nil")
	} else if _, ok := err.(IllegalOpcode); !ok {
		t.Errorf("Step: error = %T, want IllegalOpcode", err)
	}
}

func TestIRQMaskedByInterruptFlag(t *testing.T) {
	c, m := newTestChip()
	m.Write16(IRQVector, 0x9000)
	c.P |= INTERRUPT
	c.RaiseIRQ(true)
	load(m, 0x8000, 0xEA) // NOP
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if cycles != 2 {
		t.Errorf("IRQ masked: cycles = %d, want 2 (NOP, not serviced)", cycles)
	}
	if c.PC != 0x8001 {
		t.Errorf("IRQ masked: PC = 0x%04X, want 0x8001", c.PC)
	}
}

func TestNMIAlwaysServiced(t *testing.T) {
	c, m := newTestChip()
	m.Write16(NMIVector, 0x9000)
	c.P |= INTERRUPT
	c.RaiseNMI()
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if cycles != 7 {
		t.Errorf("NMI: cycles = %d, want 7", cycles)
	}
	if c.PC != 0x9000 {
		t.Errorf("NMI: PC = 0x%04X, want 0x9000", c.PC)
	}
}

// regSnapshot captures the register file for whole-state comparisons, so a
// test can assert "only X changed" without hand-listing every field.
type regSnapshot struct {
	A, X, Y, SP uint8
	PC          uint16
	P           uint8
}

func snapshot(c *Chip) regSnapshot {
	return regSnapshot{A: c.A, X: c.X, Y: c.Y, SP: c.SP, PC: c.PC, P: c.P}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, m := newTestChip()
	load(m, 0x8000,
		0x20, 0x10, 0x80, // JSR $8010
	)
	load(m, 0x8010,
		0x60, // RTS
	)
	spBefore := c.SP
	if _, err := c.Step(); err != nil { // JSR
		t.Fatalf("JSR step: %v", err)
	}
	if c.PC != 0x8010 {
		t.Errorf("JSR: PC = 0x%04X, want 0x8010", c.PC)
	}
	if _, err := c.Step(); err != nil { // RTS
		t.Fatalf("RTS step: %v", err)
	}
	if c.PC != 0x8003 {
		t.Errorf("RTS: PC = 0x%04X, want 0x8003 (instruction after JSR)", c.PC)
	}
	if c.SP != spBefore {
		t.Errorf("RTS: SP = 0x%02X, want 0x%02X (restored)", c.SP, spBefore)
	}
}

func TestTransferInstructionsLeaveOtherRegistersAlone(t *testing.T) {
	c, m := newTestChip()
	load(m, 0x8000,
		0xA9, 0x7F, // LDA #$7F
		0xA2, 0x01, // LDX #$01
		0xA0, 0x02, // LDY #$02
		0xAA, // TAX
	)
	for i := 0; i < 3; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	before := snapshot(c)
	if _, err := c.Step(); err != nil {
		t.Fatalf("TAX step: %v", err)
	}
	after := snapshot(c)

	want := before
	want.X = before.A   // TAX copies A into X...
	want.PC = after.PC  // ...and PC naturally advances past the opcode...
	want.P = after.P    // ...updating Z/N from the new X.
	if diff := deep.Equal(want, after); diff != nil {
		t.Errorf("TAX: unexpected register diff: %v\nfull state: %s", diff, spew.Sdump(after))
	}
}
