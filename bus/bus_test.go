package bus

import (
	"testing"

	"github.com/hcaron/go6502/peripheral"
)

func TestAttachAndDispatch(t *testing.T) {
	b := New()
	ram := peripheral.NewRAM(0x100)
	if err := b.Attach(0x0000, 0x00FF, ram); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	rom := peripheral.NewROM([]uint8{0xA9, 0x00})
	if err := b.Attach(0x8000, 0x8001, rom); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	b.Write(0x10, 0x42)
	if got := b.Read(0x10); got != 0x42 {
		t.Errorf("Read(0x10) = 0x%02X, want 0x42", got)
	}
	if got := b.Read(0x8000); got != 0xA9 {
		t.Errorf("Read(0x8000) = 0x%02X, want 0xA9", got)
	}
}

func TestAttachOverlapRejected(t *testing.T) {
	b := New()
	ram := peripheral.NewRAM(0x100)
	if err := b.Attach(0x0000, 0x00FF, ram); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	err := b.Attach(0x0080, 0x017F, ram)
	if err == nil {
		t.Fatalf("Attach: expected OverlapError for overlapping range")
	}
	if _, ok := err.(OverlapError); !ok {
		t.Errorf("Attach: error = %T, want OverlapError", err)
	}
}

func TestUnmappedReadWrite(t *testing.T) {
	b := New()
	if got := b.Read(0x1234); got != 0 {
		t.Errorf("Read(unmapped) = 0x%02X, want 0", got)
	}
	b.Write(0x1234, 0xFF) // must not panic
}

func TestRead16Write16LittleEndian(t *testing.T) {
	b := New()
	ram := peripheral.NewRAM(0x10000)
	if err := b.Attach(0x0000, 0xFFFF, ram); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	b.Write16(0x0200, 0xBEEF)
	if got := b.Read(0x0200); got != 0xEF {
		t.Errorf("low byte = 0x%02X, want 0xEF", got)
	}
	if got := b.Read(0x0201); got != 0xBE {
		t.Errorf("high byte = 0x%02X, want 0xBE", got)
	}
	if got := b.Read16(0x0200); got != 0xBEEF {
		t.Errorf("Read16(0x0200) = 0x%04X, want 0xBEEF", got)
	}
}

func TestAttachOrderDoesNotAffectDispatch(t *testing.T) {
	build := func(order []int) *Bus {
		ranges := [][2]uint16{{0x0000, 0x00FF}, {0x0200, 0x02FF}, {0x8000, 0xFFFF}}
		rams := []*peripheral.RAM{
			peripheral.NewRAM(0x100),
			peripheral.NewRAM(0x100),
			peripheral.NewRAM(0x8000),
		}
		b := New()
		for _, i := range order {
			if err := b.Attach(ranges[i][0], ranges[i][1], rams[i]); err != nil {
				t.Fatalf("Attach: %v", err)
			}
		}
		rams[0].Write(0x10, 0x11)
		rams[1].Write(0x10, 0x22)
		rams[2].Write(0x10, 0x33)
		return b
	}

	forward := build([]int{0, 1, 2})
	reverse := build([]int{2, 1, 0})

	for _, addr := range []uint16{0x0010, 0x0210, 0x8010} {
		if forward.Read(addr) != reverse.Read(addr) {
			t.Errorf("Read(0x%04X): attach order changed dispatch result", addr)
		}
	}
}

func TestRead16StraddlesTwoPeripherals(t *testing.T) {
	b := New()
	low := peripheral.NewRAM(1)
	high := peripheral.NewRAM(1)
	if err := b.Attach(0x00FF, 0x00FF, low); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := b.Attach(0x0100, 0x0100, high); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	b.Write(0x00FF, 0x34)
	b.Write(0x0100, 0x12)
	if got := b.Read16(0x00FF); got != 0x1234 {
		t.Errorf("Read16 across peripheral boundary = 0x%04X, want 0x1234", got)
	}
}
