package peripheral

import "testing"

func TestRAMReadWrite(t *testing.T) {
	r := NewRAM(16)
	r.Write(4, 0x42)
	if got := r.Read(4); got != 0x42 {
		t.Errorf("RAM.Read(4) = 0x%02X, want 0x42", got)
	}
	if got := r.Read(15); got != 0 {
		t.Errorf("RAM.Read(15) = 0x%02X, want 0 (zero-filled)", got)
	}
}

func TestRAMOutOfRangeIsSafe(t *testing.T) {
	r := NewRAM(4)
	r.Write(100, 0xFF) // must not panic
	if got := r.Read(100); got != 0 {
		t.Errorf("RAM.Read(100) = 0x%02X, want 0 for out-of-range address", got)
	}
}

func TestNewRandomRAMNotAllZero(t *testing.T) {
	r := NewRandomRAM(256)
	allZero := true
	for i := 0; i < 256; i++ {
		if r.Read(uint16(i)) != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Errorf("NewRandomRAM(256): all bytes zero, want power-on noise")
	}
}

func TestROMReadOnly(t *testing.T) {
	rom := NewROM([]uint8{0xDE, 0xAD, 0xBE, 0xEF})
	rom.Write(0, 0x00) // must be ignored
	if got := rom.Read(0); got != 0xDE {
		t.Errorf("ROM.Read(0) = 0x%02X, want 0xDE (write ignored)", got)
	}
	if got := rom.Read(3); got != 0xEF {
		t.Errorf("ROM.Read(3) = 0x%02X, want 0xEF", got)
	}
	if got := rom.Read(10); got != 0 {
		t.Errorf("ROM.Read(10) = 0x%02X, want 0 for out-of-range address", got)
	}
}

func TestMirror(t *testing.T) {
	ram := NewRAM(8)
	m := NewMirror(ram, 8)
	m.Write(0, 0x11)
	if got := m.Read(8); got != 0x11 {
		t.Errorf("Mirror.Read(8) = 0x%02X, want 0x11 (wraps to inner addr 0)", got)
	}
	if got := m.Read(16); got != 0x11 {
		t.Errorf("Mirror.Read(16) = 0x%02X, want 0x11 (second repeat)", got)
	}
}
