package nes

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bdwalton/gones/bus"
	"github.com/bdwalton/gones/nesrom"
)

// writeTestROM builds a minimal one-bank NROM image on disk: a reset
// vector that spins on an infinite NOP loop, and an NMI vector pointed
// at a handler that sets a flag byte so tests can observe it ran.
func writeTestROM(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(1) // 1x 16KiB PRG bank
	buf.WriteByte(1) // 1x 8KiB CHR bank
	buf.Write(make([]byte, 10))

	prg := make([]byte, 16384)
	// Reset vector -> $8000: NOP forever.
	prg[0] = 0xEA // NOP
	prg[1] = 0x4C // JMP $8000
	prg[2] = 0x00
	prg[3] = 0x80
	// NMI vector -> $8100: INC $10 (zero page); RTI.
	prg[0x100] = 0xE6
	prg[0x101] = 0x10
	prg[0x102] = 0x40 // RTI

	resetVecOff := 0x3FFC // $FFFC - $8000
	prg[resetVecOff] = 0x00
	prg[resetVecOff+1] = 0x80
	nmiVecOff := 0x3FFA // $FFFA - $8000
	prg[nmiVecOff] = 0x00
	prg[nmiVecOff+1] = 0x81

	buf.Write(prg)
	buf.Write(make([]byte, 8192)) // CHR

	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestEmulateFrameRunsWithoutError(t *testing.T) {
	rom, err := nesrom.New(writeTestROM(t))
	if err != nil {
		t.Fatalf("nesrom.New failed: %v", err)
	}
	c, err := New(rom)
	if err != nil {
		t.Fatalf("nes.New failed: %v", err)
	}
	if err := c.EmulateFrame(); err != nil {
		t.Fatalf("EmulateFrame failed: %v", err)
	}
	if len(c.Frame()) != 256*240 {
		t.Errorf("len(Frame()) = %d, want %d", len(c.Frame()), 256*240)
	}
}

func TestEmulateFrameServicesNMI(t *testing.T) {
	rom, err := nesrom.New(writeTestROM(t))
	if err != nil {
		t.Fatalf("nesrom.New failed: %v", err)
	}
	c, err := New(rom)
	if err != nil {
		t.Fatalf("nes.New failed: %v", err)
	}
	// Enable PPUCTRL's NMI bit so EmulateFrame's vblank entry fires one.
	if err := c.cpuBus.Write(0x2000, 0x80); err != nil {
		t.Fatalf("enabling NMI failed: %v", err)
	}
	if err := c.EmulateFrame(); err != nil {
		t.Fatalf("EmulateFrame failed: %v", err)
	}
	v, err := c.cpuBus.Read(0x0010)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if v == 0 {
		t.Errorf("zero page $10 = 0, want > 0 (NMI handler should have incremented it)")
	}
}

func TestPressAndReleaseButtonReachController(t *testing.T) {
	rom, err := nesrom.New(writeTestROM(t))
	if err != nil {
		t.Fatalf("nesrom.New failed: %v", err)
	}
	c, err := New(rom)
	if err != nil {
		t.Fatalf("nes.New failed: %v", err)
	}
	c.PressButton(0, bus.ButtonA)
	if err := c.cpuBus.Write(0x4016, 0x00); err != nil {
		t.Fatalf("strobe write failed: %v", err)
	}
	v, err := c.cpuBus.Read(0x4016)
	if err != nil {
		t.Fatalf("controller read failed: %v", err)
	}
	if v != 1 {
		t.Errorf("controller bit 0 = %d, want 1 (A pressed)", v)
	}
	c.ReleaseButton(0, bus.ButtonA)
}
