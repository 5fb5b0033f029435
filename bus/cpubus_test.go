package bus

import (
	"testing"
)

type fakePPURegs struct {
	reads  map[uint16]uint8
	writes map[uint16]uint8
	err    error
}

func newFakePPURegs() *fakePPURegs {
	return &fakePPURegs{reads: map[uint16]uint8{}, writes: map[uint16]uint8{}}
}

func (f *fakePPURegs) ReadReg(offset uint16) (uint8, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.reads[offset], nil
}

func (f *fakePPURegs) WriteReg(offset uint16, val uint8) error {
	if f.err != nil {
		return f.err
	}
	f.writes[offset] = val
	return nil
}

type fakeCart struct {
	prg, chr map[uint16]uint8
}

func newFakeCart() *fakeCart {
	return &fakeCart{prg: map[uint16]uint8{}, chr: map[uint16]uint8{}}
}

func (c *fakeCart) CpuRead(addr uint16) (uint8, error)    { return c.prg[addr], nil }
func (c *fakeCart) CpuWrite(addr uint16, val uint8) error { c.prg[addr] = val; return nil }
func (c *fakeCart) PpuRead(addr uint16) (uint8, error)    { return c.chr[addr], nil }
func (c *fakeCart) PpuWrite(addr uint16, val uint8) error { c.chr[addr] = val; return nil }
func (c *fakeCart) MirroringMode() uint8                  { return 0 }
func (c *fakeCart) HasSaveRAM() bool                      { return false }

func TestCPUBusWorkRAMMirror(t *testing.T) {
	b := NewCPUBus(newFakePPURegs(), newFakeCart())
	if err := b.Write(0x0010, 0x42); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	for _, mirror := range []uint16{0x0010, 0x0810, 0x1010, 0x1810} {
		got, err := b.Read(mirror)
		if err != nil || got != 0x42 {
			t.Errorf("Read(%#04x) = %#x, %v; want 0x42, nil", mirror, got, err)
		}
	}
}

func TestCPUBusPPURegMirror(t *testing.T) {
	ppu := newFakePPURegs()
	b := NewCPUBus(ppu, newFakeCart())
	if err := b.Write(0x2001, 0x11); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got, want := ppu.writes[1], uint8(0x11); got != want {
		t.Errorf("ppu.writes[1] = %#x, want %#x", got, want)
	}
	if err := b.Write(0x3FF9, 0x22); err != nil { // mirrors $2001 too: (0x3FF9-0x2000)%8 == 1
		t.Fatalf("Write failed: %v", err)
	}
	if got, want := ppu.writes[1], uint8(0x22); got != want {
		t.Errorf("ppu.writes[1] after mirrored write = %#x, want %#x", got, want)
	}
}

func TestCPUBusCartridgeDispatch(t *testing.T) {
	cart := newFakeCart()
	b := NewCPUBus(newFakePPURegs(), cart)
	if err := b.Write(0x8000, 0x99); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got, want := cart.prg[0x2000], uint8(0x99); got != want { // 0x8000 - 0x6000 == 0x2000
		t.Errorf("cart.prg[0x2000] = %#x, want %#x", got, want)
	}
}

func TestCPUBusControllerLatchAndShift(t *testing.T) {
	b := NewCPUBus(newFakePPURegs(), newFakeCart())
	b.PressButton(0, ButtonA)
	b.PressButton(0, ButtonStart)

	if err := b.Write(0x4016, 0x00); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var got []uint8
	for i := 0; i < 8; i++ {
		v, err := b.Read(0x4016)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		got = append(got, v)
	}
	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0} // A, _, _, Start, ...
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bit %d = %d, want %d", i, got[i], want[i])
		}
	}

	// Reading past the eighth bit always returns 1.
	if v, _ := b.Read(0x4016); v != 1 {
		t.Errorf("Read past latch end = %d, want 1", v)
	}
}

func TestCPUBusOAMDMA(t *testing.T) {
	ppu := newFakePPURegs()
	b := NewCPUBus(ppu, newFakeCart())
	b.ram[0xFF] = 0xAB // last byte of the source page; should be the last OAMDATA write

	if err := b.Write(oamDMA, 0x00); err != nil {
		t.Fatalf("OAM DMA write failed: %v", err)
	}
	if got, want := ppu.writes[oamDataOffset], uint8(0xAB); got != want {
		t.Errorf("last OAMDATA write = %#x, want %#x", got, want)
	}
}

func TestCPUBusUnmappedExpansionRegion(t *testing.T) {
	b := NewCPUBus(newFakePPURegs(), newFakeCart())
	if _, err := b.Read(0x4018); err == nil {
		t.Errorf("Read(0x4018) succeeded, want UnimplementedReadError")
	} else if _, ok := err.(UnimplementedReadError); !ok {
		t.Errorf("Read(0x4018) err = %T, want UnimplementedReadError", err)
	}
	if err := b.Write(0x5FFF, 0x01); err == nil {
		t.Errorf("Write(0x5FFF) succeeded, want UnimplementedWriteError")
	} else if _, ok := err.(UnimplementedWriteError); !ok {
		t.Errorf("Write(0x5FFF) err = %T, want UnimplementedWriteError", err)
	}
}

func TestCPUBusOAMDMATrigger(t *testing.T) {
	// Reading from the OAMDMA register itself is illegal (write-only trigger).
	b := NewCPUBus(newFakePPURegs(), newFakeCart())
	if _, err := b.Read(oamDMA); err == nil {
		t.Errorf("Read(oamDMA) succeeded, want IllegalReadError")
	}
}
