package bus

import "testing"

func TestPPUBusPatternAndNametableDispatch(t *testing.T) {
	cart := newFakeCart()
	b := NewPPUBus(cart)

	if err := b.Write(0x0010, 0x55); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got, want := cart.chr[0x0010], uint8(0x55); got != want {
		t.Errorf("cart.chr[0x0010] = %#x, want %#x", got, want)
	}

	if err := b.Write(0x2100, 0x66); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := b.Read(0x3100) // $3000-$3EFF mirrors $2000-$2EFF
	if err != nil || got != 0x66 {
		t.Errorf("Read(0x3100) = %#x, %v; want 0x66, nil", got, err)
	}
}

func TestPPUBusPaletteAndMirror(t *testing.T) {
	b := NewPPUBus(newFakeCart())

	if err := b.Write(0x3F01, 0x16); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := b.Read(0x3F21) // mirrors $3F01 (0x21 % 0x20 == 0x01)
	if err != nil || got != 0x16 {
		t.Errorf("Read(0x3F21) = %#x, %v; want 0x16, nil", got, err)
	}
}
