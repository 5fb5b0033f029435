package ppu

import "testing"

func TestAddrReg(t *testing.T) {
	cases := []struct {
		inputs []uint8
		wants  []uint16
	}{
		{
			[]uint8{0x0F, 0x0B, 0x10, 0x02},
			[]uint16{0x0F00, 0x0F0B, 0x100B, 0x1002},
		},
		{
			[]uint8{0x1F, 0xB0},
			[]uint16{0x1F00, 0x1FB0},
		},
	}

	var ar addrReg
	for i, tc := range cases {
		for j, x := range tc.inputs {
			ar.set(x)
			if got := ar.get(); got != tc.wants[j] {
				t.Errorf("%d: Got %04x, want %04x", i, got, tc.wants[j])
			}
		}
		ar.reset()
	}
}

func TestScrollRegIndependentOfAddrReg(t *testing.T) {
	var ar addrReg
	var sr scrollReg

	ar.set(0x21) // starts ar's toggle mid-write
	sr.set(0x08)
	sr.set(0x0C)

	if sr.x != 0x08 || sr.y != 0x0C {
		t.Errorf("scrollReg = {%#x, %#x}, want {0x08, 0x0c}", sr.x, sr.y)
	}
	// ar's toggle must be untouched by scrollReg writes.
	ar.set(0x43)
	if got, want := ar.get(), uint16(0x2143); got != want {
		t.Errorf("addrReg.get() = %#04x, want %#04x (toggle leaked across registers)", got, want)
	}
}
