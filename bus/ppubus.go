package bus

import "github.com/bdwalton/gones/cartridge"

const (
	patternNametableEnd = 0x2FFF
	nametableMirrorEnd   = 0x3EFF
	nametableMirrorBase  = 0x1000
	paletteBase          = 0x3F00
	paletteSize          = 0x20
)

// PPUBus dispatches the PPU's 14-bit address space: pattern table and
// nametable RAM both live on the cartridge (which applies its own
// nametable mirroring); the 32-byte palette lives on the bus itself,
// because unlike the nametable it isn't cartridge-owned.
type PPUBus struct {
	cart    cartridge.Cartridge
	palette [paletteSize]byte
}

func NewPPUBus(cart cartridge.Cartridge) *PPUBus {
	return &PPUBus{cart: cart}
}

func (b *PPUBus) Read(addr uint16) (uint8, error) {
	switch {
	case addr <= patternNametableEnd:
		v, err := b.cart.PpuRead(addr)
		if err != nil {
			return 0, BusErrorRead{Addr: addr, Err: err}
		}
		return v, nil
	case addr <= nametableMirrorEnd:
		v, err := b.cart.PpuRead(addr - nametableMirrorBase)
		if err != nil {
			return 0, BusErrorRead{Addr: addr, Err: err}
		}
		return v, nil
	default:
		return b.palette[b.paletteOffset(addr)], nil
	}
}

func (b *PPUBus) Write(addr uint16, val uint8) error {
	switch {
	case addr <= patternNametableEnd:
		if err := b.cart.PpuWrite(addr, val); err != nil {
			return BusErrorWrite{Addr: addr, Err: err}
		}
		return nil
	case addr <= nametableMirrorEnd:
		if err := b.cart.PpuWrite(addr-nametableMirrorBase, val); err != nil {
			return BusErrorWrite{Addr: addr, Err: err}
		}
		return nil
	default:
		b.palette[b.paletteOffset(addr)] = val
		return nil
	}
}

func (b *PPUBus) paletteOffset(addr uint16) uint16 {
	return (addr - paletteBase) % paletteSize
}
