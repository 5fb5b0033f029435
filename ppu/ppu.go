// Package ppu implements the NES Picture Processing Unit: the eight
// memory-mapped registers with their latched dual-write protocol, the
// vblank/NMI handshake with the CPU, and the background tile renderer.
// Sprite (OAM) rendering and fine-grained scanline/dot timing are out
// of scope; frame boundaries are commanded externally by the host.
package ppu

const (
	FrameWidth  = 256
	FrameHeight = 240

	oamSize     = 256
	paletteBase = 0x3F00
)

// Register offsets, dispatched by (addr - $2000) % 8 on the CPU bus.
const (
	RegCTRL = iota
	RegMASK
	RegSTATUS
	RegOAMADDR
	RegOAMDATA
	RegSCROLL
	RegADDRESS
	RegDATA
)

// PPUCTRL bits.
const (
	ctrlNametableMask = 0x03
	ctrlVRAMIncrement = 1 << 2
	ctrlBGPattern     = 1 << 4
	ctrlGenerateNMI   = 1 << 7
)

// PPUSTATUS bits.
const (
	statusVBlank = 1 << 7
)

// Bus is the capability the PPU needs from its own address space: the
// pattern table, nametable RAM and palette, already mirrored by
// bus.PPUBus. Unlike the CPU's bus, this one is held as a field: the
// PPU is the server side of this address space, not a client
// borrowing it for the duration of one call.
type Bus interface {
	Read(addr uint16) (uint8, error)
	Write(addr uint16, val uint8) error
}

// PPU holds the eight register latches, the OAM array, and the pixel
// buffer the background renderer paints into.
type PPU struct {
	bus Bus

	ctrl, mask uint8
	status     uint8
	oamAddr    uint8
	oam        [oamSize]uint8

	addr   addrReg
	scroll scrollReg

	vramAddr  uint16
	dataLatch uint8
	lastWrite uint8 // low 5 bits of the most recent register write

	frame [FrameWidth * FrameHeight]uint8 // indices into the 64-colour NES palette
}

func New(b Bus) *PPU {
	return &PPU{bus: b}
}

// ReadReg implements bus.PPURegs.
func (p *PPU) ReadReg(offset uint16) (uint8, error) {
	switch offset {
	case RegSTATUS:
		v := (p.status & 0xE0) | (p.lastWrite & 0x1F)
		p.status &^= statusVBlank
		p.addr.reset()
		p.scroll.reset()
		return v, nil
	case RegOAMDATA:
		return p.oam[p.oamAddr], nil
	case RegDATA:
		return p.readData()
	case RegCTRL, RegMASK, RegOAMADDR, RegSCROLL, RegADDRESS:
		return 0, IllegalReadError{Offset: offset}
	default:
		return 0, IllegalReadError{Offset: offset}
	}
}

// WriteReg implements bus.PPURegs.
func (p *PPU) WriteReg(offset uint16, val uint8) error {
	p.lastWrite = val & 0x1F
	switch offset {
	case RegCTRL:
		p.ctrl = val
	case RegMASK:
		p.mask = val
	case RegSTATUS:
		return IllegalWriteError{Offset: offset}
	case RegOAMADDR:
		p.oamAddr = val
	case RegOAMDATA:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case RegSCROLL:
		p.scroll.set(val)
	case RegADDRESS:
		p.addr.set(val)
		if !p.addr.lowB { // a full word just committed
			p.vramAddr = p.addr.get()
		}
	case RegDATA:
		return p.writeData(val)
	default:
		return IllegalWriteError{Offset: offset}
	}
	return nil
}

func (p *PPU) readData() (uint8, error) {
	v, err := p.bus.Read(p.vramAddr)
	if err != nil {
		return 0, err
	}
	result := p.dataLatch
	p.dataLatch = v
	p.incrementVRAM()
	return result, nil
}

func (p *PPU) writeData(val uint8) error {
	if err := p.bus.Write(p.vramAddr, val); err != nil {
		return err
	}
	p.incrementVRAM()
	return nil
}

func (p *PPU) incrementVRAM() {
	if p.ctrl&ctrlVRAMIncrement != 0 {
		p.vramAddr += 32
	} else {
		p.vramAddr++
	}
}

// EnterVBlank sets the vblank status bit and reports whether the CPU's
// NMI should fire, per PPUCTRL's NMI-enable bit.
func (p *PPU) EnterVBlank() (nmi bool) {
	p.status |= statusVBlank
	return p.ctrl&ctrlGenerateNMI != 0
}

// ExitVBlank clears the vblank status bit.
func (p *PPU) ExitVBlank() {
	p.status &^= statusVBlank
}

// Frame returns the rendered background as a row-major slice of
// 6-bit NES palette indices; translating to RGB is a front-end
// responsibility.
func (p *PPU) Frame() []uint8 {
	return p.frame[:]
}

// Render paints a full 256x240 background image per the nametable,
// attribute table, pattern table and palette currently wired up to
// the PPU. Sprites are never composited; this is the core's entire
// picture output.
func (p *PPU) Render() error {
	bg, err := p.bus.Read(paletteBase)
	if err != nil {
		return err
	}
	for i := range p.frame {
		p.frame[i] = bg
	}

	nametableBase := uint16(0x2000) + uint16(p.ctrl&ctrlNametableMask)*0x0400
	patternBase := uint16(0x0000)
	if p.ctrl&ctrlBGPattern != 0 {
		patternBase = 0x1000
	}

	for ty := 0; ty < 30; ty++ {
		for tx := 0; tx < 32; tx++ {
			tileID, err := p.bus.Read(nametableBase + uint16(ty*32+tx))
			if err != nil {
				return err
			}
			tileAddr := patternBase + uint16(tileID)*16

			attr, err := p.bus.Read(nametableBase + 0x3C0 + uint16((ty/4)*8+(tx/4)))
			if err != nil {
				return err
			}
			metaID := uint8((ty&1)<<1) | uint8(tx&1)
			selector := (attr >> (2 * metaID)) & 0x03

			for r := 0; r < 8; r++ {
				lo, err := p.bus.Read(tileAddr + uint16(r))
				if err != nil {
					return err
				}
				hi, err := p.bus.Read(tileAddr + 8 + uint16(r))
				if err != nil {
					return err
				}
				for col := 0; col < 8; col++ {
					idx := (hi&0x01)<<1 | (lo & 0x01)
					lo >>= 1
					hi >>= 1
					if idx == 0 {
						continue // transparent: universal background colour already painted
					}
					colour, err := p.bus.Read(paletteBase + uint16(selector)*4 + uint16(idx))
					if err != nil {
						return err
					}
					px := tx*8 + (7 - col)
					py := ty*8 + r
					p.frame[py*FrameWidth+px] = colour
				}
			}
		}
	}
	return nil
}
