package cartridge

import "fmt"

const (
	nromMapperID = 0

	prgRomBankSize = 16384
	prgRamSize     = 8192
	chrRomBankSize = 8192
	nametableSize  = 2048
)

// Errors a malformed image can trip during NROM construction.
var (
	ErrInvalidRomSize    = fmt.Errorf("cartridge: PRG ROM must be exactly 1 or 2 16KiB banks")
	ErrInvalidChrRomSize = fmt.Errorf("cartridge: CHR ROM must be exactly 1 8KiB bank")
)

// IllegalWriteError is returned whenever a write targets read-only
// cartridge-space memory: PRG ROM or CHR ROM.
type IllegalWriteError struct{ Addr uint16 }

func (e IllegalWriteError) Error() string {
	return fmt.Sprintf("cartridge: illegal write to $%04X", e.Addr)
}

func init() {
	Register(nromMapperID, newNROM)
}

// nrom implements mapper 0: a fixed 32KiB PRG ROM window (a single
// 16KiB bank mirrored into both halves, or two banks used directly),
// 8KiB of PRG RAM, 8KiB of CHR ROM, and 2KiB of internal nametable RAM
// mirrored per the header's arrangement bit.
type nrom struct {
	prg       []byte // always 32KiB
	ram       []byte // 8KiB unless the header declares more, zero-initialized
	chr       []byte // 8KiB
	nametable []byte // 2KiB internal VRAM
	mirror    uint8
	hasSave   bool
}

// newNROM is only ever invoked via the registry entry for mapper 0
// (see init, above), so there's no mapper-mismatch case to guard here.
func newNROM(img image) (Cartridge, error) {
	prgBlocks := img.PrgBlocks()
	var prg []byte
	switch len(prgBlocks) {
	case prgRomBankSize:
		prg = make([]byte, prgRomBankSize*2)
		copy(prg, prgBlocks)
		copy(prg[prgRomBankSize:], prgBlocks)
	case prgRomBankSize * 2:
		prg = append([]byte(nil), prgBlocks...)
	default:
		return nil, ErrInvalidRomSize
	}

	chrBlocks := img.ChrBlocks()
	if len(chrBlocks) != chrRomBankSize {
		return nil, ErrInvalidChrRomSize
	}
	chr := append([]byte(nil), chrBlocks...)

	ramSize := prgRamSize
	if img.HasSaveRAM() && img.PrgRAMSize() > 0 {
		ramSize = int(img.PrgRAMSize()) * prgRamSize
	}

	return &nrom{
		prg:       prg,
		ram:       make([]byte, ramSize),
		chr:       chr,
		nametable: make([]byte, nametableSize),
		mirror:    img.MirroringMode(),
		hasSave:   img.HasSaveRAM(),
	}, nil
}

// CPU-space zones, relative to the cartridge (i.e. already offset by
// the bus's $6000 base).
const (
	prgRamEnd    = 0x1FFF
	lowerRomEnd  = 0x5FFF
	lowerRomBase = 0x2000
	upperRomBase = 0x6000
)

func (n *nrom) CpuRead(addr uint16) (uint8, error) {
	switch {
	case addr <= prgRamEnd:
		return n.ram[addr%uint16(len(n.ram))], nil
	case addr <= lowerRomEnd:
		return n.prg[addr-lowerRomBase], nil
	default:
		return n.prg[addr-upperRomBase+prgRomBankSize], nil
	}
}

func (n *nrom) CpuWrite(addr uint16, val uint8) error {
	switch {
	case addr <= prgRamEnd:
		n.ram[addr%uint16(len(n.ram))] = val
		return nil
	default:
		return IllegalWriteError{Addr: addr}
	}
}

// PPU-space zones.
const (
	patternTableEnd = 0x1FFF
	nametableBase   = 0x2000
)

func (n *nrom) PpuRead(addr uint16) (uint8, error) {
	if addr <= patternTableEnd {
		return n.chr[addr], nil
	}
	return n.nametable[n.mirrorNametable(addr-nametableBase)], nil
}

func (n *nrom) PpuWrite(addr uint16, val uint8) error {
	if addr <= patternTableEnd {
		return IllegalWriteError{Addr: addr}
	}
	n.nametable[n.mirrorNametable(addr-nametableBase)] = val
	return nil
}

// Mirroring mode tags, matching nesrom's header-derived values without
// importing that package for three constants.
const (
	mirrorHorizontal = 0
	mirrorVertical   = 1
)

// mirrorNametable reduces a 12-bit nametable-relative address to an
// 11-bit offset into the cartridge's 2KiB of internal VRAM. Vertical
// mirroring aliases the two nametable columns ($2000/$2800 pair,
// $2400/$2C00 pair), which is exactly `a mod 0x800`. Horizontal
// mirroring aliases the two nametable rows ($2000/$2400 pair,
// $2800/$2C00 pair): keep the 10 low bits and fold bit 11 down into
// bit 10.
func (n *nrom) mirrorNametable(a uint16) uint16 {
	switch n.mirror {
	case mirrorVertical:
		return a % 0x0800
	default: // horizontal (and four-screen falls back to horizontal: we don't carry extra VRAM for it)
		return (a & 0x03FF) | ((a & 0x0800) >> 1)
	}
}

func (n *nrom) MirroringMode() uint8 {
	return n.mirror
}

func (n *nrom) HasSaveRAM() bool {
	return n.hasSave
}
