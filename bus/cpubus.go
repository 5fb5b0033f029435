// Package bus implements the CPU-space and PPU-space address
// dispatch fabric: work RAM, the PPU register trampoline, controller
// ports, OAM-DMA, and the cartridge, per the NES memory map.
// https://www.nesdev.org/wiki/CPU_memory_map
package bus

import (
	"github.com/bdwalton/gones/cartridge"
	"github.com/golang/glog"
)

const (
	workRAMSize = 0x0800

	workRAMEnd   = 0x1FFF
	ppuRegEnd    = 0x3FFF
	ioEnd        = 0x4013
	oamDMA       = 0x4014
	apuStatus    = 0x4015
	controller1  = 0x4016
	controller2  = 0x4017
	ioBankEnd    = 0x4017
	cartridgeBeg = 0x6000

	oamDataOffset = 0x04
)

// PPURegs is the capability a CPUBus needs from the PPU: the eight
// memory-mapped registers, dispatched by offset 0..7.
type PPURegs interface {
	ReadReg(offset uint16) (uint8, error)
	WriteReg(offset uint16, val uint8) error
}

// CPUBus dispatches the CPU's 16-bit address space.
type CPUBus struct {
	ram         [workRAMSize]byte
	ppu         PPURegs
	cart        cartridge.Cartridge
	controllers [2]controller
}

// NewCPUBus wires a CPUBus to the PPU register trampoline and the
// loaded cartridge. Both must already exist; CPUBus does not own
// their lifecycle.
func NewCPUBus(ppu PPURegs, cart cartridge.Cartridge) *CPUBus {
	return &CPUBus{ppu: ppu, cart: cart}
}

// PressButton/ReleaseButton let the host set controller 1 or 2's
// shadow register between frames.
func (b *CPUBus) PressButton(controllerIdx int, button uint8) {
	b.controllers[controllerIdx].setButton(button, true)
}

func (b *CPUBus) ReleaseButton(controllerIdx int, button uint8) {
	b.controllers[controllerIdx].setButton(button, false)
}

func (b *CPUBus) Read(addr uint16) (uint8, error) {
	switch {
	case addr <= workRAMEnd:
		return b.ram[addr%workRAMSize], nil
	case addr <= ppuRegEnd:
		v, err := b.ppu.ReadReg((addr - 0x2000) % 8)
		if err != nil {
			return 0, BusErrorRead{Addr: addr, Err: err}
		}
		return v, nil
	case addr <= ioEnd:
		glog.V(1).Infof("bus: unimplemented read at $%04X (APU register)", addr)
		return 0, nil
	case addr == oamDMA:
		return 0, IllegalReadError{Addr: addr}
	case addr == apuStatus:
		glog.V(1).Infof("bus: unimplemented read at $%04X (APU status)", addr)
		return 0, nil
	case addr == controller1:
		return b.controllers[0].read(), nil
	case addr == controller2:
		return b.controllers[1].read(), nil
	case addr < cartridgeBeg:
		return 0, UnimplementedReadError{Addr: addr}
	default:
		v, err := b.cart.CpuRead(addr - cartridgeBeg)
		if err != nil {
			return 0, BusErrorRead{Addr: addr, Err: err}
		}
		return v, nil
	}
}

func (b *CPUBus) Write(addr uint16, val uint8) error {
	switch {
	case addr <= workRAMEnd:
		b.ram[addr%workRAMSize] = val
		return nil
	case addr <= ppuRegEnd:
		if err := b.ppu.WriteReg((addr-0x2000)%8, val); err != nil {
			return BusErrorWrite{Addr: addr, Err: err}
		}
		return nil
	case addr <= ioEnd:
		glog.V(1).Infof("bus: unimplemented write at $%04X (APU register)", addr)
		return nil
	case addr == oamDMA:
		return b.runOAMDMA(val)
	case addr == apuStatus:
		glog.V(1).Infof("bus: unimplemented write at $%04X (APU status)", addr)
		return nil
	case addr == controller1:
		b.controllers[0].write(val)
		return nil
	case addr == controller2:
		b.controllers[1].write(val)
		return nil
	case addr < cartridgeBeg:
		return UnimplementedWriteError{Addr: addr}
	default:
		if err := b.cart.CpuWrite(addr-cartridgeBeg, val); err != nil {
			return BusErrorWrite{Addr: addr, Err: err}
		}
		return nil
	}
}

// runOAMDMA transfers 256 bytes from CPU page val<<8 into the PPU's
// OAM through the OAMDATA register, which auto-increments OAMADDR
// after each write. Modeled as an instantaneous loop: the spec treats
// the real 513/514-cycle DMA stall as out of scope.
func (b *CPUBus) runOAMDMA(val uint8) error {
	base := uint16(val) << 8
	for i := 0; i < 256; i++ {
		v, err := b.Read(base + uint16(i))
		if err != nil {
			return err
		}
		if err := b.ppu.WriteReg(oamDataOffset, v); err != nil {
			return BusErrorWrite{Addr: oamDMA, Err: err}
		}
	}
	return nil
}
