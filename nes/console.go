// Package nes wires the CPU, PPU, address bus and cartridge into a
// single emulated console and drives the per-frame control loop.
package nes

import (
	"github.com/bdwalton/gones/bus"
	"github.com/bdwalton/gones/cartridge"
	"github.com/bdwalton/gones/cpu"
	"github.com/bdwalton/gones/nesrom"
	"github.com/bdwalton/gones/ppu"
	"github.com/golang/glog"
)

// instructionsPerVBlank approximates a real vblank duration in
// instruction count; the core is frame-accurate, not dot-accurate.
const instructionsPerVBlank = 2000

// Console owns every piece of emulated hardware for one loaded
// cartridge and exposes the frame-at-a-time control loop a front end
// drives.
type Console struct {
	cpu    *cpu.CPU
	ppu    *ppu.PPU
	cpuBus *bus.CPUBus
	ppuBus *bus.PPUBus
	cart   cartridge.Cartridge
}

// New loads rom into a cartridge, wires up both address buses, and
// resets the CPU from the reset vector.
func New(rom *nesrom.ROM) (*Console, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("nes: loaded %s, mapper %d", rom, rom.MapperNum())

	ppuBus := bus.NewPPUBus(cart)
	p := ppu.New(ppuBus)
	cpuBus := bus.NewCPUBus(p, cart)
	c := cpu.New()
	if err := c.Reset(cpuBus); err != nil {
		return nil, err
	}

	return &Console{cpu: c, ppu: p, cpuBus: cpuBus, ppuBus: ppuBus, cart: cart}, nil
}

// CPUState returns a snapshot of the CPU's registers and flags, for a
// debug dump; it does not affect emulation.
func (c *Console) CPUState() cpu.State {
	return c.cpu.State
}

// ReadCPUMemory and ReadPPUMemory read a single address through the
// same buses the emulated hardware uses, for a debug dump. They are
// not part of the emulation loop.
func (c *Console) ReadCPUMemory(addr uint16) (uint8, error) {
	return c.cpuBus.Read(addr)
}

func (c *Console) ReadPPUMemory(addr uint16) (uint8, error) {
	return c.ppuBus.Read(addr)
}

// EmulateFrame runs exactly one iteration of the outer loop: enter
// vblank (possibly raising NMI), run an instruction budget, exit
// vblank, render the background, then run a second budget. N is fixed
// at instructionsPerVBlank rather than derived from real PPU timing,
// since dot-accurate scanline counting is out of scope.
func (c *Console) EmulateFrame() error {
	if nmi := c.ppu.EnterVBlank(); nmi {
		c.cpu.TriggerNMI()
	}
	if err := c.runInstructions(instructionsPerVBlank); err != nil {
		return err
	}

	c.ppu.ExitVBlank()
	if err := c.ppu.Render(); err != nil {
		return err
	}

	return c.runInstructions(instructionsPerVBlank)
}

func (c *Console) runInstructions(n int) error {
	for i := 0; i < n; i++ {
		if _, err := c.cpu.Step(c.cpuBus); err != nil {
			return err
		}
	}
	return nil
}

// Frame returns the most recently rendered background as a row-major
// slice of 6-bit NES palette indices.
func (c *Console) Frame() []uint8 {
	return c.ppu.Frame()
}

// PressButton and ReleaseButton set a controller's shadow register
// between frames; the host is expected to poll its input device and
// call these before EmulateFrame.
func (c *Console) PressButton(controllerIdx int, button uint8) {
	c.cpuBus.PressButton(controllerIdx, button)
}

func (c *Console) ReleaseButton(controllerIdx int, button uint8) {
	c.cpuBus.ReleaseButton(controllerIdx, button)
}
