// Package cpu implements the 6502-family CPU core: registers, the 13
// addressing modes, and the documented instruction set, decoded
// through a hand-built 256-entry table rather than reflection or
// bit-field decoding.
package cpu

const (
	StatusCarry            uint8 = 1 << 0
	StatusZero              uint8 = 1 << 1
	StatusInterruptDisable  uint8 = 1 << 2
	StatusDecimal           uint8 = 1 << 3 // never acted on; BCD mode is out of scope.
	StatusBreak             uint8 = 1 << 4
	StatusUnused            uint8 = 1 << 5
	StatusOverflow          uint8 = 1 << 6
	StatusNegative          uint8 = 1 << 7
)

const (
	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE

	stackBase = 0x0100
)

// Bus is the capability the CPU needs to execute: byte-addressed
// read/write over its 16-bit space. bus.CPUBus satisfies this without
// the cpu package importing it, keeping the dependency direction
// capability-first rather than concrete-struct-first.
type Bus interface {
	Read(addr uint16) (uint8, error)
	Write(addr uint16, val uint8) error
}

// State is the register file, held as a plain value so tests and
// save-state snapshots can copy it without aliasing concerns.
type State struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	Status  uint8
}

// CPU executes one instruction at a time against a Bus supplied by the
// caller on every call, rather than stored as a field, so the same CPU
// value never silently outlives the bus it was wired to.
type CPU struct {
	State
	pendingNMI bool
	cycles     uint64
}

// New returns a CPU with registers zeroed; callers must call Reset
// before Step to seed SP and PC from the reset vector.
func New() *CPU {
	return &CPU{}
}

// Reset seeds the stack pointer and status flags to their documented
// post-power-on values and loads PC from the reset vector at $FFFC.
func (c *CPU) Reset(b Bus) error {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.Status = StatusUnused | StatusInterruptDisable
	pc, err := c.read16(b, vectorReset)
	if err != nil {
		return MemoryError{Err: err}
	}
	c.PC = pc
	return nil
}

// TriggerNMI arms a non-maskable interrupt to be serviced at the start
// of the next Step call, matching the PPU's once-per-frame vblank
// signal.
func (c *CPU) TriggerNMI() {
	c.pendingNMI = true
}

// Cycles returns the running total of base cycles consumed since New;
// Reset does not clear it.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

func (c *CPU) setFlag(flag uint8, set bool) {
	if set {
		c.Status |= flag
	} else {
		c.Status &^= flag
	}
}

func (c *CPU) flag(flag uint8) bool {
	return c.Status&flag != 0
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(StatusZero, v == 0)
	c.setFlag(StatusNegative, v&0x80 != 0)
}

func (c *CPU) push(b Bus, v uint8) error {
	if err := b.Write(stackBase+uint16(c.SP), v); err != nil {
		return err
	}
	c.SP--
	return nil
}

func (c *CPU) pull(b Bus) (uint8, error) {
	c.SP++
	return b.Read(stackBase + uint16(c.SP))
}

func (c *CPU) pushAddr(b Bus, addr uint16) error {
	if err := c.push(b, uint8(addr>>8)); err != nil {
		return err
	}
	return c.push(b, uint8(addr))
}

func (c *CPU) pullAddr(b Bus) (uint16, error) {
	lo, err := c.pull(b)
	if err != nil {
		return 0, err
	}
	hi, err := c.pull(b)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// serviceNMI pushes PC and status (with the Break flag clear), sets
// the interrupt-disable flag and jumps to the NMI vector.
func (c *CPU) serviceNMI(b Bus) error {
	if err := c.pushAddr(b, c.PC); err != nil {
		return err
	}
	if err := c.push(b, (c.Status|StatusUnused)&^StatusBreak); err != nil {
		return err
	}
	c.setFlag(StatusInterruptDisable, true)
	pc, err := c.read16(b, vectorNMI)
	if err != nil {
		return err
	}
	c.PC = pc
	c.cycles += 7
	return nil
}

// Step services a pending NMI if one is armed, then fetches, decodes
// and executes exactly one instruction, returning the cycle count it
// consumed.
func (c *CPU) Step(b Bus) (uint8, error) {
	if c.pendingNMI {
		c.pendingNMI = false
		if err := c.serviceNMI(b); err != nil {
			return 0, MemoryError{Err: err}
		}
		return 7, nil
	}

	opcode, err := b.Read(c.PC)
	if err != nil {
		return 0, MemoryError{Err: err}
	}
	inst := decodeTable[opcode]
	if inst == nil {
		return 0, InvalidOpcodeError{Opcode: opcode}
	}
	c.PC++

	before := c.cycles
	if err := inst.exec(c, b, inst.mode); err != nil {
		return 0, MemoryError{Err: err}
	}
	c.cycles += uint64(inst.cycles)
	return uint8(c.cycles - before), nil
}
