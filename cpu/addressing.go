package cpu

// AddressingMode identifies one of the 6502's operand-fetch schemes.
// Implicit and Accumulator carry no operand address at all and are
// special-cased by every opcode that uses them instead of calling
// effectiveAddress.
type AddressingMode uint8

const (
	Implicit AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
	Relative
)

// read16 fetches a little-endian word without page-wrap semantics;
// used for absolute operands and vectors.
func (c *CPU) read16(b Bus, addr uint16) (uint16, error) {
	lo, err := b.Read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := b.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// read16WrapPage fetches a little-endian word the way the NMOS 6502's
// JMP (indirect) actually does: if the pointer's low byte is 0xFF, the
// high byte is read from the START of the same page rather than the
// next one. This reproduces the documented indirect-JMP hardware bug;
// absolute reads elsewhere on the bus use read16 instead.
func (c *CPU) read16WrapPage(b Bus, addr uint16) (uint16, error) {
	lo, err := b.Read(addr)
	if err != nil {
		return 0, err
	}
	hiAddr := (addr & 0xFF00) | uint16(uint8(addr)+1)
	hi, err := b.Read(hiAddr)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// effectiveAddress computes the operand address for every mode that
// has one, advancing the program counter past the instruction's
// operand bytes as it goes. Implicit and Accumulator must never reach
// here; Relative is resolved by the branch helper, not by callers of
// this function, since its "address" is only meaningful as a signed
// displacement applied after the opcode's own PC advance.
func (c *CPU) effectiveAddress(b Bus, mode AddressingMode) (uint16, error) {
	switch mode {
	case Immediate:
		addr := c.PC
		c.PC++
		return addr, nil
	case ZeroPage:
		v, err := b.Read(c.PC)
		if err != nil {
			return 0, err
		}
		c.PC++
		return uint16(v), nil
	case ZeroPageX:
		v, err := b.Read(c.PC)
		if err != nil {
			return 0, err
		}
		c.PC++
		return uint16(v + c.X), nil
	case ZeroPageY:
		v, err := b.Read(c.PC)
		if err != nil {
			return 0, err
		}
		c.PC++
		return uint16(v + c.Y), nil
	case Absolute:
		addr, err := c.read16(b, c.PC)
		if err != nil {
			return 0, err
		}
		c.PC += 2
		return addr, nil
	case AbsoluteX:
		base, err := c.read16(b, c.PC)
		if err != nil {
			return 0, err
		}
		c.PC += 2
		return base + uint16(c.X), nil
	case AbsoluteY:
		base, err := c.read16(b, c.PC)
		if err != nil {
			return 0, err
		}
		c.PC += 2
		return base + uint16(c.Y), nil
	case Indirect:
		ptr, err := c.read16(b, c.PC)
		if err != nil {
			return 0, err
		}
		c.PC += 2
		return c.read16WrapPage(b, ptr)
	case IndirectX:
		zp, err := b.Read(c.PC)
		if err != nil {
			return 0, err
		}
		c.PC++
		return c.read16WrapPage(b, uint16(zp+c.X))
	case IndirectY:
		zp, err := b.Read(c.PC)
		if err != nil {
			return 0, err
		}
		c.PC++
		base, err := c.read16WrapPage(b, uint16(zp))
		if err != nil {
			return 0, err
		}
		return base + uint16(c.Y), nil
	default:
		return 0, UnimplementedAddressingModeError{Mode: mode}
	}
}
