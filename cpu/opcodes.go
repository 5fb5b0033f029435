package cpu

// instruction is one decode-table entry: the mnemonic (informational;
// the executor does not read it), its addressing mode, its base cycle count, and the function
// that executes it. The table below is written out by hand, opcode by
// opcode, rather than derived from the 6502's (leaky) bit-field
// encoding.
type instruction struct {
	name   string
	mode   AddressingMode
	cycles uint8
	exec   func(c *CPU, b Bus, mode AddressingMode) error
}

var decodeTable [256]*instruction

func define(opcode uint8, name string, mode AddressingMode, cycles uint8, fn func(c *CPU, b Bus, mode AddressingMode) error) {
	decodeTable[opcode] = &instruction{name: name, mode: mode, cycles: cycles, exec: fn}
}

func init() {
	define(0x69, "ADC", Immediate, 2, opADC)
	define(0x65, "ADC", ZeroPage, 3, opADC)
	define(0x75, "ADC", ZeroPageX, 4, opADC)
	define(0x6D, "ADC", Absolute, 4, opADC)
	define(0x7D, "ADC", AbsoluteX, 4, opADC)
	define(0x79, "ADC", AbsoluteY, 4, opADC)
	define(0x61, "ADC", IndirectX, 6, opADC)
	define(0x71, "ADC", IndirectY, 5, opADC)

	define(0x29, "AND", Immediate, 2, opAND)
	define(0x25, "AND", ZeroPage, 3, opAND)
	define(0x35, "AND", ZeroPageX, 4, opAND)
	define(0x2D, "AND", Absolute, 4, opAND)
	define(0x3D, "AND", AbsoluteX, 4, opAND)
	define(0x39, "AND", AbsoluteY, 4, opAND)
	define(0x21, "AND", IndirectX, 6, opAND)
	define(0x31, "AND", IndirectY, 5, opAND)

	define(0x0A, "ASL", Accumulator, 2, opASL)
	define(0x06, "ASL", ZeroPage, 5, opASL)
	define(0x16, "ASL", ZeroPageX, 6, opASL)
	define(0x0E, "ASL", Absolute, 6, opASL)
	define(0x1E, "ASL", AbsoluteX, 7, opASL)

	define(0x90, "BCC", Relative, 2, opBCC)
	define(0xB0, "BCS", Relative, 2, opBCS)
	define(0xF0, "BEQ", Relative, 2, opBEQ)
	define(0x30, "BMI", Relative, 2, opBMI)
	define(0xD0, "BNE", Relative, 2, opBNE)
	define(0x10, "BPL", Relative, 2, opBPL)
	define(0x50, "BVC", Relative, 2, opBVC)
	define(0x70, "BVS", Relative, 2, opBVS)

	define(0x24, "BIT", ZeroPage, 3, opBIT)
	define(0x2C, "BIT", Absolute, 4, opBIT)

	define(0x00, "BRK", Implicit, 7, opBRK)

	define(0x18, "CLC", Implicit, 2, opCLC)
	define(0xD8, "CLD", Implicit, 2, opCLD)
	define(0x58, "CLI", Implicit, 2, opCLI)
	define(0xB8, "CLV", Implicit, 2, opCLV)

	define(0xC9, "CMP", Immediate, 2, opCMP)
	define(0xC5, "CMP", ZeroPage, 3, opCMP)
	define(0xD5, "CMP", ZeroPageX, 4, opCMP)
	define(0xCD, "CMP", Absolute, 4, opCMP)
	define(0xDD, "CMP", AbsoluteX, 4, opCMP)
	define(0xD9, "CMP", AbsoluteY, 4, opCMP)
	define(0xC1, "CMP", IndirectX, 6, opCMP)
	define(0xD1, "CMP", IndirectY, 5, opCMP)

	define(0xE0, "CPX", Immediate, 2, opCPX)
	define(0xE4, "CPX", ZeroPage, 3, opCPX)
	define(0xEC, "CPX", Absolute, 4, opCPX)

	define(0xC0, "CPY", Immediate, 2, opCPY)
	define(0xC4, "CPY", ZeroPage, 3, opCPY)
	define(0xCC, "CPY", Absolute, 4, opCPY)

	define(0xC6, "DEC", ZeroPage, 5, opDEC)
	define(0xD6, "DEC", ZeroPageX, 6, opDEC)
	define(0xCE, "DEC", Absolute, 6, opDEC)
	define(0xDE, "DEC", AbsoluteX, 7, opDEC)
	define(0xCA, "DEX", Implicit, 2, opDEX)
	define(0x88, "DEY", Implicit, 2, opDEY)

	define(0x49, "EOR", Immediate, 2, opEOR)
	define(0x45, "EOR", ZeroPage, 3, opEOR)
	define(0x55, "EOR", ZeroPageX, 4, opEOR)
	define(0x4D, "EOR", Absolute, 4, opEOR)
	define(0x5D, "EOR", AbsoluteX, 4, opEOR)
	define(0x59, "EOR", AbsoluteY, 4, opEOR)
	define(0x41, "EOR", IndirectX, 6, opEOR)
	define(0x51, "EOR", IndirectY, 5, opEOR)

	define(0xE6, "INC", ZeroPage, 5, opINC)
	define(0xF6, "INC", ZeroPageX, 6, opINC)
	define(0xEE, "INC", Absolute, 6, opINC)
	define(0xFE, "INC", AbsoluteX, 7, opINC)
	define(0xE8, "INX", Implicit, 2, opINX)
	define(0xC8, "INY", Implicit, 2, opINY)

	define(0x4C, "JMP", Absolute, 3, opJMP)
	define(0x6C, "JMP", Indirect, 5, opJMP)
	define(0x20, "JSR", Absolute, 6, opJSR)

	define(0xA9, "LDA", Immediate, 2, opLDA)
	define(0xA5, "LDA", ZeroPage, 3, opLDA)
	define(0xB5, "LDA", ZeroPageX, 4, opLDA)
	define(0xAD, "LDA", Absolute, 4, opLDA)
	define(0xBD, "LDA", AbsoluteX, 4, opLDA)
	define(0xB9, "LDA", AbsoluteY, 4, opLDA)
	define(0xA1, "LDA", IndirectX, 6, opLDA)
	define(0xB1, "LDA", IndirectY, 5, opLDA)

	define(0xA2, "LDX", Immediate, 2, opLDX)
	define(0xA6, "LDX", ZeroPage, 3, opLDX)
	define(0xB6, "LDX", ZeroPageY, 4, opLDX)
	define(0xAE, "LDX", Absolute, 4, opLDX)
	define(0xBE, "LDX", AbsoluteY, 4, opLDX)

	define(0xA0, "LDY", Immediate, 2, opLDY)
	define(0xA4, "LDY", ZeroPage, 3, opLDY)
	define(0xB4, "LDY", ZeroPageX, 4, opLDY)
	define(0xAC, "LDY", Absolute, 4, opLDY)
	define(0xBC, "LDY", AbsoluteX, 4, opLDY)

	define(0x4A, "LSR", Accumulator, 2, opLSR)
	define(0x46, "LSR", ZeroPage, 5, opLSR)
	define(0x56, "LSR", ZeroPageX, 6, opLSR)
	define(0x4E, "LSR", Absolute, 6, opLSR)
	define(0x5E, "LSR", AbsoluteX, 7, opLSR)

	define(0xEA, "NOP", Implicit, 2, opNOP)

	define(0x09, "ORA", Immediate, 2, opORA)
	define(0x05, "ORA", ZeroPage, 3, opORA)
	define(0x15, "ORA", ZeroPageX, 4, opORA)
	define(0x0D, "ORA", Absolute, 4, opORA)
	define(0x1D, "ORA", AbsoluteX, 4, opORA)
	define(0x19, "ORA", AbsoluteY, 4, opORA)
	define(0x01, "ORA", IndirectX, 6, opORA)
	define(0x11, "ORA", IndirectY, 5, opORA)

	define(0x48, "PHA", Implicit, 3, opPHA)
	define(0x08, "PHP", Implicit, 3, opPHP)
	define(0x68, "PLA", Implicit, 4, opPLA)
	define(0x28, "PLP", Implicit, 4, opPLP)

	define(0x2A, "ROL", Accumulator, 2, opROL)
	define(0x26, "ROL", ZeroPage, 5, opROL)
	define(0x36, "ROL", ZeroPageX, 6, opROL)
	define(0x2E, "ROL", Absolute, 6, opROL)
	define(0x3E, "ROL", AbsoluteX, 7, opROL)

	define(0x6A, "ROR", Accumulator, 2, opROR)
	define(0x66, "ROR", ZeroPage, 5, opROR)
	define(0x76, "ROR", ZeroPageX, 6, opROR)
	define(0x6E, "ROR", Absolute, 6, opROR)
	define(0x7E, "ROR", AbsoluteX, 7, opROR)

	define(0x40, "RTI", Implicit, 6, opRTI)
	define(0x60, "RTS", Implicit, 6, opRTS)

	define(0xE9, "SBC", Immediate, 2, opSBC)
	define(0xE5, "SBC", ZeroPage, 3, opSBC)
	define(0xF5, "SBC", ZeroPageX, 4, opSBC)
	define(0xED, "SBC", Absolute, 4, opSBC)
	define(0xFD, "SBC", AbsoluteX, 4, opSBC)
	define(0xF9, "SBC", AbsoluteY, 4, opSBC)
	define(0xE1, "SBC", IndirectX, 6, opSBC)
	define(0xF1, "SBC", IndirectY, 5, opSBC)

	define(0x38, "SEC", Implicit, 2, opSEC)
	define(0xF8, "SED", Implicit, 2, opSED)
	define(0x78, "SEI", Implicit, 2, opSEI)

	define(0x85, "STA", ZeroPage, 3, opSTA)
	define(0x95, "STA", ZeroPageX, 4, opSTA)
	define(0x8D, "STA", Absolute, 4, opSTA)
	define(0x9D, "STA", AbsoluteX, 5, opSTA)
	define(0x99, "STA", AbsoluteY, 5, opSTA)
	define(0x81, "STA", IndirectX, 6, opSTA)
	define(0x91, "STA", IndirectY, 6, opSTA)

	define(0x86, "STX", ZeroPage, 3, opSTX)
	define(0x96, "STX", ZeroPageY, 4, opSTX)
	define(0x8E, "STX", Absolute, 4, opSTX)

	define(0x84, "STY", ZeroPage, 3, opSTY)
	define(0x94, "STY", ZeroPageX, 4, opSTY)
	define(0x8C, "STY", Absolute, 4, opSTY)

	define(0xAA, "TAX", Implicit, 2, opTAX)
	define(0xA8, "TAY", Implicit, 2, opTAY)
	define(0xBA, "TSX", Implicit, 2, opTSX)
	define(0x8A, "TXA", Implicit, 2, opTXA)
	define(0x9A, "TXS", Implicit, 2, opTXS)
	define(0x98, "TYA", Implicit, 2, opTYA)
}

func (c *CPU) addWithCarry(v uint8) {
	carry := uint16(0)
	if c.flag(StatusCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	result := uint8(sum)
	c.setFlag(StatusCarry, sum > 0xFF)
	c.setFlag(StatusOverflow, (c.A^result)&(v^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func (c *CPU) compare(reg, v uint8) {
	c.setFlag(StatusCarry, reg >= v)
	c.setZN(reg - v)
}

func (c *CPU) branchIf(b Bus, cond bool) error {
	offset, err := b.Read(c.PC)
	if err != nil {
		return err
	}
	c.PC++
	if cond {
		c.PC = uint16(int32(c.PC) + int32(int8(offset)))
	}
	return nil
}

func opADC(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.addWithCarry(v)
	return nil
}

func opSBC(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.addWithCarry(v ^ 0xFF)
	return nil
}

func opAND(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.A &= v
	c.setZN(c.A)
	return nil
}

func opORA(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.A |= v
	c.setZN(c.A)
	return nil
}

func opEOR(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.A ^= v
	c.setZN(c.A)
	return nil
}

// opASL and opLSR compute the flags from the post-shift result, not
// the operand's original value: the carry is the bit shifted out, but
// zero/negative describe what ends up in the register or memory cell.
func opASL(c *CPU, b Bus, mode AddressingMode) error {
	if mode == Accumulator {
		carryOut := c.A&0x80 != 0
		c.A <<= 1
		c.setFlag(StatusCarry, carryOut)
		c.setZN(c.A)
		return nil
	}
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	carryOut := v&0x80 != 0
	nv := v << 1
	if err := b.Write(addr, nv); err != nil {
		return err
	}
	c.setFlag(StatusCarry, carryOut)
	c.setZN(nv)
	return nil
}

func opLSR(c *CPU, b Bus, mode AddressingMode) error {
	if mode == Accumulator {
		carryOut := c.A&0x01 != 0
		c.A >>= 1
		c.setFlag(StatusCarry, carryOut)
		c.setZN(c.A)
		return nil
	}
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	carryOut := v&0x01 != 0
	nv := v >> 1
	if err := b.Write(addr, nv); err != nil {
		return err
	}
	c.setFlag(StatusCarry, carryOut)
	c.setZN(nv)
	return nil
}

func opROL(c *CPU, b Bus, mode AddressingMode) error {
	carryIn := uint8(0)
	if c.flag(StatusCarry) {
		carryIn = 1
	}
	if mode == Accumulator {
		carryOut := c.A&0x80 != 0
		c.A = c.A<<1 | carryIn
		c.setFlag(StatusCarry, carryOut)
		c.setZN(c.A)
		return nil
	}
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	carryOut := v&0x80 != 0
	nv := v<<1 | carryIn
	if err := b.Write(addr, nv); err != nil {
		return err
	}
	c.setFlag(StatusCarry, carryOut)
	c.setZN(nv)
	return nil
}

func opROR(c *CPU, b Bus, mode AddressingMode) error {
	carryIn := uint8(0)
	if c.flag(StatusCarry) {
		carryIn = 0x80
	}
	if mode == Accumulator {
		carryOut := c.A&0x01 != 0
		c.A = c.A>>1 | carryIn
		c.setFlag(StatusCarry, carryOut)
		c.setZN(c.A)
		return nil
	}
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	carryOut := v&0x01 != 0
	nv := v>>1 | carryIn
	if err := b.Write(addr, nv); err != nil {
		return err
	}
	c.setFlag(StatusCarry, carryOut)
	c.setZN(nv)
	return nil
}

func opBIT(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.setFlag(StatusZero, c.A&v == 0)
	c.setFlag(StatusNegative, v&0x80 != 0)
	c.setFlag(StatusOverflow, v&0x40 != 0)
	return nil
}

func opCMP(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.compare(c.A, v)
	return nil
}

func opCPX(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.compare(c.X, v)
	return nil
}

func opCPY(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.compare(c.Y, v)
	return nil
}

func opDEC(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	nv := v - 1
	if err := b.Write(addr, nv); err != nil {
		return err
	}
	c.setZN(nv)
	return nil
}

func opINC(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	nv := v + 1
	if err := b.Write(addr, nv); err != nil {
		return err
	}
	c.setZN(nv)
	return nil
}

func opDEX(c *CPU, b Bus, mode AddressingMode) error { c.X--; c.setZN(c.X); return nil }
func opDEY(c *CPU, b Bus, mode AddressingMode) error { c.Y--; c.setZN(c.Y); return nil }
func opINX(c *CPU, b Bus, mode AddressingMode) error { c.X++; c.setZN(c.X); return nil }
func opINY(c *CPU, b Bus, mode AddressingMode) error { c.Y++; c.setZN(c.Y); return nil }

func opJMP(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	c.PC = addr
	return nil
}

func opJSR(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	if err := c.pushAddr(b, c.PC-1); err != nil {
		return err
	}
	c.PC = addr
	return nil
}

func opRTS(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.pullAddr(b)
	if err != nil {
		return err
	}
	c.PC = addr + 1
	return nil
}

// opBRK is not modeled as a full interrupt trap (no vector dispatch,
// no stack push of PC/status); it only sets the Break flag, per the
// status-bit-only treatment of software interrupts.
func opBRK(c *CPU, b Bus, mode AddressingMode) error {
	c.setFlag(StatusBreak, true)
	return nil
}

func opRTI(c *CPU, b Bus, mode AddressingMode) error {
	status, err := c.pull(b)
	if err != nil {
		return err
	}
	c.Status = (status &^ StatusBreak) | StatusUnused
	addr, err := c.pullAddr(b)
	if err != nil {
		return err
	}
	c.PC = addr
	return nil
}

func opBCC(c *CPU, b Bus, mode AddressingMode) error { return c.branchIf(b, !c.flag(StatusCarry)) }
func opBCS(c *CPU, b Bus, mode AddressingMode) error { return c.branchIf(b, c.flag(StatusCarry)) }
func opBEQ(c *CPU, b Bus, mode AddressingMode) error { return c.branchIf(b, c.flag(StatusZero)) }
func opBNE(c *CPU, b Bus, mode AddressingMode) error { return c.branchIf(b, !c.flag(StatusZero)) }
func opBMI(c *CPU, b Bus, mode AddressingMode) error { return c.branchIf(b, c.flag(StatusNegative)) }
func opBPL(c *CPU, b Bus, mode AddressingMode) error { return c.branchIf(b, !c.flag(StatusNegative)) }
func opBVC(c *CPU, b Bus, mode AddressingMode) error { return c.branchIf(b, !c.flag(StatusOverflow)) }
func opBVS(c *CPU, b Bus, mode AddressingMode) error { return c.branchIf(b, c.flag(StatusOverflow)) }

func opCLC(c *CPU, b Bus, mode AddressingMode) error { c.setFlag(StatusCarry, false); return nil }
func opCLD(c *CPU, b Bus, mode AddressingMode) error { c.setFlag(StatusDecimal, false); return nil }
func opCLI(c *CPU, b Bus, mode AddressingMode) error {
	c.setFlag(StatusInterruptDisable, false)
	return nil
}
func opCLV(c *CPU, b Bus, mode AddressingMode) error { c.setFlag(StatusOverflow, false); return nil }
func opSEC(c *CPU, b Bus, mode AddressingMode) error { c.setFlag(StatusCarry, true); return nil }
func opSED(c *CPU, b Bus, mode AddressingMode) error { c.setFlag(StatusDecimal, true); return nil }
func opSEI(c *CPU, b Bus, mode AddressingMode) error {
	c.setFlag(StatusInterruptDisable, true)
	return nil
}

func opLDA(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.A = v
	c.setZN(c.A)
	return nil
}

func opLDX(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.X = v
	c.setZN(c.X)
	return nil
}

func opLDY(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	v, err := b.Read(addr)
	if err != nil {
		return err
	}
	c.Y = v
	c.setZN(c.Y)
	return nil
}

func opSTA(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	return b.Write(addr, c.A)
}

func opSTX(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	return b.Write(addr, c.X)
}

func opSTY(c *CPU, b Bus, mode AddressingMode) error {
	addr, err := c.effectiveAddress(b, mode)
	if err != nil {
		return err
	}
	return b.Write(addr, c.Y)
}

func opPHA(c *CPU, b Bus, mode AddressingMode) error { return c.push(b, c.A) }
func opPHP(c *CPU, b Bus, mode AddressingMode) error {
	return c.push(b, c.Status|StatusUnused|StatusBreak)
}

func opPLA(c *CPU, b Bus, mode AddressingMode) error {
	v, err := c.pull(b)
	if err != nil {
		return err
	}
	c.A = v
	c.setZN(c.A)
	return nil
}

func opPLP(c *CPU, b Bus, mode AddressingMode) error {
	v, err := c.pull(b)
	if err != nil {
		return err
	}
	c.Status = (v &^ StatusBreak) | StatusUnused
	return nil
}

func opNOP(c *CPU, b Bus, mode AddressingMode) error { return nil }

func opTAX(c *CPU, b Bus, mode AddressingMode) error { c.X = c.A; c.setZN(c.X); return nil }
func opTAY(c *CPU, b Bus, mode AddressingMode) error { c.Y = c.A; c.setZN(c.Y); return nil }
func opTSX(c *CPU, b Bus, mode AddressingMode) error { c.X = c.SP; c.setZN(c.X); return nil }
func opTXA(c *CPU, b Bus, mode AddressingMode) error { c.A = c.X; c.setZN(c.A); return nil }
func opTXS(c *CPU, b Bus, mode AddressingMode) error { c.SP = c.X; return nil }
func opTYA(c *CPU, b Bus, mode AddressingMode) error { c.A = c.Y; c.setZN(c.A); return nil }
