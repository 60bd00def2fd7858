package cpu

// operand carries a resolved address (meaningless for Implied/Accumulator)
// through to an instruction's exec function.
type operand struct {
	addr uint16
	mode AddressingMode
}

// resolveOperand consumes whatever operand bytes the mode requires,
// advancing PC, and reports whether indexing crossed a page boundary.
func (c *CPU) resolveOperand(mode AddressingMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false

	case Immediate:
		addr = c.PC
		c.PC++
		return addr, false

	case ZeroPage:
		return uint16(c.fetch()), false

	case ZeroPageX:
		return uint16(c.fetch() + c.X), false

	case ZeroPageY:
		return uint16(c.fetch() + c.Y), false

	case Absolute:
		return c.fetch16(), false

	case AbsoluteX:
		base := c.fetch16()
		addr = base + uint16(c.X)
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	case AbsoluteY:
		base := c.fetch16()
		addr = base + uint16(c.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	case Indirect:
		ptr := c.fetch16()
		return c.read16Bug(ptr), false

	case IndexedIndirect:
		base := c.fetch()
		return c.read16ZeroPage(base + c.X), false

	case IndirectIndexed:
		base := c.fetch()
		ptrBase := c.read16ZeroPage(base)
		addr = ptrBase + uint16(c.Y)
		return addr, (ptrBase & 0xFF00) != (addr & 0xFF00)

	case Relative:
		offset := int8(c.fetch())
		return uint16(int32(c.PC) + int32(offset)), false

	default:
		return 0, false
	}
}

// load reads an operand's value for modes that produce data (everything
// except Implied; Accumulator reads c.A directly).
func (c *CPU) load(o operand) uint8 {
	if o.mode == Accumulator {
		return c.A
	}
	return c.memory.Read(o.addr)
}

func (c *CPU) store(o operand, v uint8) {
	if o.mode == Accumulator {
		c.A = v
		return
	}
	c.memory.Write(o.addr, v)
}
