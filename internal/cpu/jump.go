package cpu

// condition is a 2-bit selector used by the conditional JR/JP/CALL/RET
// groups: 0=NZ, 1=Z, 2=NC, 3=C.
func (c *CPU) condition(selector uint8) bool {
	switch selector & 0x3 {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

func (c *CPU) jumpRelative() {
	offset := int8(c.fetch())
	c.PC = uint16(int32(c.PC) + int32(offset))
}

func (c *CPU) jumpAbsolute() {
	c.PC = c.fetch16()
}

func (c *CPU) call() {
	target := c.fetch16()
	c.push16(c.PC)
	c.PC = target
}

func (c *CPU) ret() {
	c.PC = c.pop16()
}

func (c *CPU) rst(vector uint16) {
	c.push16(c.PC)
	c.PC = vector
}
