package cpu

// readOperand8 returns the value of the register or (HL) memory cell
// selected by a 3-bit CB/LD/ALU register index, per the fixed mapping
// B,C,D,E,H,L,(HL),A.
func (c *CPU) readOperand8(index uint8) uint8 {
	if index&0x7 == 6 {
		return c.readByte(c.HL.Uint16())
	}
	return *c.registerIndex(index)
}

// writeOperand8 stores value into the register or (HL) memory cell
// selected by a 3-bit register index.
func (c *CPU) writeOperand8(index uint8, value uint8) {
	if index&0x7 == 6 {
		c.writeByte(c.HL.Uint16(), value)
		return
	}
	*c.registerIndex(index) = value
}

// testBit sets FlagZero from the zero-ness of value's selected bit (not
// from the raw masked value), sets FlagHalfCarry, and clears FlagSubtract.
// FlagCarry is left untouched.
func (c *CPU) testBit(value uint8, bit uint8) {
	c.clearFlag(FlagSubtract)
	c.setFlag(FlagHalfCarry)
	c.setFlagIf(FlagZero, value&(1<<bit) == 0)
}

// resetBit clears the given bit of value.
func resetBit(value, bit uint8) uint8 {
	return value &^ (1 << bit)
}

// setBit sets the given bit of value.
func setBit(value, bit uint8) uint8 {
	return value | (1 << bit)
}
