package cpu

// rlc rotates value left by one, bit 7 moving into both bit 0 and Carry.
func (c *CPU) rlc(value uint8) uint8 {
	carry := value&0x80 != 0
	result := value<<1 | boolBit(carry)
	c.finishRotate(result, carry)
	return result
}

// rl rotates value left through Carry: the old Carry becomes bit 0, and
// the old bit 7 becomes the new Carry.
func (c *CPU) rl(value uint8) uint8 {
	carryIn := boolBit(c.isFlagSet(FlagCarry))
	carryOut := value&0x80 != 0
	result := value<<1 | carryIn
	c.finishRotate(result, carryOut)
	return result
}

// rrc rotates value right by one, bit 0 moving into both bit 7 and Carry.
func (c *CPU) rrc(value uint8) uint8 {
	carry := value&0x01 != 0
	result := value>>1 | boolBit(carry)<<7
	c.finishRotate(result, carry)
	return result
}

// rr rotates value right through Carry: the old Carry becomes bit 7, and
// the old bit 0 becomes the new Carry.
func (c *CPU) rr(value uint8) uint8 {
	carryIn := boolBit(c.isFlagSet(FlagCarry))
	carryOut := value&0x01 != 0
	result := value>>1 | carryIn<<7
	c.finishRotate(result, carryOut)
	return result
}

func (c *CPU) finishRotate(result uint8, carryOut bool) {
	c.clearFlags(FlagSubtract, FlagHalfCarry)
	c.setFlagIf(FlagCarry, carryOut)
	c.shouldZeroFlag(result)
}

// rlcA, rlA, rrcA, rrA implement the non-CB accumulator rotates
// (RLCA/RLA/RRCA/RRA), which always clear Z regardless of the result,
// unlike their CB-prefixed RLC/RL/RRC/RR r counterparts.
func (c *CPU) rlcA() {
	c.A = c.rlc(c.A)
	c.clearFlag(FlagZero)
}

func (c *CPU) rlA() {
	c.A = c.rl(c.A)
	c.clearFlag(FlagZero)
}

func (c *CPU) rrcA() {
	c.A = c.rrc(c.A)
	c.clearFlag(FlagZero)
}

func (c *CPU) rrA() {
	c.A = c.rr(c.A)
	c.clearFlag(FlagZero)
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
