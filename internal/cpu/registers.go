package cpu

// Register holds an 8-bit CPU register value.
type Register = uint8

// RegisterPair views two 8-bit registers as a single 16-bit value, high byte
// first (BC, DE, HL, AF all pack this way).
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the pair's value as a single 16-bit word.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets both halves of the pair from a single 16-bit word.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers holds the eight 8-bit LR35902 registers plus the virtual 16-bit
// pairs formed over them. F is the flag register; its low nibble is always
// zero (see Flag constants in flag.go).
type Registers struct {
	A Register
	F Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// registerIndex maps a 3-bit register selector (as used by the LD r,r',
// ALU, and CB instruction groups) to a pointer into the Registers. Index 6
// is reserved for the (HL) memory-indirect operand and is handled by the
// caller, not here.
func (c *CPU) registerIndex(index uint8) *Register {
	switch index & 0x7 {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic("registerIndex: index 6 refers to (HL), not a register")
}

// rpGroup1 reads/writes the 16-bit pair selected by a 2-bit index as used
// by LD rr,nn / INC rr / DEC rr / ADD HL,rr: 0=BC, 1=DE, 2=HL, 3=SP.
func (c *CPU) rpGroup1(selector uint8) uint16 {
	switch selector & 0x3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

func (c *CPU) setRPGroup1(selector uint8, value uint16) {
	switch selector & 0x3 {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

// rpGroup2 reads/writes the 16-bit pair selected by a 2-bit index as used
// by PUSH/POP: 0=BC, 1=DE, 2=HL, 3=AF.
func (c *CPU) rpGroup2(selector uint8) uint16 {
	if selector&0x3 == 3 {
		return c.AF.Uint16() & 0xFFF0
	}
	return c.rpGroup1(selector)
}

func (c *CPU) setRPGroup2(selector uint8, value uint16) {
	if selector&0x3 == 3 {
		c.AF.SetUint16(value & 0xFFF0)
		return
	}
	c.setRPGroup1(selector, value)
}

// registerName returns the mnemonic for a 3-bit register selector, with
// "(HL)" for index 6.
func (c *CPU) registerName(index uint8) string {
	switch index & 0x7 {
	case 0:
		return "B"
	case 1:
		return "C"
	case 2:
		return "D"
	case 3:
		return "E"
	case 4:
		return "H"
	case 5:
		return "L"
	case 6:
		return "(HL)"
	case 7:
		return "A"
	}
	return "?"
}
