package cpu

// InstructionMeta is one entry of the 256-slot primary or CB-prefixed
// opcode table: its mnemonic, encoded length in bytes, base T-cycle cost,
// and the executor. fn returns any extra cycles consumed beyond Cycles
// (nonzero only for conditional branches that were taken).
type InstructionMeta struct {
	Name   string
	Length uint8
	Cycles uint8

	fn func(c *CPU) int
}

// InstructionSet is the primary (non-CB) 256-entry opcode table. Entries
// left at their zero value (fn == nil) are illegal/unused opcodes on real
// hardware and are treated as a fatal decode error.
var InstructionSet [256]InstructionMeta

func instr(name string, length, cycles uint8, fn func(c *CPU) int) InstructionMeta {
	return InstructionMeta{Name: name, Length: length, Cycles: cycles, fn: fn}
}

// noExtra wraps a side-effecting closure with no branch-dependent timing.
func noExtra(fn func(c *CPU)) func(c *CPU) int {
	return func(c *CPU) int {
		fn(c)
		return 0
	}
}

func init() {
	buildFixedInstructions()
	buildLoadGroup()
	buildALUGroup()
	build16BitGroup()
	buildStackGroup()
}

// buildFixedInstructions fills every opcode whose encoding doesn't follow
// one of the regular 8x8 groups: control flow, misc single-register ops,
// and the handful of absolute/immediate addressing forms.
func buildFixedInstructions() {
	s := &InstructionSet

	s[0x00] = instr("NOP", 1, 4, noExtra(func(c *CPU) {}))
	s[0x10] = instr("STOP", 2, 4, noExtra(func(c *CPU) {
		c.skipOperand()
		c.stop()
	}))
	s[0x76] = instr("HALT", 1, 4, noExtra(func(c *CPU) { c.halt() }))
	s[0xF3] = instr("DI", 1, 4, noExtra(func(c *CPU) { c.disableIME() }))
	s[0xFB] = instr("EI", 1, 4, noExtra(func(c *CPU) { c.enableIME() }))

	s[0x07] = instr("RLCA", 1, 4, noExtra(func(c *CPU) { c.rlcA() }))
	s[0x0F] = instr("RRCA", 1, 4, noExtra(func(c *CPU) { c.rrcA() }))
	s[0x17] = instr("RLA", 1, 4, noExtra(func(c *CPU) { c.rlA() }))
	s[0x1F] = instr("RRA", 1, 4, noExtra(func(c *CPU) { c.rrA() }))
	s[0x27] = instr("DAA", 1, 4, noExtra(func(c *CPU) { c.daa() }))
	s[0x2F] = instr("CPL", 1, 4, noExtra(func(c *CPU) {
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	}))
	s[0x37] = instr("SCF", 1, 4, noExtra(func(c *CPU) {
		c.clearFlags(FlagSubtract, FlagHalfCarry)
		c.setFlag(FlagCarry)
	}))
	s[0x3F] = instr("CCF", 1, 4, noExtra(func(c *CPU) {
		c.clearFlags(FlagSubtract, FlagHalfCarry)
		c.setFlagIf(FlagCarry, !c.isFlagSet(FlagCarry))
	}))

	// JR r8 and JR cc,r8
	s[0x18] = instr("JR r8", 2, 12, noExtra(func(c *CPU) { c.jumpRelative() }))
	for i, opcode := range []uint8{0x20, 0x28, 0x30, 0x38} {
		selector := uint8(i)
		s[opcode] = instr("JR cc,r8", 2, 8, func(c *CPU) int {
			if c.condition(selector) {
				c.jumpRelative()
				return 4
			}
			c.skipOperand()
			return 0
		})
	}

	// JP a16, JP cc,a16, JP (HL)
	s[0xC3] = instr("JP a16", 3, 16, noExtra(func(c *CPU) { c.jumpAbsolute() }))
	s[0xE9] = instr("JP (HL)", 1, 4, noExtra(func(c *CPU) { c.PC = c.HL.Uint16() }))
	for i, opcode := range []uint8{0xC2, 0xCA, 0xD2, 0xDA} {
		selector := uint8(i)
		s[opcode] = instr("JP cc,a16", 3, 12, func(c *CPU) int {
			target := c.fetch16()
			if c.condition(selector) {
				c.PC = target
				return 4
			}
			return 0
		})
	}

	// CALL a16, CALL cc,a16
	s[0xCD] = instr("CALL a16", 3, 24, noExtra(func(c *CPU) { c.call() }))
	for i, opcode := range []uint8{0xC4, 0xCC, 0xD4, 0xDC} {
		selector := uint8(i)
		s[opcode] = instr("CALL cc,a16", 3, 12, func(c *CPU) int {
			target := c.fetch16()
			if c.condition(selector) {
				c.push16(c.PC)
				c.PC = target
				return 12
			}
			return 0
		})
	}

	// RET, RETI, RET cc
	s[0xC9] = instr("RET", 1, 16, noExtra(func(c *CPU) { c.ret() }))
	s[0xD9] = instr("RETI", 1, 16, noExtra(func(c *CPU) {
		c.ret()
		c.irq.IME = true
	}))
	for i, opcode := range []uint8{0xC0, 0xC8, 0xD0, 0xD8} {
		selector := uint8(i)
		s[opcode] = instr("RET cc", 1, 8, func(c *CPU) int {
			if c.condition(selector) {
				c.ret()
				return 12
			}
			return 0
		})
	}

	// RST n
	for i, opcode := range []uint8{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF} {
		vector := uint16(i) * 8
		s[opcode] = instr("RST n", 1, 16, noExtra(func(c *CPU) { c.rst(vector) }))
	}

	// LD (a16),SP
	s[0x08] = instr("LD (a16),SP", 3, 20, noExtra(func(c *CPU) {
		addr := c.fetch16()
		c.writeByte(addr, uint8(c.SP))
		c.writeByte(addr+1, uint8(c.SP>>8))
	}))

	// LDH (a8),A / LDH A,(a8)
	s[0xE0] = instr("LDH (a8),A", 2, 12, noExtra(func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.fetch()), c.A)
	}))
	s[0xF0] = instr("LDH A,(a8)", 2, 12, noExtra(func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.fetch()))
	}))
	s[0xE2] = instr("LD (C),A", 1, 8, noExtra(func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.C), c.A)
	}))
	s[0xF2] = instr("LD A,(C)", 1, 8, noExtra(func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.C))
	}))

	// LD (a16),A / LD A,(a16)
	s[0xEA] = instr("LD (a16),A", 3, 16, noExtra(func(c *CPU) { c.writeByte(c.fetch16(), c.A) }))
	s[0xFA] = instr("LD A,(a16)", 3, 16, noExtra(func(c *CPU) { c.A = c.readByte(c.fetch16()) }))

	// LD (BC),A / LD A,(BC) / LD (DE),A / LD A,(DE)
	s[0x02] = instr("LD (BC),A", 1, 8, noExtra(func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) }))
	s[0x0A] = instr("LD A,(BC)", 1, 8, noExtra(func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) }))
	s[0x12] = instr("LD (DE),A", 1, 8, noExtra(func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) }))
	s[0x1A] = instr("LD A,(DE)", 1, 8, noExtra(func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) }))

	// LD (HL+),A / LD A,(HL+) / LD (HL-),A / LD A,(HL-)
	s[0x22] = instr("LD (HL+),A", 1, 8, noExtra(func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() + 1)
	}))
	s[0x2A] = instr("LD A,(HL+)", 1, 8, noExtra(func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	}))
	s[0x32] = instr("LD (HL-),A", 1, 8, noExtra(func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() - 1)
	}))
	s[0x3A] = instr("LD A,(HL-)", 1, 8, noExtra(func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	}))

	// SP-relative forms
	s[0xE8] = instr("ADD SP,r8", 2, 16, noExtra(func(c *CPU) {
		c.SP = c.addSPSigned(int8(c.fetch()))
	}))
	s[0xF8] = instr("LD HL,SP+r8", 2, 12, noExtra(func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned(int8(c.fetch())))
	}))
	s[0xF9] = instr("LD SP,HL", 1, 8, noExtra(func(c *CPU) { c.SP = c.HL.Uint16() }))
}

// buildLoadGroup fills 0x40-0x7F, the 64 LD r,r' register-to-register
// loads, by decoding the destination from bits 5-3 and the source from
// bits 2-0. 0x76 (dst=6,src=6) is HALT and was set separately.
func buildLoadGroup() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 | dst<<3 | src
			if opcode == 0x76 {
				continue
			}
			d, s := dst, src
			cycles := uint8(4)
			if d == 6 || s == 6 {
				cycles = 8
			}
			InstructionSet[opcode] = instr("LD r,r'", 1, cycles, noExtra(func(c *CPU) {
				c.writeOperand8(d, c.readOperand8(s))
			}))
		}
	}

	// LD r,d8 (0x06 + 8*r) and INC/DEC r (0x04/0x05 + 8*r)
	for r := uint8(0); r < 8; r++ {
		reg := r
		cycles := uint8(8)
		if reg == 6 {
			cycles = 12
		}
		InstructionSet[0x06|reg<<3] = instr("LD r,d8", 2, cycles, noExtra(func(c *CPU) {
			c.writeOperand8(reg, c.fetch())
		}))

		incCycles, decCycles := uint8(4), uint8(4)
		if reg == 6 {
			incCycles, decCycles = 12, 12
		}
		InstructionSet[0x04|reg<<3] = instr("INC r", 1, incCycles, noExtra(func(c *CPU) {
			c.writeOperand8(reg, c.inc8(c.readOperand8(reg)))
		}))
		InstructionSet[0x05|reg<<3] = instr("DEC r", 1, decCycles, noExtra(func(c *CPU) {
			c.writeOperand8(reg, c.dec8(c.readOperand8(reg)))
		}))
	}
}

// buildALUGroup fills 0x80-0xBF (ALU A,r, 8 ops x 8 registers) and their
// immediate counterparts 0xC6/CE/D6/DE/E6/EE/F6/FE.
func buildALUGroup() {
	ops := []func(c *CPU, operand uint8){
		func(c *CPU, v uint8) { c.A = c.add8(c.A, v, false) },
		func(c *CPU, v uint8) { c.A = c.add8(c.A, v, true) },
		func(c *CPU, v uint8) { c.A = c.sub8(c.A, v, false) },
		func(c *CPU, v uint8) { c.A = c.sub8(c.A, v, true) },
		func(c *CPU, v uint8) { c.A = c.and8(c.A, v) },
		func(c *CPU, v uint8) { c.A = c.xor8(c.A, v) },
		func(c *CPU, v uint8) { c.A = c.or8(c.A, v) },
		func(c *CPU, v uint8) { c.sub8(c.A, v, false) }, // CP: discard result
	}
	names := []string{"ADD A,r", "ADC A,r", "SUB r", "SBC A,r", "AND r", "XOR r", "OR r", "CP r"}
	immNames := []string{"ADD A,d8", "ADC A,d8", "SUB d8", "SBC A,d8", "AND d8", "XOR d8", "OR d8", "CP d8"}
	immOpcodes := []uint8{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}

	for op := uint8(0); op < 8; op++ {
		apply := ops[op]
		for r := uint8(0); r < 8; r++ {
			reg := r
			opcode := 0x80 | op<<3 | reg
			cycles := uint8(4)
			if reg == 6 {
				cycles = 8
			}
			InstructionSet[opcode] = instr(names[op], 1, cycles, noExtra(func(c *CPU) {
				apply(c, c.readOperand8(reg))
			}))
		}
		InstructionSet[immOpcodes[op]] = instr(immNames[op], 2, 8, noExtra(func(c *CPU) {
			apply(c, c.fetch())
		}))
	}
}

// build16BitGroup fills the LD rr,d16 / INC rr / DEC rr / ADD HL,rr
// families, one loop over the 2-bit BC/DE/HL/SP selector.
func build16BitGroup() {
	for sel := uint8(0); sel < 4; sel++ {
		selector := sel
		base := selector << 4

		InstructionSet[0x01|base] = instr("LD rr,d16", 3, 12, noExtra(func(c *CPU) {
			c.setRPGroup1(selector, c.fetch16())
		}))
		InstructionSet[0x03|base] = instr("INC rr", 1, 8, noExtra(func(c *CPU) {
			c.setRPGroup1(selector, c.rpGroup1(selector)+1)
		}))
		InstructionSet[0x0B|base] = instr("DEC rr", 1, 8, noExtra(func(c *CPU) {
			c.setRPGroup1(selector, c.rpGroup1(selector)-1)
		}))
		InstructionSet[0x09|base] = instr("ADD HL,rr", 1, 8, noExtra(func(c *CPU) {
			c.addHL(c.rpGroup1(selector))
		}))
	}
}

// buildStackGroup fills PUSH rr / POP rr (BC/DE/HL/AF).
func buildStackGroup() {
	for sel := uint8(0); sel < 4; sel++ {
		selector := sel
		base := selector << 4
		InstructionSet[0xC1|base] = instr("POP rr", 1, 12, noExtra(func(c *CPU) {
			c.setRPGroup2(selector, c.pop16())
		}))
		InstructionSet[0xC5|base] = instr("PUSH rr", 1, 16, noExtra(func(c *CPU) {
			c.push16(c.rpGroup2(selector))
		}))
	}
}
