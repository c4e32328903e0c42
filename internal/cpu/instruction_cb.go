package cpu

// InstructionSetCB is the CB-prefixed 256-entry opcode table: 8 rotate/
// shift/swap ops over the 8 register slots (0x00-0x3F), then BIT/RES/SET
// over all 8 bits x 8 register slots (0x40-0xFF). Every slot is defined;
// there are no illegal CB opcodes.
var InstructionSetCB [256]InstructionMeta

func init() {
	buildCBRotateShiftGroup()
	buildCBBitGroup()
}

func buildCBRotateShiftGroup() {
	ops := []func(c *CPU, v uint8) uint8{
		(*CPU).rlc,
		(*CPU).rrc,
		(*CPU).rl,
		(*CPU).rr,
		(*CPU).sla,
		(*CPU).sra,
		(*CPU).swap,
		(*CPU).srl,
	}
	names := []string{"RLC r", "RRC r", "RL r", "RR r", "SLA r", "SRA r", "SWAP r", "SRL r"}

	for op := uint8(0); op < 8; op++ {
		apply := ops[op]
		for r := uint8(0); r < 8; r++ {
			reg := r
			opcode := op<<3 | reg
			cycles := uint8(8)
			if reg == 6 {
				cycles = 16
			}
			InstructionSetCB[opcode] = instr(names[op], 2, cycles, noExtra(func(c *CPU) {
				c.writeOperand8(reg, apply(c, c.readOperand8(reg)))
			}))
		}
	}
}

// buildCBBitGroup fills 0x40-0xFF: BIT b,r / RES b,r / SET b,r, decoded
// from bits 7-6 (operation), bits 5-3 (bit index) and bits 2-0 (register).
func buildCBBitGroup() {
	for group := uint8(0); group < 3; group++ { // 0=BIT,1=RES,2=SET
		for bit := uint8(0); bit < 8; bit++ {
			b := bit
			for r := uint8(0); r < 8; r++ {
				reg := r
				opcode := (0x40 + group*0x40) | bit<<3 | reg

				switch group {
				case 0:
					cycles := uint8(8)
					if reg == 6 {
						cycles = 12
					}
					InstructionSetCB[opcode] = instr("BIT b,r", 2, cycles, noExtra(func(c *CPU) {
						c.testBit(c.readOperand8(reg), b)
					}))
				case 1:
					cycles := uint8(8)
					if reg == 6 {
						cycles = 16
					}
					InstructionSetCB[opcode] = instr("RES b,r", 2, cycles, noExtra(func(c *CPU) {
						c.writeOperand8(reg, resetBit(c.readOperand8(reg), b))
					}))
				case 2:
					cycles := uint8(8)
					if reg == 6 {
						cycles = 16
					}
					InstructionSetCB[opcode] = instr("SET b,r", 2, cycles, noExtra(func(c *CPU) {
						c.writeOperand8(reg, setBit(c.readOperand8(reg), b))
					}))
				}
			}
		}
	}
}
