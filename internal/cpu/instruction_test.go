package cpu

import "testing"

func TestCBTableFullyPopulated(t *testing.T) {
	for i := 0; i < 256; i++ {
		if InstructionSetCB[i].fn == nil {
			t.Fatalf("CB opcode %#02x has no executor", i)
		}
	}
}

func TestIllegalPrimaryOpcodesAreUnset(t *testing.T) {
	illegal := []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}
	for _, op := range illegal {
		if InstructionSet[op].fn != nil {
			t.Fatalf("expected opcode %#02x to be unimplemented", op)
		}
	}
}

func TestCBRegisterSelectorSixRoutesToMemory(t *testing.T) {
	c, bus := newTestCPU()
	c.HL.SetUint16(0xC000)
	bus.mem[0xC000] = 0x80
	loadAt(bus, 0x0100, 0xCB, 0x06) // RLC (HL)
	c.Step()
	if bus.mem[0xC000] != 0x01 {
		t.Fatalf("expected memory at HL to be rotated, got %#02x", bus.mem[0xC000])
	}
}

func TestHaltOpcodeNotInLoadGroup(t *testing.T) {
	if InstructionSet[0x76].Name != "HALT" {
		t.Fatalf("expected opcode 0x76 to be HALT, got %q", InstructionSet[0x76].Name)
	}
}

func TestALUImmediateOpcodesMatchRegisterForms(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x01
	loadAt(bus, 0x0100, 0xC6, 0x01) // ADD A,0x01
	c.Step()
	if c.A != 0x02 {
		t.Fatalf("expected A=0x02, got %#02x", c.A)
	}
}
