package cpu

import "testing"

func TestAdd8Carry(t *testing.T) {
	c := &CPU{}
	result := c.add8(0xFF, 0x01, false)
	if result != 0x00 {
		t.Fatalf("expected wraparound to 0, got %#02x", result)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Fatal("expected carry flag set")
	}
	if !c.isFlagSet(FlagZero) {
		t.Fatal("expected zero flag set")
	}
}

func TestAdc8IncludesIncomingCarry(t *testing.T) {
	c := &CPU{}
	c.setFlag(FlagCarry)
	result := c.add8(0x01, 0x01, true)
	if result != 0x03 {
		t.Fatalf("expected 0x03, got %#02x", result)
	}
}

func TestSub8Borrow(t *testing.T) {
	c := &CPU{}
	result := c.sub8(0x00, 0x01, false)
	if result != 0xFF {
		t.Fatalf("expected 0xFF, got %#02x", result)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Fatal("expected carry (borrow) flag set")
	}
	if !c.isFlagSet(FlagSubtract) {
		t.Fatal("expected subtract flag set")
	}
}

func TestIncDecPreserveCarry(t *testing.T) {
	c := &CPU{}
	c.setFlag(FlagCarry)
	c.inc8(0x01)
	if !c.isFlagSet(FlagCarry) {
		t.Fatal("expected INC to leave carry untouched")
	}
	c.dec8(0x01)
	if !c.isFlagSet(FlagCarry) {
		t.Fatal("expected DEC to leave carry untouched")
	}
}

func TestAddHLLeavesZeroUntouched(t *testing.T) {
	c := &CPU{}
	c.BC = &RegisterPair{&c.B, &c.C}
	c.HL = &RegisterPair{&c.H, &c.L}
	c.setFlag(FlagZero)
	c.HL.SetUint16(0x0F00)
	c.BC.SetUint16(0x0100)
	c.addHL(c.BC.Uint16())
	if !c.isFlagSet(FlagZero) {
		t.Fatal("expected ADD HL,rr to leave the zero flag untouched")
	}
}

func TestDAAAfterBCDAdd(t *testing.T) {
	c := &CPU{}
	c.A = c.add8(0x09, 0x01, false) // 0x0A, half-carry clear, low nibble > 9
	c.daa()
	if c.A != 0x10 {
		t.Fatalf("expected BCD-adjusted 0x10, got %#02x", c.A)
	}
}
