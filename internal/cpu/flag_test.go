package cpu

import "testing"

func TestFlagSetClear(t *testing.T) {
	c := &CPU{}
	c.setFlag(FlagZero)
	if !c.isFlagSet(FlagZero) {
		t.Fatal("expected FlagZero set")
	}
	c.clearFlag(FlagZero)
	if c.isFlagSet(FlagZero) {
		t.Fatal("expected FlagZero cleared")
	}
}

func TestFlagLowNibbleAlwaysZero(t *testing.T) {
	c := &CPU{}
	c.F = 0xFF
	c.setFlag(FlagCarry)
	if c.F&0x0F != 0 {
		t.Fatalf("expected low nibble of F to stay zero, got %#02x", c.F)
	}
}

func TestShouldZeroFlag(t *testing.T) {
	c := &CPU{}
	c.shouldZeroFlag(0)
	if !c.isFlagSet(FlagZero) {
		t.Fatal("expected zero flag set for a zero result")
	}
	c.shouldZeroFlag(1)
	if c.isFlagSet(FlagZero) {
		t.Fatal("expected zero flag cleared for a nonzero result")
	}
}
