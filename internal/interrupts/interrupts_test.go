package interrupts

import "testing"

func TestNewControllerStartsWithIMEEnabled(t *testing.T) {
	c := NewController()
	if !c.IME {
		t.Fatal("expected IME true at power-on")
	}
}

func TestVectorResolvesHighestPriorityPending(t *testing.T) {
	c := NewController()
	c.Enable = 0x1F
	c.Request(TimerFlag)
	c.Request(VBlankFlag)

	addr, flag, ok := c.Vector()
	if !ok {
		t.Fatal("expected a pending interrupt")
	}
	if addr != VBlank || flag != VBlankFlag {
		t.Fatalf("expected VBlank to win priority, got addr=%#04x flag=%d", addr, flag)
	}
}

func TestPendingIgnoresDisabledInterrupts(t *testing.T) {
	c := NewController()
	c.Request(VBlankFlag)
	if c.Pending() {
		t.Fatal("expected Pending false when the source isn't enabled in IE")
	}
}

func TestClearAcknowledgesFlag(t *testing.T) {
	c := NewController()
	c.Enable = 0x1F
	c.Request(VBlankFlag)
	c.Clear(VBlankFlag)
	if c.Pending() {
		t.Fatal("expected Pending false after Clear")
	}
}
