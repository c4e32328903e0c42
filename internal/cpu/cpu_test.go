package cpu

import (
	"testing"

	"github.com/nollsbane/lr35902/internal/interrupts"
)

// flatBus is a 64 KiB flat-array test double satisfying the Bus
// interface without any address-space dispatch logic.
type flatBus struct {
	mem [0x10000]byte
}

func (b *flatBus) Read(address uint16) uint8         { return b.mem[address] }
func (b *flatBus) Write(address uint16, value uint8)  { b.mem[address] = value }
func (b *flatBus) Tick(cycles int)                    {}

func newTestCPU() (*CPU, *flatBus) {
	bus := &flatBus{}
	irq := interrupts.NewController()
	c := New(bus, irq, nil)
	c.Abort = func() { panic("cpu: fatal") }
	return c, bus
}

func loadAt(bus *flatBus, addr uint16, bytes ...uint8) {
	for i, b := range bytes {
		bus.mem[int(addr)+i] = b
	}
}

func TestAbsoluteJump(t *testing.T) {
	c, bus := newTestCPU()
	loadAt(bus, 0x0100, 0xC3, 0x50, 0x01) // JP 0x0150
	cycles := c.Step()
	if c.PC != 0x0150 {
		t.Fatalf("expected PC=0x0150, got %#04x", c.PC)
	}
	if cycles != 16 {
		t.Fatalf("expected 16 cycles, got %d", cycles)
	}
}

func TestDI(t *testing.T) {
	c, bus := newTestCPU()
	c.irq.IME = true
	loadAt(bus, 0x0100, 0xF3) // DI
	c.Step()
	if c.irq.IME {
		t.Fatal("expected IME cleared immediately after DI")
	}
}

func TestEIDelay(t *testing.T) {
	c, bus := newTestCPU()
	c.irq.IME = false
	loadAt(bus, 0x0100, 0xFB, 0x00) // EI; NOP
	c.Step()                       // executes EI
	if c.irq.IME {
		t.Fatal("expected IME still false immediately after EI")
	}
	c.Step() // executes the NOP following EI
	if !c.irq.IME {
		t.Fatal("expected IME true after the instruction following EI")
	}
}

func TestEIThenDILeavesIMEFalse(t *testing.T) {
	c, bus := newTestCPU()
	c.irq.IME = false
	loadAt(bus, 0x0100, 0xFB, 0xF3) // EI; DI
	c.Step()                       // EI
	c.Step()                       // DI executes before EI's delayed enable lands
	if c.irq.IME {
		t.Fatal("expected DI to win over a pending EI")
	}
}

func TestLoad16BitImmediate(t *testing.T) {
	c, bus := newTestCPU()
	loadAt(bus, 0x0100, 0x21, 0x34, 0x12) // LD HL,0x1234
	c.Step()
	if c.HL.Uint16() != 0x1234 {
		t.Fatalf("expected HL=0x1234, got %#04x", c.HL.Uint16())
	}
}

func TestAddHalfCarry(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x0F
	loadAt(bus, 0x0100, 0xC6, 0x01) // ADD A,0x01
	c.Step()
	if c.A != 0x10 {
		t.Fatalf("expected A=0x10, got %#02x", c.A)
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Fatal("expected half-carry flag set")
	}
}

func TestCBRLCSweep(t *testing.T) {
	c, bus := newTestCPU()
	c.B = 0x80
	loadAt(bus, 0x0100, 0xCB, 0x00) // RLC B
	c.Step()
	if c.B != 0x01 {
		t.Fatalf("expected B=0x01 after RLC, got %#02x", c.B)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Fatal("expected carry flag set from the old bit 7")
	}
}

func TestInterruptPriorityOrder(t *testing.T) {
	c, bus := newTestCPU()
	c.irq.IME = true
	c.irq.Enable = 0x1F
	c.irq.Request(interrupts.TimerFlag)
	c.irq.Request(interrupts.VBlankFlag)
	loadAt(bus, 0x0100, 0x00) // NOP
	c.Step()
	if c.PC != interrupts.VBlank {
		t.Fatalf("expected VBlank serviced first, PC=%#04x", c.PC)
	}
}

func TestHaltWakesOnPendingInterrupt(t *testing.T) {
	c, bus := newTestCPU()
	c.irq.IME = false
	c.irq.Enable = 0x01
	loadAt(bus, 0x0100, 0x76) // HALT
	c.Step()
	if c.mode != modeHalt && c.mode != modeHaltBug {
		t.Fatalf("expected CPU parked after HALT, mode=%v", c.mode)
	}
	c.irq.Request(interrupts.VBlankFlag)
	c.Step()
	if c.mode != modeNormal {
		t.Fatal("expected HALT to release once an enabled interrupt is pending")
	}
}

func TestUnimplementedOpcodeAborts(t *testing.T) {
	c, bus := newTestCPU()
	aborted := false
	c.Abort = func() { aborted = true }
	loadAt(bus, 0x0100, 0xD3) // illegal opcode
	c.Step()
	if !aborted {
		t.Fatal("expected Abort to be called on an illegal opcode")
	}
}
