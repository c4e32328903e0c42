// Package cpu implements the Sharp LR35902 instruction interpreter: the
// register file, the flag register, and the fetch/decode/execute loop
// driving the two 256-entry opcode metadata tables.
package cpu

import (
	"fmt"

	"github.com/nollsbane/lr35902/internal/interrupts"
	"github.com/sirupsen/logrus"
)

// ClockSpeed is the LR35902's nominal clock speed in Hz.
const ClockSpeed = 4194304

// Bus is the memory the CPU fetches instructions from and dispatches
// loads/stores to, and whose clock it advances with Tick. It is kept this
// small so a test can satisfy it with a flat 64 KiB array.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Tick(cycles int)
}

type mode uint8

const (
	modeNormal mode = iota
	modeHalt
	modeStop
	modeHaltBug
)

// CPU is the LR35902 register file and execution engine.
type CPU struct {
	PC uint16
	SP uint16
	Registers

	bus Bus
	irq *interrupts.Controller
	log logrus.FieldLogger

	mode mode

	// imeEnableDelay counts down the Steps remaining before a pending EI
	// takes effect; see the comment in Step.
	imeEnableDelay int

	currentCycles int

	// Trace, when non-nil, is called immediately before each fetched
	// instruction executes.
	Trace func(pc uint16, entry InstructionMeta)

	// Abort is called when the CPU hits an unimplemented or illegal
	// opcode, after the fatal register dump has been logged. Tests may
	// override it to avoid terminating the process.
	Abort func()
}

// New constructs a CPU wired to bus and irq, with power-on register state:
// PC = 0x0100, all other registers zero. IME itself is owned by irq, which
// starts enabled to match power-on state.
func New(bus Bus, irq *interrupts.Controller, log logrus.FieldLogger) *CPU {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &CPU{
		PC:  0x0100,
		bus: bus,
		irq: irq,
		log: log,
		Abort: func() {
			logrus.Exit(1)
		},
	}
	c.AF = &RegisterPair{&c.A, &c.F}
	c.BC = &RegisterPair{&c.B, &c.C}
	c.DE = &RegisterPair{&c.D, &c.E}
	c.HL = &RegisterPair{&c.H, &c.L}
	return c
}

// Step executes one instruction (or one parked cycle while halted/stopped),
// then services at most one pending interrupt, and returns the number of
// T-cycles consumed.
func (c *CPU) Step() int {
	c.currentCycles = 0

	switch c.mode {
	case modeHalt, modeStop:
		c.tick(4)
		if c.irq.Pending() {
			c.mode = modeNormal
		}
	case modeHaltBug:
		// the halt bug re-reads the same opcode without advancing PC
		opcode := c.fetchNoAdvance()
		c.execute(opcode)
		c.mode = modeNormal
	default:
		opcode := c.fetch()
		c.execute(opcode)
	}

	// EI's effect is delayed by one full instruction: imeEnableDelay is
	// set to 2 when EI executes, decremented once per Step, and flips
	// IME true when it reaches zero — i.e. after the instruction
	// following EI has itself completed, not EI's own instruction.
	if c.imeEnableDelay > 0 {
		c.imeEnableDelay--
		if c.imeEnableDelay == 0 {
			c.irq.IME = true
		}
	}

	if c.irq.IME && c.irq.Pending() {
		c.serviceInterrupt()
	}

	return c.currentCycles
}

func (c *CPU) fetch() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchNoAdvance() uint8 {
	return c.bus.Read(c.PC)
}

func (c *CPU) skipOperand() {
	c.PC++
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

func (c *CPU) readByte(addr uint16) uint8 {
	return c.bus.Read(addr)
}

func (c *CPU) writeByte(addr uint16, value uint8) {
	c.bus.Write(addr, value)
}

func (c *CPU) push16(value uint16) {
	c.SP--
	c.writeByte(c.SP, uint8(value>>8))
	c.SP--
	c.writeByte(c.SP, uint8(value))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.readByte(c.SP))
	c.SP++
	hi := uint16(c.readByte(c.SP))
	c.SP++
	return hi<<8 | lo
}

// tick advances the bus clock and this step's cycle counter together; all
// instruction executors account for their own timing through this method
// so Step's return value always matches what the bus observed.
func (c *CPU) tick(cycles int) {
	c.bus.Tick(cycles)
	c.currentCycles += cycles
}

func (c *CPU) execute(opcode uint8) {
	var entry InstructionMeta
	if opcode == 0xCB {
		entry = InstructionSetCB[c.fetch()]
	} else {
		entry = InstructionSet[opcode]
	}

	if c.Trace != nil {
		c.Trace(c.PC-1, entry)
	}

	if entry.fn == nil {
		c.fatal(opcode)
		return
	}

	extra := entry.fn(c)
	c.tick(int(entry.Cycles) + extra)
}

// fatal logs a register dump and aborts on an unimplemented or illegal
// opcode, matching the "no silent wraparound" contract: an unknown opcode
// is a hard stop, never treated as a NOP.
func (c *CPU) fatal(opcode uint8) {
	c.log.WithFields(logrus.Fields{
		"opcode": fmt.Sprintf("%#02x", opcode),
		"pc":     fmt.Sprintf("%#04x", c.PC-1),
		"a":      fmt.Sprintf("%#02x", c.A),
		"f":      fmt.Sprintf("%#02x", c.F),
		"b":      fmt.Sprintf("%#02x", c.B),
		"c":      fmt.Sprintf("%#02x", c.C),
		"d":      fmt.Sprintf("%#02x", c.D),
		"e":      fmt.Sprintf("%#02x", c.E),
		"h":      fmt.Sprintf("%#02x", c.H),
		"l":      fmt.Sprintf("%#02x", c.L),
		"sp":     fmt.Sprintf("%#04x", c.SP),
	}).Error("cpu: unimplemented or illegal opcode")
	if c.Abort != nil {
		c.Abort()
	}
}

// serviceInterrupt pushes PC, jumps to the highest-priority pending
// vector, clears IME, and acknowledges the serviced flag. The whole
// sequence costs 20 cycles (5 machine cycles).
func (c *CPU) serviceInterrupt() {
	vector, flag, ok := c.irq.Vector()
	if !ok {
		return
	}

	c.mode = modeNormal
	c.push16(c.PC)
	c.PC = vector
	c.irq.IME = false
	c.irq.Clear(flag)
	c.tick(20)
}

// halt parks the CPU until an enabled interrupt flag is raised. If IME is
// disabled and an interrupt is already pending, the classic HALT-bug
// behavior is triggered: the next opcode fetch does not advance PC, so it
// is executed twice.
func (c *CPU) halt() {
	if !c.irq.IME && c.irq.Pending() {
		c.mode = modeHaltBug
		return
	}
	c.mode = modeHalt
}

func (c *CPU) stop() {
	c.mode = modeStop
}

func (c *CPU) enableIME() {
	c.imeEnableDelay = 2
}

func (c *CPU) disableIME() {
	c.irq.IME = false
	c.imeEnableDelay = 0
}
