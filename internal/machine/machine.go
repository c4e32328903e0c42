// Package machine composes a Cartridge, Bus, and CPU into a runnable
// Game Boy core and owns the top-level power-on, run, and save-state
// lifecycle.
package machine

import (
	"bytes"
	"context"
	"fmt"

	"github.com/nollsbane/lr35902/internal/bus"
	"github.com/nollsbane/lr35902/internal/cartridge"
	"github.com/nollsbane/lr35902/internal/cpu"
	"github.com/sirupsen/logrus"
)

// Machine is a complete, runnable core: one Cartridge, one Bus, one CPU.
type Machine struct {
	Cart *cartridge.Cartridge
	Bus  *bus.Bus
	CPU  *cpu.CPU

	log logrus.FieldLogger
}

// PowerOn constructs a Machine around cart with power-on register state.
func PowerOn(cart *cartridge.Cartridge, log logrus.FieldLogger) *Machine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	b := bus.New(cart, log)
	c := cpu.New(b, b.Interrupts, log)
	return &Machine{Cart: cart, Bus: b, CPU: c, log: log}
}

// LoadGame replaces the running Machine's cartridge and powers the Machine
// back on around it: the CPU and Bus are rebuilt with power-on state, so
// registers and RAM contents are not kept. Returns an error if rom fails
// to parse; the Machine is left unchanged in that case.
func (m *Machine) LoadGame(rom []byte) error {
	cart, err := cartridge.LoadFromBuffer(rom)
	if err != nil {
		return fmt.Errorf("machine: loading cartridge: %w", err)
	}
	fresh := PowerOn(cart, m.log)
	m.Cart = fresh.Cart
	m.Bus = fresh.Bus
	m.CPU = fresh.CPU
	return nil
}

// Run steps the CPU until ctx is canceled, returning ctx.Err(). Checking
// cancellation is the Machine's only concurrency primitive; the loop
// itself is single-threaded and synchronous.
func (m *Machine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			m.CPU.Step()
		}
	}
}

// SaveState gob-encodes the CPU registers, uncompressed, followed by the
// Bus's own gzip-compressed gob stream (Bus memory, interrupt registers
// and Cartridge RAM), into a single byte slice. This is a
// structural round-trip for debugging and testing convenience, not a
// documented or stable external file format.
func (m *Machine) SaveState() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Bus.Save(&buf); err != nil {
		return nil, fmt.Errorf("machine: saving state: %w", err)
	}
	cpuState := cpuSnapshot{
		A: m.CPU.A, F: m.CPU.F, B: m.CPU.B, C: m.CPU.C,
		D: m.CPU.D, E: m.CPU.E, H: m.CPU.H, L: m.CPU.L,
		SP: m.CPU.SP, PC: m.CPU.PC,
	}
	header := encodeCPUSnapshot(cpuState)
	return append(header, buf.Bytes()...), nil
}

// LoadState restores a snapshot previously produced by SaveState.
func (m *Machine) LoadState(data []byte) error {
	cpuState, rest, err := decodeCPUSnapshot(data)
	if err != nil {
		return fmt.Errorf("machine: loading state: %w", err)
	}
	if err := m.Bus.Load(bytes.NewReader(rest)); err != nil {
		return fmt.Errorf("machine: loading state: %w", err)
	}
	m.CPU.A, m.CPU.F = cpuState.A, cpuState.F
	m.CPU.B, m.CPU.C = cpuState.B, cpuState.C
	m.CPU.D, m.CPU.E = cpuState.D, cpuState.E
	m.CPU.H, m.CPU.L = cpuState.H, cpuState.L
	m.CPU.SP, m.CPU.PC = cpuState.SP, cpuState.PC
	return nil
}
