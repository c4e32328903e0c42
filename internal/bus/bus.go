// Package bus implements the LR35902 address space: it dispatches every
// CPU-visible read and write across the cartridge, work RAM, the I/O
// register block, high RAM, and the interrupt enable register.
package bus

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/nollsbane/lr35902/internal/cartridge"
	"github.com/nollsbane/lr35902/internal/interrupts"
	"github.com/nollsbane/lr35902/internal/joypad"
	"github.com/nollsbane/lr35902/internal/timer"
	"github.com/sirupsen/logrus"
)

// Address-space boundaries, per the LR35902 memory map.
const (
	romEnd      = 0x8000
	vramStart   = 0x8000
	vramEnd     = 0xA000
	extRAMStart = 0xA000
	extRAMEnd   = 0xC000
	wramStart   = 0xC000
	wramEnd     = 0xE000
	echoStart   = 0xE000
	echoEnd     = 0xFE00
	oamStart    = 0xFE00
	oamEnd      = 0xFEA0
	unusedStart = 0xFEA0
	unusedEnd   = 0xFF00
	ioStart     = 0xFF00
	ioEnd       = 0xFF80
	hramStart   = 0xFF80
	hramEnd     = 0xFFFF
	ieRegister  = 0xFFFF
)

// Bus is the Cartridge plus every fixed memory region and I/O register a
// CPU can address.
type Bus struct {
	cart *cartridge.Cartridge

	vram [vramEnd - vramStart]byte
	wram [wramEnd - wramStart]byte
	oam  [oamEnd - oamStart]byte
	hram [hramEnd - hramStart]byte

	Interrupts *interrupts.Controller
	Timer      *timer.Controller
	Joypad     *joypad.State

	log logrus.FieldLogger
}

// New constructs a Bus over cart, with its own Interrupts/Timer/Joypad
// controllers wired together.
func New(cart *cartridge.Cartridge, log logrus.FieldLogger) *Bus {
	if log == nil {
		log = logrus.StandardLogger()
	}
	irq := interrupts.NewController()
	return &Bus{
		cart:       cart,
		Interrupts: irq,
		Timer:      timer.NewController(irq),
		Joypad:     joypad.New(),
		log:        log,
	}
}

// Tick advances the Timer (and transitively, the Timer interrupt) by
// cycles T-cycles. The CPU calls this once per instruction.
func (b *Bus) Tick(cycles int) {
	b.Timer.Tick(cycles)
}

// SetJoypadState sets which buttons are currently pressed, for a host
// frontend (or a test) to drive.
func (b *Bus) SetJoypadState(mask byte) {
	b.Joypad.SetPressed(mask)
}

// Read returns the byte visible to the CPU at address.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address < romEnd:
		return b.cart.Read(address)
	case address < vramEnd:
		return b.vram[address-vramStart]
	case address < extRAMEnd:
		return b.cart.Read(address)
	case address < wramEnd:
		return b.wram[address-wramStart]
	case address < echoEnd:
		return b.wram[address-echoStart]
	case address < oamEnd:
		return b.oam[address-oamStart]
	case address < unusedEnd:
		b.log.Trace("bus: read from unusable memory region")
		return 0xFF
	case address == ieRegister:
		return b.Interrupts.Read(address)
	case address < ioEnd:
		return b.readIO(address)
	default:
		return b.hram[address-hramStart]
	}
}

// Write stores value at the address visible to the CPU.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < romEnd:
		b.cart.Write(address, value)
	case address < vramEnd:
		b.vram[address-vramStart] = value
	case address < extRAMEnd:
		b.cart.Write(address, value)
	case address < wramEnd:
		b.wram[address-wramStart] = value
	case address < echoEnd:
		b.wram[address-echoStart] = value
	case address < oamEnd:
		b.oam[address-oamStart] = value
	case address < unusedEnd:
		// writes to the unusable region are silently dropped
	case address == ieRegister:
		b.Interrupts.Write(address, value)
	case address < ioEnd:
		b.writeIO(address, value)
	default:
		b.hram[address-hramStart] = value
	}
}

func (b *Bus) readIO(address uint16) uint8 {
	switch {
	case address == 0xFF00:
		return b.Joypad.Read()
	case address >= 0xFF04 && address <= 0xFF07:
		return b.Timer.Read(address)
	case address == interrupts.FlagRegister:
		return b.Interrupts.Read(address)
	default:
		return 0xFF
	}
}

func (b *Bus) writeIO(address uint16, value uint8) {
	switch {
	case address == 0xFF00:
		b.Joypad.Write(value)
	case address >= 0xFF04 && address <= 0xFF07:
		b.Timer.Write(address, value)
	case address == interrupts.FlagRegister:
		b.Interrupts.Write(address, value)
	}
}

// state is the gob-serializable snapshot of the Bus's memory regions,
// interrupt registers and cartridge RAM. Timer, joypad and cartridge
// bank-register state are not part of it.
type state struct {
	VRAM            []byte
	WRAM            []byte
	OAM             []byte
	HRAM            []byte
	InterruptFlag   uint8
	InterruptEnable uint8
	IME             bool
	CartRAM         []byte
}

// Save encodes the Bus state described by state, gzip-compressed, to w.
func (b *Bus) Save(w io.Writer) error {
	s := state{
		VRAM:            append([]byte(nil), b.vram[:]...),
		WRAM:            append([]byte(nil), b.wram[:]...),
		OAM:             append([]byte(nil), b.oam[:]...),
		HRAM:            append([]byte(nil), b.hram[:]...),
		InterruptFlag:   b.Interrupts.Flag,
		InterruptEnable: b.Interrupts.Enable,
		IME:             b.Interrupts.IME,
		CartRAM:         b.cart.SaveRAM(),
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(s); err != nil {
		return fmt.Errorf("bus: encoding state: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("bus: compressing state: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Load restores Bus state previously written by Save.
func (b *Bus) Load(r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("bus: decompressing state: %w", err)
	}
	defer gz.Close()

	var s state
	if err := gob.NewDecoder(gz).Decode(&s); err != nil {
		return fmt.Errorf("bus: decoding state: %w", err)
	}

	copy(b.vram[:], s.VRAM)
	copy(b.wram[:], s.WRAM)
	copy(b.oam[:], s.OAM)
	copy(b.hram[:], s.HRAM)
	b.Interrupts.Flag = s.InterruptFlag
	b.Interrupts.Enable = s.InterruptEnable
	b.Interrupts.IME = s.IME
	b.cart.LoadRAM(s.CartRAM)
	return nil
}
