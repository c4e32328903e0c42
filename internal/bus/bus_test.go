package bus

import (
	"bytes"
	"testing"

	"github.com/nollsbane/lr35902/internal/cartridge"
)

func newTestBus() *Bus {
	return New(cartridge.Empty(), nil)
}

func TestWRAMEchoMirror(t *testing.T) {
	b := newTestBus()
	b.Write(0xC010, 0x42)
	if got := b.Read(0xE010); got != 0x42 {
		t.Fatalf("expected echo region to mirror WRAM, got %#02x", got)
	}
}

func TestUnusableRegionReadsFF(t *testing.T) {
	b := newTestBus()
	if got := b.Read(0xFEA0); got != 0xFF {
		t.Fatalf("expected 0xFF from the unusable region, got %#02x", got)
	}
}

func TestUnusableRegionWritesAreDropped(t *testing.T) {
	b := newTestBus()
	b.Write(0xFEA0, 0x55)
	if got := b.Read(0xFEA0); got != 0xFF {
		t.Fatalf("expected write to unusable region to be ignored, got %#02x", got)
	}
}

func TestHRAMRoundTrip(t *testing.T) {
	b := newTestBus()
	b.Write(0xFF80, 0x99)
	if got := b.Read(0xFF80); got != 0x99 {
		t.Fatalf("expected 0x99, got %#02x", got)
	}
}

func TestInterruptEnableAtTopOfAddressSpace(t *testing.T) {
	b := newTestBus()
	b.Write(0xFFFF, 0x1F)
	if got := b.Read(0xFFFF); got != 0x1F {
		t.Fatalf("expected IE register to round-trip, got %#02x", got)
	}
}

func TestTimerReachableThroughBus(t *testing.T) {
	b := newTestBus()
	b.Write(0xFF06, 0x10) // TMA
	if got := b.Read(0xFF06); got != 0x10 {
		t.Fatalf("expected TMA to round-trip through the bus, got %#02x", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	b := newTestBus()
	b.Write(0xC000, 0xAB)
	b.Write(0xFF0F, 0x01)

	var buf bytes.Buffer
	if err := b.Save(&buf); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	fresh := newTestBus()
	if err := fresh.Load(&buf); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if got := fresh.Read(0xC000); got != 0xAB {
		t.Fatalf("expected WRAM to round-trip, got %#02x", got)
	}
	if got := fresh.Read(0xFF0F); got&0x1F != 0x01 {
		t.Fatalf("expected IF to round-trip, got %#02x", got)
	}
}
