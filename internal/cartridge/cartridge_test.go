package cartridge

import "testing"

func buildROM(size int, cartType byte) []byte {
	rom := make([]byte, size)
	rom[0x147] = cartType
	sizeCode := byte(0)
	for (32*1024)<<sizeCode < size {
		sizeCode++
	}
	rom[0x148] = sizeCode
	var sum uint8
	for i := 0x134; i <= 0x14C; i++ {
		sum = sum - rom[i] - 1
	}
	rom[0x14D] = sum
	return rom
}

func TestLoadFromBufferTooSmall(t *testing.T) {
	_, err := LoadFromBuffer(make([]byte, 16))
	if err == nil {
		t.Fatal("expected an error loading a rom smaller than a header")
	}
}

func TestLoadFromBufferRomOnly(t *testing.T) {
	rom := buildROM(32*1024, byte(RomOnly))
	c, err := LoadFromBuffer(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MBC() != KindRomOnly {
		t.Fatalf("expected KindRomOnly, got %v", c.MBC())
	}
}

func TestLoadFromBufferEnumeratedTypeBeyondMBC1Decodes(t *testing.T) {
	for _, ct := range []Type{Mbc2, Mbc2Battery, RomRam, RomRamBattery, Mmm01, Mmm01Ram, Mmm01RamBattery} {
		rom := buildROM(32*1024, byte(ct))
		c, err := LoadFromBuffer(rom)
		if err != nil {
			t.Fatalf("type %s: unexpected error: %v", ct, err)
		}
		if c.MBC() != KindRomOnly {
			t.Fatalf("type %s: expected a flat fallback, got %v", ct, c.MBC())
		}
	}
}

func TestLoadFromBufferUnknownTypeFails(t *testing.T) {
	rom := buildROM(32*1024, 0x04) // not in the closed enumeration
	if _, err := LoadFromBuffer(rom); err == nil {
		t.Fatal("expected an error for a cartridge type outside the enumeration")
	}
}

func TestMBC1BankZeroAliasesToOne(t *testing.T) {
	rom := buildROM(128*1024, byte(Mbc1))
	c, err := LoadFromBuffer(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Write(0x2000, 0x00)
	// bank 0 must alias to bank 1: reading at 0x4000 should come from
	// rom bank 1, not bank 0.
	rom[1*bankSize] = 0xAB
	if v := c.Read(0x4000); v != 0xAB {
		t.Fatalf("expected bank-0 write to alias to bank 1, got %#02x", v)
	}
}

func TestMBC1RAMGatedByEnable(t *testing.T) {
	rom := buildROM(32*1024, byte(Mbc1Ram))
	c, err := LoadFromBuffer(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Write(0xA000, 0x42)
	if v := c.Read(0xA000); v != 0xFF {
		t.Fatalf("expected unenabled ram to read 0xFF, got %#02x", v)
	}
	c.Write(0x0000, 0x0A) // enable ram
	c.Write(0xA000, 0x42)
	if v := c.Read(0xA000); v != 0x42 {
		t.Fatalf("expected enabled ram write to stick, got %#02x", v)
	}
}
