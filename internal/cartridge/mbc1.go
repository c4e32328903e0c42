package cartridge

const bankSize = 0x4000
const ramBankSize = 0x2000

// mbc1Controller is a minimal MBC1 mapper: a 5-bit ROM bank register
// (bank 0 aliases to 1), a 2-bit secondary bank/RAM-bank register, and a
// RAM-enable latch gating external RAM. Advanced-mode multi-bank RAM
// aliasing beyond the simple case is not implemented.
type mbc1Controller struct {
	rom []byte
	ram []byte

	romBank uint8 // 5 bits, 1-31
	secBank uint8 // 2 bits, used as RAM bank or ROM bank high bits

	ramEnabled bool
	ramBanking bool // true: secBank selects a RAM bank; false: ROM bank
}

func newMBC1(rom []byte, ramSize int) *mbc1Controller {
	if ramSize == 0 {
		ramSize = ramBankSize * 4
	}
	return &mbc1Controller{
		rom:     rom,
		ram:     make([]byte, ramSize),
		romBank: 1,
	}
}

func (m *mbc1Controller) effectiveROMBank() int {
	bank := int(m.romBank)
	if !m.ramBanking {
		bank |= int(m.secBank) << 5
	}
	if bank == 0 {
		bank = 1
	}
	return bank
}

func (m *mbc1Controller) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.romAt(0, address)
	case address < 0x8000:
		return m.romAt(m.effectiveROMBank(), address-0x4000)
	default: // 0xA000-0xBFFF
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := m.ramOffset(address - 0xA000)
		if offset >= len(m.ram) {
			return 0xFF
		}
		return m.ram[offset]
	}
}

func (m *mbc1Controller) romAt(bank int, offset uint16) uint8 {
	idx := bank*bankSize + int(offset)
	if idx < 0 || idx >= len(m.rom) {
		return 0xFF
	}
	return m.rom[idx]
}

func (m *mbc1Controller) ramOffset(offset uint16) int {
	bank := 0
	if m.ramBanking {
		bank = int(m.secBank)
	}
	return bank*ramBankSize + int(offset)
}

func (m *mbc1Controller) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case address < 0x6000:
		m.secBank = value & 0x03
	case address < 0x8000:
		m.ramBanking = value&0x01 != 0
	default: // 0xA000-0xBFFF
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		offset := m.ramOffset(address - 0xA000)
		if offset < len(m.ram) {
			m.ram[offset] = value
		}
	}
}

// SaveRAM returns a copy of the cartridge's battery-backed external RAM.
func (m *mbc1Controller) SaveRAM() []byte {
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

// LoadRAM restores external RAM from a previous SaveRAM snapshot.
func (m *mbc1Controller) LoadRAM(data []byte) {
	copy(m.ram, data)
}
