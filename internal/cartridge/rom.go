package cartridge

// romController is the plain ROM-only mapper: the whole cartridge is
// visible at 0x0000-0x7FFF with no banking and no external RAM.
type romController struct {
	rom []byte
}

func newROM(rom []byte) *romController {
	return &romController{rom: rom}
}

func (r *romController) Read(address uint16) uint8 {
	if address < 0x8000 && int(address) < len(r.rom) {
		return r.rom[address]
	}
	return 0xFF
}

func (r *romController) Write(address uint16, value uint8) {
	// ROM-only cartridges ignore writes; nothing is mapped for them.
}

func (r *romController) SaveRAM() []byte    { return nil }
func (r *romController) LoadRAM(data []byte) {}
