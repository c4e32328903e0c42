// Package cartridge loads a Game Boy ROM image and its header, and
// dispatches reads/writes across ROM banks and external RAM to the
// appropriate memory bank controller.
package cartridge

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/cespare/xxhash"
	"github.com/hashicorp/go-multierror"
)

// MinHeaderLength is the smallest ROM size that contains a full header.
const MinHeaderLength = 0x150

// MBCKind identifies which memory bank controller backs a Cartridge.
type MBCKind uint8

const (
	KindRomOnly MBCKind = iota
	KindMBC1
)

// mbc is the common contract every supported bank controller satisfies.
type mbc interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	SaveRAM() []byte
	LoadRAM(data []byte)
}

// Cartridge is a loaded ROM image plus its active bank controller.
type Cartridge struct {
	mbc
	header   Header
	kind     MBCKind
	checksum uint64
}

// Header returns the cartridge's parsed header.
func (c *Cartridge) Header() Header { return c.header }

// Title returns the cartridge's game title as stored in the header.
func (c *Cartridge) Title() string { return c.header.Title }

// MBC reports which memory bank controller backs this cartridge.
func (c *Cartridge) MBC() MBCKind { return c.kind }

// Checksum is an xxhash of the raw ROM image, distinct from the header's
// own checksum byte.
func (c *Cartridge) Checksum() uint64 { return c.checksum }

// LoadFromPath reads a ROM from disk. A ".7z" or ".zip" extension is
// transparently decompressed, taking the first file entry inside the
// archive. When the file cannot be read or decompressed, or is too small
// to hold a header, a nil Cartridge is returned alongside the error. Header
// problems (size or checksum mismatch, unknown type) return a usable
// Cartridge together with a non-nil error, as LoadFromBuffer does.
func LoadFromPath(path string) (*Cartridge, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".7z":
		return loadFrom7z(path)
	case ".zip":
		return loadFromZip(path)
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cartridge: reading %s: %w", path, err)
		}
		return LoadFromBuffer(raw)
	}
}

func loadFrom7z(path string) (*Cartridge, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: opening 7z archive %s: %w", path, err)
	}
	defer r.Close()

	if len(r.File) == 0 {
		return nil, fmt.Errorf("cartridge: archive %s is empty", path)
	}
	f, err := r.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("cartridge: reading archive entry: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("cartridge: decompressing archive entry: %w", err)
	}
	return LoadFromBuffer(raw)
}

func loadFromZip(path string) (*Cartridge, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: opening zip archive %s: %w", path, err)
	}
	defer r.Close()

	if len(r.File) == 0 {
		return nil, fmt.Errorf("cartridge: archive %s is empty", path)
	}
	f, err := r.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("cartridge: reading archive entry: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("cartridge: decompressing archive entry: %w", err)
	}
	return LoadFromBuffer(raw)
}

// LoadFromBuffer parses a raw ROM image already in memory. It validates
// the header and constructs the matching bank controller; it never
// panics, returning a multierror describing every validation problem
// found instead.
func LoadFromBuffer(rom []byte) (*Cartridge, error) {
	var errs *multierror.Error
	if len(rom) < MinHeaderLength {
		errs = multierror.Append(errs, fmt.Errorf("cartridge: rom too small to contain a header: %d bytes", len(rom)))
		return nil, errs.ErrorOrNil()
	}

	header := parseHeader(rom)
	if header.ROMSize != 0 && len(rom) != header.ROMSize {
		errs = multierror.Append(errs, fmt.Errorf("cartridge: header declares %d bytes but rom is %d bytes", header.ROMSize, len(rom)))
	}
	if !verifyHeaderChecksum(rom) {
		errs = multierror.Append(errs, fmt.Errorf("cartridge: header checksum mismatch"))
	}

	c := &Cartridge{header: header, checksum: xxhash.Sum64(rom)}

	switch header.CartridgeType {
	case RomOnly:
		c.kind = KindRomOnly
		c.mbc = newROM(rom)
	case Mbc1, Mbc1Ram, Mbc1RamBattery:
		c.kind = KindMBC1
		c.mbc = newMBC1(rom, header.RAMSize)
	case Mbc2, Mbc2Battery, RomRam, RomRamBattery, Mmm01, Mmm01Ram, Mmm01RamBattery:
		// header decodes cleanly; bank-switching behavior beyond MBC1 is
		// not modeled, so these fall back to a flat, unbanked view of ROM.
		c.kind = KindRomOnly
		c.mbc = newROM(rom)
	default:
		errs = multierror.Append(errs, fmt.Errorf("cartridge: unknown cartridge type %s", header.CartridgeType))
		c.kind = KindRomOnly
		c.mbc = newROM(rom)
	}

	return c, errs.ErrorOrNil()
}

// Empty returns a blank, all-0xFF ROM-only cartridge, used when no ROM is
// available but callers still need a Bus-attachable Cartridge.
func Empty() *Cartridge {
	rom := bytes.Repeat([]byte{0xFF}, MinHeaderLength)
	return &Cartridge{
		header: Header{Title: "", CartridgeType: RomOnly},
		kind:   KindRomOnly,
		mbc:    newROM(rom),
	}
}
