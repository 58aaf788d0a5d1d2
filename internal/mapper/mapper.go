// Package mapper implements cartridge-side address decoding and bank
// switching for the NES mappers supported by this emulator.
package mapper

import "fmt"

// Mirror is the nametable mirroring mode in effect on the PPU bus.
type Mirror uint8

const (
	MirrorHorizontal Mirror = iota
	MirrorVertical
	MirrorSingleScreenA
	MirrorSingleScreenB
	MirrorFourScreen
	// MirrorCustom marks a cartridge whose mapper resolves nametable
	// addresses itself rather than through MirrorNametableAddr (e.g. an
	// MMC5-class chip with its own extended-attribute nametable logic).
	// No mapper in this package reports it; it exists so the enum
	// matches the full mirroring vocabulary a loaded iNES image can
	// declare intent for.
	MirrorCustom
)

// Mapper is the per-cartridge address decoder. Every read and write the
// CPU or PPU issues against $6000-$FFFF or $0000-$1FFF routes through one
// of these, per iNES mapper id.
type Mapper interface {
	Reset()
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	// Tick is called once per PPU dot so mappers with scanline counters
	// (MMC3) can observe rendering. It is a no-op for mappers that don't
	// need it.
	Tick(scanline, cycle int, renderingEnabled bool)
	Mirror() Mirror
	IRQ() bool
	ClearIRQ()
}

// Config bundles the pieces of a parsed iNES image a mapper needs to boot.
type Config struct {
	PRG       []uint8
	CHR       []uint8
	CHRIsRAM  bool
	Mirror    Mirror
	HasBattery bool
}

// New constructs the mapper named by an iNES mapper id. The set of ids is
// closed: adding a mapper means adding a case here and a new file, not
// registering into a runtime table.
func New(id uint8, cfg Config) (Mapper, error) {
	switch id {
	case 0:
		return newNROM(cfg), nil
	case 1:
		return newMMC1(cfg), nil
	case 2:
		return newUNROM(cfg), nil
	case 3:
		return newCNROM(cfg), nil
	case 4:
		return newMMC3(cfg), nil
	default:
		return nil, fmt.Errorf("mapper: unsupported mapper id %d", id)
	}
}

// MirrorNametableAddr resolves a PPU address in $2000-$2FFF to an index
// into the PPU's VRAM array: 4 nametables folded to 2 physical ones or to
// a single screen, depending on mirror mode, all within the low 2KiB;
// four-screen and custom modes return the unfolded 4KiB offset. The PPU owns the VRAM
// backing store; this is pure address decode shared by every mapper.
func MirrorNametableAddr(m Mirror, addr uint16) uint16 {
	addr &= 0x0FFF // offset within the 4KiB nametable region
	table := addr / 0x0400
	offset := addr % 0x0400

	var physical uint16
	switch m {
	case MirrorHorizontal:
		// tables 0,1 -> physical 0 ; tables 2,3 -> physical 1
		physical = table / 2
	case MirrorVertical:
		// tables 0,2 -> physical 0 ; tables 1,3 -> physical 1
		physical = table % 2
	case MirrorSingleScreenA:
		physical = 0
	case MirrorSingleScreenB:
		physical = 1
	case MirrorFourScreen, MirrorCustom:
		return addr // all four tables distinct; caller must size VRAM 4KiB
	}
	return physical*0x0400 + offset
}
