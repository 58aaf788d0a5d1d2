// Package cartridge implements iNES ROM loading and the cartridge-facing
// side of the memory map. It owns the PRG/CHR banks and delegates address
// decode to a mapper.Mapper built from the header's mapper id.
package cartridge

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/KINGGOLDrus/dendulator/internal/mapper"
)

const (
	prgBankSize = 16 * 1024
	chrBankSize = 8 * 1024
	headerSize  = 16
)

// header mirrors the 16-byte iNES header layout.
type header struct {
	Magic   [4]uint8
	PRG16   uint8
	CHR8    uint8
	Flags6  uint8
	Flags7  uint8
	_       [8]uint8
}

// Cartridge is the loaded ROM image plus the mapper instance that decodes
// accesses to it.
type Cartridge struct {
	mapper mapper.Mapper
	id     uint8
}

// Load parses an iNES image from r and constructs the mapper it declares.
func Load(r io.Reader) (*Cartridge, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if string(h.Magic[:]) != "NES\x1A" {
		return nil, ErrBadMagic
	}
	if h.PRG16 == 0 {
		return nil, fmt.Errorf("%w: zero PRG-ROM banks", ErrInvalidArgument)
	}

	if h.Flags6&0x04 != 0 { // trainer present, skip it
		trainer := make([]uint8, 512)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	mapperID := (h.Flags6 >> 4) | (h.Flags7 & 0xF0)
	if mapperID>>4 > 4 {
		// Legacy trailer quirk: high nibble above the documented iNES 1.0
		// range is masked down rather than treated as NES 2.0.
		mapperID &= 0x0F
	}

	prg := make([]uint8, int(h.PRG16)*prgBankSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	var chr []uint8
	chrIsRAM := h.CHR8 == 0
	if chrIsRAM {
		chr = make([]uint8, chrBankSize)
	} else {
		chr = make([]uint8, int(h.CHR8)*chrBankSize)
		if _, err := io.ReadFull(r, chr); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	mirror := mapper.MirrorHorizontal
	switch {
	case h.Flags6&0x08 != 0:
		mirror = mapper.MirrorFourScreen
	case h.Flags6&0x01 != 0:
		mirror = mapper.MirrorVertical
	}

	m, err := mapper.New(mapperID, mapper.Config{
		PRG:        prg,
		CHR:        chr,
		CHRIsRAM:   chrIsRAM,
		Mirror:     mirror,
		HasBattery: h.Flags6&0x02 != 0,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrUnsupportedMapper, mapperID)
	}

	return &Cartridge{mapper: m, id: mapperID}, nil
}

// MapperID returns the iNES mapper id the cartridge was built with.
func (c *Cartridge) MapperID() uint8 { return c.id }

func (c *Cartridge) Reset()                       { c.mapper.Reset() }
func (c *Cartridge) CPURead(addr uint16) uint8    { return c.mapper.CPURead(addr) }
func (c *Cartridge) CPUWrite(addr uint16, v uint8) { c.mapper.CPUWrite(addr, v) }
func (c *Cartridge) PPURead(addr uint16) uint8    { return c.mapper.PPURead(addr) }
func (c *Cartridge) PPUWrite(addr uint16, v uint8) { c.mapper.PPUWrite(addr, v) }
func (c *Cartridge) Mirror() mapper.Mirror        { return c.mapper.Mirror() }
func (c *Cartridge) IRQ() bool                    { return c.mapper.IRQ() }
func (c *Cartridge) ClearIRQ()                    { c.mapper.ClearIRQ() }

// Tick lets mappers with scanline counters (MMC3) observe the PPU's
// position; it is called once per PPU dot from the scheduler.
func (c *Cartridge) Tick(scanline, cycle int, renderingEnabled bool) {
	c.mapper.Tick(scanline, cycle, renderingEnabled)
}
