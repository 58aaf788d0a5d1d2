package mapper

// nrom implements iNES mapper 0. Two fixed 16KiB PRG banks (the first
// mirrored into the second if the cartridge only has one) and a single
// CHR bank, read-only unless the loader supplied CHR-RAM.
type nrom struct {
	prg      []uint8
	chr      []uint8
	chrIsRAM bool
	prgRAM   [0x2000]uint8
	mirror   Mirror
	prg16k   bool
}

func newNROM(cfg Config) *nrom {
	return &nrom{
		prg:      cfg.PRG,
		chr:      cfg.CHR,
		chrIsRAM: cfg.CHRIsRAM,
		mirror:   cfg.Mirror,
		prg16k:   len(cfg.PRG) <= 0x4000,
	}
}

func (m *nrom) Reset() {}

func (m *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.prgRAM[addr-0x6000]
	case addr >= 0x8000:
		offset := addr - 0x8000
		if m.prg16k {
			offset &= 0x3FFF
		}
		if int(offset) < len(m.prg) {
			return m.prg[offset]
		}
	}
	return 0
}

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[addr-0x6000] = val
	}
	// Writes to $8000-$FFFF are ignored: NROM has no registers.
}

func (m *nrom) PPURead(addr uint16) uint8 {
	if int(addr) < len(m.chr) {
		return m.chr[addr]
	}
	return 0
}

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	if m.chrIsRAM && int(addr) < len(m.chr) {
		m.chr[addr] = val
	}
}

func (m *nrom) Tick(scanline, cycle int, renderingEnabled bool) {}
func (m *nrom) Mirror() Mirror                                  { return m.mirror }
func (m *nrom) IRQ() bool                                       { return false }
func (m *nrom) ClearIRQ()                                       {}
