package mapper

// unrom implements iNES mapper 2 (UxROM). Writes anywhere in $8000-$FFFF
// select the low 16KiB PRG bank; the high bank is fixed to the last one.
// CHR is always RAM (8KiB, not bank switched).
type unrom struct {
	prg     []uint8
	chr     []uint8
	mirror  Mirror
	bank    uint8
	banks   uint8
}

func newUNROM(cfg Config) *unrom {
	chr := cfg.CHR
	if len(chr) == 0 {
		chr = make([]uint8, 0x2000)
	}
	return &unrom{
		prg:    cfg.PRG,
		chr:    chr,
		mirror: cfg.Mirror,
		banks:  uint8(len(cfg.PRG) / 0x4000),
	}
}

func (m *unrom) Reset() {}

func (m *unrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000 && addr < 0xC000:
		off := uint32(m.bank)*0x4000 + uint32(addr-0x8000)
		if int(off) < len(m.prg) {
			return m.prg[off]
		}
	case addr >= 0xC000:
		last := m.banks - 1
		off := uint32(last)*0x4000 + uint32(addr-0xC000)
		if int(off) < len(m.prg) {
			return m.prg[off]
		}
	}
	return 0
}

func (m *unrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x8000 && m.banks > 0 {
		m.bank = val % m.banks
	}
}

func (m *unrom) PPURead(addr uint16) uint8 {
	if int(addr) < len(m.chr) {
		return m.chr[addr]
	}
	return 0
}

func (m *unrom) PPUWrite(addr uint16, val uint8) {
	if int(addr) < len(m.chr) {
		m.chr[addr] = val
	}
}

func (m *unrom) Tick(scanline, cycle int, renderingEnabled bool) {}
func (m *unrom) Mirror() Mirror                                  { return m.mirror }
func (m *unrom) IRQ() bool                                       { return false }
func (m *unrom) ClearIRQ()                                       {}
