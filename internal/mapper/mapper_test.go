package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePRG(banks int, fill func(b []uint8)) []uint8 {
	prg := make([]uint8, banks*0x4000)
	if fill != nil {
		fill(prg)
	}
	return prg
}

func writeSerial(m Mapper, addr uint16, value uint8) {
	// MMC1 loads a 5-bit shift register LSB-first across five writes.
	for i := 0; i < 5; i++ {
		m.CPUWrite(addr, (value>>uint(i))&1)
	}
}

func TestNROMMirrorsSingleBankIntoUpperHalf(t *testing.T) {
	prg := makePRG(1, func(b []uint8) { b[0] = 0xAA; b[0x3FFF] = 0xBB })
	m := newNROM(Config{PRG: prg, CHR: make([]uint8, 0x2000)})
	assert.Equal(t, uint8(0xAA), m.CPURead(0x8000))
	assert.Equal(t, uint8(0xAA), m.CPURead(0xC000), "single 16K bank mirrors into $C000-$FFFF")
	assert.Equal(t, uint8(0xBB), m.CPURead(0xFFFF))
}

func TestNROMIgnoresWritesToPRGROM(t *testing.T) {
	prg := makePRG(1, nil)
	m := newNROM(Config{PRG: prg, CHR: make([]uint8, 0x2000)})
	m.CPUWrite(0x8000, 0x42)
	assert.Equal(t, uint8(0), m.CPURead(0x8000))
}

func TestMMC1SwitchesPRGBankInMode3(t *testing.T) {
	prg := makePRG(4, func(b []uint8) {
		for bank := 0; bank < 4; bank++ {
			b[bank*0x4000] = uint8(bank)
		}
	})
	m := newMMC1(Config{PRG: prg, CHR: make([]uint8, 0x2000), CHRIsRAM: true})

	// power-on control leaves PRG mode 3: fix last bank at $C000, switch $8000.
	writeSerial(m, 0xE000, 2) // select PRG bank 2 at $8000
	assert.Equal(t, uint8(2), m.CPURead(0x8000))
	assert.Equal(t, uint8(3), m.CPURead(0xC000), "mode 3 fixes the last bank at $C000")

	writeSerial(m, 0xE000, 0)
	assert.Equal(t, uint8(0), m.CPURead(0x8000))
}

func TestMMC1ResetBitForcesShiftAndMode3(t *testing.T) {
	prg := makePRG(2, nil)
	m := newMMC1(Config{PRG: prg, CHR: make([]uint8, 0x2000)})
	m.CPUWrite(0xE000, 0xFF) // bit 7 set: reset the shifter
	require.Equal(t, uint8(3), m.prgMode())
}

func TestMMC1PRGRAMReadWrite(t *testing.T) {
	m := newMMC1(Config{PRG: makePRG(2, nil), CHR: make([]uint8, 0x2000)})
	m.CPUWrite(0x6000, 0x77)
	assert.Equal(t, uint8(0x77), m.CPURead(0x6000))
}

func TestMMC3BankSelectSwapsAt8000(t *testing.T) {
	prg := make([]uint8, 8*0x2000) // 8 x 8KiB banks, MMC3's native granularity
	for bank := 0; bank < 8; bank++ {
		prg[bank*0x2000] = uint8(bank)
	}
	m := newMMC3(Config{PRG: prg, CHR: make([]uint8, 0x2000), CHRIsRAM: true})

	m.CPUWrite(0x8000, 6) // select register R6 (PRG bank at the swappable slot)
	m.CPUWrite(0x8001, 3) // R6 = bank 3
	assert.Equal(t, uint8(3), m.CPURead(0x8000), "mode 0 puts the swappable bank at $8000")

	lastBank := m.prgBanks() - 2
	assert.Equal(t, lastBank, m.bankLowFixed(1))
}

func TestMMC3IRQFiresAfterCounterReachesZero(t *testing.T) {
	m := newMMC3(Config{PRG: makePRG(4, nil), CHR: make([]uint8, 0x2000), CHRIsRAM: true})

	m.CPUWrite(0xC000, 4) // IRQ latch = 4
	m.CPUWrite(0xC001, 0) // force reload on next tick
	m.CPUWrite(0xE001, 0) // enable IRQ

	for i := 0; i < 5; i++ {
		m.Tick(120, 260, true)
	}
	assert.True(t, m.IRQ())

	m.ClearIRQ()
	assert.False(t, m.IRQ())
}

func TestMMC3IRQStaysClearWhenDisabled(t *testing.T) {
	m := newMMC3(Config{PRG: makePRG(4, nil), CHR: make([]uint8, 0x2000), CHRIsRAM: true})
	m.CPUWrite(0xC000, 1)
	m.CPUWrite(0xC001, 0)
	m.CPUWrite(0xE000, 0) // explicitly disabled

	for i := 0; i < 5; i++ {
		m.Tick(120, 260, true)
	}
	assert.False(t, m.IRQ())
}

func TestMirrorNametableAddrHorizontalAndVertical(t *testing.T) {
	assert.Equal(t, uint16(0x0000), MirrorNametableAddr(MirrorHorizontal, 0x2000))
	assert.Equal(t, uint16(0x0000), MirrorNametableAddr(MirrorHorizontal, 0x2400))
	assert.Equal(t, uint16(0x0400), MirrorNametableAddr(MirrorHorizontal, 0x2800))

	assert.Equal(t, uint16(0x0000), MirrorNametableAddr(MirrorVertical, 0x2000))
	assert.Equal(t, uint16(0x0400), MirrorNametableAddr(MirrorVertical, 0x2400))
	assert.Equal(t, uint16(0x0000), MirrorNametableAddr(MirrorVertical, 0x2800))
}
