// Package bus implements the NES system bus: the CPU-visible memory
// map, the PPU/APU/mapper co-stepping scheduler, OAM DMA, and DMC
// sample-fetch stalls.
package bus

import (
	"github.com/KINGGOLDrus/dendulator/internal/apu"
	"github.com/KINGGOLDrus/dendulator/internal/cartridge"
	"github.com/KINGGOLDrus/dendulator/internal/cpu"
	"github.com/KINGGOLDrus/dendulator/internal/input"
	"github.com/KINGGOLDrus/dendulator/internal/ppu"
)

// Bus wires one CPU, PPU, APU, cartridge and pair of controllers
// together and drives them in lockstep.
type Bus struct {
	CPU *cpu.CPU
	PPU *ppu.PPU
	APU *apu.APU

	cart *cartridge.Cartridge
	pad  [2]*input.Controller

	ram [0x0800]uint8

	cpuCycles uint64

	dmaPending bool
	dmaPage    uint8
}

// New builds a bus with no cartridge loaded; call LoadCartridge before
// Reset/Run.
func New() *Bus {
	b := &Bus{
		PPU: ppu.New(),
		APU: apu.New(48000),
		pad: [2]*input.Controller{input.New(), input.New()},
	}
	b.CPU = cpu.New(b)
	b.APU.AttachDMCBus(b)
	b.APU.SetDMCStallFunc(func() { b.CPU.Stall += 4 })
	return b
}

// LoadCartridge attaches a parsed cartridge to the PPU (CHR/mirroring)
// and the bus (PRG/mapper registers).
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
	b.PPU.AttachCartridge(cart)
}

// Reset performs a system-wide reset.
func (b *Bus) Reset() {
	if b.cart != nil {
		b.cart.Reset()
	}
	b.PPU.Reset()
	b.cpuCycles = 0
	b.dmaPending = false
	b.CPU.Reset()
}

// Controller returns the shift-register controller at index 0 or 1.
func (b *Bus) Controller(i int) *input.Controller { return b.pad[i] }

// Read implements cpu.Bus: the full $0000-$FFFF CPU memory map.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF]
	case addr < 0x4000:
		return b.PPU.ReadRegister(0x2000 + addr&7)
	case addr == 0x4015:
		return b.APU.ReadStatus()
	case addr == 0x4016:
		return b.pad[0].Read() | 0x40
	case addr == 0x4017:
		return b.pad[1].Read() | 0x40
	case addr < 0x4018:
		return 0
	case addr >= 0x6000:
		if b.cart != nil {
			return b.cart.CPURead(addr)
		}
		return 0
	default:
		return 0
	}
}

// Write implements cpu.Bus.
func (b *Bus) Write(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = v
	case addr < 0x4000:
		b.PPU.WriteRegister(0x2000+addr&7, v)
	case addr == 0x4014:
		b.dmaPending = true
		b.dmaPage = v
	case addr == 0x4016:
		b.pad[0].Write(v)
		b.pad[1].Write(v)
	case addr >= 0x4000 && addr <= 0x4013, addr == 0x4015, addr == 0x4017:
		b.APU.WriteRegister(addr, v)
	case addr < 0x4018:
		// unused APU/IO range
	case addr >= 0x6000:
		if b.cart != nil {
			b.cart.CPUWrite(addr, v)
		}
	}
}

// runOAMDMA performs the 256-byte copy and charges the CPU the 513/514
// cycle stall (514 when the DMA starts on an odd CPU cycle, matching
// the extra alignment cycle real hardware needs).
func (b *Bus) runOAMDMA() {
	base := uint16(b.dmaPage) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteOAMByte(b.Read(base + uint16(i)))
	}
	stall := uint64(513)
	if b.cpuCycles%2 == 1 {
		stall = 514
	}
	b.CPU.Stall += stall
	b.dmaPending = false
}

// Step executes one CPU instruction (or one stalled cycle) and
// co-steps the PPU 3x and the APU 1x per CPU cycle consumed, delivering
// NMI/IRQ lines and the mapper's scanline tick along the way. It
// returns true on any PPU tick that completed a frame.
func (b *Bus) Step() (frameDone bool) {
	if b.dmaPending {
		b.runOAMDMA()
	}

	cycles := b.CPU.Step()
	b.cpuCycles += cycles

	for i := uint64(0); i < cycles; i++ {
		for j := 0; j < 3; j++ {
			if b.PPU.Tick() {
				frameDone = true
			}
			if b.cart != nil {
				sl, cy, rendering := b.PPU.MapperTick()
				b.cart.Tick(sl, cy, rendering)
			}
		}
		b.APU.Tick()
	}

	b.CPU.SetNMI(b.PPU.NMI())
	irq := b.APU.IRQ()
	if b.cart != nil && b.cart.IRQ() {
		irq = true
	}
	b.CPU.SetIRQ(irq)

	return frameDone
}

// RunUntilFrame steps the bus until n additional whole frames have
// completed.
func (b *Bus) RunUntilFrame(n int) {
	for n > 0 {
		if b.Step() {
			n--
		}
	}
}
