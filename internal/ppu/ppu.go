// Package ppu implements the NES Picture Processing Unit (2C02): the
// 341x262 cycle grid, background/sprite rendering, the loopy v/t/x/w
// scroll registers, sprite-0 hit, and the CPU-visible $2000-$2007
// register file.
package ppu

import "github.com/KINGGOLDrus/dendulator/internal/mapper"

const (
	cyclesPerScanline = 341
	scanlinesPerFrame = 262
	visibleScanlines  = 240
	postRenderLine    = 240
	vblankStartLine   = 241
	preRenderLine     = 261
)

// CartridgeBus is the subset of the cartridge the PPU needs: CHR access
// and the mirroring mode it currently reports (MMC1/MMC3 can change it
// at runtime).
type CartridgeBus interface {
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Mirror() mapper.Mirror
}

// PPU holds all CPU-visible register state and internal rendering state
// for one 2C02.
type PPU struct {
	ctrl   uint8
	mask   uint8
	status uint8
	oamAddr uint8

	v, t uint16
	x    uint8
	w    bool

	readBuffer uint8

	// Sized for the four-screen mirroring case, which needs the full
	// 4KiB nametable region; horizontal/vertical/single-screen modes
	// only ever touch the low 2KiB of it.
	vram    [4096]uint8
	palette [32]uint8
	oam     [256]uint8

	secondaryOAM   [8]spriteSlot
	secondaryCount int

	cart CartridgeBus

	scanline int
	cycle    int
	oddFrame bool
	frame    uint64

	// nmiDelay implements the documented 15-PPU-cycle NMI delay: the NMI
	// output line doesn't assert the same cycle VBL is set, it lags by
	// 15 ticks (five CPU cycles), long enough for a CPU instruction that
	// reads $2002 in the same window to race it.
	nmiOutput bool
	nmiDelay  int
	nmiOccurred bool

	frontBuffer [256 * 240]uint32
	backBuffer  [256 * 240]uint32

	spriteZeroHit     bool
	spriteOverflow    bool
	spriteZeroOnLine  bool
}

type spriteSlot struct {
	x, y       uint8
	tile       uint8
	attr       uint8
	index      int
}

// New constructs a PPU with no cartridge attached; call AttachCartridge
// before stepping.
func New() *PPU {
	return &PPU{scanline: preRenderLine}
}

func (p *PPU) AttachCartridge(c CartridgeBus) { p.cart = c }

// Reset matches power-on PPU state: rendering disabled, VBL flag clear,
// pre-render scanline.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.scanline = preRenderLine
	p.cycle = 0
	p.oddFrame = false
	p.frame = 0
	p.nmiOutput = false
	p.nmiDelay = 0
	p.nmiOccurred = false
}

func (p *PPU) renderingEnabled() bool { return p.mask&0x18 != 0 }
func (p *PPU) backgroundEnabled() bool { return p.mask&0x08 != 0 }
func (p *PPU) spritesEnabled() bool    { return p.mask&0x10 != 0 }

// ReadRegister services a CPU read of $2000-$2007 (mirrored every 8
// bytes by the caller).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 7 {
	case 2:
		v := p.status
		p.status &^= 0x80
		p.w = false
		p.nmiOccurred = false
		p.nmiOutput = false
		return v
	case 4:
		return p.oam[p.oamAddr]
	case 7:
		return p.readData()
	default:
		return 0
	}
}

// WriteRegister services a CPU write of $2000-$2007.
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	switch addr & 7 {
	case 0:
		prevNMI := p.ctrl&0x80 != 0
		p.ctrl = val
		p.t = (p.t &^ 0x0C00) | (uint16(val&0x03) << 10)
		nowNMI := p.ctrl&0x80 != 0
		if !prevNMI && nowNMI && p.nmiOccurred {
			p.nmiOutput = true
			p.nmiDelay = 15
		}
	case 1:
		p.mask = val
	case 3:
		p.oamAddr = val
	case 4:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case 5:
		if !p.w {
			p.t = (p.t &^ 0x001F) | uint16(val>>3)
			p.x = val & 0x07
		} else {
			p.t = (p.t &^ 0x73E0) | (uint16(val&0x07) << 12) | (uint16(val&0xF8) << 2)
		}
		p.w = !p.w
	case 6:
		if !p.w {
			p.t = (p.t &^ 0xFF00) | (uint16(val&0x3F) << 8)
		} else {
			p.t = (p.t &^ 0x00FF) | uint16(val)
			p.v = p.t
		}
		p.w = !p.w
	case 7:
		p.writeData(val)
	}
}

// WriteOAMByte is used by OAM DMA: it writes sequentially starting at
// oamAddr without advancing the CPU-facing $2004 semantics beyond the
// auto-increment DMA itself relies on.
func (p *PPU) WriteOAMByte(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}

func (p *PPU) vramAddr(addr uint16) uint16 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return addr // pattern table, goes to cartridge
	case addr < 0x3F00:
		return mapper.MirrorNametableAddr(p.cart.Mirror(), addr)
	default:
		a := addr & 0x1F
		if a == 0x10 || a == 0x14 || a == 0x18 || a == 0x1C {
			a &^= 0x10
		}
		return a
	}
}

func (p *PPU) busRead(addr uint16) uint8 {
	addr &= 0x3FFF
	if addr < 0x2000 {
		return p.cart.PPURead(addr)
	}
	if addr < 0x3F00 {
		return p.vram[p.vramAddr(addr)]
	}
	return p.palette[p.vramAddr(addr)]
}

func (p *PPU) busWrite(addr uint16, val uint8) {
	addr &= 0x3FFF
	if addr < 0x2000 {
		p.cart.PPUWrite(addr, val)
		return
	}
	if addr < 0x3F00 {
		p.vram[p.vramAddr(addr)] = val
		return
	}
	p.palette[p.vramAddr(addr)] = val
}

func (p *PPU) readData() uint8 {
	addr := p.v & 0x3FFF
	var result uint8
	if addr >= 0x3F00 {
		result = p.busRead(addr)
		p.readBuffer = p.busRead(addr - 0x1000)
	} else {
		result = p.readBuffer
		p.readBuffer = p.busRead(addr)
	}
	p.incrementV()
	return result
}

func (p *PPU) writeData(val uint8) {
	p.busWrite(p.v&0x3FFF, val)
	p.incrementV()
}

func (p *PPU) incrementV() {
	if p.ctrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v++
	}
}

// Status returns the raw PPUSTATUS value, for tests.
func (p *PPU) Status() uint8 { return p.status }

// FrameBuffer returns the last fully rendered frame as packed 0xAARRGGBB
// pixels, double-buffered so the host never reads a frame being drawn.
func (p *PPU) FrameBuffer() *[256 * 240]uint32 { return &p.frontBuffer }

func (p *PPU) FrameCount() uint64 { return p.frame }

// NMI reports whether the CPU's NMI line should currently be asserted.
// The caller (bus) samples this once per CPU step.
func (p *PPU) NMI() bool { return p.nmiDelay == 0 && p.nmiOutput }

// Tick advances the PPU by one pixel clock. It returns true on the
// cycle that completes a frame, letting the scheduler cap a run at a
// whole number of frames.
func (p *PPU) Tick() (frameDone bool) {
	if p.nmiDelay > 0 {
		p.nmiDelay--
	}

	if p.scanline < visibleScanlines && p.cycle >= 1 && p.cycle <= 256 {
		p.renderPixel()
	}
	if p.scanline >= 0 && p.scanline < visibleScanlines && p.cycle == 1 {
		p.evaluateSprites()
	}

	if p.scanline == vblankStartLine && p.cycle == 1 {
		p.status |= 0x80
		p.nmiOccurred = true
		if p.ctrl&0x80 != 0 {
			p.nmiOutput = true
			p.nmiDelay = 15
		}
	}
	if p.scanline == preRenderLine && p.cycle == 1 {
		p.status &^= (0x80 | 0x40 | 0x20)
		p.nmiOccurred = false
		p.nmiOutput = false
		p.spriteZeroHit = false
		p.spriteOverflow = false
	}
	if p.scanline == preRenderLine && p.cycle == 339 && p.renderingEnabled() && p.oddFrame {
		// Odd-frame cycle skip: dot 340 of the pre-render line is
		// skipped entirely, landing directly on (0,0) of the next frame.
		p.cycle = cyclesPerScanline - 1
	}

	p.cycle++
	if p.cycle > cyclesPerScanline-1 {
		p.cycle = 0
		p.scanline++
		if p.scanline > preRenderLine {
			p.scanline = 0
			p.frame++
			p.oddFrame = !p.oddFrame
			p.frontBuffer = p.backBuffer
			frameDone = true
		}
	}
	return frameDone
}

// MapperTick reports the scanline/cycle pair and rendering state the
// scheduler forwards to the cartridge (MMC3 IRQ counter).
func (p *PPU) MapperTick() (scanline, cycle int, rendering bool) {
	return p.scanline, p.cycle, p.renderingEnabled()
}

func (p *PPU) renderPixel() {
	x := p.cycle - 1
	y := p.scanline

	bg := p.backgroundPixelAt(x, y)
	sp, spIndex, spPriority := p.spritePixelAt(x)

	if spIndex == 0 && p.spritesEnabled() && p.backgroundEnabled() &&
		bg != 0 && sp != 0 && x != 255 && !p.spriteZeroHit {
		p.spriteZeroHit = true
		p.status |= 0x40
	}

	var colorIndex uint8
	switch {
	case sp != 0 && (spPriority || bg == 0) && p.spritesEnabled() && !p.spriteColumnClipped(x):
		colorIndex = sp
	case bg != 0 && p.backgroundEnabled() && !p.backgroundColumnClipped(x):
		colorIndex = bg
	default:
		colorIndex = 0 // universal backdrop: palette RAM index 0
	}

	nesColor := p.palette[colorIndex&0x1F] & 0x3F
	if p.mask&0x01 != 0 {
		nesColor &= 0x30 // grayscale: drop the hue bits, keep luma/emphasis row
	}
	p.backBuffer[y*256+x] = applyEmphasis(nesPalette[nesColor], p.mask>>5)
}

// backgroundColumnClipped and spriteColumnClipped implement PPUMASK bits 1
// and 2: the leftmost 8 pixels of the background/sprite layer are hidden
// unless the corresponding "show in leftmost 8 pixels" bit is set.
func (p *PPU) backgroundColumnClipped(x int) bool {
	return x < 8 && p.mask&0x02 == 0
}

func (p *PPU) spriteColumnClipped(x int) bool {
	return x < 8 && p.mask&0x04 == 0
}

// applyEmphasis darkens the two color channels the emphasis bits don't
// select, matching the 2C02's color-emphasis behavior.
func applyEmphasis(c uint32, emphasis uint8) uint32 {
	if emphasis == 0 {
		return c
	}
	a := c & 0xFF000000
	r := (c >> 16) & 0xFF
	g := (c >> 8) & 0xFF
	b := c & 0xFF
	if emphasis&0x01 != 0 { // emphasize red: dim green/blue
		g = g * 3 / 4
		b = b * 3 / 4
	}
	if emphasis&0x02 != 0 { // emphasize green: dim red/blue
		r = r * 3 / 4
		b = b * 3 / 4
	}
	if emphasis&0x04 != 0 { // emphasize blue: dim red/green
		r = r * 3 / 4
		g = g * 3 / 4
	}
	return a | r<<16 | g<<8 | b
}

func (p *PPU) backgroundPixelAt(x, y int) uint8 {
	if !p.backgroundEnabled() {
		return 0
	}
	fineX := (int(p.x) + x) & 7
	coarseX := (int(p.v)&0x1F + (int(p.x)+x)/8) & 0x1F
	coarseY := (int(p.v) >> 5) & 0x1F
	fineY := (int(p.v) >> 12) & 0x07
	nametable := (int(p.v) >> 10) & 0x03

	ntAddr := uint16(0x2000 | nametable<<10 | coarseY<<5 | coarseX)
	tileID := p.busRead(ntAddr)

	attrAddr := uint16(0x23C0 | nametable<<10 | (coarseY>>2)<<3 | (coarseX >> 2))
	attr := p.busRead(attrAddr)
	shift := uint((coarseX&2)>>1)*2 + uint((coarseY&2)>>1)*4
	paletteGroup := (attr >> shift) & 0x03

	patternBase := uint16(0)
	if p.ctrl&0x10 != 0 {
		patternBase = 0x1000
	}
	patternAddr := patternBase + uint16(tileID)*16 + uint16(fineY)
	lo := p.busRead(patternAddr)
	hi := p.busRead(patternAddr + 8)
	bitShift := uint(7 - fineX)
	colorBits := ((hi>>bitShift)&1)<<1 | (lo>>bitShift)&1
	if colorBits == 0 {
		return 0
	}
	return paletteGroup<<2 | colorBits
}

func (p *PPU) evaluateSprites() {
	p.secondaryCount = 0
	p.spriteZeroOnLine = false
	line := p.scanline
	height := 8
	if p.ctrl&0x20 != 0 {
		height = 16
	}
	for i := 0; i < 64 && p.secondaryCount < 8; i++ {
		y := int(p.oam[i*4])
		if line < y || line >= y+height {
			continue
		}
		if i == 0 {
			p.spriteZeroOnLine = true
		}
		p.secondaryOAM[p.secondaryCount] = spriteSlot{
			x:     p.oam[i*4+3],
			y:     p.oam[i*4],
			tile:  p.oam[i*4+1],
			attr:  p.oam[i*4+2],
			index: i,
		}
		p.secondaryCount++
	}
	if p.secondaryCount == 8 {
		for i := 8; i < 64; i++ {
			y := int(p.oam[i*4])
			if line >= y && line < y+height {
				p.status |= 0x20
				p.spriteOverflow = true
				break
			}
		}
	}
}

func (p *PPU) spritePixelAt(x int) (color uint8, spriteIndex int, priority bool) {
	if !p.spritesEnabled() {
		return 0, -1, false
	}
	height := 8
	if p.ctrl&0x20 != 0 {
		height = 16
	}
	for i := 0; i < p.secondaryCount; i++ {
		s := p.secondaryOAM[i]
		sx := int(s.x)
		if x < sx || x >= sx+8 {
			continue
		}
		row := p.scanline - int(s.y)
		flipV := s.attr&0x80 != 0
		flipH := s.attr&0x40 != 0
		if flipV {
			row = height - 1 - row
		}
		tile := s.tile
		patternBase := uint16(0)
		if height == 8 {
			if p.ctrl&0x08 != 0 {
				patternBase = 0x1000
			}
		} else {
			patternBase = uint16(tile&1) * 0x1000
			tile &^= 1
			if row >= 8 {
				tile++
				row -= 8
			}
		}
		col := x - sx
		if flipH {
			col = 7 - col
		}
		patternAddr := patternBase + uint16(tile)*16 + uint16(row)
		lo := p.busRead(patternAddr)
		hi := p.busRead(patternAddr + 8)
		bitShift := uint(7 - col)
		colorBits := ((hi>>bitShift)&1)<<1 | (lo>>bitShift)&1
		if colorBits == 0 {
			continue
		}
		paletteGroup := s.attr & 0x03
		return 0x10 | paletteGroup<<2 | colorBits, s.index, s.attr&0x20 == 0
	}
	return 0, -1, false
}
