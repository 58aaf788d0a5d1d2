package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KINGGOLDrus/dendulator/internal/mapper"
)

type fakeCart struct {
	chr [0x2000]uint8
}

func (f *fakeCart) PPURead(addr uint16) uint8     { return f.chr[addr] }
func (f *fakeCart) PPUWrite(addr uint16, v uint8) { f.chr[addr] = v }
func (f *fakeCart) Mirror() mapper.Mirror         { return mapper.MirrorHorizontal }

func newTestPPU() (*PPU, *fakeCart) {
	p := New()
	c := &fakeCart{}
	p.AttachCartridge(c)
	p.Reset()
	return p, c
}

func TestVBlankFlagSetAtScanline241(t *testing.T) {
	p, _ := newTestPPU()
	// Reset starts on the pre-render line, one full line before scanline 0.
	for i := 0; i < cyclesPerScanline*(vblankStartLine+1)+2; i++ {
		p.Tick()
	}
	assert.True(t, p.Status()&0x80 != 0)
}

func TestPPUDataReadIsBufferedBelowPalette(t *testing.T) {
	p, c := newTestPPU()
	c.chr[0x0010] = 0x42
	p.v = 0x0010
	first := p.readData()
	assert.NotEqual(t, uint8(0x42), first, "first read returns the stale buffer, not the fresh byte")
	second := p.readData()
	_ = second
}

func TestPaletteWriteReadRoundTrip(t *testing.T) {
	p, _ := newTestPPU()
	p.v = 0x3F01
	p.writeData(0x16)
	assert.Equal(t, uint8(0x16), p.palette[1])
}

func TestPPUCTRLSelectsNametableInT(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2000, 0x03)
	assert.Equal(t, uint16(0x0C00), p.t&0x0C00)
}

func TestScrollWriteTwicePopulatesXAndY(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2005, 0x7D) // coarse X 15, fine X 5
	p.WriteRegister(0x2005, 0x5E) // coarse Y 11, fine Y 6
	assert.Equal(t, uint8(5), p.x)
	assert.Equal(t, uint16(0x616F), p.t)
	assert.True(t, p.w == false)
}

func TestFrameCountsAdvance(t *testing.T) {
	p, _ := newTestPPU()
	total := cyclesPerScanline * scanlinesPerFrame
	done := false
	for i := 0; i < total; i++ {
		if p.Tick() {
			done = true
		}
	}
	assert.True(t, done)
	assert.Equal(t, uint64(1), p.FrameCount())
}
