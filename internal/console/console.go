// Package console provides the top-level orchestration type that wraps
// the bus scheduler with ROM loading, reset, frame stepping, and the
// input/video/audio accessors a host driver needs.
package console

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/KINGGOLDrus/dendulator/internal/bus"
	"github.com/KINGGOLDrus/dendulator/internal/cartridge"
)

// Console is one emulated NES: a bus plus the bookkeeping a driver
// needs around it (frame count, audio drain, ROM load).
type Console struct {
	bus *bus.Bus
}

// New returns a Console with no cartridge inserted.
func New() *Console {
	return &Console{bus: bus.New()}
}

// LoadROM parses an iNES image from path and resets the machine onto it.
func (c *Console) LoadROM(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("console: open rom: %w", err)
	}
	defer f.Close()
	return c.LoadROMReader(f)
}

// LoadROMReader is the io.Reader counterpart of LoadROM, used for
// embedded test ROMs and in-memory images.
func (c *Console) LoadROMReader(r io.Reader) error {
	cart, err := cartridge.Load(r)
	if err != nil {
		return err
	}
	c.bus.LoadCartridge(cart)
	c.bus.Reset()
	return nil
}

// LoadROMBytes is a convenience wrapper for callers already holding the
// full image in memory.
func (c *Console) LoadROMBytes(data []byte) error {
	return c.LoadROMReader(bytes.NewReader(data))
}

// Reset re-runs the CPU/PPU reset sequence without reloading the
// cartridge.
func (c *Console) Reset() { c.bus.Reset() }

// StepFrame runs the machine until exactly one more frame has been
// produced.
func (c *Console) StepFrame() {
	for !c.bus.Step() {
	}
}

// RunUntilFrame runs the machine for n whole frames.
func (c *Console) RunUntilFrame(n int) { c.bus.RunUntilFrame(n) }

// FrameBuffer returns the most recently completed frame as packed
// 0xAARRGGBB pixels, 256x240.
func (c *Console) FrameBuffer() *[256 * 240]uint32 { return c.bus.PPU.FrameBuffer() }

// DrainAudio returns and clears the accumulated 8-bit PCM sample buffer.
func (c *Console) DrainAudio() []byte { return c.bus.APU.DrainSamples() }

// SetButtons sets the full button bitmask for controller index 0 or 1.
func (c *Console) SetButtons(player int, mask uint8) {
	c.bus.Controller(player).SetButtons(mask)
}

// FrameCount returns the number of frames rendered since the last reset.
func (c *Console) FrameCount() uint64 { return c.bus.PPU.FrameCount() }
