package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNROM constructs a minimal one-bank iNES image with the reset
// vector pointing at $8000, built the same way as the bus package's
// own buildNROM test helper.
func buildNROM(resetOpcode uint8) []byte {
	var img bytes.Buffer
	img.WriteString("NES\x1A")
	img.WriteByte(1) // 1x16KiB PRG
	img.WriteByte(1) // 1x8KiB CHR
	img.WriteByte(0) // flags6
	img.WriteByte(0) // flags7
	img.Write(make([]byte, 8))

	prg := make([]byte, 0x4000)
	prg[0] = resetOpcode
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	img.Write(prg)
	img.Write(make([]byte, 0x2000))
	return img.Bytes()
}

func TestLoadROMBytesThenStepFrame(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadROMBytes(buildNROM(0xEA))) // NOP
	before := c.FrameCount()
	c.StepFrame()
	assert.Greater(t, c.FrameCount(), before)
}

func TestLoadROMRejectsBadMagic(t *testing.T) {
	c := New()
	err := c.LoadROMBytes([]byte("not an ines file at all"))
	assert.Error(t, err)
}

func TestSetButtonsDoesNotPanicWithoutCartridge(t *testing.T) {
	c := New()
	assert.NotPanics(t, func() {
		c.SetButtons(0, 0xFF)
		c.SetButtons(1, 0x00)
	})
}

func TestFrameBufferIsRightSize(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadROMBytes(buildNROM(0xEA)))
	fb := c.FrameBuffer()
	assert.Equal(t, 256*240, len(fb))
}

func TestDrainAudioClearsBuffer(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadROMBytes(buildNROM(0xEA)))
	c.RunUntilFrame(2)
	first := c.DrainAudio()
	second := c.DrainAudio()
	assert.Empty(t, second)
	_ = first
}
