package cartridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KINGGOLDrus/dendulator/internal/mapper"
)

func buildImage(prgBanks, chrBanks uint8, flags6, flags7 uint8) *bytes.Buffer {
	var img bytes.Buffer
	img.WriteString("NES\x1A")
	img.WriteByte(prgBanks)
	img.WriteByte(chrBanks)
	img.WriteByte(flags6)
	img.WriteByte(flags7)
	img.Write(make([]byte, 8))
	img.Write(make([]byte, int(prgBanks)*prgBankSize))
	if chrBanks > 0 {
		img.Write(make([]byte, int(chrBanks)*chrBankSize))
	}
	return &img
}

func TestLoadRejectsBadMagic(t *testing.T) {
	var img bytes.Buffer
	img.WriteString("XXXX")
	img.Write(make([]byte, 12))
	_, err := Load(&img)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestLoadRejectsZeroPRGBanks(t *testing.T) {
	img := buildImage(0, 1, 0, 0)
	_, err := Load(img)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLoadSkipsTrainer(t *testing.T) {
	var img bytes.Buffer
	img.WriteString("NES\x1A")
	img.WriteByte(1)
	img.WriteByte(1)
	img.WriteByte(0x04) // trainer present
	img.WriteByte(0)
	img.Write(make([]byte, 8))
	img.Write(make([]byte, 512)) // trainer bytes
	prg := make([]byte, prgBankSize)
	prg[0] = 0x42
	img.Write(prg)
	img.Write(make([]byte, chrBankSize))

	c, err := Load(&img)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), c.CPURead(0x8000))
}

func TestLoadAllocatesCHRRAMWhenCHRBanksIsZero(t *testing.T) {
	img := buildImage(1, 0, 0, 0)
	c, err := Load(img)
	require.NoError(t, err)
	c.PPUWrite(0x0000, 0x99)
	assert.Equal(t, uint8(0x99), c.PPURead(0x0000), "CHR8==0 means CHR-RAM, which should be writable")
}

func TestLoadRejectsUnsupportedMapper(t *testing.T) {
	img := buildImage(1, 1, 0xF0, 0) // mapper id 15, unsupported
	_, err := Load(img)
	assert.ErrorIs(t, err, ErrUnsupportedMapper)
}

func TestLoadMasksLegacyTrailerMapperNibble(t *testing.T) {
	// flags7 high nibble set above the iNES 1.0 range should be masked
	// down rather than read as a NES 2.0 extension.
	img := buildImage(1, 1, 0x00, 0x50) // mapper id would be 0x50 without masking; high nibble 5 > 4 masks it to 0
	c, err := Load(img)
	require.NoError(t, err)
	assert.LessOrEqual(t, c.MapperID(), uint8(4))
}

func TestMirrorReflectsFlags6(t *testing.T) {
	img := buildImage(1, 1, 0x01, 0) // vertical mirroring bit set
	c, err := Load(img)
	require.NoError(t, err)
	assert.Equal(t, mapper.MirrorVertical, c.Mirror())
}

func TestMapperIDReflectsHeaderNibbles(t *testing.T) {
	img := buildImage(1, 1, 0x10, 0x00) // mapper 1 (MMC1) in flags6 high nibble
	c, err := Load(img)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), c.MapperID())
}
