package main

import (
	"encoding/binary"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/KINGGOLDrus/dendulator/internal/appconfig"
	"github.com/KINGGOLDrus/dendulator/internal/console"
)

// pcmStream adapts Console.DrainAudio's 8-bit unsigned PCM ring into the
// 16-bit stereo little-endian stream ebiten/audio's player reads, so the
// APU's sample buffer never grows past whatever the player hasn't
// consumed yet.
type pcmStream struct {
	nes     *console.Console
	pending []byte
}

func newPCMStream(nes *console.Console) *pcmStream {
	return &pcmStream{nes: nes}
}

func (s *pcmStream) Read(p []byte) (int, error) {
	for len(s.pending) < len(p) {
		samples := s.nes.DrainAudio()
		if len(samples) == 0 {
			break
		}
		for _, v := range samples {
			sample := uint16(int16(int(v)-128) * 256)
			var frame [4]byte
			binary.LittleEndian.PutUint16(frame[0:2], sample)
			binary.LittleEndian.PutUint16(frame[2:4], sample)
			s.pending = append(s.pending, frame[:]...)
		}
	}
	if len(s.pending) == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// startAudio wires the console's PCM ring into an ebiten/audio player. It
// returns nil (and logs) if audio is disabled or the player can't start;
// callers must tolerate a nil player.
func startAudio(nes *console.Console, cfg *appconfig.Config) *audio.Player {
	if !cfg.Audio.Enabled {
		return nil
	}
	ctx := audio.NewContext(cfg.Audio.SampleRate)
	player, err := ctx.NewPlayer(newPCMStream(nes))
	if err != nil {
		log.Printf("gones: audio init failed: %v", err)
		return nil
	}
	player.SetVolume(cfg.Audio.Volume)
	player.Play()
	return player
}
