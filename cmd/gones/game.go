package main

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/KINGGOLDrus/dendulator/internal/appconfig"
	"github.com/KINGGOLDrus/dendulator/internal/console"
	"github.com/KINGGOLDrus/dendulator/internal/input"
)

// game implements ebiten.Game, translating keyboard state into controller
// bitmasks each tick, blitting the PPU's frame buffer each draw, and
// keeping the audio player alive for the process's lifetime.
type game struct {
	nes         *console.Console
	cfg         *appconfig.Config
	screen      *ebiten.Image
	pixels      []byte
	audioPlayer *audio.Player
}

func newGame(nes *console.Console, cfg *appconfig.Config) *game {
	return &game{
		nes:         nes,
		cfg:         cfg,
		screen:      ebiten.NewImage(256, 240),
		pixels:      make([]byte, 256*240*4),
		audioPlayer: startAudio(nes, cfg),
	}
}

func (g *game) Update() error {
	g.nes.SetButtons(0, pollMask(g.cfg.Input.Player1))
	g.nes.SetButtons(1, pollMask(g.cfg.Input.Player2))
	g.nes.StepFrame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.nes.FrameBuffer()
	for i, px := range fb {
		o := i * 4
		g.pixels[o+0] = byte(px >> 16)
		g.pixels[o+1] = byte(px >> 8)
		g.pixels[o+2] = byte(px)
		g.pixels[o+3] = 0xFF
	}
	g.screen.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	bounds := screen.Bounds()
	scaleX := float64(bounds.Dx()) / 256
	scaleY := float64(bounds.Dy()) / 240
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	op.GeoM.Scale(scale, scale)
	screen.Fill(color.Black)
	screen.DrawImage(g.screen, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func pollMask(km appconfig.KeyMapping) uint8 {
	var mask uint8
	set := func(b input.Button, name string) {
		if key, ok := keyByName[name]; ok && ebiten.IsKeyPressed(key) {
			mask |= uint8(b)
		}
	}
	set(input.ButtonA, km.A)
	set(input.ButtonB, km.B)
	set(input.ButtonSelect, km.Select)
	set(input.ButtonStart, km.Start)
	set(input.ButtonUp, km.Up)
	set(input.ButtonDown, km.Down)
	set(input.ButtonLeft, km.Left)
	set(input.ButtonRight, km.Right)
	return mask
}

// keyByName maps the subset of ebiten key names used in appconfig's
// default bindings to their ebiten.Key values.
var keyByName = map[string]ebiten.Key{
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,
	"KeyW":       ebiten.KeyW,
	"KeyA":       ebiten.KeyA,
	"KeyS":       ebiten.KeyS,
	"KeyD":       ebiten.KeyD,
	"KeyX":       ebiten.KeyX,
	"KeyZ":       ebiten.KeyZ,
	"KeyJ":       ebiten.KeyJ,
	"KeyK":       ebiten.KeyK,
	"KeyP":       ebiten.KeyP,
	"KeyO":       ebiten.KeyO,
	"Enter":      ebiten.KeyEnter,
	"ShiftRight": ebiten.KeyShiftRight,
}

func runGUI(nes *console.Console, cfg *appconfig.Config) {
	scale := cfg.Window.Scale
	if scale <= 0 {
		scale = 3
	}
	ebiten.SetWindowSize(256*scale, 240*scale)
	ebiten.SetWindowTitle("gones")
	ebiten.SetVsyncEnabled(cfg.Window.VSync)
	if cfg.Window.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	if err := ebiten.RunGame(newGame(nes, cfg)); err != nil {
		log.Fatalf("gones: run game: %v", err)
	}
}
