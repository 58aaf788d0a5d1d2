// Command gones runs the NES emulator core against an ebiten-backed
// video/audio/input shell, or headless for offline regression driving.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/KINGGOLDrus/dendulator/internal/appconfig"
	"github.com/KINGGOLDrus/dendulator/internal/console"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "path to an iNES ROM file")
		configFile = flag.String("config", "", "path to a config JSON file")
		nogui      = flag.Bool("nogui", false, "run headless, no ebiten window")
		frames     = flag.Int("frames", 0, "headless mode: stop after this many frames (0 = 60 frames)")
	)
	flag.Parse()

	setupGracefulShutdown()

	if *romFile == "" {
		log.Fatal("gones: -rom is required")
	}

	configPath := *configFile
	if configPath == "" {
		configPath = appconfig.DefaultPath()
	}
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		log.Fatalf("gones: loading config: %v", err)
	}

	nes := console.New()
	if err := nes.LoadROM(*romFile); err != nil {
		log.Fatalf("gones: loading rom: %v", err)
	}
	log.Printf("gones: loaded %s", *romFile)

	if *nogui {
		runHeadless(nes, *frames)
		return
	}
	runGUI(nes, cfg)
}

func runHeadless(nes *console.Console, frames int) {
	if frames <= 0 {
		frames = cfg_defaultHeadlessFrames
	}
	// Step and drain one frame at a time rather than calling
	// RunUntilFrame in one shot: there's no audio sink in headless mode,
	// so the APU's sample ring has to be emptied every frame instead of
	// growing for the whole run.
	for i := 0; i < frames; i++ {
		nes.StepFrame()
		nes.DrainAudio()
	}
	log.Printf("gones: ran %d frames headless, stopping", frames)
}

const cfg_defaultHeadlessFrames = 60

func setupGracefulShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Println("gones: interrupt received, shutting down")
		os.Exit(0)
	}()
}
