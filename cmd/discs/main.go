package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Kissing-Discs/internal/audio"
	"github.com/Garsondee/Kissing-Discs/internal/game"
	"github.com/Garsondee/Kissing-Discs/internal/render"
)

func main() {
	cfg := game.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	mute := flag.Bool("mute", false, "start with sound off")
	flag.Parse()

	g, err := game.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	sounds := audio.NewSoundManager()
	if err := sounds.Initialize(); err != nil {
		log.Printf("audio unavailable: %v", err)
	}
	defer sounds.Cleanup()
	if *mute {
		sounds.ToggleMute()
	}

	ebiten.SetWindowTitle("Kissing Discs")
	ebiten.SetWindowSize(render.WindowSize(cfg))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(render.NewApp(g, sounds)); err != nil {
		log.Fatal(err)
	}
}
