package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Kissing-Discs/internal/audio"
	"github.com/Garsondee/Kissing-Discs/internal/game"
	"github.com/Garsondee/Kissing-Discs/internal/term"
)

func main() {
	cfg := game.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	quiet := flag.Bool("quiet", false, "disable sound cues")
	flag.Parse()

	g, err := game.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Audio first: once tcell owns the terminal, log output would be lost.
	var sounds *audio.SoundManager
	if !*quiet {
		sounds = audio.NewSoundManager()
		if err := sounds.Initialize(); err != nil {
			log.Printf("audio unavailable: %v", err)
			sounds = nil
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cues term.CuePlayer
	if sounds != nil {
		cues = sounds
	}
	runErr := term.New(screen, g, cues).Run(ctx)

	screen.Fini()
	if sounds != nil {
		sounds.Cleanup()
	}
	if runErr != nil && ctx.Err() == nil {
		log.Fatal(runErr)
	}
}
