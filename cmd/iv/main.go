package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"

	"iv/internal/config"
	"iv/internal/scan"
	"iv/internal/ui"
)

func main() {
	sortMethod := flag.Int("sort", -1, "sort method: 0=natural, 1=simple, 2=entry order (default from config)")
	flag.Parse()

	result := config.Load()
	for _, warning := range result.Warnings {
		log.Printf("Warning: %s", warning)
	}
	if *sortMethod >= 0 {
		result.Config.SortMethod = *sortMethod
	}

	entries, err := scan.Collect(afero.NewOsFs(), flag.Args(), result.Config.SortMethod)
	if err != nil {
		log.Fatal(err)
	}
	if len(entries) == 0 {
		log.Fatal("no image files specified")
	}

	if err := ui.InitGraphics(); err != nil {
		log.Fatal(err)
	}

	viewer := ui.NewViewer(result, entries)

	ebiten.SetWindowTitle("iv")
	ebiten.SetWindowSize(result.Config.WindowWidth, result.Config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if result.Config.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
