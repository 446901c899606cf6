//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"scroll-scene/internal/app"
	"scroll-scene/internal/content"
	"scroll-scene/internal/i18n"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logger := log.New(os.Stderr, "scene: ", log.LstdFlags|log.Lmsgprefix)

	cfg := app.NewConfig()
	if err := cfg.ParseEnv(); err != nil {
		logger.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	bundle, err := content.Load(cfg.Content)
	if err != nil {
		logger.Fatal(err)
	}
	catalog, err := i18n.Default()
	if err != nil {
		logger.Fatal(err)
	}
	tr := catalog.Translator(cfg.Locale)
	logger.Printf("locale %s of %v (requested %q)", tr.Locale(), catalog.Locales(), cfg.Locale)

	game, err := app.New(cfg, app.Options{Bundle: bundle, Translator: tr, Log: logger})
	if err != nil {
		logger.Fatal(err)
	}

	ebiten.SetWindowTitle(tr.T("site.title"))
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
