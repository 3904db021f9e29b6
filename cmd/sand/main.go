//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"mad-sand/internal/app"
	"mad-sand/internal/core"
	_ "mad-sand/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := app.NewLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		logger.Error("unknown sim", slog.String("sim", cfg.Sim))
		os.Exit(2)
	}

	sim := factory(cfg.SimOptions())
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.HUDWidth, cfg.Seed, logger)
	size := sim.Size()

	ebiten.SetWindowTitle("mad-sand - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	logger.Info("starting", slog.String("sim", sim.Name()), slog.Int("w", size.W), slog.Int("h", size.H))
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
