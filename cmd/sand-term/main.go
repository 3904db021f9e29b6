// Command sand-term runs a simulation in the terminal. Drag with the left
// mouse button to paint, 1-9 pick a brush, space pauses, n steps, r resets
// and q quits.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"mad-sand/internal/app"
	"mad-sand/internal/core"
	_ "mad-sand/internal/sims/sand"
	"mad-sand/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 80, 48
	cfg.Bind(flag.CommandLine)
	logFile := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	if err := run(cfg, *logFile); err != nil {
		slog.Error("sand-term", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *app.Config, logPath string) error {
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logger := app.NewLogger(out, cfg.LogLevel)
	slog.SetDefault(logger)

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		return errors.New("unknown sim " + cfg.Sim)
	}
	sim := factory(cfg.SimOptions())
	sim.Reset(cfg.Seed)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting", slog.String("sim", sim.Name()), slog.Int("tps", cfg.TPS))
	err = term.New(screen, sim, cfg.Seed).Run(ctx, cfg.TPS)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
