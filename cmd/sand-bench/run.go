package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net"
	"net/http"
	"time"

	"mad-sand/internal/metrics"
	"mad-sand/internal/sims/sand"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type runOptions struct {
	Width, Height int
	Seed          int64
	Ticks         int
	PourTicks     int
	Material      string
	Materials     string
	CensusEvery   int
	MetricsAddr   string
}

func defaultRunOptions() runOptions {
	return runOptions{
		Width:       200,
		Height:      150,
		Seed:        1337,
		Ticks:       1000,
		PourTicks:   200,
		Material:    "sand",
		CensusEvery: 100,
	}
}

type runReport struct {
	Ticks    int
	Elapsed  time.Duration
	Swaps    int
	Disturbs int
	Census   sand.Census
}

// TicksPerSecond reports throughput over the whole run.
func (r runReport) TicksPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ticks) / r.Elapsed.Seconds()
}

func newRunCmd() *cobra.Command {
	opts := defaultRunOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Pour material into an empty grid and step it for a fixed number of ticks",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFor(cmd)
			reg := prometheus.NewRegistry()
			rec := metrics.New(reg)

			if opts.MetricsAddr != "" {
				_, stop, err := serveMetrics(opts.MetricsAddr, reg, logger)
				if err != nil {
					return err
				}
				defer stop()
			}

			report, err := runBench(cmd.Context(), opts, rec, logger)
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.Width, "w", opts.Width, "grid width")
	f.IntVar(&opts.Height, "h", opts.Height, "grid height")
	f.Int64Var(&opts.Seed, "seed", opts.Seed, "simulation seed")
	f.IntVar(&opts.Ticks, "ticks", opts.Ticks, "number of ticks to run")
	f.IntVar(&opts.PourTicks, "pour", opts.PourTicks, "ticks during which material is poured from the top")
	f.StringVar(&opts.Material, "material", opts.Material, "material to pour")
	f.StringVar(&opts.Materials, "materials", opts.Materials, "YAML material table")
	f.IntVar(&opts.CensusEvery, "census-every", opts.CensusEvery, "ticks between census updates (0 disables)")
	f.StringVar(&opts.MetricsAddr, "metrics-addr", opts.MetricsAddr, "address to serve /metrics on while running")
	return cmd
}

func runBench(ctx context.Context, opts runOptions, rec *metrics.Recorder, logger *slog.Logger) (runReport, error) {
	material, ok := sand.ParseMaterial(opts.Material)
	if !ok {
		return runReport{}, fmt.Errorf("unknown material %q", opts.Material)
	}
	if opts.Ticks < 0 {
		return runReport{}, fmt.Errorf("ticks must not be negative, got %d", opts.Ticks)
	}

	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Seed = opts.Width, opts.Height, opts.Seed
	if opts.Materials != "" {
		table, err := sand.LoadMaterials(opts.Materials)
		if err != nil {
			return runReport{}, err
		}
		cfg.Materials = table
	}
	g := sand.NewWithConfig(cfg)
	size := g.Size()
	spout := size.W / 4
	from := image.Pt(size.W/2-spout/2, 0)
	to := image.Pt(size.W/2+spout/2, 0)

	logger.Info("run started",
		slog.Int("w", size.W), slog.Int("h", size.H),
		slog.Int64("seed", opts.Seed), slog.Int("ticks", opts.Ticks),
		slog.String("material", material.String()))

	var report runReport
	start := time.Now()
	for tick := 0; tick < opts.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			logger.Warn("run interrupted", slog.Int("tick", tick))
			break
		}
		if tick < opts.PourTicks {
			g.PlaceLine(from, to, material)
		}
		t0 := time.Now()
		g.ExecuteLogic()
		stats := g.Stats()
		rec.ObserveTick(time.Since(t0), stats)

		report.Ticks++
		report.Swaps += stats.Swaps
		report.Disturbs += stats.Disturbs
		if opts.CensusEvery > 0 && report.Ticks%opts.CensusEvery == 0 {
			census := g.Census()
			rec.ObserveCensus(census)
			logger.Debug("census",
				slog.Int("tick", report.Ticks),
				slog.Int(material.String(), census.Count(material)),
				slog.Int("settled", census.Settled()))
		}
	}
	report.Elapsed = time.Since(start)
	report.Census = g.Census()
	rec.ObserveCensus(report.Census)

	logger.Info("run finished",
		slog.Int("ticks", report.Ticks),
		slog.Duration("elapsed", report.Elapsed),
		slog.Float64("tps", report.TicksPerSecond()))
	return report, nil
}

func printReport(cmd *cobra.Command, r runReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ticks:      %d\n", r.Ticks)
	fmt.Fprintf(out, "elapsed:    %s\n", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "ticks/sec:  %.1f\n", r.TicksPerSecond())
	fmt.Fprintf(out, "swaps:      %d\n", r.Swaps)
	fmt.Fprintf(out, "disturbs:   %d\n", r.Disturbs)
	fmt.Fprintf(out, "settled:    %d\n", r.Census.Settled())
	for _, m := range sand.Materials() {
		if n := r.Census.Count(m); n > 0 {
			fmt.Fprintf(out, "  %-8s %d\n", m.String()+":", n)
		}
	}
}

// serveMetrics exposes reg on addr until the returned stop func is called.
// It returns the bound address.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", slog.String("error", err.Error()))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", ln.Addr().String()))
	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
