package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim       string
	Scale     int
	TPS       int
	Seed      int64
	Width     int
	Height    int
	Materials string
	HUDWidth  int
	LogLevel  string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "sand",
		Scale:    3,
		TPS:      60,
		Seed:     1337,
		Width:    200,
		Height:   150,
		HUDWidth: 260,
		LogLevel: "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.StringVar(&c.Materials, "materials", c.Materials, "YAML material table overriding the built-in one")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels (0 hides it)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
}

// SimOptions returns the factory configuration map for the selected sim.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{
		"w":    strconv.Itoa(c.Width),
		"h":    strconv.Itoa(c.Height),
		"seed": strconv.FormatInt(c.Seed, 10),
	}
	if c.Materials != "" {
		opts["materials"] = c.Materials
	}
	return opts
}
