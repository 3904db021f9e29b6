package sand

import "strconv"

// Params holds the tunable physics constants.
type Params struct {
	// FreeFallThreshold is T: the free-fall count at which a grounded cell
	// counts as settled.
	FreeFallThreshold int
	Gravity           float64
	Drag              float64
	// LandingCap bounds the lateral kick absorbed from vertical speed on
	// landing.
	LandingCap float64
	// EnclosedNeighbors is the movable-solid neighbor count at which a cell
	// stops disturbing its neighbors.
	EnclosedNeighbors int
	// Tint darkens settled cells when rendering.
	Tint bool
}

// Config controls the sand simulation dimensions, seed and materials.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Materials is the material table; nil selects DefaultTable.
	Materials *Table

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  200,
		Height: 200,
		Seed:   1337,
		Params: DefaultParams(),
	}
}

// DefaultParams returns the standard physics constants.
func DefaultParams() Params {
	return Params{
		FreeFallThreshold: 10,
		Gravity:           0.3,
		Drag:              0.8,
		LandingCap:        4.0,
		EnclosedNeighbors: 5,
		Tint:              true,
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Invalid values are ignored. The "materials" key names a YAML table file;
// load failures are reported through the returned error while the rest of
// the config is still applied.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["free_fall_threshold"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.FreeFallThreshold = parsed
		}
	}
	if v, ok := cfg["gravity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Gravity = parsed
		}
	}
	if v, ok := cfg["drag"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.Drag = parsed
		}
	}
	if v, ok := cfg["landing_cap"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.LandingCap = parsed
		}
	}
	if v, ok := cfg["enclosed_neighbors"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 8 {
			c.Params.EnclosedNeighbors = parsed
		}
	}
	if v, ok := cfg["tint"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.Tint = parsed
		}
	}
	if path := cfg["materials"]; path != "" {
		t, err := LoadMaterials(path)
		if err != nil {
			return c, err
		}
		c.Materials = t
	}
	return c, nil
}
