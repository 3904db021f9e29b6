package sand

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Material tags the substance of a cell. Cells carry only the tag; physical
// parameters are looked up in a Table.
type Material uint8

const (
	Air Material = iota
	Sand
	Stone
	Water
	Dirt
	Coal
	CO2

	materialCount
)

var materialNames = [materialCount]string{"air", "sand", "stone", "water", "dirt", "coal", "co2"}

// String returns the material's table name.
func (m Material) String() string {
	if m < materialCount {
		return materialNames[m]
	}
	return fmt.Sprintf("material(%d)", uint8(m))
}

// ParseMaterial resolves a table name to its tag.
func ParseMaterial(name string) (Material, bool) {
	for i, n := range materialNames {
		if n == name {
			return Material(i), true
		}
	}
	return Air, false
}

// Materials lists every known tag in ascending order.
func Materials() []Material {
	out := make([]Material, materialCount)
	for i := range out {
		out[i] = Material(i)
	}
	return out
}

// Props holds the physical parameters of one material.
type Props struct {
	Name               string
	Solid              bool
	Movable            bool
	InertialResistance float64
	RollSpeed          float64
	Color              color.RGBA
}

// Table maps every material tag to its parameters. A Table is immutable once
// built and may be shared between grids.
type Table struct {
	props [materialCount]Props
}

// Props returns the parameters for m. Unknown tags behave like air.
func (t *Table) Props(m Material) Props {
	if m >= materialCount {
		return t.props[Air]
	}
	return t.props[m]
}

// Solid reports whether m blocks movement.
func (t *Table) Solid(m Material) bool { return t.Props(m).Solid }

// Movable reports whether m is displaced by the force model.
func (t *Table) Movable(m Material) bool { return t.Props(m).Movable }

// Resistance returns the inertial resistance of m.
func (t *Table) Resistance(m Material) float64 { return t.Props(m).InertialResistance }

// RollSpeed returns the roll speed of m.
func (t *Table) RollSpeed(m Material) float64 { return t.Props(m).RollSpeed }

// Color returns the base color of m.
func (t *Table) Color(m Material) color.RGBA { return t.Props(m).Color }

//go:embed materials.yaml
var defaultMaterialsYAML []byte

var defaultTable = mustParseTable(defaultMaterialsYAML, bareTable())

// DefaultTable returns the built-in material table.
func DefaultTable() *Table { return defaultTable }

// ParseMaterials decodes a YAML material table. Materials missing from data
// keep their default parameters; entries override whole materials.
func ParseMaterials(data []byte) (*Table, error) {
	return parseTable(data, defaultTable)
}

// LoadMaterials reads a YAML material table from path.
func LoadMaterials(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read material table: %w", err)
	}
	t, err := ParseMaterials(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

type materialFile struct {
	Materials []materialEntry `yaml:"materials"`
}

type materialEntry struct {
	Name               string  `yaml:"name"`
	Solid              bool    `yaml:"solid"`
	Movable            bool    `yaml:"movable"`
	InertialResistance float64 `yaml:"inertial_resistance"`
	RollSpeed          float64 `yaml:"roll_speed"`
	Color              []int   `yaml:"color"`
}

func bareTable() *Table {
	t := &Table{}
	for i, name := range materialNames {
		t.props[i] = Props{Name: name, Color: color.RGBA{A: 255}}
	}
	return t
}

func mustParseTable(data []byte, base *Table) *Table {
	t, err := parseTable(data, base)
	if err != nil {
		panic("sand: embedded material table: " + err.Error())
	}
	return t
}

func parseTable(data []byte, base *Table) (*Table, error) {
	var file materialFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode material table: %w", err)
	}
	out := *base
	for i, entry := range file.Materials {
		m, ok := ParseMaterial(entry.Name)
		if !ok {
			return nil, fmt.Errorf("materials[%d]: unknown material %q", i, entry.Name)
		}
		props, err := entry.props()
		if err != nil {
			return nil, fmt.Errorf("materials[%d] (%s): %w", i, entry.Name, err)
		}
		if m == Air && props.Solid {
			return nil, fmt.Errorf("materials[%d] (air): air cannot be solid", i)
		}
		out.props[m] = props
	}
	return &out, nil
}

func (e materialEntry) props() (Props, error) {
	if e.InertialResistance < 0 || e.InertialResistance > 1 {
		return Props{}, fmt.Errorf("inertial_resistance %v outside [0,1]", e.InertialResistance)
	}
	if e.RollSpeed < 0 {
		return Props{}, fmt.Errorf("roll_speed %v is negative", e.RollSpeed)
	}
	if e.Movable && !e.Solid {
		return Props{}, fmt.Errorf("movable materials must be solid")
	}
	col, err := parseColor(e.Color)
	if err != nil {
		return Props{}, err
	}
	return Props{
		Name:               e.Name,
		Solid:              e.Solid,
		Movable:            e.Movable,
		InertialResistance: e.InertialResistance,
		RollSpeed:          e.RollSpeed,
		Color:              col,
	}, nil
}

func parseColor(vals []int) (color.RGBA, error) {
	if len(vals) != 3 && len(vals) != 4 {
		return color.RGBA{}, fmt.Errorf("color needs 3 or 4 components, got %d", len(vals))
	}
	var c [4]uint8
	c[3] = 255
	for i, v := range vals {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("color component %d out of range: %d", i, v)
		}
		c[i] = uint8(v)
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}
