package main

import (
	"mad-sand/internal/sims/sand"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type materialDoc struct {
	Materials []materialRow `yaml:"materials"`
}

type materialRow struct {
	Name               string  `yaml:"name"`
	Solid              bool    `yaml:"solid"`
	Movable            bool    `yaml:"movable"`
	InertialResistance float64 `yaml:"inertial_resistance"`
	RollSpeed          float64 `yaml:"roll_speed"`
	Color              []int   `yaml:"color,flow"`
}

func newMaterialsCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Print the effective material table as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := sand.DefaultTable()
			if path != "" {
				t, err := sand.LoadMaterials(path)
				if err != nil {
					return err
				}
				table = t
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(materialTable(table)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&path, "materials", "", "YAML material table to merge over the defaults")
	return cmd
}

func materialTable(t *sand.Table) materialDoc {
	var doc materialDoc
	for _, m := range sand.Materials() {
		p := t.Props(m)
		doc.Materials = append(doc.Materials, materialRow{
			Name:               p.Name,
			Solid:              p.Solid,
			Movable:            p.Movable,
			InertialResistance: p.InertialResistance,
			RollSpeed:          p.RollSpeed,
			Color:              []int{int(p.Color.R), int(p.Color.G), int(p.Color.B), int(p.Color.A)},
		})
	}
	return doc
}
