/*
 * config.go, part of gophonon.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * gophonon is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	phonon "github.com/rmera/gophonon"
)

// ModeSelect is the mode-selection block of the configuration: a kind
// ("all", "index", "thz" or "invcm") and optional bounds.
type ModeSelect struct {
	Kind string   `yaml:"kind"`
	Min  *float64 `yaml:"min"`
	Max  *float64 `yaml:"max"`
}

// Frames describes where the externally rendered frame images live and how
// they are named (dir/prefix.N.ext).
type Frames struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Ext    string `yaml:"ext"`
}

// Config holds the static parameters of a run. Both subcommands read the
// same file and use the parts that concern them.
type Config struct {
	Input         string             `yaml:"input"`          //Phonopy mesh.yaml path.
	Cache         string             `yaml:"cache"`          //parsed-input cache path; empty disables caching.
	OutputPrefix  string             `yaml:"output_prefix"`  //prefix for everything the run writes.
	BondDistances map[string]float64 `yaml:"bond_distances"` //pair -> max bond distance, in A.
	Supercell     []int              `yaml:"supercell"`      //cells to pad along +/- a, b, c.
	Restrict      map[string]float64 `yaml:"restrict"`       //atom type -> fractional threshold.
	Scale         bool               `yaml:"scale_displacements"`
	MaxAmplitude  float64            `yaml:"max_amplitude"`
	Steps         int                `yaml:"modulation_steps"`
	ModeSelect    *ModeSelect        `yaml:"mode_select"`

	Frames          Frames      `yaml:"frames"`
	Background      *[]float64  `yaml:"background"` //RGB in [0,1]; nil means infer.
	Overwrite       bool        `yaml:"overwrite"`
	CaptionFraction *float64    `yaml:"caption_fraction"`
	Delay           int         `yaml:"delay"` //per-frame GIF delay, 1/100 s.
	Debug           bool        `yaml:"debug"`
}

// LoadConfig reads and validates the configuration at path, filling in the
// defaults for whatever is not given.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg := &Config{
		OutputPrefix: "gophonon",
		Supercell:    []int{1, 1, 1},
		Scale:        true,
		MaxAmplitude: 0.25,
		Steps:        32,
		Delay:        10,
	}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("can't parse configuration %s: %w", path, err)
	}
	if cfg.Input == "" {
		return nil, fmt.Errorf("configuration %s sets no input file", path)
	}
	if len(cfg.Supercell) != 3 {
		return nil, fmt.Errorf("supercell must have 3 components, got %d", len(cfg.Supercell))
	}
	if cfg.Background != nil && len(*cfg.Background) != 3 {
		return nil, fmt.Errorf("background must have 3 components (RGB), got %d", len(*cfg.Background))
	}
	return cfg, nil
}

// Selector translates the mode-selection block into a phonon.Selector.
func (cfg *Config) Selector() (phonon.Selector, error) {
	var sel phonon.Selector
	ms := cfg.ModeSelect
	if ms == nil {
		return sel, nil
	}
	switch strings.ToLower(ms.Kind) {
	case "", "all":
		return sel, nil
	case "index":
		sel.Kind = phonon.SelectIndex
	case "thz", "freq_thz":
		sel.Kind = phonon.SelectTHz
	case "invcm", "freq_invcm":
		sel.Kind = phonon.SelectInvCm
	default:
		return sel, fmt.Errorf("unknown mode_select kind %q (want all, index, thz or invcm)", ms.Kind)
	}
	if ms.Min != nil {
		sel.Min, sel.HasMin = *ms.Min, true
	}
	if ms.Max != nil {
		sel.Max, sel.HasMax = *ms.Max, true
	}
	return sel, nil
}
