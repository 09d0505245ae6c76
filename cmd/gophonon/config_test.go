/*
 * config_test.go, part of gophonon.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	phonon "github.com/rmera/gophonon"
)

func writeConfig(T *testing.T, text string) string {
	T.Helper()
	path := filepath.Join(T.TempDir(), "gophonon.yaml")
	require.NoError(T, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestLoadConfigDefaults(T *testing.T) {
	cfg, err := LoadConfig(writeConfig(T, "input: mesh.yaml\n"))
	require.NoError(T, err)
	assert.Equal(T, "mesh.yaml", cfg.Input)
	assert.Equal(T, "gophonon", cfg.OutputPrefix)
	assert.Equal(T, []int{1, 1, 1}, cfg.Supercell)
	assert.True(T, cfg.Scale)
	assert.Equal(T, 0.25, cfg.MaxAmplitude)
	assert.Equal(T, 32, cfg.Steps)
	assert.Equal(T, 10, cfg.Delay)
	sel, err := cfg.Selector()
	require.NoError(T, err)
	assert.Equal(T, phonon.SelectAll, sel.Kind)
}

func TestLoadConfigFull(T *testing.T) {
	text := `
input: mesh-eigenvectors.yaml
cache: mesh.cache
output_prefix: MAPbI3
bond_distances:
  C-H: 1.60
  Pb-I: 3.50
supercell: [2, 1, 1]
restrict:
  Pb: 0.2
scale_displacements: false
max_amplitude: 0.5
modulation_steps: 16
mode_select:
  kind: invcm
  min: 30
  max: 70
frames:
  dir: /tmp/frames
  prefix: MAPbI3
  ext: .ppm
background: [1.0, 1.0, 1.0]
overwrite: true
caption_fraction: 0.08
debug: true
`
	cfg, err := LoadConfig(writeConfig(T, text))
	require.NoError(T, err)
	assert.Equal(T, "MAPbI3", cfg.OutputPrefix)
	assert.Equal(T, 1.60, cfg.BondDistances["C-H"])
	assert.Equal(T, []int{2, 1, 1}, cfg.Supercell)
	assert.Equal(T, 0.2, cfg.Restrict["Pb"])
	assert.False(T, cfg.Scale)
	assert.Equal(T, 16, cfg.Steps)
	assert.True(T, cfg.Overwrite)
	require.NotNil(T, cfg.CaptionFraction)
	assert.Equal(T, 0.08, *cfg.CaptionFraction)
	require.NotNil(T, cfg.Background)
	assert.Equal(T, []float64{1, 1, 1}, *cfg.Background)
	assert.Equal(T, ".ppm", cfg.Frames.Ext)
	sel, err := cfg.Selector()
	require.NoError(T, err)
	assert.Equal(T, phonon.SelectInvCm, sel.Kind)
	assert.True(T, sel.HasMin)
	assert.True(T, sel.HasMax)
	assert.Equal(T, 30.0, sel.Min)
	assert.Equal(T, 70.0, sel.Max)
}

func TestLoadConfigBad(T *testing.T) {
	_, err := LoadConfig(writeConfig(T, "output_prefix: x\n"))
	assert.Error(T, err, "a config without an input file is useless")
	_, err = LoadConfig(writeConfig(T, "input: a\nsupercell: [1, 1]\n"))
	assert.Error(T, err)
	_, err = LoadConfig(writeConfig(T, "input: a\nnot_a_field: 3\n"))
	assert.Error(T, err, "unknown fields point at typos and must be rejected")
	cfg, err := LoadConfig(writeConfig(T, "input: a\nmode_select:\n  kind: sideways\n"))
	require.NoError(T, err)
	_, err = cfg.Selector()
	assert.Error(T, err)
}
