/*
 * modulate.go, part of gophonon.
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
	"time"

	"github.com/spf13/cobra"

	phonon "github.com/rmera/gophonon"
	"github.com/rmera/gophonon/traj/xyz"
)

const removeRetryDelay = 500 * time.Millisecond

var modulateCmd = &cobra.Command{
	Use:   "modulate",
	Short: "Expand the structure and write per-mode modulation trajectories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		return modulate(cfg)
	},
}

//reads the input, going through the cache when one is configured.
func readInput(cfg *Config) (*phonon.Structure, *phonon.ModeSet, error) {
	if cfg.Cache != "" {
		if s, m, ok := phonon.LoadCached(cfg.Input, cfg.Cache); ok {
			logger.Infof("Loaded cached parse of %s from %s", cfg.Input, cfg.Cache)
			return s, m, nil
		}
	}
	logger.Infof("Reading %s...", cfg.Input)
	s, m, err := phonon.ReadPhonopy(cfg.Input)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Cache != "" {
		if err := phonon.SaveCache(cfg.Input, cfg.Cache, s, m); err != nil {
			logger.Warnf("Can't write cache file %s: %v", cfg.Cache, err)
		}
	}
	return s, m, nil
}

func modulate(cfg *Config) error {
	s, modes, err := readInput(cfg)
	if err != nil {
		return err
	}
	logger.Infof("%d atoms, %d modes", s.Len(), modes.Len())
	bonds, err := phonon.NewBondTable(cfg.BondDistances)
	if err != nil {
		return err
	}
	logger.Infof("Expanding structure over a %dx%dx%d supercell...", 2*cfg.Supercell[0]+1, 2*cfg.Supercell[1]+1, 2*cfg.Supercell[2]+1)
	exp, err := phonon.Expand(s, cfg.Supercell[0], cfg.Supercell[1], cfg.Supercell[2], bonds, cfg.Restrict)
	if err != nil {
		return err
	}
	for i, n := range exp.PassAdditions {
		logger.Infof("Pass %d: added %d atom(s)", i+1, n)
	}
	logger.Infof("Expanded structure contains %d atoms", exp.Len())
	name := cfg.OutputPrefix + "_StructureExpansion.xyz"
	ew, err := xyz.NewWriter(name, exp.Len())
	if err != nil {
		return err
	}
	err = ew.WNext(exp.Types, exp.Cart, "Expanded Structure")
	ew.Close()
	if err != nil {
		return err
	}
	logger.Infof("Wrote %s", name)
	sel, err := cfg.Selector()
	if err != nil {
		return err
	}
	arcName := cfg.OutputPrefix + "_Animations.tar.gz"
	arc, err := xyz.NewArchive(arcName)
	if err != nil {
		return err
	}
	defer arc.Close()
	mergedName := cfg.OutputPrefix + "_Animations-Merged.xyz"
	merged, err := xyz.NewWriter(mergedName, exp.Len())
	if err != nil {
		return err
	}
	defer merged.Close()
	logger.Infof("Writing per-mode trajectories to %s...", arcName)
	err = phonon.Modulate(exp, modes, sel, cfg.Steps, cfg.MaxAmplitude, cfg.Scale, func(t *phonon.Trajectory) error {
		return writeMode(t, exp, arc, merged)
	})
	if err != nil {
		return err
	}
	logger.Infof("Wrote %s", mergedName)
	return nil
}

//writes one mode's trajectory: its own XYZ file (moved into the archive
//afterwards) and its frames appended to the merged trajectory.
func writeMode(t *phonon.Trajectory, exp *phonon.Expansion, arc *xyz.Archive, merged *xyz.Writer) error {
	name := fmt.Sprintf("Mode-%03d.xyz", t.Mode)
	w, err := xyz.NewWriter(name, exp.Len())
	if err != nil {
		return err
	}
	for i, frame := range t.Frames {
		if err := w.WNext(exp.Types, frame, xyz.ModeComment(t.FreqTHz, t.FreqInvCm(), t.Amplitudes[i])); err != nil {
			w.Close()
			return err
		}
	}
	w.Close()
	if err := arc.AddFile(name, "Animations/"+name); err != nil {
		return err
	}
	if err := xyz.RemoveWithRetry(name, removeRetryDelay); err != nil {
		return err
	}
	for i, frame := range t.Frames {
		meta := xyz.FrameMeta{Mode: t.Mode, FreqTHz: t.FreqTHz, FreqInvCm: t.FreqInvCm(), Amplitude: t.Amplitudes[i]}
		if err := merged.WNext(exp.Types, frame, meta.CommentLine()); err != nil {
			return err
		}
	}
	logger.Infof("Mode %d (%.3f THz) done", t.Mode, t.FreqTHz)
	return nil
}
