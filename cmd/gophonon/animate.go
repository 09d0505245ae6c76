/*
 * animate.go, part of gophonon.
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
	"github.com/spf13/cobra"

	"github.com/rmera/gophonon/anim"
)

var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Assemble externally rendered frames into captioned per-mode GIFs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		return animate(cfg)
	},
}

func animate(cfg *Config) error {
	A := anim.NewAssembler(cfg.OutputPrefix)
	A.Overwrite = cfg.Overwrite
	A.Debug = cfg.Debug
	if cfg.Delay > 0 {
		A.Delay = cfg.Delay
	}
	if cfg.Background != nil {
		b := *cfg.Background
		A.Background = anim.NewBackground(&anim.Color{R: b[0], G: b[1], B: b[2]})
	}
	if cfg.CaptionFraction != nil {
		A.Compositor.CaptionFrac = *cfg.CaptionFraction
	}
	merged := cfg.OutputPrefix + "_Animations-Merged.xyz"
	logger.Infof("Reading %s and scanning %s...", merged, cfg.Frames.Dir)
	if err := A.Run(merged, cfg.Frames.Dir, cfg.Frames.Prefix, cfg.Frames.Ext); err != nil {
		return err
	}
	logger.Info("Done")
	return nil
}
