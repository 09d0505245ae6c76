/*
 * main.go, part of gophonon.
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

//gophonon animates the vibrational normal modes of a crystal: the modulate
//subcommand turns a Phonopy mesh.yaml into per-mode XYZ trajectories, and,
//after an external program (say, VMD) renders those into images, the animate
//subcommand assembles the images into captioned looping GIFs.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logger     *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:           "gophonon",
	Short:         "Animates phonon normal modes of molecular crystals",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := zap.NewDevelopment(zap.WithCaller(false))
		if err != nil {
			return err
		}
		logger = l.Sugar()
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "gophonon.yaml", "path to the run configuration file")
	rootCmd.AddCommand(modulateCmd, animateCmd)
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Errorf("%v", err)
		}
		os.Exit(1)
	}
}
