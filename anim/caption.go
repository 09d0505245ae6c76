/*
 * caption.go, part of gophonon.
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

package anim

import (
	"fmt"
	"math"
)

//The captions of all the frames of a mode must have the same width, or the
//text jitters as the GIF loops. Hence the fixed-decimal frequency label and
//the fixed amplitude field width, both chosen from the largest values the
//mode will display.

// FreqLabel formats a frequency in cm^-1 with fewer decimals the larger its
// magnitude: two below 10, one below 100, none from 100 up.
func FreqLabel(invcm float64) string {
	abs := math.Abs(invcm)
	switch {
	case abs == 0:
		return "0.00"
	case abs < 10:
		return fmt.Sprintf("%.2f", invcm)
	case abs < 100:
		return fmt.Sprintf("%.1f", invcm)
	default:
		return fmt.Sprintf("%.0f", invcm)
	}
}

// AmpWidth returns the printf field width that fits every amplitude in amps
// at 3 decimals: the digits of the integer part of the largest magnitude,
// plus room for the sign, the point and the decimals. An all-zero amplitude
// set means the trajectory metadata is broken, and is an error.
func AmpWidth(amps []float64) (int, error) {
	max := 0.0
	for _, a := range amps {
		if abs := math.Abs(a); abs > max {
			max = abs
		}
	}
	if max == 0 {
		return 0, errorf(true, "AmpWidth", "All the amplitudes of the mode are zero")
	}
	power := int(math.Floor(math.Log10(max)))
	if power < 0 {
		power = 0
	}
	return power + 6, nil
}

// Caption returns the text drawn under a frame: the mode index, the
// frequency label and the amplitude at the given field width.
func Caption(mode int, freqLabel string, amplitude float64, width int) string {
	return fmt.Sprintf("Mode %d: v = %s cm^-1, Q = %*.3f amu^1/2 A", mode, freqLabel, width, amplitude)
}
