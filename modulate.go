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

package phonon

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SelectorKind discriminates the three ways of picking a subset of modes.
type SelectorKind int

const (
	SelectAll   SelectorKind = iota //every mode; bounds are ignored.
	SelectIndex                     //by 1-based mode index.
	SelectTHz                       //by frequency in THz.
	SelectInvCm                     //by frequency in cm^-1.
)

// Selector picks a contiguous range of modes, either by 1-based index or by
// frequency (in THz or cm^-1). Bounds are optional; an omitted bound
// defaults to the corresponding end of the full range. The zero value
// selects every mode.
type Selector struct {
	Kind   SelectorKind
	Min    float64 //lower bound (index or frequency, depending on Kind).
	Max    float64 //upper bound.
	HasMin bool
	HasMax bool
}

// Resolve turns the selector into a concrete half-open [start, end) range
// of zero-based mode indices for the given frequency list (in THz, assumed
// sorted ascending, as Phonopy writes them). It fails if both bounds are
// set with Min >= Max, if an index bound falls outside [1, 3N], or if a
// frequency lower bound exceeds the highest available frequency.
func (sel Selector) Resolve(freqs []float64) (int, int, error) {
	nmodes := len(freqs)
	if sel.Kind == SelectAll {
		return 0, nmodes, nil
	}
	if sel.HasMin && sel.HasMax && sel.Min >= sel.Max {
		return 0, 0, newError("Resolve", "Mode selection lower bound (%g) must be < upper bound (%g)", sel.Min, sel.Max)
	}
	if sel.Kind == SelectIndex {
		if sel.HasMin && (sel.Min < 1 || sel.Min > float64(nmodes)) {
			return 0, 0, newError("Resolve", "Mode selection by index: lower bound %g outside [1, %d]", sel.Min, nmodes)
		}
		if sel.HasMax && (sel.Max < 1 || sel.Max > float64(nmodes)) {
			return 0, 0, newError("Resolve", "Mode selection by index: upper bound %g outside [1, %d]", sel.Max, nmodes)
		}
		start := 0
		if sel.HasMin {
			start = int(sel.Min) - 1
		}
		end := nmodes
		if sel.HasMax {
			end = int(sel.Max)
		}
		return start, end, nil
	}
	//frequency selection; for cm^-1 the frequency list is converted, not
	//the bounds, to mirror how the metadata is written.
	sf := freqs
	if sel.Kind == SelectInvCm {
		sf = make([]float64, nmodes)
		for i, v := range freqs {
			sf[i] = v * THzToInvCm
		}
	}
	start := 0
	if sel.HasMin {
		start = -1
		for i, v := range sf {
			if v >= sel.Min {
				start = i
				break
			}
		}
		if start == -1 {
			return 0, 0, newError("Resolve", "Mode selection by frequency: lower bound %g above the highest frequency (%g)", sel.Min, sf[nmodes-1])
		}
	}
	end := nmodes
	if sel.HasMax {
		//the scan starts one past the lower index, so a selection always
		//spans at least one mode.
		end = start + 1
		for end < nmodes && sf[end] < sel.Max {
			end++
		}
	}
	return start, end, nil
}

// Trajectory is the modulation of one normal mode: Steps frames of
// Cartesian coordinates for the expanded structure, plus the normal-mode
// amplitude each frame corresponds to.
type Trajectory struct {
	Mode       int     //1-based mode index.
	FreqTHz    float64 //mode frequency, in THz.
	Amplitudes []float64
	Frames     []*mat.Dense //per step, an Mx3 coordinate set.
}

// FreqInvCm returns the mode frequency in cm^-1.
func (T *Trajectory) FreqInvCm() float64 {
	return T.FreqTHz * THzToInvCm
}

//amplitudeSchedule returns steps cosine samples over one period, scaled by
//maxAmp. The 90-degree phase shift makes the oscillation start at q = 0,
//and the step size assumes the animation plays in a loop, i.e. it avoids
//the first and last amplitudes both being zero.
func amplitudeSchedule(steps int, maxAmp float64) []float64 {
	amps := make([]float64, steps)
	delta := (2.0 * math.Pi) / float64(steps)
	for i := range amps {
		amps[i] = maxAmp * math.Cos(float64(i)*delta+math.Pi/2.0)
	}
	return amps
}

// Modulate generates the modulation trajectories for the modes of modes
// selected by sel, calling emit with each one in turn. Trajectories are
// built one mode at a time and not retained, so the caller can serialize
// and discard them to bound peak memory. Each frame displaces every atom of
// the expansion from its equilibrium position along the eigendisplacement
// of its base-cell atom, scaled by the amplitude of that modulation step.
// With scale set, each mode's amplitudes are divided by the maximum
// eigendisplacement norm of the mode, so an amplitude of 1 yields a maximum
// Cartesian displacement of 1 A; a mode with zero maximum norm is
// non-physical and makes Modulate fail. An error from emit stops the run.
func Modulate(exp *Expansion, modes *ModeSet, sel Selector, steps int, maxAmp float64, scale bool, emit func(*Trajectory) error) error {
	if steps < 1 {
		return newError("Modulate", "Modulation steps must be >= 1, got %d", steps)
	}
	start, end, err := sel.Resolve(modes.Freqs)
	if err != nil {
		return errDecorate(err, "Modulate")
	}
	amps := amplitudeSchedule(steps, maxAmp)
	m := exp.Len()
	for mode := start; mode < end; mode++ {
		disp := modes.Eigendisp[mode]
		factor := 1.0
		if scale {
			factor = modes.MaxDispNorm(mode)
			if factor <= appzero {
				return newError("Modulate", "Mode %d has zero maximum eigendisplacement norm", mode+1)
			}
		}
		traj := new(Trajectory)
		traj.Mode = mode + 1
		traj.FreqTHz = modes.Freqs[mode]
		traj.Amplitudes = make([]float64, steps)
		traj.Frames = make([]*mat.Dense, steps)
		for s, a := range amps {
			a = a / factor
			frame := mat.NewDense(m, 3, nil)
			for i := 0; i < m; i++ {
				b := exp.Map[i]
				for j := 0; j < 3; j++ {
					frame.Set(i, j, exp.Cart.At(i, j)+a*disp.At(b, j))
				}
			}
			traj.Amplitudes[s] = a
			traj.Frames[s] = frame
		}
		if err := emit(traj); err != nil {
			return errDecorate(err, "Modulate")
		}
	}
	return nil
}
