/*
 * phonon.go, part of gophonon.
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

// THzToInvCm converts frequencies from THz to inverse centimeters.
// Value taken from: http://halas.rice.edu/conversions (accessed 3/4/2017).
const THzToInvCm = 33.35641

const appzero float64 = 1e-12 //Everything with an absolute value equal or
//smaller than this is considered zero.

// Structure contains the static description of a periodic crystal: the
// lattice vectors, and the type labels, fractional positions and masses of
// the atoms in the unit cell. It is a read-only input for the rest of the
// library.
type Structure struct {
	Lattice *mat.Dense //3x3, rows are the a, b and c lattice vectors, in A.
	Types   []string   //chemical symbol per atom.
	FracPos *mat.Dense //Nx3 fractional coordinates, one row per atom.
	Masses  []float64  //atomic masses, in amu.
}

// Len returns the number of atoms in the unit cell.
func (S *Structure) Len() int {
	return len(S.Types)
}

// Corrupted checks that the fields of the structure are consistent with each
// other, i.e. that the number of atoms matches across types, positions and
// masses, and that the lattice is 3x3. It returns an error describing the
// problem, or nil.
func (S *Structure) Corrupted() error {
	if S.Lattice == nil || S.FracPos == nil {
		return newError("Corrupted", "Structure missing lattice or positions")
	}
	lr, lc := S.Lattice.Dims()
	if lr != 3 || lc != 3 {
		return newError("Corrupted", "Lattice is %dx%d, must be 3x3", lr, lc)
	}
	pr, pc := S.FracPos.Dims()
	if pc != 3 {
		return newError("Corrupted", "Positions have %d columns, must be 3", pc)
	}
	if pr != len(S.Types) || pr != len(S.Masses) {
		return newError("Corrupted", "Inconsistent structure: %d positions, %d types, %d masses", pr, len(S.Types), len(S.Masses))
	}
	return nil
}

// Cart converts the fractional coordinates frac (a 3-element slice) to
// Cartesian coordinates using the lattice vectors of S. The result is placed
// in cart, which must have at least 3 elements.
func (S *Structure) Cart(frac, cart []float64) {
	for j := 0; j < 3; j++ {
		cart[j] = frac[0]*S.Lattice.At(0, j) + frac[1]*S.Lattice.At(1, j) + frac[2]*S.Lattice.At(2, j)
	}
}

// ModeSet contains the Gamma-point normal modes of a structure: one
// frequency and one eigendisplacement set per mode. For N atoms there are 3N
// modes. The eigendisplacements are the eigenvector components divided by
// the square root of the respective atomic mass, so they give real-space
// displacement directions.
type ModeSet struct {
	Freqs     []float64    //frequencies in THz, one per mode.
	Eigendisp []*mat.Dense //per mode, an Nx3 matrix, one row per atom.
}

// Len returns the number of modes (3N for N atoms).
func (M *ModeSet) Len() int {
	return len(M.Freqs)
}

// Corrupted checks that the mode set is consistent: as many
// eigendisplacement sets as frequencies, and natoms rows of 3 columns in
// each. Returns an error describing the problem, or nil.
func (M *ModeSet) Corrupted(natoms int) error {
	if len(M.Freqs) != len(M.Eigendisp) {
		return newError("Corrupted", "Inconsistent mode set: %d frequencies, %d eigendisplacement sets", len(M.Freqs), len(M.Eigendisp))
	}
	for i, v := range M.Eigendisp {
		r, c := v.Dims()
		if r != natoms || c != 3 {
			return newError("Corrupted", "Eigendisplacement set %d is %dx%d, must be %dx3", i+1, r, c, natoms)
		}
	}
	return nil
}

// MaxDispNorm returns the largest Euclidean norm among the per-atom
// eigendisplacement vectors of the mode with (zero-based) index mode.
func (M *ModeSet) MaxDispNorm(mode int) float64 {
	disp := M.Eigendisp[mode]
	r, _ := disp.Dims()
	max := 0.0
	for i := 0; i < r; i++ {
		x := disp.At(i, 0)
		y := disp.At(i, 1)
		z := disp.At(i, 2)
		n := math.Sqrt(x*x + y*y + z*z)
		if n > max {
			max = n
		}
	}
	return max
}
