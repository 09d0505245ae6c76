/*
 * expand.go, part of gophonon.
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
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Expansion is a structure expanded outside the unit-cell boundary: the
// base-cell atoms plus every periodic image transitively bonded to them.
// Each atom keeps a back-reference to the base-cell atom it is an image of,
// which is what allows looking up its eigendisplacement later. An Expansion
// is built once per run and not modified afterwards.
type Expansion struct {
	Cart  *mat.Dense //Mx3 Cartesian positions, in A.
	Map   []int      //Map[i] is the base-cell index of expanded atom i.
	Types []string   //Types[i] == base.Types[Map[i]], kept for convenience.
	//PassAdditions records how many atoms each expansion pass added, the
	//last element being always 0. Only used for reporting.
	PassAdditions []int
}

// Len returns the number of atoms in the expanded structure.
func (E *Expansion) Len() int {
	return len(E.Map)
}

//reports whether the candidate with fractional position frac falls outside
//the per-type restriction: each component is wrapped into [0,1) and the
//deviation from the nearest cell boundary compared against the threshold.
func restricted(frac []float64, threshold float64) bool {
	for _, f := range frac {
		f -= math.Floor(f)
		if math.Min(f, 1.0-f) > threshold {
			return true
		}
	}
	return false
}

// Expand builds the bond-distance-driven expansion of s. The base cell is
// padded with na, nb and nc additional cells along the +/- a, b and c
// directions, and the periodic images so generated are pulled into the
// expansion whenever they come within the tabulated maximum bond distance
// of an atom already included, repeating until a pass over the remaining
// candidates adds nothing. An atom is included on its first qualifying bond;
// it is not tested against further partners. Candidates whose type appears
// in restrict and whose wrapped fractional coordinates deviate from the
// nearest cell boundary by more than the threshold, on any axis, never take
// part. Atom-type pairs with no tabulated distance (even with wildcards) are
// treated as non-bonding, with a single warning per pair.
func Expand(s *Structure, na, nb, nc int, bonds BondTable, restrict RestrictTable) (*Expansion, error) {
	if err := s.Corrupted(); err != nil {
		return nil, errDecorate(err, "Expand")
	}
	if na < 0 || nb < 0 || nc < 0 {
		return nil, newError("Expand", "Negative supercell expansion (%d, %d, %d)", na, nb, nc)
	}
	natoms := s.Len()
	total := (2*na + 1) * (2*nb + 1) * (2*nc + 1) * natoms
	frac := make([][]float64, 0, total)
	cart := make([][]float64, 0, total)
	mapidx := make([]int, 0, total)
	//Generate the periodic images of the base cell over the supercell,
	//keeping track of which base atom each image derives from.
	for z := -nc; z <= nc; z++ {
		for y := -nb; y <= nb; y++ {
			for x := -na; x <= na; x++ {
				for i := 0; i < natoms; i++ {
					fr := []float64{s.FracPos.At(i, 0) + float64(x), s.FracPos.At(i, 1) + float64(y), s.FracPos.At(i, 2) + float64(z)}
					ca := make([]float64, 3)
					s.Cart(fr, ca)
					frac = append(frac, fr)
					cart = append(cart, ca)
					mapidx = append(mapidx, i)
				}
			}
		}
	}
	//The zero-offset image of the base cell sits at the centre of the
	//supercell. It seeds the expansion.
	base := (total - natoms) / 2
	consumed := make([]bool, total)
	included := make([]int, 0, total)
	for i := base; i < base+natoms; i++ {
		consumed[i] = true
		included = append(included, i)
	}
	excluded := make([]bool, total)
	for i := 0; i < total; i++ {
		if consumed[i] {
			continue
		}
		if threshold, ok := restrict[s.Types[mapidx[i]]]; ok {
			excluded[i] = restricted(frac[i], threshold)
		}
	}
	//Candidates are only tested against the atoms added in the previous
	//pass: every (candidate, included) pair still gets tested exactly once
	//over the whole run, since the candidate pool only shrinks.
	missing := make(map[string]bool)
	passes := make([]int, 0)
	frontier := included
	for {
		added := make([]int, 0)
		for i := 0; i < total; i++ {
			if consumed[i] || excluded[i] {
				continue
			}
			t1 := s.Types[mapidx[i]]
			for _, j := range frontier {
				t2 := s.Types[mapidx[j]]
				ref, ok := bonds.MaxDist(t1, t2)
				if !ok {
					key := PairKey(t1, t2)
					if !missing[key] {
						missing[key] = true
						log.Printf("WARNING: No reference bond distance for atom pair '%s', '%s' (including with wildcards)", t1, t2)
					}
					continue
				}
				if floats.Distance(cart[i], cart[j], 2) <= ref {
					consumed[i] = true
					added = append(added, i)
					break
				}
			}
		}
		passes = append(passes, len(added))
		if len(added) == 0 {
			break
		}
		included = append(included, added...)
		frontier = added
	}
	exp := new(Expansion)
	exp.Cart = mat.NewDense(len(included), 3, nil)
	exp.Map = make([]int, 0, len(included))
	exp.Types = make([]string, 0, len(included))
	for k, i := range included {
		exp.Cart.SetRow(k, cart[i])
		exp.Map = append(exp.Map, mapidx[i])
		exp.Types = append(exp.Types, s.Types[mapidx[i]])
	}
	exp.PassAdditions = passes
	return exp, nil
}
