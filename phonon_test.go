/*
 * phonon_test.go, part of gophonon.
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
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestCart(Te *testing.T) {
	s := new(Structure)
	s.Lattice = mat.NewDense(3, 3, []float64{2, 0, 0, 1, 2, 0, 0, 0, 3})
	cart := make([]float64, 3)
	s.Cart([]float64{1, 1, 0.5}, cart)
	want := []float64{3, 2, 1.5}
	for j := 0; j < 3; j++ {
		if math.Abs(cart[j]-want[j]) > 1e-12 {
			Te.Errorf("Cart component %d: got %f, want %f", j, cart[j], want[j])
		}
	}
}

func TestPairKey(Te *testing.T) {
	if PairKey("C", "H") != "C-H" || PairKey("H", "C") != "C-H" {
		Te.Error("PairKey is not symmetric on C,H")
	}
	if PairKey("Pb", "I") != "I-Pb" {
		Te.Errorf("PairKey(Pb, I) gave %s", PairKey("Pb", "I"))
	}
}

func TestBondTableCollision(Te *testing.T) {
	_, err := NewBondTable(map[string]float64{"C-H": 1.2, "H-C": 1.3})
	if err == nil {
		Te.Error("A table with 2 spellings of the same pair must be rejected")
	}
}

func TestMaxDistPrecedence(Te *testing.T) {
	b, err := NewBondTable(map[string]float64{"C-H": 1.2, "X-O": 1.5, "X-X": 2.0})
	if err != nil {
		Te.Fatal(err)
	}
	cases := []struct {
		t1, t2 string
		want   float64
	}{
		{"H", "C", 1.2}, //exact, either order.
		{"C", "H", 1.2},
		{"O", "N", 1.5}, //one wildcard.
		{"N", "O", 1.5},
		{"N", "S", 2.0}, //both wildcards.
	}
	for _, c := range cases {
		got, ok := b.MaxDist(c.t1, c.t2)
		if !ok || got != c.want {
			Te.Errorf("MaxDist(%s, %s): got %f (%v), want %f", c.t1, c.t2, got, ok, c.want)
		}
	}
}

func TestMaxDistMissing(Te *testing.T) {
	b, err := NewBondTable(map[string]float64{"C-H": 1.2})
	if err != nil {
		Te.Fatal(err)
	}
	if _, ok := b.MaxDist("Na", "Cl"); ok {
		Te.Error("MaxDist found a distance for a pair that is not in the table")
	}
}

//a cubic 10 A cell with one atom, handy for the expansion tests.
func cubicOneAtom(atype string, frac []float64) *Structure {
	s := new(Structure)
	s.Lattice = mat.NewDense(3, 3, []float64{10, 0, 0, 0, 10, 0, 0, 0, 10})
	s.Types = []string{atype}
	s.FracPos = mat.NewDense(1, 3, frac)
	s.Masses = []float64{12.011}
	return s
}

func TestExpandNoBonds(Te *testing.T) {
	s := cubicOneAtom("C", []float64{0.5, 0.5, 0.5})
	b, _ := NewBondTable(map[string]float64{"C-C": 6.0})
	//neighboring images are 10 A away, over the 6 A cutoff.
	exp, err := Expand(s, 1, 0, 0, b, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if exp.Len() != 1 {
		Te.Errorf("Expansion pulled in %d atoms, want 1", exp.Len())
	}
	if len(exp.PassAdditions) != 1 || exp.PassAdditions[0] != 0 {
		Te.Errorf("PassAdditions: %v, want [0]", exp.PassAdditions)
	}
}

func TestExpandNeighbors(Te *testing.T) {
	s := cubicOneAtom("C", []float64{0.5, 0.5, 0.5})
	b, _ := NewBondTable(map[string]float64{"C-C": 10.5})
	exp, err := Expand(s, 1, 0, 0, b, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if exp.Len() != 3 {
		Te.Errorf("Expansion has %d atoms, want 3", exp.Len())
	}
	//every atom must map back to the only base atom.
	for i, m := range exp.Map {
		if m != 0 {
			Te.Errorf("Atom %d maps to base atom %d, want 0", i, m)
		}
		if exp.Types[i] != "C" {
			Te.Errorf("Atom %d has type %s, want C", i, exp.Types[i])
		}
	}
}

func TestExpandFrontier(Te *testing.T) {
	//images along a sit at x = -19, -9, 1, 11, 21; with a 10.5 A cutoff each
	//pass reaches one image further on each side.
	s := cubicOneAtom("C", []float64{0.1, 0.5, 0.5})
	b, _ := NewBondTable(map[string]float64{"C-C": 10.5})
	exp, err := Expand(s, 2, 0, 0, b, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if exp.Len() != 5 {
		Te.Errorf("Expansion has %d atoms, want 5", exp.Len())
	}
	want := []int{2, 2, 0}
	if len(exp.PassAdditions) != len(want) {
		Te.Fatalf("PassAdditions: %v, want %v", exp.PassAdditions, want)
	}
	for i := range want {
		if exp.PassAdditions[i] != want[i] {
			Te.Errorf("PassAdditions: %v, want %v", exp.PassAdditions, want)
			break
		}
	}
}

func TestExpandRestricted(Te *testing.T) {
	s := cubicOneAtom("Pb", []float64{0.5, 0.5, 0.5})
	b, _ := NewBondTable(map[string]float64{"Pb-Pb": 10.5})
	exp, err := Expand(s, 1, 0, 0, b, RestrictTable{"Pb": 0.2})
	if err != nil {
		Te.Fatal(err)
	}
	//the base atom seeds the expansion regardless, but its images sit 0.5
	//fractional units from the nearest boundary, over the 0.2 threshold.
	if exp.Len() != 1 {
		Te.Errorf("Restricted expansion has %d atoms, want 1", exp.Len())
	}
	//with no restriction the same structure pulls the images in.
	exp2, err := Expand(s, 1, 0, 0, b, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if exp2.Len() != 3 {
		Te.Errorf("Unrestricted expansion has %d atoms, want 3", exp2.Len())
	}
}

func TestRestrictedBoundary(Te *testing.T) {
	//an atom right on a cell boundary is never restricted: the wrapped
	//deviation from the nearest boundary is zero on every axis.
	if restricted([]float64{1.0, -2.0, 3.0}, 0.0) {
		Te.Error("An atom on the boundary was restricted at threshold 0")
	}
	if !restricted([]float64{0.3, 0.0, 0.0}, 0.2) {
		Te.Error("An atom 0.3 from the boundary passed a 0.2 threshold")
	}
	if restricted([]float64{0.85, 0.0, 0.0}, 0.2) {
		Te.Error("0.85 wraps to 0.15 from the nearest boundary; should pass a 0.2 threshold")
	}
}

func TestAmplitudeSchedule(Te *testing.T) {
	amps := amplitudeSchedule(4, 2.0)
	want := []float64{0, -2, 0, 2}
	if len(amps) != 4 {
		Te.Fatalf("Got %d amplitudes, want 4", len(amps))
	}
	for i := range want {
		if math.Abs(amps[i]-want[i]) > 1e-9 {
			Te.Errorf("Amplitude %d: got %g, want %g", i, amps[i], want[i])
		}
	}
}

func testFreqs() []float64 {
	return []float64{-0.1, 0.0, 1.0, 2.0, 5.0, 10.0}
}

func TestSelectorAll(Te *testing.T) {
	var sel Selector
	start, end, err := sel.Resolve(testFreqs())
	if err != nil || start != 0 || end != 6 {
		Te.Errorf("Zero-value selector: got [%d, %d) and %v, want [0, 6)", start, end, err)
	}
}

func TestSelectorIndex(Te *testing.T) {
	sel := Selector{Kind: SelectIndex, Min: 4, Max: 5, HasMin: true, HasMax: true}
	start, end, err := sel.Resolve(testFreqs())
	if err != nil {
		Te.Fatal(err)
	}
	if start != 3 || end != 5 {
		Te.Errorf("Index selection 4-5: got [%d, %d), want [3, 5)", start, end)
	}
	bad := Selector{Kind: SelectIndex, Min: 0, HasMin: true}
	if _, _, err := bad.Resolve(testFreqs()); err == nil {
		Te.Error("Index 0 must be rejected; indices are 1-based")
	}
	bad = Selector{Kind: SelectIndex, Max: 7, HasMax: true}
	if _, _, err := bad.Resolve(testFreqs()); err == nil {
		Te.Error("An index over 3N must be rejected")
	}
}

func TestSelectorTHz(Te *testing.T) {
	sel := Selector{Kind: SelectTHz, Min: 1.5, HasMin: true}
	start, end, err := sel.Resolve(testFreqs())
	if err != nil {
		Te.Fatal(err)
	}
	if start != 3 || end != 6 {
		Te.Errorf("THz selection from 1.5: got [%d, %d), want [3, 6)", start, end)
	}
	sel = Selector{Kind: SelectTHz, Max: 4.0, HasMax: true}
	start, end, err = sel.Resolve(testFreqs())
	if err != nil {
		Te.Fatal(err)
	}
	if start != 0 || end != 4 {
		Te.Errorf("THz selection up to 4: got [%d, %d), want [0, 4)", start, end)
	}
	bad := Selector{Kind: SelectTHz, Min: 11.0, HasMin: true}
	if _, _, err := bad.Resolve(testFreqs()); err == nil {
		Te.Error("A lower bound above every frequency must be rejected")
	}
}

func TestSelectorInvCm(Te *testing.T) {
	sel := Selector{Kind: SelectInvCm, Min: 30, Max: 70, HasMin: true, HasMax: true}
	start, end, err := sel.Resolve(testFreqs())
	if err != nil {
		Te.Fatal(err)
	}
	//1 THz = 33.36 cm^-1 and 2 THz = 66.71 cm^-1 are the modes in range.
	if start != 2 || end != 4 {
		Te.Errorf("cm^-1 selection 30-70: got [%d, %d), want [2, 4)", start, end)
	}
}

func TestSelectorBadBounds(Te *testing.T) {
	sel := Selector{Kind: SelectTHz, Min: 5, Max: 5, HasMin: true, HasMax: true}
	if _, _, err := sel.Resolve(testFreqs()); err == nil {
		Te.Error("Min == Max must be rejected")
	}
}

func modulationFixture() (*Expansion, *ModeSet) {
	exp := new(Expansion)
	exp.Cart = mat.NewDense(2, 3, []float64{0, 0, 0, 5, 5, 5})
	exp.Map = []int{0, 0} //both expanded atoms are images of base atom 0.
	exp.Types = []string{"C", "C"}
	m := new(ModeSet)
	m.Freqs = []float64{1.0}
	m.Eigendisp = []*mat.Dense{mat.NewDense(1, 3, []float64{0, 0, 2})}
	return exp, m
}

func TestModulate(Te *testing.T) {
	exp, modes := modulationFixture()
	var got []*Trajectory
	err := Modulate(exp, modes, Selector{}, 4, 0.25, false, func(t *Trajectory) error {
		got = append(got, t)
		return nil
	})
	if err != nil {
		Te.Fatal(err)
	}
	if len(got) != 1 {
		Te.Fatalf("Got %d trajectories, want 1", len(got))
	}
	t := got[0]
	if t.Mode != 1 || t.FreqTHz != 1.0 {
		Te.Errorf("Trajectory is mode %d at %f THz, want mode 1 at 1 THz", t.Mode, t.FreqTHz)
	}
	if len(t.Frames) != 4 || len(t.Amplitudes) != 4 {
		Te.Fatalf("Got %d frames and %d amplitudes, want 4 of each", len(t.Frames), len(t.Amplitudes))
	}
	//frame 1 has amplitude -0.25, so both atoms move -0.5 A along z.
	if math.Abs(t.Amplitudes[1]+0.25) > 1e-9 {
		Te.Errorf("Amplitude 1 is %g, want -0.25", t.Amplitudes[1])
	}
	for i := 0; i < 2; i++ {
		z := t.Frames[1].At(i, 2)
		want := exp.Cart.At(i, 2) - 0.5
		if math.Abs(z-want) > 1e-9 {
			Te.Errorf("Frame 1, atom %d: z = %f, want %f", i, z, want)
		}
		//x and y don't move for a z-polarized mode.
		if t.Frames[1].At(i, 0) != exp.Cart.At(i, 0) {
			Te.Errorf("Frame 1, atom %d moved along x", i)
		}
	}
}

func TestModulateScaled(Te *testing.T) {
	exp, modes := modulationFixture()
	//the maximum eigendisplacement norm is 2, so scaling halves everything
	//and an amplitude of 0.25 displaces by 0.25 A at most.
	err := Modulate(exp, modes, Selector{}, 4, 0.25, true, func(t *Trajectory) error {
		if math.Abs(t.Amplitudes[1]+0.125) > 1e-9 {
			Te.Errorf("Scaled amplitude 1 is %g, want -0.125", t.Amplitudes[1])
		}
		z := t.Frames[1].At(0, 2)
		if math.Abs(z+0.25) > 1e-9 {
			Te.Errorf("Scaled frame 1 z = %f, want -0.25", z)
		}
		return nil
	})
	if err != nil {
		Te.Fatal(err)
	}
}

func TestModulateZeroNorm(Te *testing.T) {
	exp, modes := modulationFixture()
	modes.Eigendisp[0] = mat.NewDense(1, 3, []float64{0, 0, 0})
	err := Modulate(exp, modes, Selector{}, 4, 0.25, true, func(t *Trajectory) error { return nil })
	if err == nil {
		Te.Error("A zero-norm mode must make scaled modulation fail")
	}
}

func TestMaxDispNorm(Te *testing.T) {
	m := new(ModeSet)
	m.Freqs = []float64{1.0}
	m.Eigendisp = []*mat.Dense{mat.NewDense(2, 3, []float64{3, 4, 0, 1, 0, 0})}
	if n := m.MaxDispNorm(0); math.Abs(n-5.0) > 1e-12 {
		Te.Errorf("MaxDispNorm: got %f, want 5", n)
	}
}
