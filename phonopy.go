/*
 * phonopy.go, part of gophonon.
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
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

//A map for assigning mass to elements, used only when the input file does
//not carry per-atom masses. Note that just common elements are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"Br": 79.904,
	"I":  126.904,
	"Cs": 132.905,
	"Pb": 207.2,
	"Sn": 118.71,
	"Se": 78.971,
	"Te": 127.60,
	"Zn": 65.38,
	"Cd": 112.414,
}

//The types mirroring the parts of a Phonopy mesh.yaml file we care about.
//The eigenvector field is indexed [atom][axis][real/imaginary].

type phonopyAtom struct {
	Symbol   string    `yaml:"symbol"`
	Position []float64 `yaml:"position"`
	Mass     float64   `yaml:"mass"`
}

type phonopyBand struct {
	Frequency   float64       `yaml:"frequency"`
	Eigenvector [][][]float64 `yaml:"eigenvector"`
}

type phonopyQPoint struct {
	QPosition []float64     `yaml:"q-position"`
	Band      []phonopyBand `yaml:"band"`
}

type phonopyMesh struct {
	Lattice [][]float64   `yaml:"lattice"`
	Atoms   []phonopyAtom `yaml:"atoms"`
	Phonon  []phonopyQPoint `yaml:"phonon"`
}

// ReadPhonopy reads a Phonopy mesh.yaml file containing frequencies and
// eigenvectors, and returns the crystal structure plus the Gamma-point mode
// set. The Gamma point is identified by the exact equality of the three
// components of its q-position with zero. The Gamma-point eigenvectors are
// real, so only the real part of each component is kept; the components are
// divided by sqrt(mass) to obtain the eigendisplacements.
func ReadPhonopy(path string) (*Structure, *ModeSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadPhonopy")
	}
	defer f.Close()
	mesh := new(phonopyMesh)
	if err := yaml.NewDecoder(f).Decode(mesh); err != nil {
		return nil, nil, newError("ReadPhonopy", "Can't parse %s: %s", path, err.Error())
	}
	if len(mesh.Lattice) != 3 {
		return nil, nil, newError("ReadPhonopy", "Input file %s has %d lattice vectors, must have 3", path, len(mesh.Lattice))
	}
	if len(mesh.Atoms) == 0 {
		return nil, nil, newError("ReadPhonopy", "Input file %s contains no atoms", path)
	}
	s := new(Structure)
	s.Lattice = mat.NewDense(3, 3, nil)
	for i, v := range mesh.Lattice {
		if len(v) != 3 {
			return nil, nil, newError("ReadPhonopy", "Lattice vector %d in %s has %d components", i+1, path, len(v))
		}
		s.Lattice.SetRow(i, v)
	}
	natoms := len(mesh.Atoms)
	s.Types = make([]string, natoms)
	s.Masses = make([]float64, natoms)
	s.FracPos = mat.NewDense(natoms, 3, nil)
	sqrtmasses := make([]float64, natoms)
	for i, at := range mesh.Atoms {
		if len(at.Position) != 3 {
			return nil, nil, newError("ReadPhonopy", "Atom %d in %s has %d position components", i+1, path, len(at.Position))
		}
		s.Types[i] = at.Symbol
		s.FracPos.SetRow(i, at.Position)
		mass := at.Mass
		if mass <= 0 {
			mass = symbolMass[at.Symbol]
			if mass <= 0 {
				return nil, nil, newError("ReadPhonopy", "No mass for atom %d (%s) in %s and no tabulated fallback", i+1, at.Symbol, path)
			}
		}
		s.Masses[i] = mass
		sqrtmasses[i] = math.Sqrt(mass)
	}
	//Scan the file for the Gamma-point frequencies and eigenvectors.
	var gamma *phonopyQPoint
	for i, q := range mesh.Phonon {
		if len(q.QPosition) != 3 {
			continue
		}
		if q.QPosition[0] == 0.0 && q.QPosition[1] == 0.0 && q.QPosition[2] == 0.0 {
			gamma = &mesh.Phonon[i]
			break
		}
	}
	if gamma == nil {
		return nil, nil, newError("ReadPhonopy", "Gamma-point frequencies and eigenvectors were not found in %s", path)
	}
	m := new(ModeSet)
	m.Freqs = make([]float64, 0, len(gamma.Band))
	m.Eigendisp = make([]*mat.Dense, 0, len(gamma.Band))
	for bi, band := range gamma.Band {
		if len(band.Eigenvector) != natoms {
			return nil, nil, newError("ReadPhonopy", "Band %d in %s has eigenvector components for %d atoms, want %d", bi+1, path, len(band.Eigenvector), natoms)
		}
		disp := mat.NewDense(natoms, 3, nil)
		for ai, comp := range band.Eigenvector {
			if len(comp) != 3 {
				return nil, nil, newError("ReadPhonopy", "Band %d, atom %d in %s: eigenvector has %d axes", bi+1, ai+1, path, len(comp))
			}
			for j, reim := range comp {
				if len(reim) < 1 {
					return nil, nil, newError("ReadPhonopy", "Band %d, atom %d, axis %d in %s: empty eigenvector component", bi+1, ai+1, j+1, path)
				}
				disp.Set(ai, j, reim[0]/sqrtmasses[ai])
			}
		}
		m.Freqs = append(m.Freqs, band.Frequency)
		m.Eigendisp = append(m.Eigendisp, disp)
	}
	if err := s.Corrupted(); err != nil {
		return nil, nil, errDecorate(err, "ReadPhonopy")
	}
	if err := m.Corrupted(natoms); err != nil {
		return nil, nil, errDecorate(err, "ReadPhonopy")
	}
	return s, m, nil
}
