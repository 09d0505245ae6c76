/*
 * cache.go, part of gophonon.
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
	"encoding/gob"
	"log"
	"os"

	"gonum.org/v1/gonum/mat"
)

//Parsing large mesh.yaml files is slow, so the parsed data is dumped to a
//binary cache for faster loading the next time. The dump records the path to
//the source file, which is used to (in)validate it.

//gob can't see inside mat.Dense, so the dump stores plain slices.
type cacheDump struct {
	SourcePath string
	Lattice    []float64
	Types      []string
	FracPos    []float64
	Masses     []float64
	Freqs      []float64
	Eigendisp  [][]float64
}

// LoadCached tries to load a previously cached parse of source from
// cachefile. It returns the structure and mode set plus true on success. A
// dump recorded for a different source path is stale, and one that can't be
// decoded is corrupt; both are deleted and (nil, nil, false) is returned, as
// it is when no cache file exists.
func LoadCached(source, cachefile string) (*Structure, *ModeSet, bool) {
	f, err := os.Open(cachefile)
	if err != nil {
		return nil, nil, false
	}
	dump := new(cacheDump)
	err = gob.NewDecoder(f).Decode(dump)
	f.Close()
	if err != nil {
		os.Remove(cachefile)
		log.Printf("An error occurred while reading cache file %s -> it has been deleted", cachefile)
		return nil, nil, false
	}
	if dump.SourcePath != source {
		os.Remove(cachefile)
		log.Printf("Removed \"stale\" cache file %s", cachefile)
		return nil, nil, false
	}
	natoms := len(dump.Types)
	if len(dump.Lattice) != 9 || len(dump.FracPos) != natoms*3 || len(dump.Masses) != natoms {
		os.Remove(cachefile)
		log.Printf("Cache file %s is inconsistent -> it has been deleted", cachefile)
		return nil, nil, false
	}
	s := new(Structure)
	s.Lattice = mat.NewDense(3, 3, dump.Lattice)
	s.Types = dump.Types
	s.FracPos = mat.NewDense(natoms, 3, dump.FracPos)
	s.Masses = dump.Masses
	m := new(ModeSet)
	m.Freqs = dump.Freqs
	m.Eigendisp = make([]*mat.Dense, 0, len(dump.Eigendisp))
	for _, v := range dump.Eigendisp {
		if len(v) != natoms*3 {
			os.Remove(cachefile)
			log.Printf("Cache file %s is inconsistent -> it has been deleted", cachefile)
			return nil, nil, false
		}
		m.Eigendisp = append(m.Eigendisp, mat.NewDense(natoms, 3, v))
	}
	if len(m.Freqs) != len(m.Eigendisp) {
		os.Remove(cachefile)
		log.Printf("Cache file %s is inconsistent -> it has been deleted", cachefile)
		return nil, nil, false
	}
	return s, m, true
}

// SaveCache dumps the parsed structure and mode set for source to cachefile,
// overwriting any previous dump.
func SaveCache(source, cachefile string, s *Structure, m *ModeSet) error {
	if err := s.Corrupted(); err != nil {
		return errDecorate(err, "SaveCache")
	}
	dump := new(cacheDump)
	dump.SourcePath = source
	dump.Lattice = denseData(s.Lattice)
	dump.Types = s.Types
	dump.FracPos = denseData(s.FracPos)
	dump.Masses = s.Masses
	dump.Freqs = m.Freqs
	dump.Eigendisp = make([][]float64, 0, len(m.Eigendisp))
	for _, v := range m.Eigendisp {
		dump.Eigendisp = append(dump.Eigendisp, denseData(v))
	}
	f, err := os.Create(cachefile)
	if err != nil {
		return errDecorate(err, "SaveCache")
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(dump); err != nil {
		return newError("SaveCache", "Can't encode cache to %s: %s", cachefile, err.Error())
	}
	return nil
}

//returns the contents of a Dense as a freshly allocated row-major slice.
func denseData(d *mat.Dense) []float64 {
	r, c := d.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		data = append(data, d.RawRowView(i)...)
	}
	return data
}
