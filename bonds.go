/*
 * bonds.go, part of gophonon.
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

import "strings"

// Wildcard is the atom-type label that matches any type in a bond-distance
// table.
const Wildcard = "X"

// BondTable maps a canonicalized, unordered pair of atom-type labels to the
// maximum distance (in A) at which two atoms of those types are considered
// bonded. Either label of a pair may be the wildcard 'X'. The table is
// configuration: build it once with NewBondTable and don't mutate it during
// a run.
type BondTable map[string]float64

// PairKey returns the canonical key for the unordered type pair (t1, t2):
// the two labels sorted lexicographically and joined with '-'.
func PairKey(t1, t2 string) string {
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1 + "-" + t2
}

// NewBondTable canonicalizes the raw table given, whose keys have the form
// "A-B" (e.g. "C-H", "Pb-I", "X-C"). Since "A-B" and "B-A" are equivalent,
// two raw entries may collapse into the same canonical key; that is a
// configuration error and NewBondTable fails fast on it.
func NewBondTable(raw map[string]float64) (BondTable, error) {
	table := make(BondTable, len(raw))
	for key, dist := range raw {
		parts := strings.Split(key, "-")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, newError("NewBondTable", "Bond distance key '%s' is not an atom-type pair", key)
		}
		ckey := PairKey(parts[0], parts[1])
		if _, dup := table[ckey]; dup {
			return nil, newError("NewBondTable", "'%s' distance set twice - '%s' and '%s' are equivalent", key, key, ckey)
		}
		table[ckey] = dist
	}
	return table, nil
}

// MaxDist looks up the reference maximum bond distance for the type pair
// (t1, t2). The search precedence is: the exact pair (in either order),
// then a pair with one wildcard on either side, and finally the
// both-wildcard fallback. The second return value is false if no entry
// matches at any level.
func (B BondTable) MaxDist(t1, t2 string) (float64, bool) {
	for _, key := range [4]string{PairKey(t1, t2), PairKey(t1, Wildcard), PairKey(Wildcard, t2), PairKey(Wildcard, Wildcard)} {
		if d, ok := B[key]; ok {
			return d, true
		}
	}
	return 0, false
}

// RestrictTable maps an atom-type label to the maximum fractional distance
// its atoms may lie from a cell boundary and still take part in the
// expansion. It is used for e.g. the metal nodes of coordination polymers
// or the octahedral framework of perovskites, whose images would otherwise
// drag whole cells into the expansion.
type RestrictTable map[string]float64
