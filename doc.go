/*
 * doc.go, part of gophonon.
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

/*Package phonon post-processes lattice-dynamics (phonon) calculations into
animations of the vibrational normal modes of a crystal.

It reads Gamma-point frequencies and eigenvectors from a Phonopy mesh.yaml
file, expands the unit cell into a chemically-sensible local neighborhood by
iterative bond search, and generates, for each selected mode, a sequence of
cosine-modulated structures which can be rendered externally (e.g. with VMD)
and assembled into looping GIF animations.


	**gophonon capabilities**

    Reads Phonopy mesh.yaml files with eigenvectors, caching the parsed
	data for faster re-runs.

    Expands a periodic structure outside the unit-cell boundary following
	user-given maximum bond distances, with wildcard atom types and
	per-type restriction of the expansion.

    Generates modulated structures for all, or a subset of, the normal
	modes, selected by index or by frequency (THz or cm^-1).

    Writes the modulated structures as multi-frame XYZ trajectories
	(optionally gzip- or zstd-compressed), one file per mode collected in
	a tar.gz archive, plus a merged trajectory carrying per-frame
	metadata.

    Matches externally rendered frame images against that metadata,
	composites each frame with a caption, and assembles per-mode looping
	GIF animations (subpackages traj/xyz and anim).

The two halves of the pipeline only communicate through the XYZ comment
lines, so rendering can happen on a different machine.*/
package phonon
