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

/*Package xyz reads and writes multi-frame XYZ trajectories, the exchange
format between the two halves of the gophonon pipeline.

A frame is an atom-count line, a free-text comment line, and one line per
atom with the type label and the three Cartesian coordinates in fixed-width
columns. The comment lines of modulation trajectories carry per-frame
metadata (mode index, frequency in THz and cm^-1, and normal-mode
amplitude) in a fixed grammar that DecodeMeta parses back, which is how
externally rendered frame images get re-associated with the mode and step
they belong to.

Files are transparently compressed according to the filename extension:
".gz" for gzip and ".zst" or ".stz" for zstd; anything else is plain text. The
package also writes the tar.gz archive which collects the per-mode
trajectories of a run.*/
package xyz
