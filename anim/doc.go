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

/*Package anim assembles externally rendered animation frames into captioned
looping GIFs, one per normal mode.

The frames themselves are produced elsewhere (e.g. VMD snapshots of the
trajectories written by the modulate half of the pipeline); this package only
matches them against the metadata decoded from the merged XYZ trajectory,
composites each one over a caption panel with the mode index, frequency and
normal-mode amplitude, and merges the composites into one GIF per mode.

A few suggestions for rendering the input frames in VMD:

 1. Set a large display window and enable antialiasing (Tk console):
    display size 1600 1600; display antialias on
 2. Overlay the unit cell: pbc set {a b c alpha beta gamma}; pbc box_draw
 3. In the Display menu: Orthographic projection, Depth Cueing off, Axes off
 4. Representations: VDW (Sphere Scale 0.3) + Bonds (Bond Radius 0.1),
    Coloring Method Element
 5. Colors: Element > C > black; Display > Background > white*/
package anim
