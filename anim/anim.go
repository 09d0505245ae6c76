/*
 * anim.go, part of gophonon.
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

package anim

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	//formats ReadFrame should understand.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// FindFrames returns the frame files in dir whose names have the form
// prefix.N.ext with N a non-negative integer, sorted by N. Renderers number
// their snapshots sequentially but list them in lexicographic order, so the
// numeric sort is what restores the frame order of the trajectory.
func FindFrames(dir, prefix, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errorf(true, "FindFrames", "%s", err.Error())
	}
	type numbered struct {
		name string
		n    int
	}
	found := make([]numbered, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix+".") || !strings.HasSuffix(name, ext) {
			continue
		}
		mid := name[len(prefix)+1 : len(name)-len(ext)]
		mid = strings.TrimSuffix(mid, ".")
		n, err := strconv.Atoi(mid)
		if err != nil {
			continue //not a frame of ours, just a similarly named file.
		}
		found = append(found, numbered{filepath.Join(dir, name), n})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	ret := make([]string, len(found))
	for i, v := range found {
		ret[i] = v.name
	}
	return ret, nil
}

// ReadFrame decodes the image file name. The format is detected from the
// content, not the extension; PNG, JPEG, GIF, BMP, TIFF and binary PPM are
// understood.
func ReadFrame(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errorf(true, "ReadFrame", "%s", err.Error())
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errorf(true, "ReadFrame", "Can't decode %s: %s", name, err.Error())
	}
	return img, nil
}

// Color is an RGB color with channels normalized to [0,1]. Pixels read from
// 8- or 16-bit images are rescaled on conversion.
type Color struct {
	R, G, B float64
}

// RGBA implements color.Color, so a Color can be handed directly to the
// drawing primitives.
func (c Color) RGBA() (r, g, b, a uint32) {
	clamp := func(v float64) uint32 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint32(v*65535 + 0.5)
	}
	return clamp(c.R), clamp(c.G), clamp(c.B), 65535
}

// InferBackground returns the most frequent color of img, quantized to 8
// bits per channel. Ties go to the color first encountered in row-major
// scan order. The background of a molecular snapshot dominates the pixel
// count by far, so the modal color is a safe guess.
func InferBackground(img image.Image) Color {
	counts := make(map[[3]uint8]int)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			counts[[3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}]++
		}
	}
	var best [3]uint8
	bestn := -1
	//second row-major pass so that ties resolve deterministically.
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			k := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}
			if n := counts[k]; n > bestn {
				best, bestn = k, n
				delete(counts, k) //so later ties can't re-trigger.
			}
		}
	}
	return Color{float64(best[0]) / 255, float64(best[1]) / 255, float64(best[2]) / 255}
}

// Background is the caption-panel fill color. If not set explicitly it is
// inferred from the first frame that gets rendered, and the inferred value
// is reused for every frame after that.
type Background struct {
	col    Color
	solved bool
}

// NewBackground returns a Background fixed to the given color, or, with a
// nil argument, one that will infer its color lazily.
func NewBackground(explicit *Color) *Background {
	if explicit != nil {
		return &Background{col: *explicit, solved: true}
	}
	return new(Background)
}

// Resolve returns the background color, calling InferBackground on img the
// first time if no explicit color was given.
func (B *Background) Resolve(img image.Image) Color {
	if !B.solved {
		B.col = InferBackground(img)
		B.solved = true
	}
	return B.col
}

//Errors

// Error is the error type for the animation assembler. It implements
// phonon.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func errorf(critical bool, caller, format string, a ...interface{}) Error {
	return Error{fmt.Sprintf(format, a...), []string{caller}, critical}
}

func (err Error) Error() string {
	return fmt.Sprintf("anim error: %s", err.message)
}

// Decorate adds new information to the error and returns the resulting
// decoration slice.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }
