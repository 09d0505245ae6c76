/*
 * gif.go, part of gophonon.
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
	"image/color/palette"
	stddraw "image/draw"
	"image/gif"
	"log"
	"os"
	"sort"
	"time"

	"github.com/rmera/gophonon/traj/xyz"
)

// WriteGIF encodes frames, in order, into a looping GIF at name. delay is
// the uniform per-frame delay in hundredths of a second. The frames are
// quantized to a fixed 256-color palette with error diffusion.
func WriteGIF(name string, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return errorf(true, "WriteGIF", "No frames to encode into %s", name)
	}
	g := &gif.GIF{LoopCount: 0} //0 loops forever.
	for _, fr := range frames {
		b := fr.Bounds()
		pal := image.NewPaletted(b, palette.Plan9)
		stddraw.FloydSteinberg.Draw(pal, b, fr, b.Min)
		g.Image = append(g.Image, pal)
		g.Delay = append(g.Delay, delay)
	}
	f, err := os.Create(name)
	if err != nil {
		return errorf(true, "WriteGIF", "%s", err.Error())
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		return errorf(true, "WriteGIF", "Can't encode %s: %s", name, err.Error())
	}
	return nil
}

//how long to wait before retrying the deletion of a temporary frame.
const removeRetryDelay = 500 * time.Millisecond

// An Assembler pairs the frames rendered by an external program with the
// metadata of a merged modulation trajectory and builds one captioned,
// looping GIF per mode.
type Assembler struct {
	OutPrefix  string      //GIFs are named OutPrefix-ModeNNN.gif.
	TempPrefix string      //prefix for the temporary captioned PNGs.
	Overwrite  bool        //regenerate GIFs that already exist.
	Delay      int         //per-frame delay, 1/100 s.
	Background *Background //caption-panel fill.
	Compositor *Compositor
	Debug      bool //log per-mode render timings.
}

// NewAssembler returns an Assembler with the default compositor geometry, a
// 0.1 s frame delay and a lazily inferred background.
func NewAssembler(outprefix string) *Assembler {
	return &Assembler{
		OutPrefix:  outprefix,
		TempPrefix: "gophonon-temp",
		Delay:      10,
		Background: NewBackground(nil),
		Compositor: NewCompositor(),
	}
}

// Run assembles the animations: it decodes the per-mode metadata from the
// merged trajectory at metaPath, collects the frame images named
// framePrefix.N.frameExt under framesDir, and, for each mode whose GIF does
// not already exist (unless Overwrite is set), renders the captioned frames
// and merges them. The frame files must number exactly the total frame
// count the metadata calls for; they are assigned to modes in ascending
// mode order.
func (A *Assembler) Run(metaPath, framesDir, framePrefix, frameExt string) error {
	metas, err := xyz.DecodeMeta(metaPath)
	if err != nil {
		return errDecorate(err, "Run")
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Mode < metas[j].Mode })
	files, err := FindFrames(framesDir, framePrefix, frameExt)
	if err != nil {
		return errDecorate(err, "Run")
	}
	expected := 0
	for _, m := range metas {
		expected += len(m.Amplitudes)
	}
	if len(files) != expected {
		return errorf(true, "Run", "Found %d frame images in %s, but the metadata in %s calls for %d", len(files), framesDir, metaPath, expected)
	}
	first, err := ReadFrame(files[0])
	if err != nil {
		return errDecorate(err, "Run")
	}
	fill := A.Background.Resolve(first)
	next := 0
	for _, m := range metas {
		modeFiles := files[next : next+len(m.Amplitudes)]
		next += len(m.Amplitudes)
		out := fmt.Sprintf("%s-Mode%03d.gif", A.OutPrefix, m.Mode)
		if _, err := os.Stat(out); err == nil && !A.Overwrite {
			log.Printf("%s already exists, skipping", out)
			continue
		}
		if err := A.assembleMode(m, modeFiles, fill, out); err != nil {
			return errDecorate(err, "Run")
		}
	}
	return nil
}

func (A *Assembler) assembleMode(m *xyz.ModeMeta, files []string, fill Color, out string) error {
	width, err := AmpWidth(m.Amplitudes)
	if err != nil {
		return errDecorate(err, "assembleMode")
	}
	freq := FreqLabel(m.FreqInvCm)
	start := time.Now()
	temps := make([]string, 0, len(files))
	//clean up the temporaries whatever happens below.
	defer func() {
		for _, t := range temps {
			if err := xyz.RemoveWithRetry(t, removeRetryDelay); err != nil {
				log.Printf("Can't remove temporary frame %s: %v", t, err)
			}
		}
	}()
	for i, file := range files {
		img, err := ReadFrame(file)
		if err != nil {
			return errDecorate(err, "assembleMode")
		}
		caption := Caption(m.Mode, freq, m.Amplitudes[i], width)
		tmp := fmt.Sprintf("%s_%d-%d.png", A.TempPrefix, m.Mode, i+1)
		if err := A.Compositor.Render(img, caption, fill, tmp); err != nil {
			return errDecorate(err, "assembleMode")
		}
		temps = append(temps, tmp)
	}
	if A.Debug {
		log.Printf("Rendered %d frame(s) for mode %d in %.2f s", len(temps), m.Mode, time.Since(start).Seconds())
	}
	frames := make([]image.Image, 0, len(temps))
	for _, t := range temps {
		img, err := ReadFrame(t)
		if err != nil {
			return errDecorate(err, "assembleMode")
		}
		frames = append(frames, img)
	}
	if err := WriteGIF(out, frames, A.Delay); err != nil {
		return errDecorate(err, "assembleMode")
	}
	return nil
}

//same little helper the other packages use to stack caller names on errors.
func errDecorate(err error, caller string) error {
	d, ok := err.(interface{ Decorate(string) []string })
	if ok {
		d.Decorate(caller)
		return err
	}
	return errorf(true, caller, "%s", err.Error())
}
