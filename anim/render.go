/*
 * render.go, part of gophonon.
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
	"image"
	"image/color"
	"os"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// A Compositor renders captioned frames: the snapshot image, scaled to fit
// and centered, above a caption panel, both over a uniform fill color. The
// zero value is not usable; get one from NewCompositor.
type Compositor struct {
	Width, Height vg.Length //canvas size.
	CaptionFrac   float64   //fraction of the height given to the caption panel.
	DPI           int
	fonts         *font.Cache
	style         text.Style
}

// NewCompositor returns a Compositor with the default geometry: an
// 8 x 8.6 cm canvas at 200 dpi, of which the bottom 0.5 cm is the caption
// panel.
func NewCompositor() *Compositor {
	C := &Compositor{
		Width:       8.0 * vg.Centimeter,
		Height:      8.6 * vg.Centimeter,
		CaptionFrac: 0.5 / 8.6,
		DPI:         200,
		fonts:       font.NewCache(liberation.Collection()),
	}
	C.style = text.Style{
		Color:   color.Black,
		Font:    font.Font{Typeface: "Liberation", Variant: "Sans", Size: vg.Points(9)},
		XAlign:  text.XCenter,
		YAlign:  text.YBottom,
		Handler: text.Plain{Fonts: C.fonts},
	}
	return C
}

func fillRect(c draw.Canvas, r vg.Rectangle, col color.Color) {
	c.SetColor(col)
	var p vg.Path
	p.Move(r.Min)
	p.Line(vg.Point{X: r.Max.X, Y: r.Min.Y})
	p.Line(r.Max)
	p.Line(vg.Point{X: r.Min.X, Y: r.Max.Y})
	p.Close()
	c.Fill(p)
}

//fits the image into the panel preserving its aspect ratio, centered.
func imageRect(panel vg.Rectangle, img image.Image) vg.Rectangle {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	pw := float64(panel.Max.X - panel.Min.X)
	ph := float64(panel.Max.Y - panel.Min.Y)
	scale := pw / iw
	if s := ph / ih; s < scale {
		scale = s
	}
	w := vg.Length(iw * scale)
	h := vg.Length(ih * scale)
	cx := (panel.Min.X + panel.Max.X) / 2
	cy := (panel.Min.Y + panel.Max.Y) / 2
	return vg.Rectangle{
		Min: vg.Point{X: cx - w/2, Y: cy - h/2},
		Max: vg.Point{X: cx + w/2, Y: cy + h/2},
	}
}

// Render composites img and its caption over the fill color and writes the
// result as a PNG to outpath.
func (C *Compositor) Render(img image.Image, caption string, fill Color, outpath string) error {
	canvas := vgimg.NewWith(vgimg.UseWH(C.Width, C.Height), vgimg.UseDPI(C.DPI))
	dc := draw.New(canvas)
	fillRect(dc, dc.Rectangle, fill)
	capH := vg.Length(C.CaptionFrac) * C.Height
	panel := dc.Rectangle
	panel.Min.Y += capH
	canvas.DrawImage(imageRect(panel, img), img)
	//the caption sits centered in the bottom panel.
	center := vg.Point{
		X: (dc.Rectangle.Min.X + dc.Rectangle.Max.X) / 2,
		Y: dc.Rectangle.Min.Y + capH/2 - C.style.Font.Size/2,
	}
	dc.FillText(C.style, center, caption)
	f, err := os.Create(outpath)
	if err != nil {
		return errorf(true, "Render", "%s", err.Error())
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(f); err != nil {
		return errorf(true, "Render", "Can't encode %s: %s", outpath, err.Error())
	}
	return nil
}
