/*
 * ppm.go, part of gophonon.
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
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

//VMD writes its snapshots as binary PPM, which neither the standard library
//nor x/image decode, so here is the least PPM reader that serves.

func init() {
	image.RegisterFormat("ppm", "P6", decodePPM, decodePPMConfig)
}

//reads the next whitespace-separated unsigned integer of a PPM header,
//skipping '#' comments.
func ppmInt(r *bufio.Reader) (int, error) {
	n := 0
	digits := 0
	for {
		c, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch {
		case c == '#':
			if _, err := r.ReadString('\n'); err != nil {
				return 0, err
			}
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
			digits++
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if digits > 0 {
				return n, nil
			}
		default:
			return 0, fmt.Errorf("ppm: bad header byte %q", c)
		}
	}
}

func ppmHeader(r *bufio.Reader) (w, h, maxval int, err error) {
	magic := make([]byte, 2)
	if _, err = io.ReadFull(r, magic); err != nil {
		return
	}
	if string(magic) != "P6" {
		err = fmt.Errorf("ppm: not a P6 file")
		return
	}
	if w, err = ppmInt(r); err != nil {
		return
	}
	if h, err = ppmInt(r); err != nil {
		return
	}
	if maxval, err = ppmInt(r); err != nil {
		return
	}
	if w <= 0 || h <= 0 || maxval <= 0 || maxval > 65535 {
		err = fmt.Errorf("ppm: bad dimensions %dx%d, maxval %d", w, h, maxval)
	}
	return
}

func decodePPMConfig(r io.Reader) (image.Config, error) {
	w, h, maxval, err := ppmHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	model := color.Model(color.RGBAModel)
	if maxval > 255 {
		model = color.RGBA64Model
	}
	return image.Config{ColorModel: model, Width: w, Height: h}, nil
}

func decodePPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	w, h, maxval, err := ppmHeader(br)
	if err != nil {
		return nil, err
	}
	if maxval <= 255 {
		raw := make([]byte, w*h*3)
		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, fmt.Errorf("ppm: truncated pixel data: %s", err.Error())
		}
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for i := 0; i < w*h; i++ {
			scale := func(v byte) uint8 { return uint8(int(v) * 255 / maxval) }
			img.Pix[i*4+0] = scale(raw[i*3+0])
			img.Pix[i*4+1] = scale(raw[i*3+1])
			img.Pix[i*4+2] = scale(raw[i*3+2])
			img.Pix[i*4+3] = 0xff
		}
		return img, nil
	}
	raw := make([]byte, w*h*6)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("ppm: truncated pixel data: %s", err.Error())
	}
	img := image.NewRGBA64(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		scale := func(hi, lo byte) (uint8, uint8) {
			v := (int(hi)<<8 | int(lo)) * 65535 / maxval
			return uint8(v >> 8), uint8(v)
		}
		img.Pix[i*8+0], img.Pix[i*8+1] = scale(raw[i*6+0], raw[i*6+1])
		img.Pix[i*8+2], img.Pix[i*8+3] = scale(raw[i*6+2], raw[i*6+3])
		img.Pix[i*8+4], img.Pix[i*8+5] = scale(raw[i*6+4], raw[i*6+5])
		img.Pix[i*8+6], img.Pix[i*8+7] = 0xff, 0xff
	}
	return img, nil
}
