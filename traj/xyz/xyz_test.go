/*
 * xyz_test.go, part of gophonon.
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

package xyz

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"
)

func writeTwoFrames(Te *testing.T, name string) {
	Te.Helper()
	w, err := NewWriter(name, 2)
	if err != nil {
		Te.Fatal(err)
	}
	defer w.Close()
	types := []string{"C", "H"}
	c1 := mat.NewDense(2, 3, []float64{0, 0, 0, 1.1, 0, 0})
	c2 := mat.NewDense(2, 3, []float64{0, 0, 0.5, 1.1, 0, 0.5})
	if err := w.WNext(types, c1, "first frame"); err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(types, c2, "second frame"); err != nil {
		Te.Fatal(err)
	}
}

func readAll(Te *testing.T, name string) (frames []*mat.Dense, comments []string) {
	Te.Helper()
	r, err := NewReader(name)
	if err != nil {
		Te.Fatal(err)
	}
	for {
		types, coord, comment, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			Te.Fatal(err)
		}
		if len(types) != 2 || types[0] != "C" || types[1] != "H" {
			Te.Fatalf("Frame %d has types %v, want [C H]", len(frames), types)
		}
		frames = append(frames, coord)
		comments = append(comments, comment)
	}
	return frames, comments
}

func TestRoundTrip(Te *testing.T) {
	for _, name := range []string{"t.xyz", "t.xyz.gz", "t.xyz.zst"} {
		path := filepath.Join(Te.TempDir(), name)
		writeTwoFrames(Te, path)
		frames, comments := readAll(Te, path)
		if len(frames) != 2 {
			Te.Fatalf("%s: read %d frames, want 2", name, len(frames))
		}
		if comments[0] != "first frame" || comments[1] != "second frame" {
			Te.Errorf("%s: comments %v mangled", name, comments)
		}
		if v := frames[1].At(1, 2); math.Abs(v-0.5) > 1e-9 {
			Te.Errorf("%s: frame 2, atom 2, z = %f, want 0.5", name, v)
		}
		if v := frames[0].At(1, 0); math.Abs(v-1.1) > 1e-9 {
			Te.Errorf("%s: frame 1, atom 2, x = %f, want 1.1", name, v)
		}
	}
}

func TestWriterChecks(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "t.xyz")
	w, err := NewWriter(path, 2)
	if err != nil {
		Te.Fatal(err)
	}
	defer w.Close()
	if err := w.WNext([]string{"C", "H"}, nil, ""); err == nil {
		Te.Error("nil coordinates must be rejected")
	}
	wrong := mat.NewDense(3, 3, nil)
	if err := w.WNext([]string{"C", "H", "O"}, wrong, ""); err == nil {
		Te.Error("A frame with the wrong atom count must be rejected")
	}
	if _, err := NewWriter(filepath.Join(Te.TempDir(), "e.xyz"), 0); err == nil {
		Te.Error("A 0-atom trajectory must be rejected")
	}
}

func TestMetaRoundTrip(Te *testing.T) {
	m := FrameMeta{Mode: 7, FreqTHz: 2.5, FreqInvCm: 83.39, Amplitude: -0.125}
	line := m.CommentLine()
	want := "mode =    7, v =    2.500 THz (   83.39 cm^-1), q =   -0.125 amu^1/2 A"
	if line != want {
		Te.Errorf("CommentLine:\ngot  %q\nwant %q", line, want)
	}
	got, ok := ParseComment(line)
	if !ok {
		Te.Fatalf("Can't parse the comment line just written: %q", line)
	}
	if got != m {
		Te.Errorf("Metadata round trip: got %+v, want %+v", got, m)
	}
}

func TestModeComment(Te *testing.T) {
	line := ModeComment(2.5, 83.39, 0.25)
	want := "v =    2.500 THz (   83.39 cm^-1), q =    0.250 amu^1/2 A"
	if line != want {
		Te.Errorf("ModeComment:\ngot  %q\nwant %q", line, want)
	}
	//the per-mode variant carries no mode index, so it must not parse as
	//frame metadata.
	if _, ok := ParseComment(line); ok {
		Te.Error("A per-mode comment line parsed as merged-trajectory metadata")
	}
}

func TestDecodeMeta(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "merged.xyz")
	w, err := NewWriter(path, 1)
	if err != nil {
		Te.Fatal(err)
	}
	types := []string{"C"}
	coord := mat.NewDense(1, 3, nil)
	//two modes, two frames each, out of frequency order on purpose.
	metas := []FrameMeta{
		{Mode: 2, FreqTHz: 3.0, FreqInvCm: 100.07, Amplitude: 0.25},
		{Mode: 2, FreqTHz: 3.0, FreqInvCm: 100.07, Amplitude: -0.25},
		{Mode: 1, FreqTHz: 1.0, FreqInvCm: 33.36, Amplitude: 0.5},
		{Mode: 1, FreqTHz: 1.0, FreqInvCm: 33.36, Amplitude: -0.5},
	}
	for _, m := range metas {
		if err := w.WNext(types, coord, m.CommentLine()); err != nil {
			Te.Fatal(err)
		}
	}
	w.Close()
	decoded, err := DecodeMeta(path)
	if err != nil {
		Te.Fatal(err)
	}
	if len(decoded) != 2 {
		Te.Fatalf("Decoded %d modes, want 2", len(decoded))
	}
	//encounter order, not mode order.
	if decoded[0].Mode != 2 || decoded[1].Mode != 1 {
		Te.Errorf("Modes in order %d, %d; want 2, 1", decoded[0].Mode, decoded[1].Mode)
	}
	if len(decoded[0].Amplitudes) != 2 || decoded[0].Amplitudes[1] != -0.25 {
		Te.Errorf("Mode 2 amplitudes: %v, want [0.25 -0.25]", decoded[0].Amplitudes)
	}
	if decoded[1].FreqTHz != 1.0 {
		Te.Errorf("Mode 1 frequency: %f THz, want 1", decoded[1].FreqTHz)
	}
}

func TestDecodeMetaNoMatches(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "plain.xyz")
	writeTwoFrames(Te, path)
	if _, err := DecodeMeta(path); err == nil {
		Te.Error("A trajectory without metadata comment lines must be rejected")
	}
}

func TestArchive(Te *testing.T) {
	dir := Te.TempDir()
	member := filepath.Join(dir, "Mode-001.xyz")
	writeTwoFrames(Te, member)
	arc := filepath.Join(dir, "out.tar.gz")
	a, err := NewArchive(arc)
	if err != nil {
		Te.Fatal(err)
	}
	if err := a.AddFile(member, "Animations/Mode-001.xyz"); err != nil {
		Te.Fatal(err)
	}
	if err := a.Close(); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(arc)
	if err != nil || info.Size() == 0 {
		Te.Errorf("Archive was not written: %v", err)
	}
}

func TestRemoveWithRetry(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "gone.xyz")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		Te.Fatal(err)
	}
	if err := RemoveWithRetry(path, time.Millisecond); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		Te.Error("The file is still there")
	}
	if err := RemoveWithRetry(path, time.Millisecond); err == nil {
		Te.Error("Removing a non-existent file must fail, even after the retry")
	}
}
