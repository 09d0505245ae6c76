/*
 * meta.go, part of gophonon.
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
	"bufio"
	"fmt"
	"regexp"
	"strconv"
)

// FrameMeta holds the per-frame fields carried on the comment line of a
// merged modulation trajectory.
type FrameMeta struct {
	Mode      int     //1-based mode index.
	FreqTHz   float64 //mode frequency, THz.
	FreqInvCm float64 //mode frequency, cm^-1.
	Amplitude float64 //normal-mode amplitude at this step, amu^1/2 A.
}

// CommentLine formats the metadata in the grammar DecodeMeta parses.
// The writer and the reader of this line must agree exactly, so any change
// here must be mirrored in metaRegex.
func (m FrameMeta) CommentLine() string {
	return fmt.Sprintf("mode = %4d, v = %8.3f THz (%8.2f cm^-1), q = %8.3f amu^1/2 A",
		m.Mode, m.FreqTHz, m.FreqInvCm, m.Amplitude)
}

// ModeComment formats the comment-line variant used in the per-mode
// trajectory files, which carry no mode index.
func ModeComment(freqTHz, freqInvCm, amplitude float64) string {
	return fmt.Sprintf("v = %8.3f THz (%8.2f cm^-1), q = %8.3f amu^1/2 A",
		freqTHz, freqInvCm, amplitude)
}

var metaRegex = regexp.MustCompile(`mode =\s+(\d+), v =\s+(-?\d+\.\d+) THz \(\s*(-?\d+\.\d+) cm\^-1\), q =\s+(-?\d+\.\d+) amu\^1/2 A`)

// ParseComment extracts the metadata fields from a comment line. The second
// return value is false for lines that don't match the grammar.
func ParseComment(line string) (FrameMeta, bool) {
	var m FrameMeta
	groups := metaRegex.FindStringSubmatch(line)
	if groups == nil {
		return m, false
	}
	//the regexp only matches parseable numbers, so errors are not checked.
	m.Mode, _ = strconv.Atoi(groups[1])
	m.FreqTHz, _ = strconv.ParseFloat(groups[2], 64)
	m.FreqInvCm, _ = strconv.ParseFloat(groups[3], 64)
	m.Amplitude, _ = strconv.ParseFloat(groups[4], 64)
	return m, true
}

// ModeMeta aggregates the decoded metadata for one mode: its frequencies
// and the amplitudes of its frames, in the order they were encountered.
type ModeMeta struct {
	Mode       int
	FreqTHz    float64
	FreqInvCm  float64
	Amplitudes []float64
}

// DecodeMeta scans a merged modulation trajectory and aggregates the
// metadata of its comment lines per mode, preserving encounter order.
// Lines that don't match the metadata grammar are ignored. It is an error
// for no line at all to match.
func DecodeMeta(path string) ([]*ModeMeta, error) {
	f, z, err := openReader(path)
	if err != nil {
		return nil, Error{err.Error(), path, []string{"DecodeMeta"}, true}
	}
	defer f.Close()
	defer z.Close()
	byMode := make(map[int]*ModeMeta)
	order := make([]*ModeMeta, 0)
	scanner := bufio.NewScanner(z)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		m, ok := ParseComment(scanner.Text())
		if !ok {
			continue
		}
		mm, seen := byMode[m.Mode]
		if !seen {
			mm = &ModeMeta{Mode: m.Mode, FreqTHz: m.FreqTHz, FreqInvCm: m.FreqInvCm}
			byMode[m.Mode] = mm
			order = append(order, mm)
		}
		mm.Amplitudes = append(mm.Amplitudes, m.Amplitude)
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{err.Error(), path, []string{"DecodeMeta"}, true}
	}
	if len(order) == 0 {
		return nil, Error{"No frame metadata extracted", path, []string{"DecodeMeta"}, true}
	}
	return order, nil
}
