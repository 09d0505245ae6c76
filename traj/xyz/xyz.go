/*
 * xyz.go, part of gophonon.
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
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

//Write!

// Writer writes the frames of an XYZ trajectory one at a time. The output
// is compressed according to the filename extension (see the package
// documentation). All frames must have the same number of atoms, fixed at
// creation.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
}

type plainWriter struct {
	*bufio.Writer
}

func (p plainWriter) Close() error { return p.Flush() }

// NewWriter creates the file name and returns a Writer for trajectory
// frames of natoms atoms.
func NewWriter(name string, natoms int) (*Writer, error) {
	if natoms <= 0 {
		return nil, Error{fmt.Sprintf("Can't write a trajectory of %d atoms", natoms), name, []string{"NewWriter"}, true}
	}
	W := new(Writer)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		W.h = gzip.NewWriter(W.f)
	case ".zst", ".stz":
		W.h, err = zstd.NewWriter(W.f)
		if err != nil {
			W.f.Close()
			return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
		}
	default:
		W.h = plainWriter{bufio.NewWriter(W.f)}
	}
	W.natoms = natoms
	W.filename = name
	W.writeable = true
	return W, nil
}

// Len returns the number of atoms per frame.
func (W *Writer) Len() int {
	return W.natoms
}

// WNext writes the next frame: the atom count, the comment line, then one
// line per atom with its type label and Cartesian coordinates. It checks
// that the coordinates and types match the atom count of the trajectory.
func (W *Writer) WNext(types []string, coord *mat.Dense, comment string) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, W.filename, []string{"WNext"}, true}
	}
	r, c := coord.Dims()
	if r != W.natoms || c != 3 {
		return Error{fmt.Sprintf("%dx%d coordinates given, but %dx3 expected", r, c, W.natoms), W.filename, []string{"WNext"}, true}
	}
	if len(types) != W.natoms {
		return Error{fmt.Sprintf("%d atom types given, but %d expected", len(types), W.natoms), W.filename, []string{"WNext"}, true}
	}
	fmt.Fprintf(W.h, "%d\n", W.natoms)
	fmt.Fprintf(W.h, "%s\n", comment)
	for i := 0; i < W.natoms; i++ {
		_, err := fmt.Fprintf(W.h, "  %3s  % 16.10f  % 16.10f  % 16.10f\n", types[i], coord.At(i, 0), coord.At(i, 1), coord.At(i, 2))
		if err != nil {
			return Error{err.Error(), W.filename, []string{"WNext"}, true}
		}
	}
	return nil
}

// Close flushes and closes the trajectory. The Writer can not be used
// after this call.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

//Read!

// Reader reads the frames of an XYZ trajectory one at a time,
// decompressing according to the filename extension.
type Reader struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	filename string
	readable bool
}

type plainReader struct {
	io.Reader
}

func (p plainReader) Close() error { return nil }

//wraps a zstd.Decoder, which has a Close method without the error return
//io.ReadCloser wants.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//openReader opens name with the decompressor its extension calls for.
func openReader(name string) (*os.File, io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	var z io.ReadCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		z, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
	case ".zst", ".stz":
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		z = zstdql{d.Close, d}
	default:
		z = plainReader{f}
	}
	return f, z, nil
}

// NewReader opens an XYZ trajectory for reading.
func NewReader(name string) (*Reader, error) {
	R := new(Reader)
	R.filename = name
	var err error
	R.f, R.z, err = openReader(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"NewReader"}, true}
	}
	R.h = bufio.NewReader(R.z)
	R.readable = true
	return R, nil
}

// Readable returns true if it is possible to call Next on the Reader.
func (R *Reader) Readable() bool {
	return R.readable
}

// Next reads the next frame and returns the atom types, the Nx3 coordinate
// matrix and the comment line. At the end of the trajectory it closes the
// Reader and returns io.EOF.
func (R *Reader) Next() ([]string, *mat.Dense, string, error) {
	if !R.readable {
		return nil, nil, "", Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	countline, err := R.h.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(countline) == "" {
			R.Close()
			return nil, nil, "", io.EOF
		}
		return nil, nil, "", Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(countline))
	if err != nil {
		return nil, nil, "", Error{fmt.Sprintf("Can't read atom count from '%s': %s", strings.TrimSpace(countline), err.Error()), R.filename, []string{"Next"}, true}
	}
	comment, err := R.h.ReadString('\n')
	if err != nil {
		return nil, nil, "", Error{"Frame truncated at comment line: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	comment = strings.TrimSuffix(comment, "\n")
	types := make([]string, natoms)
	coord := mat.NewDense(natoms, 3, nil)
	for i := 0; i < natoms; i++ {
		line, err := R.h.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, nil, "", Error{err.Error(), R.filename, []string{"Next"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, nil, "", Error{fmt.Sprintf("Frame has %d of the %d atoms its count line promises", i, natoms), R.filename, []string{"Next"}, true}
		}
		types[i] = fields[0]
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, nil, "", Error{fmt.Sprintf("Can't parse coordinate %d of atom %d: %s", j+1, i+1, err.Error()), R.filename, []string{"Next"}, true}
			}
			coord.Set(i, j, v)
		}
	}
	return types, coord, comment, nil
}

// Close closes the trajectory and marks the Reader as unreadable.
func (R *Reader) Close() {
	if R == nil || !R.readable {
		return
	}
	R.z.Close()
	R.f.Close()
	R.readable = false
}

//Errors

// Error is the error type for XYZ trajectories. It implements phonon.Error.
type Error struct {
	message  string
	filename string //the file with problems, or an empty string.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("xyz file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error and returns the resulting
// decoration slice.
func (err Error) Decorate(deco string) []string {
	//This method does not use a pointer receiver, but err.deco is a slice,
	//hence a pointer itself, so the appends are visible to the caller.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file (always "xyz") associated to the
// error.
func (err Error) Format() string { return "xyz" }

// Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	NilCoordinates = "Given nil coordinates"
)
