/*
 * archive.go, part of gophonon.
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
	"archive/tar"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
)

//A modulation run produces one trajectory per mode, which can be a lot of
//files, so they are collected in a .tar.gz archive.

// Archive writes files into a gzip-compressed tar archive.
type Archive struct {
	f  *os.File
	gz *gzip.Writer
	tw *tar.Writer
}

// NewArchive creates the archive file name.
func NewArchive(name string) (*Archive, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"NewArchive"}, true}
	}
	gz := gzip.NewWriter(f)
	return &Archive{f: f, gz: gz, tw: tar.NewWriter(gz)}, nil
}

// AddFile copies the file at path into the archive under the name arcname.
func (A *Archive) AddFile(path, arcname string) error {
	info, err := os.Stat(path)
	if err != nil {
		return Error{err.Error(), path, []string{"AddFile"}, true}
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return Error{err.Error(), path, []string{"AddFile"}, true}
	}
	hdr.Name = arcname
	if err := A.tw.WriteHeader(hdr); err != nil {
		return Error{err.Error(), path, []string{"AddFile"}, true}
	}
	f, err := os.Open(path)
	if err != nil {
		return Error{err.Error(), path, []string{"AddFile"}, true}
	}
	defer f.Close()
	if _, err := io.Copy(A.tw, f); err != nil {
		return Error{err.Error(), path, []string{"AddFile"}, true}
	}
	return nil
}

// Close flushes and closes the tar stream, the compressor and the file, in
// that order, returning the first error found.
func (A *Archive) Close() error {
	var first error
	for _, c := range []io.Closer{A.tw, A.gz, A.f} {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RemoveWithRetry deletes the file at path. Deleting a just-written file
// can transiently fail when an external process (say, a syncing agent)
// still holds it, so a failed attempt is retried exactly once after
// sleeping for delay; a second failure is returned.
func RemoveWithRetry(path string, delay time.Duration) error {
	if err := os.Remove(path); err == nil {
		return nil
	}
	time.Sleep(delay)
	if err := os.Remove(path); err != nil {
		return Error{err.Error(), path, []string{"RemoveWithRetry"}, true}
	}
	return nil
}
