/*
 * errors.go, part of gophonon.
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

package phonon

import "fmt"

//This error system predates the "wrapping" errors of Go (the "%w" directive
//and the errors package). The Decorate method allows adding information to an
//error as it is passed up the call stack, without changing its type.

// Error is the interface for errors implemented by all packages in this
// library. Decorate adds information to the error and returns the resulting
// "decoration" slice; if given an empty string it only returns the current
// value. Critical distinguishes errors that must abort the run from those
// that the caller may choose to ignore.
type Error interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

// CError (Concrete Error) is the error type returned by the functions in the
// main gophonon package.
type CError struct {
	msg      string
	deco     []string
	critical bool
}

func (err *CError) Error() string { return err.msg }

// Decorate will add the dec string to the decoration slice of strings of the
// error, and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error is critical or can be ignored.
func (err *CError) Critical() bool { return err.critical }

// newError returns a critical CError with the given message, decorated with
// the caller's name.
func newError(caller, format string, a ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, a...), deco: []string{caller}, critical: true}
}

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it. Errors from outside the library (os,
// encoding, etc.) get wrapped in a CError instead.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return newError(caller, "%s", err.Error())
	}
	err2.Decorate(caller)
	return err2
}
