// seehuhn.de/go/pdfgen - in-memory generation of PDF documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdfgen

import (
	"errors"
	"strconv"
)

var (
	// ErrRendered is returned when a document is modified after rendering
	// has started.
	ErrRendered = errors.New("document already rendered")

	// ErrNotFound is the error wrapped by [NotFoundError].
	ErrNotFound = errors.New("object not found")

	errVersion = errors.New("unsupported PDF version")
)

// NotFoundError is returned by [Store.Lookup] when an identifier has never
// been allocated.  This indicates a dangling reference in the calling code.
type NotFoundError struct {
	ID int
}

func (err *NotFoundError) Error() string {
	return "object " + strconv.Itoa(err.ID) + " not found"
}

func (err *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ResolveError indicates that a deferred resolver failed during
// finalization.  No output is produced in this case.
type ResolveError struct {
	ID  int
	Err error
}

func (err *ResolveError) Error() string {
	return "resolving object " + strconv.Itoa(err.ID) + ": " + err.Err.Error()
}

func (err *ResolveError) Unwrap() error {
	return err.Err
}
