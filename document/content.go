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


package document

import (
	"errors"
	"strings"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfgen"
)

// Content accumulates the content stream of a page.  Content can only be
// appended; once the page has been finalized, the content is frozen.
type Content struct {
	doc    *Document
	ref    *pdfgen.Reference
	closed bool
}

// Ref returns the reference of the content stream.
func (c *Content) Ref() *pdfgen.Reference {
	return c.ref
}

// Bytes returns the content stream accumulated so far.  After the page
// has been finalized, this is the final (possibly compressed) stream.
// The returned slice must not be modified.
func (c *Content) Bytes() []byte {
	return c.ref.Stream()
}

// Append appends s, followed by a newline, to the content stream.
func (c *Content) Append(s string) error {
	if err := c.doc.checkMutable(); err != nil {
		return err
	}
	if c.closed {
		return errPageClosed
	}
	return c.ref.AppendStream([]byte(s + "\n"))
}

// AppendOp appends a content stream operator together with its operands.
func (c *Content) AppendOp(op string, args ...pdfgen.Object) error {
	parts := make([]string, 0, len(args)+1)
	for _, arg := range args {
		parts = append(parts, pdfgen.Format(arg))
	}
	parts = append(parts, op)
	return c.Append(strings.Join(parts, " "))
}

// Transform modifies the current transformation matrix by prepending m,
// using the "cm" operator.
func (c *Content) Transform(m matrix.Matrix) error {
	args := make([]pdfgen.Object, len(m))
	for i, x := range m {
		args[i] = pdfgen.Number(x)
	}
	return c.AppendOp("cm", args...)
}

var errPageClosed = errors.New("page content is already finalized")
