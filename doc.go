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

// Package pdfgen builds PDF documents in memory.
//
// All indirect objects of a document are kept in a [Store].  Objects are
// allocated with [Store.Alloc], which assigns consecutive object numbers
// starting at 1, and can be modified freely until the document is rendered.
// An object can carry a deferred resolver, a function which is called once,
// just before the file is written, to fill in content which is only known
// once the whole document is complete (for example the glyphs used from a
// font, or the entries of a name tree).
//
// [Store.Render] writes the complete file in a single forward pass: the
// header, all objects in allocation order, the cross-reference table and the
// trailer.  The output is assembled in memory and only returned if every
// step succeeded.
//
// The following types implement the native PDF object types.
// All of these implement the [Object] interface:
//
//	Array
//	Bool
//	*Dict
//	Integer
//	Name
//	Real
//	*Reference
//	String
//
// The PDF null object is represented by the Go value nil.
//
// Pages, resources and content streams are managed by the
// seehuhn.de/go/pdfgen/document package, which is built on top of this
// package.
package pdfgen
