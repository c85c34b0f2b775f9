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


// Package nametree implements PDF name trees.
//
// Name trees serve a similar purpose to dictionaries, associating keys and
// values, but using string keys that are ordered lexicographically.  Name
// trees are used in the name dictionary of a document, for example for
// named destinations.
//
// An [InMemory] tree collects its entries while the document is being
// built.  When the tree is attached to a document with [InMemory.Attach],
// the tree nodes are written at finalization time, so that entries can be
// added until the document is rendered.
package nametree
