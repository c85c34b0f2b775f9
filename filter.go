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

import "io"

// Filter represents a PDF stream filter which can be used to encode the
// data of a stream, see [Reference.Compress].  Implementations can be found
// in the seehuhn.de/go/pdfgen/filter package.
type Filter interface {
	// FilterName returns the name of the filter, as used in the /Filter
	// entry of a stream dictionary.
	FilterName() Name

	// MinVersion returns the earliest PDF version which supports the filter.
	MinVersion() Version

	// Encode returns a writer which encodes all data written to it, and
	// writes the encoded data to w.  Closing the returned writer flushes
	// all remaining data and closes w.
	Encode(w io.WriteCloser) (io.WriteCloser, error)
}
