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

// Package filter implements the stream filters used to compress content
// streams and other stream objects.
//
// Each filter implements the [pdfgen.Filter] interface and can be passed to
// [pdfgen.Reference.Compress].
package filter

import (
	"compress/zlib"
	"io"

	"seehuhn.de/go/pdfgen"
)

// Flate is the /FlateDecode filter.
//
// Level is the zlib compression level.  The zero value selects
// zlib.DefaultCompression.
type Flate struct {
	Level int
}

// FilterName implements the [pdfgen.Filter] interface.
func (f Flate) FilterName() pdfgen.Name {
	return "FlateDecode"
}

// MinVersion implements the [pdfgen.Filter] interface.
func (f Flate) MinVersion() pdfgen.Version {
	return pdfgen.V1_2
}

// Encode implements the [pdfgen.Filter] interface.
func (f Flate) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	level := f.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	zw, err := zlib.NewWriterLevel(w, level)
	if err != nil {
		return nil, err
	}
	return &flateWriter{Writer: zw, w: w}, nil
}

type flateWriter struct {
	*zlib.Writer
	w io.WriteCloser
}

func (fw *flateWriter) Close() error {
	err := fw.Writer.Close()
	if err != nil {
		return err
	}
	return fw.w.Close()
}

// Decode returns a reader for the data encoded by the filter.
func (f Flate) Decode(r io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(r)
}
