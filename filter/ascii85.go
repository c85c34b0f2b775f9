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

package filter

import (
	"io"

	"seehuhn.de/go/pdfgen"
)

// ASCII85 is the /ASCII85Decode filter.  It expands the data by 25% but
// makes the stream 7-bit clean.  Combine with [Flate] by compressing twice,
// first with Flate and then with ASCII85.
type ASCII85 struct{}

// FilterName implements the [pdfgen.Filter] interface.
func (ASCII85) FilterName() pdfgen.Name {
	return "ASCII85Decode"
}

// MinVersion implements the [pdfgen.Filter] interface.
func (ASCII85) MinVersion() pdfgen.Version {
	return pdfgen.V1_0
}

// Encode implements the [pdfgen.Filter] interface.
func (ASCII85) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return &ascii85Writer{
		w:   w,
		buf: make([]byte, 0, 80),
	}, nil
}

type ascii85Writer struct {
	w   io.WriteCloser
	buf []byte
	v   uint32
	k   int
}

func (w *ascii85Writer) Write(p []byte) (n int, err error) {
	for n, b := range p {
		w.v = w.v<<8 | uint32(b)
		w.k++
		if w.k == 4 {
			if cap(w.buf) < len(w.buf)+8 { // space for "xxxxx~>\n"
				err = w.flush()
				if err != nil {
					return n, err
				}
			}

			v := w.v
			if v == 0 {
				w.buf = append(w.buf, 'z')
			} else {
				var c [5]byte
				for i := 4; i >= 0; i-- {
					c[i] = byte(v%85) + '!'
					v /= 85
				}
				w.buf = append(w.buf, c[:]...)
			}

			w.v = 0
			w.k = 0
		}
	}
	return len(p), nil
}

func (w *ascii85Writer) Close() error {
	if w.k != 0 {
		v := w.v << ((4 - w.k) * 8)
		var c [5]byte
		for i := 4; i >= 0; i-- {
			c[i] = byte(v%85) + '!'
			v /= 85
		}
		w.buf = append(w.buf, c[:w.k+1]...)
		w.v = 0
		w.k = 0
	}
	w.buf = append(w.buf, '~', '>')
	err := w.flush()
	if err != nil {
		return err
	}
	return w.w.Close()
}

func (w *ascii85Writer) flush() error {
	w.buf = append(w.buf, '\n')
	_, err := w.w.Write(w.buf)
	if err != nil {
		return err
	}
	w.buf = w.buf[:0]
	return nil
}
