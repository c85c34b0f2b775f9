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
	"bytes"
	"errors"
	"fmt"
)

// xrefFreeHead is the cross-reference entry for object 0, the head of the
// list of free objects.  Every entry is exactly 20 bytes long.
const xrefFreeHead = "0000000000 65535 f \n"

// Render writes the store as a complete PDF file and returns the file
// contents.
//
// If the store is still in the Building state, it is first moved to the
// Finalizing state and all pending deferred resolvers are run.  Once the
// first byte of output has been produced, the store is frozen and all
// attempts to modify it fail with [ErrRendered].
//
// The output is assembled in memory.  If an error occurs, no output is
// returned and the store is left unusable.  Calling Render again after a
// successful call returns the same bytes; the returned slice must not be
// modified.
func (s *Store) Render(ver Version) ([]byte, error) {
	if s.out != nil {
		return s.out, nil
	}
	if s.err != nil {
		return nil, s.err
	}

	if s.state == Building {
		err := s.BeginFinalize()
		if err != nil {
			return nil, err
		}
	}
	err := s.Resolve()
	if err != nil {
		return nil, err
	}

	verString, err := ver.ToString()
	if err != nil {
		s.Fail(err)
		return nil, err
	}
	if s.root == nil {
		err = errors.New("missing document catalog")
		s.Fail(err)
		return nil, err
	}
	err = s.syncLengths()
	if err != nil {
		s.Fail(err)
		return nil, err
	}

	s.state = Rendered

	w := &posWriter{store: s}
	offsets, xrefOffset, err := s.render(w, verString)
	if err != nil {
		s.Fail(err)
		return nil, err
	}

	for i, ref := range s.refs {
		ref.offset = offsets[i]
	}
	s.xrefOffset = xrefOffset
	s.out = w.buf.Bytes()
	return s.out, nil
}

// render writes header, body, cross-reference table and trailer in a single
// forward pass.  The object offsets are returned in allocation order.
func (s *Store) render(w *posWriter, verString string) ([]int64, int64, error) {
	// header, see section 7.5.2 of ISO 32000-2:2020
	_, err := fmt.Fprintf(w, "%%PDF-%s\n%%\xFF\xFF\xFF\xFF\n", verString)
	if err != nil {
		return nil, 0, err
	}

	// body
	offsets := make([]int64, len(s.refs))
	for i, ref := range s.refs {
		offsets[i] = w.pos()
		err = ref.writeIndirect(w)
		if err != nil {
			return nil, 0, err
		}
	}

	// cross-reference table, using the same order as the body
	xrefOffset := w.pos()
	_, err = fmt.Fprintf(w, "xref\n0 %d\n", len(s.refs)+1)
	if err != nil {
		return nil, 0, err
	}
	_, err = w.Write([]byte(xrefFreeHead))
	if err != nil {
		return nil, 0, err
	}
	for _, pos := range offsets {
		_, err = fmt.Fprintf(w, "%010d 00000 n \n", pos)
		if err != nil {
			return nil, 0, err
		}
	}

	// trailer
	trailer := NewDict(
		KV("Size", Integer(len(s.refs)+1)),
		KV("Root", s.root),
	)
	if s.info != nil {
		trailer.Set("Info", s.info)
	}
	_, err = w.Write([]byte("trailer\n"))
	if err != nil {
		return nil, 0, err
	}
	err = trailer.PDF(w)
	if err != nil {
		return nil, 0, err
	}
	_, err = fmt.Fprintf(w, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)
	if err != nil {
		return nil, 0, err
	}

	return offsets, xrefOffset, nil
}

// posWriter collects the output of a store.  References written through a
// posWriter are checked to belong to the store being rendered.
type posWriter struct {
	buf   bytes.Buffer
	store *Store
}

func (w *posWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *posWriter) pos() int64 {
	return int64(w.buf.Len())
}
