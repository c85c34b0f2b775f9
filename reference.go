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
	"io"
	"strconv"
)

// Reference is an indirect object in a PDF file.
//
// References are created by [Store.Alloc] and are identified by a positive
// integer which never changes.  Other objects refer to a Reference by its
// identifier; when a *Reference is used as an [Object], the indirect
// reference "n 0 R" is written.
type Reference struct {
	id    int
	store *Store

	data   Object
	stream []byte

	resolve func() error

	offset int64
}

// ID returns the object number of the reference.
func (r *Reference) ID() int {
	return r.id
}

// Data returns the object stored in the reference.
func (r *Reference) Data() Object {
	return r.data
}

// Dict returns the data of the reference, if this is a dictionary.
func (r *Reference) Dict() (*Dict, bool) {
	d, ok := r.data.(*Dict)
	return d, ok
}

// SetData replaces the object stored in the reference.
func (r *Reference) SetData(data Object) error {
	if err := r.store.checkMutable(); err != nil {
		return err
	}
	r.data = data
	return nil
}

// HasStream reports whether the reference carries stream data.
func (r *Reference) HasStream() bool {
	return r.stream != nil
}

// Stream returns the stream data of the reference.  The returned slice
// must not be modified.
func (r *Reference) Stream() []byte {
	return r.stream
}

// SetStream replaces the stream data of the reference.  The data of the
// reference must be a dictionary.
func (r *Reference) SetStream(data []byte) error {
	if err := r.store.checkMutable(); err != nil {
		return err
	}
	if _, ok := r.data.(*Dict); !ok {
		return fmt.Errorf("object %d: stream data requires a dictionary, not %T", r.id, r.data)
	}
	if data == nil {
		data = []byte{}
	}
	r.stream = data
	return nil
}

// AppendStream appends data to the stream of the reference.  If the
// reference has no stream yet, an empty one is created first.
func (r *Reference) AppendStream(data []byte) error {
	if r.stream == nil {
		err := r.SetStream(nil)
		if err != nil {
			return err
		}
	} else if err := r.store.checkMutable(); err != nil {
		return err
	}
	r.stream = append(r.stream, data...)
	return nil
}

// Compress encodes the stream data using filter f.  The filter name is
// added in front of any filters already listed in the stream dictionary,
// and the /Length entry is updated.
func (r *Reference) Compress(f Filter) error {
	if err := r.store.checkMutable(); err != nil {
		return err
	}
	dict, ok := r.data.(*Dict)
	if !ok || r.stream == nil {
		return fmt.Errorf("object %d: not a stream", r.id)
	}

	buf := &bytes.Buffer{}
	enc, err := f.Encode(nopCloser{buf})
	if err != nil {
		return err
	}
	_, err = enc.Write(r.stream)
	if err != nil {
		return err
	}
	err = enc.Close()
	if err != nil {
		return err
	}
	r.stream = buf.Bytes()

	name := f.FilterName()
	switch old := dict.vals["Filter"].(type) {
	case nil:
		dict.Set("Filter", name)
	case Name:
		dict.Set("Filter", Array{name, old})
	case Array:
		dict.Set("Filter", append(Array{name}, old...))
	default:
		return fmt.Errorf("object %d: invalid /Filter %s", r.id, Format(old))
	}
	dict.Set("Length", Integer(len(r.stream)))
	return nil
}

// Offset returns the byte offset of the object in the rendered file.
// The second return value is false, if the object has not been rendered.
func (r *Reference) Offset() (int64, bool) {
	return r.offset, r.offset >= 0
}

// PDF implements the [Object] interface, by writing an indirect reference
// to r.
func (r *Reference) PDF(w io.Writer) error {
	if r == nil {
		_, err := w.Write([]byte("null"))
		return err
	}
	if pw, ok := w.(*posWriter); ok && pw.store != r.store {
		return errForeignReference
	}
	_, err := w.Write([]byte(strconv.Itoa(r.id) + " 0 R"))
	return err
}

func (r *Reference) String() string {
	return "obj_" + strconv.Itoa(r.id)
}

// writeIndirect writes the indirect object definition of r.
func (r *Reference) writeIndirect(w *posWriter) error {
	_, err := w.Write([]byte(strconv.Itoa(r.id) + " 0 obj\n"))
	if err != nil {
		return err
	}
	if r.data == nil {
		_, err = w.Write([]byte("null"))
	} else {
		err = r.data.PDF(w)
	}
	if err != nil {
		return fmt.Errorf("object %d: %w", r.id, err)
	}
	_, err = w.Write([]byte("\n"))
	if err != nil {
		return err
	}
	if r.stream != nil {
		_, err = w.Write([]byte("stream\n"))
		if err != nil {
			return err
		}
		_, err = w.Write(r.stream)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte("\nendstream\n"))
		if err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("endobj\n"))
	return err
}

var errForeignReference = errors.New("reference belongs to a different document")

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
