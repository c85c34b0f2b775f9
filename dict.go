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
	"io"
	"iter"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Entry is a key/value pair, used to construct dictionaries with [NewDict].
type Entry struct {
	Key   Name
	Value Object
}

// KV returns a dictionary entry.
func KV(key Name, value Object) Entry {
	return Entry{Key: key, Value: value}
}

// Dict represents a Dictionary object in a PDF file.
//
// Keys are kept in insertion order, and the dictionary is written to the
// PDF file in this order.  Setting an existing key keeps its position.
// The zero value is an empty dictionary, ready to use.
type Dict struct {
	keys []Name
	vals map[Name]Object
}

// NewDict returns a new dictionary containing the given entries.
func NewDict(entries ...Entry) *Dict {
	d := &Dict{}
	for _, e := range entries {
		d.Set(e.Key, e.Value)
	}
	return d
}

// Len returns the number of entries in the dictionary.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Get returns the value stored under key.
func (d *Dict) Get(key Name) (Object, bool) {
	if d == nil {
		return nil, false
	}
	val, ok := d.vals[key]
	return val, ok
}

// Has reports whether key is present in the dictionary.
func (d *Dict) Has(key Name) bool {
	_, ok := d.Get(key)
	return ok
}

// Set stores val under key.  If the key is already present, the value is
// replaced and the key keeps its position.
func (d *Dict) Set(key Name, val Object) {
	if d.vals == nil {
		d.vals = make(map[Name]Object)
	}
	if _, seen := d.vals[key]; !seen {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = val
}

// Delete removes key from the dictionary.
func (d *Dict) Delete(key Name) {
	if _, seen := d.vals[key]; !seen {
		return
	}
	delete(d.vals, key)
	idx := slices.Index(d.keys, key)
	d.keys = slices.Delete(d.keys, idx, idx+1)
}

// GetOrInsert returns the value stored under key.  If the key is not
// present, makeDefault is called and its result is stored under key and
// returned.  Existing values are never replaced.
func (d *Dict) GetOrInsert(key Name, makeDefault func() Object) Object {
	if val, ok := d.Get(key); ok {
		return val
	}
	val := makeDefault()
	d.Set(key, val)
	return val
}

// Keys returns the keys of the dictionary, in insertion order.
func (d *Dict) Keys() []Name {
	if d == nil {
		return nil
	}
	return slices.Clone(d.keys)
}

// All iterates over the dictionary entries, in insertion order.
func (d *Dict) All() iter.Seq2[Name, Object] {
	return func(yield func(Name, Object) bool) {
		if d == nil {
			return
		}
		for _, key := range d.keys {
			if !yield(key, d.vals[key]) {
				return
			}
		}
	}
}

func (d *Dict) String() string {
	res := []string{}
	tp, _ := d.Get("Type")
	if tp, ok := tp.(Name); ok {
		res = append(res, string(tp)+" Dict")
	} else {
		res = append(res, "Dict")
	}
	res = append(res, strconv.Itoa(d.Len())+" entries")
	return "<" + strings.Join(res, ", ") + ">"
}

// PDF implements the [Object] interface.
// Entries with a nil value are omitted.
func (d *Dict) PDF(w io.Writer) error {
	if d == nil {
		_, err := w.Write([]byte("null"))
		return err
	}

	_, err := w.Write([]byte("<<"))
	if err != nil {
		return err
	}
	for _, name := range d.keys {
		val := d.vals[name]
		if val == nil {
			continue
		}

		_, err = w.Write([]byte("\n"))
		if err != nil {
			return err
		}
		err = name.PDF(w)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(" "))
		if err != nil {
			return err
		}
		err = val.PDF(w)
		if err != nil {
			return err
		}
	}
	_, err = w.Write([]byte("\n>>"))
	return err
}
