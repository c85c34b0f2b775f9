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


package nametree

import (
	"errors"
	"iter"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfgen"
)

// InMemory is a name tree which keeps all entries in memory.
// The zero value is an empty tree, ready to use.
type InMemory struct {
	Data map[pdfgen.Name]pdfgen.Object
}

// Add stores value under key.  An existing value for key is replaced.
func (t *InMemory) Add(key pdfgen.Name, value pdfgen.Object) {
	if t.Data == nil {
		t.Data = make(map[pdfgen.Name]pdfgen.Object)
	}
	t.Data[key] = value
}

// Lookup returns the value stored under key.
func (t *InMemory) Lookup(key pdfgen.Name) (pdfgen.Object, error) {
	if t == nil || t.Data == nil {
		return nil, ErrKeyNotFound
	}

	value, ok := t.Data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

// Len returns the number of entries in the tree.
func (t *InMemory) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Data)
}

// All iterates over the entries of the tree, in lexicographic order of the
// keys.
func (t *InMemory) All() iter.Seq2[pdfgen.Name, pdfgen.Object] {
	return func(yield func(pdfgen.Name, pdfgen.Object) bool) {
		if t == nil || t.Data == nil {
			return
		}

		keys := make([]pdfgen.Name, 0, len(t.Data))
		for key := range t.Data {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		for _, key := range keys {
			if !yield(key, t.Data[key]) {
				return
			}
		}
	}
}

// ErrKeyNotFound is returned by [InMemory.Lookup] for missing keys.
var ErrKeyNotFound = errors.New("key not found")
