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
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Info represents a PDF Document Information Dictionary.
//
// All fields in this structure are optional.  The zero value represents
// an empty information dictionary.
//
// The Document Information Dictionary is documented in section
// 14.3.3 of ISO 32000-2:2020.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords string

	// Creator gives the name of the application that created the original
	// document, if the document was converted to PDF from another format.
	Creator string

	// Producer gives the name of the application that converted the document,
	// if the document was converted to PDF from another format.
	Producer string

	// CreationDate gives the date and time the document was created.
	CreationDate time.Time

	// ModDate gives the date and time the document was most recently modified.
	ModDate time.Time

	// Custom contains non-standard fields for the Info dictionary.
	Custom map[string]string
}

// Clone returns a deep copy of info.
func (info *Info) Clone() *Info {
	if info == nil {
		return nil
	}
	res := *info
	if info.Custom != nil {
		res.Custom = maps.Clone(info.Custom)
	}
	return &res
}

// AsDict converts the information to a PDF dictionary.  Text fields are
// encoded using [TextString].  Custom fields are written after the standard
// ones, sorted by key.
func (info *Info) AsDict() *Dict {
	dict := &Dict{}
	if info == nil {
		return dict
	}

	text := func(key Name, val string) {
		if val != "" {
			dict.Set(key, TextString(val))
		}
	}
	text("Title", info.Title)
	text("Author", info.Author)
	text("Subject", info.Subject)
	text("Keywords", info.Keywords)
	text("Creator", info.Creator)
	text("Producer", info.Producer)
	if !info.CreationDate.IsZero() {
		dict.Set("CreationDate", Date(info.CreationDate))
	}
	if !info.ModDate.IsZero() {
		dict.Set("ModDate", Date(info.ModDate))
	}

	keys := make([]string, 0, len(info.Custom))
	for key := range info.Custom {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if dict.Has(Name(key)) {
			continue
		}
		text(Name(key), info.Custom[key])
	}

	return dict
}
