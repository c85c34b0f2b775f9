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


// Package font registers the 14 standard PDF fonts in documents.
//
// The standard fonts are available in every PDF viewer, so no font
// program needs to be embedded.  Text is encoded using WinAnsiEncoding,
// except for the Symbol and ZapfDingbats fonts which use their built-in
// encodings.
package font

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
)

// Standard identifies one of the 14 standard fonts.
type Standard string

// Constants for the 14 standard PDF fonts.
const (
	Courier              Standard = "Courier"
	CourierBold          Standard = "Courier-Bold"
	CourierBoldOblique   Standard = "Courier-BoldOblique"
	CourierOblique       Standard = "Courier-Oblique"
	Helvetica            Standard = "Helvetica"
	HelveticaBold        Standard = "Helvetica-Bold"
	HelveticaBoldOblique Standard = "Helvetica-BoldOblique"
	HelveticaOblique     Standard = "Helvetica-Oblique"
	TimesRoman           Standard = "Times-Roman"
	TimesBold            Standard = "Times-Bold"
	TimesBoldItalic      Standard = "Times-BoldItalic"
	TimesItalic          Standard = "Times-Italic"
	Symbol               Standard = "Symbol"
	ZapfDingbats         Standard = "ZapfDingbats"
)

// IsValid reports whether f is one of the 14 standard fonts.
func (f Standard) IsValid() bool {
	switch f {
	case Courier, CourierBold, CourierBoldOblique, CourierOblique,
		Helvetica, HelveticaBold, HelveticaBoldOblique, HelveticaOblique,
		TimesRoman, TimesBold, TimesBoldItalic, TimesItalic,
		Symbol, ZapfDingbats:
		return true
	}
	return false
}

func (f Standard) hasBuiltinEncoding() bool {
	return f == Symbol || f == ZapfDingbats
}

// Registry keeps track of the fonts used in a document.  Each font
// dictionary is written once and shared by all pages.
type Registry struct {
	doc   *document.Document
	refs  map[Standard]*pdfgen.Reference
	names map[Standard]pdfgen.Name
}

// NewRegistry returns a new font registry for doc.
func NewRegistry(doc *document.Document) *Registry {
	return &Registry{
		doc:   doc,
		refs:  make(map[Standard]*pdfgen.Reference),
		names: make(map[Standard]pdfgen.Name),
	}
}

// Use makes font f available on the current page and returns its resource
// name.  A font has the same name on all pages.
func (r *Registry) Use(f Standard) (pdfgen.Name, error) {
	if !f.IsValid() {
		return "", fmt.Errorf("%q is not a standard font", f)
	}

	ref := r.refs[f]
	if ref == nil {
		dict := pdfgen.NewDict(
			pdfgen.KV("Type", pdfgen.Name("Font")),
			pdfgen.KV("Subtype", pdfgen.Name("Type1")),
			pdfgen.KV("BaseFont", pdfgen.Name(f)),
		)
		if !f.hasBuiltinEncoding() {
			dict.Set("Encoding", pdfgen.Name("WinAnsiEncoding"))
		}
		var err error
		ref, err = r.doc.Alloc(dict, nil)
		if err != nil {
			return "", err
		}
		r.refs[f] = ref
		r.names[f] = pdfgen.Name(fmt.Sprintf("F%d", len(r.names)+1))
	}
	name := r.names[f]

	fonts, err := r.doc.PageFonts()
	if err != nil {
		return "", err
	}
	if obj, ok := fonts.Get(name); ok && obj != ref {
		return "", fmt.Errorf("resource name /%s already in use", name)
	}
	fonts.Set(name, ref)

	err = r.doc.ProcSet("PDF", "Text")
	if err != nil {
		return "", err
	}
	return name, nil
}

// Ref returns the font dictionary of f, or nil if f has not been used.
func (r *Registry) Ref(f Standard) *pdfgen.Reference {
	return r.refs[f]
}

// Encode converts text to the character codes used for f.  Characters
// which cannot be encoded are replaced by '?' and ok is set to false.
func (f Standard) Encode(text string) (s pdfgen.String, ok bool) {
	if f.hasBuiltinEncoding() {
		return pdfgen.String(text), true
	}
	ok = true
	s = make(pdfgen.String, 0, len(text))
	for _, r := range text {
		c, found := charmap.Windows1252.EncodeRune(r)
		if !found {
			c = '?'
			ok = false
		}
		s = append(s, c)
	}
	return s, ok
}

// ShowText draws a single line of text on the current page, with the
// start of the baseline at (x, y).
func (r *Registry) ShowText(f Standard, size, x, y float64, text string) error {
	s, ok := f.Encode(text)
	if !ok {
		return fmt.Errorf("text %q: %w", text, errNotEncodable)
	}

	name, err := r.Use(f)
	if err != nil {
		return err
	}

	c := r.doc.PageContent()
	err = c.Append("BT")
	if err != nil {
		return err
	}
	err = c.AppendOp("Tf", name, pdfgen.Number(size))
	if err != nil {
		return err
	}
	err = c.AppendOp("Td", pdfgen.Number(x), pdfgen.Number(y))
	if err != nil {
		return err
	}
	err = c.AppendOp("Tj", s)
	if err != nil {
		return err
	}
	return c.Append("ET")
}

var errNotEncodable = errors.New("cannot be encoded in WinAnsiEncoding")
