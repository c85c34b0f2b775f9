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


package numtree

import (
	"fmt"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
)

// LabelStyle is the numbering style of a page label.
type LabelStyle pdfgen.Name

// These are the numbering styles defined in section 12.4.2 of
// ISO 32000-2:2020.
const (
	NoNumbers    LabelStyle = ""
	Decimal      LabelStyle = "D"
	RomanUpper   LabelStyle = "R"
	RomanLower   LabelStyle = "r"
	LettersUpper LabelStyle = "A"
	LettersLower LabelStyle = "a"
)

// PageLabel describes the labels of a range of pages.
type PageLabel struct {
	Style  LabelStyle
	Prefix string

	// Start is the numeric value of the label of the first page in the
	// range.  Zero is the same as one.
	Start int
}

// AsDict converts the label into a page label dictionary.
func (l *PageLabel) AsDict() (*pdfgen.Dict, error) {
	dict := pdfgen.NewDict(pdfgen.KV("Type", pdfgen.Name("PageLabel")))
	switch l.Style {
	case NoNumbers:
	case Decimal, RomanUpper, RomanLower, LettersUpper, LettersLower:
		dict.Set("S", pdfgen.Name(l.Style))
	default:
		return nil, fmt.Errorf("invalid page label style %q", l.Style)
	}
	if l.Prefix != "" {
		dict.Set("P", pdfgen.TextString(l.Prefix))
	}
	if l.Start < 0 {
		return nil, fmt.Errorf("invalid page label start %d", l.Start)
	} else if l.Start > 1 {
		dict.Set("St", pdfgen.Integer(l.Start))
	}
	return dict, nil
}

// SetPageLabels installs page labels for doc.  The keys of labels are
// 0-based page indices, where each label applies to the pages up to the
// next key.  Page labels require PDF 1.3.
func SetPageLabels(doc *document.Document, labels map[int]*PageLabel) (*pdfgen.Reference, error) {
	if _, ok := labels[0]; !ok {
		return nil, fmt.Errorf("no page label for the first page")
	}

	tree := &InMemory{}
	for idx, label := range labels {
		if idx < 0 {
			return nil, fmt.Errorf("invalid page index %d", idx)
		}
		dict, err := label.AsDict()
		if err != nil {
			return nil, err
		}
		tree.Add(pdfgen.Integer(idx), dict)
	}

	err := doc.RaiseVersion(pdfgen.V1_3)
	if err != nil {
		return nil, err
	}
	return tree.Attach(doc, "PageLabels")
}
