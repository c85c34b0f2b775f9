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


// Package outputintent adds output intents to PDF documents.
//
// An output intent describes the color characteristics of the device on
// which the document is intended to be reproduced.  Output intents are
// required by PDF/A.
package outputintent

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/icc"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
)

// PDF 2.0 sections: 14.11.5

// Intent describes an output intent.
type Intent struct {
	// Subtype is the output intent subtype.  If this is empty, GTS_PDFA1
	// is used.
	Subtype pdfgen.Name

	// OutputConditionIdentifier identifies the intended output device or
	// production condition.
	OutputConditionIdentifier string

	// Info optionally gives a human-readable description of the output
	// condition.
	Info string

	// Profile is the ICC profile of the output condition.
	Profile []byte
}

// SRGB is the output intent for the sRGB color space.
var SRGB = &Intent{
	OutputConditionIdentifier: "sRGB IEC61966-2.1",
	Info:                      "sRGB IEC61966-2.1",
	Profile:                   icc.SRGBv2Profile,
}

// AddSRGB adds an sRGB output intent to the document.
func AddSRGB(doc *document.Document) (*pdfgen.Reference, error) {
	return Add(doc, SRGB)
}

// Add embeds the ICC profile of intent and appends the output intent to
// the /OutputIntents array of the document catalog.  The reference of the
// embedded profile is returned.  Output intents require PDF 1.4.
func Add(doc *document.Document, intent *Intent) (*pdfgen.Reference, error) {
	if intent.OutputConditionIdentifier == "" {
		return nil, errors.New("missing output condition identifier")
	}
	if len(intent.Profile) == 0 {
		return nil, errors.New("missing ICC profile")
	}

	p, err := icc.Decode(intent.Profile)
	if err != nil {
		return nil, err
	}
	n := p.ColorSpace.NumComponents()

	var ranges pdfgen.Array
	switch p.ColorSpace {
	case icc.GraySpace, icc.RGBSpace, icc.CMYKSpace:
		// the default range [0 1] is used
	case icc.CIELabSpace:
		ranges = pdfgen.Array{
			pdfgen.Integer(0), pdfgen.Integer(100),
			pdfgen.Integer(-128), pdfgen.Integer(127),
			pdfgen.Integer(-128), pdfgen.Integer(127),
		}
	default:
		return nil, fmt.Errorf("unsupported color space %v", p.ColorSpace)
	}

	cat, _ := doc.Catalog().Dict()
	var intents pdfgen.Array
	if obj, ok := cat.Get("OutputIntents"); ok {
		intents, ok = obj.(pdfgen.Array)
		if !ok {
			return nil, fmt.Errorf("invalid /OutputIntents %s", pdfgen.Format(obj))
		}
	}

	err = doc.RaiseVersion(pdfgen.V1_4)
	if err != nil {
		return nil, err
	}

	dict := pdfgen.NewDict(pdfgen.KV("N", pdfgen.Integer(n)))
	if ranges != nil {
		dict.Set("Range", ranges)
	}
	ref, err := doc.Alloc(dict, nil)
	if err != nil {
		return nil, err
	}
	err = ref.SetStream(slices.Clone(intent.Profile))
	if err != nil {
		return nil, err
	}
	err = doc.CompressStream(ref)
	if err != nil {
		return nil, err
	}

	subtype := intent.Subtype
	if subtype == "" {
		subtype = "GTS_PDFA1"
	}
	oi := pdfgen.NewDict(
		pdfgen.KV("Type", pdfgen.Name("OutputIntent")),
		pdfgen.KV("S", subtype),
		pdfgen.KV("OutputConditionIdentifier", pdfgen.TextString(intent.OutputConditionIdentifier)),
	)
	if intent.Info != "" {
		oi.Set("Info", pdfgen.TextString(intent.Info))
	}
	oi.Set("DestOutputProfile", ref)

	cat.Set("OutputIntents", append(intents, oi))
	return ref, nil
}
