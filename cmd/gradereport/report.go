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


package main

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
	"seehuhn.de/go/pdfgen/filter"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/metadata"
	"seehuhn.de/go/pdfgen/nametree"
	"seehuhn.de/go/pdfgen/numtree"
	"seehuhn.de/go/pdfgen/outline"
	"seehuhn.de/go/pdfgen/outputintent"
	"seehuhn.de/go/pdfgen/xobject"
)

type row struct {
	Name  string
	Grade string
}

type reportOptions struct {
	Title string
	Rows  []row

	Compress bool
	ASCII    bool
	XMP      bool
	SRGB     bool
	Lang     language.Tag
	Logo     image.Image

	// Now is used for the creation date.  If this is zero, the current
	// time is used.
	Now time.Time
}

// parseRows converts "name=grade" arguments into table rows.
func parseRows(args []string) ([]row, error) {
	if len(args) == 0 {
		return nil, errors.New("no grades given")
	}
	rows := make([]row, 0, len(args))
	for _, arg := range args {
		name, grade, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid argument %q, expected name=grade", arg)
		}
		rows = append(rows, row{Name: name, Grade: strings.TrimSpace(grade)})
	}
	return rows, nil
}

// page layout, in PDF units
const (
	margin     = 72.0
	titleSize  = 18.0
	textSize   = 11.0
	lineHeight = 18.0
	gradeX     = 400.0
	logoSize   = 72.0
	footerY    = 36.0
)

// buildReport lays out the grade table on as many pages as needed.
func buildReport(opt *reportOptions) (*document.Document, error) {
	now := opt.Now
	if now.IsZero() {
		now = time.Now()
	}

	docOpt := &document.Options{
		PageSize: document.Letter,
		Compress: opt.Compress || opt.ASCII,
		Info: &pdfgen.Info{
			Title:        opt.Title,
			Subject:      "grades",
			CreationDate: now,
		},
		Lang: opt.Lang,
	}
	if opt.ASCII {
		docOpt.Filter = filter.ASCII85{}
	}
	doc, err := document.New(docOpt)
	if err != nil {
		return nil, err
	}

	fonts := font.NewRegistry(doc)

	pageNo := 0
	err = doc.SetFooter(document.DrawerFunc(func(d *document.Document) error {
		pageNo++
		label := fmt.Sprintf("Page %d of %d", pageNo, d.PageCount())
		return fonts.ShowText(font.Helvetica, 9, margin, footerY, label)
	}))
	if err != nil {
		return nil, err
	}

	var logo *xobject.Image
	if opt.Logo != nil {
		logo, err = xobject.Embed(doc, opt.Logo, &xobject.Options{MaxSize: 256})
		if err != nil {
			return nil, err
		}
	}

	dests := &nametree.InMemory{}
	bookmarks := &outline.Outline{}
	box := document.Letter
	newPage := func() (float64, error) {
		y := box.URy - margin
		err := fonts.ShowText(font.HelveticaBold, titleSize, margin, y, opt.Title)
		if err != nil {
			return 0, err
		}
		if logo != nil {
			w := logoSize * float64(logo.Width) / float64(max(logo.Width, logo.Height))
			h := logoSize * float64(logo.Height) / float64(max(logo.Width, logo.Height))
			err = logo.Draw(doc, rect.Rect{
				LLx: box.URx - margin - w,
				LLy: y - h + titleSize,
				URx: box.URx - margin,
				URy: y + titleSize,
			})
			if err != nil {
				return 0, err
			}
		}

		y -= 8
		err = doc.AddContent("1 0 0 RG")
		if err != nil {
			return 0, err
		}
		err = doc.PageContent().AppendOp("m", pdfgen.Number(margin), pdfgen.Number(y))
		if err != nil {
			return 0, err
		}
		err = doc.PageContent().AppendOp("l", pdfgen.Number(box.URx-margin), pdfgen.Number(y))
		if err != nil {
			return 0, err
		}
		err = doc.AddContent("S")
		if err != nil {
			return 0, err
		}

		page := doc.CurrentPage()
		dests.Add(pdfgen.Name(fmt.Sprintf("page%d", doc.PageCount())),
			outline.Destination(page, 0))
		bookmarks.AddItem(fmt.Sprintf("Page %d", doc.PageCount()), page)
		return y - 2*lineHeight, nil
	}

	y, err := newPage()
	if err != nil {
		return nil, err
	}
	for _, r := range opt.Rows {
		if y < margin {
			_, err = doc.StartNewPage(nil)
			if err != nil {
				return nil, err
			}
			y, err = newPage()
			if err != nil {
				return nil, err
			}
		}
		err = fonts.ShowText(font.Helvetica, textSize, margin, y, r.Name)
		if err != nil {
			return nil, err
		}
		err = fonts.ShowText(font.Helvetica, textSize, gradeX, y, r.Grade)
		if err != nil {
			return nil, err
		}
		y -= lineHeight
	}

	_, err = dests.Attach(doc, "Dests")
	if err != nil {
		return nil, err
	}
	_, err = bookmarks.Attach(doc)
	if err != nil {
		return nil, err
	}
	_, err = numtree.SetPageLabels(doc, map[int]*numtree.PageLabel{
		0: {Style: numtree.Decimal, Prefix: "R-"},
	})
	if err != nil {
		return nil, err
	}
	if opt.XMP {
		_, err = metadata.Attach(doc, nil)
		if err != nil {
			return nil, err
		}
	}
	if opt.SRGB {
		_, err = outputintent.AddSRGB(doc)
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}
