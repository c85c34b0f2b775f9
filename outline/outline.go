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


// Package outline writes document outlines ("bookmarks").
//
// The outline is kept in memory while the document is built and is
// written when the document is finalized, so that items can be added
// until the document is rendered.
package outline

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
)

// PDF 2.0 sections: 12.3.3

// Outline represents the root of a document outline.
// Populate the outline using [Outline.AddItem].
type Outline struct {
	// Items contains the top-level outline items.
	Items []*Item
}

// Item represents an outline item, with a title and a destination.
// Items form a tree structure via the Children field.
type Item struct {
	// Title is the text displayed for this outline item.
	Title string

	// Color (PDF 1.4) specifies the RGB color for the outline entry's text.
	// Components must be in the range 0.0 to 1.0.
	Color [3]float64

	// Bold (PDF 1.4) displays the item in bold.
	Bold bool

	// Italic (PDF 1.4) displays the item in italic.
	Italic bool

	// Page (optional) is the page shown when the item is activated.
	Page *document.Page

	// Top, if positive, is the vertical position on Page which is moved
	// to the top of the window.  Otherwise the whole page is shown.
	Top float64

	// Children contains the child outline items (e.g. subsections of a section).
	Children []*Item

	// Open indicates whether the item is initially expanded (children visible)
	// or collapsed when the document is opened.
	Open bool
}

// AddItem appends a new top-level item with the given title and returns it.
func (o *Outline) AddItem(title string, page *document.Page) *Item {
	item := &Item{
		Title: title,
		Page:  page,
	}
	o.Items = append(o.Items, item)
	return item
}

// AddChild appends a new child item with the given title and returns it.
func (item *Item) AddChild(title string, page *document.Page) *Item {
	child := &Item{
		Title: title,
		Page:  page,
	}
	item.Children = append(item.Children, child)
	return child
}

// Attach installs the outline in the document catalog.  The outline
// dictionaries are allocated when the document is finalized.
func (o *Outline) Attach(doc *document.Document) (*pdfgen.Reference, error) {
	catalog, ok := doc.Catalog().Dict()
	if !ok {
		return nil, errors.New("invalid document catalog")
	}
	if catalog.Has("Outlines") {
		return nil, errors.New("document already has an outline")
	}

	var root *pdfgen.Reference
	root, err := doc.Alloc(pdfgen.NewDict(pdfgen.KV("Type", pdfgen.Name("Outlines"))), func() error {
		ww := &writer{
			doc:   doc,
			count: map[*Item]int{},
		}
		return ww.writeRoot(root, o.Items)
	})
	if err != nil {
		return nil, err
	}
	catalog.Set("Outlines", root)
	return root, nil
}

type writer struct {
	doc     *document.Document
	count   map[*Item]int
	hasOpen bool
}

func (ww *writer) writeRoot(root *pdfgen.Reference, items []*Item) error {
	if len(items) == 0 {
		return nil
	}

	var rootCount int
	for _, item := range items {
		rootCount += ww.getCount(item)
	}

	rootDict, _ := root.Dict()
	first, last, err := ww.writeChildren(root, items)
	if err != nil {
		return err
	}
	rootDict.Set("First", first)
	rootDict.Set("Last", last)
	if ww.hasOpen {
		rootDict.Set("Count", pdfgen.Integer(rootCount))
	}
	return nil
}

// getCount computes the Count value for an item.
// Returns positive count if item is open, negative if closed.
func (ww *writer) getCount(item *Item) int {
	if len(item.Children) == 0 {
		return 1
	}

	// count this item plus all visible descendants
	total := 1
	for _, child := range item.Children {
		total += ww.getCount(child)
	}

	descendantCount := total - 1
	if item.Open {
		ww.hasOpen = true
		ww.count[item] = descendantCount
		return total
	}
	ww.count[item] = -descendantCount
	return 1
}

// writeChildren allocates one dictionary for each item, in order, and
// returns the references of the first and last item.
func (ww *writer) writeChildren(parent *pdfgen.Reference, items []*Item) (*pdfgen.Reference, *pdfgen.Reference, error) {
	refs := make([]*pdfgen.Reference, len(items))
	for i := range items {
		ref, err := ww.doc.Alloc(nil, nil)
		if err != nil {
			return nil, nil, err
		}
		refs[i] = ref
	}

	for i, item := range items {
		dict := pdfgen.NewDict(pdfgen.KV("Title", pdfgen.TextString(item.Title)))
		dict.Set("Parent", parent)
		if i > 0 {
			dict.Set("Prev", refs[i-1])
		}
		if i < len(items)-1 {
			dict.Set("Next", refs[i+1])
		}
		err := ww.writeItem(refs[i], dict, item)
		if err != nil {
			return nil, nil, err
		}
	}
	return refs[0], refs[len(refs)-1], nil
}

func (ww *writer) writeItem(ref *pdfgen.Reference, dict *pdfgen.Dict, item *Item) error {
	if item.Color != [3]float64{} {
		for i, c := range item.Color {
			if c < 0 || c > 1 {
				return fmt.Errorf("outline item color component %d out of range: %g", i, c)
			}
		}
		dict.Set("C", pdfgen.Array{
			pdfgen.Number(item.Color[0]),
			pdfgen.Number(item.Color[1]),
			pdfgen.Number(item.Color[2]),
		})
		err := ww.doc.RaiseVersion(pdfgen.V1_4)
		if err != nil {
			return err
		}
	}

	var flags int
	if item.Italic {
		flags |= 1
	}
	if item.Bold {
		flags |= 2
	}
	if flags != 0 {
		dict.Set("F", pdfgen.Integer(flags))
		err := ww.doc.RaiseVersion(pdfgen.V1_4)
		if err != nil {
			return err
		}
	}

	if item.Page != nil {
		dict.Set("Dest", Destination(item.Page, item.Top))
	}

	if len(item.Children) > 0 {
		first, last, err := ww.writeChildren(ref, item.Children)
		if err != nil {
			return err
		}
		dict.Set("First", first)
		dict.Set("Last", last)
		dict.Set("Count", pdfgen.Integer(ww.count[item]))
	}

	return ref.SetData(dict)
}

// Destination returns an explicit destination for the given page.  If top
// is positive, the page is shown with the given vertical coordinate at the
// top of the window.  Otherwise, the whole page is fit into the window.
func Destination(page *document.Page, top float64) pdfgen.Array {
	if top > 0 {
		return pdfgen.Array{page.Ref(), pdfgen.Name("XYZ"), nil, pdfgen.Number(top), nil}
	}
	return pdfgen.Array{page.Ref(), pdfgen.Name("Fit")}
}
