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


package document

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
)

// PageOptions can be used to override the document defaults for a single
// page.  A nil *PageOptions is the same as the zero value.
type PageOptions struct {
	// Size is the page size.  If this is nil, the document default is used.
	Size *rect.Rect

	// Landscape, if set, rotates Size by 90 degrees.  This has no effect
	// if Size is nil.
	Landscape bool
}

// Page represents a page of a document.
type Page struct {
	doc *Document
	ref *pdfgen.Reference

	content *Content
	procSet *pdfgen.Reference

	finalized bool
}

// StartNewPage appends a new, empty page to the document and makes it the
// current page.
func (d *Document) StartNewPage(opt *PageOptions) (*Page, error) {
	if err := d.checkMutable(); err != nil {
		return nil, err
	}
	if d.store.State() != pdfgen.Building {
		return nil, errors.New("cannot add pages while the document is finalized")
	}

	size := d.defaultSize
	if opt != nil && opt.Size != nil {
		size = *opt.Size
		if opt.Landscape {
			size = landscape(size)
		}
	}
	if size.Dx() <= 0 || size.Dy() <= 0 {
		return nil, errInvalidPageSize
	}

	if d.prologue == nil {
		prologue, err := d.store.Alloc(pdfgen.NewDict(pdfgen.KV("Length", pdfgen.Integer(0))), nil)
		if err != nil {
			return nil, err
		}
		err = prologue.SetStream([]byte("q\n"))
		if err != nil {
			return nil, err
		}
		d.prologue = prologue
	}

	contentRef, err := d.store.Alloc(pdfgen.NewDict(pdfgen.KV("Length", pdfgen.Integer(0))), nil)
	if err != nil {
		return nil, err
	}
	err = contentRef.SetStream(nil)
	if err != nil {
		return nil, err
	}

	pageRef, err := d.store.Alloc(pdfgen.NewDict(
		pdfgen.KV("Type", pdfgen.Name("Page")),
		pdfgen.KV("Parent", d.pages),
		pdfgen.KV("MediaBox", rectArray(size)),
		pdfgen.KV("Contents", pdfgen.Array{d.prologue, contentRef}),
	), nil)
	if err != nil {
		return nil, err
	}

	pagesDict, _ := d.pages.Dict()
	kids, _ := pagesDict.Get("Kids")
	kidsArray, _ := kids.(pdfgen.Array)
	pagesDict.Set("Kids", append(kidsArray, pageRef))
	pagesDict.Set("Count", pdfgen.Integer(len(d.pageList)+1))

	p := &Page{
		doc:     d,
		ref:     pageRef,
		content: &Content{doc: d, ref: contentRef},
	}
	d.pageList = append(d.pageList, p)
	d.current = p
	return p, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return len(d.pageList)
}

// CurrentPage returns the page which is currently being drawn on.
func (d *Document) CurrentPage() *Page {
	return d.current
}

// GoToPage makes the i-th page (counting from 0) the current page.
func (d *Document) GoToPage(i int) error {
	if i < 0 || i >= len(d.pageList) {
		return fmt.Errorf("page %d out of range [0, %d)", i, len(d.pageList))
	}
	d.current = d.pageList[i]
	return nil
}

// Page returns the i-th page of the document, counting from 0.
func (d *Document) Page(i int) (*Page, error) {
	if i < 0 || i >= len(d.pageList) {
		return nil, fmt.Errorf("page %d out of range [0, %d)", i, len(d.pageList))
	}
	return d.pageList[i], nil
}

// AddContent appends s, followed by a newline, to the content stream of
// the current page.
func (d *Document) AddContent(s string) error {
	return d.current.content.Append(s)
}

// PageContent returns the content stream of the current page.
func (d *Document) PageContent() *Content {
	return d.current.content
}

// PageResources returns the resource dictionary of the current page.
func (d *Document) PageResources() (*pdfgen.Dict, error) {
	return d.current.Resources()
}

// PageFonts returns the font resource dictionary of the current page.
func (d *Document) PageFonts() (*pdfgen.Dict, error) {
	return d.current.Fonts()
}

// PageXObjects returns the XObject resource dictionary of the current page.
func (d *Document) PageXObjects() (*pdfgen.Dict, error) {
	return d.current.XObjects()
}

// ProcSet adds the given names to the procedure set of the current page.
func (d *Document) ProcSet(names ...pdfgen.Name) error {
	return d.current.DeclareProcSet(names...)
}

// Ref returns the reference of the page dictionary.
func (p *Page) Ref() *pdfgen.Reference {
	return p.ref
}

// Content returns the content stream of the page.
func (p *Page) Content() *Content {
	return p.content
}

func (p *Page) dict() *pdfgen.Dict {
	dict, _ := p.ref.Dict()
	return dict
}

// MediaBox returns the page size.
func (p *Page) MediaBox() rect.Rect {
	obj, _ := p.dict().Get("MediaBox")
	a, _ := obj.(pdfgen.Array)
	var x [4]float64
	for i := 0; i < len(a) && i < 4; i++ {
		switch v := a[i].(type) {
		case pdfgen.Integer:
			x[i] = float64(v)
		case pdfgen.Real:
			x[i] = float64(v)
		}
	}
	return rect.Rect{LLx: x[0], LLy: x[1], URx: x[2], URy: x[3]}
}

// SetMediaBox changes the page size.
func (p *Page) SetMediaBox(r rect.Rect) error {
	if err := p.doc.checkMutable(); err != nil {
		return err
	}
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return errInvalidPageSize
	}
	p.dict().Set("MediaBox", rectArray(r))
	return nil
}

// Resources returns the resource dictionary of the page.
// The dictionary is created on first use.
func (p *Page) Resources() (*pdfgen.Dict, error) {
	if err := p.doc.checkMutable(); err != nil {
		return nil, err
	}
	obj := p.dict().GetOrInsert("Resources", newDict)
	res, ok := obj.(*pdfgen.Dict)
	if !ok {
		return nil, fmt.Errorf("page %d: invalid /Resources %s", p.ref.ID(), pdfgen.Format(obj))
	}
	return res, nil
}

// ResourceDict returns the resource sub-dictionary of the given category,
// for example "Font" or "XObject".  Both the resource dictionary and the
// sub-dictionary are created on first use.
func (p *Page) ResourceDict(category pdfgen.Name) (*pdfgen.Dict, error) {
	res, err := p.Resources()
	if err != nil {
		return nil, err
	}
	obj := res.GetOrInsert(category, newDict)
	sub, ok := obj.(*pdfgen.Dict)
	if !ok {
		return nil, fmt.Errorf("page %d: invalid /%s %s", p.ref.ID(), category, pdfgen.Format(obj))
	}
	return sub, nil
}

// Fonts returns the font resource dictionary of the page.
func (p *Page) Fonts() (*pdfgen.Dict, error) {
	return p.ResourceDict("Font")
}

// XObjects returns the XObject resource dictionary of the page.
func (p *Page) XObjects() (*pdfgen.Dict, error) {
	return p.ResourceDict("XObject")
}

// DeclareProcSet adds the given names to the procedure set of the page.
// Names which are already present are not added a second time.
//
// The procedure set is stored as an indirect object in the resource
// dictionary of the page.
func (p *Page) DeclareProcSet(names ...pdfgen.Name) error {
	res, err := p.Resources()
	if err != nil {
		return err
	}
	if p.procSet == nil {
		ref, err := p.doc.store.Alloc(pdfgen.Array{}, nil)
		if err != nil {
			return err
		}
		res.Set("ProcSet", ref)
		p.procSet = ref
	}

	procSet, _ := p.procSet.Data().(pdfgen.Array)
	for _, name := range names {
		if slices.Contains(procSet, pdfgen.Object(name)) {
			continue
		}
		procSet = append(procSet, name)
	}
	return p.procSet.SetData(procSet)
}

// ProcSet returns the names in the procedure set of the page.
func (p *Page) ProcSet() []pdfgen.Name {
	if p.procSet == nil {
		return nil
	}
	procSet, _ := p.procSet.Data().(pdfgen.Array)
	res := make([]pdfgen.Name, 0, len(procSet))
	for _, obj := range procSet {
		if name, ok := obj.(pdfgen.Name); ok {
			res = append(res, name)
		}
	}
	return res
}

// finalizePage draws the header and footer, closes the graphics state
// opened by the prologue and compresses the content stream.  Afterwards,
// the content of the page can no longer be changed.
func (d *Document) finalizePage(p *Page) error {
	if p.finalized {
		return nil
	}

	prev := d.current
	d.current = p
	defer func() { d.current = prev }()

	if d.header != nil {
		err := d.header.Draw(d)
		if err != nil {
			return fmt.Errorf("page %d: header: %w", p.ref.ID(), err)
		}
	}
	if d.footer != nil {
		err := d.footer.Draw(d)
		if err != nil {
			return fmt.Errorf("page %d: footer: %w", p.ref.ID(), err)
		}
	}

	c := p.content
	err := c.Append("Q")
	if err != nil {
		return err
	}
	c.closed = true

	err = d.CompressStream(c.ref)
	if err != nil {
		return err
	}
	dict, _ := c.ref.Dict()
	dict.Set("Length", pdfgen.Integer(len(c.ref.Stream())))

	p.finalized = true
	return nil
}

func newDict() pdfgen.Object {
	return &pdfgen.Dict{}
}

func rectArray(r rect.Rect) pdfgen.Array {
	return pdfgen.Array{
		pdfgen.Number(r.LLx),
		pdfgen.Number(r.LLy),
		pdfgen.Number(r.URx),
		pdfgen.Number(r.URy),
	}
}

var errInvalidPageSize = errors.New("invalid page size")
