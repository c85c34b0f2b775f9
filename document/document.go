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


// Package document creates PDF documents consisting of pages.
//
// A [Document] keeps all objects of the PDF file in memory, in a
// [pdfgen.Store].  Pages are added with [Document.StartNewPage] and their
// contents are accumulated in the page's [Content].  The file is produced
// by [Document.Render], which closes all pages, runs the deferred resolvers
// of the store and serializes the store in a single pass.
package document

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/filter"
)

// Options can be used to control the creation of a new document.
// A nil *Options is the same as the zero value.
type Options struct {
	// PageSize is the default size of all pages.  If this is nil,
	// [Letter] is used.
	PageSize *rect.Rect

	// Landscape, if set, rotates the default page size by 90 degrees.
	Landscape bool

	// Compress, if set, causes all page content streams to be compressed
	// using Filter.
	Compress bool

	// Filter is the filter used to compress streams.  If this is nil,
	// [filter.Flate] with the default compression level is used.
	Filter pdfgen.Filter

	// Version is the initial PDF version of the document.  The version is
	// raised automatically when features are used which require a later
	// version.  The default is PDF 1.3.
	Version pdfgen.Version

	// Info is the initial content of the document information dictionary.
	// If this is nil, only the Creator and Producer fields are set.
	Info *pdfgen.Info

	// Lang is the natural language of the document.  If set, it is
	// recorded in the document catalog.
	Lang language.Tag
}

// libraryName is used as the default Creator and Producer.
const libraryName = "seehuhn.de/go/pdfgen"

// Document represents a PDF document under construction.
//
// A Document must not be used concurrently.
type Document struct {
	store *pdfgen.Store

	version  pdfgen.Version
	compress bool
	filter   pdfgen.Filter
	lang     language.Tag

	info    *pdfgen.Info
	infoRef *pdfgen.Reference
	pages   *pdfgen.Reference
	catalog *pdfgen.Reference

	// prologue is the shared content stream which starts every page.
	prologue *pdfgen.Reference

	pageList    []*Page
	current     *Page
	defaultSize rect.Rect

	header, footer Drawer
}

// New creates a new document with a single, empty page.
//
// The document information dictionary, the page tree root and the
// document catalog are allocated first, in this order, followed by the
// objects for the first page.
func New(opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}

	size := Letter
	if opt.PageSize != nil {
		size = opt.PageSize
	}
	defaultSize := *size
	if opt.Landscape {
		defaultSize = landscape(defaultSize)
	}
	if defaultSize.Dx() <= 0 || defaultSize.Dy() <= 0 {
		return nil, errInvalidPageSize
	}

	version := opt.Version
	if version == 0 {
		version = pdfgen.V1_3
	}
	if _, err := version.ToString(); err != nil {
		return nil, err
	}

	f := opt.Filter
	if f == nil {
		f = filter.Flate{}
	}

	var info *pdfgen.Info
	if opt.Info != nil {
		info = opt.Info.Clone()
	} else {
		info = &pdfgen.Info{}
	}
	if info.Creator == "" {
		info.Creator = libraryName
	}
	if info.Producer == "" {
		info.Producer = libraryName
	}

	d := &Document{
		store:       pdfgen.NewStore(),
		version:     version,
		compress:    opt.Compress,
		filter:      f,
		lang:        opt.Lang,
		info:        info,
		defaultSize: defaultSize,
	}

	var err error
	d.infoRef, err = d.store.Alloc(info.AsDict(), d.resolveInfo)
	if err != nil {
		return nil, err
	}
	d.pages, err = d.store.Alloc(pdfgen.NewDict(
		pdfgen.KV("Type", pdfgen.Name("Pages")),
		pdfgen.KV("Kids", pdfgen.Array{}),
		pdfgen.KV("Count", pdfgen.Integer(0)),
	), nil)
	if err != nil {
		return nil, err
	}
	d.catalog, err = d.store.Alloc(pdfgen.NewDict(
		pdfgen.KV("Type", pdfgen.Name("Catalog")),
		pdfgen.KV("Pages", d.pages),
	), nil)
	if err != nil {
		return nil, err
	}
	err = d.store.SetRoot(d.catalog)
	if err != nil {
		return nil, err
	}
	err = d.store.SetInfo(d.infoRef)
	if err != nil {
		return nil, err
	}

	if d.lang != language.Und {
		d.catalogDict().Set("Lang", pdfgen.TextString(d.lang.String()))
		d.version.Raise(pdfgen.V1_4)
	}

	_, err = d.StartNewPage(nil)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// resolveInfo brings the information dictionary up to date with any
// changes made through [Document.Info].
func (d *Document) resolveInfo() error {
	return d.infoRef.SetData(d.info.AsDict())
}

// Store returns the object store of the document.
func (d *Document) Store() *pdfgen.Store {
	return d.store
}

// Alloc adds a new object to the document and returns its reference.
// See [pdfgen.Store.Alloc] for the meaning of resolve.
func (d *Document) Alloc(data pdfgen.Object, resolve func() error) (*pdfgen.Reference, error) {
	return d.store.Alloc(data, resolve)
}

// Ref adds a new object to the document and returns its object number.
func (d *Document) Ref(data pdfgen.Object) (int, error) {
	return d.store.AllocID(data, nil)
}

// Lookup returns the object with the given object number.
func (d *Document) Lookup(id int) (*pdfgen.Reference, error) {
	return d.store.Lookup(id)
}

// Info returns the document information.  Changes made to the returned
// value before the document is rendered are included in the output.
func (d *Document) Info() *pdfgen.Info {
	return d.info
}

// Catalog returns the reference of the document catalog.
func (d *Document) Catalog() *pdfgen.Reference {
	return d.catalog
}

func (d *Document) catalogDict() *pdfgen.Dict {
	dict, _ := d.catalog.Dict()
	return dict
}

// Lang returns the natural language of the document.
func (d *Document) Lang() language.Tag {
	return d.lang
}

// Version returns the PDF version the document will be written with.
func (d *Document) Version() pdfgen.Version {
	return d.version
}

// RaiseVersion makes sure the document is written with at least version v.
// Requests for versions lower than the current version are ignored.
func (d *Document) RaiseVersion(v pdfgen.Version) error {
	if err := d.checkMutable(); err != nil {
		return err
	}
	d.version.Raise(v)
	return nil
}

// Compression reports whether content streams are compressed.
func (d *Document) Compression() bool {
	return d.compress
}

// Filter returns the filter used for compressing streams.
func (d *Document) Filter() pdfgen.Filter {
	return d.filter
}

// CompressStream compresses the stream of ref using the document filter,
// if compression is enabled.
func (d *Document) CompressStream(ref *pdfgen.Reference) error {
	if !d.compress {
		return nil
	}
	err := ref.Compress(d.filter)
	if err != nil {
		return err
	}
	return d.RaiseVersion(d.filter.MinVersion())
}

// Names returns the name dictionary of the document.  The dictionary is
// created on first use, so that documents which don't need one don't
// contain an empty name dictionary.
func (d *Document) Names() (*pdfgen.Reference, error) {
	cat := d.catalogDict()
	if obj, ok := cat.Get("Names"); ok {
		ref, ok := obj.(*pdfgen.Reference)
		if !ok {
			return nil, fmt.Errorf("invalid /Names entry %s in catalog", pdfgen.Format(obj))
		}
		return ref, nil
	}

	ref, err := d.store.Alloc(pdfgen.NewDict(pdfgen.KV("Type", pdfgen.Name("Names"))), nil)
	if err != nil {
		return nil, err
	}
	cat.Set("Names", ref)
	return ref, nil
}

// Render closes all pages, runs the deferred resolvers and returns the
// complete PDF file.
//
// After Render has been called, the document can no longer be modified.
// Later calls to Render return the same bytes.  If rendering fails, no
// output is produced and all later calls return the same error.
func (d *Document) Render() ([]byte, error) {
	if d.store.State() == pdfgen.Rendered || d.store.Err() != nil {
		return d.store.Render(d.version)
	}

	if d.store.State() == pdfgen.Building {
		err := d.store.BeginFinalize()
		if err != nil {
			return nil, err
		}
	}

	for _, p := range d.pageList {
		err := d.finalizePage(p)
		if err != nil {
			d.store.Fail(err)
			return nil, err
		}
	}

	// Resolvers can raise the document version, so they need to run
	// before the version is written.
	err := d.store.Resolve()
	if err != nil {
		return nil, err
	}

	return d.store.Render(d.version)
}

// WriteTo renders the document and writes it to w.
// This implements the [io.WriterTo] interface.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	out, err := d.Render()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(out)
	return int64(n), err
}

// RenderFile renders the document and writes it to the named file.
func (d *Document) RenderFile(name string) error {
	out, err := d.Render()
	if err != nil {
		return err
	}
	return os.WriteFile(name, out, 0o666)
}

// XRefOffset returns the byte offset of the cross-reference table.
// The second return value is false, if the document has not been
// rendered.
func (d *Document) XRefOffset() (int64, bool) {
	return d.store.XRefOffset()
}

func (d *Document) checkMutable() error {
	if err := d.store.Err(); err != nil {
		return err
	}
	if d.store.State() == pdfgen.Rendered {
		return pdfgen.ErrRendered
	}
	return nil
}
