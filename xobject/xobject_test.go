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


package xobject

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
)

func newDoc(t *testing.T) *document.Document {
	t.Helper()
	doc, err := document.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestEmbedRGB(t *testing.T) {
	doc := newDoc(t)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{G: 255, A: 255})
	src.Set(0, 1, color.NRGBA{B: 255, A: 255})
	src.Set(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	img, err := Embed(doc, src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if img.Name() != "Im1" || img.Width != 2 || img.Height != 2 {
		t.Errorf("wrong image %s %dx%d", img.Name(), img.Width, img.Height)
	}

	want := []byte{255, 0, 0, 0, 255, 0, 0, 0, 255, 1, 2, 3}
	if d := cmp.Diff(want, img.Ref.Stream()); d != "" {
		t.Errorf("wrong samples (-want +got):\n%s", d)
	}
	dict, _ := img.Ref.Dict()
	if dict.Has("SMask") {
		t.Error("opaque image has a soft mask")
	}
	if cs, _ := dict.Get("ColorSpace"); cs != pdfgen.Name("DeviceRGB") {
		t.Errorf("wrong color space %s", pdfgen.Format(cs))
	}

	xobjects, err := doc.PageXObjects()
	if err != nil {
		t.Fatal(err)
	}
	if obj, _ := xobjects.Get("Im1"); obj != img.Ref {
		t.Error("image not registered in page resources")
	}
	if d := cmp.Diff([]pdfgen.Name{"PDF", "ImageC"}, doc.CurrentPage().ProcSet()); d != "" {
		t.Errorf("wrong procedure set (-want +got):\n%s", d)
	}
}

func TestEmbedGray(t *testing.T) {
	doc := newDoc(t)

	// a sub-image has a stride larger than its width
	full := image.NewGray(image.Rect(0, 0, 4, 2))
	for i := range full.Pix {
		full.Pix[i] = byte(10 * i)
	}
	src := full.SubImage(image.Rect(1, 0, 3, 2))

	img, err := Embed(doc, src, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{10, 20, 50, 60}
	if d := cmp.Diff(want, img.Ref.Stream()); d != "" {
		t.Errorf("wrong samples (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]pdfgen.Name{"PDF", "ImageB"}, doc.CurrentPage().ProcSet()); d != "" {
		t.Errorf("wrong procedure set (-want +got):\n%s", d)
	}
}

func TestSoftMask(t *testing.T) {
	doc := newDoc(t)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{R: 255, A: 0})

	img, err := Embed(doc, src, nil)
	if err != nil {
		t.Fatal(err)
	}
	dict, _ := img.Ref.Dict()
	obj, ok := dict.Get("SMask")
	if !ok {
		t.Fatal("missing soft mask")
	}
	mask := obj.(*pdfgen.Reference)
	if d := cmp.Diff([]byte{255, 0}, mask.Stream()); d != "" {
		t.Errorf("wrong mask (-want +got):\n%s", d)
	}
	if doc.Version() < pdfgen.V1_4 {
		t.Errorf("version %s too low for soft masks", doc.Version())
	}
}

func TestMaxSize(t *testing.T) {
	doc := newDoc(t)
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	img, err := Embed(doc, src, &Options{MaxSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 10 || img.Height != 5 {
		t.Errorf("wrong size %dx%d", img.Width, img.Height)
	}
	if len(img.Ref.Stream()) != 3*10*5 {
		t.Errorf("wrong sample count %d", len(img.Ref.Stream()))
	}
}

func TestJPEG(t *testing.T) {
	doc := newDoc(t)
	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	img, err := Embed(doc, src, &Options{JPEG: &jpeg.Options{Quality: 90}})
	if err != nil {
		t.Fatal(err)
	}
	dict, _ := img.Ref.Dict()
	if f, _ := dict.Get("Filter"); f != pdfgen.Name("DCTDecode") {
		t.Errorf("wrong filter %s", pdfgen.Format(f))
	}
	decoded, err := jpeg.Decode(bytes.NewReader(img.Ref.Stream()))
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("wrong JPEG size %v", b)
	}
}

func TestCompressedImage(t *testing.T) {
	doc, err := document.New(&document.Options{Compress: true})
	if err != nil {
		t.Fatal(err)
	}
	src := image.NewGray(image.Rect(0, 0, 64, 64))
	img, err := Embed(doc, src, nil)
	if err != nil {
		t.Fatal(err)
	}
	dict, _ := img.Ref.Dict()
	if f, _ := dict.Get("Filter"); f != pdfgen.Name("FlateDecode") {
		t.Errorf("wrong filter %s", pdfgen.Format(f))
	}
	if len(img.Ref.Stream()) >= 64*64 {
		t.Error("image data not compressed")
	}
}

func TestDraw(t *testing.T) {
	doc := newDoc(t)
	img, err := Embed(doc, image.NewGray(image.Rect(0, 0, 1, 1)), nil)
	if err != nil {
		t.Fatal(err)
	}
	err = img.Draw(doc, rect.Rect{LLx: 5, LLy: 6, URx: 25, URy: 16})
	if err != nil {
		t.Fatal(err)
	}
	want := "q\n20 0 0 10 5 6 cm\n/Im1 Do\nQ\n"
	if got := string(doc.PageContent().Bytes()); got != want {
		t.Errorf("wrong content %q", got)
	}

	// the image keeps its name on other pages
	if _, err := doc.StartNewPage(nil); err != nil {
		t.Fatal(err)
	}
	err = img.Draw(doc, rect.Rect{URx: 1, URy: 1})
	if err != nil {
		t.Fatal(err)
	}
	xobjects, _ := doc.PageXObjects()
	if obj, _ := xobjects.Get("Im1"); obj != img.Ref {
		t.Error("image not registered on second page")
	}

	other, err := Embed(doc, image.NewGray(image.Rect(0, 0, 1, 1)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if other.Name() != "Im2" {
		t.Errorf("second image named %s", other.Name())
	}

	if _, err := doc.Render(); err != nil {
		t.Fatal(err)
	}
}

func TestEmptyImage(t *testing.T) {
	doc := newDoc(t)
	_, err := Embed(doc, image.NewGray(image.Rect(0, 0, 0, 5)), nil)
	if err == nil {
		t.Error("empty image accepted")
	}
}
