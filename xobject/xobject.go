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


// Package xobject embeds raster images as image XObjects.
package xobject

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
)

// Options control how images are embedded.
// A nil *Options is the same as the zero value.
type Options struct {
	// MaxSize, if positive, limits the width and height of the embedded
	// image.  Larger images are scaled down, keeping the aspect ratio.
	MaxSize int

	// JPEG, if non-nil, causes the image to be stored using lossy JPEG
	// compression.  Otherwise the document filter is used, if compression
	// is enabled.
	JPEG *jpeg.Options
}

// Image is an image XObject in a document.
type Image struct {
	Ref    *pdfgen.Reference
	Width  int
	Height int

	name pdfgen.Name
	gray bool
}

// Embed adds the image src to the document and registers it in the
// resources of the current page.
func Embed(doc *document.Document, src image.Image, opt *Options) (*Image, error) {
	if opt == nil {
		opt = &Options{}
	}

	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, errEmptyImage
	}
	if opt.MaxSize > 0 && (width > opt.MaxSize || height > opt.MaxSize) {
		if width >= height {
			height = max(1, height*opt.MaxSize/width)
			width = opt.MaxSize
		} else {
			width = max(1, width*opt.MaxSize/height)
			height = opt.MaxSize
		}
	}
	scale := func(dst draw.Image) {
		if width == b.Dx() && height == b.Dy() {
			draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		} else {
			draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		}
	}

	var gray bool
	switch src.(type) {
	case *image.Gray, *image.Gray16:
		gray = true
	}

	dict := pdfgen.NewDict(
		pdfgen.KV("Type", pdfgen.Name("XObject")),
		pdfgen.KV("Subtype", pdfgen.Name("Image")),
		pdfgen.KV("Width", pdfgen.Integer(width)),
		pdfgen.KV("Height", pdfgen.Integer(height)),
	)

	var img draw.Image
	if gray {
		img = image.NewGray(image.Rect(0, 0, width, height))
		dict.Set("ColorSpace", pdfgen.Name("DeviceGray"))
	} else {
		img = image.NewNRGBA(image.Rect(0, 0, width, height))
		dict.Set("ColorSpace", pdfgen.Name("DeviceRGB"))
	}
	scale(img)

	var samples, alpha []byte
	switch img := img.(type) {
	case *image.Gray:
		samples = packRows(img.Pix, img.Stride, width)
	case *image.NRGBA:
		opaque := true
		samples = make([]byte, 0, 3*width*height)
		alpha = make([]byte, 0, width*height)
		for y := 0; y < height; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+4*width]
			for x := 0; x < 4*width; x += 4 {
				samples = append(samples, row[x], row[x+1], row[x+2])
				alpha = append(alpha, row[x+3])
				if row[x+3] != 0xFF {
					opaque = false
				}
			}
		}
		if opaque {
			alpha = nil
		}
	}

	if opt.JPEG != nil {
		var err error
		samples, err = encodeJPEG(img, opt.JPEG)
		if err != nil {
			return nil, err
		}
		dict.Set("Filter", pdfgen.Name("DCTDecode"))
	}

	return finishImage(doc, dict, samples, alpha, gray, width, height)
}

func finishImage(doc *document.Document, dict *pdfgen.Dict, samples, alpha []byte, gray bool, width, height int) (*Image, error) {
	_, isJPEG := dict.Get("Filter")
	dict.Set("BitsPerComponent", pdfgen.Integer(8))

	if alpha != nil {
		err := doc.RaiseVersion(pdfgen.V1_4)
		if err != nil {
			return nil, err
		}
		maskRef, err := doc.Alloc(pdfgen.NewDict(
			pdfgen.KV("Type", pdfgen.Name("XObject")),
			pdfgen.KV("Subtype", pdfgen.Name("Image")),
			pdfgen.KV("Width", pdfgen.Integer(width)),
			pdfgen.KV("Height", pdfgen.Integer(height)),
			pdfgen.KV("ColorSpace", pdfgen.Name("DeviceGray")),
			pdfgen.KV("BitsPerComponent", pdfgen.Integer(8)),
		), nil)
		if err != nil {
			return nil, err
		}
		err = maskRef.SetStream(alpha)
		if err != nil {
			return nil, err
		}
		err = doc.CompressStream(maskRef)
		if err != nil {
			return nil, err
		}
		dict.Set("SMask", maskRef)
	}

	ref, err := doc.Alloc(dict, nil)
	if err != nil {
		return nil, err
	}
	err = ref.SetStream(samples)
	if err != nil {
		return nil, err
	}
	if !isJPEG {
		err = doc.CompressStream(ref)
		if err != nil {
			return nil, err
		}
	}

	img := &Image{
		Ref:    ref,
		Width:  width,
		Height: height,
		gray:   gray,
	}
	_, err = img.Use(doc)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func encodeJPEG(img image.Image, opt *jpeg.Options) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := jpeg.Encode(buf, img, opt)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// packRows removes the padding at the end of each image row.
func packRows(pix []byte, stride, width int) []byte {
	if stride == width {
		return pix
	}
	height := len(pix) / stride
	res := make([]byte, 0, width*height)
	for y := 0; y < height; y++ {
		res = append(res, pix[y*stride:y*stride+width]...)
	}
	return res
}

// Use registers the image in the XObject resources of the current page,
// and declares the required procedure set.  The resource name is
// returned.  The image keeps its name on all pages where it is used.
func (img *Image) Use(doc *document.Document) (pdfgen.Name, error) {
	xobjects, err := doc.PageXObjects()
	if err != nil {
		return "", err
	}

	if img.name == "" {
		for k := xobjects.Len() + 1; ; k++ {
			name := pdfgen.Name(fmt.Sprintf("Im%d", k))
			if !xobjects.Has(name) {
				img.name = name
				break
			}
		}
	}

	if obj, ok := xobjects.Get(img.name); ok && obj != img.Ref {
		return "", fmt.Errorf("resource name /%s already in use", img.name)
	}
	xobjects.Set(img.name, img.Ref)

	procSet := pdfgen.Name("ImageC")
	if img.gray {
		procSet = "ImageB"
	}
	err = doc.ProcSet("PDF", procSet)
	if err != nil {
		return "", err
	}
	return img.name, nil
}

// Name returns the resource name of the image.
func (img *Image) Name() pdfgen.Name {
	return img.name
}

// Draw paints the image onto the current page, filling the rectangle box.
func (img *Image) Draw(doc *document.Document, box rect.Rect) error {
	name, err := img.Use(doc)
	if err != nil {
		return err
	}

	c := doc.PageContent()
	err = c.Append("q")
	if err != nil {
		return err
	}
	m := matrix.Matrix{box.Dx(), 0, 0, box.Dy(), box.LLx, box.LLy}
	err = c.Transform(m)
	if err != nil {
		return err
	}
	err = c.AppendOp("Do", name)
	if err != nil {
		return err
	}
	return c.Append("Q")
}

var errEmptyImage = errors.New("empty image")
