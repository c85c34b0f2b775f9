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


// Package metadata adds XMP metadata streams to PDF documents.
//
// The metadata stream of a document is generated from the document
// information dictionary when the document is finalized, so that both
// always agree.
package metadata

import (
	"bytes"
	"errors"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
)

// PDF 2.0 sections: 14.3

// Stream represents an XMP metadata stream.
type Stream struct {
	Data *xmp.Packet
}

// PDF is the XMP namespace for PDF metadata.
// See https://developer.adobe.com/xmp/docs/XMPNamespaces/pdf/
type PDF struct {
	_        xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_        xmp.Prefix    `xmp:"pdf"`
	Keywords xmp.Text
	Producer xmp.AgentName
}

// Options control the generation of the metadata stream.
// A nil *Options is the same as the zero value.
type Options struct {
	// Pretty, if set, produces an indented XML packet.
	Pretty bool
}

var xDefault = language.MustParse("x-default")

// FromInfo converts document information into an XMP packet.
// Titles and descriptions are stored under the default language and,
// if lang is not [language.Und], also under lang.
func FromInfo(info *pdfgen.Info, lang language.Tag) (*Stream, error) {
	if info == nil {
		info = &pdfgen.Info{}
	}

	localized := func(l *xmp.Localized, val string) {
		l.Set(xDefault, val)
		if lang != language.Und {
			l.Set(lang, val)
		}
	}

	dc := &xmp.DublinCore{}
	if info.Title != "" {
		localized(&dc.Title, info.Title)
	}
	if info.Subject != "" {
		localized(&dc.Description, info.Subject)
	}
	if info.Author != "" {
		dc.Creator.Append(xmp.NewProperName(info.Author))
	}

	basic := &xmp.Basic{}
	if !info.CreationDate.IsZero() {
		basic.CreateDate = xmp.NewDate(info.CreationDate)
	}
	if !info.ModDate.IsZero() {
		basic.ModifyDate = xmp.NewDate(info.ModDate)
	}

	pdfInfo := &PDF{}
	if info.Keywords != "" {
		pdfInfo.Keywords = xmp.NewText(info.Keywords)
	}
	if info.Producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(info.Producer)
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, pdfInfo)
	if err != nil {
		return nil, err
	}
	return &Stream{Data: packet}, nil
}

// Attach adds a metadata stream to doc and records it in the document
// catalog.  The XMP packet is generated from the document information
// when the document is finalized.  XMP metadata requires PDF 1.4.
func Attach(doc *document.Document, opt *Options) (*pdfgen.Reference, error) {
	if opt == nil {
		opt = &Options{}
	}
	cat, _ := doc.Catalog().Dict()
	if cat.Has("Metadata") {
		return nil, errDuplicate
	}

	err := doc.RaiseVersion(pdfgen.V1_4)
	if err != nil {
		return nil, err
	}

	var ref *pdfgen.Reference
	dict := pdfgen.NewDict(
		pdfgen.KV("Type", pdfgen.Name("Metadata")),
		pdfgen.KV("Subtype", pdfgen.Name("XML")),
	)
	ref, err = doc.Alloc(dict, func() error {
		s, err := FromInfo(doc.Info(), doc.Lang())
		if err != nil {
			return err
		}
		return s.write(ref, opt)
	})
	if err != nil {
		return nil, err
	}
	cat.Set("Metadata", ref)
	return ref, nil
}

// write stores the XMP packet as the stream data of ref.
// Metadata streams are never compressed.
func (s *Stream) write(ref *pdfgen.Reference, opt *Options) error {
	buf := &bytes.Buffer{}
	xmlOpt := &xmp.PacketOptions{
		Pretty: opt.Pretty,
	}
	err := s.Data.Write(buf, xmlOpt)
	if err != nil {
		return err
	}
	return ref.SetStream(buf.Bytes())
}

// Extract reads the XMP packet from a metadata stream.
func Extract(ref *pdfgen.Reference) (*Stream, error) {
	if ref == nil {
		return nil, nil
	}
	if !ref.HasStream() {
		return nil, errNoStream
	}
	packet, err := xmp.Read(bytes.NewReader(ref.Stream()))
	if err != nil {
		return nil, err
	}
	return &Stream{Data: packet}, nil
}

// Equal reports whether s and other represent the same XMP metadata.
func (s *Stream) Equal(other *Stream) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.Data.Equal(other.Data)
}

var (
	errDuplicate = errors.New("document already has a metadata stream")
	errNoStream  = errors.New("metadata object has no stream data")
)
