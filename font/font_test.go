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


package font

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
)

func TestIsValid(t *testing.T) {
	for _, f := range []Standard{Courier, HelveticaBold, TimesItalic, Symbol, ZapfDingbats} {
		if !f.IsValid() {
			t.Errorf("%s not recognized", f)
		}
	}
	for _, f := range []Standard{"", "Arial", "Helvetica-Italic"} {
		if f.IsValid() {
			t.Errorf("%q accepted", f)
		}
	}
}

func TestUse(t *testing.T) {
	doc, err := document.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry(doc)

	name, err := r.Use(Helvetica)
	if err != nil {
		t.Fatal(err)
	}
	if name != "F1" {
		t.Errorf("wrong name %s", name)
	}
	again, err := r.Use(Helvetica)
	if err != nil {
		t.Fatal(err)
	}
	if again != name {
		t.Errorf("font registered twice: %s %s", name, again)
	}
	sym, err := r.Use(Symbol)
	if err != nil {
		t.Fatal(err)
	}
	if sym != "F2" {
		t.Errorf("wrong name %s", sym)
	}

	want := "<<\n/Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica\n/Encoding /WinAnsiEncoding\n>>"
	if got := pdfgen.Format(r.Ref(Helvetica).Data()); got != want {
		t.Errorf("wrong font dict:\n%s", got)
	}
	want = "<<\n/Type /Font\n/Subtype /Type1\n/BaseFont /Symbol\n>>"
	if got := pdfgen.Format(r.Ref(Symbol).Data()); got != want {
		t.Errorf("wrong font dict:\n%s", got)
	}

	fonts, err := doc.PageFonts()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]pdfgen.Name{"F1", "F2"}, fonts.Keys()); d != "" {
		t.Errorf("wrong font resources (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]pdfgen.Name{"PDF", "Text"}, doc.CurrentPage().ProcSet()); d != "" {
		t.Errorf("wrong procedure set (-want +got):\n%s", d)
	}

	if _, err := r.Use("Comic Sans"); err == nil {
		t.Error("non-standard font accepted")
	}
}

func TestSharedAcrossPages(t *testing.T) {
	doc, err := document.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry(doc)
	if _, err := r.Use(TimesRoman); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.StartNewPage(nil); err != nil {
		t.Fatal(err)
	}
	name, err := r.Use(TimesRoman)
	if err != nil {
		t.Fatal(err)
	}

	fonts, _ := doc.PageFonts()
	if obj, _ := fonts.Get(name); obj != r.Ref(TimesRoman) {
		t.Error("font not shared between pages")
	}
	// six objects for the document and the first page, the font, two
	// procedure sets, and two objects for the second page
	if got := doc.Store().Size(); got != 11 {
		t.Errorf("store has %d objects", got)
	}
}

func TestShowText(t *testing.T) {
	doc, err := document.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry(doc)
	err = r.ShowText(Helvetica, 12, 72, 700.5, "Grade: 1,0 (très bien) €")
	if err != nil {
		t.Fatal(err)
	}

	want := "BT\n/F1 12 Tf\n72 700.5 Td\n(Grade: 1,0 (tr\\350s bien) \\200) Tj\nET\n"
	if got := string(doc.PageContent().Bytes()); got != want {
		t.Errorf("wrong content:\n%q\n%q", got, want)
	}

	err = r.ShowText(Courier, 10, 0, 0, "日本")
	if !errors.Is(err, errNotEncodable) {
		t.Errorf("expected errNotEncodable, got %v", err)
	}

	out, err := doc.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte("/BaseFont /Helvetica")) {
		t.Error("font dictionary missing from output")
	}
}

func TestEncode(t *testing.T) {
	cases := []struct {
		f      Standard
		in     string
		out    string
		wantOK bool
	}{
		{Helvetica, "abc", "abc", true},
		{Courier, "€1", "\x801", true},
		{TimesRoman, "a→b", "a?b", false},
		{Symbol, "abc", "abc", true},
	}
	for _, c := range cases {
		s, ok := c.f.Encode(c.in)
		if string(s) != c.out || ok != c.wantOK {
			t.Errorf("%s.Encode(%q) = %q, %t", c.f, c.in, s, ok)
		}
	}
}
