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
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
	"seehuhn.de/go/pdfgen/filter"
)

func TestExpandTabs(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"a\tb":    "a   b",
		"\tx":     "    x",
		"abcd\te": "abcd    e",
	}
	for in, want := range cases {
		if got := expandTabs(in); got != want {
			t.Errorf("expandTabs(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConvert(t *testing.T) {
	var lines []string
	for range 100 {
		lines = append(lines, "x\ty")
	}
	lines[0] = "Größe"
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")

	doc, err := convert(in, "test.txt", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.PageCount())
	}

	_, err = doc.Render()
	if err != nil {
		t.Fatal(err)
	}

	page, err := doc.Page(0)
	if err != nil {
		t.Fatal(err)
	}
	zr, err := filter.Flate{}.Decode(bytes.NewReader(page.Content().Ref().Stream()))
	if err != nil {
		t.Fatal(err)
	}
	content, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	expectedStart := "BT\n/F1 10 Tf\n12 TL\n72 " +
		pdfgen.Format(pdfgen.Number(document.A4.URy-margin-fontSize)) + " Td\n" +
		pdfgen.Format(pdfgen.String("Gr\xf6\xdfe")) + " Tj\nT*\n(x   y) Tj\nT*\n"
	if !strings.HasPrefix(string(content), expectedStart) {
		t.Errorf("unexpected content stream:\n%.80s", content)
	}
	if !strings.HasSuffix(string(content), "ET\nQ\n") {
		t.Errorf("content stream does not close the text object")
	}
}
