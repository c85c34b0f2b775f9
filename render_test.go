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


package pdfgen

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"
)

func TestRenderMinimal(t *testing.T) {
	s := NewStore()
	root, err := s.Alloc(NewDict(KV("Type", Name("Catalog"))), nil)
	if err != nil {
		t.Fatal(err)
	}
	err = s.SetRoot(root)
	if err != nil {
		t.Fatal(err)
	}

	out, err := s.Render(V1_3)
	if err != nil {
		t.Fatal(err)
	}

	want := "%PDF-1.3\n%\xFF\xFF\xFF\xFF\n" +
		"1 0 obj\n<<\n/Type /Catalog\n>>\nendobj\n" +
		"xref\n0 2\n" +
		"0000000000 65535 f \n" +
		"0000000015 00000 n \n" +
		"trailer\n<<\n/Size 2\n/Root 1 0 R\n>>\n" +
		"startxref\n51\n%%EOF\n"
	if string(out) != want {
		t.Errorf("wrong output:\n%q\n%q", out, want)
	}

	if pos, ok := root.Offset(); !ok || pos != 15 {
		t.Errorf("wrong offset %d", pos)
	}
	if pos, ok := s.XRefOffset(); !ok || pos != 51 {
		t.Errorf("wrong xref offset %d", pos)
	}
}

// buildTestStore creates a store with a catalog, an info dictionary and
// k-2 other objects, some of them streams.
func buildTestStore(t *testing.T, k int) *Store {
	t.Helper()

	s := NewStore()
	info, err := s.Alloc(NewDict(KV("Title", TextString("Test"))), nil)
	if err != nil {
		t.Fatal(err)
	}
	root, err := s.Alloc(NewDict(KV("Type", Name("Catalog"))), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 2; i < k; i++ {
		ref, err := s.Alloc(NewDict(KV("Index", Integer(i))), nil)
		if err != nil {
			t.Fatal(err)
		}
		if i%3 == 0 {
			err = ref.SetStream([]byte(strings.Repeat("x", i)))
			if err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := s.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	if err := s.SetInfo(info); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRenderXRef(t *testing.T) {
	for _, k := range []int{2, 3, 10, 50} {
		t.Run(strconv.Itoa(k), func(t *testing.T) {
			s := buildTestStore(t, k)
			out, err := s.Render(V1_5)
			if err != nil {
				t.Fatal(err)
			}

			if !bytes.HasPrefix(out, []byte("%PDF-1.5\n%\xFF\xFF\xFF\xFF\n")) {
				t.Errorf("wrong header %q", out[:16])
			}

			xrefPos, ok := s.XRefOffset()
			if !ok {
				t.Fatal("xref offset not set")
			}
			lines := strings.Split(string(out[xrefPos:]), "\n")
			if lines[0] != "xref" || lines[1] != fmt.Sprintf("0 %d", k+1) {
				t.Fatalf("wrong xref header %q %q", lines[0], lines[1])
			}
			if lines[2]+"\n" != xrefFreeHead {
				t.Errorf("wrong free entry %q", lines[2])
			}
			entries := lines[3 : 3+k]

			var prev int64 = -1
			for ref := range s.All() {
				pos, ok := ref.Offset()
				if !ok {
					t.Fatalf("offset of %s not set", ref)
				}
				if pos <= prev {
					t.Errorf("offsets not increasing: %d after %d", pos, prev)
				}
				prev = pos

				entry := entries[ref.ID()-1]
				if entry != fmt.Sprintf("%010d 00000 n ", pos) {
					t.Errorf("%s: wrong xref entry %q", ref, entry)
				}
				marker := fmt.Sprintf("%d 0 obj\n", ref.ID())
				if !bytes.HasPrefix(out[pos:], []byte(marker)) {
					t.Errorf("%s: offset %d does not point to object", ref, pos)
				}
			}
			if lines[3+k] != "trailer" {
				t.Errorf("missing trailer, got %q", lines[3+k])
			}

			trailer := fmt.Sprintf("trailer\n<<\n/Size %d\n/Root 2 0 R\n/Info 1 0 R\n>>\nstartxref\n%d\n%%%%EOF\n", k+1, xrefPos)
			if !bytes.HasSuffix(out, []byte(trailer)) {
				t.Errorf("wrong trailer: %q", out[xrefPos:])
			}
		})
	}
}

func TestStreamLength(t *testing.T) {
	s := NewStore()
	root, err := s.Alloc(NewDict(KV("Type", Name("Catalog"))), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	stm, err := s.Alloc(NewDict(KV("Length", Integer(0))), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := stm.AppendStream([]byte("hello ")); err != nil {
		t.Fatal(err)
	}
	if err := stm.AppendStream([]byte("world")); err != nil {
		t.Fatal(err)
	}

	out, err := s.Render(V1_3)
	if err != nil {
		t.Fatal(err)
	}
	want := "2 0 obj\n<<\n/Length 11\n>>\nstream\nhello world\nendstream\nendobj\n"
	if !bytes.Contains(out, []byte(want)) {
		t.Errorf("stream not found in output:\n%s", out)
	}
}

func TestStreamRequiresDict(t *testing.T) {
	s := NewStore()
	ref, err := s.Alloc(Array{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ref.SetStream([]byte("data")); err == nil {
		t.Error("stream attached to an array")
	}
}

// hexFilter is a minimal [Filter] used for testing.
type hexFilter struct{}

func (hexFilter) FilterName() Name    { return "ASCIIHexDecode" }
func (hexFilter) MinVersion() Version { return V1_0 }

func (hexFilter) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return &hexWriter{Writer: hex.NewEncoder(w), w: w}, nil
}

type hexWriter struct {
	io.Writer
	w io.WriteCloser
}

func (h *hexWriter) Close() error {
	_, err := h.w.Write([]byte(">"))
	if err != nil {
		return err
	}
	return h.w.Close()
}

func TestCompress(t *testing.T) {
	s := NewStore()
	ref, err := s.Alloc(NewDict(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := ref.SetStream([]byte("AB")); err != nil {
		t.Fatal(err)
	}

	if err := ref.Compress(hexFilter{}); err != nil {
		t.Fatal(err)
	}
	if got := string(ref.Stream()); got != "4142>" {
		t.Errorf("wrong stream %q", got)
	}
	dict, _ := ref.Dict()
	if got := Format(dict); got != "<<\n/Filter /ASCIIHexDecode\n/Length 5\n>>" {
		t.Errorf("wrong dict %q", got)
	}

	if err := ref.Compress(hexFilter{}); err != nil {
		t.Fatal(err)
	}
	if got := string(ref.Stream()); got != "343134323e>" {
		t.Errorf("wrong stream %q", got)
	}
	filters, _ := dict.Get("Filter")
	if got := Format(filters); got != "[/ASCIIHexDecode /ASCIIHexDecode]" {
		t.Errorf("wrong filters %q", got)
	}

	plain, err := s.Alloc(NewDict(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := plain.Compress(hexFilter{}); err == nil {
		t.Error("compressed an object without stream")
	}
}

func TestInfoDict(t *testing.T) {
	info := &Info{
		Title:  "Grades",
		Author: "Jürgen",
		Custom: map[string]string{"Zeta": "z", "Alpha": "a", "Title": "ignored"},
	}
	got := Format(info.AsDict())
	want := "<<\n/Title (Grades)\n/Author <feff004a00fc007200670065006e>\n/Alpha (a)\n/Zeta (z)\n>>"
	if got != want {
		t.Errorf("wrong info dict:\n%s\n%s", got, want)
	}

	clone := info.Clone()
	clone.Custom["Alpha"] = "changed"
	if info.Custom["Alpha"] != "a" {
		t.Error("Clone shares the custom map")
	}
}
