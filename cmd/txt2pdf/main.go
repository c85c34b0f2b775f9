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


// Txt2pdf converts plain text files to PDF.
//
// For every input file "name.txt", the output is written to "name.pdf".
// Existing files are not overwritten; a numbered file name is used instead.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
	"seehuhn.de/go/pdfgen/font"
)

const (
	tabWidth   = 4
	fontSize   = 10
	lineHeight = 12
	margin     = 72
)

// expandTabs replaces tab characters by spaces.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			for {
				b.WriteByte(' ')
				col++
				if col%tabWidth == 0 {
					break
				}
			}
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// convert typesets the lines read from in, using as many A4 pages as
// needed.
func convert(in io.Reader, title string, now time.Time) (*document.Document, error) {
	doc, err := document.New(&document.Options{
		PageSize: document.A4,
		Compress: true,
		Info: &pdfgen.Info{
			Title:        title,
			CreationDate: now,
		},
	})
	if err != nil {
		return nil, err
	}
	fonts := font.NewRegistry(doc)

	numLines := int((document.A4.URy - 2*margin) / lineHeight)
	pageLines := -1 // no text block open

	startPage := func() error {
		name, err := fonts.Use(font.Courier)
		if err != nil {
			return err
		}
		c := doc.PageContent()
		err = c.Append("BT")
		if err != nil {
			return err
		}
		err = c.AppendOp("Tf", name, pdfgen.Integer(fontSize))
		if err != nil {
			return err
		}
		err = c.AppendOp("TL", pdfgen.Integer(lineHeight))
		if err != nil {
			return err
		}
		pageLines = 0
		return c.AppendOp("Td", pdfgen.Integer(margin), pdfgen.Number(document.A4.URy-margin-fontSize))
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch {
		case pageLines < 0:
			err = startPage()
		case pageLines >= numLines:
			err = doc.AddContent("ET")
			if err == nil {
				_, err = doc.StartNewPage(nil)
			}
			if err == nil {
				err = startPage()
			}
		}
		if err != nil {
			return nil, err
		}

		line, _ := font.Courier.Encode(expandTabs(scanner.Text()))
		if len(line) > 0 {
			err = doc.PageContent().AppendOp("Tj", line)
			if err != nil {
				return nil, err
			}
		}
		err = doc.AddContent("T*")
		if err != nil {
			return nil, err
		}
		pageLines++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if pageLines >= 0 {
		err = doc.AddContent("ET")
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func convertFile(inName, outName string) error {
	in, err := os.Open(inName)
	if err != nil {
		return err
	}
	defer in.Close()

	doc, err := convert(in, inName, time.Now())
	if err != nil {
		return err
	}
	return doc.RenderFile(outName)
}

func main() {
	flag.Parse()

	for _, inName := range flag.Args() {
		baseName := strings.TrimSuffix(inName, ".txt")
		var outName string
		for i := 1; ; i++ {
			if i == 1 {
				outName = baseName + ".pdf"
			} else {
				outName = fmt.Sprintf("%s-%d.pdf", baseName, i)
			}
			_, err := os.Stat(outName)
			if os.IsNotExist(err) {
				break
			} else if err != nil {
				log.Fatal(err)
			}
		}

		fmt.Println(inName, "->", outName)
		err := convertFile(inName, outName)
		if err != nil {
			log.Fatal(err)
		}
	}
}
