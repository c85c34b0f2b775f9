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


// Gradereport writes a grade report as a PDF file.
//
// Usage:
//
//	gradereport [options] name=grade ...
//
// Each argument gives the name of a student and the corresponding grade.
// The report is written to the file given by the -o option, or to standard
// output.
package main

import (
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"golang.org/x/term"
	"golang.org/x/text/language"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gradereport: ")

	out := flag.String("o", "", "output file name (default: standard output)")
	title := flag.String("title", "Grade Report", "title of the report")
	compress := flag.Bool("compress", false, "compress page contents")
	ascii := flag.Bool("ascii", false, "encode page contents using ASCII85")
	withXMP := flag.Bool("xmp", false, "include XMP metadata")
	withSRGB := flag.Bool("srgb", false, "include an sRGB output intent")
	lang := flag.String("lang", "", "language of the report, e.g. \"en-GB\"")
	logo := flag.String("logo", "", "image file to show next to the title")
	flag.Parse()

	rows, err := parseRows(flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	if *out == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("refusing to write PDF data to a terminal, use -o")
	}

	opt := &reportOptions{
		Title:    *title,
		Rows:     rows,
		Compress: *compress,
		ASCII:    *ascii,
		XMP:      *withXMP,
		SRGB:     *withSRGB,
	}
	if *lang != "" {
		opt.Lang, err = language.Parse(*lang)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *logo != "" {
		opt.Logo, err = readImage(*logo)
		if err != nil {
			log.Fatal(err)
		}
	}

	doc, err := buildReport(opt)
	if err != nil {
		log.Fatal(err)
	}

	if *out == "" {
		_, err = doc.WriteTo(os.Stdout)
	} else {
		err = doc.RenderFile(*out)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func readImage(fname string) (image.Image, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, _, err := image.Decode(fd)
	return img, err
}
