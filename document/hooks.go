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

// A Drawer adds content to the current page of a document.
type Drawer interface {
	Draw(d *Document) error
}

// DrawerFunc is an adapter which allows to use an ordinary function as
// a [Drawer].
type DrawerFunc func(d *Document) error

// Draw implements the [Drawer] interface.
func (f DrawerFunc) Draw(d *Document) error {
	return f(d)
}

// SetHeader registers a Drawer which is called for every page, just before
// the page is finalized.  The page being finalized is the current page
// while the header is drawn.  Pass nil to remove the header.
func (d *Document) SetHeader(header Drawer) error {
	if err := d.checkMutable(); err != nil {
		return err
	}
	d.header = header
	return nil
}

// SetFooter registers a Drawer which is called for every page, after the
// header.  Pass nil to remove the footer.
func (d *Document) SetFooter(footer Drawer) error {
	if err := d.checkMutable(); err != nil {
		return err
	}
	d.footer = footer
	return nil
}
