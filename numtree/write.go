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


package numtree

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
)

// maxChildren is the maximum number of children we allow in a node while
// writing a number tree.
const maxChildren = 64

// Attach installs the tree in the document catalog, under the given key.
// The reference of the tree's root node is returned.
//
// The nodes of the tree are written when the document is finalized.
// Entries added to t before the document is rendered are included.
func (t *InMemory) Attach(doc *document.Document, key pdfgen.Name) (*pdfgen.Reference, error) {
	catalog, ok := doc.Catalog().Dict()
	if !ok {
		return nil, errors.New("invalid document catalog")
	}
	if catalog.Has(key) {
		return nil, fmt.Errorf("catalog entry /%s already present", key)
	}

	var root *pdfgen.Reference
	root, err := doc.Alloc(&pdfgen.Dict{}, func() error {
		w := &numberTreeWriter{doc: doc}
		for key, value := range t.All() {
			err := w.addEntry(key, value)
			if err != nil {
				return err
			}
		}
		return w.finish(root)
	})
	if err != nil {
		return nil, err
	}
	catalog.Set(key, root)
	return root, nil
}

type entry struct {
	key   pdfgen.Integer
	value pdfgen.Object
}

type nodeInfo struct {
	ref    *pdfgen.Reference
	depth  int
	minKey pdfgen.Integer
	maxKey pdfgen.Integer
}

// numberTreeWriter builds the tree bottom up.  Entries must be added in
// increasing key order.
type numberTreeWriter struct {
	doc         *document.Document
	tail        []*nodeInfo // completed nodes at various depths
	pendingLeaf []entry     // accumulating entries for current leaf
	lastKey     pdfgen.Integer
	hasEntries  bool
}

func (w *numberTreeWriter) addEntry(key pdfgen.Integer, value pdfgen.Object) error {
	if w.hasEntries && key <= w.lastKey {
		return errors.New("keys must be in sorted order")
	}
	w.lastKey = key
	w.hasEntries = true

	w.pendingLeaf = append(w.pendingLeaf, entry{key: key, value: value})
	if len(w.pendingLeaf) >= maxChildren {
		return w.completePendingLeaf()
	}
	return nil
}

func (w *numberTreeWriter) numsArray() pdfgen.Array {
	nums := make(pdfgen.Array, 0, 2*len(w.pendingLeaf))
	for _, e := range w.pendingLeaf {
		nums = append(nums, e.key, e.value)
	}
	return nums
}

func (w *numberTreeWriter) completePendingLeaf() error {
	if len(w.pendingLeaf) == 0 {
		return nil
	}

	first := w.pendingLeaf[0].key
	last := w.pendingLeaf[len(w.pendingLeaf)-1].key
	ref, err := w.doc.Alloc(pdfgen.NewDict(
		pdfgen.KV("Limits", pdfgen.Array{first, last}),
		pdfgen.KV("Nums", w.numsArray()),
	), nil)
	if err != nil {
		return err
	}

	w.tail = append(w.tail, &nodeInfo{
		ref:    ref,
		minKey: first,
		maxKey: last,
	})
	w.pendingLeaf = nil

	return w.mergeTail()
}

// mergeTail combines the last maxChildren nodes into a new intermediate
// node, whenever they all have the same depth.
func (w *numberTreeWriter) mergeTail() error {
	for {
		n := len(w.tail)
		if n < maxChildren || w.tail[n-1].depth != w.tail[n-maxChildren].depth {
			return nil
		}
		err := w.mergeNodes(n-maxChildren, n)
		if err != nil {
			return err
		}
	}
}

func (w *numberTreeWriter) mergeNodes(start, end int) error {
	children := w.tail[start:end]
	minKey := children[0].minKey
	maxKey := children[len(children)-1].maxKey
	depth := 0
	for _, child := range children {
		depth = max(depth, child.depth+1)
	}

	ref, err := w.doc.Alloc(pdfgen.NewDict(
		pdfgen.KV("Limits", pdfgen.Array{minKey, maxKey}),
		pdfgen.KV("Kids", kidsArray(children)),
	), nil)
	if err != nil {
		return err
	}

	merged := &nodeInfo{
		ref:    ref,
		depth:  depth,
		minKey: minKey,
		maxKey: maxKey,
	}
	w.tail = append(w.tail[:start], merged)
	return nil
}

// finish fills in the root node.  The root never has a /Limits entry.
func (w *numberTreeWriter) finish(root *pdfgen.Reference) error {
	if len(w.tail) == 0 {
		return root.SetData(pdfgen.NewDict(pdfgen.KV("Nums", w.numsArray())))
	}

	err := w.completePendingLeaf()
	if err != nil {
		return err
	}
	for len(w.tail) > maxChildren {
		err := w.mergeNodes(len(w.tail)-maxChildren, len(w.tail))
		if err != nil {
			return err
		}
	}
	return root.SetData(pdfgen.NewDict(pdfgen.KV("Kids", kidsArray(w.tail))))
}

func kidsArray(nodes []*nodeInfo) pdfgen.Array {
	kids := make(pdfgen.Array, len(nodes))
	for i, n := range nodes {
		kids[i] = n.ref
	}
	return kids
}
