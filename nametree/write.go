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


package nametree

import (
	"fmt"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/document"
)

// maxChildren is the maximum number of children we allow in a node while
// writing a name tree.
const maxChildren = 64

// Attach adds the tree to the name dictionary of doc, under the given
// category (for example "Dests" or "EmbeddedFiles").  The reference of the
// tree's root node is returned.
//
// The nodes of the tree are written when the document is finalized.
// Entries added to t before the document is rendered are included.
func (t *InMemory) Attach(doc *document.Document, category pdfgen.Name) (*pdfgen.Reference, error) {
	names, err := doc.Names()
	if err != nil {
		return nil, err
	}
	namesDict, ok := names.Dict()
	if !ok {
		return nil, fmt.Errorf("invalid name dictionary %s", pdfgen.Format(names.Data()))
	}
	if namesDict.Has(category) {
		return nil, fmt.Errorf("name tree %q already present", category)
	}

	var root *pdfgen.Reference
	root, err = doc.Alloc(&pdfgen.Dict{}, func() error {
		return t.writeNodes(doc, root)
	})
	if err != nil {
		return nil, err
	}
	namesDict.Set(category, root)
	return root, nil
}

type nodeInfo struct {
	ref    *pdfgen.Reference
	minKey pdfgen.Name
	maxKey pdfgen.Name
}

// writeNodes fills in the root node and allocates the remaining nodes of
// a balanced tree.  The root never has a /Limits entry.
func (t *InMemory) writeNodes(doc *document.Document, root *pdfgen.Reference) error {
	var keys []pdfgen.Name
	var values []pdfgen.Object
	for key, value := range t.All() {
		keys = append(keys, key)
		values = append(values, value)
	}

	namesArray := func(start, end int) pdfgen.Array {
		res := make(pdfgen.Array, 0, 2*(end-start))
		for i := start; i < end; i++ {
			res = append(res, pdfgen.String(keys[i]), values[i])
		}
		return res
	}

	if len(keys) <= maxChildren {
		return root.SetData(pdfgen.NewDict(pdfgen.KV("Names", namesArray(0, len(keys)))))
	}

	var level []nodeInfo
	for start := 0; start < len(keys); start += maxChildren {
		end := min(start+maxChildren, len(keys))
		ref, err := doc.Alloc(pdfgen.NewDict(
			pdfgen.KV("Limits", limits(keys[start], keys[end-1])),
			pdfgen.KV("Names", namesArray(start, end)),
		), nil)
		if err != nil {
			return err
		}
		level = append(level, nodeInfo{ref: ref, minKey: keys[start], maxKey: keys[end-1]})
	}

	for len(level) > maxChildren {
		var next []nodeInfo
		for start := 0; start < len(level); start += maxChildren {
			end := min(start+maxChildren, len(level))
			children := level[start:end]
			ref, err := doc.Alloc(pdfgen.NewDict(
				pdfgen.KV("Kids", kidsArray(children)),
				pdfgen.KV("Limits", limits(children[0].minKey, children[len(children)-1].maxKey)),
			), nil)
			if err != nil {
				return err
			}
			next = append(next, nodeInfo{
				ref:    ref,
				minKey: children[0].minKey,
				maxKey: children[len(children)-1].maxKey,
			})
		}
		level = next
	}

	return root.SetData(pdfgen.NewDict(pdfgen.KV("Kids", kidsArray(level))))
}

func limits(minKey, maxKey pdfgen.Name) pdfgen.Array {
	return pdfgen.Array{pdfgen.String(minKey), pdfgen.String(maxKey)}
}

func kidsArray(nodes []nodeInfo) pdfgen.Array {
	kids := make(pdfgen.Array, len(nodes))
	for i, n := range nodes {
		kids[i] = n.ref
	}
	return kids
}
