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
	"errors"
	"fmt"
	"iter"
)

// State describes the life cycle of a [Store].
type State int

// These are the states of a store.  The state only ever moves forward.
const (
	// Building is the initial state.  Objects can be allocated and modified.
	Building State = iota

	// Finalizing is the state while pages are closed and deferred
	// resolvers run.  Objects can still be allocated and modified.
	Finalizing

	// Rendered is entered just before the first byte of output is
	// written.  No further changes are possible.
	Rendered
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Finalizing:
		return "finalizing"
	case Rendered:
		return "rendered"
	default:
		return fmt.Sprintf("pdfgen.State(%d)", int(s))
	}
}

// Store is the insertion-ordered collection of all indirect objects of one
// PDF document.  The store allocates object numbers, and the order of
// allocation is the order in which objects appear in the output.
//
// A Store must not be used concurrently.
type Store struct {
	refs []*Reference

	root *Reference
	info *Reference

	state State
	err   error

	xrefOffset int64
	out        []byte
}

// NewStore returns a new, empty object store.
func NewStore() *Store {
	return &Store{
		xrefOffset: -1,
	}
}

// Alloc adds a new object to the store.  The object number is one more
// than the number of previously allocated objects.
//
// If resolve is non-nil, it is called once, immediately before the file is
// rendered.  This can be used for objects whose contents are not known until
// the whole document is complete.
func (s *Store) Alloc(data Object, resolve func() error) (*Reference, error) {
	if err := s.checkMutable(); err != nil {
		return nil, err
	}
	ref := &Reference{
		id:      len(s.refs) + 1,
		store:   s,
		data:    data,
		resolve: resolve,
		offset:  -1,
	}
	s.refs = append(s.refs, ref)
	return ref, nil
}

// AllocID is like [Store.Alloc], but only returns the object number.
func (s *Store) AllocID(data Object, resolve func() error) (int, error) {
	ref, err := s.Alloc(data, resolve)
	if err != nil {
		return 0, err
	}
	return ref.id, nil
}

// Lookup returns the object with the given object number.
// If the number was never allocated, a [*NotFoundError] is returned.
func (s *Store) Lookup(id int) (*Reference, error) {
	if id < 1 || id > len(s.refs) {
		return nil, &NotFoundError{ID: id}
	}
	return s.refs[id-1], nil
}

// Size returns the number of objects in the store.
func (s *Store) Size() int {
	return len(s.refs)
}

// All iterates over the objects in the store, in allocation order.
func (s *Store) All() iter.Seq[*Reference] {
	return func(yield func(*Reference) bool) {
		for _, ref := range s.refs {
			if !yield(ref) {
				return
			}
		}
	}
}

// Root returns the document catalog.
func (s *Store) Root() *Reference {
	return s.root
}

// SetRoot sets the document catalog, which is referenced from the trailer.
func (s *Store) SetRoot(ref *Reference) error {
	if err := s.checkOwn(ref); err != nil {
		return err
	}
	s.root = ref
	return nil
}

// Info returns the document information dictionary, or nil if none is set.
func (s *Store) Info() *Reference {
	return s.info
}

// SetInfo sets the document information dictionary, which is referenced
// from the trailer.
func (s *Store) SetInfo(ref *Reference) error {
	if err := s.checkOwn(ref); err != nil {
		return err
	}
	s.info = ref
	return nil
}

// State returns the current state of the store.
func (s *Store) State() State {
	return s.state
}

// XRefOffset returns the byte offset of the cross-reference table.
// The second return value is false, if the store has not been rendered.
func (s *Store) XRefOffset() (int64, bool) {
	return s.xrefOffset, s.xrefOffset >= 0
}

// BeginFinalize moves the store from the Building to the Finalizing state.
func (s *Store) BeginFinalize() error {
	if s.err != nil {
		return s.err
	}
	switch s.state {
	case Building:
		s.state = Finalizing
		return nil
	case Finalizing:
		return errors.New("store is already being finalized")
	default:
		return ErrRendered
	}
}

// Resolve runs all pending deferred resolvers, in allocation order.  Objects
// allocated by a resolver are included in the same pass.  Each resolver is
// called at most once.
//
// If a resolver fails, the store becomes unusable and the error is returned
// by all later calls to Resolve and [Store.Render].
func (s *Store) Resolve() error {
	if s.err != nil {
		return s.err
	}
	if s.state != Finalizing {
		return fmt.Errorf("cannot resolve objects in state %s", s.state)
	}

	for i := 0; i < len(s.refs); i++ {
		ref := s.refs[i]
		fn := ref.resolve
		if fn == nil {
			continue
		}
		ref.resolve = nil
		err := fn()
		if err != nil {
			s.err = &ResolveError{ID: ref.id, Err: err}
			return s.err
		}
	}
	return nil
}

// Err returns the error which made the store unusable, or nil if the store
// is still usable.
func (s *Store) Err() error {
	return s.err
}

// Fail marks the store as unusable.  All later calls to [Store.Resolve] and
// [Store.Render] return err.
func (s *Store) Fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *Store) checkMutable() error {
	if s.err != nil {
		return s.err
	}
	if s.state == Rendered {
		return ErrRendered
	}
	return nil
}

func (s *Store) checkOwn(ref *Reference) error {
	if err := s.checkMutable(); err != nil {
		return err
	}
	if ref != nil && ref.store != s {
		return errForeignReference
	}
	return nil
}

// syncLengths sets the /Length entry of all streams to the length of the
// stream data.
func (s *Store) syncLengths() error {
	for _, ref := range s.refs {
		if ref.stream == nil {
			continue
		}
		dict, ok := ref.data.(*Dict)
		if !ok {
			return fmt.Errorf("object %d: stream data requires a dictionary", ref.id)
		}
		dict.Set("Length", Integer(len(ref.stream)))
	}
	return nil
}
