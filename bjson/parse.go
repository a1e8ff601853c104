// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

// Parse is the in-memory working object for one BJSON value: either a
// read-only view over externally owned bytes, or an owned, growable
// buffer produced by the parser or promoted from a view on first edit
// (§3 "Parse").
type Parse struct {
	owned *BlobBuf // non-nil when this Parse owns a growable buffer
	view  []byte   // valid when owned == nil

	source *RCString // optional: the text this Parse was parsed from

	depth         int  // current nesting depth during parse
	maxDepth      int  // depth limit; 0 means DefaultMaxDepth
	errOffset     int  // byte offset of the first error, or -1
	nonStandard   bool // set once any JSON-5 feature or extended whitespace is consumed
	refs          int  // shared-reference count (cache residency)
	delta         int  // running size delta accumulated by the last edit
	pendingInsert []byte
}

// DefaultMaxDepth is the nesting depth limit spec.md §3 requires:
// exceeding it during parse or during path navigation is a parse error,
// not a stack overflow.
const DefaultMaxDepth = 1000

// NewView wraps externally owned, read-only BJSON bytes. No copy is
// made; the caller must keep buf alive and unmutated for the Parse's
// lifetime.
func NewView(buf []byte) *Parse {
	return &Parse{view: buf, errOffset: -1, maxDepth: DefaultMaxDepth, refs: 1}
}

// newOwned creates a Parse around a fresh, empty, growable buffer with
// room for extraHint additional bytes.
func newOwned(extraHint int) *Parse {
	return &Parse{owned: NewBlobBuf(extraHint), errOffset: -1, maxDepth: DefaultMaxDepth, refs: 1}
}

// Bytes returns the current BJSON bytes, whichever storage backs them.
func (p *Parse) Bytes() []byte {
	if p.owned != nil {
		return p.owned.Bytes()
	}
	return p.view
}

// Editable reports whether this Parse currently owns a growable buffer.
func (p *Parse) Editable() bool { return p.owned != nil }

// MakeEditable promotes a read-only view into an owned, growable copy
// with nExtra bytes of spare headroom reserved up front (§4.5
// "Editable escalation"). It is a no-op if the Parse is already
// editable.
func (p *Parse) MakeEditable(nExtra int) {
	if p.owned != nil {
		p.owned.Reserve(nExtra)
		return
	}
	b := NewBlobBuf(len(p.view) + nExtra)
	b.Append(p.view)
	p.owned = b
	p.view = nil
}

// NonStandard reports whether parsing this value consumed any JSON-5 or
// extended-whitespace feature.
func (p *Parse) NonStandard() bool { return p.nonStandard }

// ErrorOffset returns the 0-based byte offset of the first error
// encountered, or -1 if none.
func (p *Parse) ErrorOffset() int { return p.errOffset }

// Retain increments the shared-reference count (cache residency).
func (p *Parse) Retain() { p.refs++ }

// Release decrements the shared-reference count. It reports whether
// this was the last reference.
func (p *Parse) Release() bool {
	p.refs--
	return p.refs <= 0
}

// Clone returns a private, owned copy of p's bytes suitable for an edit
// caller that must not disturb a cache-resident Parse (§4.7 "edit
// callers get a private clone").
func (p *Parse) Clone() *Parse {
	c := newOwned(len(p.Bytes()))
	c.owned.Append(p.Bytes())
	return c
}
