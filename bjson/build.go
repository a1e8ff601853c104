// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// AppendElement appends one fully-encoded (header+payload) element to
// out using the narrowest header class, returning the extended slice.
// It is the free-function form of parser.appendElement, usable by
// sqlfn's array()/object() builders that assemble a body outside of a
// parser run.
func AppendElement(out []byte, kind Kind, payload []byte) []byte {
	out = encodeHeader(out, kind, uint64(len(payload)))
	return append(out, payload...)
}

// WrapContainer wraps body (a concatenation of complete child elements,
// already including object labels where applicable) in a fresh
// container header of the given kind.
func WrapContainer(kind Kind, body []byte) []byte {
	return AppendElement(nil, kind, body)
}

// ElementHeaderKind decodes just the Kind of the element at off.
func ElementHeaderKind(buf []byte, off int) (Kind, error) {
	h, err := decodeHeader(buf, off)
	if err != nil {
		return 0, err
	}
	return h.Kind, nil
}

// CloneElementAt copies the complete bytes (header+payload) of the
// element at off within buf.
func CloneElementAt(buf []byte, off int) ([]byte, error) {
	return cloneElement(buf, off)
}

// CloneElementEnd returns the offset just past the element at off
// within buf, the building block group_array/group_object's window
// inverse uses to find "the first top-level comma" without actually
// scanning for commas (§6.4, §D).
func CloneElementEnd(buf []byte, off int) (int, error) {
	return elementEnd(buf, off)
}

// ViewAt returns a read-only Parse whose root is the element at off
// within buf, without copying. Callers that need to retain it past
// buf's lifetime should render or clone it first.
func ViewAt(buf []byte, off int) *Parse {
	end, err := elementEnd(buf, off)
	if err != nil {
		return NewView(buf[off:off])
	}
	return NewView(buf[off:end])
}

// ChildOffsets returns the offset of every immediate child element of
// the container at off: for an object this alternates label, value,
// label, value, ...; for an array it is simply each element in order.
func ChildOffsets(buf []byte, off int) ([]int, error) {
	h, err := decodeHeader(buf, off)
	if err != nil {
		return nil, err
	}
	if !h.Kind.IsContainer() {
		return nil, nil
	}
	start := off + h.HeaderLen
	end := start + int(h.PayloadLen)
	var out []int
	i := start
	for i < end {
		out = append(out, i)
		next, err := elementEnd(buf, i)
		if err != nil {
			return nil, err
		}
		i = next
	}
	return out, nil
}

// ScalarText returns the kind and raw payload bytes of the element at
// off, for callers (arrow2's host-scalar coercion) that need the text
// form of a number or boolean without a full render pass.
func ScalarText(buf []byte, off int) (Kind, []byte, error) {
	h, err := decodeHeader(buf, off)
	if err != nil {
		return 0, nil, err
	}
	start := off + h.HeaderLen
	end := start + int(h.PayloadLen)
	return h.Kind, buf[start:end], nil
}

// ParseIntText parses an int/int5 payload's decimal or hex text into an
// int64, saturating rather than erroring on overflow (callers only use
// this to produce a best-effort host scalar; the canonical value lives
// in the rendered JSON text).
func ParseIntText(text []byte) int64 {
	s := string(text)
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return n
	}
	if n, err := strconv.ParseUint(s, 0, 64); err == nil {
		return int64(n)
	}
	return 0
}

// ParseFloatText parses a float/float5 payload's text into a float64.
func ParseFloatText(text []byte) float64 {
	f, _ := strconv.ParseFloat(string(text), 64)
	return f
}

// AsError reports whether err is (or wraps) a *bjson.Error, writing it
// through target on success. Thin wrapper over cockroachdb/errors.As so
// sqlfn does not need its own import of that package just for this.
func AsError(err error, target **Error) bool {
	return errors.As(err, target)
}

// NewErrorKind builds an *Error of the given kind with a message, for
// callers outside the package (sqlfn) that need to raise one of the
// kinds named in spec.md §7 without constructing the unexported fields
// directly.
func NewErrorKind(kind ErrorKind, msg string) error {
	return newErr(kind, -1, errors.New(msg))
}

// NewOwnedElement builds a single-element, freshly owned Parse directly
// from a kind and payload, bypassing the text parser. It is how
// ArgCoerce wraps a host scalar or raw-text value as BJSON without
// round-tripping through JSON text (§4.8).
func NewOwnedElement(kind Kind, payload []byte) *Parse {
	p := newOwned(len(payload) + 9)
	nb := encodeHeader(p.owned.Bytes(), kind, uint64(len(payload)))
	nb = append(nb, payload...)
	p.owned.SetBytes(nb)
	return p
}

// QuickValidate runs the cheap structural sanity check spec.md §4.8
// requires of a host blob argument before it is trusted as BJSON: the
// first byte names one of the 13 defined kinds, and the header's
// declared length accounts for the entire blob with nothing left over.
func QuickValidate(blob []byte) bool {
	h, err := decodeHeader(blob, 0)
	if err != nil {
		return false
	}
	return h.HeaderLen+int(h.PayloadLen) == len(blob)
}
