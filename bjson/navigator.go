// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

// Navigate resolves path against the element at root within buf. It
// returns the offset of the matched element and true, or (0, false) if
// the path is syntactically fine but does not resolve (NOT_FOUND, §4.5
// "Navigator contract"). A malformed-BJSON encounter returns a
// *Error{Kind: KindMalformed}.
func Navigate(buf []byte, root int, path *Path) (int, bool, error) {
	off := root
	for _, step := range path.Steps {
		h, err := decodeHeader(buf, off)
		if err != nil {
			return 0, false, err
		}
		next, found, err := navigateStep(buf, off, h, step)
		if err != nil {
			return 0, false, err
		}
		if !found {
			return 0, false, nil
		}
		off = next
	}
	return off, true, nil
}

func navigateStep(buf []byte, off int, h decodedHeader, step PathStep) (int, bool, error) {
	payloadStart := off + h.HeaderLen
	payloadEnd := payloadStart + int(h.PayloadLen)

	if step.IsKey {
		if h.Kind != KindObject {
			return 0, false, nil
		}
		i := payloadStart
		for i < payloadEnd {
			lh, err := decodeHeader(buf, i)
			if err != nil {
				return 0, false, err
			}
			if !lh.Kind.IsText() {
				return 0, false, errMalformedAtf(i, "object label is not a text element")
			}
			labelStart := i + lh.HeaderLen
			labelEnd := labelStart + int(lh.PayloadLen)
			vOff, err := elementEnd(buf, labelEnd)
			if err != nil {
				return 0, false, err
			}
			if bytesEqual(buf[labelStart:labelEnd], step.Label) {
				return labelEnd, true, nil
			}
			i = vOff
		}
		return 0, false, nil
	}

	// Array index step (Index, or IsLast/FromEnd).
	if h.Kind != KindArray {
		return 0, false, nil
	}
	if step.IsLast {
		return navigateArrayFromEnd(buf, payloadStart, payloadEnd, step.EndDelta)
	}
	if step.Index < 0 {
		return 0, false, nil
	}
	i := payloadStart
	n := 0
	for i < payloadEnd {
		if n == step.Index {
			return i, true, nil
		}
		next, err := elementEnd(buf, i)
		if err != nil {
			return 0, false, err
		}
		i = next
		n++
	}
	return 0, false, nil
}

func navigateArrayFromEnd(buf []byte, start, end, delta int) (int, bool, error) {
	var offsets []int
	i := start
	for i < end {
		offsets = append(offsets, i)
		next, err := elementEnd(buf, i)
		if err != nil {
			return 0, false, err
		}
		i = next
	}
	idx := len(offsets) - 1 - delta
	if idx < 0 || idx >= len(offsets) {
		return 0, false, nil
	}
	return offsets[idx], true, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ArrayLength returns the number of elements in the array at off, or 0
// if off is not an array (§6.3 array_length).
func ArrayLength(buf []byte, off int) (int, error) {
	h, err := decodeHeader(buf, off)
	if err != nil {
		return 0, err
	}
	if h.Kind != KindArray {
		return 0, nil
	}
	start := off + h.HeaderLen
	end := start + int(h.PayloadLen)
	n := 0
	for start < end {
		next, err := elementEnd(buf, start)
		if err != nil {
			return 0, err
		}
		start = next
		n++
	}
	return n, nil
}
