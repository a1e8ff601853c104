// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

// Opcode selects an editor operation (§4.5 "Editor opcodes").
type Opcode int

const (
	// OpDelete removes the element; if the parent is an object, its
	// label is removed too. No-op if the path does not resolve.
	OpDelete Opcode = iota
	// OpReplace overwrites an existing element. No-op if missing.
	OpReplace
	// OpInsert creates a missing path. No-op if it already exists.
	OpInsert
	// OpSet overwrites if present, or creates the path if missing.
	OpSet
)

// Apply performs one edit of kind op at path against p, which must
// either already be editable or will be promoted to an owned buffer
// (§4.5 "Editable escalation"). newElem is a complete, already-encoded
// BJSON element (header+payload) used by REPLACE/SET/INSERT; it is
// ignored by DELETE.
func (p *Parse) Apply(path *Path, op Opcode, newElem []byte) error {
	p.MakeEditable(len(newElem) + 32)

	if len(path.Steps) == 0 {
		switch op {
		case OpDelete:
			return nil
		case OpReplace, OpSet, OpInsert:
			p.owned.SetBytes(append([]byte(nil), newElem...))
			return nil
		}
		return nil
	}

	ancestors := []int{0}
	off := 0
	labelOffAtLeaf := -1
	missingAt := -1

	for idx, step := range path.Steps {
		buf := p.owned.Bytes()
		h, err := decodeHeader(buf, off)
		if err != nil {
			return err
		}
		next, found, labelOff, err := navigateStepWithLabel(buf, off, h, step)
		if err != nil {
			return err
		}
		if !found {
			missingAt = idx
			break
		}
		off = next
		labelOffAtLeaf = labelOff
		if idx < len(path.Steps)-1 {
			ancestors = append(ancestors, off)
		}
	}

	if missingAt == -1 {
		switch op {
		case OpInsert:
			return nil
		case OpDelete:
			isKey := path.Steps[len(path.Steps)-1].IsKey
			return p.deleteElement(ancestors, off, labelOffAtLeaf, isKey)
		case OpReplace, OpSet:
			return p.replaceElement(ancestors, off, newElem)
		}
		return nil
	}

	switch op {
	case OpDelete, OpReplace:
		return nil
	case OpInsert, OpSet:
		return p.createMissing(ancestors, path.Steps[missingAt:], newElem)
	}
	return nil
}

// navigateStepWithLabel behaves like navigateStep but additionally
// reports the offset of the matched key's label element, so a DELETE
// on an object member can remove the label along with the value.
func navigateStepWithLabel(buf []byte, off int, h decodedHeader, step PathStep) (next int, found bool, labelOff int, err error) {
	payloadStart := off + h.HeaderLen
	payloadEnd := payloadStart + int(h.PayloadLen)

	if step.IsKey {
		if h.Kind != KindObject {
			return 0, false, -1, nil
		}
		i := payloadStart
		for i < payloadEnd {
			lh, derr := decodeHeader(buf, i)
			if derr != nil {
				return 0, false, -1, derr
			}
			if !lh.Kind.IsText() {
				return 0, false, -1, errMalformedAtf(i, "object label is not a text element")
			}
			labelStart := i + lh.HeaderLen
			labelEnd := labelStart + int(lh.PayloadLen)
			vOff, eerr := elementEnd(buf, labelEnd)
			if eerr != nil {
				return 0, false, -1, eerr
			}
			if bytesEqual(buf[labelStart:labelEnd], step.Label) {
				return labelEnd, true, i, nil
			}
			i = vOff
		}
		return 0, false, -1, nil
	}

	if h.Kind != KindArray {
		return 0, false, -1, nil
	}
	if step.IsLast {
		o, f, err := navigateArrayFromEnd(buf, payloadStart, payloadEnd, step.EndDelta)
		return o, f, -1, err
	}
	if step.Index < 0 {
		return 0, false, -1, nil
	}
	i := payloadStart
	n := 0
	for i < payloadEnd {
		if n == step.Index {
			return i, true, -1, nil
		}
		next, err := elementEnd(buf, i)
		if err != nil {
			return 0, false, -1, err
		}
		i = next
		n++
	}
	return 0, false, -1, nil
}

// deleteElement removes the element at targetOff (and its preceding
// label at labelOff, if isKey and present), then propagates the size
// delta up the ancestor chain (§4.5 "Size propagation").
func (p *Parse) deleteElement(ancestors []int, targetOff, labelOff int, isKey bool) error {
	buf := p.owned.Bytes()
	targetEnd, err := elementEnd(buf, targetOff)
	if err != nil {
		return err
	}
	removeStart := targetOff
	if isKey && labelOff >= 0 {
		removeStart = labelOff
	}
	d := p.owned.Splice(removeStart, targetEnd, nil)
	p.propagateDelta(ancestors, d)
	return nil
}

// replaceElement overwrites the element at targetOff with newElem and
// propagates the resulting size delta.
func (p *Parse) replaceElement(ancestors []int, targetOff int, newElem []byte) error {
	buf := p.owned.Bytes()
	targetEnd, err := elementEnd(buf, targetOff)
	if err != nil {
		return err
	}
	d := p.owned.Splice(targetOff, targetEnd, newElem)
	p.propagateDelta(ancestors, d)
	return nil
}

// createMissing synthesizes empty containers for the remainder of the
// path (an object for a ".name" step, an array for a "[...]" step), then
// splices the synthesized subtree into the tail of the innermost
// existing container's body (§4.5 "Create-missing semantics").
func (p *Parse) createMissing(ancestors []int, steps []PathStep, newElem []byte) error {
	containerOff := ancestors[len(ancestors)-1]
	buf := p.owned.Bytes()
	h, err := decodeHeader(buf, containerOff)
	if err != nil {
		return err
	}
	if !h.Kind.IsContainer() {
		return errMalformedAtf(containerOff, "cannot create a missing path inside a non-container element")
	}
	if steps[0].IsKey && h.Kind != KindObject {
		return errMalformedAtf(containerOff, "path expects an object but found %v", h.Kind)
	}
	if !steps[0].IsKey && h.Kind != KindArray {
		return errMalformedAtf(containerOff, "path expects an array but found %v", h.Kind)
	}

	entry := buildEntry(steps, newElem)
	insertPos := containerOff + h.HeaderLen + int(h.PayloadLen)
	d := p.owned.Splice(insertPos, insertPos, entry)
	p.propagateDelta(ancestors, d)
	return nil
}

// buildEntry constructs the bytes to append into the parent named by
// steps[0]: a (label, value) pair for a key step, or a bare value for
// an array step. When more than one step remains, value is itself a
// freshly synthesized container holding the recursively built entry for
// steps[1:].
func buildEntry(steps []PathStep, newElem []byte) []byte {
	var value []byte
	if len(steps) == 1 {
		value = newElem
	} else {
		childKind := KindArray
		if steps[1].IsKey {
			childKind = KindObject
		}
		childEntry := buildEntry(steps[1:], newElem)
		value = encodeHeader(nil, childKind, uint64(len(childEntry)))
		value = append(value, childEntry...)
	}
	if steps[0].IsKey {
		label := encodeHeader(nil, KindText, uint64(len(steps[0].Label)))
		label = append(label, steps[0].Label...)
		return append(label, value...)
	}
	return value
}

// propagateDelta walks ancestors from innermost to outermost, widening
// or narrowing each container's header as needed to reflect delta, then
// folding any header-width change into the delta carried to the next
// (outer) ancestor. This is the "single up-walk" spec.md §4.5 requires,
// not a whole-buffer re-encode.
func (p *Parse) propagateDelta(ancestors []int, delta int) {
	if delta == 0 {
		return
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		contOff := ancestors[i]
		buf := p.owned.Bytes()
		h, err := decodeHeader(buf, contOff)
		if err != nil {
			return
		}
		newPayloadLen := int(h.PayloadLen) + delta
		newHeader := encodeHeader(nil, h.Kind, uint64(newPayloadLen))
		if len(newHeader) == h.HeaderLen {
			copy(buf[contOff:], newHeader)
			continue
		}
		hd := p.owned.Splice(contOff, contOff+h.HeaderLen, newHeader)
		delta += hd
	}
	p.delta = delta
}
