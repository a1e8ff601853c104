// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

// MergePatch applies an RFC 7396 JSON Merge Patch directly to a BJSON
// tree (§4.6). target must be editable (or becomes so); patch is read
// only and may alias a read-only view. The result replaces target's
// contents in place.
func MergePatch(target *Parse, patchBuf []byte) error {
	target.MakeEditable(len(patchBuf))
	buf := target.owned.Bytes()
	result, err := mergeAt(buf, 0, patchBuf, 0)
	if err != nil {
		return err
	}
	target.owned.SetBytes(result)
	return nil
}

// mergeAt implements the four-step RFC 7396 algorithm:
//
//  1. if patch is not an object, the result is patch itself;
//  2. if target is not an object, treat it as an empty object first;
//  3. for each (name, value) member of patch: if value is null, remove
//     name from the result; else recursively merge-patch the existing
//     member (or merge against null if absent) and set the result;
//  4. members of target not named in patch are kept unchanged.
func mergeAt(targetBuf []byte, targetOff int, patchBuf []byte, patchOff int) ([]byte, error) {
	ph, err := decodeHeader(patchBuf, patchOff)
	if err != nil {
		return nil, err
	}
	if ph.Kind != KindObject {
		return cloneElement(patchBuf, patchOff)
	}

	th, err := decodeHeader(targetBuf, targetOff)
	if err != nil {
		return nil, err
	}
	var members []labelValue
	if th.Kind == KindObject {
		members, err = readMembers(targetBuf, targetOff, th)
		if err != nil {
			return nil, err
		}
	}

	pStart := patchOff + ph.HeaderLen
	pEnd := pStart + int(ph.PayloadLen)
	i := pStart
	for i < pEnd {
		lh, err := decodeHeader(patchBuf, i)
		if err != nil {
			return nil, err
		}
		if !lh.Kind.IsText() {
			return nil, errMalformedAtf(i, "object label is not a text element")
		}
		labelStart := i + lh.HeaderLen
		labelEnd := labelStart + int(lh.PayloadLen)
		label := patchBuf[labelStart:labelEnd]
		vOff := labelEnd
		vEnd, err := elementEnd(patchBuf, vOff)
		if err != nil {
			return nil, err
		}

		vh, err := decodeHeader(patchBuf, vOff)
		if err != nil {
			return nil, err
		}
		idx := findMember(members, label, lh.Kind)
		if vh.Kind == KindNull {
			if idx >= 0 {
				members = append(members[:idx], members[idx+1:]...)
			}
		} else {
			var existingOff = -1
			if idx >= 0 {
				existingOff = members[idx].valueOff
			}
			var merged []byte
			if existingOff >= 0 {
				merged, err = mergeAt(targetBuf, existingOff, patchBuf, vOff)
			} else {
				merged, err = mergeAgainstNull(patchBuf, vOff)
			}
			if err != nil {
				return nil, err
			}
			lv := labelValue{label: append([]byte(nil), label...), labelKind: lh.Kind, value: merged}
			if idx >= 0 {
				members[idx] = lv
			} else {
				members = append(members, lv)
			}
		}
		i = vEnd
	}

	return encodeObject(members)
}

// mergeAgainstNull merges patchBuf[patchOff] against an implicit empty
// target (RFC 7396 step 3's "absent" case, which the spec text expresses
// as merging against null).
func mergeAgainstNull(patchBuf []byte, patchOff int) ([]byte, error) {
	h, err := decodeHeader(patchBuf, patchOff)
	if err != nil {
		return nil, err
	}
	if h.Kind != KindObject {
		return cloneElement(patchBuf, patchOff)
	}
	emptyObj := encodeHeader(nil, KindObject, 0)
	return mergeAt(emptyObj, 0, patchBuf, patchOff)
}

type labelValue struct {
	label     []byte
	labelKind Kind // original kind of the label element, preserved on re-encode (§3)
	valueOff  int  // offset into the *original* target buffer; -1 if value is synthesized
	value     []byte
}

// readMembers decodes every (label, value) pair of the object at off
// into a slice preserving target's original member order (a merge patch
// does not otherwise reorder members -- see spec.md §4.6 edge cases).
func readMembers(buf []byte, off int, h decodedHeader) ([]labelValue, error) {
	start := off + h.HeaderLen
	end := start + int(h.PayloadLen)
	var out []labelValue
	i := start
	for i < end {
		lh, err := decodeHeader(buf, i)
		if err != nil {
			return nil, err
		}
		if !lh.Kind.IsText() {
			return nil, errMalformedAtf(i, "object label is not a text element")
		}
		labelStart := i + lh.HeaderLen
		labelEnd := labelStart + int(lh.PayloadLen)
		vOff := labelEnd
		vEnd, err := elementEnd(buf, vOff)
		if err != nil {
			return nil, err
		}
		out = append(out, labelValue{
			label:     buf[labelStart:labelEnd],
			labelKind: lh.Kind,
			valueOff:  vOff,
		})
		i = vEnd
	}
	// Fill in .value lazily: callers that don't replace a member render
	// it straight from valueOff via encodeObject.
	for k := range out {
		v, err := cloneElement(buf, out[k].valueOff)
		if err != nil {
			return nil, err
		}
		out[k].value = v
	}
	return out, nil
}

// findMember locates the member named label (of kind labelKind) among
// members. Same-kind labels compare as raw bytes; cross-kind labels
// compare by canonical rendering, since two different text kinds can
// carry the same logical string (§4.6 step 3).
func findMember(members []labelValue, label []byte, labelKind Kind) int {
	for i, m := range members {
		if m.labelKind == labelKind {
			if bytesEqual(m.label, label) {
				return i
			}
			continue
		}
		same, err := labelsEqualByRender(m.label, m.labelKind, label, labelKind)
		if err == nil && same {
			return i
		}
	}
	return -1
}

// labelsEqualByRender compares two object labels of possibly different
// kinds by rendering each to its canonical RFC-8259 text and comparing
// the result, rather than their raw (kind-specific) payload bytes.
func labelsEqualByRender(aPayload []byte, aKind Kind, bPayload []byte, bKind Kind) (bool, error) {
	a := renderLabelElement(aPayload, aKind)
	b := renderLabelElement(bPayload, bKind)
	ar, err := RenderElement(a, 0)
	if err != nil {
		return false, err
	}
	br, err := RenderElement(b, 0)
	if err != nil {
		return false, err
	}
	return bytesEqual(ar, br), nil
}

// renderLabelElement synthesizes a standalone element (header+payload)
// from a label's raw payload and kind, so it can be passed to
// RenderElement on its own.
func renderLabelElement(payload []byte, kind Kind) []byte {
	return append(encodeHeader(nil, kind, uint64(len(payload))), payload...)
}

// cloneElement copies the complete, self-contained bytes of the element
// at off (header plus payload, including any nested structure).
func cloneElement(buf []byte, off int) ([]byte, error) {
	end, err := elementEnd(buf, off)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), buf[off:end]...), nil
}

// encodeObject emits a fresh object element from members, each of whose
// .value already holds that member's complete encoded bytes.
func encodeObject(members []labelValue) ([]byte, error) {
	var body []byte
	for _, m := range members {
		body = encodeHeader(body, m.labelKind, uint64(len(m.label)))
		body = append(body, m.label...)
		body = append(body, m.value...)
	}
	return append(encodeHeader(nil, KindObject, uint64(len(body))), body...), nil
}
