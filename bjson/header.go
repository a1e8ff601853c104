// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

import "encoding/binary"

// Kind is the closed set of BJSON element types. It occupies the low
// nibble of an element's tag byte.
type Kind byte

const (
	KindNull Kind = iota
	KindTrue
	KindFalse
	KindInt
	KindInt5
	KindFloat
	KindFloat5
	KindText
	KindTextJ
	KindText5
	KindTextRaw
	KindArray
	KindObject

	kindReservedLo = 13
	kindReservedHi = 15
)

var kindNames = [...]string{
	KindNull:    "null",
	KindTrue:    "true",
	KindFalse:   "false",
	KindInt:     "int",
	KindInt5:    "int5",
	KindFloat:   "float",
	KindFloat5:  "float5",
	KindText:    "text",
	KindTextJ:   "textj",
	KindText5:   "text5",
	KindTextRaw: "textraw",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsText reports whether k is one of the four text kinds.
func (k Kind) IsText() bool {
	return k == KindText || k == KindTextJ || k == KindText5 || k == KindTextRaw
}

// IsContainer reports whether k is array or object.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// Valid reports whether k is one of the thirteen defined kinds (the
// reserved nibble values 13..15 are never valid on input).
func (k Kind) Valid() bool {
	return k < kindReservedLo
}

// sizeClass is the high nibble of a tag byte. It selects the header
// length and how the payload size is encoded.
type sizeClass byte

const (
	classInline0 sizeClass = iota // values 0..11 stored directly in the nibble
	// classInline covers 0..11; classes below are the encoded widths.
	class1Byte  sizeClass = 12
	class2Byte  sizeClass = 13
	class4Byte  sizeClass = 14
	class8Byte  sizeClass = 15 // reserved; not emitted by this encoder
	maxInline             = 11
)

// headerLen returns the number of header bytes for a given size class.
func headerLen(c sizeClass) int {
	switch {
	case c <= maxInline:
		return 1
	case c == class1Byte:
		return 2
	case c == class2Byte:
		return 3
	case c == class4Byte:
		return 5
	default:
		return 9
	}
}

// classFor picks the narrowest size class able to hold payloadLen.
func classFor(payloadLen uint64) sizeClass {
	switch {
	case payloadLen <= maxInline:
		return sizeClass(payloadLen)
	case payloadLen <= 0xFF:
		return class1Byte
	case payloadLen <= 0xFFFF:
		return class2Byte
	case payloadLen <= 0xFFFFFFFF:
		return class4Byte
	default:
		return class8Byte
	}
}

// encodeHeader appends a tag byte (and any size-class-specific extra
// bytes) for kind/payloadLen to out, preferring the narrowest class that
// fits. It returns the extended slice.
func encodeHeader(out []byte, kind Kind, payloadLen uint64) []byte {
	c := classFor(payloadLen)
	tag := byte(c)<<4 | byte(kind)
	out = append(out, tag)
	switch c {
	case class1Byte:
		out = append(out, byte(payloadLen))
	case class2Byte:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(payloadLen))
		out = append(out, b[:]...)
	case class4Byte:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(payloadLen))
		out = append(out, b[:]...)
	case class8Byte:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], payloadLen)
		out = append(out, b[:]...)
	}
	return out
}

// reservedHeader appends the widest (5-byte, class 14) header for kind,
// with a placeholder zero length. Callers use this when a container's
// total payload size is not known until its body has been emitted, then
// call shrinkHeader once the true size is known (§4.3).
func reservedHeader(out []byte, kind Kind) []byte {
	tag := byte(class4Byte)<<4 | byte(kind)
	out = append(out, tag)
	var b [4]byte
	out = append(out, b[:]...)
	return out
}

// overwriteKind rewrites the kind nibble of the tag byte at pos,
// preserving the size class. Used when a deferred kind becomes known
// only after inspecting what follows (mirrors the teacher's
// overwriteTypeByte).
func overwriteKind(buf []byte, pos int, kind Kind) {
	c := sizeClass(buf[pos] >> 4)
	buf[pos] = byte(c)<<4 | byte(kind)
}

// decodedHeader describes a parsed element header.
type decodedHeader struct {
	Kind       Kind
	HeaderLen  int
	PayloadLen uint64
}

// decodeHeader parses the element header at buf[off:]. It validates
// that header+payload does not run past buf's end, treating any
// overflow as malformed input.
func decodeHeader(buf []byte, off int) (decodedHeader, error) {
	if off >= len(buf) {
		return decodedHeader{}, errMalformedf("truncated header at offset %d", off)
	}
	tag := buf[off]
	kind := Kind(tag & 0x0F)
	if !kind.Valid() {
		return decodedHeader{}, errMalformedf("reserved element kind %d at offset %d", tag&0x0F, off)
	}
	c := sizeClass(tag >> 4)
	hl := headerLen(c)
	if off+hl > len(buf) {
		return decodedHeader{}, errMalformedf("truncated header at offset %d", off)
	}
	var payloadLen uint64
	switch {
	case c <= maxInline:
		payloadLen = uint64(c)
	case c == class1Byte:
		payloadLen = uint64(buf[off+1])
	case c == class2Byte:
		payloadLen = uint64(binary.BigEndian.Uint16(buf[off+1:]))
	case c == class4Byte:
		payloadLen = uint64(binary.BigEndian.Uint32(buf[off+1:]))
	default:
		payloadLen = binary.BigEndian.Uint64(buf[off+1:])
	}
	end := uint64(off+hl) + payloadLen
	if end > uint64(len(buf)) {
		return decodedHeader{}, errMalformedf("element at offset %d overruns buffer (payload %d bytes)", off, payloadLen)
	}
	return decodedHeader{Kind: kind, HeaderLen: hl, PayloadLen: payloadLen}, nil
}

// elementEnd returns the offset just past the element starting at off.
func elementEnd(buf []byte, off int) (int, error) {
	h, err := decodeHeader(buf, off)
	if err != nil {
		return 0, err
	}
	return off + h.HeaderLen + int(h.PayloadLen), nil
}
