// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

// TextScanner recognizes the JSON-5 superset's whitespace, comments, and
// string-escape vocabulary over a materialized input buffer (spec.md
// never streams input — §1 Non-goals). Its methods take and return byte
// offsets into that buffer rather than consuming a bufio.Reader the way
// the teacher's Decoder does, since BJSON has no incremental-parsing
// requirement to support.
type TextScanner struct {
	buf []byte
}

// NewTextScanner wraps buf for scanning.
func NewTextScanner(buf []byte) *TextScanner { return &TextScanner{buf: buf} }

// strictWS is the five ASCII whitespace code points plus space.
func isStrictWS(c byte) bool {
	switch c {
	case '\t', '\n', '\v', '\f', '\r', ' ':
		return true
	}
	return false
}

// extendedWS byte sequences (§4.2 regime 2), keyed by first byte for a
// quick reject.
var extendedWSSeqs = [][]byte{
	{0xC2, 0xA0},       // U+00A0 NBSP
	{0xE1, 0x9A, 0x80}, // U+1680 Ogham space mark
	{0xE2, 0x80, 0x80}, // U+2000
	{0xE2, 0x80, 0x81}, // U+2001
	{0xE2, 0x80, 0x82}, // U+2002
	{0xE2, 0x80, 0x83}, // U+2003
	{0xE2, 0x80, 0x84}, // U+2004
	{0xE2, 0x80, 0x85}, // U+2005
	{0xE2, 0x80, 0x86}, // U+2006
	{0xE2, 0x80, 0x87}, // U+2007
	{0xE2, 0x80, 0x88}, // U+2008
	{0xE2, 0x80, 0x89}, // U+2009
	{0xE2, 0x80, 0x8A}, // U+200A
	{0xE2, 0x80, 0xA8}, // U+2028 line separator
	{0xE2, 0x80, 0xA9}, // U+2029 paragraph separator
	{0xE2, 0x80, 0xAF}, // U+202F narrow NBSP
	{0xE2, 0x81, 0x9F}, // U+205F medium math space
	{0xE3, 0x80, 0x80}, // U+3000 ideographic space
	{0xEF, 0xBB, 0xBF}, // U+FEFF BOM
}

// U+2028 and U+2029, used by comment and string-escape handling as
// line terminators in addition to LF/CR.
var (
	lineSep = []byte{0xE2, 0x80, 0xA8}
	paraSep = []byte{0xE2, 0x80, 0xA9}
)

func matchExtendedWS(buf []byte, i int) int {
	for _, seq := range extendedWSSeqs {
		if hasPrefixAt(buf, i, seq) {
			return len(seq)
		}
	}
	return 0
}

func hasPrefixAt(buf []byte, i int, seq []byte) bool {
	if i+len(seq) > len(buf) {
		return false
	}
	for k, b := range seq {
		if buf[i+k] != b {
			return false
		}
	}
	return true
}

// skipResult reports what SkipWhitespace consumed.
type skipResult struct {
	Next        int
	NonStandard bool
}

// SkipWhitespace advances past any run of strict whitespace, extended
// whitespace, and `/*...*/` or `//...` comments starting at i. It
// returns the offset of the first non-whitespace, non-comment byte and
// whether anything non-standard (extended whitespace or a comment) was
// consumed. An unterminated block comment is a syntax error only once
// EOF is actually reached (§4.2).
func (s *TextScanner) SkipWhitespace(i int) (skipResult, error) {
	buf := s.buf
	nonStd := false
	for i < len(buf) {
		c := buf[i]
		if isStrictWS(c) {
			i++
			continue
		}
		if n := matchExtendedWS(buf, i); n > 0 {
			i += n
			nonStd = true
			continue
		}
		if c == '/' && i+1 < len(buf) && buf[i+1] == '*' {
			nonStd = true
			end := i + 2
			closed := false
			for end+1 < len(buf) {
				if buf[end] == '*' && buf[end+1] == '/' {
					end += 2
					closed = true
					break
				}
				end++
			}
			if !closed {
				return skipResult{}, errMalformedAtf(i, "unterminated block comment")
			}
			i = end
			continue
		}
		if c == '/' && i+1 < len(buf) && buf[i+1] == '/' {
			nonStd = true
			i += 2
			for i < len(buf) {
				if buf[i] == '\n' {
					break
				}
				if hasPrefixAt(buf, i, lineSep) || hasPrefixAt(buf, i, paraSep) {
					break
				}
				i++
			}
			continue
		}
		break
	}
	return skipResult{Next: i, NonStandard: nonStd}, nil
}

// escapeClass classifies a recognized string escape sequence starting
// right after the backslash at buf[i].
type escapeClass int

const (
	escNone       escapeClass = iota
	escCanonical              // \" \\ \/ \b \f \n \r \t \uXXXX
	escExtension              // \' \0 \v \xHH, or \ + line terminator
)

// classifyEscape inspects buf[i] (the byte right after a backslash) and
// returns its class and the total length of the escape sequence
// (including the backslash).
func classifyEscape(buf []byte, i int) (escapeClass, int) {
	if i >= len(buf) {
		return escNone, 0
	}
	switch buf[i] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return escCanonical, 2
	case 'u':
		if i+4 < len(buf) && isHex4(buf[i+1:i+5]) {
			return escCanonical, 6
		}
		return escNone, 0
	case '\'', '0', 'v':
		return escExtension, 2
	case 'x':
		if i+2 < len(buf) && isHexDigit(buf[i+1]) && isHexDigit(buf[i+2]) {
			return escExtension, 4
		}
		return escNone, 0
	case '\r':
		if i+1 < len(buf) && buf[i+1] == '\n' {
			return escExtension, 3
		}
		return escExtension, 2
	case '\n':
		return escExtension, 2
	}
	if hasPrefixAt(buf, i, lineSep) || hasPrefixAt(buf, i, paraSep) {
		return escExtension, 4
	}
	return escNone, 0
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isHex4(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	for _, c := range b[:4] {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}
