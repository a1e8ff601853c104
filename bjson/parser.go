// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

// ParseOptions configures the text-to-BJSON translator.
type ParseOptions struct {
	// MaxDepth caps container nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// parser holds the state threaded through one top-to-bottom translation
// of a JSON-5-superset text buffer into BJSON, mirroring the teacher's
// Decoder but operating over a materialized slice plus offset instead of
// a bufio.Reader (BJSON's input is never streamed -- see spec.md §1).
type parser struct {
	text     []byte
	out      *Parse
	maxDepth int
	depth    int
}

// ParseText translates input (strict RFC-8259 or the JSON-5 superset
// described in spec.md §1/§4) into a freshly owned BJSON [Parse].
func ParseText(input []byte, opts ParseOptions) (*Parse, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := newOwned(len(input) + 16)
	ps := &parser{text: input, out: p, maxDepth: maxDepth}

	sc := NewTextScanner(input)
	ws, err := sc.SkipWhitespace(0)
	if err != nil {
		return ps.fail(0, err)
	}
	p.nonStandard = p.nonStandard || ws.NonStandard

	i, err := ps.parseValue(ws.Next)
	if err != nil {
		return nil, err
	}

	ws, err = sc.SkipWhitespace(i)
	if err != nil {
		return ps.fail(i, err)
	}
	p.nonStandard = p.nonStandard || ws.NonStandard
	if ws.Next != len(input) {
		return ps.fail(ws.Next, errMalformedAtf(ws.Next, "unexpected trailing data"))
	}
	return p, nil
}

func (ps *parser) fail(offset int, err error) (*Parse, error) {
	ps.out.errOffset = offset
	return nil, err
}

// parseValue dispatches on the byte at text[i] and appends one element
// to ps.out. It returns the offset just past the value.
func (ps *parser) parseValue(i int) (int, error) {
	buf := ps.text
	if i >= len(buf) {
		return 0, errMalformedAtf(i, "unexpected end of input")
	}
	switch c := buf[i]; {
	case c == '{':
		return ps.parseObject(i)
	case c == '[':
		return ps.parseArray(i)
	case c == '"' || c == '\'':
		kind, payload, next, nonStd, err := scanString(buf, i)
		if err != nil {
			return 0, err
		}
		ps.out.nonStandard = ps.out.nonStandard || nonStd
		ps.appendElement(kind, payload)
		return next, nil
	case c == 't':
		if m, ok := matchKeyword(buf, i, "true"); ok {
			ps.appendElement(KindTrue, nil)
			return m, nil
		}
		return 0, errMalformedAtf(i, "invalid literal")
	case c == 'f':
		if m, ok := matchKeyword(buf, i, "false"); ok {
			ps.appendElement(KindFalse, nil)
			return m, nil
		}
		return 0, errMalformedAtf(i, "invalid literal")
	case c == 'n':
		if m, ok := matchKeyword(buf, i, "null"); ok {
			ps.appendElement(KindNull, nil)
			return m, nil
		}
		return ps.parseNumberOrExtension(i)
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return ps.parseNumberOrExtension(i)
	case c == 'I' || c == 'N' || c == 'Q' || c == 'S' ||
			c == 'i' || c == 'q' || c == 's':
		return ps.parseNumberOrExtension(i)
	default:
		return 0, errMalformedAtf(i, "unexpected character %q", c)
	}
}

func (ps *parser) parseNumberOrExtension(i int) (int, error) {
	kind, payload, next, nonStd, err := scanNumber(ps.text, i)
	if err != nil {
		return 0, err
	}
	ps.out.nonStandard = ps.out.nonStandard || nonStd
	ps.appendElement(kind, payload)
	return next, nil
}

func matchKeyword(buf []byte, i int, word string) (int, bool) {
	if i+len(word) > len(buf) {
		return 0, false
	}
	for k := 0; k < len(word); k++ {
		if buf[i+k] != word[k] {
			return 0, false
		}
	}
	end := i + len(word)
	if end < len(buf) && isIdentCont(buf[end]) {
		return 0, false
	}
	return end, true
}

// appendElement writes a fully-known (kind, payload) element to the
// output buffer using the narrowest header class.
func (ps *parser) appendElement(kind Kind, payload []byte) {
	b := ps.out.owned
	b.Reserve(len(payload) + 9)
	nb := encodeHeader(b.Bytes(), kind, uint64(len(payload)))
	nb = append(nb, payload...)
	b.SetBytes(nb)
}

// parseArray parses starting at text[i]=='['. It reserves a 5-byte
// container header, recurses for each child, then narrows the header to
// the minimal size class that fits the emitted body (§4.3 "Container
// emission").
func (ps *parser) parseArray(i int) (int, error) {
	ps.depth++
	if ps.depth > ps.maxDepth {
		return 0, errMalformedAtf(i, "maximum nesting depth exceeded")
	}
	defer func() { ps.depth-- }()

	b := ps.out.owned
	headerPos := b.Len()
	b.Append(reservedHeader(nil, KindArray))
	bodyStart := b.Len()

	sc := NewTextScanner(ps.text)
	j := i + 1
	ws, err := sc.SkipWhitespace(j)
	if err != nil {
		return 0, err
	}
	ps.out.nonStandard = ps.out.nonStandard || ws.NonStandard
	j = ws.Next

	if j < len(ps.text) && ps.text[j] == ']' {
		ps.shrinkContainerHeader(headerPos, bodyStart, KindArray)
		return j + 1, nil
	}

	for {
		j, err = ps.parseValue(j)
		if err != nil {
			return 0, err
		}
		ws, err = sc.SkipWhitespace(j)
		if err != nil {
			return 0, err
		}
		ps.out.nonStandard = ps.out.nonStandard || ws.NonStandard
		j = ws.Next
		if j >= len(ps.text) {
			return 0, errMalformedAtf(j, "unterminated array")
		}
		switch ps.text[j] {
		case ',':
			j++
			ws, err = sc.SkipWhitespace(j)
			if err != nil {
				return 0, err
			}
			ps.out.nonStandard = ps.out.nonStandard || ws.NonStandard
			j = ws.Next
			if j < len(ps.text) && ps.text[j] == ']' {
				// Trailing comma: JSON-5.
				ps.out.nonStandard = true
				ps.shrinkContainerHeader(headerPos, bodyStart, KindArray)
				return j + 1, nil
			}
			continue
		case ']':
			ps.shrinkContainerHeader(headerPos, bodyStart, KindArray)
			return j + 1, nil
		default:
			return 0, errMalformedAtf(j, "expected ',' or ']'")
		}
	}
}

// parseObject parses starting at text[i]=='{'.
func (ps *parser) parseObject(i int) (int, error) {
	ps.depth++
	if ps.depth > ps.maxDepth {
		return 0, errMalformedAtf(i, "maximum nesting depth exceeded")
	}
	defer func() { ps.depth-- }()

	b := ps.out.owned
	headerPos := b.Len()
	b.Append(reservedHeader(nil, KindObject))
	bodyStart := b.Len()

	sc := NewTextScanner(ps.text)
	j := i + 1
	ws, err := sc.SkipWhitespace(j)
	if err != nil {
		return 0, err
	}
	ps.out.nonStandard = ps.out.nonStandard || ws.NonStandard
	j = ws.Next

	if j < len(ps.text) && ps.text[j] == '}' {
		ps.shrinkContainerHeader(headerPos, bodyStart, KindObject)
		return j + 1, nil
	}

	for {
		j, err = ps.parseLabel(j)
		if err != nil {
			return 0, err
		}
		ws, err = sc.SkipWhitespace(j)
		if err != nil {
			return 0, err
		}
		ps.out.nonStandard = ps.out.nonStandard || ws.NonStandard
		j = ws.Next
		if j >= len(ps.text) || ps.text[j] != ':' {
			return 0, errMalformedAtf(j, "expected ':'")
		}
		j++
		ws, err = sc.SkipWhitespace(j)
		if err != nil {
			return 0, err
		}
		ps.out.nonStandard = ps.out.nonStandard || ws.NonStandard
		j = ws.Next

		j, err = ps.parseValue(j)
		if err != nil {
			return 0, err
		}
		ws, err = sc.SkipWhitespace(j)
		if err != nil {
			return 0, err
		}
		ps.out.nonStandard = ps.out.nonStandard || ws.NonStandard
		j = ws.Next
		if j >= len(ps.text) {
			return 0, errMalformedAtf(j, "unterminated object")
		}
		switch ps.text[j] {
		case ',':
			j++
			ws, err = sc.SkipWhitespace(j)
			if err != nil {
				return 0, err
			}
			ps.out.nonStandard = ps.out.nonStandard || ws.NonStandard
			j = ws.Next
			if j < len(ps.text) && ps.text[j] == '}' {
				ps.out.nonStandard = true
				ps.shrinkContainerHeader(headerPos, bodyStart, KindObject)
				return j + 1, nil
			}
			continue
		case '}':
			ps.shrinkContainerHeader(headerPos, bodyStart, KindObject)
			return j + 1, nil
		default:
			return 0, errMalformedAtf(j, "expected ',' or '}'")
		}
	}
}

// parseLabel parses one object key, which may be a double-quoted
// string, a JSON-5 single-quoted string, or a JSON-5 bare identifier.
func (ps *parser) parseLabel(i int) (int, error) {
	if i >= len(ps.text) {
		return 0, errMalformedAtf(i, "expected object key")
	}
	c := ps.text[i]
	if c == '"' || c == '\'' {
		kind, payload, next, nonStd, err := scanString(ps.text, i)
		if err != nil {
			return 0, err
		}
		ps.out.nonStandard = ps.out.nonStandard || nonStd
		ps.appendElement(kind, payload)
		return next, nil
	}
	if kind, payload, next, ok := scanUnquotedLabel(ps.text, i); ok {
		ps.out.nonStandard = true
		ps.appendElement(kind, payload)
		return next, nil
	}
	return 0, errMalformedAtf(i, "expected object key")
}

// shrinkContainerHeader rewrites the 5-byte placeholder header at
// headerPos to the minimal size class that fits the body now occupying
// [bodyStart, current end), sliding the body left if the header
// narrowed (§4.3 "Container emission").
func (ps *parser) shrinkContainerHeader(headerPos, bodyStart int, kind Kind) {
	b := ps.out.owned
	bodyLen := b.Len() - bodyStart
	buf := b.Bytes()
	oldHeaderLen := bodyStart - headerPos
	newHeader := encodeHeader(nil, kind, uint64(bodyLen))
	if len(newHeader) == oldHeaderLen {
		copy(buf[headerPos:], newHeader)
		return
	}
	body := append([]byte(nil), buf[bodyStart:b.Len()]...)
	nb := append(buf[:headerPos], newHeader...)
	nb = append(nb, body...)
	b.SetBytes(nb)
}
