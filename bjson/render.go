// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

import (
	"fmt"
	"math/big"
)

// Render walks p's BJSON tree and writes canonical RFC-8259 text,
// regardless of the dialect the value was originally parsed from
// (§4.4). It is the inverse of [ParseText] up to the kind-collapsing
// rules named in spec.md §8 property 2.
func Render(p *Parse) ([]byte, error) {
	buf := p.Bytes()
	var out []byte
	_, err := renderAt(buf, 0, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RenderElement renders just the element at off within buf (used by
// navigation/extraction, where the element of interest is not
// necessarily the whole buffer).
func RenderElement(buf []byte, off int) ([]byte, error) {
	var out []byte
	_, err := renderAt(buf, off, &out)
	return out, err
}

func renderAt(buf []byte, off int, out *[]byte) (int, error) {
	h, err := decodeHeader(buf, off)
	if err != nil {
		return 0, err
	}
	payloadStart := off + h.HeaderLen
	payloadEnd := payloadStart + int(h.PayloadLen)
	payload := buf[payloadStart:payloadEnd]

	switch h.Kind {
	case KindNull:
		*out = append(*out, "null"...)
	case KindTrue:
		*out = append(*out, "true"...)
	case KindFalse:
		*out = append(*out, "false"...)
	case KindInt, KindFloat:
		*out = append(*out, payload...)
	case KindInt5:
		renderInt5(payload, out)
	case KindFloat5:
		renderFloat5(payload, out)
	case KindText:
		*out = append(*out, '"')
		*out = append(*out, payload...)
		*out = append(*out, '"')
	case KindTextJ:
		*out = append(*out, '"')
		*out = append(*out, payload...)
		*out = append(*out, '"')
	case KindText5:
		*out = append(*out, '"')
		renderText5(payload, out)
		*out = append(*out, '"')
	case KindTextRaw:
		*out = append(*out, '"')
		renderTextRaw(payload, out)
		*out = append(*out, '"')
	case KindArray:
		*out = append(*out, '[')
		i := payloadStart
		first := true
		for i < payloadEnd {
			if !first {
				*out = append(*out, ',')
			}
			first = false
			i, err = renderAt(buf, i, out)
			if err != nil {
				return 0, err
			}
		}
		*out = append(*out, ']')
	case KindObject:
		*out = append(*out, '{')
		i := payloadStart
		idx := 0
		for i < payloadEnd {
			if idx%2 == 1 {
				*out = append(*out, ',')
			}
			lh, err := decodeHeader(buf, i)
			if err != nil {
				return 0, err
			}
			if idx%2 == 0 && !lh.Kind.IsText() {
				return 0, errMalformedAtf(i, "object label is not a text element")
			}
			i, err = renderAt(buf, i, out)
			if err != nil {
				return 0, err
			}
			if idx%2 == 0 {
				*out = append(*out, ':')
			}
			idx++
		}
		if idx%2 != 0 {
			return 0, errMalformedAtf(payloadStart, "object has an odd number of children")
		}
		*out = append(*out, '}')
	default:
		return 0, errMalformedAtf(off, "unrenderable element kind %v", h.Kind)
	}
	return payloadEnd, nil
}

// renderInt5 parses an int5 payload -- either "-"? "0x" hex+ (a hex
// literal) or plain decimal digits (a leading-"+" integer, per §4.3,
// stripped of its sign by the scanner) -- into decimal, or emits the
// large-number sentinel "9.0e999"/"-9.0e999" on overflow of a 64-bit
// unsigned magnitude (§4.4, and the "negative hex overflow" open
// question in spec.md §9: overflow is detected on the magnitude only,
// so a very large negative hex literal also yields the sentinel with a
// leading '-').
func renderInt5(payload []byte, out *[]byte) {
	neg := false
	p := payload
	if len(p) > 0 && p[0] == '-' {
		neg = true
		p = p[1:]
	}
	base := 10
	digits := p
	if len(p) > 1 && p[0] == '0' && (p[1] == 'x' || p[1] == 'X') {
		base = 16
		digits = p[2:]
	}
	v := new(big.Int)
	v.SetString(string(digits), base)
	maxU64 := new(big.Int).SetUint64(^uint64(0))
	if v.Cmp(maxU64) > 0 {
		if neg {
			*out = append(*out, "-9.0e999"...)
		} else {
			*out = append(*out, "9.0e999"...)
		}
		return
	}
	if neg {
		*out = append(*out, '-')
	}
	*out = append(*out, v.String()...)
}

// renderFloat5 normalizes a JSON-5 float payload: a leading '.' gets a
// '0' prepended, a trailing '.' gets a '0' appended; everything else
// passes through unchanged (§4.4).
func renderFloat5(payload []byte, out *[]byte) {
	p := payload
	start := 0
	if len(p) > 0 && (p[0] == '-' || p[0] == '+') {
		*out = append(*out, p[0])
		start = 1
	}
	rest := p[start:]
	if len(rest) > 0 && rest[0] == '.' {
		*out = append(*out, '0')
	}
	*out = append(*out, rest...)
	if len(rest) > 0 && rest[len(rest)-1] == '.' {
		*out = append(*out, '0')
	}
}

// renderText5 rewrites a text5 payload's extension escapes into
// canonical ones (§4.4): \' -> ', \v -> \u0009, \xHH -> \u00HH,
// \0 -> \u0000, backslash+CRLF or backslash+U+2028/U+2029 -> nothing;
// canonical escapes and \" pass through unchanged.
func renderText5(payload []byte, out *[]byte) {
	i := 0
	for i < len(payload) {
		c := payload[i]
		if c != '\\' {
			*out = append(*out, c)
			i++
			continue
		}
		if i+1 >= len(payload) {
			*out = append(*out, c)
			i++
			continue
		}
		switch payload[i+1] {
		case '\'':
			*out = append(*out, '\'')
			i += 2
		case 'v':
			*out = append(*out, "\\u0009"...)
			i += 2
		case '0':
			*out = append(*out, "\\u0000"...)
			i += 2
		case 'x':
			if i+3 < len(payload) && isHexDigit(payload[i+2]) && isHexDigit(payload[i+3]) {
				*out = append(*out, "\\u00"...)
				*out = append(*out, payload[i+2], payload[i+3])
				i += 4
			} else {
				*out = append(*out, payload[i])
				i++
			}
		case '\r':
			if i+2 < len(payload) && payload[i+2] == '\n' {
				i += 3
			} else {
				i += 2
			}
		case '\n':
			i += 2
		default:
			if hasPrefixAt(payload, i+1, lineSep) || hasPrefixAt(payload, i+1, paraSep) {
				i += 1 + len(lineSep)
			} else {
				// \" \\ \/ \b \f \n \r \t \uXXXX
				*out = append(*out, payload[i], payload[i+1])
				i += 2
			}
		}
	}
}

func renderTextRaw(payload []byte, out *[]byte) {
	for _, c := range payload {
		switch c {
		case '"':
			*out = append(*out, `\"`...)
		case '\\':
			*out = append(*out, `\\`...)
		case '\b':
			*out = append(*out, `\b`...)
		case '\f':
			*out = append(*out, `\f`...)
		case '\n':
			*out = append(*out, `\n`...)
		case '\r':
			*out = append(*out, `\r`...)
		case '\t':
			*out = append(*out, `\t`...)
		default:
			if c < 0x20 {
				*out = append(*out, fmt.Sprintf(`\u%04x`, c)...)
			} else {
				*out = append(*out, c)
			}
		}
	}
}
