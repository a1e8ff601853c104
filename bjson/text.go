// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

// isIdentStart/isIdentCont implement the bare-identifier grammar JSON-5
// allows for unquoted object labels (§4.3 "Unquoted object labels"):
// ASCII letters, '_' and '$' may start one; those plus digits may
// continue one.
func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// scanString consumes a quoted string literal starting at buf[i], where
// buf[i] is the opening delimiter (either '"' or, for JSON-5, '\'').
// It returns the text kind (escalated from text to textj/text5 as
// unsafe/extension escapes are found), the raw payload bytes (escapes
// left unexpanded, delimiters stripped, per §3), the offset just past
// the closing delimiter, and whether anything non-standard was used.
func scanString(buf []byte, i int) (kind Kind, payload []byte, next int, nonStd bool, err error) {
	n := len(buf)
	delim := buf[i]
	if delim == '\'' {
		nonStd = true
	}
	kind = KindText
	j := i + 1
	payloadStart := j
	for {
		if j >= n {
			return 0, nil, 0, false, errMalformedAtf(i, "unterminated string literal")
		}
		c := buf[j]
		switch {
		case c == delim:
			payload = append([]byte(nil), buf[payloadStart:j]...)
			return kind, payload, j + 1, nonStd, nil
		case c == '\\':
			cls, elen := classifyEscape(buf, j+1)
			switch cls {
			case escCanonical:
				if kind == KindText {
					kind = KindTextJ
				}
			case escExtension:
				kind = KindText5
				nonStd = true
			default:
				return 0, nil, 0, false, errMalformedAtf(j, "invalid escape sequence")
			}
			j += elen
		case c <= 0x1f:
			return 0, nil, 0, false, errMalformedAtf(j, "control character in string literal")
		default:
			j++
		}
	}
}

// scanUnquotedLabel consumes a JSON-5 bare object-key identifier (or a
// \uXXXX-escaped one) starting at buf[i]. Its kind is text unless the
// identifier contains a \u escape, in which case textj (§4.3).
func scanUnquotedLabel(buf []byte, i int) (kind Kind, payload []byte, next int, ok bool) {
	n := len(buf)
	j := i
	sawEscape := false
	first := true
	for j < n {
		if buf[j] == '\\' && j+1 < n && buf[j+1] == 'u' && isHex4(buf[j+2:]) {
			sawEscape = true
			j += 6
			first = false
			continue
		}
		c := buf[j]
		if first {
			if !isIdentStart(c) {
				break
			}
		} else if !isIdentCont(c) {
			break
		}
		first = false
		j++
	}
	if j == i {
		return 0, nil, 0, false
	}
	kind = KindText
	if sawEscape {
		kind = KindTextJ
	}
	payload = append([]byte(nil), buf[i:j]...)
	return kind, payload, j, true
}
