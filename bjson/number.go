// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

// scanNumber consumes a JSON/JSON-5 numeric literal (or an Infinity/Inf/
// NaN/QNaN/SNaN extension literal, per spec §4.3) starting at buf[i].
// It returns the element kind, the bytes to store as payload, the
// offset just past the literal, and whether parsing it touched any
// non-standard syntax.
func scanNumber(buf []byte, i int) (kind Kind, payload []byte, next int, nonStd bool, err error) {
	start := i
	n := len(buf)

	if k, nx, ok := matchExtensionLiteral(buf, i); ok {
		return k, extensionPayload(k, buf[i]), nx, true, nil
	}

	sign := false
	if i < n && (buf[i] == '+' || buf[i] == '-') {
		if buf[i] == '+' {
			nonStd = true
		}
		sign = buf[i] == '-' || buf[i] == '+'
		i++
	}
	_ = sign

	// Hex integer: (-)?0x[0-9a-fA-F]+
	if i+1 < n && buf[i] == '0' && (buf[i+1] == 'x' || buf[i+1] == 'X') && i+2 < n && isHexDigit(buf[i+2]) {
		nonStd = true
		j := i + 2
		for j < n && isHexDigit(buf[j]) {
			j++
		}
		payload = stripLeadingPlus(buf[start:j])
		return KindInt5, payload, j, true, nil
	}

	isJSON5 := nonStd
	isFloat := false

	digitsStart := i
	if i < n && buf[i] == '.' {
		// Leading dot: JSON5, and requires at least one fraction digit.
		if i+1 >= n || buf[i+1] < '0' || buf[i+1] > '9' {
			return 0, nil, 0, false, errMalformedAtf(start, "invalid number literal")
		}
		isJSON5 = true
		isFloat = true
	} else {
		if i >= n || buf[i] < '0' || buf[i] > '9' {
			return 0, nil, 0, false, errMalformedAtf(start, "invalid number literal")
		}
		if buf[i] == '0' && i+1 < n && buf[i+1] >= '0' && buf[i+1] <= '9' {
			return 0, nil, 0, false, errMalformedAtf(start, "leading zero not allowed")
		}
		for i < n && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
	}
	_ = digitsStart

	if i < n && buf[i] == '.' {
		isFloat = true
		dotPos := i
		i++
		fracStart := i
		for i < n && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
		if i == fracStart {
			// Trailing dot, e.g. "1." -- JSON5.
			isJSON5 = true
		}
		if i < n && (buf[i] == 'e' || buf[i] == 'E') && i == fracStart {
			// ".e" immediately after the dot with no fraction digits.
			isJSON5 = true
		}
		_ = dotPos
	}

	if i < n && (buf[i] == 'e' || buf[i] == 'E') {
		isFloat = true
		j := i + 1
		if j < n && (buf[j] == '+' || buf[j] == '-') {
			j++
		}
		if j >= n || buf[j] < '0' || buf[j] > '9' {
			return 0, nil, 0, false, errMalformedAtf(i, "invalid exponent")
		}
		for j < n && buf[j] >= '0' && buf[j] <= '9' {
			j++
		}
		i = j
	}

	switch {
	case isFloat && isJSON5:
		kind = KindFloat5
	case isFloat:
		kind = KindFloat
	case isJSON5:
		kind = KindInt5
	default:
		kind = KindInt
	}

	payload = stripLeadingPlus(buf[start:i])
	return kind, payload, i, isJSON5 || nonStd, nil
}

// stripLeadingPlus removes a single leading '+' sign, per spec §4.3
// ("A sign-only + prefix is stripped from the payload").
func stripLeadingPlus(b []byte) []byte {
	if len(b) > 0 && b[0] == '+' {
		out := make([]byte, len(b)-1)
		copy(out, b[1:])
		return out
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// matchExtensionLiteral recognizes Infinity/Inf/NaN/QNaN/SNaN (with an
// optional leading sign on the Infinity forms), case-insensitive on the
// initial letter, per spec §4.3.
func matchExtensionLiteral(buf []byte, i int) (Kind, int, bool) {
	n := len(buf)
	j := i
	if j < n && (buf[j] == '+' || buf[j] == '-') {
		j++
	}
	rest := buf[j:]
	for _, cand := range []struct {
		word string
		kind Kind
	}{
		{"infinity", KindFloat},
		{"inf", KindFloat},
		{"qnan", KindNull},
		{"snan", KindNull},
		{"nan", KindNull},
	} {
		if m, ok := matchWordCI(rest, cand.word); ok {
			end := j + m
			if end < n && isIdentCont(buf[end]) {
				continue
			}
			return cand.kind, end, true
		}
	}
	return 0, 0, false
}

func matchWordCI(buf []byte, word string) (int, bool) {
	if len(buf) < len(word) {
		return 0, false
	}
	for k := 0; k < len(word); k++ {
		c := buf[k]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != word[k] {
			return 0, false
		}
	}
	return len(word), true
}

func extensionPayload(kind Kind, sign byte) []byte {
	if kind == KindNull {
		return nil
	}
	if sign == '-' {
		return []byte("-9e999")
	}
	return []byte("9e999")
}
