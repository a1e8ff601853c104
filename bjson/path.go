// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

// PathStep is one navigation step in a parsed [Path] (§6.2).
type PathStep struct {
	// Label is set when this step descends an object by key.
	Label []byte
	IsKey bool

	// Index descends an array by position; IsLast/FromEnd select the
	// "[#]"/"[#-N]" forms relative to the array's end.
	Index    int
	IsLast   bool
	FromEnd  bool
	EndDelta int
}

// Path is a parsed navigation expression rooted at '$'.
type Path struct {
	Steps []PathStep
}

// ParsePath parses a path string per the grammar in spec.md §6.2:
//
//	path := '$' step*
//	step := '.' (ident | '"' quoted '"') | '[' (digits | '#' ('-' digits)?) ']'
func ParsePath(s string) (*Path, error) {
	if len(s) == 0 || s[0] != '$' {
		return nil, errPathSyntaxf("path must start with '$'")
	}
	p := &Path{}
	i := 1
	for i < len(s) {
		switch s[i] {
		case '.':
			step, next, err := parseDotStep(s, i)
			if err != nil {
				return nil, err
			}
			p.Steps = append(p.Steps, step)
			i = next
		case '[':
			step, next, err := parseBracketStep(s, i)
			if err != nil {
				return nil, err
			}
			p.Steps = append(p.Steps, step)
			i = next
		default:
			return nil, errPathSyntaxf("unexpected character %q in path at offset %d", s[i], i)
		}
	}
	return p, nil
}

func parseDotStep(s string, i int) (PathStep, int, error) {
	j := i + 1
	if j < len(s) && s[j] == '"' {
		j++
		start := j
		for j < len(s) && s[j] != '"' {
			if s[j] == '\\' && j+1 < len(s) {
				j += 2
				continue
			}
			j++
		}
		if j >= len(s) {
			return PathStep{}, 0, errPathSyntaxf("unterminated quoted label in path")
		}
		label := []byte(s[start:j])
		return PathStep{IsKey: true, Label: label}, j + 1, nil
	}
	start := j
	for j < len(s) && s[j] != '.' && s[j] != '[' {
		j++
	}
	if j == start {
		return PathStep{}, 0, errPathSyntaxf("empty label in path at offset %d", i)
	}
	return PathStep{IsKey: true, Label: []byte(s[start:j])}, j, nil
}

func parseBracketStep(s string, i int) (PathStep, int, error) {
	j := i + 1
	if j < len(s) && s[j] == '#' {
		j++
		delta := 0
		if j < len(s) && s[j] == '-' {
			j++
			start := j
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if j == start {
				return PathStep{}, 0, errPathSyntaxf("expected digits after '#-' in path")
			}
			for k := start; k < j; k++ {
				delta = delta*10 + int(s[k]-'0')
			}
		}
		if j >= len(s) || s[j] != ']' {
			return PathStep{}, 0, errPathSyntaxf("expected ']' in path")
		}
		return PathStep{IsLast: true, FromEnd: true, EndDelta: delta}, j + 1, nil
	}
	start := j
	neg := false
	if j < len(s) && s[j] == '-' {
		neg = true
		j++
	}
	digitStart := j
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == digitStart {
		return PathStep{}, 0, errPathSyntaxf("expected digits in array index at offset %d", start)
	}
	if j >= len(s) || s[j] != ']' {
		return PathStep{}, 0, errPathSyntaxf("expected ']' in path")
	}
	idx := 0
	for k := digitStart; k < j; k++ {
		idx = idx*10 + int(s[k]-'0')
	}
	if neg {
		idx = -idx
	}
	return PathStep{Index: idx}, j + 1, nil
}

// ParsePathAbbreviated parses the abbreviated single-step forms that
// arrow()/arrow2() accept (§6.3, grounded on the original's
// jsonLookupStep): a bare integer means "$[n]", a bare label means
// "$.label", and "[n]" alone means "$[n]". A leading '$' is also
// accepted and simply delegates to ParsePath.
func ParsePathAbbreviated(s string) (*Path, error) {
	if len(s) == 0 {
		return nil, errPathSyntaxf("empty path")
	}
	if s[0] == '$' {
		return ParsePath(s)
	}
	if s[0] == '[' {
		return ParsePath("$" + s)
	}
	allDigits := true
	for k := 0; k < len(s); k++ {
		if s[k] == '-' && k == 0 {
			continue
		}
		if s[k] < '0' || s[k] > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		return ParsePath("$[" + s + "]")
	}
	return ParsePath("$." + s)
}
