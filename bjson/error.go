// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

import "github.com/cockroachdb/errors"

// ErrorKind classifies a bjson error per spec §7.
type ErrorKind int

const (
	// KindMalformed means text failed to parse, or a blob failed its
	// structural check, or malformed BJSON was encountered mid-edit.
	KindMalformed ErrorKind = iota
	// KindPathSyntax means a path string does not match the §6.2 grammar.
	KindPathSyntax
	// KindNotFound means a syntactically valid path resolved to nothing.
	// Most callers treat this as a NULL result, not a hard error.
	KindNotFound
	// KindArity means an edit function received the wrong number of
	// arguments.
	KindArity
	// KindNonTextLabel means object() was given a non-text key.
	KindNonTextLabel
	// KindBlobAsJSON means a host blob argument is clearly not BJSON.
	KindBlobAsJSON
	// KindOOM means an allocation failed.
	KindOOM
	// KindFlagsRange means valid()'s flags argument fell outside [1,15].
	KindFlagsRange
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindPathSyntax:
		return "path syntax"
	case KindNotFound:
		return "not found"
	case KindArity:
		return "arity"
	case KindNonTextLabel:
		return "non-text label"
	case KindBlobAsJSON:
		return "blob-as-json"
	case KindOOM:
		return "oom"
	case KindFlagsRange:
		return "flags range"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every exported bjson operation
// that can fail. ByteOffset is the 0-based offset into the input at
// which the problem was detected, or -1 if not applicable.
type Error struct {
	Kind       ErrorKind
	ByteOffset int
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Kind.String()
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is(err, bjson.ErrNotFound) and friends work against a
// sentinel that only carries a Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind && t.cause == nil
	}
	return false
}

func newErr(kind ErrorKind, offset int, cause error) *Error {
	return &Error{Kind: kind, ByteOffset: offset, cause: cause}
}

func errMalformedf(format string, args ...interface{}) error {
	return newErr(KindMalformed, -1, errors.Newf(format, args...))
}

func errMalformedAtf(offset int, format string, args ...interface{}) error {
	return newErr(KindMalformed, offset, errors.Newf(format, args...))
}

func errPathSyntaxf(format string, args ...interface{}) error {
	return newErr(KindPathSyntax, -1, errors.Newf(format, args...))
}

func errArityf(format string, args ...interface{}) error {
	return newErr(KindArity, -1, errors.Newf(format, args...))
}

func errOOM() error {
	return newErr(KindOOM, -1, errors.New("out of memory"))
}

// Sentinels for errors.Is comparisons from callers (sqlfn and beyond).
var (
	// ErrNotFound marks a path that resolved to no element.
	ErrNotFound = &Error{Kind: KindNotFound}
	// ErrMalformed marks malformed input text or BJSON bytes.
	ErrMalformed = &Error{Kind: KindMalformed}
	// ErrPathSyntax marks a path string that is not well-formed.
	ErrPathSyntax = &Error{Kind: KindPathSyntax}
	// ErrOOM marks an allocation failure.
	ErrOOM = &Error{Kind: KindOOM}
)

func errNotFound() error {
	return newErr(KindNotFound, -1, errors.New("path not found"))
}
