// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

import "sync/atomic"

// RCString is a reference-counted, immutable byte buffer used to intern
// parsed input text so the parse cache (§4.7) can share one copy of the
// source text across its internal bookkeeping without copying it again
// on every cache hit. It maps directly onto spec.md's "rcstr" service
// (§9): an atomic refcount guards a shared, never-mutated byte slice.
type RCString struct {
	bytes []byte
	refs  atomic.Int64
}

// NewRCString wraps p (not copied) with an initial reference count of 1.
func NewRCString(p []byte) *RCString {
	s := &RCString{bytes: p}
	s.refs.Store(1)
	return s
}

// Bytes returns the interned content. Callers must not mutate it.
func (s *RCString) Bytes() []byte { return s.bytes }

// Retain increments the reference count and returns s for chaining.
func (s *RCString) Retain() *RCString {
	s.refs.Add(1)
	return s
}

// Release decrements the reference count. It reports whether this was
// the last reference (the caller may then drop all pointers to s).
func (s *RCString) Release() bool {
	return s.refs.Add(-1) == 0
}

// RefCount returns the current reference count, for tests and
// diagnostics.
func (s *RCString) RefCount() int64 { return s.refs.Load() }
