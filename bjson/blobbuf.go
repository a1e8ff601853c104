// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

// BlobBuf is a growable byte buffer used to assemble and edit BJSON. It
// grows by doubling with an "N + 10" floor, the same amortization
// strategy spec.md's resource policy (§5) names for the reference
// implementation's buffer growth.
type BlobBuf struct {
	buf []byte
}

// NewBlobBuf returns an empty BlobBuf with capacity for at least
// extraHint additional bytes.
func NewBlobBuf(extraHint int) *BlobBuf {
	if extraHint < 0 {
		extraHint = 0
	}
	return &BlobBuf{buf: make([]byte, 0, extraHint)}
}

// Bytes returns the buffer's current contents. The returned slice
// aliases BlobBuf's storage and is invalidated by the next mutation.
func (b *BlobBuf) Bytes() []byte { return b.buf }

// Len returns the number of bytes currently held.
func (b *BlobBuf) Len() int { return len(b.buf) }

// Reserve ensures at least n more bytes of spare capacity are
// available without reallocating on the next append.
func (b *BlobBuf) Reserve(n int) {
	if cap(b.buf)-len(b.buf) >= n {
		return
	}
	b.grow(n)
}

// grow reallocates buf to hold at least n additional bytes, doubling
// the existing capacity (or using len+n+10, whichever is larger) to
// amortize repeated small appends.
func (b *BlobBuf) grow(n int) {
	want := len(b.buf) + n
	doubled := cap(b.buf) * 2
	floor := len(b.buf) + n + 10
	newCap := want
	if doubled > newCap {
		newCap = doubled
	}
	if floor > newCap {
		newCap = floor
	}
	next := make([]byte, len(b.buf), newCap)
	copy(next, b.buf)
	b.buf = next
}

// Append appends p to the buffer, growing as needed.
func (b *BlobBuf) Append(p []byte) {
	b.Reserve(len(p))
	b.buf = append(b.buf, p...)
}

// AppendByte appends a single byte.
func (b *BlobBuf) AppendByte(c byte) {
	b.Reserve(1)
	b.buf = append(b.buf, c)
}

// Truncate discards everything after offset n.
func (b *BlobBuf) Truncate(n int) {
	b.buf = b.buf[:n]
}

// Splice replaces buf[start:end] with repl, shifting the tail as
// needed and growing if repl is longer than the removed span. Returns
// the signed change in total length (len(repl) - (end-start)).
func (b *BlobBuf) Splice(start, end int, repl []byte) int {
	delta := len(repl) - (end - start)
	if delta > 0 {
		b.Reserve(delta)
	}
	tail := append([]byte(nil), b.buf[end:]...)
	b.buf = append(b.buf[:start], repl...)
	b.buf = append(b.buf, tail...)
	return delta
}

// SetBytes replaces the buffer's contents wholesale (used when adopting
// ownership of a caller-supplied slice for editing).
func (b *BlobBuf) SetBytes(p []byte) {
	b.buf = p
}
