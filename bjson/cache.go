// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bjson

import "sync"

// cacheCapacity is the number of text->BJSON translations kept resident,
// matching the JSON_CACHE_SIZE the original implementation carries in
// its auxiliary-data slot (§4.7 "Parse cache").
const cacheCapacity = 4

// cacheEntry pairs the source text (identity-compared first, then by
// content) with its read-only parsed BJSON.
type cacheEntry struct {
	source *RCString
	parsed *Parse
}

// ParseCache is a small, fixed-capacity, most-recently-used cache from
// text to its parsed BJSON. It is built to sit behind a host SQL
// engine's per-call "auxiliary data" slot: one ParseCache instance lives
// for as long as a single prepared statement's bound function argument
// does, and is discarded when the host tears that slot down (§4.7).
//
// Entries are read-only. A caller that intends to edit a cached Parse
// must call [Parse.Clone] first -- ParseCache never hands out a Parse
// that could be mutated out from under another reader.
type ParseCache struct {
	mu      sync.Mutex
	entries []cacheEntry // most-recently-used at index 0
	opts    ParseOptions
}

// NewParseCache returns an empty cache that will use opts for any
// parses it performs on a miss.
func NewParseCache(opts ParseOptions) *ParseCache {
	return &ParseCache{opts: opts}
}

// Get returns the cached parse for text, parsing and inserting it on a
// miss. The returned Parse is shared and read-only; editing callers must
// Clone it first.
func (c *ParseCache) Get(text []byte) (*Parse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.entries {
		if bytesEqual(e.source.Bytes(), text) {
			c.touch(i)
			return c.entries[0].parsed, nil
		}
	}

	parsed, err := ParseText(text, c.opts)
	if err != nil {
		return nil, err
	}
	src := NewRCString(append([]byte(nil), text...))
	c.insert(cacheEntry{source: src, parsed: parsed})
	return parsed, nil
}

// touch moves the entry at index i to the front (most-recently-used).
func (c *ParseCache) touch(i int) {
	if i == 0 {
		return
	}
	e := c.entries[i]
	copy(c.entries[1:i+1], c.entries[:i])
	c.entries[0] = e
}

// insert adds a new entry at the front, evicting the least-recently-used
// entry if the cache is already at cacheCapacity.
func (c *ParseCache) insert(e cacheEntry) {
	if len(c.entries) >= cacheCapacity {
		evicted := c.entries[len(c.entries)-1]
		evicted.source.Release()
		c.entries = c.entries[:len(c.entries)-1]
	}
	c.entries = append([]cacheEntry{e}, c.entries...)
}

// Reset discards every cached entry.
func (c *ParseCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.source.Release()
	}
	c.entries = nil
}
