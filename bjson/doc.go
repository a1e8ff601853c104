// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bjson implements a compact binary encoding for JSON values
// ("BJSON") plus the tooling to move between it and text: a recursive-
// descent translator from a JSON-5 superset into BJSON, a canonicalizing
// renderer back to text, a path-directed in-place editor, and an
// RFC-7396 merge-patch algorithm that runs directly on the binary form.
//
// BJSON elements
//
// Every element is a one-to-nine-byte header followed by a payload (see
// [Header]). A valid buffer holds exactly one top-level element; objects
// and arrays are containers whose payload is a concatenation of child
// elements.
//
// Editing
//
// [Parse] wraps either a read-only view over caller-owned bytes or an
// owned, growable buffer. Views are promoted to owned buffers lazily, on
// the first call to [Parse.Apply] or [MergePatch]. Edits are expressed
// as a [Path] plus an [Opcode]; size changes to a container propagate to
// its ancestors without re-encoding the whole buffer.
//
// This package has no host-value or SQL-engine dependency: callers
// outside this module own the job of mapping typed host arguments onto
// [Parse] values (see package sqlfn) and of presenting BJSON back to a
// caller as text or as raw bytes.
package bjson
