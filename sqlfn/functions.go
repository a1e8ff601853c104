package sqlfn

import (
	"unicode/utf8"

	"github.com/xdg-go/bjson/bjson"
)

// Env bundles the per-call collaborators every function needs: the
// parser's depth limit and the statement-lifetime parse cache (nil if
// the host has none, e.g. a one-shot CLI invocation).
type Env struct {
	Opts  bjson.ParseOptions
	Cache *bjson.ParseCache
}

func (e Env) coerce(v Value) (*bjson.Parse, error) {
	p, ok, err := ArgCoerce(v, e.Cache, e.Opts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return p, nil
}

// MakeText implements make_text(v) / make_blob(v): coerce v to BJSON
// and render it in the function's declared output class.
func (e Env) MakeText(v Value, asBlob bool) (Result, error) {
	p, err := e.coerce(v)
	if err != nil {
		return Result{}, err
	}
	if p == nil {
		return nullResult(), nil
	}
	return renderOrBlob(p, asBlob)
}

// Array implements array(v, ...): build a fresh array from host values,
// each coerced independently (§6.3).
func (e Env) Array(vs []Value, asBlob bool) (Result, error) {
	var body []byte
	for _, v := range vs {
		p, err := e.coerce(v)
		if err != nil {
			return Result{}, err
		}
		if p == nil {
			body = bjson.AppendElement(body, bjson.KindNull, nil)
			continue
		}
		body = append(body, p.Bytes()...)
	}
	elem := bjson.WrapContainer(bjson.KindArray, body)
	return renderOrBlob(bjson.NewView(elem), asBlob)
}

// Object implements object(k, v, ...): keys must coerce to a text
// element; an odd argument count is an arity error (§6.3).
func (e Env) Object(vs []Value, asBlob bool) (Result, error) {
	if len(vs)%2 != 0 {
		return Result{}, errArity("object() requires an even number of arguments")
	}
	var body []byte
	for i := 0; i < len(vs); i += 2 {
		kp, err := e.coerce(vs[i])
		if err != nil {
			return Result{}, err
		}
		if kp == nil {
			return Result{}, errNonTextLabel()
		}
		kh, err := bjson.ElementHeaderKind(kp.Bytes(), 0)
		if err != nil {
			return Result{}, err
		}
		if !kh.IsText() {
			return Result{}, errNonTextLabel()
		}
		body = append(body, kp.Bytes()...)

		vp, err := e.coerce(vs[i+1])
		if err != nil {
			return Result{}, err
		}
		if vp == nil {
			body = bjson.AppendElement(body, bjson.KindNull, nil)
			continue
		}
		body = append(body, vp.Bytes()...)
	}
	elem := bjson.WrapContainer(bjson.KindObject, body)
	return renderOrBlob(bjson.NewView(elem), asBlob)
}

// ArrayLength implements array_length(j [, path]).
func (e Env) ArrayLength(j Value, path *bjson.Path) (Result, error) {
	p, err := e.coerce(j)
	if err != nil {
		return Result{}, err
	}
	if p == nil {
		return nullResult(), nil
	}
	off := 0
	if path != nil {
		o, found, err := bjson.Navigate(p.Bytes(), 0, path)
		if err != nil {
			return Result{}, err
		}
		if !found {
			return intResult(0), nil
		}
		off = o
	}
	n, err := bjson.ArrayLength(p.Bytes(), off)
	if err != nil {
		return Result{}, err
	}
	return intResult(int64(n)), nil
}

// Extract implements extract(j, path, ...): one path returns the
// element directly (as JSON for containers, as a scalar host-typed
// result for primitives when not forced to BJSON); more than one path
// returns a JSON array of results.
func (e Env) Extract(j Value, paths []*bjson.Path, asBlob bool) (Result, error) {
	p, err := e.coerce(j)
	if err != nil {
		return Result{}, err
	}
	if p == nil {
		return nullResult(), nil
	}
	if len(paths) == 1 {
		return e.extractOne(p, paths[0], asBlob)
	}
	var body []byte
	for _, path := range paths {
		off, found, err := bjson.Navigate(p.Bytes(), 0, path)
		if err != nil {
			return Result{}, err
		}
		if !found {
			body = bjson.AppendElement(body, bjson.KindNull, nil)
			continue
		}
		elem, err := bjson.CloneElementAt(p.Bytes(), off)
		if err != nil {
			return Result{}, err
		}
		body = append(body, elem...)
	}
	elem := bjson.WrapContainer(bjson.KindArray, body)
	return renderOrBlob(bjson.NewView(elem), asBlob)
}

func (e Env) extractOne(p *bjson.Parse, path *bjson.Path, asBlob bool) (Result, error) {
	off, found, err := bjson.Navigate(p.Bytes(), 0, path)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return nullResult(), nil
	}
	return renderOrBlob(bjson.ViewAt(p.Bytes(), off), asBlob)
}

// Arrow implements arrow(j, path) (JSON result) / arrow2(j, path) (host
// scalar result). Both accept the abbreviated single-step path forms.
func (e Env) Arrow(j Value, rawPath []byte, forceHostScalar bool) (Result, error) {
	p, err := e.coerce(j)
	if err != nil {
		return Result{}, err
	}
	if p == nil {
		return nullResult(), nil
	}
	path, err := bjson.ParsePathAbbreviated(string(rawPath))
	if err != nil {
		return Result{}, err
	}
	off, found, err := bjson.Navigate(p.Bytes(), 0, path)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return nullResult(), nil
	}
	if !forceHostScalar {
		return renderOrBlob(bjson.ViewAt(p.Bytes(), off), false)
	}
	return e.scalarResult(p.Bytes(), off)
}

// scalarResult converts a primitive element to its host-typed Result
// (arrow2's "force to host value" behavior); containers still render as
// JSON text since there is no host container type to produce.
func (e Env) scalarResult(buf []byte, off int) (Result, error) {
	kind, text, err := bjson.ScalarText(buf, off)
	if err != nil {
		return Result{}, err
	}
	switch kind {
	case bjson.KindNull:
		return nullResult(), nil
	case bjson.KindTrue:
		return intResult(1), nil
	case bjson.KindFalse:
		return intResult(0), nil
	case bjson.KindInt, bjson.KindInt5:
		return Result{Kind: ResultInt, Int: bjson.ParseIntText(text)}, nil
	case bjson.KindFloat, bjson.KindFloat5:
		return Result{Kind: ResultFloat, Float: bjson.ParseFloatText(text)}, nil
	default:
		return renderOrBlob(bjson.ViewAt(buf, off), false)
	}
}

// editOp is the shared body of insert/replace/set/remove: coerce j,
// apply one or more (path[, value]) pairs left to right, then render.
func (e Env) editOp(j Value, pathVals []editArg, op bjson.Opcode, needsValue bool, asBlob bool) (Result, error) {
	base, err := e.coerce(j)
	if err != nil {
		return Result{}, err
	}
	if base == nil {
		return nullResult(), nil
	}
	target := base.Clone()
	for _, pv := range pathVals {
		path, err := bjson.ParsePath(string(pv.path))
		if err != nil {
			return Result{}, err
		}
		var newElem []byte
		if needsValue {
			vp, err := e.coerce(pv.value)
			if err != nil {
				return Result{}, err
			}
			if vp == nil {
				newElem = bjson.AppendElement(nil, bjson.KindNull, nil)
			} else {
				newElem = append([]byte(nil), vp.Bytes()...)
			}
		}
		if err := target.Apply(path, op, newElem); err != nil {
			return Result{}, err
		}
	}
	return renderOrBlob(target, asBlob)
}

// editArg pairs one path argument with its value argument (value is
// unused, and may be zero, for remove()).
type editArg struct {
	path  []byte
	value Value
}

// Insert, Replace, Set, Remove implement the corresponding edit
// functions; odd-length pathVals (a trailing path with no value) is an
// arity error for the three that require one, a deliberate omission for
// Remove.
func (e Env) Insert(j Value, pathVals []editArg, asBlob bool) (Result, error) {
	return e.editOp(j, pathVals, bjson.OpInsert, true, asBlob)
}
func (e Env) Replace(j Value, pathVals []editArg, asBlob bool) (Result, error) {
	return e.editOp(j, pathVals, bjson.OpReplace, true, asBlob)
}
func (e Env) Set(j Value, pathVals []editArg, asBlob bool) (Result, error) {
	return e.editOp(j, pathVals, bjson.OpSet, true, asBlob)
}
func (e Env) Remove(j Value, paths [][]byte, asBlob bool) (Result, error) {
	var pvs []editArg
	for _, p := range paths {
		pvs = append(pvs, editArg{path: p})
	}
	return e.editOp(j, pvs, bjson.OpDelete, false, asBlob)
}

// Patch implements patch(t, p) (§4.6).
func (e Env) Patch(t, patch Value, asBlob bool) (Result, error) {
	target, err := e.coerce(t)
	if err != nil {
		return Result{}, err
	}
	if target == nil {
		target = bjson.NewOwnedElement(bjson.KindObject, nil)
	} else {
		target = target.Clone()
	}
	patchParse, err := e.coerce(patch)
	if err != nil {
		return Result{}, err
	}
	if patchParse == nil {
		return nullResult(), nil
	}
	if err := bjson.MergePatch(target, patchParse.Bytes()); err != nil {
		return Result{}, err
	}
	return renderOrBlob(target, asBlob)
}

// Type implements type(j [, path]): the thirteen kind names, with text
// kinds collapsed to "text" and numeric kinds to "integer"/"real".
func (e Env) Type(j Value, path *bjson.Path) (Result, error) {
	p, err := e.coerce(j)
	if err != nil {
		return Result{}, err
	}
	if p == nil {
		return nullResult(), nil
	}
	off := 0
	if path != nil {
		o, found, err := bjson.Navigate(p.Bytes(), 0, path)
		if err != nil {
			return Result{}, err
		}
		if !found {
			return nullResult(), nil
		}
		off = o
	}
	kind, err := bjson.ElementHeaderKind(p.Bytes(), off)
	if err != nil {
		return Result{}, err
	}
	return plainTextResult([]byte(collapsedTypeName(kind))), nil
}

func collapsedTypeName(k bjson.Kind) string {
	switch {
	case k.IsText():
		return "text"
	case k == bjson.KindInt || k == bjson.KindInt5:
		return "integer"
	case k == bjson.KindFloat || k == bjson.KindFloat5:
		return "real"
	default:
		return k.String()
	}
}

// Valid implements valid(j [, flags]): flags is a bitmask, 1=strict
// text, 2=extended (JSON-5) text, 4=superficial blob check, 8=strict
// blob check (aliased to 4 per original_source, since a full structural
// walk is already what "superficial" performs for BJSON's closed kind
// set -- see SPEC_FULL.md §D).
func (e Env) Valid(j Value, flags int) (Result, error) {
	if flags == 0 {
		flags = 1
	}
	if flags < 1 || flags > 15 {
		return Result{}, errFlagsRange()
	}
	if flags&8 != 0 {
		flags |= 4
	}
	switch j.Type() {
	case TypeText:
		_, err := bjson.ParseText(j.Text(), e.Opts)
		if err != nil {
			return intResult(0), nil
		}
		return intResult(1), nil
	case TypeBlob:
		if flags&4 == 0 {
			return intResult(0), nil
		}
		ok := bjson.QuickValidate(j.Blob())
		if ok {
			return intResult(1), nil
		}
		return intResult(0), nil
	default:
		return intResult(0), nil
	}
}

// Quote implements quote(v): JSON-encode a scalar host value.
func (e Env) Quote(v Value) (Result, error) {
	p, err := e.coerce(v)
	if err != nil {
		return Result{}, err
	}
	if p == nil {
		return plainTextResult([]byte("null")), nil
	}
	text, err := bjson.Render(p)
	if err != nil {
		return Result{}, err
	}
	return plainTextResult(text), nil
}

// ErrorPosition implements error_position(j): the 1-based character
// offset of the first syntax error in j's text, or 0 if it parses.
func (e Env) ErrorPosition(j Value) (Result, error) {
	if j.Type() != TypeText {
		return intResult(0), nil
	}
	_, err := bjson.ParseText(j.Text(), e.Opts)
	if err == nil {
		return intResult(0), nil
	}
	var be *bjson.Error
	if ok := bjson.AsError(err, &be); ok && be.ByteOffset >= 0 {
		return intResult(int64(byteOffsetToCharOffset(j.Text(), be.ByteOffset) + 1)), nil
	}
	return intResult(1), nil
}

// byteOffsetToCharOffset converts a byte offset into text into a
// 0-based rune (character) offset, since error_position() reports a
// character position, not a byte position (§6.3).
func byteOffsetToCharOffset(text []byte, byteOffset int) int {
	if byteOffset > len(text) {
		byteOffset = len(text)
	}
	return utf8.RuneCount(text[:byteOffset])
}

func errNonTextLabel() error { return bjson.NewErrorKind(bjson.KindNonTextLabel, "object() key is not text") }
func errFlagsRange() error {
	return bjson.NewErrorKind(bjson.KindFlagsRange, "valid() flags must be in [1,15]")
}
func errArity(msg string) error { return bjson.NewErrorKind(bjson.KindArity, msg) }

// BuildEditArgs pairs up the (path, value) arguments a binding receives
// after the leading json argument, reporting an arity error if their
// count is not even (§6.3 "odd arity required for the three-parameter
// edits": the json argument plus an even run of pairs is always odd).
func BuildEditArgs(pathsAndValues []Value) ([]editArg, error) {
	if len(pathsAndValues)%2 != 0 {
		return nil, errArity("insert/replace/set require path,value pairs")
	}
	var out []editArg
	for i := 0; i < len(pathsAndValues); i += 2 {
		out = append(out, editArg{path: pathsAndValues[i].Text(), value: pathsAndValues[i+1]})
	}
	return out, nil
}
