// Package sqlfn is the host-facing layer: it maps SQL argument values to
// bjson.Parse trees and back, and implements the scalar, aggregate, and
// table-valued functions a SQL engine binds against. The package never
// reaches into a specific host's C API; instead it defines a small Value
// interface that any embedding driver implements, the same separation the
// core bjson package keeps from its own callers.
package sqlfn

import "github.com/xdg-go/bjson/bjson"

// ValueType is the host's reported type for one SQL argument, the
// minimal classification ArgCoerce needs (§4.8).
type ValueType int

const (
	TypeNull ValueType = iota
	TypeInteger
	TypeReal
	TypeText
	TypeBlob
)

// Value is one SQL argument or result, as the host engine represents it.
// A driver adapts its native value type to this interface; sqlfn never
// assumes a particular host.
type Value interface {
	Type() ValueType

	// Text returns the value's text form (only meaningful when
	// Type() == TypeText).
	Text() []byte
	// IsJSONSubtype reports whether the host tagged this text value as
	// JSON (e.g. SQLite's SQLITE_SUBTYPE 74 'J'), letting a nested
	// function call skip re-parsing a text result from an inner call.
	IsJSONSubtype() bool

	// Blob returns the value's raw bytes (only meaningful when
	// Type() == TypeBlob).
	Blob() []byte

	// Int64 and Float64 return the value's numeric form (only
	// meaningful for TypeInteger/TypeReal respectively).
	Int64() int64
	Float64() float64
}

// Result is what a scalar function hands back to the host: exactly one
// of the fields is meaningful, selected by Kind.
type Result struct {
	Kind       ResultKind
	Text       []byte // JSON text result, or plain text for quote()/type()
	Blob       []byte // BJSON result (b* variants)
	Int        int64
	Float      float64
	IsJSONText bool // tag Text with the host's JSON subtype, mirroring input tagging
}

// ResultKind selects which field of Result is populated.
type ResultKind int

const (
	ResultNull ResultKind = iota
	ResultText
	ResultBlob
	ResultInt
	ResultFloat
)

// textResult and blobResult are small constructors used throughout
// functions.go so every function body reads the same way regardless of
// its JSON/BJSON output class.
func textResult(b []byte) Result { return Result{Kind: ResultText, Text: b, IsJSONText: true} }
func plainTextResult(b []byte) Result { return Result{Kind: ResultText, Text: b} }
func blobResult(b []byte) Result      { return Result{Kind: ResultBlob, Blob: b} }
func intResult(v int64) Result        { return Result{Kind: ResultInt, Int: v} }
func floatResult(v float64) Result    { return Result{Kind: ResultFloat, Float: v} }
func nullResult() Result              { return Result{Kind: ResultNull} }

// renderOrBlob converts p to the function's declared output class: JSON
// text for the plain functions, BJSON bytes for the b* variants.
func renderOrBlob(p *bjson.Parse, asBlob bool) (Result, error) {
	if asBlob {
		return blobResult(append([]byte(nil), p.Bytes()...)), nil
	}
	text, err := bjson.Render(p)
	if err != nil {
		return Result{}, err
	}
	return textResult(text), nil
}
