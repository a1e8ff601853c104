package sqlfn

// mockValue is a minimal in-memory Value used only by this package's
// tests, standing in for whatever native value type a real driver binds.
type mockValue struct {
	typ      ValueType
	text     []byte
	isJSON   bool
	blob     []byte
	intVal   int64
	floatVal float64
}

func (v mockValue) Type() ValueType     { return v.typ }
func (v mockValue) Text() []byte        { return v.text }
func (v mockValue) IsJSONSubtype() bool { return v.isJSON }
func (v mockValue) Blob() []byte        { return v.blob }
func (v mockValue) Int64() int64        { return v.intVal }
func (v mockValue) Float64() float64    { return v.floatVal }

func nullValue() Value { return mockValue{typ: TypeNull} }
func jsonValue(s string) Value {
	return mockValue{typ: TypeText, text: []byte(s), isJSON: true}
}
func rawTextValue(s string) Value {
	return mockValue{typ: TypeText, text: []byte(s)}
}
func blobValue(b []byte) Value { return mockValue{typ: TypeBlob, blob: b} }
func intValueOf(n int64) Value { return mockValue{typ: TypeInteger, intVal: n} }
func floatValueOf(f float64) Value { return mockValue{typ: TypeReal, floatVal: f} }
