package sqlfn

import "github.com/xdg-go/bjson/bjson"

// ArrayAgg accumulates group_array(v): a growing BJSON array body, one
// element appended per step() call (§6.4).
type ArrayAgg struct {
	env  Env
	body []byte
}

// NewArrayAgg returns a fresh, empty accumulator.
func NewArrayAgg(env Env) *ArrayAgg { return &ArrayAgg{env: env} }

// Step appends v's coerced BJSON to the accumulator.
func (a *ArrayAgg) Step(v Value) error {
	p, err := a.env.coerce(v)
	if err != nil {
		return err
	}
	if p == nil {
		a.body = bjson.AppendElement(a.body, bjson.KindNull, nil)
		return nil
	}
	a.body = append(a.body, p.Bytes()...)
	return nil
}

// Inverse implements the window-function inverse: it removes the first
// element by scanning for the first top-level comma, i.e. the end of
// the first complete child element (§6.4).
func (a *ArrayAgg) Inverse() error {
	if len(a.body) == 0 {
		return nil
	}
	end, err := bjson.CloneElementEnd(a.body, 0)
	if err != nil {
		return err
	}
	a.body = append([]byte(nil), a.body[end:]...)
	return nil
}

// Value renders the accumulator's current state as an array.
func (a *ArrayAgg) Value(asBlob bool) (Result, error) {
	elem := bjson.WrapContainer(bjson.KindArray, a.body)
	return renderOrBlob(bjson.NewView(elem), asBlob)
}

// ObjectAgg accumulates group_object(k, v), mirroring ArrayAgg but over
// (label, value) pairs.
type ObjectAgg struct {
	env  Env
	body []byte
}

// NewObjectAgg returns a fresh, empty accumulator.
func NewObjectAgg(env Env) *ObjectAgg { return &ObjectAgg{env: env} }

// Step appends the (k, v) pair's coerced BJSON to the accumulator. k
// must coerce to a text element.
func (a *ObjectAgg) Step(k, v Value) error {
	kp, err := a.env.coerce(k)
	if err != nil {
		return err
	}
	if kp == nil {
		return errNonTextLabel()
	}
	kind, err := bjson.ElementHeaderKind(kp.Bytes(), 0)
	if err != nil {
		return err
	}
	if !kind.IsText() {
		return errNonTextLabel()
	}
	a.body = append(a.body, kp.Bytes()...)

	vp, err := a.env.coerce(v)
	if err != nil {
		return err
	}
	if vp == nil {
		a.body = bjson.AppendElement(a.body, bjson.KindNull, nil)
		return nil
	}
	a.body = append(a.body, vp.Bytes()...)
	return nil
}

// Inverse removes the first (label, value) pair, by scanning for the
// end of the first two top-level elements.
func (a *ObjectAgg) Inverse() error {
	if len(a.body) == 0 {
		return nil
	}
	labelEnd, err := bjson.CloneElementEnd(a.body, 0)
	if err != nil {
		return err
	}
	valueEnd, err := bjson.CloneElementEnd(a.body, labelEnd)
	if err != nil {
		return err
	}
	a.body = append([]byte(nil), a.body[valueEnd:]...)
	return nil
}

// Value renders the accumulator's current state as an object.
func (a *ObjectAgg) Value(asBlob bool) (Result, error) {
	elem := bjson.WrapContainer(bjson.KindObject, a.body)
	return renderOrBlob(bjson.NewView(elem), asBlob)
}
