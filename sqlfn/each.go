package sqlfn

import "github.com/xdg-go/bjson/bjson"

// Row is one output row of walk_each/walk_tree, in the fixed column
// order spec.md §6.5 names: key, value, type, atom, id, parent,
// fullkey, path (json/root are hidden and bound from the call's
// arguments, not produced here).
type Row struct {
	Key      Value  // integer index (array) or text label (object); null at the root
	Value    Result // JSON text of the element (containers) or a host-typed scalar
	Type     string // collapsed kind name, as Type() reports it
	Atom     *Result // non-nil, same as Value, only when the element is a scalar
	ID       int64   // a stable per-row identifier, unique within one call
	Parent   int64   // the id of the enclosing row, or -1 at the root
	FullKey  string  // the abbreviated path from the call's root to this element
	Path     string  // the path from the call's root to this element's *parent*
}

// WalkEach implements walk_each(j [, root]): one row per immediate
// child of the element at root (default "$").
func WalkEach(p *bjson.Parse, root *bjson.Path) ([]Row, error) {
	off := 0
	if root != nil {
		o, found, err := bjson.Navigate(p.Bytes(), 0, root)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, nil
		}
		off = o
	}
	buf := p.Bytes()
	kind, err := bjson.ElementHeaderKind(buf, off)
	if err != nil {
		return nil, err
	}
	if !kind.IsContainer() {
		return nil, nil
	}
	children, err := bjson.ChildOffsets(buf, off)
	if err != nil {
		return nil, err
	}
	isObject := kind == bjson.KindObject

	var rows []Row
	nextID := int64(1)
	if isObject {
		for i := 0; i+1 < len(children); i += 2 {
			labelOff, valueOff := children[i], children[i+1]
			_, label, err := bjson.ScalarText(buf, labelOff)
			if err != nil {
				return nil, err
			}
			row, err := buildRow(buf, valueOff, nextID, 0, pathSegmentLabel(string(label)))
			if err != nil {
				return nil, err
			}
			row.Key = textValue(label)
			row.FullKey = "$." + string(label)
			row.Path = "$"
			rows = append(rows, row)
			nextID++
		}
	} else {
		for i, off := range children {
			row, err := buildRow(buf, off, nextID, 0, "")
			if err != nil {
				return nil, err
			}
			row.Key = intValue(int64(i))
			row.FullKey = indexFullKey(i)
			row.Path = "$"
			rows = append(rows, row)
			nextID++
		}
	}
	return rows, nil
}

func pathSegmentLabel(label string) string { return label }

func indexFullKey(i int) string {
	return "$[" + itoa(i) + "]"
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// buildRow fills the columns common to every row: value, type, atom,
// id, parent.
func buildRow(buf []byte, off int, id, parent int64, _ string) (Row, error) {
	kind, err := bjson.ElementHeaderKind(buf, off)
	if err != nil {
		return Row{}, err
	}
	res, err := renderOrBlob(bjson.ViewAt(buf, off), false)
	if err != nil {
		return Row{}, err
	}
	row := Row{
		Value:  res,
		Type:   collapsedTypeName(kind),
		ID:     id,
		Parent: parent,
	}
	if !kind.IsContainer() {
		atom := res
		row.Atom = &atom
	}
	return row, nil
}

// simple Value implementations for rows sqlfn constructs itself (the
// key column), since these never pass back through ArgCoerce.
type textValue []byte

func (t textValue) Type() ValueType      { return TypeText }
func (t textValue) Text() []byte         { return t }
func (t textValue) IsJSONSubtype() bool  { return false }
func (t textValue) Blob() []byte         { return nil }
func (t textValue) Int64() int64         { return 0 }
func (t textValue) Float64() float64     { return 0 }

type intValue int64

func (n intValue) Type() ValueType     { return TypeInteger }
func (n intValue) Text() []byte        { return nil }
func (n intValue) IsJSONSubtype() bool { return false }
func (n intValue) Blob() []byte        { return nil }
func (n intValue) Int64() int64        { return int64(n) }
func (n intValue) Float64() float64    { return float64(n) }
