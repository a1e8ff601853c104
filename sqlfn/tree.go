package sqlfn

import "github.com/xdg-go/bjson/bjson"

// WalkTree implements walk_tree(j [, root]): a pre-order traversal of
// the entire subtree rooted at root (default "$"), yielding one row per
// element including containers themselves (§6.5).
func WalkTree(p *bjson.Parse, root *bjson.Path) ([]Row, error) {
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
	w := &treeWalker{buf: buf, nextID: 1}
	row, err := w.visit(off, -1, nil, "$", "")
	if err != nil {
		return nil, err
	}
	w.rows = append(w.rows, row)
	if err := w.descend(off, row.ID, "$"); err != nil {
		return nil, err
	}
	return w.rows, nil
}

type treeWalker struct {
	buf    []byte
	rows   []Row
	nextID int64
}

func (w *treeWalker) visit(off int, parent int64, key Value, fullKey, path string) (Row, error) {
	row, err := buildRow(w.buf, off, w.nextID, parent, "")
	if err != nil {
		return Row{}, err
	}
	row.Key = key
	row.FullKey = fullKey
	row.Path = path
	w.nextID++
	return row, nil
}

// descend visits every child of the container at off (a no-op if off
// is not a container), recursing pre-order.
func (w *treeWalker) descend(off int, parentID int64, parentFullKey string) error {
	kind, err := bjson.ElementHeaderKind(w.buf, off)
	if err != nil {
		return err
	}
	if !kind.IsContainer() {
		return nil
	}
	children, err := bjson.ChildOffsets(w.buf, off)
	if err != nil {
		return err
	}
	if kind == bjson.KindObject {
		for i := 0; i+1 < len(children); i += 2 {
			labelOff, valueOff := children[i], children[i+1]
			_, label, err := bjson.ScalarText(w.buf, labelOff)
			if err != nil {
				return err
			}
			fullKey := parentFullKey + "." + string(label)
			row, err := w.visit(valueOff, parentID, textValue(label), fullKey, parentFullKey)
			if err != nil {
				return err
			}
			w.rows = append(w.rows, row)
			if err := w.descend(valueOff, row.ID, fullKey); err != nil {
				return err
			}
		}
		return nil
	}
	for i, childOff := range children {
		fullKey := parentFullKey + "[" + itoa(i) + "]"
		row, err := w.visit(childOff, parentID, intValue(int64(i)), fullKey, parentFullKey)
		if err != nil {
			return err
		}
		w.rows = append(w.rows, row)
		if err := w.descend(childOff, row.ID, fullKey); err != nil {
			return err
		}
	}
	return nil
}
