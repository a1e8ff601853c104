package sqlfn

import (
	"strconv"

	"github.com/xdg-go/bjson/bjson"
)

// ArgCoerce maps one host Value to a *bjson.Parse view, implementing the
// five cases of spec.md §4.8. cache may be nil, in which case JSON-text
// arguments are always parsed fresh instead of looked up.
func ArgCoerce(v Value, cache *bjson.ParseCache, opts bjson.ParseOptions) (*bjson.Parse, bool, error) {
	switch v.Type() {
	case TypeNull:
		return nil, false, nil

	case TypeText:
		text := v.Text()
		if v.IsJSONSubtype() {
			if cache != nil {
				p, err := cache.Get(text)
				if err != nil {
					return nil, true, err
				}
				return p, true, nil
			}
			p, err := bjson.ParseText(text, opts)
			if err != nil {
				return nil, true, err
			}
			return p, true, nil
		}
		return wrapRaw(text), true, nil

	case TypeBlob:
		blob := v.Blob()
		if !looksLikeBJSON(blob) {
			return nil, true, bjson.ErrMalformed
		}
		return bjson.NewView(blob), true, nil

	case TypeInteger:
		n := strconv.FormatInt(v.Int64(), 10)
		return wrapScalar(bjson.KindInt, []byte(n)), true, nil

	case TypeReal:
		f := strconv.FormatFloat(v.Float64(), 'g', -1, 64)
		return wrapScalar(bjson.KindFloat, []byte(f)), true, nil
	}
	return nil, false, nil
}

// wrapRaw builds a single textraw element holding text verbatim, used
// for host text values that do not carry the "is-JSON" subtype tag.
func wrapRaw(text []byte) *bjson.Parse {
	return bjson.NewOwnedElement(bjson.KindTextRaw, text)
}

func wrapScalar(kind bjson.Kind, payload []byte) *bjson.Parse {
	return bjson.NewOwnedElement(kind, payload)
}

// looksLikeBJSON runs the cheap structural sanity check spec.md §4.8
// describes for host blob arguments: the first byte's kind must be one
// of the 13 defined kinds, and the header's declared length must
// exactly match the blob's total length.
func looksLikeBJSON(blob []byte) bool {
	if len(blob) == 0 {
		return false
	}
	return bjson.QuickValidate(blob)
}
