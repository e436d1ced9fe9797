package domutil

import (
	"github.com/pkg/errors"
)

// ErrUnsupportedElements is returned for element sets that are neither a
// selector, an Element, an ArrayLike nor a []Element.
var ErrUnsupportedElements = errors.New("unsupported element set")

// Selector is a selector string. Plain strings are accepted wherever a
// Selector is.
type Selector string

// Resolve normalizes elements into an ordered slice. Selectors are queried
// against the whole document; a single Element becomes a slice of one.
func Resolve(q Querier, elements interface{}) ([]Element, error) {
	switch v := elements.(type) {
	case string:
		return query(q, v)
	case Selector:
		return query(q, string(v))
	case []Element:
		return v, nil
	case ArrayLike:
		out := make([]Element, v.Len())
		for i := range out {
			out[i] = v.Item(i)
		}
		return out, nil
	case Element:
		return []Element{v}, nil
	case nil:
		return nil, errors.Wrap(ErrUnsupportedElements, "nil")
	}
	return nil, errors.Wrapf(ErrUnsupportedElements, "%T", elements)
}

// ForEach calls fn for every element of the resolved set, in order. An
// empty set is not an error.
func ForEach(q Querier, elements interface{}, fn func(el Element, i int, all []Element)) error {
	all, err := Resolve(q, elements)
	if err != nil {
		return err
	}
	for i, el := range all {
		fn(el, i, all)
	}
	return nil
}

func query(q Querier, selector string) ([]Element, error) {
	if q == nil {
		return nil, errors.Errorf("no document to query %q against", selector)
	}
	els, err := q.QuerySelectorAll(selector)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %q", selector)
	}
	return els, nil
}

// selectorOf reports whether elements is a selector string.
func selectorOf(elements interface{}) (string, bool) {
	switch v := elements.(type) {
	case string:
		return v, true
	case Selector:
		return string(v), true
	}
	return "", false
}
