package domutil

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Size is a width and height in CSS pixels.
type Size struct {
	Width, Height float64
}

// Ignore selects box model parts TransformDimensions leaves in place. The
// zero value subtracts everything.
type Ignore struct {
	Padding, Margin, Border bool

	PaddingVertical, PaddingHorizontal bool
	MarginVertical, MarginHorizontal   bool
	BorderVertical, BorderHorizontal   bool
}

// ErrUnknownIgnore is returned by Ignore.Set for names it does not know.
var ErrUnknownIgnore = errors.New("unknown ignore flag")

var ignoreFlags = map[string]func(*Ignore) *bool{
	"padding":           func(ig *Ignore) *bool { return &ig.Padding },
	"margin":            func(ig *Ignore) *bool { return &ig.Margin },
	"border":            func(ig *Ignore) *bool { return &ig.Border },
	"paddingVertical":   func(ig *Ignore) *bool { return &ig.PaddingVertical },
	"paddingHorizontal": func(ig *Ignore) *bool { return &ig.PaddingHorizontal },
	"marginVertical":    func(ig *Ignore) *bool { return &ig.MarginVertical },
	"marginHorizontal":  func(ig *Ignore) *bool { return &ig.MarginHorizontal },
	"borderVertical":    func(ig *Ignore) *bool { return &ig.BorderVertical },
	"borderHorizontal":  func(ig *Ignore) *bool { return &ig.BorderHorizontal },
}

// IgnoreNames returns the flag names accepted by Ignore.Set, sorted.
func IgnoreNames() []string {
	names := make([]string, 0, len(ignoreFlags))
	for name := range ignoreFlags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set sets the flag called name, e.g. "padding" or "marginVertical".
func (ig *Ignore) Set(name string, on bool) error {
	field, ok := ignoreFlags[name]
	if !ok {
		return errors.Wrapf(ErrUnknownIgnore, "%q", name)
	}
	*field(ig) = on
	return nil
}

// ParsePixels parses a "<number>px" value. Anything else, including other
// units and keywords such as auto, is NaN.
func ParsePixels(v string) float64 {
	num := strings.TrimSuffix(v, "px")
	if num == v || num == "" || strings.Trim(num, "0123456789.+-eE") != "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Dimensions returns the computed width and height of el.
func Dimensions(sc StyleComputer, el Element) Size {
	style := sc.ComputedStyle(el)
	return Size{
		Width:  ParsePixels(style.GetPropertyValue("width")),
		Height: ParsePixels(style.GetPropertyValue("height")),
	}
}

// TransformDimensions subtracts the padding, margin and border of el from
// dims on both axes, except for the parts selected by ignore. The result is
// not clamped and NaN style values propagate.
func TransformDimensions(sc StyleComputer, el Element, dims Size, ignore ...Ignore) Size {
	var ig Ignore
	if len(ignore) > 0 {
		ig = ignore[0]
	}
	style := sc.ComputedStyle(el)
	sum := func(a, b string) float64 {
		return ParsePixels(style.GetPropertyValue(a)) + ParsePixels(style.GetPropertyValue(b))
	}

	out := dims
	if !ig.Padding && !ig.PaddingVertical {
		out.Height -= sum("padding-top", "padding-bottom")
	}
	if !ig.Margin && !ig.MarginVertical {
		out.Height -= sum("margin-top", "margin-bottom")
	}
	if !ig.Border && !ig.BorderVertical {
		out.Height -= sum("border-top-width", "border-bottom-width")
	}

	if !ig.Padding && !ig.PaddingHorizontal {
		out.Width -= sum("padding-left", "padding-right")
	}
	if !ig.Margin && !ig.MarginHorizontal {
		out.Width -= sum("margin-left", "margin-right")
	}
	if !ig.Border && !ig.BorderHorizontal {
		out.Width -= sum("border-left-width", "border-right-width")
	}
	return out
}
