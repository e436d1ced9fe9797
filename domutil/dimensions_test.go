package domutil

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParsePixels(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12px", 12},
		{"12.5px", 12.5},
		{"-3px", -3},
		{"0px", 0},
		{".5px", 0.5},
		{"1e2px", 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePixels(tt.in), tt.in)
	}

	for _, in := range []string{"", "px", "auto", "12", "1em", "50%", "infpx", "NaNpx", "0x10px", " 12px"} {
		assert.True(t, math.IsNaN(ParsePixels(in)), in)
	}
}

func TestDimensions(t *testing.T) {
	doc, sd := loadDoc(t, fixture)
	box := mustElement(t, doc, "#box")

	first := Dimensions(sd, box)
	assert.Equal(t, Size{Width: 100, Height: 50}, first)
	assert.Equal(t, first, Dimensions(sd, box))

	auto := Dimensions(sd, mustElement(t, doc, "#plain"))
	assert.True(t, math.IsNaN(auto.Width))
	assert.True(t, math.IsNaN(auto.Height))
}

func TestTransformDimensions(t *testing.T) {
	doc, sd := loadDoc(t, fixture)
	// padding 5/10, margin 1 2 3 4, border 2 on every side
	box := mustElement(t, doc, "#box")
	dims := Size{Width: 100, Height: 50}

	tests := []struct {
		name   string
		ignore []Ignore
		want   Size
	}{
		{"everything", nil, Size{Width: 70, Height: 32}},
		{"zero ignore", []Ignore{{}}, Size{Width: 70, Height: 32}},
		{"padding", []Ignore{{Padding: true}}, Size{Width: 90, Height: 42}},
		{"margin", []Ignore{{Margin: true}}, Size{Width: 76, Height: 36}},
		{"border", []Ignore{{Border: true}}, Size{Width: 74, Height: 36}},
		{"margin vertical", []Ignore{{MarginVertical: true}}, Size{Width: 70, Height: 36}},
		{"padding horizontal", []Ignore{{PaddingHorizontal: true}}, Size{Width: 90, Height: 32}},
		{"border vertical", []Ignore{{BorderVertical: true}}, Size{Width: 70, Height: 36}},
		{"mixed", []Ignore{{Border: true, PaddingHorizontal: true}}, Size{Width: 94, Height: 36}},
		{"all", []Ignore{{Padding: true, Margin: true, Border: true}}, dims},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TransformDimensions(sd, box, dims, tt.ignore...))
		})
	}
}

func TestTransformDimensionsPassthrough(t *testing.T) {
	doc, sd := loadDoc(t, fixture)
	box := mustElement(t, doc, "#box")

	got := TransformDimensions(sd, box, Size{Width: 10, Height: 10})
	assert.Equal(t, Size{Width: -20, Height: -8}, got)

	// unset box properties compute to 0px
	plain := mustElement(t, doc, "#plain")
	assert.Equal(t, Size{Width: 10, Height: 10}, TransformDimensions(sd, plain, Size{Width: 10, Height: 10}))

	UnwrapNode(plain).SetAttribute("style", "padding-top: 1em")
	got = TransformDimensions(sd, plain, Size{Width: 10, Height: 10})
	assert.True(t, math.IsNaN(got.Height))
	assert.Equal(t, float64(10), got.Width)
}

func TestTransformDimensionsBorderStyle(t *testing.T) {
	doc, sd := loadDoc(t, fixture)
	n := mustQuery(t, doc, "#plain")
	el := WrapNode(n)
	dims := Size{Width: 20, Height: 20}

	n.SetAttribute("style", "border-width: 4px")
	assert.Equal(t, dims, TransformDimensions(sd, el, dims))

	n.SetAttribute("style", "border: thin solid red")
	assert.Equal(t, Size{Width: 18, Height: 18}, TransformDimensions(sd, el, dims))

	n.SetAttribute("style", "border-left: thick dashed")
	assert.Equal(t, Size{Width: 15, Height: 20}, TransformDimensions(sd, el, dims))
}

func TestIgnoreSet(t *testing.T) {
	var ig Ignore
	for _, name := range IgnoreNames() {
		assert.NoError(t, ig.Set(name, true), name)
	}
	assert.Equal(t, Ignore{
		Padding: true, Margin: true, Border: true,
		PaddingVertical: true, PaddingHorizontal: true,
		MarginVertical: true, MarginHorizontal: true,
		BorderVertical: true, BorderHorizontal: true,
	}, ig)

	assert.NoError(t, ig.Set("margin", false))
	assert.False(t, ig.Margin)

	err := ig.Set("Padding", true)
	assert.True(t, errors.Is(err, ErrUnknownIgnore))
}
