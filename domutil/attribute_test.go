package domutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeNode can read attributes only when attrs is non-nil.
type fakeNode struct {
	attrs  map[string]string
	parent *fakeNode
}

func (f *fakeNode) ParentNode() Node {
	if f.parent == nil {
		return nil
	}
	if f.parent.attrs == nil {
		return bareNode{n: f.parent}
	}
	return f.parent
}

func (f *fakeNode) GetAttribute(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

type bareNode struct{ n *fakeNode }

func (b bareNode) ParentNode() Node { return b.n.ParentNode() }

func TestDataName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"foo", "data-foo"},
		{"data-foo", "data-foo"},
		{"dataset", "data-dataset"},
		{"", "data-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DataName(tt.in))
	}
}

func TestAttributeRoundTrip(t *testing.T) {
	doc, _ := loadDoc(t, fixture)
	c := mustElement(t, doc, "#c")

	SetAttribute(c, "foo", "bar")
	v, ok := Attribute(c, "foo")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)
	assert.Equal(t, "bar", UnwrapNode(c).GetAttribute("data-foo"))

	SetAttribute(c, "data-count", 3)
	v, _ = Attribute(c, "count")
	assert.Equal(t, "3", v)
	assert.False(t, UnwrapNode(c).HasAttribute("data-data-count"))

	// writes never touch ancestors
	v, _ = Attribute(mustElement(t, doc, "#list"), "count")
	assert.Equal(t, "", v)
}

func TestAttributeAncestorFallback(t *testing.T) {
	doc, _ := loadDoc(t, fixture)

	tests := []struct {
		selector, name string
		want           string
		found          bool
	}{
		{"#a", "foo", "x", true},
		{"#b", "foo", "x", true}, // empty counts as absent
		{"#outer", "data-foo", "x", true},
		{"#a", "theme", "dark", true},
		{"#a", "missing", "", false},
		{"#a", "empty", "", false},
		{"#outer", "empty", "", false},
		{"#box", "foo", "", false},
	}
	for _, tt := range tests {
		v, ok := Attribute(mustElement(t, doc, tt.selector), tt.name)
		assert.Equal(t, tt.want, v, "%s %s", tt.selector, tt.name)
		assert.Equal(t, tt.found, ok, "%s %s", tt.selector, tt.name)
	}
}

func TestAttributeDetached(t *testing.T) {
	doc, _ := loadDoc(t, fixture)
	n := doc.CreateElement("span")
	el := WrapNode(n)

	_, ok := Attribute(el, "theme")
	assert.False(t, ok)

	mustQuery(t, doc, "#c").AppendChild(n)
	v, ok := Attribute(el, "theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestAttributeStopsAtNonReader(t *testing.T) {
	top := &fakeNode{attrs: map[string]string{"data-foo": "top"}}
	middle := &fakeNode{parent: top}
	leaf := &fakeNode{attrs: map[string]string{"data-foo": ""}, parent: middle}

	_, ok := Attribute(leaf, "foo")
	assert.False(t, ok)

	middle.attrs = map[string]string{}
	v, ok := Attribute(leaf, "foo")
	assert.True(t, ok)
	assert.Equal(t, "top", v)
}
