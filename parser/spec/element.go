package spec

import "strings"

type Namespace uint

const (
	Htmlns Namespace = iota
	Mathmlns
	Svgns
	Xlinkns
	Xmlns
	Xmlnsns
)

// Element is an individual HTML element that gets added to the DOM.
// https://dom.spec.whatwg.org/#interface-element
type Element struct {
	NamespaceURI                     Namespace
	Prefix, LocalName, Id, ClassName string
	Attributes                       *NamedNodeMap
}

// TagName is https://dom.spec.whatwg.org/#dom-element-tagname
func (e *Element) TagName() string {
	name := e.LocalName
	if e.Prefix != "" {
		name = e.Prefix + ":" + name
	}
	if e.NamespaceURI == Htmlns {
		return strings.ToUpper(name)
	}
	return name
}

func (e *Element) HasAttributes() bool { return e.Attributes.Length() > 0 }

// GetAttributeNames returns the qualified names in sorted order.
func (e *Element) GetAttributeNames() []string {
	return sortedKeys(e.Attributes.attrs)
}

// GetAttribute returns "" when the attribute is missing. Use HasAttribute or
// GetAttributeNode to tell a missing attribute from an empty one.
func (e *Element) GetAttribute(qualifiedName string) string {
	if attr := e.Attributes.GetNamedItem(qualifiedName); attr != nil {
		return attr.Value
	}
	return ""
}

func (e *Element) GetAttributeNode(qualifiedName string) *Attr {
	return e.Attributes.GetNamedItem(qualifiedName)
}

func (e *Element) HasAttribute(qualifiedName string) bool {
	return e.Attributes.GetNamedItem(qualifiedName) != nil
}

// SetAttribute is https://dom.spec.whatwg.org/#dom-element-setattribute
func (e *Element) SetAttribute(qualifiedName, value string) {
	if attr := e.Attributes.GetNamedItem(qualifiedName); attr != nil {
		attr.Value = value
	} else {
		e.Attributes.SetNamedItem(NewAttr(e.Attributes.normalize(qualifiedName), value))
	}
	e.reflect(qualifiedName, value)
}

func (e *Element) RemoveAttribute(qualifiedName string) {
	if e.Attributes.RemoveNamedItem(qualifiedName) != nil {
		e.reflect(qualifiedName, "")
	}
}

// ToggleAttribute is https://dom.spec.whatwg.org/#dom-element-toggleattribute
func (e *Element) ToggleAttribute(qualifiedName string, force ...bool) bool {
	has := e.HasAttribute(qualifiedName)
	want := !has
	if len(force) > 0 {
		want = force[0]
	}
	switch {
	case want && !has:
		e.SetAttribute(qualifiedName, "")
	case !want && has:
		e.RemoveAttribute(qualifiedName)
	}
	return want
}

// ClassList returns the whitespace separated tokens of the class attribute.
func (e *Element) ClassList() []string {
	return strings.Fields(e.ClassName)
}

func (e *Element) reflect(qualifiedName, value string) {
	switch e.Attributes.normalize(qualifiedName) {
	case "id":
		e.Id = value
	case "class":
		e.ClassName = value
	}
}
