package domutil

import (
	"github.com/heathj/domkit/parser/spec"
)

// SpecDocument adapts a parser/spec document node to Document and
// StyleComputer.
type SpecDocument struct {
	doc *spec.Node
}

func NewSpecDocument(doc *spec.Node) *SpecDocument {
	return &SpecDocument{doc: doc}
}

// Node returns the wrapped document node.
func (d *SpecDocument) Node() *spec.Node { return d.doc }

func (d *SpecDocument) ParentNode() Node { return nil }

func (d *SpecDocument) AddEventListener(eventType string, l Listener) {
	d.doc.AddEventListener(eventType, adaptListener(l), false)
}

func (d *SpecDocument) QuerySelectorAll(selector string) ([]Element, error) {
	nl, err := d.doc.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return Elements(nl), nil
}

// Matches returns false for elements that do not belong to a spec DOM.
func (d *SpecDocument) Matches(el Element, selector string) (bool, error) {
	n := UnwrapNode(el)
	if n == nil {
		return false, nil
	}
	return n.Matches(selector)
}

func (d *SpecDocument) ComputedStyle(el Element) Style {
	n := UnwrapNode(el)
	if n == nil {
		return spec.NewCSSStyleDeclaration()
	}
	return n.ComputedStyle()
}

// WrapNode returns the Element for n, or nil if n is not an element.
func WrapNode(n *spec.Node) Element {
	if n == nil || n.NodeType != spec.ElementNode {
		return nil
	}
	return specElement{n: n}
}

// UnwrapNode returns the spec node behind el, or nil if el is not backed by
// one.
func UnwrapNode(el Element) *spec.Node {
	if se, ok := el.(specElement); ok {
		return se.n
	}
	return nil
}

// Elements wraps the element nodes of nl, skipping everything else.
func Elements(nl spec.NodeList) []Element {
	out := make([]Element, 0, len(nl))
	for _, n := range nl {
		if el := WrapNode(n); el != nil {
			out = append(out, el)
		}
	}
	return out
}

type specElement struct {
	n *spec.Node
}

func (e specElement) ParentNode() Node {
	p := e.n.ParentNode
	switch {
	case p == nil:
		return nil
	case p.NodeType == spec.ElementNode:
		return specElement{n: p}
	default:
		return specNode{n: p}
	}
}

func (e specElement) GetAttribute(name string) (string, bool) {
	attr := e.n.GetAttributeNode(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

func (e specElement) SetAttribute(name, value string) {
	e.n.SetAttribute(name, value)
}

func (e specElement) AddEventListener(eventType string, l Listener) {
	e.n.AddEventListener(eventType, adaptListener(l), false)
}

func (e specElement) String() string {
	return e.n.TagName()
}

// specNode is a non-element ancestor such as the document or a fragment.
// It cannot read attributes, which ends an attribute walk.
type specNode struct {
	n *spec.Node
}

func (s specNode) ParentNode() Node {
	if s.n.ParentNode == nil {
		return nil
	}
	return specNode{n: s.n.ParentNode}
}

type specEvent struct {
	ev *spec.Event
}

func (e specEvent) Type() string    { return e.ev.Type }
func (e specEvent) Target() Element { return WrapNode(e.ev.Target) }

// NativeEvent returns the spec event behind ev, or nil.
func NativeEvent(ev Event) *spec.Event {
	if se, ok := ev.(specEvent); ok {
		return se.ev
	}
	return nil
}

func adaptListener(l Listener) spec.EventListener {
	return func(ev *spec.Event) {
		l(specEvent{ev: ev})
	}
}
