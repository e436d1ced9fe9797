// Package domutil holds small helpers for working with a document tree:
// iterating element sets, attaching (optionally delegated) event handlers,
// reading data- attributes with ancestor fallback and measuring elements
// without their box model.
//
// The document itself is supplied by the caller through the capability
// interfaces below. SpecDocument adapts the parser/spec DOM to them.
package domutil

// Node is anything with a position in a document tree. ParentNode returns
// nil at the root.
type Node interface {
	ParentNode() Node
}

// AttributeReader reports ok=false when the attribute is absent.
type AttributeReader interface {
	GetAttribute(name string) (value string, ok bool)
}

type AttributeWriter interface {
	SetAttribute(name, value string)
}

// Listener receives events dispatched by the host.
type Listener func(ev Event)

// EventTarget registers listeners with the host. Registrations are owned by
// the host; there is no way to remove them through this package.
type EventTarget interface {
	AddEventListener(eventType string, l Listener)
}

// Element is a handle to an element owned by the host document.
type Element interface {
	Node
	AttributeReader
	AttributeWriter
	EventTarget
}

// Event is the host's event. Target is the element the event originated
// from, or nil when it did not originate from an element.
type Event interface {
	Type() string
	Target() Element
}

// ArrayLike is an ordered collection with indexed access.
type ArrayLike interface {
	Len() int
	Item(i int) Element
}

// Querier resolves a selector against the whole document, in document order.
type Querier interface {
	QuerySelectorAll(selector string) ([]Element, error)
}

// Matcher tests a single element against a selector.
type Matcher interface {
	Matches(el Element, selector string) (bool, error)
}

// Style is a computed style lookup keyed by CSS property name.
type Style interface {
	GetPropertyValue(name string) string
}

type StyleComputer interface {
	ComputedStyle(el Element) Style
}

// Document is what event attachment needs from the host: a root to delegate
// to, and selector query and match.
type Document interface {
	EventTarget
	Querier
	Matcher
}
