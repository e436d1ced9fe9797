package spec

import "strings"

func NewNamedNodeMap(oe *Node) *NamedNodeMap {
	return &NamedNodeMap{
		attrs:             map[string]*Attr{},
		AssociatedElement: oe,
	}
}

// NamedNodeMap is https://dom.spec.whatwg.org/#interface-namednodemap
type NamedNodeMap struct {
	attrs             map[string]*Attr
	AssociatedElement *Node
}

func (n *NamedNodeMap) Length() int {
	return len(n.attrs)
}

// Item returns the attribute at index i in name order.
func (n *NamedNodeMap) Item(i int) *Attr {
	keys := sortedKeys(n.attrs)
	if i < 0 || i >= len(keys) {
		return nil
	}
	return n.attrs[keys[i]]
}

func (n *NamedNodeMap) GetNamedItem(qn string) *Attr {
	return n.getAttributeByName(qn)
}

// normalize lowercases qualified names on HTML elements in HTML documents.
// https://dom.spec.whatwg.org/#concept-element-attributes-get-by-name
func (n *NamedNodeMap) normalize(qn string) string {
	ae := n.AssociatedElement
	if ae != nil && ae.Element != nil && ae.Element.NamespaceURI == Htmlns &&
		(ae.OwnerDocument == nil || ae.OwnerDocument.Document == nil || ae.OwnerDocument.Type == "html") {
		return strings.ToLower(qn)
	}
	return qn
}

func (n *NamedNodeMap) getAttributeByName(qn string) *Attr {
	if v, ok := n.attrs[n.normalize(qn)]; ok {
		return v
	}

	return nil
}

func (n *NamedNodeMap) getAttributeByNSLocalName(ns Namespace, ln string) *Attr {
	for _, v := range n.attrs {
		if v.Namespace == ns && v.LocalName == ln {
			return v
		}
	}

	return nil
}

// SetNamedItem stores s and returns the attribute it replaced, if any.
func (n *NamedNodeMap) SetNamedItem(s *Attr) *Attr {
	if s == nil {
		return nil
	}
	s.OwnerElement = n.AssociatedElement

	old := n.attrs[s.Name]
	n.attrs[s.Name] = s
	return old
}

func (n *NamedNodeMap) GetNamedItemNS(ns Namespace, ln string) *Attr {
	return n.getAttributeByNSLocalName(ns, ln)
}

func (n *NamedNodeMap) RemoveNamedItem(qn string) *Attr {
	attr := n.getAttributeByName(qn)
	if attr == nil {
		return nil
	}
	delete(n.attrs, attr.Name)
	attr.OwnerElement = nil
	return attr
}
