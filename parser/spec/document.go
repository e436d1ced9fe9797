package spec

import "strings"

// Document is https://dom.spec.whatwg.org/#interface-document
type Document struct {
	URL, DocumentURI                      string
	CompatMode, CharacterSet, ContentType string

	Mode string
	Type string
}

// CreateElement creates an HTML element owned by n, which must be a document.
// https://dom.spec.whatwg.org/#dom-document-createelement
func (n *Node) CreateElement(localName string) *Node {
	return NewDOMElement(n.ownerDocument(), strings.ToLower(localName), Htmlns)
}

func (n *Node) CreateTextNode(data string) *Node {
	return NewTextNode(n.ownerDocument(), data)
}

func (n *Node) CreateComment(data string) *Node {
	return NewCommentNode(n.ownerDocument(), data)
}

// DocumentElement is https://dom.spec.whatwg.org/#dom-document-documentelement
func (n *Node) DocumentElement() *Node {
	doc := n.ownerDocument()
	if doc == nil {
		return nil
	}
	for _, child := range doc.ChildNodes {
		if child.NodeType == ElementNode {
			return child
		}
	}
	return nil
}

// Doctype is https://dom.spec.whatwg.org/#dom-document-doctype
func (n *Node) Doctype() *Node {
	doc := n.ownerDocument()
	if doc == nil {
		return nil
	}
	for _, child := range doc.ChildNodes {
		if child.NodeType == DocumentTypeNode {
			return child
		}
	}
	return nil
}

// Head is https://html.spec.whatwg.org/#dom-document-head
func (n *Node) Head() *Node {
	return n.documentChild("head")
}

// Body is https://html.spec.whatwg.org/#dom-document-body
func (n *Node) Body() *Node {
	return n.documentChild("body")
}

func (n *Node) documentChild(name string) *Node {
	html := n.DocumentElement()
	if html == nil {
		return nil
	}
	for _, child := range html.ChildNodes {
		if child.NodeType == ElementNode && child.LocalName == name {
			return child
		}
	}
	return nil
}

// GetElementByID is https://dom.spec.whatwg.org/#dom-nonelementparentnode-getelementbyid
func (n *Node) GetElementByID(id string) *Node {
	it := n.descendants(ShowElement)
	for d := it.NextNode(); d != nil; d = it.NextNode() {
		if d.Id == id {
			return d
		}
	}
	return nil
}

// GetElementsByTagName is https://dom.spec.whatwg.org/#dom-document-getelementsbytagname
func (n *Node) GetElementsByTagName(qualifiedName string) NodeList {
	var out NodeList
	it := n.descendants(ShowElement)
	for d := it.NextNode(); d != nil; d = it.NextNode() {
		if qualifiedName == "*" || strings.EqualFold(d.LocalName, qualifiedName) {
			out = append(out, d)
		}
	}
	return out
}

// ownerDocument returns n itself for document nodes.
func (n *Node) ownerDocument() *Node {
	if n.NodeType == DocumentNode {
		return n
	}
	if n.OwnerDocument != nil {
		return n.OwnerDocument
	}
	if root := n.getRoot(); root.NodeType == DocumentNode {
		return root
	}
	return nil
}
