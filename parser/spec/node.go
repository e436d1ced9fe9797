package spec

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

// NewDocument returns an empty HTML document node.
func NewDocument() *Node {
	return &Node{
		NodeType: DocumentNode,
		NodeName: "#document",
		Document: &Document{Type: "html", Mode: "no-quirks", ContentType: "text/html"},
	}
}

// NewCommentNode returns a comment node with its Data section filled.
func NewCommentNode(od *Node, data string) *Node {
	return &Node{
		NodeType:      CommentNode,
		NodeName:      "#comment",
		OwnerDocument: od,
		Comment:       NewComment(data),
	}
}

func NewTextNode(od *Node, text string) *Node {
	return &Node{
		NodeType:      TextNode,
		NodeName:      "#text",
		OwnerDocument: od,
		Text:          NewText(text),
	}
}

func NewDocTypeNode(od *Node, name, pub, sys string) *Node {
	return &Node{
		NodeType:      DocumentTypeNode,
		NodeName:      name,
		OwnerDocument: od,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: pub,
			SystemID: sys,
		},
	}
}

func NewDOMElement(od *Node, name string, namespace Namespace, optionals ...string) *Node {
	var prefix string
	if len(optionals) >= 1 {
		prefix = optionals[0]
	}
	n := &Node{
		NodeType:      ElementNode,
		NodeName:      name,
		OwnerDocument: od,
		Element: &Element{
			NamespaceURI: namespace,
			Prefix:       prefix,
			LocalName:    name,
		},
	}

	n.Attributes = NewNamedNodeMap(n)
	return n
}

// https://dom.spec.whatwg.org/#node
type Node struct {
	NodeType                                                        NodeType
	NodeName                                                        string
	BaseURI                                                         string
	OwnerDocument                                                   *Node
	ParentNode, FirstChild, LastChild, PreviousSibling, NextSibling *Node
	ChildNodes                                                      NodeList

	EventTarget

	// Node types
	*Element
	*Text
	*Comment
	*Document
	*DocumentType
}

func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<"
		switch node.Element.NamespaceURI {
		case Svgns:
			e += "svg "
		case Mathmlns:
			e += "math "
		}
		e += node.NodeName + ">"
		if node.Attributes.Length() == 0 {
			return e
		}
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		for _, name := range node.GetAttributeNames() {
			attr := node.Attributes.GetNamedItem(name)
			var ns string
			switch attr.Namespace {
			case Xmlnsns:
				ns = "xmlns "
			case Xmlns:
				ns = "xml "
			case Xlinkns:
				ns = "xlink "
			}
			e += "\n" + spaces + ns + name + "=\"" + attr.Value + "\""
		}
		return e
	case TextNode:
		return "\"" + node.Text.Data + "\""
	case CommentNode:
		return "<!-- " + node.Comment.Data + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + node.DocumentType.Name
		if node.DocumentType.PublicID != "" || node.DocumentType.SystemID != "" {
			d += " \"" + node.DocumentType.PublicID + "\" \"" + node.DocumentType.SystemID + "\""
		}
		return d + ">"
	case DocumentNode:
		return "#document"
	default:
		logrus.WithField("method", "serialize").Warnf("unknown node type %d", node.NodeType)
		return ""
	}
}

func (n *Node) serialize(ident int) string {
	ser := serializeNodeType(n, ident+1) + "\n"
	if n.NodeType != DocumentNode {
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		ser = spaces + ser
	}
	for _, child := range n.ChildNodes {
		ser += child.serialize(ident + 1)
	}

	return ser
}

// String dumps the subtree in the html5lib tree-construction test format.
func (n *Node) String() string {
	return strings.TrimRight(n.serialize(0), "\n")
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

// ParentElement is https://dom.spec.whatwg.org/#dom-node-parentelement
func (n *Node) ParentElement() *Node {
	if n.ParentNode == nil || n.ParentNode.NodeType != ElementNode {
		return nil
	}
	return n.ParentNode
}

// InsertBefore inserts on before child. A nil child appends. It returns nil
// and leaves the tree unchanged when child is not a child of n or when on is
// an inclusive ancestor of n.
func (n *Node) InsertBefore(on, child *Node) *Node {
	if on == child {
		if child.ParentNode != n {
			return nil
		}
		child = on.NextSibling
	}
	if child == nil {
		return n.AppendChild(on)
	}
	if n.ChildNodes.Contains(child) == -1 || on.isInclusiveAncestorOf(n) {
		return nil
	}
	if on.ParentNode != nil {
		on.ParentNode.RemoveChild(on)
	}
	i := n.ChildNodes.Contains(child)

	n.ChildNodes.WedgeIn(i, on)
	on.ParentNode = n
	on.NextSibling = child
	on.PreviousSibling = child.PreviousSibling
	if child.PreviousSibling != nil {
		child.PreviousSibling.NextSibling = on
	}
	child.PreviousSibling = on
	if i == 0 {
		n.FirstChild = on
	}
	return on
}

// AppendChild returns nil and leaves the tree unchanged when on is an
// inclusive ancestor of n.
// https://dom.spec.whatwg.org/#concept-node-append
func (n *Node) AppendChild(on *Node) *Node {
	if on.isInclusiveAncestorOf(n) {
		return nil
	}
	if on.ParentNode != nil {
		on.ParentNode.RemoveChild(on)
	}
	on.PreviousSibling = n.LastChild
	on.NextSibling = nil
	if n.LastChild != nil {
		n.LastChild.NextSibling = on
	} else {
		n.FirstChild = on
	}
	on.ParentNode = n
	n.LastChild = on
	n.ChildNodes = append(n.ChildNodes, on)
	return on
}

func (n *Node) RemoveChild(child *Node) *Node {
	node := n.ChildNodes.Remove(n.ChildNodes.Contains(child))
	if node == nil {
		return nil
	}
	if node.PreviousSibling != nil {
		node.PreviousSibling.NextSibling = node.NextSibling
	} else {
		n.FirstChild = node.NextSibling
	}
	if node.NextSibling != nil {
		node.NextSibling.PreviousSibling = node.PreviousSibling
	} else {
		n.LastChild = node.PreviousSibling
	}
	node.ParentNode = nil
	node.PreviousSibling = nil
	node.NextSibling = nil
	return node
}

// TextContent concatenates the data of every descendant text node.
func (n *Node) TextContent() string {
	switch n.NodeType {
	case TextNode:
		return n.Text.Data
	case CommentNode:
		return n.Comment.Data
	}
	var sb strings.Builder
	it := n.descendants(ShowText)
	for d := it.NextNode(); d != nil; d = it.NextNode() {
		sb.WriteString(d.Text.Data)
	}
	return sb.String()
}

// https://dom.spec.whatwg.org/#concept-tree-inclusive-ancestor
func (n *Node) isInclusiveAncestorOf(d *Node) bool {
	for ; d != nil; d = d.ParentNode {
		if d == n {
			return true
		}
	}
	return false
}

func (n *Node) getRoot() *Node {
	var prev *Node
	for i := n; i != nil; i = i.ParentNode {
		prev = i
	}

	return prev
}

func sortedKeys(m map[string]*Attr) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
