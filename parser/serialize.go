package parser

import (
	"strings"

	"github.com/heathj/domkit/parser/spec"
)

// voidElements are serialized without children or an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true, "br": true,
	"col": true, "embed": true, "frame": true, "hr": true, "img": true,
	"input": true, "keygen": true, "link": true, "meta": true, "param": true,
	"source": true, "track": true, "wbr": true,
}

// rawTextElements hold text that is written out unescaped.
var rawTextElements = map[string]bool{
	"style": true, "script": true, "xmp": true, "iframe": true, "noembed": true,
	"noframes": true, "plaintext": true, "noscript": true,
}

var (
	attrEscaper = strings.NewReplacer("&", "&amp;", "\u00a0", "&nbsp;", `"`, "&quot;")
	textEscaper = strings.NewReplacer("&", "&amp;", "\u00a0", "&nbsp;", "<", "&lt;", ">", "&gt;")
)

// Serialize returns the markup for the children of n: the inner HTML of an
// element, or the whole document. Attributes are written in name order.
// https://html.spec.whatwg.org/#serialising-html-fragments
func Serialize(n *spec.Node) string {
	var sb strings.Builder
	serializeChildren(&sb, n)
	return sb.String()
}

// SerializeOuter is Serialize including n itself.
func SerializeOuter(n *spec.Node) string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeChildren(sb *strings.Builder, n *spec.Node) {
	if n.NodeType == spec.ElementNode && voidElements[n.LocalName] {
		return
	}
	for _, child := range n.ChildNodes {
		serializeNode(sb, child)
	}
}

func serializeNode(sb *strings.Builder, n *spec.Node) {
	switch n.NodeType {
	case spec.ElementNode:
		sb.WriteString("<" + n.LocalName)
		for _, name := range n.GetAttributeNames() {
			sb.WriteString(" " + name + `="` + attrEscaper.Replace(n.GetAttribute(name)) + `"`)
		}
		sb.WriteString(">")
		if voidElements[n.LocalName] {
			return
		}
		serializeChildren(sb, n)
		sb.WriteString("</" + n.LocalName + ">")
	case spec.TextNode:
		if p := n.ParentNode; p != nil && p.NodeType == spec.ElementNode && rawTextElements[p.LocalName] {
			sb.WriteString(n.Text.Data)
			return
		}
		sb.WriteString(textEscaper.Replace(n.Text.Data))
	case spec.CommentNode:
		sb.WriteString("<!--" + n.Comment.Data + "-->")
	case spec.DocumentTypeNode:
		sb.WriteString("<!DOCTYPE " + n.DocumentType.Name + ">")
	case spec.DocumentNode:
		serializeChildren(sb, n)
	}
}
