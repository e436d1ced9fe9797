package parser

import (
	"io"

	"github.com/heathj/domkit/parser/spec"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parser builds a spec.Node tree from an HTML document. Tokenizing and tree
// construction are done by golang.org/x/net/html.
type Parser struct {
	in  io.Reader
	log logrus.FieldLogger
}

func NewParser(htmlIn io.Reader) *Parser {
	return &Parser{
		in:  htmlIn,
		log: logrus.StandardLogger(),
	}
}

// WithLogger replaces the standard logrus logger.
func (p *Parser) WithLogger(log logrus.FieldLogger) *Parser {
	p.log = log
	return p
}

// Start parses the whole input and returns the document node.
func (p *Parser) Start() (*spec.Node, error) {
	root, err := html.Parse(p.in)
	if err != nil {
		return nil, errors.Wrap(err, "parsing document")
	}

	doc := spec.NewDocument()
	b := &builder{doc: doc}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := b.convert(c); n != nil {
			doc.AppendChild(n)
		}
	}
	if doc.Doctype() == nil {
		doc.CompatMode = "BackCompat"
		doc.Mode = "quirks"
	} else {
		doc.CompatMode = "CSS1Compat"
	}

	p.log.WithFields(logrus.Fields{
		"method":   "Start",
		"elements": b.elements,
	}).Debug("document parsed")
	return doc, nil
}

// ParseFragment parses markup as if it were the contents of context and
// returns the detached top level nodes. A nil context parses as body content.
// https://html.spec.whatwg.org/#html-fragment-parsing-algorithm
func ParseFragment(r io.Reader, context *spec.Node) (spec.NodeList, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	var od *spec.Node
	if context != nil {
		od = context.OwnerDocument
		if context.NodeType == spec.DocumentNode {
			od = context
		}
		if context.NodeType == spec.ElementNode {
			ctx.Data = context.LocalName
			ctx.DataAtom = atom.Lookup([]byte(context.LocalName))
			ctx.Namespace = namespaceName(context.NamespaceURI)
		}
	}

	nodes, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, errors.Wrap(err, "parsing fragment")
	}

	b := &builder{doc: od}
	out := make(spec.NodeList, 0, len(nodes))
	for _, n := range nodes {
		if c := b.convert(n); c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

type builder struct {
	doc      *spec.Node
	elements int
}

func (b *builder) convert(n *html.Node) *spec.Node {
	var out *spec.Node
	switch n.Type {
	case html.ElementNode:
		out = spec.NewDOMElement(b.doc, n.Data, namespace(n.Namespace))
		for _, a := range n.Attr {
			if a.Namespace == "" {
				out.SetAttribute(a.Key, a.Val)
				continue
			}
			out.Attributes.SetNamedItem(&spec.Attr{
				Namespace: namespace(a.Namespace),
				Prefix:    a.Namespace,
				LocalName: a.Key,
				Name:      a.Namespace + ":" + a.Key,
				Value:     a.Val,
			})
		}
		b.elements++
	case html.TextNode, html.RawNode:
		return spec.NewTextNode(b.doc, n.Data)
	case html.CommentNode:
		return spec.NewCommentNode(b.doc, n.Data)
	case html.DoctypeNode:
		var pub, sys string
		for _, a := range n.Attr {
			switch a.Key {
			case "public":
				pub = a.Val
			case "system":
				sys = a.Val
			}
		}
		return spec.NewDocTypeNode(b.doc, n.Data, pub, sys)
	default:
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := b.convert(c); child != nil {
			out.AppendChild(child)
		}
	}
	return out
}

func namespace(ns string) spec.Namespace {
	switch ns {
	case "svg":
		return spec.Svgns
	case "math":
		return spec.Mathmlns
	case "xlink":
		return spec.Xlinkns
	case "xml":
		return spec.Xmlns
	case "xmlns":
		return spec.Xmlnsns
	}
	return spec.Htmlns
}

func namespaceName(ns spec.Namespace) string {
	switch ns {
	case spec.Svgns:
		return "svg"
	case spec.Mathmlns:
		return "math"
	}
	return ""
}
