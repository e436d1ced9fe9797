package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeIterator(t *testing.T) {
	doc := testTree()

	it := doc.CreateNodeIterator(ShowElement, nil)
	var names []string
	for n := it.NextNode(); n != nil; n = it.NextNode() {
		names = append(names, n.LocalName)
	}
	assert.Equal(t, []string{"html", "body", "div", "ul", "li", "li", "p", "span"}, names)

	// walking back starts at the current node
	assert.Equal(t, "span", it.PreviousNode().LocalName)
	assert.Equal(t, "p", it.PreviousNode().LocalName)
	assert.Equal(t, "p", it.NextNode().LocalName)
	assert.Same(t, doc, it.Root())
}

func TestNodeIteratorRootAndFilter(t *testing.T) {
	doc := testTree()
	main := doc.GetElementByID("main")
	main.AppendChild(doc.CreateTextNode("tail"))

	it := main.CreateNodeIterator(ShowAll, func(n *Node) bool {
		return n.NodeType == TextNode || n.Id != ""
	})
	var got []string
	for n := it.NextNode(); n != nil; n = it.NextNode() {
		if n.NodeType == TextNode {
			got = append(got, n.Text.Data)
			continue
		}
		got = append(got, n.Id)
	}
	assert.Equal(t, []string{"main", "one", "two", "inner", "tail"}, got)

	for n := it.PreviousNode(); n != nil; n = it.PreviousNode() {
		got = got[:len(got)-1]
	}
	assert.Empty(t, got)

	// the sibling after the root is outside the iteration
	leaf := doc.GetElementByID("one")
	it = leaf.CreateNodeIterator(ShowElement, nil)
	assert.Same(t, leaf, it.NextNode())
	assert.Nil(t, it.NextNode())
}
