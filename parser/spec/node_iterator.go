package spec

// whatToShow bits, https://dom.spec.whatwg.org/#interface-nodefilter
const (
	ShowAll          uint = 0xFFFFFFFF
	ShowElement      uint = 0x1
	ShowText         uint = 0x4
	ShowComment      uint = 0x80
	ShowDocument     uint = 0x100
	ShowDocumentType uint = 0x200
)

// NodeFilter accepts or skips a node the whatToShow mask let through.
type NodeFilter func(n *Node) bool

// https://dom.spec.whatwg.org/#nodeiterator
type NodeIterator struct {
	root                       *Node
	referenceNode              *Node
	pointerBeforeReferenceNode bool
	whatToShow                 uint
	filter                     NodeFilter
}

// CreateNodeIterator iterates n and its descendants in tree order. filter
// may be nil.
func (n *Node) CreateNodeIterator(whatToShow uint, filter NodeFilter) *NodeIterator {
	return &NodeIterator{
		root:                       n,
		referenceNode:              n,
		pointerBeforeReferenceNode: true,
		whatToShow:                 whatToShow,
		filter:                     filter,
	}
}

// descendants is an iterator over the descendants of n, excluding n.
func (n *Node) descendants(whatToShow uint) *NodeIterator {
	return &NodeIterator{
		root:          n,
		referenceNode: n,
		whatToShow:    whatToShow,
	}
}

func (it *NodeIterator) Root() *Node { return it.root }

func (it *NodeIterator) NextNode() *Node {
	node := it.referenceNode
	before := it.pointerBeforeReferenceNode
	for {
		if !before {
			if node = following(node, it.root); node == nil {
				return nil
			}
		}
		before = false
		if it.accept(node) {
			it.referenceNode = node
			it.pointerBeforeReferenceNode = false
			return node
		}
	}
}

func (it *NodeIterator) PreviousNode() *Node {
	node := it.referenceNode
	before := it.pointerBeforeReferenceNode
	for {
		if before {
			if node = preceding(node, it.root); node == nil {
				return nil
			}
		}
		before = true
		if it.accept(node) {
			it.referenceNode = node
			it.pointerBeforeReferenceNode = true
			return node
		}
	}
}

func (it *NodeIterator) accept(n *Node) bool {
	if it.whatToShow&(1<<(uint(n.NodeType)-1)) == 0 {
		return false
	}
	return it.filter == nil || it.filter(n)
}

// following returns the node after n in tree order, staying inside root.
func following(n, root *Node) *Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil && n != root; n = n.ParentNode {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// preceding returns the node before n in tree order, staying inside root.
func preceding(n, root *Node) *Node {
	if n == root {
		return nil
	}
	if p := n.PreviousSibling; p != nil {
		for p.LastChild != nil {
			p = p.LastChild
		}
		return p
	}
	return n.ParentNode
}
