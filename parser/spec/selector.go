package spec

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrInvalidSelector is returned for selector strings that do not parse.
// https://dom.spec.whatwg.org/#scope-match-a-selectors-string
var ErrInvalidSelector = errors.New("invalid selector")

type combinator uint

const (
	noCombinator combinator = iota
	descendantCombinator
	childCombinator
)

type attrOperator uint

const (
	attrExists    attrOperator = iota // [a]
	attrEquals                        // [a=v]
	attrIncludes                      // [a~=v]
	attrDashMatch                     // [a|=v]
	attrPrefix                        // [a^=v]
	attrSuffix                        // [a$=v]
	attrSubstring                     // [a*=v]
)

type attrMatcher struct {
	name  string
	op    attrOperator
	value string
}

// compoundSelector is a run of simple selectors with no combinator between
// them. combinator joins it to the compound on its right.
type compoundSelector struct {
	tag        string
	ids        []string
	classes    []string
	attrs      []attrMatcher
	combinator combinator
}

type complexSelector struct {
	compounds []compoundSelector
}

// Selector is a parsed selector list. Supported: type and universal
// selectors, #id, .class, attribute selectors, and the descendant and child
// combinators.
type Selector struct {
	source string
	groups []complexSelector
}

func (s *Selector) String() string { return s.source }

// ParseSelector parses a comma separated selector list.
func ParseSelector(selectors string) (*Selector, error) {
	p := &selectorParser{in: selectors}
	groups, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Selector{source: selectors, groups: groups}, nil
}

// Match reports whether the element n matches any selector in the list.
func (s *Selector) Match(n *Node) bool {
	if n == nil || n.NodeType != ElementNode {
		return false
	}
	for _, g := range s.groups {
		if g.matchAt(len(g.compounds)-1, n) {
			return true
		}
	}
	return false
}

func (cs complexSelector) matchAt(i int, n *Node) bool {
	if !cs.compounds[i].match(n) {
		return false
	}
	if i == 0 {
		return true
	}

	switch cs.compounds[i-1].combinator {
	case childCombinator:
		parent := n.ParentElement()
		return parent != nil && cs.matchAt(i-1, parent)
	case descendantCombinator:
		for a := n.ParentElement(); a != nil; a = a.ParentElement() {
			if cs.matchAt(i-1, a) {
				return true
			}
		}
	}
	return false
}

func (c *compoundSelector) match(n *Node) bool {
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(n.LocalName, c.tag) {
		return false
	}
	for _, id := range c.ids {
		if n.Id != id {
			return false
		}
	}
	for _, class := range c.classes {
		if !containsToken(n.ClassList(), class) {
			return false
		}
	}
	for _, am := range c.attrs {
		if !am.match(n) {
			return false
		}
	}
	return true
}

func (am attrMatcher) match(n *Node) bool {
	attr := n.GetAttributeNode(am.name)
	if attr == nil {
		return false
	}
	v := attr.Value
	switch am.op {
	case attrExists:
		return true
	case attrEquals:
		return v == am.value
	case attrIncludes:
		return containsToken(strings.Fields(v), am.value)
	case attrDashMatch:
		return v == am.value || strings.HasPrefix(v, am.value+"-")
	case attrPrefix:
		return am.value != "" && strings.HasPrefix(v, am.value)
	case attrSuffix:
		return am.value != "" && strings.HasSuffix(v, am.value)
	case attrSubstring:
		return am.value != "" && strings.Contains(v, am.value)
	}
	return false
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

type selectorParser struct {
	in  string
	pos int
}

func (p *selectorParser) eof() bool { return p.pos >= len(p.in) }

func (p *selectorParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.in[p.pos]
}

func (p *selectorParser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidSelector, "%q at offset %d: "+format, append([]interface{}{p.in, p.pos}, args...)...)
}

// skipSpace reports whether any whitespace was consumed.
func (p *selectorParser) skipSpace() bool {
	start := p.pos
	for !p.eof() && strings.IndexByte(" \t\n\r\f", p.peek()) >= 0 {
		p.pos++
	}
	return p.pos > start
}

func (p *selectorParser) parse() ([]complexSelector, error) {
	var groups []complexSelector
	for {
		cs, err := p.parseComplex()
		if err != nil {
			return nil, err
		}
		groups = append(groups, cs)
		if p.eof() {
			return groups, nil
		}
		// parseComplex only stops early on a comma
		p.pos++
	}
}

func (p *selectorParser) parseComplex() (complexSelector, error) {
	var cs complexSelector
	p.skipSpace()
	for {
		c, err := p.parseCompound()
		if err != nil {
			return cs, err
		}
		cs.compounds = append(cs.compounds, c)

		spaced := p.skipSpace()
		if p.eof() || p.peek() == ',' {
			return cs, nil
		}
		comb := descendantCombinator
		if p.peek() == '>' {
			comb = childCombinator
			p.pos++
			p.skipSpace()
		} else if !spaced {
			return cs, p.errorf("unexpected %q", p.peek())
		}
		cs.compounds[len(cs.compounds)-1].combinator = comb
	}
}

func (p *selectorParser) parseCompound() (compoundSelector, error) {
	var c compoundSelector
	start := p.pos
	if p.peek() == '*' {
		c.tag = "*"
		p.pos++
	} else if name := p.ident(); name != "" {
		c.tag = strings.ToLower(name)
	}

	for !p.eof() {
		switch p.peek() {
		case '#':
			p.pos++
			id := p.ident()
			if id == "" {
				return c, p.errorf("empty id selector")
			}
			c.ids = append(c.ids, id)
		case '.':
			p.pos++
			class := p.ident()
			if class == "" {
				return c, p.errorf("empty class selector")
			}
			c.classes = append(c.classes, class)
		case '[':
			am, err := p.parseAttr()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, am)
		default:
			if p.pos == start {
				return c, p.errorf("expected selector")
			}
			return c, nil
		}
	}
	if p.pos == start {
		return c, p.errorf("expected selector")
	}
	return c, nil
}

func (p *selectorParser) parseAttr() (attrMatcher, error) {
	var am attrMatcher
	p.pos++ // [
	p.skipSpace()
	am.name = p.ident()
	if am.name == "" {
		return am, p.errorf("expected attribute name")
	}
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return am, nil
	}

	switch p.peek() {
	case '=':
		am.op = attrEquals
	case '~':
		am.op = attrIncludes
	case '|':
		am.op = attrDashMatch
	case '^':
		am.op = attrPrefix
	case '$':
		am.op = attrSuffix
	case '*':
		am.op = attrSubstring
	default:
		return am, p.errorf("unexpected %q in attribute selector", p.peek())
	}
	if am.op != attrEquals {
		p.pos++
		if p.peek() != '=' {
			return am, p.errorf("expected '='")
		}
	}
	p.pos++
	p.skipSpace()

	switch q := p.peek(); q {
	case '"', '\'':
		end := strings.IndexByte(p.in[p.pos+1:], q)
		if end < 0 {
			return am, p.errorf("unterminated string")
		}
		am.value = p.in[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
	default:
		am.value = p.ident()
		if am.value == "" {
			return am, p.errorf("expected attribute value")
		}
	}

	p.skipSpace()
	if p.peek() != ']' {
		return am, p.errorf("expected ']'")
	}
	p.pos++
	return am, nil
}

// ident consumes a CSS identifier without escapes.
func (p *selectorParser) ident() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.in[p.pos:])
		if !isNameRune(r) {
			break
		}
		p.pos += size
	}
	return p.in[start:p.pos]
}

func isNameRune(r rune) bool {
	return r == '-' || r == '_' || r >= 0x80 ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Matches is https://dom.spec.whatwg.org/#dom-element-matches
func (n *Node) Matches(selectors string) (bool, error) {
	s, err := ParseSelector(selectors)
	if err != nil {
		return false, err
	}
	return s.Match(n), nil
}

// Closest is https://dom.spec.whatwg.org/#dom-element-closest
func (n *Node) Closest(selectors string) (*Node, error) {
	s, err := ParseSelector(selectors)
	if err != nil {
		return nil, err
	}
	for e := n; e != nil; e = e.ParentElement() {
		if s.Match(e) {
			return e, nil
		}
	}
	return nil, nil
}

// QuerySelectorAll returns the matching descendants of n in tree order.
// https://dom.spec.whatwg.org/#dom-parentnode-queryselectorall
func (n *Node) QuerySelectorAll(selectors string) (NodeList, error) {
	s, err := ParseSelector(selectors)
	if err != nil {
		return nil, err
	}
	out := NodeList{}
	it := n.descendants(ShowElement)
	for d := it.NextNode(); d != nil; d = it.NextNode() {
		if s.Match(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

// QuerySelector returns the first match or nil.
func (n *Node) QuerySelector(selectors string) (*Node, error) {
	s, err := ParseSelector(selectors)
	if err != nil {
		return nil, err
	}
	it := n.descendants(ShowElement)
	for d := it.NextNode(); d != nil; d = it.NextNode() {
		if s.Match(d) {
			return d, nil
		}
	}
	return nil, nil
}
