package spec

import (
	"strings"
)

var boxSides = [...]string{"top", "right", "bottom", "left"}

var borderWidthKeywords = map[string]string{
	"thin":   "1px",
	"medium": "3px",
	"thick":  "5px",
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

// CSSStyleDeclaration is https://drafts.csswg.org/cssom/#the-cssstyledeclaration-interface
//
// Shorthands are expanded into their longhands when set, so only longhands
// are ever stored.
type CSSStyleDeclaration struct {
	declarations map[string]string
	order        []string
}

func NewCSSStyleDeclaration() *CSSStyleDeclaration {
	return &CSSStyleDeclaration{declarations: map[string]string{}}
}

// ParseStyle parses the contents of a style attribute. Malformed
// declarations are skipped.
func ParseStyle(cssText string) *CSSStyleDeclaration {
	sd := NewCSSStyleDeclaration()
	for _, decl := range strings.Split(cssText, ";") {
		colon := strings.IndexByte(decl, ':')
		if colon < 0 {
			continue
		}
		name := strings.TrimSpace(decl[:colon])
		value := strings.TrimSpace(decl[colon+1:])
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		if name == "" || value == "" {
			continue
		}
		sd.SetProperty(name, value)
	}
	return sd
}

func (sd *CSSStyleDeclaration) Length() int { return len(sd.order) }

// Item returns the longhand name at index i in declaration order.
func (sd *CSSStyleDeclaration) Item(i int) string {
	if i < 0 || i >= len(sd.order) {
		return ""
	}
	return sd.order[i]
}

// GetPropertyValue returns "" for properties that are not set.
func (sd *CSSStyleDeclaration) GetPropertyValue(name string) string {
	return sd.declarations[strings.ToLower(name)]
}

// SetProperty sets a longhand, or every longhand a shorthand expands to.
// An empty value removes the property.
func (sd *CSSStyleDeclaration) SetProperty(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if value == "" {
		sd.RemoveProperty(name)
		return
	}

	switch name {
	case "padding", "margin":
		sd.setSides(name+"-%s", value)
	case "border-width":
		sd.setSides("border-%s-width", value)
	case "border-style":
		sd.setSides("border-%s-style", value)
	case "border-color":
		sd.setSides("border-%s-color", value)
	case "border":
		for _, side := range boxSides {
			sd.setBorderSide(side, value)
		}
	case "border-top", "border-right", "border-bottom", "border-left":
		sd.setBorderSide(strings.TrimPrefix(name, "border-"), value)
	default:
		sd.set(name, value)
	}
}

func (sd *CSSStyleDeclaration) RemoveProperty(name string) string {
	name = strings.ToLower(name)
	old, ok := sd.declarations[name]
	if !ok {
		return ""
	}
	delete(sd.declarations, name)
	for i, p := range sd.order {
		if p == name {
			sd.order = append(sd.order[:i], sd.order[i+1:]...)
			break
		}
	}
	return old
}

// CSSText serializes the longhands in declaration order.
func (sd *CSSStyleDeclaration) CSSText() string {
	parts := make([]string, 0, len(sd.order))
	for _, p := range sd.order {
		parts = append(parts, p+": "+sd.declarations[p])
	}
	return strings.Join(parts, "; ")
}

func (sd *CSSStyleDeclaration) set(name, value string) {
	if _, ok := sd.declarations[name]; !ok {
		sd.order = append(sd.order, name)
	}
	sd.declarations[name] = value
}

// setSides applies the one to four value box shorthand syntax.
func (sd *CSSStyleDeclaration) setSides(pattern, value string) {
	v := splitValues(value)
	var top, right, bottom, left string
	switch len(v) {
	case 1:
		top, right, bottom, left = v[0], v[0], v[0], v[0]
	case 2:
		top, right, bottom, left = v[0], v[1], v[0], v[1]
	case 3:
		top, right, bottom, left = v[0], v[1], v[2], v[1]
	case 4:
		top, right, bottom, left = v[0], v[1], v[2], v[3]
	default:
		return
	}
	sd.set(strings.Replace(pattern, "%s", "top", 1), top)
	sd.set(strings.Replace(pattern, "%s", "right", 1), right)
	sd.set(strings.Replace(pattern, "%s", "bottom", 1), bottom)
	sd.set(strings.Replace(pattern, "%s", "left", 1), left)
}

// setBorderSide expands `border-<side>: <width> || <style> || <color>`.
// Omitted parts reset to their initial values.
func (sd *CSSStyleDeclaration) setBorderSide(side, value string) {
	width, style, color := "medium", "none", "currentcolor"
	for _, tok := range splitValues(value) {
		lower := strings.ToLower(tok)
		switch {
		case borderStyles[lower]:
			style = lower
		case borderWidthKeywords[lower] != "" || isLength(tok):
			width = tok
		default:
			color = tok
		}
	}
	sd.set("border-"+side+"-width", width)
	sd.set("border-"+side+"-style", style)
	sd.set("border-"+side+"-color", color)
}

func isLength(tok string) bool {
	if tok == "" {
		return false
	}
	c := tok[0]
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// splitValues splits a value on whitespace outside parentheses.
func splitValues(value string) []string {
	var (
		out   []string
		depth int
		start = -1
	)
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case depth == 0 && (c == ' ' || c == '\t' || c == '\n'):
			if start >= 0 {
				out = append(out, value[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, value[start:])
	}
	return out
}

// Style returns a snapshot of the inline style of n. Changes to it are only
// applied through SetStyle.
func (n *Node) Style() *CSSStyleDeclaration {
	if n.NodeType != ElementNode {
		return NewCSSStyleDeclaration()
	}
	return ParseStyle(n.GetAttribute("style"))
}

// SetStyle writes sd back to the style attribute of n.
func (n *Node) SetStyle(sd *CSSStyleDeclaration) {
	if n.NodeType != ElementNode {
		return
	}
	if sd.Length() == 0 {
		n.RemoveAttribute("style")
		return
	}
	n.SetAttribute("style", sd.CSSText())
}

// ComputedStyle resolves the box model longhands of n from its inline style.
// There is no cascade: unset padding and margin compute to 0px, unset width
// and height to auto, and border widths follow the border style.
// https://drafts.csswg.org/cssom/#dom-window-getcomputedstyle
func (n *Node) ComputedStyle() *CSSStyleDeclaration {
	cs := NewCSSStyleDeclaration()
	if n.NodeType != ElementNode {
		return cs
	}

	cs.set("width", "auto")
	cs.set("height", "auto")
	for _, side := range boxSides {
		cs.set("padding-"+side, "0px")
		cs.set("margin-"+side, "0px")
		cs.set("border-"+side+"-style", "none")
		cs.set("border-"+side+"-width", "medium")
	}

	inline := n.Style()
	for _, p := range inline.order {
		cs.set(p, inline.declarations[p])
	}

	// https://drafts.csswg.org/css-backgrounds/#border-width
	for _, side := range boxSides {
		width := "border-" + side + "-width"
		switch cs.declarations["border-"+side+"-style"] {
		case "none", "hidden":
			cs.set(width, "0px")
		default:
			if abs, ok := borderWidthKeywords[strings.ToLower(cs.declarations[width])]; ok {
				cs.set(width, abs)
			}
		}
	}
	return cs
}
