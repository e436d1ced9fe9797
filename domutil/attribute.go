package domutil

import (
	"fmt"
	"strings"
)

const dataPrefix = "data-"

// DataName prefixes name with "data-" unless it already has the prefix.
func DataName(name string) string {
	if strings.HasPrefix(name, dataPrefix) {
		return name
	}
	return dataPrefix + name
}

// Attribute reads the data attribute name from el, walking up through the
// ancestors while the value is missing or empty. The walk stops at the first
// ancestor that cannot read attributes, such as the document. An empty value
// is reported as absent.
func Attribute(el AttributeReader, name string) (string, bool) {
	name = DataName(name)
	var cur interface{} = el
	for cur != nil {
		r, ok := cur.(AttributeReader)
		if !ok {
			break
		}
		if v, ok := r.GetAttribute(name); ok && v != "" {
			return v, true
		}
		n, ok := cur.(Node)
		if !ok {
			break
		}
		cur = n.ParentNode()
	}
	return "", false
}

// SetAttribute writes the data attribute name on el only. value is
// formatted with fmt.Sprint.
func SetAttribute(el AttributeWriter, name string, value interface{}) {
	el.SetAttribute(DataName(name), fmt.Sprint(value))
}
