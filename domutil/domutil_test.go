package domutil

import (
	"strings"
	"testing"

	"github.com/heathj/domkit/parser"
	"github.com/heathj/domkit/parser/spec"
	"github.com/stretchr/testify/require"
)

const fixture = `<!DOCTYPE html>
<html>
<body data-theme="dark">
<div id="outer" data-foo="x" data-empty="">
  <ul id="list">
    <li class="item" id="a">A</li>
    <li class="item" id="b" data-foo="">B</li>
    <li class="other" id="c">C</li>
  </ul>
  <input id="name" class="field">
</div>
<div id="box" style="width: 100px; height: 50px; padding: 5px 10px; margin: 1px 2px 3px 4px; border: 2px solid black"></div>
<div id="plain"></div>
</body>
</html>`

func loadDoc(t *testing.T, src string) (*spec.Node, *SpecDocument) {
	t.Helper()
	doc, err := parser.NewParser(strings.NewReader(src)).Start()
	require.NoError(t, err)
	return doc, NewSpecDocument(doc)
}

func mustQuery(t *testing.T, doc *spec.Node, selector string) *spec.Node {
	t.Helper()
	n, err := doc.QuerySelector(selector)
	require.NoError(t, err)
	require.NotNil(t, n, selector)
	return n
}

func mustElement(t *testing.T, doc *spec.Node, selector string) Element {
	t.Helper()
	return WrapNode(mustQuery(t, doc, selector))
}

func ids(els []Element) []string {
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, UnwrapNode(el).Id)
	}
	return out
}
