package script

import (
	"bytes"
	"strings"
	"testing"

	"github.com/heathj/domkit/domutil"
	"github.com/heathj/domkit/parser"
	"github.com/heathj/domkit/parser/spec"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `<!DOCTYPE html>
<html>
<body data-theme="dark">
<div id="outer" data-foo="x">
  <ul id="list">
    <li class="item" id="a">A</li>
    <li class="item" id="b" data-foo="">B</li>
    <li class="other" id="c">C</li>
  </ul>
  <input id="name">
</div>
<div id="box" style="width: 100px; height: 50px; padding: 5px 10px; margin: 1px 2px 3px 4px; border: 2px solid black"></div>
</body>
</html>`

func newRuntime(t *testing.T, opts ...Option) (*Runtime, *spec.Node) {
	t.Helper()
	doc, err := parser.NewParser(strings.NewReader(fixture)).Start()
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	return New(doc, append([]Option{WithLogger(log)}, opts...)...), doc
}

func run(t *testing.T, r *Runtime, src string) string {
	t.Helper()
	v, err := r.Run("test.js", src)
	require.NoError(t, err)
	return v.String()
}

func TestDelegatedClick(t *testing.T) {
	r, _ := newRuntime(t)
	run(t, r, `
		var hits = [];
		click("li.item", function (el, ev) {
			hits.push(el.id + ":" + ev.type + ":" + (this === el) + ":" + (ev.currentTarget === document));
		});
	`)

	n, err := r.Dispatch("#a", "click", spec.EventInit{Bubbles: true})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = r.Dispatch("#c", "click", spec.EventInit{Bubbles: true})
	require.NoError(t, err)

	assert.Equal(t, "a:click:true:true", run(t, r, `hits.join(",")`))

	// elements added after the call are handled
	assert.Equal(t, "a:click:true:true,d:click:true:true", run(t, r, `
		var li = document.createElement("li");
		li.setAttribute("class", "item");
		li.setAttribute("id", "d");
		document.querySelector("#list").appendChild(li);
		dispatch("#d", "click");
		hits.join(",");
	`))
}

func TestAttachForms(t *testing.T) {
	r, doc := newRuntime(t)
	run(t, r, `
		var seen = [];
		click("li", {live: false}, function (el) { seen.push("direct:" + el.id); });
		blur(document.querySelector("#name"), function (el, ev) { seen.push(ev.type + ":" + el.id); });
		on("toggle")(document.querySelectorAll(".item"), function (el) { seen.push("toggle:" + el.id); });
		click("#c", {live: "yes"}, function (el, ev) { ev.preventDefault(); });
	`)

	assert.Equal(t, "direct:a", run(t, r, `dispatch("#a", "click"); seen.join(",")`))
	assert.Equal(t, "1", run(t, r, `seen = []; dispatch("#name", "blur", {bubbles: false})`))
	assert.Equal(t, "blur:name", run(t, r, `seen.join(",")`))
	assert.Equal(t, "toggle:b", run(t, r, `seen = []; dispatch("#b", "toggle"); seen.join(",")`))

	c, err := doc.QuerySelector("#c")
	require.NoError(t, err)
	assert.False(t, c.Click())
}

func TestLiveRequiresSelector(t *testing.T) {
	r, _ := newRuntime(t)
	msg := run(t, r, `
		var msg = "";
		try {
			click(document.querySelector("#a"), {live: true}, function () {});
		} catch (e) {
			msg = e.message;
		}
		msg;
	`)
	assert.Contains(t, msg, "live delegation requires a selector string")

	assert.Equal(t, "ok", run(t, r, `click("#a", {live: true}, function () {}); "ok"`))
}

func TestForEach(t *testing.T) {
	r, _ := newRuntime(t)
	assert.Equal(t, "0a3,1b3,2c3", run(t, r, `
		var out = [];
		forEach("li", function (el, i, all) { out.push(i + el.id + all.length); });
		out.join(",");
	`))
	assert.Equal(t, "name", run(t, r, `
		var got = [];
		forEach(document.querySelector("input"), function (el) { got.push(el.id); });
		forEach([], function () { got.push("never"); });
		forEach("table", function () { got.push("never"); });
		got.join(",");
	`))

	_, err := r.Run("bad.js", `forEach(42, function () {})`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported element set")

	_, err = r.Run("throws.js", `forEach("li", function () { throw new Error("stop"); })`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop")
}

func TestAttribute(t *testing.T) {
	r, _ := newRuntime(t)
	assert.Equal(t, "x|dark|true|5", run(t, r, `
		var b = document.querySelector("#b");
		attribute(b, "data-foo", 5);
		var parts = [
			attribute(document.querySelector("#a"), "data-foo"),
			attribute(b, "data-theme"),
			attribute(b, "missing") === null,
			b.getAttribute("data-foo"),
		];
		parts.join("|");
	`))

	_, err := r.Run("bad.js", `attribute("#b", "id")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not an element")
}

func TestDimensions(t *testing.T) {
	r, _ := newRuntime(t)
	assert.Equal(t, "100,50,70,32,90,42", run(t, r, `
		var box = document.getElementById("box");
		var d = dimensions(box);
		var all = transformDimensions(box, d);
		var pad = transformDimensions(box, d, {padding: true});
		[d.width, d.height, all.width, all.height, pad.width, pad.height].join(",");
	`))
	assert.Equal(t, "true", run(t, r, `isNaN(dimensions(document.body).width)`))
}

func TestListenerErrorsAreLogged(t *testing.T) {
	doc, err := parser.NewParser(strings.NewReader(fixture)).Start()
	require.NoError(t, err)
	log, hook := test.NewNullLogger()
	r := New(doc, WithLogger(log))

	run(t, r, `
		var after = 0;
		click("li", function () { throw new Error("boom"); });
		click("li", function () { after++; });
		dispatch("#a", "click");
	`)

	assert.Equal(t, "1", run(t, r, `after`))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "listener threw", entry.Message)
}

func TestTypeErrors(t *testing.T) {
	r, _ := newRuntime(t)
	for _, src := range []string{
		`click("li")`,
		`click("li", {}, 3)`,
		`document.querySelector("li[")`,
		`document.body.appendChild("x")`,
	} {
		_, err := r.Run("bad.js", src)
		assert.Error(t, err, src)
	}
}

func TestNotifierAndConsole(t *testing.T) {
	n := domutil.NewNotifier()
	var got []domutil.Registration
	n.Subscribe(func(reg domutil.Registration) { got = append(got, reg) })

	var out bytes.Buffer
	r, _ := newRuntime(t, WithNotifier(n), WithOutput(&out))
	run(t, r, `
		click("li", function () {});
		console.log("tag", document.querySelector("li").tagName, 1);
	`)

	assert.Equal(t, []domutil.Registration{
		{EventType: "click", Selector: "li", Delegated: true, Targets: 1},
	}, got)
	assert.Equal(t, "tag LI 1\n", out.String())
}

func TestInnerHTML(t *testing.T) {
	r, doc := newRuntime(t)
	assert.Equal(t, `<li class="item" id="z">Z &amp; more</li>|Z & more|1`, run(t, r, `
		var hits = 0;
		click("#list .item", function () { hits++; });
		var list = document.getElementById("list");
		list.innerHTML = '<li class="item" id="z">Z &amp; more</li>';
		dispatch("#z", "click");
		[list.innerHTML, list.querySelectorAll("li")[0].textContent, hits].join("|");
	`))

	list, err := doc.QuerySelector("#list")
	require.NoError(t, err)
	assert.Len(t, list.ChildNodes, 1)
	assert.Equal(t, `<input id="name">`, run(t, r, `document.querySelector("input").outerHTML`))
}

func TestArrayLikeSets(t *testing.T) {
	r, _ := newRuntime(t)
	assert.Equal(t, "a2,c2|b,c|x", run(t, r, `
		var a = document.getElementById("a"), b = document.getElementById("b"), c = document.getElementById("c");
		var out = [];
		forEach({length: 2, 0: a, 1: c}, function (el, i, all) { out.push(el.id + all.length); });
		var args = [];
		(function () { forEach(arguments, function (el) { args.push(el.id); }); })(b, c);
		var hits = [];
		click({length: 1, 0: a}, {live: false}, function (el) { hits.push("x"); });
		dispatch("#a", "click");
		dispatch("#b", "click");
		[out.join(","), args.join(","), hits.join(",")].join("|");
	`))

	_, err := r.Run("bad.js", `forEach({length: 1, 0: "li"}, function () {})`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 0 is not an element")

	_, err = r.Run("obj.js", `forEach({length: "2"}, function () {})`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported element set")
}

func TestAppendChildHierarchy(t *testing.T) {
	r, doc := newRuntime(t)
	for _, src := range []string{
		`var el = document.getElementById("a"); el.appendChild(el)`,
		`document.getElementById("a").appendChild(document.getElementById("outer"))`,
		`document.getElementById("list").appendChild(document.body)`,
	} {
		_, err := r.Run("cycle.js", src)
		require.Error(t, err, src)
		assert.Contains(t, err.Error(), "HierarchyRequestError", src)
	}

	assert.Equal(t, "1|a,b,c", run(t, r, `
		var n = 0;
		click("#a", {live: false}, function () { n++; });
		document.getElementById("a").click();
		var ids = [];
		forEach("#list li", function (el) { ids.push(el.id); });
		[n, ids.join(",")].join("|");
	`))

	list, err := doc.QuerySelector("#list")
	require.NoError(t, err)
	assert.Equal(t, "outer", list.ParentNode.Id)
	ok, err := list.Matches("body > #outer > ul")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAttributeExplicitUndefined(t *testing.T) {
	r, _ := newRuntime(t)
	assert.Equal(t, "undefined|true|true", run(t, r, `
		var b = document.getElementById("b");
		var ret = attribute(b, "data-u", undefined);
		[b.getAttribute("data-u"), ret === undefined, attribute(b, "data-v") === null].join("|");
	`))
}
