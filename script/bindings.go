package script

import (
	"math"
	"strconv"
	"strings"

	"github.com/dop251/goja"
	"github.com/heathj/domkit/domutil"
	"github.com/heathj/domkit/parser"
	"github.com/heathj/domkit/parser/spec"
	"github.com/pkg/errors"
)

func (r *Runtime) setupGlobals() {
	r.document = r.documentObject()

	console := r.vm.NewObject()
	_ = console.Set("log", r.console)

	globals := map[string]interface{}{
		"document":            r.document,
		"console":             console,
		"forEach":             r.forEach,
		"click":               r.attacher("click"),
		"blur":                r.attacher("blur"),
		"on":                  r.on,
		"attribute":           r.attribute,
		"dimensions":          r.dimensions,
		"transformDimensions": r.transformDimensions,
		"dispatch":            r.dispatch,
	}
	for name, v := range globals {
		_ = r.vm.Set(name, v)
	}
}

// forEach(elements, fn) calls fn(element, index, all) for each element.
func (r *Runtime) forEach(call goja.FunctionCall) goja.Value {
	fn := r.callable(call.Argument(1))
	var all *goja.Object
	err := domutil.ForEach(r.host, r.toElements(call.Argument(0)), func(el domutil.Element, i int, els []domutil.Element) {
		if all == nil {
			items := make([]interface{}, len(els))
			for j, e := range els {
				items[j] = r.elementValue(e)
			}
			all = r.vm.NewArray(items...)
		}
		v := r.elementValue(el)
		if _, err := fn(v, v, r.vm.ToValue(i), all); err != nil {
			r.rethrow(err)
		}
	})
	if err != nil {
		r.throw(err)
	}
	return goja.Undefined()
}

func (r *Runtime) on(call goja.FunctionCall) goja.Value {
	return r.vm.ToValue(r.attacher(call.Argument(0).String()))
}

// attacher returns the JS form of an attach function: (elements, fn) or
// (elements, options, fn).
func (r *Runtime) attacher(eventType string) func(goja.FunctionCall) goja.Value {
	attach := r.binder.On(eventType)
	return func(call goja.FunctionCall) goja.Value {
		options, fnArg := call.Argument(1), call.Argument(2)
		if len(call.Arguments) == 2 {
			options, fnArg = goja.Undefined(), call.Argument(1)
		}
		fn := r.callable(fnArg)
		if err := attach(r.toElements(call.Argument(0)), r.handler(eventType, fn), r.options(options)); err != nil {
			r.throw(err)
		}
		return goja.Undefined()
	}
}

// options reads {live: boolean}. Anything other than a boolean keeps the
// default behavior.
func (r *Runtime) options(v goja.Value) domutil.Options {
	var o domutil.Options
	obj, ok := v.(*goja.Object)
	if !ok {
		return o
	}
	live := obj.Get("live")
	if live == nil {
		return o
	}
	if b, ok := live.Export().(bool); ok {
		o.Live = domutil.LiveOff
		if b {
			o.Live = domutil.LiveOn
		}
	}
	return o
}

func (r *Runtime) handler(eventType string, fn goja.Callable) domutil.Handler {
	return func(el domutil.Element, ev domutil.Event) {
		this := r.elementValue(el)
		if _, err := fn(this, this, r.eventValue(ev)); err != nil {
			r.log.WithError(err).WithField("event", eventType).Warn("listener threw")
		}
	}
}

// attribute(el, name) reads, attribute(el, name, value) writes.
func (r *Runtime) attribute(call goja.FunctionCall) goja.Value {
	el := r.element(call.Argument(0))
	name := call.Argument(1).String()
	if len(call.Arguments) > 2 {
		domutil.SetAttribute(el, name, call.Argument(2).String())
		return goja.Undefined()
	}
	if v, ok := domutil.Attribute(el, name); ok {
		return r.vm.ToValue(v)
	}
	return goja.Null()
}

func (r *Runtime) dimensions(call goja.FunctionCall) goja.Value {
	return r.sizeValue(domutil.Dimensions(r.host, r.element(call.Argument(0))))
}

// transformDimensions(el, {width, height}, ignore?) where ignore holds the
// domutil.IgnoreNames flags.
func (r *Runtime) transformDimensions(call goja.FunctionCall) goja.Value {
	el := r.element(call.Argument(0))

	dims := domutil.Size{Width: math.NaN(), Height: math.NaN()}
	if obj, ok := call.Argument(1).(*goja.Object); ok {
		dims.Width = number(obj, "width")
		dims.Height = number(obj, "height")
	}

	var ig domutil.Ignore
	if obj, ok := call.Argument(2).(*goja.Object); ok {
		for _, name := range domutil.IgnoreNames() {
			if v := obj.Get(name); v != nil {
				_ = ig.Set(name, v.ToBoolean())
			}
		}
	}
	return r.sizeValue(domutil.TransformDimensions(r.host, el, dims, ig))
}

// dispatch(selector, type, init?) fires a bubbling, cancelable event unless
// init says otherwise, and returns the number of targets.
func (r *Runtime) dispatch(call goja.FunctionCall) goja.Value {
	init := spec.EventInit{Bubbles: true, Cancelable: true}
	if obj, ok := call.Argument(2).(*goja.Object); ok {
		if v := obj.Get("bubbles"); v != nil {
			init.Bubbles = v.ToBoolean()
		}
		if v := obj.Get("cancelable"); v != nil {
			init.Cancelable = v.ToBoolean()
		}
	}
	n, err := r.Dispatch(call.Argument(0).String(), call.Argument(1).String(), init)
	if err != nil {
		r.throw(err)
	}
	return r.vm.ToValue(n)
}

func (r *Runtime) documentObject() *goja.Object {
	d := r.vm.NewObject()
	_ = d.Set("querySelector", func(selector string) goja.Value {
		n, err := r.doc.QuerySelector(selector)
		if err != nil {
			r.throw(err)
		}
		return r.nodeValue(n)
	})
	_ = d.Set("querySelectorAll", func(selector string) goja.Value {
		return r.queryAll(r.doc, selector)
	})
	_ = d.Set("getElementById", func(id string) goja.Value {
		return r.nodeValue(r.doc.GetElementByID(id))
	})
	_ = d.Set("createElement", func(name string) goja.Value {
		return r.nodeValue(r.doc.CreateElement(name))
	})
	r.getter(d, "body", func() goja.Value { return r.nodeValue(r.doc.Body()) })
	r.getter(d, "documentElement", func() goja.Value { return r.nodeValue(r.doc.DocumentElement()) })
	return d
}

// wrap returns the JS object for element n. Objects are cached so the same
// element is always the same JS value.
func (r *Runtime) wrap(n *spec.Node) *goja.Object {
	if o, ok := r.objects[n]; ok {
		return o
	}
	o := r.vm.NewObject()
	r.objects[n] = o
	r.nodes[o] = n

	r.getter(o, "id", func() goja.Value { return r.vm.ToValue(n.Id) })
	r.getter(o, "className", func() goja.Value { return r.vm.ToValue(n.ClassName) })
	r.getter(o, "tagName", func() goja.Value { return r.vm.ToValue(n.TagName()) })
	r.getter(o, "textContent", func() goja.Value { return r.vm.ToValue(n.TextContent()) })
	r.getter(o, "parentElement", func() goja.Value { return r.nodeValue(n.ParentElement()) })
	r.getter(o, "outerHTML", func() goja.Value { return r.vm.ToValue(parser.SerializeOuter(n)) })
	_ = o.DefineAccessorProperty("innerHTML",
		r.vm.ToValue(func(goja.FunctionCall) goja.Value {
			return r.vm.ToValue(parser.Serialize(n))
		}),
		r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			r.setInnerHTML(n, call.Argument(0).String())
			return goja.Undefined()
		}),
		goja.FLAG_FALSE, goja.FLAG_TRUE)

	_ = o.Set("getAttribute", func(name string) goja.Value {
		if a := n.GetAttributeNode(name); a != nil {
			return r.vm.ToValue(a.Value)
		}
		return goja.Null()
	})
	_ = o.Set("setAttribute", func(name, value string) { n.SetAttribute(name, value) })
	_ = o.Set("hasAttribute", n.HasAttribute)
	_ = o.Set("removeAttribute", n.RemoveAttribute)
	_ = o.Set("matches", func(selector string) bool {
		ok, err := n.Matches(selector)
		if err != nil {
			r.throw(err)
		}
		return ok
	})
	_ = o.Set("querySelectorAll", func(selector string) goja.Value {
		return r.queryAll(n, selector)
	})
	_ = o.Set("appendChild", func(child goja.Value) goja.Value {
		c := r.toNode(child)
		if c == nil {
			panic(r.vm.NewTypeError("appendChild: argument is not an element"))
		}
		added := n.AppendChild(c)
		if added == nil {
			r.throw(errors.Errorf("HierarchyRequestError: %s contains the new parent", c.NodeName))
		}
		return r.nodeValue(added)
	})
	_ = o.Set("click", n.Click)
	return o
}

// setInnerHTML replaces the children of n with markup parsed in its context.
func (r *Runtime) setInnerHTML(n *spec.Node, markup string) {
	nodes, err := parser.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		r.throw(err)
	}
	for n.LastChild != nil {
		n.RemoveChild(n.LastChild)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

func (r *Runtime) eventValue(ev domutil.Event) goja.Value {
	o := r.vm.NewObject()
	_ = o.Set("type", ev.Type())
	_ = o.Set("target", r.elementValue(ev.Target()))
	if native := domutil.NativeEvent(ev); native != nil {
		r.getter(o, "currentTarget", func() goja.Value { return r.nodeValue(native.CurrentTarget) })
		r.getter(o, "defaultPrevented", func() goja.Value { return r.vm.ToValue(native.DefaultPrevented) })
		_ = o.Set("bubbles", native.Bubbles)
		_ = o.Set("preventDefault", native.PreventDefault)
		_ = o.Set("stopPropagation", native.StopPropagation)
		_ = o.Set("stopImmediatePropagation", native.StopImmediatePropagation)
	}
	return o
}

func (r *Runtime) queryAll(root *spec.Node, selector string) goja.Value {
	nl, err := root.QuerySelectorAll(selector)
	if err != nil {
		r.throw(err)
	}
	items := make([]interface{}, 0, len(nl))
	for _, n := range nl {
		items = append(items, r.nodeValue(n))
	}
	return r.vm.NewArray(items...)
}

// nodeValue maps n to the document object, an element object or null.
func (r *Runtime) nodeValue(n *spec.Node) goja.Value {
	switch {
	case n == nil:
		return goja.Null()
	case n == r.doc:
		return r.document
	case n.NodeType == spec.ElementNode:
		return r.wrap(n)
	}
	return goja.Null()
}

func (r *Runtime) elementValue(el domutil.Element) goja.Value {
	return r.nodeValue(domutil.UnwrapNode(el))
}

func (r *Runtime) toNode(v goja.Value) *spec.Node {
	if o, ok := v.(*goja.Object); ok {
		return r.nodes[o]
	}
	return nil
}

// element converts v to an Element or throws a TypeError.
func (r *Runtime) element(v goja.Value) domutil.Element {
	n := r.toNode(v)
	if n == nil {
		panic(r.vm.NewTypeError("%s is not an element", v.String()))
	}
	return domutil.WrapNode(n)
}

// toElements converts a JS element set: a selector string, an element or an
// array-like of elements (anything with a numeric length). Other values are passed through so domutil can reject
// them.
func (r *Runtime) toElements(v goja.Value) interface{} {
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	o, ok := v.(*goja.Object)
	if !ok {
		return v.Export()
	}
	if n, ok := r.nodes[o]; ok {
		return domutil.WrapNode(n)
	}
	if length, ok := r.arrayLength(o); ok {
		out := make([]domutil.Element, 0, length)
		for i := 0; i < length; i++ {
			item := o.Get(strconv.Itoa(i))
			n := r.toNode(item)
			if n == nil {
				panic(r.vm.NewTypeError("item %d is not an element", i))
			}
			out = append(out, domutil.WrapNode(n))
		}
		return out
	}
	return o.Export()
}

// arrayLength reports the length of an array-like object. Functions carry a
// length too but are never element sets.
func (r *Runtime) arrayLength(o *goja.Object) (int, bool) {
	if _, isFn := goja.AssertFunction(o); isFn {
		return 0, false
	}
	v := o.Get("length")
	if v == nil {
		return 0, false
	}
	switch v.Export().(type) {
	case int64, float64:
		return int(v.ToInteger()), true
	}
	return 0, false
}

func (r *Runtime) callable(v goja.Value) goja.Callable {
	fn, ok := goja.AssertFunction(v)
	if !ok {
		panic(r.vm.NewTypeError("%s is not a function", v.String()))
	}
	return fn
}

func (r *Runtime) sizeValue(s domutil.Size) goja.Value {
	o := r.vm.NewObject()
	_ = o.Set("width", s.Width)
	_ = o.Set("height", s.Height)
	return o
}

func (r *Runtime) getter(o *goja.Object, name string, get func() goja.Value) {
	fn := r.vm.ToValue(func(goja.FunctionCall) goja.Value { return get() })
	_ = o.DefineAccessorProperty(name, fn, nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
}

// rethrow propagates an exception raised by a JS callback.
func (r *Runtime) rethrow(err error) {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		panic(ex)
	}
	r.throw(err)
}

func number(obj *goja.Object, key string) float64 {
	v := obj.Get(key)
	if v == nil {
		return math.NaN()
	}
	return v.ToFloat()
}
