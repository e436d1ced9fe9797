// Package script exposes the domutil helpers to JavaScript running in goja,
// against a parser/spec document.
package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/dop251/goja"
	"github.com/heathj/domkit/domutil"
	"github.com/heathj/domkit/parser/spec"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Runtime is a goja VM bound to one document. It is not safe for concurrent
// use; listeners run on the goroutine that dispatches the event.
type Runtime struct {
	vm       *goja.Runtime
	doc      *spec.Node
	host     *domutil.SpecDocument
	binder   *domutil.Binder
	log      logrus.FieldLogger
	notifier *domutil.Notifier
	out      io.Writer
	document *goja.Object

	objects map[*spec.Node]*goja.Object
	nodes   map[*goja.Object]*spec.Node
}

type Option func(*Runtime)

func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Runtime) { r.log = log }
}

// WithNotifier forwards listener registrations made by scripts to n.
func WithNotifier(n *domutil.Notifier) Option {
	return func(r *Runtime) { r.notifier = n }
}

// WithOutput sets where console.log writes. Output is discarded by default.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) { r.out = w }
}

func New(doc *spec.Node, opts ...Option) *Runtime {
	r := &Runtime{
		vm:      goja.New(),
		doc:     doc,
		host:    domutil.NewSpecDocument(doc),
		log:     logrus.StandardLogger(),
		out:     io.Discard,
		objects: map[*spec.Node]*goja.Object{},
		nodes:   map[*goja.Object]*spec.Node{},
	}
	for _, opt := range opts {
		opt(r)
	}

	binderOpts := []domutil.BinderOption{domutil.WithLogger(r.log)}
	if r.notifier != nil {
		binderOpts = append(binderOpts, domutil.WithNotifier(r.notifier))
	}
	r.binder = domutil.NewBinder(r.host, binderOpts...)

	r.setupGlobals()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Run executes src. name is used in stack traces.
func (r *Runtime) Run(name, src string) (goja.Value, error) {
	r.log.WithField("script", name).Debug("running script")
	v, err := r.vm.RunScript(name, src)
	if err != nil {
		return nil, errors.Wrapf(err, "running %s", name)
	}
	return v, nil
}

// Dispatch fires an event of type eventType at every element matching
// selector, in document order, and returns how many were fired.
func (r *Runtime) Dispatch(selector, eventType string, init spec.EventInit) (int, error) {
	targets, err := r.doc.QuerySelectorAll(selector)
	if err != nil {
		return 0, errors.Wrapf(err, "dispatching %s", eventType)
	}
	for _, n := range targets {
		n.DispatchEvent(spec.NewEvent(eventType, init))
	}
	r.log.WithFields(logrus.Fields{
		"event":    eventType,
		"selector": selector,
		"targets":  len(targets),
	}).Debug("dispatched")
	return len(targets), nil
}

// throw raises err as a JavaScript exception from inside a native function.
func (r *Runtime) throw(err error) {
	panic(r.vm.NewGoError(err))
}

func (r *Runtime) console(call goja.FunctionCall) goja.Value {
	parts := make([]string, len(call.Arguments))
	for i, a := range call.Arguments {
		parts[i] = a.String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, " "))
	return goja.Undefined()
}
