package domutil

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrLiveRequiresSelector is returned when delegation is forced with LiveOn
// for an element set that is not a selector string.
var ErrLiveRequiresSelector = errors.New("live delegation requires a selector string")

// ErrNilHandler is returned when attaching a nil Handler.
var ErrNilHandler = errors.New("nil handler")

// LiveMode selects between delegated and direct attachment.
type LiveMode int

const (
	// LiveDefault delegates when the element set is a selector string.
	LiveDefault LiveMode = iota
	// LiveOn always delegates and fails for anything but a selector string.
	LiveOn
	// LiveOff attaches one listener per resolved element.
	LiveOff
)

func (m LiveMode) String() string {
	switch m {
	case LiveOn:
		return "on"
	case LiveOff:
		return "off"
	}
	return "default"
}

// Options configures a single attach call. The zero value delegates for
// selector strings.
type Options struct {
	Live LiveMode
}

// Handler receives the element the event was attached to (direct mode) or
// the matching origin element (delegated mode), and the host event.
type Handler func(el Element, ev Event)

// AttachFunc attaches fn for one event name. Only the first Options value is
// used.
type AttachFunc func(elements interface{}, fn Handler, opts ...Options) error

// Binder attaches event handlers to a host document.
//
// Delegated handlers are a single document level listener that filters
// events by whether their origin matches the selector, so elements added
// after the call are handled too.
type Binder struct {
	doc      Document
	log      logrus.FieldLogger
	notifier *Notifier
}

type BinderOption func(*Binder)

func WithLogger(log logrus.FieldLogger) BinderOption {
	return func(b *Binder) { b.log = log }
}

// WithNotifier publishes every successful registration to n.
func WithNotifier(n *Notifier) BinderOption {
	return func(b *Binder) { b.notifier = n }
}

func NewBinder(doc Document, opts ...BinderOption) *Binder {
	b := &Binder{
		doc: doc,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// On returns the attacher for eventType.
func (b *Binder) On(eventType string) AttachFunc {
	return func(elements interface{}, fn Handler, opts ...Options) error {
		return b.attach(eventType, elements, fn, opts...)
	}
}

// Click attaches fn to "click" events.
func (b *Binder) Click(elements interface{}, fn Handler, opts ...Options) error {
	return b.On("click")(elements, fn, opts...)
}

// Blur attaches fn to "blur" events.
func (b *Binder) Blur(elements interface{}, fn Handler, opts ...Options) error {
	return b.On("blur")(elements, fn, opts...)
}

func (b *Binder) attach(eventType string, elements interface{}, fn Handler, opts ...Options) error {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if fn == nil {
		return errors.Wrapf(ErrNilHandler, "attaching %s", eventType)
	}

	selector, isSelector := selectorOf(elements)
	if o.Live == LiveOn && !isSelector {
		return errors.Wrapf(ErrLiveRequiresSelector, "attaching %s to %T", eventType, elements)
	}
	if isSelector && o.Live != LiveOff {
		b.delegate(eventType, selector, fn)
		return nil
	}
	return b.direct(eventType, elements, fn)
}

func (b *Binder) delegate(eventType, selector string, fn Handler) {
	log := b.log.WithFields(logrus.Fields{
		"event":    eventType,
		"selector": selector,
	})

	b.doc.AddEventListener(eventType, func(ev Event) {
		target := ev.Target()
		if target == nil {
			return
		}
		ok, err := b.doc.Matches(target, selector)
		if err != nil {
			log.WithError(err).Warn("skipping delegated event")
			return
		}
		if ok {
			fn(target, ev)
		}
	})

	log.Debug("attached delegated listener")
	b.notify(Registration{EventType: eventType, Selector: selector, Delegated: true, Targets: 1})
}

func (b *Binder) direct(eventType string, elements interface{}, fn Handler) error {
	all, err := Resolve(b.doc, elements)
	if err != nil {
		return errors.Wrapf(err, "attaching %s", eventType)
	}
	for _, el := range all {
		el := el
		el.AddEventListener(eventType, func(ev Event) {
			fn(el, ev)
		})
	}

	selector, _ := selectorOf(elements)
	b.log.WithFields(logrus.Fields{
		"event":   eventType,
		"targets": len(all),
	}).Debug("attached direct listeners")
	b.notify(Registration{EventType: eventType, Selector: selector, Targets: len(all)})
	return nil
}

func (b *Binder) notify(r Registration) {
	if b.notifier != nil {
		b.notifier.publish(r)
	}
}
