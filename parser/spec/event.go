package spec

type EventPhase uint

const (
	NoneEventPhase EventPhase = iota
	CapturingPhase
	AtTargetPhase
	BubblingPhase
)

// EventInit is https://dom.spec.whatwg.org/#dictdef-eventinit
type EventInit struct {
	Bubbles, Cancelable bool
	Detail              interface{}
}

// Event is https://dom.spec.whatwg.org/#interface-event
type Event struct {
	Type                  string
	Target, CurrentTarget *Node
	EventPhase            EventPhase
	Bubbles, Cancelable   bool
	DefaultPrevented      bool
	Detail                interface{}

	path                     NodeList
	stopPropagation          bool
	stopImmediatePropagation bool
	dispatching              bool
}

func NewEvent(eventType string, init ...EventInit) *Event {
	e := &Event{Type: eventType}
	if len(init) > 0 {
		e.Bubbles = init[0].Bubbles
		e.Cancelable = init[0].Cancelable
		e.Detail = init[0].Detail
	}
	return e
}

// ComposedPath returns the propagation path, target first, while the event is
// being dispatched.
func (e *Event) ComposedPath() NodeList {
	if !e.dispatching {
		return nil
	}
	return append(NodeList(nil), e.path...)
}

func (e *Event) StopPropagation() { e.stopPropagation = true }
func (e *Event) StopImmediatePropagation() {
	e.stopPropagation = true
	e.stopImmediatePropagation = true
}
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.DefaultPrevented = true
	}
}

// EventListener is invoked with the event being dispatched; CurrentTarget is
// the node the listener was registered on.
type EventListener func(e *Event)

type listenerEntry struct {
	callback EventListener
	capture  bool
}

// EventTarget is https://dom.spec.whatwg.org/#interface-eventtarget
//
// Go funcs are not comparable, so registrations are never deduplicated and
// there is no removeEventListener.
type EventTarget struct {
	listeners map[string][]listenerEntry
}

func (t *EventTarget) AddEventListener(eventType string, l EventListener, capture bool) {
	if l == nil {
		return
	}
	if t.listeners == nil {
		t.listeners = map[string][]listenerEntry{}
	}
	t.listeners[eventType] = append(t.listeners[eventType], listenerEntry{callback: l, capture: capture})
}

func (t *EventTarget) ListenerCount(eventType string) int {
	return len(t.listeners[eventType])
}

func (t *EventTarget) invoke(e *Event, phase EventPhase) {
	// listeners added while dispatching run on the next event
	entries := append([]listenerEntry(nil), t.listeners[e.Type]...)
	for _, l := range entries {
		if phase == CapturingPhase && !l.capture || phase == BubblingPhase && l.capture {
			continue
		}
		l.callback(e)
		if e.stopImmediatePropagation {
			return
		}
	}
}

// DispatchEvent runs the capture, target and bubble phases for e with n as
// the target. It returns false if a listener canceled the event.
// https://dom.spec.whatwg.org/#concept-event-dispatch
func (n *Node) DispatchEvent(e *Event) bool {
	e.Target = n
	e.path = NodeList{n}
	for p := n.ParentNode; p != nil; p = p.ParentNode {
		e.path = append(e.path, p)
	}
	e.dispatching = true
	e.stopPropagation = false
	e.stopImmediatePropagation = false

	for i := len(e.path) - 1; i > 0 && !e.stopPropagation; i-- {
		e.path[i].fire(e, CapturingPhase)
	}
	if !e.stopPropagation {
		n.fire(e, AtTargetPhase)
	}
	if e.Bubbles {
		for i := 1; i < len(e.path) && !e.stopPropagation; i++ {
			e.path[i].fire(e, BubblingPhase)
		}
	}

	e.EventPhase = NoneEventPhase
	e.CurrentTarget = nil
	e.dispatching = false
	return !e.DefaultPrevented
}

func (n *Node) fire(e *Event, phase EventPhase) {
	e.CurrentTarget = n
	e.EventPhase = phase
	n.EventTarget.invoke(e, phase)
}

// Click dispatches a bubbling, cancelable click event at n.
// https://html.spec.whatwg.org/#dom-click
func (n *Node) Click() bool {
	return n.DispatchEvent(NewEvent("click", EventInit{Bubbles: true, Cancelable: true}))
}
