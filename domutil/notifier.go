package domutil

// Registration describes listeners attached by a Binder. Delegated
// registrations always have a single target, the document.
type Registration struct {
	EventType string
	Selector  string
	Delegated bool
	Targets   int
}

// Notifier fans Registrations out to its subscribers, in subscription order.
// It is not safe for concurrent use.
type Notifier struct {
	subscribers []func(Registration)
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Subscribe(fn func(Registration)) {
	if fn != nil {
		n.subscribers = append(n.subscribers, fn)
	}
}

func (n *Notifier) publish(r Registration) {
	for _, fn := range n.subscribers {
		fn(r)
	}
}
