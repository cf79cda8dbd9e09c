package events

// Subscriber is an interface for event consumers.
type Subscriber interface {
	// Handle processes an event. An error is logged by the broker but
	// does not stop delivery to later subscribers.
	Handle(Event) error
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(Event) error

// Handle implements Subscriber.
func (f SubscriberFunc) Handle(e Event) error { return f(e) }

// On returns a subscriber that invokes fn only for events of the given
// type and ignores the rest.
func On(eventType EventType, fn func(Event)) Subscriber {
	return SubscriberFunc(func(e Event) error {
		if e.Type == eventType {
			fn(e)
		}
		return nil
	})
}
