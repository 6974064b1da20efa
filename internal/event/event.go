package event

// Type names an event kind.
type Type string

const (
	TurnStarted  Type = "TurnStarted"  // a side's turn begins
	UnitSpawned  Type = "UnitSpawned"  // a unit entered the board
	UnitMoved    Type = "UnitMoved"    // a unit changed tiles
	UnitRemoved  Type = "UnitRemoved"  // a unit left the board
	BaseCaptured Type = "BaseCaptured" // a base changed owner
	GameOver     Type = "GameOver"
)

// Event is one notification. Data carries the payload defined by the sender.
type Event struct {
	Type Type
	Data any
}

// Listener receives dispatched events.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(e Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Subscription identifies one Subscribe or SubscribeAll call.
type Subscription uint64

type registration struct {
	id Subscription
	l  Listener
}

// Dispatcher fans events out to subscribers synchronously, in subscription
// order.
type Dispatcher struct {
	listeners map[Type][]registration
	nextID    Subscription
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[Type][]registration),
	}
}

// Subscribe registers l for events of type t.
func (d *Dispatcher) Subscribe(t Type, l Listener) Subscription {
	return d.SubscribeAll(l, t)
}

// SubscribeAll registers l for every type in ts under a single
// subscription.
func (d *Dispatcher) SubscribeAll(l Listener, ts ...Type) Subscription {
	d.nextID++
	id := d.nextID
	for _, t := range ts {
		d.listeners[t] = append(d.listeners[t], registration{id: id, l: l})
	}
	return id
}

// Unsubscribe drops every registration made under id. Unknown ids are
// ignored.
func (d *Dispatcher) Unsubscribe(id Subscription) {
	for t, regs := range d.listeners {
		kept := regs[:0:0]
		for _, r := range regs {
			if r.id != id {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			delete(d.listeners, t)
		} else {
			d.listeners[t] = kept
		}
	}
}

// Dispatch delivers e to every listener subscribed to its type.
func (d *Dispatcher) Dispatch(e Event) {
	for _, r := range d.listeners[e.Type] {
		r.l.OnEvent(e)
	}
}
