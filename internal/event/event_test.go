package event

import "testing"

type recorder struct {
	got []Event
}

func (r *recorder) OnEvent(e Event) { r.got = append(r.got, e) }

func TestDispatch_OnlySubscribedTypes(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.SubscribeAll(r, UnitMoved, TurnStarted)

	d.Dispatch(Event{Type: UnitMoved, Data: 1})
	d.Dispatch(Event{Type: UnitSpawned, Data: 2})
	d.Dispatch(Event{Type: TurnStarted, Data: 3})

	if len(r.got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(r.got))
	}
	if r.got[0].Data != 1 || r.got[1].Data != 3 {
		t.Fatalf("unexpected payloads: %+v", r.got)
	}
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	a, b := &recorder{}, &recorder{}
	subA := d.Subscribe(GameOver, a)
	d.Subscribe(GameOver, b)
	d.Unsubscribe(subA)
	d.Dispatch(Event{Type: GameOver})
	if len(a.got) != 0 {
		t.Fatalf("unsubscribed listener received %d events", len(a.got))
	}
	if len(b.got) != 1 {
		t.Fatalf("expected remaining listener to receive 1 event, got %d", len(b.got))
	}
}

func TestUnsubscribe_AllTypesOfOneSubscription(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	sub := d.SubscribeAll(r, UnitMoved, TurnStarted)
	d.Subscribe(UnitMoved, r)
	d.Unsubscribe(sub)

	d.Dispatch(Event{Type: UnitMoved})
	d.Dispatch(Event{Type: TurnStarted})
	if len(r.got) != 1 || r.got[0].Type != UnitMoved {
		t.Fatalf("expected only the separate UnitMoved registration to fire, got %+v", r.got)
	}
	d.Unsubscribe(sub)
	d.Unsubscribe(Subscription(999))
}

func TestListenerFunc(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	f := ListenerFunc(func(Event) { calls++ })
	sub := d.Subscribe(BaseCaptured, f)
	d.Subscribe(BaseCaptured, f)
	d.Dispatch(Event{Type: BaseCaptured})
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}

	// Func listeners are not comparable; removal goes by subscription.
	d.Unsubscribe(sub)
	d.Dispatch(Event{Type: BaseCaptured})
	if calls != 3 {
		t.Fatalf("expected 3 calls after dropping one subscription, got %d", calls)
	}
}

func TestUnsubscribe_DuringDispatch(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	var sub Subscription
	sub = d.Subscribe(TurnStarted, ListenerFunc(func(Event) { d.Unsubscribe(sub) }))
	d.Subscribe(TurnStarted, r)

	d.Dispatch(Event{Type: TurnStarted})
	d.Dispatch(Event{Type: TurnStarted})
	if len(r.got) != 2 {
		t.Fatalf("expected 2 events for the remaining listener, got %d", len(r.got))
	}
}
