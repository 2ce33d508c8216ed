package core

import "testing"

func TestHubFanOut(t *testing.T) {
	h := NewHub(nil)
	a, b := h.Subscribe(4), h.Subscribe(4)

	h.Emit(Event{Type: EventNavigate, View: "rights"})

	for _, sub := range []*Subscription{a, b} {
		e := <-sub.Events()
		if e.Type != EventNavigate || e.View != "rights" {
			t.Errorf("got %+v", e)
		}
	}
	a.Close()
	if h.Subscribers() != 1 {
		t.Errorf("subscribers = %d, want 1", h.Subscribers())
	}
	a.Close()
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	h := NewHub(nil)
	slow := h.Subscribe(1)
	h.Emit(Event{Type: EventMessage})
	h.Emit(Event{Type: EventMessage})

	if h.Subscribers() != 0 {
		t.Fatalf("slow subscriber still registered")
	}
	n := 0
	for range slow.Events() {
		n++
	}
	if n != 1 {
		t.Errorf("buffered events = %d, want 1", n)
	}
}

func TestHubClose(t *testing.T) {
	h := NewHub(nil)
	sub := h.Subscribe(1)
	h.Close()
	if _, ok := <-sub.Events(); ok {
		t.Error("subscription should be closed")
	}
	late := h.Subscribe(1)
	if _, ok := <-late.Events(); ok {
		t.Error("subscribing to a closed hub should yield a closed channel")
	}
	h.Emit(Event{Type: EventComposing})
	h.Close()
}
