package events

import (
	"slices"
	"testing"

	"github.com/google/uuid"
)

func TestEmitRunsHandlersInSubscriptionOrder(t *testing.T) {
	bus := New()
	var calls []string
	bus.On("open.before", func(any) { calls = append(calls, "first") })
	bus.On("open.before", func(any) { calls = append(calls, "second") })
	bus.On("close.before", func(any) { calls = append(calls, "other") })

	bus.Emit("open.before", nil)

	if !slices.Equal(calls, []string{"first", "second"}) {
		t.Fatalf("unexpected call order %v", calls)
	}
}

func TestEmitPassesPayloadByReference(t *testing.T) {
	bus := New()
	type box struct{ touched bool }
	payload := &box{}
	bus.On("append", func(p any) { p.(*box).touched = true })

	bus.Emit("append", payload)

	if !payload.touched {
		t.Fatal("expected handler to mutate the shared payload")
	}
}

func TestEmitNilPayloadBecomesEmptyMap(t *testing.T) {
	bus := New()
	var got any
	bus.On("destroy", func(p any) { got = p })

	bus.Emit("destroy", nil)

	m, ok := got.(map[string]any)
	if !ok || len(m) != 0 {
		t.Fatalf("expected empty map payload, got %#v", got)
	}
}

func TestEmitUnknownNameIsNoop(t *testing.T) {
	New().Emit("nothing", nil)
}

func TestRemovedSubscriptionStopsFiring(t *testing.T) {
	bus := New()
	count := 0
	sub := bus.On("mount.after", func(any) { count++ })
	if sub.Token == uuid.Nil {
		t.Fatal("expected subscription token")
	}

	bus.Emit("mount.after", nil)
	sub.Remove()
	sub.Remove()
	bus.Emit("mount.after", nil)

	if count != 1 {
		t.Fatalf("expected one call, got %d", count)
	}
	if !sub.Removed() {
		t.Fatal("expected subscription to report removal")
	}
	if bus.Count("mount.after") != 0 {
		t.Fatalf("expected no live subscriptions")
	}
}

func TestHandlerRemovedMidDispatchIsSkipped(t *testing.T) {
	bus := New()
	var calls []string
	var second *Subscription
	bus.On("open.after", func(any) {
		calls = append(calls, "first")
		second.Remove()
	})
	second = bus.On("open.after", func(any) { calls = append(calls, "second") })

	bus.Emit("open.after", nil)

	if !slices.Equal(calls, []string{"first"}) {
		t.Fatalf("expected second handler to be skipped, got %v", calls)
	}
}

func TestHandlerAddedMidDispatchFiresNextTime(t *testing.T) {
	bus := New()
	late := 0
	added := false
	bus.On("append", func(any) {
		if !added {
			added = true
			bus.On("append", func(any) { late++ })
		}
	})

	bus.Emit("append", nil)
	if late != 0 {
		t.Fatalf("expected late handler to wait for the next emit")
	}
	bus.Emit("append", nil)
	if late != 1 {
		t.Fatalf("expected late handler to fire once, got %d", late)
	}
}

func TestClearDropsEverything(t *testing.T) {
	bus := New()
	fired := false
	sub := bus.On("remove.after", func(any) { fired = true })
	bus.Clear()
	bus.Emit("remove.after", 3)
	if fired || !sub.Removed() {
		t.Fatal("expected cleared subscription to stay silent")
	}
}
