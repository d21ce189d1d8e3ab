package kaplay

import "testing"

func TestOnTriggerRegistrationOrder(t *testing.T) {
	k := newTestContext()
	obj := k.Add()
	var order []int
	obj.On("hit", func(...any) { order = append(order, 1) })
	obj.On("hit", func(...any) { order = append(order, 2) })
	obj.On("hit", func(...any) { order = append(order, 3) })
	obj.Trigger("hit")

	want := []int{1, 2, 3}
	if len(order) != 3 {
		t.Fatalf("handlers fired %d times, want 3", len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestTriggerPassesArgs(t *testing.T) {
	k := newTestContext()
	obj := k.Add()
	var got []any
	obj.On("hit", func(args ...any) { got = args })
	obj.Trigger("hit", 42, "sword")

	if len(got) != 2 || got[0] != 42 || got[1] != "sword" {
		t.Errorf("args = %v, want [42 sword]", got)
	}
}

func TestHandlerAddedMidDispatchDefers(t *testing.T) {
	k := newTestContext()
	obj := k.Add()
	nested := 0
	obj.On("hit", func(...any) {
		obj.On("hit", func(...any) { nested++ })
	})
	obj.Trigger("hit")
	if nested != 0 {
		t.Fatal("handler registered mid-dispatch must not run in the same trigger")
	}
	obj.Trigger("hit")
	if nested != 1 {
		t.Errorf("deferred handler fired %d times on the next trigger, want 1", nested)
	}
}

func TestCancelIdempotent(t *testing.T) {
	k := newTestContext()
	obj := k.Add()
	fired := 0
	ctl := obj.On("hit", func(...any) { fired++ })
	ctl.Cancel()
	ctl.Cancel()
	obj.Trigger("hit")
	if fired != 0 {
		t.Error("cancelled handler must not fire")
	}
}

func TestSelfCancellation(t *testing.T) {
	k := newTestContext()
	obj := k.Add()
	fired := 0
	var ctl *EventController
	ctl = obj.On("hit", func(...any) {
		fired++
		ctl.Cancel()
	})
	obj.Trigger("hit")
	obj.Trigger("hit")
	if fired != 1 {
		t.Errorf("self-cancelling handler fired %d times, want 1", fired)
	}
}

func TestCancelMidDispatchSkipsLaterHandler(t *testing.T) {
	k := newTestContext()
	obj := k.Add()
	fired := 0
	var second *EventController
	obj.On("hit", func(...any) { second.Cancel() })
	second = obj.On("hit", func(...any) { fired++ })
	obj.Trigger("hit")
	if fired != 0 {
		t.Error("handler cancelled earlier in the same dispatch must not fire")
	}
}

func TestPausedHandlerSkipped(t *testing.T) {
	k := newTestContext()
	obj := k.Add()
	fired := 0
	ctl := obj.On("hit", func(...any) { fired++ })
	ctl.Paused = true
	obj.Trigger("hit")
	ctl.Paused = false
	obj.Trigger("hit")
	if fired != 1 {
		t.Errorf("paused handler fired %d times, want 1 after unpausing", fired)
	}
}

// --- tag-scoped context handlers ---

func TestContextOnRelaysByTag(t *testing.T) {
	k := newTestContext()
	var seen []*GameObject
	k.On("explode", "bomb", func(obj *GameObject, args ...any) {
		seen = append(seen, obj)
	})

	bomb := k.Add("bomb")
	crate := k.Add("crate")
	bomb.Trigger("explode")
	crate.Trigger("explode")

	if len(seen) != 1 || seen[0] != bomb {
		t.Errorf("tag handler saw %d objects, want only the bomb", len(seen))
	}
}

func TestContextOnCancel(t *testing.T) {
	k := newTestContext()
	fired := 0
	ctl := k.On("explode", "bomb", func(*GameObject, ...any) { fired++ })
	bomb := k.Add("bomb")
	bomb.Trigger("explode")
	ctl.Cancel()
	bomb.Trigger("explode")
	if fired != 1 {
		t.Errorf("cancelled tag handler fired %d times, want 1", fired)
	}
}

func TestDestroyedObjectHandlersCancelled(t *testing.T) {
	k := newTestContext()
	obj := k.Add()
	ctl := obj.On("hit", func(...any) {})
	obj.Destroy()
	if !ctl.cancelled {
		t.Error("destroy should cancel the object's event handles")
	}
}
