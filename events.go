package kaplay

// EventController is a cancellable handle returned by every event
// registration. Cancel is idempotent and safe to call from within the very
// handler it cancels, or from a destroy hook.
type EventController struct {
	// Paused temporarily suppresses the handler without unregistering it.
	Paused    bool
	cancelled bool
}

// Cancel permanently unregisters the handler. Calling Cancel twice is a
// no-op.
func (c *EventController) Cancel() {
	c.cancelled = true
}

type eventHandler struct {
	cb  func(args ...any)
	ctl *EventController
}

// eventTable maps event names to ordered handler lists. Dispatch iterates a
// snapshot, so handlers registered during a trigger are deferred to the next
// trigger of that event and handlers cancelled mid-dispatch are skipped.
type eventTable struct {
	handlers map[string][]*eventHandler
}

func (t *eventTable) on(name string, cb func(args ...any)) *EventController {
	if t.handlers == nil {
		t.handlers = make(map[string][]*eventHandler)
	}
	ctl := &EventController{}
	t.compact(name)
	t.handlers[name] = append(t.handlers[name], &eventHandler{cb: cb, ctl: ctl})
	return ctl
}

func (t *eventTable) trigger(name string, args ...any) {
	if t.handlers == nil {
		return
	}
	// Snapshot by length: appends during dispatch grow the slice past n and
	// are not invoked this round.
	list := t.handlers[name]
	n := len(list)
	for i := 0; i < n; i++ {
		h := list[i]
		if h.ctl.cancelled || h.ctl.Paused {
			continue
		}
		h.cb(args...)
	}
}

// compact drops cancelled handlers. Called on registration so long-lived
// tables don't accumulate dead entries. Builds a fresh slice: an in-flight
// trigger may still be iterating the old backing array.
func (t *eventTable) compact(name string) {
	list := t.handlers[name]
	dirty := false
	for _, h := range list {
		if h.ctl.cancelled {
			dirty = true
			break
		}
	}
	if !dirty {
		return
	}
	kept := make([]*eventHandler, 0, len(list))
	for _, h := range list {
		if !h.ctl.cancelled {
			kept = append(kept, h)
		}
	}
	t.handlers[name] = kept
}

// clear cancels every registered handler. Used on object destroy.
func (t *eventTable) clear() {
	for _, list := range t.handlers {
		for _, h := range list {
			h.ctl.cancelled = true
		}
	}
	t.handlers = nil
}

// tagHandler is a context-level registration scoped to a tag: it fires
// whenever any object carrying the tag triggers the named event.
type tagHandler struct {
	tag string
	cb  func(obj *GameObject, args ...any)
	ctl *EventController
}

// tagEventTable maps event names to tag-scoped handlers.
type tagEventTable struct {
	handlers map[string][]*tagHandler
}

func (t *tagEventTable) on(event, tag string, cb func(obj *GameObject, args ...any)) *EventController {
	if t.handlers == nil {
		t.handlers = make(map[string][]*tagHandler)
	}
	ctl := &EventController{}
	list := t.handlers[event]
	kept := list
	for _, h := range list {
		if h.ctl.cancelled {
			kept = make([]*tagHandler, 0, len(list))
			for _, h := range list {
				if !h.ctl.cancelled {
					kept = append(kept, h)
				}
			}
			break
		}
	}
	t.handlers[event] = append(kept, &tagHandler{tag: tag, cb: cb, ctl: ctl})
	return ctl
}

// relay dispatches a per-object trigger to matching tag-scoped handlers.
func (t *tagEventTable) relay(obj *GameObject, event string, args ...any) {
	if t.handlers == nil {
		return
	}
	list := t.handlers[event]
	n := len(list)
	for i := 0; i < n; i++ {
		h := list[i]
		if h.ctl.cancelled || h.ctl.Paused {
			continue
		}
		if obj.Is(h.tag) {
			h.cb(obj, args...)
		}
	}
}
