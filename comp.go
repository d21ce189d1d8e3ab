package kaplay

// Comp is a named bundle of state attached to a game object. Behavior is
// composed by attaching components, never by subclassing; cross-component
// calls go through the object's capability map (GameObject.Component).
//
// A component may additionally implement any of the optional lifecycle
// interfaces below. Hooks run in attachment order.
type Comp interface {
	// ID returns the stable component id. The id doubles as a tag on the
	// owning object, so Is("body") reports whether a body is attached.
	ID() string
}

// CompAdder is implemented by components that want a hook after attachment.
// When an object is created with a component list, Add runs after the full
// list is attached, so inter-component lookups are safe.
type CompAdder interface {
	Add(obj *GameObject)
}

// CompUpdater is implemented by components with per-frame update logic.
// Update runs during the update pass with the frame delta time in seconds.
type CompUpdater interface {
	Update(obj *GameObject, dt float64)
}

// CompDrawer is implemented by components that draw. Draw runs during the
// draw pass, after every update hook of the frame has completed, with the
// object's world transform already cached.
type CompDrawer interface {
	Draw(obj *GameObject, r Renderer)
}

// CompDestroyer is implemented by components with teardown logic. Destroy
// runs when the owning object is destroyed or the component is detached
// with Unuse.
type CompDestroyer interface {
	Destroy(obj *GameObject)
}

// CompRequirer is implemented by components that depend on other components.
// Attaching fails with MissingDependencyError if any required id is absent.
type CompRequirer interface {
	Require() []string
}
