package kaplay

// arriveEpsilon is how close (in pixels) the object must get to the final
// waypoint before the path counts as finished.
const arriveEpsilon = 2.0

// AgentOpt configures an Agent component.
type AgentOpt struct {
	// Speed in pixels per second. Defaults to 100.
	Speed float64
	// AllowDiagonals is passed through to the pathfinder.
	AllowDiagonals bool
}

// Agent returns a steering component that walks an object along A* paths
// over a level. Call SetTarget to start navigating; the component repaths
// when the target changes or the level's navigation map is invalidated.
func Agent(level *Level, opts ...AgentOpt) *AgentComp {
	var opt AgentOpt
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Speed == 0 {
		opt.Speed = 100
	}
	return &AgentComp{
		level: level,
		Speed: opt.Speed,
		opt:   opt,
	}
}

// AgentComp steers its object along waypoints produced by the Level
// pathfinder.
type AgentComp struct {
	Speed float64

	level      *Level
	opt        AgentOpt
	obj        *GameObject
	target     Vec2
	hasTarget  bool
	path       []Vec2
	cursor     int
	pathVer    uint64
	navigating bool
}

func (a *AgentComp) ID() string { return "agent" }

func (a *AgentComp) Require() []string { return []string{"pos"} }

func (a *AgentComp) Add(o *GameObject) {
	a.obj = o
}

// SetTarget starts navigating toward a world-pixel position. The current
// path, if any, is discarded.
func (a *AgentComp) SetTarget(target Vec2) {
	a.target = target
	a.hasTarget = true
	a.repath()
}

// Stop abandons the current path without reaching the target.
func (a *AgentComp) Stop() {
	if a.navigating {
		a.navigating = false
		a.obj.Trigger("navigationEnded")
	}
	a.hasTarget = false
	a.path = nil
}

// Target returns the current target and whether one is set.
func (a *AgentComp) Target() (Vec2, bool) {
	return a.target, a.hasTarget
}

// Path returns the remaining waypoints, or nil when not navigating.
func (a *AgentComp) Path() []Vec2 {
	if a.path == nil || a.cursor >= len(a.path) {
		return nil
	}
	return a.path[a.cursor:]
}

func (a *AgentComp) repath() {
	a.path = a.level.Path(a.obj.WorldPos(), a.target, PathOpt{AllowDiagonals: a.opt.AllowDiagonals})
	a.cursor = 0
	a.pathVer = a.level.NavVersion()
	if a.path != nil && !a.navigating {
		a.navigating = true
		a.obj.Trigger("navigationStart")
	}
	if a.path == nil && a.navigating {
		a.navigating = false
		a.obj.Trigger("navigationEnded")
	}
}

func (a *AgentComp) Update(o *GameObject, dt float64) {
	if !a.hasTarget {
		return
	}
	if a.pathVer != a.level.NavVersion() {
		a.repath()
	}
	if a.path == nil {
		return
	}
	remaining := a.Speed * dt
	for a.cursor < len(a.path) && remaining > 0 {
		pos := o.WorldPos()
		next := a.path[a.cursor]
		d := next.Dist(pos)
		if d <= remaining {
			o.SetWorldPos(next)
			remaining -= d
			a.cursor++
			continue
		}
		// Waypoints are world-space; step in world coordinates so ancestor
		// rotation and scale do not skew the motion.
		o.SetWorldPos(pos.Add(next.Sub(pos).Unit().Scale(remaining)))
		remaining = 0
	}
	if a.cursor >= len(a.path) || o.WorldPos().Dist(a.path[len(a.path)-1]) <= arriveEpsilon {
		a.finish()
	}
}

func (a *AgentComp) finish() {
	a.path = nil
	a.hasTarget = false
	a.navigating = false
	a.obj.Trigger("targetReached")
	a.obj.Trigger("navigationEnded")
}

// OnNavigationStart registers a handler fired when the agent begins
// following a path.
func (o *GameObject) OnNavigationStart(cb func()) *EventController {
	return o.On("navigationStart", func(...any) { cb() })
}

// OnNavigationEnded registers a handler fired when the agent stops
// following a path, whether or not the target was reached.
func (o *GameObject) OnNavigationEnded(cb func()) *EventController {
	return o.On("navigationEnded", func(...any) { cb() })
}

// OnTargetReached registers a handler fired when the agent arrives at its
// target.
func (o *GameObject) OnTargetReached(cb func()) *EventController {
	return o.On("targetReached", func(...any) { cb() })
}
