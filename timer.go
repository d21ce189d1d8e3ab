package kaplay

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Scheduled tasks: timers and tweens. Tasks advance once per frame at the
// start of the update phase, in scheduling order; a callback fires during
// the update phase of the first frame where its elapsed time reaches its
// delay, never mid-frame anywhere else. "Then" chaining is sequencing of
// tasks, not suspension.

// task is one scheduled record processed by the update phase. step returns
// true when the task is finished and can be dropped.
type task interface {
	step(dt float64) bool
}

func (c *Context) schedule(t task) {
	c.tasks = append(c.tasks, t)
}

// advanceTasks steps every scheduled task and compacts finished ones.
func (c *Context) advanceTasks(dt float64) {
	// Snapshot by length: tasks scheduled by a firing callback start on the
	// next frame.
	n := len(c.tasks)
	finished := make([]bool, n)
	for i := 0; i < n; i++ {
		finished[i] = c.tasks[i].step(dt)
	}
	kept := c.tasks[:0]
	for i, t := range c.tasks {
		if i < n && finished[i] {
			continue
		}
		kept = append(kept, t)
	}
	c.tasks = kept
}

// TimerController is the cancellable handle of a Wait or Loop timer.
// Cancel is idempotent and safe from within the timer's own callback.
type TimerController struct {
	// Paused freezes the timer without cancelling it.
	Paused bool

	elapsed   float64
	delay     float64
	loop      bool
	cb        func()
	cancelled bool
	done      bool
}

// Cancel stops the timer permanently. Calling it twice is a no-op.
func (t *TimerController) Cancel() {
	t.cancelled = true
}

func (t *TimerController) step(dt float64) bool {
	if t.cancelled || t.done {
		return true
	}
	if t.Paused || dt == 0 {
		return false
	}
	t.elapsed += dt
	for t.elapsed >= t.delay {
		t.elapsed -= t.delay
		t.cb()
		if t.cancelled {
			return true
		}
		if !t.loop {
			t.done = true
			return true
		}
		if t.delay <= 0 {
			// Zero-interval loops fire once per frame, not forever.
			break
		}
	}
	return false
}

// Wait schedules cb to run once after d seconds.
func (c *Context) Wait(d float64, cb func()) *TimerController {
	t := &TimerController{delay: d, cb: cb}
	c.schedule(t)
	return t
}

// Loop schedules cb to run every d seconds until cancelled.
func (c *Context) Loop(d float64, cb func()) *TimerController {
	t := &TimerController{delay: d, cb: cb, loop: true}
	c.schedule(t)
	return t
}

// TweenController is the cancellable handle of a running tween.
type TweenController struct {
	// Paused freezes the tween without cancelling it.
	Paused bool

	tween     *gween.Tween
	set       func(float64)
	onEnd     []func()
	cancelled bool
	done      bool
}

// Cancel stops the tween at its current value. Idempotent; OnEnd callbacks
// do not run for a cancelled tween.
func (t *TweenController) Cancel() {
	t.cancelled = true
}

// OnEnd registers a callback run when the tween reaches its target value.
// Chaining tweens is sequencing: start the next tween from OnEnd.
func (t *TweenController) OnEnd(cb func()) *TweenController {
	t.onEnd = append(t.onEnd, cb)
	return t
}

func (t *TweenController) step(dt float64) bool {
	if t.cancelled || t.done {
		return true
	}
	if t.Paused || dt == 0 {
		return false
	}
	val, finished := t.tween.Update(float32(dt))
	t.set(float64(val))
	if finished {
		t.done = true
		for _, cb := range t.onEnd {
			if t.cancelled {
				break
			}
			cb()
		}
		return true
	}
	return false
}

// Tween animates a value from from to to over duration seconds, calling set
// with the interpolated value once per frame during the update phase.
func (c *Context) Tween(from, to, duration float64, set func(float64), easeFn ease.TweenFunc) *TweenController {
	t := &TweenController{
		tween: gween.New(float32(from), float32(to), float32(duration), easeFn),
		set:   set,
	}
	c.schedule(t)
	return t
}

// TweenVec animates a vector value component-wise, mirroring Tween. Both
// axes advance from a single scheduled task so X and Y stay in lockstep.
func (c *Context) TweenVec(from, to Vec2, duration float64, set func(Vec2), easeFn ease.TweenFunc) *TweenController {
	ctl := &TweenController{}
	c.schedule(&vecTween{
		ctl: ctl,
		tx:  gween.New(float32(from.X), float32(to.X), float32(duration), easeFn),
		ty:  gween.New(float32(from.Y), float32(to.Y), float32(duration), easeFn),
		set: set,
	})
	return ctl
}

// vecTween is the scheduled task behind TweenVec; the controller it shares
// with the caller carries the pause/cancel state.
type vecTween struct {
	ctl    *TweenController
	tx, ty *gween.Tween
	set    func(Vec2)
}

func (v *vecTween) step(dt float64) bool {
	if v.ctl.cancelled || v.ctl.done {
		return true
	}
	if v.ctl.Paused || dt == 0 {
		return false
	}
	x, finished := v.tx.Update(float32(dt))
	y, _ := v.ty.Update(float32(dt))
	v.set(Vec2{float64(x), float64(y)})
	if finished {
		v.ctl.done = true
		for _, cb := range v.ctl.onEnd {
			if v.ctl.cancelled {
				break
			}
			cb()
		}
		return true
	}
	return false
}
