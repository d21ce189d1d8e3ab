package kaplay

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestWaitFiresAtDelay(t *testing.T) {
	k := newTestContext()
	fired := 0
	k.Wait(1.0, func() { fired++ })

	k.Update(0.5)
	if fired != 0 {
		t.Fatal("timer fired before its delay elapsed")
	}
	k.Update(0.5)
	if fired != 1 {
		t.Fatalf("timer fired %d times at the delay boundary, want 1", fired)
	}
	k.Update(1.0)
	if fired != 1 {
		t.Error("one-shot timer fired again")
	}
}

func TestLoopFiresRepeatedly(t *testing.T) {
	k := newTestContext()
	fired := 0
	k.Loop(0.5, func() { fired++ })
	for i := 0; i < 4; i++ {
		k.Update(0.5)
	}
	if fired != 4 {
		t.Errorf("loop fired %d times over 4 intervals, want 4", fired)
	}
}

func TestLoopCatchesUpWithinOneFrame(t *testing.T) {
	k := newTestContext()
	fired := 0
	k.Loop(0.25, func() { fired++ })
	k.Update(1.0)
	if fired != 4 {
		t.Errorf("loop fired %d times for a 4-interval frame, want 4", fired)
	}
}

func TestTimerCancelIdempotent(t *testing.T) {
	k := newTestContext()
	fired := 0
	ctl := k.Wait(0.1, func() { fired++ })
	ctl.Cancel()
	ctl.Cancel()
	k.Update(1)
	if fired != 0 {
		t.Error("cancelled timer must not fire")
	}
}

func TestLoopSelfCancel(t *testing.T) {
	k := newTestContext()
	fired := 0
	var ctl *TimerController
	ctl = k.Loop(0.1, func() {
		fired++
		ctl.Cancel()
	})
	k.Update(1)
	k.Update(1)
	if fired != 1 {
		t.Errorf("self-cancelling loop fired %d times, want 1", fired)
	}
}

func TestTimerPaused(t *testing.T) {
	k := newTestContext()
	fired := 0
	ctl := k.Wait(0.5, func() { fired++ })
	ctl.Paused = true
	k.Update(1)
	if fired != 0 {
		t.Fatal("paused timer must not advance")
	}
	ctl.Paused = false
	k.Update(0.5)
	if fired != 1 {
		t.Error("unpaused timer should fire once its delay elapses")
	}
}

func TestTimerScheduledByCallbackStartsNextFrame(t *testing.T) {
	k := newTestContext()
	var second bool
	k.Wait(0, func() {
		k.Wait(0, func() { second = true })
	})
	k.Update(0.1)
	if second {
		t.Fatal("timer scheduled by a firing callback must not run in the same frame")
	}
	k.Update(0.1)
	if !second {
		t.Error("timer scheduled last frame should fire this frame")
	}
}

// --- tweens ---

func TestTweenLinear(t *testing.T) {
	k := newTestContext()
	var val float64
	k.Tween(0, 100, 1.0, func(v float64) { val = v }, ease.Linear)

	k.Update(0.25)
	assertNear(t, "quarter", val, 25)
	k.Update(0.75)
	assertNear(t, "end", val, 100)
}

func TestTweenOnEnd(t *testing.T) {
	k := newTestContext()
	ended := 0
	k.Tween(0, 1, 0.5, func(float64) {}, ease.Linear).OnEnd(func() { ended++ })
	k.Update(0.25)
	if ended != 0 {
		t.Fatal("OnEnd ran before the tween finished")
	}
	k.Update(0.25)
	if ended != 1 {
		t.Errorf("OnEnd ran %d times, want 1", ended)
	}
	k.Update(1)
	if ended != 1 {
		t.Error("OnEnd ran again after completion")
	}
}

func TestTweenChaining(t *testing.T) {
	k := newTestContext()
	var val float64
	set := func(v float64) { val = v }
	k.Tween(0, 10, 0.5, set, ease.Linear).OnEnd(func() {
		k.Tween(10, 20, 0.5, set, ease.Linear)
	})
	k.Update(0.5)
	assertNear(t, "first leg", val, 10)
	// Chained tween is a fresh task and starts on the next frame.
	k.Update(0.5)
	assertNear(t, "second leg", val, 20)
}

func TestTweenCancelStopsAndSkipsOnEnd(t *testing.T) {
	k := newTestContext()
	var val float64
	ended := false
	ctl := k.Tween(0, 100, 1.0, func(v float64) { val = v }, ease.Linear).OnEnd(func() { ended = true })
	k.Update(0.5)
	ctl.Cancel()
	k.Update(1)
	assertNear(t, "frozen", val, 50)
	if ended {
		t.Error("OnEnd must not run for a cancelled tween")
	}
}

func TestTweenVecLockstep(t *testing.T) {
	k := newTestContext()
	var val Vec2
	k.TweenVec(Vec2{0, 0}, Vec2{100, 200}, 1.0, func(v Vec2) { val = v }, ease.Linear)
	k.Update(0.5)
	assertVec(t, "halfway", val, Vec2{50, 100})
	k.Update(0.5)
	assertVec(t, "end", val, Vec2{100, 200})
}
