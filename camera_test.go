package kaplay

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraDefaultsToViewportCenter(t *testing.T) {
	k := newTestContext()
	cam := k.Cam()
	assertVec(t, "pos", cam.Pos(), Vec2{320, 240})
	assertMat(t, "view", cam.View(), MatIdentity)
}

func TestCameraSetPos(t *testing.T) {
	k := newTestContext()
	cam := k.Cam()
	cam.SetPos(Vec2{100, 100})

	// The camera center always lands on the screen center.
	assertVec(t, "center", cam.ToScreen(Vec2{100, 100}), Vec2{320, 240})
	assertVec(t, "offset point", cam.ToScreen(Vec2{110, 100}), Vec2{330, 240})
}

func TestCameraScaleZoomsAroundCenter(t *testing.T) {
	k := newTestContext()
	cam := k.Cam()
	cam.SetScale(Vec2{2, 2})

	assertVec(t, "center", cam.ToScreen(Vec2{320, 240}), Vec2{320, 240})
	assertVec(t, "offset point", cam.ToScreen(Vec2{330, 240}), Vec2{340, 240})
}

func TestCameraToWorldRoundTrip(t *testing.T) {
	k := newTestContext()
	cam := k.Cam()
	cam.SetPos(Vec2{50, -20})
	cam.SetScale(Vec2{2, 0.5})
	cam.SetAngle(0.3)

	p := Vec2{123, 456}
	assertVec(t, "round trip", cam.ToWorld(cam.ToScreen(p)), p)
}

// --- follow ---

func TestCameraFollowSnapsAtLerpOne(t *testing.T) {
	k := newTestContext()
	target := k.Add(Pos(50, 60))
	k.Cam().Follow(target, Vec2{0, -10}, 1)

	k.Update(0.016)
	assertVec(t, "pos", k.Cam().Pos(), Vec2{50, 50})
}

func TestCameraFollowLerps(t *testing.T) {
	k := newTestContext()
	target := k.Add(Pos(0, 0))
	k.Cam().Follow(target, Vec2{}, 0.5)

	k.Update(0.016)
	assertVec(t, "halfway", k.Cam().Pos(), Vec2{160, 120})
	k.Update(0.016)
	assertVec(t, "quarter left", k.Cam().Pos(), Vec2{80, 60})
}

func TestCameraUnfollow(t *testing.T) {
	k := newTestContext()
	target := k.Add(Pos(0, 0))
	k.Cam().Follow(target, Vec2{}, 1)
	k.Update(0.016)

	k.Cam().Unfollow()
	target.SetPos(Vec2{500, 500})
	k.Update(0.016)
	assertVec(t, "pos", k.Cam().Pos(), Vec2{0, 0})
}

func TestCameraFollowDropsDestroyedTarget(t *testing.T) {
	k := newTestContext()
	target := k.Add(Pos(100, 100))
	k.Cam().Follow(target, Vec2{}, 1)
	k.Update(0.016)

	target.Destroy()
	k.Update(0.016)
	assertVec(t, "pos", k.Cam().Pos(), Vec2{100, 100})
}

// --- scroll ---

func TestCameraScrollTo(t *testing.T) {
	k := newTestContext()
	cam := k.Cam()
	cam.ScrollTo(Vec2{384, 304}, 1.0, ease.Linear)

	k.Update(0.5)
	assertVec(t, "halfway", cam.Pos(), Vec2{352, 272})
	k.Update(0.5)
	assertVec(t, "done", cam.Pos(), Vec2{384, 304})

	// Finished scroll stops driving the camera.
	cam.SetPos(Vec2{0, 0})
	k.Update(0.5)
	assertVec(t, "after", cam.Pos(), Vec2{0, 0})
}

func TestCameraScrollToReplacesInFlight(t *testing.T) {
	k := newTestContext()
	cam := k.Cam()
	cam.ScrollTo(Vec2{1000, 0}, 1.0, ease.Linear)
	k.Update(0.25)

	cam.ScrollTo(Vec2{320, 240}, 0.5, ease.Linear)
	k.Update(0.5)
	assertVec(t, "pos", cam.Pos(), Vec2{320, 240})
}

// --- shake ---

func TestCameraShakeDecaysToZero(t *testing.T) {
	k := newTestContext()
	cam := k.Cam()
	cam.Shake(10)

	k.Update(0.1)
	if cam.shake >= 10 {
		t.Errorf("shake = %v, want decayed below 10", cam.shake)
	}

	for i := 0; i < 50; i++ {
		k.Update(0.1)
	}
	if cam.shake != 0 {
		t.Errorf("shake = %v, want 0 after decay", cam.shake)
	}
	assertVec(t, "offset", cam.shakeOffset, Vec2{})
	assertMat(t, "view", cam.View(), MatIdentity)
}

func TestCameraShakeAccumulates(t *testing.T) {
	k := newTestContext()
	cam := k.Cam()
	cam.Shake(5)
	cam.Shake(5)
	if cam.shake != 10 {
		t.Errorf("shake = %v, want 10", cam.shake)
	}
}
