// Package kaplay is a component-based 2D game engine for [Ebitengine].
//
// Kaplay provides an entity registry with tag indexing, a scene graph with
// cached world transforms, synchronous event dispatch, grid-accelerated
// collision detection with solid-body resolution, platformer physics,
// timers and tweens, a camera, and a tile level with A* pathfinding and
// agent steering.
//
// # Quick start
//
// Create a [Context], compose objects from components, and hand the
// context to the ebiten game loop with [Context.Run]:
//
//	k := kaplay.New(kaplay.Opt{Width: 640, Height: 480, Gravity: kaplay.Vec2{Y: 1600}})
//	player := k.Add(
//		kaplay.Pos(120, 80),
//		kaplay.Rectangle(24, 24),
//		kaplay.Area(),
//		kaplay.Body(),
//		"player",
//	)
//	player.OnGround(func(*kaplay.GameObject) { player.Jump() })
//	k.Run()
//
// For full control, or to run headless, call [Context.Update] and
// [Context.DrawTo] yourself once per frame:
//
//	k.Update(1.0 / 60)
//	k.DrawTo(renderer)
//
// # Objects and components
//
// Every entity is a [GameObject] composed from components at creation:
// values implementing [Comp] attach state and lifecycle hooks, bare
// strings attach tags. Component ids double as tags, so Get("body")
// returns every object with a body. Optional capabilities are looked up
// with [GameObject.Component]; membership with [GameObject.Is].
//
// # Update and draw
//
// [Context.Update] traverses the tree in preorder, runs component update
// hooks and "update" handlers, then detects and resolves collisions.
// [Context.Draw] runs a separate preorder pass against cached world
// transforms. Paused objects skip updates but still draw; hidden objects
// draw nothing but keep updating. Objects added mid-pass start on the next
// frame; destroyed objects are skipped for the rest of the current one.
//
// # Collision and physics
//
// [Area] gives an object a collision shape and the OnCollide family of
// events. [Body] adds gravity, velocity integration, jumping, and platform
// sticking; overlapping solid bodies are pushed apart in inverse
// proportion to mass, and static bodies never move.
//
// # Levels and pathfinding
//
// [Context.AddLevel] parses rows of symbols into tile objects carrying
// obstacle, cost, and edge metadata. [Level.Path] runs A* over that grid,
// and the [Agent] component walks an object along the resulting
// waypoints.
//
// [Ebitengine]: https://ebitengine.org
package kaplay
