// Package pang implements a Pang-style bubble shooter: the player walks
// the floor firing upward, bubbles split into smaller bubbles until a
// depth limit, and levels advance once every bubble is gone.
package pang

import "github.com/vovakirdan/tui-pang/internal/core"

// InitialVelocity returns a launch velocity for a freshly spawned bubble:
// up and randomly left or right, normalized and scaled by speed.
func InitialVelocity(rng *SimpleRNG, speed float64) core.Vec2 {
	dirX := 1.0
	if rng.Intn(2) == 0 {
		dirX = -1.0
	}
	return core.V2(dirX, 1).Normalized().Scale(speed)
}

// ReflectHorizontal clamps pos to [-limit, limit] and points the horizontal
// velocity back toward the interior when a wall is reached. The vertical
// velocity is never touched.
func ReflectHorizontal(pos, vel core.Vec2, limit float64) (core.Vec2, core.Vec2) {
	switch {
	case pos.X <= -limit:
		pos.X = -limit
		vel.X = abs(vel.X)
	case pos.X >= limit:
		pos.X = limit
		vel.X = -abs(vel.X)
	}
	return pos, vel
}

// AwayFrom returns a velocity of the given magnitude pointing from origin
// toward target.
func AwayFrom(origin, target core.Vec2, strength float64) core.Vec2 {
	return target.Sub(origin).Normalized().Scale(strength)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
