package pang

import (
	"github.com/vovakirdan/tui-pang/internal/config"
	"github.com/vovakirdan/tui-pang/internal/core"
)

// childScale is the scale factor applied to each half of a split.
const childScale = 0.5

// BubbleParams describes a bubble to build. Children of a split are built
// from explicit params rather than cloned from their parent, so they never
// inherit the parent's destroyed flag.
type BubbleParams struct {
	Pos           core.Vec2
	Vel           core.Vec2
	Scale         float64 // 0 means 1
	Speed         float64 // 0 means Config.Speed
	DivisionCount int
	Config        config.PangBubble
	Level         *LevelManager
	Session       *Session
}

// Bubble is the primary enemy. It bounces around the arena and splits into
// two half-size bubbles when hit, until its division depth is exhausted.
type Bubble struct {
	ID            int
	Pos           core.Vec2
	Vel           core.Vec2
	Scale         float64
	Speed         float64
	DivisionCount int
	MaxDivisions  int

	BounceStrength  float64
	HorizontalLimit float64

	cfg       config.PangBubble
	destroyed bool
	removed   bool
	level     *LevelManager
	session   *Session
	world     *World
}

// NewBubble builds a bubble that is not yet part of any world.
func NewBubble(p BubbleParams) *Bubble {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	speed := p.Speed
	if speed <= 0 {
		speed = p.Config.Speed
	}
	maxDiv := p.Config.MaxDivisions
	if maxDiv < 0 {
		maxDiv = 0
	}

	return &Bubble{
		Pos:             p.Pos,
		Vel:             p.Vel,
		Scale:           scale,
		Speed:           speed,
		DivisionCount:   core.Clamp(p.DivisionCount, 0, maxDiv),
		MaxDivisions:    maxDiv,
		BounceStrength:  p.Config.BounceStrength,
		HorizontalLimit: p.Config.HorizontalLimit,
		cfg:             p.Config,
		level:           p.Level,
		session:         p.Session,
	}
}

// Radius returns the collision radius in world units.
func (b *Bubble) Radius() float64 {
	return b.cfg.Radius * b.Scale
}

// IsDestroyed reports whether a projectile collision has already claimed
// this bubble.
func (b *Bubble) IsDestroyed() bool {
	return b.destroyed
}

// Removed reports whether the bubble has left the world.
func (b *Bubble) Removed() bool {
	return b.removed
}

// CanSplit reports whether another split is allowed.
func (b *Bubble) CanSplit() bool {
	return b.DivisionCount < b.MaxDivisions
}

// Update integrates gravity and velocity, then applies wall reflection.
func (b *Bubble) Update(dt, gravity float64) {
	if b.removed {
		return
	}
	b.Vel.Y -= gravity * dt
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	b.Pos, b.Vel = ReflectHorizontal(b.Pos, b.Vel, b.HorizontalLimit)
}

// OnContact reacts to a collision. other is the position of whatever the
// bubble touched; only the player contact uses it.
func (b *Bubble) OnContact(c Contact, other core.Vec2) {
	if b.removed {
		return
	}

	switch c {
	case ContactProjectile:
		if !b.destroyed {
			b.destroyed = true
			b.HandleDivisionOrDestruction()
		}
	case ContactFloor:
		// Floor splits are not gated by destroyed; a bubble may split here
		// several times over its lineage without ever being shot.
		b.Vel.Y = b.BounceStrength
		if b.CanSplit() {
			b.HandleDivisionOrDestruction()
		}
	case ContactPlayer:
		if b.session != nil {
			b.session.LoseLife()
		}
		b.Vel = AwayFrom(other, b.Pos, b.BounceStrength)
	case ContactCeiling:
		b.Vel.Y = -b.BounceStrength
	}
}

// HandleDivisionOrDestruction splits the bubble if its depth allows,
// otherwise destroys it.
func (b *Bubble) HandleDivisionOrDestruction() {
	if b.removed {
		return
	}
	if b.CanSplit() {
		b.split()
	} else {
		b.DestroyOnProjectile()
	}
}

// DestroyOnProjectile pops the bubble without splitting, whatever its depth.
func (b *Bubble) DestroyOnProjectile() {
	if b.removed {
		return
	}
	b.pop()
	b.notifyLevel()
	b.remove()
}

// split replaces the bubble with two half-size children, left and right.
func (b *Bubble) split() {
	b.pop()

	if b.world != nil {
		for _, side := range []float64{-1, 1} {
			child := NewBubble(BubbleParams{
				Pos:           b.Pos.Add(core.V2(side*b.cfg.SplitOffset, 0)),
				Vel:           core.V2(side*b.Speed+b.world.jitter(), b.BounceStrength),
				Scale:         b.Scale * childScale,
				Speed:         b.Speed,
				DivisionCount: b.DivisionCount + 1,
				Config:        b.cfg,
				Level:         b.level,
				Session:       b.session,
			})
			b.world.SpawnBubble(child)
		}
	}

	b.notifyLevel()
	b.remove()
}

func (b *Bubble) pop() {
	if b.world != nil {
		b.world.popped(b)
	}
}

func (b *Bubble) notifyLevel() {
	if b.level != nil {
		b.level.BubbleDestroyed()
	}
}

func (b *Bubble) remove() {
	if b.world != nil {
		b.world.RemoveBubble(b)
		return
	}
	b.removed = true
}
