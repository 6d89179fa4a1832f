package pang

import (
	"github.com/vovakirdan/tui-pang/internal/config"
	"github.com/vovakirdan/tui-pang/internal/core"
)

// ShotLimiter enforces a minimum spacing between accepted shots.
// One limiter is shared by every projectile a player fires.
type ShotLimiter struct {
	ShotDelay    float64
	LastShotTime float64
}

// NewShotLimiter creates a limiter. The last shot time starts at 0.
func NewShotLimiter(delay float64) *ShotLimiter {
	return &ShotLimiter{ShotDelay: delay}
}

// Allow records and accepts a shot at now, or rejects it without touching
// the last shot time.
func (l *ShotLimiter) Allow(now float64) bool {
	if now < l.LastShotTime+l.ShotDelay {
		return false
	}
	l.LastShotTime = now
	return true
}

// Projectile travels straight up until it hits a bubble, the ceiling, or
// runs out of lifetime.
type Projectile struct {
	ID       int
	Pos      core.Vec2
	Speed    float64
	Lifetime float64
	Radius   float64
	Age      float64

	removed bool
	world   *World
}

// NewProjectile builds a projectile at pos that is not yet part of any world.
func NewProjectile(pos core.Vec2, cfg config.PangProjectile) *Projectile {
	return &Projectile{
		Pos:      pos,
		Speed:    cfg.Speed,
		Lifetime: cfg.Lifetime,
		Radius:   cfg.Radius,
	}
}

// Start checks the shot against the limiter. A rejected projectile removes
// itself immediately. A nil limiter accepts every shot.
func (p *Projectile) Start(limiter *ShotLimiter, now float64) bool {
	if limiter != nil && !limiter.Allow(now) {
		p.remove()
		return false
	}
	return true
}

// Removed reports whether the projectile has left the world.
func (p *Projectile) Removed() bool {
	return p.removed
}

// Update moves the projectile and expires it after its lifetime.
func (p *Projectile) Update(dt float64) {
	if p.removed {
		return
	}
	p.Pos.Y += p.Speed * dt
	p.Age += dt
	if p.Age >= p.Lifetime {
		p.remove()
	}
}

// OnContact handles a trigger overlap. A bubble that is not already
// destroyed is popped outright, never split.
func (p *Projectile) OnContact(c Contact, b *Bubble) {
	if p.removed {
		return
	}

	switch c {
	case ContactBubble:
		if b != nil && !b.IsDestroyed() {
			b.DestroyOnProjectile()
		}
		p.remove()
	case ContactCeiling:
		p.remove()
	}
}

func (p *Projectile) remove() {
	if p.world != nil {
		p.world.RemoveProjectile(p)
		return
	}
	p.removed = true
}
