package pang

import (
	"github.com/vovakirdan/tui-pang/internal/config"
	"github.com/vovakirdan/tui-pang/internal/core"
)

// Player walks along the floor and fires projectiles upward.
type Player struct {
	X float64

	cfg     config.PangPlayer
	shot    config.PangProjectile
	limiter *ShotLimiter

	// Terminals report key presses, not holds; a press keeps the axis
	// engaged for HoldTicks ticks.
	holdDir  float64
	holdLeft int
}

// NewPlayer creates a player standing at x = 0.
func NewPlayer(cfg config.PangPlayer, shot config.PangProjectile) *Player {
	return &Player{
		cfg:     cfg,
		shot:    shot,
		limiter: NewShotLimiter(shot.ShotDelay),
	}
}

// Limiter returns the shot limiter shared by this player's projectiles.
func (p *Player) Limiter() *ShotLimiter {
	return p.limiter
}

// Axis returns the effective horizontal input for this tick.
func (p *Player) Axis(in core.InputFrame) float64 {
	axis := in.Axis()
	if p.cfg.HoldTicks <= 0 {
		return axis
	}

	if axis != 0 {
		p.holdDir = axis
		p.holdLeft = p.cfg.HoldTicks
	}
	if p.holdLeft == 0 {
		return 0
	}
	p.holdLeft--
	return p.holdDir
}

// Update moves the player and reports whether a shot was requested.
func (p *Player) Update(in core.InputFrame, dt float64) bool {
	p.X += p.Axis(in) * p.cfg.Speed * dt
	p.X = core.ClampF(p.X, p.cfg.LeftLimit, p.cfg.RightLimit)
	return in.Has(core.ActionFire)
}

// Fire spawns one projectile at the muzzle. The projectile is returned even
// when the limiter rejected it; it is already removed in that case.
func (p *Player) Fire(w *World, now float64) *Projectile {
	proj := NewProjectile(p.Muzzle(), p.shot)
	w.SpawnProjectile(proj)
	proj.Start(p.limiter, now)
	return proj
}

// Muzzle returns the projectile spawn point.
func (p *Player) Muzzle() core.Vec2 {
	return core.V2(p.X, p.cfg.SpawnOffset)
}

// Center returns the middle of the player's body.
func (p *Player) Center() core.Vec2 {
	return core.V2(p.X, p.cfg.Height/2)
}

// Overlaps reports whether a circle touches the player's body.
func (p *Player) Overlaps(c core.Vec2, r float64) bool {
	halfW := p.cfg.Width / 2
	nearest := core.V2(
		core.ClampF(c.X, p.X-halfW, p.X+halfW),
		core.ClampF(c.Y, 0, p.cfg.Height),
	)
	return c.Sub(nearest).Len() <= r
}
