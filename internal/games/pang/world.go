package pang

import (
	"github.com/vovakirdan/tui-pang/internal/config"
	"github.com/vovakirdan/tui-pang/internal/core"
)

// BubbleObserver is told about every bubble entering or leaving the world.
type BubbleObserver interface {
	BubbleSpawned(b *Bubble)
	BubbleRemoved(b *Bubble)
}

// contactKey identifies an ongoing touch so contacts fire on enter only.
type contactKey struct {
	bubble  int
	contact Contact
	other   int
}

// World owns the live entities, integrates their motion and delivers
// tagged contacts. The floor sits at y = 0 and the ceiling at
// Physics.CeilingY.
type World struct {
	cfg   config.PangConfig
	rng   *SimpleRNG
	audio Audio

	bubbles     []*Bubble
	projectiles []*Projectile
	nextID      int

	observer BubbleObserver
	onPop    func(b *Bubble)
	touching map[contactKey]bool
}

// NewWorld creates an empty world. audio may be nil.
func NewWorld(cfg config.PangConfig, rng *SimpleRNG, audio Audio) *World {
	return &World{
		cfg:      cfg,
		rng:      rng,
		audio:    audio,
		touching: make(map[contactKey]bool),
	}
}

// SetObserver registers the bubble spawn/remove observer.
func (w *World) SetObserver(o BubbleObserver) {
	w.observer = o
}

// SetPopHandler registers a callback run for every split or destroy.
func (w *World) SetPopHandler(fn func(b *Bubble)) {
	w.onPop = fn
}

// SpawnBubble adds b to the world and assigns its ID.
func (w *World) SpawnBubble(b *Bubble) *Bubble {
	w.nextID++
	b.ID = w.nextID
	b.world = w
	b.removed = false
	w.bubbles = append(w.bubbles, b)
	if w.observer != nil {
		w.observer.BubbleSpawned(b)
	}
	return b
}

// RemoveBubble takes b out of the world. Removing twice is a no-op.
func (w *World) RemoveBubble(b *Bubble) {
	if b == nil || b.removed {
		return
	}
	b.removed = true
	for i, other := range w.bubbles {
		if other == b {
			w.bubbles = append(w.bubbles[:i], w.bubbles[i+1:]...)
			break
		}
	}
	if w.observer != nil {
		w.observer.BubbleRemoved(b)
	}
}

// SpawnProjectile adds p to the world and assigns its ID.
func (w *World) SpawnProjectile(p *Projectile) *Projectile {
	w.nextID++
	p.ID = w.nextID
	p.world = w
	p.removed = false
	w.projectiles = append(w.projectiles, p)
	return p
}

// RemoveProjectile takes p out of the world. Removing twice is a no-op.
func (w *World) RemoveProjectile(p *Projectile) {
	if p == nil || p.removed {
		return
	}
	p.removed = true
	for i, other := range w.projectiles {
		if other == p {
			w.projectiles = append(w.projectiles[:i], w.projectiles[i+1:]...)
			break
		}
	}
}

// Bubbles returns a copy of the live bubbles in spawn order.
func (w *World) Bubbles() []*Bubble {
	out := make([]*Bubble, len(w.bubbles))
	copy(out, w.bubbles)
	return out
}

// Projectiles returns a copy of the live projectiles in spawn order.
func (w *World) Projectiles() []*Projectile {
	out := make([]*Projectile, len(w.projectiles))
	copy(out, w.projectiles)
	return out
}

// Step moves every entity by dt and then delivers the contacts that began
// this tick. Bubbles spawned during the contact pass get their first
// contacts on the next step.
func (w *World) Step(dt float64, player *Player) {
	for _, b := range w.Bubbles() {
		b.Update(dt, w.cfg.Physics.Gravity)
	}
	for _, p := range w.Projectiles() {
		p.Update(dt)
	}
	w.resolveContacts(player)
}

func (w *World) resolveContacts(player *Player) {
	current := make(map[contactKey]bool)
	ceiling := w.cfg.Physics.CeilingY

	// enter reports whether key starts touching this step
	enter := func(key contactKey) bool {
		current[key] = true
		return !w.touching[key]
	}

	for _, b := range w.Bubbles() {
		r := b.Radius()

		for _, p := range w.Projectiles() {
			if b.removed {
				break
			}
			if p.removed || b.Pos.Sub(p.Pos).Len() > r+p.Radius {
				continue
			}
			if enter(contactKey{b.ID, ContactProjectile, p.ID}) {
				w.deliverHit(p, b)
			}
		}
		if b.removed {
			continue
		}

		if b.Pos.Y-r <= 0 {
			b.Pos.Y = r
			if enter(contactKey{b.ID, ContactFloor, 0}) {
				b.OnContact(ContactFloor, core.V2(b.Pos.X, 0))
			}
		}
		if b.removed {
			continue
		}

		if b.Pos.Y+r >= ceiling {
			b.Pos.Y = ceiling - r
			if enter(contactKey{b.ID, ContactCeiling, 0}) {
				b.OnContact(ContactCeiling, core.V2(b.Pos.X, ceiling))
			}
		}
		if b.removed {
			continue
		}

		if player != nil && player.Overlaps(b.Pos, r) {
			if enter(contactKey{b.ID, ContactPlayer, 0}) {
				b.OnContact(ContactPlayer, player.Center())
			}
		}
	}

	for _, p := range w.Projectiles() {
		if p.Pos.Y >= ceiling {
			p.OnContact(ContactCeiling, nil)
		}
	}

	w.touching = current
}

// deliverHit routes a projectile/bubble overlap. Trigger projectiles pop
// the bubble outright; otherwise the bubble's own collision reaction runs
// and may split it.
func (w *World) deliverHit(p *Projectile, b *Bubble) {
	if w.cfg.Projectile.Trigger {
		p.OnContact(ContactBubble, b)
		return
	}
	b.OnContact(ContactProjectile, p.Pos)
	w.RemoveProjectile(p)
}

func (w *World) popped(b *Bubble) {
	if w.audio != nil {
		w.audio.PlaySound(core.SoundPop, b.Pos)
	}
	if w.onPop != nil {
		w.onPop(b)
	}
}

func (w *World) jitter() float64 {
	if w.rng == nil {
		return 0
	}
	return w.rng.Range(-1, 1)
}
