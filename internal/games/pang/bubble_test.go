package pang

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-pang/internal/core"
)

const eps = 1e-9

func TestSplitOnProjectileCollision(t *testing.T) {
	r := defaultRig()
	r.activate()
	parent := r.spawn(core.V2(2, 6), 0)

	before := r.level.LiveCount()
	parent.OnContact(ContactProjectile, core.V2(2, 4))

	if !parent.Removed() {
		t.Fatal("Parent should be removed after splitting")
	}
	if !parent.IsDestroyed() {
		t.Error("Projectile collision should set the destroyed flag")
	}

	children := r.level.LiveBubbles()
	if len(children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(children))
	}
	if got := r.level.LiveCount() - before; got != 1 {
		t.Errorf("Split should grow the population by 1, got %+d", got)
	}

	left, right := children[0], children[1]
	if left.Pos.X > right.Pos.X {
		left, right = right, left
	}

	for _, c := range children {
		if c.DivisionCount != 1 {
			t.Errorf("Child division count = %d, expected 1", c.DivisionCount)
		}
		if c.IsDestroyed() {
			t.Error("Children must not inherit the destroyed flag")
		}
		if c.Scale != 0.5 {
			t.Errorf("Child scale = %f, expected 0.5", c.Scale)
		}
		if c.level != r.level || c.session != r.session {
			t.Error("Children should share the parent's level manager and session")
		}
		if c.Vel.Y != r.cfg.Bubble.BounceStrength {
			t.Errorf("Child vy = %f, expected %f", c.Vel.Y, r.cfg.Bubble.BounceStrength)
		}
	}

	if math.Abs(left.Pos.X-(2-r.cfg.Bubble.SplitOffset)) > eps || math.Abs(right.Pos.X-(2+r.cfg.Bubble.SplitOffset)) > eps {
		t.Errorf("Children at x=%f and x=%f, expected %f and %f",
			left.Pos.X, right.Pos.X, 2-r.cfg.Bubble.SplitOffset, 2+r.cfg.Bubble.SplitOffset)
	}

	speed := r.cfg.Bubble.Speed
	if left.Vel.X < -speed-1 || left.Vel.X > -speed+1 {
		t.Errorf("Left child vx = %f, expected within [%f, %f]", left.Vel.X, -speed-1, -speed+1)
	}
	if right.Vel.X < speed-1 || right.Vel.X > speed+1 {
		t.Errorf("Right child vx = %f, expected within [%f, %f]", right.Vel.X, speed-1, speed+1)
	}

	if r.pops != 1 || len(r.audio.played) != 1 {
		t.Errorf("Expected one pop, got %d pops and %d sounds", r.pops, len(r.audio.played))
	}
	if r.scheduler.Pending() != 1 {
		t.Errorf("Split should notify the level manager once, got %d checks", r.scheduler.Pending())
	}
}

func TestDestroyAtMaxDivisions(t *testing.T) {
	r := defaultRig()
	r.activate()
	b := r.spawn(core.V2(0, 6), r.cfg.Bubble.MaxDivisions)

	b.OnContact(ContactProjectile, core.V2(0, 4))

	if !b.Removed() {
		t.Error("Bubble at max depth should be removed")
	}
	if r.level.LiveCount() != 0 {
		t.Errorf("Bubble at max depth must not produce children, live count %d", r.level.LiveCount())
	}
	if r.scheduler.Pending() != 1 {
		t.Errorf("Destroy should notify the level manager once, got %d", r.scheduler.Pending())
	}
}

func TestDestroyLogicRunsOnce(t *testing.T) {
	r := defaultRig()
	r.activate()
	b := r.spawn(core.V2(0, 6), r.cfg.Bubble.MaxDivisions)

	b.OnContact(ContactProjectile, core.V2(0, 4))
	b.OnContact(ContactProjectile, core.V2(0, 4))
	b.OnContact(ContactFloor, core.V2(0, 0))
	b.HandleDivisionOrDestruction()
	b.DestroyOnProjectile()

	if r.pops != 1 {
		t.Errorf("Expected destroy logic to run once, ran %d times", r.pops)
	}
	if r.scheduler.Pending() != 1 {
		t.Errorf("Expected one level notification, got %d", r.scheduler.Pending())
	}
}

func TestDivisionCountBounded(t *testing.T) {
	r := defaultRig()
	r.activate()
	r.spawn(core.V2(0, 6), 0)

	// Keep hitting whatever is alive until the lineage is exhausted
	for range 20 {
		live := r.level.LiveBubbles()
		if len(live) == 0 {
			break
		}
		for _, b := range live {
			if b.DivisionCount < 0 || b.DivisionCount > b.MaxDivisions {
				t.Fatalf("Division count %d outside [0, %d]", b.DivisionCount, b.MaxDivisions)
			}
			b.OnContact(ContactProjectile, b.Pos)
		}
	}

	if r.level.LiveCount() != 0 {
		t.Errorf("Expected lineage to be cleared, %d left", r.level.LiveCount())
	}
	// 1 + 2 + 4 bubbles popped for max depth 2
	if r.pops != 7 {
		t.Errorf("Expected 7 pops, got %d", r.pops)
	}
}

func TestNewBubbleClampsDivision(t *testing.T) {
	cfg := defaultRig().cfg.Bubble
	b := NewBubble(BubbleParams{DivisionCount: 9, Config: cfg})
	if b.DivisionCount != cfg.MaxDivisions {
		t.Errorf("DivisionCount = %d, expected clamp to %d", b.DivisionCount, cfg.MaxDivisions)
	}
	b = NewBubble(BubbleParams{DivisionCount: -3, Config: cfg})
	if b.DivisionCount != 0 {
		t.Errorf("DivisionCount = %d, expected clamp to 0", b.DivisionCount)
	}
	if b.Scale != 1 || b.Speed != cfg.Speed {
		t.Errorf("Expected default scale 1 and speed %f, got %f and %f", cfg.Speed, b.Scale, b.Speed)
	}
}

func TestFloorContact(t *testing.T) {
	t.Run("splits below max depth", func(t *testing.T) {
		r := defaultRig()
		r.activate()
		b := r.spawn(core.V2(0, 1), 1)

		b.OnContact(ContactFloor, core.V2(0, 0))

		if !b.Removed() {
			t.Error("Floor contact below max depth should split")
		}
		if r.level.LiveCount() != 2 {
			t.Errorf("Expected 2 children, got %d", r.level.LiveCount())
		}
		if b.IsDestroyed() {
			t.Error("Floor split must not set the destroyed flag")
		}
	})

	t.Run("bounces at max depth", func(t *testing.T) {
		r := defaultRig()
		r.activate()
		b := r.spawn(core.V2(0, 1), r.cfg.Bubble.MaxDivisions)
		b.Vel = core.V2(3, -6)

		b.OnContact(ContactFloor, core.V2(0, 0))

		if b.Removed() {
			t.Error("Floor contact at max depth should not remove the bubble")
		}
		if b.Vel.Y != r.cfg.Bubble.BounceStrength || b.Vel.X != 3 {
			t.Errorf("Velocity = %+v, expected (3, %f)", b.Vel, r.cfg.Bubble.BounceStrength)
		}
		if r.pops != 0 {
			t.Errorf("Bounce should not pop, got %d pops", r.pops)
		}
	})

	t.Run("ignores destroyed flag", func(t *testing.T) {
		r := defaultRig()
		r.activate()
		b := r.spawn(core.V2(0, 1), 0)
		b.destroyed = true

		b.OnContact(ContactFloor, core.V2(0, 0))

		if !b.Removed() || r.level.LiveCount() != 2 {
			t.Errorf("Floor split should run regardless of the destroyed flag, live=%d", r.level.LiveCount())
		}
	})
}

func TestProjectileCollisionGuardedByDestroyed(t *testing.T) {
	r := defaultRig()
	b := NewBubble(BubbleParams{Pos: core.V2(0, 6), Config: r.cfg.Bubble})
	b.destroyed = true

	b.OnContact(ContactProjectile, core.V2(0, 4))

	if b.Removed() {
		t.Error("Projectile collision on a destroyed bubble should be ignored")
	}
}

func TestPlayerContact(t *testing.T) {
	r := defaultRig()
	b := r.spawn(core.V2(3, 4), 0)
	player := core.V2(0, 0)

	b.OnContact(ContactPlayer, player)

	if r.session.Lives() != r.cfg.Gameplay.Lives-1 {
		t.Errorf("Lives = %d, expected %d", r.session.Lives(), r.cfg.Gameplay.Lives-1)
	}

	// Direction (3,4)/5 scaled by bounce strength 8
	want := core.V2(0.6, 0.8).Scale(r.cfg.Bubble.BounceStrength)
	if b.Vel.Sub(want).Len() > eps {
		t.Errorf("Velocity = %+v, expected %+v", b.Vel, want)
	}
	if b.Removed() {
		t.Error("Player contact should not remove the bubble")
	}
}

func TestPlayerContactWithoutSession(t *testing.T) {
	r := defaultRig()
	b := NewBubble(BubbleParams{Pos: core.V2(-4, 3), Config: r.cfg.Bubble})

	b.OnContact(ContactPlayer, core.V2(0, 0))

	if b.Vel.X >= 0 {
		t.Errorf("Bubble left of the player should bounce left, vx=%f", b.Vel.X)
	}
	if math.Abs(b.Vel.Len()-r.cfg.Bubble.BounceStrength) > eps {
		t.Errorf("Speed = %f, expected %f", b.Vel.Len(), r.cfg.Bubble.BounceStrength)
	}
}

func TestCeilingContact(t *testing.T) {
	r := defaultRig()
	r.activate()
	b := r.spawn(core.V2(0, 10), 0)
	b.Vel = core.V2(2, 5)

	b.OnContact(ContactCeiling, core.V2(0, 12))

	if b.Vel.Y != -r.cfg.Bubble.BounceStrength || b.Vel.X != 2 {
		t.Errorf("Velocity = %+v, expected (2, %f)", b.Vel, -r.cfg.Bubble.BounceStrength)
	}
	if b.Removed() || r.level.LiveCount() != 1 {
		t.Error("Ceiling contact must not split")
	}
}

func TestRemovedBubbleIgnoresContacts(t *testing.T) {
	r := defaultRig()
	b := r.spawn(core.V2(0, 6), 0)
	r.world.RemoveBubble(b)
	r.world.RemoveBubble(b)

	b.OnContact(ContactPlayer, core.V2(0, 0))
	b.OnContact(ContactFloor, core.V2(0, 0))

	if r.session.Lives() != r.cfg.Gameplay.Lives {
		t.Error("Removed bubble should not cost a life")
	}
	if r.level.LiveCount() != 0 {
		t.Errorf("Removed bubble should not split, live count %d", r.level.LiveCount())
	}
}

func TestBubbleUpdate(t *testing.T) {
	r := defaultRig()
	b := r.spawn(core.V2(12.9, 6), 0)
	b.Vel = core.V2(6, 0)

	b.Update(0.1, 10)

	if b.Pos.X != r.cfg.Bubble.HorizontalLimit {
		t.Errorf("X = %f, expected clamp to %f", b.Pos.X, r.cfg.Bubble.HorizontalLimit)
	}
	if b.Vel.X != -6 {
		t.Errorf("VX = %f, expected -6", b.Vel.X)
	}
	if math.Abs(b.Vel.Y+1) > eps {
		t.Errorf("VY = %f, expected -1 after gravity", b.Vel.Y)
	}
}
