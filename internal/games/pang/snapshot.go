package pang

import "math"

// snapshotScale converts world floats to fixed-point ints.
const snapshotScale = 1000

// Snapshot contains the observable game state for determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       uint64
	Score      int
	Lives      int
	Level      int
	LiveCount  int
	TimeScale  int // Fixed-point
	GameOver   bool
	Complete   bool
	Finished   bool
	PlayerX    int // Fixed-point
	LastShotAt int // Fixed-point
	Timers     int // Pending scheduler callbacks

	// Each bubble is 6 ints: ID, X, Y, VX, VY, DivisionCount
	BubbleData []int

	// Each projectile is 3 ints: ID, X, Y
	ProjectileData []int

	RNGState uint64
}

func fixed(v float64) int {
	return int(math.Round(v * snapshotScale))
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	bubbles := g.world.Bubbles()
	bubbleData := make([]int, 0, len(bubbles)*6)
	for _, b := range bubbles {
		bubbleData = append(bubbleData,
			b.ID, fixed(b.Pos.X), fixed(b.Pos.Y), fixed(b.Vel.X), fixed(b.Vel.Y), b.DivisionCount)
	}

	projectiles := g.world.Projectiles()
	projectileData := make([]int, 0, len(projectiles)*3)
	for _, p := range projectiles {
		projectileData = append(projectileData, p.ID, fixed(p.Pos.X), fixed(p.Pos.Y))
	}

	return Snapshot{
		Tick:           uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		Score:          g.score,
		Lives:          g.session.Lives(),
		Level:          g.level.CurrentLevel(),
		LiveCount:      g.level.LiveCount(),
		TimeScale:      fixed(g.timeScale),
		GameOver:       g.session.GameOver(),
		Complete:       g.level.Complete(),
		Finished:       g.level.Finished(),
		PlayerX:        fixed(g.player.X),
		LastShotAt:     fixed(g.player.Limiter().LastShotTime),
		Timers:         g.scheduler.Pending(),
		BubbleData:     bubbleData,
		ProjectileData: projectileData,
		RNGState:       g.rng.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LiveCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.TimeScale)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LastShotAt) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Timers)     //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.GameOver)
	h = h*31 + boolBit(snap.Complete)
	h = h*31 + boolBit(snap.Finished)

	for _, v := range snap.BubbleData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.ProjectileData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
