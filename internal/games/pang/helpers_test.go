package pang

import (
	"strings"

	"github.com/vovakirdan/tui-pang/internal/config"
	"github.com/vovakirdan/tui-pang/internal/core"
)

// fakeHUD records every HUD call.
type fakeHUD struct {
	panels      map[Panel]bool
	panelShows  map[Panel]int
	backgrounds []int
	lives       int
}

func newFakeHUD() *fakeHUD {
	return &fakeHUD{
		panels:     make(map[Panel]bool),
		panelShows: make(map[Panel]int),
	}
}

func (h *fakeHUD) SetPanelVisible(p Panel, visible bool) {
	h.panels[p] = visible
	if visible {
		h.panelShows[p]++
	}
}

func (h *fakeHUD) SetBackground(index int) {
	h.backgrounds = append(h.backgrounds, index)
}

func (h *fakeHUD) SetLives(lives int) {
	h.lives = lives
}

// fakeClock records the time scale.
type fakeClock struct {
	scale float64
	calls int
}

func (c *fakeClock) SetTimeScale(scale float64) {
	c.scale = scale
	c.calls++
}

// fakeAudio counts cues.
type fakeAudio struct {
	played []core.Sound
}

func (a *fakeAudio) PlaySound(s core.Sound, _ core.Vec2) {
	a.played = append(a.played, s)
}

// testRig wires a world, level manager and session like Game.Reset does,
// but with fakes for every collaborator.
type testRig struct {
	cfg       config.PangConfig
	world     *World
	level     *LevelManager
	session   *Session
	scheduler *Scheduler
	hud       *fakeHUD
	clock     *fakeClock
	audio     *fakeAudio
	pops      int
}

func newRig(cfg config.PangConfig) *testRig {
	r := &testRig{
		cfg:       cfg,
		scheduler: NewScheduler(),
		hud:       newFakeHUD(),
		clock:     &fakeClock{scale: 1},
		audio:     &fakeAudio{},
	}
	rng := NewSimpleRNG(42)
	r.world = NewWorld(cfg, rng, r.audio)
	r.world.SetPopHandler(func(*Bubble) { r.pops++ })
	r.session = NewSession(cfg.Gameplay.Lives, r.hud, r.clock, nil)
	r.level = NewLevelManager(LevelDeps{
		World:     r.world,
		Session:   r.session,
		HUD:       r.hud,
		Clock:     r.clock,
		Scheduler: r.scheduler,
		RNG:       rng,
		Config:    cfg,
	})
	r.session.SetLevelManager(r.level)
	r.world.SetObserver(r.level)
	return r
}

func defaultRig() *testRig {
	return newRig(config.DefaultPangConfig())
}

// spawn adds a bubble at pos with the given depth, wired to the rig.
func (r *testRig) spawn(pos core.Vec2, division int) *Bubble {
	return r.world.SpawnBubble(NewBubble(BubbleParams{
		Pos:           pos,
		Vel:           core.V2(0, 0),
		Scale:         1,
		DivisionCount: division,
		Config:        r.cfg.Bubble,
		Level:         r.level,
		Session:       r.session,
	}))
}

// settle advances past the remaining-bubbles check delay.
func (r *testRig) settle() {
	r.scheduler.Advance(r.cfg.Gameplay.CheckDelay + 0.01)
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// activate marks the level active without spawning its bubbles.
func (r *testRig) activate() {
	r.level.state = levelActive
}

// screenRow returns row y of the screen as plain text.
func screenRow(s *core.Screen, y int) string {
	return strings.Split(s.String(), "\n")[y]
}
