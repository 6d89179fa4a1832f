package pang

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pang/internal/config"
	"github.com/vovakirdan/tui-pang/internal/core"
)

// ErrMissingAssets is returned by Start when the level sequence cannot be shown.
var ErrMissingAssets = errors.New("missing level assets")

// levelState is the level lifecycle.
type levelState int

const (
	levelUninitialized levelState = iota
	levelActive
	levelComplete
)

// String returns a human-readable name for the state.
func (s levelState) String() string {
	switch s {
	case levelActive:
		return "active"
	case levelComplete:
		return "complete"
	default:
		return "uninitialized"
	}
}

// LevelDeps wires a LevelManager. Every field except World may be nil.
type LevelDeps struct {
	World      *World
	Session    *Session
	HUD        HUD
	Clock      Clock
	Scheduler  *Scheduler
	RNG        *SimpleRNG
	Config     config.PangConfig
	Difficulty *config.DifficultyManager
	Logger     *log.Logger
}

// LevelManager spawns each level's bubbles, tracks the live population
// and decides when a level is complete.
type LevelManager struct {
	world      *World
	session    *Session
	hud        HUD
	clock      Clock
	scheduler  *Scheduler
	rng        *SimpleRNG
	cfg        config.PangConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger

	currentLevel int
	maxLevel     int // 0 = unbounded
	state        levelState
	finished     bool
	background   int

	live map[int]*Bubble
}

// NewLevelManager creates a manager at level 1 that has not started yet.
func NewLevelManager(deps LevelDeps) *LevelManager {
	rng := deps.RNG
	if rng == nil {
		rng = NewSimpleRNG(1)
	}
	return &LevelManager{
		world:        deps.World,
		session:      deps.Session,
		hud:          deps.HUD,
		clock:        deps.Clock,
		scheduler:    deps.Scheduler,
		rng:          rng,
		cfg:          deps.Config,
		difficulty:   deps.Difficulty,
		logger:       deps.Logger,
		currentLevel: 1,
		maxLevel:     deps.Config.Gameplay.MaxLevel,
		live:         make(map[int]*Bubble),
	}
}

// Start validates the assets the level sequence needs and starts level 1.
func (lm *LevelManager) Start() error {
	if len(lm.cfg.Backgrounds) == 0 {
		return fmt.Errorf("level: %w: no backgrounds configured", ErrMissingAssets)
	}
	if lm.hud == nil {
		return fmt.Errorf("level: %w: no HUD to show the completion panel", ErrMissingAssets)
	}

	lm.hud.SetPanelVisible(PanelLevelComplete, false)
	lm.StartLevel(lm.currentLevel)
	return nil
}

// StartLevel selects the backdrop for level n, spawns 1+n bubbles and
// marks the level active.
func (lm *LevelManager) StartLevel(n int) {
	lm.currentLevel = n
	lm.finished = false
	lm.debug("starting level", "lvl", n)

	if n >= 1 && n <= len(lm.cfg.Backgrounds) {
		lm.background = n - 1
		if lm.hud != nil {
			lm.hud.SetBackground(lm.background)
		}
		lm.debug("background changed", "lvl", n, "background", lm.cfg.Backgrounds[lm.background].Name)
	} else if lm.logger != nil {
		lm.logger.Warn("no background for level", "lvl", n)
	}

	speed := lm.cfg.Bubble.Speed
	if lm.difficulty != nil {
		speed = lm.difficulty.Speed(speed, n)
	}

	spawnRange := lm.cfg.Bubble.SpawnRange
	for range BubblesForLevel(n) {
		pos := core.V2(lm.rng.Range(-spawnRange, spawnRange), lm.cfg.Bubble.SpawnHeight)
		b := NewBubble(BubbleParams{
			Pos:     pos,
			Vel:     InitialVelocity(lm.rng, speed),
			Speed:   speed,
			Config:  lm.cfg.Bubble,
			Level:   lm,
			Session: lm.session,
		})
		if lm.world != nil {
			lm.world.SpawnBubble(b)
		}
	}

	lm.state = levelActive
}

// BubbleDestroyed is called once per split or destroy. While the level is
// active it schedules a remaining-bubbles check after the check delay, so
// same-tick spawns and removals settle first. Without a scheduler nothing
// is checked.
func (lm *LevelManager) BubbleDestroyed() {
	if lm.state != levelActive || lm.scheduler == nil {
		return
	}
	lm.scheduler.After(lm.cfg.Gameplay.CheckDelay, lm.CheckBubblesRemaining)
}

// CheckBubblesRemaining completes the level when no bubbles are left, the
// level is active and the player still has lives.
func (lm *LevelManager) CheckBubblesRemaining() {
	if len(lm.live) != 0 || lm.state != levelActive {
		return
	}
	if lm.session != nil && lm.session.Lives() <= 0 {
		return
	}
	lm.completeLevel()
}

func (lm *LevelManager) completeLevel() {
	if lm.logger != nil {
		lm.logger.Info("level complete", "lvl", lm.currentLevel)
	}
	lm.state = levelComplete
	if lm.hud != nil {
		lm.hud.SetPanelVisible(PanelLevelComplete, true)
	}
	if lm.clock != nil {
		lm.clock.SetTimeScale(0)
	}
}

// NextLevel resumes time and advances to the next level, or marks the
// sequence finished after the last one.
func (lm *LevelManager) NextLevel() {
	if lm.clock != nil {
		lm.clock.SetTimeScale(1)
	}

	if lm.maxLevel == 0 || lm.currentLevel < lm.maxLevel {
		if lm.hud != nil {
			lm.hud.SetPanelVisible(PanelLevelComplete, false)
		}
		lm.StartLevel(lm.currentLevel + 1)
		return
	}

	lm.finished = true
	if lm.hud != nil {
		lm.hud.SetPanelVisible(PanelLevelComplete, false)
	}
	if lm.logger != nil {
		lm.logger.Info("game complete", "levels", lm.currentLevel)
	}
}

// ResetAndStartLevel removes every live bubble without notifications,
// drops checks still pending from the abandoned level and starts over
// from level 1.
func (lm *LevelManager) ResetAndStartLevel() {
	if lm.scheduler != nil {
		lm.scheduler.Clear()
	}
	for _, b := range lm.LiveBubbles() {
		if lm.world != nil {
			lm.world.RemoveBubble(b)
		}
		delete(lm.live, b.ID)
	}

	lm.currentLevel = 1
	if lm.hud != nil {
		lm.hud.SetPanelVisible(PanelLevelComplete, false)
	}
	if lm.clock != nil {
		lm.clock.SetTimeScale(1)
	}
	lm.StartLevel(1)
}

// BubbleSpawned tracks a bubble entering the world.
func (lm *LevelManager) BubbleSpawned(b *Bubble) {
	lm.live[b.ID] = b
}

// BubbleRemoved stops tracking a bubble leaving the world.
func (lm *LevelManager) BubbleRemoved(b *Bubble) {
	delete(lm.live, b.ID)
}

// LiveBubbles returns the tracked bubbles ordered by ID.
func (lm *LevelManager) LiveBubbles() []*Bubble {
	out := make([]*Bubble, 0, len(lm.live))
	for _, b := range lm.live {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LiveCount returns the number of tracked bubbles.
func (lm *LevelManager) LiveCount() int {
	return len(lm.live)
}

// CurrentLevel returns the 1-based level number.
func (lm *LevelManager) CurrentLevel() int {
	return lm.currentLevel
}

// MaxLevel returns the last level, or 0 when levels never end.
func (lm *LevelManager) MaxLevel() int {
	return lm.maxLevel
}

// LevelActive reports whether the current level is being played.
func (lm *LevelManager) LevelActive() bool {
	return lm.state == levelActive
}

// Complete reports whether the current level has been cleared and is
// waiting for NextLevel.
func (lm *LevelManager) Complete() bool {
	return lm.state == levelComplete
}

// Finished reports whether the last level has been cleared.
func (lm *LevelManager) Finished() bool {
	return lm.finished
}

// Background returns the index of the current backdrop.
func (lm *LevelManager) Background() int {
	return lm.background
}

func (lm *LevelManager) debug(msg string, keyvals ...any) {
	if lm.logger != nil {
		lm.logger.Debug(msg, keyvals...)
	}
}

// BubblesForLevel returns how many bubbles level n starts with.
func BubblesForLevel(n int) int {
	return 1 + n
}

// LevelInfo describes one entry of the level sequence.
type LevelInfo struct {
	Number     int
	Bubbles    int
	Background string
}

// Plan lists the first count levels. Levels past the configured
// backgrounds keep the previous backdrop.
func Plan(cfg config.PangConfig, count int) []LevelInfo {
	out := make([]LevelInfo, 0, count)
	bg := ""
	for n := 1; n <= count; n++ {
		if n <= len(cfg.Backgrounds) {
			bg = cfg.Backgrounds[n-1].Name
		}
		out = append(out, LevelInfo{Number: n, Bubbles: BubblesForLevel(n), Background: bg})
	}
	return out
}
