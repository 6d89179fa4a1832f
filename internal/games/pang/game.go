package pang

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pang/internal/config"
	"github.com/vovakirdan/tui-pang/internal/core"
	"github.com/vovakirdan/tui-pang/internal/logging"
	"github.com/vovakirdan/tui-pang/internal/registry"
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Fixed level sequence, win at the end
	ModeEndless                  // Levels keep coming until lives run out
)

// Minimum terminal size the arena needs.
const (
	minScreenW = 40
	minScreenH = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// sink and logger are shared by every game instance the process creates
var (
	sink   Audio
	logger *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetAudio sets the audio sink used for pop sounds. nil silences games.
func SetAudio(a Audio) {
	sink = a
}

// SetLogger sets the logger used by new games. nil discards.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game implements the Pang game logic. It also acts as the HUD and clock
// for its own session and level manager.
type Game struct {
	mode     GameMode
	override *config.PangConfig

	// Collaborators
	world     *World
	level     *LevelManager
	session   *Session
	scheduler *Scheduler
	player    *Player
	rng       *SimpleRNG
	audio     Audio
	logger    *log.Logger

	// HUD and clock state
	panels     [2]bool
	background int
	livesShown int
	timeScale  float64

	// Game state
	score        int
	bestLevel    int
	tickCount    int
	now          float64
	paused       bool
	startErr     error
	finishLogged bool

	// Configuration
	runtime        core.RuntimeConfig
	cfg            config.PangConfig
	screenTooSmall bool
}

// New creates a new Pang game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new Pang game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(mode GameMode, cfg config.PangConfig) *Game {
	return &Game{mode: mode, override: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "pang_endless"
	}
	return "pang"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Pang (Endless)"
	}
	return "Pang"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	if g.mode == ModeEndless {
		g.cfg.Gameplay.MaxLevel = 0
	}

	g.logger = logger
	if g.logger == nil {
		g.logger = logging.Discard()
	}
	g.audio = sink

	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	// HUD and clock
	g.panels = [2]bool{}
	g.background = 0
	g.timeScale = 1

	g.score = 0
	g.bestLevel = 1
	g.tickCount = 0
	g.now = 0
	g.paused = false
	g.finishLogged = false

	g.rng = NewSimpleRNG(runtime.Seed)
	g.scheduler = NewScheduler()
	g.world = NewWorld(g.cfg, g.rng, g.audio)
	g.world.SetPopHandler(g.onPop)
	g.session = NewSession(g.cfg.Gameplay.Lives, g, g, g.logger)
	g.level = NewLevelManager(LevelDeps{
		World:      g.world,
		Session:    g.session,
		HUD:        g,
		Clock:      g,
		Scheduler:  g.scheduler,
		RNG:        g.rng,
		Config:     g.cfg,
		Difficulty: config.NewDifficultyManager(g.cfg.Difficulty),
		Logger:     g.logger,
	})
	g.session.SetLevelManager(g.level)
	g.world.SetObserver(g.level)
	g.player = NewPlayer(g.cfg.Player, g.cfg.Projectile)

	g.session.Start()
	g.startErr = g.level.Start()
	if g.startErr != nil {
		g.logger.Error("could not start level", "error", g.startErr)
	}
}

// Resize adapts the game to a new terminal size without restarting the run.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.screenTooSmall = width < minScreenW || height < minScreenH
}

// loadConfig returns the override, or the CLI-selected config with the
// difficulty preset applied.
func (g *Game) loadConfig() config.PangConfig {
	if g.override != nil {
		return *g.override
	}

	cfg, err := config.LoadPang(configPath)
	if err != nil {
		cfg = config.DefaultPangConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPangPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.startErr != nil {
		return core.StepResult{State: g.State()}
	}

	// Overlays wait for their key
	switch {
	case g.session.GameOver() || g.level.Finished():
		if g.level.Finished() && !g.finishLogged {
			g.logger.Info("victory", "score", g.score)
			g.finishLogged = true
		}
		if in.Has(core.ActionRestart) {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	case g.level.Complete():
		if in.Has(core.ActionConfirm) {
			g.level.NextLevel()
			g.bestLevel = max(g.bestLevel, g.level.CurrentLevel())
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.timeScale == 0 {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	dt := g.runtime.DeltaTime() * g.timeScale
	g.now += dt

	if g.player.Update(in, dt) {
		g.player.Fire(g.world, g.now)
	}
	g.world.Step(dt, g.player)

	// A contact may have frozen time; frozen time holds the timers too
	g.scheduler.Advance(g.runtime.DeltaTime() * g.timeScale)

	return core.StepResult{State: g.State()}
}

func (g *Game) restart() {
	g.score = 0
	g.bestLevel = 1
	g.finishLogged = false
	g.session.RestartGame()
}

func (g *Game) onPop(b *Bubble) {
	g.score += g.cfg.Gameplay.PointsPerPop * (b.DivisionCount + 1)
}

// SetPanelVisible implements HUD.
func (g *Game) SetPanelVisible(p Panel, visible bool) {
	if int(p) >= 0 && int(p) < len(g.panels) {
		g.panels[p] = visible
	}
}

// SetBackground implements HUD.
func (g *Game) SetBackground(index int) {
	g.background = index
}

// SetLives implements HUD.
func (g *Game) SetLives(lives int) {
	g.livesShown = lives
}

// SetTimeScale implements Clock.
func (g *Game) SetTimeScale(scale float64) {
	g.timeScale = scale
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	finished := g.level != nil && g.level.Finished()
	level := 0
	if g.level != nil {
		level = g.level.CurrentLevel()
	}
	return core.GameState{
		Score:    g.score,
		Level:    level,
		GameOver: (g.session != nil && g.session.GameOver()) || finished,
		Won:      finished,
		Paused:   g.paused,
	}
}

// Summary describes the run so far for the history table.
func (g *Game) Summary() core.RunSummary {
	lives := 0
	if g.session != nil {
		lives = g.session.DisplayLives()
	}
	return core.RunSummary{
		Score:     g.score,
		Level:     g.bestLevel,
		Won:       g.level != nil && g.level.Finished(),
		LivesLeft: lives,
		Elapsed:   time.Duration(g.now * float64(time.Second)),
	}
}

// Session returns the run session.
func (g *Game) Session() *Session {
	return g.session
}

// Level returns the level manager.
func (g *Game) Level() *LevelManager {
	return g.level
}

// World returns the entity world.
func (g *Game) World() *World {
	return g.world
}

// Player returns the player.
func (g *Game) Player() *Player {
	return g.player
}

// Register the games with the registry
func init() {
	registry.Register("pang", "campaign", func() registry.Game {
		return New()
	})
	registry.Register("pang_endless", "endless", func() registry.Game {
		return NewEndless()
	})
}
