package pang

import "github.com/charmbracelet/log"

// Session holds the run-scoped state that survives level changes: the
// remaining lives and whether the run is over. Exactly one exists per run.
type Session struct {
	lives      int
	startLives int
	gameOver   bool

	hud    HUD
	clock  Clock
	level  *LevelManager
	reload func()
	logger *log.Logger
}

// NewSession creates a session with the given starting lives. hud, clock
// and logger may be nil.
func NewSession(lives int, hud HUD, clock Clock, logger *log.Logger) *Session {
	return &Session{
		lives:      lives,
		startLives: lives,
		hud:        hud,
		clock:      clock,
		logger:     logger,
	}
}

// SetLevelManager wires the level manager asked to reset on restart.
func (s *Session) SetLevelManager(lm *LevelManager) {
	s.level = lm
}

// SetReload sets the fallback used by RestartGame when no level manager
// is wired.
func (s *Session) SetReload(fn func()) {
	s.reload = fn
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	return s.lives
}

// DisplayLives returns the life counter as shown to the player.
func (s *Session) DisplayLives() int {
	return max(0, s.lives)
}

// GameOver reports whether lives ran out.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// Start pushes the initial life count and hides the game-over panel.
func (s *Session) Start() {
	s.updateLives()
	if s.hud != nil {
		s.hud.SetPanelVisible(PanelGameOver, false)
	}
}

// LoseLife removes one life. Reaching zero ends the run exactly once;
// further calls at zero are ignored.
func (s *Session) LoseLife() {
	if s.lives <= 0 {
		return
	}

	s.lives--
	s.updateLives()
	if s.logger != nil {
		s.logger.Debug("life lost", "lives", s.lives)
	}

	if s.lives <= 0 {
		s.showGameOver()
	}
}

// RestartGame restores the starting lives, unfreezes time and resets the
// level sequence, or falls back to the reload hook.
func (s *Session) RestartGame() {
	if s.clock != nil {
		s.clock.SetTimeScale(1)
	}
	s.lives = s.startLives
	s.gameOver = false
	s.updateLives()

	if s.hud != nil {
		s.hud.SetPanelVisible(PanelGameOver, false)
	}

	if s.level != nil {
		if s.hud != nil {
			s.hud.SetPanelVisible(PanelLevelComplete, false)
		}
		s.level.ResetAndStartLevel()
		return
	}

	if s.reload != nil {
		s.reload()
	}
}

func (s *Session) showGameOver() {
	s.gameOver = true
	if s.logger != nil {
		s.logger.Info("game over")
	}
	if s.hud != nil {
		s.hud.SetPanelVisible(PanelGameOver, true)
	}
	if s.clock != nil {
		s.clock.SetTimeScale(0)
	}
}

func (s *Session) updateLives() {
	if s.hud != nil {
		s.hud.SetLives(s.DisplayLives())
	}
}
