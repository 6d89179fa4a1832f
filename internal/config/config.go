// Package config provides YAML-based game configuration loading and
// difficulty management for Pang.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pang/internal/core"
)

// ErrInvalidConfig is returned by Validate when a value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// PangConfig contains all configuration for the bubble-popping game.
// World units: x grows right, y grows up, the floor sits at y = 0.
type PangConfig struct {
	Physics     PangPhysics        `yaml:"physics"`
	Bubble      PangBubble         `yaml:"bubble"`
	Projectile  PangProjectile     `yaml:"projectile"`
	Player      PangPlayer         `yaml:"player"`
	Gameplay    PangGameplay       `yaml:"gameplay"`
	Backgrounds []BackgroundConfig `yaml:"backgrounds"`
	Difficulty  DifficultyConfig   `yaml:"difficulty"`
}

// PangPhysics defines the arena the host loop simulates.
type PangPhysics struct {
	Gravity  float64 `yaml:"gravity"`   // Downward acceleration, units/s²
	CeilingY float64 `yaml:"ceiling_y"` // Height of the ceiling
}

// PangBubble defines bubble parameters.
type PangBubble struct {
	Speed           float64 `yaml:"speed"`
	BounceStrength  float64 `yaml:"bounce_strength"`
	MaxDivisions    int     `yaml:"max_divisions"`
	HorizontalLimit float64 `yaml:"horizontal_limit"`
	Radius          float64 `yaml:"radius"`       // Radius at scale 1
	SplitOffset     float64 `yaml:"split_offset"` // Horizontal offset of split children
	SpawnHeight     float64 `yaml:"spawn_height"`
	SpawnRange      float64 `yaml:"spawn_range"` // Level spawns use x in [-range, range]
}

// PangProjectile defines projectile parameters.
type PangProjectile struct {
	Speed     float64 `yaml:"speed"`
	Lifetime  float64 `yaml:"lifetime"`
	ShotDelay float64 `yaml:"shot_delay"`
	Radius    float64 `yaml:"radius"`
	// Trigger routes projectile/bubble overlaps through the projectile's
	// destroy-only path. When false they go through the bubble's
	// collision reaction, which may split.
	Trigger bool `yaml:"trigger"`
}

// PangPlayer defines player parameters.
type PangPlayer struct {
	Speed       float64 `yaml:"speed"`
	LeftLimit   float64 `yaml:"left_limit"`
	RightLimit  float64 `yaml:"right_limit"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SpawnOffset float64 `yaml:"spawn_offset"` // Projectile spawn height above the player's feet
	HoldTicks   int     `yaml:"hold_ticks"`   // Ticks a single key press keeps the axis engaged
}

// PangGameplay defines session and level rules.
type PangGameplay struct {
	Lives        int     `yaml:"lives"`
	MaxLevel     int     `yaml:"max_level"`   // 0 = unbounded
	CheckDelay   float64 `yaml:"check_delay"` // Delay of the remaining-bubbles check
	PointsPerPop int     `yaml:"points_per_pop"`
}

// BackgroundConfig describes the backdrop shown for one level.
type BackgroundConfig struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to bubble speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that the configuration can drive a game.
func (c PangConfig) Validate() error {
	switch {
	case c.Bubble.Speed <= 0:
		return fmt.Errorf("%w: bubble.speed must be positive", ErrInvalidConfig)
	case c.Bubble.BounceStrength <= 0:
		return fmt.Errorf("%w: bubble.bounce_strength must be positive", ErrInvalidConfig)
	case c.Bubble.MaxDivisions < 0:
		return fmt.Errorf("%w: bubble.max_divisions must not be negative", ErrInvalidConfig)
	case c.Bubble.HorizontalLimit <= 0:
		return fmt.Errorf("%w: bubble.horizontal_limit must be positive", ErrInvalidConfig)
	case c.Bubble.Radius <= 0:
		return fmt.Errorf("%w: bubble.radius must be positive", ErrInvalidConfig)
	case c.Physics.CeilingY <= c.Bubble.SpawnHeight:
		return fmt.Errorf("%w: physics.ceiling_y must be above bubble.spawn_height", ErrInvalidConfig)
	case c.Projectile.Speed <= 0 || c.Projectile.Lifetime <= 0:
		return fmt.Errorf("%w: projectile speed and lifetime must be positive", ErrInvalidConfig)
	case c.Projectile.ShotDelay < 0:
		return fmt.Errorf("%w: projectile.shot_delay must not be negative", ErrInvalidConfig)
	case c.Player.LeftLimit >= c.Player.RightLimit:
		return fmt.Errorf("%w: player.left_limit must be below player.right_limit", ErrInvalidConfig)
	case c.Gameplay.Lives <= 0:
		return fmt.Errorf("%w: gameplay.lives must be positive", ErrInvalidConfig)
	case c.Gameplay.MaxLevel < 0:
		return fmt.Errorf("%w: gameplay.max_level must not be negative", ErrInvalidConfig)
	case c.Gameplay.CheckDelay < 0:
		return fmt.Errorf("%w: gameplay.check_delay must not be negative", ErrInvalidConfig)
	}

	for i, bg := range c.Backgrounds {
		if bg.Color == "" {
			continue
		}
		if _, ok := core.ParseColor(bg.Color); !ok {
			return fmt.Errorf("%w: backgrounds[%d].color %q is not a known color", ErrInvalidConfig, i, bg.Color)
		}
	}
	return nil
}
