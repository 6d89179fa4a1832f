package config

import (
	_ "embed"
)

//go:embed defaults/pang.yaml
var defaultPangYAML []byte

// DefaultPangConfig returns the default Pang configuration.
func DefaultPangConfig() PangConfig {
	return PangConfig{
		Physics: PangPhysics{
			Gravity:  9.81,
			CeilingY: 12.0,
		},
		Bubble: PangBubble{
			Speed:           5.0,
			BounceStrength:  8.0,
			MaxDivisions:    2,
			HorizontalLimit: 13.0,
			Radius:          1.6,
			SplitOffset:     3.0,
			SpawnHeight:     5.0,
			SpawnRange:      10.0,
		},
		Projectile: PangProjectile{
			Speed:     10.0,
			Lifetime:  3.0,
			ShotDelay: 0.003,
			Radius:    0.3,
			Trigger:   true,
		},
		Player: PangPlayer{
			Speed:       7.0,
			LeftLimit:   -15.0,
			RightLimit:  15.0,
			Width:       1.2,
			Height:      1.6,
			SpawnOffset: 1.8,
			HoldTicks:   6,
		},
		Gameplay: PangGameplay{
			Lives:        5,
			MaxLevel:     3,
			CheckDelay:   0.1,
			PointsPerPop: 100,
		},
		Backgrounds: []BackgroundConfig{
			{Name: "meadow", Glyph: ".", Color: "green"},
			{Name: "dusk", Glyph: "'", Color: "magenta"},
			{Name: "night", Glyph: "*", Color: "blue"},
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 3,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pang", "pang_endless":
		return defaultPangYAML
	default:
		return nil
	}
}
