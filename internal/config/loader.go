package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// userConfigRel is the config file location relative to the XDG config dirs.
const userConfigRel = "pang/pang.yaml"

// LoadPang loads Pang configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/pang/pang.yaml -> ./configs/pang.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func LoadPang(customPath string) (PangConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultPangConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parsePang(data)
		if err != nil {
			return DefaultPangConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parsePang(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pang.yaml"); err == nil {
		if cfg, err := parsePang(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parsePang(defaultPangYAML)
	if err != nil {
		return DefaultPangConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parsePang decodes YAML over the hardcoded defaults and validates the result.
func parsePang(data []byte) (PangConfig, error) {
	cfg := DefaultPangConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the user config file if one exists, or empty.
func userConfigPath() string {
	path, err := xdg.SearchConfigFile(userConfigRel)
	if err != nil {
		return ""
	}
	return path
}

// ApplyPangPreset modifies the config based on a difficulty preset.
func ApplyPangPreset(cfg *PangConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}

	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 7
		cfg.Bubble.Speed = 4.0
	case DifficultyHard:
		cfg.Gameplay.Lives = 3
		cfg.Bubble.Speed = 6.0
		cfg.Projectile.ShotDelay = 0.25
	}
}
