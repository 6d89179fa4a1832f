package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pang/internal/core"
	"github.com/vovakirdan/tui-pang/internal/games/pang"
	"github.com/vovakirdan/tui-pang/internal/platform/tui"
	"github.com/vovakirdan/tui-pang/internal/registry"
	"github.com/vovakirdan/tui-pang/internal/storage"
)

var (
	flagMode       string
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Pang",
	Long: `Start playing Pang.

Controls:
  Left/A, Right/D  - Move
  Space/Up         - Fire
  Enter            - Next level
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Modes:
  campaign - Clear the configured levels to win (default)
  endless  - Levels keep coming until your lives run out

Difficulty options:
  easy   - More lives, slower bubbles
  normal - Config defaults with level progression
  hard   - Fewer lives, faster bubbles
  fixed  - No progression, stays at config's initial speed

Examples:
  pang play
  pang play --mode endless
  pang play --difficulty hard
  pang play --config ./my-pang.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "campaign", "Game mode: campaign, endless")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// gameIDForMode maps a --mode value to a registered game ID.
// An empty mode selects the campaign.
func gameIDForMode(mode string) (string, error) {
	if mode == "" {
		mode = "campaign"
	}
	info, err := registry.ByMode(mode)
	if err != nil {
		return "", fmt.Errorf("unknown mode %q (want %s)", mode, strings.Join(registry.Modes(), " or "))
	}
	return info.ID, nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameID, err := gameIDForMode(flagMode)
	if err != nil {
		return err
	}

	logger, closer, err := setupLogger("pang", true)
	if err != nil {
		return err
	}
	//nolint:errcheck // Best-effort close of the log file
	defer closer.Close()

	pang.SetLogger(logger)
	pang.SetConfigPath(flagConfig)
	pang.SetDifficultyPreset(flagDifficulty)

	player := setupAudio(logger)
	defer player.Close()

	// Get terminal size before the first resize message
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without score storage", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	logger.Info("starting", "game", gameID, "difficulty", flagDifficulty, "seed", flagSeed)
	runErr := tui.Run(game, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
