package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pang/internal/config"
	"github.com/vovakirdan/tui-pang/internal/games/pang"
	"github.com/vovakirdan/tui-pang/internal/storage"
)

var flagLevelCount int

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level sequence",
	Long: `Print each level with its bubble count and background.

The campaign ends after the configured max level; endless mode keeps
adding one bubble per level.

Examples:
  pang levels
  pang levels --count 10
  pang levels --config ./my-pang.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLevelCount, "count", 0, "Levels to show (0 = campaign length)")
	levelsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadPang(flagConfig)
	if err != nil {
		return err
	}

	count := flagLevelCount
	if count <= 0 {
		count = max(cfg.Gameplay.MaxLevel, len(cfg.Backgrounds))
	}

	best := bestCampaignLevel()

	fmt.Printf("  %-5s  %-7s  %s\n", "Level", "Bubbles", "Background")
	fmt.Printf("  %-5s  %-7s  %s\n", "-----", "-------", "----------")
	for _, l := range pang.Plan(cfg, count) {
		bg := l.Background
		if bg == "" {
			bg = "-"
		}
		mark := ""
		if l.Number <= best {
			mark = "  (reached)"
		}
		fmt.Printf("  %-5d  %-7d  %s%s\n", l.Number, l.Bubbles, bg, mark)
	}

	fmt.Println()
	if cfg.Gameplay.MaxLevel > 0 {
		fmt.Printf("Campaign: %d levels, %d lives\n", cfg.Gameplay.MaxLevel, cfg.Gameplay.Lives)
	} else {
		fmt.Printf("Unbounded levels, %d lives\n", cfg.Gameplay.Lives)
	}
	return nil
}

// bestCampaignLevel returns the furthest campaign level on record, or 0
// when the scores database is unavailable.
func bestCampaignLevel() int {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return 0
	}
	defer store.Close()

	best, err := store.BestLevel("pang")
	if err != nil {
		return 0
	}
	return best
}
