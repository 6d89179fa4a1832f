// pang is a terminal bubble-popping game: split the bubbles, clear the
// level, keep your lives.
//
// Usage:
//
//	pang play               - Play the campaign (or --mode endless)
//	pang levels             - Show the level sequence
//	pang serve              - Start SSH server for remote play
//	pang scores             - Show high scores
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: XDG data dir)
//	--log-file <path>    - Write logs here (default: XDG state dir)
//	--log-level <level>  - debug, info, warn or error
//	--mute               - Disable sound
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pang/internal/audio"
	"github.com/vovakirdan/tui-pang/internal/games/pang"
	"github.com/vovakirdan/tui-pang/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
	flagMute     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pang",
	Short: "Pang - pop bubbles in your terminal",
	Long: `Pang is a terminal bubble-popping game. Shoot a bubble and it splits
in two smaller ones; pop the smallest ones to clear the level. A bubble
touching you costs a life.

Available commands:
  play     - Play the campaign or endless mode
  levels   - Show the level sequence
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs

Examples:
  pang play
  pang play --mode endless --difficulty hard
  pang serve --ssh :2222
  pang scores --tui`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Path to log file (default: XDG state dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogger builds the logger selected by the global flags. With toFile
// it writes to the log file, since the terminal belongs to the game.
// The returned closer must be called when done.
func setupLogger(prefix string, toFile bool) (*log.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, err
	}

	if !toFile {
		return logging.New(os.Stderr, level, prefix), io.NopCloser(nil), nil
	}

	f, err := logging.OpenFile(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	return logging.New(f, level, prefix), f, nil
}

// setupAudio starts the pop sound player unless muted. Audio failures
// only disable sound.
func setupAudio(logger *log.Logger) *audio.Player {
	player := audio.NewPlayer(logger)
	player.SetMuted(flagMute)
	if flagMute {
		return player
	}

	if err := player.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return player
	}
	pang.SetAudio(player)
	return player
}
