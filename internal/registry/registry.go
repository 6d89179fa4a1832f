// Package registry maps game IDs and mode names to factories.
// Game modes register themselves in init() functions so the CLI and the SSH
// server can create them by ID or by the --mode name players type.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-pang/internal/core"
)

// Game is the interface every registered game mode implements.
// Games hold pure simulation logic and never import Bubble Tea; the tui
// package owns input mapping, timing and terminal output.
type Game interface {
	// ID returns a unique identifier (e.g., "pang", "pang_endless").
	// Used as the score storage key.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to actions (Left, Fire, Pause, etc.).
	// Returns the result of this tick including current game state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// GameInfo describes a registered game mode.
type GameInfo struct {
	ID    string // Score storage key, e.g. "pang_endless"
	Mode  string // CLI mode name, e.g. "endless"
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
	byMode  = make(map[string]string) // mode name -> game ID
)

// Register adds a game factory under id, selectable as mode.
// Typically called from a game's init() function.
// Panics if the ID or the mode is already registered.
func Register(id, mode string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	if other, exists := byMode[mode]; exists {
		panic(fmt.Sprintf("registry: mode %q already taken by %q", mode, other))
	}

	entries[id] = entry{
		info:    GameInfo{ID: id, Mode: mode, Title: f().Title()},
		factory: f,
	}
	byMode[mode] = id
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Modes returns the registered mode names, sorted.
func Modes() []string {
	mu.RLock()
	defer mu.RUnlock()

	modes := make([]string, 0, len(byMode))
	for m := range byMode {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return modes
}

// ByMode returns the game registered for a mode name.
func ByMode(mode string) (GameInfo, error) {
	mu.RLock()
	defer mu.RUnlock()

	id, ok := byMode[mode]
	if !ok {
		return GameInfo{}, fmt.Errorf("registry: unknown mode %q", mode)
	}
	return entries[id].info, nil
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
