package pang

import "github.com/vovakirdan/tui-pang/internal/core"

// Audio plays fire-and-forget cues. Implemented by audio.Player.
type Audio interface {
	PlaySound(s core.Sound, pos core.Vec2)
}

// Panel identifies a modal overlay.
type Panel int

const (
	PanelLevelComplete Panel = iota
	PanelGameOver
)

// String returns a human-readable name for the panel.
func (p Panel) String() string {
	switch p {
	case PanelLevelComplete:
		return "level_complete"
	case PanelGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// HUD shows panels, the level backdrop and the life counter.
type HUD interface {
	SetPanelVisible(p Panel, visible bool)
	SetBackground(index int)
	SetLives(lives int)
}

// Clock scales gameplay time. A scale of 0 freezes movement and timers.
type Clock interface {
	SetTimeScale(scale float64)
}

// Contact tags a collision delivered by the world.
type Contact int

const (
	ContactProjectile Contact = iota // Bubble touched by a projectile
	ContactFloor
	ContactPlayer
	ContactCeiling
	ContactBubble // Projectile touched a bubble
)

// String returns a human-readable name for the contact.
func (c Contact) String() string {
	switch c {
	case ContactProjectile:
		return "projectile"
	case ContactFloor:
		return "floor"
	case ContactPlayer:
		return "player"
	case ContactCeiling:
		return "ceiling"
	case ContactBubble:
		return "bubble"
	default:
		return "unknown"
	}
}
