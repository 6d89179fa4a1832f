package core

// Sound identifies a fire-and-forget audio cue requested by a game.
type Sound int

const (
	SoundNone Sound = iota
	SoundPop        // Bubble split or destroyed
)

// String returns a human-readable name for the sound.
func (s Sound) String() string {
	switch s {
	case SoundPop:
		return "pop"
	default:
		return "none"
	}
}
