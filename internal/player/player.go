// Package player drives a live video player: it polls playback position on a
// fixed interval and enforces loop boundaries against the selected segment.
package player

import "context"

// Player is the control surface of an embedded video player. Implementations
// must tolerate commands arriving before any video is cued.
type Player interface {
	Play()
	Pause()
	Stop()
	SeekTo(seconds float64, allowSeekAhead bool)
	SetPlaybackRate(rate float64)
	CurrentTime() float64
	Duration() float64
	VideoID() string
	CueVideoByID(id string)
	Destroy()
}

// State mirrors the player event codes reported by the hosting environment.
type State int

const (
	StateEnded     State = 0
	StatePlaying   State = 1
	StatePaused    State = 2
	StateBuffering State = 3
	StateCued      State = 5
)

// Playing reports whether the state counts as active playback. Buffering is
// treated as playing so a stalled player does not flicker the UI.
func (s State) Playing() bool {
	return s == StatePlaying || s == StateBuffering
}

// Media describes a loaded video.
type Media struct {
	ID       string
	Title    string
	Duration float64
}

// MetadataLoader performs the asynchronous lookup of a video's metadata.
type MetadataLoader interface {
	Load(ctx context.Context, videoID string) (Media, error)
}
