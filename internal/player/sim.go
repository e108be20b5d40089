package player

import (
	"math"
	"sync"
	"time"
)

// SimPlayer is a wall-clock simulation of an embedded player. It advances the
// play head in real time at the configured rate, which lets the agent run end
// to end without a browser hosting the real player. All methods are safe for
// concurrent use.
type SimPlayer struct {
	mu        sync.Mutex
	videoID   string
	duration  float64
	position  float64
	rate      float64
	playing   bool
	updatedAt time.Time
	destroyed bool
}

// NewSimPlayer creates a stopped simulated player with rate 1.
func NewSimPlayer() *SimPlayer {
	return &SimPlayer{rate: 1, updatedAt: time.Now()}
}

// SetDuration installs the media duration, clamping the play head into range.
func (p *SimPlayer) SetDuration(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanceLocked()
	p.duration = math.Max(0, seconds)
	if p.position > p.duration {
		p.position = p.duration
	}
}

func (p *SimPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed || p.videoID == "" {
		return
	}
	p.advanceLocked()
	p.playing = true
}

func (p *SimPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanceLocked()
	p.playing = false
}

func (p *SimPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	p.position = 0
	p.updatedAt = time.Now()
}

func (p *SimPlayer) SeekTo(seconds float64, allowSeekAhead bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return
	}
	p.advanceLocked()
	seconds = math.Max(0, seconds)
	if !allowSeekAhead && p.duration > 0 && seconds > p.position {
		return
	}
	if p.duration > 0 && seconds > p.duration {
		seconds = p.duration
	}
	p.position = seconds
}

func (p *SimPlayer) SetPlaybackRate(rate float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if rate <= 0 {
		return
	}
	p.advanceLocked()
	p.rate = rate
}

func (p *SimPlayer) CurrentTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanceLocked()
	return p.position
}

func (p *SimPlayer) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

func (p *SimPlayer) VideoID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.videoID
}

// CueVideoByID loads a video without starting playback.
func (p *SimPlayer) CueVideoByID(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return
	}
	p.videoID = id
	p.position = 0
	p.playing = false
	p.updatedAt = time.Now()
}

func (p *SimPlayer) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroyed = true
	p.playing = false
	p.videoID = ""
}

// Playing reports whether the simulation is advancing.
func (p *SimPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// advanceLocked folds elapsed wall time into the play head. Playback pauses
// itself at the end of the media.
func (p *SimPlayer) advanceLocked() {
	now := time.Now()
	if p.playing {
		p.position += now.Sub(p.updatedAt).Seconds() * p.rate
		if p.duration > 0 && p.position >= p.duration {
			p.position = p.duration
			p.playing = false
		}
	}
	p.updatedAt = now
}
