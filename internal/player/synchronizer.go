package player

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultPollInterval is how often the synchronizer samples the player.
	DefaultPollInterval = 250 * time.Millisecond

	// LoopThreshold is the early-seek margin, in seconds, that absorbs poll
	// jitter and player seek latency at a segment's end boundary.
	LoopThreshold = 0.15
)

// Events carries the synchronizer's upward notifications. All callbacks are
// invoked from the reactor goroutine and must not block. Nil callbacks are
// skipped.
type Events struct {
	OnReady    func(media Media)
	OnTime     func(current, duration float64)
	OnLoopSeek func(start float64)
}

// SynchronizerConfig configures a Synchronizer.
type SynchronizerConfig struct {
	Player       Player
	Loader       MetadataLoader
	Events       Events
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Synchronizer is a single-goroutine reactor over the live player. External
// calls post commands onto the reactor; the poll tick runs in the same select,
// so ticks and commands are strictly serialized. Every player operation is a
// no-op until initialization succeeds and after teardown.
type Synchronizer struct {
	player   Player
	loader   MetadataLoader
	events   Events
	interval time.Duration
	logger   *slog.Logger

	cmds      chan func()
	stop      chan struct{}
	closeOnce sync.Once

	// reactor-owned state, touched only from Run
	ready   bool
	videoID string
	loop    loopRange
}

type loopRange struct {
	start   float64
	end     float64
	enabled bool
}

// NewSynchronizer creates a Synchronizer. Run must be called for commands to
// take effect.
func NewSynchronizer(cfg SynchronizerConfig) *Synchronizer {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{
		player:   cfg.Player,
		loader:   cfg.Loader,
		events:   cfg.Events,
		interval: interval,
		logger:   logger,
		cmds:     make(chan func(), 16),
		stop:     make(chan struct{}),
	}
}

// Run executes the reactor until ctx is cancelled or Close is called. All
// exit paths release the player and clear ready state.
func (s *Synchronizer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.teardown()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case fn := <-s.cmds:
			fn()
		case <-ticker.C:
			s.tick()
		}
	}
}

// Close stops the reactor. Safe to call more than once and concurrently with
// Run exiting on its own.
func (s *Synchronizer) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
}

// SetVideo cues the given video, initializing the player on first use. An
// empty id stops playback. Fire-and-forget.
func (s *Synchronizer) SetVideo(id string) {
	s.do(func() { s.setVideo(id) })
}

// SetLoop installs the active loop range. When looping is enabled the player
// seeks to start immediately, without waiting for the next poll tick.
func (s *Synchronizer) SetLoop(start, end float64, enabled bool) {
	s.do(func() {
		s.loop = loopRange{start: start, end: end, enabled: enabled}
		if enabled && s.playerReady() {
			s.player.SeekTo(start, true)
		}
	})
}

// ClearLoop removes the active loop range.
func (s *Synchronizer) ClearLoop() {
	s.do(func() { s.loop = loopRange{} })
}

// Play resumes playback.
func (s *Synchronizer) Play() {
	s.do(func() {
		if s.playerReady() {
			s.player.Play()
		}
	})
}

// Pause pauses playback.
func (s *Synchronizer) Pause() {
	s.do(func() {
		if s.playerReady() {
			s.player.Pause()
		}
	})
}

// Stop stops playback.
func (s *Synchronizer) Stop() {
	s.do(func() {
		if s.playerReady() {
			s.player.Stop()
		}
	})
}

// SetRate changes the playback rate.
func (s *Synchronizer) SetRate(rate float64) {
	s.do(func() {
		if s.playerReady() {
			s.player.SetPlaybackRate(rate)
		}
	})
}

// SeekTo seeks to an absolute position.
func (s *Synchronizer) SeekTo(seconds float64) {
	s.do(func() {
		if s.playerReady() {
			s.player.SeekTo(seconds, true)
		}
	})
}

// do posts a command to the reactor, dropping it if the reactor has stopped.
func (s *Synchronizer) do(fn func()) {
	select {
	case s.cmds <- fn:
	case <-s.stop:
	}
}

func (s *Synchronizer) playerReady() bool {
	return s.ready && s.player != nil
}

func (s *Synchronizer) setVideo(id string) {
	if id == "" {
		s.videoID = ""
		if s.playerReady() {
			s.player.Stop()
		}
		return
	}

	s.videoID = id

	if s.loader == nil {
		// No metadata source: treat the player as immediately ready.
		s.ready = true
		s.cue(id)
		return
	}

	go s.load(id)
}

// load runs off the reactor goroutine; the result is posted back as a command
// and checked against the current video so a stale load cannot act.
func (s *Synchronizer) load(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	media, err := s.loader.Load(ctx, id)
	if err != nil {
		s.logger.Warn("video metadata load failed", "video_id", id, "error", err)
		return
	}

	s.do(func() {
		if s.videoID != media.ID {
			return
		}
		s.ready = true
		s.cue(media.ID)
		if s.events.OnReady != nil {
			s.events.OnReady(media)
		}
	})
}

func (s *Synchronizer) cue(id string) {
	if s.player == nil {
		return
	}
	if s.player.VideoID() != id {
		s.player.CueVideoByID(id)
	}
}

func (s *Synchronizer) tick() {
	if !s.playerReady() || s.videoID == "" {
		return
	}

	current := s.player.CurrentTime()
	duration := s.player.Duration()
	if s.events.OnTime != nil {
		s.events.OnTime(current, duration)
	}

	if s.loop.enabled && s.loop.end > s.loop.start && current >= s.loop.end-LoopThreshold {
		s.player.SeekTo(s.loop.start, true)
		if s.events.OnLoopSeek != nil {
			s.events.OnLoopSeek(s.loop.start)
		}
	}
}

func (s *Synchronizer) teardown() {
	s.Close()
	if s.player != nil {
		s.player.Destroy()
		s.player = nil
	}
	s.ready = false
}
