package session

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/loopdeck/loopdeck-agent/internal/link"
	"github.com/loopdeck/loopdeck-agent/internal/player"
	"github.com/loopdeck/loopdeck-agent/internal/segment"
	"github.com/loopdeck/loopdeck-agent/internal/video"
)

// PlayerControl is the slice of the playback synchronizer the controller
// drives. All calls are fire-and-forget.
type PlayerControl interface {
	SetVideo(id string)
	SetLoop(start, end float64, enabled bool)
	ClearLoop()
	Play()
	Pause()
	Stop()
	SetRate(rate float64)
	SeekTo(seconds float64)
}

// ControllerConfig configures a Controller. Control and Repo may be nil; the
// controller then runs detached from a player and without persistence.
type ControllerConfig struct {
	Logger  *slog.Logger
	Control PlayerControl
	Repo    Repository
}

// Controller is the application state controller. It owns the draft, the
// segment list, the selection, and the observed playback state, and it is the
// only writer of all of them. Handlers call it from request goroutines and
// the synchronizer calls it from the reactor goroutine, so every operation
// takes the mutex.
type Controller struct {
	mu      sync.Mutex
	logger  *slog.Logger
	control PlayerControl
	repo    Repository

	sessionID  string
	videoID    string
	title      string
	segments   []segment.Segment
	selectedID string
	draft      Draft
	playback   PlaybackState
	inputText  string
	inputState InputState
	linkText   string
}

// Snapshot is a consistent copy of the session state for presentation.
type Snapshot struct {
	SessionID  string
	VideoID    string
	Title      string
	Segments   []segment.Segment
	SelectedID string
	Draft      Draft
	Playback   PlaybackState
	InputText  string
	InputState InputState
	Link       string
}

// NewController creates a controller for a fresh session.
func NewController(cfg ControllerConfig) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		logger:    logger,
		control:   cfg.Control,
		repo:      cfg.Repo,
		sessionID: xid.New().String(),
		playback:  PlaybackState{PlaybackRate: 1},
	}
}

// LoadFrom resolves user-pasted text into a video and segment list and
// replaces the session contents with it. On an unrecognized reference it
// returns ErrInvalidVideoRef and mutates nothing.
func (c *Controller) LoadFrom(ctx context.Context, input string) error {
	id, list, ok := link.Parse(input)
	if !ok {
		return ErrInvalidVideoRef
	}

	c.mu.Lock()
	c.videoID = id
	c.title = ""
	c.segments = list
	if len(list) > 0 {
		c.selectedID = list[0].ID
	} else {
		c.selectedID = ""
	}
	c.draft = Draft{}
	c.playback.CurrentTime = 0
	c.playback.Duration = 0
	c.playback.IsPlaying = false
	c.inputText = input
	c.regenerateLocked()
	c.inputState = InputCommitted
	c.pushVideoLocked()
	c.pushLoopLocked()
	c.persistLocked(ctx)
	c.mu.Unlock()

	c.logger.Info("session loaded", "video_id", id, "segments", len(list))
	return nil
}

// SetInputText tracks a keystroke in the link input field. The field counts
// as dirty until its value matches the canonical link again.
func (c *Controller) SetInputText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputText = text
	if text == c.linkText {
		c.inputState = InputClean
	} else {
		c.inputState = InputDirty
	}
}

// MarkStart snapshots the current playback time into the draft's start.
func (c *Controller) MarkStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.MarkStart(c.playback.CurrentTime)
}

// MarkEnd snapshots the current playback time into the draft's end.
func (c *Controller) MarkEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.MarkEnd(c.playback.CurrentTime)
}

// UpdateDraft applies edited label and bound text to the draft, re-parsing
// the numeric bounds.
func (c *Controller) UpdateDraft(label, startText, endText string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Label = label
	c.draft.SetStartText(startText)
	c.draft.SetEndText(endText)
}

// CommitDraft turns a complete draft into a segment: bounds clamped into
// [0, duration] when the duration is known, label defaulted when blank, the
// list re-sorted, the new segment selected, and the draft cleared.
func (c *Controller) CommitDraft(ctx context.Context) (segment.Segment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.draft.Complete() {
		return segment.Segment{}, ErrDraftIncomplete
	}
	start, end := c.draft.Start, c.draft.End
	if start > end {
		start, end = end, start
	}
	if end-start < segment.MinLength {
		return segment.Segment{}, ErrSegmentTooShort
	}

	if d := c.playback.Duration; d > 0 {
		start = math.Min(start, d)
		end = math.Min(end, d)
	}

	label := c.draft.Label
	if label == "" {
		label = segment.DefaultLabel(len(c.segments) + 1)
	}

	s := segment.New(label, start, end)
	c.segments = append(c.segments, s)
	segment.SortByStart(c.segments)
	c.selectedID = s.ID
	c.draft = Draft{}
	c.regenerateLocked()
	c.pushLoopLocked()
	c.persistLocked(ctx)

	c.logger.Info("segment committed", "label", label, "start", s.Start, "end", s.End)
	return s, nil
}

// Select makes the given segment the active loop range.
func (c *Controller) Select(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOfLocked(id) < 0 {
		return ErrNoSuchSegment
	}
	c.selectedID = id
	c.pushLoopLocked()
	c.persistLocked(ctx)
	return nil
}

// SelectNext cycles the selection forward through the segment list. With no
// current selection it selects the first segment.
func (c *Controller) SelectNext(ctx context.Context) {
	c.cycleSelection(ctx, 1)
}

// SelectPrevious cycles the selection backward. With no current selection it
// selects the last segment.
func (c *Controller) SelectPrevious(ctx context.Context) {
	c.cycleSelection(ctx, -1)
}

func (c *Controller) cycleSelection(ctx context.Context, dir int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.segments)
	if n == 0 {
		return
	}

	idx := c.indexOfLocked(c.selectedID)
	if idx < 0 {
		if dir > 0 {
			idx = 0
		} else {
			idx = n - 1
		}
	} else {
		idx = ((idx+dir)%n + n) % n
	}

	c.selectedID = c.segments[idx].ID
	c.pushLoopLocked()
	c.persistLocked(ctx)
}

// Remove deletes a segment. Removing the selected one clears the selection.
func (c *Controller) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOfLocked(id)
	if idx < 0 {
		return ErrNoSuchSegment
	}
	c.segments = append(c.segments[:idx], c.segments[idx+1:]...)
	if c.selectedID == id {
		c.selectedID = ""
	}
	c.regenerateLocked()
	c.pushLoopLocked()
	c.persistLocked(ctx)
	return nil
}

// ClearAll removes every segment and the selection.
func (c *Controller) ClearAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.segments = nil
	c.selectedID = ""
	c.regenerateLocked()
	c.pushLoopLocked()
	c.persistLocked(ctx)
}

// SetLooping enables or disables loop enforcement.
func (c *Controller) SetLooping(ctx context.Context, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playback.Looping = enabled
	c.pushLoopLocked()
	c.persistLocked(ctx)
}

// ToggleLooping flips loop enforcement and returns the new value.
func (c *Controller) ToggleLooping(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playback.Looping = !c.playback.Looping
	c.pushLoopLocked()
	c.persistLocked(ctx)
	return c.playback.Looping
}

// Play resumes playback. The playing flag is set optimistically; the
// player's own state events remain authoritative.
func (c *Controller) Play() {
	c.mu.Lock()
	c.playback.IsPlaying = c.videoID != ""
	c.mu.Unlock()
	if c.control != nil {
		c.control.Play()
	}
}

// Pause pauses playback.
func (c *Controller) Pause() {
	c.mu.Lock()
	c.playback.IsPlaying = false
	c.mu.Unlock()
	if c.control != nil {
		c.control.Pause()
	}
}

// Stop stops playback.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.playback.IsPlaying = false
	c.playback.CurrentTime = 0
	c.mu.Unlock()
	if c.control != nil {
		c.control.Stop()
	}
}

// SetRate changes the playback rate.
func (c *Controller) SetRate(rate float64) {
	c.mu.Lock()
	c.playback.PlaybackRate = rate
	c.mu.Unlock()
	if c.control != nil {
		c.control.SetRate(rate)
	}
}

// SeekTo seeks to an absolute position.
func (c *Controller) SeekTo(seconds float64) {
	if c.control != nil {
		c.control.SeekTo(seconds)
	}
}

// HandleReady receives the synchronizer's ready event.
func (c *Controller) HandleReady(m player.Media) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m.ID != c.videoID {
		return
	}
	c.title = m.Title
	c.playback.Duration = m.Duration
}

// HandleTime receives a poll tick.
func (c *Controller) HandleTime(current, duration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playback.CurrentTime = current
	if duration > 0 {
		c.playback.Duration = duration
	}
}

// HandleStateChange receives a player state event.
func (c *Controller) HandleStateChange(state player.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playback.IsPlaying = state.Playing()
}

// Link returns the canonical shareable link, or empty when no video is
// loaded.
func (c *Controller) Link() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.linkText
}

// Snapshot returns a consistent copy of the session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	segs := make([]segment.Segment, len(c.segments))
	copy(segs, c.segments)

	return Snapshot{
		SessionID:  c.sessionID,
		VideoID:    c.videoID,
		Title:      c.title,
		Segments:   segs,
		SelectedID: c.selectedID,
		Draft:      c.draft,
		Playback:   c.playback,
		InputText:  c.inputText,
		InputState: c.inputState,
		Link:       c.linkText,
	}
}

// Restore rebuilds session state from a stored session. Used at startup.
func (c *Controller) Restore(ctx context.Context, stored *StoredSession) error {
	if err := c.LoadFrom(ctx, stored.Link); err != nil {
		return err
	}

	c.mu.Lock()
	c.sessionID = stored.ID
	if stored.SelectedIndex >= 0 && stored.SelectedIndex < len(c.segments) {
		c.selectedID = c.segments[stored.SelectedIndex].ID
	}
	c.playback.Looping = stored.Looping
	c.pushLoopLocked()
	c.mu.Unlock()

	c.logger.Info("session restored", "session_id", stored.ID, "video_id", c.videoID)
	return nil
}

// indexOfLocked returns the position of a segment id, or -1.
func (c *Controller) indexOfLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, s := range c.segments {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// regenerateLocked rebuilds the canonical link and, unless the user is
// mid-edit, refreshes the input field with it. A just-committed field
// returns to clean here.
func (c *Controller) regenerateLocked() {
	if c.videoID == "" {
		c.linkText = ""
	} else {
		c.linkText = link.Build(c.videoID, c.segments)
	}

	if c.inputState != InputDirty {
		c.inputText = c.linkText
		c.inputState = InputClean
	}
}

// pushVideoLocked forwards the current identifier to the synchronizer.
func (c *Controller) pushVideoLocked() {
	if c.control == nil {
		return
	}
	c.control.SetVideo(c.videoID)
}

// pushLoopLocked forwards the active loop range to the synchronizer.
func (c *Controller) pushLoopLocked() {
	if c.control == nil {
		return
	}
	idx := c.indexOfLocked(c.selectedID)
	if idx < 0 {
		c.control.ClearLoop()
		return
	}
	s := c.segments[idx]
	c.control.SetLoop(s.Start, s.End, c.playback.Looping)
}

// persistLocked saves the session. Persistence failures are logged, never
// surfaced: losing a restore is a degraded mode, not an error the user can
// act on mid-session.
func (c *Controller) persistLocked(ctx context.Context) {
	if c.repo == nil || c.videoID == "" {
		return
	}
	stored := &StoredSession{
		ID:            c.sessionID,
		Link:          c.linkText,
		SelectedIndex: c.indexOfLocked(c.selectedID),
		Looping:       c.playback.Looping,
		UpdatedAt:     time.Now(),
	}
	if err := c.repo.SaveSession(ctx, stored); err != nil {
		c.logger.Warn("failed to persist session", "session_id", c.sessionID, "error", err)
	}
}

// ValidateVideoRef reports whether text would load, without mutating
// anything. Used for field-level validation.
func ValidateVideoRef(text string) bool {
	_, ok := video.ExtractID(text)
	return ok
}
