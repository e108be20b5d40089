// Package session owns the mutable state of a loop-practice session: the
// loaded video, the committed segment list, the draft segment being built,
// the selection, and the observed playback state. All parsing and
// sanitization happens here or in the codecs it calls; API handlers and the
// tray never duplicate it.
package session

import (
	"errors"

	"github.com/loopdeck/loopdeck-agent/internal/timecode"
)

var (
	ErrInvalidVideoRef = errors.New("unrecognized video link or id")
	ErrDraftIncomplete = errors.New("draft needs both a start and an end point")
	ErrSegmentTooShort = errors.New("segment is shorter than the minimum length")
	ErrNoSuchSegment   = errors.New("no such segment")
)

// PlaybackState mirrors the live player. CurrentTime and Duration are
// overwritten on every poll tick and are never persisted.
type PlaybackState struct {
	CurrentTime  float64
	Duration     float64
	IsPlaying    bool
	PlaybackRate float64
	Looping      bool
}

// InputState tracks whether the link input field may be overwritten with the
// regenerated canonical link. A plain boolean races external state changes
// against an in-progress edit, so the "just accepted" case is its own state.
type InputState int

const (
	// InputClean: the field holds the canonical link and follows it.
	InputClean InputState = iota
	// InputDirty: the user is mid-edit; regeneration must not clobber it.
	InputDirty
	// InputCommitted: the field's value was just accepted by a load; the
	// next regeneration returns it to clean.
	InputCommitted
)

func (s InputState) String() string {
	switch s {
	case InputDirty:
		return "dirty"
	case InputCommitted:
		return "committed"
	default:
		return "clean"
	}
}

// Draft is the in-progress, uncommitted segment. The numeric bounds are
// derived from their text counterparts by re-parsing on every edit, never the
// reverse, so the pair stays consistent by construction.
type Draft struct {
	Label     string
	Start     float64
	End       float64
	HasStart  bool
	HasEnd    bool
	StartText string
	EndText   string
}

// Complete reports whether both bounds are present.
func (d Draft) Complete() bool {
	return d.HasStart && d.HasEnd
}

// SetStartText records the edited text and re-parses the numeric bound.
func (d *Draft) SetStartText(text string) {
	d.StartText = text
	d.Start, d.HasStart = timecode.Parse(text)
}

// SetEndText records the edited text and re-parses the numeric bound.
func (d *Draft) SetEndText(text string) {
	d.EndText = text
	d.End, d.HasEnd = timecode.Parse(text)
}

// MarkStart snapshots a playback position into the start bound, keeping the
// text field in sync.
func (d *Draft) MarkStart(seconds float64) {
	d.Start = timecode.Round2(seconds)
	d.HasStart = true
	d.StartText = timecode.FormatEditable(d.Start)
}

// MarkEnd snapshots a playback position into the end bound, keeping the text
// field in sync.
func (d *Draft) MarkEnd(seconds float64) {
	d.End = timecode.Round2(seconds)
	d.HasEnd = true
	d.EndText = timecode.FormatEditable(d.End)
}
