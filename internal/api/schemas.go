package api

import (
	"github.com/loopdeck/loopdeck-agent/internal/segment"
	"github.com/loopdeck/loopdeck-agent/internal/session"
	"github.com/loopdeck/loopdeck-agent/internal/timecode"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	UptimeS  int64  `json:"uptime_s"`
	DeviceID string `json:"device_id"`
}

type StatusResponse struct {
	State         string `json:"state"`
	SessionID     string `json:"session_id"`
	VideoID       string `json:"video_id,omitempty"`
	Title         string `json:"title,omitempty"`
	SegmentsCount int    `json:"segments_count"`
	Looping       bool   `json:"looping"`
	Playing       bool   `json:"playing"`
}

type SessionResponse struct {
	SessionID  string            `json:"session_id"`
	VideoID    string            `json:"video_id,omitempty"`
	Title      string            `json:"title,omitempty"`
	Link       string            `json:"link,omitempty"`
	InputText  string            `json:"input_text"`
	InputState string            `json:"input_state"`
	SelectedID string            `json:"selected_id,omitempty"`
	Segments   []SegmentResponse `json:"segments"`
	Draft      DraftResponse     `json:"draft"`
	Playback   PlaybackResponse  `json:"playback"`
}

type SegmentResponse struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	StartDisplay string  `json:"start_display"`
	EndDisplay   string  `json:"end_display"`
}

type DraftResponse struct {
	Label     string `json:"label"`
	StartText string `json:"start_text"`
	EndText   string `json:"end_text"`
	Complete  bool   `json:"complete"`
}

type PlaybackResponse struct {
	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration"`
	IsPlaying   bool    `json:"is_playing"`
	Rate        float64 `json:"rate"`
	Looping     bool    `json:"looping"`
}

type LoadRequest struct {
	Input string `json:"input"`
}

type InputRequest struct {
	Text string `json:"text"`
}

type DraftRequest struct {
	Label     string `json:"label"`
	StartText string `json:"start_text"`
	EndText   string `json:"end_text"`
}

type SelectRequest struct {
	ID string `json:"id"`
}

type RateRequest struct {
	Rate float64 `json:"rate"`
}

type LoopingRequest struct {
	Enabled bool `json:"enabled"`
}

type SeekRequest struct {
	Seconds float64 `json:"seconds"`
}

// PlayerEventRequest is the bridge for a UI hosting the real embedded player:
// it reports ready metadata, raw player state codes, and time updates back to
// the agent.
type PlayerEventRequest struct {
	Event       string  `json:"event"` // ready | state | time
	VideoID     string  `json:"video_id,omitempty"`
	Title       string  `json:"title,omitempty"`
	State       int     `json:"state,omitempty"`
	CurrentTime float64 `json:"current_time,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
}

type LinkResponse struct {
	Link string `json:"link"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func SegmentToResponse(s segment.Segment) SegmentResponse {
	return SegmentResponse{
		ID:           s.ID,
		Label:        s.Label,
		Start:        s.Start,
		End:          s.End,
		StartDisplay: timecode.Format(s.Start),
		EndDisplay:   timecode.Format(s.End),
	}
}

func SnapshotToResponse(snap session.Snapshot) SessionResponse {
	segments := make([]SegmentResponse, len(snap.Segments))
	for i, s := range snap.Segments {
		segments[i] = SegmentToResponse(s)
	}

	return SessionResponse{
		SessionID:  snap.SessionID,
		VideoID:    snap.VideoID,
		Title:      snap.Title,
		Link:       snap.Link,
		InputText:  snap.InputText,
		InputState: snap.InputState.String(),
		SelectedID: snap.SelectedID,
		Segments:   segments,
		Draft: DraftResponse{
			Label:     snap.Draft.Label,
			StartText: snap.Draft.StartText,
			EndText:   snap.Draft.EndText,
			Complete:  snap.Draft.Complete(),
		},
		Playback: PlaybackResponse{
			CurrentTime: snap.Playback.CurrentTime,
			Duration:    snap.Playback.Duration,
			IsPlaying:   snap.Playback.IsPlaying,
			Rate:        snap.Playback.PlaybackRate,
			Looping:     snap.Playback.Looping,
		},
	}
}
