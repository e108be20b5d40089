// Package link composes and decomposes the canonical shareable watch URL,
// which carries the video ID and the encoded segment list as query
// parameters.
package link

import (
	"net/url"

	"github.com/loopdeck/loopdeck-agent/internal/segment"
	"github.com/loopdeck/loopdeck-agent/internal/video"
)

const (
	watchBaseURL = "https://www.youtube.com/watch"

	// Query parameter names of the shareable link.
	ParamVideo    = "v"
	ParamSegments = "segments"
)

// Build returns the canonical shareable URL for a video and its segments.
// The segments parameter is omitted for an empty list.
func Build(videoID string, list []segment.Segment) string {
	u := watchBaseURL + "?" + ParamVideo + "=" + url.QueryEscape(videoID)
	if encoded := segment.Encode(list); encoded != "" {
		u += "&" + ParamSegments + "=" + url.QueryEscape(encoded)
	}
	return u
}

// Parse extracts a video ID and segment list from pasted text. The ID comes
// from the identifier extractor; the segment list from decoding the text's
// own segments parameter. Text that is not a parseable URL (a bare ID, say)
// yields an empty list. ok is false when no video ID can be extracted.
func Parse(raw string) (videoID string, list []segment.Segment, ok bool) {
	videoID, ok = video.ExtractID(raw)
	if !ok {
		return "", nil, false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return videoID, nil, true
	}
	list = segment.Decode(u.Query().Get(ParamSegments))
	return videoID, list, true
}
