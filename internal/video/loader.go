package video

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kkdai/youtube/v2"

	"github.com/loopdeck/loopdeck-agent/internal/player"
)

// YouTubeLoader fetches video metadata (title, duration) from YouTube. It
// implements player.MetadataLoader.
type YouTubeLoader struct {
	client youtube.Client
	logger *slog.Logger
}

// NewYouTubeLoader creates a metadata loader backed by the YouTube API.
func NewYouTubeLoader(logger *slog.Logger) *YouTubeLoader {
	return &YouTubeLoader{logger: logger}
}

// Load looks up metadata for the given video ID.
func (l *YouTubeLoader) Load(ctx context.Context, videoID string) (player.Media, error) {
	if !IsID(videoID) {
		return player.Media{}, fmt.Errorf("invalid video id: %q", videoID)
	}

	v, err := l.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return player.Media{}, fmt.Errorf("fetch video metadata: %w", err)
	}

	media := player.Media{
		ID:       videoID,
		Title:    v.Title,
		Duration: v.Duration.Seconds(),
	}

	if l.logger != nil {
		l.logger.Info("video metadata loaded",
			"video_id", videoID,
			"title", v.Title,
			"duration_s", media.Duration,
		)
	}
	return media, nil
}
