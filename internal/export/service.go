package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/loopdeck/loopdeck-agent/internal/segment"
)

const maxNameLen = 80

// Service writes segment-list exports to disk.
type Service struct {
	defaultDir string
	logger     *slog.Logger
}

func NewService(defaultDir string, logger *slog.Logger) *Service {
	return &Service{defaultDir: defaultDir, logger: logger}
}

// Export renders the segment list in the requested format and writes it under
// the requested directory, falling back to the configured export directory.
func (s *Service) Export(req Request, segments []segment.Segment, mediaRef string) (*Result, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("nothing to export: no segments")
	}

	dir := req.OutputDir
	if dir == "" {
		dir = s.defaultDir
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	} else if err := ValidateOutputDir(dir); err != nil {
		return nil, err
	}

	title := SanitizeName(req.Title, maxNameLen)
	if title == "" {
		title = "loopdeck"
	}

	format := req.Format
	if format == "" {
		format = FormatEDL
	}

	var content, ext string
	switch format {
	case FormatEDL:
		content = GenerateEDL(segments, title, mediaRef, req.FrameRate)
		ext = ".edl"
	case FormatChapters:
		content = GenerateChapters(segments, title)
		ext = ".txt"
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	outputPath := filepath.Join(dir, title+ext)
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}

	s.logger.Info("export written", "format", format, "path", outputPath, "segments", len(segments))

	return &Result{
		Status:       "ok",
		Format:       format,
		OutputPath:   outputPath,
		SegmentCount: len(segments),
	}, nil
}
