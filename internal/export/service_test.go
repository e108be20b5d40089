package export

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loopdeck/loopdeck-agent/internal/segment"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(dir, logger), dir
}

func TestService_ExportEDL(t *testing.T) {
	svc, dir := newTestService(t)
	segments := []segment.Segment{segment.New("Riff", 10, 20)}

	result, err := svc.Export(Request{Title: "My Set", Format: FormatEDL}, segments, mediaRef)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.OutputPath != filepath.Join(dir, "My Set.edl") {
		t.Errorf("output path = %q", result.OutputPath)
	}
	if result.SegmentCount != 1 {
		t.Errorf("segment count = %d", result.SegmentCount)
	}

	content, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(content), "TITLE: My Set") {
		t.Errorf("export content missing title: %q", content)
	}
}

func TestService_ExportChapters(t *testing.T) {
	svc, _ := newTestService(t)
	segments := []segment.Segment{segment.New("Whole", 0, 10)}

	result, err := svc.Export(Request{Title: "Set", Format: FormatChapters}, segments, mediaRef)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasSuffix(result.OutputPath, ".txt") {
		t.Errorf("chapters export path = %q", result.OutputPath)
	}
	content, _ := os.ReadFile(result.OutputPath)
	if !strings.Contains(string(content), "00:00 Whole") {
		t.Errorf("chapters content = %q", content)
	}
}

func TestService_ExportDefaultsFormatAndTitle(t *testing.T) {
	svc, dir := newTestService(t)
	segments := []segment.Segment{segment.New("Riff", 0, 5)}

	result, err := svc.Export(Request{}, segments, mediaRef)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.Format != FormatEDL {
		t.Errorf("format = %q, want edl", result.Format)
	}
	if result.OutputPath != filepath.Join(dir, "loopdeck.edl") {
		t.Errorf("output path = %q", result.OutputPath)
	}
}

func TestService_ExportRejectsEmptyList(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Export(Request{Title: "x"}, nil, mediaRef); err == nil {
		t.Error("expected error for empty segment list")
	}
}

func TestService_ExportRejectsUnknownFormat(t *testing.T) {
	svc, _ := newTestService(t)
	segments := []segment.Segment{segment.New("Riff", 0, 5)}
	if _, err := svc.Export(Request{Format: "srt"}, segments, mediaRef); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestService_ExportRejectsBadOutputDir(t *testing.T) {
	svc, _ := newTestService(t)
	segments := []segment.Segment{segment.New("Riff", 0, 5)}
	if _, err := svc.Export(Request{OutputDir: "/does/not/exist"}, segments, mediaRef); err == nil {
		t.Error("expected error for missing output dir")
	}
}
