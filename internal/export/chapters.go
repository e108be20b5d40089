package export

import (
	"fmt"
	"strings"

	"github.com/loopdeck/loopdeck-agent/internal/segment"
	"github.com/loopdeck/loopdeck-agent/internal/timecode"
)

// GenerateChapters renders the segment list in the timestamp-per-line format
// YouTube descriptions use for chapters. YouTube only recognizes a chapter
// list that starts at 00:00, so a leading chapter is inserted when the first
// segment starts later.
func GenerateChapters(segments []segment.Segment, title string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "%s\n\n", title)
	}

	if len(segments) > 0 && segments[0].Start >= 1 {
		b.WriteString("00:00 Intro\n")
	}
	for _, s := range segments {
		fmt.Fprintf(&b, "%s %s\n", timecode.Format(s.Start), s.Label)
	}
	return b.String()
}
