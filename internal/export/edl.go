package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/loopdeck/loopdeck-agent/internal/segment"
)

// GenerateEDL renders the segment list as a CMX 3600 edit decision list. All
// events cut from the same source, so every clip carries the same media
// reference (the video's watch URL). Record times pack the segments
// back-to-back.
func GenerateEDL(segments []segment.Segment, title, mediaRef string, frameRate float64) string {
	fps := int(math.Round(frameRate))
	if fps <= 0 {
		fps = 30
	}

	isDropFrame := math.Abs(frameRate-29.97) < 0.01 || math.Abs(frameRate-59.94) < 0.01

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if isDropFrame {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	recordOffsetMs := 0
	for i, s := range segments {
		startMs := secondsToMs(s.Start)
		endMs := secondsToMs(s.End)
		durationMs := endMs - startMs

		srcIn := msToTimecode(startMs, fps)
		srcOut := msToTimecode(endMs, fps)
		recIn := msToTimecode(recordOffsetMs, fps)
		recOut := msToTimecode(recordOffsetMs+durationMs, fps)

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, "AX", "V", srcIn, srcOut, recIn, recOut),
			fmt.Sprintf("* FROM CLIP NAME:  %s", s.Label),
			fmt.Sprintf("* MEDIA PATH:  %s", mediaRef),
		)

		recordOffsetMs += durationMs
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func secondsToMs(seconds float64) int {
	return int(math.Round(seconds * 1000))
}

func msToTimecode(ms int, fps int) string {
	totalFrames := int(math.Round(float64(ms) * float64(fps) / 1000.0))
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}
