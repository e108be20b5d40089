// Package segment defines named loop ranges over a video and the codec that
// carries them through the shareable-link query parameter.
package segment

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MinLength is the minimum allowed segment length in seconds.
const MinLength = 0.2

// Segment is a named [start, end] time range. Segments are immutable value
// objects: edits replace the whole segment. The ID is UI identity only and is
// never serialized.
type Segment struct {
	ID    string
	Label string
	Start float64
	End   float64
}

// New constructs a segment with a fresh ID. Bounds are clamped to zero,
// rounded to two decimals, and reordered so Start <= End always holds.
func New(label string, start, end float64) Segment {
	start = sanitizeSeconds(start)
	end = sanitizeSeconds(end)
	if start > end {
		start, end = end, start
	}
	return Segment{
		ID:    uuid.NewString(),
		Label: label,
		Start: start,
		End:   end,
	}
}

// Length returns the segment length in seconds.
func (s Segment) Length() float64 {
	return s.End - s.Start
}

// DefaultLabel returns the fallback label for the segment at the given
// 1-based position.
func DefaultLabel(position int) string {
	return fmt.Sprintf("Loop %d", position)
}

// SortByStart orders segments ascending by start, keeping the existing order
// of equal starts.
func SortByStart(list []Segment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Start < list[j].Start
	})
}

func sanitizeSeconds(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		v = 0
	}
	return math.Round(v*100) / 100
}

// coerceSeconds interprets an untrusted decoded value as seconds. JSON
// numbers arrive as float64; numeric strings are accepted the way the lenient
// original format did. Anything else fails.
func coerceSeconds(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return sanitizeSeconds(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return sanitizeSeconds(f), true
	default:
		return 0, false
	}
}
