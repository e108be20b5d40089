// Package timecode converts between human-entered timestamp text and numeric
// seconds. Display formatting truncates to whole seconds; editable formatting
// keeps two decimal places so marked in/out points survive a round trip.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var digitsOnly = func(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Round2 rounds seconds to two decimal places.
func Round2(seconds float64) float64 {
	return math.Round(seconds*100) / 100
}

// Format renders seconds as display text: "mm:ss", or "hh:mm:ss" when the
// value reaches an hour. NaN and infinite values render as "00:00".
func Format(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "00:00"
	}
	if seconds < 0 {
		seconds = 0
	}

	total := int(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h == 0 {
		return fmt.Sprintf("%02d:%02d", m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatEditable renders seconds as "mm:ss" or "mm:ss.ff", preserving
// sub-second precision to two decimals. There is never an hour field: long
// videos roll over into minutes. NaN and infinite values render as empty text.
func FormatEditable(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ""
	}
	if seconds < 0 {
		seconds = 0
	}

	// Integer centiseconds make the >= 60s rounding carry fall out of the
	// division below instead of needing a special case.
	cents := int64(math.Round(seconds * 100))
	frac := cents % 100
	total := cents / 100
	m := total / 60
	s := total % 60

	if frac > 0 {
		return fmt.Sprintf("%02d:%02d.%02d", m, s, frac)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Parse converts timestamp text to seconds. Plain numbers are read as
// seconds. Colon-separated fields accumulate right to left (seconds, minutes,
// hours, ...) with any number of fields; only the rightmost field may carry a
// fraction, the rest must be bare digits. The result is clamped to zero and
// rounded to two decimals. ok is false for text that does not parse.
func Parse(text string) (seconds float64, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	if !strings.Contains(text, ":") {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return Round2(math.Max(0, v)), true
	}

	fields := strings.Split(text, ":")
	total := 0.0
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			return 0, false
		}

		var v float64
		if i == len(fields)-1 {
			parsed, err := strconv.ParseFloat(field, 64)
			if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
				return 0, false
			}
			v = parsed
		} else {
			if !digitsOnly(field) {
				return 0, false
			}
			parsed, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return 0, false
			}
			v = parsed
		}

		total += v * math.Pow(60, float64(len(fields)-1-i))
	}

	return Round2(math.Max(0, total)), true
}
