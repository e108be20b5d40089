package segment

import (
	"encoding/json"
	"strings"
)

// encodedSegment is the wire shape carried in the shareable link. IDs are
// deliberately absent: they are regenerated on every decode.
type encodedSegment struct {
	Label string  `json:"label"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Decode parses the segments query-parameter value into a sorted segment
// list. Decode never fails: garbage input, a non-list payload, and malformed
// elements all degrade to fewer (or zero) segments. Surviving elements get
// fresh IDs, sanitized bounds, defaulted labels, and ascending start order.
func Decode(text string) []Segment {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var raw []any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil
	}

	var list []Segment
	for i, el := range raw {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}

		start, ok := coerceSeconds(obj["start"])
		if !ok {
			continue
		}
		end, ok := coerceSeconds(obj["end"])
		if !ok {
			continue
		}

		label := DefaultLabel(i + 1)
		if s, ok := obj["label"].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				label = trimmed
			}
		}

		list = append(list, New(label, start, end))
	}

	SortByStart(list)
	return list
}

// Encode serializes the list for embedding in a URL query parameter. An empty
// list encodes to empty text so no parameter is emitted for it.
func Encode(list []Segment) string {
	if len(list) == 0 {
		return ""
	}

	out := make([]encodedSegment, len(list))
	for i, s := range list {
		out[i] = encodedSegment{
			Label: s.Label,
			Start: sanitizeSeconds(s.Start),
			End:   sanitizeSeconds(s.End),
		}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return ""
	}
	return string(b)
}
