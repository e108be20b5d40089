// Package video resolves user-pasted text into canonical YouTube video IDs
// and fetches metadata for them.
package video

import (
	"net/url"
	"regexp"
	"strings"
)

// idPattern matches a canonical 11-character YouTube video ID.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// IsID reports whether s is already a canonical video ID.
func IsID(s string) bool {
	return idPattern.MatchString(s)
}

// ExtractID resolves raw input (a bare ID or one of the supported URL shapes)
// into a canonical video ID. Supported hosts: youtu.be (first path segment),
// youtube.com and m.youtube.com (v query parameter, then /embed/<id>),
// youtube-nocookie.com (/embed/<id> only). Candidates pulled out of a URL are
// re-validated against the ID pattern so partial path segments never pass.
func ExtractID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if IsID(raw) {
		return raw, true
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = firstPathSegment(u.Path)
	case "youtube.com", "m.youtube.com":
		candidate = u.Query().Get("v")
		if candidate == "" {
			candidate = embedPathSegment(u.Path)
		}
	case "youtube-nocookie.com":
		candidate = embedPathSegment(u.Path)
	default:
		return "", false
	}

	if !IsID(candidate) {
		return "", false
	}
	return candidate, true
}

func firstPathSegment(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}

// embedPathSegment returns the path segment following a literal "embed"
// segment, or empty when there is none.
func embedPathSegment(path string) string {
	segs := strings.Split(path, "/")
	for i, seg := range segs {
		if seg == "embed" && i+1 < len(segs) {
			return segs[i+1]
		}
	}
	return ""
}
