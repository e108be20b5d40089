package link

import (
	"net/url"
	"strings"
	"testing"

	"github.com/loopdeck/loopdeck-agent/internal/segment"
)

func TestBuild_NoSegments(t *testing.T) {
	got := Build("dQw4w9WgXcQ", nil)
	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuild_WithSegments(t *testing.T) {
	list := []segment.Segment{segment.New("intro", 0, 12.5)}
	got := Build("dQw4w9WgXcQ", list)

	if !strings.HasPrefix(got, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&segments=") {
		t.Fatalf("unexpected link shape: %q", got)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("built link does not parse: %v", err)
	}
	if u.Query().Get(ParamVideo) != "dQw4w9WgXcQ" {
		t.Errorf("v = %q", u.Query().Get(ParamVideo))
	}
	decoded := segment.Decode(u.Query().Get(ParamSegments))
	if len(decoded) != 1 || decoded[0].Label != "intro" || decoded[0].Start != 0 || decoded[0].End != 12.5 {
		t.Errorf("decoded segments = %v", decoded)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	list := []segment.Segment{
		segment.New("A", 2, 5),
		segment.New("B", 10, 20),
	}
	built := Build("dQw4w9WgXcQ", list)

	id, decoded, ok := Parse(built)
	if !ok {
		t.Fatal("Parse failed on built link")
	}
	if id != "dQw4w9WgXcQ" {
		t.Errorf("id = %q", id)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d segments, want 2", len(decoded))
	}
	for i := range list {
		if decoded[i].Label != list[i].Label || decoded[i].Start != list[i].Start || decoded[i].End != list[i].End {
			t.Errorf("segment %d = %+v, want %+v", i, decoded[i], list[i])
		}
	}
}

func TestParse_BareID(t *testing.T) {
	id, list, ok := Parse("dQw4w9WgXcQ")
	if !ok || id != "dQw4w9WgXcQ" {
		t.Fatalf("Parse bare id = (%q, %v)", id, ok)
	}
	if len(list) != 0 {
		t.Errorf("bare id produced segments: %v", list)
	}
}

func TestParse_InvalidInput(t *testing.T) {
	if _, _, ok := Parse("https://vimeo.com/123"); ok {
		t.Error("Parse accepted an unsupported host")
	}
	if _, _, ok := Parse("garbage"); ok {
		t.Error("Parse accepted garbage")
	}
}

func TestParse_BrokenSegmentsParamDegrades(t *testing.T) {
	raw := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&segments=%7Bnot-json"
	id, list, ok := Parse(raw)
	if !ok || id != "dQw4w9WgXcQ" {
		t.Fatalf("Parse = (%q, %v)", id, ok)
	}
	if len(list) != 0 {
		t.Errorf("broken segments parameter produced %v", list)
	}
}
