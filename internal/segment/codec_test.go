package segment

import (
	"strings"
	"testing"
)

func TestDecode_Garbage(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"not json", "{{{"},
		{"json object", `{"label":"A","start":1,"end":2}`},
		{"json number", "42"},
		{"json string", `"segments"`},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.text); len(got) != 0 {
				t.Errorf("Decode(%q) = %v, want empty", tt.text, got)
			}
		})
	}
}

func TestDecode_Sanitization(t *testing.T) {
	text := `[
		{"label":"B","start":30,"end":40},
		{"label":"A","start":5,"end":2},
		"not an object",
		{"label":"bad bounds","start":"x","end":10},
		{"start":10,"end":12.346},
		{"label":"   ","start":-3,"end":1}
	]`

	got := Decode(text)
	if len(got) != 4 {
		t.Fatalf("decoded %d segments, want 4", len(got))
	}

	// Sorted ascending by start.
	want := []struct {
		label string
		start float64
		end   float64
	}{
		{"Loop 6", 0, 1},     // blank label defaults by original index, -3 clamped
		{"A", 2, 5},          // reversed bounds swapped
		{"Loop 5", 10, 12.35}, // missing label defaults, end rounded
		{"B", 30, 40},
	}

	for i, w := range want {
		s := got[i]
		if s.Label != w.label || s.Start != w.start || s.End != w.end {
			t.Errorf("segment %d = {%q %v %v}, want {%q %v %v}",
				i, s.Label, s.Start, s.End, w.label, w.start, w.end)
		}
		if s.ID == "" {
			t.Errorf("segment %d has empty id", i)
		}
	}
}

func TestDecode_NeverTrustsIncomingID(t *testing.T) {
	text := `[{"id":"evil","label":"A","start":1,"end":2}]`
	got := Decode(text)
	if len(got) != 1 {
		t.Fatalf("decoded %d segments, want 1", len(got))
	}
	if got[0].ID == "evil" || got[0].ID == "" {
		t.Errorf("id = %q, want a freshly generated one", got[0].ID)
	}
}

func TestDecode_NumericStringBounds(t *testing.T) {
	got := Decode(`[{"label":"A","start":"1.5","end":"3"}]`)
	if len(got) != 1 {
		t.Fatalf("decoded %d segments, want 1", len(got))
	}
	if got[0].Start != 1.5 || got[0].End != 3 {
		t.Errorf("bounds = (%v, %v), want (1.5, 3)", got[0].Start, got[0].End)
	}
}

func TestEncode_Empty(t *testing.T) {
	if got := Encode(nil); got != "" {
		t.Errorf("Encode(nil) = %q, want empty", got)
	}
	if got := Encode([]Segment{}); got != "" {
		t.Errorf("Encode(empty) = %q, want empty", got)
	}
}

func TestEncode_DropsID(t *testing.T) {
	text := Encode([]Segment{New("A", 1, 2)})
	if text == "" {
		t.Fatal("Encode returned empty text")
	}
	if strings.Contains(text, `"id"`) {
		t.Errorf("encoded text carries an id: %s", text)
	}
}

func TestRoundTrip(t *testing.T) {
	in := []Segment{
		New("intro riff", 0, 12.5),
		New("verse", 12.5, 40),
		New("solo", 83.25, 99.99),
	}

	out := Decode(Encode(in))
	if len(out) != len(in) {
		t.Fatalf("round trip produced %d segments, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Label != in[i].Label || out[i].Start != in[i].Start || out[i].End != in[i].End {
			t.Errorf("segment %d = {%q %v %v}, want {%q %v %v}",
				i, out[i].Label, out[i].Start, out[i].End,
				in[i].Label, in[i].Start, in[i].End)
		}
		if out[i].ID == in[i].ID {
			t.Errorf("segment %d kept its id through the round trip", i)
		}
	}
}

func TestNew_ReordersBounds(t *testing.T) {
	s := New("A", 5, 2)
	if s.Start != 2 || s.End != 5 {
		t.Errorf("bounds = (%v, %v), want (2, 5)", s.Start, s.End)
	}
}

func TestSortByStart_StableOnTies(t *testing.T) {
	a := New("first", 3, 4)
	b := New("second", 3, 5)
	list := []Segment{a, b}
	SortByStart(list)
	if list[0].Label != "first" || list[1].Label != "second" {
		t.Errorf("tie order changed: %q, %q", list[0].Label, list[1].Label)
	}
}
