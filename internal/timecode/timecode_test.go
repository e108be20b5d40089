package timecode

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00"},
		{"sub-minute", 9, "00:09"},
		{"one minute five", 65, "01:05"},
		{"fraction floored", 65.9, "01:05"},
		{"hour boundary", 3600, "01:00:00"},
		{"hours minutes seconds", 3725, "01:02:05"},
		{"negative clamped", -12, "00:00"},
		{"nan", math.NaN(), "00:00"},
		{"positive inf", math.Inf(1), "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.seconds); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatEditable(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00"},
		{"whole seconds", 62, "01:02"},
		{"with fraction", 62.5, "01:02.50"},
		{"two decimals", 62.53, "01:02.53"},
		{"third decimal rounds", 62.536, "01:02.54"},
		{"rounds up into next second", 59.999, "01:00"},
		{"rounds across minute", 119.996, "02:00"},
		{"long video stays minutes", 3725, "62:05"},
		{"negative clamped", -3, "00:00"},
		{"nan", math.NaN(), ""},
		{"inf", math.Inf(-1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatEditable(tt.seconds); got != tt.want {
				t.Errorf("FormatEditable(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"plain integer", "90", 90, true},
		{"plain decimal", "12.3456", 12.35, true},
		{"plain negative clamped", "-5", 0, true},
		{"minutes seconds", "00:10", 10, true},
		{"minutes seconds padded", "01:05", 65, true},
		{"hours minutes seconds", "1:02:03", 3723, true},
		{"four fields", "1:00:00:00", 216000, true},
		{"fractional seconds", "01:02.5", 62.5, true},
		{"empty field", "1::05", 0, false},
		{"trailing colon", "1:05:", 0, false},
		{"leading colon", ":30", 0, false},
		{"fraction in minutes", "1.5:00", 0, false},
		{"sign in minutes", "-1:30", 0, false},
		{"letters", "abc", 0, false},
		{"letters in field", "1:ab", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseFormatEditableRoundTrip(t *testing.T) {
	for _, s := range []float64{0, 0.2, 1.25, 59.99, 60, 61.5, 119.01, 3725.75} {
		got, ok := Parse(FormatEditable(s))
		if !ok {
			t.Fatalf("Parse(FormatEditable(%v)) failed", s)
		}
		if got != Round2(s) {
			t.Errorf("round trip of %v = %v, want %v", s, got, Round2(s))
		}
	}
}
