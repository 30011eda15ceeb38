package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean text unchanged", "Night Drive", "Night Drive"},
		{"tab kept", "a\tb", "a\tb"},
		{"control chars removed", "bad\x1b[2Jtitle\n", "bad[2Jtitle"},
		{"invalid utf8 dropped", "caf\xe9", "caf"},
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"wide chars kept", "夜のドライブ", "夜のドライブ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateEllipsis(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{
			name:     "no truncation needed",
			input:    "hello",
			maxWidth: 10,
			want:     "hello",
		},
		{
			name:     "truncation with single ellipsis",
			input:    "hello world",
			maxWidth: 8,
			want:     "hello w…",
		},
		{
			name:     "wide characters",
			input:    "夜のドライブ",
			maxWidth: 7,
			want:     "夜のド…",
		},
		{
			name:     "zero width",
			input:    "hello",
			maxWidth: 0,
			want:     "",
		},
		{
			name:     "empty string",
			input:    "",
			maxWidth: 10,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateEllipsis(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestRow(t *testing.T) {
	assert.Equal(t, "left    right", Row("left", "right", 13))
	assert.Equal(t, "left right", Row("left", "right", 4), "at least one space")
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		maxLines int
		want     []string
	}{
		{
			name:     "fits on one line",
			input:    "a slow one",
			width:    20,
			maxLines: 3,
			want:     []string{"a slow one"},
		},
		{
			name:     "wraps on words",
			input:    "recorded live at the harbour",
			width:    12,
			maxLines: 5,
			want:     []string{"recorded", "live at the", "harbour"},
		},
		{
			name:     "line limit adds ellipsis",
			input:    "one two three four five six",
			width:    9,
			maxLines: 2,
			want:     []string{"one two", "three…"},
		},
		{
			name:     "long word cut",
			input:    "supercalifragilistic",
			width:    6,
			maxLines: 2,
			want:     []string{"super…"},
		},
		{
			name:     "empty",
			input:    "   ",
			width:    10,
			maxLines: 2,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.input, tt.width, tt.maxLines))
		})
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{30 * time.Second, "0:30"},
		{3*time.Minute + 5*time.Second + 900*time.Millisecond, "3:05"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		if got := Clock(tt.d); got != tt.want {
			t.Errorf("Clock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
