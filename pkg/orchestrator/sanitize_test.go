package orchestrator

import (
	"strings"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text untouched", "Verify your account now", "Verify your account now"},
		{"null bytes stripped", "hello\x00world", "helloworld"},
		{"control characters stripped", "a\x01b\x1fc\x7fd", "abcd"},
		{"newlines survive", "line one\nline two", "line one\nline two"},
		{"tabs survive", "col1\tcol2", "col1\tcol2"},
		{"surrounding whitespace trimmed", "  padded  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.in); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeTextTruncates(t *testing.T) {
	long := strings.Repeat("a", maxMessageLength+500)
	got := SanitizeText(long)
	if len(got) != maxMessageLength {
		t.Errorf("len = %d, want %d", len(got), maxMessageLength)
	}
}

func TestValidSessionID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"abc-123", true},
		{"session_42", true},
		{"UPPER-lower-0", true},
		{"", false},
		{"has space", false},
		{"semi;colon", false},
		{strings.Repeat("x", 101), false},
	}
	for _, tt := range tests {
		if got := ValidSessionID(tt.id); got != tt.want {
			t.Errorf("ValidSessionID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
