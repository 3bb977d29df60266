package orchestrator

import (
	"regexp"
	"strings"
)

// maxMessageLength caps inbound text before any analysis runs.
const maxMessageLength = 5000

var (
	controlChars   = regexp.MustCompile(`[\x00-\x08\x0B-\x0C\x0E-\x1F\x7F]`)
	sessionIDShape = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// SanitizeText truncates to the length cap and strips control
// characters. Tabs and newlines survive; they are meaningful in
// multi-line scam scripts.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}
	if len(text) > maxMessageLength {
		text = text[:maxMessageLength]
	}
	text = controlChars.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ValidSessionID accepts alphanumeric ids with hyphens and
// underscores, up to 100 characters.
func ValidSessionID(id string) bool {
	return id != "" && len(id) <= 100 && sessionIDShape.MatchString(id)
}
