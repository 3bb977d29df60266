package patterns

import (
	"strings"

	"golang.org/x/text/cases"
)

// suspiciousVocabulary is the fixed keyword set tracked per session.
// Matching is containment-based after Unicode case folding, so entries
// must be lowercase. Multi-word entries match as literal substrings.
var suspiciousVocabulary = []string{
	"kyc", "verify", "update", "blocked", "suspended",
	"urgent", "immediate", "action required", "expire",
	"confirm", "validate", "authenticate", "otp",
	"password", "pin", "cvv", "card number",
	"prize", "won", "lottery", "claim", "reward",
	"refund", "cashback", "offer", "limited time",
	"click here", "download", "install", "link",
	"customer care", "helpline", "support",
	"legal action", "police", "penalty", "fine",
	"upi", "ifsc", "transfer",
}

// foldCaser performs Unicode case folding. Inbound messages arrive in
// arbitrary languages and locales per the envelope metadata, so folding is
// preferred over ASCII lowercasing for containment checks.
var foldCaser = cases.Fold()

// Fold returns text normalized for case-insensitive containment matching.
func Fold(text string) string {
	return foldCaser.String(text)
}

// Vocabulary returns the suspicious keyword set. The returned slice is
// shared; callers must not mutate it.
func Vocabulary() []string {
	return suspiciousVocabulary
}

// MatchKeywords returns every vocabulary entry contained in text, each at
// most once, in vocabulary order. Text is case-folded before matching.
func MatchKeywords(text string) []string {
	folded := Fold(text)
	var matched []string
	for _, kw := range suspiciousVocabulary {
		if strings.Contains(folded, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
