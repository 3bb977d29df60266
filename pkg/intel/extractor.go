package intel

import (
	"regexp"
	"strings"

	"github.com/devagarwal07/guvi-honeypot/pkg/patterns"
)

// phoneSeparators strips spacing and punctuation from phone candidates
// before canonicalization.
var phoneSeparators = regexp.MustCompile(`[-.\s]`)

// Extractor pulls actionable indicators out of raw message text using the
// shared signature registry. Pure and deterministic: the same text always
// yields the same bundle, and extracting twice then merging is equivalent
// to extracting once.
type Extractor struct {
	registry *patterns.Registry
}

// NewExtractor returns an extractor backed by the global registry.
func NewExtractor() *Extractor {
	return &Extractor{registry: patterns.Get()}
}

// Extract runs every extraction category against the message text and
// returns a normalized, de-duplicated bundle. Structural matches run
// against the raw text (case preserved); keyword matches are case-folded.
func (e *Extractor) Extract(text string) Bundle {
	b := NewBundle()
	if strings.TrimSpace(text) == "" {
		return b
	}

	for _, account := range e.captureAll(text, patterns.CategoryBankAccount) {
		// Formats vary by institution; accept 9-18 digit runs as-is
		if len(account) >= 9 && len(account) <= 18 {
			b.BankAccounts.Add(account)
		}
	}

	for _, upi := range e.captureAll(text, patterns.CategoryUPI) {
		upi = strings.ToLower(strings.TrimSpace(upi))
		if len(upi) > 5 && strings.Contains(upi, "@") {
			b.UPIIDs.Add(upi)
		}
	}

	for _, phone := range e.captureAll(text, patterns.CategoryPhone) {
		if normalized := normalizePhone(phone); normalized != "" {
			b.PhoneNumbers.Add(normalized)
		}
	}

	for _, link := range e.captureAll(text, patterns.CategoryURL) {
		b.PhishingLinks.Add(normalizeLink(link))
	}

	for _, kw := range patterns.MatchKeywords(text) {
		b.SuspiciousKeywords.Add(kw)
	}

	return b
}

// captureAll returns all matches for the signatures in a category. A
// signature with a capture group yields the group (the labeled forms);
// otherwise the whole match is taken.
func (e *Extractor) captureAll(text string, cat patterns.Category) []string {
	var out []string
	for _, p := range e.registry.GetByCategory(cat) {
		for _, m := range p.Regex.FindAllStringSubmatch(text, -1) {
			value := m[0]
			if len(m) > 1 && m[1] != "" {
				value = m[1]
			}
			out = append(out, value)
		}
	}
	return out
}

// normalizePhone canonicalizes a phone candidate to +91XXXXXXXXXX.
// Bare 10-digit numbers starting 6-9 get +91 prefixed; 11 digits with a
// leading 0 drop the 0; any other 10-plus-digit run keeps its last 10
// digits. Already +-prefixed values pass through unchanged; shorter
// runs are rejected.
func normalizePhone(raw string) string {
	phone := strings.TrimSpace(phoneSeparators.ReplaceAllString(raw, ""))

	switch {
	case len(phone) == 10 && phone[0] >= '6' && phone[0] <= '9':
		return "+91" + phone
	case len(phone) == 11 && strings.HasPrefix(phone, "0"):
		return "+91" + phone[1:]
	case strings.HasPrefix(phone, "+") && len(phone) >= 10:
		return phone
	case len(phone) >= 10:
		return "+91" + phone[len(phone)-10:]
	}
	return ""
}

// normalizeLink lowercases and ensures a scheme prefix. Schemeless hosts
// get http:// prepended as a storage canonicalization for downstream
// consumers, not a claim about the actual scheme.
func normalizeLink(raw string) string {
	link := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = "http://" + link
	}
	return link
}
