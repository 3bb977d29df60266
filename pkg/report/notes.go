package report

import (
	"fmt"
	"strings"

	"github.com/devagarwal07/guvi-honeypot/pkg/intel"
	"github.com/devagarwal07/guvi-honeypot/pkg/session"
)

var urgencyTerms = []string{"urgent", "immediate", "now", "quickly", "asap"}

// BuildAgentNotes summarizes the engagement for the final report:
// the apparent scam type, what was extracted, and how the counterparty
// behaved over the conversation.
func BuildAgentNotes(history []session.Message, bundle intel.Bundle, totalMessages int) string {
	var parts []string

	if keywordOverlap(bundle.SuspiciousKeywords, "kyc", "verify", "blocked", "suspended") {
		parts = append(parts, "Banking/KYC scam attempt.")
	}
	if keywordOverlap(bundle.SuspiciousKeywords, "prize", "won", "lottery") {
		parts = append(parts, "Prize/lottery scam.")
	}
	if keywordOverlap(bundle.SuspiciousKeywords, "otp", "password", "pin") {
		parts = append(parts, "Credential phishing attempt.")
	}

	var extracted []string
	if n := len(bundle.BankAccounts); n > 0 {
		extracted = append(extracted, fmt.Sprintf("%d bank account(s)", n))
	}
	if n := len(bundle.UPIIDs); n > 0 {
		extracted = append(extracted, fmt.Sprintf("%d UPI ID(s)", n))
	}
	if n := len(bundle.PhishingLinks); n > 0 {
		extracted = append(extracted, fmt.Sprintf("%d phishing link(s)", n))
	}
	if n := len(bundle.PhoneNumbers); n > 0 {
		extracted = append(extracted, fmt.Sprintf("%d phone number(s)", n))
	}
	if len(extracted) > 0 {
		parts = append(parts, "Extracted: "+strings.Join(extracted, ", ")+".")
	}

	parts = append(parts, fmt.Sprintf("Engaged over %d messages.", totalMessages))

	var incoming []session.Message
	for _, msg := range history {
		if msg.FromCounterparty() {
			incoming = append(incoming, msg)
		}
	}
	if len(incoming) > 0 {
		total := 0
		for _, msg := range incoming {
			total += len(msg.Text)
		}
		if float64(total)/float64(len(incoming)) > 100 {
			parts = append(parts, "Scammer provided detailed instructions.")
		}

		urgent := 0
		for _, msg := range incoming {
			lower := strings.ToLower(msg.Text)
			for _, term := range urgencyTerms {
				if strings.Contains(lower, term) {
					urgent++
					break
				}
			}
		}
		if urgent >= 2 {
			parts = append(parts, "High urgency tactics used.")
		}
	}

	return strings.Join(parts, " ")
}

func keywordOverlap(set intel.StringSet, terms ...string) bool {
	for _, term := range terms {
		if set.Has(term) {
			return true
		}
	}
	return false
}
