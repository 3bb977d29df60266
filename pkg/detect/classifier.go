// Package detect implements rule-based scam intent classification. The
// classifier is deliberately high-recall: one strong phrase, a couple of
// risk terms across history, a URL-shaped token, or a payment-detail
// mention is enough to flag the exchange. False engagements cost little;
// missed engagements cost intelligence.
package detect

import (
	"log"
	"strings"

	"github.com/devagarwal07/guvi-honeypot/pkg/config"
	"github.com/devagarwal07/guvi-honeypot/pkg/patterns"
	"github.com/devagarwal07/guvi-honeypot/pkg/session"
)

// Signal names the classifier stage that tripped, for debug logging only.
// The verdict is a plain OR: which signal fired does not change it.
const (
	SignalIntentMatch = "intent_match"
	SignalEscalation  = "escalation"
	SignalLink        = "suspicious_link"
	SignalPayment     = "payment_details"
	SignalNone        = ""
)

// paymentTerms trip the payment/account heuristic on simple containment.
var paymentTerms = []string{"upi", "account number", "ifsc", "transfer"}

// Classifier decides whether a message exchange is a scam attempt.
// Stateless, deterministic, no I/O; the session ledger owns the latch that
// stops callers re-invoking it after a positive verdict.
type Classifier struct {
	registry            *patterns.Registry
	escalationThreshold int
}

// NewClassifier builds a classifier using the global signature registry
// and the configured escalation threshold.
func NewClassifier(cfg *config.Config) *Classifier {
	return &Classifier{
		registry:            patterns.Get(),
		escalationThreshold: cfg.EscalationThreshold,
	}
}

// DetectScam reports whether the current message, in the context of the
// conversation history, indicates scam intent.
func (c *Classifier) DetectScam(text string, history []session.Message) bool {
	verdict, _ := c.Evaluate(text, history)
	return verdict
}

// Evaluate returns the verdict together with the name of the first signal
// that fired. Signals are evaluated in priority order but combine as a
// plain OR; ordering only affects which signal gets logged.
func (c *Classifier) Evaluate(text string, history []session.Message) (bool, string) {
	// Signal 1: direct intent signature match. One hit is sufficient.
	if p := c.registry.MatchAny(text, patterns.IntentCategories()...); p != nil {
		log.Printf("detect: scam signal %s via signature %s", SignalIntentMatch, p.Name)
		return true, SignalIntentMatch
	}

	// Signal 2: escalation built up across the counterparty's history.
	// Catches scams that ramp pressure gradually instead of leading with
	// one strong phrase.
	if len(history) >= 1 {
		if score := c.EscalationScore(history); score >= c.escalationThreshold {
			log.Printf("detect: scam signal %s, score %d", SignalEscalation, score)
			return true, SignalEscalation
		}
	}

	// Signal 3: URL-shaped token in the current message.
	if p := c.registry.MatchAny(text, patterns.CategoryLink); p != nil {
		log.Printf("detect: scam signal %s via signature %s", SignalLink, p.Name)
		return true, SignalLink
	}

	// Signal 4: payment or account details solicited.
	folded := patterns.Fold(text)
	for _, term := range paymentTerms {
		if strings.Contains(folded, term) {
			log.Printf("detect: scam signal %s via term %q", SignalPayment, term)
			return true, SignalPayment
		}
	}
	if c.registry.MatchAny(text, patterns.CategoryIFSC) != nil {
		log.Printf("detect: scam signal %s via ifsc code", SignalPayment)
		return true, SignalPayment
	}

	return false, SignalNone
}

// EscalationScore sums escalation signature hits over every
// counterparty-authored message in history. The agent's own replies are
// excluded so the honeypot cannot escalate itself.
func (c *Classifier) EscalationScore(history []session.Message) int {
	score := 0
	for _, msg := range history {
		if !msg.FromCounterparty() {
			continue
		}
		score += c.registry.CountMatches(msg.Text, patterns.CategoryEscalation)
	}
	return score
}
