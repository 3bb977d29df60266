package engage

import (
	"log"

	"github.com/devagarwal07/guvi-honeypot/pkg/config"
	"github.com/devagarwal07/guvi-honeypot/pkg/intel"
	"github.com/devagarwal07/guvi-honeypot/pkg/session"
)

// Policy decides when an engagement has yielded enough and should end.
// ShouldEnd is pure over its inputs; all state lives in the ledger.
type Policy struct {
	cfg *config.Config
}

func NewPolicy(cfg *config.Config) *Policy {
	return &Policy{cfg: cfg}
}

// ShouldEnd evaluates the termination rules in order; the first rule
// that matches wins.
func (p *Policy) ShouldEnd(totalMessages int, bundle intel.Bundle, history []session.Message) bool {
	// Rule 1: never end too early, regardless of yield.
	if totalMessages < p.cfg.MinMessagesBeforeEnd {
		return false
	}

	// Rule 2: hard cap.
	if totalMessages >= p.cfg.MaxMessagesPerSession {
		log.Printf("engage: max messages reached: %d", totalMessages)
		return true
	}

	// Rule 3: enough intelligence and a reasonable conversation length.
	intelCount := bundle.Count()
	if intelCount >= p.cfg.MinIntelligenceItems && totalMessages >= p.cfg.IntelTurnFloor {
		log.Printf("engage: sufficient intelligence gathered: %d items", intelCount)
		return true
	}

	// Rule 4: long conversation with some yield, but the counterparty
	// has gone quiet or evasive.
	if totalMessages >= p.cfg.StallTurnFloor && intelCount >= 1 && p.isStalling(history) {
		log.Print("engage: conversation appears to be stalling")
		return true
	}

	return false
}

// isStalling inspects the most recent window of history for short
// counterparty messages.
func (p *Policy) isStalling(history []session.Message) bool {
	window := history
	if len(window) > p.cfg.StallWindow {
		window = window[len(window)-p.cfg.StallWindow:]
	}

	var recent []session.Message
	for _, msg := range window {
		if msg.FromCounterparty() {
			recent = append(recent, msg)
		}
	}
	if len(recent) < p.cfg.StallMinMessages {
		return false
	}

	total := 0
	for _, msg := range recent {
		total += len(msg.Text)
	}
	avg := float64(total) / float64(len(recent))
	return avg < p.cfg.StallAvgLength
}
