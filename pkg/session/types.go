// Package session owns per-conversation honeypot state. The Ledger is the
// single owner of SessionState: all mutation goes through its atomic
// operations, and the detection and callback flags are one-way latches.
package session

import (
	"time"

	"github.com/devagarwal07/guvi-honeypot/pkg/intel"
)

// Wire values for Message.Sender. The counterparty is the suspected
// scammer being engaged; the agent is the automated persona replying.
const (
	SenderCounterparty = "scammer"
	SenderAgent        = "user"
)

// Message is one inbound or historical message. Immutable once recorded.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // epoch millis
}

// FromCounterparty reports whether the message was authored by the
// suspected scammer rather than the agent.
func (m Message) FromCounterparty() bool {
	return m.Sender == SenderCounterparty
}

// ConversationTurn records one inbound message together with the reply the
// agent produced for it. Turns are append-only.
type ConversationTurn struct {
	ID         string    `json:"id"`
	Incoming   Message   `json:"incoming"`
	Reply      string    `json:"reply"`
	RecordedAt time.Time `json:"recordedAt"`
}

// State is the per-session honeypot state. ScamDetected and CallbackSent
// only ever transition false to true; Intelligence only grows under union;
// TotalMessages counts every inbound message regardless of scam status.
type State struct {
	SessionID     string
	ScamDetected  bool
	TotalMessages int
	Intelligence  intel.Bundle
	Turns         []ConversationTurn
	CallbackSent  bool
	CreatedAt     time.Time
	LastUpdated   time.Time
}

// clone returns a defensive copy safe to hand outside the ledger lock.
func (s *State) clone() State {
	out := *s
	out.Intelligence = s.Intelligence.Clone()
	out.Turns = make([]ConversationTurn, len(s.Turns))
	copy(out.Turns, s.Turns)
	return out
}
