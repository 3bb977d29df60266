package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devagarwal07/guvi-honeypot/pkg/intel"
)

// Ledger is a thread-safe in-memory session store. Every operation is a
// single atomic transition on exactly one session, serialized under the
// store lock, so overlapping requests for the same session id cannot
// interleave partial updates. Sessions are created lazily and live for the
// process lifetime; bounded memory is out of scope here.
type Ledger struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewLedger creates an empty session ledger.
func NewLedger() *Ledger {
	return &Ledger{
		sessions: make(map[string]*State),
	}
}

// getOrCreateLocked returns the live state for id, creating it on first
// reference. Callers must hold l.mu.
func (l *Ledger) getOrCreateLocked(id string) *State {
	if s, ok := l.sessions[id]; ok {
		return s
	}
	log.Printf("session: creating new session %s", id)
	now := time.Now().UTC()
	s := &State{
		SessionID:    id,
		Intelligence: intel.NewBundle(),
		Turns:        make([]ConversationTurn, 0, 8),
		CreatedAt:    now,
		LastUpdated:  now,
	}
	l.sessions[id] = s
	return s
}

// GetOrCreate returns a snapshot of the session, creating it on first
// reference. The id is treated as an opaque string; malformed ids are
// simply new sessions. Never fails.
func (l *Ledger) GetOrCreate(id string) State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.getOrCreateLocked(id).clone()
}

// Snapshot returns a copy of the session state, if it exists.
func (l *Ledger) Snapshot(id string) (State, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sessions[id]
	if !ok {
		return State{}, false
	}
	return s.clone(), true
}

// IncrementMessageCount bumps the inbound message counter and returns the
// new total. The counter increments once per inbound message regardless of
// scam status.
func (l *Ledger) IncrementMessageCount(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.getOrCreateLocked(id)
	s.TotalMessages++
	s.LastUpdated = time.Now().UTC()
	return s.TotalMessages
}

// MarkScamDetected latches the detection flag. The latch never reverts.
func (l *Ledger) MarkScamDetected(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.getOrCreateLocked(id)
	if !s.ScamDetected {
		s.ScamDetected = true
		log.Printf("session: %s marked as scam", id)
	}
	s.LastUpdated = time.Now().UTC()
}

// MergeIntelligence unions freshly extracted indicators into the session
// bundle. The accumulated bundle never shrinks.
func (l *Ledger) MergeIntelligence(id string, b intel.Bundle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.getOrCreateLocked(id)
	s.Intelligence = s.Intelligence.Merge(b)
	s.LastUpdated = time.Now().UTC()
}

// AppendTurn records one conversation turn. A missing turn id is stamped
// with a fresh UUID; a zero RecordedAt gets the current time.
func (l *Ledger) AppendTurn(id string, turn ConversationTurn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.getOrCreateLocked(id)
	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.RecordedAt.IsZero() {
		turn.RecordedAt = time.Now().UTC()
	}
	s.Turns = append(s.Turns, turn)
	s.LastUpdated = turn.RecordedAt
}

// ClaimCallback atomically claims the right to deliver the final report.
// It returns true exactly once per session: the first caller wins and the
// latch never resets, so concurrent terminating turns cannot both deliver.
func (l *Ledger) ClaimCallback(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.getOrCreateLocked(id)
	if s.CallbackSent {
		return false
	}
	s.CallbackSent = true
	s.LastUpdated = time.Now().UTC()
	log.Printf("session: callback claimed for %s", id)
	return true
}

// Count returns the number of live sessions.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sessions)
}
