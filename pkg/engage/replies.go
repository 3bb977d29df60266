// Package engage decides how each conversational turn is answered and
// when an engagement has run its course. Replies come from a tiered
// template strategy that an optional LLM generator can sit in front of.
package engage

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/devagarwal07/guvi-honeypot/pkg/config"
	"github.com/devagarwal07/guvi-honeypot/pkg/patterns"
)

// Responder produces deterministic-pool replies without any external
// call. It is always available and is the fallback for the generator.
type Responder struct {
	registry *patterns.Registry
	tpl      *templateSet

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResponder builds a Responder from configuration. A non-zero
// ReplySeed makes template selection reproducible for tests.
func NewResponder(cfg *config.Config) *Responder {
	seed := cfg.ReplySeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Responder{
		registry: patterns.Get(),
		tpl:      loadTemplates(cfg.ReplyTemplates),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Reply selects a response for a scam-flagged turn. Turn 1 branches on
// the phrase category of the opening message; later turns probe for
// indicator-bearing content and re-solicit it, falling back to a pool
// keyed on how deep into the conversation we are.
func (r *Responder) Reply(text string, turn int) string {
	if turn <= 1 {
		return r.pick(r.tpl.Openings[r.openingKey(text)])
	}
	folded := patterns.Fold(text)
	for _, probe := range r.tpl.Probes {
		for _, trigger := range probe.Triggers {
			if strings.Contains(folded, trigger) {
				return r.pick(probe.Replies)
			}
		}
	}
	return r.pick(r.tpl.Stages[stageKey(turn)])
}

// NormalReply answers a message in a session never flagged as a scam.
func (r *Responder) NormalReply(text string) string {
	return r.pick(r.tpl.Normal)
}

func (r *Responder) openingKey(text string) string {
	switch {
	case r.registry.MatchAny(text, patterns.CategoryAccountThreat) != nil:
		return openingAccountBlock
	case r.registry.MatchAny(text, patterns.CategoryKYCVerification) != nil:
		return openingVerification
	case r.registry.MatchAny(text, patterns.CategoryPrizeLottery) != nil:
		return openingPrize
	default:
		return openingDefault
	}
}

func stageKey(turn int) string {
	switch {
	case turn <= 3:
		return stageEarly
	case turn <= 7:
		return stageMid
	default:
		return stageLate
	}
}

func (r *Responder) pick(pool []string) string {
	if len(pool) == 0 {
		return "I'm not sure I understand. Can you explain more clearly?"
	}
	r.mu.Lock()
	idx := r.rng.Intn(len(pool))
	r.mu.Unlock()
	return pool[idx]
}
