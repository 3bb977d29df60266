// Package orchestrator wires detection, extraction, session state,
// policy, and reply production into the per-message control loop. It is
// the only stateful composition point; everything below it is a pure
// function over its inputs.
package orchestrator

import (
	"context"
	"log"
	"sync"

	"github.com/devagarwal07/guvi-honeypot/pkg/config"
	"github.com/devagarwal07/guvi-honeypot/pkg/detect"
	"github.com/devagarwal07/guvi-honeypot/pkg/engage"
	"github.com/devagarwal07/guvi-honeypot/pkg/httputil"
	"github.com/devagarwal07/guvi-honeypot/pkg/intel"
	"github.com/devagarwal07/guvi-honeypot/pkg/report"
	"github.com/devagarwal07/guvi-honeypot/pkg/session"
)

// fallbackReply is returned when anything inside the loop fails. The
// conversation must never see an internal error.
const fallbackReply = "Sorry, I didn't quite understand. Could you explain again?"

// Metadata describes the channel an envelope arrived on.
type Metadata struct {
	Channel  string `json:"channel"`
	Language string `json:"language"`
	Locale   string `json:"locale"`
}

// Envelope is one inbound conversational event.
type Envelope struct {
	SessionID string            `json:"sessionId"`
	Message   session.Message   `json:"message"`
	History   []session.Message `json:"conversationHistory"`
	Metadata  Metadata          `json:"metadata"`
}

// Decision is what goes back to the transport. Status is always
// "success" from the caller's perspective.
type Decision struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

// ReplyProducer generates replies for both flagged and unflagged
// sessions. Implementations must respect the context deadline; errors
// make the orchestrator fall back to the template strategy.
type ReplyProducer interface {
	Produce(ctx context.Context, text string, history []session.Message) (string, error)
	ProduceNormal(ctx context.Context, text string) (string, error)
}

// ReportSink delivers a final engagement report.
type ReportSink interface {
	Deliver(ctx context.Context, payload report.Payload) error
}

// Orchestrator runs the per-message control loop.
type Orchestrator struct {
	cfg        *config.Config
	ledger     *session.Ledger
	classifier *detect.Classifier
	extractor  *intel.Extractor
	policy     *engage.Policy
	responder  *engage.Responder
	producer   ReplyProducer
	sink       ReportSink
	deliveries *httputil.Semaphore
	inflight   sync.WaitGroup
}

// New assembles an orchestrator with the default component set. The
// generator slot stays nil when no LLM provider is configured.
func New(cfg *config.Config) *Orchestrator {
	o := &Orchestrator{
		cfg:        cfg,
		ledger:     session.NewLedger(),
		classifier: detect.NewClassifier(cfg),
		extractor:  intel.NewExtractor(),
		policy:     engage.NewPolicy(cfg),
		responder:  engage.NewResponder(cfg),
		sink:       report.NewClient(cfg),
		deliveries: httputil.NewSemaphore(cfg.CallbackWorkers),
	}
	if gen := engage.NewGenerator(cfg); gen != nil {
		o.producer = gen
	}
	return o
}

// WithProducer overrides the reply producer.
func (o *Orchestrator) WithProducer(p ReplyProducer) *Orchestrator {
	o.producer = p
	return o
}

// WithSink overrides the report sink.
func (o *Orchestrator) WithSink(s ReportSink) *Orchestrator {
	o.sink = s
	return o
}

// Ledger exposes the session ledger for inspection endpoints.
func (o *Orchestrator) Ledger() *session.Ledger {
	return o.ledger
}

// HandleMessage runs one turn of the control loop. It always produces a
// Decision with a reply; internal faults resolve to a generic reply so
// the conversation never breaks character.
func (o *Orchestrator) HandleMessage(ctx context.Context, env Envelope) (decision Decision) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("orchestrator: recovered while handling session %s: %v", env.SessionID, r)
			decision = Decision{Status: "success", Reply: fallbackReply}
		}
	}()

	text := SanitizeText(env.Message.Text)
	log.Printf("orchestrator: processing message for session %s", env.SessionID)

	state := o.ledger.GetOrCreate(env.SessionID)
	total := o.ledger.IncrementMessageCount(env.SessionID)

	fullHistory := make([]session.Message, 0, len(env.History)+1)
	for _, msg := range env.History {
		msg.Text = SanitizeText(msg.Text)
		fullHistory = append(fullHistory, msg)
	}
	current := env.Message
	current.Text = text
	fullHistory = append(fullHistory, current)

	scam := state.ScamDetected
	if !scam {
		detected, signal := o.classifier.Evaluate(text, fullHistory)
		if detected {
			log.Printf("orchestrator: scam detected for session %s (signal %s)", env.SessionID, signal)
			o.ledger.MarkScamDetected(env.SessionID)
			scam = true
		}
	}

	var reply string
	if scam {
		reply = o.scamReply(ctx, text, env.History)

		extracted := o.extractor.Extract(text)
		o.ledger.MergeIntelligence(env.SessionID, extracted)

		snap, ok := o.ledger.Snapshot(env.SessionID)
		if ok && o.policy.ShouldEnd(total, snap.Intelligence, fullHistory) {
			// Claiming the latch and deciding to deliver are one atomic
			// step; concurrent turns cannot both win.
			if o.ledger.ClaimCallback(env.SessionID) {
				o.dispatchReport(snap, fullHistory)
			}
		}
	} else {
		reply = o.normalReply(ctx, text)
	}

	o.ledger.AppendTurn(env.SessionID, session.ConversationTurn{
		Incoming: current,
		Reply:    reply,
	})

	return Decision{Status: "success", Reply: reply}
}

// scamReply tries the generator first and falls back to the tiered
// template strategy on absence, failure, or timeout.
func (o *Orchestrator) scamReply(ctx context.Context, text string, history []session.Message) string {
	turn := len(history)/2 + 1
	if o.producer == nil {
		return o.responder.Reply(text, turn)
	}

	genCtx, cancel := context.WithTimeout(ctx, o.cfg.LLMTimeout)
	defer cancel()

	reply, err := o.producer.Produce(genCtx, text, history)
	if err != nil {
		log.Printf("orchestrator: reply generation failed, using template strategy: %v", err)
		return o.responder.Reply(text, turn)
	}
	return reply
}

// normalReply answers an unflagged session, generator-first with the
// same silent fallback contract as the scam path.
func (o *Orchestrator) normalReply(ctx context.Context, text string) string {
	if o.producer == nil {
		return o.responder.NormalReply(text)
	}

	genCtx, cancel := context.WithTimeout(ctx, o.cfg.LLMTimeout)
	defer cancel()

	reply, err := o.producer.ProduceNormal(genCtx, text)
	if err != nil {
		log.Printf("orchestrator: normal reply generation failed, using template: %v", err)
		return o.responder.NormalReply(text)
	}
	return reply
}

// dispatchReport sends the final result off the request path. Delivery
// is bounded by the callback timeout and the worker semaphore; a full
// semaphore or a failed delivery is logged and dropped, never retried.
func (o *Orchestrator) dispatchReport(snap session.State, history []session.Message) {
	if !o.deliveries.TryAcquire() {
		log.Printf("orchestrator: delivery slots exhausted, dropping report for session %s", snap.SessionID)
		return
	}
	payload := report.BuildPayload(snap, history)
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		defer o.deliveries.Release()
		ctx, cancel := context.WithTimeout(context.Background(), o.cfg.CallbackTimeout)
		defer cancel()
		if err := o.sink.Deliver(ctx, payload); err != nil {
			log.Printf("orchestrator: %v", err)
		}
	}()
}

// Flush waits for in-flight report deliveries, for graceful shutdown.
func (o *Orchestrator) Flush() {
	o.inflight.Wait()
}
