// Package report builds and delivers the final engagement result to the
// evaluation callback endpoint. Delivery is best effort: the latch that
// authorized it has already been claimed, so failures are logged, never
// retried, and never surfaced to the conversation.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/devagarwal07/guvi-honeypot/pkg/config"
	"github.com/devagarwal07/guvi-honeypot/pkg/httputil"
	"github.com/devagarwal07/guvi-honeypot/pkg/intel"
	"github.com/devagarwal07/guvi-honeypot/pkg/session"
)

// Payload is the wire shape of the final result.
type Payload struct {
	SessionID              string       `json:"sessionId"`
	ScamDetected           bool         `json:"scamDetected"`
	TotalMessagesExchanged int          `json:"totalMessagesExchanged"`
	ExtractedIntelligence  intel.Bundle `json:"extractedIntelligence"`
	AgentNotes             string       `json:"agentNotes"`
}

// Client posts final results to the configured callback endpoint.
type Client struct {
	callbackURL string
	httpClient  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		callbackURL: cfg.CallbackURL,
		httpClient:  httputil.ReportClient(),
	}
}

// BuildPayload assembles the final result from a session snapshot.
func BuildPayload(state session.State, history []session.Message) Payload {
	return Payload{
		SessionID:              state.SessionID,
		ScamDetected:           state.ScamDetected,
		TotalMessagesExchanged: state.TotalMessages,
		ExtractedIntelligence:  state.Intelligence.Clone(),
		AgentNotes:             BuildAgentNotes(history, state.Intelligence, state.TotalMessages),
	}
}

// Deliver posts the payload. Returns an error for logging only; the
// caller must not propagate it into the conversation.
func (c *Client) Deliver(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.callbackURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("report: sending callback for session %s to %s", payload.SessionID, c.callbackURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver report for session %s: %w", payload.SessionID, err)
	}
	defer httputil.DrainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("report for session %s rejected: status %d: %s",
			payload.SessionID, resp.StatusCode, httputil.ReadErrorBody(resp))
	}

	log.Printf("report: callback successful for session %s", payload.SessionID)
	return nil
}
