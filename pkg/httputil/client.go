// Package httputil provides shared HTTP clients with timeout tiers
// sized for the honeypot's two outbound duties: fast reply generation
// against an LLM provider and best-effort delivery of final reports to
// the evaluation callback.
package httputil

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// TimeoutTier selects a shared client by how long the caller is willing
// to wait for the remote side.
type TimeoutTier int

const (
	// TierReply is for inline reply generation. The caller is holding a
	// conversational turn open, so this is the tightest limit.
	TierReply TimeoutTier = iota
	// TierReport is for final-report callback delivery. Slightly looser
	// because the delivery happens off the request path.
	TierReport
	// TierSlow is for anything batch-like with no caller waiting.
	TierSlow
)

const (
	replyTimeout  = 5 * time.Second
	reportTimeout = 10 * time.Second
	slowTimeout   = 30 * time.Second
)

// MaxResponseSize caps how much of a remote response we will buffer.
const MaxResponseSize = 10 * 1024 * 1024

var (
	transportOnce   sync.Once
	sharedTransport *http.Transport

	clientsOnce sync.Once
	clients     map[TimeoutTier]*http.Client
)

func getTransport() *http.Transport {
	transportOnce.Do(func() {
		sharedTransport = &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		}
	})
	return sharedTransport
}

// Client returns the shared client for the given tier. All tiers share
// one transport so connection pools are reused across callers.
func Client(tier TimeoutTier) *http.Client {
	clientsOnce.Do(func() {
		transport := getTransport()
		clients = map[TimeoutTier]*http.Client{
			TierReply:  {Transport: transport, Timeout: replyTimeout},
			TierReport: {Transport: transport, Timeout: reportTimeout},
			TierSlow:   {Transport: transport, Timeout: slowTimeout},
		}
	})
	if c, ok := clients[tier]; ok {
		return c
	}
	return clients[TierReport]
}

// ReplyClient returns the client used for inline LLM reply generation.
func ReplyClient() *http.Client { return Client(TierReply) }

// ReportClient returns the client used for callback report delivery.
func ReportClient() *http.Client { return Client(TierReport) }

// SlowClient returns the client for long-running background calls.
func SlowClient() *http.Client { return Client(TierSlow) }

// ReadResponseBody reads up to MaxResponseSize bytes from a response
// body. Returns an error if the body exceeds the cap.
func ReadResponseBody(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxResponseSize)
	}
	return body, nil
}

// ReadErrorBody reads a small prefix of an error response for logging.
// It never fails; an unreadable body yields a placeholder.
func ReadErrorBody(resp *http.Response) string {
	const errorBodyLimit = 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err != nil || len(body) == 0 {
		return "(unreadable body)"
	}
	return string(body)
}

// DrainAndClose discards any unread body and closes it so the
// underlying connection can be reused.
func DrainAndClose(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))
	_ = resp.Body.Close()
}
