package engage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/devagarwal07/guvi-honeypot/pkg/config"
	"github.com/devagarwal07/guvi-honeypot/pkg/httputil"
	"github.com/devagarwal07/guvi-honeypot/pkg/session"
)

// agentSystemPrompt frames the generator as a worried, not very
// tech-savvy person. It must never break character or reveal that the
// conversation is being analyzed.
const agentSystemPrompt = `You are roleplaying as a regular person who has received a suspicious message. Your goal is to engage naturally with the sender while extracting information, but you must NEVER reveal that you know it's a scam.

PERSONA:
- You are a middle-aged person, not very tech-savvy
- You are slightly worried and confused by urgent messages
- You are cooperative but cautious
- You ask clarification questions naturally
- You pretend to face small technical issues

BEHAVIOR RULES:
1. NEVER accuse the sender of being a scammer
2. NEVER say you're testing them or analyzing them
3. Sound genuinely concerned and confused
4. Ask questions that help extract details (bank name, account numbers, links, phone numbers)
5. Pretend links don't work or ask for clarification
6. Express small technical difficulties naturally
7. Keep responses SHORT (1-2 sentences max)
8. Use simple, conversational language
9. Show slight worry but remain cooperative

EXTRACTION STRATEGY:
- Ask which bank/organization they represent
- Request clarification on links that "don't work"
- Ask what information is needed
- Pretend to be confused about technical steps
- Ask for alternative contact methods

Remember: You are a REAL PERSON who is confused and worried, not an AI agent.`

// historyWindow bounds how much of the conversation goes into the
// prompt; older turns add tokens without adding much context.
const historyWindow = 5

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generator produces replies through an OpenAI-compatible chat
// completions endpoint. It is optional; when no provider is configured
// NewGenerator returns nil and the caller uses the Responder alone.
type Generator struct {
	client      *http.Client
	provider    config.LLMProvider
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

// NewGenerator builds a Generator for the configured provider, or nil
// when generation is disabled or the provider needs a missing key.
func NewGenerator(cfg *config.Config) *Generator {
	if cfg.LLMProvider == config.ProviderNone || cfg.LLMProvider == "" {
		return nil
	}

	model := cfg.LLMModel
	if model == "" {
		if cfg.LLMProvider == config.ProviderOllama {
			model = "qwen2.5:7b"
		} else {
			model = "meta-llama/llama-3.3-70b-instruct:free"
		}
	}

	var baseURL string
	switch cfg.LLMProvider {
	case config.ProviderOllama:
		baseURL = "http://localhost:11434/v1"
	case config.ProviderGroq:
		baseURL = "https://api.groq.com/openai/v1"
	default:
		baseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.LLMBaseURL != "" {
		baseURL = cfg.LLMBaseURL
	}

	if cfg.LLMProvider != config.ProviderOllama && cfg.LLMAPIKey == "" {
		log.Printf("engage: provider %s configured without an API key, generation disabled", cfg.LLMProvider)
		return nil
	}

	return &Generator{
		client:      httputil.ReplyClient(),
		provider:    cfg.LLMProvider,
		baseURL:     baseURL,
		apiKey:      cfg.LLMAPIKey,
		model:       model,
		temperature: cfg.LLMTemperature,
	}
}

// Produce asks the LLM for an in-character reply to the current
// message. The caller bounds the call with its context; any failure is
// returned so the caller can fall back to the template strategy.
func (g *Generator) Produce(ctx context.Context, text string, history []session.Message) (string, error) {
	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: agentSystemPrompt},
			{Role: "user", Content: buildConversationPrompt(text, history)},
		},
		Temperature: g.temperature,
	}

	reply, err := g.callChat(ctx, reqBody)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("empty completion")
	}
	return reply, nil
}

// ProduceNormal asks the LLM for a brief, polite reply to a message in
// a session that has not been flagged. Keeps the persona cover without
// the extraction-oriented framing.
func (g *Generator) ProduceNormal(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf("You received this message: %q\n\nRespond politely and briefly as a normal person. Keep it SHORT (1 sentence). If it seems like a legitimate message, respond appropriately. If unclear, ask for clarification.", text)
	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a polite person responding to messages briefly."},
			{Role: "user", Content: prompt},
		},
		Temperature: g.temperature,
	}

	reply, err := g.callChat(ctx, reqBody)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("empty completion")
	}
	return reply, nil
}

// buildConversationPrompt renders the recent transcript with the
// counterparty labeled "Them" and the persona labeled "You".
func buildConversationPrompt(text string, history []session.Message) string {
	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	var b strings.Builder
	b.WriteString("CONVERSATION SO FAR:\n")
	for _, msg := range recent {
		if msg.FromCounterparty() {
			b.WriteString("Them: ")
		} else {
			b.WriteString("You: ")
		}
		b.WriteString(msg.Text)
		b.WriteByte('\n')
	}
	b.WriteString("Them: ")
	b.WriteString(text)
	b.WriteString("\n\nRespond as the worried, confused person. Keep it SHORT (1-2 sentences). Ask a question that helps extract information or express a small concern/technical issue.")
	return b.String()
}

func (g *Generator) callChat(ctx context.Context, reqBody chatRequest) (string, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(g.baseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer httputil.DrainAndClose(resp)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API error %d: %s", resp.StatusCode, httputil.ReadErrorBody(resp))
	}

	body, err := httputil.ReadResponseBody(resp)
	if err != nil {
		return "", err
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal completion: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return result.Choices[0].Message.Content, nil
}
