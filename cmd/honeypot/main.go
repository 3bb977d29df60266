package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/devagarwal07/guvi-honeypot/pkg/config"
	"github.com/devagarwal07/guvi-honeypot/pkg/detect"
	"github.com/devagarwal07/guvi-honeypot/pkg/intel"
	"github.com/devagarwal07/guvi-honeypot/pkg/orchestrator"
	"github.com/devagarwal07/guvi-honeypot/pkg/session"
)

const Version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Missing .env is fine; real deployments use environment variables.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cfg := config.NewDefaultConfig()
		if len(os.Args) > 2 {
			cfg.Port = os.Args[2]
		}
		runHTTPServer(cfg)
	case "classify":
		if len(os.Args) < 3 {
			fmt.Println("Usage: honeypot classify <text>")
			os.Exit(1)
		}
		runCLIClassify(strings.Join(os.Args[2:], " "))
	case "extract":
		if len(os.Args) < 3 {
			fmt.Println("Usage: honeypot extract <text>")
			os.Exit(1)
		}
		runCLIExtract(strings.Join(os.Args[2:], " "))
	case "version":
		fmt.Printf("Honeypot API v%s\n", Version)
		fmt.Println("Agentic Honey-Pot Scam Detection System")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Honeypot API v%s - Agentic Scam Engagement\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  honeypot serve [port]      Start HTTP server (default: 8000)")
	fmt.Println("  honeypot classify <text>   Classify a message for scam intent")
	fmt.Println("  honeypot extract <text>    Extract intelligence from a message")
	fmt.Println("  honeypot version           Show version")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  honeypot serve 8000")
	fmt.Println("  honeypot classify \"Your account will be blocked today\"")
	fmt.Println("  honeypot extract \"Send to fraud@paytm or call 9876543210\"")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  HONEYPOT_API_KEY       Required x-api-key for inbound requests")
	fmt.Println("  HONEYPOT_LLM_PROVIDER  Reply generator: openrouter, groq, ollama, none")
	fmt.Println("  HONEYPOT_LLM_API_KEY   API key for the reply generator")
	fmt.Println("  HONEYPOT_CALLBACK_URL  Final-result callback endpoint")
}

// ============================================================================
// HTTP Server Mode
// ============================================================================

func runHTTPServer(cfg *config.Config) {
	orch := orchestrator.New(cfg)

	app := fiber.New(fiber.Config{
		AppName: "Honeypot API",
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "service": "honeypot-api"})
	})

	api := app.Group("/api", requireAPIKey(cfg.APIKey))

	api.Post("/message", func(c fiber.Ctx) error {
		var env orchestrator.Envelope
		if err := c.Bind().Body(&env); err != nil {
			log.Printf("main: invalid request body: %v", err)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid request format",
			})
		}
		if env.SessionID == "" {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"status":  "error",
				"message": "sessionId is required",
			})
		}
		applyMetadataDefaults(&env.Metadata)

		decision := orch.HandleMessage(c.Context(), env)
		return c.JSON(decision)
	})

	api.Get("/sessions", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"activeSessions": orch.Ledger().Count()})
	})

	log.Printf("Honeypot API v%s starting on :%s", Version, cfg.Port)
	log.Printf("Endpoints:")
	log.Printf("  GET  /health        - Health check")
	log.Printf("  POST /api/message   - Inbound conversational events")
	log.Printf("  GET  /api/sessions  - Active session count")
	if cfg.APIKey == "" {
		log.Printf("WARNING: HONEYPOT_API_KEY not set, inbound auth disabled")
	}

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// requireAPIKey enforces the x-api-key header when a key is configured.
func requireAPIKey(key string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if key != "" && c.Get("x-api-key") != key {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid or missing API key",
			})
		}
		return c.Next()
	}
}

func applyMetadataDefaults(md *orchestrator.Metadata) {
	if md.Channel == "" {
		md.Channel = "SMS"
	}
	if md.Language == "" {
		md.Language = "English"
	}
	if md.Locale == "" {
		md.Locale = "IN"
	}
}

// ============================================================================
// CLI Mode
// ============================================================================

func runCLIClassify(text string) {
	cfg := config.NewDefaultConfig()
	classifier := detect.NewClassifier(cfg)

	detected, signal := classifier.Evaluate(text, []session.Message{
		{Sender: session.SenderCounterparty, Text: text},
	})

	out, _ := json.MarshalIndent(fiber.Map{
		"scamDetected": detected,
		"signal":       signal,
	}, "", "  ")
	fmt.Println(string(out))
}

func runCLIExtract(text string) {
	extractor := intel.NewExtractor()
	bundle := extractor.Extract(text)

	out, _ := json.MarshalIndent(bundle, "", "  ")
	fmt.Println(string(out))
}
