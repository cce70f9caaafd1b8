package main

import (
	"context"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"mealboard/internal/config"
	"mealboard/internal/db"
	"mealboard/internal/ingest"
	"mealboard/internal/llm"
	"mealboard/internal/menu"
	"mealboard/internal/parser"
	"mealboard/internal/storage"

	"github.com/joho/godotenv"
)

// Standalone ingest worker for deployments that keep text extraction
// off the API host.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	log.Println("🧠 Ingest worker starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	for _, bin := range []string{"tesseract", "pdftotext"} {
		if _, err := exec.LookPath(bin); err != nil {
			log.Fatalf("Required binary missing: %s", bin)
		}
	}

	pgDB := db.ConnectPostgres(cfg.Database)
	defer pgDB.Close()

	r2Client, err := storage.NewR2Client(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	menuService := menu.NewService(menu.NewPostgresRepository(pgDB), r2Client)
	primary, fallback := buildParsers(cfg)

	service := ingest.NewService(
		ingest.NewRepository(pgDB),
		r2Client,
		primary,
		fallback,
		menuService,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ingest.RunExtractWorker(ctx, service, cfg.Parser.PollInterval)
	go ingest.RunParseWorker(ctx, service, cfg.Parser.PollInterval)

	log.Println("✅ Ingest worker running. Press Ctrl+C to stop.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down")
}

func buildParsers(cfg *config.Config) (menu.Parser, menu.Parser) {
	var ruleEngine menu.Parser
	if cfg.Parser.RulesFile == "" {
		ruleEngine = parser.Default()
	} else {
		rules, err := parser.LoadRules(cfg.Parser.RulesFile)
		if err != nil {
			log.Fatalf("❌ rules file %s: %v", cfg.Parser.RulesFile, err)
		}
		ruleEngine = parser.NewEngine(rules)
	}

	var llmParser menu.Parser
	switch cfg.LLM.Provider {
	case "gemini":
		if cfg.LLM.GeminiAPIKey != "" {
			llmParser = llm.NewParser(llm.NewGeminiClient(cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel))
		}
	case "llama":
		if cfg.LLM.LlamaAPIKey != "" {
			llmParser = llm.NewParser(llm.NewLLaMAClient(cfg.LLM.LlamaAPIKey, cfg.LLM.LlamaModel, cfg.LLM.LlamaAPIURL))
		}
	}

	if cfg.Parser.Backend == "llm" {
		if llmParser == nil {
			log.Fatal("❌ PARSER_BACKEND=llm but no LLM credentials configured")
		}
		return llmParser, ruleEngine
	}
	return ruleEngine, llmParser
}
