package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"mealboard/internal/auth"
	"mealboard/internal/config"
	"mealboard/internal/db"
	"mealboard/internal/hall"
	"mealboard/internal/ingest"
	"mealboard/internal/llm"
	"mealboard/internal/menu"
	"mealboard/internal/parser"
	"mealboard/internal/router"
	"mealboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres(cfg.Database)
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(auth.NewPostgresUserRepository(pgDB))
	hallService := hall.NewService(hall.NewPostgresRepository(pgDB))
	menuService := menu.NewService(menu.NewPostgresRepository(pgDB), r2Client)

	// ───────────────────────── PARSERS ─────────────────────────
	primary, fallback := buildParsers(cfg)

	// ───────────────────────── WORKERS ─────────────────────────
	mustHaveBinary("tesseract")
	mustHaveBinary("pdftotext")

	ingestService := ingest.NewService(
		ingest.NewRepository(pgDB),
		r2Client,
		primary,
		fallback,
		menuService,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ingest.RunExtractWorker(ctx, ingestService, cfg.Parser.PollInterval)
	go ingest.RunParseWorker(ctx, ingestService, cfg.Parser.PollInterval)

	// ───────────────────────── ROUTER ─────────────────────────
	guard := func(c *gin.Context, hallID int, userID string) error {
		return hallService.RequireOwner(c.Request.Context(), hallID, userID)
	}

	r := router.NewRouter(router.Deps{
		Auth:           auth.NewHandler(authService),
		Hall:           hall.NewHandler(hallService),
		Menu:           menu.NewHandler(menuService, guard),
		AdminMenu:      menu.NewAdminHandler(menuService),
		AllowedOrigins: strings.Split(cfg.Server.AllowedOrigins, ","),
	})

	// ───────────────────────── START ─────────────────────────
	log.Printf("🚀 API running at http://localhost:%d", cfg.Server.Port)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal(err)
	}
}

// buildParsers picks the primary menu parser from config; the other
// backend becomes the fallback.
func buildParsers(cfg *config.Config) (menu.Parser, menu.Parser) {
	ruleEngine := buildRuleEngine(cfg.Parser.RulesFile)
	llmParser := buildLLMParser(cfg.LLM)

	if cfg.Parser.Backend == "llm" {
		if llmParser == nil {
			log.Fatal("❌ PARSER_BACKEND=llm but no LLM credentials configured")
		}
		return llmParser, ruleEngine
	}
	return ruleEngine, llmParser
}

func buildRuleEngine(rulesFile string) menu.Parser {
	if rulesFile == "" {
		return parser.Default()
	}
	rules, err := parser.LoadRules(rulesFile)
	if err != nil {
		log.Fatalf("❌ rules file %s: %v", rulesFile, err)
	}
	log.Printf("✅ Loaded parser rules from %s", rulesFile)
	return parser.NewEngine(rules)
}

// buildLLMParser returns nil when no provider is configured; the
// pipeline then runs on the rule engine alone.
func buildLLMParser(cfg config.LLMConfig) menu.Parser {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil
		}
		return llm.NewParser(llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel))
	case "llama":
		if cfg.LlamaAPIKey == "" {
			return nil
		}
		return llm.NewParser(llm.NewLLaMAClient(cfg.LlamaAPIKey, cfg.LlamaModel, cfg.LlamaAPIURL))
	default:
		return nil
	}
}

// --------------------------------------------------
func mustHaveBinary(name string) {
	if _, err := exec.LookPath(name); err != nil {
		log.Fatalf("Required binary missing: %s", name)
	}
}
