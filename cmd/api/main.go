// cmd/api/main.go

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sellerpilot/internal/config"
	"sellerpilot/internal/enrich"
	"sellerpilot/internal/llm"
	"sellerpilot/internal/search"
	"sellerpilot/internal/server"
	"sellerpilot/internal/service/dashboard"
	"sellerpilot/internal/service/listing"
	"sellerpilot/internal/service/planner"
	"sellerpilot/internal/service/trends"
)

func main() {
	// Load .env when present; real environments set variables
	// directly.
	_ = godotenv.Load()

	// Load configuration; a missing provider key fails startup.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize provider clients
	llmClient, err := llm.NewGroqClient(cfg.LLM.APIKey, cfg.LLM.Timeout)
	if err != nil {
		log.Fatalf("Failed to initialize completion client: %v", err)
	}

	searchClient, err := search.NewClient(cfg.Search.APIKey, cfg.Search.Timeout)
	if err != nil {
		log.Fatalf("Failed to initialize search client: %v", err)
	}

	enricher := enrich.NewStaticProvider()

	// Initialize services
	dashboardService := dashboard.NewService(llmClient, enricher, dashboard.Config{
		Model:         cfg.LLM.TextModel,
		Temperature:   0.7,
		RetryCooldown: cfg.LLM.RetryCooldown,
	})

	plannerService := planner.NewService(llmClient, enricher, planner.Config{
		Model: cfg.LLM.TextModel,
	})

	listingService := listing.NewService(llmClient, listing.Config{
		TextModel:      cfg.LLM.TextModel,
		ReasoningModel: cfg.LLM.ReasoningModel,
		VisionModel:    cfg.LLM.VisionModel,
	})

	trendsService := trends.NewService(llmClient, searchClient, trends.Config{
		Model:       cfg.LLM.ReasoningModel,
		Temperature: 0.7,
	})

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		dashboardService,
		plannerService,
		listingService,
		trendsService,
	)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
