package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"courtside/api"
	"courtside/orchestrator"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	state := orchestrator.NewManager()
	runner, err := orchestrator.FromEnv(context.Background(), state)
	if err != nil {
		log.Fatalf("pipeline setup: %v", err)
	}

	r := api.NewRouter(state, runner)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/recaps/run")
	log.Println("  POST /api/recaps/publish")
	log.Println("  POST /api/recaps/image")
	log.Println("  GET  /api/recaps/status")
	log.Println("  POST /api/articles/publish")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
