package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"courtside/dashboard"
	"courtside/orchestrator"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	// Parse command-line flags
	dateFlag := flag.String("date", "", "Date to recap as YYYY-MM-DD (default: yesterday)")
	flag.Parse()

	date := time.Now().AddDate(0, 0, -1)
	if *dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			log.Fatalf("invalid -date %q: %v", *dateFlag, err)
		}
		date = parsed
	}

	state := orchestrator.NewManager()
	runner, err := orchestrator.FromEnv(context.Background(), state)
	if err != nil {
		log.Fatalf("pipeline setup: %v", err)
	}

	m := dashboard.NewModel(runner, state, date)
	program := tea.NewProgram(m)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
