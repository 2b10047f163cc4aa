// Command recap runs the pipeline once, headless: generate the recap for a
// date and optionally publish it. Suitable for cron.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"courtside/orchestrator"
	"courtside/types"
)

func main() {
	_ = godotenv.Load()

	dateFlag := flag.String("date", "", "Date to recap as YYYY-MM-DD (default: yesterday)")
	publish := flag.Bool("publish", false, "Publish the recap after generating it")
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

	ctx := context.Background()
	if err := runner.Generate(ctx, uuid.New().String(), date); err != nil {
		log.Fatalf("generate recap: %v", err)
	}

	snap := state.Snapshot()
	if snap.State != types.StateReady {
		// Zero games for the date; nothing to publish.
		log.Printf("No recap generated for %s", date.Format("2006-01-02"))
		return
	}
	log.Printf("Draft ready: %s", snap.DraftTitle)

	if !*publish {
		log.Println("Skipping publish (run with -publish to upload)")
		return
	}

	result, err := runner.Publish(ctx)
	if err != nil {
		log.Fatalf("publish recap: %v", err)
	}
	if !result.Success {
		log.Fatalf("publish failed: %s", result.Error)
	}
	log.Printf("Published %s to %s", result.UploadInfo.Filename, result.UploadInfo.RemotePath)
}
