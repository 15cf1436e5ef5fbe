package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"imessage-agent/internal/biz/usecase"
	"imessage-agent/internal/conf"
	"imessage-agent/internal/data"
	"imessage-agent/llm"
)

// One-shot persona synthesis over the collected style examples. Normally
// triggered from the dashboard's warmup flow; this wrapper exists for
// running it from a shell.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := conf.LoadFromEnv()
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	llmClient := llm.NewClient(config.LLM.APIKey, config.LLM.BaseURL, config.LLM.Model)

	repos, err := data.NewRepositories(config.Store.AgentDBPath, llmClient)
	if err != nil {
		log.Fatalf("Failed to open agent database: %v", err)
	}
	defer repos.Close()

	personaUC := usecase.NewPersonaUsecase(repos.Persona, repos.Settings, repos.Generator)

	profile, err := personaUC.Synthesize(context.Background())
	if err != nil {
		log.Fatalf("Synthesis failed: %v", err)
	}

	fmt.Printf("Profile %s\n\nSummary: %s\n\nTone: %s\n\nQuirks:\n", profile.Version, profile.Summary, profile.Tone)
	for _, q := range profile.Quirks {
		fmt.Printf("- %s\n", q)
	}
	fmt.Println("\nSample phrases:")
	for _, p := range profile.SamplePhrases {
		fmt.Printf("- %q\n", p)
	}
}
