package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"imessage-agent/internal/biz/usecase"
	"imessage-agent/internal/conf"
	"imessage-agent/internal/data"
	"imessage-agent/internal/infra/imessage"
	"imessage-agent/internal/service"
	"imessage-agent/llm"
)

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

	chatStore, err := imessage.NewChatStore(config.Store.ChatDBPath)
	if err != nil {
		log.Fatalf("Failed to open Messages store: %v", err)
	}
	defer chatStore.Close()

	sender := imessage.NewSender(config.Store.SendScriptPath)

	contacts, err := repos.Contacts.ListAll(context.Background())
	if err != nil {
		log.Fatalf("Failed to load contacts: %v", err)
	}
	autoReply := 0
	for _, c := range contacts {
		if c.AutoReply {
			autoReply++
		}
	}
	fmt.Printf("Allowlist: %d contacts (%d auto-reply)\n", len(contacts), autoReply)

	gateUC := usecase.NewGateUsecase(repos.Contacts)
	promptUC := usecase.NewPromptUsecase(repos.Persona, repos.TurnLog)
	replyUC := usecase.NewReplyUsecase(promptUC, repos.Generator, repos.TurnLog)

	daemon := service.NewDaemon(
		chatStore,
		repos.Settings,
		repos.Ledger,
		repos.TurnLog,
		sender,
		gateUC,
		replyUC,
		config.Daemon.PollInterval,
		config.Daemon.Lookback,
	)

	fmt.Println("Starting iMessage agent daemon...")
	daemon.Start(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down...")
	daemon.Stop()
}
