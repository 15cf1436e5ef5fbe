package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"imessage-agent/internal/conf"
	"imessage-agent/internal/infra/imessage"
)

// Debug utility: send one message through Messages.app to verify the
// AppleScript permission grants.
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <handle> <body>\n", os.Args[0])
		os.Exit(2)
	}

	_ = godotenv.Load()
	config := conf.LoadFromEnv()

	sender := imessage.NewSender(config.Store.SendScriptPath)
	if err := sender.Send(context.Background(), os.Args[1], os.Args[2]); err != nil {
		log.Fatalf("Send failed: %v", err)
	}
	fmt.Println("Sent")
}
