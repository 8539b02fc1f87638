package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/tradeops/alpaca-export/internal/api"
	"github.com/tradeops/alpaca-export/internal/auth"
	"github.com/tradeops/alpaca-export/internal/config"
)

func main() {
	// Paper host only; this tool is for checking credentials and
	// connectivity, never the live account.
	creds, err := auth.Resolve("", "")
	if err != nil {
		log.Fatalf("credentials: set %s and %s", auth.EnvKeyID, auth.EnvSecretKey)
	}

	client := api.NewClient(
		config.DefaultPaperURL,
		creds,
		api.WithTimeout(30*time.Second),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Test 1: Market clock
	fmt.Println("=== Testing GetClock ===")
	clock, err := client.GetClock(ctx)
	if err != nil {
		log.Fatalf("GetClock failed: %v", err)
	}
	printJSON(clock)

	// Test 2: Account
	fmt.Println("\n=== Testing GetAccount ===")
	account, err := client.GetAccount(ctx)
	if err != nil {
		log.Fatalf("GetAccount failed: %v", err)
	}
	printJSON(account)

	// Test 3: Open positions
	fmt.Println("\n=== Testing GetPositions ===")
	positions, err := client.GetPositions(ctx)
	if err != nil {
		log.Fatalf("GetPositions failed: %v", err)
	}
	fmt.Printf("Fetched %d positions\n", len(positions))
	for i, p := range positions {
		fmt.Printf("  %d. %v qty=%v\n", i+1, p["symbol"], p["qty"])
	}

	fmt.Println("\n=== All API tests passed! ===")
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	fmt.Println(string(data))
}
