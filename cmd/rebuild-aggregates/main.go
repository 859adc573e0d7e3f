package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/workflow"
)

func main() {
	businessID := flag.String("business-id", "", "Required: business id (uuid)")
	flag.Parse()

	if strings.TrimSpace(*businessID) == "" {
		fmt.Fprintln(os.Stderr, "--business-id is required")
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	config.ConnectRedisWithRetry()

	if err := workflow.RebuildAggregates(context.Background(), strings.TrimSpace(*businessID)); err != nil {
		fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("aggregate rebuild complete")
}
