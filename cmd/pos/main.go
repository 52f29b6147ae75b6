package main

import (
	"context"
	"os"

	"wstore/pkg/app"
)

// main acts as a thin adapter so process managers can keep using cmd/pos.
func main() {
	if err := app.Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, nil); err != nil {
		// Run has already logged the failure through the configured logger.
		os.Exit(1)
	}
}
