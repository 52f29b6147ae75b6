package main

import (
	"context"
	"os"

	"wstore/pkg/app"
)

// main exposes a root-level entry point so operators can simply run `go run wstore.go`.
func main() {
	if err := app.Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, nil); err != nil {
		// Run has already logged the failure through the configured logger.
		os.Exit(1)
	}
}
