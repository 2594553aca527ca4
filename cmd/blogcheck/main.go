package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	internalcli "github.com/blogapp/e2e/internal/cli"
	"github.com/joho/godotenv"
)

var version = "0.1.0"

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := internalcli.NewApp(internalcli.Options{Version: version})

	if err := app.Run(os.Args); err != nil {
		// the summary already lists the failed scenarios
		var failed *internalcli.FailedError
		if !errors.As(err, &failed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
