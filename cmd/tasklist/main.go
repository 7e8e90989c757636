package main

import (
	"os"

	"github.com/joho/godotenv"

	"tasklist/internal/cli"
)

func main() {
	// A .env next to the invocation may set TASKLIST_* variables.
	_ = godotenv.Load()

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
