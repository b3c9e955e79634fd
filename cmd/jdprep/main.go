package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal; only the config file is required.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
