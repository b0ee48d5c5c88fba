package main

import (
	"github.com/joho/godotenv"

	"github.com/ezymarket/adminctl/internal/client/cli"
)

func main() {
	// A local .env file supplies ADMINCTL_* variables during development.
	_ = godotenv.Load()

	cli.Execute()
}
