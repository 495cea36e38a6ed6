package main

import (
	"flag"
	"fmt"
	"os"

	"bytetube/internal/app"
)

func main() {
	defaultServer := envOrDefault("BYTETUBE_SERVER", "ws://localhost:8080")
	defaultUser := envOrDefault("BYTETUBE_USER", "")

	serverURL := flag.String("server", defaultServer, "server base URL (e.g., ws://localhost:8080)")
	username := flag.String("user", defaultUser, "username shown on chat messages")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: client [flags] <room>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := app.ClientConfig{
		ServerURL: *serverURL,
		Room:      flag.Arg(0),
		Username:  *username,
	}

	if err := app.RunClient(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
